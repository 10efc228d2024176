package remindermgmt

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/KasumiMercury/primind-mindfulness-reminder/internal/domain"
	"github.com/KasumiMercury/primind-mindfulness-reminder/internal/observability/logging"
	"github.com/KasumiMercury/primind-mindfulness-reminder/internal/observability/tracing"
)

const maxErrorBodyBytes = 1024

// Client reads reminders from the reminder management service.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: newHTTPClient(baseURL),
	}
}

var _ domain.ReminderSource = (*Client)(nil)

func (c *Client) ListReminders(ctx context.Context) ([]domain.Reminder, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	u.Path = strings.TrimSuffix(u.Path, "/") + "/api/v1/reminders"

	ctx, span := tracing.StartExternalAPISpan(ctx, "list_reminders", u.String())
	defer span.End()

	slog.DebugContext(ctx, "fetching reminders from ReminderManagement",
		slog.String("url", u.String()),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	requestID := logging.ValidateAndExtractRequestID(logging.RequestIDFromContext(ctx))
	req.Header.Set("x-request-id", requestID)
	tracing.InjectToHTTPRequest(ctx, req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.ErrorContext(ctx, "failed to send request to ReminderManagement",
			slog.String("url", u.String()),
			slog.String("error", err.Error()),
		)
		tracing.RecordError(span, err)
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		slog.ErrorContext(ctx, "unexpected status code from ReminderManagement",
			slog.String("url", u.String()),
			slog.Int("status_code", resp.StatusCode),
			slog.String("body", string(body)),
		)
		err := fmt.Errorf("unexpected status code: %d", resp.StatusCode)
		tracing.RecordError(span, err)
		return nil, err
	}

	var remindersResp RemindersResponse
	if err := json.NewDecoder(resp.Body).Decode(&remindersResp); err != nil {
		slog.ErrorContext(ctx, "failed to decode response from ReminderManagement",
			slog.String("error", err.Error()),
		)
		tracing.RecordError(span, err)
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	reminders := make([]domain.Reminder, 0, len(remindersResp.Reminders))
	for _, r := range remindersResp.Reminders {
		reminders = append(reminders, toDomain(ctx, r))
	}

	slog.DebugContext(ctx, "successfully fetched reminders",
		slog.Int("count", len(reminders)),
	)
	tracing.RecordError(span, nil)

	return reminders, nil
}

// toDomain keeps unknown labels as invalid values so that the pass rejects
// the reminder instead of silently dropping a window.
func toDomain(ctx context.Context, r ReminderResponse) domain.Reminder {
	windows := make([]domain.Window, 0, len(r.Windows))
	for _, label := range r.Windows {
		w, err := domain.ParseWindow(strings.ToLower(label))
		if err != nil {
			slog.WarnContext(ctx, "unknown window label",
				slog.String("reminder_id", r.ID),
				slog.String("window", label),
			)
			w = domain.Window(-1)
		}
		windows = append(windows, w)
	}

	return domain.Reminder{
		ID:      r.ID,
		Title:   r.Title,
		Message: r.Message,
		Cadence: domain.Cadence(strings.ToLower(r.Cadence)),
		Windows: windows,
		Weekday: r.Weekday,
		Enabled: r.Enabled,
	}
}

package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-mindfulness-reminder/internal/domain"
	"github.com/KasumiMercury/primind-mindfulness-reminder/internal/service/icsexport"
	"github.com/KasumiMercury/primind-mindfulness-reminder/internal/service/regenerate"
)

//go:generate mockgen -source=regeneration_handler.go -destination=mock.go -package=handler

type RegenerationService interface {
	RegenerateAll(ctx context.Context, trigger regenerate.Trigger) (*regenerate.Response, error)
	RefreshIfDue(ctx context.Context, trigger regenerate.Trigger) (*regenerate.Response, bool, error)
	Preview(ctx context.Context, reminderID string, at time.Time) (*regenerate.Preview, error)
	CancelReminder(ctx context.Context, reminderID string) error
}

type RegenerationHandler struct {
	service RegenerationService
}

func NewRegenerationHandler(service RegenerationService) *RegenerationHandler {
	return &RegenerationHandler{
		service: service,
	}
}

func (h *RegenerationHandler) Register(rg *gin.RouterGroup) {
	rg.POST("/regenerate", h.HandleRegenerate)
	rg.POST("/refresh", h.HandleRefresh)
	rg.GET("/reminders/:id/preview", h.HandlePreview)
	rg.GET("/reminders/:id/preview.ics", h.HandlePreviewICS)
	rg.POST("/reminders/:id/cancel", h.HandleCancel)
}

// HandleRegenerate runs a forced pass. The trigger query defaults to manual.
func (h *RegenerationHandler) HandleRegenerate(c *gin.Context) {
	ctx := c.Request.Context()

	trigger, ok := parseTrigger(c, regenerate.TriggerManual,
		regenerate.TriggerManual, regenerate.TriggerReminderChange, regenerate.TriggerPeriodic)
	if !ok {
		return
	}

	resp, err := h.service.RegenerateAll(ctx, trigger)
	if resp == nil {
		slog.ErrorContext(ctx, "regeneration failed",
			slog.String("trigger", trigger.String()),
			slog.String("error", errString(err)),
		)
		respondError(c, http.StatusInternalServerError, "regeneration_error", "failed to regenerate reminders")
		return
	}

	if err != nil {
		c.JSON(http.StatusMultiStatus, PassResponse{Response: resp, Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, PassResponse{Response: resp})
}

// HandleRefresh runs a pass only when the last refresh is stale. The trigger
// query defaults to foreground.
func (h *RegenerationHandler) HandleRefresh(c *gin.Context) {
	ctx := c.Request.Context()

	trigger, ok := parseTrigger(c, regenerate.TriggerForeground,
		regenerate.TriggerForeground, regenerate.TriggerBoot)
	if !ok {
		return
	}

	resp, ran, err := h.service.RefreshIfDue(ctx, trigger)
	if ran && resp == nil {
		slog.ErrorContext(ctx, "refresh failed",
			slog.String("trigger", trigger.String()),
			slog.String("error", errString(err)),
		)
		respondError(c, http.StatusInternalServerError, "regeneration_error", "failed to refresh reminders")
		return
	}

	out := RefreshResponse{Refreshed: ran, Result: resp}
	if err != nil {
		out.Error = err.Error()
		c.JSON(http.StatusMultiStatus, out)
		return
	}

	c.JSON(http.StatusOK, out)
}

func (h *RegenerationHandler) HandlePreview(c *gin.Context) {
	preview, ok := h.preview(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, toPreviewResponse(preview))
}

func (h *RegenerationHandler) HandlePreviewICS(c *gin.Context) {
	preview, ok := h.preview(c)
	if !ok {
		return
	}

	c.Header("Content-Type", "text/calendar; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="`+preview.Reminder.ID+`.ics"`)
	c.Status(http.StatusOK)
	if err := icsexport.Write(c.Writer, preview.Reminder, preview.Events, preview.GeneratedAt); err != nil {
		slog.ErrorContext(c.Request.Context(), "failed to write calendar",
			slog.String("reminder_id", preview.Reminder.ID),
			slog.String("error", err.Error()),
		)
	}
}

func (h *RegenerationHandler) preview(c *gin.Context) (*regenerate.Preview, bool) {
	ctx := c.Request.Context()
	reminderID := c.Param("id")

	var at time.Time
	if atStr := c.Query("at"); atStr != "" {
		parsed, err := time.Parse(time.RFC3339, atStr)
		if err != nil {
			respondError(c, http.StatusBadRequest, "validation_error", "invalid at time format, expected RFC3339")
			return nil, false
		}
		at = parsed
	}

	preview, err := h.service.Preview(ctx, reminderID, at)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrReminderNotFound):
			respondError(c, http.StatusNotFound, "not_found", err.Error())
		case errors.Is(err, domain.ErrInvalidReminder):
			respondError(c, http.StatusUnprocessableEntity, "invalid_reminder", err.Error())
		default:
			slog.ErrorContext(ctx, "preview failed",
				slog.String("reminder_id", reminderID),
				slog.String("error", err.Error()),
			)
			respondError(c, http.StatusInternalServerError, "preview_error", "failed to build preview")
		}
		return nil, false
	}

	return preview, true
}

func (h *RegenerationHandler) HandleCancel(c *gin.Context) {
	ctx := c.Request.Context()
	reminderID := c.Param("id")

	if err := h.service.CancelReminder(ctx, reminderID); err != nil {
		if errors.Is(err, domain.ErrInvalidReminder) {
			respondError(c, http.StatusBadRequest, "validation_error", err.Error())
			return
		}
		slog.ErrorContext(ctx, "failed to cancel reminder",
			slog.String("reminder_id", reminderID),
			slog.String("error", err.Error()),
		)
		respondError(c, http.StatusInternalServerError, "processing_error", "failed to cancel reminder")
		return
	}

	c.JSON(http.StatusOK, CancelResponse{
		Success: true,
		Message: "reminder notifications cancelled",
	})
}

func parseTrigger(c *gin.Context, fallback regenerate.Trigger, allowed ...regenerate.Trigger) (regenerate.Trigger, bool) {
	raw := c.Query("trigger")
	if raw == "" {
		return fallback, true
	}

	for _, t := range allowed {
		if raw == t.String() {
			return t, true
		}
	}

	respondError(c, http.StatusBadRequest, "validation_error", "unsupported trigger "+raw)
	return "", false
}

func respondError(c *gin.Context, status int, errType, message string) {
	c.JSON(status, ErrorResponse{
		Error:   errType,
		Message: message,
	})
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

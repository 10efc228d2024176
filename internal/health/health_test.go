package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"connectrpc.com/grpchealth"
	"github.com/gin-gonic/gin"
)

func okProbe(name string) Probe {
	return Probe{Name: name, Check: func(context.Context) error { return nil }}
}

func failingProbe(name string) Probe {
	return Probe{Name: name, Check: func(context.Context) error { return errors.New("unreachable") }}
}

func TestChecker_Check(t *testing.T) {
	tests := []struct {
		name       string
		probes     []Probe
		wantStatus Status
	}{
		{name: "no probes", wantStatus: StatusHealthy},
		{name: "all healthy", probes: []Probe{okProbe("redis"), okProbe("sqlite")}, wantStatus: StatusHealthy},
		{name: "one failing", probes: []Probe{okProbe("redis"), failingProbe("sqlite")}, wantStatus: StatusUnhealthy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewChecker("test", tt.probes...).Check(context.Background())

			if got.Status != tt.wantStatus {
				t.Errorf("expected %s, got %s", tt.wantStatus, got.Status)
			}
			if len(got.Checks) != len(tt.probes) {
				t.Errorf("expected %d checks, got %d", len(tt.probes), len(got.Checks))
			}
		})
	}
}

func TestReadyHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		probe      Probe
		wantStatus int
	}{
		{name: "healthy", probe: okProbe("redis"), wantStatus: http.StatusOK},
		{name: "unhealthy", probe: failingProbe("redis"), wantStatus: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/health/ready", NewChecker("v1", tt.probe).ReadyHandler())

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

			if w.Code != tt.wantStatus {
				t.Errorf("expected %d, got %d", tt.wantStatus, w.Code)
			}

			var body HealthStatus
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("failed to decode body: %v", err)
			}
			if body.Version != "v1" {
				t.Errorf("expected version v1, got %s", body.Version)
			}
		})
	}
}

func TestGRPCChecker(t *testing.T) {
	tests := []struct {
		name  string
		probe Probe
		want  grpchealth.Status
	}{
		{name: "serving", probe: okProbe("redis"), want: grpchealth.StatusServing},
		{name: "not serving", probe: failingProbe("redis"), want: grpchealth.StatusNotServing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checker := &grpcChecker{checker: NewChecker("v1", tt.probe)}
			resp, err := checker.Check(context.Background(), &grpchealth.CheckRequest{})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if resp.Status != tt.want {
				t.Errorf("expected %v, got %v", tt.want, resp.Status)
			}
		})
	}
}

func TestGRPCHandlerPath(t *testing.T) {
	path, handler := NewChecker("v1").GRPCHandler()

	if !strings.HasPrefix(path, "/grpc.health.v1.Health/") {
		t.Errorf("unexpected path %q", path)
	}
	if handler == nil {
		t.Error("expected handler")
	}
}

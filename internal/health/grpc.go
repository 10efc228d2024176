package health

import (
	"context"
	"net/http"

	"connectrpc.com/grpchealth"
	"github.com/gin-gonic/gin"
)

type grpcChecker struct {
	checker *Checker
}

func (g *grpcChecker) Check(ctx context.Context, _ *grpchealth.CheckRequest) (*grpchealth.CheckResponse, error) {
	if g.checker.Check(ctx).Status != StatusHealthy {
		return &grpchealth.CheckResponse{Status: grpchealth.StatusNotServing}, nil
	}
	return &grpchealth.CheckResponse{Status: grpchealth.StatusServing}, nil
}

// GRPCHandler serves grpc.health.v1 over gRPC, gRPC-Web and Connect.
func (c *Checker) GRPCHandler() (string, http.Handler) {
	return grpchealth.NewHandler(&grpcChecker{checker: c})
}

// RegisterGRPC mounts the gRPC health service on r.
func (c *Checker) RegisterGRPC(r gin.IRoutes) {
	path, handler := c.GRPCHandler()
	r.Any(path+"*method", gin.WrapH(handler))
}

package handlers

import (
	"github.com/rogerio-castellano/store-analytics/internal/dashboard"
	"go.uber.org/zap"
)

// Handler serves the dashboard endpoints on top of a dashboard.Service.
type Handler struct {
	svc    *dashboard.Service
	logger *zap.Logger
}

func NewHandler(svc *dashboard.Service, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{svc: svc, logger: logger}
}

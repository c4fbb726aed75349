// Package profile provides the neighborhood profile bounded context module.
package profile

import (
	apphttp "neighborhood_insights/internal/http"
)

// Module wires the profile HTTP routes.
type Module struct {
	service *Service
	handler *Handler
}

// NewModule creates the profile module around an assembled aggregator.
func NewModule(svc *Service) *Module {
	return &Module{service: svc, handler: NewHandler(svc)}
}

// Service returns the aggregator.
func (m *Module) Service() *Service {
	return m.service
}

func (m *Module) Name() string {
	return "profile"
}

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.V1.Group("/profiles")
	group.GET("", m.handler.Get)
	group.GET("/compare", m.handler.Compare)
}

var _ apphttp.Module = (*Module)(nil)

package assistant

import (
	apphttp "neighborhood_insights/internal/http"
	"neighborhood_insights/platform/ai/chatmodel"
	"neighborhood_insights/platform/config"
	"neighborhood_insights/platform/logger"
)

// Module is the assistant bounded context module.
type Module struct {
	handler *Handler
	enabled bool
}

// NewModule creates the assistant module. When the assistant is disabled the
// routes stay mounted and answer 503.
func NewModule(cfg config.AssistantConfig, log *logger.Logger) (*Module, error) {
	if !cfg.IsAssistantEnabled() {
		log.Info("assistant module disabled: ASSISTANT_ENABLED=false")
		return &Module{handler: NewHandler(nil)}, nil
	}

	llm := chatmodel.New(chatmodel.Config{
		BaseURL: cfg.GetAssistantBaseURL(),
		Model:   cfg.GetAssistantModel(),
		APIKey:  cfg.GetAssistantAPIKey(),
	})
	searcher := NewWebSearcher(cfg.GetSearchURL(), cfg.GetUpstreamTimeout(), log)

	svc, err := NewService(llm, searcher, log)
	if err != nil {
		return nil, err
	}

	log.Info("assistant module initialized", "model", llm.Name())
	return &Module{handler: NewHandler(svc), enabled: true}, nil
}

// IsEnabled returns true if the assistant is configured and enabled.
func (m *Module) IsEnabled() bool {
	return m != nil && m.enabled
}

func (m *Module) Name() string {
	return "assistant"
}

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.V1.Group("/assistant")
	group.POST("/ask", m.handler.Ask)
}

var _ apphttp.Module = (*Module)(nil)

// Package assistant answers free-form questions with a language model that
// can search the web.
package assistant

import (
	"context"
	"fmt"
	"strings"

	"neighborhood_insights/platform/apperr"
	"neighborhood_insights/platform/logger"

	"github.com/google/uuid"
	"google.golang.org/adk/agent"
	"google.golang.org/adk/agent/llmagent"
	"google.golang.org/adk/model"
	"google.golang.org/adk/runner"
	"google.golang.org/adk/session"
	"google.golang.org/adk/tool"
	"google.golang.org/genai"
)

const (
	appName   = "neighborhood_assistant"
	userID    = "anonymous"
	agentName = "NeighborhoodAssistant"
)

const instruction = `You are a helpful assistant for people researching where to live.
Answer the user's question concisely. When the question needs current or local
facts you do not know, call the web_search tool and base your answer on its
results, citing source URLs where useful. If the search returns nothing useful,
say so instead of guessing.`

// Gateway answers one query. The implementation is opaque to callers.
type Gateway interface {
	Ask(ctx context.Context, query string) (string, error)
}

// Service is the ADK-backed Gateway.
type Service struct {
	runner         *runner.Runner
	sessionService session.Service
	log            *logger.Logger
}

// NewService builds the agent over llm with a single web_search tool.
func NewService(llm model.LLM, searcher Searcher, log *logger.Logger) (*Service, error) {
	searchTool, err := buildWebSearchTool(searcher)
	if err != nil {
		return nil, fmt.Errorf("failed to create web search tool: %w", err)
	}

	adkAgent, err := llmagent.New(llmagent.Config{
		Name:        agentName,
		Model:       llm,
		Description: "Answers questions about places and neighborhoods using web search.",
		Instruction: instruction,
		Tools:       []tool.Tool{searchTool},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create ADK agent: %w", err)
	}

	sessionService := session.InMemoryService()
	r, err := runner.New(runner.Config{
		AppName:        appName,
		Agent:          adkAgent,
		SessionService: sessionService,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create ADK runner: %w", err)
	}

	return &Service{runner: r, sessionService: sessionService, log: log}, nil
}

// Ask implements Gateway. Every call runs in its own throwaway session.
func (s *Service) Ask(ctx context.Context, query string) (string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", apperr.Validation("query is required").WithOp("assistant.Ask")
	}

	sessionID := uuid.NewString()
	if _, err := s.sessionService.Create(ctx, &session.CreateRequest{
		AppName:   appName,
		UserID:    userID,
		SessionID: sessionID,
	}); err != nil {
		return "", apperr.Wrap(apperr.KindInternal, "failed to start assistant session", err)
	}
	defer func() {
		if err := s.sessionService.Delete(context.WithoutCancel(ctx), &session.DeleteRequest{
			AppName:   appName,
			UserID:    userID,
			SessionID: sessionID,
		}); err != nil {
			s.log.Warn("failed to delete assistant session", "session_id", sessionID, "error", err)
		}
	}()

	message := &genai.Content{
		Role:  genai.RoleUser,
		Parts: []*genai.Part{{Text: query}},
	}

	var answer strings.Builder
	for event, err := range s.runner.Run(ctx, userID, sessionID, message, agent.RunConfig{StreamingMode: agent.StreamingModeNone}) {
		if err != nil {
			s.log.WithContext(ctx).Error("assistant run failed", "error", err)
			return "", apperr.BadGateway("assistant is unavailable", err)
		}
		if event == nil || event.Content == nil {
			continue
		}
		for _, part := range event.Content.Parts {
			if part != nil && part.FunctionCall == nil && part.FunctionResponse == nil {
				answer.WriteString(part.Text)
			}
		}
	}

	text := strings.TrimSpace(answer.String())
	if text == "" {
		return "", apperr.BadGateway("assistant returned no answer", nil)
	}
	return text, nil
}

var _ Gateway = (*Service)(nil)

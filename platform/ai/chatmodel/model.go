// Package chatmodel adapts OpenAI-compatible chat-completions servers
// (Ollama, vLLM, hosted gateways) to the ADK model.LLM interface.
package chatmodel

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"iter"
	"net/http"
	"strings"
	"time"

	"google.golang.org/adk/model"
	"google.golang.org/genai"
)

const (
	defaultBaseURL = "http://localhost:11434/v1"
	defaultModel   = "mistral"
	defaultTimeout = 60 * time.Second
)

// Config for an OpenAI-compatible endpoint.
type Config struct {
	BaseURL string
	Model   string
	// APIKey is sent as a bearer token when set. Local servers need none.
	APIKey  string
	Timeout time.Duration
}

// Model implements model.LLM over /chat/completions.
type Model struct {
	config Config
	client *http.Client
}

// New creates a Model, filling defaults for empty fields.
func New(cfg Config) *Model {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &Model{
		config: cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

func (m *Model) Name() string {
	return m.config.Model
}

// GenerateContent issues one non-streaming completion per call. The stream
// flag is ignored; the single response is yielded once.
func (m *Model) GenerateContent(ctx context.Context, req *model.LLMRequest, stream bool) iter.Seq2[*model.LLMResponse, error] {
	return func(yield func(*model.LLMResponse, error) bool) {
		resp, err := m.generate(ctx, req)
		yield(resp, err)
	}
}

type chatMessage struct {
	Role       string     `json:"role"`
	Content    string     `json:"content,omitempty"`
	ToolCalls  []toolCall `json:"tool_calls,omitempty"`
	Name       string     `json:"name,omitempty"`
	ToolCallID string     `json:"tool_call_id,omitempty"`
}

type toolCall struct {
	ID       string       `json:"id"`
	Type     string       `json:"type"`
	Function toolCallFunc `json:"function"`
}

type toolCallFunc struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

type toolDef struct {
	Type     string      `json:"type"`
	Function toolDefFunc `json:"function"`
}

type toolDefFunc struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Parameters  any    `json:"parameters,omitempty"`
}

type completionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature *float64      `json:"temperature,omitempty"`
	Tools       []toolDef     `json:"tools,omitempty"`
	ToolChoice  string        `json:"tool_choice,omitempty"`
}

type completionResponse struct {
	Choices []struct {
		Message struct {
			Role      string     `json:"role"`
			Content   string     `json:"content"`
			ToolCalls []toolCall `json:"tool_calls"`
		} `json:"message"`
	} `json:"choices"`
	Error any `json:"error"`
}

func (m *Model) generate(ctx context.Context, req *model.LLMRequest) (*model.LLMResponse, error) {
	if req == nil {
		return nil, fmt.Errorf("chatmodel: nil request")
	}

	body := completionRequest{
		Model:    m.config.Model,
		Messages: convertMessages(req),
		Tools:    convertTools(req),
	}
	if len(body.Tools) > 0 {
		body.ToolChoice = "auto"
	}
	if req.Config != nil && req.Config.Temperature != nil {
		t := float64(*req.Config.Temperature)
		body.Temperature = &t
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("chatmodel: encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, m.config.BaseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("chatmodel: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if m.config.APIKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+m.config.APIKey)
	}

	resp, err := m.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("chatmodel: request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("chatmodel: status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var result completionResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("chatmodel: decode response: %w", err)
	}
	if result.Error != nil {
		return nil, fmt.Errorf("chatmodel: api error: %v", result.Error)
	}
	if len(result.Choices) == 0 {
		return nil, fmt.Errorf("chatmodel: empty choices")
	}

	return toLLMResponse(result.Choices[0].Message.Content, result.Choices[0].Message.ToolCalls), nil
}

func toLLMResponse(text string, calls []toolCall) *model.LLMResponse {
	parts := make([]*genai.Part, 0, 1+len(calls))
	if strings.TrimSpace(text) != "" {
		parts = append(parts, genai.NewPartFromText(text))
	}
	for _, tc := range calls {
		args := map[string]any{}
		if tc.Function.Arguments != "" {
			if err := json.Unmarshal([]byte(tc.Function.Arguments), &args); err != nil {
				args = map[string]any{"_raw": tc.Function.Arguments}
			}
		}
		parts = append(parts, &genai.Part{
			FunctionCall: &genai.FunctionCall{
				ID:   tc.ID,
				Name: tc.Function.Name,
				Args: args,
			},
		})
	}

	return &model.LLMResponse{
		Content: &genai.Content{
			Role:  genai.RoleModel,
			Parts: parts,
		},
	}
}

func convertMessages(req *model.LLMRequest) []chatMessage {
	messages := make([]chatMessage, 0, len(req.Contents)+1)

	if req.Config != nil && req.Config.SystemInstruction != nil {
		if text := joinText(req.Config.SystemInstruction.Parts); text != "" {
			messages = append(messages, chatMessage{Role: "system", Content: text})
		}
	}

	for _, content := range req.Contents {
		if content == nil {
			continue
		}

		var calls []toolCall
		var text strings.Builder
		for _, part := range content.Parts {
			switch {
			case part == nil:
			case part.FunctionResponse != nil:
				encoded, _ := json.Marshal(part.FunctionResponse.Response)
				messages = append(messages, chatMessage{
					Role:       "tool",
					ToolCallID: part.FunctionResponse.ID,
					Name:       part.FunctionResponse.Name,
					Content:    string(encoded),
				})
			case part.FunctionCall != nil:
				encoded, _ := json.Marshal(part.FunctionCall.Args)
				calls = append(calls, toolCall{
					ID:   part.FunctionCall.ID,
					Type: "function",
					Function: toolCallFunc{
						Name:      part.FunctionCall.Name,
						Arguments: string(encoded),
					},
				})
			default:
				appendText(&text, part.Text)
			}
		}

		if text.Len() > 0 || len(calls) > 0 {
			messages = append(messages, chatMessage{
				Role:      roleFor(content.Role),
				Content:   text.String(),
				ToolCalls: calls,
			})
		}
	}
	return messages
}

func roleFor(role string) string {
	if role == genai.RoleModel {
		return "assistant"
	}
	return "user"
}

func joinText(parts []*genai.Part) string {
	var b strings.Builder
	for _, part := range parts {
		if part != nil {
			appendText(&b, part.Text)
		}
	}
	return b.String()
}

func appendText(builder *strings.Builder, text string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	if builder.Len() > 0 {
		builder.WriteString("\n")
	}
	builder.WriteString(text)
}

func convertTools(req *model.LLMRequest) []toolDef {
	if req.Config == nil || len(req.Config.Tools) == 0 {
		return nil
	}

	var tools []toolDef
	for _, gt := range req.Config.Tools {
		if gt == nil {
			continue
		}
		for _, decl := range gt.FunctionDeclarations {
			if decl == nil || decl.Name == "" {
				continue
			}
			var params any
			switch {
			case decl.ParametersJsonSchema != nil:
				params = decl.ParametersJsonSchema
			case decl.Parameters != nil:
				params = decl.Parameters
			}
			tools = append(tools, toolDef{
				Type: "function",
				Function: toolDefFunc{
					Name:        decl.Name,
					Description: decl.Description,
					Parameters:  params,
				},
			})
		}
	}
	return tools
}

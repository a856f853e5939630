package llmprovider

import (
	"context"
	"fmt"

	"ai-task-manager/pkg/deepseek"
	"ai-task-manager/pkg/gemini"
	"ai-task-manager/pkg/qwen"
)

type geminiClient interface {
	GenerateContent(ctx context.Context, req *gemini.Request) (*gemini.Response, error)
	Model() string
}

type qwenClient interface {
	GenerateContent(ctx context.Context, req *qwen.Request) (*qwen.Response, error)
	Model() string
}

type deepseekClient interface {
	GenerateContent(ctx context.Context, req *deepseek.Request) (*deepseek.Response, error)
	Model() string
}

// GeminiAdapter adapts pkg/gemini to llmprovider.Provider interface
type GeminiAdapter struct {
	client geminiClient
}

// NewGeminiAdapter creates a new Gemini adapter
func NewGeminiAdapter(client geminiClient) *GeminiAdapter {
	return &GeminiAdapter{client: client}
}

// GenerateContent implements Provider interface
func (a *GeminiAdapter) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	geminiReq := &gemini.Request{
		Messages:    make([]gemini.Content, len(req.Messages)),
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
		JSONMode:    req.JSONMode,
	}
	if req.SystemInstruction != nil {
		geminiReq.SystemInstruction = &gemini.Content{
			Parts: []gemini.Part{{Text: req.SystemInstruction.Text()}},
		}
	}
	for i, msg := range req.Messages {
		geminiReq.Messages[i] = gemini.Content{Role: msg.Role, Parts: []gemini.Part{{Text: msg.Text()}}}
	}

	resp, err := a.client.GenerateContent(ctx, geminiReq)
	if err != nil {
		return nil, err
	}

	return &Response{
		Content:      textMessage(resp.Text()),
		ProviderName: a.Name(),
		ModelName:    a.client.Model(),
		Usage:        usageOf(resp.Usage.InputTokens, resp.Usage.OutputTokens, resp.Usage.TotalTokens),
	}, nil
}

// Name returns provider name
func (a *GeminiAdapter) Name() string {
	return "gemini"
}

// Model returns model name
func (a *GeminiAdapter) Model() string {
	return a.client.Model()
}

// QwenAdapter adapts pkg/qwen to llmprovider.Provider interface
type QwenAdapter struct {
	client qwenClient
}

// NewQwenAdapter creates a new Qwen adapter
func NewQwenAdapter(client qwenClient) *QwenAdapter {
	return &QwenAdapter{client: client}
}

// GenerateContent implements Provider interface
func (a *QwenAdapter) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	qwenReq := &qwen.Request{
		Messages:    make([]qwen.Content, len(req.Messages)),
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
		JSONMode:    req.JSONMode,
	}
	if req.SystemInstruction != nil {
		qwenReq.SystemInstruction = &qwen.Content{
			Parts: []qwen.Part{{Text: req.SystemInstruction.Text()}},
		}
	}
	for i, msg := range req.Messages {
		qwenReq.Messages[i] = qwen.Content{Role: msg.Role, Parts: []qwen.Part{{Text: msg.Text()}}}
	}

	resp, err := a.client.GenerateContent(ctx, qwenReq)
	if err != nil {
		return nil, err
	}

	return &Response{
		Content:      textMessage(resp.Text()),
		ProviderName: a.Name(),
		ModelName:    a.client.Model(),
		Usage:        usageOf(resp.Usage.InputTokens, resp.Usage.OutputTokens, resp.Usage.TotalTokens),
	}, nil
}

// Name returns provider name
func (a *QwenAdapter) Name() string {
	return "qwen"
}

// Model returns model name
func (a *QwenAdapter) Model() string {
	return a.client.Model()
}

// DeepSeekAdapter adapts pkg/deepseek to llmprovider.Provider interface
type DeepSeekAdapter struct {
	client deepseekClient
}

// NewDeepSeekAdapter creates a new DeepSeek adapter
func NewDeepSeekAdapter(client deepseekClient) *DeepSeekAdapter {
	return &DeepSeekAdapter{client: client}
}

// GenerateContent implements Provider interface
func (a *DeepSeekAdapter) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	deepseekReq := &deepseek.Request{
		Messages:    make([]deepseek.Message, 0, len(req.Messages)+1),
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}

	// System instruction goes first
	if req.SystemInstruction != nil {
		deepseekReq.Messages = append(deepseekReq.Messages, deepseek.Message{
			Role:    "system",
			Content: req.SystemInstruction.Text(),
		})
	}
	for _, msg := range req.Messages {
		role := msg.Role
		if role == "" {
			role = "user"
		}
		deepseekReq.Messages = append(deepseekReq.Messages, deepseek.Message{Role: role, Content: msg.Text()})
	}
	if req.JSONMode {
		deepseekReq.ResponseFormat = &deepseek.ResponseFormat{Type: "json_object"}
	}

	resp, err := a.client.GenerateContent(ctx, deepseekReq)
	if err != nil {
		return nil, fmt.Errorf("deepseek: %w", err)
	}

	model := resp.Model
	if model == "" {
		model = a.client.Model()
	}

	return &Response{
		Content:      textMessage(resp.Text()),
		ProviderName: a.Name(),
		ModelName:    model,
		Usage:        usageOf(resp.Usage.PromptTokens, resp.Usage.CompletionTokens, resp.Usage.TotalTokens),
	}, nil
}

// Name returns the provider name
func (a *DeepSeekAdapter) Name() string {
	return "deepseek"
}

// Model returns the model name
func (a *DeepSeekAdapter) Model() string {
	return a.client.Model()
}

func textMessage(text string) Message {
	msg := Message{Role: "assistant"}
	if text != "" {
		msg.Parts = []Part{{Text: text}}
	}
	return msg
}

func usageOf(in, out, total int) *Usage {
	return &Usage{InputTokens: in, OutputTokens: out, TotalTokens: total}
}

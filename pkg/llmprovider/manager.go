package llmprovider

import (
	"context"
	"fmt"
	"time"

	"ai-task-manager/pkg/log"
)

// Manager orchestrates provider selection, fallback, and retry logic
type Manager struct {
	providers []Provider
	config    *Config
	logger    log.Logger
}

// Config defines configuration for the Provider Manager
type Config struct {
	FallbackEnabled bool
	RetryAttempts   int
	RetryDelay      time.Duration
	MaxTotalTimeout time.Duration // bounds the whole fallback chain
}

// NewManager creates a new Provider Manager with the given providers, config, and logger
func NewManager(providers []Provider, config *Config, logger log.Logger) *Manager {
	return &Manager{
		providers: providers,
		config:    config,
		logger:    logger,
	}
}

// GenerateContent tries providers in priority order. Each provider gets
// RetryAttempts tries; the next one is used only when FallbackEnabled.
func (m *Manager) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	if len(m.providers) == 0 {
		return nil, ErrNoProvidersConfigured
	}

	if m.config.MaxTotalTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.config.MaxTotalTimeout)
		defer cancel()
	}

	var lastErr error
	for i, provider := range m.providers {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w: global timeout exceeded after %d provider(s): %w",
				ErrProviderTimeout, i, err)
		}

		resp, err := m.generateWithRetry(ctx, provider, req)
		if err == nil {
			m.logSuccess(ctx, provider, resp)
			return resp, nil
		}

		m.logFailure(ctx, provider, err)
		lastErr = err

		if !m.config.FallbackEnabled {
			break
		}
	}

	return nil, fmt.Errorf("%w: %w", ErrAllProvidersFailed, lastErr)
}

// generateWithRetry retries a single provider with linear backoff
func (m *Manager) generateWithRetry(ctx context.Context, provider Provider, req *Request) (*Response, error) {
	var lastErr error

	attempts := m.config.RetryAttempts
	if attempts < 1 {
		attempts = 1
	}

	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			delay := time.Duration(attempt) * m.config.RetryDelay
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		resp, err := provider.GenerateContent(ctx, req)
		if err == nil && (resp == nil || resp.Content.Text() == "") {
			err = ErrEmptyResponse
		}
		if err == nil {
			return resp, nil
		}

		lastErr = &ProviderError{Provider: provider.Name(), Err: err}
	}

	return nil, lastErr
}

// logSuccess logs successful LLM generation with metrics
func (m *Manager) logSuccess(ctx context.Context, provider Provider, resp *Response) {
	var in, out int
	if resp.Usage != nil {
		in, out = resp.Usage.InputTokens, resp.Usage.OutputTokens
	}
	m.logger.Info(ctx, "LLM generation successful",
		"provider", provider.Name(),
		"model", provider.Model(),
		"input_tokens", in,
		"output_tokens", out,
	)
}

// logFailure logs failed LLM generation attempts
func (m *Manager) logFailure(ctx context.Context, provider Provider, err error) {
	m.logger.Warn(ctx, "LLM generation failed",
		"provider", provider.Name(),
		"model", provider.Model(),
		"error", err.Error(),
	)
}

// Generate sends a single prompt through the provider chain and returns the text.
func (m *Manager) Generate(ctx context.Context, prompt string, opts ...GenerateOption) (string, error) {
	req := UserPrompt(prompt)
	for _, opt := range opts {
		opt(req)
	}

	resp, err := m.GenerateContent(ctx, req)
	if err != nil {
		return "", err
	}
	return resp.Content.Text(), nil
}

// GenerateOption tweaks the request built by Generate.
type GenerateOption func(*Request)

// WithTemperature sets the sampling temperature.
func WithTemperature(t float64) GenerateOption {
	return func(r *Request) { r.Temperature = t }
}

// WithMaxTokens caps the output length.
func WithMaxTokens(n int) GenerateOption {
	return func(r *Request) { r.MaxTokens = n }
}

// WithJSONMode asks the provider for a JSON object.
func WithJSONMode() GenerateOption {
	return func(r *Request) { r.JSONMode = true }
}

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const telegramWebhookPath = "/webhook/telegram"

var errNoTunnel = errors.New("ngrok has no active tunnel")

// ngrokDetector asks the local ngrok agent API for the public tunnel URL.
// ngrok may still be starting when the API boots, so lookups are retried.
type ngrokDetector struct {
	apiBase  string
	client   *http.Client
	attempts int
	interval time.Duration
}

func newNgrokDetector(apiBase string) ngrokDetector {
	return ngrokDetector{
		apiBase:  strings.TrimRight(apiBase, "/"),
		client:   &http.Client{Timeout: 5 * time.Second},
		attempts: 10,
		interval: 3 * time.Second,
	}
}

type ngrokTunnels struct {
	Tunnels []struct {
		PublicURL string `json:"public_url"`
		Proto     string `json:"proto"`
	} `json:"tunnels"`
}

// publicURL returns the first https tunnel, or any tunnel when none is https.
func (d ngrokDetector) publicURL(ctx context.Context) (string, error) {
	var lastErr error
	for attempt := 1; attempt <= d.attempts; attempt++ {
		url, err := d.lookup(ctx)
		if err == nil {
			return url, nil
		}
		lastErr = err

		if attempt == d.attempts {
			break
		}
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(d.interval):
		}
	}
	return "", fmt.Errorf("ngrok: gave up after %d attempts: %w", d.attempts, lastErr)
}

func (d ngrokDetector) lookup(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.apiBase+"/api/tunnels", nil)
	if err != nil {
		return "", err
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ngrok API status %d", resp.StatusCode)
	}

	var body ngrokTunnels
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decode ngrok tunnels: %w", err)
	}
	if len(body.Tunnels) == 0 {
		return "", errNoTunnel
	}

	for _, t := range body.Tunnels {
		if t.Proto == "https" {
			return t.PublicURL, nil
		}
	}
	return body.Tunnels[0].PublicURL, nil
}

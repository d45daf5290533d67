package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// ChatCompletion posts a non-streaming completion to the raw chat endpoint.
//
// This endpoint is a standing exception to the rest of the API surface: the
// backend replies with an un-enveloped OpenAI-compatible payload, so the
// call skips the envelope pipeline entirely, and the access key is attached
// directly from the argument rather than via the session marker. Keep this
// path separate; do not normalize it onto Do.
func (c *Client) ChatCompletion(ctx context.Context, req ChatCompletionRequest, accessKey string) (ChatCompletionResponse, error) {
	const op = "POST /v2/chat"
	var out ChatCompletionResponse

	if accessKey == "" {
		return out, wrapError(op, ErrNoAccessKey)
	}
	req.Stream = false

	body, err := json.Marshal(req)
	if err != nil {
		return out, wrapError(op, fmt.Errorf("marshal request: %w", err))
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/v2/chat", bytes.NewReader(body))
	if err != nil {
		return out, wrapError(op, fmt.Errorf("create request: %w", err))
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set(c.config.AccessKeyHeader, accessKey)
	if c.creds != nil {
		if token := c.creds.Token(); token != "" {
			httpReq.Header.Set("Authorization", "Bearer "+token)
		}
	}

	c.logger.Debug("request", "method", http.MethodPost, "path", "/v2/chat", "model", req.Model)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return out, wrapError(op, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return out, wrapError(op, fmt.Errorf("read response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := resp.Status
		if m := embeddedMessage(respBody); m != "" {
			msg = m
		}
		return out, newError(op, resp.StatusCode, msg)
	}

	if err := json.Unmarshal(respBody, &out); err != nil {
		return out, wrapError(op, fmt.Errorf("unmarshal response: %w", err))
	}
	return out, nil
}

// GenerateImage asks the proxy to generate images. The endpoint stays on
// the envelope path but, like raw chat, takes the access key directly and
// attaches it unconditionally.
func (c *Client) GenerateImage(ctx context.Context, req ImageGenerationRequest, accessKey string) (ImageGenerationResponse, error) {
	if accessKey == "" {
		return ImageGenerationResponse{}, wrapError("POST /generate-image", ErrNoAccessKey)
	}
	return Post[ImageGenerationResponse](ctx, c, "/generate-image", req,
		WithHeader(c.config.AccessKeyHeader, accessKey))
}

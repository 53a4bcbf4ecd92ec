package manager

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"raind/pkg/types"
)

// serverBackend generates through an OpenAI-compatible completion server
// (llama.cpp server, vLLM, text-generation-inference and friends).
type serverBackend struct {
	baseURL    string
	apiKey     string
	reqTimeout time.Duration
	httpClient *http.Client
	desc       types.ModelDescriptor
}

func newServerBackend(cfg BackendConfig, desc types.ModelDescriptor) *serverBackend {
	connectTimeout := cfg.ConnectTimeout
	if connectTimeout <= 0 {
		connectTimeout = 5 * time.Second
	}
	tr := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   connectTimeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
	// Timeout=0: every request carries its deadline through the context.
	return &serverBackend{
		baseURL:    strings.TrimRight(cfg.ServerURL, "/"),
		apiKey:     cfg.ServerAPIKey,
		reqTimeout: cfg.RequestTimeout,
		httpClient: &http.Client{Transport: tr, Timeout: 0},
		desc:       desc,
	}
}

func (s *serverBackend) Describe() types.ModelDescriptor { return s.desc.Clone() }

func (s *serverBackend) Unload() error {
	if tr, ok := s.httpClient.Transport.(*http.Transport); ok {
		tr.CloseIdleConnections()
	}
	return nil
}

// completionRequest is the payload for /v1/completions.
type completionRequest struct {
	Model       string   `json:"model,omitempty"`
	Prompt      string   `json:"prompt"`
	MaxTokens   int      `json:"max_tokens,omitempty"`
	Temperature float64  `json:"temperature"`
	TopP        float64  `json:"top_p"`
	TopK        int      `json:"top_k"`
	Stop        []string `json:"stop,omitempty"`
	Stream      bool     `json:"stream"`
}

// streamChunk is the subset of an OpenAI streaming chunk we read. Completion
// servers put text in choices[].text; chat-style servers use delta.content.
type streamChunk struct {
	Choices []struct {
		Text  string `json:"text"`
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Content string `json:"content"`
}

func (s *serverBackend) Generate(ctx context.Context, prompt string, params types.GenerationParams) (string, error) {
	if s.reqTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.reqTimeout)
		defer cancel()
	}
	payload := completionRequest{
		Model:       s.desc.ID,
		Prompt:      prompt,
		MaxTokens:   params.MaxTokens,
		Temperature: params.Temperature,
		TopP:        params.TopP,
		TopK:        params.TopK,
		Stop:        params.StopSequences,
		Stream:      true,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/v1/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream")
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("completion server: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("completion server http error: %s: %s", resp.Status, strings.TrimSpace(string(b)))
	}
	return readStream(ctx, resp.Body)
}

// readStream accumulates text from SSE "data:" lines until [DONE] or EOF.
// Lines that are not SSE are tried as raw JSON objects.
func readStream(ctx context.Context, body io.Reader) (string, error) {
	r := bufio.NewReader(body)
	var out strings.Builder
	for {
		line, err := r.ReadString('\n')
		if line = strings.TrimSpace(line); line != "" {
			data := line
			if strings.HasPrefix(strings.ToLower(line), "data:") {
				data = strings.TrimSpace(line[len("data:"):])
			}
			if data == "[DONE]" {
				return out.String(), nil
			}
			var chunk streamChunk
			if jerr := json.Unmarshal([]byte(data), &chunk); jerr == nil {
				out.WriteString(chunk.fragment())
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return out.String(), nil
			}
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			return "", fmt.Errorf("read completion stream: %w", err)
		}
	}
}

func (c streamChunk) fragment() string {
	if len(c.Choices) > 0 {
		if c.Choices[0].Delta.Content != "" {
			return c.Choices[0].Delta.Content
		}
		return c.Choices[0].Text
	}
	return c.Content
}

package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/qs3c/jobtrack_go_server/config"
)

var (
	// ErrNotConfigured 未配置 API Key
	ErrNotConfigured = errors.New("openai api key not configured")
	// ErrEmptyOutput 响应中没有可用文本
	ErrEmptyOutput = errors.New("openai response contained no output text")
)

const defaultBaseURL = "https://api.openai.com/v1"

// Client OpenAI Responses API 客户端，对上层只是一个不透明的文本来源
type Client struct {
	apiKey      string
	baseURL     string
	model       string
	temperature float64
	httpClient  *http.Client
}

func NewClient(cfg *config.OpenAIConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	temperature := cfg.Temperature
	if temperature == 0 {
		temperature = 0.4
	}

	return &Client{
		apiKey:      cfg.APIKey,
		baseURL:     strings.TrimSuffix(baseURL, "/"),
		model:       cfg.Model,
		temperature: temperature,
		httpClient:  &http.Client{Timeout: timeout},
	}
}

// Configured 是否已配置可用的 API Key
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

type generateRequest struct {
	Model       string  `json:"model"`
	Input       string  `json:"input"`
	Temperature float64 `json:"temperature"`
}

type outputContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type outputItem struct {
	Content []outputContent `json:"content"`
}

type generateResponse struct {
	OutputText string       `json:"output_text"`
	Output     []outputItem `json:"output"`
	Error      *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Generate 根据 prompt 生成一段文本
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if !c.Configured() {
		return "", ErrNotConfigured
	}

	body, err := json.Marshal(generateRequest{
		Model:       c.model,
		Input:       prompt,
		Temperature: c.temperature,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/responses", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("openai request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read openai response: %w", err)
	}

	// 错误响应不一定是 JSON（例如网关返回的 HTML），先按状态码兜底
	var parsed generateResponse
	decodeErr := json.Unmarshal(data, &parsed)

	if resp.StatusCode != http.StatusOK {
		if decodeErr == nil && parsed.Error != nil && parsed.Error.Message != "" {
			return "", fmt.Errorf("openai request failed: %s", parsed.Error.Message)
		}
		return "", fmt.Errorf("openai request failed with status %d", resp.StatusCode)
	}

	if decodeErr != nil {
		return "", fmt.Errorf("failed to decode openai response: %w", decodeErr)
	}

	text := extractOutputText(&parsed)
	if text == "" {
		return "", ErrEmptyOutput
	}

	return text, nil
}

// extractOutputText 兼容 Responses API 的两种输出形态：
// 顶层 output_text 快捷字段，以及 output[].content[] 中的 output_text 分片。
func extractOutputText(resp *generateResponse) string {
	if s := strings.TrimSpace(resp.OutputText); s != "" {
		return s
	}

	var parts []string
	for _, item := range resp.Output {
		for _, content := range item.Content {
			if content.Type == "output_text" && strings.TrimSpace(content.Text) != "" {
				parts = append(parts, strings.TrimSpace(content.Text))
			}
		}
	}

	return strings.Join(parts, "\n")
}

package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const defaultChatTemperature = 0.2

// OpenAIClient calls a Chat Completions API. With a base URL override it
// also works against local OpenAI-compatible servers (Ollama's /v1 surface,
// llama.cpp, vLLM); those typically ignore the API key.
type OpenAIClient struct {
	model   openai.ChatModel
	client  *openai.Client
	timeout time.Duration
}

// NewOpenAIClient builds a client. An empty baseURL targets api.openai.com.
func NewOpenAIClient(apiKey, baseURL string, model openai.ChatModel, timeout time.Duration) (*OpenAIClient, error) {
	if model == "" {
		return nil, fmt.Errorf("model required")
	}
	if timeout <= 0 {
		timeout = 150 * time.Second
	}
	var opts []option.RequestOption
	if apiKey != "" {
		opts = append(opts, option.WithAPIKey(apiKey))
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(strings.TrimRight(baseURL, "/")+"/"))
	}
	cli := openai.NewClient(opts...)
	return &OpenAIClient{
		model:   model,
		client:  &cli,
		timeout: timeout,
	}, nil
}

// Generate submits the prompt as a single user message.
func (c *OpenAIClient) Generate(ctx context.Context, prompt string) (string, error) {
	if c == nil || c.client == nil {
		return "", fmt.Errorf("nil openai client")
	}
	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	resp, err := c.client.Chat.Completions.New(reqCtx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			{
				OfUser: &openai.ChatCompletionUserMessageParam{
					Content: openai.ChatCompletionUserMessageParamContentUnion{
						OfString: openai.String(prompt),
					},
				},
			},
		},
		Temperature: openai.Float(defaultChatTemperature),
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", ErrEmptyResponse
	}
	return resp.Choices[0].Message.Content, nil
}

// Ping lists models, which every OpenAI-compatible server supports.
func (c *OpenAIClient) Ping(ctx context.Context) error {
	reqCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if _, err := c.client.Models.List(reqCtx); err != nil {
		return fmt.Errorf("server unreachable: %w", err)
	}
	return nil
}

// Package chat sends single-question requests to an OpenAI-compatible
// chat-completion endpoint.
package chat

import (
	"context"
	"errors"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	loggerpkg "github.com/minhyannv/askloop/pkg/logger"
)

// Options configures a Client.
type Options struct {
	// Endpoint is the full chat-completion URL; it is used as-is.
	Endpoint     string
	Model        string
	APIKey       string
	SystemPrompt string
	Logger       loggerpkg.Logger

	// RequestOptions are appended after the defaults, mainly for tests.
	RequestOptions []option.RequestOption
}

// Client asks one question per call. It never retries.
type Client struct {
	client       openai.Client
	endpoint     string
	model        string
	systemPrompt string
	logger       loggerpkg.Logger
}

// New builds a Client from opts.
func New(opts Options) *Client {
	reqOpts := []option.RequestOption{
		option.WithMaxRetries(0),
		option.WithHeader("accept", "application/json"),
	}
	if key := strings.TrimSpace(opts.APIKey); key != "" {
		reqOpts = append(reqOpts, option.WithAPIKey(key))
	}
	reqOpts = append(reqOpts, opts.RequestOptions...)

	return &Client{
		client:       openai.NewClient(reqOpts...),
		endpoint:     strings.TrimSpace(opts.Endpoint),
		model:        strings.TrimSpace(opts.Model),
		systemPrompt: opts.SystemPrompt,
		logger:       loggerpkg.OrNop(opts.Logger),
	}
}

// Ask sends question together with the system instruction and decodes the reply.
// Any failure to obtain a JSON reply is returned as *TransportError.
func (c *Client) Ask(ctx context.Context, question string) (Completion, error) {
	if c.endpoint == "" {
		return Completion{}, &TransportError{Err: errors.New("chat endpoint url is not set")}
	}

	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(c.systemPrompt),
			openai.UserMessage(question),
		},
	}

	c.logger.Debug("chat request", loggerpkg.Fields{
		"endpoint": c.endpoint,
		"model":    c.model,
		"question": question,
	})

	var completion Completion
	// An absolute endpoint overrides the client's base URL.
	if err := c.client.Post(ctx, c.endpoint, params, &completion); err != nil {
		return Completion{}, toTransportError(err)
	}

	c.logger.Debug("chat reply", loggerpkg.Fields{
		"id":      completion.ID,
		"choices": len(completion.Choices),
	})
	return completion, nil
}

func toTransportError(err error) *TransportError {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return &TransportError{StatusCode: apiErr.StatusCode, Err: err}
	}
	return &TransportError{Err: err}
}

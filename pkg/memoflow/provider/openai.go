package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gpt-4o-mini"

// OpenAI is a Provider backed by the OpenAI chat completions API.
type OpenAI struct {
	client openai.Client
	model  string
}

// OpenAIOption configures an OpenAI provider.
type OpenAIOption func(*openaiOptions)

type openaiOptions struct {
	apiKey  string
	baseURL string
	model   string
}

// WithAPIKey sets the API key explicitly. When absent, the
// OPENAI_API_KEY environment variable is used.
func WithAPIKey(key string) OpenAIOption {
	return func(o *openaiOptions) { o.apiKey = key }
}

// WithBaseURL points the client at an OpenAI-compatible endpoint.
func WithBaseURL(url string) OpenAIOption {
	return func(o *openaiOptions) { o.baseURL = url }
}

// WithModel sets the model name. Default: DefaultModel.
func WithModel(model string) OpenAIOption {
	return func(o *openaiOptions) { o.model = model }
}

// NewOpenAI creates an OpenAI provider. Returns an error when no API
// key is available.
func NewOpenAI(opts ...OpenAIOption) (*OpenAI, error) {
	o := &openaiOptions{model: DefaultModel}
	for _, opt := range opts {
		opt(o)
	}

	key := o.apiKey
	if key == "" {
		key = os.Getenv("OPENAI_API_KEY")
	}
	if key == "" {
		return nil, errors.New("openai: no API key (set OPENAI_API_KEY or use WithAPIKey)")
	}

	clientOpts := []option.RequestOption{option.WithAPIKey(key)}
	if o.baseURL != "" {
		clientOpts = append(clientOpts, option.WithBaseURL(o.baseURL))
	}

	return &OpenAI{
		client: openai.NewClient(clientOpts...),
		model:  o.model,
	}, nil
}

// Name implements Provider.
func (p *OpenAI) Name() string { return "openai" }

// Complete implements Provider.
func (p *OpenAI) Complete(ctx context.Context, req Request) (*Response, error) {
	var messages []openai.ChatCompletionMessageParamUnion
	if req.System != "" {
		messages = append(messages, openai.ChatCompletionMessageParamUnion{
			OfSystem: &openai.ChatCompletionSystemMessageParam{
				Content: openai.ChatCompletionSystemMessageParamContentUnion{
					OfString: openai.String(req.System),
				},
			},
		})
	}
	messages = append(messages, openai.ChatCompletionMessageParamUnion{
		OfUser: &openai.ChatCompletionUserMessageParam{
			Content: openai.ChatCompletionUserMessageParamContentUnion{
				OfString: openai.String(req.Prompt),
			},
		},
	})

	params := openai.ChatCompletionNewParams{
		Model:    shared.ChatModel(p.model),
		Messages: messages,
	}
	if req.Temperature != 0 {
		params.Temperature = openai.Float(req.Temperature)
	}
	if req.MaxTokens != 0 {
		params.MaxCompletionTokens = openai.Int(int64(req.MaxTokens))
	}
	if req.Schema != nil {
		params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &shared.ResponseFormatJSONSchemaParam{
				JSONSchema: shared.ResponseFormatJSONSchemaJSONSchemaParam{
					Name:   req.Schema.Name,
					Schema: req.Schema.JSONSchema(),
					Strict: openai.Bool(true),
				},
			},
		}
	}

	completion, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, &Error{Provider: p.Name(), Err: err}
	}
	if len(completion.Choices) == 0 {
		return nil, &Error{Provider: p.Name(), Err: errors.New("empty response: no choices")}
	}

	resp := &Response{
		Text: completion.Choices[0].Message.Content,
		Usage: Usage{
			Input:  int(completion.Usage.PromptTokens),
			Output: int(completion.Usage.CompletionTokens),
			Total:  int(completion.Usage.TotalTokens),
		},
	}

	if req.Schema != nil {
		var fields map[string]any
		if err := json.Unmarshal([]byte(resp.Text), &fields); err != nil {
			return nil, &Error{
				Provider: p.Name(),
				Err:      fmt.Errorf("decode structured output: %w", err),
			}
		}
		resp.Structured = fields
	}

	return resp, nil
}

package openai

import (
	"context"
	"fmt"
	"strings"

	openaisdk "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/packages/param"
	"github.com/openai/openai-go/v3/shared"
)

// ChatUsage reports token usage for one chat completion.
type ChatUsage struct {
	PromptTokens     int64
	CompletionTokens int64
	TotalTokens      int64
}

// ChatJSONParams configures one JSON-mode chat completion.
type ChatJSONParams struct {
	System      string
	User        string
	Temperature float64
	MaxTokens   int64
}

// ChatJSON runs a chat completion with a system and user message in JSON-object
// response mode and returns the raw message content. The content is expected to
// be a single JSON object; parsing is the caller's concern.
func (c *Client) ChatJSON(ctx context.Context, p ChatJSONParams) (string, ChatUsage, error) {
	if strings.TrimSpace(p.User) == "" {
		return "", ChatUsage{}, ErrEmptyInput
	}

	params := openaisdk.ChatCompletionNewParams{
		Messages: []openaisdk.ChatCompletionMessageParamUnion{
			openaisdk.SystemMessage(p.System),
			openaisdk.UserMessage(p.User),
		},
		Model:       shared.ChatModel(c.generationModel),
		Temperature: param.NewOpt(p.Temperature),
		ResponseFormat: openaisdk.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		},
	}
	if p.MaxTokens > 0 {
		params.MaxCompletionTokens = param.NewOpt(p.MaxTokens)
	}

	completion, err := c.sdk.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", ChatUsage{}, fmt.Errorf("openai chat completion: %w", err)
	}

	if len(completion.Choices) == 0 {
		return "", ChatUsage{}, ErrNoChoices
	}

	usage := ChatUsage{
		PromptTokens:     completion.Usage.PromptTokens,
		CompletionTokens: completion.Usage.CompletionTokens,
		TotalTokens:      completion.Usage.TotalTokens,
	}

	return completion.Choices[0].Message.Content, usage, nil
}

package imagegen

import (
	"context"
	"errors"
	"fmt"

	"socialmedia/app/server/types"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

type OpenAI struct {
	client *openai.Client
}

// NewOpenAI builds a generator for the images endpoint. An empty baseUrl
// uses the public API.
func NewOpenAI(apiKey, baseUrl string) *OpenAI {
	cfg := openai.DefaultConfig(apiKey)
	if baseUrl != "" {
		cfg.BaseURL = baseUrl
	}
	return &OpenAI{client: openai.NewClientWithConfig(cfg)}
}

func (o *OpenAI) Generate(ctx context.Context, prompt string) (string, error) {
	zap.L().Debug("generating image with OpenAI", zap.String("prompt", prompt))

	resp, err := o.client.CreateImage(ctx, openai.ImageRequest{
		Prompt:         prompt,
		Model:          openai.CreateImageModelDallE3,
		N:              1,
		Size:           openai.CreateImageSize1024x1024,
		ResponseFormat: openai.CreateImageResponseFormatURL,
	})
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return "", types.NewStatusCodeError(apiErr.HTTPStatusCode, err)
		}
		var reqErr *openai.RequestError
		if errors.As(err, &reqErr) {
			return "", types.NewStatusCodeError(reqErr.HTTPStatusCode, err)
		}
		return "", fmt.Errorf("error calling OpenAI: %v", err)
	}

	if len(resp.Data) == 0 || resp.Data[0].URL == "" {
		return "", types.NewParsingError(errors.New("no image url in response"))
	}

	return resp.Data[0].URL, nil
}

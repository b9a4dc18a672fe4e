package imagegen

import (
	"context"
	"fmt"

	"socialmedia/app/server/config"
)

// Generator turns a text prompt into the url of a generated image.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

func New(cfg *config.Config) (Generator, error) {
	switch cfg.ImageProvider {
	case config.ImageProviderDeepAI:
		return NewDeepAI(cfg.DeepAIApiKey, cfg.DeepAIApiUrl), nil
	case config.ImageProviderOpenAI:
		return NewOpenAI(cfg.OpenAIApiKey, ""), nil
	}
	return nil, fmt.Errorf("unknown image provider: %s", cfg.ImageProvider)
}

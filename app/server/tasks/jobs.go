package tasks

import (
	"context"
	"fmt"

	"socialmedia/app/server/cache"
	"socialmedia/app/server/db"
	"socialmedia/app/server/email"
	"socialmedia/app/server/imagegen"

	"go.uber.org/zap"
)

const (
	TaskRegistrationEmail = "registration_email"
	TaskGenerateImage     = "generate_image"
)

// Runner builds the tasks handlers enqueue.
type Runner struct {
	Store     db.Store
	Mailer    email.Mailer
	Generator imagegen.Generator
	Cache     cache.FeedCache
}

func (r *Runner) SendRegistrationEmail(to, confirmationUrl string) Task {
	return func(ctx context.Context) error {
		return email.SendRegistrationEmail(ctx, r.Mailer, to, confirmationUrl)
	}
}

// GenerateAndAddToPost generates an image for the post. When generation
// fails, the author is emailed the error instead.
func (r *Runner) GenerateAndAddToPost(to string, postId int64, prompt string) Task {
	return func(ctx context.Context) error {
		url, err := r.Generator.Generate(ctx, prompt)
		if err != nil {
			zap.L().Warn("image generation failed", zap.Int64("postId", postId), zap.Error(err))
			return email.SendImageErrorEmail(ctx, r.Mailer, to, err)
		}

		zap.L().Debug("updating post with generated image", zap.Int64("postId", postId))

		if err := r.Store.SetPostImageUrl(ctx, postId, url); err != nil {
			return fmt.Errorf("error storing image for post %d: %w", postId, err)
		}

		if r.Cache != nil {
			r.Cache.Invalidate(ctx)
		}

		return nil
	}
}

package email

import (
	"context"
	"fmt"

	"socialmedia/app/server/config"
)

// Mailer delivers a plain-text message to a single recipient.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

func New(cfg *config.Config) (Mailer, error) {
	switch cfg.MailProvider {
	case config.MailProviderMailgun:
		return NewMailgunMailer(cfg.MailgunDomain, cfg.MailgunApiKey, cfg.MailgunApiBase, cfg.MailFrom), nil
	case config.MailProviderSES:
		return NewSESMailer(cfg.AwsRegion, cfg.AwsAccessKeyId, cfg.AwsSecretAccessKey, cfg.MailFrom)
	case config.MailProviderLog:
		return &DevMailer{Notify: cfg.IsDev()}, nil
	}
	return nil, fmt.Errorf("unknown mail provider: %s", cfg.MailProvider)
}

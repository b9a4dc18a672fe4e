package email

import (
	"context"
	"errors"
	"fmt"

	"socialmedia/app/server/types"
	shared "socialmedia/app/shared"

	"github.com/mailgun/mailgun-go/v4"
	"go.uber.org/zap"
)

type MailgunMailer struct {
	mg   mailgun.Mailgun
	from string
}

func NewMailgunMailer(domain, apiKey, apiBase, from string) *MailgunMailer {
	mg := mailgun.NewMailgun(domain, apiKey)
	if apiBase != "" {
		mg.SetAPIBase(apiBase)
	}
	if from == "" {
		from = fmt.Sprintf("Social Media API <mailgun@%s>", domain)
	}
	return &MailgunMailer{mg: mg, from: from}
}

func (m *MailgunMailer) Send(ctx context.Context, to, subject, body string) error {
	zap.L().Debug("sending email",
		zap.String("to", shared.MaskEmail(to)),
		zap.String("subject", truncate(subject, 20)),
	)

	msg := m.mg.NewMessage(m.from, subject, body, to)

	resp, id, err := m.mg.Send(ctx, msg)
	if err != nil {
		var unexpected *mailgun.UnexpectedResponseError
		if errors.As(err, &unexpected) {
			return types.NewStatusCodeError(unexpected.Actual, err)
		}
		return fmt.Errorf("error sending email via mailgun: %v", err)
	}

	zap.L().Info("email sent", zap.String("id", id), zap.String("response", resp))
	return nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

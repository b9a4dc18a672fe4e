package email

import (
	"context"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/gen2brain/beeep"
	"go.uber.org/zap"
)

// DevMailer logs messages instead of delivering them. With Notify set, the
// first link in the body is copied to the clipboard and a desktop
// notification is shown.
type DevMailer struct {
	Notify bool
}

func (m *DevMailer) Send(ctx context.Context, to, subject, body string) error {
	zap.L().Info("Development mode: email not sent",
		zap.String("to", to),
		zap.String("subject", subject),
		zap.String("body", body),
	)

	if !m.Notify {
		return nil
	}

	if link := firstLink(body); link != "" {
		clipboard.WriteAll(link) // ignore error
		beeep.Notify(subject, "Link for "+to+" copied to clipboard", "") // ignore error
	} else {
		beeep.Notify(subject, "Email for "+to+" logged (not sent in development)", "") // ignore error
	}

	return nil
}

func firstLink(body string) string {
	for _, field := range strings.Fields(body) {
		if strings.HasPrefix(field, "http://") || strings.HasPrefix(field, "https://") {
			return field
		}
	}
	return ""
}

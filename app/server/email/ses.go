package email

import (
	"context"
	"fmt"

	shared "socialmedia/app/shared"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/ses"
	"github.com/aws/aws-sdk-go/service/ses/sesiface"
	"go.uber.org/zap"
)

type SESMailer struct {
	svc  sesiface.SESAPI
	from string
}

func NewSESMailer(region, accessKeyId, secretAccessKey, from string) (*SESMailer, error) {
	if from == "" {
		return nil, fmt.Errorf("MAIL_FROM must be set for the ses mail provider")
	}

	awsCfg := aws.NewConfig()
	if region != "" {
		awsCfg = awsCfg.WithRegion(region)
	}
	if accessKeyId != "" && secretAccessKey != "" {
		awsCfg = awsCfg.WithCredentials(credentials.NewStaticCredentials(accessKeyId, secretAccessKey, ""))
	}

	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, fmt.Errorf("error creating AWS session: %v", err)
	}

	return &SESMailer{svc: ses.New(sess), from: from}, nil
}

func (m *SESMailer) Send(ctx context.Context, to, subject, body string) error {
	zap.L().Debug("sending email via SES", zap.String("to", shared.MaskEmail(to)))

	input := &ses.SendEmailInput{
		Destination: &ses.Destination{
			ToAddresses: []*string{
				aws.String(to),
			},
		},
		Message: &ses.Message{
			Body: &ses.Body{
				Text: &ses.Content{
					Charset: aws.String("UTF-8"),
					Data:    aws.String(body),
				},
			},
			Subject: &ses.Content{
				Charset: aws.String("UTF-8"),
				Data:    aws.String(subject),
			},
		},
		Source: aws.String(m.from),
	}

	_, err := m.svc.SendEmailWithContext(ctx, input)
	if err != nil {
		return fmt.Errorf("error sending email via SES: %v", err)
	}

	return nil
}

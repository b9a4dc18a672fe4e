package email

import (
	"context"
	"fmt"
)

func SendRegistrationEmail(ctx context.Context, m Mailer, email, confirmationUrl string) error {
	return m.Send(ctx, email,
		"Successfully signed up",
		fmt.Sprintf("Hi %s! You have successfully signed up to the Social-Media REST API."+
			" Please confirm your email by clicking on the following link: %s", email, confirmationUrl),
	)
}

func SendImageErrorEmail(ctx context.Context, m Mailer, email string, cause error) error {
	return m.Send(ctx, email,
		"Error in generating image",
		fmt.Sprintf("Hi %s!\nAn error occurred while generating image: %v", email, cause),
	)
}

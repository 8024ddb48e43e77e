package services

import (
	"fmt"
	"os"
	"strconv"

	"github.com/wneessen/go-mail"
)

type IMailService interface {
	SendPasswordReset(to string, resetToken string) error
}

// MailService delivers transactional mail over SMTP. Connection settings
// come from MAIL_HOST, MAIL_PORT, MAIL_USER, MAIL_PASS and MAIL_FROM.
type MailService struct{}

func NewMailService() IMailService {
	return &MailService{}
}

func (s *MailService) SendPasswordReset(to string, resetToken string) error {
	resetURL := fmt.Sprintf("%s/reset?resetToken=%s", os.Getenv("FRONTEND_URL"), resetToken)
	body := fmt.Sprintf(`
		<div style="border: 1px solid black; padding: 20px; font-family: sans-serif; line-height: 2; font-size: 20px;">
			<h2>Your password reset token is here!</h2>
			<p><a href=%q>Click here to reset your password</a></p>
		</div>`, resetURL)

	msg := mail.NewMsg()
	if err := msg.From(os.Getenv("MAIL_FROM")); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject("Your password reset token")
	msg.SetBodyString(mail.TypeTextHTML, body)

	port, err := strconv.Atoi(os.Getenv("MAIL_PORT"))
	if err != nil {
		port = 587
	}
	client, err := mail.NewClient(os.Getenv("MAIL_HOST"),
		mail.WithPort(port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(os.Getenv("MAIL_USER")),
		mail.WithPassword(os.Getenv("MAIL_PASS")),
	)
	if err != nil {
		return err
	}
	return client.DialAndSend(msg)
}

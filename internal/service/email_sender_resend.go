package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/resendlabs/resend-go"
)

// ResendEmailSender delivers password-reset e-mails through Resend. A
// zero-value sender (missing key or from address) silently does nothing,
// which keeps local development working without credentials.
type ResendEmailSender struct {
	client     *resend.Client
	from       string
	appBaseURL string
	resetPath  string
}

func NewResendEmailSender(apiKey, from, appBaseURL string) *ResendEmailSender {
	if strings.TrimSpace(apiKey) == "" || strings.TrimSpace(from) == "" {
		return &ResendEmailSender{}
	}
	return &ResendEmailSender{
		client:     resend.NewClient(apiKey),
		from:       from,
		appBaseURL: strings.TrimRight(appBaseURL, "/"),
		resetPath:  "/reset-password",
	}
}

func (s *ResendEmailSender) SendPasswordResetEmail(ctx context.Context, email string, token string) error {
	if s.client == nil {
		return nil
	}
	link := fmt.Sprintf("%s%s?token=%s", s.appBaseURL, s.resetPath, token)
	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{email},
		Subject: "Redefinição de senha",
		Html: fmt.Sprintf(
			"<p>Recebemos um pedido para redefinir sua senha.</p>"+
				"<p><a href=%q>Redefinir senha</a></p>"+
				"<p>Se você não fez este pedido, ignore este e-mail.</p>",
			link,
		),
	}
	_, err := s.client.Emails.Send(params)
	return err
}

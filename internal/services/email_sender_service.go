package services

import "context"

// EmailSender is the notification gateway. It only delivers codes; it is
// never consulted for correctness decisions.
type EmailSender interface {
	SendOTPEmail(ctx context.Context, toEmail, subject, code string) error
}

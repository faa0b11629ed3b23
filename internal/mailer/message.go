// Package mailer builds account emails and hands them to the mail outbox.
package mailer

import (
	"bytes"
	"text/template"
)

// Message kinds
const (
	KindVerification  = "verification"
	KindResetPassword = "reset-password"
)

// Message is an email ready for delivery.
type Message struct {
	Kind    string `json:"kind"`    // verification or reset-password
	To      string `json:"to"`      // Recipient address
	Name    string `json:"name"`    // Recipient display name
	Subject string `json:"subject"` // Subject line
	Body    string `json:"body"`    // Plain text body
}

// VerificationData is passed to the verification email template.
type VerificationData struct {
	Name            string
	Email           string
	VerificationURL string
}

// ResetPasswordData is passed to the reset password email template.
type ResetPasswordData struct {
	Name     string
	Email    string
	ResetURL string
}

const verificationSubject = "Confirm your email address"

const verificationTemplate = `Hi {{.Name}},

Please confirm your email address by opening the link below:

{{.VerificationURL}}

The link is valid for one hour.

If you did not create an account, you can ignore this email.
`

const resetPasswordSubject = "Reset your password"

const resetPasswordTemplate = `Hi {{.Name}},

A password reset was requested for your account. Open the link below to choose a new password:

{{.ResetURL}}

The link is valid for one hour.

If you did not request a reset, you can ignore this email.
`

var (
	verificationTmpl  = template.Must(template.New("verification").Parse(verificationTemplate))
	resetPasswordTmpl = template.Must(template.New("reset-password").Parse(resetPasswordTemplate))
)

// BuildVerificationEmail renders the email confirmation message.
func BuildVerificationEmail(data VerificationData) (Message, error) {
	var body bytes.Buffer
	if err := verificationTmpl.Execute(&body, data); err != nil {
		return Message{}, err
	}
	return Message{
		Kind:    KindVerification,
		To:      data.Email,
		Name:    data.Name,
		Subject: verificationSubject,
		Body:    body.String(),
	}, nil
}

// BuildResetPasswordEmail renders the password reset message.
func BuildResetPasswordEmail(data ResetPasswordData) (Message, error) {
	var body bytes.Buffer
	if err := resetPasswordTmpl.Execute(&body, data); err != nil {
		return Message{}, err
	}
	return Message{
		Kind:    KindResetPassword,
		To:      data.Email,
		Name:    data.Name,
		Subject: resetPasswordSubject,
		Body:    body.String(),
	}, nil
}

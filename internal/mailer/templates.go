package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"net/url"
)

var verificationHTML = template.Must(template.New("verification").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #222;">
  <h2>Welcome to GatorMarket, {{.Name}}!</h2>
  <p>Please confirm your SFSU email address to activate your account.</p>
  <p><a href="{{.VerifyURL}}" style="background:#463077;color:#fff;padding:10px 18px;text-decoration:none;border-radius:4px;">Verify my email</a></p>
  <p>This link expires in 24 hours.</p>
  <p style="font-size: 12px; color: #777;">Didn't sign up? <a href="{{.DeleteURL}}">Delete this account</a>.</p>
</body>
</html>`))

// VerificationLinks builds the confirm and delete URLs for token.
func VerificationLinks(frontendOrigin, token string) (verify, remove string) {
	q := url.Values{"token": {token}}.Encode()
	return frontendOrigin + "/verify-email?" + q, frontendOrigin + "/delete-account?" + q
}

// VerificationEmail renders the verification message for one recipient.
func VerificationEmail(to, name, verifyURL, deleteURL string) (Email, error) {
	var html bytes.Buffer
	err := verificationHTML.Execute(&html, struct {
		Name, VerifyURL, DeleteURL string
	}{name, verifyURL, deleteURL})
	if err != nil {
		return Email{}, fmt.Errorf("render verification email: %w", err)
	}

	text := fmt.Sprintf("Welcome to GatorMarket, %s!\n\n"+
		"Verify your email within 24 hours:\n%s\n\n"+
		"If you did not sign up, delete the account here:\n%s\n", name, verifyURL, deleteURL)

	return Email{
		To:      to,
		Subject: "Verify your GatorMarket account",
		Text:    text,
		HTML:    html.String(),
	}, nil
}

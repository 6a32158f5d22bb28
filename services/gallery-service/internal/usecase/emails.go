package usecase

import (
	"fmt"
	"time"

	"github.com/vasapolrittideah/art-gallery-api/shared/mailer"
)

func verificationEmail(appName, to, verificationURL string, expiresIn time.Duration) mailer.Email {
	body := fmt.Sprintf(`Welcome to %s!

Please click the link below to verify your email address:
%s

This link will expire in %s.

Best regards,
%s Team
`, appName, verificationURL, humanDuration(expiresIn), appName)

	return mailer.Email{
		To:      []string{to},
		Subject: fmt.Sprintf("Email Verification - %s", appName),
		Body:    body,
	}
}

func resetCodeEmail(appName, to, code string, expiresIn time.Duration) mailer.Email {
	body := fmt.Sprintf(`You requested a password reset for your %s account.

Your reset code is: %s

This code will expire in %s.

If you didn't request this, please ignore this email.

Best regards,
%s Team
`, appName, code, humanDuration(expiresIn), appName)

	return mailer.Email{
		To:      []string{to},
		Subject: fmt.Sprintf("Password Reset Code - %s", appName),
		Body:    body,
	}
}

func inquiryEmails(appName, artist, artistEmail, artworkTitle string, params ContactParams) []mailer.Email {
	phone := params.Phone
	if phone == "" {
		phone = "Not provided"
	}

	artistBody := fmt.Sprintf(`Hello %s,

You have received a new inquiry about your artwork "%s".

From: %s (%s)
Phone: %s

Message:
%s

Please respond directly to %s to continue the conversation.

Best regards,
%s Team
`, artist, artworkTitle, params.Name, params.Email, phone, params.Message, params.Email, appName)

	customerBody := fmt.Sprintf(`Hello %s,

Thank you for your interest in the artwork "%s" by %s.

Your message has been sent to the artist, and they will respond directly to you at %s or via phone at %s.

Your message:
%s

We hope you find the perfect artwork for your collection!

Best regards,
%s Team
`, params.Name, artworkTitle, artist, params.Email, phone, params.Message, appName)

	return []mailer.Email{
		{
			To:      []string{artistEmail},
			ReplyTo: params.Email,
			Subject: "New Artwork Inquiry",
			Body:    artistBody,
		},
		{
			To:      []string{params.Email},
			Subject: fmt.Sprintf("Confirmation: Your message to %s", artist),
			Body:    customerBody,
		},
	}
}

func humanDuration(d time.Duration) string {
	switch {
	case d >= time.Hour && d%time.Hour == 0:
		return plural(int(d/time.Hour), "hour")
	case d >= time.Minute && d%time.Minute == 0:
		return plural(int(d/time.Minute), "minute")
	default:
		return d.String()
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

package notifications

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/abhinay-x/note-maker/domain"
)

const otpSubject = "Your OTP for Note Maker"

var otpHTML = template.Must(template.New("otp").Parse(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #007AFF;">{{.Heading}}</h2>
  <p>Your OTP code is:</p>
  <div style="background: #f5f5f5; padding: 20px; text-align: center; margin: 20px 0;">
    <h1 style="color: #007AFF; font-size: 32px; margin: 0; letter-spacing: 5px;">{{.Code}}</h1>
  </div>
  <p>This code will expire in {{.Minutes}} minutes.</p>
  <p>If you didn't request this code, please ignore this email.</p>
</div>`))

type otpMessage struct {
	Subject string
	Text    string
	HTML    string
}

func renderOTP(code string, purpose domain.OTPPurpose, ttl time.Duration) (*otpMessage, error) {
	heading := "Verify Your Email"
	if purpose == domain.OTPPurposePasswordReset {
		heading = "Reset Your Password"
	}
	minutes := int(ttl.Minutes())
	if minutes < 1 {
		minutes = 1
	}

	var html bytes.Buffer
	data := struct {
		Heading string
		Code    string
		Minutes int
	}{heading, code, minutes}
	if err := otpHTML.Execute(&html, data); err != nil {
		return nil, fmt.Errorf("render otp email: %w", err)
	}

	text := fmt.Sprintf("%s\n\nYour OTP code is: %s\n\nThis code will expire in %d minutes.\nIf you didn't request this code, please ignore this email.",
		heading, code, minutes)

	return &otpMessage{Subject: otpSubject, Text: text, HTML: html.String()}, nil
}

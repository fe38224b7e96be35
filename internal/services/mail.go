package services

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// Mailer is the outbound email channel. Delivery failures are surfaced to
// the caller once; there is no retry or backoff here.
type Mailer interface {
	SendWelcome(to, username string) error
	SendOTP(to, code string) error
}

// SMTPMailer delivers mail over plain SMTP with STARTTLS.
type SMTPMailer struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

func NewSMTPMailer(host string, port int, username, password, from string) *SMTPMailer {
	return &SMTPMailer{Host: host, Port: port, Username: username, Password: password, From: from}
}

func (m *SMTPMailer) send(to, subject, text, html string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", text)
	msg.AddAlternative("text/html", html)

	d := gomail.NewDialer(m.Host, m.Port, m.Username, m.Password)
	return d.DialAndSend(msg)
}

// SendWelcome delivers the signup welcome mail. Callers treat failure as
// non-fatal; the account already exists by the time this runs.
func (m *SMTPMailer) SendWelcome(to, username string) error {
	subject := "Welcome to CodeVerse AI 🚀"
	text := fmt.Sprintf("Hi %s, welcome to CodeVerse AI! We're thrilled to have you with us.", username)
	html := fmt.Sprintf(`
	<html>
	  <body style="font-family: 'Segoe UI', Arial, sans-serif; background-color: #f4f6fb; margin: 0; padding: 0;">
	    <table align="center" width="600" cellpadding="0" cellspacing="0"
	           style="background: #ffffff; border-radius: 16px; overflow: hidden; margin-top: 30px;">
	      <tr>
	        <td style="background: linear-gradient(90deg, #4a90e2, #6a5acd); padding: 24px; text-align: center;">
	          <h1 style="color: #ffffff; font-size: 28px; margin: 0;">🚀 Welcome to <b>CodeVerse AI</b></h1>
	        </td>
	      </tr>
	      <tr>
	        <td style="padding: 30px;">
	          <p style="font-size: 16px; color: #333;">Hey <b>%s</b>,</p>
	          <p style="font-size: 16px; color: #444; line-height: 1.6;">
	            Welcome aboard! You're now part of the CodeVerse AI community.
	            Log in to start collaborative sessions with smart assistants that
	            help you code better, faster, and smarter.
	          </p>
	          <p style="margin-top: 40px; color: #666; font-size: 14px; text-align: center;">
	            — The <b>CodeVerse AI</b> Team 🧠💻
	          </p>
	        </td>
	      </tr>
	    </table>
	  </body>
	</html>`, username)

	return m.send(to, subject, text, html)
}

// SendOTP delivers the password-reset code.
func (m *SMTPMailer) SendOTP(to, code string) error {
	subject := "CodeVerse AI - Password Reset OTP"
	text := fmt.Sprintf("Your CodeVerse AI password reset OTP is %s. It is valid for 5 minutes.", code)
	html := fmt.Sprintf(`
	<html>
	  <body style="font-family: 'Segoe UI', Arial, sans-serif; background-color: #f4f6fb; margin: 0; padding: 0;">
	    <table align="center" width="600" cellpadding="0" cellspacing="0"
	           style="background: #ffffff; border-radius: 16px; overflow: hidden; margin-top: 30px;">
	      <tr>
	        <td style="background: linear-gradient(90deg, #3A66FF, #2D58E0); padding: 24px; text-align: center;">
	          <h1 style="color: #ffffff; font-size: 24px; margin: 0;">Password Reset OTP</h1>
	        </td>
	      </tr>
	      <tr>
	        <td style="padding: 30px;">
	          <p style="font-size: 16px; color: #444;">We received a request to reset your <b>CodeVerse AI</b> account password.</p>
	          <p style="font-size: 32px; font-weight: 700; color: #3A66FF; text-align: center; letter-spacing: 4px;">%s</p>
	          <p style="font-size: 14px; color: #777; text-align: center;">
	            This OTP is valid for <b>5 minutes</b>. If you did not request a password
	            reset, you can safely ignore this email.
	          </p>
	        </td>
	      </tr>
	    </table>
	  </body>
	</html>`, code)

	return m.send(to, subject, text, html)
}

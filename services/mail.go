package services

import (
	"crypto/rand"
	"fmt"
	"log"
	"math/big"

	"CareLink360/config"

	gomail "gopkg.in/gomail.v2"
)

// sendMail delivers one message over SMTP. Overridable for tests.
var sendMail = func(to, subject, body string) error {
	cfg := config.Get()
	m := gomail.NewMessage()
	m.SetHeader("From", cfg.MailFrom)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword)
	return d.DialAndSend(m)
}

// SendVerificationCode mails the code without blocking the request. Delivery
// failures are logged, never surfaced to the caller.
func SendVerificationCode(email, code string) {
	go func() {
		body := fmt.Sprintf("Your verification code is: %s", code)
		if err := sendMail(email, "Verification Code", body); err != nil {
			log.Println("Error sending verification email:", err)
		}
	}()
}

// NewVerificationCode returns a 6-digit numeric code.
func NewVerificationCode() string {
	code := ""
	for i := 0; i < 6; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			n = big.NewInt(0)
		}
		code += n.String()
	}
	return code
}

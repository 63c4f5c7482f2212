package utils

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"net/smtp"
	"os"
	"strconv"

	"github.com/jordan-wright/email"
	"gopkg.in/gomail.v2"
)

// SendReceiptEmail mails the checkout confirmation (async so the request
// does not wait on SMTP).
func SendReceiptEmail(to string, data any) {
	go func() {
		tmplPath := "templates/receipt_confirmation.html"
		tmpl, err := template.ParseFiles(tmplPath)
		if err != nil {
			log.Printf("failed to load receipt template: %v", err)
			return
		}

		var body bytes.Buffer
		if err := tmpl.Execute(&body, data); err != nil {
			log.Printf("failed to render receipt template: %v", err)
			return
		}

		host := os.Getenv("SMTP_HOST")
		portStr := os.Getenv("SMTP_PORT")
		username := os.Getenv("SMTP_USERNAME")
		password := os.Getenv("SMTP_PASSWORD")
		from := os.Getenv("SMTP_FROM")

		port, _ := strconv.Atoi(portStr)

		m := gomail.NewMessage()
		m.SetHeader("From", from)
		m.SetHeader("To", to)
		m.SetHeader("Subject", "Your cinema purchase receipt")
		m.SetBody("text/html", body.String())

		d := gomail.NewDialer(host, port, username, password)
		if err := d.DialAndSend(m); err != nil {
			log.Printf("failed to send receipt email: %v", err)
		}
	}()
}

// SendWelcomeEmail sends a short plain-text mail after registration.
func SendWelcomeEmail(to, name string) {
	go func() {
		host := os.Getenv("SMTP_HOST")
		port := os.Getenv("SMTP_PORT")
		username := os.Getenv("SMTP_USERNAME")
		password := os.Getenv("SMTP_PASSWORD")
		from := os.Getenv("SMTP_FROM")

		e := email.NewEmail()
		e.From = from
		e.To = []string{to}
		e.Subject = "Welcome"
		e.Text = []byte(fmt.Sprintf("Hi %s, your account is ready. Enjoy the movies!", name))
		if err := e.Send(host+":"+port, smtp.PlainAuth("", username, password, host)); err != nil {
			log.Printf("failed to send welcome email: %v", err)
		}
	}()
}

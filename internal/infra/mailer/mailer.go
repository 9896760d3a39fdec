// Package mailer sends transactional mail over SMTP. Delivery is
// best-effort: callers log failures and move on, a lost mail never fails
// the request that triggered it.
package mailer

import (
	"context"
	"fmt"
	"net/smtp"

	"github.com/shopspring/decimal"
)

type Notifier interface {
	NotifyOrderConfirmed(ctx context.Context, email, name, orderNumber string, total decimal.Decimal) error
	NotifyRegistered(ctx context.Context, email, name string) error
}

type SMTPMailer struct {
	addr string
	from string
	auth smtp.Auth
}

var _ Notifier = (*SMTPMailer)(nil)

func NewSMTPMailer(host, port, username, password, from string) *SMTPMailer {
	var auth smtp.Auth
	if username != "" {
		auth = smtp.PlainAuth("", username, password, host)
	}
	return &SMTPMailer{
		addr: host + ":" + port,
		from: from,
		auth: auth,
	}
}

func (m *SMTPMailer) NotifyOrderConfirmed(ctx context.Context, email, name, orderNumber string, total decimal.Decimal) error {
	subject := "Order confirmation #" + orderNumber
	body := "<html><body>" +
		"<h2>Your order has been received!</h2>" +
		"<p>Hello <strong>" + name + "</strong>,</p>" +
		"<p>Thank you for shopping with us.</p>" +
		"<p><strong>Order number:</strong> " + orderNumber + "</p>" +
		"<p><strong>Total:</strong> " + total.StringFixed(2) + "</p>" +
		"<p>Your order has been accepted and will be processed shortly.</p>" +
		"</body></html>"
	return m.send(email, subject, body)
}

func (m *SMTPMailer) NotifyRegistered(ctx context.Context, email, name string) error {
	subject := "Welcome to the watch store!"
	body := "<html><body>" +
		"<h2>Welcome!</h2>" +
		"<p>Hello <strong>" + name + "</strong>,</p>" +
		"<p>Thank you for registering. Your account has been created and you can start shopping right away.</p>" +
		"</body></html>"
	return m.send(email, subject, body)
}

func (m *SMTPMailer) send(to, subject, htmlBody string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s\r\n",
		m.from, to, subject, htmlBody)
	return smtp.SendMail(m.addr, m.auth, m.from, []string{to}, []byte(msg))
}

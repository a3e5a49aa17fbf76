// cmd/worker/main.go
package main

import (
	"encoding/json"
	"log"
	"net/smtp"

	"github.com/streadway/amqp"

	"github.com/unclebandit/crm-backend/internal/config"
	"github.com/unclebandit/crm-backend/internal/mailer"
)

// SendFunc delivers one email; swapped out in tests.
type SendFunc func(email mailer.Email) error

const maxEmailRetries = 3

// retryCount reads the x-retry-count header. Brokers hand integers back
// in several widths, so every signed width is accepted.
func retryCount(headers amqp.Table) int {
	switch v := headers["x-retry-count"].(type) {
	case int:
		return v
	case int8:
		return int(v)
	case int16:
		return int(v)
	case int32:
		return int(v)
	case int64:
		return int(v)
	}
	return 0
}

// republish puts a failed delivery back on the email queue with the
// retry header bumped.
func republish(ch *amqp.Channel, d amqp.Delivery, retries int) error {
	return ch.Publish(
		"",
		mailer.EmailTopic,
		false,
		false,
		amqp.Publishing{
			ContentType: d.ContentType,
			Body:        d.Body,
			Headers:     amqp.Table{"x-retry-count": int32(retries)},
		},
	)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if cfg.AMQPURL == "" {
		log.Fatal("AMQP_URL is required for the email worker")
	}

	conn, err := amqp.Dial(cfg.AMQPURL)
	if err != nil {
		log.Fatal("Failed to connect to RabbitMQ:", err)
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		log.Fatal("Failed to open a channel:", err)
	}
	defer ch.Close()

	q, err := ch.QueueDeclare(
		mailer.EmailTopic, // name
		true,              // durable
		false,             // delete when unused
		false,             // exclusive
		false,             // no-wait
		nil,               // arguments
	)
	if err != nil {
		log.Fatal("Failed to declare queue:", err)
	}

	msgs, err := ch.Consume(
		q.Name,
		"",
		false, // autoAck = false for reliability
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		log.Fatal("Failed to register consumer:", err)
	}

	send := smtpSender(cfg)
	forever := make(chan bool)

	go func() {
		for d := range msgs {
			var email mailer.Email
			if err := json.Unmarshal(d.Body, &email); err != nil {
				log.Println("Invalid job:", err)
				d.Ack(false)
				continue
			}

			if err := send(email); err != nil {
				log.Println("Failed to send email:", err)
				retries := retryCount(d.Headers)
				if retries < maxEmailRetries {
					// Republish with the incremented header; a plain
					// Nack requeue would lose the count.
					if err := republish(ch, d, retries+1); err != nil {
						log.Println("Failed to requeue email:", err)
						d.Nack(false, true)
						continue
					}
				} else {
					log.Printf("Dropping email to %s after %d attempts\n", email.To, maxEmailRetries)
				}
			}

			d.Ack(false)
		}
	}()

	log.Println("Worker running, waiting for emails...")
	<-forever
}

// smtpSender builds the delivery function from SMTP config. Without an
// SMTP host the worker logs deliveries instead, useful in development.
func smtpSender(cfg *config.Config) SendFunc {
	if cfg.SMTPHost == "" {
		return func(email mailer.Email) error {
			log.Printf("📧 [dev mail] to=%s subject=%q\n", email.To, email.Subject)
			return nil
		}
	}

	addr := cfg.SMTPHost + ":" + cfg.SMTPPort
	var auth smtp.Auth
	if cfg.SMTPUser != "" {
		auth = smtp.PlainAuth("", cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPHost)
	}

	return func(email mailer.Email) error {
		msg := buildMessage(cfg.MailFrom, email)
		return smtp.SendMail(addr, auth, cfg.MailFrom, []string{email.To}, msg)
	}
}

func buildMessage(from string, email mailer.Email) []byte {
	contentType := "text/plain; charset=\"UTF-8\""
	if email.HTML {
		contentType = "text/html; charset=\"UTF-8\""
	}
	return []byte(
		"From: " + from + "\r\n" +
			"To: " + email.To + "\r\n" +
			"Subject: " + email.Subject + "\r\n" +
			"MIME-Version: 1.0\r\n" +
			"Content-Type: " + contentType + "\r\n" +
			"\r\n" +
			email.Body,
	)
}

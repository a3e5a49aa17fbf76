package mailer

import (
	"encoding/json"
	"log"

	"github.com/streadway/amqp"

	"github.com/unclebandit/crm-backend/internal/queue"
)

// EmailTopic is the queue every outbound email goes through.
const EmailTopic = "email_sends"

// Email is one outbound message job.
type Email struct {
	To       string `json:"to"`
	Subject  string `json:"subject"`
	Body     string `json:"body"`
	HTML     bool   `json:"html"`
	Attempts int    `json:"attempts"`
}

// Mailer is the notify-ignore-failure contract the services depend on.
// Implementations may fail; callers log and move on.
type Mailer interface {
	SendPlain(to, subject, body string) error
	SendHTML(to, subject, htmlBody string) error
}

// QueueMailer publishes email jobs to an in-process queue.
type QueueMailer struct {
	Queue queue.Queue
}

func (m *QueueMailer) SendPlain(to, subject, body string) error {
	return m.Queue.Publish(EmailTopic, Email{To: to, Subject: subject, Body: body})
}

func (m *QueueMailer) SendHTML(to, subject, htmlBody string) error {
	return m.Queue.Publish(EmailTopic, Email{To: to, Subject: subject, Body: htmlBody, HTML: true})
}

// StartEmailSubscriber wires a sender onto the in-process email queue.
func StartEmailSubscriber(q queue.Queue, send func(Email) error) {
	go func() {
		err := q.Subscribe(EmailTopic, func(payload any) error {
			email, ok := payload.(Email)
			if !ok {
				log.Println("⚠️ Invalid payload type, expected mailer.Email")
				return nil // no retry
			}
			if err := send(email); err != nil {
				log.Println("⚠️ Failed to send email to", email.To, ":", err)
				return err // triggers retry in queue
			}
			log.Println("✅ Email sent to", email.To)
			return nil
		})
		if err != nil {
			log.Println("⚠️ Failed to subscribe to", EmailTopic, ":", err)
		}
	}()
}

// AMQPMailer publishes email jobs to a durable RabbitMQ queue consumed
// by cmd/worker.
type AMQPMailer struct {
	Channel *amqp.Channel
}

// NewAMQPMailer declares the email queue on the given connection.
func NewAMQPMailer(conn *amqp.Connection) (*AMQPMailer, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}
	_, err = ch.QueueDeclare(
		EmailTopic,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		ch.Close()
		return nil, err
	}
	return &AMQPMailer{Channel: ch}, nil
}

func (m *AMQPMailer) SendPlain(to, subject, body string) error {
	return m.publish(Email{To: to, Subject: subject, Body: body})
}

func (m *AMQPMailer) SendHTML(to, subject, htmlBody string) error {
	return m.publish(Email{To: to, Subject: subject, Body: htmlBody, HTML: true})
}

func (m *AMQPMailer) publish(email Email) error {
	body, err := json.Marshal(email)
	if err != nil {
		return err
	}
	return m.Channel.Publish(
		"",
		EmailTopic,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}

package queue

import (
	"fmt"
	"log"
	"sync"
	"time"
)

// Queue is the minimal pub/sub surface the mailer publishes through.
type Queue interface {
	Publish(topic string, payload any) error
	Subscribe(topic string, handler func(payload any) error) error
}

// InMemoryQueue is an in-process queue with per-job retry. It backs the
// mailer when no AMQP broker is configured.
type InMemoryQueue struct {
	mu       sync.Mutex
	handlers map[string][]func(payload any) error
}

func NewInMemoryQueue() *InMemoryQueue {
	return &InMemoryQueue{
		handlers: make(map[string][]func(payload any) error),
	}
}

type job struct {
	payload    any
	retryCount int
	maxRetries int
}

// Publish delivers the payload to every subscriber of the topic.
func (q *InMemoryQueue) Publish(topic string, payload any) error {
	q.mu.Lock()
	handlers := q.handlers[topic]
	q.mu.Unlock()

	if len(handlers) == 0 {
		return fmt.Errorf("no subscribers for topic %s", topic)
	}

	j := job{payload: payload, maxRetries: 3}
	for _, handler := range handlers {
		go q.processJob(handler, j)
	}
	return nil
}

// processJob retries with linear backoff until the handler succeeds or
// the retry budget is spent.
func (q *InMemoryQueue) processJob(handler func(payload any) error, j job) {
	for {
		err := handler(j.payload)
		if err == nil {
			return
		}

		j.retryCount++
		log.Printf("⚠️ Job failed (attempt %d/%d): %v\n", j.retryCount, j.maxRetries, err)
		if j.retryCount > j.maxRetries {
			log.Printf("Job permanently failed after %d attempts\n", j.maxRetries)
			return
		}
		time.Sleep(time.Duration(j.retryCount*500) * time.Millisecond)
	}
}

// Subscribe adds a handler for a topic
func (q *InMemoryQueue) Subscribe(topic string, handler func(payload any) error) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.handlers[topic] = append(q.handlers[topic], handler)
	return nil
}

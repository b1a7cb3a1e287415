package mq

import (
	"context"
	"errors"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Handle accepts a delivery and returns a channel carrying its final result.
// Acceptance runs on the consume loop in arrival order, so a handler that
// routes work into ordered queues preserves delivery order; returning a
// synchronous error rejects the delivery without spawning a waiter.
type Handle func(ctx context.Context, body []byte) (<-chan error, error)

type Consumer interface {
	Consume(ctx context.Context, prefetch int, queue string, handler Handle) error
}

type RabbitConsumer struct {
	ch *amqp.Channel
}

func NewRabbitConsumer(ch *amqp.Channel) Consumer {
	return &RabbitConsumer{ch: ch}
}

// Consume accepts deliveries serially on the loop goroutine and waits for
// each result in its own goroutine. The broker stops delivering once prefetch
// messages are unacked, so prefetch is also the in-flight bound.
func (c *RabbitConsumer) Consume(ctx context.Context, prefetch int, queue string, handler Handle) error {
	if prefetch <= 0 {
		prefetch = 1
	}

	if err := c.ch.Qos(prefetch, 0, false); err != nil {
		return err
	}

	deliveries, err := c.ch.Consume(
		queue,
		"",
		false,
		false,
		false,
		false,
		nil,
	)

	if err != nil {
		return err
	}

	var wg sync.WaitGroup

	for {
		select {
		case <-ctx.Done():
			_ = c.ch.Cancel("", false)
			wg.Wait()
			time.Sleep(50 * time.Millisecond)
			return ctx.Err()

		case d, ok := <-deliveries:
			if !ok {
				wg.Wait()
				return nil
			}

			done, err := handler(ctx, d.Body)
			if err != nil {
				_ = d.Nack(false, shouldRequeue(err))
				continue
			}

			wg.Add(1)
			go func(d amqp.Delivery, done <-chan error) {
				defer wg.Done()

				if err := <-done; err == nil {
					_ = d.Ack(false)
				} else {
					_ = d.Nack(false, shouldRequeue(err))
				}
			}(d, done)
		}
	}
}

func shouldRequeue(err error) bool {
	var te TempError
	if errors.As(err, &te) && te.Temporary() {
		return true
	}
	return false
}

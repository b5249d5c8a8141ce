package sendemail

import (
	"context"

	e "accountms/internal/core/domain/errors"
	"accountms/internal/core/domain/logging"
	"accountms/internal/rabbitmq"
	"accountms/internal/rabbitmq/schema"

	"github.com/rabbitmq/amqp091-go"
)

type EmailSender interface {
	SendEmail(ctx context.Context, to string, subject string, body string) error
}

type Consumer struct {
	log     logging.Logger
	channel *rabbitmq.Channel
	queue   string
	sender  EmailSender
}

func New(
	log logging.Logger,
	channel *rabbitmq.Channel,
	queue string,
	sender EmailSender,
) *Consumer {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if channel == nil {
		panic(e.NewNilArgumentError("channel"))
	}
	if queue == "" {
		panic("queue name must not be empty")
	}
	if sender == nil {
		panic(e.NewNilArgumentError("sender"))
	}

	return &Consumer{log: log, channel: channel, queue: queue, sender: sender}
}

func (c *Consumer) Consume() error {
	deliveries, err := c.channel.Consume(c.queue, "", false, false, false, false, nil)
	if err != nil {
		c.log.Error(context.Background(), "Could not start consuming.", logging.Entry("err", err))
		return err
	}

	go func() {
		for delivery := range deliveries {
			task := &schema.EmailTask{}
			if err := task.Unmarshal(delivery.Body); err != nil {
				c.log.Error(
					context.Background(),
					"Could not unmarshal email task.",
					logging.Entry("err", err),
					logging.Entry("delivery", delivery),
				)
				c.Ack(delivery)
				continue
			}

			c.log.Info(
				context.Background(),
				"Got email task.",
				logging.Entry("to", task.To),
				logging.Entry("subject", task.Subject),
			)
			if err := c.sender.SendEmail(context.Background(), task.To, task.Subject, task.Body); err != nil {
				c.log.Error(
					context.Background(),
					"Could not send email.",
					logging.Entry("to", task.To),
					logging.Entry("err", err),
				)
			}
			c.Ack(delivery)
		}
	}()
	return nil
}

func (c *Consumer) Ack(delivery amqp091.Delivery) {
	if err := delivery.Ack(true); err != nil {
		c.log.Error(context.Background(), "Could not ACK AMQP message.", logging.Entry("err", err))
	}
}

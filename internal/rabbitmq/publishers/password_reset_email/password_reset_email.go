package passwordresetemail

import (
	"context"
	"fmt"

	e "accountms/internal/core/domain/errors"
	"accountms/internal/core/domain/logging"
	"accountms/internal/core/domain/user"
	"accountms/internal/rabbitmq"
	"accountms/internal/rabbitmq/schema"

	"github.com/rabbitmq/amqp091-go"
)

const SUBJECT = "Reset Your Password"

// RabbitMQ queues a password reset email for asynchronous delivery. The
// actual sending happens in the send_email consumer.
type RabbitMQ struct {
	log        logging.Logger
	channel    *rabbitmq.Channel
	exchange   string
	routingKey string
	appURL     string
}

func NewRabbitMQ(
	log logging.Logger,
	channel *rabbitmq.Channel,
	exchange string,
	routingKey string,
	appURL string,
) *RabbitMQ {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if channel == nil {
		panic(e.NewNilArgumentError("channel"))
	}
	if appURL == "" {
		panic("appURL must not be empty")
	}
	return &RabbitMQ{log: log, channel: channel, exchange: exchange, routingKey: routingKey, appURL: appURL}
}

func (s *RabbitMQ) SendResetToken(ctx context.Context, u user.User, token user.PasswordResetToken) error {
	resetLink := fmt.Sprintf("%s/reset-password?token=%s", s.appURL, string(token))
	task := schema.EmailTask{
		To:      string(u.Email),
		Subject: SUBJECT,
		Body: fmt.Sprintf(
			"Hello %s,\n\nA password reset was requested for your account. "+
				"Follow the link below to choose a new password:\n\n%s\n\n"+
				"The link is valid for one hour. If you did not request a reset, ignore this message.",
			u.Username,
			resetLink,
		),
	}
	body, err := task.Marshal()
	if err != nil {
		logging.Error(ctx, s.log, err)
		return err
	}

	err = s.channel.PublishWithContext(ctx, s.exchange, s.routingKey, false, false, amqp091.Publishing{
		ContentType: "application/json",
		Body:        body,
	})
	if err != nil {
		logging.Error(ctx, s.log, err)
		return err
	}
	s.log.Info(
		ctx,
		"Password reset email has been queued.",
		logging.Entry("exchange", s.exchange),
		logging.Entry("RK", s.routingKey),
		logging.Entry("userID", u.ID),
	)
	return nil
}

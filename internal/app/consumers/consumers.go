package consumers

import (
	"context"

	"accountms/internal/app/deps"
	dl "accountms/internal/core/domain/logging"
	sendemail "accountms/internal/rabbitmq/consumers/send_email"
)

func initSendEmailConsumer(deps *deps.Deps) func() {
	rabbitmqChannel, err := deps.Rabbitmq.Channel()
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not create RabbitMQ channel.", dl.Entry("err", err))
		panic(err)
	}

	queue := deps.Config.RabbitmqEmailQueue
	sendEmailConsumer := sendemail.New(
		deps.Logger,
		rabbitmqChannel,
		queue,
		deps.EmailSender,
	)
	if err = sendEmailConsumer.Consume(); err != nil {
		deps.Logger.Error(
			context.Background(),
			"Could not start RabbitMQ consuming.",
			dl.Entry("err", err),
			dl.Entry("queue", queue),
		)
		panic(err)
	}

	deps.Logger.Info(context.Background(), "Consumer has started.", dl.Entry("queue", queue))
	return func() { rabbitmqChannel.Close() }
}

func InitConsumers(deps *deps.Deps) func() {
	shutdownSendEmailConsumer := initSendEmailConsumer(deps)

	return func() {
		shutdownSendEmailConsumer()
	}
}

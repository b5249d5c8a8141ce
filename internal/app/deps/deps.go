package deps

import (
	"context"
	"fmt"
	"sync"
	"time"

	"accountms/internal/config"
	"accountms/internal/core/domain/activity"
	dl "accountms/internal/core/domain/logging"
	duow "accountms/internal/core/domain/unit_of_work"
	"accountms/internal/core/domain/user"
	"accountms/internal/core/services/captcha"
	uow "accountms/internal/db/unit_of_work"
	dbuser "accountms/internal/db/user"
	activitystream "accountms/internal/implementations/activity"
	"accountms/internal/implementations/email"
	"accountms/internal/implementations/logging"
	passwordhasher "accountms/internal/implementations/password_hasher"
	recaptcha "accountms/internal/implementations/recaptcha"
	resettokengenerator "accountms/internal/implementations/reset_token_generator"
	"accountms/internal/implementations/session"
	"accountms/internal/rabbitmq"
	passwordresetemail "accountms/internal/rabbitmq/publishers/password_reset_email"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/getsentry/sentry-go"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/r3labs/sse/v2"
)

type Deps struct {
	Config    *config.Config
	AwsConfig aws.Config
	Logger    dl.Logger

	DB        *pgxpool.Pool
	Rabbitmq  *rabbitmq.Connection
	SseServer *sse.Server

	Now func() time.Time

	UnitOfWork     duow.UnitOfWork
	UserRepository user.UserRepository

	EmailSender *email.SESSender

	PasswordHasher              user.PasswordHasher
	PasswordResetTokenGenerator user.PasswordResetTokenGenerator
	PasswordResetTokenSender    user.PasswordResetTokenSender
	SessionTokenIssuer          user.SessionTokenIssuer
	CaptchaValidator            captcha.CaptchaValidator
	ActivityStream              activity.Stream
}

func InitDeps() (*Deps, func()) {
	deps := &Deps{}

	deps.initConfig()
	deps.initAwsConfig()

	closeLogger := deps.initLogger()
	closePgxPool := deps.initPgxPool()
	closeRabbitmqConn := deps.initRabbitmqConnection()
	closeSseServer := deps.initSseServer()

	deps.Now = func() time.Time { return time.Now().UTC() }

	deps.UnitOfWork = uow.NewPgxUnitOfWork(deps.DB)
	deps.UserRepository = dbuser.NewPgxRepository(deps.DB)

	deps.EmailSender = email.NewSESSender(deps.AwsConfig, deps.Config.AwsEmailSender)

	deps.PasswordHasher = passwordhasher.NewBcrypt(deps.Config.Secret, deps.Config.BcryptHasherCost)
	deps.PasswordResetTokenGenerator = resettokengenerator.NewGenerator()
	deps.SessionTokenIssuer = session.NewJWTIssuer(
		deps.Config.Secret,
		deps.Config.SessionTokenIssuer,
		deps.Config.SessionTokenAudience,
		deps.Config.SessionTokenValidDuration,
		deps.Now,
	)
	deps.CaptchaValidator = deps.initCaptchaValidator()
	deps.ActivityStream = activitystream.NewSSEStream(deps.Logger, deps.SseServer)

	closePasswordResetPublisher := deps.initPasswordResetTokenSender()

	flushSentry := deps.initSentry()

	return deps, func() {
		closeFuncs := []func(){
			closeSseServer,
			closePasswordResetPublisher,
			closeRabbitmqConn,
			closePgxPool,
			closeLogger,
			flushSentry,
		}

		var wg sync.WaitGroup
		wg.Add(len(closeFuncs))
		for _, closeFunc := range closeFuncs {
			closeFunc := closeFunc
			go func() {
				closeFunc()
				wg.Done()
			}()
		}

		wg.Wait()
	}
}

func (deps *Deps) initConfig() {
	config, err := config.Load()
	if err != nil {
		panic(err)
	}
	deps.Config = config
}

func (deps *Deps) initAwsConfig() {
	cfg, err := awsConfig.LoadDefaultConfig(
		context.Background(),
		awsConfig.WithRegion(deps.Config.AwsRegion),
		awsConfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				deps.Config.AwsAccessKey,
				deps.Config.AwsSecretKey,
				"",
			),
		),
		awsConfig.WithRetryer(func() aws.Retryer {
			return retry.AddWithMaxAttempts(
				retry.AddWithMaxBackoffDelay(retry.NewStandard(), time.Second*5),
				3,
			)
		}),
	)
	if err != nil {
		panic(err)
	}
	deps.AwsConfig = cfg
}

func (deps *Deps) initLogger() func() {
	logger := logging.NewZapLogger()
	deps.Logger = logger
	return func() { logger.Sync() }
}

func (deps *Deps) initPgxPool() func() {
	db, err := pgxpool.Connect(context.Background(), deps.Config.PostgresqlURL)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to DB.", dl.Entry("err", err))
		panic(err)
	}
	deps.DB = db
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down DB connection.")
		db.Close()
		deps.Logger.Info(context.Background(), "DB connection shut down.")
	}
}

func (deps *Deps) initRabbitmqConnection() func() {
	rabbitmqConnection, err := rabbitmq.Dial(deps.Config.RabbitmqURL, deps.Logger)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to RabbitMQ.", dl.Entry("err", err))
		panic("could not connect to RabbitMQ")
	}
	deps.Rabbitmq = rabbitmqConnection
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down RabbitMQ connection.")
		rabbitmqConnection.Close()
		deps.Logger.Info(context.Background(), "RabbitMQ connection shut down.")
	}
}

func (deps *Deps) initPasswordResetTokenSender() func() {
	rabbitmqChannel, err := deps.Rabbitmq.Channel()
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not create RabbitMQ channel.", dl.Entry("err", err))
		panic(err)
	}

	_, err = rabbitmqChannel.QueueDeclare(deps.Config.RabbitmqEmailQueue, true, false, false, false, nil)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not create RabbitMQ queue.", dl.Entry("err", err))
		panic(err)
	}

	deps.PasswordResetTokenSender = passwordresetemail.NewRabbitMQ(
		deps.Logger,
		rabbitmqChannel,
		deps.Config.RabbitmqEmailExchange,
		deps.Config.RabbitmqEmailQueue,
		deps.Config.AppURL,
	)

	return func() {
		deps.Logger.Info(context.Background(), "Shutting down password reset publisher.")
		rabbitmqChannel.Close()
		deps.Logger.Info(context.Background(), "Password reset publisher shut down.")
	}
}

func (deps *Deps) initSseServer() func() {
	deps.SseServer = sse.New()
	deps.SseServer.AutoStream = true
	deps.SseServer.AutoReplay = false
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down SSE server.")
		deps.SseServer.Close()
		deps.Logger.Info(context.Background(), "SSE server shut down.")
	}
}

func (deps *Deps) initCaptchaValidator() captcha.CaptchaValidator {
	if deps.Config.IsTestMode || deps.Config.GoogleRecaptchaSecretKey == "" {
		return captcha.NewAllowAlwaysCaptchaValidator()
	}
	return recaptcha.New(
		deps.Logger,
		deps.Config.GoogleRecaptchaSecretKey,
		deps.Config.GoogleRecaptchaScoreThreshold,
		deps.Config.GoogleRecaptchaRequestTimeout,
	)
}

func (deps *Deps) initSentry() func() {
	if deps.Config.SentryDsn != nil {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:              deps.Config.SentryDsn.String(),
			TracesSampleRate: 0.01,
		})
		if err != nil {
			panic(fmt.Sprintf("could not init Sentry: %v\n", err))
		}
		deps.Logger.Info(context.Background(), "Sentry has been successfully initialized.")
		return func() {
			ok := sentry.Flush(5 * time.Second)
			deps.Logger.Info(context.Background(), "Sentry events flushed.", dl.Entry("ok", ok))
		}
	}

	deps.Logger.Info(context.Background(), "Sentry is disabled.")
	return func() {}
}

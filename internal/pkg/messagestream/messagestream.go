package messagestream

import (
	"court-booking-service/config"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-amqp/pkg/amqp"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"go.uber.org/zap"
)

type Ampq struct {
	cfg    *config.MessageStreamConfig
	amqp   amqp.Config
	logger watermill.LoggerAdapter
}

func NewAmpq(cfg *config.MessageStreamConfig, logger *zap.Logger) *Ampq {
	uri := fmt.Sprintf("amqp://%s:%s@%s:%s/", cfg.Username, cfg.Password, cfg.Host, cfg.Port)
	amqpConfig := amqp.NewDurableQueueConfig(uri)
	if cfg.PrefetchCount > 0 {
		amqpConfig.Consume.Qos.PrefetchCount = cfg.PrefetchCount
	}
	return &Ampq{
		cfg:    cfg,
		amqp:   amqpConfig,
		logger: NewZapAdapter(logger),
	}
}

// NewPublisher returns a nil interface on failure so callers can test
// the result against nil.
func (a *Ampq) NewPublisher() (message.Publisher, error) {
	pub, err := amqp.NewPublisher(a.amqp, a.logger)
	if err != nil {
		return nil, err
	}
	return pub, nil
}

func (a *Ampq) NewSubscriber() (message.Subscriber, error) {
	sub, err := amqp.NewSubscriber(a.amqp, a.logger)
	if err != nil {
		return nil, err
	}
	return sub, nil
}

func (a *Ampq) Logger() watermill.LoggerAdapter {
	return a.logger
}

// NewRouter builds a router with a single consuming handler. Messages that
// still fail after the retries are moved to poisonTopic.
func NewRouter(
	pub message.Publisher,
	poisonTopic string,
	handlerName string,
	subscribeTopic string,
	sub message.Subscriber,
	maxRetries int,
	logger watermill.LoggerAdapter,
	handlerFunc message.NoPublishHandlerFunc,
) (*message.Router, error) {
	router, err := message.NewRouter(message.RouterConfig{}, logger)
	if err != nil {
		return nil, err
	}

	poisonQueue, err := middleware.PoisonQueue(pub, poisonTopic)
	if err != nil {
		return nil, err
	}

	router.AddMiddleware(
		middleware.Recoverer,
		poisonQueue,
		middleware.Retry{
			MaxRetries:      maxRetries,
			InitialInterval: 100 * time.Millisecond,
			Logger:          logger,
		}.Middleware,
	)

	router.AddNoPublisherHandler(handlerName, subscribeTopic, sub, handlerFunc)

	return router, nil
}

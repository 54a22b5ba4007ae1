package rabbitmq

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redsalud/agenda-engine/internal/config"
	"github.com/redsalud/agenda-engine/internal/core/ports/in"
	"github.com/redsalud/agenda-engine/internal/core/ports/out"
)

type ResourceType string

const (
	ResourceTypeProvider  ResourceType = "prestador"
	ResourceTypeAffiliate ResourceType = "afiliado"
)

// DirectoryChangeMessage is published by the admin API whenever a directory
// record is created, updated or deactivated.
type DirectoryChangeMessage struct {
	ID           uuid.UUID    `json:"id"`
	ResourceType ResourceType `json:"resourceType"`
	Action       string       `json:"action"`
}

// DirectoryListener drops cached directory records when the admin API
// reports a change. The engine recomputes everything on the next call, so
// invalidation is the only write this listener performs.
type DirectoryListener struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	useCase in.CacheInvalidationUseCase
	cfg     *config.Config
	logger  out.LoggerPort
}

func NewDirectoryListener(useCase in.CacheInvalidationUseCase, cfg *config.Config, logger out.LoggerPort) (*DirectoryListener, error) {
	if !cfg.RabbitMQ.Enabled {
		logger.Info("rabbitmq.disabled", out.LogFields{
			"message": "RabbitMQ is disabled, listener will not be started",
		})
		return nil, nil
	}

	conn, err := amqp.Dial(cfg.RabbitMQ.URL)
	if err != nil {
		logger.Error("rabbitmq.connect.failed", out.LogFields{
			"error": err.Error(),
			"url":   cfg.RabbitMQ.URL,
		})
		return nil, err
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		logger.Error("rabbitmq.channel.failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	return &DirectoryListener{
		conn:    conn,
		channel: channel,
		useCase: useCase,
		cfg:     cfg,
		logger:  logger,
	}, nil
}

func (l *DirectoryListener) Start(ctx context.Context) error {
	queue, err := l.channel.QueueDeclare(
		l.cfg.RabbitMQ.Queue,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		l.logger.Error("rabbitmq.queue_declare.failed", out.LogFields{
			"queue": l.cfg.RabbitMQ.Queue,
			"error": err.Error(),
		})
		return err
	}

	msgs, err := l.channel.Consume(
		queue.Name,
		"",    // consumer
		true,  // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		l.logger.Error("rabbitmq.consume.failed", out.LogFields{
			"queue": queue.Name,
			"error": err.Error(),
		})
		return err
	}

	l.logger.Info("rabbitmq.listener.started", out.LogFields{
		"queue": queue.Name,
	})

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					l.logger.Warn("rabbitmq.channel.closed", out.LogFields{})
					return
				}
				l.handleMessage(ctx, msg)
			}
		}
	}()

	return nil
}

func (l *DirectoryListener) handleMessage(ctx context.Context, msg amqp.Delivery) {
	var change DirectoryChangeMessage
	if err := json.Unmarshal(msg.Body, &change); err != nil {
		l.logger.Warn("rabbitmq.message.decode_failed", out.LogFields{
			"error": err.Error(),
		})
		return
	}

	l.logger.Debug("rabbitmq.message.received", out.LogFields{
		"resourceType": change.ResourceType,
		"id":           change.ID,
		"action":       change.Action,
	})

	switch change.ResourceType {
	case ResourceTypeProvider:
		l.useCase.InvalidateProvider(ctx, change.ID)
	case ResourceTypeAffiliate:
		l.useCase.InvalidateAffiliate(ctx, change.ID)
	default:
		l.logger.Warn("rabbitmq.message.unknown_resource", out.LogFields{
			"resourceType": change.ResourceType,
		})
	}
}

func (l *DirectoryListener) Stop() error {
	if err := l.channel.Close(); err != nil {
		return err
	}
	return l.conn.Close()
}

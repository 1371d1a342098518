package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/BearBump/DriverBox/config"
	"github.com/BearBump/DriverBox/internal/broker/kafka"
	"github.com/BearBump/DriverBox/internal/models"
	"github.com/BearBump/DriverBox/internal/services/ledger"
	"github.com/BearBump/DriverBox/internal/storage/pgdriver"
)

const (
	defaultSubmissionsTopic = "driverbox.submissions"
	defaultConsumerGroup    = "driver-worker"
)

// storage is what the worker needs from Postgres: the ledger sink plus the
// read side served over HTTP.
type storage interface {
	ledger.Repository
	Ping(ctx context.Context) error
	ListReceiptsByDelivery(ctx context.Context, deliveryID string) ([]*models.Receipt, error)
	ListOccurrencesByDelivery(ctx context.Context, deliveryID string) ([]*models.Occurrence, error)
	Close()
}

type consumer interface {
	ledger.Consumer
	Close() error
}

type workerFactories struct {
	newStorage  func(ctx context.Context, cfg *config.Config) (storage, error)
	newConsumer func(cfg *config.Config) consumer
}

func defaultWorkerFactories() workerFactories {
	return workerFactories{
		newStorage: func(ctx context.Context, cfg *config.Config) (storage, error) {
			st, err := openPostgresWithRetry(ctx, cfg.Database.ConnString(), 60*time.Second)
			if err != nil {
				return nil, err
			}
			return st, nil
		},
		newConsumer: func(cfg *config.Config) consumer {
			topic := cfg.Kafka.SubmissionsTopic
			if topic == "" {
				topic = defaultSubmissionsTopic
			}
			group := cfg.DriverBox.KafkaConsumerGroup
			if group == "" {
				group = defaultConsumerGroup
			}
			brokers := []string{fmt.Sprintf("%s:%d", cfg.Kafka.Host, cfg.Kafka.Port)}
			slog.Info("consuming submissions", "brokers", brokers, "topic", topic, "group", group)
			return kafka.NewConsumer(brokers, topic, group, int(cfg.Kafka.MaxMessageBytes))
		},
	}
}

func openPostgresWithRetry(ctx context.Context, connString string, wait time.Duration) (*pgdriver.Storage, error) {
	deadline := time.Now().Add(wait)
	var lastErr error
	for time.Now().Before(deadline) {
		st, err := pgdriver.New(ctx, connString)
		if err == nil {
			return st, nil
		}
		lastErr = err
		slog.Warn("postgres is not ready", "error", err.Error())
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(time.Second):
		}
	}
	return nil, fmt.Errorf("postgres is not ready after %s: %w", wait, lastErr)
}

// RunDriverWorker consumes submissions into Postgres and serves the ops endpoints.
func RunDriverWorker(ctx context.Context, cfg *config.Config, f workerFactories, httpOpts workerHTTPOpts) error {
	st, err := f.newStorage(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	c := f.newConsumer(cfg)
	defer func() { _ = c.Close() }()

	l := ledger.New(st)

	httpOpts.ledger = l
	httpOpts.storage = st
	httpOpts.cfg = cfg
	httpErr := make(chan error, 1)
	go func() {
		httpErr <- runWorkerHTTPServer(ctx, httpOpts)
	}()

	runErr := make(chan error, 1)
	go func() {
		slog.Info("driver worker started")
		runErr <- l.Run(ctx, c)
	}()

	select {
	case err := <-runErr:
		return err
	case err := <-httpErr:
		if err != nil && ctx.Err() == nil {
			return err
		}
		return <-runErr
	}
}

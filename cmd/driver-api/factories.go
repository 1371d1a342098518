package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/BearBump/DriverBox/config"
	"github.com/BearBump/DriverBox/internal/broker/kafka"
	"github.com/BearBump/DriverBox/internal/cache"
	"github.com/BearBump/DriverBox/internal/cache/rediscache"
	"github.com/BearBump/DriverBox/internal/capture"
	"github.com/BearBump/DriverBox/internal/deliveries"
	"github.com/BearBump/DriverBox/internal/integrations/camera/fake"
	"github.com/BearBump/DriverBox/internal/integrations/camera/snapshothttp"
	"github.com/BearBump/DriverBox/internal/services/driver"
	"github.com/BearBump/DriverBox/internal/services/submissions"
)

const (
	defaultSubmissionsTopic = "driverbox.submissions"
	defaultSubmitLatency    = 1500 * time.Millisecond
)

type apiFactories struct {
	newStore      func(cfg *config.Config) (*deliveries.Store, error)
	newCamera     func(cfg *config.Config) capture.Camera
	newCache      func(cfg *config.Config) cache.BytesCache
	newSubmitters func(cfg *config.Config) (f driver.SubmitterFactory, closeFn func())
}

func defaultAPIFactories() apiFactories {
	return apiFactories{
		newStore: func(cfg *config.Config) (*deliveries.Store, error) {
			if cfg.DriverBox.SeedPath == "" {
				return deliveries.NewDefault(), nil
			}
			return deliveries.LoadFile(cfg.DriverBox.SeedPath)
		},
		newCamera: func(cfg *config.Config) capture.Camera {
			// snapshot: сетевая камера с GET /snapshot, иначе генерируем кадры локально
			if cfg.DriverBox.CameraMode == "snapshot" && cfg.DriverBox.CameraBaseURL != "" {
				return snapshothttp.New(cfg.DriverBox.CameraBaseURL, cfg.DriverBox.CameraAPIKey)
			}
			return fake.New("driverbox")
		},
		newCache: func(cfg *config.Config) cache.BytesCache {
			if cfg.Redis.Host == "" {
				return nil
			}
			return rediscache.New(fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port), "driverbox:")
		},
		newSubmitters: func(cfg *config.Config) (driver.SubmitterFactory, func()) {
			if cfg.DriverBox.SubmitMode == "kafka" {
				topic := cfg.Kafka.SubmissionsTopic
				if topic == "" {
					topic = defaultSubmissionsTopic
				}
				brokers := []string{fmt.Sprintf("%s:%d", cfg.Kafka.Host, cfg.Kafka.Port)}
				ensureSubmissionsTopic(brokers[0], topic, cfg.Kafka.MaxMessageBytes)
				producer := kafka.NewProducer(brokers, cfg.Kafka.MaxMessageBytes)
				var limiter cache.Limiter
				if cfg.Redis.Host != "" {
					limiter = rediscache.NewRateLimiter(fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port))
				}
				limit := int64(cfg.DriverBox.SubmitRateLimitPerMinute)
				slog.Info("submissions go to kafka", "topic", topic, "rate_limit_per_minute", limit)
				return func(driverID string) driver.Submitter {
					return submissions.NewPublisher(producer, limiter, topic, driverID, limit)
				}, func() { _ = producer.Close() }
			}

			latency := time.Duration(cfg.DriverBox.SubmitLatencyMillis) * time.Millisecond
			if latency <= 0 {
				latency = defaultSubmitLatency
			}
			sim := submissions.NewSimulated(latency)
			return func(string) driver.Submitter { return sim }, nil
		},
	}
}

// ensureSubmissionsTopic создаёт топик с увеличенным max.message.bytes,
// иначе broker отбросит occurrence с фотографиями. Ошибка не фатальна.
func ensureSubmissionsTopic(broker, topic string, maxMessageBytes int64) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := kafka.EnsureTopic(ctx, broker, topic, maxMessageBytes); err != nil {
		slog.Warn("submissions topic not ensured", "topic", topic, "error", err.Error())
	}
}

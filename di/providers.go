package di

import (
	"context"
	"net/http"
	"slices"

	"dinebook/config"
	"dinebook/infras/amqp"
	"dinebook/infras/kafka"
	"dinebook/infras/otel"
	"dinebook/infras/postgres"
	"dinebook/shared/constant"
	"dinebook/shared/notifier"
	transport "dinebook/transport/http"
)

// ProvideHub accepts websocket origins the CORS policy accepts.
func ProvideHub(cfg *config.Config) *notifier.Hub {
	corsConfig := cfg.App.CORS

	return notifier.NewHub(func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" || !corsConfig.Enable {
			return true
		}

		return slices.Contains(corsConfig.AllowedOrigins, constant.Asterix) || slices.Contains(corsConfig.AllowedOrigins, origin)
	})
}

// ProvideKafka returns nil when the Kafka sink is disabled.
func ProvideKafka(cfg *config.Config) kafka.Client {
	if !cfg.Kafka.Enable || len(cfg.Kafka.Brokers) == 0 {
		return nil
	}

	return kafka.New(cfg)
}

// ProvideAMQP returns nil when the AMQP sink is disabled.
func ProvideAMQP(cfg *config.Config) amqp.Publisher {
	if !cfg.AMQP.Enable {
		return nil
	}

	return amqp.New(cfg)
}

func ProvideNotifier(cfg *config.Config, ot otel.Otel, metrics otel.Metrics, hub *notifier.Hub, kafkaClient kafka.Client, publisher amqp.Publisher) *notifier.Fanout {
	sinks := []notifier.Sink{hub}

	if kafkaClient != nil {
		sinks = append(sinks, notifier.NewKafkaSink(kafkaClient, cfg.Kafka.Topic))
	}

	if publisher != nil {
		sinks = append(sinks, notifier.NewAMQPSink(publisher))
	}

	return notifier.NewFanout(ot, metrics, sinks...)
}

// ProvideCleanups orders shutdown: subscribers first, then in-flight
// deliveries, then the brokers, tracing and finally the database.
func ProvideCleanups(
	conn *postgres.Connection,
	ot otel.Otel,
	fanout *notifier.Fanout,
	hub *notifier.Hub,
	kafkaClient kafka.Client,
	publisher amqp.Publisher,
) transport.Cleanups {
	cleanups := transport.Cleanups{
		func(context.Context) error {
			hub.Close()

			return nil
		},
		func(ctx context.Context) error {
			fanout.Wait(ctx)

			return nil
		},
	}

	if kafkaClient != nil {
		cleanups = append(cleanups, func(context.Context) error { return kafkaClient.Close() })
	}

	if publisher != nil {
		cleanups = append(cleanups, func(context.Context) error { return publisher.Close() })
	}

	return append(cleanups,
		ot.Shutdown,
		func(context.Context) error {
			conn.Close()

			return nil
		},
	)
}

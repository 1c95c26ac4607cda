package notifier

import (
	"context"
	"dinebook/infras/amqp"
	"dinebook/infras/kafka"
	"fmt"
)

// KafkaSink writes each message to one topic, keyed by Message.Key.
type KafkaSink struct {
	client kafka.Client
	topic  string
}

func NewKafkaSink(client kafka.Client, topic string) *KafkaSink {
	return &KafkaSink{client: client, topic: topic}
}

func (s *KafkaSink) Name() string {
	return "kafka"
}

func (s *KafkaSink) Deliver(ctx context.Context, msg Message) error {
	err := s.client.SendMessages(ctx, s.topic, kafka.Message{Key: msg.Key(), Value: msg})
	if err != nil {
		return fmt.Errorf("failed to deliver %s to kafka topic %s: %w", msg.Event, s.topic, err)
	}

	return nil
}

// AMQPSink publishes each message to the configured RabbitMQ queue with the
// event name as message type.
type AMQPSink struct {
	publisher amqp.Publisher
}

func NewAMQPSink(publisher amqp.Publisher) *AMQPSink {
	return &AMQPSink{publisher: publisher}
}

func (s *AMQPSink) Name() string {
	return "amqp"
}

func (s *AMQPSink) Deliver(ctx context.Context, msg Message) error {
	if err := s.publisher.Publish(ctx, string(msg.Event), msg); err != nil {
		return fmt.Errorf("failed to deliver %s to amqp: %w", msg.Event, err)
	}

	return nil
}

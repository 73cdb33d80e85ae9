package event

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"

	"github.com/khoahotran/portfolio-generator/internal/application/service"
	"github.com/khoahotran/portfolio-generator/internal/config"
	"github.com/khoahotran/portfolio-generator/pkg/logger"
)

// messageWriter is the part of *kafka.Writer the queue uses.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaDeployQueue struct {
	writer messageWriter
	topic  string
	logger logger.Logger
}

func NewKafkaDeployQueue(cfg config.Config, log logger.Logger) (*KafkaDeployQueue, error) {
	brokers := cfg.Kafka.Brokers
	if len(brokers) == 0 {
		return nil, fmt.Errorf("config Kafka brokers not found")
	}

	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  cfg.Kafka.DeployTopic,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
	}

	log.Info("Initialize Kafka deploy producer successfully.")
	return &KafkaDeployQueue{writer: writer, topic: cfg.Kafka.DeployTopic, logger: log}, nil
}

func (q *KafkaDeployQueue) Enqueue(ctx context.Context, job service.DeployJob) error {
	value, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal deploy job: %w", err)
	}
	err = q.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(job.SessionID.String()),
		Value: value,
	})
	if err != nil {
		return fmt.Errorf("publish deploy job to %s: %w", q.topic, err)
	}
	return nil
}

func (q *KafkaDeployQueue) Close() error {
	q.logger.Info("Closed Kafka deploy producer")
	return q.writer.Close()
}

// NewDeployConsumer builds the consumer-group reader used by the worker.
func NewDeployConsumer(cfg config.Config) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Kafka.Brokers,
		Topic:    cfg.Kafka.DeployTopic,
		GroupID:  cfg.Kafka.GroupID,
		MinBytes: 1,
		MaxBytes: 10e6,
	})
}

// DecodeDeployJob parses a message produced by Enqueue.
func DecodeDeployJob(msg kafka.Message) (service.DeployJob, error) {
	var job service.DeployJob
	if err := json.Unmarshal(msg.Value, &job); err != nil {
		return job, fmt.Errorf("unmarshal deploy job: %w", err)
	}
	return job, nil
}

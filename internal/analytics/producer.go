package analytics

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/rocketscienceinc/alphagames-backend/internal/entity"
)

const (
	EventSessionCreated = "session_created"
	EventMovePlayed     = "move_played"
	EventGameFinished   = "game_finished"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Event struct {
	Event     string          `json:"event"`
	Payload   *entity.Session `json:"payload"`
	Winner    string          `json:"winner,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// Producer publishes game events to kafka. A nil Producer is valid and publishes nothing.
type Producer struct {
	logger *slog.Logger
	writer messageWriter
	now    func() time.Time
}

// NewProducer returns nil when no brokers or topic are configured. Writes are
// asynchronous so publishing never waits on the brokers.
func NewProducer(logger *slog.Logger, brokers []string, topic string) *Producer {
	if len(brokers) == 0 || topic == "" {
		return nil
	}

	log := logger.With("component", "analytics")
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
		Async:                  true,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				log.Error("kafka publish failed", "messages", len(messages), "error", err)
			}
		},
	}

	return newProducer(log, writer)
}

func newProducer(logger *slog.Logger, writer messageWriter) *Producer {
	return &Producer{
		logger: logger,
		writer: writer,
		now:    time.Now,
	}
}

func (that *Producer) Publish(ctx context.Context, event string, session *entity.Session) {
	if that == nil || that.writer == nil {
		return
	}

	body, err := json.Marshal(Event{
		Event:     event,
		Payload:   session,
		Winner:    session.Winner(),
		Timestamp: that.now().UTC(),
	})
	if err != nil {
		that.logger.Error("failed to marshal event", "event", event, "error", err)
		return
	}

	// sessions are keyed by id so all events of a session land on one partition
	err = that.writer.WriteMessages(ctx, kafka.Message{Key: []byte(session.ID), Value: body})
	if err != nil {
		that.logger.Error("kafka publish failed", "event", event, "error", err)
	}
}

// SessionChanged maps session changes to analytics events.
func (that *Producer) SessionChanged(ctx context.Context, event entity.SessionEvent) {
	switch event.Action {
	case entity.ActionCreated:
		that.Publish(ctx, EventSessionCreated, event.Session)
	case entity.ActionMove, entity.ActionComputer:
		that.Publish(ctx, EventMovePlayed, event.Session)
	}

	if event.Finished {
		that.Publish(ctx, EventGameFinished, event.Session)
	}
}

func (that *Producer) Close() error {
	if that == nil || that.writer == nil {
		return nil
	}

	return that.writer.Close()
}

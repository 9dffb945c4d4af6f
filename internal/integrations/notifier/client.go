package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
)

const publishTimeout = 5 * time.Second

// MessageWriter отправщик сообщений (*kafka.Writer)
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client публикует события о записях в Kafka
// Публикация асинхронная: ошибки только логируются и не влияют на вызывающего
type Client struct {
	writer MessageWriter
	topic  string
	log    Logger
	now    func() time.Time
	wg     sync.WaitGroup
}

// NewKafkaWriter создает writer для топика событий
func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: 50 * time.Millisecond,
	}
}

// NewClient создает клиента уведомлений; при writer == nil события отбрасываются
func NewClient(writer MessageWriter, topic string, log Logger) *Client {
	return &Client{
		writer: writer,
		topic:  topic,
		log:    log,
		now:    time.Now,
	}
}

// Notify отправляет событие в фоне
func (c *Client) Notify(ctx context.Context, event Event) {
	if c == nil || c.writer == nil {
		return
	}

	if event.EventID == "" {
		event.EventID = uuid.NewString()
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = c.now().UTC()
	}

	// Событие публикуется после ответа клиенту, поэтому отмена запроса не должна его прерывать
	pubCtx := context.WithoutCancel(ctx)

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()

		ctx, cancel := context.WithTimeout(pubCtx, publishTimeout)
		defer cancel()

		if err := c.Publish(ctx, event); err != nil {
			c.log.Error("Notifier: event=%s type=%s appointment=%d: %v",
				event.EventID, event.EventType, event.AppointmentID, err)
		}
	}()
}

// Publish синхронно отправляет событие
func (c *Client) Publish(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncode, err)
	}

	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(event.AppointmentID, 10)),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_id", Value: []byte(event.EventID)},
			{Key: "event_type", Value: []byte(event.EventType)},
		},
	}
	msg.Headers = injectTraceHeaders(ctx, msg.Headers)

	if err := c.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("%w: %w", ErrPublish, err)
	}

	c.log.Info("Notifier: published event=%s type=%s appointment=%d", event.EventID, event.EventType, event.AppointmentID)
	return nil
}

// Close дожидается фоновых публикаций и закрывает writer
func (c *Client) Close() error {
	if c == nil || c.writer == nil {
		return nil
	}
	c.wg.Wait()
	return c.writer.Close()
}

func injectTraceHeaders(ctx context.Context, headers []kafka.Header) []kafka.Header {
	carrier := &headerCarrier{headers: headers}
	otel.GetTextMapPropagator().Inject(ctx, carrier)
	return carrier.headers
}

type headerCarrier struct {
	headers []kafka.Header
}

func (c *headerCarrier) Get(key string) string {
	for _, h := range c.headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func (c *headerCarrier) Set(key, value string) {
	for i, h := range c.headers {
		if h.Key == key {
			c.headers[i].Value = []byte(value)
			return
		}
	}
	c.headers = append(c.headers, kafka.Header{Key: key, Value: []byte(value)})
}

func (c *headerCarrier) Keys() []string {
	keys := make([]string, 0, len(c.headers))
	for _, h := range c.headers {
		keys = append(keys, h.Key)
	}
	return keys
}

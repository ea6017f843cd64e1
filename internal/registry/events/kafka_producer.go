package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/pittisunilkumar3/talent-spark-registry/internal/registry/models"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

var jsonMarshal = json.Marshal

type EventType string

const (
	LocationCreated   EventType = "registry_location_created"
	LocationUpdated   EventType = "registry_location_updated"
	LocationDeleted   EventType = "registry_location_deleted"
	DepartmentCreated EventType = "registry_department_created"
	DepartmentUpdated EventType = "registry_department_updated"
	DepartmentDeleted EventType = "registry_department_deleted"
	EmployeeCreated   EventType = "registry_employee_created"
	EmployeeUpdated   EventType = "registry_employee_updated"
	EmployeeDeleted   EventType = "registry_employee_deleted"
	// EmployeeStatusChanged is emitted for the status convenience update.
	EmployeeStatusChanged EventType = "registry_employee_status_changed"
)

// Event is the change notification published for every successful registry
// mutation. Exactly one of Location/Department/Employee is set, matching the
// mutated kind. For a location deletion, RemovedDepartments carries the
// departments removed by the cascade, since employees referencing them are
// intentionally left pointing at the old ids.
type Event struct {
	ID         string             `json:"id"`
	Type       EventType          `json:"type"`
	EntityID   string             `json:"entity_id"`
	OccurredAt time.Time          `json:"occurred_at"`
	Location   *models.Location   `json:"location,omitempty"`
	Department *models.Department `json:"department,omitempty"`
	Employee   *models.Employee   `json:"employee,omitempty"`

	RemovedDepartments []models.Department `json:"removed_departments,omitempty"`
}

type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Producer struct {
	writer    KafkaWriter // Use interface instead of concrete type
	events    chan Event
	logger    *zap.Logger
	closeChan chan struct{}
}

func NewProducer(brokers []string, logger *zap.Logger, topic string) (*Producer, error) {
	// Create topic if it doesn't exist
	conn, err := kafka.Dial("tcp", brokers[0])
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	topicConfigs := []kafka.TopicConfig{
		{
			Topic:             topic,
			NumPartitions:     3,
			ReplicationFactor: 1,
		},
	}

	err = conn.CreateTopics(topicConfigs...)
	if err != nil {
		logger.Warn("failed to create topic (may already exist)", zap.Error(err))
	}
	p := &Producer{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Balancer: &kafka.LeastBytes{},
			Topic:    topic,
		},
		events:    make(chan Event, 1000), // Buffered channel
		logger:    logger.Named("kafka_producer"),
		closeChan: make(chan struct{}),
	}

	go p.eventLoop()
	return p, nil
}

// Produce enqueues an event for asynchronous publication. The envelope id
// and timestamp are assigned here; when the queue is full the event is
// dropped with a warning rather than blocking a registry write.
func (p *Producer) Produce(event Event) {
	event.ID = uuid.New().String()
	event.OccurredAt = time.Now().UTC()
	select {
	case p.events <- event:
	default:
		p.logger.Warn("Kafka producer queue full, dropping event",
			zap.String("event_type", string(event.Type)),
			zap.String("entity_id", event.EntityID),
		)
	}
}

func (p *Producer) eventLoop() {
	for {
		select {
		case event := <-p.events:
			p.sendEvent(context.Background(), event)
		case <-p.closeChan:
			return
		}
	}
}

func (p *Producer) sendEvent(ctx context.Context, event Event) {
	value, err := jsonMarshal(event)
	if err != nil {
		p.logger.Error("Failed to serialize event",
			zap.Error(err),
			zap.String("entity_id", event.EntityID),
		)
		return
	}
	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.EntityID),
		Value: value,
	})
	if err != nil {
		p.logger.Error("Failed to produce event",
			zap.Error(err),
			zap.String("event_type", string(event.Type)),
			zap.String("entity_id", event.EntityID),
		)
		return
	}
}

func (p *Producer) Close() {
	close(p.closeChan)
	if err := p.writer.Close(); err != nil {
		p.logger.Error("Failed to close Kafka writer", zap.Error(err))
	}
}

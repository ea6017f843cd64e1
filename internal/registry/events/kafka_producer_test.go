package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pittisunilkumar3/talent-spark-registry/internal/registry/models"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

// MockKafkaWriter implements kafka.Writer for testing
type MockKafkaWriter struct {
	mock.Mock
}

func (m *MockKafkaWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	args := m.Called(ctx, msgs)
	return args.Error(0)
}

func (m *MockKafkaWriter) Close() error {
	args := m.Called()
	return args.Error(0)
}

func newTestProducer(t *testing.T, writer KafkaWriter) *Producer {
	t.Helper()
	return &Producer{
		writer:    writer,
		events:    make(chan Event, 1000),
		logger:    zaptest.NewLogger(t).Named("kafka_producer"),
		closeChan: make(chan struct{}),
	}
}

func TestProducer_Produce(t *testing.T) {
	t.Run("successful produce", func(t *testing.T) {
		producer := newTestProducer(t, new(MockKafkaWriter))

		producer.Produce(Event{
			Type:     LocationCreated,
			EntityID: "loc-1",
			Location: &models.Location{ID: "loc-1", Name: "Miami"},
		})

		assert.Equal(t, 1, len(producer.events))
		queued := <-producer.events
		assert.NotEmpty(t, queued.ID)
		assert.False(t, queued.OccurredAt.IsZero())
	})

	t.Run("dropped event when queue full", func(t *testing.T) {
		core, recorded := observer.New(zap.WarnLevel)
		producer := newTestProducer(t, new(MockKafkaWriter))
		producer.logger = zap.New(core)
		producer.events = make(chan Event, 1) // Small buffer for test

		event := Event{Type: EmployeeCreated, EntityID: "emp-1"}

		// Fill the channel
		producer.Produce(event)
		producer.Produce(event) // This should be dropped

		// Check logs
		assert.Equal(t, 1, recorded.FilterMessage("Kafka producer queue full, dropping event").Len())
	})
}

func TestProducer_SendEvent(t *testing.T) {
	mockWriter := new(MockKafkaWriter)
	producer := newTestProducer(t, mockWriter)

	t.Run("successful send", func(t *testing.T) {
		mockWriter.On("WriteMessages", mock.Anything, mock.Anything).Return(nil)

		event := Event{
			Type:     DepartmentDeleted,
			EntityID: "dept-1",
			Department: &models.Department{
				ID:         "dept-1",
				Name:       "Marketing",
				LocationID: "loc-1",
			},
		}
		producer.sendEvent(context.Background(), event)

		value, err := jsonMarshal(event)
		assert.NoError(t, err)
		mockWriter.AssertCalled(t, "WriteMessages", mock.Anything, []kafka.Message{
			{
				Key:   []byte("dept-1"),
				Value: value,
			},
		})
	})

	t.Run("serialization error", func(t *testing.T) {
		core, recorded := observer.New(zap.ErrorLevel)
		producer.logger = zap.New(core)

		// Mock JSON marshaling to force error
		oldMarshal := jsonMarshal
		jsonMarshal = func(_ interface{}) ([]byte, error) {
			return nil, errors.New("mock marshal error")
		}
		defer func() { jsonMarshal = oldMarshal }()

		producer.sendEvent(context.Background(), Event{Type: LocationUpdated, EntityID: "loc-1"})

		// Verify error logging
		assert.Equal(t, 1, recorded.FilterMessage("Failed to serialize event").Len())
		assert.Equal(t, 1, recorded.FilterField(zap.String("entity_id", "loc-1")).Len())
	})

	t.Run("write error", func(t *testing.T) {
		core, recorded := observer.New(zap.ErrorLevel)
		producer.logger = zap.New(core)
		mockWriter.ExpectedCalls = nil
		mockWriter.On("WriteMessages", mock.Anything, mock.Anything).Return(errors.New("kafka error"))

		producer.sendEvent(context.Background(), Event{Type: EmployeeStatusChanged, EntityID: "emp-1"})

		assert.Equal(t, 1, recorded.FilterMessage("Failed to produce event").Len())
	})
}

func TestProducer_Close(t *testing.T) {
	mockWriter := new(MockKafkaWriter)
	mockWriter.On("Close").Return(nil)

	producer := newTestProducer(t, mockWriter)

	producer.Close()

	// Verify close channel is closed
	select {
	case <-producer.closeChan:
	default:
		t.Error("closeChan not closed")
	}

	mockWriter.AssertCalled(t, "Close")
}

func TestProducer_EventLoop(t *testing.T) {
	mockWriter := new(MockKafkaWriter)
	mockWriter.On("WriteMessages", mock.Anything, mock.Anything).Return(nil)

	producer := newTestProducer(t, mockWriter)
	producer.events = make(chan Event, 1)

	// Start event loop
	go producer.eventLoop()

	// Send event
	producer.events <- Event{Type: EmployeeUpdated, EntityID: "emp-1"}

	// Give time for processing
	time.Sleep(100 * time.Millisecond)

	mockWriter.AssertCalled(t, "WriteMessages", mock.Anything, mock.Anything)
}

//go:build integration

package messaging

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"github.com/twmb/franz-go/pkg/kgo"

	"github.com/UNIZAR-30249-2025-GRUPO3/Back-end-sub000/internal/domain"
	dErrors "github.com/UNIZAR-30249-2025-GRUPO3/Back-end-sub000/pkg/domain-errors"
	"github.com/UNIZAR-30249-2025-GRUPO3/Back-end-sub000/pkg/testutil/containers"
)

const (
	testRequestTopic = "reservas.requests"
	testReplyTopic   = "reservas.replies"
)

type ResponderSuite struct {
	suite.Suite

	responder *Responder
	producer  *kgo.Client
	consumer  *kgo.Client
	cancelRun context.CancelFunc
	runDone   chan struct{}
}

func TestResponderSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(ResponderSuite))
}

func (s *ResponderSuite) SetupSuite() {
	redpanda := containers.NewRedpandaContainer(s.T())
	ctx := context.Background()

	responder, err := NewResponder(ctx, Config{
		Brokers:      redpanda.Brokers,
		Group:        "reservas-test",
		RequestTopic: testRequestTopic,
		ReplyTopic:   testReplyTopic,
		Logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	s.Require().NoError(err)
	s.responder = responder

	Bind(responder, testServices(s.T()))

	runCtx, cancel := context.WithCancel(ctx)
	s.cancelRun = cancel
	s.runDone = make(chan struct{})
	go func() {
		defer close(s.runDone)
		_ = responder.Run(runCtx)
	}()

	s.producer, err = kgo.NewClient(kgo.SeedBrokers(redpanda.Brokers...))
	s.Require().NoError(err)

	s.consumer, err = kgo.NewClient(
		kgo.SeedBrokers(redpanda.Brokers...),
		kgo.ConsumeTopics(testReplyTopic),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	s.Require().NoError(err)
}

func (s *ResponderSuite) TearDownSuite() {
	if s.cancelRun != nil {
		s.cancelRun()
	}
	if s.responder != nil {
		s.responder.Close()
	}
	if s.runDone != nil {
		select {
		case <-s.runDone:
		case <-time.After(5 * time.Second):
			s.T().Log("responder did not stop in time")
		}
	}
	if s.producer != nil {
		s.producer.Close()
	}
	if s.consumer != nil {
		s.consumer.Close()
	}
}

// roundTrip produces a request and waits for the reply carrying the same
// correlation id as its record key.
func (s *ResponderSuite) roundTrip(req Request) Response {
	s.T().Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	value, err := json.Marshal(req)
	s.Require().NoError(err)
	results := s.producer.ProduceSync(ctx, &kgo.Record{
		Topic: testRequestTopic,
		Value: value,
	})
	s.Require().NoError(results.FirstErr())

	for {
		fetches := s.consumer.PollFetches(ctx)
		s.Require().NoError(ctx.Err(), "timed out waiting for reply %s", req.CorrelationID)
		var found *Response
		fetches.EachRecord(func(record *kgo.Record) {
			if found != nil || string(record.Key) != req.CorrelationID {
				return
			}
			var resp Response
			s.Require().NoError(json.Unmarshal(record.Value, &resp))
			found = &resp
		})
		if found != nil {
			return *found
		}
	}
}

func (s *ResponderSuite) TestGetBuildingOverKafka() {
	resp := s.roundTrip(Request{
		CorrelationID: uuid.NewString(),
		Action:        "building.get",
	})

	s.Require().Nil(resp.Error)
	s.Equal("building.get", resp.Action)

	var config domain.BuildingConfig
	s.Require().NoError(json.Unmarshal(resp.Payload, &config))
	s.Equal(100.0, config.MaxOccupancyPercentage)
}

func (s *ResponderSuite) TestCreateReservationOverKafka() {
	payload, err := json.Marshal(map[string]any{
		"space_ids":        []string{"space-kafka-1"},
		"usage_type":       "docencia",
		"max_attendees":    10,
		"start_time":       time.Date(2025, 5, 12, 10, 0, 0, 0, time.UTC),
		"duration_minutes": 60,
		"category":         "aula",
	})
	s.Require().NoError(err)

	resp := s.roundTrip(Request{
		CorrelationID: uuid.NewString(),
		Action:        "reservations.create",
		UserID:        "user-1",
		Payload:       payload,
	})

	s.Require().Nil(resp.Error)
	var created domain.Reservation
	s.Require().NoError(json.Unmarshal(resp.Payload, &created))
	s.Equal("user-1", created.UserID)
	s.NotEmpty(created.ID)

	// A second request for the same window is refused with a conflict.
	conflict := s.roundTrip(Request{
		CorrelationID: uuid.NewString(),
		Action:        "reservations.create",
		UserID:        "user-2",
		Payload:       payload,
	})
	s.Require().NotNil(conflict.Error)
	s.Equal(string(dErrors.CodeConflict), conflict.Error.Code)
}

func (s *ResponderSuite) TestUnknownActionOverKafka() {
	resp := s.roundTrip(Request{
		CorrelationID: uuid.NewString(),
		Action:        "spaces.explode",
	})

	s.Require().NotNil(resp.Error)
	s.Equal(string(dErrors.CodeBadRequest), resp.Error.Code)
	s.Contains(resp.Error.Description, "spaces.explode")
}

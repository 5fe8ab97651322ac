package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"

	dErrors "github.com/UNIZAR-30249-2025-GRUPO3/Back-end-sub000/pkg/domain-errors"
	"github.com/UNIZAR-30249-2025-GRUPO3/Back-end-sub000/pkg/requestcontext"
)

// Handler executes one action. The returned value is JSON-marshalled into the
// reply payload.
type Handler func(ctx context.Context, req Request) (any, error)

// Responder consumes the request topic and produces one reply per request.
// Replies carry the request's correlation id as the record key so callers can
// match them.
type Responder struct {
	client       *kgo.Client
	requestTopic string
	replyTopic   string
	handlers     map[string]Handler
	logger       *slog.Logger
}

// Config holds the responder's wiring.
type Config struct {
	Brokers      []string
	Group        string
	RequestTopic string
	ReplyTopic   string
	Logger       *slog.Logger
}

// NewResponder connects to the brokers and ensures both topics exist.
func NewResponder(ctx context.Context, cfg Config) (*Responder, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(cfg.Brokers...),
		kgo.ConsumerGroup(cfg.Group),
		kgo.ConsumeTopics(cfg.RequestTopic),
	)
	if err != nil {
		return nil, fmt.Errorf("connect kafka: %w", err)
	}
	if err := ensureTopics(ctx, client, cfg.RequestTopic, cfg.ReplyTopic); err != nil {
		client.Close()
		return nil, err
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Responder{
		client:       client,
		requestTopic: cfg.RequestTopic,
		replyTopic:   cfg.ReplyTopic,
		handlers:     make(map[string]Handler),
		logger:       logger,
	}, nil
}

func ensureTopics(ctx context.Context, client *kgo.Client, topics ...string) error {
	admin := kadm.NewClient(client)
	responses, err := admin.CreateTopics(ctx, 1, 1, nil, topics...)
	if err != nil {
		return fmt.Errorf("create topics: %w", err)
	}
	for _, resp := range responses {
		if resp.Err != nil && !errors.Is(resp.Err, kerr.TopicAlreadyExists) {
			return fmt.Errorf("create topic %s: %w", resp.Topic, resp.Err)
		}
	}
	return nil
}

// Handle registers the handler for an action. Not safe to call after Run.
func (r *Responder) Handle(action string, h Handler) {
	r.handlers[action] = h
}

// Run consumes requests until the context is cancelled.
func (r *Responder) Run(ctx context.Context) error {
	for {
		fetches := r.client.PollFetches(ctx)
		if fetches.IsClientClosed() {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		fetches.EachError(func(topic string, partition int32, err error) {
			r.logger.ErrorContext(ctx, "fetch error",
				"topic", topic, "partition", partition, "error", err)
		})
		fetches.EachRecord(func(record *kgo.Record) {
			r.process(ctx, record)
		})
	}
}

// Close shuts the underlying client down, flushing pending replies.
func (r *Responder) Close() {
	r.client.Close()
}

func (r *Responder) process(ctx context.Context, record *kgo.Record) {
	var req Request
	if err := json.Unmarshal(record.Value, &req); err != nil {
		r.logger.WarnContext(ctx, "dropping malformed request", "error", err)
		return
	}
	if req.UserID != "" {
		ctx = requestcontext.WithUserID(ctx, req.UserID)
	}

	resp := Response{CorrelationID: req.CorrelationID, Action: req.Action}
	handler, ok := r.handlers[req.Action]
	if !ok {
		resp.Error = &ErrorBody{
			Code:        string(dErrors.CodeBadRequest),
			Description: "unknown action: " + req.Action,
		}
	} else if result, err := handler(ctx, req); err != nil {
		resp.Error = toErrorBody(err)
		r.logger.InfoContext(ctx, "request refused",
			"action", req.Action, "correlation_id", req.CorrelationID, "error", err)
	} else if payload, err := json.Marshal(result); err != nil {
		resp.Error = &ErrorBody{Code: string(dErrors.CodeInternal)}
		r.logger.ErrorContext(ctx, "failed to marshal reply",
			"action", req.Action, "error", err)
	} else {
		resp.Payload = payload
	}

	r.reply(ctx, req.CorrelationID, resp)
}

func (r *Responder) reply(ctx context.Context, correlationID string, resp Response) {
	value, err := json.Marshal(resp)
	if err != nil {
		r.logger.ErrorContext(ctx, "failed to marshal response envelope", "error", err)
		return
	}
	r.client.Produce(ctx, &kgo.Record{
		Topic: r.replyTopic,
		Key:   []byte(correlationID),
		Value: value,
	}, func(_ *kgo.Record, err error) {
		if err != nil {
			r.logger.ErrorContext(ctx, "failed to produce reply",
				"correlation_id", correlationID, "error", err)
		}
	})
}

// toErrorBody mirrors the HTTP layer's translation: internal errors omit the
// description so storage details never leak.
func toErrorBody(err error) *ErrorBody {
	code := dErrors.GetCode(err)
	body := &ErrorBody{Code: string(code)}
	if code != dErrors.CodeInternal {
		body.Description = dErrors.Message(err)
	}
	return body
}

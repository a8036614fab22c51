// Package events fans new leads out to downstream consumers over a Redis
// stream.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/pbelx/ibm-hackathon/internal/models"
)

const EventLeadCreated = "lead.created"

// Publisher receives every lead after it has been written to the log.
type Publisher interface {
	PublishLead(ctx context.Context, lead models.Lead) error
}

type StreamPublisher struct {
	Client *redis.Client
	Stream string
	MaxLen int64
}

// NewStreamPublisher connects using a redis:// URL.
func NewStreamPublisher(redisURL, stream string) (*StreamPublisher, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	if stream == "" {
		stream = "dispatch:leads"
	}
	return &StreamPublisher{Client: redis.NewClient(opt), Stream: stream, MaxLen: 10000}, nil
}

func (p *StreamPublisher) PublishLead(ctx context.Context, lead models.Lead) error {
	if p == nil || p.Client == nil {
		return errors.New("redis client not configured")
	}
	payload, err := json.Marshal(lead)
	if err != nil {
		return err
	}
	tech := ""
	if lead.TechAssigned != nil {
		tech = *lead.TechAssigned
	}
	return p.Client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.Stream,
		MaxLen: p.MaxLen,
		Approx: true,
		Values: map[string]any{
			"type":          EventLeadCreated,
			"lead_id":       lead.ID,
			"priority":      lead.Priority,
			"zone_id":       lead.ZoneID,
			"tech_assigned": tech,
			"quote_max":     strconv.FormatInt(lead.QuoteMax, 10),
			"payload":       string(payload),
		},
	}).Err()
}

func (p *StreamPublisher) Ping(ctx context.Context) error {
	if p == nil || p.Client == nil {
		return errors.New("redis client not configured")
	}
	return p.Client.Ping(ctx).Err()
}

func (p *StreamPublisher) Close() {
	if p != nil && p.Client != nil {
		_ = p.Client.Close()
	}
}

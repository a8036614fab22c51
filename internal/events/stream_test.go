package events

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/alicebob/miniredis/v2"

	"github.com/pbelx/ibm-hackathon/internal/models"
)

func TestStreamPublisherAppendsLead(t *testing.T) {
	mr := miniredis.RunT(t)
	pub, err := NewStreamPublisher("redis://"+mr.Addr(), "")
	if err != nil {
		t.Fatalf("new publisher: %v", err)
	}
	defer pub.Close()

	ctx := context.Background()
	if err := pub.Ping(ctx); err != nil {
		t.Fatalf("ping: %v", err)
	}

	tech := "TECH-001"
	lead := models.Lead{ID: "lead-1", Priority: models.PriorityCritical, ZoneID: "A", TechAssigned: &tech, QuoteMax: 1650000}
	if err := pub.PublishLead(ctx, lead); err != nil {
		t.Fatalf("publish: %v", err)
	}

	msgs, err := pub.Client.XRange(ctx, "dispatch:leads", "-", "+").Result()
	if err != nil {
		t.Fatalf("xrange: %v", err)
	}
	if len(msgs) != 1 {
		t.Fatalf("expected 1 stream entry, got %d", len(msgs))
	}
	values := msgs[0].Values
	if values["type"] != EventLeadCreated || values["lead_id"] != "lead-1" || values["tech_assigned"] != "TECH-001" || values["quote_max"] != "1650000" {
		t.Fatalf("unexpected values: %+v", values)
	}
	var decoded models.Lead
	if err := json.Unmarshal([]byte(values["payload"].(string)), &decoded); err != nil {
		t.Fatalf("payload: %v", err)
	}
	if decoded.ID != "lead-1" {
		t.Fatalf("unexpected payload lead: %+v", decoded)
	}
}

func TestNilPublisher(t *testing.T) {
	var pub *StreamPublisher
	if err := pub.PublishLead(context.Background(), models.Lead{}); err == nil {
		t.Fatalf("expected error from nil publisher")
	}
}

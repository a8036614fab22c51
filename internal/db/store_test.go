package db

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/pbelx/ibm-hackathon/internal/models"
)

func TestMemoryStoreStampsAndOrders(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	base := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
	for i, msg := range []string{"first", "second", "third"} {
		if _, err := s.InsertLead(ctx, models.Lead{CustomerMessage: msg, CreatedAt: base.Add(time.Duration(i) * time.Minute)}); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}
	stamped, _ := s.InsertLead(ctx, models.Lead{CustomerMessage: "stamped"})
	if stamped.ID == "" || stamped.CreatedAt.IsZero() || stamped.Status != models.LeadStatusNew {
		t.Fatalf("expected id, timestamp and status, got %+v", stamped)
	}

	leads, err := s.ListRecentLeads(ctx, 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(leads) != 2 || leads[0].CustomerMessage != "stamped" || leads[1].CustomerMessage != "third" {
		t.Fatalf("unexpected order: %+v", leads)
	}
}

func TestMemoryStoreEqualTimestampsNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	at := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
	for _, msg := range []string{"older", "middle", "newer"} {
		if _, err := s.InsertLead(ctx, models.Lead{CustomerMessage: msg, CreatedAt: at}); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}

	leads, err := s.ListRecentLeads(ctx, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	got := []string{leads[0].CustomerMessage, leads[1].CustomerMessage, leads[2].CustomerMessage}
	if got[0] != "newer" || got[1] != "middle" || got[2] != "older" {
		t.Fatalf("unexpected order: %v", got)
	}
}

func TestClampLimit(t *testing.T) {
	for in, want := range map[int]int{0: 50, -1: 50, 10: 10, 200: 200, 201: 50} {
		if got := clampLimit(in); got != want {
			t.Fatalf("clampLimit(%d) = %d, want %d", in, got, want)
		}
	}
}

func TestPostgresStoreIntegration(t *testing.T) {
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	store, err := New(ctx, url)
	if err != nil {
		t.Fatalf("db connect: %v", err)
	}
	defer store.Close()
	if err := store.EnsureSchema(ctx); err != nil {
		t.Fatalf("schema: %v", err)
	}

	tech := "TECH-001"
	inserted, err := store.InsertLead(ctx, models.Lead{
		CustomerMessage: "integration", Intent: models.IntentMaintenance, Priority: models.PriorityNormal,
		RevenueTier: models.RevenueLow, TerritoryCode: "EBB-B-001", ZoneID: "B", ServiceTier: "standard",
		TechAssigned: &tech, QuoteMin: 50000, QuoteMax: 250000,
	})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	leads, err := store.ListRecentLeads(ctx, 5)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(leads) == 0 || leads[0].ID != inserted.ID {
		t.Fatalf("expected newest lead first, got %+v", leads)
	}
}

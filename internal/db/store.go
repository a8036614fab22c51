package db

import (
	"context"
	_ "embed"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pbelx/ibm-hackathon/internal/models"
)

//go:embed schema.sql
var schemaSQL string

const MaxListLimit = 200

// LeadStore is the append-only log of submitted requests.
type LeadStore interface {
	InsertLead(ctx context.Context, lead models.Lead) (models.Lead, error)
	ListRecentLeads(ctx context.Context, limit int) ([]models.Lead, error)
	Ping(ctx context.Context) error
	Close()
}

type Store struct {
	Pool *pgxpool.Pool
}

func New(ctx context.Context, databaseURL string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &Store{Pool: pool}, nil
}

func (s *Store) Close() {
	s.Pool.Close()
}

func (s *Store) Ping(ctx context.Context) error {
	return s.Pool.Ping(ctx)
}

// EnsureSchema creates the leads table when it does not exist yet.
func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := s.Pool.Exec(ctx, schemaSQL)
	return err
}

// InsertLead assigns the id and creation time and appends the record.
func (s *Store) InsertLead(ctx context.Context, lead models.Lead) (models.Lead, error) {
	lead = stampLead(lead)
	_, err := s.Pool.Exec(ctx, `
		INSERT INTO leads (id, created_at, customer_message, intent, priority, revenue_tier,
			territory_code, zone_id, service_tier, tech_assigned, quote_min, quote_max, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
	`, lead.ID, lead.CreatedAt, lead.CustomerMessage, lead.Intent, lead.Priority, lead.RevenueTier,
		lead.TerritoryCode, lead.ZoneID, lead.ServiceTier, lead.TechAssigned, lead.QuoteMin, lead.QuoteMax, lead.Status)
	if err != nil {
		return models.Lead{}, err
	}
	return lead, nil
}

func (s *Store) ListRecentLeads(ctx context.Context, limit int) ([]models.Lead, error) {
	rows, err := s.Pool.Query(ctx, `
		SELECT id, created_at, customer_message, intent, priority, revenue_tier,
			territory_code, zone_id, service_tier, tech_assigned, quote_min, quote_max, status
		FROM leads
		ORDER BY created_at DESC
		LIMIT $1
	`, clampLimit(limit))
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Lead, error) {
		var l models.Lead
		err := row.Scan(&l.ID, &l.CreatedAt, &l.CustomerMessage, &l.Intent, &l.Priority, &l.RevenueTier,
			&l.TerritoryCode, &l.ZoneID, &l.ServiceTier, &l.TechAssigned, &l.QuoteMin, &l.QuoteMax, &l.Status)
		return l, err
	})
}

func stampLead(lead models.Lead) models.Lead {
	if lead.ID == "" {
		lead.ID = uuid.NewString()
	}
	if lead.CreatedAt.IsZero() {
		lead.CreatedAt = time.Now().UTC()
	}
	if lead.Status == "" {
		lead.Status = models.LeadStatusNew
	}
	return lead
}

func clampLimit(limit int) int {
	if limit <= 0 || limit > MaxListLimit {
		return 50
	}
	return limit
}

package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/pbelx/ibm-hackathon/internal/db"
	"github.com/pbelx/ibm-hackathon/internal/events"
	"github.com/pbelx/ibm-hackathon/internal/metrics"
	"github.com/pbelx/ibm-hackathon/internal/models"
)

const (
	leadResultOK      = "ok"
	leadResultError   = "error"
	leadResultDropped = "dropped"
)

// LeadRecorder writes leads off the request path. Enqueue never blocks; a
// full queue drops the lead.
type LeadRecorder struct {
	Store        db.LeadStore
	Publisher    events.Publisher
	Metrics      *metrics.Metrics
	Logger       zerolog.Logger
	WriteTimeout time.Duration

	mu     sync.RWMutex
	closed bool
	queue  chan models.Lead
	wg     sync.WaitGroup
}

func NewLeadRecorder(store db.LeadStore, publisher events.Publisher, buffer int, logger zerolog.Logger, m *metrics.Metrics) *LeadRecorder {
	if buffer <= 0 {
		buffer = 256
	}
	return &LeadRecorder{
		Store:        store,
		Publisher:    publisher,
		Metrics:      m,
		Logger:       logger,
		WriteTimeout: 5 * time.Second,
		queue:        make(chan models.Lead, buffer),
	}
}

func (r *LeadRecorder) Start() {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		for lead := range r.queue {
			r.write(lead)
		}
	}()
}

func (r *LeadRecorder) Enqueue(lead models.Lead) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.closed {
		r.count(leadResultDropped)
		return false
	}
	select {
	case r.queue <- lead:
		return true
	default:
		r.Logger.Error().Str("priority", lead.Priority).Msg("lead queue full, dropping lead")
		r.count(leadResultDropped)
		return false
	}
}

// Close stops accepting leads and waits for queued ones to be written.
func (r *LeadRecorder) Close() {
	r.mu.Lock()
	if !r.closed {
		r.closed = true
		close(r.queue)
	}
	r.mu.Unlock()
	r.wg.Wait()
}

func (r *LeadRecorder) write(lead models.Lead) {
	ctx, cancel := context.WithTimeout(context.Background(), r.WriteTimeout)
	defer cancel()

	saved, err := r.Store.InsertLead(ctx, lead)
	if err != nil {
		r.Logger.Error().Err(err).Msg("lead write failed")
		r.count(leadResultError)
		return
	}
	r.count(leadResultOK)

	if r.Publisher == nil {
		return
	}
	if err := r.Publisher.PublishLead(ctx, saved); err != nil {
		r.Logger.Warn().Err(err).Str("lead_id", saved.ID).Msg("lead publish failed")
	}
}

func (r *LeadRecorder) count(result string) {
	if r.Metrics != nil {
		r.Metrics.LeadWrites.WithLabelValues(result).Inc()
	}
}

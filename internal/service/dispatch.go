package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/pbelx/ibm-hackathon/internal/ai"
	"github.com/pbelx/ibm-hackathon/internal/dispatch"
	"github.com/pbelx/ibm-hackathon/internal/metrics"
	"github.com/pbelx/ibm-hackathon/internal/models"
)

const (
	collaboratorAnalyzer  = "analyzer"
	collaboratorGenerator = "generator"
)

// DispatchService wraps the decision pipeline with the best-effort
// collaborators and the lead log. None of the collaborators can fail a
// request.
type DispatchService struct {
	Refs      *dispatch.References
	Analyzer  ai.Analyzer
	Generator ai.Generator
	Recorder  *LeadRecorder
	Metrics   *metrics.Metrics
	Logger    zerolog.Logger

	AnalyzeTimeout  time.Duration
	GenerateTimeout time.Duration
}

// ChatInput is one customer message. When Signals is non-nil the caller
// already ran text analysis and the analyzer is skipped.
type ChatInput struct {
	Message string
	Signals *ai.Analysis
}

func (s *DispatchService) Chat(ctx context.Context, in ChatInput) dispatch.Response {
	sig, nluErr := s.signals(ctx, in)

	a := dispatch.Assess(s.Refs, sig)
	resp := dispatch.Compose(a)
	if sig.HasExtracted() {
		resp.Metadata.NLUKeywords = sig.Keywords()
		resp.Metadata.NLUEntities = sig.Entities()
	}
	if nluErr != nil {
		resp.Metadata.NLUError = nluErr.Error()
	}

	if s.Generator != nil {
		s.generate(ctx, in.Message, &resp)
	}

	s.observe(a)
	if s.Recorder != nil {
		s.Recorder.Enqueue(LeadFromResponse(in.Message, resp))
	}
	return resp
}

// Assess runs the pipeline on caller-supplied signals only.
func (s *DispatchService) Assess(message string, keywords, entities []string) dispatch.Assessment {
	return dispatch.Assess(s.Refs, dispatch.FuseSignals(message, keywords, entities))
}

// ProbeGenerator sends a canned request to the generation service.
func (s *DispatchService) ProbeGenerator(ctx context.Context) (string, error) {
	if s.Generator == nil {
		return "", ai.ErrNotConfigured
	}
	ctx, cancel := withTimeout(ctx, s.GenerateTimeout)
	defer cancel()
	return s.Generator.Generate(ctx, ai.GenerationRequest{
		UserMessage: "Test message for the generation service.",
		Metadata:    dispatch.Metadata{Priority: models.PriorityNormal},
	})
}

func (s *DispatchService) signals(ctx context.Context, in ChatInput) (dispatch.Signals, error) {
	if in.Signals != nil {
		return dispatch.FuseSignals(in.Message, in.Signals.Keywords, in.Signals.Entities), nil
	}
	if s.Analyzer == nil {
		return dispatch.FuseSignals(in.Message, nil, nil), nil
	}

	actx, cancel := withTimeout(ctx, s.AnalyzeTimeout)
	defer cancel()
	res, latencyMs, err := s.Analyzer.Analyze(actx, in.Message)
	s.observeCollaborator(collaboratorAnalyzer, latencyMs, err)
	if err != nil {
		s.Logger.Warn().Err(err).Msg("text analysis failed, continuing without signals")
		return dispatch.FuseSignals(in.Message, nil, nil), err
	}
	return dispatch.FuseSignals(in.Message, res.Keywords, res.Entities), nil
}

func (s *DispatchService) generate(ctx context.Context, message string, resp *dispatch.Response) {
	gctx, cancel := withTimeout(ctx, s.GenerateTimeout)
	defer cancel()

	start := time.Now()
	text, err := s.Generator.Generate(gctx, ai.GenerationRequest{UserMessage: message, Metadata: resp.Metadata})
	s.observeCollaborator(collaboratorGenerator, time.Since(start).Milliseconds(), err)

	used := err == nil
	resp.Metadata.GeneratorUsed = &used
	if err != nil {
		s.Logger.Warn().Err(err).Msg("message generation failed, using template")
		resp.Metadata.GeneratorError = err.Error()
		return
	}
	if resp.Metadata.SafetyAlert && !strings.Contains(strings.ToLower(text), "switch off") {
		text = dispatch.SafetySentence + " " + text
	}
	resp.AgentMessage = text
}

func (s *DispatchService) observe(a dispatch.Assessment) {
	if s.Metrics == nil {
		return
	}
	s.Metrics.Requests.WithLabelValues(a.Triage.Priority, a.Triage.Intent).Inc()
	s.Metrics.TechnicianMatches.WithLabelValues(a.Match.ReasonCode).Inc()
	if a.SafetyAlert {
		s.Metrics.SafetyAlerts.Inc()
	}
}

func (s *DispatchService) observeCollaborator(name string, latencyMs int64, err error) {
	if s.Metrics == nil {
		return
	}
	s.Metrics.CollaboratorLatencyMs.WithLabelValues(name).Observe(float64(latencyMs))
	if err != nil {
		s.Metrics.CollaboratorFailures.WithLabelValues(name).Inc()
	}
}

// LeadFromResponse flattens a response into the lead log record.
func LeadFromResponse(message string, resp dispatch.Response) models.Lead {
	m := resp.Metadata
	return models.Lead{
		CustomerMessage: message,
		Intent:          m.Intent,
		Priority:        m.Priority,
		RevenueTier:     m.RevenueTier,
		TerritoryCode:   m.TerritoryCode,
		ZoneID:          m.ZoneID,
		ServiceTier:     m.ServiceTier,
		TechAssigned:    m.TechAssigned,
		QuoteMin:        m.QuoteMin,
		QuoteMax:        m.QuoteMax,
		Status:          models.LeadStatusNew,
	}
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

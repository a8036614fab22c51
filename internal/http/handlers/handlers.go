package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/pbelx/ibm-hackathon/internal/ai"
	"github.com/pbelx/ibm-hackathon/internal/db"
	"github.com/pbelx/ibm-hackathon/internal/service"
)

type Handler struct {
	Service    *service.DispatchService
	Store      db.LeadStore
	Validator  *validator.Validate
	Logger     zerolog.Logger
	LeadsLimit int
}

type SignalsPayload struct {
	Keywords []string `json:"keywords" validate:"max=50,dive,max=200"`
	Entities []string `json:"entities" validate:"max=50,dive,max=200"`
}

type ChatRequest struct {
	Message string          `json:"message" validate:"max=4000"`
	WhenISO *string         `json:"when_iso,omitempty"`
	Channel *string         `json:"channel,omitempty" validate:"omitempty,max=32"`
	Signals *SignalsPayload `json:"signals,omitempty"`
}

type SkillRequest struct {
	Message     string   `json:"message" validate:"max=4000"`
	NLUKeywords []string `json:"nlu_keywords" validate:"max=50,dive,max=200"`
	NLUEntities []string `json:"nlu_entities" validate:"max=50,dive,max=200"`
}

type TriageResponse struct {
	Intent      string `json:"intent"`
	Priority    string `json:"priority"`
	RevenueTier string `json:"revenue_tier"`
}

type AssignResponse struct {
	TechID      *string `json:"tech_id"`
	ETAMinutes  int     `json:"eta_minutes"`
	ServiceTier string  `json:"service_tier"`
}

type QuoteResponse struct {
	QuoteMin int64  `json:"quote_min"`
	QuoteMax int64  `json:"quote_max"`
	Currency string `json:"currency"`
}

func (h *Handler) Healthz(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()
	if err := h.Store.Ping(ctx); err != nil {
		writeError(c, http.StatusServiceUnavailable, "DB_UNAVAILABLE", "Database unavailable", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// @Summary Triage a customer message
// @Description Classifies, routes, matches a technician and quotes one message
// @Tags dispatch
// @Accept json
// @Produce json
// @Param request body ChatRequest true "customer message"
// @Success 200 {object} dispatch.Response
// @Failure 400 {object} map[string]any
// @Router /api/chat [post]
func (h *Handler) Chat(c *gin.Context) {
	var req ChatRequest
	if !h.bind(c, &req) {
		return
	}

	in := service.ChatInput{Message: req.Message}
	if req.Signals != nil {
		in.Signals = &ai.Analysis{Keywords: req.Signals.Keywords, Entities: req.Signals.Entities}
	}
	c.JSON(http.StatusOK, h.Service.Chat(c.Request.Context(), in))
}

// @Summary Recent leads
// @Tags leads
// @Produce json
// @Param limit query int false "max records (1-200)"
// @Success 200 {array} models.Lead
// @Router /api/leads [get]
func (h *Handler) LeadsList(c *gin.Context) {
	limit := h.LeadsLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > db.MaxListLimit {
			writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "limit must be between 1 and 200", raw)
			return
		}
		limit = n
	}
	leads, err := h.Store.ListRecentLeads(c.Request.Context(), limit)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to list leads", err.Error())
		return
	}
	if leads == nil {
		c.JSON(http.StatusOK, []any{})
		return
	}
	c.JSON(http.StatusOK, leads)
}

// @Summary Triage only
// @Tags skills
// @Accept json
// @Produce json
// @Param request body SkillRequest true "message and optional signals"
// @Success 200 {object} TriageResponse
// @Router /api/skill/triage [post]
func (h *Handler) SkillTriage(c *gin.Context) {
	var req SkillRequest
	if !h.bind(c, &req) {
		return
	}
	a := h.Service.Assess(req.Message, req.NLUKeywords, req.NLUEntities)
	c.JSON(http.StatusOK, TriageResponse{
		Intent:      a.Triage.Intent,
		Priority:    a.Triage.Priority,
		RevenueTier: a.Triage.RevenueTier,
	})
}

// @Summary Resolve territory only
// @Tags skills
// @Accept json
// @Produce json
// @Param request body SkillRequest true "message and optional signals"
// @Success 200 {object} models.Territory
// @Router /api/skill/resolve_territory [post]
func (h *Handler) SkillResolveTerritory(c *gin.Context) {
	var req SkillRequest
	if !h.bind(c, &req) {
		return
	}
	c.JSON(http.StatusOK, h.Service.Assess(req.Message, req.NLUKeywords, req.NLUEntities).Territory)
}

// @Summary Assign technician only
// @Tags skills
// @Accept json
// @Produce json
// @Param request body SkillRequest true "message and optional signals"
// @Success 200 {object} AssignResponse
// @Router /api/skill/assign_technician [post]
func (h *Handler) SkillAssignTechnician(c *gin.Context) {
	var req SkillRequest
	if !h.bind(c, &req) {
		return
	}
	a := h.Service.Assess(req.Message, req.NLUKeywords, req.NLUEntities)
	resp := AssignResponse{ETAMinutes: a.ETAMinutes, ServiceTier: a.Territory.ServiceTier}
	if a.Match.Found {
		id := a.Match.Technician.TechID
		resp.TechID = &id
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Quote only
// @Tags skills
// @Accept json
// @Produce json
// @Param request body SkillRequest true "message and optional signals"
// @Success 200 {object} QuoteResponse
// @Router /api/skill/calculate_quote [post]
func (h *Handler) SkillCalculateQuote(c *gin.Context) {
	var req SkillRequest
	if !h.bind(c, &req) {
		return
	}
	q := h.Service.Assess(req.Message, req.NLUKeywords, req.NLUEntities).Quote
	c.JSON(http.StatusOK, QuoteResponse{QuoteMin: q.Min, QuoteMax: q.Max, Currency: q.Currency})
}

// @Summary Probe the message generation service
// @Tags dispatch
// @Produce json
// @Success 200 {object} map[string]any
// @Router /api/generator/test [get]
func (h *Handler) GeneratorTest(c *gin.Context) {
	msg, err := h.Service.ProbeGenerator(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"status": "error", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": msg})
}

func (h *Handler) bind(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return false
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err.Error())
		return false
	}
	return true
}

func writeError(c *gin.Context, status int, code string, message string, details any) {
	c.JSON(status, gin.H{
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}

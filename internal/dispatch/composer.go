package dispatch

import (
	"fmt"
	"strings"

	"github.com/pbelx/ibm-hackathon/internal/models"
)

// SafetySentence opens every message for a CRITICAL request that mentions a
// hazard.
const SafetySentence = "If safe, switch off the unit and keep clear of smoke or sparks."

const (
	defaultTrafficPadding = 20
	zoneATravelMinutes    = 35
	otherTravelMinutes    = 25
)

var safetyTerms = []string{"smoke", "fire", "sparks", "gas"}

// References is the reference data shared read-only by every request.
type References struct {
	Zones  models.ZoneRegistry
	Roster models.TechnicianRoster
	Locale models.Locale
}

// Metadata is the structured bag returned next to the agent message. The
// trailing fields are annotations filled in by the service boundary.
type Metadata struct {
	Intent        string  `json:"intent"`
	Priority      string  `json:"priority"`
	RevenueTier   string  `json:"revenue_tier"`
	TerritoryCode string  `json:"territory_code"`
	ZoneID        string  `json:"zone_id"`
	ServiceTier   string  `json:"service_tier"`
	TechAssigned  *string `json:"tech_assigned"`
	ETAMinutes    int     `json:"eta_minutes"`
	QuoteMin      int64   `json:"quote_min"`
	QuoteMax      int64   `json:"quote_max"`
	Currency      string  `json:"currency"`
	SafetyAlert   bool    `json:"safety_alert"`

	NLUKeywords    []string `json:"nlu_keywords,omitempty"`
	NLUEntities    []string `json:"nlu_entities,omitempty"`
	NLUError       string   `json:"nlu_error,omitempty"`
	GeneratorUsed  *bool    `json:"generator_used,omitempty"`
	GeneratorError string   `json:"generator_error,omitempty"`
}

type TechCard struct {
	TechID     string   `json:"tech_id"`
	Name       string   `json:"name"`
	ETAMinutes int      `json:"eta_minutes"`
	PhotoURL   string   `json:"photo_url"`
	Skills     []string `json:"skills"`
}

type Response struct {
	AgentMessage string    `json:"agent_message"`
	Metadata     Metadata  `json:"metadata"`
	UITrigger    string    `json:"ui_trigger"`
	TechCard     *TechCard `json:"tech_card"`
}

// Assessment holds every intermediate fact of one pipeline run.
type Assessment struct {
	Signals       Signals
	Triage        models.Triage
	Territory     models.Territory
	RequiredSkill string
	Match         TechnicianMatch
	ETAMinutes    int
	Quote         models.Quote
	SafetyAlert   bool
}

// Assess runs the classification, resolution, matching and pricing stages.
func Assess(refs *References, sig Signals) Assessment {
	combined := sig.CombinedText()
	triage := Classify(sig, refs.Locale)
	territory := ResolveTerritory(combined, refs.Zones)
	skill := RequiredSkill(combined)
	hazard := containsAny(strings.ToLower(combined), safetyTerms)

	return Assessment{
		Signals:       sig,
		Triage:        triage,
		Territory:     territory,
		RequiredSkill: skill,
		Match:         MatchTechnician(skill, territory.ServiceTier, refs.Roster),
		ETAMinutes:    EstimateETA(territory.ZoneID, refs.Locale),
		Quote:         CalculateQuote(triage.Intent, triage.Priority, territory.Multiplier, refs.Locale.Currency),
		SafetyAlert:   triage.Priority == models.PriorityCritical && hazard,
	}
}

// Resolve is the whole pipeline for one message.
func Resolve(refs *References, sig Signals) Response {
	return Compose(Assess(refs, sig))
}

// EstimateETA is base travel for the zone plus the locale's traffic padding.
func EstimateETA(zoneID string, locale models.Locale) int {
	base, ok := locale.Travel.BaseMinutes[zoneID]
	if !ok {
		base = otherTravelMinutes
		if zoneID == overrideZoneID {
			base = zoneATravelMinutes
		}
	}
	padding := defaultTrafficPadding
	if locale.Traffic.DefaultPaddingMinutes != nil {
		padding = *locale.Traffic.DefaultPaddingMinutes
	}
	return base + padding
}

// Compose renders an assessment into the customer-facing response.
func Compose(a Assessment) Response {
	var tech *models.Technician
	if a.Match.Found {
		t := a.Match.Technician
		tech = &t
	}

	meta := Metadata{
		Intent:        a.Triage.Intent,
		Priority:      a.Triage.Priority,
		RevenueTier:   a.Triage.RevenueTier,
		TerritoryCode: a.Territory.TerritoryCode,
		ZoneID:        a.Territory.ZoneID,
		ServiceTier:   a.Territory.ServiceTier,
		ETAMinutes:    a.ETAMinutes,
		QuoteMin:      a.Quote.Min,
		QuoteMax:      a.Quote.Max,
		Currency:      a.Quote.Currency,
		SafetyAlert:   a.SafetyAlert,
	}
	if tech != nil {
		id := tech.TechID
		meta.TechAssigned = &id
	}

	resp := Response{
		AgentMessage: TemplateMessage(tech, a.ETAMinutes),
		Metadata:     meta,
		UITrigger:    models.TriggerNone,
	}

	switch {
	case a.SafetyAlert:
		resp.AgentMessage = SafetySentence + " " + resp.AgentMessage
		resp.UITrigger = models.TriggerEmergencyBanner
	case tech != nil && a.Triage.Intent == models.IntentEmergencyRepair:
		resp.UITrigger = models.TriggerTechnicianCard
		resp.TechCard = &TechCard{
			TechID:     tech.TechID,
			Name:       tech.DisplayName,
			ETAMinutes: a.ETAMinutes,
			PhotoURL:   tech.PhotoURL,
			Skills:     append([]string{}, tech.Skills...),
		}
	}
	return resp
}

// TemplateMessage is the deterministic message used whenever no generated
// text is available.
func TemplateMessage(tech *models.Technician, etaMinutes int) string {
	name, location := "a technician", "your area"
	if tech != nil {
		if tech.DisplayName != "" {
			name = tech.DisplayName
		}
		if tech.BaseLocation.Name != "" {
			location = tech.BaseLocation.Name
		}
	}
	return fmt.Sprintf(
		"I understand. I am dispatching %s now. They are near %s and should arrive in about %d minutes. Please share a location pin or nearby landmark.",
		name, location, etaMinutes,
	)
}

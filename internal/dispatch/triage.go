package dispatch

import (
	"strings"

	"github.com/pbelx/ibm-hackathon/internal/models"
)

var (
	criticalTerms    = []string{"cold room", "server room", "warehouse", "export", "chiller", "compressor down"}
	maintenanceTerms = []string{"maintenance", "service", "clean", "tune-up", "inspection"}
	commercialTerms  = []string{"warehouse", "hotel", "export"}
)

const coldRoomKeyword = "cold room"

// Classify derives priority, then intent and revenue tier. Intent and revenue
// tier both read the priority, so the order here matters.
func Classify(sig Signals, locale models.Locale) models.Triage {
	text := strings.ToLower(sig.SignalText())
	priority := DetectPriority(sig, locale)
	return models.Triage{
		Priority:    priority,
		Intent:      DetectIntent(text, priority),
		RevenueTier: DetectRevenueTier(text, priority),
	}
}

// DetectPriority is CRITICAL when the signal text mentions a critical term.
// A second pass escalates when an extracted keyword exactly equals one of the
// locale's critical keywords or "cold room"; it only looks at keywords, so it
// never fires for messages without analysis output.
func DetectPriority(sig Signals, locale models.Locale) string {
	if containsAny(strings.ToLower(sig.SignalText()), criticalTerms) {
		return models.PriorityCritical
	}
	for _, kw := range sig.keywords {
		if kw == coldRoomKeyword {
			return models.PriorityCritical
		}
		for _, ck := range locale.CriticalKeywords {
			if kw == strings.ToLower(strings.TrimSpace(ck)) {
				return models.PriorityCritical
			}
		}
	}
	return models.PriorityNormal
}

func DetectIntent(text, priority string) string {
	switch {
	case priority == models.PriorityCritical:
		return models.IntentEmergencyRepair
	case containsAny(text, maintenanceTerms):
		return models.IntentMaintenance
	default:
		return models.IntentGeneralInquiry
	}
}

func DetectRevenueTier(text, priority string) string {
	if priority == models.PriorityCritical || containsAny(text, commercialTerms) {
		return models.RevenueHigh
	}
	return models.RevenueLow
}

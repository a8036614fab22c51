package dispatch

import (
	"strings"

	"github.com/pbelx/ibm-hackathon/internal/models"
)

var coldTerms = []string{"cold room", "chiller", "freezer"}

const (
	MatchExact      = "MATCHED_EXACT"
	MatchAvailable  = "MATCHED_AVAILABLE_ANY_SKILL"
	MatchRosterHead = "MATCHED_ROSTER_HEAD"
	MatchNoRoster   = "NO_TECHNICIANS"
)

// TechnicianMatch is the outcome of a roster lookup. A MatchRosterHead result
// may point at a busy or offline technician and is informational only.
type TechnicianMatch struct {
	Technician models.Technician
	Found      bool
	ReasonCode string
}

// RequiredSkill picks the skill tag for text, the same text the territory
// resolver reads.
func RequiredSkill(text string) string {
	if containsAny(strings.ToLower(text), coldTerms) {
		return models.SkillColdRoom
	}
	return models.SkillHVACAC
}

// MatchTechnician is a read-only scan of the roster in its configured order:
// available with skill and tier, then any available, then the first entry.
func MatchTechnician(skill, tier string, roster models.TechnicianRoster) TechnicianMatch {
	techs := roster.Technicians
	for _, t := range techs {
		if t.CurrentStatus == models.StatusAvailable && hasTag(t.Skills, skill) && hasTag(t.ServiceTiersAllowed, tier) {
			return TechnicianMatch{Technician: t, Found: true, ReasonCode: MatchExact}
		}
	}
	for _, t := range techs {
		if t.CurrentStatus == models.StatusAvailable {
			return TechnicianMatch{Technician: t, Found: true, ReasonCode: MatchAvailable}
		}
	}
	if len(techs) > 0 {
		return TechnicianMatch{Technician: techs[0], Found: true, ReasonCode: MatchRosterHead}
	}
	return TechnicianMatch{ReasonCode: MatchNoRoster}
}

func hasTag(tags []string, target string) bool {
	for _, t := range tags {
		if t == target {
			return true
		}
	}
	return false
}

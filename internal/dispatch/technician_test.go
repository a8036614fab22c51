package dispatch

import (
	"testing"

	"github.com/pbelx/ibm-hackathon/internal/models"
)

func TestRequiredSkill(t *testing.T) {
	if got := RequiredSkill("Our FREEZER is warm"); got != models.SkillColdRoom {
		t.Fatalf("expected cold_room, got %s", got)
	}
	if got := RequiredSkill("AC is noisy"); got != models.SkillHVACAC {
		t.Fatalf("expected hvac_ac, got %s", got)
	}
}

func TestMatchTechnicianExact(t *testing.T) {
	m := MatchTechnician(models.SkillColdRoom, "premium", testRoster())
	if !m.Found || m.Technician.TechID != "T-03" || m.ReasonCode != MatchExact {
		t.Fatalf("unexpected match: %+v", m)
	}
	m = MatchTechnician(models.SkillHVACAC, "standard", testRoster())
	if m.Technician.TechID != "T-02" || m.ReasonCode != MatchExact {
		t.Fatalf("expected first exact match in roster order, got %+v", m)
	}
}

func TestMatchTechnicianDegradesToAnyAvailable(t *testing.T) {
	m := MatchTechnician("plumbing", "premium", testRoster())
	if m.Technician.TechID != "T-02" || m.ReasonCode != MatchAvailable {
		t.Fatalf("expected first available technician, got %+v", m)
	}
}

func TestMatchTechnicianNoneAvailable(t *testing.T) {
	roster := testRoster()
	for i := range roster.Technicians {
		roster.Technicians[i].CurrentStatus = models.StatusOffline
	}
	m := MatchTechnician(models.SkillColdRoom, "premium", roster)
	if !m.Found || m.Technician.TechID != "T-01" || m.ReasonCode != MatchRosterHead {
		t.Fatalf("expected roster head, got %+v", m)
	}
}

func TestMatchTechnicianEmptyRoster(t *testing.T) {
	m := MatchTechnician(models.SkillColdRoom, "premium", models.TechnicianRoster{})
	if m.Found || m.Technician.TechID != "" || m.ReasonCode != MatchNoRoster {
		t.Fatalf("expected no technician, got %+v", m)
	}
}

func TestMatchTechnicianDoesNotMutateRoster(t *testing.T) {
	roster := testRoster()
	MatchTechnician(models.SkillColdRoom, "premium", roster)
	if roster.Technicians[2].CurrentStatus != models.StatusAvailable {
		t.Fatalf("matching must not reserve technicians")
	}
}

package refdata

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/pbelx/ibm-hackathon/internal/dispatch"
	"github.com/pbelx/ibm-hackathon/internal/models"
)

func TestLoadEmbeddedDefaults(t *testing.T) {
	refs, err := Load(Paths{})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	s := Summarize(refs)
	if s.Zones != 2 || s.Areas != 6 || s.Technicians != 4 || s.Available != 2 {
		t.Fatalf("unexpected summary: %+v", s)
	}
	if refs.Locale.Currency != "UGX" {
		t.Fatalf("unexpected currency: %s", refs.Locale.Currency)
	}
	if refs.Locale.Traffic.DefaultPaddingMinutes == nil || *refs.Locale.Traffic.DefaultPaddingMinutes != 20 {
		t.Fatalf("expected traffic padding 20")
	}

	got := dispatch.ResolveTerritory("Need help at the airport", refs.Zones)
	if got.TerritoryCode != "EBB-A-001" || got.ZoneID != "A" {
		t.Fatalf("unexpected territory: %+v", got)
	}
}

func TestLoadYAMLFileAndNormalize(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "territory.yaml")
	content := `zones:
  - zone_id: " B "
    service_tier: standard
    multiplier: 1
    areas:
      - territory_code: X-1
        keywords: ["  Town ", ""]
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	refs, err := Load(Paths{Territory: path})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	zone := refs.Zones.Zones[0]
	if zone.ZoneID != "B" {
		t.Fatalf("expected trimmed zone id, got %q", zone.ZoneID)
	}
	if len(zone.Areas[0].Keywords) != 1 || zone.Areas[0].Keywords[0] != "town" {
		t.Fatalf("unexpected keywords: %v", zone.Areas[0].Keywords)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(Paths{Roster: filepath.Join(t.TempDir(), "missing.json")}); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestValidateDuplicateTerritory(t *testing.T) {
	refs := &dispatch.References{
		Zones: models.ZoneRegistry{Zones: []models.Zone{
			{ZoneID: "A", Areas: []models.Area{{TerritoryCode: "X"}}},
			{ZoneID: "B", Areas: []models.Area{{TerritoryCode: "X"}}},
		}},
	}
	if err := Validate(refs); !errors.Is(err, ErrDuplicateTerritory) {
		t.Fatalf("expected duplicate territory error, got %v", err)
	}
}

func TestValidateDuplicateTechnician(t *testing.T) {
	refs := &dispatch.References{
		Roster: models.TechnicianRoster{Technicians: []models.Technician{{TechID: "T"}, {TechID: "T"}}},
	}
	if err := Validate(refs); !errors.Is(err, ErrDuplicateTechnician) {
		t.Fatalf("expected duplicate technician error, got %v", err)
	}
}

func TestValidateRejectsUnknownStatus(t *testing.T) {
	refs := &dispatch.References{
		Roster: models.TechnicianRoster{Technicians: []models.Technician{{TechID: "T", CurrentStatus: "sleeping"}}},
	}
	if err := Validate(refs); err == nil {
		t.Fatalf("expected validation error")
	}
}

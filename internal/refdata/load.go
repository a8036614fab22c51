// Package refdata loads the zone registry, technician roster and locale that
// every request reads. Files may be YAML or JSON; empty paths fall back to the
// embedded Entebbe dataset.
package refdata

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/pbelx/ibm-hackathon/internal/dispatch"
	"github.com/pbelx/ibm-hackathon/internal/models"
)

//go:embed data/*.json
var embedded embed.FS

const (
	defaultTerritory = "data/territory_entebbe.json"
	defaultRoster    = "data/technician_roster.json"
	defaultLocale    = "data/locale_entebbe.json"
)

type Paths struct {
	Territory string
	Roster    string
	Locale    string
}

// Load reads, normalizes and validates all three datasets.
func Load(p Paths) (*dispatch.References, error) {
	refs := &dispatch.References{}
	if err := decode(p.Territory, defaultTerritory, &refs.Zones); err != nil {
		return nil, fmt.Errorf("territory: %w", err)
	}
	if err := decode(p.Roster, defaultRoster, &refs.Roster); err != nil {
		return nil, fmt.Errorf("roster: %w", err)
	}
	if err := decode(p.Locale, defaultLocale, &refs.Locale); err != nil {
		return nil, fmt.Errorf("locale: %w", err)
	}
	normalize(refs)
	if err := Validate(refs); err != nil {
		return nil, err
	}
	return refs, nil
}

func decode(path, fallback string, out any) error {
	var (
		b   []byte
		err error
	)
	if strings.TrimSpace(path) == "" {
		b, err = embedded.ReadFile(fallback)
	} else {
		b, err = os.ReadFile(path)
	}
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(b, out); err != nil {
		return fmt.Errorf("parse %s: %w", displayName(path, fallback), err)
	}
	return nil
}

func displayName(path, fallback string) string {
	if path != "" {
		return path
	}
	return "embedded " + fallback
}

func normalize(refs *dispatch.References) {
	for zi := range refs.Zones.Zones {
		zone := &refs.Zones.Zones[zi]
		zone.ZoneID = strings.TrimSpace(zone.ZoneID)
		for ai := range zone.Areas {
			area := &zone.Areas[ai]
			area.TerritoryCode = strings.TrimSpace(area.TerritoryCode)
			kws := make([]string, 0, len(area.Keywords))
			for _, k := range area.Keywords {
				k = strings.ToLower(strings.TrimSpace(k))
				if k != "" {
					kws = append(kws, k)
				}
			}
			area.Keywords = kws
		}
	}
	for i := range refs.Roster.Technicians {
		t := &refs.Roster.Technicians[i]
		t.CurrentStatus = strings.ToLower(strings.TrimSpace(t.CurrentStatus))
	}
	refs.Locale.Currency = strings.ToUpper(strings.TrimSpace(refs.Locale.Currency))
}

var ErrDuplicateTerritory = errors.New("duplicate territory code")
var ErrDuplicateTechnician = errors.New("duplicate technician id")

// Validate checks struct constraints plus the cross-record invariants:
// territory codes and technician ids are unique.
func Validate(refs *dispatch.References) error {
	v := validator.New()
	if err := v.Struct(refs.Zones); err != nil {
		return fmt.Errorf("territory: %w", err)
	}
	if err := v.Struct(refs.Roster); err != nil {
		return fmt.Errorf("roster: %w", err)
	}
	if err := v.Struct(refs.Locale); err != nil {
		return fmt.Errorf("locale: %w", err)
	}

	codes := map[string]string{}
	for _, zone := range refs.Zones.Zones {
		for _, area := range zone.Areas {
			if prev, ok := codes[area.TerritoryCode]; ok {
				return fmt.Errorf("%w: %s in zones %s and %s", ErrDuplicateTerritory, area.TerritoryCode, prev, zone.ZoneID)
			}
			codes[area.TerritoryCode] = zone.ZoneID
		}
	}

	ids := map[string]struct{}{}
	for _, t := range refs.Roster.Technicians {
		if _, ok := ids[t.TechID]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateTechnician, t.TechID)
		}
		ids[t.TechID] = struct{}{}
	}
	return nil
}

// Summary is a short description of loaded data for startup logs.
type Summary struct {
	Zones       int
	Areas       int
	Technicians int
	Available   int
}

func Summarize(refs *dispatch.References) Summary {
	s := Summary{Zones: len(refs.Zones.Zones), Technicians: len(refs.Roster.Technicians)}
	for _, z := range refs.Zones.Zones {
		s.Areas += len(z.Areas)
	}
	for _, t := range refs.Roster.Technicians {
		if t.CurrentStatus == models.StatusAvailable {
			s.Available++
		}
	}
	return s
}

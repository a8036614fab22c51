package dispatch

import (
	"strings"

	"github.com/pbelx/ibm-hackathon/internal/models"
)

const (
	overrideZoneID        = "A"
	overrideTerritoryCode = "EBB-A-001"
	fallbackZoneID        = "B"

	UnknownTerritory = "UNKNOWN"
)

// ResolveTerritory maps text onto the registry. Rules apply in order: the
// airport / cold-room override, the best keyword score (first area wins ties),
// the first area of zone B, and finally a fixed UNKNOWN territory.
func ResolveTerritory(text string, reg models.ZoneRegistry) models.Territory {
	text = strings.ToLower(text)

	if matchesOverride(text) {
		if t, ok := findArea(reg, overrideZoneID, overrideTerritoryCode); ok {
			return t
		}
	}

	var (
		bestZone  *models.Zone
		bestArea  *models.Area
		bestScore = -1
	)
	for zi := range reg.Zones {
		zone := &reg.Zones[zi]
		for ai := range zone.Areas {
			area := &zone.Areas[ai]
			score := scoreArea(text, area.Keywords)
			if score > bestScore {
				bestScore = score
				bestZone, bestArea = zone, area
			}
		}
	}
	if bestArea != nil && bestScore > 0 {
		return territoryOf(*bestZone, bestArea.TerritoryCode)
	}

	for _, zone := range reg.Zones {
		if zone.ZoneID != fallbackZoneID {
			continue
		}
		if len(zone.Areas) == 0 {
			return territoryOf(zone, UnknownTerritory)
		}
		return territoryOf(zone, zone.Areas[0].TerritoryCode)
	}

	return models.Territory{
		TerritoryCode: UnknownTerritory,
		ZoneID:        fallbackZoneID,
		ServiceTier:   "standard",
		Multiplier:    1.0,
	}
}

func matchesOverride(text string) bool {
	if strings.Contains(text, "airport") {
		return true
	}
	return strings.Contains(text, "cold room") &&
		(strings.Contains(text, "warehouse") || strings.Contains(text, "flower"))
}

func findArea(reg models.ZoneRegistry, zoneID, code string) (models.Territory, bool) {
	for _, zone := range reg.Zones {
		if zone.ZoneID != zoneID {
			continue
		}
		for _, area := range zone.Areas {
			if area.TerritoryCode == code {
				return territoryOf(zone, code), true
			}
		}
	}
	return models.Territory{}, false
}

func scoreArea(text string, keywords []string) int {
	score := 0
	for _, k := range keywords {
		if k != "" && strings.Contains(text, k) {
			score++
		}
	}
	return score
}

func territoryOf(zone models.Zone, code string) models.Territory {
	multiplier := zone.Multiplier
	if multiplier <= 0 {
		multiplier = 1.0
	}
	return models.Territory{
		TerritoryCode: code,
		ZoneID:        zone.ZoneID,
		ServiceTier:   zone.ServiceTier,
		Multiplier:    multiplier,
	}
}

package dispatch

import "github.com/pbelx/ibm-hackathon/internal/models"

func testZones() models.ZoneRegistry {
	return models.ZoneRegistry{
		Zones: []models.Zone{
			{
				ZoneID:      "A",
				ServiceTier: "premium",
				Multiplier:  1.25,
				Areas: []models.Area{
					{TerritoryCode: "EBB-A-001", Keywords: []string{"airport", "kitende"}},
					{TerritoryCode: "EBB-A-002", Keywords: []string{"state house", "golf course"}},
				},
			},
			{
				ZoneID:      "B",
				ServiceTier: "standard",
				Multiplier:  1.0,
				Areas: []models.Area{
					{TerritoryCode: "EBB-B-001", Keywords: []string{"kitoro", "market"}},
					{TerritoryCode: "EBB-B-002", Keywords: []string{"nakiwogo", "landing site"}},
				},
			},
		},
	}
}

func testRoster() models.TechnicianRoster {
	return models.TechnicianRoster{
		Technicians: []models.Technician{
			{
				TechID:              "T-01",
				DisplayName:         "Sam Okello",
				CurrentStatus:       models.StatusBusy,
				Skills:              []string{models.SkillColdRoom, models.SkillHVACAC},
				ServiceTiersAllowed: []string{"premium", "standard"},
				BaseLocation:        models.BaseLocation{Name: "Kitoro"},
			},
			{
				TechID:              "T-02",
				DisplayName:         "Grace Namata",
				CurrentStatus:       models.StatusAvailable,
				Skills:              []string{models.SkillHVACAC},
				ServiceTiersAllowed: []string{"standard"},
				BaseLocation:        models.BaseLocation{Name: "Nakiwogo"},
				PhotoURL:            "https://example.test/t02.png",
			},
			{
				TechID:              "T-03",
				DisplayName:         "Peter Mugisha",
				CurrentStatus:       models.StatusAvailable,
				Skills:              []string{models.SkillColdRoom, models.SkillHVACAC},
				ServiceTiersAllowed: []string{"premium", "standard"},
				BaseLocation:        models.BaseLocation{Name: "Airport Road"},
				PhotoURL:            "https://example.test/t03.png",
			},
		},
	}
}

func testRefs() *References {
	return &References{
		Zones:  testZones(),
		Roster: testRoster(),
		Locale: models.Locale{Currency: "UGX"},
	}
}

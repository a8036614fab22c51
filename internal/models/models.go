package models

import "time"

const (
	PriorityCritical = "CRITICAL"
	PriorityNormal   = "NORMAL"

	IntentEmergencyRepair = "emergency_repair"
	IntentMaintenance     = "maintenance"
	IntentGeneralInquiry  = "general_inquiry"

	RevenueHigh = "high"
	RevenueLow  = "low"

	StatusAvailable = "available"
	StatusBusy      = "busy"
	StatusOffline   = "offline"

	SkillColdRoom = "cold_room"
	SkillHVACAC   = "hvac_ac"

	TriggerEmergencyBanner = "show_emergency_banner"
	TriggerTechnicianCard  = "show_technician_card"
	TriggerNone            = "none"

	LeadStatusNew = "new"
)

type Area struct {
	TerritoryCode string   `json:"territory_code" yaml:"territory_code" validate:"required"`
	Name          string   `json:"name,omitempty" yaml:"name"`
	Keywords      []string `json:"keywords" yaml:"keywords"`
}

type Zone struct {
	ZoneID      string  `json:"zone_id" yaml:"zone_id" validate:"required"`
	ServiceTier string  `json:"service_tier" yaml:"service_tier"`
	Multiplier  float64 `json:"multiplier" yaml:"multiplier" validate:"gte=0"`
	Areas       []Area  `json:"areas" yaml:"areas" validate:"dive"`
}

type ZoneRegistry struct {
	Region string `json:"region,omitempty" yaml:"region"`
	Zones  []Zone `json:"zones" yaml:"zones" validate:"dive"`
}

type BaseLocation struct {
	Name string `json:"name" yaml:"name"`
}

type Technician struct {
	TechID              string       `json:"tech_id" yaml:"tech_id" validate:"required"`
	DisplayName         string       `json:"display_name" yaml:"display_name"`
	CurrentStatus       string       `json:"current_status" yaml:"current_status" validate:"omitempty,oneof=available busy offline"`
	Skills              []string     `json:"skills" yaml:"skills"`
	ServiceTiersAllowed []string     `json:"service_tiers_allowed" yaml:"service_tiers_allowed"`
	BaseLocation        BaseLocation `json:"base_location" yaml:"base_location"`
	PhotoURL            string       `json:"photo_url" yaml:"photo_url"`
}

type TechnicianRoster struct {
	Technicians []Technician `json:"technicians" yaml:"technicians" validate:"dive"`
}

type Traffic struct {
	DefaultPaddingMinutes *int `json:"default_padding_minutes,omitempty" yaml:"default_padding_minutes"`
}

type Travel struct {
	BaseMinutes map[string]int `json:"base_minutes,omitempty" yaml:"base_minutes"`
}

type Locale struct {
	City             string   `json:"city,omitempty" yaml:"city"`
	Currency         string   `json:"currency" yaml:"currency" validate:"omitempty,len=3"`
	Traffic          Traffic  `json:"traffic" yaml:"traffic"`
	Travel           Travel   `json:"travel" yaml:"travel"`
	CriticalKeywords []string `json:"critical_keywords,omitempty" yaml:"critical_keywords"`
}

type Triage struct {
	Priority    string `json:"priority"`
	Intent      string `json:"intent"`
	RevenueTier string `json:"revenue_tier"`
}

type Territory struct {
	TerritoryCode string  `json:"territory_code"`
	ZoneID        string  `json:"zone_id"`
	ServiceTier   string  `json:"service_tier"`
	Multiplier    float64 `json:"multiplier"`
}

type Quote struct {
	Min      int64  `json:"min"`
	Max      int64  `json:"max"`
	Currency string `json:"currency"`
}

type Lead struct {
	ID              string    `json:"id"`
	CreatedAt       time.Time `json:"created_at"`
	CustomerMessage string    `json:"customer_message"`
	Intent          string    `json:"intent"`
	Priority        string    `json:"priority"`
	RevenueTier     string    `json:"revenue_tier"`
	TerritoryCode   string    `json:"territory_code"`
	ZoneID          string    `json:"zone_id"`
	ServiceTier     string    `json:"service_tier"`
	TechAssigned    *string   `json:"tech_assigned"`
	QuoteMin        int64     `json:"quote_min"`
	QuoteMax        int64     `json:"quote_max"`
	Status          string    `json:"status"`
}

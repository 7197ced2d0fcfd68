package recommendations

import "time"

// TransportHabits is the weekly/annual transport usage portion of a footprint.
type TransportHabits struct {
	CarKm                float64 `json:"carKm"`
	PublicKm             float64 `json:"publicKm"`
	DomesticFlights      float64 `json:"domesticFlights"`
	InternationalFlights float64 `json:"internationalFlights"`
}

// FoodHabits is the weekly diet portion of a footprint.
type FoodHabits struct {
	RedMeat    float64 `json:"redMeat"`
	WhiteMeat  float64 `json:"whiteMeat"`
	Dairy      float64 `json:"dairy"`
	Vegetarian float64 `json:"vegetarian"`
}

// EnergyHabits is the household energy portion of a footprint.
type EnergyHabits struct {
	ApplianceHours float64 `json:"applianceHours"`
	LightBulbs     float64 `json:"lightBulbs"`
	GasTanks       float64 `json:"gasTanks"`
	HVACHours      float64 `json:"hvacHours"`
}

// WasteHabits is the weekly waste generation portion of a footprint.
type WasteHabits struct {
	TrashBags      float64 `json:"trashBags"`
	FoodWaste      float64 `json:"foodWaste"`
	PlasticBottles float64 `json:"plasticBottles"`
	PaperPackages  float64 `json:"paperPackages"`
}

// FootprintInput is the survey payload submitted by the caller. Absent fields
// decode to zero. Result is the precomputed annual footprint in tonnes CO2e.
type FootprintInput struct {
	Date      string          `json:"date"`
	Energy    EnergyHabits    `json:"energy"`
	Food      FoodHabits      `json:"food"`
	Transport TransportHabits `json:"transport"`
	Waste     WasteHabits     `json:"waste"`
	Result    float64         `json:"result"`
}

// Suggestion is a labeled recommendation: the single global one, and error
// placeholders, carry a category alongside the text.
type Suggestion struct {
	Category   string `json:"category"`
	Suggestion string `json:"suggestion"`
}

// CategorySuggestion is one of the two per-category items. Items carry only
// their text; the bucket they sit in names the category.
type CategorySuggestion struct {
	Suggestion string `json:"suggestion"`
}

// CategoryRecommendations holds the four fixed buckets. Each bucket always
// contains exactly two items; field order fixes the wire order.
type CategoryRecommendations struct {
	Transport []CategorySuggestion `json:"transport"`
	Food      []CategorySuggestion `json:"food"`
	Energy    []CategorySuggestion `json:"energy"`
	Waste     []CategorySuggestion `json:"waste"`
}

// RecommendationResult is the canonical response shape. Notes is null on the
// clean path and carries warnings or error detail otherwise.
type RecommendationResult struct {
	GlobalRecommendation    Suggestion              `json:"global_recommendation"`
	CategoryRecommendations CategoryRecommendations `json:"category_recommendations"`
	Notes                   *string                 `json:"notes"`
}

// FailureKind classifies how a generation attempt degraded. The wire shape
// still carries the legacy in-band markers (category "Error", non-null
// notes), but persistence gating and status mapping key off this tag, never
// off substring matching.
type FailureKind int

const (
	FailureNone FailureKind = iota
	// FailureModel covers transport errors, content blocks, and empty output.
	FailureModel
	// FailureFormat means the model text was not valid JSON.
	FailureFormat
	// FailureStructure means valid JSON with a wrong or incomplete shape.
	FailureStructure
	// FailureInternal covers anything unexpected inside normalization.
	FailureInternal
)

// Outcome pairs the always-valid result with its failure tag.
type Outcome struct {
	Result  RecommendationResult
	Kind    FailureKind
	Message string
}

// Failed reports whether the outcome must not be persisted or forwarded.
func (o Outcome) Failed() bool {
	return o.Kind != FailureNone
}

// Record is one persisted recommendation set.
type Record struct {
	ID              string
	UserID          string
	CalculationDate time.Time
	Result          RecommendationResult
	CreatedAt       time.Time
}

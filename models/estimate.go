package models

// InputType identifies how the insurance details reached us.
const (
	InputTypeText   = "text"
	InputTypeVoice  = "voice"
	InputTypeUpload = "upload"
)

// EstimateRequest is the payload coming from the frontend into /api/estimate.
type EstimateRequest struct {
	CareNeeded     string `json:"care_needed"`               // procedure or care the user needs, e.g. "knee MRI"
	ZipCode        string `json:"zip_code"`                  // zip code for the provider search
	InsuranceInput string `json:"insurance_input,omitempty"` // free-form plan text; blank triggers standard-rate defaults
	InputType      string `json:"input_type,omitempty"`      // "text", "voice" or "upload"
	MedicalHistory string `json:"medical_history,omitempty"` // optional past records text
	SessionID      string `json:"session_id,omitempty"`      // opaque browser token; generated when absent
}

// NormalizedRequest is the canonical request after input resolution.
type NormalizedRequest struct {
	CareNeeded     string
	ZipCode        string
	InsuranceInput string
	InputType      string
	MedicalHistory string
	SessionID      string
	Plan           InsurancePlan
	UsedDefaults   bool
}

// NetworkStatus is the relationship between a provider and the stated plan.
type NetworkStatus string

const (
	NetworkIn       NetworkStatus = "in-network"
	NetworkOut      NetworkStatus = "out-of-network"
	NetworkMedicare NetworkStatus = "accepts-medicare"
	NetworkUnknown  NetworkStatus = "unknown"
)

// Hospital is one priced provider candidate. Immutable once produced;
// a nil EstimatedCost means the costing task failed or timed out.
type Hospital struct {
	Name          string        `json:"name"`
	Address       string        `json:"address"`
	Phone         string        `json:"phone,omitempty"`
	NPI           string        `json:"npi,omitempty"`
	NetworkStatus NetworkStatus `json:"network_status"`
	EstimatedCost *float64      `json:"estimated_cost"`
}

// Urgency is the severity tier derived from the care description.
type Urgency string

const (
	UrgencyRoutine Urgency = "routine"
	UrgencySoon    Urgency = "soon"
	UrgencyUrgent  Urgency = "urgent"
)

// SeverityAssessment carries the urgency tier plus a short rationale.
// Reason is nil when the assessment capability was unavailable.
type SeverityAssessment struct {
	Urgency Urgency `json:"urgency"`
	Reason  *string `json:"reason"`
}

// ScoreIteration is one pass of the self-critique loop.
type ScoreIteration struct {
	Iteration    int `json:"iteration"`
	Completeness int `json:"completeness"`
	Accuracy     int `json:"accuracy"`
	Clarity      int `json:"clarity"`
	Safety       int `json:"safety"`
	Composite    int `json:"composite"`
}

// Draft is one generated answer before acceptance.
type Draft struct {
	Headline               string   `json:"headline"`
	SpokenSummary          string   `json:"spoken_summary"`
	NextStep               string   `json:"next_step"`
	InNetworkCost          *float64 `json:"in_network_cost"`
	OutOfNetworkCost       *float64 `json:"out_of_network_cost"`
	AlternativeCost        *float64 `json:"alternative_cost"`
	AlternativeDescription *string  `json:"alternative_description"`
	Confidence             float64  `json:"confidence"`
}

// Alternative is a materially cheaper option outside the top-ranked pick.
type Alternative struct {
	Description   string  `json:"description"`
	EstimatedCost float64 `json:"estimated_cost"`
}

// EstimateResult is the complete response for one estimate run.
type EstimateResult struct {
	Headline               string   `json:"headline"`
	SpokenSummary          string   `json:"spoken_summary"`
	NextStep               string   `json:"next_step"`
	InNetworkCost          *float64 `json:"in_network_cost"`
	OutOfNetworkCost       *float64 `json:"out_of_network_cost"`
	AlternativeCost        *float64 `json:"alternative_cost"`
	AlternativeDescription *string  `json:"alternative_description"`
	Confidence             float64  `json:"confidence"`

	// Hospitals sorted ascending by estimated cost, nil costs last.
	Hospitals []Hospital `json:"hospitals"`

	// Self-critique data for the score meter.
	ScoreHistory []ScoreIteration `json:"score_history"`
	FinalScore   int              `json:"final_score"`
	Iterations   int              `json:"iterations"`

	// Context flags.
	Urgency         Urgency `json:"urgency"`
	UsedDefaults    bool    `json:"used_defaults"`
	SessionID       string  `json:"session_id"`
	IsReturningUser bool    `json:"is_returning_user"`
	Greeting        string  `json:"greeting,omitempty"`
}

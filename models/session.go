package models

import "time"

// SessionContext is the per-token continuity record. The token is an
// opaque identifier supplied by the client; it is never treated as a
// verified identity.
type SessionContext struct {
	IsReturning    bool      `json:"is_returning"`
	Greeting       string    `json:"greeting,omitempty"`
	InsuranceInput string    `json:"insurance_input,omitempty"`
	ZipCode        string    `json:"zip_code,omitempty"`
	UpdatedAt      time.Time `json:"updated_at,omitempty"`
}

// QueryRecord is one analytics row written after a successful estimate.
type QueryRecord struct {
	SessionID      string    `bson:"session_id" json:"session_id"`
	CareNeeded     string    `bson:"care_needed" json:"care_needed"`
	ZipCode        string    `bson:"zip_code" json:"zip_code"`
	HasInsurance   bool      `bson:"has_insurance" json:"has_insurance"`
	HospitalsFound int       `bson:"hospitals_found" json:"hospitals_found"`
	Confidence     float64   `bson:"confidence" json:"confidence"`
	FinalScore     int       `bson:"final_score" json:"final_score"`
	UsedDefaults   bool      `bson:"used_defaults" json:"used_defaults"`
	Urgency        string    `bson:"urgency" json:"urgency"`
	CreatedAt      time.Time `bson:"created_at" json:"created_at"`
}

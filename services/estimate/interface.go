// File: services/estimate/interface.go
package estimate

import (
	"context"

	"clearcare/models"
)

// Service is the transport-facing contract for cost estimation.
type Service interface {
	// Estimate runs the full pipeline. It returns a *ValidationError when
	// care_needed or zip_code is blank and a *TimeoutError when the
	// deadline elapses before normalization completes. Every other
	// failure degrades into the result instead of erroring.
	Estimate(ctx context.Context, req models.EstimateRequest) (*models.EstimateResult, error)
	GetContext(ctx context.Context, sessionID string) (*models.SessionContext, error)
	ClearSession(ctx context.Context, sessionID string) error
}

// Stage names emitted through the progress callback.
const (
	StageNormalize = "normalize"
	StageSeverity  = "severity"
	StageLocate    = "locate"
	StageClassify  = "classify"
	StageAnswer    = "answer"
	StageAssemble  = "assemble"
)

// ProgressFunc receives stage-completion events during one run. It may be
// nil; implementations must treat it as fire-and-forget.
type ProgressFunc func(stage string)

// SeverityAssessor derives an urgency tier from the care description.
type SeverityAssessor interface {
	Assess(ctx context.Context, careNeeded, medicalHistory string) (models.SeverityAssessment, error)
}

// HospitalLocator produces candidate providers near a zip code. Zero
// candidates is a valid outcome, not an error.
type HospitalLocator interface {
	Locate(ctx context.Context, zipCode, careNeeded string) ([]models.Hospital, error)
}

// NetworkClassifier determines one candidate's relationship to the plan.
type NetworkClassifier interface {
	Classify(ctx context.Context, plan models.InsurancePlan, hospital models.Hospital) (models.NetworkStatus, error)
}

// CostEstimator computes the expected out-of-pocket amount for one
// candidate given the plan, procedure and network status.
type CostEstimator interface {
	EstimateCost(ctx context.Context, plan models.InsurancePlan, careNeeded string, urgency models.Urgency, status models.NetworkStatus) (float64, error)
}

// AlternativeFinder selects a materially cheaper option outside the
// top-ranked candidate. A nil alternative is a normal outcome.
type AlternativeFinder interface {
	Find(ctx context.Context, careNeeded string, hospitals []models.Hospital) (*models.Alternative, error)
}

// AnswerGenerator drafts the user-facing answer from the assembled facts.
// Feedback from a prior scoring pass, when non-empty, biases regeneration
// toward the flagged weaknesses.
type AnswerGenerator interface {
	Generate(ctx context.Context, facts Facts, feedback string) (models.Draft, error)
}

// CritiqueScorer evaluates one draft along the four quality dimensions
// and produces feedback for the next generation pass.
type CritiqueScorer interface {
	Score(ctx context.Context, facts Facts, draft models.Draft) (Critique, error)
}

// Facts is everything the generator and scorer see about one run.
type Facts struct {
	CareNeeded   string
	ZipCode      string
	Plan         models.InsurancePlan
	UsedDefaults bool
	Severity     models.SeverityAssessment
	Hospitals    []models.Hospital
	Alternative  *models.Alternative
}

// Critique is one scoring pass before composite computation.
type Critique struct {
	Completeness int
	Accuracy     int
	Clarity      int
	Safety       int
	Feedback     string
}

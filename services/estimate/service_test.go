package estimate

import (
	"context"
	"errors"
	"testing"
	"time"

	"clearcare/models"
	"clearcare/services/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSeverity struct {
	assessment models.SeverityAssessment
	err        error
}

func (f *fakeSeverity) Assess(context.Context, string, string) (models.SeverityAssessment, error) {
	if f.err != nil {
		return models.SeverityAssessment{Urgency: models.UrgencyRoutine}, f.err
	}
	return f.assessment, nil
}

type fakeLocator struct {
	hospitals []models.Hospital
	err       error
}

func (f *fakeLocator) Locate(context.Context, string, string) ([]models.Hospital, error) {
	return f.hospitals, f.err
}

type fakeAlternatives struct {
	alt *models.Alternative
}

func (f *fakeAlternatives) Find(context.Context, string, []models.Hospital) (*models.Alternative, error) {
	return f.alt, nil
}

func testOptions() Options {
	return Options{
		AcceptThreshold:  80,
		MaxIterations:    3,
		FanoutWorkers:    4,
		CandidateTimeout: time.Second,
		PipelineTimeout:  10 * time.Second,
	}
}

func testDeps(store session.Store) Deps {
	reason := "elective imaging"
	return Deps{
		Sessions: store,
		Severity: &fakeSeverity{assessment: models.SeverityAssessment{
			Urgency: models.UrgencyRoutine, Reason: &reason,
		}},
		Locator:      &fakeLocator{hospitals: candidates(3)},
		Classifier:   &fakeClassifier{},
		Estimator:    &fakeCostEstimator{},
		Alternatives: &fakeAlternatives{},
		Generator:    &scriptedGenerator{drafts: []*models.Draft{draft("answer")}},
		Scorer:       &scriptedScorer{critiques: []*Critique{critique(90, "")}},
	}
}

func TestEstimateHappyPathWithDefaults(t *testing.T) {
	store := session.NewMemoryStore()
	svc := NewService(testDeps(store), testOptions())

	result, err := svc.Estimate(context.Background(), models.EstimateRequest{
		CareNeeded: "knee MRI",
		ZipCode:    "11201",
		InputType:  models.InputTypeText,
		SessionID:  "tok-1",
	})
	require.NoError(t, err)

	assert.True(t, result.UsedDefaults)
	assert.Equal(t, "tok-1", result.SessionID)
	assert.False(t, result.IsReturningUser)
	assert.Empty(t, result.Greeting)
	assert.Len(t, result.Hospitals, 3)
	assert.LessOrEqual(t, len(result.ScoreHistory), 3)
	require.NotEmpty(t, result.ScoreHistory)
	assert.Equal(t, result.ScoreHistory[len(result.ScoreHistory)-1].Composite, result.FinalScore)
	assert.Equal(t, len(result.ScoreHistory), result.Iterations)
	assert.Equal(t, models.UrgencyRoutine, result.Urgency)
	assert.Greater(t, result.Confidence, 0.0)
	assert.LessOrEqual(t, result.Confidence, 1.0)

	// Write-back: the same token now reads as a returning session.
	sc, err := svc.GetContext(context.Background(), "tok-1")
	require.NoError(t, err)
	assert.True(t, sc.IsReturning)
	assert.Equal(t, "11201", sc.ZipCode)
}

func TestEstimateValidationStopsPipeline(t *testing.T) {
	store := session.NewMemoryStore()
	deps := testDeps(store)
	loc := &fakeLocator{err: errors.New("must not be called")}
	deps.Locator = loc
	svc := NewService(deps, testOptions())

	_, err := svc.Estimate(context.Background(), models.EstimateRequest{ZipCode: "11201"})
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "care_needed", vErr.Field)
}

func TestEstimateZeroCandidatesIsNotAnError(t *testing.T) {
	store := session.NewMemoryStore()
	deps := testDeps(store)
	deps.Locator = &fakeLocator{}
	svc := NewService(deps, testOptions())

	result, err := svc.Estimate(context.Background(), models.EstimateRequest{
		CareNeeded: "knee MRI", ZipCode: "99999",
	})
	require.NoError(t, err)
	assert.Empty(t, result.Hospitals)
}

func TestEstimateLocatorFailureDegradesToEmptyList(t *testing.T) {
	store := session.NewMemoryStore()
	deps := testDeps(store)
	deps.Locator = &fakeLocator{err: errors.New("registry down")}
	svc := NewService(deps, testOptions())

	result, err := svc.Estimate(context.Background(), models.EstimateRequest{
		CareNeeded: "knee MRI", ZipCode: "11201",
	})
	require.NoError(t, err)
	assert.Empty(t, result.Hospitals)
}

func TestEstimateSortsHospitalsWithNilCostsLast(t *testing.T) {
	store := session.NewMemoryStore()
	deps := testDeps(store)
	deps.Locator = &fakeLocator{hospitals: candidates(5)}
	deps.Classifier = &fakeClassifier{
		statusF: func(h models.Hospital) (models.NetworkStatus, error) {
			switch h.Name {
			case "Hospital 0":
				return models.NetworkOut, nil
			case "Hospital 2":
				return models.NetworkIn, nil
			case "Hospital 4":
				return models.NetworkMedicare, nil
			default:
				return "", errors.New("classification down")
			}
		},
	}
	deps.Estimator = &fakeCostEstimator{
		costF: func(status models.NetworkStatus) (float64, error) {
			switch status {
			case models.NetworkIn:
				return 300, nil
			case models.NetworkMedicare:
				return 600, nil
			default:
				return 900, nil
			}
		},
	}
	svc := NewService(deps, testOptions())

	result, err := svc.Estimate(context.Background(), models.EstimateRequest{
		CareNeeded: "knee MRI", ZipCode: "11201",
	})
	require.NoError(t, err)
	require.Len(t, result.Hospitals, 5)

	// Priced ascending, then the two unknowns in their original order.
	assert.Equal(t, "Hospital 2", result.Hospitals[0].Name)
	assert.Equal(t, "Hospital 4", result.Hospitals[1].Name)
	assert.Equal(t, "Hospital 0", result.Hospitals[2].Name)
	assert.Equal(t, "Hospital 1", result.Hospitals[3].Name)
	assert.Equal(t, "Hospital 3", result.Hospitals[4].Name)
	assert.Nil(t, result.Hospitals[3].EstimatedCost)
	assert.Nil(t, result.Hospitals[4].EstimatedCost)
}

func TestEstimateTimeoutBeforeNormalization(t *testing.T) {
	store := session.NewMemoryStore()
	opts := testOptions()
	opts.PipelineTimeout = time.Nanosecond
	svc := NewService(testDeps(store), opts)

	time.Sleep(time.Millisecond)
	_, err := svc.Estimate(context.Background(), models.EstimateRequest{
		CareNeeded: "knee MRI", ZipCode: "11201",
	})
	var tErr *TimeoutError
	require.ErrorAs(t, err, &tErr)
}

func TestEstimateReturningSessionGetsGreeting(t *testing.T) {
	store := session.NewMemoryStore()
	svc := NewService(testDeps(store), testOptions())

	req := models.EstimateRequest{
		CareNeeded:     "knee MRI",
		ZipCode:        "11201",
		InsuranceInput: "Aetna Gold PPO",
		SessionID:      "tok-2",
	}
	_, err := svc.Estimate(context.Background(), req)
	require.NoError(t, err)

	// Second visit: no insurance supplied, saved plan carries over.
	result, err := svc.Estimate(context.Background(), models.EstimateRequest{
		CareNeeded: "shoulder x-ray",
		ZipCode:    "11201",
		SessionID:  "tok-2",
	})
	require.NoError(t, err)

	assert.True(t, result.IsReturningUser)
	assert.False(t, result.UsedDefaults)
	assert.Contains(t, result.Greeting, "Welcome back")
	assert.Contains(t, result.Greeting, "Aetna Gold PPO")
}

func TestEstimateClearSessionForgets(t *testing.T) {
	store := session.NewMemoryStore()
	svc := NewService(testDeps(store), testOptions())

	_, err := svc.Estimate(context.Background(), models.EstimateRequest{
		CareNeeded: "knee MRI", ZipCode: "11201", SessionID: "tok-3",
	})
	require.NoError(t, err)

	require.NoError(t, svc.ClearSession(context.Background(), "tok-3"))
	// Clearing twice succeeds silently.
	require.NoError(t, svc.ClearSession(context.Background(), "tok-3"))

	sc, err := svc.GetContext(context.Background(), "tok-3")
	require.NoError(t, err)
	assert.False(t, sc.IsReturning)
}

func TestEstimateRecordsAnalyticsRow(t *testing.T) {
	store := session.NewMemoryStore()
	deps := testDeps(store)
	var recorded []models.QueryRecord
	deps.RecordQuery = func(r models.QueryRecord) { recorded = append(recorded, r) }
	svc := NewService(deps, testOptions())

	_, err := svc.Estimate(context.Background(), models.EstimateRequest{
		CareNeeded: "knee MRI", ZipCode: "11201", SessionID: "tok-4",
	})
	require.NoError(t, err)

	require.Len(t, recorded, 1)
	assert.Equal(t, "tok-4", recorded[0].SessionID)
	assert.Equal(t, "knee MRI", recorded[0].CareNeeded)
	assert.Equal(t, 3, recorded[0].HospitalsFound)
	assert.True(t, recorded[0].UsedDefaults)
}

func TestEstimateEmitsProgressEvents(t *testing.T) {
	store := session.NewMemoryStore()
	deps := testDeps(store)
	seen := map[string]bool{}
	deps.Progress = func(stage string) { seen[stage] = true }
	svc := NewService(deps, testOptions())

	_, err := svc.Estimate(context.Background(), models.EstimateRequest{
		CareNeeded: "knee MRI", ZipCode: "11201",
	})
	require.NoError(t, err)

	for _, stage := range []string{StageNormalize, StageSeverity, StageLocate, StageClassify, StageAnswer, StageAssemble} {
		assert.True(t, seen[stage], "missing stage event %s", stage)
	}
}

func TestEstimateGeneratesSessionIDWhenAbsent(t *testing.T) {
	store := session.NewMemoryStore()
	svc := NewService(testDeps(store), testOptions())

	result, err := svc.Estimate(context.Background(), models.EstimateRequest{
		CareNeeded: "knee MRI", ZipCode: "11201",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, result.SessionID)
}

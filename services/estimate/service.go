// File: services/estimate/service.go
package estimate

import (
	"context"
	"sort"
	"time"

	"clearcare/config"
	"clearcare/models"
	"clearcare/services/session"
	"clearcare/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Options is the tunable pipeline policy.
type Options struct {
	AcceptThreshold  int
	MaxIterations    int
	FanoutWorkers    int
	CandidateTimeout time.Duration
	PipelineTimeout  time.Duration
}

// OptionsFromConfig reads the policy from the loaded app config.
func OptionsFromConfig() Options {
	return Options{
		AcceptThreshold:  config.AppConfig.AcceptThreshold,
		MaxIterations:    config.AppConfig.MaxIterations,
		FanoutWorkers:    config.AppConfig.FanoutWorkers,
		CandidateTimeout: config.CandidateTimeout(),
		PipelineTimeout:  config.PipelineTimeout(),
	}
}

// Deps wires the pipeline stages and collaborators.
type Deps struct {
	Sessions     session.Store
	Severity     SeverityAssessor
	Locator      HospitalLocator
	Classifier   NetworkClassifier
	Estimator    CostEstimator
	Alternatives AlternativeFinder
	Generator    AnswerGenerator
	Scorer       CritiqueScorer

	// RecordQuery receives one analytics row per completed estimate.
	// Nil disables recording. Implementations must be fast; slow sinks
	// belong behind a task queue.
	RecordQuery func(models.QueryRecord)

	// Progress receives stage-completion events. Nil for none.
	Progress ProgressFunc
}

type pipelineService struct {
	deps Deps
	opts Options
}

// NewService assembles the estimate pipeline.
func NewService(deps Deps, opts Options) Service {
	return &pipelineService{deps: deps, opts: opts}
}

func (s *pipelineService) emit(stage string) {
	if s.deps.Progress != nil {
		s.deps.Progress(stage)
	}
}

// Estimate runs the full pipeline under the end-to-end deadline. After
// normalization every stage degrades instead of failing: missing
// severity, zero candidates, unknown network status and a down critique
// loop all still produce a usable result.
func (s *pipelineService) Estimate(ctx context.Context, req models.EstimateRequest) (*models.EstimateResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.opts.PipelineTimeout)
	defer cancel()

	log := utils.GetLogger()
	start := time.Now()

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	req.SessionID = sessionID

	saved, err := s.deps.Sessions.Get(ctx, sessionID)
	if err != nil {
		log.Warn("Session lookup failed, treating as new session", zap.Error(err))
		saved = &models.SessionContext{}
	}

	if ctx.Err() != nil {
		return nil, &TimeoutError{Stage: StageNormalize}
	}
	norm, err := Normalize(req, saved)
	if err != nil {
		return nil, err
	}
	s.emit(StageNormalize)

	// Severity and provider lookup are independent, so they run together.
	var severity models.SeverityAssessment
	var candidates []models.Hospital
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		severity, _ = s.deps.Severity.Assess(gctx, norm.CareNeeded, norm.MedicalHistory)
		s.emit(StageSeverity)
		return nil
	})
	g.Go(func() error {
		found, err := s.deps.Locator.Locate(gctx, norm.ZipCode, norm.CareNeeded)
		if err != nil {
			log.Warn("Provider lookup degraded to empty list", zap.Error(err))
			found = nil
		}
		candidates = found
		s.emit(StageLocate)
		return nil
	})
	_ = g.Wait()

	hospitals := classifyAndPrice(ctx, s.opts.FanoutWorkers, s.opts.CandidateTimeout,
		norm.Plan, norm.CareNeeded, severity.Urgency, candidates,
		s.deps.Classifier, s.deps.Estimator)
	sortHospitals(hospitals)
	s.emit(StageClassify)

	alternative, err := s.deps.Alternatives.Find(ctx, norm.CareNeeded, hospitals)
	if err != nil {
		log.Warn("Alternative lookup failed", zap.Error(err))
		alternative = nil
	}

	facts := Facts{
		CareNeeded:   norm.CareNeeded,
		ZipCode:      norm.ZipCode,
		Plan:         norm.Plan,
		UsedDefaults: norm.UsedDefaults,
		Severity:     severity,
		Hospitals:    hospitals,
		Alternative:  alternative,
	}
	loop := runCritiqueLoop(ctx, s.deps.Generator, s.deps.Scorer, facts,
		s.opts.AcceptThreshold, s.opts.MaxIterations)
	s.emit(StageAnswer)

	degraded := ctx.Err() != nil
	result := s.assemble(norm, saved, hospitals, loop, severity, degraded)
	s.emit(StageAssemble)

	s.writeBackSession(sessionID, norm, result.Greeting)
	if s.deps.RecordQuery != nil {
		s.deps.RecordQuery(models.QueryRecord{
			SessionID:      sessionID,
			CareNeeded:     norm.CareNeeded,
			ZipCode:        norm.ZipCode,
			HasInsurance:   !norm.UsedDefaults,
			HospitalsFound: len(hospitals),
			Confidence:     result.Confidence,
			FinalScore:     result.FinalScore,
			UsedDefaults:   norm.UsedDefaults,
			Urgency:        string(severity.Urgency),
			CreatedAt:      time.Now().UTC(),
		})
	}

	log.Info("Estimate pipeline finished",
		zap.String("sessionID", sessionID),
		zap.Int("hospitals", len(hospitals)),
		zap.Int("iterations", result.Iterations),
		zap.Int("finalScore", result.FinalScore),
		zap.Bool("degraded", degraded),
		zap.Duration("elapsed", time.Since(start)))
	return result, nil
}

func (s *pipelineService) GetContext(ctx context.Context, sessionID string) (*models.SessionContext, error) {
	return s.deps.Sessions.Get(ctx, sessionID)
}

func (s *pipelineService) ClearSession(ctx context.Context, sessionID string) error {
	return s.deps.Sessions.Delete(ctx, sessionID)
}

func (s *pipelineService) assemble(
	norm models.NormalizedRequest,
	saved *models.SessionContext,
	hospitals []models.Hospital,
	loop loopOutcome,
	severity models.SeverityAssessment,
	degraded bool,
) *models.EstimateResult {
	finalScore := 0
	if len(loop.History) > 0 {
		finalScore = loop.History[len(loop.History)-1].Composite
	}

	return &models.EstimateResult{
		Headline:               loop.Draft.Headline,
		SpokenSummary:          loop.Draft.SpokenSummary,
		NextStep:               loop.Draft.NextStep,
		InNetworkCost:          loop.Draft.InNetworkCost,
		OutOfNetworkCost:       loop.Draft.OutOfNetworkCost,
		AlternativeCost:        loop.Draft.AlternativeCost,
		AlternativeDescription: loop.Draft.AlternativeDescription,
		Confidence:             computeConfidence(finalScore, norm.UsedDefaults, len(hospitals) == 0, degraded),
		Hospitals:              hospitals,
		ScoreHistory:           loop.History,
		FinalScore:             finalScore,
		Iterations:             len(loop.History),
		Urgency:                severity.Urgency,
		UsedDefaults:           norm.UsedDefaults,
		SessionID:              norm.SessionID,
		IsReturningUser:        saved.IsReturning,
		Greeting:               buildGreeting(saved, norm),
	}
}

// writeBackSession persists the continuity fields after a successful
// run. The pipeline context may already be past its deadline here, so
// the write gets its own short one.
func (s *pipelineService) writeBackSession(sessionID string, norm models.NormalizedRequest, greeting string) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	sc := &models.SessionContext{
		IsReturning:    true,
		Greeting:       greeting,
		InsuranceInput: norm.InsuranceInput,
		ZipCode:        norm.ZipCode,
		UpdatedAt:      time.Now().UTC(),
	}
	if err := s.deps.Sessions.Put(ctx, sessionID, sc); err != nil {
		utils.GetLogger().Warn("Session write-back failed",
			zap.String("sessionID", sessionID), zap.Error(err))
	}
}

// sortHospitals orders candidates ascending by cost. Unresolved costs go
// last and ties keep their relative order.
func sortHospitals(hospitals []models.Hospital) {
	sort.SliceStable(hospitals, func(i, j int) bool {
		a, b := hospitals[i].EstimatedCost, hospitals[j].EstimatedCost
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return *a < *b
		}
	})
}

func buildGreeting(saved *models.SessionContext, norm models.NormalizedRequest) string {
	if saved == nil || !saved.IsReturning {
		return ""
	}
	if norm.UsedDefaults {
		return "Welcome back."
	}
	return "Welcome back. Using your " + norm.Plan.PlanName + " plan."
}

// computeConfidence maps the final quality score onto [0,1], then
// penalizes runs that leaned on default rates, resolved no providers, or
// blew the deadline. Monotonic in score by construction.
func computeConfidence(finalScore int, usedDefaults, noHospitals, degraded bool) float64 {
	conf := 0.3 + 0.6*float64(finalScore)/100
	if usedDefaults {
		conf *= 0.85
	}
	if noHospitals {
		conf *= 0.5
	}
	if degraded {
		conf *= 0.7
	}
	if conf < 0 {
		conf = 0
	}
	if conf > 1 {
		conf = 1
	}
	return conf
}

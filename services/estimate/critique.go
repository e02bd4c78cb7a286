// File: services/estimate/critique.go
package estimate

import (
	"context"
	"encoding/json"
	"math"

	ai "clearcare/services/intelligence"
	"clearcare/utils"

	"go.uber.org/zap"

	"clearcare/models"
)

type geminiCritiqueScorer struct {
	gen ai.Generator
}

// NewCritiqueScorer builds the generation-backed draft reviewer.
func NewCritiqueScorer(gen ai.Generator) CritiqueScorer {
	return &geminiCritiqueScorer{gen: gen}
}

func (s *geminiCritiqueScorer) Score(ctx context.Context, facts Facts, draft models.Draft) (Critique, error) {
	raw, err := s.gen.GenerateContent(ctx, critiquePrompt(facts, draft))
	if err != nil {
		return Critique{}, &CapabilityError{Capability: "critique", Err: err}
	}

	var parsed Critique
	if err := json.Unmarshal([]byte(ai.StripJSONFences(raw)), &parsed); err != nil {
		return Critique{}, &CapabilityError{Capability: "critique", Err: err}
	}

	parsed.Completeness = clampScore(parsed.Completeness)
	parsed.Accuracy = clampScore(parsed.Accuracy)
	parsed.Clarity = clampScore(parsed.Clarity)
	parsed.Safety = clampScore(parsed.Safety)
	return parsed, nil
}

func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// compositeScore is the unweighted mean of the four dimensions, rounded
// to the nearest integer. It must stay a pure function: identical
// dimension scores always produce the identical accept decision.
func compositeScore(c Critique) int {
	sum := float64(c.Completeness + c.Accuracy + c.Clarity + c.Safety)
	return int(math.Round(sum / 4))
}

// loopOutcome is the terminal state of one critique loop run.
type loopOutcome struct {
	Draft    models.Draft
	History  []models.ScoreIteration
	Accepted bool
}

// runCritiqueLoop drives the draft -> score -> (accept | regenerate)
// cycle. The loop is strictly sequential and bounded by maxIterations;
// history is append-only. A scoring failure exhausts the loop with the
// last successfully scored draft (or the raw first draft when no pass
// ever scored); a regeneration failure keeps the current draft. Neither
// surfaces an error to the caller.
func runCritiqueLoop(
	ctx context.Context,
	generator AnswerGenerator,
	scorer CritiqueScorer,
	facts Facts,
	threshold, maxIterations int,
) loopOutcome {
	if maxIterations < 1 {
		maxIterations = 1
	}

	draft, err := generator.Generate(ctx, facts, "")
	if err != nil {
		utils.GetLogger().Warn("Answer generation failed, using fallback draft", zap.Error(err))
		draft = fallbackDraft(facts)
	}

	var history []models.ScoreIteration
	lastScored := draft

	for i := 1; ; i++ {
		if ctx.Err() != nil {
			return loopOutcome{Draft: draft, History: history}
		}

		critique, err := scorer.Score(ctx, facts, draft)
		if err != nil {
			utils.GetLogger().Warn("Critique scoring failed, ending loop",
				zap.Int("iteration", i), zap.Error(err))
			if len(history) == 0 {
				return loopOutcome{Draft: draft, History: history}
			}
			return loopOutcome{Draft: lastScored, History: history}
		}

		history = append(history, models.ScoreIteration{
			Iteration:    i,
			Completeness: critique.Completeness,
			Accuracy:     critique.Accuracy,
			Clarity:      critique.Clarity,
			Safety:       critique.Safety,
			Composite:    compositeScore(critique),
		})
		lastScored = draft

		if history[len(history)-1].Composite >= threshold {
			return loopOutcome{Draft: draft, History: history, Accepted: true}
		}
		if i >= maxIterations {
			return loopOutcome{Draft: draft, History: history}
		}

		next, err := generator.Generate(ctx, facts, critique.Feedback)
		if err != nil {
			utils.GetLogger().Warn("Regeneration failed, keeping current draft",
				zap.Int("iteration", i), zap.Error(err))
			return loopOutcome{Draft: draft, History: history}
		}
		draft = next
	}
}

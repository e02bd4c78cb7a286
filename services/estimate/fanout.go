// File: services/estimate/fanout.go
package estimate

import (
	"context"
	"sync"
	"time"

	"clearcare/utils"

	"go.uber.org/zap"

	"clearcare/models"
)

// classifyAndPrice runs the network and cost stage over every candidate
// under a bounded worker pool. One task per candidate, each with its own
// timeout; the stage returns only when every task has settled. A failed
// or timed-out candidate stays in the output with unknown status and no
// cost instead of being dropped, and input order is preserved.
func classifyAndPrice(
	ctx context.Context,
	workers int,
	perCandidate time.Duration,
	plan models.InsurancePlan,
	careNeeded string,
	urgency models.Urgency,
	candidates []models.Hospital,
	classifier NetworkClassifier,
	estimator CostEstimator,
) []models.Hospital {
	if len(candidates) == 0 {
		return []models.Hospital{}
	}
	if workers < 1 {
		workers = 1
	}

	out := make([]models.Hospital, len(candidates))
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup

	for i, cand := range candidates {
		wg.Add(1)
		go func(i int, h models.Hospital) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			taskCtx, cancel := context.WithTimeout(ctx, perCandidate)
			defer cancel()

			out[i] = resolveCandidate(taskCtx, plan, careNeeded, urgency, h, classifier, estimator)
		}(i, cand)
	}
	wg.Wait()

	return out
}

func resolveCandidate(
	ctx context.Context,
	plan models.InsurancePlan,
	careNeeded string,
	urgency models.Urgency,
	h models.Hospital,
	classifier NetworkClassifier,
	estimator CostEstimator,
) models.Hospital {
	h.NetworkStatus = models.NetworkUnknown
	h.EstimatedCost = nil

	status, err := classifier.Classify(ctx, plan, h)
	if err != nil {
		utils.GetLogger().Warn("Network classification failed",
			zap.String("hospital", h.Name), zap.Error(err))
		return h
	}
	h.NetworkStatus = status

	cost, err := estimator.EstimateCost(ctx, plan, careNeeded, urgency, status)
	if err != nil {
		utils.GetLogger().Warn("Cost estimation failed",
			zap.String("hospital", h.Name), zap.Error(err))
		h.NetworkStatus = models.NetworkUnknown
		return h
	}
	h.EstimatedCost = &cost
	return h
}

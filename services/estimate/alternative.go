// File: services/estimate/alternative.go
package estimate

import (
	"context"
	"fmt"
	"math"
	"strings"

	"clearcare/models"
)

const catalogCostFraction = 0.65

// altCatalog maps procedure families to a lower-acuity care setting that
// typically performs them at a fraction of hospital pricing.
var altCatalog = []struct {
	keyword string
	setting string
}{
	{"mri", "a freestanding imaging center"},
	{"ct scan", "a freestanding imaging center"},
	{"x-ray", "a freestanding imaging center"},
	{"xray", "a freestanding imaging center"},
	{"ultrasound", "a freestanding imaging center"},
	{"colonoscopy", "an ambulatory surgical center"},
	{"endoscopy", "an ambulatory surgical center"},
	{"replacement", "an ambulatory surgical center"},
	{"therapy session", "a telehealth visit"},
	{"checkup", "a telehealth visit"},
	{"consult", "a telehealth visit"},
	{"rash", "an urgent care clinic"},
	{"sprain", "an urgent care clinic"},
	{"flu", "an urgent care clinic"},
	{"stitches", "an urgent care clinic"},
}

type savingsAlternativeFinder struct {
	// minSavings is the fraction below the top pick's cost an option must
	// reach to count as materially cheaper.
	minSavings float64
}

// NewAlternativeFinder builds the finder with its savings predicate.
func NewAlternativeFinder(minSavings float64) AlternativeFinder {
	return &savingsAlternativeFinder{minSavings: minSavings}
}

// Find looks for a materially cheaper option: first another provider in
// the ranked list, then a catalog care setting priced below hospital
// rates. Nil means nothing qualified, which is a normal outcome.
func (f *savingsAlternativeFinder) Find(_ context.Context, careNeeded string, hospitals []models.Hospital) (*models.Alternative, error) {
	top := topCost(hospitals)
	if top == nil {
		return nil, nil
	}
	ceiling := *top * (1 - f.minSavings)

	for _, h := range hospitals[1:] {
		if h.EstimatedCost != nil && *h.EstimatedCost <= ceiling {
			return &models.Alternative{
				Description:   fmt.Sprintf("%s (%s)", h.Name, h.NetworkStatus),
				EstimatedCost: *h.EstimatedCost,
			}, nil
		}
	}

	if setting := catalogSetting(careNeeded); setting != "" {
		cost := math.Round(*top * catalogCostFraction)
		if cost <= ceiling {
			return &models.Alternative{
				Description:   fmt.Sprintf("the same procedure at %s", setting),
				EstimatedCost: cost,
			}, nil
		}
	}
	return nil, nil
}

// topCost returns the top-ranked candidate's cost, nil when the list is
// empty or the leader has no resolved cost.
func topCost(hospitals []models.Hospital) *float64 {
	if len(hospitals) == 0 {
		return nil
	}
	return hospitals[0].EstimatedCost
}

func catalogSetting(careNeeded string) string {
	lower := strings.ToLower(careNeeded)
	for _, alt := range altCatalog {
		if strings.Contains(lower, alt.keyword) {
			return alt.setting
		}
	}
	return ""
}

// File: services/estimate/cost.go
package estimate

import (
	"context"
	"math"
	"strings"

	"clearcare/models"
)

// baseCosts holds rough national-average billed amounts per procedure
// family. Matching is first-keyword-wins on the care description.
var baseCosts = []struct {
	keyword string
	amount  float64
}{
	{"mri", 1325},
	{"ct scan", 1000},
	{"x-ray", 260},
	{"xray", 260},
	{"ultrasound", 350},
	{"mammogram", 290},
	{"colonoscopy", 2750},
	{"endoscopy", 2100},
	{"knee replacement", 35000},
	{"hip replacement", 39000},
	{"physical therapy", 150},
	{"emergency", 2200},
	{"er visit", 2200},
	{"urgent care", 185},
	{"blood test", 100},
	{"lab work", 120},
	{"vaccine", 60},
	{"therapy session", 175},
	{"dental cleaning", 130},
	{"specialist", 350},
	{"checkup", 150},
	{"physical", 150},
}

const defaultBaseCost = 500

// urgencyMultipliers bump the billed amount: urgent care pathways carry
// facility and expedite fees routine scheduling avoids.
var urgencyMultipliers = map[models.Urgency]float64{
	models.UrgencyRoutine: 1.0,
	models.UrgencySoon:    1.15,
	models.UrgencyUrgent:  1.4,
}

const (
	inNetworkDiscount    = 0.60 // negotiated rate as a share of billed
	outOfNetworkMarkup   = 1.75
	outOfNetworkCoinsMul = 2.0
)

type localCostEstimator struct{}

// NewCostEstimator builds the deterministic cost-sharing calculator. It
// is a pure local computation so the fan-out stage never burns its
// per-candidate budget on this half of the task.
func NewCostEstimator() CostEstimator {
	return &localCostEstimator{}
}

func (e *localCostEstimator) EstimateCost(_ context.Context, plan models.InsurancePlan, careNeeded string, urgency models.Urgency, status models.NetworkStatus) (float64, error) {
	billed := baseCostFor(careNeeded) * urgencyMultipliers[urgency]

	var amount float64
	switch status {
	case models.NetworkMedicare:
		amount = medicareShare(plan, billed)
	case models.NetworkIn:
		amount = commercialShare(plan, billed*inNetworkDiscount, 1)
	case models.NetworkOut:
		amount = commercialShare(plan, billed*outOfNetworkMarkup, outOfNetworkCoinsMul)
	default:
		// No network signal: report the midpoint of the two outcomes so
		// the figure is neither best nor worst case.
		in := commercialShare(plan, billed*inNetworkDiscount, 1)
		out := commercialShare(plan, billed*outOfNetworkMarkup, outOfNetworkCoinsMul)
		amount = (in + out) / 2
	}
	return math.Round(amount), nil
}

func baseCostFor(careNeeded string) float64 {
	lower := strings.ToLower(careNeeded)
	for _, bc := range baseCosts {
		if strings.Contains(lower, bc.keyword) {
			return bc.amount
		}
	}
	return defaultBaseCost
}

// medicareShare applies Original Medicare Part B rules: the full Part B
// deductible first, then the plan coinsurance with no out-of-pocket cap.
func medicareShare(plan models.InsurancePlan, allowed float64) float64 {
	if allowed <= plan.Deductible {
		return allowed
	}
	return plan.Deductible + (allowed-plan.Deductible)*plan.Coinsurance/100
}

// commercialShare applies copay-plus-coinsurance sharing against the
// allowed amount, honoring the plan's out-of-pocket maximum when in
// network (coinsMul == 1).
func commercialShare(plan models.InsurancePlan, allowed, coinsMul float64) float64 {
	deductible := plan.Deductible * coinsMul
	coinsurance := math.Min(plan.Coinsurance*coinsMul, 100)

	var share float64
	if allowed <= deductible {
		share = allowed
	} else {
		share = deductible + (allowed-deductible)*coinsurance/100
	}
	share += plan.CopaySpecialist

	if coinsMul == 1 && plan.OutOfPocketMax != nil {
		share = math.Min(share, *plan.OutOfPocketMax)
	}
	if share > allowed+plan.CopaySpecialist {
		share = allowed + plan.CopaySpecialist
	}
	return share
}

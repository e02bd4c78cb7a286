package models

// InsurancePlan is the cost-sharing profile used for estimation.
type InsurancePlan struct {
	PlanName         string   `json:"plan_name"`
	PlanType         string   `json:"plan_type"`
	InsuranceCompany string   `json:"insurance_company"`
	Deductible       float64  `json:"deductible"`
	OutOfPocketMax   *float64 `json:"out_of_pocket_max"`
	CopaySpecialist  float64  `json:"copay_specialist"`
	CopayPrimaryCare float64  `json:"copay_primary_care"`
	Coinsurance      float64  `json:"coinsurance"` // percent the patient pays after deductible
	IsDefault        bool     `json:"is_default"`
}

// DefaultMedicarePlan is the standard-rate marker used when no insurance
// is supplied. Figures follow published Original Medicare Part A/B rules:
// $240 Part B deductible, 20% coinsurance, no out-of-pocket maximum.
func DefaultMedicarePlan() InsurancePlan {
	return InsurancePlan{
		PlanName:         "Original Medicare (Part A/B)",
		PlanType:         "Original Medicare",
		InsuranceCompany: "Medicare",
		Deductible:       240,
		OutOfPocketMax:   nil,
		CopaySpecialist:  0,
		CopayPrimaryCare: 0,
		Coinsurance:      20,
		IsDefault:        true,
	}
}

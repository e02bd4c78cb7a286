// File: services/estimate/normalizer.go
package estimate

import (
	"strings"
	"unicode"

	"clearcare/models"
)

const maxZipDigits = 10

// Normalize resolves the raw request into the canonical form the pipeline
// runs on. Blank insurance_input or zip_code fall back to the caller's
// saved session values before validation; a still-blank required field is
// a ValidationError and stops the run.
func Normalize(req models.EstimateRequest, saved *models.SessionContext) (models.NormalizedRequest, error) {
	careNeeded := strings.TrimSpace(req.CareNeeded)
	zipCode := strings.TrimSpace(req.ZipCode)
	insurance := strings.TrimSpace(req.InsuranceInput)

	if saved != nil && saved.IsReturning {
		if insurance == "" {
			insurance = strings.TrimSpace(saved.InsuranceInput)
		}
		if zipCode == "" {
			zipCode = strings.TrimSpace(saved.ZipCode)
		}
	}

	if careNeeded == "" {
		return models.NormalizedRequest{}, &ValidationError{Field: "care_needed", Message: "describe the care you need"}
	}
	if zipCode == "" {
		return models.NormalizedRequest{}, &ValidationError{Field: "zip_code", Message: "a zip code is required to find providers"}
	}

	zipCode = normalizeZip(zipCode)
	if zipCode == "" {
		return models.NormalizedRequest{}, &ValidationError{Field: "zip_code", Message: "zip code must contain digits"}
	}

	inputType := req.InputType
	if inputType == "" {
		inputType = models.InputTypeText
	}

	norm := models.NormalizedRequest{
		CareNeeded:     careNeeded,
		ZipCode:        zipCode,
		InsuranceInput: insurance,
		InputType:      inputType,
		MedicalHistory: strings.TrimSpace(req.MedicalHistory),
		SessionID:      req.SessionID,
	}

	if insurance == "" {
		norm.UsedDefaults = true
		norm.Plan = models.DefaultMedicarePlan()
	} else {
		norm.Plan = parsePlan(insurance)
	}
	return norm, nil
}

// normalizeZip keeps digits only, capped at maxZipDigits. Postal-code
// correctness is not asserted here; the provider registry handles that.
func normalizeZip(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
			if b.Len() >= maxZipDigits {
				break
			}
		}
	}
	return b.String()
}

// parsePlan derives a cost-sharing profile from free-form plan text. The
// profile is an approximation for estimation, not contract adjudication.
func parsePlan(input string) models.InsurancePlan {
	lower := strings.ToLower(input)

	if strings.Contains(lower, "medicare") || strings.Contains(lower, "medicaid") {
		plan := models.DefaultMedicarePlan()
		plan.PlanName = input
		plan.IsDefault = false
		return plan
	}

	planType := "PPO"
	for _, t := range []string{"HMO", "EPO", "POS", "PPO"} {
		if strings.Contains(lower, strings.ToLower(t)) {
			planType = t
			break
		}
	}

	oopMax := 6000.0
	return models.InsurancePlan{
		PlanName:         input,
		PlanType:         planType,
		InsuranceCompany: detectCarrier(lower),
		Deductible:       1500,
		OutOfPocketMax:   &oopMax,
		CopaySpecialist:  50,
		CopayPrimaryCare: 25,
		Coinsurance:      20,
		IsDefault:        false,
	}
}

var knownCarriers = []string{
	"aetna", "cigna", "united", "anthem", "humana", "kaiser",
	"blue cross", "blue shield", "bcbs", "oscar", "molina",
}

func detectCarrier(lower string) string {
	for _, c := range knownCarriers {
		if strings.Contains(lower, c) {
			return titleCase(c)
		}
	}
	return ""
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

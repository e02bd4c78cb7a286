package estimate

import (
	"testing"

	"clearcare/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeRejectsMissingFields(t *testing.T) {
	_, err := Normalize(models.EstimateRequest{ZipCode: "11201"}, nil)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "care_needed", vErr.Field)

	_, err = Normalize(models.EstimateRequest{CareNeeded: "knee MRI"}, nil)
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "zip_code", vErr.Field)

	_, err = Normalize(models.EstimateRequest{CareNeeded: "   ", ZipCode: "11201"}, nil)
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "care_needed", vErr.Field)
}

func TestNormalizeZipKeepsDigitsOnly(t *testing.T) {
	norm, err := Normalize(models.EstimateRequest{CareNeeded: "knee MRI", ZipCode: " 11201-0001 "}, nil)
	require.NoError(t, err)
	assert.Equal(t, "112010001", norm.ZipCode)

	_, err = Normalize(models.EstimateRequest{CareNeeded: "knee MRI", ZipCode: "abc"}, nil)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "zip_code", vErr.Field)
}

func TestNormalizeBlankInsuranceUsesDefaults(t *testing.T) {
	norm, err := Normalize(models.EstimateRequest{CareNeeded: "knee MRI", ZipCode: "11201"}, nil)
	require.NoError(t, err)

	assert.True(t, norm.UsedDefaults)
	assert.True(t, norm.Plan.IsDefault)
	assert.Equal(t, "Original Medicare (Part A/B)", norm.Plan.PlanName)
}

func TestNormalizeParsesSuppliedPlan(t *testing.T) {
	norm, err := Normalize(models.EstimateRequest{
		CareNeeded:     "knee MRI",
		ZipCode:        "11201",
		InsuranceInput: "Aetna Gold HMO",
	}, nil)
	require.NoError(t, err)

	assert.False(t, norm.UsedDefaults)
	assert.False(t, norm.Plan.IsDefault)
	assert.Equal(t, "HMO", norm.Plan.PlanType)
	assert.Equal(t, "Aetna", norm.Plan.InsuranceCompany)
}

func TestNormalizeMergesSavedSessionValues(t *testing.T) {
	saved := &models.SessionContext{
		IsReturning:    true,
		InsuranceInput: "Cigna PPO",
		ZipCode:        "10001",
	}

	norm, err := Normalize(models.EstimateRequest{CareNeeded: "chest x-ray"}, saved)
	require.NoError(t, err)

	assert.Equal(t, "10001", norm.ZipCode)
	assert.Equal(t, "Cigna PPO", norm.InsuranceInput)
	assert.False(t, norm.UsedDefaults)

	// Fresh values beat saved ones.
	norm, err = Normalize(models.EstimateRequest{
		CareNeeded:     "chest x-ray",
		ZipCode:        "94110",
		InsuranceInput: "Kaiser HMO",
	}, saved)
	require.NoError(t, err)
	assert.Equal(t, "94110", norm.ZipCode)
	assert.Equal(t, "Kaiser HMO", norm.InsuranceInput)
}

func TestNormalizeIgnoresNonReturningSession(t *testing.T) {
	saved := &models.SessionContext{InsuranceInput: "stale", ZipCode: "00000"}

	_, err := Normalize(models.EstimateRequest{CareNeeded: "knee MRI"}, saved)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "zip_code", vErr.Field)
}

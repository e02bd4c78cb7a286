package estimate

import (
	"context"
	"testing"

	"clearcare/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func priced(name string, cost float64, status models.NetworkStatus) models.Hospital {
	return models.Hospital{Name: name, NetworkStatus: status, EstimatedCost: &cost}
}

func TestAlternativePicksCheaperListedProvider(t *testing.T) {
	finder := NewAlternativeFinder(0.15)
	hospitals := []models.Hospital{
		priced("Expensive General", 1000, models.NetworkIn),
		priced("Budget Imaging", 600, models.NetworkIn),
	}

	alt, err := finder.Find(context.Background(), "knee MRI", hospitals)
	require.NoError(t, err)
	require.NotNil(t, alt)
	assert.Contains(t, alt.Description, "Budget Imaging")
	assert.Equal(t, float64(600), alt.EstimatedCost)
}

func TestAlternativeRejectsMarginalSavings(t *testing.T) {
	finder := NewAlternativeFinder(0.15)
	hospitals := []models.Hospital{
		priced("First", 1000, models.NetworkIn),
		priced("Second", 950, models.NetworkIn),
	}

	// 5% savings is below the 15% bar, so the catalog kicks in instead.
	alt, err := finder.Find(context.Background(), "knee MRI", hospitals)
	require.NoError(t, err)
	require.NotNil(t, alt)
	assert.Contains(t, alt.Description, "imaging center")
	assert.Equal(t, float64(650), alt.EstimatedCost)
}

func TestAlternativeNilWhenNothingQualifies(t *testing.T) {
	finder := NewAlternativeFinder(0.15)
	hospitals := []models.Hospital{
		priced("First", 1000, models.NetworkIn),
		priced("Second", 990, models.NetworkIn),
	}

	// No cheaper provider and no catalog entry for this procedure.
	alt, err := finder.Find(context.Background(), "appendectomy", hospitals)
	require.NoError(t, err)
	assert.Nil(t, alt)
}

func TestAlternativeNilWithoutTopCost(t *testing.T) {
	finder := NewAlternativeFinder(0.15)

	alt, err := finder.Find(context.Background(), "knee MRI", nil)
	require.NoError(t, err)
	assert.Nil(t, alt)

	alt, err = finder.Find(context.Background(), "knee MRI", []models.Hospital{
		{Name: "Unpriced", NetworkStatus: models.NetworkUnknown},
	})
	require.NoError(t, err)
	assert.Nil(t, alt)
}

func TestAlternativePredicateIsConfigurable(t *testing.T) {
	hospitals := []models.Hospital{
		priced("First", 1000, models.NetworkIn),
		priced("Second", 900, models.NetworkIn),
	}

	strict, err := NewAlternativeFinder(0.5).Find(context.Background(), "appendectomy", hospitals)
	require.NoError(t, err)
	assert.Nil(t, strict)

	loose, err := NewAlternativeFinder(0.05).Find(context.Background(), "appendectomy", hospitals)
	require.NoError(t, err)
	require.NotNil(t, loose)
	assert.Contains(t, loose.Description, "Second")
}

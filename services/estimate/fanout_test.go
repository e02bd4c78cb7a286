package estimate

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"clearcare/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClassifier struct {
	statusF func(h models.Hospital) (models.NetworkStatus, error)

	inFlight    int32
	maxInFlight int32
}

func (f *fakeClassifier) Classify(_ context.Context, _ models.InsurancePlan, h models.Hospital) (models.NetworkStatus, error) {
	cur := atomic.AddInt32(&f.inFlight, 1)
	defer atomic.AddInt32(&f.inFlight, -1)
	for {
		max := atomic.LoadInt32(&f.maxInFlight)
		if cur <= max || atomic.CompareAndSwapInt32(&f.maxInFlight, max, cur) {
			break
		}
	}
	time.Sleep(5 * time.Millisecond)
	if f.statusF != nil {
		return f.statusF(h)
	}
	return models.NetworkIn, nil
}

type fakeCostEstimator struct {
	costF func(status models.NetworkStatus) (float64, error)
}

func (f *fakeCostEstimator) EstimateCost(_ context.Context, _ models.InsurancePlan, _ string, _ models.Urgency, status models.NetworkStatus) (float64, error) {
	if f.costF != nil {
		return f.costF(status)
	}
	return 100, nil
}

func candidates(n int) []models.Hospital {
	out := make([]models.Hospital, n)
	for i := range out {
		out[i] = models.Hospital{Name: fmt.Sprintf("Hospital %d", i)}
	}
	return out
}

func TestFanoutPreservesOrderAndCount(t *testing.T) {
	cls := &fakeClassifier{}
	est := &fakeCostEstimator{}

	out := classifyAndPrice(context.Background(), 3, time.Second,
		models.InsurancePlan{}, "knee MRI", models.UrgencyRoutine,
		candidates(7), cls, est)

	require.Len(t, out, 7)
	for i, h := range out {
		assert.Equal(t, fmt.Sprintf("Hospital %d", i), h.Name)
		assert.Equal(t, models.NetworkIn, h.NetworkStatus)
		require.NotNil(t, h.EstimatedCost)
	}
}

func TestFanoutRespectsWorkerBound(t *testing.T) {
	cls := &fakeClassifier{}
	est := &fakeCostEstimator{}

	classifyAndPrice(context.Background(), 2, time.Second,
		models.InsurancePlan{}, "knee MRI", models.UrgencyRoutine,
		candidates(10), cls, est)

	assert.LessOrEqual(t, atomic.LoadInt32(&cls.maxInFlight), int32(2))
}

func TestFanoutRetainsFailedCandidates(t *testing.T) {
	cls := &fakeClassifier{
		statusF: func(h models.Hospital) (models.NetworkStatus, error) {
			switch h.Name {
			case "Hospital 1", "Hospital 2", "Hospital 3":
				return "", errors.New("classification down")
			default:
				return models.NetworkIn, nil
			}
		},
	}
	est := &fakeCostEstimator{}

	out := classifyAndPrice(context.Background(), 4, time.Second,
		models.InsurancePlan{}, "knee MRI", models.UrgencyRoutine,
		candidates(5), cls, est)

	require.Len(t, out, 5)
	var unknown, priced int
	for _, h := range out {
		if h.NetworkStatus == models.NetworkUnknown {
			unknown++
			assert.Nil(t, h.EstimatedCost)
		} else {
			priced++
			assert.NotNil(t, h.EstimatedCost)
		}
	}
	assert.Equal(t, 3, unknown)
	assert.Equal(t, 2, priced)
}

func TestFanoutCostFailureResetsStatus(t *testing.T) {
	cls := &fakeClassifier{}
	est := &fakeCostEstimator{
		costF: func(models.NetworkStatus) (float64, error) {
			return 0, errors.New("costing down")
		},
	}

	out := classifyAndPrice(context.Background(), 2, time.Second,
		models.InsurancePlan{}, "knee MRI", models.UrgencyRoutine,
		candidates(2), cls, est)

	for _, h := range out {
		assert.Equal(t, models.NetworkUnknown, h.NetworkStatus)
		assert.Nil(t, h.EstimatedCost)
	}
}

func TestFanoutEmptyInput(t *testing.T) {
	out := classifyAndPrice(context.Background(), 4, time.Second,
		models.InsurancePlan{}, "knee MRI", models.UrgencyRoutine,
		nil, &fakeClassifier{}, &fakeCostEstimator{})
	assert.Empty(t, out)
	assert.NotNil(t, out)
}

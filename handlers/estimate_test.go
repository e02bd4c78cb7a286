package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"clearcare/models"
	"clearcare/services/estimate"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEstimateService struct {
	result  *models.EstimateResult
	err     error
	cleared []string
}

func (f *fakeEstimateService) Estimate(_ context.Context, req models.EstimateRequest) (*models.EstimateResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	r := *f.result
	r.SessionID = req.SessionID
	return &r, nil
}

func (f *fakeEstimateService) GetContext(context.Context, string) (*models.SessionContext, error) {
	return &models.SessionContext{IsReturning: true, ZipCode: "11201"}, nil
}

func (f *fakeEstimateService) ClearSession(_ context.Context, sessionID string) error {
	f.cleared = append(f.cleared, sessionID)
	return nil
}

func newTestRouter(svc estimate.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	hb := NewHandlerBundle(svc, nil, nil, nil, nil)
	r := gin.New()
	r.POST("/api/estimate", hb.EstimateHandler)
	r.GET("/api/context/:sessionID", hb.GetContextHandler)
	r.DELETE("/api/session/:sessionID", hb.ClearSessionHandler)
	r.POST("/api/speak", hb.SpeakHandler)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestEstimateHandlerHappyPath(t *testing.T) {
	svc := &fakeEstimateService{result: &models.EstimateResult{
		Headline:     "Estimated out-of-pocket: $457",
		UsedDefaults: true,
		FinalScore:   90,
	}}
	r := newTestRouter(svc)

	w := postJSON(t, r, "/api/estimate", models.EstimateRequest{
		CareNeeded: "knee MRI", ZipCode: "11201",
	})

	require.Equal(t, http.StatusOK, w.Code)
	var result models.EstimateResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, "Estimated out-of-pocket: $457", result.Headline)
	assert.True(t, result.UsedDefaults)
	// A token was generated for the anonymous caller.
	assert.NotEmpty(t, result.SessionID)
}

func TestEstimateHandlerValidationMapsTo400(t *testing.T) {
	svc := &fakeEstimateService{err: &estimate.ValidationError{
		Field: "zip_code", Message: "a zip code is required to find providers",
	}}
	r := newTestRouter(svc)

	w := postJSON(t, r, "/api/estimate", models.EstimateRequest{CareNeeded: "knee MRI"})

	require.Equal(t, http.StatusBadRequest, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "zip_code", body["field"])
}

func TestEstimateHandlerTimeoutMapsTo504(t *testing.T) {
	svc := &fakeEstimateService{err: &estimate.TimeoutError{Stage: "normalize"}}
	r := newTestRouter(svc)

	w := postJSON(t, r, "/api/estimate", models.EstimateRequest{
		CareNeeded: "knee MRI", ZipCode: "11201",
	})
	assert.Equal(t, http.StatusGatewayTimeout, w.Code)
}

func TestEstimateHandlerRejectsMalformedBody(t *testing.T) {
	r := newTestRouter(&fakeEstimateService{result: &models.EstimateResult{}})

	req := httptest.NewRequest(http.MethodPost, "/api/estimate", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetContextHandler(t *testing.T) {
	r := newTestRouter(&fakeEstimateService{})

	req := httptest.NewRequest(http.MethodGet, "/api/context/tok-1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var sc models.SessionContext
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sc))
	assert.True(t, sc.IsReturning)
	assert.Equal(t, "11201", sc.ZipCode)
}

func TestClearSessionHandler(t *testing.T) {
	svc := &fakeEstimateService{}
	r := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodDelete, "/api/session/tok-9", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"tok-9"}, svc.cleared)
}

func TestSpeakHandlerWithoutSynthesizer(t *testing.T) {
	r := newTestRouter(&fakeEstimateService{})

	w := postJSON(t, r, "/api/speak", map[string]string{"text": "hello"})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

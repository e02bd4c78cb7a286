// File: clearcare/handlers/estimate.go
package handlers

import (
	"errors"
	"net/http"

	"clearcare/models"
	"clearcare/services/estimate"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// estimateHandler runs the full cost-estimation pipeline.
func (hb *HandlerBundle) estimateHandler(c *gin.Context) {
	logger := getLogger(c)

	var req models.EstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}
	if req.SessionID == "" {
		req.SessionID = uuid.NewString()
	}

	result, err := hb.Estimator.Estimate(c.Request.Context(), req)
	if err != nil {
		var vErr *estimate.ValidationError
		var tErr *estimate.TimeoutError
		switch {
		case errors.As(err, &vErr):
			c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Message, "field": vErr.Field})
		case errors.As(err, &tErr):
			c.JSON(http.StatusGatewayTimeout, gin.H{"error": "the estimate took too long, please try again"})
		default:
			logger.Error("Estimate failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to produce an estimate"})
		}
		return
	}

	c.JSON(http.StatusOK, result)
}

// getContextHandler returns the saved continuity data for a session token.
func (hb *HandlerBundle) getContextHandler(c *gin.Context) {
	sessionID := c.Param("sessionID")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "session id is required"})
		return
	}

	sc, err := hb.Estimator.GetContext(c.Request.Context(), sessionID)
	if err != nil {
		getLogger(c).Error("Context lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load session context"})
		return
	}
	c.JSON(http.StatusOK, sc)
}

// clearSessionHandler deletes saved session data. Idempotent: clearing an
// unknown token succeeds.
func (hb *HandlerBundle) clearSessionHandler(c *gin.Context) {
	sessionID := c.Param("sessionID")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "session id is required"})
		return
	}

	if err := hb.Estimator.ClearSession(c.Request.Context(), sessionID); err != nil {
		getLogger(c).Error("Session clear failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to clear session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cleared"})
}

// File: clearcare/handlers/speak.go
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const maxSpeakChars = 2000

// speakHandler renders the spoken summary as audio for playback.
func (hb *HandlerBundle) speakHandler(c *gin.Context) {
	var req struct {
		Text string `json:"text"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	text := strings.TrimSpace(req.Text)
	if text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text is required"})
		return
	}
	if len(text) > maxSpeakChars {
		text = text[:maxSpeakChars]
	}

	if hb.Synthesizer == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "speech synthesis is not configured"})
		return
	}

	audio, contentType, err := hb.Synthesizer.Synthesize(c.Request.Context(), text)
	if err != nil {
		getLogger(c).Error("Speech synthesis failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "speech synthesis failed"})
		return
	}

	c.Data(http.StatusOK, contentType, audio)
}

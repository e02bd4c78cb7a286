// File: clearcare/handlers/bundle.go
package handlers

import (
	ai "clearcare/services/intelligence"
	"clearcare/services/estimate"
	"clearcare/services/storage"

	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers and their collaborators.
type HandlerBundle struct {
	Estimator   estimate.Service
	Fields      ai.Generator
	Vision      ai.VisionGenerator
	Synthesizer ai.Synthesizer
	Storage     storage.StorageService

	// Estimate endpoints
	EstimateHandler     gin.HandlerFunc
	GetContextHandler   gin.HandlerFunc
	ClearSessionHandler gin.HandlerFunc

	// Input capability endpoints
	VoiceHandler      gin.HandlerFunc
	UploadCardHandler gin.HandlerFunc
	SpeakHandler      gin.HandlerFunc
}

// NewHandlerBundle wires the concrete handlers around the collaborators.
func NewHandlerBundle(
	estimator estimate.Service,
	fields ai.Generator,
	vision ai.VisionGenerator,
	synth ai.Synthesizer,
	store storage.StorageService,
) *HandlerBundle {
	hb := &HandlerBundle{
		Estimator:   estimator,
		Fields:      fields,
		Vision:      vision,
		Synthesizer: synth,
		Storage:     store,
	}
	hb.EstimateHandler = hb.estimateHandler
	hb.GetContextHandler = hb.getContextHandler
	hb.ClearSessionHandler = hb.clearSessionHandler
	hb.VoiceHandler = hb.voiceHandler
	hb.UploadCardHandler = hb.uploadCardHandler
	hb.SpeakHandler = hb.speakHandler
	return hb
}

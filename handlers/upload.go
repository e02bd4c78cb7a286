// File: clearcare/handlers/upload.go
package handlers

import (
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	ai "clearcare/services/intelligence"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const maxCardSize = 10 * 1024 * 1024 // 10MB

var allowedCardExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".pdf":  true,
}

// uploadCardHandler accepts an insurance card image, archives it, and
// extracts the plan text the client feeds back into the estimate form.
func (hb *HandlerBundle) uploadCardHandler(c *gin.Context) {
	logger := getLogger(c)

	file, header, err := c.Request.FormFile("card")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "card file is required", "details": err.Error()})
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedCardExts[ext] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported file type", "details": ext})
		return
	}

	tempFile, err := os.CreateTemp("", "card-*"+ext)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create temp file"})
		return
	}
	defer os.Remove(tempFile.Name())
	defer tempFile.Close()

	if _, err := io.Copy(tempFile, io.LimitReader(file, maxCardSize)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save card file"})
		return
	}

	ctx := c.Request.Context()

	// Archive the card so a failed extraction can be retried server-side.
	var publicID string
	if hb.Storage != nil {
		publicID, err = hb.Storage.UploadFile(ctx, tempFile.Name(), "insurance-cards")
		if err != nil {
			logger.Warn("Card archive upload failed", zap.Error(err))
		}
	}

	data, err := os.ReadFile(tempFile.Name())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read card file"})
		return
	}

	mimeType := mime.TypeByExtension(ext)
	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	planText, err := ai.ExtractPlanText(ctx, hb.Vision, mimeType, data)
	if err != nil {
		logger.Error("Plan text extraction failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not read the insurance card"})
		return
	}

	// The card served its purpose once the text is out.
	if hb.Storage != nil && publicID != "" {
		if err := hb.Storage.DeleteFile(ctx, publicID); err != nil {
			logger.Warn("Card cleanup failed", zap.String("publicID", publicID), zap.Error(err))
		}
	}

	c.JSON(http.StatusOK, gin.H{"insurance_input": planText})
}

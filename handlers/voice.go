// File: clearcare/handlers/voice.go
package handlers

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"clearcare/config"
	ai "clearcare/services/intelligence"

	speech "cloud.google.com/go/speech/apiv1"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"google.golang.org/api/option"
	speechpb "google.golang.org/genproto/googleapis/cloud/speech/v1"
)

const (
	maxAudioSize = 5 * 1024 * 1024 // 5MB
)

var allowedAudioExts = map[string]bool{
	".wav":  true,
	".webm": true,
	".m4a":  true,
	".mp3":  true,
	".ogg":  true,
}

// convertAudio transcodes any supported upload to LINEAR16 mono 16kHz,
// the format the recognizer expects.
func convertAudio(inputPath, outputPath string) error {
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		return fmt.Errorf("ffmpeg not found in system PATH: %v", err)
	}

	cmd := exec.Command("ffmpeg",
		"-y",
		"-i", inputPath,
		"-acodec", "pcm_s16le",
		"-ac", "1",
		"-ar", "16000",
		outputPath,
	)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("ffmpeg conversion failed: %s", stderr.String())
	}
	return nil
}

// voiceHandler transcribes a spoken request and classifies the
// transcript into the typed estimate fields.
func (hb *HandlerBundle) voiceHandler(c *gin.Context) {
	logger := getLogger(c)
	language := c.DefaultPostForm("language", "en-US")

	file, header, err := c.Request.FormFile("audio")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "audio file is required", "details": err.Error()})
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedAudioExts[ext] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported audio format", "details": ext})
		return
	}

	tempInput, err := os.CreateTemp("", "voice-*"+ext)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create temp file"})
		return
	}
	defer os.Remove(tempInput.Name())
	defer tempInput.Close()

	if _, err := io.Copy(tempInput, io.LimitReader(file, maxAudioSize)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save audio file"})
		return
	}

	tempOutput, err := os.CreateTemp("", "converted-*.wav")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create output temp file"})
		return
	}
	defer os.Remove(tempOutput.Name())
	defer tempOutput.Close()

	if err := convertAudio(tempInput.Name(), tempOutput.Name()); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "audio conversion failed", "details": err.Error()})
		return
	}

	audioData, err := os.ReadFile(tempOutput.Name())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read converted audio"})
		return
	}

	ctx := c.Request.Context()
	client, err := speech.NewClient(ctx, option.WithCredentialsFile(config.AppConfig.GoogleServiceAccountFile))
	if err != nil {
		logger.Error("Speech client init failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to initialize speech client"})
		return
	}
	defer client.Close()

	resp, err := client.Recognize(ctx, &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:          speechpb.RecognitionConfig_LINEAR16,
			SampleRateHertz:   16000,
			LanguageCode:      language,
			AudioChannelCount: 1,
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: audioData},
		},
	})
	if err != nil {
		logger.Error("Speech recognition failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "speech recognition failed"})
		return
	}

	var transcript strings.Builder
	for _, result := range resp.Results {
		for _, alt := range result.Alternatives {
			transcript.WriteString(alt.Transcript + " ")
		}
	}
	text := strings.TrimSpace(transcript.String())
	if text == "" {
		c.JSON(http.StatusOK, gin.H{"transcription": ""})
		return
	}

	fields, err := ai.ClassifyUtterance(ctx, hb.Fields, text)
	if err != nil {
		// A transcript without typed fields is still useful to the client.
		logger.Warn("Utterance classification failed", zap.Error(err))
		c.JSON(http.StatusOK, gin.H{"transcription": text})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"transcription":   text,
		"insurance_input": fields.InsuranceInput,
		"care_needed":     fields.CareNeeded,
		"zip_code":        fields.ZipCode,
	})
}

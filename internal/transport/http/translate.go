package httptransport

import (
	"context"
	"encoding/base64"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/JOHAALETRADER/bot-traductor-audio/internal/app/services"
	platformerrors "github.com/JOHAALETRADER/bot-traductor-audio/internal/platform/errors"
	"github.com/JOHAALETRADER/bot-traductor-audio/internal/platform/logging"
)

// MaxAudioSize caps uploaded voice notes at 20MB.
const MaxAudioSize = 20 * 1024 * 1024

// TranslateService exposes the pipeline over HTTP.
type TranslateService struct {
	pipeline *services.Pipeline
	logger   *logging.Logger
}

func NewTranslateService(pipeline *services.Pipeline, logger *logging.Logger) *TranslateService {
	return &TranslateService{pipeline: pipeline, logger: logger}
}

// Register mounts the translation routes on the API group.
func (s *TranslateService) Register(ctx context.Context, router *gin.RouterGroup) error {
	router.POST("/translate", s.handleTranslate)
	s.logger.InfoTag("HTTP", "translate routes registered")
	return nil
}

type transcriptRequest struct {
	TranscriptA string `json:"transcript_a"`
	TranscriptB string `json:"transcript_b"`
}

type translateResponse struct {
	RequestID      string   `json:"request_id"`
	SourceText     string   `json:"source_text"`
	SourceLanguage string   `json:"source_language"`
	TargetLanguage string   `json:"target_language"`
	TranslatedText string   `json:"translated_text"`
	Provider       string   `json:"provider"`
	Reconciled     bool     `json:"reconciled"`
	Audio          string   `json:"audio,omitempty"`
	AudioProvider  string   `json:"audio_provider,omitempty"`
	Tempo          float64  `json:"tempo,omitempty"`
	DurationMs     int64    `json:"duration_ms,omitempty"`
	Notices        []string `json:"notices,omitempty"`
}

// handleTranslate accepts either a multipart voice upload in the "audio"
// field or a JSON body with both recognizer transcripts.
func (s *TranslateService) handleTranslate(c *gin.Context) {
	req, ok := s.buildRequest(c)
	if !ok {
		return
	}

	result, err := s.pipeline.Process(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, platformerrors.ErrNoSpeech) {
			RespondError(c, http.StatusUnprocessableEntity, "no speech detected", nil)
			return
		}
		s.logger.ErrorTag("HTTP", "translate request failed: %v", err)
		RespondError(c, http.StatusInternalServerError, "pipeline failure", nil)
		return
	}

	resp := translateResponse{
		RequestID:      result.RequestID,
		SourceText:     result.SourceText,
		SourceLanguage: result.SourceLanguage.String(),
		TargetLanguage: result.TargetLanguage.String(),
		TranslatedText: result.TranslatedText,
		Provider:       string(result.Provider),
		Reconciled:     result.Reconciled,
		AudioProvider:  result.AudioProvider,
		Tempo:          result.Tempo,
		DurationMs:     result.AudioDuration.Milliseconds(),
		Notices:        result.Notices,
	}
	if len(result.Audio) > 0 {
		resp.Audio = base64.StdEncoding.EncodeToString(result.Audio)
	}

	RespondSuccess(c, http.StatusOK, resp, "")
}

func (s *TranslateService) buildRequest(c *gin.Context) (services.Request, bool) {
	if file, err := c.FormFile("audio"); err == nil {
		if file.Size > MaxAudioSize {
			RespondError(c, http.StatusRequestEntityTooLarge, "audio exceeds size limit", nil)
			return services.Request{}, false
		}

		f, err := file.Open()
		if err != nil {
			RespondError(c, http.StatusBadRequest, "cannot read audio upload", nil)
			return services.Request{}, false
		}
		defer f.Close()

		audio, err := io.ReadAll(io.LimitReader(f, MaxAudioSize+1))
		if err != nil {
			RespondError(c, http.StatusBadRequest, "cannot read audio upload", nil)
			return services.Request{}, false
		}
		return services.Request{Audio: audio}, true
	}

	var body transcriptRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		RespondError(c, http.StatusBadRequest, "expected an audio upload or a transcript body", nil)
		return services.Request{}, false
	}

	return services.Request{
		TranscriptA: body.TranscriptA,
		TranscriptB: body.TranscriptB,
	}, true
}

package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"falaclara/internal/ai"
	"falaclara/internal/diagnosis"
	"falaclara/internal/model"
	"falaclara/internal/storage"
	"falaclara/internal/utils"
)

const (
	audioField = "audio"
	userField  = "usuarioId"
)

// DiagnosisRunner runs the audio diagnosis pipeline
type DiagnosisRunner interface {
	Run(ctx context.Context, sub diagnosis.Submission) (*model.DiagnosisResult, error)
}

// Handlers holds the collaborators of the HTTP layer
type Handlers struct {
	pipeline  DiagnosisRunner
	llm       ai.Provider
	uploadDir string
}

// NewHandlers creates the HTTP handlers
func NewHandlers(pipeline DiagnosisRunner, llm ai.Provider, uploadDir string) *Handlers {
	return &Handlers{
		pipeline:  pipeline,
		llm:       llm,
		uploadDir: uploadDir,
	}
}

func RegisterRoutes(r *gin.Engine, h *Handlers) {
	// Health check
	r.GET("/health", healthCheck)

	r.POST("/diagnostico", h.diagnose)
	r.POST("/analisar", h.analyze)
}

// healthCheck returns server health status
func healthCheck(c *gin.Context) {
	utils.Success(c, gin.H{
		"status":  "ok",
		"service": "falaclara",
	})
}

// diagnose handles POST /diagnostico
func (h *Handlers) diagnose(c *gin.Context) {
	log.Info().Str("content_type", c.GetHeader("Content-Type")).Msg("[Diagnostico] request received")

	sub := diagnosis.Submission{UserID: c.PostForm(userField)}

	if file, err := c.FormFile(audioField); err == nil {
		audio, err := storage.SaveAudio(h.uploadDir, file)
		if err != nil {
			log.Error().Err(err).Msg("[Diagnostico] failed to store upload")
			utils.Error(c, http.StatusInternalServerError, "Falha ao salvar arquivo de áudio.")
			return
		}
		log.Info().Str("filename", file.Filename).Int64("size", audio.Size).
			Str("mime", file.Header.Get("Content-Type")).Msg("[Diagnostico] audio received")
		sub.Audio = audio
	} else {
		log.Warn().Err(err).Msg("[Diagnostico] no audio file in request")
	}

	res, err := h.pipeline.Run(c.Request.Context(), sub)
	if err != nil {
		var de *diagnosis.Error
		if errors.As(err, &de) {
			status := http.StatusInternalServerError
			if de.Kind == diagnosis.KindInvalidInput {
				status = http.StatusBadRequest
			}
			utils.Error(c, status, de.Message)
			return
		}
		log.Error().Err(err).Msg("[Diagnostico] unexpected failure")
		utils.Error(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, res)
}

// AnalyzeRequest carries metrics already computed by the client.
// Numbers may arrive as JSON numbers or numeric strings.
type AnalyzeRequest struct {
	Transcript        string       `json:"transcript" binding:"required"`
	WordsPerMinute    *json.Number `json:"wordsPerMinute" binding:"required"`
	LowConfidenceRate *json.Number `json:"lowConfidenceRate" binding:"required"`
	Muletas           *json.Number `json:"muletas" binding:"required"`
}

// analyze handles POST /analisar and returns the provider response untouched
func (h *Handlers) analyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "Dados insuficientes para diagnóstico.")
		return
	}

	prompt := ai.RenderDiagnosisPrompt(
		req.Transcript,
		req.WordsPerMinute.String(),
		req.LowConfidenceRate.String(),
		req.Muletas.String(),
	)

	gen, err := h.llm.Generate(c.Request.Context(), prompt)
	if err != nil {
		log.Error().Err(err).Str("provider", h.llm.Name()).Msg("[Analisar] language model call failed")
	}
	if gen == nil || len(gen.Raw) == 0 {
		msg := "empty response from language model"
		if err != nil {
			msg = err.Error()
		}
		utils.Error(c, http.StatusInternalServerError, msg)
		return
	}

	c.JSON(http.StatusOK, gin.H{"gemini": gen.Raw})
}

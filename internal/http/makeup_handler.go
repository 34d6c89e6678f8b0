package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"nail-llm/internal/domain"
	"nail-llm/internal/service"
)

// MakeupHandler mantiene dependencias para los endpoints de elicitacion.
type MakeupHandler struct {
	logger    *zap.Logger
	elicitSvc *service.ElicitationService
}

// NewMakeupHandler crea una instancia de MakeupHandler.
func NewMakeupHandler(logger *zap.Logger, elicitSvc *service.ElicitationService) *MakeupHandler {
	return &MakeupHandler{
		logger:    logger,
		elicitSvc: elicitSvc,
	}
}

// Start maneja POST /api/makeup: multipart con la foto y las selecciones.
func (h *MakeupHandler) Start(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		h.logger.Warn("missing nail photo", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "爪の写真が必要です"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.logger.Warn("open nail photo failed", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "爪の写真が読み込めません"})
		return
	}
	defer file.Close()

	image, err := io.ReadAll(file)
	if err != nil {
		h.logger.Warn("read nail photo failed", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "爪の写真が読み込めません"})
		return
	}

	var raw map[string][]string
	if c.Request.MultipartForm != nil {
		raw = c.Request.MultipartForm.Value
	}
	form := domain.NewSelectionSet(raw)

	resp, err := h.elicitSvc.Start(c.Request.Context(), form, image)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Answer maneja POST /api/makeup/answer: una respuesta faltante por token.
func (h *MakeupHandler) Answer(c *gin.Context) {
	var req struct {
		Token      string `json:"token" binding:"required"`
		QuestionID string `json:"question_id" binding:"required"`
		Answer     string `json:"answer"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid answer request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	resp, err := h.elicitSvc.Answer(c.Request.Context(), req.Token, req.QuestionID, req.Answer)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// respondError mapea la taxonomia de errores de dominio a codigos HTTP.
func (h *MakeupHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrMissingImage):
		c.JSON(http.StatusBadRequest, gin.H{"error": "爪の写真が必要です"})
	case errors.Is(err, domain.ErrEmptyAnswer):
		c.JSON(http.StatusBadRequest, gin.H{"error": "回答が空です"})
	case errors.Is(err, domain.ErrUnknownQuestion):
		c.JSON(http.StatusBadRequest, gin.H{"error": "不明な質問です"})
	case errors.Is(err, domain.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "セッションが見つかりません。最初からやり直してください"})
	case errors.Is(err, domain.ErrNoCandidates):
		h.logger.Error("candidate generation unavailable", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "デザイン生成サービスが利用できません"})
	default:
		h.logger.Error("elicitation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not process request"})
	}
}

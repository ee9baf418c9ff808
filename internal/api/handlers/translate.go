package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kurenaio/ayt-dictionary/internal/api/middleware"
	"github.com/kurenaio/ayt-dictionary/internal/catalogue"
	"github.com/kurenaio/ayt-dictionary/internal/engine"
	"github.com/kurenaio/ayt-dictionary/internal/metrics"
	"github.com/kurenaio/ayt-dictionary/internal/translator"
)

// TranslateHandler serves POST /api/translate (spec.md §6): it binds
// the per-request backend by target language, builds the eligible term
// list (spec.md §4.1), and runs the Dictionary Engine over the request
// text.
type TranslateHandler struct {
	store    catalogue.Store
	backends map[string]translator.Translator
}

// NewTranslateHandler takes the catalogue store and the target-language
// -> backend binding resolved from config at startup (the original
// config.rs's per-language Translator fields, SPEC_FULL.md §5).
func NewTranslateHandler(store catalogue.Store, backends map[string]translator.Translator) *TranslateHandler {
	return &TranslateHandler{store: store, backends: backends}
}

type translateRequest struct {
	Text string `json:"text" binding:"required"`
}

type translateResponse struct {
	Translation string `json:"translation"`
}

// Translate handles POST /api/translate?to=en|zh.
func (h *TranslateHandler) Translate(c *gin.Context) {
	targetLang := c.Query("to")
	backend, ok := h.backends[targetLang]
	if !ok {
		c.Error(middleware.BadRequest("unsupported target language: " + targetLang))
		return
	}

	var req translateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(middleware.BadRequest("invalid request body: " + err.Error()))
		return
	}

	eligible, err := catalogue.Eligible(c.Request.Context(), h.store, targetLang, backend.Name())
	if err != nil {
		c.Error(err)
		return
	}

	eng := engine.New(backend, eligible)

	start := time.Now()
	translation, err := eng.Translate(c.Request.Context(), req.Text)
	metrics.TranslationDuration.WithLabelValues(backend.Name()).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.TranslationErrorsTotal.WithLabelValues(backend.Name()).Inc()
		c.Error(err)
		return
	}
	metrics.TranslationRequestsTotal.WithLabelValues(backend.Name(), targetLang).Inc()

	c.JSON(http.StatusOK, translateResponse{Translation: translation})
}

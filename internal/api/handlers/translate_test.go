package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kurenaio/ayt-dictionary/internal/api/middleware"
	"github.com/kurenaio/ayt-dictionary/internal/catalogue"
	"github.com/kurenaio/ayt-dictionary/internal/translator"
)

func TestTranslateAppliesEligibleTerms(t *testing.T) {
	store, err := catalogue.NewFileStore(filepath.Join(t.TempDir(), "terms.ndjson"))
	require.NoError(t, err)
	_, err = store.Insert(context.Background(), mustHandlerTerm(t, "猫", "cat"))
	require.NoError(t, err)

	router := gin.New()
	router.Use(middleware.ErrorHandler())
	h := NewTranslateHandler(store, map[string]translator.Translator{"en": translator.Nop{}})
	router.POST("/api/translate", h.Translate)

	body := `{"text":"猫が好き"}`
	req := httptest.NewRequest(http.MethodPost, "/api/translate?to=en", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp translateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "catが好き", resp.Translation)
}

func TestTranslateUnsupportedLanguage(t *testing.T) {
	store, err := catalogue.NewFileStore(filepath.Join(t.TempDir(), "terms.ndjson"))
	require.NoError(t, err)

	router := gin.New()
	router.Use(middleware.ErrorHandler())
	h := NewTranslateHandler(store, map[string]translator.Translator{"en": translator.Nop{}})
	router.POST("/api/translate", h.Translate)

	req := httptest.NewRequest(http.MethodPost, "/api/translate?to=fr", bytes.NewBufferString(`{"text":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

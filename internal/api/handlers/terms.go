// Package handlers implements the Gin handlers for the term catalogue
// CRUD surface and the /translate endpoint (spec.md §6), following the
// teacher's handler shape (a struct wrapping its collaborators,
// constructed once in routes.go and referenced by method value).
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kurenaio/ayt-dictionary/internal/api/middleware"
	"github.com/kurenaio/ayt-dictionary/internal/catalogue"
	"github.com/kurenaio/ayt-dictionary/internal/term"
)

// withID re-serializes a term.Term and splices in its catalogue id.
// term.Term's own MarshalJSON deliberately omits ID (spec.md §6's wire
// format has no id field; it's catalogue bookkeeping, not core term
// data), but HTTP callers need it back to address PUT/DELETE, so the
// handler layer adds it on the way out.
func withID(t term.Term) (map[string]json.RawMessage, error) {
	body, err := json.Marshal(t)
	if err != nil {
		return nil, err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, err
	}
	idBytes, err := json.Marshal(t.ID)
	if err != nil {
		return nil, err
	}
	fields["id"] = idBytes
	return fields, nil
}

// TermHandler serves the term catalogue CRUD routes from spec.md §6.
type TermHandler struct {
	store catalogue.Store
}

func NewTermHandler(store catalogue.Store) *TermHandler {
	return &TermHandler{store: store}
}

// ListTerms handles GET /api/terms: a catalogue snapshot, unsorted
// (spec.md §4.1 — ordering is not relied on; the core re-sorts).
func (h *TermHandler) ListTerms(c *gin.Context) {
	terms, err := h.store.Snapshot(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	out := make([]map[string]json.RawMessage, 0, len(terms))
	for _, t := range terms {
		withIDFields, err := withID(t)
		if err != nil {
			c.Error(err)
			return
		}
		out = append(out, withIDFields)
	}
	c.JSON(http.StatusOK, out)
}

// GetTerm handles GET /api/term/:id.
func (h *TermHandler) GetTerm(c *gin.Context) {
	t, err := h.store.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(wrapStoreErr(err))
		return
	}
	withIDFields, err := withID(t)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, withIDFields)
}

// CreateTerm handles POST /api/term. The regex is compiled by
// term.UnmarshalJSON during binding, so an invalid pattern is rejected
// at ingest per spec.md §7 before it ever reaches the store.
func (h *TermHandler) CreateTerm(c *gin.Context) {
	var t term.Term
	if err := c.ShouldBindJSON(&t); err != nil {
		c.Error(middleware.BadRequest("invalid term: " + err.Error()))
		return
	}

	id, err := h.store.Insert(c.Request.Context(), t)
	if err != nil {
		c.Error(err)
		return
	}
	t.ID = id
	withIDFields, err := withID(t)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, withIDFields)
}

// UpdateTerm handles PUT /api/term/:id.
func (h *TermHandler) UpdateTerm(c *gin.Context) {
	var t term.Term
	if err := c.ShouldBindJSON(&t); err != nil {
		c.Error(middleware.BadRequest("invalid term: " + err.Error()))
		return
	}

	id := c.Param("id")
	if err := h.store.UpdateByID(c.Request.Context(), id, t); err != nil {
		c.Error(wrapStoreErr(err))
		return
	}
	t.ID = id
	withIDFields, err := withID(t)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, withIDFields)
}

// DeleteTerm handles DELETE /api/term/:id.
func (h *TermHandler) DeleteTerm(c *gin.Context) {
	if err := h.store.Delete(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(wrapStoreErr(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{})
}

func wrapStoreErr(err error) error {
	if errors.Is(err, catalogue.ErrNotFound) {
		return middleware.NotFound("term id does not exist")
	}
	return err
}

// Package viewer implements the HTTP handlers behind cmd/bpview, a small
// local server for ad-hoc inspection of one already-decoded library file.
package viewer

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/forgeware/bpdecode/internal/diagnostics"
	"github.com/forgeware/bpdecode/internal/prototype"
)

// Handler serves one decoded library's export document over REST.
type Handler struct {
	document map[string]interface{}
	index    *prototype.Index
	skipped  *diagnostics.SkipReport
	filename string
}

// NewHandler builds a Handler around an already-decoded library.
func NewHandler(filename string, document map[string]interface{}, index *prototype.Index, skipped *diagnostics.SkipReport) *Handler {
	return &Handler{document: document, index: index, skipped: skipped, filename: filename}
}

// RequestID stamps every request with a UUID, the same role uuid plays
// for session/upload/file identifiers elsewhere in the stack.
func RequestID(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Response().Header().Set("X-Request-Id", uuid.NewString())
		return next(c)
	}
}

// HandleHealth reports the server is up and which file it is serving.
func (h *Handler) HandleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":   "ok",
		"filename": h.filename,
	})
}

// HandleListSlots returns every top-level slot (blueprint, blueprint-book,
// deconstruction planner, upgrade planner) without its body, for a quick
// index view.
func (h *Handler) HandleListSlots(c echo.Context) error {
	slots, _ := h.document["blueprints"].([]interface{})
	summaries := make([]map[string]interface{}, 0, len(slots))
	for _, s := range slots {
		slot, ok := s.(map[string]interface{})
		if !ok {
			continue
		}
		summary := map[string]interface{}{"index": slot["index"], "generation": slot["generation"]}
		for _, key := range []string{"blueprint", "blueprint_book", "deconstruction_planner", "upgrade_planner"} {
			body, ok := slot[key].(map[string]interface{})
			if !ok {
				continue
			}
			summary["kind"] = key
			summary["item"] = body["item"]
			summary["label"] = body["label"]
		}
		summaries = append(summaries, summary)
	}
	return c.JSON(http.StatusOK, summaries)
}

// HandleGetSlot returns the full body of a single slot by its 0-based index.
func (h *Handler) HandleGetSlot(c echo.Context) error {
	idx, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "index must be an integer"})
	}
	slots, _ := h.document["blueprints"].([]interface{})
	for _, s := range slots {
		slot, ok := s.(map[string]interface{})
		if !ok {
			continue
		}
		if n, _ := slot["index"].(int); n == idx {
			return c.JSON(http.StatusOK, slot)
		}
	}
	return c.JSON(http.StatusNotFound, map[string]string{"error": "no such slot"})
}

// HandlePrototypeIndex returns the whole prototype index as a flat list.
func (h *Handler) HandlePrototypeIndex(c echo.Context) error {
	if h.index == nil {
		return c.JSON(http.StatusOK, []prototype.Snapshot{})
	}
	return c.JSON(http.StatusOK, h.index.All())
}

// HandleSkipped returns the slots that were skipped during decoding, if
// skip-bad recovery was enabled.
func (h *Handler) HandleSkipped(c echo.Context) error {
	if h.skipped == nil {
		return c.JSON(http.StatusOK, []diagnostics.SkippedSlot{})
	}
	return c.JSON(http.StatusOK, h.skipped.Skipped)
}

package nav

import (
	"net/http"

	"github.com/PabloGitu/bookmanagerrmh2/internal/httpx"
)

type HTTPHandler struct {
	entries []Entry
}

func NewHTTPHandler(entries []Entry) *HTTPHandler {
	return &HTTPHandler{entries: entries}
}

// List handles GET /api/entities.
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, h.entries)
}

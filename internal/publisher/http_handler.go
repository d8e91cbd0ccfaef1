package publisher

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/PabloGitu/bookmanagerrmh2/internal/httpx"
	"github.com/PabloGitu/bookmanagerrmh2/internal/logger"
	"github.com/PabloGitu/bookmanagerrmh2/internal/paging"
)

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}

// Create handles POST /api/publishers.
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	var p Publisher
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		httpx.WriteProblem(w, http.StatusBadRequest, "Malformed JSON body", "error.http.400")
		return
	}
	logger.For(r.Context()).Debugf("REST request to save Publisher : %+v", p)

	if p.ID != 0 {
		httpx.WriteBadRequestAlert(w, "A new publisher cannot already have an ID", EntityName, "idexists")
		return
	}
	if err := httpx.Validate(p); err != nil {
		httpx.WriteValidationProblem(w, httpx.ValidationFieldErrors(EntityName, err))
		return
	}

	if err := h.service.Save(r.Context(), &p); err != nil {
		logger.For(r.Context()).WithError(err).Error("saving publisher failed")
		httpx.WriteInternalError(w)
		return
	}

	id := strconv.FormatInt(p.ID, 10)
	w.Header().Set("Location", "/api/publishers/"+id)
	httpx.SetEntityCreationAlert(w.Header(), EntityName, id)
	httpx.WriteJSON(w, http.StatusCreated, p)
}

// Update handles PUT /api/publishers.
func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) {
	var p Publisher
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		httpx.WriteProblem(w, http.StatusBadRequest, "Malformed JSON body", "error.http.400")
		return
	}
	logger.For(r.Context()).Debugf("REST request to update Publisher : %+v", p)

	if p.ID == 0 {
		httpx.WriteBadRequestAlert(w, "Invalid id", EntityName, "idnull")
		return
	}
	if err := httpx.Validate(p); err != nil {
		httpx.WriteValidationProblem(w, httpx.ValidationFieldErrors(EntityName, err))
		return
	}

	if err := h.service.Save(r.Context(), &p); err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.WriteNotFound(w)
			return
		}
		logger.For(r.Context()).WithError(err).Error("updating publisher failed")
		httpx.WriteInternalError(w)
		return
	}

	httpx.SetEntityUpdateAlert(w.Header(), EntityName, strconv.FormatInt(p.ID, 10))
	httpx.WriteJSON(w, http.StatusOK, p)
}

// List handles GET /api/publishers.
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	logger.For(r.Context()).Debug("REST request to get a page of Publishers")

	page := paging.Parse(r.URL.Query())
	publishers, total, err := h.service.FindAll(r.Context(), page)
	if err != nil {
		logger.For(r.Context()).WithError(err).Error("listing publishers failed")
		httpx.WriteInternalError(w)
		return
	}

	httpx.WritePaginationHeaders(w, r, page, total)
	httpx.WriteJSON(w, http.StatusOK, publishers)
}

// Get handles GET /api/publishers/{id}.
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httpx.WriteBadRequestAlert(w, "Invalid id", EntityName, "idinvalid")
		return
	}
	logger.For(r.Context()).Debugf("REST request to get Publisher : %d", id)

	p, err := h.service.FindOne(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.WriteNotFound(w)
			return
		}
		logger.For(r.Context()).WithError(err).Error("loading publisher failed")
		httpx.WriteInternalError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, p)
}

// Delete handles DELETE /api/publishers/{id}.
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httpx.WriteBadRequestAlert(w, "Invalid id", EntityName, "idinvalid")
		return
	}
	logger.For(r.Context()).Debugf("REST request to delete Publisher : %d", id)

	if _, err := h.service.Delete(r.Context(), id); err != nil {
		logger.For(r.Context()).WithError(err).Error("deleting publisher failed")
		httpx.WriteInternalError(w)
		return
	}

	httpx.SetEntityDeletionAlert(w.Header(), EntityName, strconv.FormatInt(id, 10))
	w.WriteHeader(http.StatusOK)
}

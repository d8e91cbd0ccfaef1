package author

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

// Create handles POST /api/authors.
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	var a Author
	if err := json.NewDecoder(r.Body).Decode(&a); err != nil {
		httpx.WriteProblem(w, http.StatusBadRequest, "Malformed JSON body", "error.http.400")
		return
	}
	logger.For(r.Context()).Debugf("REST request to save Author : %+v", a)

	if a.ID != 0 {
		httpx.WriteBadRequestAlert(w, "A new author cannot already have an ID", EntityName, "idexists")
		return
	}
	if err := httpx.Validate(a); err != nil {
		httpx.WriteValidationProblem(w, httpx.ValidationFieldErrors(EntityName, err))
		return
	}

	if err := h.service.Save(r.Context(), &a); err != nil {
		logger.For(r.Context()).WithError(err).Error("saving author failed")
		httpx.WriteInternalError(w)
		return
	}

	id := strconv.FormatInt(a.ID, 10)
	w.Header().Set("Location", "/api/authors/"+id)
	httpx.SetEntityCreationAlert(w.Header(), EntityName, id)
	httpx.WriteJSON(w, http.StatusCreated, a)
}

// Update handles PUT /api/authors.
func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) {
	var a Author
	if err := json.NewDecoder(r.Body).Decode(&a); err != nil {
		httpx.WriteProblem(w, http.StatusBadRequest, "Malformed JSON body", "error.http.400")
		return
	}
	logger.For(r.Context()).Debugf("REST request to update Author : %+v", a)

	if a.ID == 0 {
		httpx.WriteBadRequestAlert(w, "Invalid id", EntityName, "idnull")
		return
	}
	if err := httpx.Validate(a); err != nil {
		httpx.WriteValidationProblem(w, httpx.ValidationFieldErrors(EntityName, err))
		return
	}

	if err := h.service.Save(r.Context(), &a); err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.WriteNotFound(w)
			return
		}
		logger.For(r.Context()).WithError(err).Error("updating author failed")
		httpx.WriteInternalError(w)
		return
	}

	httpx.SetEntityUpdateAlert(w.Header(), EntityName, strconv.FormatInt(a.ID, 10))
	httpx.WriteJSON(w, http.StatusOK, a)
}

// List handles GET /api/authors.
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	logger.For(r.Context()).Debug("REST request to get a page of Authors")

	p := paging.Parse(r.URL.Query())
	authors, total, err := h.service.FindAll(r.Context(), p)
	if err != nil {
		logger.For(r.Context()).WithError(err).Error("listing authors failed")
		httpx.WriteInternalError(w)
		return
	}

	httpx.WritePaginationHeaders(w, r, p, total)
	httpx.WriteJSON(w, http.StatusOK, authors)
}

// Get handles GET /api/authors/{id}.
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httpx.WriteBadRequestAlert(w, "Invalid id", EntityName, "idinvalid")
		return
	}
	logger.For(r.Context()).Debugf("REST request to get Author : %d", id)

	a, err := h.service.FindOne(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.WriteNotFound(w)
			return
		}
		logger.For(r.Context()).WithError(err).Error("loading author failed")
		httpx.WriteInternalError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, a)
}

// Delete handles DELETE /api/authors/{id}.
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httpx.WriteBadRequestAlert(w, "Invalid id", EntityName, "idinvalid")
		return
	}
	logger.For(r.Context()).Debugf("REST request to delete Author : %d", id)

	if _, err := h.service.Delete(r.Context(), id); err != nil {
		logger.For(r.Context()).WithError(err).Error("deleting author failed")
		httpx.WriteInternalError(w)
		return
	}

	httpx.SetEntityDeletionAlert(w.Header(), EntityName, strconv.FormatInt(id, 10))
	w.WriteHeader(http.StatusOK)
}

package comment

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

// Create handles POST /api/comments.
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	var c Comment
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		httpx.WriteProblem(w, http.StatusBadRequest, "Malformed JSON body", "error.http.400")
		return
	}
	logger.For(r.Context()).Debugf("REST request to save Comment : %+v", c)

	if c.ID != 0 {
		httpx.WriteBadRequestAlert(w, "A new comment cannot already have an ID", EntityName, "idexists")
		return
	}
	if err := httpx.Validate(c); err != nil {
		httpx.WriteValidationProblem(w, httpx.ValidationFieldErrors(EntityName, err))
		return
	}

	if err := h.service.Save(r.Context(), &c); err != nil {
		logger.For(r.Context()).WithError(err).Error("saving comment failed")
		httpx.WriteInternalError(w)
		return
	}

	id := strconv.FormatInt(c.ID, 10)
	w.Header().Set("Location", "/api/comments/"+id)
	httpx.SetEntityCreationAlert(w.Header(), EntityName, id)
	httpx.WriteJSON(w, http.StatusCreated, c)
}

// Update handles PUT /api/comments.
func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) {
	var c Comment
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		httpx.WriteProblem(w, http.StatusBadRequest, "Malformed JSON body", "error.http.400")
		return
	}
	logger.For(r.Context()).Debugf("REST request to update Comment : %+v", c)

	if c.ID == 0 {
		httpx.WriteBadRequestAlert(w, "Invalid id", EntityName, "idnull")
		return
	}
	if err := httpx.Validate(c); err != nil {
		httpx.WriteValidationProblem(w, httpx.ValidationFieldErrors(EntityName, err))
		return
	}

	if err := h.service.Save(r.Context(), &c); err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.WriteNotFound(w)
			return
		}
		logger.For(r.Context()).WithError(err).Error("updating comment failed")
		httpx.WriteInternalError(w)
		return
	}

	httpx.SetEntityUpdateAlert(w.Header(), EntityName, strconv.FormatInt(c.ID, 10))
	httpx.WriteJSON(w, http.StatusOK, c)
}

// List handles GET /api/comments.
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	logger.For(r.Context()).Debug("REST request to get a page of Comments")

	p := paging.Parse(r.URL.Query())
	comments, total, err := h.service.FindAll(r.Context(), p)
	if err != nil {
		logger.For(r.Context()).WithError(err).Error("listing comments failed")
		httpx.WriteInternalError(w)
		return
	}

	httpx.WritePaginationHeaders(w, r, p, total)
	httpx.WriteJSON(w, http.StatusOK, comments)
}

// ListByBook handles GET /api/comments/book/{id}.
func (h *HTTPHandler) ListByBook(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httpx.WriteBadRequestAlert(w, "Invalid id", EntityName, "idinvalid")
		return
	}
	logger.For(r.Context()).Debugf("REST request to get Comments by Book : %d", id)

	p := paging.Parse(r.URL.Query())
	comments, total, err := h.service.FindByBook(r.Context(), id, p)
	if err != nil {
		logger.For(r.Context()).WithError(err).Error("listing comments by book failed")
		httpx.WriteInternalError(w)
		return
	}

	httpx.WritePaginationHeaders(w, r, p, total)
	httpx.WriteJSON(w, http.StatusOK, comments)
}

// Get handles GET /api/comments/{id}.
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httpx.WriteBadRequestAlert(w, "Invalid id", EntityName, "idinvalid")
		return
	}
	logger.For(r.Context()).Debugf("REST request to get Comment : %d", id)

	c, err := h.service.FindOne(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.WriteNotFound(w)
			return
		}
		logger.For(r.Context()).WithError(err).Error("loading comment failed")
		httpx.WriteInternalError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, c)
}

// Delete handles DELETE /api/comments/{id}.
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httpx.WriteBadRequestAlert(w, "Invalid id", EntityName, "idinvalid")
		return
	}
	logger.For(r.Context()).Debugf("REST request to delete Comment : %d", id)

	if _, err := h.service.Delete(r.Context(), id); err != nil {
		logger.For(r.Context()).WithError(err).Error("deleting comment failed")
		httpx.WriteInternalError(w)
		return
	}

	httpx.SetEntityDeletionAlert(w.Header(), EntityName, strconv.FormatInt(id, 10))
	w.WriteHeader(http.StatusOK)
}

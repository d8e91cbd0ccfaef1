package book

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

// Create handles POST /api/books.
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	var b Book
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
		httpx.WriteProblem(w, http.StatusBadRequest, "Malformed JSON body", "error.http.400")
		return
	}
	logger.For(r.Context()).Debugf("REST request to save Book : %+v", b)

	if b.ID != 0 {
		httpx.WriteBadRequestAlert(w, "A new book cannot already have an ID", EntityName, "idexists")
		return
	}
	if err := httpx.Validate(b); err != nil {
		httpx.WriteValidationProblem(w, httpx.ValidationFieldErrors(EntityName, err))
		return
	}

	if err := h.service.Save(r.Context(), &b); err != nil {
		logger.For(r.Context()).WithError(err).Error("saving book failed")
		httpx.WriteInternalError(w)
		return
	}

	id := strconv.FormatInt(b.ID, 10)
	w.Header().Set("Location", "/api/books/"+id)
	httpx.SetEntityCreationAlert(w.Header(), EntityName, id)
	httpx.WriteJSON(w, http.StatusCreated, b)
}

// Update handles PUT /api/books.
func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) {
	var b Book
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
		httpx.WriteProblem(w, http.StatusBadRequest, "Malformed JSON body", "error.http.400")
		return
	}
	logger.For(r.Context()).Debugf("REST request to update Book : %+v", b)

	if b.ID == 0 {
		httpx.WriteBadRequestAlert(w, "Invalid id", EntityName, "idnull")
		return
	}
	if err := httpx.Validate(b); err != nil {
		httpx.WriteValidationProblem(w, httpx.ValidationFieldErrors(EntityName, err))
		return
	}

	if err := h.service.Save(r.Context(), &b); err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.WriteNotFound(w)
			return
		}
		logger.For(r.Context()).WithError(err).Error("updating book failed")
		httpx.WriteInternalError(w)
		return
	}

	httpx.SetEntityUpdateAlert(w.Header(), EntityName, strconv.FormatInt(b.ID, 10))
	httpx.WriteJSON(w, http.StatusOK, b)
}

// List handles GET /api/books.
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	logger.For(r.Context()).Debug("REST request to get a page of Books")

	p := paging.Parse(r.URL.Query())
	books, total, err := h.service.FindAll(r.Context(), p)
	if err != nil {
		logger.For(r.Context()).WithError(err).Error("listing books failed")
		httpx.WriteInternalError(w)
		return
	}

	httpx.WritePaginationHeaders(w, r, p, total)
	httpx.WriteJSON(w, http.StatusOK, books)
}

// ListByAuthor handles GET /api/books/author/{id}.
func (h *HTTPHandler) ListByAuthor(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httpx.WriteBadRequestAlert(w, "Invalid id", EntityName, "idinvalid")
		return
	}
	logger.For(r.Context()).Debugf("REST request to get Books by Author : %d", id)

	p := paging.Parse(r.URL.Query())
	books, total, err := h.service.FindByAuthor(r.Context(), id, p)
	if err != nil {
		logger.For(r.Context()).WithError(err).Error("listing books by author failed")
		httpx.WriteInternalError(w)
		return
	}

	httpx.WritePaginationHeaders(w, r, p, total)
	httpx.WriteJSON(w, http.StatusOK, books)
}

// ListByPublisher handles GET /api/books/publisher/{id}.
func (h *HTTPHandler) ListByPublisher(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httpx.WriteBadRequestAlert(w, "Invalid id", EntityName, "idinvalid")
		return
	}
	logger.For(r.Context()).Debugf("REST request to get Books by Publisher : %d", id)

	p := paging.Parse(r.URL.Query())
	books, total, err := h.service.FindByPublisher(r.Context(), id, p)
	if err != nil {
		logger.For(r.Context()).WithError(err).Error("listing books by publisher failed")
		httpx.WriteInternalError(w)
		return
	}

	httpx.WritePaginationHeaders(w, r, p, total)
	httpx.WriteJSON(w, http.StatusOK, books)
}

// Get handles GET /api/books/{id}.
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httpx.WriteBadRequestAlert(w, "Invalid id", EntityName, "idinvalid")
		return
	}
	logger.For(r.Context()).Debugf("REST request to get Book : %d", id)

	b, err := h.service.FindOne(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.WriteNotFound(w)
			return
		}
		logger.For(r.Context()).WithError(err).Error("loading book failed")
		httpx.WriteInternalError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, b)
}

// Delete handles DELETE /api/books/{id}. Deleting an id that is already
// gone still answers 200 so retries stay safe.
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httpx.WriteBadRequestAlert(w, "Invalid id", EntityName, "idinvalid")
		return
	}
	logger.For(r.Context()).Debugf("REST request to delete Book : %d", id)

	if _, err := h.service.Delete(r.Context(), id); err != nil {
		logger.For(r.Context()).WithError(err).Error("deleting book failed")
		httpx.WriteInternalError(w)
		return
	}

	httpx.SetEntityDeletionAlert(w.Header(), EntityName, strconv.FormatInt(id, 10))
	w.WriteHeader(http.StatusOK)
}

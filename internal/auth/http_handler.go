package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/PabloGitu/bookmanagerrmh2/internal/httpx"
	"github.com/PabloGitu/bookmanagerrmh2/internal/logger"
)

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

type loginVM struct {
	Username   string `json:"username" validate:"required,min=1,max=50"`
	Password   string `json:"password" validate:"required,min=4,max=100"`
	RememberMe bool   `json:"rememberMe"`
}

// Authenticate handles POST /api/authenticate. The token comes back in
// the body and is mirrored in the Authorization header.
func (h *HTTPHandler) Authenticate(w http.ResponseWriter, r *http.Request) {
	var vm loginVM
	if err := json.NewDecoder(r.Body).Decode(&vm); err != nil {
		httpx.WriteProblem(w, http.StatusBadRequest, "Malformed JSON body", "error.http.400")
		return
	}
	if err := httpx.Validate(vm); err != nil {
		httpx.WriteValidationProblem(w, httpx.ValidationFieldErrors("login", err))
		return
	}

	token, err := h.service.Authenticate(r.Context(), vm.Username, vm.Password, vm.RememberMe)
	if err != nil {
		if errors.Is(err, ErrBadCredentials) {
			logger.For(r.Context()).Infof("authentication failed for %q", vm.Username)
			httpx.WriteUnauthorized(w)
			return
		}
		logger.For(r.Context()).WithError(err).Error("issuing token failed")
		httpx.WriteInternalError(w)
		return
	}

	w.Header().Set("Authorization", "Bearer "+token)
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"id_token": token})
}

// Account handles GET /api/account.
func (h *HTTPHandler) Account(w http.ResponseWriter, r *http.Request) {
	login := httpx.LoginFrom(r)
	if login == "" {
		httpx.WriteUnauthorized(w)
		return
	}

	u, err := h.service.Account(r.Context(), login)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			// A token for an account that no longer exists is dead.
			httpx.WriteUnauthorized(w)
			return
		}
		logger.For(r.Context()).WithError(err).Error("loading account failed")
		httpx.WriteInternalError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"login":       u.Login,
		"authorities": u.Authorities(),
	})
}

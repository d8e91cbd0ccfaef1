package comment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHandler(t *testing.T) (*HTTPHandler, *MockRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)
	mockRepo := NewMockRepository(ctrl)
	return NewHTTPHandler(NewService(mockRepo)), mockRepo
}

func jsonRequest(method, path, body string) *http.Request {
	r := httptest.NewRequest(method, path, strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	return r
}

func TestHTTPHandler_Create(t *testing.T) {
	t.Run("success stamps a date", func(t *testing.T) {
		handler, mockRepo := newHandler(t)
		mockRepo.EXPECT().Save(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, c *Comment) error {
				c.ID = 9
				return nil
			})

		w := httptest.NewRecorder()
		handler.Create(w, jsonRequest(http.MethodPost, "/api/comments", `{"text":"a classic","bookId":1}`))

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "/api/comments/9", w.Header().Get("Location"))
		assert.Equal(t, "bookmanagerrmh2App.comment.created", w.Header().Get("X-bookmanagerrmh2App-alert"))

		var got Comment
		require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
		assert.NotEmpty(t, got.Date)
		require.NotNil(t, got.BookID)
		assert.Equal(t, int64(1), *got.BookID)
	})

	t.Run("rejects body with id", func(t *testing.T) {
		handler, _ := newHandler(t)

		w := httptest.NewRecorder()
		handler.Create(w, jsonRequest(http.MethodPost, "/api/comments", `{"id":9,"text":"a classic"}`))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "error.idexists", w.Header().Get("X-bookmanagerrmh2App-error"))
	})

	t.Run("rejects empty text", func(t *testing.T) {
		handler, _ := newHandler(t)

		w := httptest.NewRecorder()
		handler.Create(w, jsonRequest(http.MethodPost, "/api/comments", `{"bookId":1}`))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "error.validation")
	})
}

func TestHTTPHandler_ListByBook(t *testing.T) {
	handler, mockRepo := newHandler(t)
	mockRepo.EXPECT().FindByBook(gomock.Any(), int64(1), gomock.Any()).
		Return([]Comment{{ID: 9, Text: "a classic"}}, int64(1), nil)

	r := httptest.NewRequest(http.MethodGet, "/api/comments/book/1", nil)
	r.SetPathValue("id", "1")
	w := httptest.NewRecorder()
	handler.ListByBook(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1", w.Header().Get("X-Total-Count"))
}

func TestHTTPHandler_Delete(t *testing.T) {
	handler, mockRepo := newHandler(t)
	mockRepo.EXPECT().Delete(gomock.Any(), int64(9)).Return(true, nil)

	r := httptest.NewRequest(http.MethodDelete, "/api/comments/9", nil)
	r.SetPathValue("id", "9")
	w := httptest.NewRecorder()
	handler.Delete(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "bookmanagerrmh2App.comment.deleted", w.Header().Get("X-bookmanagerrmh2App-alert"))
}

package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"catalog_system/internal/store"
)

func TestRespondError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"incorrect credentials", store.ErrIncorrectCredentials, http.StatusUnauthorized},
		{"duplicate user", store.ErrDuplicateUser, http.StatusConflict},
		{"duplicate item", store.ErrDuplicateItem, http.StatusConflict},
		{"empty fields", store.ErrEmptyFields, http.StatusUnprocessableEntity},
		{"passwords differ", store.ErrPasswordsDiffer, http.StatusUnprocessableEntity},
		{"weak password", store.ErrWeakPassword, http.StatusUnprocessableEntity},
		{"illegal username", store.ErrIllegalUsername, http.StatusUnprocessableEntity},
		{"illegal locator", store.ErrIllegalLocator, http.StatusUnprocessableEntity},
		{"not an image", store.ErrNotValidImage, http.StatusUnprocessableEntity},
		{"anything else", fmt.Errorf("pq: connection refused"), http.StatusInternalServerError},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			ctx, _ := gin.CreateTestContext(w)
			ctx.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			respondError(ctx, c.err)

			if w.Code != c.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, c.wantStatus)
			}
			var body map[string]string
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("body is not JSON: %v", err)
			}
			if body["error"] == "" {
				t.Error("response carries no error message")
			}
			if c.wantStatus == http.StatusInternalServerError &&
				strings.Contains(body["error"], "connection refused") {
				t.Error("internal cause leaked to the client")
			}
		})
	}
}

func TestPageIndex(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		url  string
		want int
	}{
		{"/items", 0},
		{"/items?page=0", 0},
		{"/items?page=2", 2},
		{"/items?page=-1", -1},
		{"/items?page=abc", 0},
	}
	for _, c := range cases {
		t.Run(c.url, func(t *testing.T) {
			w := httptest.NewRecorder()
			ctx, _ := gin.CreateTestContext(w)
			ctx.Request = httptest.NewRequest(http.MethodGet, c.url, nil)

			if got := pageIndex(ctx); got != c.want {
				t.Errorf("pageIndex = %d, want %d", got, c.want)
			}
		})
	}
}

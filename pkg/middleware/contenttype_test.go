package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContentTypeJSON(t *testing.T) {
	tests := []struct {
		name        string
		method      string
		contentType string
		body        string
		want        int
	}{
		{"json body", http.MethodPost, "application/json", `{"name":"Acme"}`, http.StatusOK},
		{"json with charset", http.MethodPut, "application/json; charset=utf-8", `{}`, http.StatusOK},
		{"missing content type", http.MethodDelete, "", `{"id":"x"}`, http.StatusOK},
		{"form body", http.MethodPost, "application/x-www-form-urlencoded", `name=Acme`, http.StatusUnsupportedMediaType},
		{"text body", http.MethodPost, "text/plain", `Acme`, http.StatusUnsupportedMediaType},
		{"get without body", http.MethodGet, "text/plain", "", http.StatusOK},
	}

	h := ContentTypeJSON(statusHandler(http.StatusOK))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/api/v1/brands", strings.NewReader(tt.body))
			if tt.contentType != "" {
				req.Header.Set("Content-Type", tt.contentType)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

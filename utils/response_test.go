package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"photoshare-api/services"
)

func TestSendServiceError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{"not found", &services.Error{Kind: services.ErrNotFound, Message: "Photo not found"}, http.StatusNotFound, "Photo not found"},
		{"conflict", &services.Error{Kind: services.ErrConflict, Message: "Already friends"}, http.StatusConflict, "Already friends"},
		{"invalid", &services.Error{Kind: services.ErrInvalidArgument, Message: "Invalid reaction type"}, http.StatusBadRequest, "Invalid reaction type"},
		{"unauthorized", &services.Error{Kind: services.ErrUnauthorized, Message: "nope"}, http.StatusUnauthorized, "nope"},
		{"forbidden", &services.Error{Kind: services.ErrForbidden, Message: "not yours"}, http.StatusForbidden, "not yours"},
		{"wrapped", fmt.Errorf("ctx: %w", &services.Error{Kind: services.ErrNotFound, Message: "gone"}), http.StatusNotFound, "ctx: gone"},
		{"internal", errors.New("db exploded"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			SendServiceError(c, tt.err)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			var body ErrorResponse
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid body: %v", err)
			}
			if body.Error != tt.wantBody {
				t.Errorf("error = %q, want %q", body.Error, tt.wantBody)
			}
			if body.Code != tt.wantStatus {
				t.Errorf("code = %d, want %d", body.Code, tt.wantStatus)
			}
		})
	}
}

func TestValidators(t *testing.T) {
	tests := []struct {
		in    string
		email bool
		login bool
	}{
		{"ann@example.com", true, false},
		{"ann", false, true},
		{"an", false, false},
		{"ann lee", false, false},
		{"ann.lee_01", false, true},
	}
	for _, tt := range tests {
		if got := IsValidEmail(tt.in); got != tt.email {
			t.Errorf("IsValidEmail(%q) = %v", tt.in, got)
		}
		if got := IsValidLoginName(tt.in); got != tt.login {
			t.Errorf("IsValidLoginName(%q) = %v", tt.in, got)
		}
	}
}

package apierr

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"startup-marketplace/internal/errs"

	"github.com/gin-gonic/gin"
)

func TestWrite(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"validation", errs.Validation("bad input", nil), http.StatusBadRequest, "bad input"},
		{"not found", errs.NotFound("Startup not found"), http.StatusNotFound, "Startup not found"},
		{"conflict", errs.Conflict("Already subscribed to this plan"), http.StatusConflict, "Already subscribed to this plan"},
		{"authorization", errs.Authorization("nope"), http.StatusForbidden, "nope"},
		{"database", errs.Database("failed to load", errors.New("connection reset")), http.StatusInternalServerError, "Internal server error"},
		{"unclassified", errors.New("boom"), http.StatusInternalServerError, "Internal server error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			Write(c, tt.err)

			if w.Code != tt.status {
				t.Fatalf("expected %d, got %d", tt.status, w.Code)
			}
			var body map[string]any
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body["error"] != tt.msg {
				t.Fatalf("expected message %q, got %v", tt.msg, body["error"])
			}
		})
	}
}

func TestWrite_IncludesValidationDetails(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)

	Write(c, errs.Validation("Unknown allowed field tokens", map[string]any{"unknown": []string{"x"}}))

	var body map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if _, ok := body["details"]; !ok {
		t.Fatalf("expected details in %v", body)
	}
}

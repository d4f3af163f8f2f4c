package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"startup-marketplace/database"
	"startup-marketplace/internal/domain/access"
	"startup-marketplace/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func sign(t *testing.T, secret string, claims jwt.MapClaims, method jwt.SigningMethod) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return s
}

func TestHMACVerifier(t *testing.T) {
	v := HMACVerifier{Secret: []byte("s3cret")}
	ctx := httptest.NewRequest(http.MethodGet, "/", nil).Context()

	good := sign(t, "s3cret", jwt.MapClaims{"sub": "uid-1", "email": "a@test.dev", "role": "startup_owner", "exp": time.Now().Add(time.Hour).Unix()}, jwt.SigningMethodHS256)
	claims, err := v.Verify(ctx, good)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.Subject != "uid-1" || claims.Role != "startup_owner" || claims.Email != "a@test.dev" {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	expired := sign(t, "s3cret", jwt.MapClaims{"sub": "uid-1", "exp": time.Now().Add(-time.Hour).Unix()}, jwt.SigningMethodHS256)
	if _, err := v.Verify(ctx, expired); err == nil {
		t.Fatal("expected expired token to be rejected")
	}

	wrongKey := sign(t, "other", jwt.MapClaims{"sub": "uid-1"}, jwt.SigningMethodHS256)
	if _, err := v.Verify(ctx, wrongKey); err == nil {
		t.Fatal("expected bad signature to be rejected")
	}

	if _, err := (HMACVerifier{}).Verify(ctx, good); err == nil {
		t.Fatal("expected error without a secret")
	}
}

func newEngine(t *testing.T, handlers ...gin.HandlerFunc) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	database.DB = testutil.OpenDB(t)
	r := gin.New()
	r.Any("/", append(handlers, func(c *gin.Context) {
		id := IdentityFrom(c)
		if id == nil {
			c.JSON(http.StatusOK, gin.H{"anonymous": true})
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": id.ID, "role": id.Role})
	})...)
	return r
}

func serve(r *gin.Engine, method, auth string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "/", body)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	v := HMACVerifier{Secret: []byte("s3cret")}
	r := newEngine(t, AuthMiddleware(v))
	tok := sign(t, "s3cret", jwt.MapClaims{"sub": "uid-9", "role": "startup_owner"}, jwt.SigningMethodHS256)

	if w := serve(r, http.MethodGet, "", nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("missing header: expected 401, got %d", w.Code)
	}
	if w := serve(r, http.MethodGet, "Token "+tok, nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("malformed header: expected 401, got %d", w.Code)
	}

	w := serve(r, http.MethodGet, "Bearer "+tok, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("valid token: expected 200, got %d %s", w.Code, w.Body.String())
	}
	var body map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if body["role"] != access.RoleStartupOwner {
		t.Fatalf("expected role from first-sight user creation, got %v", body)
	}
}

func TestOptionalAuth(t *testing.T) {
	r := newEngine(t, OptionalAuth(HMACVerifier{Secret: []byte("s3cret")}))

	for _, auth := range []string{"", "Bearer garbage"} {
		w := serve(r, http.MethodGet, auth, nil)
		if w.Code != http.StatusOK || !bytes.Contains(w.Body.Bytes(), []byte("anonymous")) {
			t.Fatalf("auth %q: expected anonymous pass-through, got %d %s", auth, w.Code, w.Body.String())
		}
	}
}

func TestRequireRole(t *testing.T) {
	v := HMACVerifier{Secret: []byte("s3cret")}
	r := newEngine(t, AuthMiddleware(v), RequireRole(access.RoleAdmin))
	tok := sign(t, "s3cret", jwt.MapClaims{"sub": "uid-1"}, jwt.SigningMethodHS256)

	if w := serve(r, http.MethodGet, "Bearer "+tok, nil); w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for investor, got %d", w.Code)
	}
}

func TestSanitizeNested(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/", SanitizeAndCleanInputMiddleware(), func(c *gin.Context) {
		raw, _ := io.ReadAll(c.Request.Body)
		c.Data(http.StatusOK, "application/json", raw)
	})

	in := `{"startup":{"name":"<script>x</script>Acme","tags":["<i>a</i>"]},"team_size":5}`
	w := serve(r, http.MethodPost, "", bytes.NewBufferString(in))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var out struct {
		Startup struct {
			Name string   `json:"name"`
			Tags []string `json:"tags"`
		} `json:"startup"`
		TeamSize int `json:"team_size"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Startup.Name != "Acme" || out.Startup.Tags[0] != "a" || out.TeamSize != 5 {
		t.Fatalf("unexpected sanitized body: %s", w.Body.String())
	}

	if w := serve(r, http.MethodPost, "", bytes.NewBufferString("{")); w.Code != http.StatusBadRequest {
		t.Fatalf("malformed json: expected 400, got %d", w.Code)
	}
}

func TestSanitizeKeepsPlainTextCharacters(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/", SanitizeAndCleanInputMiddleware(), func(c *gin.Context) {
		raw, _ := io.ReadAll(c.Request.Body)
		c.Data(http.StatusOK, "application/json", raw)
	})

	tests := []struct {
		in   string
		want string
	}{
		{"R&D Labs", "R&D Labs"},
		{`Tom's "best" widgets`, `Tom's "best" widgets`},
		{"https://acme.test/?a=1&b=2", "https://acme.test/?a=1&b=2"},
		{"<b>Johnson</b> & Johnson", "Johnson & Johnson"},
	}
	for _, tt := range tests {
		in, _ := json.Marshal(map[string]any{"value": tt.in})
		w := serve(r, http.MethodPost, "", bytes.NewReader(in))
		var out struct {
			Value string `json:"value"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
			t.Fatalf("decode %q: %v", w.Body.String(), err)
		}
		if out.Value != tt.want {
			t.Errorf("sanitize(%q) = %q, want %q", tt.in, out.Value, tt.want)
		}
	}
}

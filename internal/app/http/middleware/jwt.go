package middleware

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"startup-marketplace/database"
	"startup-marketplace/internal/domain/access"
	"startup-marketplace/internal/domain/users"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const identityKey = "identity"

// TokenVerifier turns a raw bearer token into verified claims.
type TokenVerifier interface {
	Verify(ctx context.Context, raw string) (users.Claims, error)
}

// HMACVerifier accepts HS256 tokens signed with a shared secret.
type HMACVerifier struct {
	Secret []byte
}

func (v HMACVerifier) Verify(_ context.Context, raw string) (users.Claims, error) {
	if len(v.Secret) == 0 {
		return users.Claims{}, errors.New("JWT secret not configured")
	}
	token, err := jwt.Parse(raw, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.Secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !token.Valid {
		return users.Claims{}, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return users.Claims{}, errors.New("invalid token claims")
	}
	sub, _ := claims.GetSubject()
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)
	provider, _ := claims["provider"].(string)
	return users.Claims{Subject: sub, Email: email, Role: role, Provider: provider}, nil
}

// FirebaseVerifier checks Firebase ID tokens against Google's securetoken issuer.
type FirebaseVerifier struct {
	verifier *oidc.IDTokenVerifier
}

func NewFirebaseVerifier(ctx context.Context, projectID string) (*FirebaseVerifier, error) {
	provider, err := oidc.NewProvider(ctx, "https://securetoken.google.com/"+projectID)
	if err != nil {
		return nil, fmt.Errorf("firebase issuer discovery: %w", err)
	}
	return &FirebaseVerifier{verifier: provider.Verifier(&oidc.Config{ClientID: projectID})}, nil
}

func (v *FirebaseVerifier) Verify(ctx context.Context, raw string) (users.Claims, error) {
	tok, err := v.verifier.Verify(ctx, raw)
	if err != nil {
		return users.Claims{}, err
	}
	var claims struct {
		Email    string `json:"email"`
		Role     string `json:"role"`
		Firebase struct {
			SignInProvider string `json:"sign_in_provider"`
		} `json:"firebase"`
	}
	if err := tok.Claims(&claims); err != nil {
		return users.Claims{}, err
	}
	return users.Claims{
		Subject:  tok.Subject,
		Email:    claims.Email,
		Role:     claims.Role,
		Provider: strings.TrimSuffix(claims.Firebase.SignInProvider, ".com"),
	}, nil
}

func bearerToken(c *gin.Context) (string, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", errors.New("Authorization header missing")
	}
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == authHeader || strings.TrimSpace(tokenString) == "" {
		return "", errors.New("Bearer token malformed")
	}
	return strings.TrimSpace(tokenString), nil
}

// authenticate resolves the bearer token to a stored user and puts its identity on c.
func authenticate(c *gin.Context, v TokenVerifier) (int, error) {
	raw, err := bearerToken(c)
	if err != nil {
		return http.StatusUnauthorized, err
	}
	claims, err := v.Verify(c.Request.Context(), raw)
	if err != nil {
		slog.Debug("token rejected", "error", err)
		return http.StatusUnauthorized, errors.New("Invalid or expired token")
	}
	u, err := users.FindOrCreate(c.Request.Context(), database.DB, claims)
	if err != nil {
		slog.Error("failed to resolve user", "subject", claims.Subject, "error", err)
		return http.StatusInternalServerError, errors.New("Failed to resolve user")
	}

	c.Set(identityKey, u.Identity())
	c.Set("user_id", u.ID)
	c.Set("email", u.Email)
	c.Set("role", u.Role)
	return http.StatusOK, nil
}

func AuthMiddleware(v TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if status, err := authenticate(c, v); err != nil {
			c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
			return
		}
		c.Next()
	}
}

// OptionalAuth attaches an identity when a valid token is present and lets every request through.
func OptionalAuth(v TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") != "" {
			_, _ = authenticate(c, v)
		}
		c.Next()
	}
}

func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := IdentityFrom(c)
		if id == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}
		if id.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied. Required role: " + role})
			return
		}
		c.Next()
	}
}

// IdentityFrom returns the requester set by the auth middleware, or nil for anonymous requests.
func IdentityFrom(c *gin.Context) *access.Identity {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil
	}
	id, _ := v.(*access.Identity)
	return id
}

package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/codewithurooj/Todo-Ai-Chatbot/internal/config"
	"github.com/codewithurooj/Todo-Ai-Chatbot/internal/domain"
)

const testSecret = "test-secret"

func newAuthedRouter(cfg *config.Config) (*gin.Engine, *domain.Principal) {
	gin.SetMode(gin.TestMode)
	var seen domain.Principal
	router := gin.New()
	router.Use(AuthMiddleware(cfg, zerolog.Nop()))
	router.GET("/whoami", func(c *gin.Context) {
		principal, _ := PrincipalFromContext(c)
		seen = principal
		c.JSON(http.StatusOK, gin.H{"user_id": principal.ID})
	})
	return router, &seen
}

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestAuthMiddlewareValidToken(t *testing.T) {
	cfg := &config.Config{AuthSecret: testSecret}
	router, seen := newAuthedRouter(cfg)

	token := signToken(t, testSecret, jwt.MapClaims{
		"sub":   "alice",
		"email": "alice@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if seen.ID != "alice" || seen.Email != "alice@example.com" {
		t.Fatalf("unexpected principal: %+v", seen)
	}
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	cfg := &config.Config{AuthSecret: testSecret}
	router, _ := newAuthedRouter(cfg)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestAuthMiddlewareWrongSecret(t *testing.T) {
	cfg := &config.Config{AuthSecret: testSecret}
	router, _ := newAuthedRouter(cfg)

	token := signToken(t, "another-secret", jwt.MapClaims{
		"sub": "alice",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestAuthMiddlewareExpiredToken(t *testing.T) {
	cfg := &config.Config{AuthSecret: testSecret}
	router, _ := newAuthedRouter(cfg)

	token := signToken(t, testSecret, jwt.MapClaims{
		"sub": "alice",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestAuthMiddlewareMissingSubject(t *testing.T) {
	cfg := &config.Config{AuthSecret: testSecret}
	router, _ := newAuthedRouter(cfg)

	token := signToken(t, testSecret, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestAuthMiddlewareIssuerMismatch(t *testing.T) {
	cfg := &config.Config{AuthSecret: testSecret, AuthIssuer: "todo-chatbot"}
	router, _ := newAuthedRouter(cfg)

	token := signToken(t, testSecret, jwt.MapClaims{
		"sub": "alice",
		"iss": "someone-else",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

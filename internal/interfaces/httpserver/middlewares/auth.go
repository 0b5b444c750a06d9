package middlewares

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/codewithurooj/Todo-Ai-Chatbot/internal/config"
	"github.com/codewithurooj/Todo-Ai-Chatbot/internal/domain"
	"github.com/codewithurooj/Todo-Ai-Chatbot/internal/infrastructure/metrics"
	"github.com/codewithurooj/Todo-Ai-Chatbot/internal/utils/platformerrors"
)

const principalContextKey = "principal"

type authClaims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

// AuthMiddleware validates HS256 bearer tokens and stores the resulting
// principal in the gin context. Every downstream operation scopes by the
// subject claim, so a missing or empty subject is a hard failure.
func AuthMiddleware(cfg *config.Config, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			logger.Warn().
				Str("path", c.FullPath()).
				Str("method", c.Request.Method).
				Msg("unauthenticated request")
			metrics.RecordAuth(false)
			abortUnauthorized(c, "authentication required")
			return
		}

		claims := &authClaims{}
		parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(cfg.AuthSecret), nil
		}, parseOptions(cfg)...)
		if err != nil || !parsed.Valid {
			logger.Warn().Err(err).Msg("jwt validation failed")
			metrics.RecordAuth(false)
			abortUnauthorized(c, "invalid or expired token")
			return
		}

		if strings.TrimSpace(claims.Subject) == "" {
			logger.Warn().Msg("jwt missing subject claim")
			metrics.RecordAuth(false)
			abortUnauthorized(c, "invalid token: missing subject")
			return
		}

		metrics.RecordAuth(true)
		setPrincipal(c, domain.Principal{
			ID:     claims.Subject,
			Issuer: claims.Issuer,
			Email:  claims.Email,
			Name:   claims.Name,
		})

		c.Next()
	}
}

func parseOptions(cfg *config.Config) []jwt.ParserOption {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{"HS256"}),
	}
	if cfg.AuthIssuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.AuthIssuer))
	}
	if cfg.AuthAudience != "" {
		opts = append(opts, jwt.WithAudience(cfg.AuthAudience))
	}
	return opts
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

func abortUnauthorized(c *gin.Context, message string) {
	platformerrors.WriteUnauthorized(c, message)
	c.Abort()
}

// PrincipalFromContext returns the authenticated principal, if any.
func PrincipalFromContext(c *gin.Context) (domain.Principal, bool) {
	val, ok := c.Get(principalContextKey)
	if !ok {
		return domain.Principal{}, false
	}
	principal, ok := val.(domain.Principal)
	return principal, ok
}

func setPrincipal(c *gin.Context, principal domain.Principal) {
	c.Set(principalContextKey, principal)
	// expose commonly-used identity values for downstream handlers
	c.Set("user_id", principal.ID)
	if principal.Email != "" {
		c.Set("user_email", principal.Email)
	}
	c.Writer.Header().Set("X-User-ID", principal.ID)
}

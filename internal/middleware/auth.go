package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the token payload issued by the external auth service.
type Claims struct {
	BusinessID string `json:"business_id,omitempty"`
	Role       string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// AuthMiddleware creates a Gin middleware handler that validates JWT tokens.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Warn("Authorization header missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			logger.Warn("Authorization header format invalid")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})
			return
		}

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(jwtSecret), nil
		})
		if err != nil || !token.Valid {
			msg := "Invalid token"
			if errors.Is(err, jwt.ErrTokenExpired) {
				msg = "Token has expired"
			} else if errors.Is(err, jwt.ErrTokenNotValidYet) {
				msg = "Token not valid yet"
			}
			logger.Warn("Invalid token", slog.Any("error", err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}

		if claims.Subject == "" {
			logger.Error("User ID (subject) missing from valid token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			return
		}

		role := domain.BusinessRole(strings.ToUpper(claims.Role))
		enrichedLogger := logger.With(
			slog.String("user_id", claims.Subject),
			slog.String("business_id", claims.BusinessID),
		)

		ctx := WithIdentity(c.Request.Context(), claims.Subject, claims.BusinessID, role)
		c.Request = c.Request.WithContext(WithLogger(ctx, enrichedLogger))
		c.Next()
	}
}

// RequireBusiness rejects tokens that were not issued for a business.
func RequireBusiness() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := GetBusinessIDFromContext(c); !ok {
			GetLoggerFromCtx(c.Request.Context()).Warn("Business context missing in auth token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Business context missing in auth token"})
			return
		}
		c.Next()
	}
}

// RequireWriter rejects callers whose role is read-only.
func RequireWriter() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !GetRoleFromContext(c).CanWrite() {
			GetLoggerFromCtx(c.Request.Context()).Warn("Write attempted by read-only role", slog.String("role", string(GetRoleFromContext(c))))
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Your role does not allow changes to the books"})
			return
		}
		c.Next()
	}
}

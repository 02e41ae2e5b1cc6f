package httpserver

import (
	"net/http"
	"strings"
	"time"

	"fashion-storefront/internal/domain"
	cartsvc "fashion-storefront/internal/service/cart"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	guestHeader = "X-Guest-ID"
	sessionKey  = "session"
)

// session is what the middleware learned about the caller.
type session struct {
	GuestID string
	User    *domain.User
	Token   string
}

func (s session) cart() cartsvc.Session {
	out := cartsvc.Session{GuestID: s.GuestID}
	if s.User != nil {
		out.UserID = s.User.ID
	}
	return out
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		logger.Info("http: request",
			zap.String("method", c.Request.Method),
			zap.String("route", route),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

func recovery(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Error("http: panic", zap.Any("panic", recovered), zap.String("path", c.Request.URL.Path))
		c.AbortWithStatusJSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
	})
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", guestHeader},
		ExposeHeaders:    []string{"Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 1 && origins[0] == "*" {
		cfg.AllowAllOrigins = true
		cfg.AllowCredentials = false
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}

// sessionMiddleware resolves the guest id header and the optional bearer
// token. A bad token is rejected rather than treated as a guest.
func sessionMiddleware(auth AuthService, guests GuestService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var s session
		if guests != nil {
			guestID, err := guests.Parse(c.GetHeader(guestHeader))
			if err != nil {
				writeError(c, logger, err)
				return
			}
			s.GuestID = guestID
		}
		if token := bearerToken(c.GetHeader("Authorization")); token != "" && auth != nil {
			user, err := auth.LookupByToken(c.Request.Context(), token)
			if err != nil {
				writeError(c, logger, err)
				return
			}
			s.User = user
			s.Token = token
		}
		c.Set(sessionKey, s)
		c.Next()
	}
}

func requireUser(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if currentSession(c).User == nil {
			writeError(c, logger, errUnauthorized)
			return
		}
		c.Next()
	}
}

func requireAdmin(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		u := currentSession(c).User
		if u == nil {
			writeError(c, logger, errUnauthorized)
			return
		}
		if !u.IsAdmin {
			writeError(c, logger, domain.ErrForbidden)
			return
		}
		c.Next()
	}
}

func currentSession(c *gin.Context) session {
	if v, ok := c.Get(sessionKey); ok {
		if s, ok := v.(session); ok {
			return s
		}
	}
	return session{}
}

func bearerToken(header string) string {
	const prefix = "bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}

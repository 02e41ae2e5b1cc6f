package httpserver

import (
	"errors"
	"net/http"

	"fashion-storefront/internal/domain"
	"fashion-storefront/internal/pricing"
	authsvc "fashion-storefront/internal/service/auth"
	cartsvc "fashion-storefront/internal/service/cart"
	ordersvc "fashion-storefront/internal/service/order"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var errUnauthorized = errors.New("authentication required")

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation), errors.Is(err, pricing.ErrInvalidPromo):
		return http.StatusBadRequest
	case errors.Is(err, errUnauthorized), errors.Is(err, authsvc.ErrInvalidToken),
		errors.Is(err, authsvc.ErrInvalidCode), errors.Is(err, cartsvc.ErrSignedOut):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrAlreadyExists), errors.Is(err, ordersvc.ErrInvalidTransition):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// writeError aborts the request with the status matching err. Unclassified
// errors are logged and reported without detail.
func writeError(c *gin.Context, logger *zap.Logger, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logger.Error("http: internal error", zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()), zap.Error(err))
		c.AbortWithStatusJSON(status, errorResponse{Error: "internal error"})
		return
	}
	resp := errorResponse{Error: err.Error()}
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		resp.Field = verr.Field
	}
	c.AbortWithStatusJSON(status, resp)
}

func badRequest(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{Error: msg})
}

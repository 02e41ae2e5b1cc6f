package httpserver

import (
	"errors"
	"io"
	"net/http"
	"time"

	"fashion-storefront/internal/domain"
	"fashion-storefront/internal/pricing"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const keepAliveInterval = 25 * time.Second

type cartResponse struct {
	Items   []domain.CartLine `json:"items"`
	Summary pricing.Summary   `json:"summary"`
}

type addItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
}

type quantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

type promoRequest struct {
	PromoCode string `json:"promoCode"`
}

type summaryResponse struct {
	Summary    pricing.Summary `json:"summary"`
	PromoError string          `json:"promoError,omitempty"`
}

func (h *handlers) cartReply(c *gin.Context, items []domain.CartLine, err error) {
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, cartResponse{Items: items, Summary: pricing.Summarize(items, nil, h.shipping)})
}

func (h *handlers) getCart(c *gin.Context) {
	items, err := h.deps.CartSvc.Get(c.Request.Context(), currentSession(c).cart())
	h.cartReply(c, items, err)
}

func (h *handlers) clearCart(c *gin.Context) {
	items, err := h.deps.CartSvc.Clear(c.Request.Context(), currentSession(c).cart())
	h.cartReply(c, items, err)
}

func (h *handlers) addCartItem(c *gin.Context) {
	var req addItemRequest
	if !bind(c, &req) {
		return
	}
	items, err := h.deps.CartSvc.Add(c.Request.Context(), currentSession(c).cart(), req.ProductID)
	h.cartReply(c, items, err)
}

func (h *handlers) setCartQuantity(c *gin.Context) {
	var req quantityRequest
	if !bind(c, &req) {
		return
	}
	items, err := h.deps.CartSvc.SetQuantity(c.Request.Context(), currentSession(c).cart(), c.Param("productId"), *req.Quantity)
	h.cartReply(c, items, err)
}

func (h *handlers) removeCartItem(c *gin.Context) {
	items, err := h.deps.CartSvc.Remove(c.Request.Context(), currentSession(c).cart(), c.Param("productId"))
	h.cartReply(c, items, err)
}

func (h *handlers) incrementCartItem(c *gin.Context) {
	items, err := h.deps.CartSvc.Increment(c.Request.Context(), currentSession(c).cart(), c.Param("productId"))
	h.cartReply(c, items, err)
}

func (h *handlers) decrementCartItem(c *gin.Context) {
	items, err := h.deps.CartSvc.Decrement(c.Request.Context(), currentSession(c).cart(), c.Param("productId"))
	h.cartReply(c, items, err)
}

// cartSummary answers an unknown promo code with the unchanged totals and a
// promoError rather than a failure status.
func (h *handlers) cartSummary(c *gin.Context) {
	var req promoRequest
	if c.Request.ContentLength != 0 && !bind(c, &req) {
		return
	}
	sum, err := h.deps.CartSvc.Summary(c.Request.Context(), currentSession(c).cart(), req.PromoCode)
	h.summaryReply(c, sum, err)
}

func (h *handlers) summaryReply(c *gin.Context, sum pricing.Summary, err error) {
	if errors.Is(err, pricing.ErrInvalidPromo) {
		c.JSON(http.StatusOK, summaryResponse{Summary: sum, PromoError: err.Error()})
		return
	}
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, summaryResponse{Summary: sum})
}

// cartEvents streams the signed-in cart as server-sent events: the current
// state first, then every remote rewrite.
func (h *handlers) cartEvents(c *gin.Context) {
	ctx := c.Request.Context()
	sess := currentSession(c).cart()
	// Subscribe before the snapshot read.
	updates, stop, err := h.deps.CartSvc.Watch(ctx, sess)
	if err != nil {
		h.fail(c, err)
		return
	}
	defer stop()
	items, err := h.deps.CartSvc.Get(ctx, sess)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")
	c.SSEvent("cart", cartResponse{Items: items, Summary: pricing.Summarize(items, nil, h.shipping)})
	c.Writer.Flush()

	ticker := time.NewTicker(keepAliveInterval)
	defer ticker.Stop()
	c.Stream(func(io.Writer) bool {
		select {
		case items, ok := <-updates:
			if !ok {
				return false
			}
			c.SSEvent("cart", cartResponse{Items: items, Summary: pricing.Summarize(items, nil, h.shipping)})
			return true
		case <-ticker.C:
			c.SSEvent("ping", time.Now().Unix())
			return true
		case <-ctx.Done():
			return false
		}
	})
	h.logger.Debug("cart events: stream closed", zap.String("user_id", sess.UserID))
}

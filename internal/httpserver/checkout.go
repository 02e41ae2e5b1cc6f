package httpserver

import (
	"bytes"
	"fmt"
	"net/http"

	"fashion-storefront/internal/domain"
	checkoutsvc "fashion-storefront/internal/service/checkout"
	"github.com/gin-gonic/gin"
)

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *handlers) quote(c *gin.Context) {
	var in checkoutsvc.QuoteInput
	if c.Request.ContentLength != 0 && !bind(c, &in) {
		return
	}
	sum, err := h.deps.CheckoutSvc.Quote(c.Request.Context(), currentSession(c).cart(), in)
	h.summaryReply(c, sum, err)
}

func (h *handlers) savePending(c *gin.Context) {
	var item checkoutsvc.BuyNow
	if !bind(c, &item) {
		return
	}
	if err := h.deps.CheckoutSvc.SavePending(c.Request.Context(), currentSession(c).GuestID, item); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handlers) takePending(c *gin.Context) {
	item, err := h.deps.CheckoutSvc.TakePending(c.Request.Context(), currentSession(c).GuestID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *handlers) pay(c *gin.Context) {
	var in checkoutsvc.PayInput
	if !bind(c, &in) {
		return
	}
	order, err := h.deps.CheckoutSvc.Pay(c.Request.Context(), currentSession(c).cart(), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (h *handlers) myOrders(c *gin.Context) {
	orders, err := h.deps.CheckoutSvc.ListOrders(c.Request.Context(), currentSession(c).User.ID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "results": orders})
}

func (h *handlers) myOrder(c *gin.Context) {
	order, err := h.deps.OrderSvc.GetForUser(c.Request.Context(), currentSession(c).User.ID, c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *handlers) adminListOrders(c *gin.Context) {
	orders, err := h.deps.OrderSvc.List(c.Request.Context(), domain.OrderStatus(c.Query("status")))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "results": orders})
}

func (h *handlers) adminGetOrder(c *gin.Context) {
	order, err := h.deps.OrderSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *handlers) adminUpdateOrderStatus(c *gin.Context) {
	var req statusRequest
	if !bind(c, &req) {
		return
	}
	order, err := h.deps.OrderSvc.UpdateStatus(c.Request.Context(), c.Param("id"), domain.OrderStatus(req.Status))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// adminInvoice renders into a buffer so a failure can still produce a JSON
// error instead of a truncated PDF.
func (h *handlers) adminInvoice(c *gin.Context) {
	id := c.Param("id")
	var buf bytes.Buffer
	if err := h.deps.OrderSvc.Invoice(c.Request.Context(), id, &buf); err != nil {
		h.fail(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "invoice-"+id+".pdf"))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

package httpserver

import (
	"net/http"
	"time"

	"fashion-storefront/internal/domain"
	catalogsvc "fashion-storefront/internal/service/catalog"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type otpRequest struct {
	Phone string `json:"phone" binding:"required"`
}

type verifyRequest struct {
	Phone string `json:"phone" binding:"required"`
	Code  string `json:"code" binding:"required"`
}

type signInResponse struct {
	AccessToken string       `json:"accessToken"`
	ExpiresAt   time.Time    `json:"expiresAt"`
	User        *domain.User `json:"user"`
}

func (h *handlers) issueGuest(c *gin.Context) {
	c.JSON(http.StatusCreated, gin.H{"guestId": h.deps.GuestSvc.Issue()})
}

func (h *handlers) requestCode(c *gin.Context) {
	var req otpRequest
	if !bind(c, &req) {
		return
	}
	if err := h.deps.AuthSvc.RequestCode(c.Request.Context(), req.Phone); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"status": "sent"})
}

func (h *handlers) verifyCode(c *gin.Context) {
	var req verifyRequest
	if !bind(c, &req) {
		return
	}
	user, token, expiresAt, err := h.deps.AuthSvc.VerifyCode(c.Request.Context(), req.Phone, req.Code)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, signInResponse{AccessToken: token, ExpiresAt: expiresAt, User: user})
}

func (h *handlers) signOut(c *gin.Context) {
	if err := h.deps.AuthSvc.SignOut(c.Request.Context(), currentSession(c).Token); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handlers) listProducts(c *gin.Context) {
	f := catalogsvc.Filter{
		Category: c.Query("category"),
		Size:     c.Query("size"),
		Query:    c.Query("q"),
		Sort:     catalogsvc.Sort(c.Query("sort")),
	}
	var err error
	if f.MinPrice, err = decimalQuery(c, "minPrice"); err != nil {
		h.fail(c, err)
		return
	}
	if f.MaxPrice, err = decimalQuery(c, "maxPrice"); err != nil {
		h.fail(c, err)
		return
	}
	products, err := h.deps.CatalogSvc.List(c.Request.Context(), f)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(products), "results": products})
}

func (h *handlers) getProduct(c *gin.Context) {
	p, err := h.deps.CatalogSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *handlers) searchProducts(c *gin.Context) {
	products, err := h.deps.CatalogSvc.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(products), "results": products})
}

func decimalQuery(c *gin.Context, name string) (*decimal.Decimal, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, domain.Invalid(name, "must be a number")
	}
	return &d, nil
}

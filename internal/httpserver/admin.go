package httpserver

import (
	"io"
	"net/http"

	couponsvc "fashion-storefront/internal/service/coupon"
	productsvc "fashion-storefront/internal/service/product"
	"github.com/gin-gonic/gin"
)

func (h *handlers) adminListProducts(c *gin.Context) {
	products, err := h.deps.ProductSvc.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(products), "results": products})
}

func (h *handlers) adminGetProduct(c *gin.Context) {
	p, err := h.deps.ProductSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *handlers) adminCreateProduct(c *gin.Context) {
	var in productsvc.Input
	if !bind(c, &in) {
		return
	}
	p, err := h.deps.ProductSvc.Create(c.Request.Context(), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *handlers) adminUpdateProduct(c *gin.Context) {
	var in productsvc.Input
	if !bind(c, &in) {
		return
	}
	p, err := h.deps.ProductSvc.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *handlers) adminDeleteProduct(c *gin.Context) {
	if err := h.deps.ProductSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handlers) adminUploadProductImage(c *gin.Context) {
	h.withUpload(c, func(name string, r io.Reader) (string, error) {
		return h.deps.ProductSvc.UploadImage(c.Request.Context(), name, r)
	})
}

func (h *handlers) adminListCoupons(c *gin.Context) {
	coupons, err := h.deps.CouponSvc.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(coupons), "results": coupons})
}

func (h *handlers) adminCreateCoupon(c *gin.Context) {
	var in couponsvc.Input
	if !bind(c, &in) {
		return
	}
	cp, err := h.deps.CouponSvc.Create(c.Request.Context(), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, cp)
}

func (h *handlers) adminUpdateCoupon(c *gin.Context) {
	var in couponsvc.Input
	if !bind(c, &in) {
		return
	}
	cp, err := h.deps.CouponSvc.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, cp)
}

func (h *handlers) adminDeleteCoupon(c *gin.Context) {
	if err := h.deps.CouponSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

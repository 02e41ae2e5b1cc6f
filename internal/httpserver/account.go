package httpserver

import (
	"io"
	"net/http"

	profilesvc "fashion-storefront/internal/service/profile"
	"github.com/gin-gonic/gin"
)

type wishlistRequest struct {
	ProductID string `json:"productId" binding:"required"`
}

func (h *handlers) getProfile(c *gin.Context) {
	u, err := h.deps.ProfileSvc.Get(c.Request.Context(), currentSession(c).User.ID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *handlers) updateProfile(c *gin.Context) {
	var in profilesvc.Input
	if !bind(c, &in) {
		return
	}
	u, err := h.deps.ProfileSvc.Update(c.Request.Context(), currentSession(c).User.ID, in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *handlers) uploadProfilePhoto(c *gin.Context) {
	userID := currentSession(c).User.ID
	h.withUpload(c, func(_ string, r io.Reader) (string, error) {
		return h.deps.ProfileSvc.UploadPhoto(c.Request.Context(), userID, r)
	})
}

func (h *handlers) getWishlist(c *gin.Context) {
	w, err := h.deps.WishlistSvc.Get(c.Request.Context(), currentSession(c).User.ID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, w)
}

func (h *handlers) addWishlist(c *gin.Context) {
	var req wishlistRequest
	if !bind(c, &req) {
		return
	}
	w, err := h.deps.WishlistSvc.Add(c.Request.Context(), currentSession(c).User.ID, req.ProductID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, w)
}

func (h *handlers) removeWishlist(c *gin.Context) {
	w, err := h.deps.WishlistSvc.Remove(c.Request.Context(), currentSession(c).User.ID, c.Param("productId"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, w)
}

package httpserver

import (
	"io"
	"net/http"

	"fashion-storefront/internal/domain"
	blogsvc "fashion-storefront/internal/service/blog"
	contactsvc "fashion-storefront/internal/service/contact"
	"github.com/gin-gonic/gin"
)

type bannerRequest struct {
	Slides []domain.BannerSlide `json:"slides"`
}

func (h *handlers) submitContact(c *gin.Context) {
	var in contactsvc.Input
	if !bind(c, &in) {
		return
	}
	ct, err := h.deps.ContactSvc.Submit(c.Request.Context(), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, ct)
}

func (h *handlers) adminListContacts(c *gin.Context) {
	contacts, err := h.deps.ContactSvc.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(contacts), "results": contacts})
}

func (h *handlers) adminSetContactStatus(c *gin.Context) {
	var req statusRequest
	if !bind(c, &req) {
		return
	}
	if err := h.deps.ContactSvc.SetStatus(c.Request.Context(), c.Param("id"), domain.ContactStatus(req.Status)); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handlers) adminDeleteContact(c *gin.Context) {
	if err := h.deps.ContactSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handlers) listBlog(c *gin.Context) {
	posts, err := h.deps.BlogSvc.ListPublished(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(posts), "results": posts})
}

func (h *handlers) getBlogPost(c *gin.Context) {
	post, err := h.deps.BlogSvc.GetPublished(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h *handlers) adminListBlog(c *gin.Context) {
	posts, err := h.deps.BlogSvc.ListAll(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(posts), "results": posts})
}

func (h *handlers) adminCreateBlog(c *gin.Context) {
	var in blogsvc.Input
	if !bind(c, &in) {
		return
	}
	post, err := h.deps.BlogSvc.Create(c.Request.Context(), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, post)
}

func (h *handlers) adminUpdateBlog(c *gin.Context) {
	var in blogsvc.Input
	if !bind(c, &in) {
		return
	}
	post, err := h.deps.BlogSvc.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h *handlers) adminDeleteBlog(c *gin.Context) {
	if err := h.deps.BlogSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handlers) adminUploadBlogFeature(c *gin.Context) {
	h.withUpload(c, func(name string, r io.Reader) (string, error) {
		return h.deps.BlogSvc.UploadFeatureImage(c.Request.Context(), name, r)
	})
}

func (h *handlers) adminUploadBlogContent(c *gin.Context) {
	h.withUpload(c, func(name string, r io.Reader) (string, error) {
		return h.deps.BlogSvc.UploadContentImage(c.Request.Context(), name, r)
	})
}

func (h *handlers) getBanner(c *gin.Context) {
	b, err := h.deps.BannerSvc.Get(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *handlers) adminPutBanner(c *gin.Context) {
	var req bannerRequest
	if !bind(c, &req) {
		return
	}
	b, err := h.deps.BannerSvc.Put(c.Request.Context(), req.Slides)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *handlers) adminUploadBanner(c *gin.Context) {
	h.withUpload(c, func(name string, r io.Reader) (string, error) {
		return h.deps.BannerSvc.UploadSlide(c.Request.Context(), name, r)
	})
}

func (h *handlers) listNotifications(c *gin.Context) {
	items, err := h.deps.NotificationSvc.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	unread := 0
	for _, n := range items {
		if !n.Read {
			unread++
		}
	}
	c.JSON(http.StatusOK, gin.H{"count": len(items), "unread": unread, "results": items})
}

func (h *handlers) markNotificationRead(c *gin.Context) {
	if err := h.deps.NotificationSvc.MarkRead(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handlers) markAllNotificationsRead(c *gin.Context) {
	n, err := h.deps.NotificationSvc.MarkAllRead(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": n})
}

func (h *handlers) adminDeleteNotification(c *gin.Context) {
	if err := h.deps.NotificationSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

package httpserver

import (
	"fmt"
	"io"
	"net/http"

	"fashion-storefront/internal/pricing"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const maxUploadBytes = 10 << 20

type handlers struct {
	deps     Deps
	logger   *zap.Logger
	shipping pricing.ShippingRules
}

func (h *handlers) fail(c *gin.Context, err error) {
	writeError(c, h.logger, err)
}

// bind decodes the JSON body into dst, answering 400 on failure.
func bind(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return false
	}
	return true
}

// withUpload hands the multipart "file" field to store and replies with the
// resulting URL.
func (h *handlers) withUpload(c *gin.Context, store func(filename string, r io.Reader) (string, error)) {
	fh, err := c.FormFile("file")
	if err != nil {
		badRequest(c, "file field required")
		return
	}
	if fh.Size > maxUploadBytes {
		badRequest(c, fmt.Sprintf("file exceeds %d bytes", maxUploadBytes))
		return
	}
	f, err := fh.Open()
	if err != nil {
		h.fail(c, fmt.Errorf("open upload: %w", err))
		return
	}
	defer f.Close()

	url, err := store(fh.Filename, f)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"url": url})
}

// serveFile streams a stored upload by its object path.
func serveFile(files FileReader, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		obj, err := files.Open(c.Request.Context(), c.Param("path"))
		if err != nil {
			writeError(c, logger, err)
			return
		}
		defer obj.Close()
		c.DataFromReader(http.StatusOK, obj.Size, obj.ContentType, obj, map[string]string{
			"Cache-Control": "public, max-age=86400",
		})
	}
}

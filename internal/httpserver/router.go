package httpserver

import (
	"fashion-storefront/internal/logging"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// buildRouter wires routes for the API.
func buildRouter(logger *zap.Logger, deps Deps, opts Options) (*gin.Engine, error) {
	logger = logging.OrNop(logger)
	if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.MaxMultipartMemory = maxUploadBytes
	router.Use(requestLogger(logger), recovery(logger))
	if len(opts.CORSOrigins) > 0 {
		router.Use(corsMiddleware(opts.CORSOrigins))
	}

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(opts.Pingers))
	if opts.Files != nil {
		router.GET("/files/*path", serveFile(opts.Files, logger))
	}

	h := &handlers{deps: deps, logger: logger, shipping: opts.Shipping}
	api := router.Group("/", sessionMiddleware(deps.AuthSvc, deps.GuestSvc, logger))
	user := api.Group("/", requireUser(logger))
	admin := api.Group("/admin", requireAdmin(logger))

	if deps.GuestSvc != nil {
		api.POST("/guest", h.issueGuest)
	}
	if deps.AuthSvc != nil {
		api.POST("/auth/otp", h.requestCode)
		api.POST("/auth/verify", h.verifyCode)
		user.POST("/auth/logout", h.signOut)
	}
	if deps.CatalogSvc != nil {
		api.GET("/products", h.listProducts)
		api.GET("/products/:id", h.getProduct)
		api.GET("/search", h.searchProducts)
	}
	if deps.CartSvc != nil {
		api.GET("/cart", h.getCart)
		api.DELETE("/cart", h.clearCart)
		api.POST("/cart/items", h.addCartItem)
		api.PUT("/cart/items/:productId", h.setCartQuantity)
		api.DELETE("/cart/items/:productId", h.removeCartItem)
		api.POST("/cart/items/:productId/increment", h.incrementCartItem)
		api.POST("/cart/items/:productId/decrement", h.decrementCartItem)
		api.POST("/cart/summary", h.cartSummary)
		user.GET("/cart/events", h.cartEvents)
	}
	if deps.CheckoutSvc != nil {
		api.POST("/checkout/quote", h.quote)
		api.POST("/checkout/pending", h.savePending)
		api.POST("/checkout/pending/take", h.takePending)
		user.POST("/checkout/pay", h.pay)
		user.GET("/me/orders", h.myOrders)
	}
	if deps.OrderSvc != nil {
		user.GET("/me/orders/:id", h.myOrder)
		admin.GET("/orders", h.adminListOrders)
		admin.GET("/orders/:id", h.adminGetOrder)
		admin.PUT("/orders/:id/status", h.adminUpdateOrderStatus)
		admin.GET("/orders/:id/invoice", h.adminInvoice)
	}
	if deps.ProfileSvc != nil {
		user.GET("/me", h.getProfile)
		user.PUT("/me", h.updateProfile)
		user.POST("/me/photo", h.uploadProfilePhoto)
	}
	if deps.WishlistSvc != nil {
		user.GET("/me/wishlist", h.getWishlist)
		user.POST("/me/wishlist", h.addWishlist)
		user.DELETE("/me/wishlist/:productId", h.removeWishlist)
	}
	if deps.ContactSvc != nil {
		api.POST("/contacts", h.submitContact)
		admin.GET("/contacts", h.adminListContacts)
		admin.PUT("/contacts/:id/status", h.adminSetContactStatus)
		admin.DELETE("/contacts/:id", h.adminDeleteContact)
	}
	if deps.BlogSvc != nil {
		api.GET("/blog", h.listBlog)
		api.GET("/blog/:slug", h.getBlogPost)
		admin.GET("/blog", h.adminListBlog)
		admin.POST("/blog", h.adminCreateBlog)
		admin.PUT("/blog/:id", h.adminUpdateBlog)
		admin.DELETE("/blog/:id", h.adminDeleteBlog)
		admin.POST("/blog/images/feature", h.adminUploadBlogFeature)
		admin.POST("/blog/images/content", h.adminUploadBlogContent)
	}
	if deps.BannerSvc != nil {
		api.GET("/banner", h.getBanner)
		admin.PUT("/banner", h.adminPutBanner)
		admin.POST("/banner/images", h.adminUploadBanner)
	}
	if deps.NotificationSvc != nil {
		api.GET("/notifications", h.listNotifications)
		user.PUT("/notifications/:id/read", h.markNotificationRead)
		user.POST("/notifications/read-all", h.markAllNotificationsRead)
		admin.DELETE("/notifications/:id", h.adminDeleteNotification)
	}
	if deps.ProductSvc != nil {
		admin.GET("/products", h.adminListProducts)
		admin.POST("/products", h.adminCreateProduct)
		admin.GET("/products/:id", h.adminGetProduct)
		admin.PUT("/products/:id", h.adminUpdateProduct)
		admin.DELETE("/products/:id", h.adminDeleteProduct)
		admin.POST("/products/images", h.adminUploadProductImage)
	}
	if deps.CouponSvc != nil {
		admin.GET("/coupons", h.adminListCoupons)
		admin.POST("/coupons", h.adminCreateCoupon)
		admin.PUT("/coupons/:id", h.adminUpdateCoupon)
		admin.DELETE("/coupons/:id", h.adminDeleteCoupon)
	}

	return router, nil
}

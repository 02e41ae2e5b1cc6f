package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"fashion-storefront/internal/config"
	"fashion-storefront/internal/db"
	"fashion-storefront/internal/httpserver"
	"fashion-storefront/internal/invoice"
	"fashion-storefront/internal/logging"
	"fashion-storefront/internal/pricing"
	blogrepo "fashion-storefront/internal/repository/blog"
	cartrepo "fashion-storefront/internal/repository/cart"
	contactrepo "fashion-storefront/internal/repository/contact"
	couponrepo "fashion-storefront/internal/repository/coupon"
	notificationrepo "fashion-storefront/internal/repository/notification"
	orderrepo "fashion-storefront/internal/repository/order"
	otprepo "fashion-storefront/internal/repository/otp"
	pendingrepo "fashion-storefront/internal/repository/pending"
	productrepo "fashion-storefront/internal/repository/product"
	settingsrepo "fashion-storefront/internal/repository/settings"
	tokenrepo "fashion-storefront/internal/repository/token"
	userrepo "fashion-storefront/internal/repository/user"
	wishlistrepo "fashion-storefront/internal/repository/wishlist"
	anonymoussvc "fashion-storefront/internal/service/anonymous"
	authsvc "fashion-storefront/internal/service/auth"
	bannersvc "fashion-storefront/internal/service/banner"
	blogsvc "fashion-storefront/internal/service/blog"
	cartsvc "fashion-storefront/internal/service/cart"
	catalogsvc "fashion-storefront/internal/service/catalog"
	checkoutsvc "fashion-storefront/internal/service/checkout"
	contactsvc "fashion-storefront/internal/service/contact"
	couponsvc "fashion-storefront/internal/service/coupon"
	notificationsvc "fashion-storefront/internal/service/notification"
	ordersvc "fashion-storefront/internal/service/order"
	productsvc "fashion-storefront/internal/service/product"
	profilesvc "fashion-storefront/internal/service/profile"
	wishlistsvc "fashion-storefront/internal/service/wishlist"
	"fashion-storefront/internal/storage"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	_ "gocloud.dev/blob/s3blob"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "api: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.FromEnv()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger, err := logging.New(cfg.LogLevel, cfg.LogDevelopment)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	logger = logger.Named("api")
	defer func() { _ = logger.Sync() }()

	decimal.MarshalJSONWithoutQuotes = true

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		return fmt.Errorf("connect to db: %w", err)
	}
	defer dbpool.Close()

	rdb, err := db.ConnectRedis(ctx, cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}
	defer rdb.Close()

	baseURL := strings.TrimRight(cfg.FileURLHost, "/")
	if baseURL == "" {
		baseURL = "http://localhost" + cfg.HTTPAddr
	}
	files, err := storage.Open(ctx, cfg.UploadURL, cfg.UploadDir, baseURL)
	if err != nil {
		return err
	}
	defer files.Close()
	rules := pricing.ShippingRules{FreeAbove: cfg.FreeShippingThreshold, Fee: cfg.ShippingFee}

	productRepo := productrepo.NewPostgres(dbpool, logger)
	userRepo := userrepo.NewPostgres(dbpool)
	orderRepo := orderrepo.NewPostgres(dbpool)

	notifications := notificationsvc.New(notificationrepo.NewPostgres(dbpool), logger)
	carts := cartsvc.New(
		cartrepo.NewPostgres(dbpool),
		cartrepo.NewRedisGuest(rdb),
		cartrepo.NewRedisBroker(rdb, logger),
		productRepo,
		rules,
		logger,
	)
	seller := invoice.Seller{Name: cfg.StoreName, Address: cfg.StoreAddress, Email: cfg.StoreEmail}

	srv, err := httpserver.New(cfg.HTTPAddr, logger, httpserver.Deps{
		GuestSvc: anonymoussvc.New(),
		AuthSvc: authsvc.New(userRepo, otprepo.NewPostgres(dbpool), tokenrepo.NewPostgres(dbpool),
			authsvc.NewLogSender(logger), cfg.AdminPhones, cfg.OTPTTL(), logger),
		CatalogSvc: catalogsvc.New(productRepo),
		CartSvc:    carts,
		CheckoutSvc: checkoutsvc.New(carts, productRepo, orderRepo, pendingrepo.NewRedis(rdb),
			notifications, rules, logger),
		ProfileSvc:      profilesvc.New(userRepo, files),
		WishlistSvc:     wishlistsvc.New(wishlistrepo.NewPostgres(dbpool), productRepo),
		ContactSvc:      contactsvc.New(contactrepo.NewPostgres(dbpool)),
		BlogSvc:         blogsvc.New(blogrepo.NewPostgres(dbpool), files, notifications, logger),
		BannerSvc:       bannersvc.New(settingsrepo.NewPostgres(dbpool), files),
		NotificationSvc: notifications,
		ProductSvc:      productsvc.New(productRepo, files, notifications, logger),
		CouponSvc:       couponsvc.New(couponrepo.NewPostgres(dbpool)),
		OrderSvc:        ordersvc.New(orderRepo, notifications, seller, logger),
	}, httpserver.Options{
		Shipping:    rules,
		CORSOrigins: cfg.CORSOrigins,
		Files:       files,
		Pingers: map[string]db.Pinger{
			"postgres": dbpool,
			"redis":    db.RedisPinger{Client: rdb},
		},
	})
	if err != nil {
		return fmt.Errorf("init server: %w", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("starting http server", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Info("received signal, shutting down", zap.String("signal", sig.String()))
	case err := <-serverErr:
		logger.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("graceful shutdown failed", zap.Error(err))
		return nil
	}
	logger.Info("server stopped")
	return nil
}

package httpserver

import (
	"context"
	"io"
	"time"

	"fashion-storefront/internal/domain"
	"fashion-storefront/internal/pricing"
	blogsvc "fashion-storefront/internal/service/blog"
	cartsvc "fashion-storefront/internal/service/cart"
	catalogsvc "fashion-storefront/internal/service/catalog"
	checkoutsvc "fashion-storefront/internal/service/checkout"
	contactsvc "fashion-storefront/internal/service/contact"
	couponsvc "fashion-storefront/internal/service/coupon"
	productsvc "fashion-storefront/internal/service/product"
	profilesvc "fashion-storefront/internal/service/profile"
)

type GuestService interface {
	Issue() string
	Parse(raw string) (string, error)
}

type AuthService interface {
	RequestCode(ctx context.Context, phone string) error
	VerifyCode(ctx context.Context, phone, code string) (*domain.User, string, time.Time, error)
	LookupByToken(ctx context.Context, token string) (*domain.User, error)
	SignOut(ctx context.Context, token string) error
}

type CatalogService interface {
	List(ctx context.Context, f catalogsvc.Filter) ([]domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	Search(ctx context.Context, q string) ([]domain.Product, error)
}

type CartService interface {
	Get(ctx context.Context, sess cartsvc.Session) ([]domain.CartLine, error)
	Add(ctx context.Context, sess cartsvc.Session, productID string) ([]domain.CartLine, error)
	Remove(ctx context.Context, sess cartsvc.Session, productID string) ([]domain.CartLine, error)
	SetQuantity(ctx context.Context, sess cartsvc.Session, productID string, n int) ([]domain.CartLine, error)
	Increment(ctx context.Context, sess cartsvc.Session, productID string) ([]domain.CartLine, error)
	Decrement(ctx context.Context, sess cartsvc.Session, productID string) ([]domain.CartLine, error)
	Clear(ctx context.Context, sess cartsvc.Session) ([]domain.CartLine, error)
	Summary(ctx context.Context, sess cartsvc.Session, promoCode string) (pricing.Summary, error)
	Watch(ctx context.Context, sess cartsvc.Session) (<-chan []domain.CartLine, func(), error)
}

type CheckoutService interface {
	Quote(ctx context.Context, sess cartsvc.Session, in checkoutsvc.QuoteInput) (pricing.Summary, error)
	SavePending(ctx context.Context, guestID string, item checkoutsvc.BuyNow) error
	TakePending(ctx context.Context, guestID string) (*checkoutsvc.BuyNow, error)
	Pay(ctx context.Context, sess cartsvc.Session, in checkoutsvc.PayInput) (*domain.Order, error)
	ListOrders(ctx context.Context, userID string) ([]domain.Order, error)
}

type ProfileService interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
	Update(ctx context.Context, userID string, in profilesvc.Input) (*domain.User, error)
	UploadPhoto(ctx context.Context, userID string, r io.Reader) (string, error)
}

type WishlistService interface {
	Get(ctx context.Context, userID string) (*domain.Wishlist, error)
	Add(ctx context.Context, userID, productID string) (*domain.Wishlist, error)
	Remove(ctx context.Context, userID, productID string) (*domain.Wishlist, error)
}

type ContactService interface {
	Submit(ctx context.Context, in contactsvc.Input) (*domain.Contact, error)
	List(ctx context.Context) ([]domain.Contact, error)
	SetStatus(ctx context.Context, id string, status domain.ContactStatus) error
	Delete(ctx context.Context, id string) error
}

type BlogService interface {
	ListPublished(ctx context.Context) ([]domain.BlogPost, error)
	ListAll(ctx context.Context) ([]domain.BlogPost, error)
	GetPublished(ctx context.Context, slug string) (*domain.BlogPost, error)
	Create(ctx context.Context, in blogsvc.Input) (*domain.BlogPost, error)
	Update(ctx context.Context, id string, in blogsvc.Input) (*domain.BlogPost, error)
	Delete(ctx context.Context, id string) error
	UploadFeatureImage(ctx context.Context, filename string, r io.Reader) (string, error)
	UploadContentImage(ctx context.Context, filename string, r io.Reader) (string, error)
}

type BannerService interface {
	Get(ctx context.Context) (*domain.Banner, error)
	Put(ctx context.Context, slides []domain.BannerSlide) (*domain.Banner, error)
	UploadSlide(ctx context.Context, filename string, r io.Reader) (string, error)
}

type NotificationService interface {
	List(ctx context.Context) ([]domain.Notification, error)
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context) (int64, error)
	Delete(ctx context.Context, id string) error
}

type ProductAdminService interface {
	List(ctx context.Context) ([]domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, in productsvc.Input) (*domain.Product, error)
	Update(ctx context.Context, id string, in productsvc.Input) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
	UploadImage(ctx context.Context, filename string, r io.Reader) (string, error)
}

type CouponService interface {
	List(ctx context.Context) ([]domain.Coupon, error)
	Create(ctx context.Context, in couponsvc.Input) (*domain.Coupon, error)
	Update(ctx context.Context, id string, in couponsvc.Input) (*domain.Coupon, error)
	Delete(ctx context.Context, id string) error
}

type OrderService interface {
	List(ctx context.Context, status domain.OrderStatus) ([]domain.Order, error)
	Get(ctx context.Context, id string) (*domain.Order, error)
	GetForUser(ctx context.Context, userID, id string) (*domain.Order, error)
	UpdateStatus(ctx context.Context, id string, to domain.OrderStatus) (*domain.Order, error)
	Invoice(ctx context.Context, id string, w io.Writer) error
}

// Deps carries the services behind the routes. A nil service leaves its
// routes unregistered.
type Deps struct {
	GuestSvc        GuestService
	AuthSvc         AuthService
	CatalogSvc      CatalogService
	CartSvc         CartService
	CheckoutSvc     CheckoutService
	ProfileSvc      ProfileService
	WishlistSvc     WishlistService
	ContactSvc      ContactService
	BlogSvc         BlogService
	BannerSvc       BannerService
	NotificationSvc NotificationService
	ProductSvc      ProductAdminService
	CouponSvc       CouponService
	OrderSvc        OrderService
}

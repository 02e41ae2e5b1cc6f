package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Coupon struct {
	ID        string          `json:"id"`
	Code      string          `json:"code"`
	Type      PromoType       `json:"type"`
	Discount  decimal.Decimal `json:"discount"`
	Label     string          `json:"label,omitempty"`
	MinOrder  decimal.Decimal `json:"minOrder"`
	Active    bool            `json:"active"`
	ExpiresAt *time.Time      `json:"expiresAt,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}

type ContactStatus string

const (
	ContactNew      ContactStatus = "new"
	ContactRead     ContactStatus = "read"
	ContactResolved ContactStatus = "resolved"
)

type Contact struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Email     string        `json:"email"`
	Phone     string        `json:"phone,omitempty"`
	Subject   string        `json:"subject,omitempty"`
	Message   string        `json:"message"`
	Status    ContactStatus `json:"status"`
	CreatedAt time.Time     `json:"createdAt"`
}

type NotificationType string

const (
	NotifyProduct NotificationType = "product"
	NotifyOffer   NotificationType = "offer"
	NotifyOrder   NotificationType = "order"
	NotifyBlog    NotificationType = "blog"
)

type Notification struct {
	ID        string           `json:"id"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Link      string           `json:"link,omitempty"`
	Read      bool             `json:"read"`
	CreatedAt time.Time        `json:"createdAt"`
}

type BlogPost struct {
	ID           string    `json:"id"`
	Slug         string    `json:"slug"`
	Title        string    `json:"title"`
	Excerpt      string    `json:"excerpt,omitempty"`
	Content      string    `json:"content"`
	FeatureImage string    `json:"featureImage,omitempty"`
	Tags         []string  `json:"tags,omitempty"`
	Published    bool      `json:"published"`
	CreatedAt    time.Time `json:"createdAt"`
}

type BannerSlide struct {
	ImageURL string `json:"imageUrl"`
	Title    string `json:"title,omitempty"`
	Subtitle string `json:"subtitle,omitempty"`
	Link     string `json:"link,omitempty"`
}

// Banner is the single home-page banner document at settings/banner.
type Banner struct {
	Slides    []BannerSlide `json:"slides"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

type User struct {
	ID        string    `json:"id"`
	Phone     string    `json:"phone"`
	Name      string    `json:"name,omitempty"`
	Email     string    `json:"email,omitempty"`
	PhotoURL  string    `json:"photoUrl,omitempty"`
	IsAdmin   bool      `json:"isAdmin"`
	CreatedAt time.Time `json:"createdAt"`
}

type Wishlist struct {
	UserID     string   `json:"userId"`
	ProductIDs []string `json:"productIds"`
}

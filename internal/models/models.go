package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleCustomer = "customer"
	RoleManager  = "manager"
	RoleAdmin    = "admin"
)

func ValidRole(role string) bool {
	switch role {
	case RoleCustomer, RoleManager, RoleAdmin:
		return true
	}
	return false
}

const (
	OrderPending    = "pending"
	OrderProcessing = "processing"
	OrderShipped    = "shipped"
	OrderDelivered  = "delivered"
	OrderCancelled  = "cancelled"
)

func ValidOrderStatus(s string) bool {
	switch s {
	case OrderPending, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

func newID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

type Division struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"      json:"id"`
	Name        string    `gorm:"not null"                  json:"name"`
	Slug        string    `gorm:"uniqueIndex;not null"      json:"slug"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	ImageURL    string    `json:"image_url"`
	Order       int       `gorm:"column:sort_order;not null" json:"order"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (d *Division) BeforeCreate(*gorm.DB) error { newID(&d.ID); return nil }

type Product struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"          json:"id"`
	Name           string     `gorm:"not null"                      json:"name"`
	Slug           string     `gorm:"uniqueIndex;not null"          json:"slug"`
	Description    string     `json:"description"`
	Price          float64    `gorm:"not null"                      json:"price"`
	CompareAtPrice *float64   `json:"compare_at_price,omitempty"`
	Images         StringList `gorm:"type:text"                     json:"images"`
	Category       string     `gorm:"index"                         json:"category"`
	DivisionID     *uuid.UUID `gorm:"type:uuid;index"               json:"division_id"`
	Division       *Division  `gorm:"foreignKey:DivisionID"         json:"division,omitempty"`
	InStock        bool       `json:"in_stock"`
	Featured       bool       `json:"featured"`
	Tags           StringList `gorm:"type:text"                     json:"tags"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func (p *Product) BeforeCreate(*gorm.DB) error { newID(&p.ID); return nil }

type BlogPost struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"      json:"id"`
	Title         string     `gorm:"not null"                  json:"title"`
	Slug          string     `gorm:"uniqueIndex;not null"      json:"slug"`
	Excerpt       string     `json:"excerpt"`
	Content       string     `gorm:"not null"                  json:"content"`
	Author        string     `json:"author"`
	AuthorImage   *string    `json:"author_image,omitempty"`
	FeaturedImage string     `json:"featured_image"`
	Category      string     `json:"category"`
	Tags          StringList `gorm:"type:text"                 json:"tags"`
	Published     bool       `gorm:"index"                     json:"published"`
	PublishedAt   *time.Time `json:"published_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func (b *BlogPost) BeforeCreate(*gorm.DB) error { newID(&b.ID); return nil }

type Order struct {
	ID              uuid.UUID   `gorm:"type:uuid;primaryKey"  json:"id"`
	UserID          *uuid.UUID  `gorm:"type:uuid;index"       json:"user_id"`
	CustomerName    string      `json:"customer_name"`
	CustomerEmail   string      `json:"customer_email"`
	ShippingAddress string      `json:"shipping_address"`
	Status          string      `gorm:"index;not null"        json:"status"`
	Total           float64     `gorm:"not null"              json:"total"`
	Items           []OrderItem `gorm:"foreignKey:OrderID"    json:"order_items"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

func (o *Order) BeforeCreate(*gorm.DB) error { newID(&o.ID); return nil }

type OrderItem struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"         json:"id"`
	OrderID     uuid.UUID `gorm:"type:uuid;index;not null"     json:"order_id"`
	ProductID   string    `gorm:"not null"                     json:"product_id"`
	ProductName string    `json:"product_name"`
	Quantity    int       `gorm:"not null;check:quantity > 0"  json:"quantity"`
	Price       float64   `gorm:"not null"                     json:"price"`
}

func (i *OrderItem) BeforeCreate(*gorm.DB) error { newID(&i.ID); return nil }

// UserProfile shares its ID with the identity record it describes.
type UserProfile struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"  json:"id"`
	Email     string    `gorm:"index"                 json:"email"`
	FullName  string    `json:"full_name"`
	Phone     string    `json:"phone"`
	Role      string    `gorm:"not null"              json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *UserProfile) BeforeCreate(*gorm.DB) error { newID(&u.ID); return nil }

type ContactSubmission struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"  json:"id"`
	Name      string    `gorm:"not null"              json:"name"`
	Email     string    `gorm:"not null"              json:"email"`
	Phone     *string   `json:"phone,omitempty"`
	Subject   string    `gorm:"not null"              json:"subject"`
	Message   string    `gorm:"not null"              json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

func (c *ContactSubmission) BeforeCreate(*gorm.DB) error { newID(&c.ID); return nil }

type NewsletterSubscriber struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"  json:"id"`
	Email      string    `gorm:"uniqueIndex;not null"  json:"email"`
	Subscribed bool      `json:"subscribed"`
	CreatedAt  time.Time `json:"created_at"`
}

func (n *NewsletterSubscriber) BeforeCreate(*gorm.DB) error { newID(&n.ID); return nil }

type AuthUser struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"  json:"id"`
	Email        string     `gorm:"uniqueIndex;not null"  json:"email"`
	PasswordHash string     `gorm:"not null"              json:"-"`
	LastSignInAt *time.Time `json:"last_sign_in_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

func (AuthUser) TableName() string { return "auth_users" }

func (u *AuthUser) BeforeCreate(*gorm.DB) error { newID(&u.ID); return nil }

type RefreshToken struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"  json:"id"`
	Token     string    `gorm:"uniqueIndex;not null"  json:"-"`
	UserID    uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	JTI       string    `gorm:"uniqueIndex;not null"  json:"jti"`
	ExpiresAt int64     `gorm:"not null"              json:"expires_at"`
	Revoked   bool      `json:"revoked"`
}

func (r *RefreshToken) BeforeCreate(*gorm.DB) error { newID(&r.ID); return nil }

// All lists every table the migrate command creates.
func All() []any {
	return []any{
		&Division{},
		&Product{},
		&BlogPost{},
		&Order{},
		&OrderItem{},
		&UserProfile{},
		&ContactSubmission{},
		&NewsletterSubscriber{},
		&AuthUser{},
		&RefreshToken{},
	}
}

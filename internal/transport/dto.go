package transport

import "github.com/google/uuid"

type SignUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type CreateProductRequest struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Price       float64    `json:"price"`
	Discount    *float64   `json:"discount"`
	Images      []string   `json:"images"`
	Category    string     `json:"category"`
	DivisionID  *uuid.UUID `json:"division_id"`
	Status      string     `json:"status"`
	Featured    bool       `json:"featured"`
	Tags        []string   `json:"tags"`
}

type PatchProductRequest struct {
	Name           *string    `json:"name"`
	Description    *string    `json:"description"`
	Price          *float64   `json:"price"`
	CompareAtPrice *float64   `json:"compare_at_price"`
	Images         *[]string  `json:"images"`
	Category       *string    `json:"category"`
	DivisionID     *uuid.UUID `json:"division_id"`
	InStock        *bool      `json:"in_stock"`
	Featured       *bool      `json:"featured"`
	Tags           *[]string  `json:"tags"`
}

type DivisionRequest struct {
	Name        *string `json:"name"`
	Slug        *string `json:"slug"`
	Description *string `json:"description"`
	Icon        *string `json:"icon"`
	ImageURL    *string `json:"image_url"`
	Order       *int    `json:"order"`
}

type OrderItemRequest struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

type CreateOrderRequest struct {
	UserID          *uuid.UUID         `json:"user_id"`
	CustomerName    string             `json:"customer_name"`
	CustomerEmail   string             `json:"customer_email"`
	ShippingAddress string             `json:"shipping_address"`
	Status          string             `json:"status"`
	Total           float64            `json:"total"`
	Items           []OrderItemRequest `json:"items"`
}

type OrderStatusRequest struct {
	Status string `json:"status"`
}

type CreatePostRequest struct {
	Title         string   `json:"title"`
	Content       string   `json:"content"`
	Excerpt       string   `json:"excerpt"`
	Author        string   `json:"author"`
	AuthorImage   *string  `json:"author_image"`
	FeaturedImage string   `json:"featured_image"`
	Category      string   `json:"category"`
	Tags          []string `json:"tags"`
	Status        string   `json:"status"`
}

type PatchPostRequest struct {
	Title         *string   `json:"title"`
	Content       *string   `json:"content"`
	Excerpt       *string   `json:"excerpt"`
	Author        *string   `json:"author"`
	FeaturedImage *string   `json:"featured_image"`
	Category      *string   `json:"category"`
	Tags          *[]string `json:"tags"`
	Published     *bool     `json:"published"`
}

type RoleRequest struct {
	Role string `json:"role"`
}

type ContactRequest struct {
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Phone   *string `json:"phone"`
	Subject string  `json:"subject"`
	Message string  `json:"message"`
}

type NewsletterRequest struct {
	Email string `json:"email"`
}

type AddCartItemRequest struct {
	ProductID string `json:"product_id"`
}

type CartQuantityRequest struct {
	Quantity int `json:"quantity"`
}

type CheckoutRequest struct {
	CustomerName    string `json:"customer_name"`
	CustomerEmail   string `json:"customer_email"`
	ShippingAddress string `json:"shipping_address"`
}

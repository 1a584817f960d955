package models

import (
	"time"

	"gorm.io/gorm"
)

type Category struct {
	ID       uint      `gorm:"primaryKey;autoIncrement"    json:"id"`
	Name     string    `gorm:"not null"                    json:"name"`
	Products []Product `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

type Product struct {
	ID            uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CategoryID    uint      `gorm:"index;not null"           json:"category_id"`
	Name          string    `gorm:"not null"                 json:"name"`
	ImagePath     string    `gorm:"not null"                 json:"image_path"`
	Description   string    `gorm:"size:1024"                json:"description"`
	Price         float64   `gorm:"not null"                 json:"price"`
	IsRecommended bool      `gorm:"default:true"             json:"is_recommended"`
	CreatedAt     time.Time `gorm:"not null"                 json:"created_at"`
	IsVisible     bool      `gorm:"default:true"             json:"is_visible"`

	OrderItems []OrderProduct `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Opinions   []Opinion      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	return nil
}

// User rows belong to the identity subsystem; the table exists here only as
// the foreign-key target for orders and opinions.
type User struct {
	ID       uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Username string `gorm:"unique;not null"          json:"username"`
	Role     string `gorm:"not null"                 json:"role"`

	Orders   []Order   `gorm:"constraint:OnDelete:SET NULL" json:"-"`
	Opinions []Opinion `gorm:"constraint:OnDelete:CASCADE"  json:"-"`
}

type Order struct {
	ID             uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID         *uint     `gorm:"index"                    json:"user_id"`
	FirstName      string    `gorm:"not null"                 json:"first_name"`
	LastName       string    `gorm:"not null"                 json:"last_name"`
	DeliveryMethod int       `gorm:"not null;default:1"       json:"delivery_method"`
	PaymentMethod  int       `gorm:"not null;default:1"       json:"payment_method"`
	Country        string    `gorm:"not null"                 json:"country"`
	City           string    `gorm:"not null"                 json:"city"`
	Street         string    `gorm:"not null"                 json:"street"`
	HouseNumber    string    `gorm:"not null"                 json:"house_number"`
	ZipCode        string    `gorm:"not null"                 json:"zip_code"`
	PhoneNumber    string    `gorm:"not null"                 json:"phone_number"`
	Email          string    `gorm:"not null"                 json:"email"`
	CreatedAt      time.Time `gorm:"not null"                 json:"created_at"`

	Items []OrderProduct `gorm:"constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Now().UTC()
	}
	return nil
}

type OrderProduct struct {
	ID        uint    `gorm:"primaryKey;autoIncrement"              json:"id"`
	ProductID uint    `gorm:"index;not null"                        json:"product_id"`
	Product   Product `json:"-"`
	Quantity  float64 `gorm:"not null;default:1;check:quantity > 0" json:"quantity"`
	OrderID   *uint   `gorm:"index"                                 json:"order_id"`
}

// Total is computed from the live product price on every read and is never
// stored, so it reflects price edits made after the order was placed.
func (op *OrderProduct) Total() float64 {
	return op.Product.Price * op.Quantity
}

type Opinion struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"                       json:"id"`
	ProductID uint      `gorm:"not null;uniqueIndex:idx_opinions_product_user" json:"product_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_opinions_product_user" json:"user_id"`
	Rating    string    `gorm:"size:1;not null"                                json:"rating"`
	Content   string    `gorm:"size:1024"                                      json:"content"`
	CreatedAt time.Time `gorm:"not null"                                       json:"created_at"`
}

func (o *Opinion) BeforeCreate(tx *gorm.DB) error {
	if o.Rating == "" {
		o.Rating = "5"
	}
	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Now().UTC()
	}
	return nil
}

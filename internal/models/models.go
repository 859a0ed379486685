package models

import (
	"time"
)

const (
	RoleSeller = "SELLER"
	RoleClient = "CLIENT"
)

const (
	OrderStatusPending   = "PENDING"
	OrderStatusCompleted = "COMPLETED"
	OrderStatusCancelled = "CANCELLED"
)

type Product struct {
	ID          uint      `gorm:"primaryKey;autoIncrement"  json:"id"`
	Name        string    `gorm:"not null"                  json:"name"`
	Description string    `gorm:"not null"                  json:"description"`
	Stock       int       `gorm:"not null;check:stock >= 0" json:"stock"`
	Price       float64   `gorm:"not null;check:price >= 0" json:"price"`
	CreatedAt   time.Time `json:"created_at"`
}

type User struct {
	ID                 uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name               string    `gorm:"not null"                 json:"name"`
	LastName           string    `gorm:"not null"                 json:"last_name"`
	Email              string    `gorm:"unique;not null"          json:"email"`
	PasswordHash       string    `gorm:"not null"                 json:"-"`
	Role               string    `gorm:"not null"                 json:"role"`
	AssociatedSellerID *uint     `gorm:"index"                    json:"associated_seller_id,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
}

type Order struct {
	ID            uint        `gorm:"primaryKey;autoIncrement" json:"id"`
	ClientID      uint        `gorm:"index;not null"           json:"client_id"`
	SellerID      uint        `gorm:"index;not null"           json:"seller_id"`
	Total         float64     `gorm:"not null"                 json:"total"`
	Status        string      `gorm:"not null;default:PENDING" json:"status"`
	PaymentMethod string      `gorm:"not null;default:CARD"    json:"payment_method"`
	CreatedAt     time.Time   `json:"created_at"`
	Lines         []OrderLine `gorm:"foreignKey:OrderID"       json:"lines"`
}

type OrderLine struct {
	ID        uint    `gorm:"primaryKey;autoIncrement"    json:"id"`
	OrderID   uint    `gorm:"index;not null"              json:"order_id"`
	ProductID uint    `gorm:"not null"                    json:"product_id"`
	Quantity  uint    `gorm:"not null;check:quantity > 0" json:"quantity"`
	UnitPrice float64 `gorm:"not null"                    json:"unit_price"`
}

package models

import (
	"time"
)

// Order statuses. ACCEPTED/REJECTED are assigned by the order service,
// PENDING is the zero state an admin may reset an order to.
const (
	StatusPending  = "PENDING"
	StatusAccepted = "ACCEPTED"
	StatusRejected = "REJECTED"
)

type User struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string `gorm:"unique;not null"          json:"username"`
	PasswordHash string `gorm:"not null"                 json:"-"`
	Email        string `json:"email"`
	Age          int    `json:"age"`
	DOB          string `json:"dob"`
	Roles        string `gorm:"not null"                 json:"roles"`
}

type Product struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"not null"                 json:"name"`
	Description string    `gorm:"not null"                 json:"description"`
	Price       float64   `gorm:"not null"                 json:"price"`
	Stock       uint      `json:"stock"`
	PublishDate time.Time `json:"publish_date"`
}

type Order struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID       uint      `gorm:"index;not null"           json:"user_id"`
	ProductID    uint      `gorm:"not null"                 json:"product_id"`
	Quantity     int       `json:"quantity"`
	TotalPrice   float64   `gorm:"not null"                 json:"total_price"`
	CustomerName string    `json:"customer_name"`
	Phone        string    `json:"phone"`
	City         string    `json:"city"`
	State        string    `json:"state"`
	CardNumber   string    `json:"-"`
	Status       string    `gorm:"not null"                 json:"status"`
	OrderDate    time.Time `gorm:"index;not null"           json:"order_date"`
}

type RefreshToken struct {
	ID        uint   `gorm:"primaryKey"      json:"id"`
	Token     string `gorm:"unique;not null" json:"token"`
	JTI       string `gorm:"index"           json:"jti"`
	UserID    uint   `gorm:"index;not null"  json:"user_id"`
	ExpiresAt int64  `gorm:"not null"        json:"expires_at"`
	Revoked   bool   `gorm:"default:false"   json:"revoked"`
}

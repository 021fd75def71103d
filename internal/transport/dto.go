package transport

type RegisterRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
	Email    string `json:"email"    validate:"required,email"`
	Age      int    `json:"age"      validate:"required"`
	DOB      string `json:"dob"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type ProductRequest struct {
	Name        string  `json:"name"        validate:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price"       validate:"gt=0"`
	Stock       uint    `json:"stock"`
	PublishDate string  `json:"publish_date"`
}

type PlaceOrderRequest struct {
	Quantity     int    `json:"quantity"`
	CustomerName string `json:"customer_name"`
	Phone        string `json:"phone"`
	City         string `json:"city"`
	State        string `json:"state"`
	CardNumber   string `json:"card_number"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type UpdateUserRequest struct {
	Email string `json:"email" validate:"omitempty,email"`
	Age   int    `json:"age"`
	DOB   string `json:"dob"`
	Roles string `json:"roles"`
}

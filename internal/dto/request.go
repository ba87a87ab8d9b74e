package dto

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type RegisterRequest struct {
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
	FullName        string `json:"fullName" validate:"required"`
	Phone           string `json:"phone" validate:"required"`
	Address         string `json:"address"`
}

type ProfileUpdateRequest struct {
	FullName string `json:"fullName" validate:"required"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=NewPassword"`
}

type AddCartItemRequest struct {
	MenuItemID string `json:"menuItemId" validate:"required"`
	Quantity   int    `json:"quantity" validate:"gte=0,lte=99"`
	Notes      string `json:"notes" validate:"max=500"`
}

type UpdateCartItemRequest struct {
	Quantity *int    `json:"quantity" validate:"omitempty,lte=99"`
	Notes    *string `json:"notes" validate:"omitempty,max=500"`
}

type OrderTypeRequest struct {
	OrderType string `json:"orderType" validate:"required,oneof=PRE_ORDER TAKEAWAY DELIVERY"`
}

type CheckoutRequest struct {
	OrderType       string  `json:"orderType" validate:"omitempty,oneof=PRE_ORDER TAKEAWAY DELIVERY"`
	CustomerName    string  `json:"customerName" validate:"required"`
	CustomerEmail   string  `json:"customerEmail" validate:"required,email"`
	CustomerPhone   string  `json:"customerPhone" validate:"required"`
	DeliveryAddress string  `json:"deliveryAddress" validate:"required_if=OrderType DELIVERY"`
	PickupTime      string  `json:"pickupTime"`
	ReservationID   *string `json:"reservationId"`
	Notes           string  `json:"notes" validate:"max=1000"`
}

type AvailabilityQuery struct {
	Date      string `query:"date" json:"date" validate:"required,datetime=2006-01-02"`
	PartySize int    `query:"partySize" json:"partySize" validate:"required,min=1,max=20"`
}

type SelectTimeRequest struct {
	Time string `json:"time" validate:"required"`
}

type BookingRequest struct {
	SpecialRequests string  `json:"specialRequests" validate:"max=500"`
	PreOrderID      *string `json:"preOrderId"`
	GuestName       string  `json:"guestName"`
	GuestEmail      string  `json:"guestEmail" validate:"omitempty,email"`
	GuestPhone      string  `json:"guestPhone"`
}

type MenuItemRequest struct {
	Name            string  `json:"name" validate:"required"`
	Description     string  `json:"description"`
	Price           float64 `json:"price" validate:"gt=0"`
	Category        string  `json:"category" validate:"required"`
	ImageURL        string  `json:"imageUrl" validate:"omitempty,url"`
	Available       bool    `json:"available"`
	Vegetarian      bool    `json:"vegetarian"`
	Spicy           bool    `json:"spicy"`
	PreparationTime int     `json:"preparationTime" validate:"gte=0"`
}

type AvailabilityToggleRequest struct {
	Available bool `json:"available"`
}

type TableRequest struct {
	TableNumber string `json:"tableNumber" validate:"required"`
	Capacity    int    `json:"capacity" validate:"required,min=1,max=50"`
	Location    string `json:"location"`
	Active      bool   `json:"active"`
}

type UserRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=ADMIN MEMBER"`
}

type UserActiveRequest struct {
	Active bool `json:"active"`
}

type StatusSelectRequest struct {
	Status string `json:"status" validate:"required"`
}

// StatusCommitRequest carries the confirmed status. A missing reason uses the status default;
// an empty one is sent as given.
type StatusCommitRequest struct {
	Status string  `json:"status" validate:"required"`
	Reason *string `json:"reason" validate:"omitempty,max=500"`
}

package apiclient

import "github.com/aperture-dining/web-service/internal/models"

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
	Phone    string `json:"phone,omitempty"`
	Address  string `json:"address,omitempty"`
}

type ProfileUpdate struct {
	FullName string `json:"fullName"`
	Phone    string `json:"phone,omitempty"`
	Address  string `json:"address,omitempty"`
}

type PasswordChange struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

type MenuFilter struct {
	Category      string
	Search        string
	AvailableOnly bool
}

type MenuItemInput struct {
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	Price           float64 `json:"price"`
	Category        string  `json:"category"`
	ImageURL        string  `json:"imageUrl,omitempty"`
	Available       bool    `json:"available"`
	Vegetarian      bool    `json:"vegetarian"`
	Spicy           bool    `json:"spicy"`
	PreparationTime int     `json:"preparationTime,omitempty"`
}

type Availability struct {
	Date      string            `json:"date"`
	PartySize int               `json:"partySize"`
	Slots     []models.TimeSlot `json:"slots"`
}

type ReservationRequest struct {
	ReservationDate string  `json:"reservationDate"`
	StartTime       string  `json:"startTime"`
	PartySize       int     `json:"partySize"`
	SpecialRequests string  `json:"specialRequests,omitempty"`
	PreOrderID      *string `json:"preOrderId,omitempty"`
	GuestName       string  `json:"guestName,omitempty"`
	GuestEmail      string  `json:"guestEmail,omitempty"`
	GuestPhone      string  `json:"guestPhone,omitempty"`
}

type ReservationFilter struct {
	Status string
	Date   string
}

type StatusUpdate struct {
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

type OrderRequest struct {
	OrderType       models.OrderType   `json:"orderType"`
	Items           []models.OrderItem `json:"items"`
	CustomerName    string             `json:"customerName"`
	CustomerEmail   string             `json:"customerEmail"`
	CustomerPhone   string             `json:"customerPhone"`
	DeliveryAddress string             `json:"deliveryAddress,omitempty"`
	PickupTime      string             `json:"pickupTime,omitempty"`
	ReservationID   *string            `json:"reservationId,omitempty"`
	Notes           string             `json:"notes,omitempty"`
}

type OrderFilter struct {
	Status        string
	PaymentStatus string
	OrderType     string
}

type TableInput struct {
	TableNumber string `json:"tableNumber"`
	Capacity    int    `json:"capacity"`
	Location    string `json:"location,omitempty"`
	Active      bool   `json:"active"`
}

package dto

import (
	"github.com/aperture-dining/web-service/internal/models"
	"github.com/aperture-dining/web-service/internal/service"
)

type ErrorResponse struct {
	Message string            `json:"message"`
	Code    string            `json:"code,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

type SessionResponse struct {
	Authenticated bool         `json:"authenticated"`
	User          *models.User `json:"user"`
}

type CartResponse struct {
	Items     []models.CartItem `json:"items"`
	OrderType string            `json:"orderType,omitempty"`
	ItemCount int               `json:"itemCount"`
	Subtotal  string            `json:"subtotal"`
	Tax       string            `json:"tax"`
	Total     string            `json:"total"`
}

func ToCartResponse(items []models.CartItem, orderType models.OrderType, taxRate float64) CartResponse {
	if items == nil {
		items = []models.CartItem{}
	}
	t := service.CalculateTotals(items, taxRate)
	return CartResponse{
		Items:     items,
		OrderType: string(orderType),
		ItemCount: t.ItemCount,
		Subtotal:  service.FormatCents(t.SubtotalCents),
		Tax:       service.FormatCents(t.TaxCents),
		Total:     service.FormatCents(t.TotalCents),
	}
}

type BookingResponse struct {
	Date         string            `json:"date,omitempty"`
	PartySize    int               `json:"partySize,omitempty"`
	SelectedTime string            `json:"selectedTime,omitempty"`
	Slots        []models.TimeSlot `json:"slots"`
	FetchFailed  bool              `json:"fetchFailed"`
	Complete     bool              `json:"complete"`
}

func ToBookingResponse(st *service.BookingState) BookingResponse {
	slots := st.Slots
	if slots == nil {
		slots = []models.TimeSlot{}
	}
	return BookingResponse{
		Date:         st.Date,
		PartySize:    st.PartySize,
		SelectedTime: st.SelectedTime,
		Slots:        slots,
		FetchFailed:  st.FetchFailed,
		Complete:     st.Complete(),
	}
}

type StatusOptionsResponse struct {
	Current string                 `json:"current"`
	Options []service.StatusOption `json:"options"`
}

type ListResponse[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

func NewListResponse[T any](items []T) ListResponse[T] {
	if items == nil {
		items = []T{}
	}
	return ListResponse[T]{Items: items, Total: len(items)}
}

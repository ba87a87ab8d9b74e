package service

import (
	"context"
	"log"

	"github.com/aperture-dining/web-service/internal/apiclient"
	"github.com/aperture-dining/web-service/internal/models"
)

type OrderBackend interface {
	CreateOrder(ctx context.Context, in apiclient.OrderRequest) (*models.Order, error)
	ListMyOrders(ctx context.Context) ([]models.Order, error)
	GetOrder(ctx context.Context, id string) (*models.Order, error)
}

// CheckoutInput is the checkout form. OrderType falls back to the session's stored choice.
type CheckoutInput struct {
	OrderType       models.OrderType
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	DeliveryAddress string
	PickupTime      string
	ReservationID   *string
	Notes           string
}

type OrderService interface {
	Checkout(ctx context.Context, ns string, in CheckoutInput) (*models.Order, error)
	MyOrders(ctx context.Context) ([]models.Order, error)
	Get(ctx context.Context, id string) (*models.Order, error)
}

type orderService struct {
	backend OrderBackend
	cart    CartService
}

func NewOrderService(backend OrderBackend, cart CartService) OrderService {
	return &orderService{backend: backend, cart: cart}
}

func (s *orderService) Checkout(ctx context.Context, ns string, in CheckoutInput) (*models.Order, error) {
	items := s.cart.LoadCart(ctx, ns)
	if len(items) == 0 {
		return nil, ErrCartEmpty
	}

	orderType := in.OrderType
	if orderType == "" {
		stored, ok := s.cart.LoadOrderType(ctx, ns)
		if !ok {
			return nil, ErrOrderTypeRequired
		}
		orderType = stored
	}
	if _, ok := models.ParseOrderType(string(orderType)); !ok {
		return nil, ErrInvalidOrderType
	}
	switch orderType {
	case models.OrderTypeDelivery:
		if in.DeliveryAddress == "" {
			return nil, fieldError("deliveryAddress", "delivery address is required for delivery orders")
		}
	case models.OrderTypePreOrder:
		if in.PickupTime == "" && in.ReservationID == nil {
			return nil, fieldError("pickupTime", "pre-orders need a pickup time or a reservation")
		}
	}

	req := apiclient.OrderRequest{
		OrderType:       orderType,
		Items:           make([]models.OrderItem, len(items)),
		CustomerName:    in.CustomerName,
		CustomerEmail:   in.CustomerEmail,
		CustomerPhone:   in.CustomerPhone,
		DeliveryAddress: in.DeliveryAddress,
		PickupTime:      in.PickupTime,
		ReservationID:   in.ReservationID,
		Notes:           in.Notes,
	}
	for i, it := range items {
		req.Items[i] = models.OrderItem{
			MenuItemID: it.ID,
			Name:       it.Name,
			Price:      it.Price,
			Quantity:   it.Quantity,
			Notes:      it.Notes,
		}
	}

	order, err := s.backend.CreateOrder(ctx, req)
	if err != nil {
		return nil, err
	}
	s.cart.Clear(ctx, ns)
	log.Printf("[Checkout] order %s placed for session %s", order.OrderNumber, ns)
	return order, nil
}

func (s *orderService) MyOrders(ctx context.Context) ([]models.Order, error) {
	return s.backend.ListMyOrders(ctx)
}

func (s *orderService) Get(ctx context.Context, id string) (*models.Order, error) {
	return s.backend.GetOrder(ctx, id)
}

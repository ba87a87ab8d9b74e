package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"

	"github.com/aperture-dining/web-service/internal/models"
	"github.com/aperture-dining/web-service/internal/repository"
)

// Client-state keys, one set per browser session.
const (
	CartKey       = "aperture_cart"
	OrderTypeKey  = "aperture_order_type"
	UserKey       = "aperture_user"
	BookingKey    = "aperture_booking"
	BookingGenKey = "aperture_booking_gen"
)

type CartService interface {
	LoadCart(ctx context.Context, ns string) []models.CartItem
	SaveCart(ctx context.Context, ns string, items []models.CartItem)
	LoadOrderType(ctx context.Context, ns string) (models.OrderType, bool)
	SaveOrderType(ctx context.Context, ns string, t models.OrderType) error
	Clear(ctx context.Context, ns string)

	AddItem(ctx context.Context, ns string, item models.CartItem) []models.CartItem
	UpdateQuantity(ctx context.Context, ns, id string, quantity int) ([]models.CartItem, error)
	RemoveItem(ctx context.Context, ns, id string) []models.CartItem
	UpdateNotes(ctx context.Context, ns, id, notes string) ([]models.CartItem, error)
}

type cartService struct {
	state repository.StateRepository
}

func NewCartService(state repository.StateRepository) CartService {
	return &cartService{state: state}
}

// LoadCart never fails: missing or unreadable data is an empty cart, and unreadable data is removed.
func (s *cartService) LoadCart(ctx context.Context, ns string) []models.CartItem {
	raw, err := s.state.Get(ctx, ns, CartKey)
	if err != nil {
		if !errors.Is(err, repository.ErrStateNotFound) {
			log.Printf("[Cart] load %s: %v", ns, err)
		}
		return []models.CartItem{}
	}

	var items []models.CartItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil || items == nil {
		log.Printf("[Cart] discarding unreadable cart for %s", ns)
		if derr := s.state.Delete(ctx, ns, CartKey); derr != nil {
			log.Printf("[Cart] remove corrupt cart %s: %v", ns, derr)
		}
		return []models.CartItem{}
	}
	return items
}

// SaveCart persists items. Failures are logged; the in-memory cart stays authoritative for the request.
func (s *cartService) SaveCart(ctx context.Context, ns string, items []models.CartItem) {
	if items == nil {
		items = []models.CartItem{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		log.Printf("[Cart] encode cart %s: %v", ns, err)
		return
	}
	if err := s.state.Set(ctx, ns, CartKey, string(raw)); err != nil {
		log.Printf("[Cart] save cart %s: %v", ns, err)
	}
}

func (s *cartService) LoadOrderType(ctx context.Context, ns string) (models.OrderType, bool) {
	raw, err := s.state.Get(ctx, ns, OrderTypeKey)
	if err != nil {
		return "", false
	}
	t, ok := models.ParseOrderType(raw)
	if !ok {
		log.Printf("[Cart] discarding unknown order type %q for %s", raw, ns)
		_ = s.state.Delete(ctx, ns, OrderTypeKey)
		return "", false
	}
	return t, true
}

func (s *cartService) SaveOrderType(ctx context.Context, ns string, t models.OrderType) error {
	if _, ok := models.ParseOrderType(string(t)); !ok {
		return ErrInvalidOrderType
	}
	if err := s.state.Set(ctx, ns, OrderTypeKey, string(t)); err != nil {
		log.Printf("[Cart] save order type %s: %v", ns, err)
	}
	return nil
}

func (s *cartService) Clear(ctx context.Context, ns string) {
	if err := s.state.Delete(ctx, ns, CartKey, OrderTypeKey); err != nil {
		log.Printf("[Cart] clear %s: %v", ns, err)
	}
}

func (s *cartService) AddItem(ctx context.Context, ns string, item models.CartItem) []models.CartItem {
	if item.Quantity <= 0 {
		item.Quantity = 1
	}
	items := s.LoadCart(ctx, ns)
	merged := false
	for i := range items {
		if items[i].ID == item.ID {
			items[i].Quantity += item.Quantity
			if item.Notes != "" {
				items[i].Notes = item.Notes
			}
			merged = true
			break
		}
	}
	if !merged {
		items = append(items, item)
	}
	s.SaveCart(ctx, ns, items)
	return items
}

// UpdateQuantity sets the quantity of id; zero or less removes the line.
func (s *cartService) UpdateQuantity(ctx context.Context, ns, id string, quantity int) ([]models.CartItem, error) {
	items := s.LoadCart(ctx, ns)
	idx := indexOf(items, id)
	if idx < 0 {
		return items, ErrCartItemNotFound
	}
	if quantity <= 0 {
		items = append(items[:idx], items[idx+1:]...)
	} else {
		items[idx].Quantity = quantity
	}
	s.SaveCart(ctx, ns, items)
	return items, nil
}

func (s *cartService) RemoveItem(ctx context.Context, ns, id string) []models.CartItem {
	items := s.LoadCart(ctx, ns)
	if idx := indexOf(items, id); idx >= 0 {
		items = append(items[:idx], items[idx+1:]...)
		s.SaveCart(ctx, ns, items)
	}
	return items
}

func (s *cartService) UpdateNotes(ctx context.Context, ns, id, notes string) ([]models.CartItem, error) {
	items := s.LoadCart(ctx, ns)
	idx := indexOf(items, id)
	if idx < 0 {
		return items, ErrCartItemNotFound
	}
	items[idx].Notes = notes
	s.SaveCart(ctx, ns, items)
	return items, nil
}

func indexOf(items []models.CartItem, id string) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}

// Totals are computed in cents and rounded half away from zero.
type Totals struct {
	ItemCount     int
	SubtotalCents int64
	TaxCents      int64
	TotalCents    int64
}

func CalculateTotals(items []models.CartItem, taxRate float64) Totals {
	var t Totals
	for _, it := range items {
		t.ItemCount += it.Quantity
		t.SubtotalCents += int64(math.Round(it.Price*100)) * int64(it.Quantity)
	}
	t.TaxCents = int64(math.Round(float64(t.SubtotalCents) * taxRate))
	t.TotalCents = t.SubtotalCents + t.TaxCents
	return t
}

func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}

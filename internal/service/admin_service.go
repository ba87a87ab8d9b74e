package service

import (
	"context"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/aperture-dining/web-service/internal/apiclient"
	"github.com/aperture-dining/web-service/internal/models"
)

type AdminBackend interface {
	ListMenu(ctx context.Context, f apiclient.MenuFilter) ([]models.MenuItem, error)
	CreateMenuItem(ctx context.Context, in apiclient.MenuItemInput) (*models.MenuItem, error)
	UpdateMenuItem(ctx context.Context, id string, in apiclient.MenuItemInput) (*models.MenuItem, error)
	DeleteMenuItem(ctx context.Context, id string) error
	SetMenuItemAvailability(ctx context.Context, id string, available bool) (*models.MenuItem, error)

	ListOrders(ctx context.Context, f apiclient.OrderFilter) ([]models.Order, error)
	ListReservations(ctx context.Context, f apiclient.ReservationFilter) ([]models.Reservation, error)

	ListTables(ctx context.Context) ([]models.Table, error)
	CreateTable(ctx context.Context, in apiclient.TableInput) (*models.Table, error)
	UpdateTable(ctx context.Context, id string, in apiclient.TableInput) (*models.Table, error)
	DeleteTable(ctx context.Context, id string) error

	ListUsers(ctx context.Context) ([]models.User, error)
	UpdateUserRole(ctx context.Context, id string, role models.Role) (*models.User, error)
	SetUserActive(ctx context.Context, id string, active bool) (*models.User, error)
}

type MenuListFilter struct {
	Category  string
	Available *bool
}

type OrderListFilter struct {
	Status        string
	PaymentStatus string
	OrderType     string
}

type ReservationListFilter struct {
	Status string
	Date   string
}

type TableListFilter struct {
	Active      *bool
	MinCapacity int
}

type UserListFilter struct {
	Role   string
	Active *bool
}

type AdminService interface {
	ListMenuItems(ctx context.Context, f MenuListFilter, q ListQuery) ([]models.MenuItem, error)
	CreateMenuItem(ctx context.Context, in apiclient.MenuItemInput) (*models.MenuItem, error)
	UpdateMenuItem(ctx context.Context, id string, in apiclient.MenuItemInput) (*models.MenuItem, error)
	DeleteMenuItem(ctx context.Context, id string) error
	SetMenuItemAvailability(ctx context.Context, id string, available bool) (*models.MenuItem, error)

	ListOrders(ctx context.Context, f OrderListFilter, q ListQuery) ([]models.Order, error)
	ListReservations(ctx context.Context, f ReservationListFilter, q ListQuery) ([]models.Reservation, error)

	ListTables(ctx context.Context, f TableListFilter, q ListQuery) ([]models.Table, error)
	CreateTable(ctx context.Context, in apiclient.TableInput) (*models.Table, error)
	UpdateTable(ctx context.Context, id string, in apiclient.TableInput) (*models.Table, error)
	DeleteTable(ctx context.Context, id string) error

	ListUsers(ctx context.Context, f UserListFilter, q ListQuery) ([]models.User, error)
	UpdateUserRole(ctx context.Context, id string, role models.Role) (*models.User, error)
	SetUserActive(ctx context.Context, id string, active bool) (*models.User, error)

	Dashboard(ctx context.Context, now time.Time) (*DashboardStats, error)
}

type adminService struct {
	backend AdminBackend
}

func NewAdminService(backend AdminBackend) AdminService {
	return &adminService{backend: backend}
}

var menuSorters = map[string]comparator[models.MenuItem]{
	"name":     byString(func(m models.MenuItem) string { return m.Name }),
	"category": byString(func(m models.MenuItem) string { return m.Category }),
	"price":    byOrdered(func(m models.MenuItem) float64 { return m.Price }),
}

func (s *adminService) ListMenuItems(ctx context.Context, f MenuListFilter, q ListQuery) ([]models.MenuItem, error) {
	items, err := s.backend.ListMenu(ctx, apiclient.MenuFilter{})
	if err != nil {
		return nil, err
	}
	keep := func(m models.MenuItem) bool {
		if f.Category != "" && !strings.EqualFold(m.Category, f.Category) {
			return false
		}
		return f.Available == nil || m.Available == *f.Available
	}
	text := func(m models.MenuItem) []string { return []string{m.Name, m.Description, m.Category} }
	return applyQuery(items, q, keep, text, menuSorters), nil
}

func (s *adminService) CreateMenuItem(ctx context.Context, in apiclient.MenuItemInput) (*models.MenuItem, error) {
	return s.backend.CreateMenuItem(ctx, in)
}

func (s *adminService) UpdateMenuItem(ctx context.Context, id string, in apiclient.MenuItemInput) (*models.MenuItem, error) {
	return s.backend.UpdateMenuItem(ctx, id, in)
}

func (s *adminService) DeleteMenuItem(ctx context.Context, id string) error {
	return s.backend.DeleteMenuItem(ctx, id)
}

func (s *adminService) SetMenuItemAvailability(ctx context.Context, id string, available bool) (*models.MenuItem, error) {
	return s.backend.SetMenuItemAvailability(ctx, id, available)
}

var orderSorters = map[string]comparator[models.Order]{
	"createdAt":   byOrdered(func(o models.Order) int64 { return o.CreatedAt.UnixNano() }),
	"total":       byOrdered(func(o models.Order) float64 { return o.Total }),
	"status":      byString(func(o models.Order) string { return string(o.Status) }),
	"orderNumber": byString(func(o models.Order) string { return o.OrderNumber }),
}

func (s *adminService) ListOrders(ctx context.Context, f OrderListFilter, q ListQuery) ([]models.Order, error) {
	orders, err := s.backend.ListOrders(ctx, apiclient.OrderFilter{})
	if err != nil {
		return nil, err
	}
	keep := func(o models.Order) bool {
		if f.Status != "" && string(o.Status) != f.Status {
			return false
		}
		if f.PaymentStatus != "" && string(o.PaymentStatus) != f.PaymentStatus {
			return false
		}
		return f.OrderType == "" || string(o.OrderType) == f.OrderType
	}
	text := func(o models.Order) []string {
		return []string{o.OrderNumber, o.CustomerName, o.CustomerEmail, o.CustomerPhone}
	}
	return applyQuery(orders, q, keep, text, orderSorters), nil
}

var reservationSorters = map[string]comparator[models.Reservation]{
	"date":      byString(func(r models.Reservation) string { return r.ReservationDate + " " + r.StartTime }),
	"partySize": byOrdered(func(r models.Reservation) int { return r.PartySize }),
	"status":    byString(func(r models.Reservation) string { return string(r.Status) }),
	"createdAt": byOrdered(func(r models.Reservation) int64 { return r.CreatedAt.UnixNano() }),
}

func (s *adminService) ListReservations(ctx context.Context, f ReservationListFilter, q ListQuery) ([]models.Reservation, error) {
	list, err := s.backend.ListReservations(ctx, apiclient.ReservationFilter{})
	if err != nil {
		return nil, err
	}
	keep := func(r models.Reservation) bool {
		if f.Status != "" && string(r.Status) != f.Status {
			return false
		}
		return f.Date == "" || r.ReservationDate == f.Date
	}
	text := func(r models.Reservation) []string {
		fields := []string{r.ConfirmationCode, r.GuestName, r.GuestEmail, r.GuestPhone, r.SpecialRequests}
		if r.Table != nil {
			fields = append(fields, r.Table.TableNumber)
		}
		return fields
	}
	return applyQuery(list, q, keep, text, reservationSorters), nil
}

var tableSorters = map[string]comparator[models.Table]{
	"tableNumber": byTableNumber,
	"capacity":    byOrdered(func(t models.Table) int { return t.Capacity }),
	"location":    byString(func(t models.Table) string { return t.Location }),
}

// byTableNumber orders numeric table numbers numerically and the rest alphabetically after them.
func byTableNumber(a, b models.Table) int {
	na, errA := strconv.Atoi(a.TableNumber)
	nb, errB := strconv.Atoi(b.TableNumber)
	switch {
	case errA == nil && errB == nil:
		return na - nb
	case errA == nil:
		return -1
	case errB == nil:
		return 1
	}
	return strings.Compare(a.TableNumber, b.TableNumber)
}

func (s *adminService) ListTables(ctx context.Context, f TableListFilter, q ListQuery) ([]models.Table, error) {
	tables, err := s.backend.ListTables(ctx)
	if err != nil {
		return nil, err
	}
	keep := func(t models.Table) bool {
		if f.Active != nil && t.Active != *f.Active {
			return false
		}
		return t.Capacity >= f.MinCapacity
	}
	text := func(t models.Table) []string { return []string{t.TableNumber, t.Location} }
	return applyQuery(tables, q, keep, text, tableSorters), nil
}

func (s *adminService) CreateTable(ctx context.Context, in apiclient.TableInput) (*models.Table, error) {
	return s.backend.CreateTable(ctx, in)
}

func (s *adminService) UpdateTable(ctx context.Context, id string, in apiclient.TableInput) (*models.Table, error) {
	return s.backend.UpdateTable(ctx, id, in)
}

func (s *adminService) DeleteTable(ctx context.Context, id string) error {
	return s.backend.DeleteTable(ctx, id)
}

var userSorters = map[string]comparator[models.User]{
	"name":      byString(func(u models.User) string { return u.FullName }),
	"email":     byString(func(u models.User) string { return u.Email }),
	"role":      byString(func(u models.User) string { return string(u.Role) }),
	"createdAt": byOrdered(func(u models.User) int64 { return u.CreatedAt.UnixNano() }),
}

func (s *adminService) ListUsers(ctx context.Context, f UserListFilter, q ListQuery) ([]models.User, error) {
	users, err := s.backend.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	keep := func(u models.User) bool {
		if f.Role != "" && string(u.Role) != f.Role {
			return false
		}
		return f.Active == nil || u.Active == *f.Active
	}
	text := func(u models.User) []string { return []string{u.FullName, u.Email, u.Phone} }
	return applyQuery(users, q, keep, text, userSorters), nil
}

func (s *adminService) UpdateUserRole(ctx context.Context, id string, role models.Role) (*models.User, error) {
	return s.backend.UpdateUserRole(ctx, id, role)
}

func (s *adminService) SetUserActive(ctx context.Context, id string, active bool) (*models.User, error) {
	return s.backend.SetUserActive(ctx, id, active)
}

type DashboardStats struct {
	PendingOrders       int    `json:"pendingOrders"`
	ActiveOrders        int    `json:"activeOrders"`
	TodayReservations   int    `json:"todayReservations"`
	PendingReservations int    `json:"pendingReservations"`
	MenuItems           int    `json:"menuItems"`
	UnavailableItems    int    `json:"unavailableItems"`
	RevenueToday        string `json:"revenueToday"`
}

// Dashboard summarises orders, reservations and the menu for the admin landing page.
func (s *adminService) Dashboard(ctx context.Context, now time.Time) (*DashboardStats, error) {
	orders, err := s.backend.ListOrders(ctx, apiclient.OrderFilter{})
	if err != nil {
		return nil, err
	}
	reservations, err := s.backend.ListReservations(ctx, apiclient.ReservationFilter{})
	if err != nil {
		return nil, err
	}
	items, err := s.backend.ListMenu(ctx, apiclient.MenuFilter{})
	if err != nil {
		return nil, err
	}

	today := now.Format(dateLayout)
	stats := &DashboardStats{MenuItems: len(items)}
	var revenueCents int64
	for _, o := range orders {
		switch o.Status {
		case models.OrderPending:
			stats.PendingOrders++
		case models.OrderConfirmed, models.OrderPreparing, models.OrderReady, models.OrderOutForDelivery:
			stats.ActiveOrders++
		}
		if o.PaymentStatus == models.PaymentPaid && o.CreatedAt.Format(dateLayout) == today {
			revenueCents += int64(math.Round(o.Total * 100))
		}
	}
	for _, r := range reservations {
		if r.Status == models.ReservationPending {
			stats.PendingReservations++
		}
		if r.ReservationDate == today && r.Status != models.ReservationCancelled {
			stats.TodayReservations++
		}
	}
	for _, m := range items {
		if !m.Available {
			stats.UnavailableItems++
		}
	}
	stats.RevenueToday = FormatCents(revenueCents)
	return stats, nil
}

package models

type MenuItem struct {
	ID              string  `json:"id"`
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

// CartItem is a menu item with the quantity and notes the customer picked.
type CartItem struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	Notes       string  `json:"notes,omitempty"`
	Description string  `json:"description,omitempty"`
	Category    string  `json:"category,omitempty"`
	ImageURL    string  `json:"imageUrl,omitempty"`
}

// NewCartItem copies the menu fields a cart line keeps.
func NewCartItem(m MenuItem, quantity int) CartItem {
	return CartItem{
		ID:          m.ID,
		Name:        m.Name,
		Price:       m.Price,
		Quantity:    quantity,
		Description: m.Description,
		Category:    m.Category,
		ImageURL:    m.ImageURL,
	}
}

type Table struct {
	ID          string `json:"id"`
	TableNumber string `json:"tableNumber"`
	Capacity    int    `json:"capacity"`
	Location    string `json:"location,omitempty"`
	Active      bool   `json:"active"`
}

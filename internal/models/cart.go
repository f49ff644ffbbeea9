package models

import "math"

// TaxRate applied to the cart subtotal at checkout.
const TaxRate = 0.08

// CartLineItem is one template plus its customization. Two items are the
// same line when id, size and color all match.
type CartLineItem struct {
	ID         ID      `json:"id" validate:"required"`
	Title      string  `json:"title"`
	Price      float64 `json:"price" validate:"gte=0"`
	Quantity   int     `json:"quantity" validate:"required,min=1"`
	Size       string  `json:"size"`
	Color      string  `json:"color"`
	CustomText string  `json:"customText"`
	Image      string  `json:"image"`
}

func (i CartLineItem) SameLine(other CartLineItem) bool {
	return i.ID == other.ID && i.Size == other.Size && i.Color == other.Color
}

// MergeLineItem adds item to items: a matching line accumulates quantity,
// anything else is appended.
func MergeLineItem(items []CartLineItem, item CartLineItem) []CartLineItem {
	for idx := range items {
		if items[idx].SameLine(item) {
			items[idx].Quantity += item.Quantity
			return items
		}
	}

	return append(items, item)
}

type CartTotals struct {
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Shipping float64 `json:"shipping"`
	Total    float64 `json:"total"`
}

func ComputeTotals(items []CartLineItem) CartTotals {
	var subtotal float64

	for _, item := range items {
		subtotal += item.Price * float64(item.Quantity)
	}

	tax := subtotal * TaxRate
	shipping := 0.0

	return CartTotals{
		Subtotal: subtotal,
		Tax:      tax,
		Shipping: shipping,
		Total:    subtotal + tax + shipping,
	}
}

// Rounded returns the totals rounded to cents for display.
func (t CartTotals) Rounded() CartTotals {
	return CartTotals{
		Subtotal: roundCents(t.Subtotal),
		Tax:      roundCents(t.Tax),
		Shipping: roundCents(t.Shipping),
		Total:    roundCents(t.Total),
	}
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

type Cart struct {
	Items     []CartLineItem `json:"items"`
	ItemCount int            `json:"item_count"`
	Totals    CartTotals     `json:"totals"`
}

func NewCart(items []CartLineItem) *Cart {
	if items == nil {
		items = []CartLineItem{}
	}

	count := 0
	for _, item := range items {
		count += item.Quantity
	}

	return &Cart{
		Items:     items,
		ItemCount: count,
		Totals:    ComputeTotals(items).Rounded(),
	}
}

type AddItemRequest struct {
	TemplateID ID     `json:"templateId" validate:"required"`
	Quantity   int    `json:"quantity" validate:"required,min=1,max=1000"`
	Size       string `json:"size,omitempty"`
	Color      string `json:"color,omitempty"`
	CustomText string `json:"customText,omitempty" validate:"max=500"`
	Image      string `json:"image,omitempty"`
}

// LineKey addresses an existing cart line.
type LineKey struct {
	ID    ID     `json:"id" validate:"required"`
	Size  string `json:"size"`
	Color string `json:"color"`
}

type UpdateQuantityRequest struct {
	LineKey
	Quantity int `json:"quantity" validate:"required,min=1,max=1000"`
}

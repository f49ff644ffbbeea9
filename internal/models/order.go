package models

// DefaultOrderType is the order type the checkout sends for every order.
const DefaultOrderType = "Wedding Invitation"

// OrderDraft is the flattened order body posted once by the checkout.
type OrderDraft struct {
	Customer   string `json:"customer"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Type       string `json:"type"`
	Amount     string `json:"amount"`
	TemplateID *ID    `json:"templateId"`
	Notes      string `json:"notes"`
}

type Order struct {
	ID         ID     `json:"id" validate:"required"`
	Customer   string `json:"customer"`
	Email      string `json:"email,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Type       string `json:"type,omitempty"`
	Amount     Amount `json:"amount"`
	TemplateID ID     `json:"templateId,omitempty"`
	Status     string `json:"status,omitempty"`
	Notes      string `json:"notes,omitempty"`
	CreatedAt  string `json:"created_at,omitempty"`
}

type OrderStats struct {
	TotalOrders  int    `json:"totalOrders"`
	TotalRevenue Amount `json:"totalRevenue"`
}

type UpdateOrderRequest struct {
	Status *string `json:"status,omitempty" validate:"omitempty,oneof=pending processing completed shipped delivered cancelled"`
	Notes  *string `json:"notes,omitempty" validate:"omitempty,max=2000"`
	Amount *string `json:"amount,omitempty" validate:"omitempty,numeric"`
}

type Invitation struct {
	ID         ID     `json:"id" validate:"required"`
	TemplateID ID     `json:"template_id,omitempty"`
	UserID     ID     `json:"user_id,omitempty"`
	Title      string `json:"title,omitempty"`
	EventDate  string `json:"event_date,omitempty"`
	Status     string `json:"status,omitempty"`
	CreatedAt  string `json:"created_at,omitempty"`
}

type InvitationRequest struct {
	TemplateID ID     `json:"template_id" validate:"required"`
	UserID     ID     `json:"user_id,omitempty"`
	Title      string `json:"title" validate:"required,max=200"`
	EventDate  string `json:"event_date,omitempty"`
	Status     string `json:"status,omitempty" validate:"omitempty,oneof=draft sent cancelled"`
}

type DashboardStats struct {
	TotalTemplates   int          `json:"totalTemplates"`
	TotalInvitations int          `json:"totalInvitations"`
	TotalOrders      int          `json:"totalOrders"`
	TotalRevenue     float64      `json:"totalRevenue"`
	Templates        []Template   `json:"templates"`
	Invitations      []Invitation `json:"invitations"`
	Orders           []Order      `json:"orders"`
}

package models

type Template struct {
	ID            ID       `json:"id" validate:"required"`
	Title         string   `json:"title" validate:"required"`
	Price         Amount   `json:"price" validate:"gte=0"`
	ImageURL      string   `json:"image_url,omitempty"`
	CategoryID    int64    `json:"category_id,omitempty"`
	CategoryName  string   `json:"category_name,omitempty"`
	Description   string   `json:"description,omitempty"`
	Rating        float64  `json:"rating,omitempty"`
	Reviews       int      `json:"reviews,omitempty"`
	Sizes         []string `json:"sizes,omitempty"`
	Colors        []string `json:"colors,omitempty"`
	OriginalPrice Amount   `json:"originalPrice,omitempty"`
	Features      []string `json:"features,omitempty"`
	CreatedBy     int64    `json:"created_by,omitempty"`
}

// TemplateDetail is a template with the display defaults filled in.
type TemplateDetail struct {
	Template
	Slug   string   `json:"slug"`
	Images []string `json:"images"`
}

type TemplateRequest struct {
	Title       string  `json:"title" validate:"required,min=3,max=200"`
	CategoryID  int64   `json:"category_id" validate:"required,min=1,max=6"`
	Price       float64 `json:"price" validate:"gte=0"`
	ImageURL    string  `json:"image_url,omitempty" validate:"omitempty,url"`
	Description string  `json:"description,omitempty" validate:"max=5000"`
	CreatedBy   int64   `json:"created_by,omitempty"`
}

type UpdateTemplateRequest struct {
	Title        *string  `json:"title,omitempty" validate:"omitempty,min=3,max=200"`
	CategoryID   *int64   `json:"category_id,omitempty" validate:"omitempty,min=1,max=6"`
	CategoryName *string  `json:"category,omitempty"`
	Price        *float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
	ImageURL     *string  `json:"image_url,omitempty" validate:"omitempty,url"`
	Description  *string  `json:"description,omitempty" validate:"omitempty,max=5000"`
}

type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name" validate:"required"`
	Description string `json:"description,omitempty"`
}

type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Description string `json:"description,omitempty" validate:"max=1000"`
}

type UploadResponse struct {
	ImageURL string `json:"imageUrl" validate:"required"`
}

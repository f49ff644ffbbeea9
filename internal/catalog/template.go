package catalog

import (
	"slices"

	"github.com/aaravmahajanofficial/invitation-storefront/internal/models"
	"github.com/gosimple/slug"
)

var (
	DefaultSizes  = []string{"5x7 inches", "4x6 inches"}
	DefaultColors = []string{"#37514D", "#8B4513"}
)

const (
	DefaultRating  = 5
	DefaultReviews = 10
)

// Detail fills in the display defaults the template page relies on.
func Detail(t models.Template) models.TemplateDetail {
	detail := models.TemplateDetail{
		Template: t,
		Slug:     slug.Make(t.Title),
		Images:   []string{},
	}

	if t.ImageURL != "" {
		detail.Images = []string{t.ImageURL}
	}

	if len(detail.Sizes) == 0 {
		detail.Sizes = slices.Clone(DefaultSizes)
	}

	if len(detail.Colors) == 0 {
		detail.Colors = slices.Clone(DefaultColors)
	}

	if detail.Rating == 0 {
		detail.Rating = DefaultRating
	}

	if detail.Reviews == 0 {
		detail.Reviews = DefaultReviews
	}

	if detail.OriginalPrice == 0 {
		detail.OriginalPrice = t.Price
	}

	if detail.Features == nil {
		detail.Features = []string{}
	}

	return detail
}

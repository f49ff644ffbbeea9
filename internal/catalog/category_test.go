package catalog_test

import (
	"testing"

	"github.com/aaravmahajanofficial/invitation-storefront/internal/catalog"
	"github.com/aaravmahajanofficial/invitation-storefront/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatches(t *testing.T) {
	tests := []struct {
		name     string
		category catalog.Category
		template models.Template
		want     bool
	}{
		{"wedding by name", catalog.Wedding, models.Template{CategoryName: "Wedding"}, true},
		{"wedding by upper-case name", catalog.Wedding, models.Template{CategoryName: "WEDDING"}, true},
		{"wedding by id", catalog.Wedding, models.Template{CategoryID: 1}, true},
		{"wedding rejects corporate", catalog.Wedding, models.Template{CategoryName: "Corporate", CategoryID: 3}, false},
		{"wedding rejects missing category", catalog.Wedding, models.Template{}, false},
		{"wedding rejects similar name", catalog.Wedding, models.Template{CategoryName: "weddings"}, false},
		{"corporate by name", catalog.Corporate, models.Template{CategoryName: "corporate"}, true},
		{"corporate by id", catalog.Corporate, models.Template{CategoryID: 3}, true},
		{"corporate rejects wedding", catalog.Corporate, models.Template{CategoryID: 1}, false},
		{"baby shower by spaced name", catalog.BabyShower, models.Template{CategoryName: "Baby Shower"}, true},
		{"baby shower by hyphenated name", catalog.BabyShower, models.Template{CategoryName: "baby-shower"}, true},
		{"baby shower by id", catalog.BabyShower, models.Template{CategoryID: 2}, true},
		{"baby shower rejects birthday", catalog.BabyShower, models.Template{CategoryName: "Birthday", CategoryID: 5}, false},
		{"baby shower name wins over id", catalog.BabyShower, models.Template{CategoryName: "Wedding", CategoryID: 2}, false},
		{"baby shower name wins over other id", catalog.BabyShower, models.Template{CategoryName: "Baby Shower", CategoryID: 4}, true},
		{"wedding id still counts under another name", catalog.Wedding, models.Template{CategoryName: "Anniversary", CategoryID: 1}, true},
		{"e-invitation rejects wedding", catalog.EInvitation, models.Template{CategoryName: "Wedding"}, false},
		{"e-invitation rejects corporate", catalog.EInvitation, models.Template{CategoryName: "CORPORATE"}, false},
		{"e-invitation rejects baby shower", catalog.EInvitation, models.Template{CategoryName: "baby shower"}, false},
		{"e-invitation accepts birthday", catalog.EInvitation, models.Template{CategoryName: "Birthday"}, true},
		{"e-invitation accepts missing name", catalog.EInvitation, models.Template{}, true},
		{"e-invitation ignores id", catalog.EInvitation, models.Template{CategoryID: 1}, true},
		{"unknown category matches nothing", catalog.Category("birthday"), models.Template{CategoryName: "birthday"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.category.Matches(tt.template))
		})
	}
}

func TestFilter(t *testing.T) {
	templates := []models.Template{
		{ID: "1", Title: "Rustic Wedding", CategoryName: "Wedding"},
		{ID: "2", Title: "Board Meeting", CategoryID: 3},
		{ID: "3", Title: "Little One", CategoryName: "Baby Shower"},
		{ID: "4", Title: "Birthday Bash", CategoryName: "Birthday"},
		{ID: "5", Title: "Vows", CategoryID: 1},
	}

	t.Run("Success - Wedding keeps order", func(t *testing.T) {
		got := catalog.Filter(catalog.Wedding, templates)

		require.Len(t, got, 2)
		assert.Equal(t, models.ID("1"), got[0].ID)
		assert.Equal(t, models.ID("5"), got[1].ID)
	})

	t.Run("Success - E-invitation excludes named categories only", func(t *testing.T) {
		got := catalog.Filter(catalog.EInvitation, templates)

		require.Len(t, got, 3)
		assert.Equal(t, models.ID("2"), got[0].ID)
		assert.Equal(t, models.ID("4"), got[1].ID)
		assert.Equal(t, models.ID("5"), got[2].ID)
	})

	t.Run("Success - Empty input", func(t *testing.T) {
		got := catalog.Filter(catalog.Corporate, nil)

		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}

func TestParseCategory(t *testing.T) {
	t.Run("Success - Aliases", func(t *testing.T) {
		for input, want := range map[string]catalog.Category{
			"wedding":      catalog.Wedding,
			"Corporate":    catalog.Corporate,
			"babyshower":   catalog.BabyShower,
			"baby-shower":  catalog.BabyShower,
			" e-invitation": catalog.EInvitation,
		} {
			got, err := catalog.ParseCategory(input)
			require.NoError(t, err, input)
			assert.Equal(t, want, got)
		}
	})

	t.Run("Failure - Unknown", func(t *testing.T) {
		_, err := catalog.ParseCategory("anniversary")
		assert.Error(t, err)
	})
}

func TestCategoryLabels(t *testing.T) {
	assert.Equal(t, "Baby Shower", catalog.CategoryLabel(2))
	assert.Equal(t, "Anniversary", catalog.CategoryLabel(6))
	assert.Empty(t, catalog.CategoryLabel(7))
	assert.Equal(t, int64(3), catalog.CategoryIDByName("corporate"))
	assert.Equal(t, int64(1), catalog.CategoryIDByName("Graduation"))
}

func TestDetail(t *testing.T) {
	t.Run("Success - Defaults applied", func(t *testing.T) {
		detail := catalog.Detail(models.Template{
			ID:       "7",
			Title:    "Golden Vows Classic",
			Price:    149,
			ImageURL: "https://cdn.example.com/vows.jpg",
		})

		assert.Equal(t, "golden-vows-classic", detail.Slug)
		assert.Equal(t, []string{"https://cdn.example.com/vows.jpg"}, detail.Images)
		assert.Equal(t, []string{"5x7 inches", "4x6 inches"}, detail.Sizes)
		assert.Equal(t, []string{"#37514D", "#8B4513"}, detail.Colors)
		assert.Equal(t, float64(5), detail.Rating)
		assert.Equal(t, 10, detail.Reviews)
		assert.Equal(t, models.Amount(149), detail.OriginalPrice)
	})

	t.Run("Success - Remote values kept", func(t *testing.T) {
		detail := catalog.Detail(models.Template{
			ID:            "8",
			Title:         "Minimal",
			Price:         99,
			Sizes:         []string{"A5"},
			Colors:        []string{"#000000"},
			Rating:        4.2,
			Reviews:       3,
			OriginalPrice: 129,
		})

		assert.Equal(t, []string{"A5"}, detail.Sizes)
		assert.Equal(t, []string{"#000000"}, detail.Colors)
		assert.Equal(t, 4.2, detail.Rating)
		assert.Equal(t, 3, detail.Reviews)
		assert.Equal(t, models.Amount(129), detail.OriginalPrice)
		assert.Empty(t, detail.Images)
	})
}

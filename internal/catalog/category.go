package catalog

import (
	"fmt"
	"slices"
	"strings"

	"github.com/aaravmahajanofficial/invitation-storefront/internal/models"
)

// Category is a storefront listing page.
type Category string

const (
	Wedding     Category = "wedding"
	Corporate   Category = "corporate"
	BabyShower  Category = "baby-shower"
	EInvitation Category = "e-invitation"
)

// membership decides which templates a category page lists. Inclusive
// pages accept a lower-cased name or a category id; an exclusive page
// accepts every template whose name is not one of names. With unnamedOnly
// the id is consulted only for templates that carry no category name.
type membership struct {
	names       []string
	ids         []int64
	exclude     bool
	unnamedOnly bool
}

var memberships = map[Category]membership{
	Wedding:     {names: []string{"wedding"}, ids: []int64{1}},
	Corporate:   {names: []string{"corporate"}, ids: []int64{3}},
	BabyShower:  {names: []string{"baby shower", "baby-shower"}, ids: []int64{2}, unnamedOnly: true},
	EInvitation: {names: []string{"wedding", "corporate", "baby shower"}, exclude: true},
}

var aliases = map[string]Category{
	"wedding":      Wedding,
	"corporate":    Corporate,
	"baby-shower":  BabyShower,
	"babyshower":   BabyShower,
	"baby_shower":  BabyShower,
	"e-invitation": EInvitation,
	"einvitation":  EInvitation,
}

func Categories() []Category {
	return []Category{Wedding, Corporate, BabyShower, EInvitation}
}

func ParseCategory(s string) (Category, error) {
	if c, ok := aliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return c, nil
	}

	return "", fmt.Errorf("unknown category %q", s)
}

// Matches reports whether t belongs on the category's page.
func (c Category) Matches(t models.Template) bool {
	m, ok := memberships[c]
	if !ok {
		return false
	}

	name := strings.ToLower(t.CategoryName)

	if m.exclude {
		return !slices.Contains(m.names, name)
	}

	if slices.Contains(m.names, name) {
		return true
	}

	if m.unnamedOnly && name != "" {
		return false
	}

	return slices.Contains(m.ids, t.CategoryID)
}

// Filter keeps the templates that belong to c, in their original order.
func Filter(c Category, templates []models.Template) []models.Template {
	filtered := make([]models.Template, 0, len(templates))

	for _, t := range templates {
		if c.Matches(t) {
			filtered = append(filtered, t)
		}
	}

	return filtered
}

// admin category ids as used by the template editor
var categoryLabels = []string{"", "Wedding", "Baby Shower", "Corporate", "E-Invitation", "Birthday", "Anniversary"}

// CategoryLabel returns the display name of an admin category id.
func CategoryLabel(id int64) string {
	if id < 1 || id >= int64(len(categoryLabels)) {
		return ""
	}

	return categoryLabels[id]
}

// CategoryIDByName maps a display name back to its id, defaulting to
// Wedding for unknown names.
func CategoryIDByName(name string) int64 {
	for id, label := range categoryLabels {
		if id > 0 && strings.EqualFold(label, strings.TrimSpace(name)) {
			return int64(id)
		}
	}

	return 1
}

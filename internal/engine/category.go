package engine

import "strings"

// CategoryPalette is cycled by registry size when assigning colors.
var CategoryPalette = []string{
	"#3b82f6", // blue
	"#22c55e", // green
	"#f59e0b", // amber
	"#ef4444", // red
	"#8b5cf6", // violet
	"#14b8a6", // teal
	"#ec4899", // pink
	"#0ea5e9", // sky
}

// FallbackCategoryColor is shown for tasks whose category is not registered.
const FallbackCategoryColor = "#64748b"

// PickColor returns the palette color for the n-th category.
func PickColor(n int) string {
	if n < 0 {
		n = 0
	}
	return CategoryPalette[n%len(CategoryPalette)]
}

// FindCategory looks a category up by key, ignoring case.
func FindCategory(categories []Category, key string) (Category, bool) {
	key = strings.TrimSpace(key)
	for _, c := range categories {
		if strings.EqualFold(c.Key, key) {
			return c, true
		}
	}
	return Category{}, false
}

// ColorOfCategory returns the category's color, or FallbackCategoryColor when it dangles.
func ColorOfCategory(key string, categories []Category) string {
	if c, ok := FindCategory(categories, key); ok && c.Color != "" {
		return c.Color
	}
	return FallbackCategoryColor
}

// AddCategory appends a new category named name to existing. The input slice
// is never modified; on error the registry is unchanged.
func AddCategory(existing []Category, name string) ([]Category, Category, error) {
	key := strings.TrimSpace(name)
	if key == "" {
		return existing, Category{}, ErrCategoryNameRequired
	}
	if _, ok := FindCategory(existing, key); ok {
		return existing, Category{}, ErrDuplicateCategory
	}
	c := Category{Key: key, Color: PickColor(len(existing))}
	out := make([]Category, 0, len(existing)+1)
	out = append(out, existing...)
	out = append(out, c)
	return out, c, nil
}

// CountByCategory counts tasks referencing key, ignoring case.
func CountByCategory(tasks []Task, key string) int {
	n := 0
	for _, t := range tasks {
		if strings.EqualFold(t.Category, key) {
			n++
		}
	}
	return n
}

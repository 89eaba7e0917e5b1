package catalog

import "strings"

// Product mirrors the product payload of the remote catalog API.
type Product struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Price       float64   `json:"price"`
	Description string    `json:"description"`
	Category    *Category `json:"category,omitempty"`
	Images      []string  `json:"images"`
}

// Category is the optional category reference carried by a product.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Patch holds the editable fields sent on update.
type Patch struct {
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
}

// Validate rejects negative and non-finite prices.
func (pt Patch) Validate() error {
	if pt.Price < 0 || !IsFinite(pt.Price) {
		return &ValidationError{Fields: []string{"price"}}
	}
	return nil
}

// Apply copies the patch fields onto p.
func (pt Patch) Apply(p *Product) {
	p.Title = pt.Title
	p.Price = pt.Price
	p.Description = pt.Description
}

// Clone returns a deep copy of p.
func (p Product) Clone() Product {
	dup := p
	if p.Category != nil {
		cat := *p.Category
		dup.Category = &cat
	}
	if p.Images != nil {
		dup.Images = append([]string(nil), p.Images...)
	}
	return dup
}

// CategoryName returns the category label, or "N/A" when the product has none.
func (p Product) CategoryName() string {
	if p.Category == nil || strings.TrimSpace(p.Category.Name) == "" {
		return "N/A"
	}
	return p.Category.Name
}

// FirstImage returns the first image URL with stray brackets and quotes removed.
// The remote API occasionally serializes image lists as JSON inside a string.
func (p Product) FirstImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return CleanImageURL(p.Images[0])
}

// CleanImageURL strips the characters []"' and surrounding whitespace.
func CleanImageURL(raw string) string {
	return strings.TrimSpace(strings.Map(func(r rune) rune {
		switch r {
		case '[', ']', '"', '\'':
			return -1
		}
		return r
	}, raw))
}

// CloneAll deep-copies a product slice, keeping nil as nil.
func CloneAll(products []Product) []Product {
	if products == nil {
		return nil
	}
	dup := make([]Product, len(products))
	for i, p := range products {
		dup[i] = p.Clone()
	}
	return dup
}

// NextID returns max(existing ids)+1, or 1 for an empty collection.
func NextID(products []Product) int64 {
	var highest int64
	for _, p := range products {
		if p.ID > highest {
			highest = p.ID
		}
	}
	return highest + 1
}

// IndexOf returns the position of the product with id, or -1.
func IndexOf(products []Product, id int64) int {
	for i, p := range products {
		if p.ID == id {
			return i
		}
	}
	return -1
}

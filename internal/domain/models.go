package domain

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

type Category struct {
	ID        string `db:"id"`
	Name      string `db:"name"`
	CreatedAt string `db:"created_at"`
	UpdatedAt string `db:"updated_at"`
}

type Product struct {
	ID            string          `db:"id"`
	CategoryID    string          `db:"category_id"`
	Name          string          `db:"name"`
	Brand         string          `db:"brand"`
	Description   string          `db:"description"`
	Price         decimal.Decimal `db:"price"` // reference currency (EUR)
	Stock         int             `db:"stock"`
	ImagesJSON    string          `db:"images_json"`
	VariantsJSON  string          `db:"variants_json"`
	ShippingSaver bool            `db:"shipping_saver"` // one unit in the cart waives shipping
	BeautyPoints  int             `db:"beauty_points"`  // loyalty points per unit
	Active        bool            `db:"active"`
	CreatedAt     string          `db:"created_at"`
	UpdatedAt     string          `db:"updated_at"`
}

// VariantOption is one selectable value of a variant dimension,
// e.g. Shade = "Rouge" with its swatch and image.
type VariantOption struct {
	Value  string `json:"value"`
	Swatch string `json:"swatch,omitempty"`
	Image  string `json:"image,omitempty"`
}

// VariantDimensions decodes the variants_json column into
// dimension name -> selectable options. Products without variants
// return an empty map.
func (p Product) VariantDimensions() (map[string][]VariantOption, error) {
	if p.VariantsJSON == "" || p.VariantsJSON == "null" {
		return map[string][]VariantOption{}, nil
	}
	dims := map[string][]VariantOption{}
	if err := json.Unmarshal([]byte(p.VariantsJSON), &dims); err != nil {
		return nil, err
	}
	return dims, nil
}

type BlogPost struct {
	ID        string `db:"id"`
	Title     string `db:"title"`
	Author    string `db:"author"`
	Excerpt   string `db:"excerpt"`
	Body      string `db:"body"`
	Image     string `db:"image"`
	CreatedAt string `db:"created_at"`
}

type Availability struct {
	Status string `json:"status"` // IN_STOCK | LOW_STOCK | OUT_OF_STOCK
	Qty    int    `json:"qty,omitempty"`
}

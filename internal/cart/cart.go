package cart

import (
	"fmt"
	"sort"
	"strings"

	"essenza/internal/domain"
)

// SelectedVariant maps a variant dimension to the chosen value,
// e.g. {"Shade": "Rouge"}. Nil means no variant, which is only valid
// for products that define no dimensions.
type SelectedVariant map[string]string

// LineItem is one cart row: a product plus the variant selection
// snapshot captured at add time.
type LineItem struct {
	ID      string
	Product *domain.Product
	Variant SelectedVariant
	Qty     int
}

// Cart is an ordered list of line items; insertion order is the display
// order. The zero value is an empty cart.
type Cart struct {
	Items []LineItem
}

// Key builds the line-item identity from the product id and the
// canonical serialization of the variant selection. Two adds with the
// same product and selection always produce the same key.
func Key(productID string, v SelectedVariant) string {
	if len(v) == 0 {
		return productID
	}
	dims := make([]string, 0, len(v))
	for d := range v {
		dims = append(dims, d)
	}
	sort.Strings(dims)
	var b strings.Builder
	b.WriteString(productID)
	for _, d := range dims {
		b.WriteString("|")
		b.WriteString(d)
		b.WriteString("=")
		b.WriteString(v[d])
	}
	return b.String()
}

// Add returns a new cart with qty units of the product/variant merged
// in. Lines sharing the identity key are merged, never duplicated.
func Add(c Cart, p *domain.Product, v SelectedVariant, qty int) (Cart, error) {
	if p == nil {
		return Cart{}, fmt.Errorf("add to cart: nil product")
	}
	if qty < 1 {
		qty = 1
	}
	if err := validateVariant(p, v); err != nil {
		return Cart{}, err
	}

	key := Key(p.ID, v)
	out := Cart{Items: make([]LineItem, len(c.Items))}
	copy(out.Items, c.Items)

	for i := range out.Items {
		if out.Items[i].ID == key {
			out.Items[i].Qty += qty
			return out, nil
		}
	}

	snapshot := make(SelectedVariant, len(v))
	for d, val := range v {
		snapshot[d] = val
	}
	out.Items = append(out.Items, LineItem{ID: key, Product: p, Variant: snapshot, Qty: qty})
	return out, nil
}

// UpdateQuantity returns a new cart with the line's quantity replaced.
// A quantity below 1 removes the line; this is policy, not an error.
func UpdateQuantity(c Cart, lineID string, qty int) Cart {
	if qty < 1 {
		return Remove(c, lineID)
	}
	out := Cart{Items: make([]LineItem, len(c.Items))}
	copy(out.Items, c.Items)
	for i := range out.Items {
		if out.Items[i].ID == lineID {
			out.Items[i].Qty = qty
			break
		}
	}
	return out
}

// Remove returns a new cart without the given line. Unknown ids are a
// no-op so a double-fired UI action stays safe.
func Remove(c Cart, lineID string) Cart {
	out := Cart{Items: make([]LineItem, 0, len(c.Items))}
	for _, it := range c.Items {
		if it.ID != lineID {
			out.Items = append(out.Items, it)
		}
	}
	return out
}

// validateVariant requires exactly one value per dimension the product
// defines; partial or unknown selections never reach the cart.
func validateVariant(p *domain.Product, v SelectedVariant) error {
	dims, err := p.VariantDimensions()
	if err != nil {
		return fmt.Errorf("product %s: bad variant data: %w", p.ID, err)
	}
	if len(dims) == 0 {
		if len(v) != 0 {
			return fmt.Errorf("product %s has no variants", p.ID)
		}
		return nil
	}
	if len(v) != len(dims) {
		return fmt.Errorf("product %s: variant selection incomplete", p.ID)
	}
	for dim, opts := range dims {
		chosen, ok := v[dim]
		if !ok {
			return fmt.Errorf("product %s: missing selection for %s", p.ID, dim)
		}
		found := false
		for _, o := range opts {
			if o.Value == chosen {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("product %s: %q is not a %s option", p.ID, chosen, dim)
		}
	}
	return nil
}

package services

import (
	"fmt"

	"essenza/internal/cart"
	"essenza/internal/pricing"
	"essenza/internal/repos"
)

type CartService struct {
	Store *repos.CartStore
	Prods *repos.ProductRepo
	Rules pricing.Ruleset
}

func NewCartService(store *repos.CartStore, prods *repos.ProductRepo, rules pricing.Ruleset) *CartService {
	return &CartService{Store: store, Prods: prods, Rules: rules}
}

// CartView is what every surface renders: the lines plus the one
// breakdown they must all agree on.
type CartView struct {
	Items     []cart.LineItem
	Breakdown pricing.Breakdown
}

func (s *CartService) Add(sessionID, productID string, variant cart.SelectedVariant, qty int) error {
	p, err := s.Prods.Get(productID)
	if err != nil {
		return fmt.Errorf("product %s: %w", productID, err)
	}
	if !p.Active {
		return fmt.Errorf("product %s is not available", productID)
	}
	next, err := cart.Add(s.Store.Get(sessionID), &p, variant, qty)
	if err != nil {
		return err
	}
	s.Store.Put(sessionID, next)
	return nil
}

func (s *CartService) UpdateQuantity(sessionID, lineID string, qty int) {
	s.Store.Put(sessionID, cart.UpdateQuantity(s.Store.Get(sessionID), lineID, qty))
}

func (s *CartService) Remove(sessionID, lineID string) {
	s.Store.Put(sessionID, cart.Remove(s.Store.Get(sessionID), lineID))
}

// View prices the session's cart. An empty coupon means no coupon.
func (s *CartService) View(sessionID, coupon string) (CartView, error) {
	c := s.Store.Get(sessionID)
	bd, err := pricing.ComputeBreakdownWithCoupon(c, s.Rules, coupon)
	if err != nil {
		return CartView{}, err
	}
	return CartView{Items: c.Items, Breakdown: bd}, nil
}

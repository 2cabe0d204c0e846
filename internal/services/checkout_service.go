package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"essenza/internal/currency"
	"essenza/internal/payment"
	"essenza/internal/pricing"
	"essenza/internal/repos"
)

var ErrEmptyCart = errors.New("cart is empty")

type Contact struct {
	Name  string
	Email string
}

type CheckoutService struct {
	Carts    *CartService
	Orders   *repos.OrderStore
	Pay      payment.Tokenizer
	Currency currency.Code
}

func NewCheckoutService(carts *CartService, orders *repos.OrderStore, pay payment.Tokenizer, cur currency.Code) *CheckoutService {
	return &CheckoutService{Carts: carts, Orders: orders, Pay: pay, Currency: cur}
}

// Place runs the checkout: price the cart through the engine, tokenize
// the total with the payment provider, record the order, clear the
// cart. A tokenization failure returns before anything is mutated, so
// the user can retry with the cart intact.
func (s *CheckoutService) Place(ctx context.Context, sessionID string, contact Contact, coupon string) (string, error) {
	c := s.Carts.Store.Get(sessionID)
	if len(c.Items) == 0 {
		return "", ErrEmptyCart
	}

	bd, err := pricing.ComputeBreakdownWithCoupon(c, s.Carts.Rules, coupon)
	if err != nil {
		return "", err
	}

	token, err := s.Pay.Tokenize(ctx, bd.Total, s.Currency)
	if err != nil {
		return "", err
	}

	orderID := uuid.NewString()
	s.Orders.Put(repos.Order{
		ID:           orderID,
		SessionID:    sessionID,
		Customer:     contact.Name,
		Email:        contact.Email,
		Items:        c.Items,
		Breakdown:    bd,
		PaymentToken: token,
		CreatedAt:    time.Now().UTC(),
	})
	s.Carts.Store.Clear(sessionID)
	return orderID, nil
}

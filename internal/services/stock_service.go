package services

import (
	"database/sql"

	"essenza/internal/domain"
	"essenza/internal/repos"
)

type StockService struct {
	Prods *repos.ProductRepo
}

func NewStockService(prods *repos.ProductRepo) *StockService {
	return &StockService{Prods: prods}
}

// CheckAvailability converts the catalog stock count into
// IN_STOCK / LOW_STOCK / OUT_OF_STOCK for the product page badge.
// Display only; nothing here ever decrements stock.
func (s *StockService) CheckAvailability(productID string) (domain.Availability, error) {
	qty, err := s.Prods.Stock(productID)
	if err != nil {
		// Unknown product reads as out of stock.
		if err == sql.ErrNoRows {
			return domain.Availability{Status: "OUT_OF_STOCK", Qty: 0}, nil
		}
		return domain.Availability{}, err
	}

	status := "OUT_OF_STOCK"
	switch {
	case qty >= 5:
		status = "IN_STOCK"
	case qty > 0:
		status = "LOW_STOCK"
	}
	return domain.Availability{Status: status, Qty: qty}, nil
}

package handlers

import (
	"essenza/internal/config"
	"essenza/internal/payment"
	"essenza/internal/repos"
	"essenza/internal/services"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	CategoryHandler *CategoryHandler
	ProductHandler  *ProductHandler
	SearchHandler   *SearchHandler
	StockHandler    *StockHandler
	CartHandler     *CartHandler
	CheckoutHandler *CheckoutHandler
	BlogHandler     *BlogHandler
	PagesHandler    *PagesHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config, pay payment.Tokenizer) *Deps {
	catRepo := repos.NewCategoryRepo(db)
	prodRepo := repos.NewProductRepo(db)
	blogRepo := repos.NewBlogRepo(db)
	cartStore := repos.NewCartStore()
	orderStore := repos.NewOrderStore()

	catalogSvc := services.NewCatalogService(catRepo, prodRepo, blogRepo)
	stockSvc := services.NewStockService(prodRepo)
	cartSvc := services.NewCartService(cartStore, prodRepo, cfg.Rules)
	checkoutSvc := services.NewCheckoutService(cartSvc, orderStore, pay, cfg.Currency)

	return &Deps{
		CategoryHandler: &CategoryHandler{Catalog: catalogSvc},
		ProductHandler:  &ProductHandler{Catalog: catalogSvc, Stock: stockSvc, Cur: cfg.Currency},
		SearchHandler:   &SearchHandler{Catalog: catalogSvc},
		StockHandler:    &StockHandler{Stock: stockSvc},
		CartHandler:     &CartHandler{Cart: cartSvc, Cur: cfg.Currency},
		CheckoutHandler: &CheckoutHandler{Cart: cartSvc, Checkout: checkoutSvc, Orders: orderStore, Cur: cfg.Currency},
		BlogHandler:     &BlogHandler{Catalog: catalogSvc},
		PagesHandler:    &PagesHandler{Rules: cfg.Rules, Cur: cfg.Currency, CatalogPDFURL: cfg.CatalogPDFURL},
	}
}

package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"essenza/internal/currency"
	"essenza/internal/pricing"
)

type Config struct {
	Port          string
	DBDSN         string
	LogFile       string
	Currency      currency.Code
	CatalogPDFURL string
	PaymentDelay  time.Duration
	Rules         pricing.Ruleset
}

func Load() Config {
	godotenv.Load()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = "essenza.db" // sqlite file in project root
	}
	logFile := os.Getenv("LOG_FILE")
	if logFile == "" {
		logFile = "./essenza.log"
	}
	cur := currency.Code(os.Getenv("CURRENCY"))
	if cur == "" {
		cur = currency.EUR
	}
	if !currency.Valid(cur) {
		log.Fatalf("[config] unsupported CURRENCY=%s", cur)
	}
	pdfURL := os.Getenv("CATALOG_PDF_URL")
	if pdfURL == "" {
		pdfURL = "https://online.fliphtml5.com/essenza/catalog/"
	}

	cfg := Config{
		Port:          port,
		DBDSN:         dsn,
		LogFile:       logFile,
		Currency:      cur,
		CatalogPDFURL: pdfURL,
		PaymentDelay:  getDuration("PAYMENT_DELAY", 2*time.Second),
		Rules: pricing.Ruleset{
			FreeShippingThreshold: getDecimal("FREE_SHIPPING_THRESHOLD", "35"),
			DiscountThreshold:     getDecimal("DISCOUNT_THRESHOLD", "35"),
			DiscountPct:           getDecimal("DISCOUNT_PCT", "0.15"),
			FlatShippingCost:      getDecimal("FLAT_SHIPPING_COST", "6.00"),
			GiftThreshold:         getDecimal("GIFT_THRESHOLD", "35"),
			CouponCode:            getEnv("COUPON_CODE", "ESSENZA10"),
			CouponPct:             getDecimal("COUPON_PCT", "0.10"),
		},
	}
	log.Printf("[config] PORT=%s DB_DSN=%s CURRENCY=%s LOG_FILE=%s", cfg.Port, cfg.DBDSN, cfg.Currency, cfg.LogFile)
	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getDecimal(key, def string) decimal.Decimal {
	raw := getEnv(key, def)
	d, err := decimal.NewFromString(raw)
	if err != nil {
		log.Fatalf("[config] %s=%q is not a decimal", key, raw)
	}
	return d
}

func getDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		log.Printf("[config] invalid duration for %s, using default", key)
	}
	return def
}

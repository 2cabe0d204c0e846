package repos

import (
	"log"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	// Seed the demo catalog/blog if the DB is empty (idempotent).
	if err := seedIfEmpty(db); err != nil {
		return nil, err
	}

	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Categories
CREATE TABLE IF NOT EXISTS categories(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_categories_name_nocase ON categories(LOWER(name));

-- Products (read-only reference data; the cart never writes here)
CREATE TABLE IF NOT EXISTS products(
  id TEXT PRIMARY KEY,
  category_id TEXT NOT NULL REFERENCES categories(id) ON DELETE RESTRICT,
  name TEXT NOT NULL,
  brand TEXT NOT NULL,
  description TEXT,
  price NUMERIC NOT NULL CHECK (price >= 0),
  stock INTEGER NOT NULL DEFAULT 0 CHECK (stock >= 0),
  images_json TEXT,
  variants_json TEXT,
  shipping_saver INTEGER NOT NULL DEFAULT 0,
  beauty_points INTEGER NOT NULL DEFAULT 0,
  active INTEGER NOT NULL DEFAULT 1,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_products_category   ON products(category_id);
CREATE INDEX IF NOT EXISTS idx_products_name       ON products(LOWER(name));
CREATE INDEX IF NOT EXISTS idx_products_brand      ON products(LOWER(brand));
CREATE INDEX IF NOT EXISTS idx_products_created_at ON products(created_at);

-- Blog posts
CREATE TABLE IF NOT EXISTS blog_posts(
  id TEXT PRIMARY KEY,
  title TEXT NOT NULL,
  author TEXT NOT NULL,
  excerpt TEXT,
  body TEXT,
  image TEXT,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_blog_created_at ON blog_posts(created_at);
`
	_, err := db.Exec(schema)
	return err
}

func seedIfEmpty(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM categories`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting demo categories/products/blog posts")

	tx := db.MustBegin()
	tx.MustExec(`INSERT INTO categories(id,name) VALUES
	  ('perfume','Perfume'),
	  ('makeup','Makeup'),
	  ('skincare','Skincare'),
	  ('haircare','Haircare')`)

	tx.MustExec(`INSERT INTO products(id,category_id,name,brand,description,price,stock,images_json,variants_json,shipping_saver,beauty_points) VALUES
	  ('edp-noir-50','perfume','Nuit Noire Eau de Parfum 50ml','Maison Lys',
	   'Amber and black vanilla, our signature evening scent.',62.50,24,
	   '["products/edp-noir-50/main.jpg"]',NULL,1,12),
	  ('edt-fleur-30','perfume','Fleur Blanche Eau de Toilette 30ml','Maison Lys',
	   'White florals with a citrus opening.',29.90,40,
	   '["products/edt-fleur-30/main.jpg"]',NULL,0,6),
	  ('lip-velvet','makeup','Velvet Matte Lipstick','Essenza Beauty',
	   'Long-wear matte finish, enriched with shea butter.',14.95,120,
	   '["products/lip-velvet/main.jpg"]',
	   '{"Shade":[{"value":"Rouge","swatch":"#b3122e","image":"products/lip-velvet/rouge.jpg"},{"value":"Nude","swatch":"#c98d6b","image":"products/lip-velvet/nude.jpg"},{"value":"Cerise","swatch":"#8e0f3a","image":"products/lip-velvet/cerise.jpg"}]}',
	   0,3),
	  ('serum-rose-30','skincare','Rose Renewal Serum 30ml','Botanica',
	   'Rosehip oil and hyaluronic acid for overnight repair.',21.00,55,
	   '["products/serum-rose-30/main.jpg"]',NULL,0,5),
	  ('mask-argan','haircare','Argan Repair Hair Mask','Botanica',
	   'Deep conditioning treatment with cold-pressed argan oil.',11.40,80,
	   '["products/mask-argan/main.jpg"]',
	   '{"Size":[{"value":"200ml"},{"value":"500ml"}]}',
	   0,2),
	  ('gift-candle','perfume','Fig & Sandalwood Candle','Maison Lys',
	   'Hand-poured soy candle, 40h burn time.',18.75,3,
	   '["products/gift-candle/main.jpg"]',NULL,0,4)`)

	tx.MustExec(`INSERT INTO blog_posts(id,title,author,excerpt,body,image) VALUES
	  ('layering-guide','The Art of Fragrance Layering','Claire Dumont',
	   'Build a scent that is entirely yours.',
	   'Start with the heaviest base and work upward: body cream, then eau de parfum, then a mist...',
	   'blog/layering.jpg'),
	  ('winter-skin','Five Winter Skincare Mistakes','Ana Ruiz',
	   'Cold air asks more of your routine.',
	   'Hot showers strip the lipid barrier faster than any cleanser. Keep water lukewarm and...',
	   'blog/winter.jpg'),
	  ('matte-myths','Matte Lipstick Without the Dryness','Claire Dumont',
	   'A matte finish does not have to feel like one.',
	   'Exfoliate first. A damp washcloth is enough; sugar scrubs tear at the thin lip skin...',
	   'blog/matte.jpg')`)

	return tx.Commit()
}

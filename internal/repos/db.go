package repos

import (
	"log"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
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
	// Seed baseline catalog if DB is empty (idempotent; safe to run every start)
	if err := seedCatalog(db); err != nil {
		return nil, err
	}
	if err := seedUsers(db); err != nil {
		return nil, err
	}

	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Catalog
CREATE TABLE IF NOT EXISTS products(
  id INTEGER PRIMARY KEY,
  name TEXT NOT NULL,
  description TEXT,
  price NUMERIC NOT NULL CHECK (price >= 0),
  category TEXT NOT NULL,
  image TEXT,
  stock INTEGER NOT NULL DEFAULT 0,
  carbon_footprint NUMERIC NOT NULL DEFAULT 0 CHECK (carbon_footprint >= 0),
  waste_saved NUMERIC NOT NULL DEFAULT 0 CHECK (waste_saved >= 0),
  water_saved NUMERIC NOT NULL DEFAULT 0 CHECK (water_saved >= 0),
  sustainability_json TEXT,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_products_name     ON products(LOWER(name));
CREATE INDEX IF NOT EXISTS idx_products_category ON products(category);

-- Carts (one per browser session)
CREATE TABLE IF NOT EXISTS carts(
  id TEXT PRIMARY KEY,
  session_id TEXT UNIQUE NOT NULL,
  updated_at TEXT
);

CREATE TABLE IF NOT EXISTS cart_items(
  cart_id TEXT NOT NULL REFERENCES carts(id) ON DELETE CASCADE,
  product_id INTEGER NOT NULL,
  name TEXT NOT NULL,
  price NUMERIC NOT NULL,
  image TEXT,
  qty INTEGER NOT NULL CHECK (qty >= 1),
  carbon_footprint NUMERIC NOT NULL DEFAULT 0,
  waste_saved NUMERIC NOT NULL DEFAULT 0,
  water_saved NUMERIC NOT NULL DEFAULT 0,
  has_impact INTEGER NOT NULL DEFAULT 0,
  created_at TEXT,
  updated_at TEXT,
  PRIMARY KEY (cart_id, product_id)
);

-- Orders
CREATE TABLE IF NOT EXISTS orders(
  id INTEGER PRIMARY KEY,
  session_id TEXT,
  date TEXT NOT NULL,
  customer_name TEXT,
  customer_email TEXT,
  customer_phone TEXT,
  customer_address TEXT,
  subtotal NUMERIC NOT NULL,
  status TEXT NOT NULL DEFAULT 'pending'
    CHECK (status IN ('pending','processing','shipped','delivered','cancelled','returned')),
  impact_carbon TEXT,
  impact_waste TEXT,
  impact_water TEXT,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_orders_date  ON orders(date);
CREATE INDEX IF NOT EXISTS idx_orders_email ON orders(customer_email);

CREATE TABLE IF NOT EXISTS order_items(
  order_id INTEGER NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
  product_id INTEGER NOT NULL,
  name TEXT NOT NULL,
  price NUMERIC NOT NULL,
  qty INTEGER NOT NULL,
  PRIMARY KEY (order_id, product_id)
);

-- Users & Sessions
CREATE TABLE IF NOT EXISTS users(
  id INTEGER PRIMARY KEY,
  name TEXT NOT NULL,
  email TEXT NOT NULL UNIQUE,
  phone TEXT,
  password_hash TEXT NOT NULL,
  role TEXT NOT NULL CHECK (role IN ('admin','user')),
  eco_points INTEGER NOT NULL DEFAULT 0 CHECK (eco_points >= 0),
  address TEXT,
  city TEXT,
  postal_code TEXT,
  preferences_json TEXT,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(LOWER(email));

CREATE TABLE IF NOT EXISTS sessions(
  id TEXT PRIMARY KEY,               -- same value as the 'sid' cookie
  user_id INTEGER NULL REFERENCES users(id) ON DELETE SET NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  last_seen  TEXT
);
CREATE INDEX IF NOT EXISTS idx_sessions_user ON sessions(user_id);

-- Community posts & comments
CREATE TABLE IF NOT EXISTS posts(
  id TEXT PRIMARY KEY,
  title TEXT,
  author TEXT,
  body TEXT,
  status TEXT NOT NULL DEFAULT 'pending' CHECK (status IN ('pending','approved')),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);

CREATE TABLE IF NOT EXISTS comments(
  id TEXT PRIMARY KEY,
  post_id TEXT NOT NULL REFERENCES posts(id) ON DELETE CASCADE,
  author TEXT,
  body TEXT,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_comments_post ON comments(post_id);

-- Support tickets
CREATE TABLE IF NOT EXISTS tickets(
  id TEXT PRIMARY KEY,
  user_name TEXT,
  subject TEXT,
  message TEXT,
  status TEXT NOT NULL DEFAULT 'open' CHECK (status IN ('open','in_progress','closed')),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);

CREATE TABLE IF NOT EXISTS ticket_responses(
  ticket_id TEXT NOT NULL REFERENCES tickets(id) ON DELETE CASCADE,
  responder TEXT,
  message TEXT,
  at TEXT
);
CREATE INDEX IF NOT EXISTS idx_ticket_responses ON ticket_responses(ticket_id);
`
	_, err := db.Exec(schema)
	return err
}

func seedCatalog(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM products`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting demo catalog")

	tx := db.MustBegin()
	tx.MustExec(`INSERT INTO products
	  (id,name,description,price,category,image,stock,carbon_footprint,waste_saved,water_saved,sustainability_json) VALUES
	  (1,'Bee''s Wrap','Reusable Beeswax Wraps',150,'Kitchen','img/bwrap.jpg',40,0.5,2.5,50,
	   '["100% reusable and washable","Made from organic cotton and beeswax","Replaces single-use plastic wrap","Biodegradable when composted","Lasts up to 1 year with proper care"]'),
	  (2,'Bamboo Toothbrush','Eco-Friendly Bamboo Toothbrush',45,'Personal Care','img/bamb.jpg',120,0.2,0.15,10,
	   '["Biodegradable bamboo handle","BPA-free bristles","Sustainable bamboo sourcing","Reduces plastic waste","Compostable packaging"]'),
	  (3,'Stainless Steel Water Bottle','Reusable Stainless Steel Water Bottle',299,'Eco-Friendly','img/ssbottle.jpg',15,1.2,5.0,200,
	   '["Durable stainless steel construction","Replaces hundreds of plastic bottles","BPA-free and safe","Keeps drinks cold/hot for hours","Lifetime warranty"]'),
	  (4,'Organic Cotton Baby Clothes','Comfortable baby clothes made from 100% organic cotton',89,'Kids','img/ogbaby.jpg',8,0.8,3.0,30,
	   '["100% organic cotton","Replaces polyester material","Fair trade certified","Machine washable","Durable and long-lasting"]'),
	  (5,'Compostable Dish Sponges','Plant-Based Compostable Sponges',65,'Kitchen','img/cesponge.jpg',60,0.3,1.5,15,
	   '["100% plant-based materials","Fully compostable","No plastic or synthetic materials","Effective cleaning power","Pack of 3 sponges"]'),
	  (6,'Solar-Powered Garden Lights','Solar Lights for your garden',499,'Electronics','img/glights.jpg',5,2.5,1.0,100,
	   '["Renewable solar energy","Reduces electricity consumption","Eco-friendly materials","Portable and lightweight","Fast charging capability"]')`)

	return tx.Commit()
}

// seedUsers ensures one admin and one demo customer exist (idempotent).
func seedUsers(db *sqlx.DB) error {
	type u struct {
		ID        int64
		Name      string
		Email     string
		Role      string
		EcoPoints int
		Hash      string
	}
	mk := func(id int64, name, email, role string, points int, raw string) u {
		h, _ := bcrypt.GenerateFromPassword([]byte(raw), 12)
		return u{ID: id, Name: name, Email: email, Role: role, EcoPoints: points, Hash: string(h)}
	}

	users := []u{
		mk(1, "Admin", "admin@demo.com", "admin", 0, "EcoPass1!"),
		mk(2, "Customer", "user@demo.com", "user", 120, "EcoPass1!"),
	}

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	for _, x := range users {
		if _, err := tx.Exec(`
			INSERT INTO users(id,name,email,password_hash,role,eco_points)
			VALUES(?,?,?,?,?,?)
			ON CONFLICT(email) DO NOTHING
		`, x.ID, x.Name, x.Email, x.Hash, x.Role, x.EcoPoints); err != nil {
			return err
		}
	}

	return tx.Commit()
}

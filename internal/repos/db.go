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

	if err := EnsureSchema(db); err != nil {
		return nil, err
	}
	if err := seedIfEmpty(db); err != nil {
		return nil, err
	}
	if err := seedUsers(db); err != nil {
		return nil, err
	}

	return db, nil
}

// EnsureSchema is exported so tests can build ":memory:" databases.
func EnsureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Artists
CREATE TABLE IF NOT EXISTS artists(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  specialty TEXT,
  bio TEXT,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);

-- Artworks. price is the original's base price in paisa; in_stock marks the
-- one-of-a-kind original as unsold.
CREATE TABLE IF NOT EXISTS artworks(
  id TEXT PRIMARY KEY,
  artist_id TEXT NOT NULL REFERENCES artists(id) ON DELETE RESTRICT,
  title TEXT NOT NULL,
  description TEXT,
  category TEXT NOT NULL CHECK (category IN ('Calligraphy','Landscape','Abstract','Miniature','Portrait')),
  medium TEXT,
  year INTEGER,
  price INTEGER NOT NULL CHECK (price >= 0),
  in_stock INTEGER NOT NULL DEFAULT 1,
  provenance_id TEXT,
  is_auction INTEGER NOT NULL DEFAULT 0,
  auction_end TEXT,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_artworks_category ON artworks(category);
CREATE INDEX IF NOT EXISTS idx_artworks_artist   ON artworks(artist_id);
CREATE INDEX IF NOT EXISTS idx_artworks_title    ON artworks(LOWER(title));

-- Carts: one per session, one row per line (duplicate adds stay distinct)
CREATE TABLE IF NOT EXISTS carts(
  id TEXT PRIMARY KEY,
  session_id TEXT UNIQUE NOT NULL,
  updated_at TEXT
);

CREATE TABLE IF NOT EXISTS cart_lines(
  id TEXT PRIMARY KEY,
  cart_id TEXT NOT NULL REFERENCES carts(id) ON DELETE CASCADE,
  artwork_id TEXT NOT NULL REFERENCES artworks(id) ON DELETE RESTRICT,
  title TEXT NOT NULL,
  kind TEXT NOT NULL CHECK (kind IN ('ORIGINAL','PRINT')),
  print_size TEXT NOT NULL DEFAULT '',
  qty INTEGER NOT NULL CHECK (qty >= 1),
  unit_price INTEGER NOT NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_cart_lines_cart ON cart_lines(cart_id);

-- Orders: append-only aggregate; money columns are paisa in the base currency
CREATE TABLE IF NOT EXISTS orders(
  id TEXT PRIMARY KEY,
  session_id TEXT,
  buyer_ref TEXT,
  customer_name TEXT,
  customer_email TEXT,
  subtotal INTEGER NOT NULL,
  shipping_cost INTEGER NOT NULL,
  tax INTEGER NOT NULL,
  discount INTEGER NOT NULL,
  total INTEGER NOT NULL CHECK (total >= 0),
  currency TEXT NOT NULL DEFAULT 'PKR',
  status TEXT NOT NULL DEFAULT 'PENDING',
  ship_provider TEXT,
  ship_label TEXT,
  address TEXT,
  country TEXT,
  payment_method TEXT NOT NULL CHECK (payment_method IN ('CARD','BANK_TRANSFER')),
  payment_ref TEXT NOT NULL DEFAULT '',
  paid_at TEXT NOT NULL DEFAULT '',
  tracking_ref TEXT NOT NULL DEFAULT '',
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_orders_created ON orders(created_at);
CREATE INDEX IF NOT EXISTS idx_orders_buyer   ON orders(buyer_ref);

CREATE TABLE IF NOT EXISTS order_lines(
  id TEXT NOT NULL,
  order_id TEXT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
  artwork_id TEXT NOT NULL,
  title TEXT NOT NULL,
  kind TEXT NOT NULL,
  print_size TEXT NOT NULL DEFAULT '',
  qty INTEGER NOT NULL,
  unit_price INTEGER NOT NULL,
  PRIMARY KEY (order_id, id)
);

-- Discount codes (data-driven; value is percent or paisa by kind)
CREATE TABLE IF NOT EXISTS discounts(
  code TEXT PRIMARY KEY,
  kind TEXT NOT NULL CHECK (kind IN ('PERCENTAGE','FIXED')),
  value INTEGER NOT NULL CHECK (value >= 0)
);

-- Users & sessions
CREATE TABLE IF NOT EXISTS users(
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  password_hash TEXT NOT NULL,
  role TEXT NOT NULL CHECK (role IN ('USER','ADMIN')),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(LOWER(email));

CREATE TABLE IF NOT EXISTS sessions(
  id TEXT PRIMARY KEY,
  user_id TEXT NULL REFERENCES users(id) ON DELETE SET NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  last_seen TEXT
);

-- Favorites per session
CREATE TABLE IF NOT EXISTS favorites(
  session_id TEXT NOT NULL,
  artwork_id TEXT NOT NULL REFERENCES artworks(id) ON DELETE CASCADE,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  PRIMARY KEY (session_id, artwork_id)
);
`
	_, err := db.Exec(schema)
	return err
}

func seedIfEmpty(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM artists`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting demo artists/artworks/discounts")

	tx := db.MustBegin()
	tx.MustExec(`INSERT INTO artists(id,name,specialty,bio) VALUES
	  ('a-sadequain','Sadequain (Tribute)','Abstract Calligraphy','Exploring the mystic soul of the walled city.'),
	  ('a-ahmed-khan','Ahmed Khan','Islamic Calligraphy','Master of silver leaf and oil overlays.'),
	  ('a-alia-syed','Alia Syed','Contemporary Miniature','Reviving ancient techniques for modern narratives.')`)

	tx.MustExec(`INSERT INTO artworks(id,artist_id,title,description,category,medium,year,price,in_stock,provenance_id) VALUES
	  ('art-001','a-ahmed-khan','Surah An-Noor','Silver leaf calligraphy on indigo','Calligraphy','Oil and silver leaf',2023,450000,1,'PRV-1001'),
	  ('art-002','a-sadequain','Walled City Dusk','Abstract rendering of the old city gates','Abstract','Oil on canvas',2022,1250000,1,'PRV-1002'),
	  ('art-003','a-alia-syed','Court of the Scribe','Contemporary miniature in gouache','Miniature','Gouache on wasli',2024,780000,1,NULL),
	  ('art-004','a-ahmed-khan','Alif','Single-stroke study','Calligraphy','Ink on paper',2021,180000,0,NULL)`)

	tx.MustExec(`INSERT INTO discounts(code,kind,value) VALUES
	  ('MURAQQA10','PERCENTAGE',10),
	  ('EIDMUBARAK','FIXED',50000)`)

	return tx.Commit()
}

// seedUsers ensures a collector and an admin exist (idempotent).
func seedUsers(db *sqlx.DB) error {
	type u struct {
		ID, Email, Name, Role, Hash string
	}
	mk := func(id, email, name, role, raw string) u {
		h, _ := bcrypt.GenerateFromPassword([]byte(raw), 12)
		return u{ID: id, Email: email, Name: name, Role: role, Hash: string(h)}
	}

	users := []u{
		mk("u-collector", "collector@muraqqa.test", "Collector", "USER", "Passw0rd!"),
		mk("u-curator", "curator@muraqqa.test", "Curator", "ADMIN", "Passw0rd!"),
	}

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	for _, x := range users {
		if _, err := tx.Exec(`
			INSERT INTO users(id,email,name,password_hash,role)
			VALUES(?,?,?,?,?)
			ON CONFLICT(email) DO NOTHING
		`, x.ID, x.Email, x.Name, x.Hash, x.Role); err != nil {
			return err
		}
	}

	return tx.Commit()
}

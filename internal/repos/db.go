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
	// Seed a demo tenant if the DB is empty (idempotent; safe on every start)
	if err := seedIfEmpty(db); err != nil {
		return nil, err
	}

	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Accounts (tenant boundary; last_item_sku is the shared item/donation counter)
CREATE TABLE IF NOT EXISTS accounts(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  admin_user_id TEXT NOT NULL DEFAULT '',
  last_item_sku INTEGER NOT NULL DEFAULT 0,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);

-- Users & Sessions
CREATE TABLE IF NOT EXISTS users(
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  password_hash TEXT NOT NULL,
  account_id TEXT NOT NULL REFERENCES accounts(id) ON DELETE CASCADE,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(LOWER(email));

CREATE TABLE IF NOT EXISTS sessions(
  id TEXT PRIMARY KEY,               -- same value as the 'sid' cookie
  user_id TEXT NULL REFERENCES users(id) ON DELETE SET NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  last_seen  TEXT
);
CREATE INDEX IF NOT EXISTS idx_sessions_user ON sessions(user_id);

-- Auctions (never hard-deleted)
CREATE TABLE IF NOT EXISTS auctions(
  id TEXT PRIMARY KEY,
  account_id TEXT NOT NULL REFERENCES accounts(id) ON DELETE CASCADE,
  name TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  type TEXT NOT NULL CHECK (type IN ('Live','Silent','Hybrid')),
  status TEXT NOT NULL DEFAULT 'upcoming' CHECK (status IN ('upcoming','active','completed')),
  starts_at TEXT NOT NULL DEFAULT '',
  public_catalog INTEGER NOT NULL DEFAULT 0,
  item_count INTEGER NOT NULL DEFAULT 0,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_auctions_account ON auctions(account_id);

-- Auction categories (the per-auction category set)
CREATE TABLE IF NOT EXISTS auction_categories(
  id TEXT PRIMARY KEY,
  auction_id TEXT NOT NULL REFERENCES auctions(id) ON DELETE CASCADE,
  name TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_categories_auction ON auction_categories(auction_id);

-- Auction manager roles (filled by accepted invitations)
CREATE TABLE IF NOT EXISTS auction_managers(
  auction_id TEXT NOT NULL REFERENCES auctions(id) ON DELETE CASCADE,
  user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
  role TEXT NOT NULL DEFAULT 'manager',
  PRIMARY KEY(auction_id, user_id)
);

-- Items (donation pseudo-items live here too, sku 'DON-<n>')
CREATE TABLE IF NOT EXISTS items(
  id TEXT PRIMARY KEY,
  auction_id TEXT NOT NULL REFERENCES auctions(id) ON DELETE CASCADE,
  account_id TEXT NOT NULL REFERENCES accounts(id) ON DELETE CASCADE,
  sku TEXT NOT NULL,
  name TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  estimated_value NUMERIC NOT NULL DEFAULT 0,
  category_id TEXT NOT NULL DEFAULT '',
  category_name TEXT NOT NULL DEFAULT '',
  donor_id TEXT NOT NULL DEFAULT '',
  donor_name TEXT NOT NULL DEFAULT '',
  lot_id TEXT NOT NULL DEFAULT '',
  image_key TEXT NOT NULL DEFAULT '',
  winning_bid NUMERIC NOT NULL DEFAULT 0,
  winning_bidder_id TEXT NOT NULL DEFAULT '',
  winner_name TEXT NOT NULL DEFAULT '',
  winner_bidder_number INTEGER NOT NULL DEFAULT 0,
  paid INTEGER NOT NULL DEFAULT 0,
  payment_method TEXT NOT NULL DEFAULT '',
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  UNIQUE(account_id, sku)
);
CREATE INDEX IF NOT EXISTS idx_items_auction ON items(auction_id);
CREATE INDEX IF NOT EXISTS idx_items_winner  ON items(auction_id, winning_bidder_id);
CREATE INDEX IF NOT EXISTS idx_items_lot     ON items(lot_id);

-- Lots (own table so creating one never touches the auction row)
CREATE TABLE IF NOT EXISTS lots(
  id TEXT PRIMARY KEY,
  auction_id TEXT NOT NULL REFERENCES auctions(id) ON DELETE CASCADE,
  name TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_lots_auction ON lots(auction_id);

-- Patrons (account-wide master records)
CREATE TABLE IF NOT EXISTS patrons(
  id TEXT PRIMARY KEY,
  account_id TEXT NOT NULL REFERENCES accounts(id) ON DELETE CASCADE,
  name TEXT NOT NULL,
  email TEXT NOT NULL DEFAULT '',
  phone TEXT NOT NULL DEFAULT '',
  address TEXT NOT NULL DEFAULT '',
  notes TEXT NOT NULL DEFAULT '',
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_patrons_account ON patrons(account_id);

-- Per-auction registrations with bidder numbers
CREATE TABLE IF NOT EXISTS registered_patrons(
  id TEXT PRIMARY KEY,
  auction_id TEXT NOT NULL REFERENCES auctions(id) ON DELETE CASCADE,
  patron_id TEXT NOT NULL REFERENCES patrons(id) ON DELETE RESTRICT,
  account_id TEXT NOT NULL REFERENCES accounts(id) ON DELETE CASCADE,
  bidder_number INTEGER NOT NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  UNIQUE(auction_id, patron_id)
);
CREATE INDEX IF NOT EXISTS idx_registrations_auction ON registered_patrons(auction_id);

-- Donors
CREATE TABLE IF NOT EXISTS donors(
  id TEXT PRIMARY KEY,
  account_id TEXT NOT NULL REFERENCES accounts(id) ON DELETE CASCADE,
  name TEXT NOT NULL,
  email TEXT NOT NULL DEFAULT '',
  phone TEXT NOT NULL DEFAULT '',
  address TEXT NOT NULL DEFAULT '',
  donor_type TEXT NOT NULL DEFAULT 'individual' CHECK (donor_type IN ('individual','business')),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_donors_account ON donors(account_id);

-- Manager invitations (consumed exactly once)
CREATE TABLE IF NOT EXISTS invitations(
  id TEXT PRIMARY KEY,
  account_id TEXT NOT NULL REFERENCES accounts(id) ON DELETE CASCADE,
  auction_id TEXT NOT NULL REFERENCES auctions(id) ON DELETE CASCADE,
  email TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'pending' CHECK (status IN ('pending','accepted')),
  accepted_by TEXT NOT NULL DEFAULT '',
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_invitations_email ON invitations(LOWER(email));
`
	_, err := db.Exec(schema)
	return err
}

func seedIfEmpty(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM accounts`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting demo account/auction/patrons")

	hash, _ := bcrypt.GenerateFromPassword([]byte("Passw0rd!"), 12)

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	tx.MustExec(`INSERT INTO accounts(id,name,admin_user_id,last_item_sku)
	  VALUES ('acct-demo','Riverside Charity Guild','u-demo',0)`)
	tx.MustExec(`INSERT INTO users(id,email,name,password_hash,account_id)
	  VALUES ('u-demo','admin@gavelbook.test','Demo Admin',?,'acct-demo')`, string(hash))
	tx.MustExec(`INSERT INTO auctions(id,account_id,name,description,type,status,starts_at,public_catalog)
	  VALUES ('auc-gala','acct-demo','Spring Gala','Annual fundraising gala','Silent','upcoming','2026-05-02',1)`)
	tx.MustExec(`INSERT INTO auction_categories(id,auction_id,name) VALUES
	  ('cat-art','auc-gala','Art'),
	  ('cat-dining','auc-gala','Dining'),
	  ('cat-travel','auc-gala','Travel')`)
	tx.MustExec(`INSERT INTO patrons(id,account_id,name,email) VALUES
	  ('pat-ann','acct-demo','Ann Rivers','ann@example.test'),
	  ('pat-bo','acct-demo','Bo Chandler','bo@example.test')`)
	tx.MustExec(`INSERT INTO donors(id,account_id,name,donor_type) VALUES
	  ('don-gallery','acct-demo','Main Street Gallery','business')`)

	return tx.Commit()
}

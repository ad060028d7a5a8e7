package migrations

import (
	"log"

	"github.com/jmoiron/sqlx"
)

// Run creates the database schema required for the POS backend.
func Run(db *sqlx.DB) {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS medicines (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			batch_number TEXT NOT NULL UNIQUE,
			company TEXT NOT NULL DEFAULT '',
			quantity INTEGER NOT NULL DEFAULT 0,
			price REAL NOT NULL DEFAULT 0,
			strip_price REAL,
			units_per_strip INTEGER NOT NULL DEFAULT 0,
			cost_price REAL NOT NULL DEFAULT 0,
			supplier TEXT NOT NULL DEFAULT '',
			mfg_date TEXT NOT NULL DEFAULT '',
			expiry_date TEXT NOT NULL,
			date_added TEXT NOT NULL,
			general INTEGER NOT NULL DEFAULT 0
		);`,
		`CREATE TABLE IF NOT EXISTS customers (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			phone TEXT NOT NULL DEFAULT '',
			email TEXT,
			address TEXT,
			date_registered TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS sales (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			invoice_number TEXT NOT NULL UNIQUE,
			customer_id INTEGER REFERENCES customers(id),
			date TEXT NOT NULL,
			total_amount REAL NOT NULL,
			discount REAL NOT NULL DEFAULT 0,
			payment_method TEXT NOT NULL DEFAULT ''
		);`,
		`CREATE TABLE IF NOT EXISTS sale_items (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			sale_id INTEGER NOT NULL REFERENCES sales(id),
			medicine_id INTEGER NOT NULL,
			quantity INTEGER NOT NULL,
			strips INTEGER NOT NULL DEFAULT 0,
			loose_units INTEGER NOT NULL DEFAULT 0,
			price REAL NOT NULL,
			line_total REAL NOT NULL
		);`,
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			log.Fatalf("migration failed: %v", err)
		}
	}
}

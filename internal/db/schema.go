package db

import "database/sql"

func Migrate(db *sql.DB) {
	db.Exec(`
	CREATE TABLE IF NOT EXISTS wallets (
		player TEXT PRIMARY KEY,
		balance INTEGER NOT NULL DEFAULT 0
	);`)

	db.Exec(`
	CREATE TABLE IF NOT EXISTS games (
		id TEXT PRIMARY KEY,
		epoch INTEGER NOT NULL DEFAULT 1,
		point INTEGER NOT NULL DEFAULT 0,
		epoch_start INTEGER NOT NULL DEFAULT 0,
		bankroll INTEGER NOT NULL DEFAULT 0,
		reserved INTEGER NOT NULL DEFAULT 0,
		total_wagered INTEGER NOT NULL DEFAULT 0,
		total_paid INTEGER NOT NULL DEFAULT 0,
		total_collected INTEGER NOT NULL DEFAULT 0,
		halted INTEGER NOT NULL DEFAULT 0
	);`)

	db.Exec(`
	CREATE TABLE IF NOT EXISTS positions (
		game TEXT NOT NULL,
		player TEXT NOT NULL,
		epoch INTEGER NOT NULL DEFAULT 1,
		round INTEGER NOT NULL DEFAULT 0,
		state TEXT NOT NULL DEFAULT 'open',
		pending INTEGER NOT NULL DEFAULT 0,
		unpaid_debt INTEGER NOT NULL DEFAULT 0,
		last_settled INTEGER NOT NULL DEFAULT 0,
		total_wagered INTEGER NOT NULL DEFAULT 0,
		total_won INTEGER NOT NULL DEFAULT 0,
		total_lost INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (game, player)
	);`)

	db.Exec(`
	CREATE TABLE IF NOT EXISTS bets (
		game TEXT NOT NULL,
		player TEXT NOT NULL,
		kind INTEGER NOT NULL,
		aux INTEGER NOT NULL,
		stake INTEGER NOT NULL,
		reserved INTEGER NOT NULL,
		PRIMARY KEY (game, player, kind, aux)
	);`)

	db.Exec(`
	CREATE TABLE IF NOT EXISTS rounds (
		id INTEGER PRIMARY KEY,
		opened_at INTEGER NOT NULL,
		expires_at INTEGER NOT NULL,
		seed BLOB,
		sealed INTEGER NOT NULL DEFAULT 0
	);`)

	db.Exec(`
	CREATE TABLE IF NOT EXISTS journal (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		ref TEXT,
		game TEXT,
		player TEXT,
		kind TEXT,
		amount INTEGER,
		round INTEGER,
		ts INTEGER
	);`)

	db.Exec(`
	CREATE TABLE IF NOT EXISTS audit_log (
		id TEXT PRIMARY KEY,
		actor TEXT,
		action TEXT,
		game TEXT,
		detail TEXT,
		ts INTEGER
	);`)
}

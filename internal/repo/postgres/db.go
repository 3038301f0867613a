package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

const tablesSQL = `
CREATE TABLE IF NOT EXISTS users (
    id         TEXT PRIMARY KEY,
    name       TEXT NOT NULL,
    mobile     TEXT NOT NULL,
    hrid       TEXT NOT NULL UNIQUE,
    role       TEXT NOT NULL CHECK (role IN ('LO', 'CROSS_SELL', 'TERRITORY_MANAGER', 'SUPER_ADMIN')),
    territory  TEXT NOT NULL,
    status     TEXT NOT NULL CHECK (status IN ('ACTIVE', 'SUSPENDED')),
    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS merchants (
    id            TEXT PRIMARY KEY,
    business_name TEXT NOT NULL,
    personal_name TEXT NOT NULL,
    nid           TEXT NOT NULL,
    mobile        TEXT NOT NULL,
    address       TEXT NOT NULL DEFAULT '',
    territory     TEXT NOT NULL,
    aman_score    TEXT NOT NULL CHECK (aman_score IN ('HIGH', 'MEDIUM', 'LOW')),
    owner_id      TEXT REFERENCES users(id) ON DELETE SET NULL,
    created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS merchant_products (
    merchant_id  TEXT NOT NULL REFERENCES merchants(id) ON DELETE CASCADE,
    product_type TEXT NOT NULL CHECK (product_type IN ('MF', 'BP', 'ACC')),
    status       TEXT NOT NULL CHECK (status IN ('ACTIVE', 'PENDING', 'REJECTED', 'NOT_ONBOARDED')),
    PRIMARY KEY (merchant_id, product_type)
);

CREATE TABLE IF NOT EXISTS merchant_notes (
    id          TEXT PRIMARY KEY,
    merchant_id TEXT NOT NULL REFERENCES merchants(id) ON DELETE CASCADE,
    author_id   TEXT NOT NULL,
    author_name TEXT NOT NULL,
    content     TEXT NOT NULL,
    created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS tasks (
    id             TEXT PRIMARY KEY,
    type           TEXT NOT NULL CHECK (type IN ('CROSS_SELL_BP', 'CROSS_SELL_ACC', 'FOLLOW_UP', 'RE_ENGAGE')),
    merchant_id    TEXT NOT NULL REFERENCES merchants(id) ON DELETE RESTRICT,
    assigned_to_id TEXT NOT NULL REFERENCES users(id) ON DELETE RESTRICT,
    priority       TEXT NOT NULL CHECK (priority IN ('HIGH', 'MEDIUM', 'LOW')),
    status         TEXT NOT NULL CHECK (status IN ('OPEN', 'COMPLETED')),
    due_date       TIMESTAMPTZ NOT NULL,
    created_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
    outcome        TEXT
);

CREATE INDEX IF NOT EXISTS idx_tasks_assignee_status
    ON tasks (assigned_to_id, status);

CREATE TABLE IF NOT EXISTS edit_requests (
    id                TEXT PRIMARY KEY,
    merchant_id       TEXT NOT NULL REFERENCES merchants(id) ON DELETE RESTRICT,
    merchant_name     TEXT NOT NULL,
    field             TEXT NOT NULL CHECK (field IN ('MOBILE', 'BUSINESS_NAME', 'ADDRESS', 'TERRITORY', 'LOCATION')),
    old_value         TEXT NOT NULL,
    new_value         TEXT NOT NULL,
    requested_by_id   TEXT NOT NULL,
    requested_by_name TEXT NOT NULL,
    requested_by_role TEXT NOT NULL,
    requested_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
    reason            TEXT NOT NULL,
    status            TEXT NOT NULL CHECK (status IN ('PENDING', 'APPROVED', 'REJECTED', 'ESCALATED')),
    rejection_reason  TEXT,
    territory         TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_edit_requests_status
    ON edit_requests (status);
`

func NewDB(ctx context.Context, connString string, logger *slog.Logger) (*sql.DB, error) {
	db, err := sql.Open("pgx", connString)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(1 * time.Hour)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}

	logger.Info("connected to database")

	return db, nil
}

func InitTables(ctx context.Context, db *sql.DB, logger *slog.Logger) error {
	initCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if _, err := db.ExecContext(initCtx, tablesSQL); err != nil {
		return fmt.Errorf("init tables: %w", err)
	}

	logger.Info("database tables initialized")
	return nil
}

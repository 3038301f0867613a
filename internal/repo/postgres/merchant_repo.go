package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/amanops/fieldforce/internal/domain"
)

type MerchantRepo struct {
	db *sql.DB
}

func NewMerchantRepo(db *sql.DB) *MerchantRepo {
	return &MerchantRepo{db: db}
}

func (r *MerchantRepo) Create(ctx context.Context, m *domain.Merchant) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create merchant tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var ownerID *string
	if m.OwnerID != "" {
		ownerID = &m.OwnerID
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO merchants (id, business_name, personal_name, nid, mobile, address, territory, aman_score, owner_id)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		m.ID,
		m.BusinessName,
		m.PersonalName,
		m.NID,
		m.Mobile,
		m.Address,
		m.Territory,
		string(m.AmanScore),
		ownerID,
	)
	if err != nil {
		return fmt.Errorf("insert merchant: %w", err)
	}

	for _, p := range m.Products {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO merchant_products (merchant_id, product_type, status)
             VALUES ($1, $2, $3)`,
			m.ID, string(p.Type), string(p.Status),
		); err != nil {
			return fmt.Errorf("insert merchant product %s: %w", p.Type, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit create merchant tx: %w", err)
	}

	return nil
}

func (r *MerchantRepo) GetByID(ctx context.Context, id string) (*domain.Merchant, error) {
	m, err := r.scanMerchant(r.db.QueryRowContext(ctx,
		`SELECT id, business_name, personal_name, nid, mobile, address, territory, aman_score, owner_id
         FROM merchants
         WHERE id = $1`,
		id,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		return nil, fmt.Errorf("get merchant by id: %w", err)
	}

	products, err := r.loadProducts(ctx, id)
	if err != nil {
		return nil, err
	}
	m.Products = products

	notes, err := r.loadNotes(ctx, id)
	if err != nil {
		return nil, err
	}
	m.Notes = notes

	return m, nil
}

// List returns all merchants with their product holdings. Notes are loaded
// only on GetByID; list consumers never render them.
func (r *MerchantRepo) List(ctx context.Context) ([]domain.Merchant, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, business_name, personal_name, nid, mobile, address, territory, aman_score, owner_id
         FROM merchants
         ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("list merchants: %w", err)
	}
	defer rows.Close()

	merchants := make([]domain.Merchant, 0)
	index := make(map[string]int)
	for rows.Next() {
		m, err := r.scanMerchant(rows)
		if err != nil {
			return nil, fmt.Errorf("scan merchant: %w", err)
		}
		index[m.ID] = len(merchants)
		merchants = append(merchants, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate merchants: %w", err)
	}

	prodRows, err := r.db.QueryContext(ctx,
		`SELECT merchant_id, product_type, status
         FROM merchant_products
         ORDER BY merchant_id, product_type`,
	)
	if err != nil {
		return nil, fmt.Errorf("list merchant products: %w", err)
	}
	defer prodRows.Close()

	for prodRows.Next() {
		var (
			merchantID string
			p          domain.ProductHolding
		)
		if err := prodRows.Scan(&merchantID, &p.Type, &p.Status); err != nil {
			return nil, fmt.Errorf("scan merchant product: %w", err)
		}
		if i, ok := index[merchantID]; ok {
			merchants[i].Products = append(merchants[i].Products, p)
		}
	}
	if err := prodRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate merchant products: %w", err)
	}

	return merchants, nil
}

func (r *MerchantRepo) AddNote(ctx context.Context, merchantID string, note domain.Note) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO merchant_notes (id, merchant_id, author_id, author_name, content, created_at)
         VALUES ($1, $2, $3, $4, $5, $6)`,
		note.ID,
		merchantID,
		note.AuthorID,
		note.AuthorName,
		note.Content,
		note.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert merchant note: %w", err)
	}
	return nil
}

func (r *MerchantRepo) AddProduct(ctx context.Context, merchantID string, holding domain.ProductHolding) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO merchant_products (merchant_id, product_type, status)
         VALUES ($1, $2, $3)`,
		merchantID,
		string(holding.Type),
		string(holding.Status),
	)
	if err != nil {
		return fmt.Errorf("insert merchant product: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *MerchantRepo) scanMerchant(row rowScanner) (*domain.Merchant, error) {
	var (
		m       domain.Merchant
		ownerID sql.NullString
	)
	err := row.Scan(
		&m.ID,
		&m.BusinessName,
		&m.PersonalName,
		&m.NID,
		&m.Mobile,
		&m.Address,
		&m.Territory,
		&m.AmanScore,
		&ownerID,
	)
	if err != nil {
		return nil, err
	}
	m.OwnerID = ownerID.String
	return &m, nil
}

func (r *MerchantRepo) loadProducts(ctx context.Context, merchantID string) ([]domain.ProductHolding, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT product_type, status
         FROM merchant_products
         WHERE merchant_id = $1
         ORDER BY product_type`,
		merchantID,
	)
	if err != nil {
		return nil, fmt.Errorf("list merchant products: %w", err)
	}
	defer rows.Close()

	products := make([]domain.ProductHolding, 0)
	for rows.Next() {
		var p domain.ProductHolding
		if err := rows.Scan(&p.Type, &p.Status); err != nil {
			return nil, fmt.Errorf("scan merchant product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate merchant products: %w", err)
	}

	return products, nil
}

func (r *MerchantRepo) loadNotes(ctx context.Context, merchantID string) ([]domain.Note, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, author_id, author_name, content, created_at
         FROM merchant_notes
         WHERE merchant_id = $1
         ORDER BY created_at`,
		merchantID,
	)
	if err != nil {
		return nil, fmt.Errorf("list merchant notes: %w", err)
	}
	defer rows.Close()

	notes := make([]domain.Note, 0)
	for rows.Next() {
		var n domain.Note
		if err := rows.Scan(&n.ID, &n.AuthorID, &n.AuthorName, &n.Content, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan merchant note: %w", err)
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate merchant notes: %w", err)
	}

	return notes, nil
}

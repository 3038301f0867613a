package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/amanops/fieldforce/internal/domain"
)

type EditRequestRepo struct {
	db *sql.DB
}

func NewEditRequestRepo(db *sql.DB) *EditRequestRepo {
	return &EditRequestRepo{db: db}
}

const editRequestColumns = `id, merchant_id, merchant_name, field, old_value, new_value,
       requested_by_id, requested_by_name, requested_by_role,
       requested_at, reason, status, rejection_reason, territory`

// merchantColumnFor maps an editable field onto its merchants column.
// LOCATION edits land on the address column.
func merchantColumnFor(field domain.EditableField) (string, bool) {
	switch field {
	case domain.FieldMobile:
		return "mobile", true
	case domain.FieldBusinessName:
		return "business_name", true
	case domain.FieldAddress, domain.FieldLocation:
		return "address", true
	case domain.FieldTerritory:
		return "territory", true
	}
	return "", false
}

func (r *EditRequestRepo) Create(ctx context.Context, req *domain.EditRequest) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO edit_requests
         (id, merchant_id, merchant_name, field, old_value, new_value,
          requested_by_id, requested_by_name, requested_by_role,
          requested_at, reason, status, territory)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, COALESCE($10, now()), $11, $12, $13)`,
		req.ID,
		req.MerchantID,
		req.MerchantName,
		string(req.Field),
		req.OldValue,
		req.NewValue,
		req.RequestedBy.ID,
		req.RequestedBy.Name,
		string(req.RequestedBy.Role),
		nullTime(req.RequestedAt),
		req.Reason,
		string(req.Status),
		req.Territory,
	)
	if err != nil {
		return fmt.Errorf("insert edit_request: %w", err)
	}
	return nil
}

func (r *EditRequestRepo) GetByID(ctx context.Context, id string) (*domain.EditRequest, error) {
	req, err := scanEditRequest(r.db.QueryRowContext(ctx,
		`SELECT `+editRequestColumns+` FROM edit_requests WHERE id = $1`,
		id,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		return nil, fmt.Errorf("get edit_request by id: %w", err)
	}
	return req, nil
}

func (r *EditRequestRepo) List(ctx context.Context) ([]domain.EditRequest, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+editRequestColumns+` FROM edit_requests ORDER BY requested_at, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("list edit_requests: %w", err)
	}
	defer rows.Close()

	requests := make([]domain.EditRequest, 0)
	for rows.Next() {
		req, err := scanEditRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("scan edit_request: %w", err)
		}
		requests = append(requests, *req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate edit_requests: %w", err)
	}

	return requests, nil
}

// ApproveAndApplyField approves the request and writes the proposed value
// onto the merchant in one transaction. The request row is locked first so
// two concurrent reviewers cannot both resolve it; the loser of the race
// sees the terminal status and gets a NOT_REVIEWABLE error.
func (r *EditRequestRepo) ApproveAndApplyField(ctx context.Context, id string) (*domain.EditRequest, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin approve tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	req, err := scanEditRequest(tx.QueryRowContext(ctx,
		`SELECT `+editRequestColumns+` FROM edit_requests WHERE id = $1 FOR UPDATE`,
		id,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		return nil, fmt.Errorf("lock edit_request: %w", err)
	}

	if !req.IsReviewable() {
		return nil, domain.NewDomainError(domain.ErrorCodeNotReviewable, "request is already resolved")
	}

	column, ok := merchantColumnFor(req.Field)
	if !ok {
		return nil, fmt.Errorf("no merchant column for field %s", req.Field)
	}

	// column comes from the closed mapping above, never from input.
	res, err := tx.ExecContext(ctx,
		fmt.Sprintf(`UPDATE merchants SET %s = $1, updated_at = now() WHERE id = $2`, column),
		req.NewValue, req.MerchantID,
	)
	if err != nil {
		return nil, fmt.Errorf("apply field to merchant: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("apply field rows affected: %w", err)
	}
	if affected == 0 {
		return nil, sql.ErrNoRows
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE edit_requests SET status = 'APPROVED' WHERE id = $1`,
		id,
	); err != nil {
		return nil, fmt.Errorf("set edit_request approved: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit approve tx: %w", err)
	}

	req.Status = domain.EditRequestApproved
	return req, nil
}

// Reject resolves the request without touching the merchant. The status
// guard in the WHERE clause keeps a racing approval from being overwritten.
func (r *EditRequestRepo) Reject(ctx context.Context, id, reason string) (*domain.EditRequest, error) {
	req, err := scanEditRequest(r.db.QueryRowContext(ctx,
		`UPDATE edit_requests
         SET status = 'REJECTED',
             rejection_reason = $2
         WHERE id = $1
           AND status IN ('PENDING', 'ESCALATED')
         RETURNING `+editRequestColumns,
		id, reason,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Either the id is unknown or the request was resolved meanwhile.
			if _, getErr := r.GetByID(ctx, id); getErr != nil {
				return nil, getErr
			}
			return nil, domain.NewDomainError(domain.ErrorCodeNotReviewable, "request is already resolved")
		}
		return nil, fmt.Errorf("set edit_request rejected: %w", err)
	}
	return req, nil
}

func (r *EditRequestRepo) EscalateOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE edit_requests
         SET status = 'ESCALATED'
         WHERE status = 'PENDING'
           AND requested_at < $1`,
		cutoff,
	)
	if err != nil {
		return 0, fmt.Errorf("escalate edit_requests: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("escalate rows affected: %w", err)
	}
	return affected, nil
}

func scanEditRequest(row rowScanner) (*domain.EditRequest, error) {
	var (
		req             domain.EditRequest
		rejectionReason sql.NullString
	)
	err := row.Scan(
		&req.ID,
		&req.MerchantID,
		&req.MerchantName,
		&req.Field,
		&req.OldValue,
		&req.NewValue,
		&req.RequestedBy.ID,
		&req.RequestedBy.Name,
		&req.RequestedBy.Role,
		&req.RequestedAt,
		&req.Reason,
		&req.Status,
		&rejectionReason,
		&req.Territory,
	)
	if err != nil {
		return nil, err
	}
	req.RejectionReason = rejectionReason.String
	return &req, nil
}

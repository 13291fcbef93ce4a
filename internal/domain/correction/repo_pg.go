package correction

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nhisvet/vetting/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type auditRepoPG struct{ pool *pgxpool.Pool }

func NewAuditRepoPG(pool *pgxpool.Pool) AuditRepository { return &auditRepoPG{pool: pool} }

func (r *auditRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

func (r *auditRepoPG) Insert(ctx context.Context, rec *AuditRecord) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO corrections_audit (id, item_id, field, old_value, new_value, "user", reason)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		rec.ID, rec.ItemID, rec.Field, rec.OldValue, rec.NewValue, rec.User, rec.Reason)
	return err
}

func (r *auditRepoPG) ListByItem(ctx context.Context, itemID uuid.UUID) ([]*AuditRecord, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT id, item_id, field, old_value, new_value, "user", reason, created_at
		FROM corrections_audit WHERE item_id = $1 ORDER BY created_at, id`, itemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*AuditRecord
	for rows.Next() {
		var rec AuditRecord
		if err := rows.Scan(&rec.ID, &rec.ItemID, &rec.Field, &rec.OldValue, &rec.NewValue,
			&rec.User, &rec.Reason, &rec.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &rec)
	}
	return out, rows.Err()
}

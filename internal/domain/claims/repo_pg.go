package claims

import (
	"context"
	"errors"
	"fmt"
	"strings"

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

type itemRepoPG struct{ pool *pgxpool.Pool }

func NewItemRepoPG(pool *pgxpool.Pool) ItemRepository { return &itemRepoPG{pool: pool} }

func (r *itemRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const itemCols = `id, claim_id, seq, nhis_id, dob, visit_date, code,
	diagnosis, treatment, quantity, dose, frequency, duration, gdrg,
	corrected, created_at`

func (r *itemRepoPG) scanItem(row pgx.Row) (*ClaimItem, error) {
	var it ClaimItem
	err := row.Scan(&it.ID, &it.ClaimID, &it.Seq, &it.NHISID, &it.DOB, &it.VisitDate, &it.Code,
		&it.Diagnosis, &it.Treatment, &it.Quantity, &it.Dose, &it.Frequency, &it.Duration, &it.GDRG,
		&it.Corrected, &it.CreatedAt)
	return &it, err
}

func (r *itemRepoPG) GetItem(ctx context.Context, id uuid.UUID) (*ClaimItem, error) {
	it, err := r.scanItem(r.conn(ctx).QueryRow(ctx, `SELECT `+itemCols+` FROM claim_items WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return it, nil
}

func (r *itemRepoPG) ListItemsByClaim(ctx context.Context, claimID uuid.UUID) ([]*ClaimItem, error) {
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+itemCols+` FROM claim_items WHERE claim_id = $1 ORDER BY seq`, claimID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*ClaimItem
	for rows.Next() {
		it, err := r.scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *itemRepoPG) UpdateItemFields(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	set := make([]string, 0, len(fields)+1)
	args := make([]any, 0, len(fields)+1)
	args = append(args, id)
	for _, f := range correctableFields {
		v, ok := fields[f]
		if !ok {
			continue
		}
		args = append(args, v)
		set = append(set, fmt.Sprintf("%s = $%d", f, len(args)))
	}
	set = append(set, "corrected = TRUE")
	tag, err := r.conn(ctx).Exec(ctx,
		`UPDATE claim_items SET `+strings.Join(set, ", ")+` WHERE id = $1`, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *itemRepoPG) CreateClaim(ctx context.Context, cl *Claim) error {
	if cl.ID == uuid.Nil {
		cl.ID = uuid.New()
	}
	if cl.Status == "" {
		cl.Status = "submitted"
	}
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO claims (id, facility_id, status)
		VALUES ($1,$2,$3)
		ON CONFLICT (id) DO NOTHING`,
		cl.ID, cl.FacilityID, cl.Status)
	return err
}

func (r *itemRepoPG) AddItem(ctx context.Context, item *ClaimItem) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO claim_items (id, claim_id, seq, nhis_id, dob, visit_date, code,
			diagnosis, treatment, quantity, dose, frequency, duration, gdrg, corrected)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)`,
		item.ID, item.ClaimID, item.Seq, item.NHISID, item.DOB, item.VisitDate, item.Code,
		item.Diagnosis, item.Treatment, item.Quantity, item.Dose, item.Frequency, item.Duration,
		item.GDRG, item.Corrected)
	return err
}

package reference

import (
	"context"
	"errors"

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

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

func (r *repoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

func notFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func (r *repoPG) GetCoverage(ctx context.Context, code string) (*BenefitCoverage, error) {
	var bc BenefitCoverage
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT code, is_covered FROM benefit_list WHERE code = $1`, code).
		Scan(&bc.Code, &bc.IsCovered)
	if err != nil {
		return nil, notFound(err)
	}
	return &bc, nil
}

func (r *repoPG) GetMedicineRule(ctx context.Context, code string) (*MedicineRule, error) {
	var mr MedicineRule
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT code, max_qty, max_age_years, adult_only FROM medicine_rules WHERE code = $1`, code).
		Scan(&mr.Code, &mr.MaxQty, &mr.MaxAgeYears, &mr.AdultOnly)
	if err != nil {
		return nil, notFound(err)
	}
	return &mr, nil
}

func (r *repoPG) GetDxMapping(ctx context.Context, icd string) (*DxTxMapping, error) {
	var m DxTxMapping
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT icd, recommended FROM dx_tx_map WHERE icd = $1`, icd).
		Scan(&m.ICD, &m.Recommended)
	if err != nil {
		return nil, notFound(err)
	}
	return &m, nil
}

func (r *repoPG) GetMemberStatus(ctx context.Context, nhisID string) (*MemberStatus, error) {
	var ms MemberStatus
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT nhis_id, status FROM member_status WHERE nhis_id = $1`, nhisID).
		Scan(&ms.NHISID, &ms.Status)
	if err != nil {
		return nil, notFound(err)
	}
	return &ms, nil
}

func (r *repoPG) ListCoverage(ctx context.Context) ([]*BenefitCoverage, error) {
	rows, err := r.conn(ctx).Query(ctx, `SELECT code, is_covered FROM benefit_list ORDER BY code`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*BenefitCoverage
	for rows.Next() {
		var bc BenefitCoverage
		if err := rows.Scan(&bc.Code, &bc.IsCovered); err != nil {
			return nil, err
		}
		out = append(out, &bc)
	}
	return out, rows.Err()
}

func (r *repoPG) ListMedicineRules(ctx context.Context) ([]*MedicineRule, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT code, max_qty, max_age_years, adult_only FROM medicine_rules ORDER BY code`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*MedicineRule
	for rows.Next() {
		var mr MedicineRule
		if err := rows.Scan(&mr.Code, &mr.MaxQty, &mr.MaxAgeYears, &mr.AdultOnly); err != nil {
			return nil, err
		}
		out = append(out, &mr)
	}
	return out, rows.Err()
}

func (r *repoPG) ListDxMappings(ctx context.Context) ([]*DxTxMapping, error) {
	rows, err := r.conn(ctx).Query(ctx, `SELECT icd, recommended FROM dx_tx_map ORDER BY icd`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*DxTxMapping
	for rows.Next() {
		var m DxTxMapping
		if err := rows.Scan(&m.ICD, &m.Recommended); err != nil {
			return nil, err
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}

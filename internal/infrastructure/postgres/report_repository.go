package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/paisasoft/mercado-api/internal/domain"
	"github.com/paisasoft/mercado-api/internal/domain/entity"
	"github.com/paisasoft/mercado-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo implementación de ReportRepository sobre PostgreSQL (usable con pool o tx).
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador de denuncias. Pasar pool o tx (Querier).
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

const reportColumns = `id, product_id, reason, description, evidence_url, status, justification, created_at, updated_at`

func scanReport(row pgx.Row) (*entity.ProductReport, error) {
	var rep entity.ProductReport
	err := row.Scan(
		&rep.ID, &rep.ProductID, &rep.Reason, &rep.Description, &rep.EvidenceURL,
		&rep.Status, &rep.Justification, &rep.CreatedAt, &rep.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rep, nil
}

// Create persiste una denuncia nueva.
func (r *ReportRepo) Create(rep *entity.ProductReport) error {
	query := `
		INSERT INTO product_reports (` + reportColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		rep.ID, rep.ProductID, rep.Reason, rep.Description, rep.EvidenceURL,
		rep.Status, rep.Justification, rep.CreatedAt, rep.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert report: %w", err)
	}
	return nil
}

// GetByID obtiene una denuncia.
func (r *ReportRepo) GetByID(id string) (*entity.ProductReport, error) {
	rep, err := scanReport(r.q.QueryRow(context.Background(),
		`SELECT `+reportColumns+` FROM product_reports WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get report: %w", err)
	}
	return rep, nil
}

// Update persiste estado y justificación.
func (r *ReportRepo) Update(rep *entity.ProductReport) error {
	cmd, err := r.q.Exec(context.Background(), `
		UPDATE product_reports
		SET status = $2, justification = $3, updated_at = $4
		WHERE id = $1`,
		rep.ID, rep.Status, rep.Justification, rep.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update report: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListAll lista todas las denuncias, más antiguas primero.
func (r *ReportRepo) ListAll() ([]*entity.ProductReport, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT `+reportColumns+` FROM product_reports ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	defer rows.Close()

	var out []*entity.ProductReport
	for rows.Next() {
		rep, err := scanReport(rows)
		if err != nil {
			return nil, fmt.Errorf("scan report: %w", err)
		}
		out = append(out, rep)
	}
	return out, rows.Err()
}

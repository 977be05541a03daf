package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

var _ repository.TaxRepository = (*TaxRepo)(nil)

// TaxRepo implementación sobre PostgreSQL (usable con pool o tx).
type TaxRepo struct {
	q Querier
}

// NewTaxRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTaxRepository(q Querier) *TaxRepo {
	return &TaxRepo{q: q}
}

// Create persiste un impuesto nuevo.
func (r *TaxRepo) Create(tax *entity.Tax) error {
	query := `
		INSERT INTO taxes (id, name, percentage, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		tax.ID, tax.Name, tax.Percentage, tax.Active, tax.CreatedAt, tax.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create tax: %w", err)
	}
	return nil
}

// GetByID obtiene un impuesto por ID. Devuelve (nil, nil) si no existe.
func (r *TaxRepo) GetByID(id string) (*entity.Tax, error) {
	query := `SELECT id, name, percentage, active, created_at, updated_at FROM taxes WHERE id = $1`
	var t entity.Tax
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&t.ID, &t.Name, &t.Percentage, &t.Active, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get tax: %w", err)
	}
	return &t, nil
}

// Update actualiza un impuesto.
func (r *TaxRepo) Update(tax *entity.Tax) error {
	query := `UPDATE taxes SET name = $2, percentage = $3, active = $4, updated_at = $5 WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		tax.ID, tax.Name, tax.Percentage, tax.Active, tax.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update tax: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un impuesto por ID.
func (r *TaxRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM taxes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete tax: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista impuestos.
func (r *TaxRepo) List(activeOnly bool) ([]*entity.Tax, error) {
	query := `SELECT id, name, percentage, active, created_at, updated_at FROM taxes`
	if activeOnly {
		query += ` WHERE active = true`
	}
	query += ` ORDER BY name`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list taxes: %w", err)
	}
	defer rows.Close()
	var list []*entity.Tax
	for rows.Next() {
		var t entity.Tax
		if err := rows.Scan(&t.ID, &t.Name, &t.Percentage, &t.Active, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan tax: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}

// InUse reporta si alguna variante referencia el impuesto.
func (r *TaxRepo) InUse(id string) (bool, error) {
	var inUse bool
	query := `SELECT EXISTS (SELECT 1 FROM product_variants WHERE tax_id = $1)`
	if err := r.q.QueryRow(context.Background(), query, id).Scan(&inUse); err != nil {
		return false, fmt.Errorf("tax in use: %w", err)
	}
	return inUse, nil
}

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

var _ repository.BrandRepository = (*BrandRepo)(nil)

// BrandRepo implementación sobre PostgreSQL (usable con pool o tx).
type BrandRepo struct {
	q Querier
}

// NewBrandRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBrandRepository(q Querier) *BrandRepo {
	return &BrandRepo{q: q}
}

// Create persiste una marca nueva.
func (r *BrandRepo) Create(brand *entity.Brand) error {
	query := `
		INSERT INTO brands (id, name, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		brand.ID, brand.Name, brand.Active, brand.CreatedAt, brand.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create brand: %w", err)
	}
	return nil
}

// GetByID obtiene una marca por ID. Devuelve (nil, nil) si no existe.
func (r *BrandRepo) GetByID(id string) (*entity.Brand, error) {
	query := `SELECT id, name, active, created_at, updated_at FROM brands WHERE id = $1`
	var b entity.Brand
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&b.ID, &b.Name, &b.Active, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get brand: %w", err)
	}
	return &b, nil
}

// Update actualiza una marca.
func (r *BrandRepo) Update(brand *entity.Brand) error {
	query := `UPDATE brands SET name = $2, active = $3, updated_at = $4 WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		brand.ID, brand.Name, brand.Active, brand.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update brand: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina una marca por ID.
func (r *BrandRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM brands WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete brand: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista marcas.
func (r *BrandRepo) List(activeOnly bool) ([]*entity.Brand, error) {
	query := `SELECT id, name, active, created_at, updated_at FROM brands`
	if activeOnly {
		query += ` WHERE active = true`
	}
	query += ` ORDER BY name`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list brands: %w", err)
	}
	defer rows.Close()
	var list []*entity.Brand
	for rows.Next() {
		var b entity.Brand
		if err := rows.Scan(&b.ID, &b.Name, &b.Active, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan brand: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}

// HasProducts reporta si la marca tiene productos asociados.
func (r *BrandRepo) HasProducts(id string) (bool, error) {
	var has bool
	query := `SELECT EXISTS (SELECT 1 FROM products WHERE brand_id = $1)`
	if err := r.q.QueryRow(context.Background(), query, id).Scan(&has); err != nil {
		return false, fmt.Errorf("brand has products: %w", err)
	}
	return has, nil
}

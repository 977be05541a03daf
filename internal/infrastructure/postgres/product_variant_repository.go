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

var _ repository.ProductVariantRepository = (*ProductVariantRepo)(nil)

// ProductVariantRepo implementación sobre PostgreSQL (usable con pool o tx).
type ProductVariantRepo struct {
	q Querier
}

// NewProductVariantRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductVariantRepository(q Querier) *ProductVariantRepo {
	return &ProductVariantRepo{q: q}
}

const variantColumns = "id, product_id, presentation, sku, barcode, price, sale_price, stock, min_stock, tax_id, created_at, updated_at"

// Create persiste una variante nueva. SKU y barcode tienen constraint único.
func (r *ProductVariantRepo) Create(variant *entity.ProductVariant) error {
	query := `
		INSERT INTO product_variants (` + variantColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		variant.ID, variant.ProductID, variant.Presentation, variant.SKU, variant.Barcode,
		variant.Price, variant.SalePrice, variant.Stock, variant.MinStock, variant.TaxID,
		variant.CreatedAt, variant.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create variant: %w", err)
	}
	return nil
}

// GetByID obtiene una variante por ID. Devuelve (nil, nil) si no existe.
func (r *ProductVariantRepo) GetByID(id string) (*entity.ProductVariant, error) {
	query := `SELECT ` + variantColumns + ` FROM product_variants WHERE id = $1`
	v, err := scanVariant(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get variant: %w", err)
	}
	return v, nil
}

// GetForUpdate obtiene la variante y bloquea la fila (SELECT FOR UPDATE).
func (r *ProductVariantRepo) GetForUpdate(id string) (*entity.ProductVariant, error) {
	query := `SELECT ` + variantColumns + ` FROM product_variants WHERE id = $1 FOR UPDATE`
	v, err := scanVariant(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get variant for update: %w", err)
	}
	return v, nil
}

// Update actualiza los campos editables. Stock no se toca por aquí.
func (r *ProductVariantRepo) Update(variant *entity.ProductVariant) error {
	query := `
		UPDATE product_variants
		SET presentation = $2, barcode = $3, price = $4, sale_price = $5, min_stock = $6, tax_id = $7, updated_at = $8
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		variant.ID, variant.Presentation, variant.Barcode,
		variant.Price, variant.SalePrice, variant.MinStock, variant.TaxID, variant.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update variant: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateStock escribe solo el contador de stock.
func (r *ProductVariantRepo) UpdateStock(id string, stock int64) error {
	query := `UPDATE product_variants SET stock = $2, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, stock)
	if err != nil {
		return fmt.Errorf("update variant stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina una variante por ID.
func (r *ProductVariantRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM product_variants WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete variant: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista variantes aplicando los filtros del catálogo.
func (r *ProductVariantRepo) List(filter repository.VariantFilter) ([]*entity.ProductVariant, error) {
	query := `SELECT ` + variantColumns + ` FROM product_variants WHERE 1=1`
	args := []any{}
	pos := 1
	if filter.ProductID != "" {
		query += fmt.Sprintf(" AND product_id = $%d", pos)
		args = append(args, filter.ProductID)
		pos++
	}
	if filter.LowStockOnly {
		query += " AND stock <= min_stock"
	}
	if filter.OutOfStockOnly {
		query += " AND stock = 0"
	}
	if filter.InStockOnly {
		query += " AND stock > 0"
	}
	if filter.OnSaleOnly {
		query += " AND sale_price IS NOT NULL"
	}
	if filter.Search != "" {
		query += fmt.Sprintf(" AND (presentation ILIKE $%d OR sku ILIKE $%d)", pos, pos)
		args = append(args, "%"+filter.Search+"%")
		pos++
	}
	query += fmt.Sprintf(" ORDER BY presentation LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list variants: %w", err)
	}
	defer rows.Close()
	var list []*entity.ProductVariant
	for rows.Next() {
		v, err := scanVariant(rows)
		if err != nil {
			return nil, fmt.Errorf("scan variant: %w", err)
		}
		list = append(list, v)
	}
	return list, rows.Err()
}

// HasSaleItems reporta si alguna línea de venta referencia la variante.
func (r *ProductVariantRepo) HasSaleItems(id string) (bool, error) {
	return r.exists(`SELECT EXISTS (SELECT 1 FROM sale_items WHERE item_kind = 'variant' AND item_id = $1)`, id)
}

// HasMovements reporta si algún movimiento del diario referencia la variante.
func (r *ProductVariantRepo) HasMovements(id string) (bool, error) {
	return r.exists(`SELECT EXISTS (SELECT 1 FROM inventory_movements WHERE item_kind = 'variant' AND item_id = $1)`, id)
}

func (r *ProductVariantRepo) exists(query, id string) (bool, error) {
	var has bool
	if err := r.q.QueryRow(context.Background(), query, id).Scan(&has); err != nil {
		return false, fmt.Errorf("variant exists check: %w", err)
	}
	return has, nil
}

func scanVariant(row pgx.Row) (*entity.ProductVariant, error) {
	var v entity.ProductVariant
	err := row.Scan(
		&v.ID, &v.ProductID, &v.Presentation, &v.SKU, &v.Barcode,
		&v.Price, &v.SalePrice, &v.Stock, &v.MinStock, &v.TaxID,
		&v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

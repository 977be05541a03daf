package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación sobre PostgreSQL (usable con pool o tx).
// Las ventas son inmutables: no hay UPDATE ni DELETE sobre las tablas.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste la cabecera de una venta.
func (r *SaleRepo) Create(sale *entity.Sale) error {
	query := `
		INSERT INTO sales (id, channel, user_id, subtotal, tax_total, total, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		sale.ID, sale.Channel, sale.UserID, sale.Subtotal, sale.TaxTotal, sale.Total, sale.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create sale: %w", err)
	}
	return nil
}

// CreateItems inserta las líneas de una venta en un solo batch.
func (r *SaleRepo) CreateItems(items []*entity.SaleItem) error {
	if len(items) == 0 {
		return nil
	}
	query := `INSERT INTO sale_items (id, sale_id, item_kind, item_id, quantity, price, subtotal) VALUES `
	args := make([]any, 0, len(items)*7)
	for i, it := range items {
		if i > 0 {
			query += ", "
		}
		base := i * 7
		query += fmt.Sprintf("($%d, $%d, $%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7)
		args = append(args, it.ID, it.SaleID, string(it.Item.Kind), it.Item.ID, it.Quantity, it.Price, it.Subtotal)
	}
	if _, err := r.q.Exec(context.Background(), query, args...); err != nil {
		return fmt.Errorf("create sale items: %w", err)
	}
	return nil
}

// GetByID obtiene la cabecera de una venta. Devuelve (nil, nil) si no existe.
func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	query := `SELECT id, channel, user_id, subtotal, tax_total, total, created_at FROM sales WHERE id = $1`
	s, err := scanSale(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return s, nil
}

// GetItems obtiene las líneas de una venta.
func (r *SaleRepo) GetItems(saleID string) ([]*entity.SaleItem, error) {
	query := `
		SELECT id, sale_id, item_kind, item_id, quantity, price, subtotal
		FROM sale_items WHERE sale_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, saleID)
	if err != nil {
		return nil, fmt.Errorf("get sale items: %w", err)
	}
	defer rows.Close()
	var items []*entity.SaleItem
	for rows.Next() {
		var it entity.SaleItem
		var kind string
		if err := rows.Scan(&it.ID, &it.SaleID, &kind, &it.Item.ID, &it.Quantity, &it.Price, &it.Subtotal); err != nil {
			return nil, fmt.Errorf("scan sale item: %w", err)
		}
		it.Item.Kind = entity.ItemKind(kind)
		items = append(items, &it)
	}
	return items, rows.Err()
}

// List lista ventas aplicando los filtros de consulta.
func (r *SaleRepo) List(filter repository.SaleFilter) ([]*entity.Sale, error) {
	query := `SELECT id, channel, user_id, subtotal, tax_total, total, created_at FROM sales WHERE 1=1`
	args := []any{}
	pos := 1
	if filter.Channel != "" {
		query += fmt.Sprintf(" AND channel = $%d", pos)
		args = append(args, filter.Channel)
		pos++
	}
	if filter.UserID != "" {
		query += fmt.Sprintf(" AND user_id = $%d", pos)
		args = append(args, filter.UserID)
		pos++
	}
	if filter.From != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", pos)
		args = append(args, *filter.From)
		pos++
	}
	if filter.To != nil {
		// Cota superior exclusiva: el rango es [from, to).
		query += fmt.Sprintf(" AND created_at < $%d", pos)
		args = append(args, *filter.To)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

func scanSale(row pgx.Row) (*entity.Sale, error) {
	var s entity.Sale
	err := row.Scan(&s.ID, &s.Channel, &s.UserID, &s.Subtotal, &s.TaxTotal, &s.Total, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

package memory

import (
	"sort"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

// ── Productos ─────────────────────────────────────────────────────────────────

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo productos en memoria.
type ProductRepo struct{ s *Store }

// NewProductRepository construye el adaptador.
func NewProductRepository(s *Store) *ProductRepo { return &ProductRepo{s: s} }

func (r *ProductRepo) Create(product *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[product.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.products[product.ID] = *product
	return nil
}

func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *ProductRepo) Update(product *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[product.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.products[product.ID] = *product
	return nil
}

func (r *ProductRepo) Delete(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.products, id)
	return nil
}

func (r *ProductRepo) List(filter repository.ProductFilter) ([]*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.Product
	for _, p := range r.s.products {
		p := p
		if filter.SaleMode != "" && p.SaleMode != filter.SaleMode {
			continue
		}
		if filter.CategoryID != "" && p.CategoryID != filter.CategoryID {
			continue
		}
		if filter.BrandID != "" && p.BrandID != filter.BrandID {
			continue
		}
		if filter.ActiveOnly && !p.Active {
			continue
		}
		if filter.Search != "" && !containsFold(p.Name, filter.Search) && !containsFold(p.Description, filter.Search) {
			continue
		}
		list = append(list, &p)
	}
	sortByName(list, func(p *entity.Product) string { return p.Name })
	return paginate(list, filter.Limit, filter.Offset), nil
}

func (r *ProductRepo) HasChildren(id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, v := range r.s.variants {
		if v.ProductID == id {
			return true, nil
		}
	}
	for _, l := range r.s.lots {
		if l.ProductID == id {
			return true, nil
		}
	}
	return false, nil
}

// ── Variantes ─────────────────────────────────────────────────────────────────

var _ repository.ProductVariantRepository = (*ProductVariantRepo)(nil)

// ProductVariantRepo variantes en memoria. GetForUpdate no bloquea nada:
// la exclusión la da el mutex global del store.
type ProductVariantRepo struct{ s *Store }

// NewProductVariantRepository construye el adaptador.
func NewProductVariantRepository(s *Store) *ProductVariantRepo { return &ProductVariantRepo{s: s} }

func (r *ProductVariantRepo) Create(variant *entity.ProductVariant) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, v := range r.s.variants {
		if v.SKU == variant.SKU {
			return domain.ErrDuplicate
		}
	}
	r.s.variants[variant.ID] = *variant
	return nil
}

func (r *ProductVariantRepo) GetByID(id string) (*entity.ProductVariant, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v, ok := r.s.variants[id]
	if !ok {
		return nil, nil
	}
	return &v, nil
}

func (r *ProductVariantRepo) GetForUpdate(id string) (*entity.ProductVariant, error) {
	return r.GetByID(id)
}

func (r *ProductVariantRepo) Update(variant *entity.ProductVariant) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.variants[variant.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.variants[variant.ID] = *variant
	return nil
}

func (r *ProductVariantRepo) UpdateStock(id string, stock int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v, ok := r.s.variants[id]
	if !ok {
		return domain.ErrNotFound
	}
	v.Stock = stock
	r.s.variants[id] = v
	return nil
}

func (r *ProductVariantRepo) Delete(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.variants[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.variants, id)
	return nil
}

func (r *ProductVariantRepo) List(filter repository.VariantFilter) ([]*entity.ProductVariant, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.ProductVariant
	for _, v := range r.s.variants {
		v := v
		if filter.ProductID != "" && v.ProductID != filter.ProductID {
			continue
		}
		if filter.LowStockOnly && v.Stock > v.MinStock {
			continue
		}
		if filter.OutOfStockOnly && v.Stock != 0 {
			continue
		}
		if filter.InStockOnly && v.Stock <= 0 {
			continue
		}
		if filter.OnSaleOnly && v.SalePrice == nil {
			continue
		}
		if filter.Search != "" && !containsFold(v.Presentation, filter.Search) && !containsFold(v.SKU, filter.Search) {
			continue
		}
		list = append(list, &v)
	}
	sortByName(list, func(v *entity.ProductVariant) string { return v.Presentation })
	return paginate(list, filter.Limit, filter.Offset), nil
}

func (r *ProductVariantRepo) HasSaleItems(id string) (bool, error) {
	return r.s.hasSaleItem(entity.ItemRef{Kind: entity.ItemKindVariant, ID: id}), nil
}

func (r *ProductVariantRepo) HasMovements(id string) (bool, error) {
	return r.s.hasMovement(entity.ItemRef{Kind: entity.ItemKindVariant, ID: id}), nil
}

// ── Lotes de peso ─────────────────────────────────────────────────────────────

var _ repository.WeightLotRepository = (*WeightLotRepo)(nil)

// WeightLotRepo lotes en memoria.
type WeightLotRepo struct{ s *Store }

// NewWeightLotRepository construye el adaptador.
func NewWeightLotRepository(s *Store) *WeightLotRepo { return &WeightLotRepo{s: s} }

func (r *WeightLotRepo) Create(lot *entity.WeightLot) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.lots[lot.ID] = *lot
	return nil
}

func (r *WeightLotRepo) GetByID(id string) (*entity.WeightLot, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	l, ok := r.s.lots[id]
	if !ok {
		return nil, nil
	}
	return &l, nil
}

func (r *WeightLotRepo) GetForUpdate(id string) (*entity.WeightLot, error) {
	return r.GetByID(id)
}

func (r *WeightLotRepo) Update(lot *entity.WeightLot) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.lots[lot.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.lots[lot.ID] = *lot
	return nil
}

func (r *WeightLotRepo) UpdateWeights(id string, initial, available decimal.Decimal, active bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	l, ok := r.s.lots[id]
	if !ok {
		return domain.ErrNotFound
	}
	l.InitialWeight = initial
	l.AvailableWeight = available
	l.Active = active
	r.s.lots[id] = l
	return nil
}

func (r *WeightLotRepo) Delete(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.lots[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.lots, id)
	return nil
}

func (r *WeightLotRepo) List(filter repository.LotFilter) ([]*entity.WeightLot, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.WeightLot
	for _, l := range r.s.lots {
		l := l
		if filter.ProductID != "" && l.ProductID != filter.ProductID {
			continue
		}
		if filter.ActiveOnly && !l.Active {
			continue
		}
		if filter.AvailableOnly && !l.AvailableWeight.GreaterThan(decimal.Zero) {
			continue
		}
		if filter.ExpiredOnly && !l.IsExpired(filter.Now) {
			continue
		}
		if filter.ExpiringSoon {
			if l.ExpiresAt == nil || l.ExpiresAt.Before(filter.Now) || !l.ExpiresAt.Before(filter.Now.AddDate(0, 0, 7)) {
				continue
			}
		}
		list = append(list, &l)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return paginate(list, filter.Limit, filter.Offset), nil
}

func (r *WeightLotRepo) HasSaleItems(id string) (bool, error) {
	return r.s.hasSaleItem(entity.ItemRef{Kind: entity.ItemKindWeightLot, ID: id}), nil
}

func (r *WeightLotRepo) HasMovements(id string) (bool, error) {
	return r.s.hasMovement(entity.ItemRef{Kind: entity.ItemKindWeightLot, ID: id}), nil
}

func (s *Store) hasSaleItem(ref entity.ItemRef) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, it := range s.saleItems {
		if it.Item == ref {
			return true
		}
	}
	return false
}

func (s *Store) hasMovement(ref entity.ItemRef) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.movements {
		if m.Item == ref {
			return true
		}
	}
	return false
}

// ── Impuestos ─────────────────────────────────────────────────────────────────

var _ repository.TaxRepository = (*TaxRepo)(nil)

// TaxRepo impuestos en memoria.
type TaxRepo struct{ s *Store }

// NewTaxRepository construye el adaptador.
func NewTaxRepository(s *Store) *TaxRepo { return &TaxRepo{s: s} }

func (r *TaxRepo) Create(tax *entity.Tax) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.taxes[tax.ID] = *tax
	return nil
}

func (r *TaxRepo) GetByID(id string) (*entity.Tax, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.taxes[id]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func (r *TaxRepo) Update(tax *entity.Tax) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.taxes[tax.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.taxes[tax.ID] = *tax
	return nil
}

func (r *TaxRepo) Delete(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.taxes[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.taxes, id)
	return nil
}

func (r *TaxRepo) List(activeOnly bool) ([]*entity.Tax, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.Tax
	for _, t := range r.s.taxes {
		t := t
		if activeOnly && !t.Active {
			continue
		}
		list = append(list, &t)
	}
	sortByName(list, func(t *entity.Tax) string { return t.Name })
	return list, nil
}

func (r *TaxRepo) InUse(id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, v := range r.s.variants {
		if v.TaxID == id {
			return true, nil
		}
	}
	return false, nil
}

// ── Diario de movimientos ─────────────────────────────────────────────────────

var _ repository.InventoryMovementRepository = (*InventoryMovementRepo)(nil)

// InventoryMovementRepo diario en memoria (solo inserción).
type InventoryMovementRepo struct{ s *Store }

// NewInventoryMovementRepository construye el adaptador.
func NewInventoryMovementRepository(s *Store) *InventoryMovementRepo {
	return &InventoryMovementRepo{s: s}
}

func (r *InventoryMovementRepo) Create(movement *entity.InventoryMovement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.movements = append(r.s.movements, *movement)
	return nil
}

func (r *InventoryMovementRepo) GetByID(id string) (*entity.InventoryMovement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, m := range r.s.movements {
		if m.ID == id {
			m := m
			return &m, nil
		}
	}
	return nil, nil
}

func (r *InventoryMovementRepo) List(filter repository.MovementFilter) ([]*entity.InventoryMovement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.InventoryMovement
	for _, m := range r.s.movements {
		m := m
		if filter.Type != "" && m.Type != filter.Type {
			continue
		}
		if filter.UserID != "" && m.UserID != filter.UserID {
			continue
		}
		if filter.Item != nil && m.Item != *filter.Item {
			continue
		}
		if filter.From != nil && m.CreatedAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && !m.CreatedAt.Before(*filter.To) {
			continue
		}
		list = append(list, &m)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return paginate(list, filter.Limit, filter.Offset), nil
}

// ── Ventas ────────────────────────────────────────────────────────────────────

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo ventas en memoria (inmutables).
type SaleRepo struct{ s *Store }

// NewSaleRepository construye el adaptador.
func NewSaleRepository(s *Store) *SaleRepo { return &SaleRepo{s: s} }

func (r *SaleRepo) Create(sale *entity.Sale) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.sales[sale.ID] = *sale
	return nil
}

func (r *SaleRepo) CreateItems(items []*entity.SaleItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, it := range items {
		r.s.saleItems = append(r.s.saleItems, *it)
	}
	return nil
}

func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	s, ok := r.s.sales[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (r *SaleRepo) GetItems(saleID string) ([]*entity.SaleItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var items []*entity.SaleItem
	for _, it := range r.s.saleItems {
		if it.SaleID == saleID {
			it := it
			items = append(items, &it)
		}
	}
	return items, nil
}

func (r *SaleRepo) List(filter repository.SaleFilter) ([]*entity.Sale, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.Sale
	for _, s := range r.s.sales {
		s := s
		if filter.Channel != "" && s.Channel != filter.Channel {
			continue
		}
		if filter.UserID != "" && s.UserID != filter.UserID {
			continue
		}
		if filter.From != nil && s.CreatedAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && !s.CreatedAt.Before(*filter.To) {
			continue
		}
		list = append(list, &s)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return paginate(list, filter.Limit, filter.Offset), nil
}

// ── Categorías y marcas ───────────────────────────────────────────────────────

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo categorías en memoria.
type CategoryRepo struct{ s *Store }

// NewCategoryRepository construye el adaptador.
func NewCategoryRepository(s *Store) *CategoryRepo { return &CategoryRepo{s: s} }

func (r *CategoryRepo) Create(category *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.categories[category.ID] = *category
	return nil
}

func (r *CategoryRepo) GetByID(id string) (*entity.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.categories[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *CategoryRepo) Update(category *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.categories[category.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.categories[category.ID] = *category
	return nil
}

func (r *CategoryRepo) Delete(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.categories[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.categories, id)
	return nil
}

func (r *CategoryRepo) List(activeOnly bool) ([]*entity.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.Category
	for _, c := range r.s.categories {
		c := c
		if activeOnly && !c.Active {
			continue
		}
		list = append(list, &c)
	}
	sortByName(list, func(c *entity.Category) string { return c.Name })
	return list, nil
}

func (r *CategoryRepo) HasProducts(id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.products {
		if p.CategoryID == id {
			return true, nil
		}
	}
	return false, nil
}

var _ repository.BrandRepository = (*BrandRepo)(nil)

// BrandRepo marcas en memoria.
type BrandRepo struct{ s *Store }

// NewBrandRepository construye el adaptador.
func NewBrandRepository(s *Store) *BrandRepo { return &BrandRepo{s: s} }

func (r *BrandRepo) Create(brand *entity.Brand) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.brands[brand.ID] = *brand
	return nil
}

func (r *BrandRepo) GetByID(id string) (*entity.Brand, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.brands[id]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (r *BrandRepo) Update(brand *entity.Brand) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.brands[brand.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.brands[brand.ID] = *brand
	return nil
}

func (r *BrandRepo) Delete(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.brands[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.brands, id)
	return nil
}

func (r *BrandRepo) List(activeOnly bool) ([]*entity.Brand, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.Brand
	for _, b := range r.s.brands {
		b := b
		if activeOnly && !b.Active {
			continue
		}
		list = append(list, &b)
	}
	sortByName(list, func(b *entity.Brand) string { return b.Name })
	return list, nil
}

func (r *BrandRepo) HasProducts(id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.products {
		if p.BrandID == id {
			return true, nil
		}
	}
	return false, nil
}

// ── Usuarios ──────────────────────────────────────────────────────────────────

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo usuarios en memoria.
type UserRepo struct{ s *Store }

// NewUserRepository construye el adaptador.
func NewUserRepository(s *Store) *UserRepo { return &UserRepo{s: s} }

func (r *UserRepo) Create(user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == user.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	r.s.users[user.ID] = *user
	return nil
}

func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *UserRepo) FindByEmail(email string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) Update(user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[user.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.users[user.ID] = *user
	return nil
}

func (r *UserRepo) List(limit, offset int) ([]*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.User
	for _, u := range r.s.users {
		u := u
		list = append(list, &u)
	}
	sortByName(list, func(u *entity.User) string { return u.Name })
	return paginate(list, limit, offset), nil
}

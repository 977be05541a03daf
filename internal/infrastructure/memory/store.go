// Package memory implementa los puertos de persistencia sobre mapas en
// memoria. Se usa en tests de casos de uso y como backend efímero de
// desarrollo; no es apto para acceso concurrente de escritura masiva.
package memory

import (
	"sort"
	"strings"
	"sync"

	"github.com/jhoicas/pos-api/internal/domain/entity"
)

// Store contenedor de todas las tablas en memoria.
type Store struct {
	mu sync.Mutex

	products   map[string]entity.Product
	variants   map[string]entity.ProductVariant
	lots       map[string]entity.WeightLot
	taxes      map[string]entity.Tax
	categories map[string]entity.Category
	brands     map[string]entity.Brand
	users      map[string]entity.User
	movements  []entity.InventoryMovement
	sales      map[string]entity.Sale
	saleItems  []entity.SaleItem
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{
		products:   map[string]entity.Product{},
		variants:   map[string]entity.ProductVariant{},
		lots:       map[string]entity.WeightLot{},
		taxes:      map[string]entity.Tax{},
		categories: map[string]entity.Category{},
		brands:     map[string]entity.Brand{},
		users:      map[string]entity.User{},
		sales:      map[string]entity.Sale{},
	}
}

// snapshot copia el estado completo para poder restaurarlo en un rollback.
func (s *Store) snapshot() *Store {
	c := NewStore()
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.variants {
		c.variants[k] = v
	}
	for k, v := range s.lots {
		c.lots[k] = v
	}
	for k, v := range s.taxes {
		c.taxes[k] = v
	}
	for k, v := range s.categories {
		c.categories[k] = v
	}
	for k, v := range s.brands {
		c.brands[k] = v
	}
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.sales {
		c.sales[k] = v
	}
	c.movements = append([]entity.InventoryMovement(nil), s.movements...)
	c.saleItems = append([]entity.SaleItem(nil), s.saleItems...)
	return c
}

// restore vuelca el estado de una copia sobre el store.
func (s *Store) restore(c *Store) {
	s.products = c.products
	s.variants = c.variants
	s.lots = c.lots
	s.taxes = c.taxes
	s.categories = c.categories
	s.brands = c.brands
	s.users = c.users
	s.sales = c.sales
	s.movements = c.movements
	s.saleItems = c.saleItems
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

// paginate aplica limit/offset sobre un slice ya ordenado.
func paginate[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return nil
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}

func sortByName[T any](list []T, name func(T) string) {
	sort.Slice(list, func(i, j int) bool { return name(list[i]) < name(list[j]) })
}

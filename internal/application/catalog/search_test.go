package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/pos-api/internal/application/catalog"
)

// La búsqueda del catálogo ignora mayúsculas, espacios y tildes:
// "Limón" y "limon" deben encontrar lo mismo.
func TestNormalizeSearch(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Limón", "limon"},
		{"  AZÚCAR  ", "azucar"},
		{"pollo", "pollo"},
		{"Ñame", "name"}, // la virgulilla también es marca diacrítica
		{"CAFÉ molido", "cafe molido"},
		{"", ""},
		{"   ", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, catalog.NormalizeSearch(tc.in), "entrada %q", tc.in)
	}
}

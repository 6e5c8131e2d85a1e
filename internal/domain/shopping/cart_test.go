package shopping

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/storefront/core/internal/domain/catalog"
	"github.com/storefront/core/internal/domain/identity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProduct(id string, price, bulk int64) catalog.Product {
	return catalog.Product{
		ID:        id,
		Name:      "Product " + id,
		Price:     decimal.NewFromInt(price),
		BulkPrice: decimal.NewFromInt(bulk),
	}
}

func TestCart_AddMergesByProductID(t *testing.T) {
	c := NewCart()
	p := testProduct("p-1", 10, 8)

	require.NoError(t, c.Add(p, 1))
	require.NoError(t, c.Add(p, 3))

	require.Equal(t, 1, c.Len())
	assert.Equal(t, 4, c.Lines()[0].Quantity)
	assert.Equal(t, 4, c.Count())
}

func TestCart_AddRejectsNonPositiveQuantity(t *testing.T) {
	c := NewCart()
	assert.Error(t, c.Add(testProduct("p-1", 10, 8), 0))
	assert.Error(t, c.Add(testProduct("p-1", 10, 8), -2))
	assert.Zero(t, c.Len())
}

func TestCart_SetQuantity(t *testing.T) {
	c := NewCart()
	require.NoError(t, c.Add(testProduct("p-1", 10, 8), 2))

	assert.True(t, c.SetQuantity("p-1", 6))
	assert.Equal(t, 6, c.Count())

	// Non-positive removes the line
	assert.True(t, c.SetQuantity("p-1", 0))
	assert.Zero(t, c.Len())

	// Unknown product: no line is created
	assert.False(t, c.SetQuantity("ghost", 3))
	assert.Zero(t, c.Len())
}

func TestCart_RemoveAbsentIsNoop(t *testing.T) {
	c := NewCart()
	require.NoError(t, c.Add(testProduct("p-1", 10, 8), 1))

	assert.False(t, c.Remove("ghost"))
	assert.Equal(t, 1, c.Len())
	assert.True(t, c.Remove("p-1"))
	assert.Zero(t, c.Len())
}

func TestCart_TotalByRole(t *testing.T) {
	c := NewCart()
	require.NoError(t, c.Add(testProduct("p-1", 10, 8), 2))
	require.NoError(t, c.Add(testProduct("p-2", 5, 4), 3))

	tests := []struct {
		role identity.Role
		want int64
	}{
		{identity.RoleConsumer, 35},
		{identity.RoleBusiness, 23},
		{identity.RoleDropshipper, 35},
		{identity.RoleSupplier, 35},
	}

	for _, tt := range tests {
		t.Run(tt.role.String(), func(t *testing.T) {
			assert.True(t, c.Total(tt.role).Equal(decimal.NewFromInt(tt.want)))
		})
	}
}

func TestCart_EmptyTotalIsZero(t *testing.T) {
	c := NewCart()
	assert.True(t, c.Total(identity.RoleConsumer).IsZero())
	assert.Zero(t, c.Count())
}

func TestCart_LinesReturnsCopy(t *testing.T) {
	c := NewCart()
	require.NoError(t, c.Add(testProduct("p-1", 10, 8), 2))

	lines := c.Lines()
	lines[0].Quantity = 99
	assert.Equal(t, 2, c.Lines()[0].Quantity)
}

func TestNewCartFromLines_RepairsInvariants(t *testing.T) {
	p := testProduct("p-1", 10, 8)
	c := NewCartFromLines([]Line{
		{Product: p, Quantity: 2},
		{Product: p, Quantity: 3},
		{Product: testProduct("p-2", 5, 4), Quantity: 0},
	})

	require.Equal(t, 1, c.Len())
	assert.Equal(t, 5, c.Count())
}

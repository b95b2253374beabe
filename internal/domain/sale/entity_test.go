package sale

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hugohenrick/minimercado-pos/internal/domain/customer"
)

func TestNewSale(t *testing.T) {
	c := &customer.Customer{ID: 7, Name: "Juan"}
	s := NewSale(c)

	assert.Equal(t, 7, s.CustomerID)
	assert.Same(t, c, s.Customer)
	assert.False(t, s.CreatedAt.IsZero())
	assert.Empty(t, s.Lines)
}

func TestNewSaleSemCliente(t *testing.T) {
	s := NewSale(nil)
	assert.Zero(t, s.CustomerID)
	assert.Nil(t, s.Customer)
}

func TestSetCustomer(t *testing.T) {
	s := NewSale(&customer.Customer{ID: 1})
	c := &customer.Customer{ID: 2}

	s.SetCustomer(c)
	assert.Equal(t, 2, s.CustomerID)
	assert.Same(t, c, s.Customer)

	s.SetCustomer(nil)
	assert.Zero(t, s.CustomerID)
	assert.Nil(t, s.Customer)
}

func TestAddLinePreservaOrdemDeInsercao(t *testing.T) {
	s := NewSale(nil)
	for i := 1; i <= 3; i++ {
		s.AddLine(&Line{ID: i})
	}

	require.Len(t, s.Lines, 3)
	for i, l := range s.Lines {
		assert.Equal(t, i+1, l.ID)
	}
}

func TestRemoveLine(t *testing.T) {
	s := NewSale(nil)
	s.AddLine(&Line{ID: 1})
	s.AddLine(&Line{ID: 2})
	s.AddLine(&Line{ID: 3})

	removed := s.RemoveLine(2)
	require.NotNil(t, removed)
	assert.Equal(t, 2, removed.ID)

	require.Len(t, s.Lines, 2)
	assert.Equal(t, 1, s.Lines[0].ID)
	assert.Equal(t, 3, s.Lines[1].ID)
}

func TestRemoveLineInexistente(t *testing.T) {
	s := NewSale(nil)
	s.AddLine(&Line{ID: 1})

	assert.Nil(t, s.RemoveLine(99))
	assert.Len(t, s.Lines, 1)
}

func TestFindLine(t *testing.T) {
	s := NewSale(nil)
	l := &Line{ID: 5}
	s.AddLine(l)

	assert.Same(t, l, s.FindLine(5))
	assert.Nil(t, s.FindLine(6))
}

func TestEqual(t *testing.T) {
	a := &Sale{ID: 1}
	b := &Sale{ID: 1, Total: 99}
	c := &Sale{ID: 2}

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(nil))
}

package customer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCustomer(t *testing.T) {
	c, err := NewCustomer("Juan", "Pérez", "CC-123", "300123", "juan@mail.com", "Calle 1")
	require.NoError(t, err)

	assert.Zero(t, c.ID)
	assert.Equal(t, "Juan", c.Name)
	assert.Equal(t, "Pérez", c.Surname)
}

func TestNewCustomerNomeVazio(t *testing.T) {
	_, err := NewCustomer("", "", "", "", "", "")
	assert.ErrorIs(t, err, ErrEmptyName)
}

func TestEqual(t *testing.T) {
	a := &Customer{ID: 1, Name: "Juan"}
	b := &Customer{ID: 1, Name: "Outro"}

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(&Customer{ID: 2}))
	assert.False(t, a.Equal(nil))
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Juan Pérez", (&Customer{Name: "Juan", Surname: "Pérez"}).DisplayName())
	assert.Equal(t, "Juan", (&Customer{Name: "Juan"}).DisplayName())
}

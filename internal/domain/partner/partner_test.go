package partner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMember(t *testing.T) {
	member, err := NewMember(" Siti ", "0812", "Jl. Melati 3")
	require.NoError(t, err)
	assert.Equal(t, "Siti", member.Name)
	assert.True(t, member.Active)

	_, err = NewMember("", "", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "anggota")
}

func TestMember_UpdateContact(t *testing.T) {
	member, _ := NewMember("Siti", "0812", "")
	require.NoError(t, member.UpdateContact("Siti Aminah", "0813", "Jl. Mawar"))
	assert.Equal(t, "Siti Aminah", member.Name)
	assert.Equal(t, "0813", member.Phone)

	member.Deactivate()
	assert.False(t, member.Active)
}

func TestSupplier_Reactivate(t *testing.T) {
	supplier, err := NewSupplier("CV Tani Makmur", "021", "Bogor")
	require.NoError(t, err)

	assert.ErrorIs(t, supplier.Reactivate("022", "Depok"), ErrSupplierExists)

	supplier.Deactivate()
	require.NoError(t, supplier.Reactivate("022", "Depok"))
	assert.True(t, supplier.Active)
	assert.Equal(t, "022", supplier.Phone)
	assert.Equal(t, "Depok", supplier.Address)
}

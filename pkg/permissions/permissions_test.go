package permissions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlattenIsPreorderAndStable(t *testing.T) {
	want := []string{
		Root,
		UserManage, UserCreate, UserRead, UserUpdate, UserDelete,
		RoleManage, RoleCreate, RoleRead, RoleUpdate, RoleAssign, RoleRevoke, RoleDelete,
	}

	first := Flatten()
	second := Flatten()

	assert.Equal(t, want, first)
	assert.Equal(t, first, second)
}

func TestExists(t *testing.T) {
	assert.True(t, Exists(UserRead))
	assert.True(t, Exists(Root))
	assert.False(t, Exists("bogus:name"))
	assert.False(t, Exists(""))
}

func TestTreeIsDetachedCopy(t *testing.T) {
	tree := Tree()
	require.NotEmpty(t, tree.Children)

	tree.Name = "mutated"
	tree.Children[0].Name = "mutated:child"
	tree.Children = nil

	again := Tree()
	assert.Equal(t, Root, again.Name)
	assert.Equal(t, UserManage, again.Children[0].Name)
	assert.Equal(t, Flatten()[0], Root)
}

func TestFlattenReturnsFreshSlice(t *testing.T) {
	first := Flatten()
	first[0] = "clobbered"
	assert.Equal(t, Root, Flatten()[0])
}

package symbol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable_Shadowing(t *testing.T) {
	table := NewTable[string]()
	assert.Equal(t, 1, table.ScopeLevel())

	table.OpenScope()
	require.NoError(t, table.Register("x", "A", nil))

	table.OpenScope()
	require.NoError(t, table.Register("x", "B", nil))

	got, ok := table.Fetch("x")
	require.True(t, ok)
	assert.Equal(t, "B", got)

	table.CloseScope()
	got, ok = table.Fetch("x")
	require.True(t, ok)
	assert.Equal(t, "A", got)

	table.CloseScope()
	_, ok = table.Fetch("x")
	assert.False(t, ok)
	assert.Equal(t, 1, table.ScopeLevel())
}

func TestTable_OpenCloseBalance(t *testing.T) {
	table := NewTable[int]()
	require.NoError(t, table.Register("global", 42, nil))

	for i := 0; i < 5; i++ {
		table.OpenScope()
		require.NoError(t, table.Register("tmp", i, nil))
	}
	assert.Equal(t, 6, table.ScopeLevel())

	for i := 0; i < 5; i++ {
		table.CloseScope()
	}
	assert.Equal(t, 1, table.ScopeLevel())

	_, ok := table.Fetch("tmp")
	assert.False(t, ok)

	got, ok := table.Fetch("global")
	require.True(t, ok)
	assert.Equal(t, 42, got)
}

func TestTable_RedeclareSameScope(t *testing.T) {
	table := NewTable[string]()
	require.NoError(t, table.Register("x", "A", nil))

	err := table.Register("x", "B", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already declared")

	got, _ := table.Fetch("x")
	assert.Equal(t, "A", got)
}

func TestTable_OverrideCallback(t *testing.T) {
	table := NewTable[string]()
	require.NoError(t, table.Register("x", "A", nil))

	// Callback approves: binding is replaced.
	err := table.Register("x", "B", func(existing string) bool {
		assert.Equal(t, "A", existing)
		return true
	})
	require.NoError(t, err)
	got, _ := table.Fetch("x")
	assert.Equal(t, "B", got)

	// Callback refuses: registration fails.
	err = table.Register("x", "C", func(string) bool { return false })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already declared")
	got, _ = table.Fetch("x")
	assert.Equal(t, "B", got)
}

func TestTable_EmptyIdentIgnored(t *testing.T) {
	table := NewTable[string]()
	require.NoError(t, table.Register("", "A", nil))
	_, ok := table.Fetch("")
	assert.False(t, ok)
}

func TestTable_RegisterWithoutScopePanics(t *testing.T) {
	table := NewTable[string]()
	table.CloseScope()

	assert.Panics(t, func() {
		_ = table.Register("x", "A", nil)
	})
}

func TestTable_CloseWithoutScopeIsNoop(t *testing.T) {
	table := NewTable[string]()
	table.CloseScope()
	table.CloseScope() // must not panic
	assert.Equal(t, 0, table.ScopeLevel())
}

func TestTable_TeardownOrderStable(t *testing.T) {
	table := NewTable[int]()
	table.OpenScope()

	// Register three identifiers in the inner scope.
	require.NoError(t, table.Register("a", 1, nil))
	require.NoError(t, table.Register("b", 2, nil))
	require.NoError(t, table.Register("c", 3, nil))
	table.CloseScope()

	for _, ident := range []string{"a", "b", "c"} {
		_, ok := table.Fetch(ident)
		assert.False(t, ok, "identifier %q must be gone", ident)
	}
}

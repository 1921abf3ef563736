package environ

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefine(t *testing.T) {
	env := Empty[int]()
	require.NoError(t, env.Define("+", 400))
	require.NoError(t, env.Define("*", 500))

	err := env.Define("+", 1)
	assert.ErrorIs(t, err, ErrDefined)

	v, ok := env.Resolve("+")
	assert.True(t, ok)
	assert.Equal(t, 400, v)

	_, ok = env.Resolve("-")
	assert.False(t, ok)
}

func TestEnclosed(t *testing.T) {
	parent := Empty[string]()
	require.NoError(t, parent.Define("and", "logical"))
	require.NoError(t, parent.Define("or", "logical"))

	child := Enclosed(parent)
	require.NoError(t, child.Define("or", "shadowed"))
	require.NoError(t, child.Define("xor", "bitwise"))

	v, ok := child.Resolve("and")
	assert.True(t, ok)
	assert.Equal(t, "logical", v)

	v, _ = child.Resolve("or")
	assert.Equal(t, "shadowed", v)

	v, _ = parent.Resolve("or")
	assert.Equal(t, "logical", v, "parent must not see definitions of its child")

	_, ok = parent.Resolve("xor")
	assert.False(t, ok)

	assert.Equal(t, []string{"and", "or", "xor"}, child.Names())
	assert.Equal(t, 3, child.Len())
	assert.Equal(t, 2, parent.Len())
	assert.Same(t, parent, child.Parent())
}

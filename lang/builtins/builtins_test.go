package builtins_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cbellis/pyrint/lang/builtins"
)

func TestIsBuiltin(t *testing.T) {
	require.True(t, builtins.IsBuiltin("print"))
	require.True(t, builtins.IsBuiltin("None"))
	require.True(t, builtins.IsBuiltin("ValueError"))
	require.False(t, builtins.IsBuiltin("frobnicate"))
	require.False(t, builtins.IsBuiltin(""))
}

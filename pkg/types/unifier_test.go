package types_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lispy.dev/compiler/pkg/lispyerr"
	"lispy.dev/compiler/pkg/types"
)

func TestUnifyPrimitivesSucceedWhenEqual(t *testing.T) {
	u := types.NewUnifier()
	assert.NoError(t, u.Unify(types.Int{}, types.Int{}))
	assert.NoError(t, u.Unify(types.Bool{}, types.Bool{}))
}

func TestUnifyPrimitivesFailWhenDifferent(t *testing.T) {
	u := types.NewUnifier()
	err := u.Unify(types.Int{}, types.Float{})
	require.Error(t, err)
	assert.True(t, lispyerr.Is(lispyerr.KindUnification, err))
}

func TestUnifyBindsUnknownToConcreteType(t *testing.T) {
	u := types.NewUnifier()
	x := types.NewUnknown("x")

	require.NoError(t, u.Unify(x, types.Int{}))
	assert.True(t, types.Equal(u.Resolve(x), types.Int{}))
}

func TestUnifyBindsUnknownEitherOrder(t *testing.T) {
	u := types.NewUnifier()
	x := types.NewUnknown("x")

	require.NoError(t, u.Unify(types.Float{}, x))
	assert.True(t, types.Equal(u.Resolve(x), types.Float{}))
}

func TestUnifyTwoUnknownsLinksThemTogether(t *testing.T) {
	u := types.NewUnifier()
	x := types.NewUnknown("x")
	y := types.NewUnknown("y")

	require.NoError(t, u.Unify(x, y))
	require.NoError(t, u.Unify(y, types.Bool{}))

	assert.True(t, types.Equal(u.Resolve(x), types.Bool{}))
	assert.True(t, types.Equal(u.Resolve(y), types.Bool{}))
}

func TestUnifyListRecursesIntoElementType(t *testing.T) {
	u := types.NewUnifier()
	x := types.NewUnknown("elem")
	left := &types.List{Element: x}
	right := &types.List{Element: types.Int{}}

	require.NoError(t, u.Unify(left, right))
	assert.True(t, types.Equal(u.Resolve(x), types.Int{}))
}

func TestUnifyListFailsOnElementMismatch(t *testing.T) {
	u := types.NewUnifier()
	left := &types.List{Element: types.Int{}}
	right := &types.List{Element: types.Bool{}}

	err := u.Unify(left, right)
	require.Error(t, err)
	assert.True(t, lispyerr.Is(lispyerr.KindUnification, err))
}

func TestUnifyFunctionUnifiesReturnAndParams(t *testing.T) {
	u := types.NewUnifier()
	ret := types.NewUnknown("ret")
	p0 := types.NewUnknown("p0")

	left := &types.Function{Params: []types.Type{p0, types.Bool{}}, Return: ret}
	right := &types.Function{Params: []types.Type{types.Int{}, types.Bool{}}, Return: types.Float{}}

	require.NoError(t, u.Unify(left, right))
	assert.True(t, types.Equal(u.Resolve(p0), types.Int{}))
	assert.True(t, types.Equal(u.Resolve(ret), types.Float{}))
}

func TestUnifyFunctionFailsOnArityMismatch(t *testing.T) {
	u := types.NewUnifier()
	left := &types.Function{Params: []types.Type{types.Int{}}, Return: types.Bool{}}
	right := &types.Function{Params: []types.Type{types.Int{}, types.Int{}}, Return: types.Bool{}}

	err := u.Unify(left, right)
	require.Error(t, err)
	assert.True(t, lispyerr.Is(lispyerr.KindUnification, err))
}

func TestUnifyOccursCheckRejectsCyclicList(t *testing.T) {
	u := types.NewUnifier()
	x := types.NewUnknown("x")
	cyclic := &types.List{Element: x}

	err := u.Unify(x, cyclic)
	require.Error(t, err)
	assert.True(t, lispyerr.Is(lispyerr.KindCyclicType, err))
}

func TestUnifyOccursCheckRejectsCyclicFunction(t *testing.T) {
	u := types.NewUnifier()
	x := types.NewUnknown("x")
	cyclic := &types.Function{Params: []types.Type{types.Int{}}, Return: x}

	err := u.Unify(x, cyclic)
	require.Error(t, err)
	assert.True(t, lispyerr.Is(lispyerr.KindCyclicType, err))
}

func TestUnifyIsIdempotentForAlreadyUnifiedTypes(t *testing.T) {
	u := types.NewUnifier()
	x := types.NewUnknown("x")
	require.NoError(t, u.Unify(x, types.Int{}))
	require.NoError(t, u.Unify(x, types.Int{}))
}

func TestResolveTransitivelyResolvesNestedUnknowns(t *testing.T) {
	u := types.NewUnifier()
	inner := types.NewUnknown("inner")
	outer := &types.Function{Params: []types.Type{inner}, Return: types.Bool{}}

	require.NoError(t, u.Unify(inner, &types.List{Element: types.Int{}}))

	resolved := u.Resolve(outer).(*types.Function)
	assert.True(t, types.Equal(resolved.Params[0], &types.List{Element: types.Int{}}))
}

func TestTwoFreshUnknownsAreNeverEqual(t *testing.T) {
	a := types.NewUnknown("a")
	b := types.NewUnknown("b")
	assert.False(t, types.Equal(a, b))
}

package varctx

import (
	"testing"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScalarAndVectorLookup(t *testing.T) {
	t.Parallel()

	ctx := New()
	ctx.SetScalar("oc20_energy_coef", 2.0)
	ctx.SetVector("element_refs.omc_elem_refs", []float64{1.25, -0.7})

	v, ok := ctx.Scalar("oc20_energy_coef")
	require.True(t, ok)
	assert.Equal(t, 2.0, v)

	_, ok = ctx.Scalar("missing")
	assert.False(t, ok)

	vec, ok := ctx.Vector("element_refs.omc_elem_refs")
	require.True(t, ok)
	assert.Equal(t, []float64{1.25, -0.7}, vec)

	_, ok = ctx.Vector("element_refs.missing")
	assert.False(t, ok)
}

func TestMergeOverrides(t *testing.T) {
	t.Parallel()

	base := New()
	base.SetScalar("coef", 1.0)
	base.SetScalar("kept", 5.0)

	override := New()
	override.SetScalar("coef", 2.0)

	base.Merge(override)

	v, _ := base.Scalar("coef")
	assert.Equal(t, 2.0, v)
	v, _ = base.Scalar("kept")
	assert.Equal(t, 5.0, v)
}

func TestPaths(t *testing.T) {
	t.Parallel()

	ctx := New()
	ctx.SetVector("element_refs.omc", []float64{1})
	ctx.SetScalar("b_coef", 1)
	ctx.SetScalar("a_coef", 1)

	assert.Equal(t, []string{"a_coef", "b_coef", "element_refs.omc"}, ctx.Paths())
}

// evalTraversal evaluates a dotted reference expression against the context's
// EvalContext, the way the HCL front-end's vars blocks do.
func evalTraversal(t *testing.T, ctx *Context, expr string) (float64, hcl.Diagnostics) {
	t.Helper()

	evalCtx, err := ctx.EvalContext()
	require.NoError(t, err)

	parsed, diags := hclsyntax.ParseExpression([]byte(expr), "test.hcl", hcl.InitialPos)
	require.False(t, diags.HasErrors(), diags.Error())

	val, diags := parsed.Value(evalCtx)
	if diags.HasErrors() {
		return 0, diags
	}
	f, _ := val.AsBigFloat().Float64()
	return f, nil
}

func TestEvalContext(t *testing.T) {
	t.Parallel()

	ctx := New()
	ctx.SetScalar("oc20_energy_coef", 2.0)
	ctx.SetVector("element_refs.omc_elem_refs", []float64{1.25, -0.7})

	t.Run("top-level scalar", func(t *testing.T) {
		v, diags := evalTraversal(t, ctx, "oc20_energy_coef")
		require.False(t, diags.HasErrors())
		assert.Equal(t, 2.0, v)
	})

	t.Run("nested vector element", func(t *testing.T) {
		v, diags := evalTraversal(t, ctx, "element_refs.omc_elem_refs[1]")
		require.False(t, diags.HasErrors())
		assert.Equal(t, -0.7, v)
	})

	t.Run("unknown root is a diagnostic", func(t *testing.T) {
		_, diags := evalTraversal(t, ctx, "unknown_coef")
		assert.True(t, diags.HasErrors())
	})
}

func TestEvalContextPathCollision(t *testing.T) {
	t.Parallel()

	ctx := New()
	ctx.SetScalar("refs", 1.0)
	ctx.SetVector("refs.omc", []float64{1})

	_, err := ctx.EvalContext()
	require.Error(t, err)
	assert.ErrorContains(t, err, "refs")
}

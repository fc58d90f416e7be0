package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZipElementRefs(t *testing.T) {
	t.Parallel()

	t.Run("pairs values with elements in order", func(t *testing.T) {
		refs, err := ZipElementRefs([]int{1, 8, 78}, []float64{-0.5, -430.2, -1200.0})
		require.NoError(t, err)
		assert.Equal(t, ElementRefs{1: -0.5, 8: -430.2, 78: -1200.0}, refs)
		assert.Equal(t, []int{1, 8, 78}, refs.Elements())
	})

	t.Run("cardinality mismatch", func(t *testing.T) {
		_, err := ZipElementRefs([]int{1, 8, 78}, []float64{-0.5, -430.2})
		require.Error(t, err)
		assert.ErrorContains(t, err, "2 values")
		assert.ErrorContains(t, err, "3 distinct elements")
	})
}

func TestElementRefsApply(t *testing.T) {
	t.Parallel()

	refs := ElementRefs{1: -0.5, 8: -430.2}

	t.Run("subtracts one baseline per atom", func(t *testing.T) {
		// H2O: two hydrogens, one oxygen.
		got, err := refs.Apply(-440.0, []int{1, 1, 8})
		require.NoError(t, err)
		assert.InDelta(t, -440.0-(-0.5)-(-0.5)-(-430.2), got, 1e-12)
	})

	t.Run("unknown element fails", func(t *testing.T) {
		_, err := refs.Apply(0, []int{6})
		assert.ErrorContains(t, err, "atomic number 6")
	})
}

func TestDatasetManifestValidate(t *testing.T) {
	t.Parallel()

	require.NoError(t, DatasetManifest{Name: "oc20", Elements: []int{1, 8, 78}}.Validate())

	assert.ErrorContains(t, DatasetManifest{Elements: []int{1}}.Validate(), "no name")
	assert.ErrorContains(t, DatasetManifest{Name: "x", Elements: []int{0}}.Validate(), "out of range")
	assert.ErrorContains(t, DatasetManifest{Name: "x", Elements: []int{119}}.Validate(), "out of range")
	assert.ErrorContains(t, DatasetManifest{Name: "x", Elements: []int{6, 6}}.Validate(), "duplicate element")
}

func TestDistinctElements(t *testing.T) {
	t.Parallel()

	union := DistinctElements(
		DatasetManifest{Name: "a", Elements: []int{8, 1}},
		DatasetManifest{Name: "b", Elements: []int{78, 8}},
	)
	assert.Equal(t, []int{1, 8, 78}, union)

	assert.Empty(t, DistinctElements())
}

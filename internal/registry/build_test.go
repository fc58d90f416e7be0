package registry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/taskgridgo/internal/decl"
	"github.com/vk/taskgridgo/internal/model"
	"github.com/vk/taskgridgo/internal/varctx"
)

// energyTask is a minimal valid system-level declaration.
func energyTask(name string, datasets ...string) decl.Task {
	return decl.Task{
		Name:     name,
		Level:    "system",
		Property: "energy",
		Loss: decl.Loss{
			Wrapper:     "ddp_loss",
			Inner:       "mae",
			Coefficient: decl.LitScalar(1.0),
		},
		Out:      decl.Out{Dims: []int{1}, DType: "float32"},
		Datasets: datasets,
		Metrics:  []string{"mae"},
		Source:   "test.hcl:1",
	}
}

func TestBuildRoundTrip(t *testing.T) {
	t.Parallel()

	vars := varctx.New()
	vars.SetScalar("oc20_energy_coef", 2.0)
	vars.SetScalar("normalizer_rmsd", 24.9)

	forces := decl.Task{
		Name:     "oc20_forces",
		Level:    "atom",
		Property: "forces",
		Loss: decl.Loss{
			Wrapper:     "ddp_loss",
			Inner:       "l2norm",
			Coefficient: decl.LitScalar(10),
			Reduction:   "mean",
		},
		Out:      decl.Out{Dims: []int{3}, DType: "float32"},
		Datasets: []string{"oc20"},
		Metrics:  []string{"forcesx_mae", "forcesy_mae", "forcesz_mae", "cosine_similarity"},
		Source:   "test.hcl:20",
	}

	energy := energyTask("oc20_energy", "oc20")
	energy.Loss.Coefficient = decl.RefScalar("oc20_energy_coef")
	energy.Normalizer = &decl.Normalizer{
		Target: "normalizer",
		Mean:   decl.LitScalar(-0.7),
		RMSD:   decl.RefScalar("normalizer_rmsd"),
	}

	doc := &decl.Document{Tasks: []decl.Task{energy, forces}}
	reg, err := Build(context.Background(), doc, vars)
	require.NoError(t, err)
	require.Equal(t, 2, reg.Len())

	got, err := reg.Get("oc20_energy")
	require.NoError(t, err)
	assert.Equal(t, model.LevelSystem, got.Level)
	assert.Equal(t, "energy", got.Property)
	assert.Equal(t, model.WrapperDDP, got.Loss.Wrapper)
	assert.Equal(t, model.LossMAE, got.Loss.Inner)
	assert.Equal(t, 2.0, got.Loss.Coefficient)
	require.NotNil(t, got.Normalizer)
	assert.Equal(t, -0.7, got.Normalizer.Mean)
	assert.Equal(t, 24.9, got.Normalizer.RMSD)
	assert.Equal(t, []string{"oc20"}, got.Datasets)

	got, err = reg.Get("oc20_forces")
	require.NoError(t, err)
	assert.Equal(t, model.LevelAtom, got.Level)
	assert.Equal(t, model.LossL2Norm, got.Loss.Inner)
	assert.Equal(t, model.ReduceMean, got.Loss.Reduction)
	assert.Equal(t, []int{3}, got.Out.Dims)
	assert.Nil(t, got.Normalizer)
}

func TestBuildDuplicateTaskName(t *testing.T) {
	t.Parallel()

	doc := &decl.Document{Tasks: []decl.Task{
		energyTask("oc20_energy", "oc20"),
		energyTask("oc20_energy", "omc"),
	}}

	reg, err := Build(context.Background(), doc, varctx.New())
	require.Error(t, err)
	assert.Nil(t, reg)

	var dupErr *DuplicateTaskNameError
	require.ErrorAs(t, err, &dupErr)
	assert.Equal(t, "oc20_energy", dupErr.Name)
}

func TestBuildUnresolvedReference(t *testing.T) {
	t.Parallel()

	task := energyTask("oc20_energy", "oc20")
	task.Loss.Coefficient = decl.RefScalar("oc20_energy_coef")
	doc := &decl.Document{Tasks: []decl.Task{task}}

	reg, err := Build(context.Background(), doc, varctx.New())
	require.Error(t, err)
	assert.Nil(t, reg)

	var refErr *UnresolvedReferenceError
	require.ErrorAs(t, err, &refErr)
	assert.Equal(t, "oc20_energy_coef", refErr.Ref)
	assert.Equal(t, "oc20_energy", refErr.Subject)
}

func TestBuildSchemaErrors(t *testing.T) {
	t.Parallel()

	build := func(mutate func(*decl.Task)) error {
		task := energyTask("broken", "oc20")
		mutate(&task)
		_, err := Build(context.Background(), &decl.Document{Tasks: []decl.Task{task}}, varctx.New())
		return err
	}

	requireSchemaErr := func(t *testing.T, err error, contains string) {
		t.Helper()
		require.Error(t, err)
		var schemaErr *SchemaError
		require.ErrorAs(t, err, &schemaErr)
		assert.Equal(t, "broken", schemaErr.Subject)
		assert.ErrorContains(t, err, contains)
	}

	t.Run("zero rmsd", func(t *testing.T) {
		err := build(func(task *decl.Task) {
			task.Normalizer = &decl.Normalizer{
				Target: "normalizer",
				Mean:   decl.LitScalar(0),
				RMSD:   decl.LitScalar(0),
			}
		})
		requireSchemaErr(t, err, "rmsd must be positive")
	})

	t.Run("negative coefficient", func(t *testing.T) {
		err := build(func(task *decl.Task) {
			task.Loss.Coefficient = decl.LitScalar(-1)
		})
		requireSchemaErr(t, err, "non-negative")
	})

	t.Run("missing coefficient", func(t *testing.T) {
		err := build(func(task *decl.Task) {
			task.Loss.Coefficient = decl.Scalar{}
		})
		requireSchemaErr(t, err, "missing required scalar")
	})

	t.Run("unknown loss wrapper target", func(t *testing.T) {
		err := build(func(task *decl.Task) {
			task.Loss.Wrapper = "MegaLoss"
		})
		requireSchemaErr(t, err, "unknown loss wrapper target")
	})

	t.Run("unknown inner loss target", func(t *testing.T) {
		err := build(func(task *decl.Task) {
			task.Loss.Inner = "huber"
		})
		requireSchemaErr(t, err, "unknown loss target")
	})

	t.Run("unknown normalizer target", func(t *testing.T) {
		err := build(func(task *decl.Task) {
			task.Normalizer = &decl.Normalizer{
				Target: "ZScore",
				Mean:   decl.LitScalar(0),
				RMSD:   decl.LitScalar(1),
			}
		})
		requireSchemaErr(t, err, "unknown normalizer target")
	})

	t.Run("unknown level", func(t *testing.T) {
		err := build(func(task *decl.Task) {
			task.Level = "molecule"
		})
		requireSchemaErr(t, err, "unknown level")
	})
}

func TestBuildElementRefs(t *testing.T) {
	t.Parallel()

	vars := varctx.New()
	vars.SetVector("element_refs.omc_elem_refs", []float64{-0.5, -430.2, -1200.0})

	manifest := decl.Dataset{Name: "omc", Elements: []int{1, 8, 78}, Source: "test.hcl:2"}

	newTask := func() decl.Task {
		task := energyTask("omc_energy", "omc")
		task.ElementRefs = &decl.Vector{Ref: "element_refs.omc_elem_refs"}
		return task
	}

	t.Run("zips table against manifest elements", func(t *testing.T) {
		doc := &decl.Document{
			Tasks:    []decl.Task{newTask()},
			Datasets: []decl.Dataset{manifest},
		}
		reg, err := Build(context.Background(), doc, vars)
		require.NoError(t, err)

		got, err := reg.Get("omc_energy")
		require.NoError(t, err)
		assert.Equal(t, model.ElementRefs{1: -0.5, 8: -430.2, 78: -1200.0}, got.ElementRefs)
	})

	t.Run("cardinality mismatch is a schema error", func(t *testing.T) {
		short := varctx.New()
		short.SetVector("element_refs.omc_elem_refs", []float64{-0.5, -430.2})

		doc := &decl.Document{
			Tasks:    []decl.Task{newTask()},
			Datasets: []decl.Dataset{manifest},
		}
		_, err := Build(context.Background(), doc, short)
		require.Error(t, err)
		var schemaErr *SchemaError
		require.ErrorAs(t, err, &schemaErr)
		assert.ErrorContains(t, err, "2 values")
	})

	t.Run("missing manifest is a schema error", func(t *testing.T) {
		doc := &decl.Document{Tasks: []decl.Task{newTask()}}
		_, err := Build(context.Background(), doc, vars)
		require.Error(t, err)
		var schemaErr *SchemaError
		require.ErrorAs(t, err, &schemaErr)
		assert.ErrorContains(t, err, "require a manifest")
	})

	t.Run("unresolved table reference", func(t *testing.T) {
		doc := &decl.Document{
			Tasks:    []decl.Task{newTask()},
			Datasets: []decl.Dataset{manifest},
		}
		_, err := Build(context.Background(), doc, varctx.New())
		var refErr *UnresolvedReferenceError
		require.ErrorAs(t, err, &refErr)
		assert.Equal(t, "element_refs.omc_elem_refs", refErr.Ref)
	})
}

func TestBuildBadManifest(t *testing.T) {
	t.Parallel()

	doc := &decl.Document{
		Tasks:    []decl.Task{energyTask("oc20_energy", "oc20")},
		Datasets: []decl.Dataset{{Name: "oc20", Elements: []int{0}, Source: "test.hcl:2"}},
	}
	_, err := Build(context.Background(), doc, varctx.New())
	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, "oc20", schemaErr.Subject)

	doc = &decl.Document{
		Tasks: []decl.Task{energyTask("oc20_energy", "oc20")},
		Datasets: []decl.Dataset{
			{Name: "oc20", Elements: []int{1}, Source: "test.hcl:2"},
			{Name: "oc20", Elements: []int{1}, Source: "test.hcl:3"},
		},
	}
	_, err = Build(context.Background(), doc, varctx.New())
	require.ErrorAs(t, err, &schemaErr)
	assert.ErrorContains(t, err, "more than once")
}

func TestGetNotFound(t *testing.T) {
	t.Parallel()

	reg, err := Build(context.Background(), &decl.Document{}, varctx.New())
	require.NoError(t, err)

	_, err = reg.Get("nope")
	var nfErr *NotFoundError
	require.ErrorAs(t, err, &nfErr)
	assert.Equal(t, "nope", nfErr.Name)
}

package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/taskgridgo/internal/testutil"
)

// TestPipeline_VarsFileOverridesDocument validates that bindings from a
// --vars file win over bindings declared in the documents themselves, which
// is the mechanism for sweeping coefficients without editing a document.
func TestPipeline_VarsFileOverridesDocument(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	files := map[string]string{
		"main.hcl": `
			vars {
			  energy_coef = 2.0
			}

			task "energy" {
			  level    = "system"
			  property = "energy"

			  loss {
			    wrapper     = "ddp_loss"
			    fn          = "mae"
			    coefficient = energy_coef
			  }

			  out {
			    dim   = [1]
			    dtype = "float32"
			  }

			  datasets = ["oc20"]
			}
		`,
		"vars/sweep.yaml": "energy_coef: 7.5\n",
	}

	// --- Act ---
	result := testutil.RunRegistryTest(t, files)

	// --- Assert ---
	require.NoError(t, result.Err)

	task, err := result.App.Registry().Get("energy")
	require.NoError(t, err)
	assert.Equal(t, 7.5, task.Loss.Coefficient)
}

// TestPipeline_VarsFilesMergeInOrder validates that later --vars files
// override earlier ones.
func TestPipeline_VarsFilesMergeInOrder(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	files := map[string]string{
		"main.hcl": `
			task "energy" {
			  level    = "system"
			  property = "energy"

			  loss {
			    wrapper     = "ddp_loss"
			    fn          = "mae"
			    coefficient = energy_coef
			  }

			  out {
			    dim   = [1]
			    dtype = "float32"
			  }

			  datasets = ["oc20"]
			}
		`,
		"vars/01_base.yaml":     "energy_coef: 1.0\n",
		"vars/02_override.yaml": "energy_coef: 3.0\n",
	}

	// --- Act ---
	result := testutil.RunRegistryTest(t, files)

	// --- Assert ---
	require.NoError(t, result.Err)

	task, err := result.App.Registry().Get("energy")
	require.NoError(t, err)
	assert.Equal(t, 3.0, task.Loss.Coefficient)
}

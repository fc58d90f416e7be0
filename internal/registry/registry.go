package registry

import (
	"iter"
	"sort"

	"github.com/vk/taskgridgo/internal/model"
)

// Registry is the immutable collection of validated task definitions,
// together with the dataset manifests they were validated against.
type Registry struct {
	tasks     []*model.TaskDefinition
	byName    map[string]*model.TaskDefinition
	manifests map[string]model.DatasetManifest
}

// Len returns the number of tasks in the registry.
func (r *Registry) Len() int {
	return len(r.tasks)
}

// Get returns the task with the given name, or a *NotFoundError.
func (r *Registry) Get(name string) (*model.TaskDefinition, error) {
	t, ok := r.byName[name]
	if !ok {
		return nil, &NotFoundError{Name: name}
	}
	return t, nil
}

// Tasks returns every task in declaration order. The returned slice is a
// copy; the definitions themselves are shared and must not be mutated.
func (r *Registry) Tasks() []*model.TaskDefinition {
	out := make([]*model.TaskDefinition, len(r.tasks))
	copy(out, r.tasks)
	return out
}

// ForDataset yields, in declaration order, every task whose dataset list
// contains the given identifier. The sequence is lazy and restartable, and
// empty for an unknown identifier.
func (r *Registry) ForDataset(dataset string) iter.Seq[*model.TaskDefinition] {
	return func(yield func(*model.TaskDefinition) bool) {
		for _, t := range r.tasks {
			if t.AppliesTo(dataset) {
				if !yield(t) {
					return
				}
			}
		}
	}
}

// Manifest returns the manifest declared for a dataset, if any.
func (r *Registry) Manifest(dataset string) (model.DatasetManifest, bool) {
	m, ok := r.manifests[dataset]
	return m, ok
}

// Datasets returns the sorted union of every dataset referenced by a task.
func (r *Registry) Datasets() []string {
	seen := make(map[string]struct{})
	for _, t := range r.tasks {
		for _, d := range t.Datasets {
			seen[d] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for d := range seen {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}

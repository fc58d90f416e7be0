package registry

import (
	"context"
	"fmt"

	"github.com/vk/taskgridgo/internal/ctxlog"
	"github.com/vk/taskgridgo/internal/decl"
	"github.com/vk/taskgridgo/internal/model"
	"github.com/vk/taskgridgo/internal/varctx"
)

// Build resolves a document's declarations against the variable context and
// returns a validated registry. The build is all-or-nothing: on any error
// the returned registry is nil.
func Build(ctx context.Context, doc *decl.Document, vars *varctx.Context) (*Registry, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Building task registry.", "task_declarations", len(doc.Tasks), "dataset_manifests", len(doc.Datasets))

	manifests := make(map[string]model.DatasetManifest, len(doc.Datasets))
	for _, d := range doc.Datasets {
		m := model.DatasetManifest{Name: d.Name, Elements: d.Elements}
		if err := m.Validate(); err != nil {
			return nil, &SchemaError{Subject: d.Name, Source: d.Source, Err: err}
		}
		if _, dup := manifests[d.Name]; dup {
			return nil, &SchemaError{Subject: d.Name, Source: d.Source, Err: fmt.Errorf("dataset manifest declared more than once")}
		}
		manifests[d.Name] = m
	}

	reg := &Registry{
		tasks:     make([]*model.TaskDefinition, 0, len(doc.Tasks)),
		byName:    make(map[string]*model.TaskDefinition, len(doc.Tasks)),
		manifests: manifests,
	}

	sources := make(map[string]string, len(doc.Tasks))
	for _, td := range doc.Tasks {
		if prev, dup := sources[td.Name]; dup {
			return nil, &DuplicateTaskNameError{Name: td.Name, First: prev, Second: td.Source}
		}
		sources[td.Name] = td.Source

		task, err := resolveTask(&td, vars, manifests)
		if err != nil {
			return nil, err
		}

		reg.tasks = append(reg.tasks, task)
		reg.byName[task.Name] = task
		logger.Debug("Task resolved.", "task", task.Name, "property", task.Property,
			"level", task.Level, "coefficient", task.Loss.Coefficient, "datasets", task.Datasets)
	}

	logger.Info("Task registry built.", "tasks", reg.Len(), "datasets", reg.Datasets())
	return reg, nil
}

// resolveTask turns one raw declaration into a validated TaskDefinition.
func resolveTask(td *decl.Task, vars *varctx.Context, manifests map[string]model.DatasetManifest) (*model.TaskDefinition, error) {
	schemaErr := func(err error) error {
		return &SchemaError{Subject: td.Name, Source: td.Source, Err: err}
	}

	wrapper, err := lookupWrapper(td.Loss.Wrapper)
	if err != nil {
		return nil, schemaErr(err)
	}
	inner, err := lookupInnerLoss(td.Loss.Inner)
	if err != nil {
		return nil, schemaErr(err)
	}
	coefficient, err := resolveScalar(td.Loss.Coefficient, td, vars)
	if err != nil {
		return nil, err
	}

	task := &model.TaskDefinition{
		Name:     td.Name,
		Level:    model.Level(td.Level),
		Property: td.Property,
		Loss: model.LossSpec{
			Wrapper:     wrapper,
			Inner:       inner,
			Coefficient: coefficient,
			Reduction:   model.Reduction(td.Loss.Reduction),
		},
		Out: model.OutSpec{
			Dims:  append([]int(nil), td.Out.Dims...),
			DType: model.DType(td.Out.DType),
		},
		Datasets:         append([]string(nil), td.Datasets...),
		Metrics:          append([]string(nil), td.Metrics...),
		TrainOnFreeAtoms: td.TrainOnFreeAtoms,
		EvalOnFreeAtoms:  td.EvalOnFreeAtoms,
	}

	if td.Normalizer != nil {
		if err := checkNormalizerTarget(td.Normalizer.Target); err != nil {
			return nil, schemaErr(err)
		}
		mean, err := resolveScalar(td.Normalizer.Mean, td, vars)
		if err != nil {
			return nil, err
		}
		rmsd, err := resolveScalar(td.Normalizer.RMSD, td, vars)
		if err != nil {
			return nil, err
		}
		task.Normalizer = &model.Normalizer{Mean: mean, RMSD: rmsd}
	}

	if td.ElementRefs != nil {
		values, err := resolveVector(*td.ElementRefs, td, vars)
		if err != nil {
			return nil, err
		}
		elements, err := taskElements(td, manifests)
		if err != nil {
			return nil, err
		}
		refs, err := model.ZipElementRefs(elements, values)
		if err != nil {
			return nil, schemaErr(err)
		}
		task.ElementRefs = refs
	}

	if err := task.Validate(); err != nil {
		return nil, schemaErr(err)
	}
	return task, nil
}

// taskElements computes the distinct-element universe of a task from the
// manifests of its declared datasets. A task that declares element
// references over a dataset with no manifest fails closed.
func taskElements(td *decl.Task, manifests map[string]model.DatasetManifest) ([]int, error) {
	ms := make([]model.DatasetManifest, 0, len(td.Datasets))
	for _, d := range td.Datasets {
		m, ok := manifests[d]
		if !ok {
			return nil, &SchemaError{Subject: td.Name, Source: td.Source,
				Err: fmt.Errorf("element references require a manifest for dataset %q, but none was declared", d)}
		}
		ms = append(ms, m)
	}
	return model.DistinctElements(ms...), nil
}

func resolveScalar(s decl.Scalar, td *decl.Task, vars *varctx.Context) (float64, error) {
	if s.Ref != "" {
		v, ok := vars.Scalar(s.Ref)
		if !ok {
			return 0, &UnresolvedReferenceError{Ref: s.Ref, Subject: td.Name, Source: td.Source}
		}
		return v, nil
	}
	if s.Lit == nil {
		return 0, &SchemaError{Subject: td.Name, Source: td.Source, Err: fmt.Errorf("missing required scalar value")}
	}
	return *s.Lit, nil
}

func resolveVector(v decl.Vector, td *decl.Task, vars *varctx.Context) ([]float64, error) {
	if v.Ref != "" {
		vec, ok := vars.Vector(v.Ref)
		if !ok {
			return nil, &UnresolvedReferenceError{Ref: v.Ref, Subject: td.Name, Source: td.Source}
		}
		return vec, nil
	}
	return v.Lit, nil
}

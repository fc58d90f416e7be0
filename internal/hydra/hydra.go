package hydra

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vk/taskgridgo/internal/ctxlog"
	"github.com/vk/taskgridgo/internal/decl"
)

// scalarOrRef is a YAML value that is either a number or a ${...}
// placeholder string.
type scalarOrRef struct {
	decl.Scalar
}

func (s *scalarOrRef) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected a number or a ${...} placeholder", node.Line)
	}

	if path, ok := placeholderPath(node); ok {
		s.Scalar = decl.RefScalar(path)
		return nil
	}

	var v float64
	if err := node.Decode(&v); err != nil {
		return fmt.Errorf("line %d: expected a number or a ${...} placeholder, got %q", node.Line, node.Value)
	}
	s.Scalar = decl.LitScalar(v)
	return nil
}

// vectorOrRef is a YAML value that is either a sequence of numbers or a
// ${...} placeholder string.
type vectorOrRef struct {
	decl.Vector
}

func (v *vectorOrRef) UnmarshalYAML(node *yaml.Node) error {
	if path, ok := placeholderPath(node); ok {
		v.Vector = decl.Vector{Ref: path}
		return nil
	}

	var lit []float64
	if err := node.Decode(&lit); err != nil {
		return fmt.Errorf("line %d: expected a number sequence or a ${...} placeholder", node.Line)
	}
	v.Vector = decl.Vector{Lit: lit}
	return nil
}

// placeholderPath reports whether a scalar node is a ${identifier} or
// ${identifier.subfield} placeholder, and returns the dotted path.
func placeholderPath(node *yaml.Node) (string, bool) {
	if node.Kind != yaml.ScalarNode {
		return "", false
	}
	raw := node.Value
	if !strings.HasPrefix(raw, "${") || !strings.HasSuffix(raw, "}") {
		return "", false
	}
	return strings.TrimSpace(raw[2 : len(raw)-1]), true
}

// targetName trims a fully-qualified _target_ down to its final segment.
func targetName(target string) string {
	if i := strings.LastIndex(target, "."); i >= 0 {
		return target[i+1:]
	}
	return target
}

type yamlInnerLoss struct {
	Target string `yaml:"_target_"`
}

type yamlLoss struct {
	Target      string        `yaml:"_target_"`
	Inner       yamlInnerLoss `yaml:"loss_fn"`
	Coefficient scalarOrRef   `yaml:"coefficient"`
	Reduction   string        `yaml:"reduction"`
}

type yamlNormalizer struct {
	Target string      `yaml:"_target_"`
	Mean   scalarOrRef `yaml:"mean"`
	RMSD   scalarOrRef `yaml:"rmsd"`
}

type yamlOutSpec struct {
	Dim   []int  `yaml:"dim"`
	DType string `yaml:"dtype"`
}

type yamlTask struct {
	// Target is accepted for compatibility with upstream documents, where
	// the task mapping itself carries a _target_ constructor. It is not
	// significant here: there is only one task constructor.
	Target string `yaml:"_target_"`

	Name             string          `yaml:"name"`
	Level            string          `yaml:"level"`
	Property         string          `yaml:"property"`
	Loss             yamlLoss        `yaml:"loss_fn"`
	Out              yamlOutSpec     `yaml:"out_spec"`
	Normalizer       *yamlNormalizer `yaml:"normalizer"`
	ElementRefs      *vectorOrRef    `yaml:"element_references"`
	Datasets         []string        `yaml:"datasets"`
	Metrics          []string        `yaml:"metrics"`
	TrainOnFreeAtoms *bool           `yaml:"train_on_free_atoms"`
	EvalOnFreeAtoms  *bool           `yaml:"eval_on_free_atoms"`
}

type yamlDataset struct {
	Name     string `yaml:"name"`
	Elements []int  `yaml:"elements"`
}

type yamlDocument struct {
	Tasks    []yamlTask    `yaml:"tasks"`
	Datasets []yamlDataset `yaml:"datasets"`
}

// ParseFile parses one Hydra-style YAML document into raw declarations.
func ParseFile(ctx context.Context, path string) (*decl.Document, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Parsing Hydra task document.", "path", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	doc, err := ParseBytes(ctx, data, path)
	if err != nil {
		return nil, err
	}

	logger.Debug("Hydra task document parsed.", "path", path,
		"tasks", len(doc.Tasks), "datasets", len(doc.Datasets))
	return doc, nil
}

// ParseBytes parses an in-memory Hydra-style YAML document. The filename is
// used only for source locations in error messages.
func ParseBytes(_ context.Context, data []byte, filename string) (*decl.Document, error) {
	var raw yamlDocument
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode YAML document %s: %w", filename, err)
	}

	doc := &decl.Document{}
	for i, t := range raw.Tasks {
		task := decl.Task{
			Name:     t.Name,
			Level:    t.Level,
			Property: t.Property,
			Loss: decl.Loss{
				Wrapper:     targetName(t.Loss.Target),
				Inner:       targetName(t.Loss.Inner.Target),
				Coefficient: t.Loss.Coefficient.Scalar,
				Reduction:   t.Loss.Reduction,
			},
			Out: decl.Out{
				Dims:  t.Out.Dim,
				DType: t.Out.DType,
			},
			Datasets:         t.Datasets,
			Metrics:          t.Metrics,
			TrainOnFreeAtoms: t.TrainOnFreeAtoms,
			EvalOnFreeAtoms:  t.EvalOnFreeAtoms,
			Source:           fmt.Sprintf("%s#tasks[%d]", filename, i),
		}
		if t.Normalizer != nil {
			task.Normalizer = &decl.Normalizer{
				Target: targetName(t.Normalizer.Target),
				Mean:   t.Normalizer.Mean.Scalar,
				RMSD:   t.Normalizer.RMSD.Scalar,
			}
		}
		if t.ElementRefs != nil {
			task.ElementRefs = &t.ElementRefs.Vector
		}
		doc.Tasks = append(doc.Tasks, task)
	}

	for i, d := range raw.Datasets {
		doc.Datasets = append(doc.Datasets, decl.Dataset{
			Name:     d.Name,
			Elements: d.Elements,
			Source:   fmt.Sprintf("%s#datasets[%d]", filename, i),
		})
	}

	return doc, nil
}

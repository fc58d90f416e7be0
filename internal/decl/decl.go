// Package decl holds the format-agnostic intermediate representation of
// task declarations.
//
// Both input front-ends (HCL documents and Hydra-style YAML documents)
// produce this representation. It is deliberately "raw": symbolic references
// into the variable context are still unresolved, enumerations are still
// strings, and nothing has been validated. The registry builder consumes it
// in a second phase that resolves, constructs and validates all-or-nothing.
package decl

// Scalar is a float64 that is either a literal or an unresolved reference
// into the variable context. Exactly one of the two is set.
type Scalar struct {
	Lit *float64
	Ref string
}

// LitScalar returns a literal Scalar.
func LitScalar(v float64) Scalar {
	return Scalar{Lit: &v}
}

// RefScalar returns a Scalar referencing a variable-context path.
func RefScalar(path string) Scalar {
	return Scalar{Ref: path}
}

// Vector is an ordered float64 sequence that is either literal or an
// unresolved reference into the variable context.
type Vector struct {
	Lit []float64
	Ref string
}

// Loss is the raw loss specification of a task declaration.
type Loss struct {
	Wrapper     string
	Inner       string
	Coefficient Scalar
	Reduction   string
}

// Out is the raw output spec of a task declaration.
type Out struct {
	Dims  []int
	DType string
}

// Normalizer is the raw normalizer of a task declaration. Mean and RMSD may
// both be references, which is how several tasks share one spread parameter.
type Normalizer struct {
	// Target is the constructor name from the document. The HCL front-end
	// always writes "normalizer"; Hydra documents carry the upstream class
	// name.
	Target string
	Mean   Scalar
	RMSD   Scalar
}

// Task is the unresolved declaration of one learnable objective.
type Task struct {
	Name        string
	Level       string
	Property    string
	Loss        Loss
	Out         Out
	Normalizer  *Normalizer
	ElementRefs *Vector
	Datasets    []string
	Metrics     []string

	TrainOnFreeAtoms *bool
	EvalOnFreeAtoms  *bool

	// Source is a human-readable location ("file.hcl:12") for error messages.
	Source string
}

// Dataset is the unresolved manifest of one dataset.
type Dataset struct {
	Name     string
	Elements []int
	Source   string
}

// Document aggregates all declarations loaded from one or more files, in
// declaration order.
type Document struct {
	Tasks    []Task
	Datasets []Dataset
}

// Merge appends another document's declarations, preserving order.
func (d *Document) Merge(other *Document) {
	d.Tasks = append(d.Tasks, other.Tasks...)
	d.Datasets = append(d.Datasets, other.Datasets...)
}

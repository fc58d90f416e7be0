// Package varctx implements the variable context that task declarations
// resolve their symbolic references against.
//
// The context is a flat store keyed by dotted path. Scalars are coefficients
// and shared normalizer parameters (e.g. "oc20_energy_coef",
// "normalizer_rmsd"); vectors are ordered per-element reference tables
// (e.g. "element_refs.omc_elem_refs"). The same context also powers the HCL
// front-end, where it is exposed as an hcl.EvalContext so that document
// attributes can reference bindings as ordinary HCL traversals.
package varctx

import (
	"fmt"
	"math/big"
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
)

// Context holds the variable bindings for one registry build. It is
// populated before the build starts and read-only afterwards.
type Context struct {
	scalars map[string]float64
	vectors map[string][]float64
}

// New creates an empty Context.
func New() *Context {
	return &Context{
		scalars: make(map[string]float64),
		vectors: make(map[string][]float64),
	}
}

// SetScalar binds a scalar value to a dotted path.
func (c *Context) SetScalar(path string, v float64) {
	c.scalars[path] = v
}

// SetVector binds an ordered vector to a dotted path.
func (c *Context) SetVector(path string, v []float64) {
	c.vectors[path] = append([]float64(nil), v...)
}

// Scalar looks up a scalar binding.
func (c *Context) Scalar(path string) (float64, bool) {
	v, ok := c.scalars[path]
	return v, ok
}

// Vector looks up a vector binding. The returned slice must not be mutated.
func (c *Context) Vector(path string) ([]float64, bool) {
	v, ok := c.vectors[path]
	return v, ok
}

// Merge copies every binding from other into c, overwriting on collision.
// Later files win, which matches the loader's lexical file order.
func (c *Context) Merge(other *Context) {
	for k, v := range other.scalars {
		c.scalars[k] = v
	}
	for k, v := range other.vectors {
		c.vectors[k] = append([]float64(nil), v...)
	}
}

// Paths returns every bound path in sorted order, for logging.
func (c *Context) Paths() []string {
	paths := make([]string, 0, len(c.scalars)+len(c.vectors))
	for k := range c.scalars {
		paths = append(paths, k)
	}
	for k := range c.vectors {
		paths = append(paths, k)
	}
	sort.Strings(paths)
	return paths
}

// node is one level of the nested variable tree built for HCL evaluation.
type node struct {
	children map[string]*node
	value    *cty.Value
}

func (n *node) child(name string) *node {
	if n.children == nil {
		n.children = make(map[string]*node)
	}
	if c, ok := n.children[name]; ok {
		return c
	}
	c := &node{}
	n.children[name] = c
	return c
}

func (n *node) toValue() cty.Value {
	if n.value != nil {
		return *n.value
	}
	attrs := make(map[string]cty.Value, len(n.children))
	for name, child := range n.children {
		attrs[name] = child.toValue()
	}
	return cty.ObjectVal(attrs)
}

// EvalContext exposes the bindings as an hcl.EvalContext. Dotted paths
// become nested objects, so "element_refs.omc_elem_refs" is reachable as the
// traversal element_refs.omc_elem_refs in a document attribute.
func (c *Context) EvalContext() (*hcl.EvalContext, error) {
	root := &node{}

	insert := func(path string, value cty.Value) error {
		cur := root
		for _, seg := range strings.Split(path, ".") {
			if cur.value != nil {
				return fmt.Errorf("variable path %q collides with a scalar binding at an intermediate segment", path)
			}
			cur = cur.child(seg)
		}
		if cur.value != nil || len(cur.children) > 0 {
			return fmt.Errorf("variable path %q is bound more than once", path)
		}
		v := value
		cur.value = &v
		return nil
	}

	for path, v := range c.scalars {
		if err := insert(path, cty.NumberVal(big.NewFloat(v))); err != nil {
			return nil, err
		}
	}
	for path, vec := range c.vectors {
		vals := make([]cty.Value, len(vec))
		for i, v := range vec {
			vals[i] = cty.NumberVal(big.NewFloat(v))
		}
		if len(vals) == 0 {
			if err := insert(path, cty.ListValEmpty(cty.Number)); err != nil {
				return nil, err
			}
			continue
		}
		if err := insert(path, cty.TupleVal(vals)); err != nil {
			return nil, err
		}
	}

	variables := make(map[string]cty.Value, len(root.children))
	for name, child := range root.children {
		variables[name] = child.toValue()
	}
	return &hcl.EvalContext{Variables: variables}, nil
}

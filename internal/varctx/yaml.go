package varctx

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadYAMLFile reads a YAML mapping of variable bindings. Nested mappings
// flatten into dotted paths; numeric leaves become scalars and sequences of
// numbers become vectors. Anything else is rejected.
func LoadYAMLFile(path string) (*Context, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	ctx, err := ParseYAML(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ctx, nil
}

// ParseYAML parses variable bindings from YAML bytes.
func ParseYAML(data []byte) (*Context, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid variables document: %w", err)
	}

	ctx := New()
	if err := flattenInto(ctx, "", raw); err != nil {
		return nil, err
	}
	return ctx, nil
}

func flattenInto(ctx *Context, prefix string, m map[string]any) error {
	for key, value := range m {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}
		switch v := value.(type) {
		case map[string]any:
			if err := flattenInto(ctx, path, v); err != nil {
				return err
			}
		case []any:
			vec := make([]float64, len(v))
			for i, item := range v {
				f, err := toFloat(item)
				if err != nil {
					return fmt.Errorf("variable %q: element %d: %w", path, i, err)
				}
				vec[i] = f
			}
			ctx.SetVector(path, vec)
		default:
			f, err := toFloat(v)
			if err != nil {
				return fmt.Errorf("variable %q: %w", path, err)
			}
			ctx.SetScalar(path, f)
		}
	}
	return nil
}

func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("expected a number, got %T", v)
	}
}

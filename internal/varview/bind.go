package varview

import (
	"fmt"

	"github.com/ciphron/scdl"
	"github.com/ciphron/scdl/errs"
	"github.com/ciphron/scdl/gf2"
)

// PackInputs builds p's full variable-input bit vector (length
// p.NumVarInputs()) from view's declared inputs and the caller-supplied
// values, keyed by variable name. Accepted value types are bool for
// KindBool, int, int64 or float64 (truncated toward zero) for
// KindInt/KindUint, and string for KindBitstring.
func PackInputs(p *scdl.Program, view *View, values map[string]any) ([]gf2.Bit, error) {
	bits := make([]gf2.Bit, p.NumVarInputs())
	set := make([]bool, len(bits))

	for _, in := range view.Inputs {
		val, ok := values[in.Name]
		if !ok {
			return nil, fmt.Errorf("varview: missing value for input %q", in.Name)
		}

		vbits, err := packValue(in, val)
		if err != nil {
			return nil, err
		}
		if len(vbits) != len(in.Components) {
			return nil, fmt.Errorf("varview: input %q: %d bits for %d components", in.Name, len(vbits), len(in.Components))
		}

		for i, comp := range in.Components {
			v, ok := p.GetVariable(comp)
			if !ok {
				return nil, fmt.Errorf("varview: input %q: component %q: %w", in.Name, comp, errs.ErrUnknown)
			}
			if v.Len != 1 {
				return nil, fmt.Errorf("varview: input %q: component %q is not a single-bit variable", in.Name, comp)
			}
			if v.Index < 0 || v.Index >= len(bits) {
				return nil, fmt.Errorf("varview: input %q: component %q: %w", in.Name, comp, errs.ErrBounds)
			}
			bits[v.Index] = vbits[i]
			set[v.Index] = true
		}
	}

	return bits, nil
}

func packValue(v Variable, val any) ([]gf2.Bit, error) {
	switch v.Type {
	case KindBool:
		b, ok := val.(bool)
		if !ok {
			return nil, fmt.Errorf("varview: %q expects a bool", v.Name)
		}
		if len(v.Components) != 1 {
			return nil, fmt.Errorf("varview: %q: a bool must have exactly one component", v.Name)
		}
		return []gf2.Bit{PackBool(b)}, nil
	case KindInt, KindUint:
		n, err := toInt64(val)
		if err != nil {
			return nil, fmt.Errorf("varview: %q: %w", v.Name, err)
		}
		bits, err := PackInt(n, len(v.Components), v.Type == KindInt)
		if err != nil {
			return nil, fmt.Errorf("varview: %q: %w", v.Name, err)
		}
		return bits, nil
	case KindBitstring:
		s, ok := val.(string)
		if !ok {
			return nil, fmt.Errorf("varview: %q expects a bitstring", v.Name)
		}
		if len(s) != len(v.Components) {
			return nil, fmt.Errorf("varview: %q: bitstring length %d, expected %d", v.Name, len(s), len(v.Components))
		}
		return PackBitstring(s)
	default:
		return nil, fmt.Errorf("varview: %q: unknown type %q", v.Name, v.Type)
	}
}

func toInt64(val any) (int64, error) {
	switch n := val.(type) {
	case int64:
		return n, nil
	case int:
		return int64(n), nil
	case float64:
		return int64(n), nil
	default:
		return 0, fmt.Errorf("expected an integer, got %T", val)
	}
}

// EvalOutputs evaluates, for each of view's declared outputs, the
// circuit named by each of its components (one circuit per bit, in the
// order listed), then decodes the resulting bits per the output's
// declared type; int and uint outputs read the first component as the
// least-significant bit. varInputs is the full variable-input
// vector, typically produced by PackInputs; constants are appended
// automatically, as gf2.Bit(constant != 0).
func EvalOutputs(p *scdl.Program, view *View, varInputs []gf2.Bit) (map[string]any, error) {
	results := make(map[string]any, len(view.Outputs))
	for _, out := range view.Outputs {
		bits := make([]gf2.Bit, len(out.Components))
		for i, circName := range out.Components {
			v, err := scdl.Run(p, circName, varInputs, gf2.FromInt)
			if err != nil {
				return nil, fmt.Errorf("varview: output %q: %w", out.Name, err)
			}
			bits[i] = v
		}

		switch out.Type {
		case KindBool:
			if len(bits) != 1 {
				return nil, fmt.Errorf("varview: output %q: a bool must have exactly one component", out.Name)
			}
			results[out.Name] = UnpackBool(bits[0])
		case KindInt:
			results[out.Name] = UnpackInt(bits, true)
		case KindUint:
			results[out.Name] = UnpackInt(bits, false)
		case KindBitstring:
			results[out.Name] = FormatBitstring(bits)
		default:
			return nil, fmt.Errorf("varview: output %q: unknown type %q", out.Name, out.Type)
		}
	}
	return results, nil
}

// Package yaml_adapter loads settings files written in YAML.
package yaml_adapter

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"sort"

	"github.com/specialistvlad/vctoggle/internal/ctxlog"
	"github.com/specialistvlad/vctoggle/internal/settings"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
	"gopkg.in/yaml.v3"
)

// Loader is the YAML implementation of settings.Loader.
type Loader struct{}

// NewLoader creates a new YAML settings loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Extensions implements settings.Loader.
func (l *Loader) Extensions() []string {
	return []string{".yaml", ".yml"}
}

// Load reads one YAML file into a settings.Raw map.
func (l *Loader) Load(ctx context.Context, path string) (settings.Raw, error) {
	ctxlog.FromContext(ctx).Debug("YAML settings loader started.", "path", path)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}
	return l.Parse(data)
}

// Parse decodes a YAML document. The top level must be a mapping; an empty
// document yields an empty map.
func (l *Loader) Parse(data []byte) (settings.Raw, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse settings: %w", err)
	}

	raw := make(settings.Raw, len(doc))
	for key, val := range doc {
		v, err := toCtyValue(val)
		if err != nil {
			return nil, fmt.Errorf("setting %q: %w", key, err)
		}
		raw[key] = v
	}
	return raw, nil
}

var errNaN = errors.New("NaN is not a valid value")

// toCtyValue converts a decoded YAML value into a cty.Value. Sequences become
// tuples and mappings become objects, so mixed element types survive until
// settings.Decode judges them.
func toCtyValue(v any) (cty.Value, error) {
	switch val := v.(type) {
	case nil:
		return cty.NullVal(cty.DynamicPseudoType), nil
	case float64:
		// cty numbers cannot hold NaN; infinities are fine.
		if math.IsNaN(val) {
			return cty.NilVal, errNaN
		}
		return cty.NumberFloatVal(val), nil
	case []any:
		if len(val) == 0 {
			return cty.EmptyTupleVal, nil
		}
		elems := make([]cty.Value, len(val))
		for i, el := range val {
			ev, err := toCtyValue(el)
			if err != nil {
				return cty.NilVal, fmt.Errorf("element %d: %w", i, err)
			}
			elems[i] = ev
		}
		return cty.TupleVal(elems), nil
	case map[string]any:
		if len(val) == 0 {
			return cty.EmptyObjectVal, nil
		}
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		attrs := make(map[string]cty.Value, len(val))
		for _, k := range keys {
			av, err := toCtyValue(val[k])
			if err != nil {
				return cty.NilVal, fmt.Errorf("key %q: %w", k, err)
			}
			attrs[k] = av
		}
		return cty.ObjectVal(attrs), nil
	default:
		ty, err := gocty.ImpliedType(v)
		if err != nil {
			return cty.NilVal, fmt.Errorf("unable to infer cty.Type: %w", err)
		}
		return gocty.ToCtyValue(v, ty)
	}
}

var _ settings.Loader = (*Loader)(nil)

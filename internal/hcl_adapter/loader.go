// Package hcl_adapter loads settings files written in HCL.
//
// A settings file is a flat list of attributes:
//
//	enabled-modules    = ["vc_row", "vc_column", "vc_column_text"]
//	use-grid-rewrite   = true
//	column-fields-keep = "all"
//
// Expressions are evaluated without variables or functions, so every value
// must be a literal.
package hcl_adapter

import (
	"context"
	"fmt"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/vctoggle/internal/ctxlog"
	"github.com/specialistvlad/vctoggle/internal/settings"
)

// Loader is the HCL implementation of settings.Loader.
type Loader struct{}

// NewLoader creates a new HCL settings loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Extensions implements settings.Loader.
func (l *Loader) Extensions() []string {
	return []string{".hcl"}
}

// Load parses one HCL file into a settings.Raw map.
func (l *Loader) Load(ctx context.Context, path string) (settings.Raw, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL settings loader started.", "path", path)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
	}
	return decodeBody(ctx, file.Body)
}

// Parse parses HCL source held in memory. filename is only used in
// diagnostics.
func (l *Loader) Parse(ctx context.Context, src []byte, filename string) (settings.Raw, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL %s: %w", filename, diags)
	}
	return decodeBody(ctx, file.Body)
}

func decodeBody(ctx context.Context, body hcl.Body) (settings.Raw, error) {
	attrs, diags := body.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("settings must be plain attributes: %w", diags)
	}

	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, name)
	}
	sort.Strings(names)

	raw := make(settings.Raw, len(attrs))
	for _, name := range names {
		attr := attrs[name]
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("invalid value for %q: %w", name, diags)
		}
		raw[name] = val
	}

	ctxlog.FromContext(ctx).Debug("HCL settings decoded.", "attributes", len(raw))
	return raw, nil
}

var _ settings.Loader = (*Loader)(nil)

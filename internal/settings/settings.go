// Package settings defines the administrator-facing configuration consumed by
// the toggle engine, and the format-agnostic way of producing it.
//
// Settings files are parsed by format-specific loaders (HCL, YAML) into a Raw
// map of cty values. Decode turns that map into the typed Settings structure.
// Values of the wrong shape never fail decoding: the affected feature is left
// disabled and a Warning is reported instead.
package settings

import (
	"fmt"
	"sort"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// Recognized settings keys.
const (
	KeyCatalog                 = "catalog"
	KeyEnabledModules          = "enabled-modules"
	KeyUseGridRewrite          = "use-grid-rewrite"
	KeyDeregisterFrontendStyle = "deregister-frontend-style"
	KeyDisableFrontendEditor   = "disable-frontend-editor"
	KeyRemoveClassField        = "remove-class-field"
	KeyRemoveDesignTab         = "remove-design-tab"
	KeyRowLayoutsKeep          = "row-layouts-keep"
	KeySetAsTheme              = "set-as-theme"
	KeyDisableGridAdminEntries = "disable-grid-admin-entries"
	KeyTemplatesKeep           = "templates-keep"
	KeyHideAdminChrome         = "hide-admin-chrome"
	KeyColumnFieldsKeep        = "column-fields-keep"
	KeyClearDeprecatedFlags    = "clear-deprecated-flags"
	KeyDefaultEditorPostTypes  = "default-editor-post-types"
	KeyDisableFrontScript      = "disable-front-script"
)

// Raw is the format-agnostic result of parsing one or more settings files.
type Raw map[string]cty.Value

// Settings is the effective feature configuration. It is immutable once
// decoded; the zero value disables every feature.
type Settings struct {
	// Catalog overrides the host's module catalog when non-empty.
	Catalog []string

	EnabledModules          []string
	UseGridRewrite          bool
	DeregisterFrontendStyle bool
	DisableFrontendEditor   bool
	RemoveClassField        bool
	RemoveDesignTab         bool
	RowLayoutsKeep          KeepList
	SetAsTheme              bool
	DisableGridAdminEntries bool
	TemplatesKeep           KeepList
	HideAdminChrome         bool
	ColumnFieldsKeep        KeepList
	ClearDeprecatedFlags    bool
	DefaultEditorPostTypes  []string
	DisableFrontScript      bool
}

// Warning describes a settings value that was ignored.
type Warning struct {
	Key     string
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Key, w.Message)
}

// Decode converts a Raw map into Settings. Unknown keys and values of the
// wrong shape are reported as warnings, never as errors.
func Decode(raw Raw) (Settings, []Warning) {
	d := decoder{raw: raw}
	s := Settings{
		Catalog:                 d.strings(KeyCatalog),
		EnabledModules:          d.strings(KeyEnabledModules),
		UseGridRewrite:          d.flag(KeyUseGridRewrite),
		DeregisterFrontendStyle: d.flag(KeyDeregisterFrontendStyle),
		DisableFrontendEditor:   d.flag(KeyDisableFrontendEditor),
		RemoveClassField:        d.flag(KeyRemoveClassField),
		RemoveDesignTab:         d.flag(KeyRemoveDesignTab),
		RowLayoutsKeep:          d.keepList(KeyRowLayoutsKeep),
		SetAsTheme:              d.flag(KeySetAsTheme),
		DisableGridAdminEntries: d.flag(KeyDisableGridAdminEntries),
		TemplatesKeep:           d.keepList(KeyTemplatesKeep),
		HideAdminChrome:         d.flag(KeyHideAdminChrome),
		ColumnFieldsKeep:        d.keepList(KeyColumnFieldsKeep),
		ClearDeprecatedFlags:    d.flag(KeyClearDeprecatedFlags),
		DefaultEditorPostTypes:  d.strings(KeyDefaultEditorPostTypes),
		DisableFrontScript:      d.flag(KeyDisableFrontScript),
	}

	var unknown []string
	for key := range raw {
		if _, ok := d.seen[key]; !ok {
			unknown = append(unknown, key)
		}
	}
	sort.Strings(unknown)
	for _, key := range unknown {
		d.warn(key, "unknown setting, ignored")
	}

	return s, d.warnings
}

type decoder struct {
	raw      Raw
	seen     map[string]struct{}
	warnings []Warning
}

func (d *decoder) lookup(key string) (cty.Value, bool) {
	if d.seen == nil {
		d.seen = make(map[string]struct{})
	}
	d.seen[key] = struct{}{}
	v, ok := d.raw[key]
	if !ok || v.IsNull() {
		return cty.NilVal, false
	}
	return v, true
}

func (d *decoder) warn(key, format string, args ...any) {
	d.warnings = append(d.warnings, Warning{Key: key, Message: fmt.Sprintf(format, args...)})
}

// flag reads a boolean feature switch. Anything but a known bool leaves the
// feature off.
func (d *decoder) flag(key string) bool {
	v, ok := d.lookup(key)
	if !ok {
		return false
	}
	if !v.IsKnown() || !v.Type().Equals(cty.Bool) {
		d.warn(key, "expected a bool, got %s; feature disabled", v.Type().FriendlyName())
		return false
	}
	return v.True()
}

// strings reads a plain list of names. Non-list values decode to nil.
func (d *decoder) strings(key string) []string {
	k := d.keepList(key)
	if k.IsAll() {
		d.warn(key, "%q is not accepted here; feature disabled", AllSentinel)
	}
	return k.Items()
}

func (d *decoder) keepList(key string) KeepList {
	v, ok := d.lookup(key)
	if !ok {
		return KeepList{}
	}
	items, isList, err := toStrings(v)
	switch {
	case isList && err == nil:
		return Keep(items...)
	case isList:
		d.warn(key, "%v; feature disabled", err)
		return NotAList()
	}
	if v.IsKnown() && v.Type().Equals(cty.String) && v.AsString() == AllSentinel {
		return KeepAll()
	}
	d.warn(key, "expected a list of strings or %q, got %s; feature disabled", AllSentinel, v.Type().FriendlyName())
	return NotAList()
}

// toStrings flattens a cty sequence of scalars into strings.
func toStrings(v cty.Value) ([]string, bool, error) {
	ty := v.Type()
	if !ty.IsListType() && !ty.IsTupleType() && !ty.IsSetType() {
		return nil, false, nil
	}
	if !v.IsWhollyKnown() {
		return nil, true, fmt.Errorf("list contains unknown values")
	}
	items := make([]string, 0, v.LengthInt())
	for it := v.ElementIterator(); it.Next(); {
		idx, el := it.Element()
		if el.IsNull() {
			return nil, true, fmt.Errorf("element %s is null", idx.GoString())
		}
		str, err := convert.Convert(el, cty.String)
		if err != nil {
			return nil, true, fmt.Errorf("element %s: %w", idx.GoString(), err)
		}
		items = append(items, str.AsString())
	}
	return items, true, nil
}

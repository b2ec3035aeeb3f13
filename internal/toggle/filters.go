package toggle

import "strings"

// gridTags are the shortcodes whose CSS classes are rewritten.
var gridTags = map[string]struct{}{
	"vc_row":          {},
	"vc_column":       {},
	"vc_row_inner":    {},
	"vc_column_inner": {},
}

// droppedClasses are removed as whole tokens before the prefix strip, so
// "vc_row-fluid" never degrades into a stray "row-fluid".
var droppedClasses = map[string]struct{}{
	"wpb_row":             {},
	"vc_row-fluid":        {},
	"vc_column_container": {},
}

const builderClassPrefix = "vc_"

// RewriteGridClasses strips page-builder class names from a grid element's
// class string. Strings for other tags are returned unchanged. The result is a
// fixed point: rewriting it again yields the same string.
func RewriteGridClasses(classes, tag string) string {
	if _, ok := gridTags[tag]; !ok {
		return classes
	}

	tokens := strings.Fields(classes)
	kept := tokens[:0]
	for _, tok := range tokens {
		if tok = stripBuilderClass(tok); tok != "" {
			kept = append(kept, tok)
		}
	}
	return strings.Join(kept, " ")
}

// stripBuilderClass removes the builder prefix from tok, returning "" when tok
// is, or unwraps to, one of the dropped classes.
func stripBuilderClass(tok string) string {
	for {
		if _, drop := droppedClasses[tok]; drop {
			return ""
		}
		if !strings.HasPrefix(tok, builderClassPrefix) {
			return tok
		}
		tok = strings.TrimPrefix(tok, builderClassPrefix)
	}
}

// Prune returns the catalog entries absent from the whitelist, in catalog
// order.
func Prune(catalog []string, whitelist map[string]struct{}) []string {
	var removed []string
	for _, name := range catalog {
		if _, ok := whitelist[name]; !ok {
			removed = append(removed, name)
		}
	}
	return removed
}

// FilterTemplates keeps the templates whose CustomClass is in keep. A nil or
// empty keep set yields an empty, non-nil result.
func FilterTemplates(templates []Template, keep map[string]struct{}) []Template {
	out := []Template{}
	if len(keep) == 0 {
		return out
	}
	for _, tpl := range templates {
		if _, ok := keep[tpl.CustomClass]; ok {
			out = append(out, tpl)
		}
	}
	return out
}

// FilterParams keeps the params whose name is in keep, preserving order.
func FilterParams(params []Param, keep map[string]struct{}) []Param {
	out := []Param{}
	for _, p := range params {
		if _, ok := keep[p.Name]; ok {
			out = append(out, p)
		}
	}
	return out
}

// PruneRowLayouts deletes every layout whose title is not in keep and returns
// how many were removed.
func PruneRowLayouts(layouts map[string]RowLayout, keep map[string]struct{}) int {
	removed := 0
	for key, layout := range layouts {
		if _, ok := keep[layout.Title]; !ok {
			delete(layouts, key)
			removed++
		}
	}
	return removed
}

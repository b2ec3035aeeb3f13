package toggle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func set(items ...string) map[string]struct{} {
	s := make(map[string]struct{}, len(items))
	for _, item := range items {
		s[item] = struct{}{}
	}
	return s
}

func TestRewriteGridClasses(t *testing.T) {
	testCases := []struct {
		name    string
		classes string
		tag     string
		want    string
	}{
		{
			name:    "row with every builder class",
			classes: "wpb_row vc_row-fluid vc_column_container vc_row other",
			tag:     "vc_row",
			want:    "row other",
		},
		{
			name:    "column keeps bootstrap classes",
			classes: "wpb_column vc_column_container vc_col-sm-6",
			tag:     "vc_column",
			want:    "wpb_column col-sm-6",
		},
		{
			name:    "inner row",
			classes: "vc_row wpb_row vc_inner vc_row-fluid",
			tag:     "vc_row_inner",
			want:    "row inner",
		},
		{
			name:    "other tags untouched",
			classes: "wpb_row vc_row-fluid vc_btn",
			tag:     "vc_btn",
			want:    "wpb_row vc_row-fluid vc_btn",
		},
		{
			name:    "empty string",
			classes: "",
			tag:     "vc_column_inner",
			want:    "",
		},
		{
			name:    "prefix stripped down to a dropped class",
			classes: "vc_wpb_row custom",
			tag:     "vc_row",
			want:    "custom",
		},
		{
			name:    "doubled prefix around a compound class",
			classes: "vc_vc_row-fluid x",
			tag:     "vc_row",
			want:    "x",
		},
		{
			name:    "bare prefix token disappears",
			classes: "vc_ a",
			tag:     "vc_column",
			want:    "a",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, RewriteGridClasses(tc.classes, tc.tag))
		})
	}
}

func TestRewriteGridClasses_FixedPoint(t *testing.T) {
	inputs := []string{
		"wpb_row vc_row-fluid vc_column_container vc_row other",
		"vc_vc_row-fluid vc_vc_x",
		"  vc_row   vc_column   ",
		"vc_wpb_row vc_vc_column_container",
		"row other",
	}
	for tag := range gridTags {
		for _, in := range inputs {
			once := RewriteGridClasses(in, tag)
			assert.Equal(t, once, RewriteGridClasses(once, tag), "tag=%s input=%q", tag, in)
		}
	}
}

func TestPrune(t *testing.T) {
	t.Run("set difference in catalog order", func(t *testing.T) {
		assert.Equal(t, []string{"A", "C"}, Prune([]string{"A", "B", "C"}, set("B")))
	})

	t.Run("whitelist names outside the catalog are ignored", func(t *testing.T) {
		assert.Equal(t, []string{"A"}, Prune([]string{"A", "B"}, set("B", "Z")))
	})

	t.Run("exact membership only", func(t *testing.T) {
		assert.Equal(t, []string{"vc_row_inner"}, Prune([]string{"vc_row", "vc_row_inner"}, set("vc_row")))
	})

	t.Run("full whitelist removes nothing", func(t *testing.T) {
		assert.Empty(t, Prune([]string{"A", "B"}, set("A", "B")))
	})
}

func TestFilterTemplates(t *testing.T) {
	templates := []Template{
		{Name: "Hero", CustomClass: "hero"},
		{Name: "About", CustomClass: "about"},
		{Name: "Hero 2", CustomClass: "hero"},
	}

	t.Run("nil keep set denies everything", func(t *testing.T) {
		got := FilterTemplates(templates, nil)
		require.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("keeps matching discriminators in order", func(t *testing.T) {
		got := FilterTemplates(templates, set("hero"))
		assert.Equal(t, []Template{templates[0], templates[2]}, got)
	})

	t.Run("does not alias the input", func(t *testing.T) {
		got := FilterTemplates(templates, set("hero", "about"))
		require.Len(t, got, 3)
		got[0].Name = "changed"
		assert.Equal(t, "Hero", templates[0].Name)
	})
}

func TestFilterParams(t *testing.T) {
	params := []Param{{Name: "width"}, {Name: "el_class"}, {Name: "css"}, {Name: "offset"}}

	assert.Equal(t, []Param{{Name: "width"}, {Name: "offset"}}, FilterParams(params, set("offset", "width")))
	assert.Equal(t, []Param{}, FilterParams(params, set()))
	assert.Equal(t, []Param{}, FilterParams(nil, set("width")))
}

func TestPruneRowLayouts(t *testing.T) {
	layouts := map[string]RowLayout{
		"0": {Title: "1/1"},
		"1": {Title: "1/2 + 1/2"},
		"2": {Title: "2/3 + 1/3"},
	}

	removed := PruneRowLayouts(layouts, set("1/1", "2/3 + 1/3", "missing"))
	assert.Equal(t, 1, removed)
	assert.Equal(t, map[string]RowLayout{
		"0": {Title: "1/1"},
		"2": {Title: "2/3 + 1/3"},
	}, layouts)

	assert.Equal(t, 0, PruneRowLayouts(layouts, set("1/1", "2/3 + 1/3")))
	assert.Equal(t, 2, PruneRowLayouts(layouts, set()))
	assert.Empty(t, layouts)
}

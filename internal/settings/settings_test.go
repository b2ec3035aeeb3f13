package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func strs(items ...string) cty.Value {
	vals := make([]cty.Value, len(items))
	for i, item := range items {
		vals[i] = cty.StringVal(item)
	}
	return cty.TupleVal(vals)
}

func TestDecode_AllFeatures(t *testing.T) {
	raw := Raw{
		KeyCatalog:                 strs("vc_row", "vc_column"),
		KeyEnabledModules:          strs("vc_row"),
		KeyUseGridRewrite:          cty.True,
		KeyDeregisterFrontendStyle: cty.True,
		KeyDisableFrontendEditor:   cty.True,
		KeyRemoveClassField:        cty.True,
		KeyRemoveDesignTab:         cty.False,
		KeyRowLayoutsKeep:          strs("1/1"),
		KeySetAsTheme:              cty.True,
		KeyDisableGridAdminEntries: cty.True,
		KeyTemplatesKeep:           cty.ListVal([]cty.Value{cty.StringVal("hero")}),
		KeyHideAdminChrome:         cty.True,
		KeyColumnFieldsKeep:        cty.StringVal(AllSentinel),
		KeyClearDeprecatedFlags:    cty.True,
		KeyDefaultEditorPostTypes:  strs("page", "post"),
		KeyDisableFrontScript:      cty.True,
	}

	s, warnings := Decode(raw)
	assert.Empty(t, warnings)

	assert.Equal(t, []string{"vc_row", "vc_column"}, s.Catalog)
	assert.Equal(t, []string{"vc_row"}, s.EnabledModules)
	assert.True(t, s.UseGridRewrite)
	assert.True(t, s.DeregisterFrontendStyle)
	assert.True(t, s.DisableFrontendEditor)
	assert.True(t, s.RemoveClassField)
	assert.False(t, s.RemoveDesignTab)
	assert.Equal(t, []string{"1/1"}, s.RowLayoutsKeep.Items())
	assert.True(t, s.SetAsTheme)
	assert.True(t, s.DisableGridAdminEntries)
	assert.Equal(t, []string{"hero"}, s.TemplatesKeep.Items())
	assert.True(t, s.HideAdminChrome)
	assert.True(t, s.ColumnFieldsKeep.IsAll())
	assert.True(t, s.ClearDeprecatedFlags)
	assert.Equal(t, []string{"page", "post"}, s.DefaultEditorPostTypes)
	assert.True(t, s.DisableFrontScript)
}

func TestDecode_Empty(t *testing.T) {
	s, warnings := Decode(Raw{})
	assert.Empty(t, warnings)
	assert.Equal(t, Settings{}, s)
	assert.False(t, s.RowLayoutsKeep.IsSet())
}

func TestDecode_ShapeMismatch(t *testing.T) {
	testCases := []struct {
		name  string
		key   string
		value cty.Value
		check func(t *testing.T, s Settings)
	}{
		{
			name:  "string for a flag",
			key:   KeyUseGridRewrite,
			value: cty.StringVal("yes"),
			check: func(t *testing.T, s Settings) { assert.False(t, s.UseGridRewrite) },
		},
		{
			name:  "number for a flag",
			key:   KeySetAsTheme,
			value: cty.NumberIntVal(1),
			check: func(t *testing.T, s Settings) { assert.False(t, s.SetAsTheme) },
		},
		{
			name:  "scalar keep-list",
			key:   KeyRowLayoutsKeep,
			value: cty.StringVal("1/1"),
			check: func(t *testing.T, s Settings) {
				assert.True(t, s.RowLayoutsKeep.IsSet())
				assert.False(t, s.RowLayoutsKeep.IsList())
			},
		},
		{
			name:  "bool keep-list",
			key:   KeyColumnFieldsKeep,
			value: cty.True,
			check: func(t *testing.T, s Settings) { assert.False(t, s.ColumnFieldsKeep.IsList()) },
		},
		{
			name:  "nested list element",
			key:   KeyTemplatesKeep,
			value: cty.TupleVal([]cty.Value{cty.StringVal("a"), strs("b")}),
			check: func(t *testing.T, s Settings) { assert.False(t, s.TemplatesKeep.IsList()) },
		},
		{
			name:  "all for a plain list",
			key:   KeyEnabledModules,
			value: cty.StringVal(AllSentinel),
			check: func(t *testing.T, s Settings) { assert.Nil(t, s.EnabledModules) },
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s, warnings := Decode(Raw{tc.key: tc.value})
			require.Len(t, warnings, 1)
			assert.Equal(t, tc.key, warnings[0].Key)
			tc.check(t, s)
		})
	}
}

func TestDecode_Edges(t *testing.T) {
	t.Run("null is absent", func(t *testing.T) {
		s, warnings := Decode(Raw{KeyRowLayoutsKeep: cty.NullVal(cty.List(cty.String))})
		assert.Empty(t, warnings)
		assert.False(t, s.RowLayoutsKeep.IsSet())
	})

	t.Run("empty list stays a list", func(t *testing.T) {
		s, warnings := Decode(Raw{KeyRowLayoutsKeep: cty.EmptyTupleVal})
		assert.Empty(t, warnings)
		assert.True(t, s.RowLayoutsKeep.IsList())
		assert.Zero(t, s.RowLayoutsKeep.Len())
	})

	t.Run("numbers in a list become strings", func(t *testing.T) {
		s, warnings := Decode(Raw{KeyColumnFieldsKeep: cty.TupleVal([]cty.Value{cty.NumberIntVal(12)})})
		assert.Empty(t, warnings)
		assert.Equal(t, []string{"12"}, s.ColumnFieldsKeep.Items())
	})

	t.Run("unknown keys are reported in order", func(t *testing.T) {
		_, warnings := Decode(Raw{"zeta": cty.True, "alpha": cty.True})
		require.Len(t, warnings, 2)
		assert.Equal(t, "alpha", warnings[0].Key)
		assert.Equal(t, "zeta", warnings[1].Key)
		assert.Contains(t, warnings[0].String(), "unknown setting")
	})
}

func TestKeepList(t *testing.T) {
	var absent KeepList
	assert.False(t, absent.IsSet())
	assert.Nil(t, absent.Items())
	assert.Equal(t, "<absent>", absent.String())

	all := KeepAll()
	assert.True(t, all.IsSet())
	assert.True(t, all.IsAll())
	assert.False(t, all.IsList())
	assert.Equal(t, "all", all.String())

	bad := NotAList()
	assert.True(t, bad.IsSet())
	assert.False(t, bad.IsList())
	assert.Equal(t, "<not a list>", bad.String())

	src := []string{"a", "b"}
	list := Keep(src...)
	src[0] = "changed"
	assert.Equal(t, []string{"a", "b"}, list.Items())
	assert.Equal(t, map[string]struct{}{"a": {}, "b": {}}, list.Set())
	assert.Equal(t, `["a", "b"]`, list.String())

	empty := Keep()
	assert.True(t, empty.IsList())
	assert.Equal(t, []string{}, empty.Items())
}

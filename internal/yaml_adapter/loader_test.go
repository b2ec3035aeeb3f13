package yaml_adapter

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/vctoggle/internal/ctxlog"
	"github.com/specialistvlad/vctoggle/internal/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

const sample = `
enabled-modules: [vc_row, vc_column]
deregister-frontend-style: true
row-layouts-keep:
  - "1/1"
  - "1/2 + 1/2"
column-fields-keep: all
templates-keep: []
default-editor-post-types: ~
`

func TestLoader_Load(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))

	raw, err := NewLoader().Load(ctxlog.Discard(context.Background()), path)
	require.NoError(t, err)

	s, warnings := settings.Decode(raw)
	assert.Empty(t, warnings)
	assert.Equal(t, []string{"vc_row", "vc_column"}, s.EnabledModules)
	assert.True(t, s.DeregisterFrontendStyle)
	assert.Equal(t, []string{"1/1", "1/2 + 1/2"}, s.RowLayoutsKeep.Items())
	assert.True(t, s.ColumnFieldsKeep.IsAll())
	assert.True(t, s.TemplatesKeep.IsList())
	assert.Nil(t, s.DefaultEditorPostTypes)
}

func TestLoader_Parse(t *testing.T) {
	l := NewLoader()

	t.Run("empty document", func(t *testing.T) {
		raw, err := l.Parse(nil)
		require.NoError(t, err)
		assert.Empty(t, raw)
	})

	t.Run("top level must be a mapping", func(t *testing.T) {
		_, err := l.Parse([]byte("- a\n- b\n"))
		assert.ErrorContains(t, err, "parse settings")
	})

	t.Run("scalars keep their types", func(t *testing.T) {
		raw, err := l.Parse([]byte("a: true\nb: 3\nc: text\nd: {x: [1]}\n"))
		require.NoError(t, err)
		assert.True(t, raw["a"].True())
		assert.True(t, raw["b"].Type().Equals(cty.Number))
		assert.Equal(t, "text", raw["c"].AsString())
		assert.True(t, raw["d"].Type().IsObjectType())
	})

	t.Run("NaN is rejected", func(t *testing.T) {
		for _, doc := range []string{"mystery: .nan\n", "row-layouts-keep: [a, .NaN]\n"} {
			var err error
			assert.NotPanics(t, func() { _, err = l.Parse([]byte(doc)) })
			assert.ErrorContains(t, err, "NaN is not a valid value")
		}
	})

	t.Run("infinity is a number", func(t *testing.T) {
		raw, err := l.Parse([]byte("mystery: .inf\nother: -.inf\n"))
		require.NoError(t, err)
		assert.True(t, raw["mystery"].Type().Equals(cty.Number))
		assert.True(t, raw["mystery"].AsBigFloat().IsInf())
		assert.True(t, raw["other"].AsBigFloat().IsInf())

		_, warnings := settings.Decode(raw)
		assert.Len(t, warnings, 2)
	})

	t.Run("wrong shapes reach the decoder", func(t *testing.T) {
		raw, err := l.Parse([]byte("use-grid-rewrite: \"yes\"\nrow-layouts-keep: {a: b}\n"))
		require.NoError(t, err)
		s, warnings := settings.Decode(raw)
		assert.Len(t, warnings, 2)
		assert.False(t, s.UseGridRewrite)
		assert.False(t, s.RowLayoutsKeep.IsList())
	})
}

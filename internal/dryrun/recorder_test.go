package dryrun

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/specialistvlad/vctoggle/internal/ctxlog"
	"github.com/specialistvlad/vctoggle/internal/settings"
	"github.com/specialistvlad/vctoggle/internal/toggle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func plan(t *testing.T, s settings.Settings, opts ...Option) []*Step {
	t.Helper()
	ctx := ctxlog.Discard(context.Background())
	rec := NewRecorder(opts...)
	toggle.New(rec, []string{"vc_row", "vc_column", "vc_btn"}, s).Apply(ctx)
	rec.Expand(ctx)
	return rec.Steps()
}

func find(steps []*Step, event string) *Step {
	for _, s := range steps {
		if s.Event == event {
			return s
		}
	}
	return nil
}

func actions(steps []*Step) []string {
	var out []string
	for _, s := range steps {
		out = append(out, s.Action)
	}
	return out
}

func TestRecorder_ImmediateCalls(t *testing.T) {
	steps := plan(t, settings.Settings{
		EnabledModules:         []string{"vc_row"},
		DisableFrontendEditor:  true,
		DefaultEditorPostTypes: []string{"page"},
	})

	var calls []string
	for _, s := range steps {
		if s.Kind == KindCall {
			calls = append(calls, s.Action)
		}
	}
	assert.Equal(t, []string{
		"RemoveModule(vc_column)",
		"RemoveModule(vc_btn)",
		"DisableFrontendEditor()",
		"SetDefaultEditorPostTypes(page)",
	}, calls)
}

func TestRecorder_MissingCapability(t *testing.T) {
	steps := plan(t, settings.Settings{DefaultEditorPostTypes: []string{"page"}}, WithoutCapability(toggle.DefaultEditorCap))
	for _, s := range steps {
		assert.NotEqual(t, KindCall, s.Kind)
	}
}

func TestRecorder_ExpandsNestedSubscriptions(t *testing.T) {
	t.Run("outside editor modes", func(t *testing.T) {
		steps := plan(t, settings.Settings{DeregisterFrontendStyle: true}, WithMode("page"))
		initStep := find(steps, toggle.EventInit)
		require.NotNil(t, initStep)
		require.Len(t, initStep.Effects, 1)

		nested := initStep.Effects[0]
		assert.Equal(t, KindSubscribe, nested.Kind)
		assert.Equal(t, toggle.EventEnqueueAssets, nested.Event)
		assert.Equal(t, []string{"DeregisterStyle(js_composer_front)"}, actions(nested.Effects))
	})

	t.Run("inside an editor mode", func(t *testing.T) {
		steps := plan(t, settings.Settings{DeregisterFrontendStyle: true}, WithMode("page_editable"))
		initStep := find(steps, toggle.EventInit)
		require.NotNil(t, initStep)
		assert.Empty(t, initStep.Effects)
	})
}

func TestRecorder_ColumnLookup(t *testing.T) {
	keep := settings.Settings{ColumnFieldsKeep: settings.Keep("width")}

	t.Run("missing module", func(t *testing.T) {
		initStep := find(plan(t, keep), toggle.EventInit)
		require.NotNil(t, initStep)
		assert.Equal(t, []string{"LookupModule(vc_column, <missing>)"}, actions(initStep.Effects))
	})

	t.Run("seeded module", func(t *testing.T) {
		initStep := find(plan(t, keep, WithModule(toggle.ModuleDefinition{
			Name:   toggle.ColumnModule,
			Params: []toggle.Param{{Name: "width"}, {Name: "css"}},
		})), toggle.EventInit)
		require.NotNil(t, initStep)
		assert.Equal(t, []string{"LookupModule(vc_column)", "UpdateModule(vc_column, params=[width])"}, actions(initStep.Effects))
	})
}

func TestRecorder_AdminToolbarPriority(t *testing.T) {
	bar := find(plan(t, settings.Settings{DisableGridAdminEntries: true}), toggle.EventAdminBarMenu)
	require.NotNil(t, bar)
	assert.Equal(t, toggle.PriorityLate, bar.Priority)
	assert.Equal(t, []string{"RemoveAdminToolbarNode(new-vc_grid_item)"}, actions(bar.Effects))
}

func TestRender(t *testing.T) {
	steps := plan(t, settings.Settings{EnabledModules: []string{"vc_row"}, DisableFrontScript: true})

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Render(&buf, steps, FormatText))
		out := buf.String()
		assert.Contains(t, out, "KIND")
		assert.Contains(t, out, "RemoveModule(vc_btn)")
		assert.Contains(t, out, "wp_enqueue_scripts")
		assert.Contains(t, out, "  call")
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Render(&buf, steps, FormatJSON))
		var decoded []map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
		assert.Len(t, decoded, len(steps))
		assert.Equal(t, "call", decoded[0]["kind"])
	})

	t.Run("json empty plan", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Render(&buf, nil, FormatJSON))
		assert.Equal(t, "[]\n", buf.String())
	})

	t.Run("unknown format", func(t *testing.T) {
		assert.ErrorContains(t, Render(&bytes.Buffer{}, steps, "xml"), "unknown plan format")
	})
}

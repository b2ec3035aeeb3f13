package toggle

import (
	"context"

	"github.com/specialistvlad/vctoggle/internal/ctxlog"
	"github.com/specialistvlad/vctoggle/internal/settings"
)

// Host identifiers the features act on.
const (
	FrontendStyleHandle  = "js_composer_front"
	FrontendScriptHandle = "wpb_composer_front_js"
	ClassFieldParam      = "el_class"
	DesignTabParam       = "css"
	ColumnModule         = "vc_column"
	GridItemMenuEntry    = "edit.php?post_type=vc_grid_item"
	WelcomeMenuEntry     = "vc-welcome"
	GridItemToolbarNode  = "new-vc_grid_item"
	DefaultEditorCap     = "vc_set_default_editor_post_types"
)

// EditorModes are the host modes in which the frontend style is kept.
var EditorModes = []string{"page_editable", "admin_page", "admin_frontend_editor"}

// DeprecatedModules get their deprecation flag cleared.
var DeprecatedModules = []string{"vc_tabs", "vc_accordion", "vc_tour"}

const adminChromeCSS = `<style type="text/css">
.vc_control.column_toggle.vc_column-toggle,
#vc_post-settings-button,
#vc_logo
{
    display:none; visibility: hidden;
}
.vc_navbar .vc_navbar-header
{
    display:block; visibility: visible;
}
</style>`

type feature struct {
	name  string
	apply func(e *Engine, ctx context.Context) bool
}

// registrationTable lists every feature in the order Apply runs them. Each
// entry reports whether it registered or mutated anything.
var registrationTable = []feature{
	{settings.KeyEnabledModules, (*Engine).pruneModules},
	{settings.KeyUseGridRewrite, (*Engine).rewriteGridClasses},
	{settings.KeyDeregisterFrontendStyle, (*Engine).deregisterFrontendStyle},
	{settings.KeyDisableFrontendEditor, (*Engine).disableFrontendEditor},
	{settings.KeyRemoveClassField, (*Engine).removeClassField},
	{settings.KeyRemoveDesignTab, (*Engine).removeDesignTab},
	{settings.KeyRowLayoutsKeep, (*Engine).filterRowLayouts},
	{settings.KeySetAsTheme, (*Engine).setAsTheme},
	{settings.KeyDisableGridAdminEntries, (*Engine).disableGridAdminEntries},
	{settings.KeyTemplatesKeep, (*Engine).filterTemplates},
	{settings.KeyHideAdminChrome, (*Engine).hideAdminChrome},
	{settings.KeyColumnFieldsKeep, (*Engine).filterColumnParams},
	{settings.KeyClearDeprecatedFlags, (*Engine).clearDeprecatedFlags},
	{settings.KeyDefaultEditorPostTypes, (*Engine).setDefaultEditorPostTypes},
	{settings.KeyDisableFrontScript, (*Engine).deregisterFrontScript},
}

// pruneModules runs immediately: the host reads its catalog during its own
// initialization, before any deferred event fires.
func (e *Engine) pruneModules(ctx context.Context) bool {
	if len(e.whitelist) == 0 {
		return false
	}
	removed := Prune(e.catalog, e.whitelistSet)
	for _, name := range removed {
		e.host.RemoveModule(name)
	}
	ctxlog.FromContext(ctx).Debug("Modules pruned.", "removed", len(removed), "kept", len(e.catalog)-len(removed))
	return true
}

func (e *Engine) rewriteGridClasses(ctx context.Context) bool {
	if !e.settings.UseGridRewrite {
		return false
	}
	e.subscribe(ctx, settings.KeyUseGridRewrite, EventShortcodeCSSClass, PriorityDefault, gridClassRewriter{})
	return true
}

func (e *Engine) deregisterFrontendStyle(ctx context.Context) bool {
	if !e.settings.DeregisterFrontendStyle {
		return false
	}
	modes := make(map[string]struct{}, len(EditorModes))
	for _, m := range EditorModes {
		modes[m] = struct{}{}
	}
	e.subscribe(ctx, settings.KeyDeregisterFrontendStyle, EventInit, PriorityDefault, styleDeregistrar{
		handle:      FrontendStyleHandle,
		editorModes: modes,
	})
	return true
}

func (e *Engine) disableFrontendEditor(_ context.Context) bool {
	if !e.settings.DisableFrontendEditor {
		return false
	}
	e.host.DisableFrontendEditor()
	return true
}

func (e *Engine) removeClassField(ctx context.Context) bool {
	if !e.settings.RemoveClassField {
		return false
	}
	return e.stripParam(ctx, settings.KeyRemoveClassField, ClassFieldParam)
}

func (e *Engine) removeDesignTab(ctx context.Context) bool {
	if !e.settings.RemoveDesignTab {
		return false
	}
	return e.stripParam(ctx, settings.KeyRemoveDesignTab, DesignTabParam)
}

func (e *Engine) stripParam(ctx context.Context, feature, param string) bool {
	e.subscribe(ctx, feature, EventInit, PriorityDefault, paramStripper{
		modules: e.Whitelist(),
		param:   param,
	})
	return true
}

func (e *Engine) filterRowLayouts(ctx context.Context) bool {
	keep := e.settings.RowLayoutsKeep
	if !keep.IsList() {
		return false
	}
	e.subscribe(ctx, settings.KeyRowLayoutsKeep, EventAfterInitBase, PriorityDefault, rowLayoutFilter{keep: keep.Set()})
	return true
}

func (e *Engine) setAsTheme(ctx context.Context) bool {
	if !e.settings.SetAsTheme {
		return false
	}
	e.subscribe(ctx, settings.KeySetAsTheme, EventBeforeInit, PriorityDefault, action{name: "set as theme", fn: func(_ context.Context, h Host) {
		h.SetAsTheme()
	}})
	return true
}

// disableGridAdminEntries removes the toolbar node at late priority, after the
// host has added it.
func (e *Engine) disableGridAdminEntries(ctx context.Context) bool {
	if !e.settings.DisableGridAdminEntries {
		return false
	}
	e.subscribe(ctx, settings.KeyDisableGridAdminEntries, EventAdminMenu, PriorityDefault, action{name: "remove grid admin menu entries", fn: func(_ context.Context, h Host) {
		h.RemoveAdminMenuEntry(GridItemMenuEntry)
		h.RemoveAdminMenuEntry(WelcomeMenuEntry)
	}})
	e.subscribe(ctx, settings.KeyDisableGridAdminEntries, EventAdminBarMenu, PriorityLate, action{name: "remove grid toolbar node", fn: func(_ context.Context, h Host) {
		h.RemoveAdminToolbarNode(GridItemToolbarNode)
	}})
	return true
}

// filterTemplates is always registered. Without a non-empty keep-list every
// default template is denied.
func (e *Engine) filterTemplates(ctx context.Context) bool {
	keep := e.settings.TemplatesKeep
	var set map[string]struct{}
	if keep.IsList() && keep.Len() > 0 {
		set = keep.Set()
	}
	e.subscribe(ctx, settings.KeyTemplatesKeep, EventDefaultTemplates, PriorityDefault, templateFilter{keep: set})
	return true
}

func (e *Engine) hideAdminChrome(ctx context.Context) bool {
	if !e.settings.HideAdminChrome {
		return false
	}
	e.subscribe(ctx, settings.KeyHideAdminChrome, EventAdminHead, PriorityDefault, adminStyleInjector{css: adminChromeCSS})
	return true
}

// filterColumnParams leaves the column alone for "all" and non-list values.
func (e *Engine) filterColumnParams(ctx context.Context) bool {
	keep := e.settings.ColumnFieldsKeep
	if !keep.IsList() {
		return false
	}
	e.subscribe(ctx, settings.KeyColumnFieldsKeep, EventInit, PriorityDefault, columnParamFilter{
		module: ColumnModule,
		keep:   keep.Set(),
	})
	return true
}

func (e *Engine) clearDeprecatedFlags(ctx context.Context) bool {
	if !e.settings.ClearDeprecatedFlags {
		return false
	}
	e.subscribe(ctx, settings.KeyClearDeprecatedFlags, EventAfterInit, PriorityDefault, deprecationClearer{
		modules: append([]string(nil), DeprecatedModules...),
	})
	return true
}

func (e *Engine) setDefaultEditorPostTypes(ctx context.Context) bool {
	types := e.settings.DefaultEditorPostTypes
	if len(types) == 0 {
		return false
	}
	if !e.host.HasCapability(DefaultEditorCap) {
		ctxlog.FromContext(ctx).Debug("Host lacks capability, skipping.", "capability", DefaultEditorCap)
		return false
	}
	e.host.SetDefaultEditorPostTypes(append([]string(nil), types...))
	return true
}

func (e *Engine) deregisterFrontScript(ctx context.Context) bool {
	if !e.settings.DisableFrontScript {
		return false
	}
	e.subscribe(ctx, settings.KeyDisableFrontScript, EventEnqueueAssets, PriorityDefault, scriptRemover{handle: FrontendScriptHandle})
	return true
}

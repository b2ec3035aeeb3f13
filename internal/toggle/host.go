package toggle

import "context"

// Host lifecycle events the engine subscribes to.
const (
	EventInit              = "init"
	EventEnqueueAssets     = "wp_enqueue_scripts"
	EventShortcodeCSSClass = "vc_shortcodes_css_class"
	EventAfterInitBase     = "vc_after_init_base"
	EventBeforeInit        = "vc_before_init"
	EventAfterInit         = "vc_after_init"
	EventAdminMenu         = "admin_menu"
	EventAdminBarMenu      = "admin_bar_menu"
	EventAdminHead         = "admin_head"
	EventDefaultTemplates  = "vc_load_default_templates"
)

// Subscription priorities. Lower runs earlier.
const (
	PriorityDefault = 10
	PriorityLate    = 999
)

// Host is the page-builder runtime the engine configures. The engine only
// issues registrations and mutations through it; every piece of state behind
// it belongs to the host.
type Host interface {
	// Subscribe registers cb to run whenever event fires. It must not block.
	Subscribe(event string, priority int, cb Callback)

	RemoveModule(name string)
	RemoveModuleParam(module, param string)
	// LookupModule returns the module definition, or false when the host
	// does not know the module.
	LookupModule(name string) (ModuleDefinition, bool)
	UpdateModule(name string, patch ModulePatch)

	// RowLayouts returns the live row-layout registry. Deleting from the
	// returned map removes the layout from the host.
	RowLayouts() map[string]RowLayout

	// CurrentMode reports the editor/render mode the host is in.
	CurrentMode() string
	DisableFrontendEditor()
	SetAsTheme()

	DeregisterStyle(handle string)
	DeregisterScript(handle string)
	InjectAdminStyle(css string)

	RemoveAdminMenuEntry(id string)
	RemoveAdminToolbarNode(id string)

	SetDefaultEditorPostTypes(types []string)
	HasCapability(name string) bool
}

// Callback is run by the host each time the subscribed event fires. Filters
// return the rewritten payload; actions return the payload they were given.
// Implementations must be idempotent: the host may fire an event many times.
type Callback interface {
	Invoke(ctx context.Context, host Host, payload any) any
}

// Subscription is a (event, priority, callback) registration.
type Subscription struct {
	Event    string
	Priority int
	Callback Callback
}

// ModuleDefinition is the host's description of a module.
type ModuleDefinition struct {
	Name       string
	Params     []Param
	Deprecated bool
}

// Param is one editable field of a module.
type Param struct {
	Name    string
	Type    string
	Heading string
}

// ModulePatch carries the fields UpdateModule should replace. Nil fields are
// left untouched.
type ModulePatch struct {
	Params     *[]Param
	Deprecated *bool
}

// RowLayout is an entry of the host's row-layout registry.
type RowLayout struct {
	Title     string
	Cells     string
	IconClass string
}

// Template is a default page template offered by the host. CustomClass is the
// field keep-lists are matched against.
type Template struct {
	Name        string
	CustomClass string
	Content     string
}

// ClassPayload is the payload of EventShortcodeCSSClass.
type ClassPayload struct {
	Classes string
	Tag     string
}

package testutil

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/specialistvlad/vctoggle/internal/toggle"
)

// Call is one recorded host primitive invocation.
type Call struct {
	Method string
	Args   []string
}

func (c Call) String() string {
	return fmt.Sprintf("%s(%s)", c.Method, strings.Join(c.Args, ", "))
}

type subscription struct {
	priority int
	seq      int
	cb       toggle.Callback
}

// Host is an in-memory toggle.Host. It keeps just enough page-builder state to
// observe what the engine changes, and fires events in priority order, then
// registration order.
type Host struct {
	mu sync.Mutex

	mode         string
	capabilities map[string]bool

	modules       map[string]toggle.ModuleDefinition
	layouts       map[string]toggle.RowLayout
	styles        map[string]struct{}
	scripts       map[string]struct{}
	menu          map[string]struct{}
	toolbar       map[string]struct{}
	postTypes     []string
	adminHead     []string
	theme         bool
	frontEditorOn bool

	subs  map[string][]subscription
	seq   int
	calls []Call
}

// NewHost creates a host knowing the given modules. Every module starts with
// the "el_class" and "css" params.
func NewHost(catalog ...string) *Host {
	h := &Host{
		capabilities:  map[string]bool{toggle.DefaultEditorCap: true},
		modules:       make(map[string]toggle.ModuleDefinition),
		layouts:       make(map[string]toggle.RowLayout),
		styles:        map[string]struct{}{toggle.FrontendStyleHandle: {}},
		scripts:       map[string]struct{}{toggle.FrontendScriptHandle: {}},
		menu:          map[string]struct{}{toggle.GridItemMenuEntry: {}, toggle.WelcomeMenuEntry: {}},
		toolbar:       map[string]struct{}{toggle.GridItemToolbarNode: {}},
		frontEditorOn: true,
		subs:          make(map[string][]subscription),
	}
	for _, name := range catalog {
		h.modules[name] = toggle.ModuleDefinition{
			Name: name,
			Params: []toggle.Param{
				{Name: toggle.ClassFieldParam, Type: "textfield", Heading: "Extra class name"},
				{Name: toggle.DesignTabParam, Type: "css_editor", Heading: "CSS box"},
			},
		}
	}
	return h
}

// SetMode sets the value CurrentMode reports.
func (h *Host) SetMode(mode string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.mode = mode
}

// SetCapability toggles a named host capability.
func (h *Host) SetCapability(name string, ok bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.capabilities[name] = ok
}

// PutModule adds or replaces a module definition.
func (h *Host) PutModule(def toggle.ModuleDefinition) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.modules[def.Name] = def
}

// PutRowLayout adds a row layout under key.
func (h *Host) PutRowLayout(key string, layout toggle.RowLayout) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.layouts[key] = layout
}

// Fire runs every callback subscribed to event and threads payload through
// them. Subscriptions added while firing run on the next Fire.
func (h *Host) Fire(ctx context.Context, event string, payload any) any {
	h.mu.Lock()
	subs := slices.Clone(h.subs[event])
	h.mu.Unlock()

	sort.SliceStable(subs, func(i, j int) bool {
		if subs[i].priority != subs[j].priority {
			return subs[i].priority < subs[j].priority
		}
		return subs[i].seq < subs[j].seq
	})
	for _, s := range subs {
		payload = s.cb.Invoke(ctx, h, payload)
	}
	return payload
}

// Subscriptions returns the number of callbacks registered for event.
func (h *Host) Subscriptions(event string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[event])
}

// Priorities returns the priorities registered for event, in registration order.
func (h *Host) Priorities(event string) []int {
	h.mu.Lock()
	defer h.mu.Unlock()
	var out []int
	for _, s := range h.subs[event] {
		out = append(out, s.priority)
	}
	return out
}

// Events returns every event with at least one subscription, sorted.
func (h *Host) Events() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	var out []string
	for ev := range h.subs {
		out = append(out, ev)
	}
	sort.Strings(out)
	return out
}

// Calls returns the recorded primitive calls, excluding Subscribe and the
// read-only lookups.
func (h *Host) Calls() []Call {
	h.mu.Lock()
	defer h.mu.Unlock()
	return slices.Clone(h.calls)
}

// CallsTo returns the recorded calls of one method.
func (h *Host) CallsTo(method string) []Call {
	var out []Call
	for _, c := range h.Calls() {
		if c.Method == method {
			out = append(out, c)
		}
	}
	return out
}

// ModuleNames returns the modules still known to the host, sorted.
func (h *Host) ModuleNames() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	var out []string
	for name := range h.modules {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Module returns a copy of a module definition.
func (h *Host) Module(name string) (toggle.ModuleDefinition, bool) {
	return h.LookupModule(name)
}

// LayoutTitles returns the titles of the remaining row layouts, sorted.
func (h *Host) LayoutTitles() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	var out []string
	for _, l := range h.layouts {
		out = append(out, l.Title)
	}
	sort.Strings(out)
	return out
}

// HasStyle reports whether a style handle is still registered.
func (h *Host) HasStyle(handle string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, ok := h.styles[handle]
	return ok
}

// HasScript reports whether a script handle is still registered.
func (h *Host) HasScript(handle string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, ok := h.scripts[handle]
	return ok
}

// HasMenuEntry reports whether an admin menu entry is still present.
func (h *Host) HasMenuEntry(id string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, ok := h.menu[id]
	return ok
}

// HasToolbarNode reports whether an admin toolbar node is still present.
func (h *Host) HasToolbarNode(id string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, ok := h.toolbar[id]
	return ok
}

// IsTheme reports whether SetAsTheme was called.
func (h *Host) IsTheme() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.theme
}

// FrontendEditorEnabled reports whether the frontend editor is still on.
func (h *Host) FrontendEditorEnabled() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.frontEditorOn
}

// DefaultEditorPostTypes returns the value last set by the engine.
func (h *Host) DefaultEditorPostTypes() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return slices.Clone(h.postTypes)
}

// AdminHead returns the markup injected into the admin head.
func (h *Host) AdminHead() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return slices.Clone(h.adminHead)
}

func (h *Host) record(method string, args ...string) {
	h.calls = append(h.calls, Call{Method: method, Args: args})
}

// --- toggle.Host ---

func (h *Host) Subscribe(event string, priority int, cb toggle.Callback) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.seq++
	h.subs[event] = append(h.subs[event], subscription{priority: priority, seq: h.seq, cb: cb})
}

func (h *Host) RemoveModule(name string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.record("RemoveModule", name)
	delete(h.modules, name)
}

func (h *Host) RemoveModuleParam(module, param string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.record("RemoveModuleParam", module, param)
	def, ok := h.modules[module]
	if !ok {
		return
	}
	def.Params = slices.DeleteFunc(slices.Clone(def.Params), func(p toggle.Param) bool {
		return p.Name == param
	})
	h.modules[module] = def
}

func (h *Host) LookupModule(name string) (toggle.ModuleDefinition, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	def, ok := h.modules[name]
	if !ok {
		return toggle.ModuleDefinition{}, false
	}
	def.Params = slices.Clone(def.Params)
	return def, true
}

func (h *Host) UpdateModule(name string, patch toggle.ModulePatch) {
	h.mu.Lock()
	defer h.mu.Unlock()
	var args []string
	if patch.Params != nil {
		names := make([]string, 0, len(*patch.Params))
		for _, p := range *patch.Params {
			names = append(names, p.Name)
		}
		args = append(args, "params=["+strings.Join(names, " ")+"]")
	}
	if patch.Deprecated != nil {
		args = append(args, fmt.Sprintf("deprecated=%t", *patch.Deprecated))
	}
	h.record("UpdateModule", append([]string{name}, args...)...)

	def, ok := h.modules[name]
	if !ok {
		def = toggle.ModuleDefinition{Name: name}
	}
	if patch.Params != nil {
		def.Params = slices.Clone(*patch.Params)
	}
	if patch.Deprecated != nil {
		def.Deprecated = *patch.Deprecated
	}
	h.modules[name] = def
}

func (h *Host) RowLayouts() map[string]toggle.RowLayout {
	return h.layouts
}

func (h *Host) CurrentMode() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.mode
}

func (h *Host) DisableFrontendEditor() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.record("DisableFrontendEditor")
	h.frontEditorOn = false
}

func (h *Host) SetAsTheme() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.record("SetAsTheme")
	h.theme = true
}

func (h *Host) DeregisterStyle(handle string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.record("DeregisterStyle", handle)
	delete(h.styles, handle)
}

func (h *Host) DeregisterScript(handle string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.record("DeregisterScript", handle)
	delete(h.scripts, handle)
}

func (h *Host) InjectAdminStyle(css string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.record("InjectAdminStyle")
	h.adminHead = append(h.adminHead, css)
}

func (h *Host) RemoveAdminMenuEntry(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.record("RemoveAdminMenuEntry", id)
	delete(h.menu, id)
}

func (h *Host) RemoveAdminToolbarNode(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.record("RemoveAdminToolbarNode", id)
	delete(h.toolbar, id)
}

func (h *Host) SetDefaultEditorPostTypes(types []string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.record("SetDefaultEditorPostTypes", types...)
	h.postTypes = slices.Clone(types)
}

func (h *Host) HasCapability(name string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.capabilities[name]
}

var _ toggle.Host = (*Host)(nil)

// Package dryrun provides a toggle.Host that performs nothing and records
// everything, so a settings file can be previewed as a registration plan.
package dryrun

import (
	"context"
	"fmt"
	"strings"

	"github.com/specialistvlad/vctoggle/internal/ctxlog"
	"github.com/specialistvlad/vctoggle/internal/toggle"
)

// Step kinds.
const (
	KindCall      = "call"
	KindSubscribe = "subscribe"
)

// maxExpandDepth bounds callbacks that keep subscribing new callbacks.
const maxExpandDepth = 8

// Step is one recorded host interaction. Subscriptions carry the calls their
// callback made when expanded.
type Step struct {
	Kind     string  `json:"kind"`
	Event    string  `json:"event,omitempty"`
	Priority int     `json:"priority,omitempty"`
	Action   string  `json:"action"`
	Effects  []*Step `json:"effects,omitempty"`

	cb       toggle.Callback
	expanded bool
}

// Recorder is a toggle.Host that records every call. It is meant for a single
// goroutine.
type Recorder struct {
	mode    string
	caps    map[string]bool
	modules map[string]toggle.ModuleDefinition
	layouts map[string]toggle.RowLayout

	steps []*Step
	scope *Step
}

// Option configures a Recorder.
type Option func(*Recorder)

// WithMode sets the mode reported by CurrentMode.
func WithMode(mode string) Option {
	return func(r *Recorder) { r.mode = mode }
}

// WithoutCapability makes HasCapability report false for name. Every other
// capability is assumed present.
func WithoutCapability(name string) Option {
	return func(r *Recorder) { r.caps[name] = false }
}

// WithModule seeds a module definition returned by LookupModule.
func WithModule(def toggle.ModuleDefinition) Option {
	return func(r *Recorder) { r.modules[def.Name] = def }
}

// WithRowLayout seeds an entry of the row-layout registry.
func WithRowLayout(key string, layout toggle.RowLayout) Option {
	return func(r *Recorder) { r.layouts[key] = layout }
}

// NewRecorder creates an empty Recorder.
func NewRecorder(opts ...Option) *Recorder {
	r := &Recorder{
		caps:    make(map[string]bool),
		modules: make(map[string]toggle.ModuleDefinition),
		layouts: make(map[string]toggle.RowLayout),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Steps returns the top-level steps in the order they were recorded.
func (r *Recorder) Steps() []*Step {
	return append([]*Step(nil), r.steps...)
}

// Expand invokes every recorded subscription once with a nil payload and
// records what its callback did. Subscriptions created by a callback are
// expanded in turn.
func (r *Recorder) Expand(ctx context.Context) {
	logger := ctxlog.FromContext(ctx)
	for _, step := range r.Steps() {
		r.expand(ctx, step, 0)
	}
	logger.Debug("Dry-run plan expanded.", "steps", len(r.steps))
}

func (r *Recorder) expand(ctx context.Context, step *Step, depth int) {
	if step.Kind != KindSubscribe || step.cb == nil || step.expanded {
		return
	}
	if depth >= maxExpandDepth {
		ctxlog.FromContext(ctx).Warn("Dry-run expansion too deep, stopping.", "event", step.Event)
		return
	}

	step.expanded = true
	prev := r.scope
	r.scope = step
	step.cb.Invoke(ctx, r, nil)
	r.scope = prev

	for _, child := range step.Effects {
		r.expand(ctx, child, depth+1)
	}
}

func (r *Recorder) add(step *Step) {
	if r.scope != nil {
		r.scope.Effects = append(r.scope.Effects, step)
		return
	}
	r.steps = append(r.steps, step)
}

func (r *Recorder) call(method string, args ...string) {
	r.add(&Step{Kind: KindCall, Action: fmt.Sprintf("%s(%s)", method, strings.Join(args, ", "))})
}

// --- toggle.Host ---

func (r *Recorder) Subscribe(event string, priority int, cb toggle.Callback) {
	r.add(&Step{
		Kind:     KindSubscribe,
		Event:    event,
		Priority: priority,
		Action:   describe(cb),
		cb:       cb,
	})
}

func (r *Recorder) RemoveModule(name string) { r.call("RemoveModule", name) }

func (r *Recorder) RemoveModuleParam(module, param string) {
	r.call("RemoveModuleParam", module, param)
}

func (r *Recorder) LookupModule(name string) (toggle.ModuleDefinition, bool) {
	def, ok := r.modules[name]
	if ok {
		r.call("LookupModule", name)
	} else {
		r.call("LookupModule", name, "<missing>")
	}
	return def, ok
}

func (r *Recorder) UpdateModule(name string, patch toggle.ModulePatch) {
	args := []string{name}
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
	r.call("UpdateModule", args...)
}

func (r *Recorder) RowLayouts() map[string]toggle.RowLayout {
	r.call("RowLayouts")
	return r.layouts
}

func (r *Recorder) CurrentMode() string { return r.mode }

func (r *Recorder) DisableFrontendEditor() { r.call("DisableFrontendEditor") }

func (r *Recorder) SetAsTheme() { r.call("SetAsTheme") }

func (r *Recorder) DeregisterStyle(handle string) { r.call("DeregisterStyle", handle) }

func (r *Recorder) DeregisterScript(handle string) { r.call("DeregisterScript", handle) }

func (r *Recorder) InjectAdminStyle(_ string) { r.call("InjectAdminStyle", "<css>") }

func (r *Recorder) RemoveAdminMenuEntry(id string) { r.call("RemoveAdminMenuEntry", id) }

func (r *Recorder) RemoveAdminToolbarNode(id string) { r.call("RemoveAdminToolbarNode", id) }

func (r *Recorder) SetDefaultEditorPostTypes(types []string) {
	r.call("SetDefaultEditorPostTypes", types...)
}

func (r *Recorder) HasCapability(name string) bool {
	ok, set := r.caps[name]
	return !set || ok
}

func describe(cb toggle.Callback) string {
	if s, ok := cb.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%T", cb)
}

var _ toggle.Host = (*Recorder)(nil)

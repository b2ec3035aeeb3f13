package toggle

import (
	"context"
	"fmt"

	"github.com/specialistvlad/vctoggle/internal/ctxlog"
)

// Each callback is a small value holding the configuration it needs, copied
// at registration time. None of them keeps state between invocations.

// action adapts a configuration-free function to Callback.
type action struct {
	name string
	fn   func(ctx context.Context, host Host)
}

func (a action) Invoke(ctx context.Context, host Host, payload any) any {
	a.fn(ctx, host)
	return payload
}

func (a action) String() string { return a.name }

// gridClassRewriter filters EventShortcodeCSSClass payloads.
type gridClassRewriter struct{}

func (gridClassRewriter) String() string { return "rewrite grid classes" }

func (gridClassRewriter) Invoke(_ context.Context, _ Host, payload any) any {
	switch p := payload.(type) {
	case ClassPayload:
		p.Classes = RewriteGridClasses(p.Classes, p.Tag)
		return p
	case *ClassPayload:
		if p != nil {
			p.Classes = RewriteGridClasses(p.Classes, p.Tag)
		}
		return p
	default:
		return payload
	}
}

// styleDeregistrar defers style removal to the asset phase unless the host is
// rendering one of the live editors.
type styleDeregistrar struct {
	handle      string
	editorModes map[string]struct{}
}

func (d styleDeregistrar) String() string {
	return fmt.Sprintf("deregister style %s outside editor modes", d.handle)
}

func (d styleDeregistrar) Invoke(ctx context.Context, host Host, payload any) any {
	mode := host.CurrentMode()
	if _, editing := d.editorModes[mode]; editing {
		ctxlog.FromContext(ctx).Debug("Keeping frontend style in editor mode.", "mode", mode, "handle", d.handle)
		return payload
	}
	host.Subscribe(EventEnqueueAssets, PriorityDefault, styleRemover{handle: d.handle})
	return payload
}

type styleRemover struct{ handle string }

func (r styleRemover) String() string { return "deregister style " + r.handle }

func (r styleRemover) Invoke(_ context.Context, host Host, payload any) any {
	host.DeregisterStyle(r.handle)
	return payload
}

type scriptRemover struct{ handle string }

func (r scriptRemover) String() string { return "deregister script " + r.handle }

func (r scriptRemover) Invoke(_ context.Context, host Host, payload any) any {
	host.DeregisterScript(r.handle)
	return payload
}

// paramStripper removes one param from every whitelisted module.
type paramStripper struct {
	modules []string
	param   string
}

func (s paramStripper) String() string {
	return fmt.Sprintf("remove param %s from %d modules", s.param, len(s.modules))
}

func (s paramStripper) Invoke(_ context.Context, host Host, payload any) any {
	for _, module := range s.modules {
		host.RemoveModuleParam(module, s.param)
	}
	return payload
}

type rowLayoutFilter struct {
	keep map[string]struct{}
}

func (f rowLayoutFilter) String() string {
	return fmt.Sprintf("keep %d row layouts", len(f.keep))
}

func (f rowLayoutFilter) Invoke(ctx context.Context, host Host, payload any) any {
	layouts := host.RowLayouts()
	if layouts == nil {
		return payload
	}
	if removed := PruneRowLayouts(layouts, f.keep); removed > 0 {
		ctxlog.FromContext(ctx).Debug("Row layouts removed.", "count", removed)
	}
	return payload
}

type templateFilter struct {
	keep map[string]struct{}
}

func (f templateFilter) String() string {
	return fmt.Sprintf("keep %d default templates", len(f.keep))
}

func (f templateFilter) Invoke(_ context.Context, _ Host, payload any) any {
	templates, _ := payload.([]Template)
	return FilterTemplates(templates, f.keep)
}

// columnParamFilter rebuilds a module's param list from a keep set.
type columnParamFilter struct {
	module string
	keep   map[string]struct{}
}

func (f columnParamFilter) String() string {
	return fmt.Sprintf("keep %d params of %s", len(f.keep), f.module)
}

func (f columnParamFilter) Invoke(ctx context.Context, host Host, payload any) any {
	def, ok := host.LookupModule(f.module)
	if !ok || len(def.Params) == 0 {
		ctxlog.FromContext(ctx).Debug("No params to filter.", "module", f.module, "found", ok)
		return payload
	}
	params := FilterParams(def.Params, f.keep)
	host.UpdateModule(f.module, ModulePatch{Params: &params})
	return payload
}

type deprecationClearer struct {
	modules []string
}

func (c deprecationClearer) String() string {
	return fmt.Sprintf("clear deprecated flag on %d modules", len(c.modules))
}

func (c deprecationClearer) Invoke(_ context.Context, host Host, payload any) any {
	for _, module := range c.modules {
		deprecated := false
		host.UpdateModule(module, ModulePatch{Deprecated: &deprecated})
	}
	return payload
}

type adminStyleInjector struct {
	css string
}

func (adminStyleInjector) String() string { return "inject admin style" }

func (i adminStyleInjector) Invoke(_ context.Context, host Host, payload any) any {
	host.InjectAdminStyle(i.css)
	return payload
}

package toggle

import (
	"context"
	"slices"

	"github.com/specialistvlad/vctoggle/internal/ctxlog"
	"github.com/specialistvlad/vctoggle/internal/settings"
)

// Engine translates Settings into registrations against a Host.
type Engine struct {
	host         Host
	catalog      []string
	whitelist    []string
	whitelistSet map[string]struct{}
	settings     settings.Settings
	applied      bool
}

// New creates an Engine for the given host, module catalog and settings. The
// catalog and settings are copied; the host is used as given and may be
// mutated by other parties as well.
//
// New makes no host calls. Module pruning and the other immediate features
// run synchronously inside Apply, before any deferred event can fire, so
// constructing and applying back to back is the host-startup step.
func New(host Host, catalog []string, s settings.Settings) *Engine {
	e := &Engine{
		host:         host,
		catalog:      slices.Clone(catalog),
		whitelistSet: make(map[string]struct{}, len(s.EnabledModules)),
		settings:     s,
	}
	for _, name := range s.EnabledModules {
		if _, dup := e.whitelistSet[name]; dup {
			continue
		}
		e.whitelistSet[name] = struct{}{}
		e.whitelist = append(e.whitelist, name)
	}
	return e
}

// Whitelist returns the de-duplicated enabled modules in configured order.
func (e *Engine) Whitelist() []string {
	return slices.Clone(e.whitelist)
}

// Apply runs every feature of the registration table once. Immediate features
// mutate the host before Apply returns; the rest subscribe callbacks the host
// fires later. Calling Apply again does nothing.
func (e *Engine) Apply(ctx context.Context) {
	logger := ctxlog.FromContext(ctx)
	if e.applied {
		logger.Warn("Toggle engine already applied, ignoring.")
		return
	}
	e.applied = true

	active := 0
	for _, f := range registrationTable {
		if f.apply(e, ctx) {
			active++
			logger.Debug("Feature enabled.", "feature", f.name)
			continue
		}
		logger.Debug("Feature disabled.", "feature", f.name)
	}
	logger.Info("Toggle engine applied.", "features_enabled", active, "features_total", len(registrationTable))
}

func (e *Engine) subscribe(ctx context.Context, feature, event string, priority int, cb Callback) {
	ctxlog.FromContext(ctx).Debug("Subscribing.", "feature", feature, "event", event, "priority", priority)
	e.host.Subscribe(event, priority, cb)
}

// Package toggle maps administrator settings onto a page-builder host.
//
// An Engine walks a fixed registration table. Each feature looks at its
// setting and either does nothing, performs one immediate call on the Host, or
// subscribes one Callback to a host lifecycle event. Callbacks are value
// objects holding the configuration they were registered with, so firing an
// event any number of times yields the same host state.
//
// The engine never reports errors. A lookup that finds nothing on the host, a
// missing host capability, or a setting of the wrong shape all leave the
// affected feature inert.
package toggle

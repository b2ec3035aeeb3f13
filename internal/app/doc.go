// Package app contains the application logic behind the vctoggle binary. It
// loads settings files, drives the toggle engine against a dry-run host and
// renders the resulting registration plan, decoupled from any specific
// entrypoint like a CLI.
package app

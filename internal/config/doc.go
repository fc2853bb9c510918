// Package config is the tvpanel configuration store.
//
// The store holds feature flags and presentation settings as a flat map of
// dot-separated keys. Values are layered at load time:
//
//  1. Defaults from the settings registry
//  2. The settings file (TOML, YAML or JSON)
//  3. TVPANEL_* environment variables
//
// Flags are read and written through the small surface the settings panel
// depends on:
//
//	store.Read("hideLogo")
//	store.Write("hideLogo", true)
//	store.Description("hideLogo")
//	sub := store.AddChangeListener("hideLogo", func(v bool) { ... })
//	defer sub.Unsubscribe()
//
// Change notifications carry the new value and are delivered through the
// notifier's executor, decoupled from the writer. When the settings file
// changes on disk the store reloads it and notifies every key whose value
// changed, with source "file".
package config

// Package config loads the voxnav configuration.
//
// Configuration is built in layers, each overriding the one below:
//
//	┌─────────────────────────────┐
//	│  3. Environment Variables   │  ← VOXNAV_SECTION_KEY
//	├─────────────────────────────┤
//	│  2. TOML File (+@include)   │  ← -config or VOXNAV_CONFIG
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │
//	└─────────────────────────────┘
//
// The loader sub-package reads each layer into a map; this package decodes
// the layers onto a typed Config and validates it. The watcher sub-package
// reports file changes, and Reloader turns them into new Config values.
//
// # Configuration File
//
//	[log]
//	level = "debug"
//
//	[storage]
//	path = "$HOME/.local/state/voxnav/state.json"
//
//	[navigation]
//	wrap = true
//	sync_to_object = true
//
//	[restrictions]
//	mode = "kiosk"
//	deny = ["showLogPage"]
//
//	[speech]
//	rate = 1.2
//	ui_locale = "en-US"
//	voices = [{ name = "Amelie", lang = "fr-FR" }]
//
//	[keymap.bindings]
//	"Search+Q" = "nextHeading"
//	"Search+L" = "none"
//
//	[gestures.bindings]
//	swipeUp3 = "jumpToTop"
//
//	[flows]
//	dir = "flows"
//
// # Error Handling
//
//   - *ParseError: the file is not valid TOML; carries line and column.
//   - *ConfigError: a setting is unknown (ErrUnknownSetting) or invalid
//     (ErrInvalidValue); carries the file and the dotted key.
//
// Storage and flow paths expand $VARS and are relative to the config file.
// Validate reports every problem at once via errors.Join.
package config

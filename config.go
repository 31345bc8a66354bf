// Copyright 2024 The diagrender Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package diagrender

import "github.com/BurntSushi/toml"

// Config holds the renderer-wide presentation knobs.
type Config struct {
	// SurroundingLines is the number of source context lines printed
	// before and after each annotated region.
	SurroundingLines int `toml:"surrounding_lines"`

	// Compact suppresses the source snippet entirely, printing only the
	// header line, location line, and notes. Useful for error-summary
	// views where the full annotated block would be noise.
	Compact bool `toml:"compact"`

	// WarningsAreErrors promotes SeverityWarning diagnostics to
	// SeverityError in the rendered header (its text and styling) and in
	// annotation styling. [Report.Sort] does not consult it.
	WarningsAreErrors bool `toml:"warnings_are_errors"`

	// ShowHelp controls whether SeverityHelp notes are printed.
	ShowHelp bool `toml:"show_help"`

	// ShowDebug controls whether debug notes (added via [Debug]) are
	// printed; off by default since they are not meant for normal users.
	ShowDebug bool `toml:"show_debug"`

	// MaxMultilinesPerFile is loaded from configuration but not read by
	// [Render]: the number of multi-line annotation gutter columns drawn
	// for one file is not capped.
	MaxMultilinesPerFile int `toml:"max_multilines_per_file"`
}

// DefaultConfig returns the configuration used when a caller does not
// load one explicitly: two lines of context, help notes shown, debug
// notes hidden.
func DefaultConfig() Config {
	return Config{SurroundingLines: 2, ShowHelp: true}
}

// LoadConfig reads a TOML configuration file at path into a [Config]
// seeded with [DefaultConfig], so that a partial file only overrides the
// fields it mentions.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	_, err := toml.DecodeFile(path, &cfg)
	return cfg, err
}

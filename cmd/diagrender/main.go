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

// Command diagrender renders a YAML diagnostic fixture against a source
// file to a terminal or a plain file, as a small demonstration of the
// diagrender library.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/diagrender/diagrender"
	"github.com/diagrender/diagrender/sink/ansi"
	"github.com/diagrender/diagrender/sink/lipgloss"
)

var rootCmd = &cobra.Command{
	Use:   "diagrender <fixture.yaml>",
	Short: "Render a YAML diagnostic fixture to the terminal",
	Args:  cobra.ExactArgs(1),
	RunE:  run,
}

func main() {
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off|lipgloss)")
	rootCmd.PersistentFlags().String("config", "", "path to a TOML config file overriding renderer defaults")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	fixturePath := args[0]
	colorMode, _ := cmd.Flags().GetString("color")
	configPath, _ := cmd.Flags().GetString("config")

	cfg := diagrender.DefaultConfig()
	if configPath != "" {
		var err error
		cfg, err = diagrender.LoadConfig(configPath)
		if err != nil {
			return fmt.Errorf("diagrender: loading config: %w", err)
		}
	}

	f, err := loadFixture(fixturePath)
	if err != nil {
		return err
	}

	source, err := os.ReadFile(f.File)
	if err != nil {
		return fmt.Errorf("diagrender: reading source %q: %w", f.File, err)
	}

	db := diagrender.NewBasicFileDB()
	db.AddFile(f.File, f.File, string(source))

	report := buildReport(f, f.File)
	report.Sort()

	sink, styles := chooseSink(colorMode)
	return diagrender.Render(sink, styles, db, cfg, report)
}

func chooseSink(mode string) (diagrender.StyleSink, diagrender.StyleConfig) {
	colorize := mode == "on" || (mode != "off" && term.IsTerminal(int(os.Stdout.Fd())))

	if mode == "lipgloss" {
		return lipgloss.New(os.Stdout), lipgloss.DefaultStyles()
	}
	if colorize {
		return ansi.New(os.Stdout), ansi.DefaultStyles()
	}
	return diagrender.NewPlainSink(os.Stdout), diagrender.StyleConfig{}
}

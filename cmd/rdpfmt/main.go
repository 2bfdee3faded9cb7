/*
Rdpfmt pretty-prints the rule set of one of this module's bundled demo
grammars in the rdp notation (::=, |, *(...), +(...), (...)?, (?>...), ɛ).

Usage:

	rdpfmt [flags]

The flags are:

	-g, --grammar NAME
		Which bundled grammar to print: "json", "transform-json" or
		"calculator". Defaults to the value configured in the config
		file, or "json" if neither is set.

	-o, --output FILE
		Write the formatted rules to FILE instead of stdout.

	--no-color
		Disable ANSI coloring of rule names even when stdout is a
		terminal.

	-c, --config FILE
		Read defaults from FILE, a TOML document with "grammar" and
		"color" keys. Defaults to "rdpfmt.toml" in the current
		directory; it is not an error for it to be absent.
*/
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/fatih/color"
	"github.com/spf13/pflag"

	"github.com/sablewing/rdp"
	"github.com/sablewing/rdp/format"
	"github.com/sablewing/rdp/sym/demo"
)

const (
	ExitSuccess = iota
	ExitUsageError
	ExitConfigError
)

// fileConfig is the shape of the optional TOML config file.
type fileConfig struct {
	Grammar string `toml:"grammar"`
	Color   *bool  `toml:"color"`
}

var (
	returnCode  int
	flagGrammar = pflag.StringP("grammar", "g", "", `grammar to print: "json", "transform-json" or "calculator"`)
	flagOutput  = pflag.StringP("output", "o", "", "write output to this file instead of stdout")
	flagNoColor = pflag.Bool("no-color", false, "disable ANSI coloring of rule names")
	flagConfig  = pflag.StringP("config", "c", "rdpfmt.toml", "path to a TOML config file")
)

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			panic(fmt.Sprintf("unrecoverable panic occurred: %v", panicErr))
		} else {
			os.Exit(returnCode)
		}
	}()

	pflag.Parse()

	cfg, err := loadConfig(*flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitConfigError
		return
	}

	grammarName := *flagGrammar
	if grammarName == "" {
		grammarName = cfg.Grammar
	}
	if grammarName == "" {
		grammarName = "json"
	}

	g, err := grammarByName(grammarName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitUsageError
		return
	}

	useColor := cfg.Color == nil || *cfg.Color
	if *flagNoColor {
		useColor = false
	}

	out := os.Stdout
	if *flagOutput != "" {
		f, err := os.Create(*flagOutput)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
			returnCode = ExitUsageError
			return
		}
		defer f.Close()
		out = f
	}

	fmt.Fprint(out, render(g, useColor))
}

func loadConfig(path string) (fileConfig, error) {
	var cfg fileConfig
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func grammarByName(name string) (*rdp.Grammar, error) {
	switch name {
	case "json":
		return demo.JSON, nil
	case "transform-json":
		return demo.TransformJSON, nil
	case "calculator":
		return demo.Calculator, nil
	default:
		return nil, fmt.Errorf("unknown grammar %q (want json, transform-json or calculator)", name)
	}
}

// render formats g's rules, optionally highlighting each rule's name in
// bold before the "::=" separator.
func render(g *rdp.Grammar, useColor bool) string {
	text := format.Rules(g.Rules())
	if !useColor {
		return text
	}

	name := color.New(color.Bold, color.FgCyan).SprintFunc()
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		sep := strings.Index(line, "::=")
		if sep < 0 {
			continue
		}
		lines[i] = name(strings.TrimRight(line[:sep], " ")) + " " + line[sep:]
	}
	return strings.Join(lines, "\n")
}

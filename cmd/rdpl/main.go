/*
Rdpl is an interactive read-parse-print loop over one of this module's
bundled demo grammars. It reads a line of input, parses it against the
selected grammar, and prints either the resulting parse tree (or, for
the transforming grammars, the reduced Go value) or a parse error.

Usage:

	rdpl [flags]

The flags are:

	-g, --grammar NAME
		Which bundled grammar to drive: "json", "transform-json" or
		"calculator". Defaults to "calculator".

	-d, --direct
		Force reading directly from stdin instead of going through GNU
		readline, even if launched in a tty.

Once started, type an expression and press enter to parse it. Type
"QUIT" to exit.
*/
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/pflag"

	"github.com/sablewing/rdp"
	"github.com/sablewing/rdp/sym/demo"
)

const (
	ExitSuccess = iota
	ExitUsageError
	ExitReadError
)

var (
	returnCode  int
	flagGrammar = pflag.StringP("grammar", "g", "calculator", `grammar to drive: "json", "transform-json" or "calculator"`)
	flagDirect  = pflag.BoolP("direct", "d", false, "force reading directly from stdin instead of GNU readline")
)

// lineReader is the narrow interface both input modes satisfy.
type lineReader interface {
	ReadLine() (string, error)
	Close() error
}

type directReader struct {
	r *bufio.Reader
}

func (d *directReader) ReadLine() (string, error) {
	line, err := d.r.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (d *directReader) Close() error { return nil }

type interactiveReader struct {
	rl *readline.Instance
}

func (i *interactiveReader) ReadLine() (string, error) {
	line, err := i.rl.Readline()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (i *interactiveReader) Close() error { return i.rl.Close() }

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			panic(fmt.Sprintf("unrecoverable panic occurred: %v", panicErr))
		} else {
			os.Exit(returnCode)
		}
	}()

	pflag.Parse()

	g, err := grammarByName(*flagGrammar)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitUsageError
		return
	}

	reader, err := newReader(*flagDirect)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitUsageError
		return
	}
	defer reader.Close()

	if err := loop(g, reader); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitReadError
	}
}

func newReader(forceDirect bool) (lineReader, error) {
	if forceDirect || !readline.IsTerminal(int(os.Stdin.Fd())) {
		return &directReader{r: bufio.NewReader(os.Stdin)}, nil
	}
	rl, err := readline.NewEx(&readline.Config{Prompt: "rdp> "})
	if err != nil {
		return nil, fmt.Errorf("create readline config: %w", err)
	}
	return &interactiveReader{rl: rl}, nil
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

func loop(g *rdp.Grammar, reader lineReader) error {
	for {
		line, err := reader.ReadLine()
		if err != nil {
			if err == io.EOF || err == readline.ErrInterrupt {
				return nil
			}
			return err
		}
		if line == "" {
			continue
		}
		if strings.EqualFold(line, "QUIT") {
			return nil
		}

		node, err := g.Parse(line)
		if err != nil {
			fmt.Printf("parse error: %s\n", err.Error())
			continue
		}
		if g == demo.JSON {
			fmt.Printf("%s\n", node)
			continue
		}
		fmt.Printf("%v\n", node.Transform())
	}
}

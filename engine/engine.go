// Package engine drives a grammar's start symbol over a token stream with
// an explicit stack rather than native recursion: each symbol occurrence
// suspends by requesting a child parse and is resumed with either the
// child's node or a thrown error. The driver also owns packrat
// memoization, keyed by (symbol, token offset), and left-recursion
// detection.
package engine

import (
	"github.com/rs/zerolog"

	"github.com/sablewing/rdp/rdperr"
	"github.com/sablewing/rdp/sym"
	"github.com/sablewing/rdp/token"
	"github.com/sablewing/rdp/tree"
)

// Options configures one parse run.
type Options struct {
	// Memoize enables packrat caching of (symbol, offset) results.
	// Disabling it only costs performance on ambiguous/backtracking
	// grammars; results are unaffected.
	Memoize bool

	// DetectLeftRecursion raises LeftRecursion instead of looping
	// forever when a symbol recurses into itself at the same offset.
	// Disabling it trades safety for a little overhead on deeply nested
	// grammars that are known not to be left-recursive.
	DetectLeftRecursion bool

	// StepLimit bounds the number of driver steps taken, 0 for
	// unlimited. Exceeding it fails the parse instead of hanging.
	StepLimit int
}

// DefaultOptions returns the usual safe configuration: memoization and
// left-recursion detection both on, no step limit.
func DefaultOptions() Options {
	return Options{Memoize: true, DetectLeftRecursion: true}
}

type frameEntry struct {
	symbol sym.Symbol
	frame  sym.Frame
	offset int
}

type memoKey struct {
	symbol sym.Symbol
	offset int
}

type memoEntry struct {
	node      *tree.Node
	endOffset int
}

// Parser drives a single parse of one token stream against one start
// symbol. It owns its own stack, memo and stream position; nothing about
// it is shared across concurrent parses of the same grammar.
type Parser struct {
	stream *token.Stream
	ctx    sym.Context
	start  sym.Symbol
	opts   Options
	log    zerolog.Logger
}

// New builds a Parser over stream, ready to evaluate start.
func New(stream *token.Stream, start sym.Symbol, opts Options, log zerolog.Logger) *Parser {
	return &Parser{stream: stream, ctx: streamContext{stream}, start: start, opts: opts, log: log}
}

type streamContext struct {
	stream *token.Stream
}

func (c streamContext) Read() token.Token  { return c.stream.Next() }
func (c streamContext) Peek() token.Token  { return c.stream.Peek() }
func (c streamContext) Tell() int          { return c.stream.Tell() }
func (c streamContext) Seek(offset int)    { c.stream.Seek(offset) }

// Parse runs the driver loop to completion, returning the root node or
// the first unrecovered error.
func (p *Parser) Parse() (*tree.Node, error) {
	stack := make([]frameEntry, 0, 32)
	memo := make(map[memoKey]memoEntry)

	const (
		modePush = iota
		modeSend
		modeThrow
	)

	var mode int
	var argSym sym.Symbol
	var argNode *tree.Node
	var argErr error
	steps := 0

	dispatch := func(s sym.Symbol) error {
		offset := p.ctx.Tell()
		if p.opts.Memoize {
			if entry, ok := memo[memoKey{s, offset}]; ok {
				p.ctx.Seek(entry.endOffset)
				mode, argNode = modeSend, entry.node
				p.log.Trace().Str("symbol", s.Name()).Int("offset", offset).Msg("memo hit")
				return nil
			}
		}
		if p.opts.DetectLeftRecursion {
			for _, fr := range stack {
				if fr.offset == offset && fr.symbol == s {
					return rdperr.NewLeftRecursion(s.Name(), p.ctx.Peek().Start)
				}
			}
		}
		mode, argSym = modePush, s
		return nil
	}

	if err := dispatch(p.start); err != nil {
		return nil, err
	}

	for {
		if p.opts.StepLimit > 0 {
			steps++
			if steps > p.opts.StepLimit {
				return nil, rdperr.NewParseError(p.ctx.Peek().Start, "step limit of %d exceeded", p.opts.StepLimit)
			}
		}

		var step sym.Step
		var top frameEntry
		switch mode {
		case modePush:
			s := argSym
			offset := p.ctx.Tell()
			frame := s.NewFrame()
			top = frameEntry{symbol: s, frame: frame, offset: offset}
			stack = append(stack, top)
			p.log.Trace().Str("symbol", s.Name()).Int("offset", offset).Msg("push")
			step = frame.Start(p.ctx)
		case modeSend:
			top = stack[len(stack)-1]
			step = top.frame.Resume(p.ctx, argNode)
		case modeThrow:
			top = stack[len(stack)-1]
			step = top.frame.Throw(p.ctx, argErr)
		}
		endOffset := p.ctx.Tell()

		switch {
		case step.Err != nil:
			p.ctx.Seek(top.offset)
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				return nil, step.Err
			}
			mode, argErr = modeThrow, step.Err

		case step.Node != nil:
			if p.opts.Memoize {
				memo[memoKey{top.symbol, top.offset}] = memoEntry{node: step.Node, endOffset: endOffset}
			}
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				return p.finish(step.Node)
			}
			mode, argNode = modeSend, step.Node

		default:
			if err := dispatch(step.Request); err != nil {
				return nil, err
			}
		}
	}
}

func (p *Parser) finish(node *tree.Node) (*tree.Node, error) {
	tok := p.ctx.Read()
	if tok.Class.Equal(token.EndOfText) {
		return node, nil
	}
	return nil, rdperr.NewParseError(tok.Start, "unparsed trailing input: %s", tok)
}

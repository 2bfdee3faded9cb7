// Package rdp implements a recursive-descent parser construction library:
// grammars are described by composing symbols from the sym package, and a
// Grammar tokenizes and parses source text into a parse tree, optionally
// reducing it to a user value with Node.Transform.
package rdp

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/sablewing/rdp/engine"
	"github.com/sablewing/rdp/lex"
	"github.com/sablewing/rdp/rdperr"
	"github.com/sablewing/rdp/rdplog"
	"github.com/sablewing/rdp/sym"
	"github.com/sablewing/rdp/token"
	"github.com/sablewing/rdp/tree"
	"github.com/sablewing/rdp/xform"
)

// Epsilon is the canonical always-matches-empty symbol. Most grammars
// only ever need this one instance.
var Epsilon sym.Symbol = sym.NewEpsilon()

// Re-exports of the symbol algebra's public constructors, so a caller
// building a grammar only needs to import this one package for the
// common case.
var (
	Seq           = sym.Seq
	Alt           = sym.Alt
	Many          = sym.Many
	AtLeastOne    = sym.AtLeastOne
	NewOptional   = sym.NewOptional
	NewLookahead  = sym.NewLookahead
	NewProxy      = sym.NewProxy
	NewRegexp     = sym.NewRegexp
	Flatten       = sym.Flatten
	Drop          = sym.Drop
	Keep          = sym.Keep
	Named         = sym.Named
	NonEmptyOf    = sym.NonEmptyOf
	WithTransform = sym.WithTransform
	Lit           = sym.Lit
)

// RepeatOptions is a re-export of sym.RepeatOptions for convenience.
type RepeatOptions = sym.RepeatOptions

// Repeat builds a repetition of symbol with the given separator/leading/
// trailing/min-matches behavior; see sym.BuildRepeat.
func Repeat(symbol sym.Symbol, opts RepeatOptions) sym.Symbol {
	return sym.BuildRepeat(symbol, opts)
}

// Grammar owns a finalized symbol set, its tokenizer, its token-transform
// pipeline and its start symbol. A Grammar is immutable once built and
// may be used by any number of concurrent Parser runs.
type Grammar struct {
	id          uuid.UUID
	start       sym.Symbol
	rules       []sym.Symbol
	tokenizer   *lex.Tokenizer
	transform   xform.Transform
	engineOpts  engine.Options
	log         zerolog.Logger
}

// ID uniquely identifies this Grammar instance, for logging and for
// keying any caller-side cache across grammars (the engine's own memo
// never needs this, since each Parser owns a private memo).
func (g *Grammar) ID() uuid.UUID { return g.id }

// Rules iterates the grammar's named symbols in a stable, deterministic
// order — the order Build's graph walk first reached each name in — for
// introspection and pretty-printing.
func (g *Grammar) Rules() []sym.Symbol {
	return append([]sym.Symbol(nil), g.rules...)
}

// Start returns the grammar's start symbol.
func (g *Grammar) Start() sym.Symbol { return g.start }

// Parse tokenizes source, runs it through the grammar's transform
// pipeline, and parses the result against the start symbol, returning
// the root parse node.
func (g *Grammar) Parse(source string) (*tree.Node, error) {
	src := g.tokenizer.Scan(source)
	if g.transform != nil {
		src = g.transform(src)
	}
	stream := token.NewStream(src)
	engineLog := g.log.With().Str("component", rdplog.ComponentEngine).Logger()
	p := engine.New(stream, g.start, g.engineOpts, engineLog)
	node, err := p.Parse()
	if err != nil {
		g.log.Debug().Err(err).Msg("parse failed")
		return nil, err
	}
	return node, nil
}

// BuildOptions configures Build beyond the terminal set and transform
// pipeline every grammar needs.
type BuildOptions struct {
	// DropTerminals, when true, treats any Terminal whose drop flag was
	// never explicitly set (via sym.Drop/sym.Keep) as dropped. Grammars
	// that care about punctuation and keywords only for disambiguation,
	// not for their own tree nodes, usually want this on.
	DropTerminals bool

	// Memoize and DetectLeftRecursion mirror engine.Options; both
	// default true when left zero-valued via Build's BuildOptions{}.
	Memoize             *bool
	DetectLeftRecursion *bool

	// StepLimit bounds each parse's driver steps; 0 is unlimited.
	StepLimit int

	// Transforms is the token-transform pipeline applied between the
	// tokenizer and the parser, in order (see the xform package).
	Transforms []xform.Transform

	// ExtraTerminals registers terminals the tokenizer must recognize
	// even though no path from start reaches them: insignificant
	// whitespace and comments, which a Transforms entry (xform.Ignore)
	// filters back out before the parser ever sees them.
	ExtraTerminals []sym.Symbol

	// Log receives structured diagnostics during tokenization, grammar
	// assembly and parsing. The zero value logs nothing.
	Log zerolog.Logger
}

// Build finalizes a grammar rooted at start: it walks the symbol graph
// reachable from start, collects its terminals in traversal order,
// resolves the drop-terminals policy, and compiles the tokenizer. It
// returns *rdperr.InvalidGrammar if the graph contains an unresolved
// Proxy or yields no terminals at all.
func Build(start sym.Symbol, opts BuildOptions) (*Grammar, error) {
	log := opts.Log

	visited := make(map[sym.Symbol]bool)
	rules := make([]sym.Symbol, 0, 16)
	entries := make([]lex.Entry, 0, 16)
	bareTerminals := make([]*sym.Terminal, 0, 16)
	seen := make(map[string]bool)

	var problems rdperr.GrammarProblems
	var walk func(s sym.Symbol)
	walk = func(s sym.Symbol) {
		if s == nil || visited[s] {
			return
		}
		visited[s] = true

		// A bound Proxy stands in for its target; recording both under
		// the same name would list every proxied rule twice.
		if _, isProxy := s.(*sym.Proxy); !isProxy && s.Name() != "" {
			rules = append(rules, s)
		}

		switch v := s.(type) {
		case *sym.Proxy:
			if v.Target() == nil {
				problems.Add("unresolved forward reference %q", v.Name())
				return
			}
			walk(v.Target())
			return
		case *sym.Terminal:
			registerTerminal(v, v.Pattern(), v.Priority(), &entries, seen)
			bareTerminals = append(bareTerminals, v)
			return
		case *sym.Regexp:
			registerTerminal(v, v.Pattern(), v.Priority(), &entries, seen)
			return
		case *sym.Marker:
			registerTerminal(v, "", 0, &entries, seen)
			return
		case *sym.Epsilon:
			return
		}

		for _, child := range s.Children() {
			walk(child)
		}
	}
	walk(start)
	for _, extra := range opts.ExtraTerminals {
		walk(extra)
	}

	if err := problems.Err(); err != nil {
		return nil, err
	}

	if opts.DropTerminals {
		for _, t := range bareTerminals {
			t.ResolveDefaultDrop(true)
		}
	}

	tokenizer, err := lex.New(entries, log.With().Str("component", rdplog.ComponentTokenizer).Logger())
	if err != nil {
		return nil, err
	}

	g := &Grammar{
		id:        mustUUID(),
		start:     start,
		rules:     rules,
		tokenizer: tokenizer,
		transform: xform.Chain(opts.Transforms...),
		engineOpts: engine.Options{
			Memoize:             boolOr(opts.Memoize, true),
			DetectLeftRecursion: boolOr(opts.DetectLeftRecursion, true),
			StepLimit:           opts.StepLimit,
		},
		log: log,
	}
	return g, nil
}

func boolOr(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}

func mustUUID() uuid.UUID {
	id, err := uuid.NewRandom()
	if err != nil {
		// uuid.NewRandom only fails if the system's entropy source is
		// unreadable; there is no sane fallback.
		panic(err)
	}
	return id
}

// registerTerminal adds class to entries the first time it is seen. priority
// carries the terminal's own tokenizer tie-break priority (see sym.Terminal
// and sym.Regexp); lex.New sorts by it, falling back to first-reached
// traversal order only when two terminals share a priority.
func registerTerminal(class token.Class, pattern string, priority int, entries *[]lex.Entry, seen map[string]bool) {
	if seen[class.ID()] {
		return
	}
	seen[class.ID()] = true
	*entries = append(*entries, lex.Entry{Class: class, Pattern: pattern, Priority: priority})
}

// Package demo bundles a couple of complete, working grammars — a JSON
// value subset and an arithmetic calculator — built entirely out of the
// public symbol algebra. They exist to be parsed, transformed and
// pretty-printed by the rest of this module's tests and command-line
// tools, the way a library ships runnable examples alongside its API.
package demo

import (
	"strconv"
	"strings"

	"github.com/sablewing/rdp"
	"github.com/sablewing/rdp/sym"
	"github.com/sablewing/rdp/xform"
)

// JSON is a parse-tree-only JSON value grammar: it recognizes objects,
// arrays, strings, numbers, true/false/null, but Node.Transform returns
// only the default list-of-values shape — use TransformJSON for a
// grammar whose parse produces native Go values directly.
var JSON *rdp.Grammar

// TransformJSON is JSON's data-twin: structurally identical, but every
// rule carries a transform that reduces its node into a native Go
// value (float64, string, bool, nil, []interface{}, map[string]interface{}).
var TransformJSON *rdp.Grammar

func init() {
	JSON = mustBuild(buildJSON(false))
	TransformJSON = mustBuild(buildJSON(true))
}

func mustBuild(g *rdp.Grammar, err error) *rdp.Grammar {
	if err != nil {
		panic(err)
	}
	return g
}

func mustRegexp(pattern string) *sym.Regexp {
	r, err := sym.NewRegexp(pattern)
	if err != nil {
		panic(err)
	}
	return r
}

func unquoteJSONString(lexeme string) string {
	inner := lexeme[1 : len(lexeme)-1]
	return strings.NewReplacer(
		`\"`, `"`, `\\`, `\`, `\/`, `/`,
		`\n`, "\n", `\b`, "\b", `\f`, "\f", `\r`, "\r", `\t`, "\t",
	).Replace(inner)
}

func buildJSON(transform bool) (*rdp.Grammar, error) {
	expr := rdp.NewProxy()

	jsonNumber := mustRegexp(`-?(?:[1-9][0-9]*|0)(?:\.[0-9]*)?(?:[eE][+-]?[0-9]+)?`)
	jsonString := mustRegexp(`"(?:[^"\\]|\\(?:["\\/nbfrt]|u[0-9a-fA-F]{4}))*"`)
	jsonWhitespace := mustRegexp(`\s+`)

	number := rdp.Named(jsonNumber, "number_literal")
	if transform {
		number = rdp.WithTransform(number, func(v interface{}) interface{} {
			f, _ := strconv.ParseFloat(v.(string), 64)
			return f
		})
	}

	str := rdp.Named(jsonString, "string_literal")
	if transform {
		str = rdp.WithTransform(str, func(v interface{}) interface{} {
			return unquoteJSONString(v.(string))
		})
	}

	var array sym.Symbol = rdp.Seq(
		rdp.Drop(rdp.Lit("[")),
		rdp.Flatten(rdp.Repeat(expr, rdp.RepeatOptions{Separator: rdp.Drop(rdp.Lit(","))})),
		rdp.Drop(rdp.Lit("]")),
	)
	array = rdp.Named(array, "array")
	if transform {
		array = rdp.WithTransform(array, func(v interface{}) interface{} {
			items := v.([]interface{})
			out := make([]interface{}, len(items))
			copy(out, items)
			return out
		})
	}

	var member sym.Symbol = rdp.Seq(str, rdp.Drop(rdp.Lit(":")), expr)
	if transform {
		member = rdp.WithTransform(member, func(v interface{}) interface{} {
			pair := v.([]interface{})
			return [2]interface{}{pair[0], pair[1]}
		})
	}
	var object sym.Symbol = rdp.Seq(
		rdp.Drop(rdp.Lit("{")),
		rdp.Flatten(rdp.Repeat(member, rdp.RepeatOptions{Separator: rdp.Drop(rdp.Lit(","))})),
		rdp.Drop(rdp.Lit("}")),
	)
	object = rdp.Named(object, "object")
	if transform {
		object = rdp.WithTransform(object, func(v interface{}) interface{} {
			pairs := v.([]interface{})
			m := make(map[string]interface{}, len(pairs))
			for _, p := range pairs {
				pair := p.([2]interface{})
				m[pair[0].(string)] = pair[1]
			}
			return m
		})
	}

	var boolean sym.Symbol = rdp.Alt(rdp.Keep(rdp.Lit("true")), rdp.Keep(rdp.Lit("false")))
	if transform {
		boolean = sym.WithTransform(boolean, func(v interface{}) interface{} {
			return v.(string) == "true"
		})
	}
	var nul sym.Symbol = rdp.Keep(rdp.Lit("null"))
	if transform {
		nul = sym.WithTransform(nul, func(interface{}) interface{} { return nil })
	}

	exprDef := rdp.Flatten(rdp.Alt(number, str, array, object, boolean, nul))
	exprDef = rdp.Named(exprDef, "expr")
	expr.Bind(exprDef)

	whitespace := rdp.Named(jsonWhitespace, "whitespace").(*sym.Regexp)

	return rdp.Build(expr, rdp.BuildOptions{
		DropTerminals:  true,
		ExtraTerminals: []sym.Symbol{whitespace},
		Transforms:     []xform.Transform{xform.Ignore(whitespace)},
	})
}

package demo

import (
	"strconv"

	"github.com/sablewing/rdp"
	"github.com/sablewing/rdp/sym"
	"github.com/sablewing/rdp/xform"
)

// Calculator evaluates arithmetic expressions over binary + and *,
// parentheses and unary +/- signs, reducing directly to a float64 via
// Node.Transform. There is no binary subtraction: "-" is only a sign.
var Calculator *rdp.Grammar

func init() {
	Calculator = mustBuild(buildCalculator())
}

func toFloats(v interface{}) []float64 {
	items := v.([]interface{})
	out := make([]float64, len(items))
	for i, it := range items {
		out[i] = it.(float64)
	}
	return out
}

func buildCalculator() (*rdp.Grammar, error) {
	exprProxy := rdp.NewProxy()

	number := sym.WithTransform(rdp.Named(mustRegexp(`[0-9]+`), "number"), func(v interface{}) interface{} {
		f, _ := strconv.ParseFloat(v.(string), 64)
		return f
	})

	atom := rdp.Named(rdp.Alt(
		number,
		rdp.Flatten(rdp.Seq(rdp.Drop(rdp.Lit("(")), exprProxy, rdp.Drop(rdp.Lit(")")))),
	), "atom")

	sign := rdp.Alt(rdp.Keep(rdp.Lit("+")), rdp.Keep(rdp.Lit("-")))
	signed := sym.WithTransform(rdp.Named(rdp.Seq(rdp.Many(sign), atom), "signed"), func(v interface{}) interface{} {
		parts := v.([]interface{})
		ops := parts[0].([]interface{})
		n := parts[1].(float64)
		for _, op := range ops {
			if op.(string) == "-" {
				n = -n
			}
		}
		return n
	})

	productExpr := sym.WithTransform(rdp.Named(rdp.Repeat(signed, rdp.RepeatOptions{
		Separator:  rdp.Drop(rdp.Lit("*")),
		MinMatches: 1,
	}), "product_expr"), func(v interface{}) interface{} {
		product := 1.0
		for _, f := range toFloats(v) {
			product *= f
		}
		return product
	})

	exprDef := sym.WithTransform(rdp.Named(rdp.Repeat(productExpr, rdp.RepeatOptions{
		Separator:  rdp.Drop(rdp.Lit("+")),
		MinMatches: 1,
	}), "expr"), func(v interface{}) interface{} {
		sum := 0.0
		for _, f := range toFloats(v) {
			sum += f
		}
		return sum
	})
	exprProxy.Bind(exprDef)

	whitespace := rdp.Named(mustRegexp(`[ \t]+`), "whitespace").(*sym.Regexp)

	return rdp.Build(exprProxy, rdp.BuildOptions{
		DropTerminals:  true,
		ExtraTerminals: []sym.Symbol{whitespace},
		Transforms:     []xform.Transform{xform.Ignore(whitespace)},
	})
}

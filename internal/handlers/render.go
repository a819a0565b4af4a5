package handlers

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Knetic/govaluate"
	"github.com/divan/num2words"
)

var (
	placeholderPattern = regexp.MustCompile(`\[([^\[\]]+)\]`)
	formulaPattern     = regexp.MustCompile(`\{=([^{}]+)\}`)
)

// RenderTemplate fills a template body from the supplied variables.
// [token] placeholders are replaced by the matching variable; unmatched
// tokens stay in place so the gaps remain visible in the draft. {=expr}
// blocks are evaluated as arithmetic over the same variables, and every
// numeric variable also gets a derived "<name>InWords" spelling for
// amount-in-words clauses.
func RenderTemplate(content string, vars map[string]any) (string, error) {
	enriched := make(map[string]any, len(vars)*2)
	for key, value := range vars {
		enriched[key] = value
		if n, ok := asFloat(value); ok && n == float64(int(n)) {
			enriched[key+"InWords"] = num2words.Convert(int(n))
		}
	}

	out := placeholderPattern.ReplaceAllStringFunc(content, func(token string) string {
		key := token[1 : len(token)-1]
		if v, ok := enriched[key]; ok {
			return formatValue(v)
		}
		return token
	})

	var evalErr error
	out = formulaPattern.ReplaceAllStringFunc(out, func(token string) string {
		exprText := token[2 : len(token)-1]
		expr, err := govaluate.NewEvaluableExpression(exprText)
		if err != nil {
			evalErr = fmt.Errorf("invalid expression %q: %w", exprText, err)
			return token
		}
		result, err := expr.Evaluate(enriched)
		if err != nil {
			evalErr = fmt.Errorf("cannot evaluate %q: %w", exprText, err)
			return token
		}
		return formatValue(result)
	})

	return out, evalErr
}

func formatValue(v any) string {
	if f, ok := asFloat(v); ok && f == float64(int64(f)) {
		return fmt.Sprintf("%d", int64(f))
	}
	if f, ok := asFloat(v); ok {
		return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", f), "0"), ".")
	}
	return fmt.Sprint(v)
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

// Package shape turns fetch responses into option records for a
// selector.DataCallback: it extracts the record list from an envelope, gates
// on a status flag, and filters records with expr-lang expressions.
package shape

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	exprlang "github.com/expr-lang/expr"
	exprvm "github.com/expr-lang/expr/vm"

	"github.com/goliatone/go-cascade/pkg/selector"
)

// Config describes how a response envelope maps onto options.
type Config struct {
	// ResultsPath is the dotted path to the record list; empty means the
	// payload itself is the list.
	ResultsPath string
	// StatusField, when set, must stringify to StatusOK or the response is
	// ignored.
	StatusField string
	StatusOK    string
	// Filter is an expr-lang boolean expression evaluated per record.
	Filter string

	ValueProperty string
	TextProperty  string
}

// Populate returns a DataCallback that shapes the response according to cfg
// and writes the records into the target control.
func Populate(cfg Config) selector.DataCallback {
	if cfg.StatusField != "" && cfg.StatusOK == "" {
		cfg.StatusOK = "1"
	}
	return func(sel *selector.Selector, data any, target selector.Group) {
		if cfg.StatusField != "" {
			status, _ := Pick(data, cfg.StatusField)
			if got := selector.Stringify(status); got != cfg.StatusOK {
				sel.Diagnose("response status rejected", "field", cfg.StatusField, "status", got)
				return
			}
		}

		records := Results(data, cfg.ResultsPath)
		if cfg.Filter != "" {
			filtered, err := Filter(records, cfg.Filter)
			if err != nil {
				sel.Diagnose("record filter failed", "filter", cfg.Filter, "error", err)
				return
			}
			records = filtered
		}
		if len(records) == 0 {
			return
		}

		sel.CreateOptions(selector.OptionsParams{
			Select:        target,
			Data:          records,
			ValueProperty: cfg.ValueProperty,
			TextProperty:  cfg.TextProperty,
		})
	}
}

// Results walks path through nested objects and returns the list found there.
func Results(payload any, path string) []any {
	if payload == nil {
		return nil
	}
	cur := payload
	if path = strings.TrimSpace(path); path != "" {
		var ok bool
		cur, ok = Pick(payload, path)
		if !ok {
			return nil
		}
	}
	return selector.Records(cur)
}

// Pick resolves a dotted path through nested objects.
func Pick(payload any, path string) (any, bool) {
	if path == "" {
		return nil, false
	}
	cur := payload
	for _, segment := range strings.Split(path, ".") {
		node, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = node[segment]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

var programs sync.Map

// Filter keeps the object records for which expression evaluates to true.
// Record fields are exposed as top-level variables; JSON numbers are exposed
// as numbers.
func Filter(records []any, expression string) ([]any, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return records, nil
	}
	program, err := compile(expression)
	if err != nil {
		return nil, err
	}

	out := make([]any, 0, len(records))
	for i, record := range records {
		obj, ok := record.(map[string]any)
		if !ok {
			continue
		}
		result, err := exprlang.Run(program, normalize(obj))
		if err != nil {
			return nil, fmt.Errorf("shape: evaluate %q on record %d: %w", expression, i, err)
		}
		keep, ok := result.(bool)
		if !ok {
			return nil, fmt.Errorf("shape: filter %q returned %T, want bool", expression, result)
		}
		if keep {
			out = append(out, record)
		}
	}
	return out, nil
}

func compile(expression string) (*exprvm.Program, error) {
	if cached, ok := programs.Load(expression); ok {
		return cached.(*exprvm.Program), nil
	}
	program, err := exprlang.Compile(expression,
		exprlang.Env(map[string]any{}),
		exprlang.AllowUndefinedVariables(),
	)
	if err != nil {
		return nil, fmt.Errorf("shape: compile %q: %w", expression, err)
	}
	programs.Store(expression, program)
	return program, nil
}

func normalize(obj map[string]any) map[string]any {
	out := make(map[string]any, len(obj))
	for key, value := range obj {
		out[key] = normalizeValue(value)
	}
	return out
}

func normalizeValue(value any) any {
	switch v := value.(type) {
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return int(n)
		}
		if f, err := v.Float64(); err == nil {
			return f
		}
		return v.String()
	case map[string]any:
		return normalize(v)
	case []any:
		out := make([]any, len(v))
		for i := range v {
			out[i] = normalizeValue(v[i])
		}
		return out
	default:
		return v
	}
}

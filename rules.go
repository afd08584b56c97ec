package xlstyle

import (
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// StyleRule overlays Style on every cell for which Condition is true.
// Condition is an expr-lang expression evaluated with the variables
// value (the cell value), column (the column key), row (1-based worksheet
// row number) and record (the whole row).
type StyleRule struct {
	Condition string
	Style     Style
}

// ruleEvaluator evaluates rule conditions, caching compiled programs.
type ruleEvaluator struct {
	rules []StyleRule
	cache sync.Map // condition → *vm.Program
}

func newRuleEvaluator(rules []StyleRule) *ruleEvaluator {
	return &ruleEvaluator{rules: rules}
}

// CompileRules checks the syntax of every rule condition.
func CompileRules(rules []StyleRule) error {
	ev := newRuleEvaluator(rules)
	for i, r := range rules {
		if _, err := ev.compile(r.Condition); err != nil {
			return errors.Wrapf(err, "rule %d", i)
		}
	}
	return nil
}

func ruleEnv(value any, column string, row int, record map[string]any) map[string]any {
	return map[string]any{
		"value":  value,
		"column": column,
		"row":    row,
		"record": record,
	}
}

// apply merges the style of every matching rule onto base, in rule order.
func (e *ruleEvaluator) apply(base Style, value any, column string, row int, record map[string]any) (Style, error) {
	out, err := e.applyTo(&base, value, column, row, record)
	if err != nil {
		return base, err
	}
	return *out, nil
}

// applyTo is apply for a style held by pointer. When no rule matches it
// returns base itself, so identity-keyed caches still see the caller's style.
func (e *ruleEvaluator) applyTo(base *Style, value any, column string, row int, record map[string]any) (*Style, error) {
	if len(e.rules) == 0 {
		return base, nil
	}
	env := ruleEnv(value, column, row, record)
	out := base
	for _, r := range e.rules {
		ok, err := e.isConditionTrue(r.Condition, env)
		if err != nil {
			return base, err
		}
		if ok {
			merged := out.Merge(r.Style)
			out = &merged
		}
	}
	return out, nil
}

func (e *ruleEvaluator) isConditionTrue(condition string, env map[string]any) (bool, error) {
	program, err := e.compile(condition)
	if err != nil {
		return false, err
	}
	result, err := expr.Run(program, env)
	if err != nil {
		return false, errors.Wrapf(err, "evaluate condition %q", condition)
	}
	if result == nil {
		return false, nil
	}
	b, ok := result.(bool)
	if !ok {
		return false, errors.Newf("condition %q evaluated to %T, expected bool", condition, result)
	}
	return b, nil
}

func (e *ruleEvaluator) compile(condition string) (*vm.Program, error) {
	if cached, ok := e.cache.Load(condition); ok {
		return cached.(*vm.Program), nil
	}
	program, err := expr.Compile(condition, expr.Env(ruleEnv(nil, "", 0, nil)), expr.AllowUndefinedVariables())
	if err != nil {
		return nil, errors.Wrapf(err, "compile condition %q", condition)
	}
	e.cache.Store(condition, program)
	return program, nil
}

package domain

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mouse-blink/pedant/internal/domain/scopes"
	m "github.com/mouse-blink/pedant/internal/model"
)

// validateScriptValueBlock walks a script value body. Every operand must
// produce a numeric value in the caller's scope context.
func (r *run) validateScriptValueBlock(block *m.Block, sc *scopes.Context) {
	r.validateIfElseSequence(block, "if", "else_if", "else")

	for _, f := range block.Fields {
		if !f.HasKey() {
			// Loose numbers form a { min max } range.
			if f.Value.IsToken() {
				if _, err := strconv.ParseFloat(f.Value.Token.Value, 64); err != nil {
					r.warn(m.KeyValidation, f.Value.Token.Loc,
						fmt.Sprintf("`%s` is not a number", f.Value.Token.Value))
				}

				continue
			}

			r.warnLooseValue(f, block.Loc)

			continue
		}

		r.validateScriptValueField(f, sc)
	}
}

func (r *run) validateScriptValueField(f m.Field, sc *scopes.Context) {
	name := f.Key.Value

	switch name {
	case "value", "add", "subtract", "multiply", "divide", "modulo", "min", "max", "round_to":
		r.validateScriptValueOperand(f, sc)
	case "round", "floor", "ceiling":
		if r.requireToken(f) && !f.Value.Token.Is("yes") && !f.Value.Token.Is("no") {
			r.warn(m.KeyValidation, f.Value.Token.Loc,
				fmt.Sprintf("`%s` takes yes or no", name))
		}
	case "if", "else_if", "else":
		if r.requireBlock(f) {
			r.validateScriptValueCond(f.Value.Block, sc)
		}
	case "desc", "format":
		// Localization, not validated here.
	default:
		if base, ok := hasIteratorPrefix(name); ok {
			r.validateValueIterator(base, f, sc)
			return
		}

		if r.isChainKey(name) {
			r.validateChainValueField(f, sc)
			return
		}

		r.warn(m.KeyUnknownField, f.Key.Loc,
			fmt.Sprintf("unknown script value operation `%s`", name))
	}
}

// validateScriptValueOperand accepts a literal, a value-producing target, or
// a nested script value block.
func (r *run) validateScriptValueOperand(f m.Field, sc *scopes.Context) {
	if f.Value.IsBlock() {
		r.validateScriptValueBlock(f.Value.Block, sc)
		return
	}

	r.res.ValidateTarget(*f.Value.Token, sc, scopes.Value)
}

// validateScriptValueCond is an if/else arm inside a script value: the limit
// is a trigger, the rest stays a script value body.
func (r *run) validateScriptValueCond(block *m.Block, sc *scopes.Context) {
	for _, f := range block.Fields {
		if !f.HasKey() {
			r.warnLooseValue(f, block.Loc)
			continue
		}

		if f.Key.Is("limit") {
			if r.requireBlock(f) {
				r.validateTrigger(f.Value.Block, sc)
			}

			continue
		}

		r.validateScriptValueField(f, sc)
	}
}

// validateValueIterator sums a script value body over a list, as in
// `every_vassal = { add = gold }`.
func (r *run) validateValueIterator(base string, f m.Field, sc *scopes.Context) {
	if !r.requireBlock(f) {
		return
	}

	it, ok := r.v.tables.IteratorTransition(base)
	if !ok {
		r.warn(m.KeyUnknownField, f.Key.Loc,
			fmt.Sprintf("unknown iterator `%s`", f.Key.Value))

		return
	}

	sc.Expect(it.In, scopes.TokenReason(f.Key))
	sc.OpenScope(it.Out, f.Key)
	r.validateScriptValueCond(f.Value.Block, sc)
	sc.Close()
}

// validateChainValueField rescopes the computation for a nested value block,
// as in `liege = { value = gold }`.
func (r *run) validateChainValueField(f m.Field, sc *scopes.Context) {
	if !f.Value.IsBlock() {
		r.res.ValidateTarget(*f.Value.Token, sc, scopes.Value)
		return
	}

	if !r.res.OpenChain(f.Key, sc, f.Cmp == m.CmpQEq) {
		return
	}

	r.validateScriptValueBlock(f.Value.Block, sc)
	sc.Close()
}

func hasIteratorPrefix(name string) (string, bool) {
	for _, prefix := range []string{"every_", "random_", "ordered_", "any_"} {
		if base, ok := strings.CutPrefix(name, prefix); ok {
			return base, true
		}
	}

	return "", false
}

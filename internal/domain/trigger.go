package domain

import (
	"fmt"
	"strings"

	"github.com/mouse-blink/pedant/internal/domain/scopes"
	m "github.com/mouse-blink/pedant/internal/model"
)

// argShape says what a trigger or effect accepts on its right-hand side.
type argShape uint8

const (
	argBool argShape = iota
	argCompare
	argItemRef
	argTarget
	argAny
)

// fieldSpec describes one trigger or effect the table knows by name.
type fieldSpec struct {
	in   scopes.Kinds
	arg  argShape
	item m.ItemCategory
	out  scopes.Kinds
}

// triggerTable covers the common named triggers that are not scope
// transitions or comparison operators. Scope-consuming comparisons such as
// `age` or `gold` come from the profile's compare table instead.
var triggerTable = map[string]fieldSpec{
	"is_adult":              {in: scopes.Character, arg: argBool},
	"is_alive":              {in: scopes.Character, arg: argBool},
	"is_ai":                 {in: scopes.Character, arg: argBool},
	"is_female":             {in: scopes.Character, arg: argBool},
	"is_landed":             {in: scopes.Character, arg: argBool},
	"is_ruler":              {in: scopes.Character, arg: argBool},
	"is_independent_ruler":  {in: scopes.Character, arg: argBool},
	"is_at_war":             {in: scopes.Character, arg: argBool},
	"is_imprisoned":         {in: scopes.Character, arg: argBool},
	"is_married":            {in: scopes.Character, arg: argBool},
	"is_county_capital":     {in: scopes.Province, arg: argBool},
	"is_coastal":            {in: scopes.Province, arg: argBool},
	"is_riverside_province": {in: scopes.Province, arg: argBool},
	"is_title_created":      {in: scopes.LandedTitle, arg: argBool},
	"has_trait":             {in: scopes.Character, arg: argItemRef, item: m.ItemTrait},
	"has_character_flag":    {in: scopes.Character, arg: argAny},
	"has_title":             {in: scopes.Character, arg: argTarget, out: scopes.LandedTitle},
	"has_religion":          {in: scopes.Character, arg: argTarget, out: scopes.Religion},
	"has_doctrine":          {in: scopes.Faith, arg: argItemRef, item: m.ItemDoctrine},
	"completely_controls":   {in: scopes.Character, arg: argTarget, out: scopes.LandedTitle},
	"is_in_war_with":        {in: scopes.Character, arg: argTarget, out: scopes.Character},
	"has_law":               {in: scopes.Country, arg: argItemRef, item: m.ItemLaw},
	"is_player":             {in: scopes.Country, arg: argBool},
}

// validateTrigger walks one trigger block. The current scope of sc is the
// subject every condition applies to.
func (r *run) validateTrigger(block *m.Block, sc *scopes.Context) {
	r.validateIfElseSequence(block, "trigger_if", "trigger_else_if", "trigger_else")

	for _, f := range block.Fields {
		if !f.HasKey() {
			r.warnLooseValue(f, block.Loc)
			continue
		}

		r.validateTriggerField(f, sc)
	}
}

func (r *run) warnLooseValue(f m.Field, blockLoc m.Loc) {
	loc := blockLoc
	if f.Value.IsToken() {
		loc = f.Value.Token.Loc
	} else if f.Value.IsBlock() {
		loc = f.Value.Block.Loc
	}

	r.warn(m.KeyValidation, loc, "expected `key = value`")
}

func (r *run) validateTriggerField(f m.Field, sc *scopes.Context) {
	key := f.Key
	name := key.Value

	switch name {
	case "AND", "OR", "NOT", "NOR", "NAND", "limit":
		if r.requireBlock(f) {
			r.validateTrigger(f.Value.Block, sc)
		}

		return
	case "trigger_if", "trigger_else_if", "trigger_else":
		if r.requireBlock(f) {
			r.validateCondBlock(f.Value.Block, sc, false)
		}

		return
	case "custom_description", "custom_tooltip":
		if f.Value.IsBlock() {
			r.validateSkipping(f.Value.Block, sc, false, "text", "subject", "object")
		}
		// A bare custom_tooltip key with a loc string value is fine too.
		return
	case "exists":
		r.validateExists(f, sc)
		return
	case "is_in_list":
		if r.requireToken(f) {
			sc.ExpectList(*f.Value.Token)
		}

		return
	case "save_temporary_scope_as":
		if r.requireToken(f) {
			sc.SaveCurrentScope(f.Value.Token.Value)
		}

		return
	}

	if base, ok := strings.CutPrefix(name, "any_"); ok {
		r.validateIterator(base, f, sc, false)
		return
	}

	if in, ok := r.v.tables.CompareTrigger(name); ok {
		sc.Expect(in, scopes.TokenReason(key))
		r.validateCompareValue(f, sc)

		return
	}

	if spec, ok := triggerTable[name]; ok {
		r.validateSpecField(spec, f, sc)
		return
	}

	if body, ok := r.v.db.ScriptedTrigger(name); ok {
		r.callScripted(name, body, key, sc, false)
		return
	}

	if r.isChainKey(name) {
		r.validateChainField(f, sc, false)
		return
	}

	r.warn(m.KeyUnknownField, key.Loc, fmt.Sprintf("unknown trigger `%s`", name))
}

// validateCondBlock handles an if-style block: the `limit` is a trigger, the
// rest is whatever the surrounding block is.
func (r *run) validateCondBlock(block *m.Block, sc *scopes.Context, effect bool) {
	r.validateSkipping(block, sc, effect, "limit")

	if limit, ok := block.FindField("limit"); ok && limit.Value.IsBlock() {
		r.validateTrigger(limit.Value.Block, sc)
	}
}

// validateSkipping validates a block's fields as triggers or effects, leaving
// the named keys to the caller.
func (r *run) validateSkipping(block *m.Block, sc *scopes.Context, effect bool, skip ...string) {
	for _, f := range block.Fields {
		if !f.HasKey() {
			r.warnLooseValue(f, block.Loc)
			continue
		}

		if contains(skip, f.Key.Value) {
			continue
		}

		if effect {
			r.validateEffectField(f, sc)
		} else {
			r.validateTriggerField(f, sc)
		}
	}
}

func contains(keys []string, name string) bool {
	for _, k := range keys {
		if k == name {
			return true
		}
	}

	return false
}

// validateExists handles `exists = <target>`. A plain saved-scope target
// makes the name known from here on.
func (r *run) validateExists(f m.Field, sc *scopes.Context) {
	if !r.requireToken(f) {
		return
	}

	target := *f.Value.Token
	if name, ok := strings.CutPrefix(target.Value, "scope:"); ok && !strings.Contains(name, ".") {
		sc.ExistsScope(name, target)
		return
	}

	r.res.ValidateTargetOkThis(target, sc, r.v.tables.AllKinds())
}

// validateSpecField checks one table-driven trigger or effect entry.
func (r *run) validateSpecField(spec fieldSpec, f m.Field, sc *scopes.Context) {
	sc.Expect(spec.in, scopes.TokenReason(f.Key))

	switch spec.arg {
	case argBool:
		if r.requireToken(f) && !f.Value.Token.Is("yes") && !f.Value.Token.Is("no") {
			// Bool triggers also accept a target producing a bool.
			r.res.ValidateTarget(*f.Value.Token, sc, scopes.Bool)
		}
	case argCompare:
		r.validateCompareValue(f, sc)
	case argItemRef:
		if r.requireToken(f) && !r.v.db.Exists(spec.item, f.Value.Token.Value) {
			r.rep.Report(m.Diagnostic{
				Severity: m.SeverityError,
				Key:      m.KeyUnknownToken,
				Loc:      f.Value.Token.Loc,
				Message:  fmt.Sprintf("%s %s is not defined", spec.item, f.Value.Token.Value),
			})
		}
	case argTarget:
		if r.requireToken(f) {
			r.res.ValidateTarget(*f.Value.Token, sc, spec.out)
		}
	case argAny:
		// Flag and variable names take anything.
	}
}

// validateCompareValue checks the right side of a numeric comparison: a
// literal, a script value, a value-producing chain, or an inline script
// value block.
func (r *run) validateCompareValue(f m.Field, sc *scopes.Context) {
	if f.Value.IsBlock() {
		r.validateScriptValueBlock(f.Value.Block, sc)
		return
	}

	r.res.ValidateTarget(*f.Value.Token, sc, scopes.Value)
}

// isChainKey reports whether a key is plausibly a scope chain rather than a
// misspelled trigger or effect.
func (r *run) isChainKey(name string) bool {
	if strings.Contains(name, ".") || strings.Contains(name, ":") {
		return true
	}

	switch strings.ToLower(name) {
	case "root", "prev", "this":
		return true
	}

	_, ok := r.v.tables.SimpleTransition(name)

	return ok
}

// validateChainField handles a scope chain used as a key: with a block value
// the chain changes the subject for the nested block, with a token value it
// compares two targets.
func (r *run) validateChainField(f m.Field, sc *scopes.Context, effect bool) {
	if f.Value.IsBlock() {
		if !r.res.OpenChain(f.Key, sc, f.Cmp == m.CmpQEq) {
			return
		}

		if effect {
			r.validateEffect(f.Value.Block, sc)
		} else {
			r.validateTrigger(f.Value.Block, sc)
		}

		sc.Close()

		return
	}

	// `root.culture = culture:greek` compares two targets for equality.
	lhs := r.res.ValidateTargetOkThis(f.Key, sc, r.v.tables.AllKinds())
	r.res.ValidateTarget(*f.Value.Token, sc, lhs)
}

// validateIterator handles any_/every_/random_/ordered_ keys with their
// prefix stripped.
func (r *run) validateIterator(base string, f m.Field, sc *scopes.Context, effect bool) {
	key := f.Key

	if !r.requireBlock(f) {
		return
	}

	if base == "in_list" || base == "in_local_list" || base == "in_global_list" {
		r.validateListIterator(f, sc, effect)
		return
	}

	it, ok := r.v.tables.IteratorTransition(base)
	if !ok {
		if rm, ok := r.v.tables.RemovedIterator(base); ok {
			r.rep.Report(m.Diagnostic{
				Severity: m.SeverityError,
				Key:      m.KeyRemoved,
				Loc:      key.Loc,
				Message:  fmt.Sprintf("`%s` was removed in %s", key.Value, rm.Version),
				Info:     rm.Explanation,
			})

			return
		}

		r.warn(m.KeyUnknownField, key.Loc, fmt.Sprintf("unknown iterator `%s`", key.Value))

		return
	}

	sc.Expect(it.In, scopes.TokenReason(key))
	sc.OpenScope(it.Out, key)
	r.validateIteratorBody(f.Value.Block, sc, effect)
	sc.Close()
}

// validateListIterator iterates a user-built list; the body runs with the
// list's element kind as subject.
func (r *run) validateListIterator(f m.Field, sc *scopes.Context, effect bool) {
	list, ok := f.Value.Block.FindField("list")
	if !ok || !list.Value.IsToken() {
		r.warn(m.KeyValidation, f.Key.Loc, fmt.Sprintf("`%s` needs a `list` field", f.Key.Value))
		return
	}

	sc.OpenBuilder()
	sc.ReplaceListEntry(list.Value.Token.Value, *list.Value.Token)
	sc.FinalizeBuilder()
	r.validateIteratorBodySkipping(f.Value.Block, sc, effect, "list")
	sc.Close()
}

func (r *run) validateIteratorBody(block *m.Block, sc *scopes.Context, effect bool) {
	r.validateIteratorBodySkipping(block, sc, effect)
}

// validateIteratorBodySkipping dispatches an iterator body's fields: the
// iteration control keys first, everything else as trigger or effect.
func (r *run) validateIteratorBodySkipping(block *m.Block, sc *scopes.Context, effect bool, skip ...string) {
	for _, f := range block.Fields {
		if !f.HasKey() {
			r.warnLooseValue(f, block.Loc)
			continue
		}

		name := f.Key.Value
		switch {
		case contains(skip, name):
		case name == "limit" || name == "filter":
			if r.requireBlock(f) {
				r.validateTrigger(f.Value.Block, sc)
			}
		case name == "count":
			// `count = all` as well as numeric comparisons.
			if f.Value.IsToken() && f.Value.Token.Is("all") {
				continue
			}

			r.validateCompareValue(f, sc)
		case name == "percent" || name == "position" || name == "min" || name == "max":
			r.validateCompareValue(f, sc)
		case name == "order_by" || name == "weight":
			r.validateCompareValue(f, sc)
		case effect:
			r.validateEffectField(f, sc)
		default:
			r.validateTriggerField(f, sc)
		}
	}
}

// callScripted checks a scripted trigger or effect call against the current
// context. Self-referential script would recurse forever; a name already on
// the call stack is skipped.
func (r *run) callScripted(name string, body *m.Block, key m.Token, sc *scopes.Context, effect bool) {
	if r.calling[name] {
		return
	}

	r.calling[name] = true
	defer delete(r.calling, name)

	callee := r.calleeContext(body, key, effect)
	sc.ExpectCompatibility(callee, key)
}

// requireBlock reports and returns false when a field needs a block value
// but has a token.
func (r *run) requireBlock(f m.Field) bool {
	if f.Value.IsBlock() {
		return true
	}

	r.warn(m.KeyValidation, f.Key.Loc, fmt.Sprintf("`%s` expects a block", f.Key.Value))

	return false
}

// requireToken is the opposite of requireBlock.
func (r *run) requireToken(f m.Field) bool {
	if f.Value.IsToken() {
		return true
	}

	r.warn(m.KeyValidation, f.Key.Loc, fmt.Sprintf("`%s` expects a value, not a block", f.Key.Value))

	return false
}

// validateIfElseSequence warns about if/else chains that cannot mean what
// they look like they mean.
func (r *run) validateIfElseSequence(block *m.Block, ifKey, elseIfKey, elseKey string) {
	prevCond := false

	for _, f := range block.Fields {
		if !f.HasKey() {
			continue
		}

		switch f.Key.Value {
		case ifKey:
			prevCond = true
		case elseIfKey:
			if !prevCond {
				r.warn(m.KeyIfElse, f.Key.Loc,
					fmt.Sprintf("`%s` without a preceding `%s`", elseIfKey, ifKey))
			}

			prevCond = true
		case elseKey:
			if !prevCond {
				r.warn(m.KeyIfElse, f.Key.Loc,
					fmt.Sprintf("`%s` without a preceding `%s`", elseKey, ifKey))
			}

			if f.Value.IsBlock() && f.Value.Block.HasKeyField("limit") {
				r.warn(m.KeyIfElse, f.Key.Loc,
					fmt.Sprintf("`%s` with a `limit`, did you mean `%s`?", elseKey, elseIfKey))
			}

			prevCond = false
		default:
			prevCond = false
		}
	}
}

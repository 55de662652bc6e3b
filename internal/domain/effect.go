package domain

import (
	"fmt"
	"strings"

	"github.com/mouse-blink/pedant/internal/domain/scopes"
	m "github.com/mouse-blink/pedant/internal/model"
)

// effectTable covers the common named effects, in the same shape as the
// trigger table.
var effectTable = map[string]fieldSpec{
	"add_gold":                    {in: scopes.Character, arg: argCompare},
	"add_prestige":                {in: scopes.Character, arg: argCompare},
	"add_piety":                   {in: scopes.Character, arg: argCompare},
	"add_stress":                  {in: scopes.Character, arg: argCompare},
	"add_dread":                   {in: scopes.Character, arg: argCompare},
	"add_trait":                   {in: scopes.Character, arg: argItemRef, item: m.ItemTrait},
	"remove_trait":                {in: scopes.Character, arg: argItemRef, item: m.ItemTrait},
	"add_character_flag":          {in: scopes.Character, arg: argAny},
	"remove_character_flag":       {in: scopes.Character, arg: argAny},
	"set_culture":                 {in: scopes.Character, arg: argTarget, out: scopes.Culture},
	"set_character_faith":         {in: scopes.Character, arg: argTarget, out: scopes.Faith},
	"imprison":                    {in: scopes.Character, arg: argTarget, out: scopes.Character},
	"release_from_prison":         {in: scopes.Character, arg: argBool},
	"add_claim":                   {in: scopes.Character, arg: argTarget, out: scopes.LandedTitle},
	"remove_claim":                {in: scopes.Character, arg: argTarget, out: scopes.LandedTitle},
	"end_war":                     {in: scopes.War, arg: argAny},
	"set_county_culture":          {in: scopes.LandedTitle, arg: argTarget, out: scopes.Culture},
	"change_development_progress": {in: scopes.Province, arg: argCompare},
	"add_treasury":                {in: scopes.Country, arg: argCompare},
	"add_radicals":                {in: scopes.Country, arg: argCompare},
}

// validateEffect walks one effect block. The current scope of sc is the
// subject the effects apply to.
func (r *run) validateEffect(block *m.Block, sc *scopes.Context) {
	r.validateIfElseSequence(block, "if", "else_if", "else")

	for _, f := range block.Fields {
		if !f.HasKey() {
			r.warnLooseValue(f, block.Loc)
			continue
		}

		r.validateEffectField(f, sc)
	}
}

func (r *run) validateEffectField(f m.Field, sc *scopes.Context) {
	key := f.Key
	name := key.Value

	switch name {
	case "if", "else_if", "else":
		if r.requireBlock(f) {
			r.validateCondBlock(f.Value.Block, sc, true)
		}

		return
	case "hidden_effect", "show_as_tooltip":
		if r.requireBlock(f) {
			r.validateEffect(f.Value.Block, sc)
		}

		return
	case "custom_tooltip", "custom_description":
		if f.Value.IsBlock() {
			r.validateSkipping(f.Value.Block, sc, true, "text", "subject", "object")
		}

		return
	case "save_scope_as", "save_temporary_scope_as":
		if r.requireToken(f) {
			sc.SaveCurrentScope(f.Value.Token.Value)
		}

		return
	case "add_to_list", "add_to_temporary_list":
		if r.requireToken(f) {
			sc.DefineOrExpectList(*f.Value.Token)
		}

		return
	case "remove_from_list":
		if r.requireToken(f) {
			sc.ExpectList(*f.Value.Token)
		}

		return
	case "random":
		if r.requireBlock(f) {
			r.validateSkipping(f.Value.Block, sc, true, "chance", "limit")
			r.validateRandomControls(f.Value.Block, sc)
		}

		return
	case "random_list":
		if r.requireBlock(f) {
			r.validateRandomList(f.Value.Block, sc)
		}

		return
	case "trigger_event":
		r.validateTriggerEvent(f, sc)
		return
	}

	for _, prefix := range []string{"every_", "random_", "ordered_"} {
		if base, ok := strings.CutPrefix(name, prefix); ok {
			r.validateIterator(base, f, sc, true)
			return
		}
	}

	if spec, ok := effectTable[name]; ok {
		r.validateSpecField(spec, f, sc)
		return
	}

	if body, ok := r.v.db.ScriptedEffect(name); ok {
		r.callScripted(name, body, key, sc, true)
		return
	}

	if r.isChainKey(name) {
		r.validateChainField(f, sc, true)
		return
	}

	r.warn(m.KeyUnknownField, key.Loc, fmt.Sprintf("unknown effect `%s`", name))
}

func (r *run) validateRandomControls(block *m.Block, sc *scopes.Context) {
	if chance, ok := block.FindField("chance"); ok {
		r.validateCompareValue(chance, sc)
	}

	if limit, ok := block.FindField("limit"); ok && limit.Value.IsBlock() {
		r.validateTrigger(limit.Value.Block, sc)
	}
}

// validateRandomList handles `random_list = { 10 = { ... } 90 = { ... } }`.
// Each entry key is a weight; each body is effects plus optional trigger and
// modifier controls.
func (r *run) validateRandomList(block *m.Block, sc *scopes.Context) {
	for _, f := range block.Fields {
		if !f.HasKey() {
			r.warnLooseValue(f, block.Loc)
			continue
		}

		if !f.Value.IsBlock() {
			r.warn(m.KeyValidation, f.Key.Loc, "random_list entries are blocks")
			continue
		}

		entry := f.Value.Block
		r.validateSkipping(entry, sc, true, "trigger", "modifier", "desc", "show_chance")

		if trig, ok := entry.FindField("trigger"); ok && trig.Value.IsBlock() {
			r.validateTrigger(trig.Value.Block, sc)
		}
	}
}

// validateTriggerEvent accepts both the short `trigger_event = ns.1` form
// and the block form with id and delay fields.
func (r *run) validateTriggerEvent(f m.Field, sc *scopes.Context) {
	checkID := func(id m.Token) {
		if !r.v.db.Exists(m.ItemEvent, id.Value) {
			r.rep.Report(m.Diagnostic{
				Severity: m.SeverityError,
				Key:      m.KeyUnknownToken,
				Loc:      id.Loc,
				Message:  fmt.Sprintf("event %s is not defined", id.Value),
			})
		}
	}

	if f.Value.IsToken() {
		checkID(*f.Value.Token)
		return
	}

	block := f.Value.Block
	for _, sub := range block.Fields {
		if !sub.HasKey() {
			continue
		}

		switch sub.Key.Value {
		case "id":
			if sub.Value.IsToken() {
				checkID(*sub.Value.Token)
			}
		case "days", "months", "years":
			// Delays take a number or a { min max } range.
			if sub.Value.IsToken() {
				r.res.ValidateTarget(*sub.Value.Token, sc, scopes.Value)
			}
		case "trigger":
			if sub.Value.IsBlock() {
				r.validateTrigger(sub.Value.Block, sc)
			}
		}
	}

	if !block.HasKeyField("id") {
		r.warn(m.KeyValidation, f.Key.Loc, "`trigger_event` needs an `id`")
	}
}

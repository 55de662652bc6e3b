package domain

import (
	"path/filepath"
	"strings"

	"github.com/mouse-blink/pedant/internal/domain/scopes"
	m "github.com/mouse-blink/pedant/internal/model"
)

// ValidateFile routes a parsed file to the validator that understands its
// directory. Files outside the known directories only contribute to the item
// database and are not walked here.
func (v *Validator) ValidateFile(path m.Path, block *m.Block) {
	slash := filepath.ToSlash(string(path))

	switch {
	case strings.Contains(slash, "events/"):
		v.ValidateEventFile(block)
	case strings.Contains(slash, "common/scripted_triggers/"):
		v.validateScriptedFile(block, false)
	case strings.Contains(slash, "common/scripted_effects/"):
		v.validateScriptedFile(block, true)
	case strings.Contains(slash, "common/script_values/"):
		v.validateScriptValueFile(block)
	case strings.Contains(slash, "common/decisions/"):
		v.validateDecisionFile(block)
	}
}

// validateScriptedFile checks every scripted trigger or effect declaration.
// The body runs against an unconstrained scope; what it demands of its
// callers is checked again at each call site.
func (v *Validator) validateScriptedFile(block *m.Block, effect bool) {
	for _, f := range block.Fields {
		if !f.HasKey() || !f.Value.IsBlock() {
			continue
		}

		r := v.newRun(v.rep)
		r.calling[f.Key.Value] = true

		sc := scopes.NewUnrooted(v.tables, v.rep, v.tables.AllKinds(), f.Key)
		sc.SetStrict(false)

		if effect {
			r.validateEffect(f.Value.Block, sc)
		} else {
			r.validateTrigger(f.Value.Block, sc)
		}

		r.finishUnit(sc, f.Key.Loc)
	}
}

func (v *Validator) validateScriptValueFile(block *m.Block) {
	for _, f := range block.Fields {
		if !f.HasKey() || !f.Value.IsBlock() {
			continue
		}

		r := v.newRun(v.rep)
		r.calling["value "+f.Key.Value] = true

		sc := scopes.NewUnrooted(v.tables, v.rep, v.tables.AllKinds(), f.Key)
		sc.SetStrict(false)

		r.validateScriptValueBlock(f.Value.Block, sc)
		r.finishUnit(sc, f.Key.Loc)
	}
}

// tokenDecisionFields are decision fields that hold identifiers, numbers or
// localization keys.
var tokenDecisionFields = map[string]bool{
	"picture": true, "major": true, "ai_check_interval": true,
	"ai_goal": true, "sort_order": true, "title": true, "desc": true,
	"selection_tooltip": true, "confirm_text": true, "extra_flavor": true,
	"decision_group_type": true, "widget": true, "days_valid": true,
}

// validateDecisionFile checks player decisions. Decisions are always taken
// by a character, so the root kind is known exactly and saved-scope use can
// be checked strictly.
func (v *Validator) validateDecisionFile(block *m.Block) {
	for _, f := range block.Fields {
		if !f.HasKey() || !f.Value.IsBlock() {
			continue
		}

		r := v.newRun(v.rep)
		sc := scopes.NewRooted(v.tables, v.rep, scopes.Character, f.Key)

		for _, df := range f.Value.Block.Fields {
			if !df.HasKey() {
				r.warnLooseValue(df, f.Value.Block.Loc)
				continue
			}

			r.validateDecisionField(df, sc)
		}

		r.finishUnit(sc, f.Key.Loc)
	}
}

func (r *run) validateDecisionField(f m.Field, sc *scopes.Context) {
	switch f.Key.Value {
	case "is_shown", "is_valid", "is_valid_showing_failures_only":
		if r.requireBlock(f) {
			r.validateTrigger(f.Value.Block, sc)
		}
	case "effect":
		if r.requireBlock(f) {
			r.validateEffect(f.Value.Block, sc)
		}
	case "ai_potential":
		if r.requireBlock(f) {
			r.validateTrigger(f.Value.Block, sc)
		}
	case "ai_will_do":
		if r.requireBlock(f) {
			r.validateAIChance(f.Value.Block, sc)
		}
	case "cost", "minimum_cost":
		if !r.requireBlock(f) {
			return
		}

		for _, cf := range f.Value.Block.Fields {
			if cf.HasKey() {
				r.validateScriptValueOperand(cf, sc)
			}
		}
	case "cooldown":
		if f.Value.IsBlock() {
			for _, cf := range f.Value.Block.Fields {
				if cf.HasKey() {
					r.validateScriptValueOperand(cf, sc)
				}
			}
		}
	default:
		if tokenDecisionFields[f.Key.Value] {
			return
		}

		r.warn(m.KeyUnknownField, f.Key.Loc,
			"unknown decision field `"+f.Key.Value+"`")
	}
}

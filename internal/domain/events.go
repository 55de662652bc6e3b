package domain

import (
	"fmt"
	"strings"

	"github.com/mouse-blink/pedant/internal/domain/scopes"
	m "github.com/mouse-blink/pedant/internal/model"
)

// eventRootKinds maps an event's `type` field to the scope kind the game
// engine supplies as root when it fires.
var eventRootKinds = map[string]scopes.Kinds{
	"character_event": scopes.Character,
	"letter_event":    scopes.Character,
	"court_event":     scopes.Character,
	"activity_event":  scopes.Character,
	"duel_event":      scopes.Character,
	"country_event":   scopes.Country,
	"state_event":     scopes.State,
}

// tokenEventFields are event fields whose values are identifiers or
// localization keys, not script.
var tokenEventFields = map[string]bool{
	"type": true, "hidden": true, "title": true, "desc": true,
	"theme": true, "override_background": true, "override_icon": true,
	"left_portrait": true, "right_portrait": true, "lower_left_portrait": true,
	"lower_center_portrait": true, "lower_right_portrait": true,
	"window": true, "scope": true, "orphan": true, "icon": true,
	"duration": true, "placement": true, "dlc": true,
}

// ValidateEventFile checks every event in a parsed events file. Event keys
// are namespaced, `ns.1` style; anything else at top level is ignored apart
// from the namespace declaration itself.
func (v *Validator) ValidateEventFile(block *m.Block) {
	for _, f := range block.Fields {
		if !f.HasKey() || f.Key.Is("namespace") {
			continue
		}

		if !strings.Contains(f.Key.Value, ".") || !f.Value.IsBlock() {
			continue
		}

		v.newRun(v.rep).validateEvent(f.Key, f.Value.Block)
	}
}

func (r *run) defaultEventRoot() scopes.Kinds {
	if r.v.tables.Game() == m.GameVic3 {
		return scopes.Country
	}

	return scopes.Character
}

func (r *run) validateEvent(key m.Token, body *m.Block) {
	root := r.defaultEventRoot()
	if typ, ok := body.FindField("type"); ok && typ.Value.IsToken() {
		if kinds, ok := eventRootKinds[typ.Value.Token.Value]; ok {
			root = kinds
		}
	}

	sc := scopes.NewRooted(r.v.tables, r.rep, root, key)
	// Events are fired from elsewhere, so saved scopes set by the sender
	// cannot be known here.
	sc.SetStrict(false)

	for _, f := range body.Fields {
		if !f.HasKey() {
			r.warnLooseValue(f, body.Loc)
			continue
		}

		r.validateEventField(f, sc)
	}

	r.finishUnit(sc, key.Loc)
}

func (r *run) validateEventField(f m.Field, sc *scopes.Context) {
	name := f.Key.Value

	switch {
	case name == "trigger" || name == "is_valid":
		if r.requireBlock(f) {
			r.validateTrigger(f.Value.Block, sc)
		}
	case name == "immediate" || name == "after" || name == "on_trigger_fail":
		if r.requireBlock(f) {
			r.validateEffect(f.Value.Block, sc)
		}
	case name == "weight_multiplier" || name == "cooldown":
		if f.Value.IsBlock() {
			r.validateScriptValueBlock(f.Value.Block, sc)
		}
	case name == "option":
		if r.requireBlock(f) {
			r.validateEventOption(f.Value.Block, sc)
		}
	case tokenEventFields[name]:
	default:
		r.warn(m.KeyUnknownField, f.Key.Loc, fmt.Sprintf("unknown event field `%s`", name))
	}
}

// validateEventOption checks one option body: its own trigger, its AI
// weighting and the effects that run when it is picked.
func (r *run) validateEventOption(block *m.Block, sc *scopes.Context) {
	for _, f := range block.Fields {
		if !f.HasKey() {
			r.warnLooseValue(f, block.Loc)
			continue
		}

		switch f.Key.Value {
		case "name", "custom_tooltip", "flavor", "reason", "highlight_portrait",
			"skill", "trait", "fallback":
		case "trigger", "show_as_unavailable":
			if r.requireBlock(f) {
				r.validateTrigger(f.Value.Block, sc)
			}
		case "ai_chance":
			if r.requireBlock(f) {
				r.validateAIChance(f.Value.Block, sc)
			}
		default:
			r.validateEffectField(f, sc)
		}
	}
}

// validateAIChance handles `ai_chance = { base = N modifier = { ... } }`.
// Modifier blocks mix an add or factor operand with trigger conditions.
func (r *run) validateAIChance(block *m.Block, sc *scopes.Context) {
	for _, f := range block.Fields {
		if !f.HasKey() {
			r.warnLooseValue(f, block.Loc)
			continue
		}

		switch f.Key.Value {
		case "base", "factor", "min", "max":
			r.validateScriptValueOperand(f, sc)
		case "modifier", "compare_modifier", "opinion_modifier":
			if !r.requireBlock(f) {
				continue
			}

			for _, mf := range f.Value.Block.Fields {
				if !mf.HasKey() {
					continue
				}

				switch mf.Key.Value {
				case "add", "factor":
					r.validateScriptValueOperand(mf, sc)
				case "desc":
				default:
					r.validateTriggerField(mf, sc)
				}
			}
		default:
			r.warn(m.KeyUnknownField, f.Key.Loc,
				fmt.Sprintf("unknown ai_chance field `%s`", f.Key.Value))
		}
	}
}

package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mouse-blink/pedant/internal/domain/scopes"
	m "github.com/mouse-blink/pedant/internal/model"
)

// checkEffect validates src as an effect block in a rooted character scope.
func checkEffect(t *testing.T, files map[string]string, src string) *testSink {
	t.Helper()

	v, sink := newTestValidator(t, files)
	block := parseSnippet(t, src)

	r := v.newRun(sink)
	sc := scopes.NewRooted(v.tables, sink, scopes.Character, m.NewToken("test_unit"))
	r.validateEffect(block, sc)
	r.finishUnit(sc, m.Loc{})

	return sink
}

func TestEffectValidBlock(t *testing.T) {
	sink := checkEffect(t, nil, `
		add_gold = 100
		add_prestige = -50
		liege = {
			add_piety = 25
		}
		set_culture = root.culture
	`)

	assert.Empty(t, sink.diags, "diagnostics: %v", sink.messages())
}

func TestEffectUnknownName(t *testing.T) {
	sink := checkEffect(t, nil, `add_goold = 100`)

	require.Len(t, sink.diags, 1)
	assert.Equal(t, m.KeyUnknownField, sink.diags[0].Key)
	assert.Equal(t, "unknown effect `add_goold`", sink.diags[0].Message)
}

func TestEffectIfWithLimit(t *testing.T) {
	sink := checkEffect(t, nil, `
		if = {
			limit = { is_adult = yes }
			add_gold = 10
		}
		else = {
			add_gold = 5
		}
	`)

	assert.Empty(t, sink.diags, "diagnostics: %v", sink.messages())
}

func TestEffectElseWithLimit(t *testing.T) {
	sink := checkEffect(t, nil, `
		if = {
			limit = { is_adult = yes }
			add_gold = 10
		}
		else = {
			limit = { is_female = yes }
			add_gold = 5
		}
	`)

	require.NotEmpty(t, sink.diags)
	assert.Equal(t, m.KeyIfElse, sink.diags[0].Key)
	assert.Contains(t, sink.diags[0].Message, "did you mean `else_if`")
}

func TestEffectElseWithoutIf(t *testing.T) {
	sink := checkEffect(t, nil, `else = { add_gold = 5 }`)

	require.NotEmpty(t, sink.diags)
	assert.Equal(t, m.KeyIfElse, sink.diags[0].Key)
	assert.Equal(t, "`else` without a preceding `if`", sink.diags[0].Message)
}

func TestEffectSavedScopeFlow(t *testing.T) {
	sink := checkEffect(t, nil, `
		liege = {
			save_scope_as = my_liege
		}
		scope:my_liege = {
			add_gold = 10
		}
	`)

	assert.Empty(t, sink.diags, "diagnostics: %v", sink.messages())
}

func TestEffectListFlow(t *testing.T) {
	sink := checkEffect(t, nil, `
		every_vassal = {
			add_to_list = loyalists
		}
		every_in_list = {
			list = loyalists
			add_gold = 1
		}
	`)

	assert.Empty(t, sink.diags, "diagnostics: %v", sink.messages())
}

func TestEffectIteratorScope(t *testing.T) {
	// every_held_title bodies run in landed title scope.
	sink := checkEffect(t, nil, `
		every_held_title = {
			add_gold = 5
		}
	`)

	require.NotEmpty(t, sink.diags)
	assert.Equal(t, m.KeyKindMismatch, sink.diags[0].Key)
}

func TestEffectHiddenEffect(t *testing.T) {
	sink := checkEffect(t, nil, `
		hidden_effect = {
			add_dread = 10
		}
	`)

	assert.Empty(t, sink.diags, "diagnostics: %v", sink.messages())
}

func TestEffectRandomList(t *testing.T) {
	sink := checkEffect(t, nil, `
		random_list = {
			10 = {
				trigger = { is_adult = yes }
				add_gold = 100
			}
			90 = {
			}
		}
	`)

	assert.Empty(t, sink.diags, "diagnostics: %v", sink.messages())
}

func TestEffectScriptedEffectCall(t *testing.T) {
	files := map[string]string{
		"common/scripted_effects/00_effects.txt": `
			reward_effect = {
				add_gold = 50
				add_prestige = 25
			}
		`,
	}

	sink := checkEffect(t, files, `reward_effect = yes`)
	assert.Empty(t, sink.diags, "diagnostics: %v", sink.messages())
}

func TestEffectScriptedEffectScopeMismatch(t *testing.T) {
	files := map[string]string{
		"common/scripted_effects/00_effects.txt": `
			county_effect = {
				set_county_culture = root.culture
			}
		`,
	}

	sink := checkEffect(t, files, `county_effect = yes`)
	require.NotEmpty(t, sink.diags)
	assert.Contains(t, sink.diags[0].Message, "`county_effect` expects scope to be")
}

func TestEffectRecursiveScriptedEffectTerminates(t *testing.T) {
	files := map[string]string{
		"common/scripted_effects/00_effects.txt": `
			loop_effect = {
				add_gold = 1
				loop_effect = yes
			}
		`,
	}

	sink := checkEffect(t, files, `loop_effect = yes`)
	assert.Empty(t, sink.diags, "diagnostics: %v", sink.messages())
}

func TestEffectTriggerEvent(t *testing.T) {
	files := map[string]string{
		"events/test_events.txt": `
			namespace = test
			test.1 = {
				type = character_event
			}
		`,
	}

	sink := checkEffect(t, files, `trigger_event = test.1`)
	assert.Empty(t, sink.diags, "diagnostics: %v", sink.messages())

	sink = checkEffect(t, files, `trigger_event = { id = test.2 days = 5 }`)
	require.NotEmpty(t, sink.diags)
	assert.Equal(t, "event test.2 is not defined", sink.diags[0].Message)
}

func TestEffectTriggerEventMissingID(t *testing.T) {
	sink := checkEffect(t, nil, `trigger_event = { days = 5 }`)

	require.NotEmpty(t, sink.diags)
	assert.Equal(t, "`trigger_event` needs an `id`", sink.diags[0].Message)
}

func TestEffectSaveScopeThenStrictUse(t *testing.T) {
	// A name that was never saved draws the strict-scopes warning.
	sink := checkEffect(t, nil, `scope:stranger = { add_gold = 1 }`)

	require.NotEmpty(t, sink.diags)
	assert.Equal(t, m.KeyStrictScopes, sink.diags[0].Key)
	assert.Contains(t, sink.diags[0].Message, "scope:stranger might not be available here")
}

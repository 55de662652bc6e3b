package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/mouse-blink/pedant/internal/model"
)

func TestDispatchRoutesByDirectory(t *testing.T) {
	v, sink := newTestValidator(t, nil)

	block := parseSnippet(t, `
		my_decision = {
			is_shown = { is_adultt = yes }
		}
	`)
	v.ValidateFile("mod/common/decisions/00_decisions.txt", block)

	require.NotEmpty(t, sink.diags)
	assert.Equal(t, "unknown trigger `is_adultt`", sink.diags[0].Message)
}

func TestDispatchIgnoresUncategorizedFiles(t *testing.T) {
	v, sink := newTestValidator(t, nil)

	block := parseSnippet(t, `whatever = { some = thing }`)
	v.ValidateFile("mod/common/defines/00_defines.txt", block)

	assert.Empty(t, sink.diags)
}

func TestDecisionFileValid(t *testing.T) {
	v, sink := newTestValidator(t, nil)

	block := parseSnippet(t, `
		raid_decision = {
			picture = raid.dds
			major = yes

			is_shown = {
				is_adult = yes
			}
			is_valid = {
				gold >= 100
			}
			cost = {
				gold = 50
				prestige = 25
			}
			cooldown = { years = 5 }
			effect = {
				add_prestige = 100
			}
			ai_will_do = {
				base = 10
				modifier = {
					add = 40
					is_at_war = no
				}
			}
		}
	`)
	v.validateDecisionFile(block)

	assert.Empty(t, sink.diags, "diagnostics: %v", sink.messages())
}

func TestDecisionUnknownField(t *testing.T) {
	v, sink := newTestValidator(t, nil)

	block := parseSnippet(t, `
		my_decision = {
			efect = { add_gold = 1 }
		}
	`)
	v.validateDecisionFile(block)

	require.NotEmpty(t, sink.diags)
	assert.Equal(t, "unknown decision field `efect`", sink.diags[0].Message)
}

func TestScriptValueFileValid(t *testing.T) {
	v, sink := newTestValidator(t, nil)

	block := parseSnippet(t, `
		my_wealth_value = {
			value = gold
			multiply = 2
			if = {
				limit = { is_at_war = yes }
				add = 100
			}
			min = 0
		}
	`)
	v.validateScriptValueFile(block)

	assert.Empty(t, sink.diags, "diagnostics: %v", sink.messages())
}

func TestScriptValueUnknownOperation(t *testing.T) {
	v, sink := newTestValidator(t, nil)

	block := parseSnippet(t, `
		my_value = {
			vallue = 5
		}
	`)
	v.validateScriptValueFile(block)

	require.NotEmpty(t, sink.diags)
	assert.Equal(t, "unknown script value operation `vallue`", sink.diags[0].Message)
}

func TestScriptValueReferencedFromTrigger(t *testing.T) {
	files := map[string]string{
		"common/script_values/00_values.txt": `
			my_wealth_value = {
				value = gold
				multiply = 2
			}
		`,
	}

	sink := checkTrigger(t, files, `gold >= my_wealth_value`)
	assert.Empty(t, sink.diags, "diagnostics: %v", sink.messages())
}

func TestScriptValueScopeLeaksToCaller(t *testing.T) {
	files := map[string]string{
		"common/script_values/00_values.txt": `
			county_value = {
				value = county_control
			}
		`,
	}

	// The value reads county_control, which needs a landed title, but the
	// calling trigger runs in character scope.
	sink := checkTrigger(t, files, `gold >= county_value`)
	require.NotEmpty(t, sink.diags)
	assert.Equal(t, m.KeyKindMismatch, sink.diags[0].Key)
}

func TestScriptedTriggerFileReportsOwnBody(t *testing.T) {
	v, sink := newTestValidator(t, nil)

	block := parseSnippet(t, `
		broken_trigger = {
			is_adultt = yes
		}
	`)
	v.validateScriptedFile(block, false)

	require.NotEmpty(t, sink.diags)
	assert.Equal(t, "unknown trigger `is_adultt`", sink.diags[0].Message)
}

func TestRecursiveScriptValueTerminates(t *testing.T) {
	files := map[string]string{
		"common/script_values/00_values.txt": `
			loop_value = {
				value = loop_value
				add = 1
			}
		`,
	}

	v, sink := newTestValidator(t, files)
	body, ok := v.db.ScriptValue("loop_value")
	require.True(t, ok)

	v.validateScriptValueFile(&m.Block{Fields: []m.Field{
		{
			Key:   m.NewToken("loop_value"),
			Cmp:   m.CmpEq,
			Value: m.BV{Block: body},
		},
	}})

	assert.Empty(t, sink.diags, "diagnostics: %v", sink.messages())
}

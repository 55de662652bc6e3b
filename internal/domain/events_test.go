package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/mouse-blink/pedant/internal/model"
)

// checkEvents runs the event file validator over src.
func checkEvents(t *testing.T, files map[string]string, src string) *testSink {
	t.Helper()

	v, sink := newTestValidator(t, files)
	block := parseSnippet(t, src)
	v.ValidateEventFile(block)

	return sink
}

func TestEventFileValid(t *testing.T) {
	sink := checkEvents(t, nil, `
		namespace = test

		test.1 = {
			type = character_event
			title = test.1.t
			desc = test.1.desc
			theme = faith

			trigger = {
				is_adult = yes
				gold >= 50
			}

			immediate = {
				liege = { save_scope_as = my_liege }
			}

			option = {
				name = test.1.a
				trigger = { is_imprisoned = no }
				ai_chance = {
					base = 10
					modifier = {
						add = 25
						is_female = yes
					}
				}
				add_gold = 10
				scope:my_liege = { add_prestige = 5 }
			}
		}
	`)

	assert.Empty(t, sink.diags, "diagnostics: %v", sink.messages())
}

func TestEventRootIsCharacterByDefault(t *testing.T) {
	sink := checkEvents(t, nil, `
		namespace = test
		test.1 = {
			trigger = { county_control >= 10 }
		}
	`)

	require.NotEmpty(t, sink.diags)
	assert.Equal(t, m.KeyKindMismatch, sink.diags[0].Key)
	assert.Contains(t, sink.diags[0].Message, "`county_control` is for")
}

func TestEventUnknownField(t *testing.T) {
	sink := checkEvents(t, nil, `
		namespace = test
		test.1 = {
			type = character_event
			bogus_block = { }
		}
	`)

	require.NotEmpty(t, sink.diags)
	assert.Equal(t, "unknown event field `bogus_block`", sink.diags[0].Message)
}

func TestEventOptionEffectsAreChecked(t *testing.T) {
	sink := checkEvents(t, nil, `
		namespace = test
		test.1 = {
			type = character_event
			option = {
				name = test.1.a
				add_goold = 10
			}
		}
	`)

	require.NotEmpty(t, sink.diags)
	assert.Equal(t, "unknown effect `add_goold`", sink.diags[0].Message)
}

func TestEventSavedScopesStayPerEvent(t *testing.T) {
	// A scope saved in one event is not available in the next, but event
	// contexts are not strict, so the reference narrows quietly instead of
	// warning.
	sink := checkEvents(t, nil, `
		namespace = test
		test.1 = {
			immediate = { save_scope_as = me }
		}
		test.2 = {
			immediate = { scope:me = { add_gold = 1 } }
		}
	`)

	assert.Empty(t, sink.diags, "diagnostics: %v", sink.messages())
}

func TestEventNonBlockEntriesIgnored(t *testing.T) {
	sink := checkEvents(t, nil, `
		namespace = test
		some_loose_key = some_value
	`)

	assert.Empty(t, sink.diags, "diagnostics: %v", sink.messages())
}

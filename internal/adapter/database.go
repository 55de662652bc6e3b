package adapter

import (
	"path/filepath"
	"strings"

	m "github.com/mouse-blink/pedant/internal/model"
)

// Database is the item index: every game-content identifier declared in the
// loaded files, by category. It is filled during the loading pass and
// read-only during validation, which makes it safe to share across
// goroutines. It implements the engine's item-existence oracle.
type Database struct {
	items map[m.ItemCategory]map[string]m.Token

	scriptedTriggers map[string]*m.Block
	scriptedEffects  map[string]*m.Block
	scriptValues     map[string]*m.Block
}

// NewDatabase constructs an empty Database.
func NewDatabase() *Database {
	return &Database{
		items:            make(map[m.ItemCategory]map[string]m.Token),
		scriptedTriggers: make(map[string]*m.Block),
		scriptedEffects:  make(map[string]*m.Block),
		scriptValues:     make(map[string]*m.Block),
	}
}

// categoryDirs maps a mod-tree directory to the category of the items its
// files declare at top level.
var categoryDirs = []struct {
	dir string
	cat m.ItemCategory
}{
	{"common/culture/cultures", m.ItemCulture},
	{"common/culture/pillars", m.ItemCulturePillar},
	{"common/culture/eras", m.ItemCultureEra},
	{"common/religion/religions", m.ItemReligion},
	{"common/landed_titles", m.ItemTitle},
	{"common/traits", m.ItemTrait},
	{"common/decisions", m.ItemDecision},
	{"common/religion/doctrines", m.ItemDoctrine},
	{"common/dynasties", m.ItemDynasty},
	{"common/dynasty_houses", m.ItemHouse},
	{"common/council_positions", m.ItemCouncilPosition},
	{"common/court_positions", m.ItemCourtPosition},
	{"common/struggle/struggles", m.ItemStruggle},
	{"common/scripted_triggers", m.ItemScriptedTrigger},
	{"common/scripted_effects", m.ItemScriptedEffect},
	{"common/script_values", m.ItemScriptValue},
	{"history/characters", m.ItemCharacter},
	{"common/country_definitions", m.ItemCountry},
	{"common/laws", m.ItemLaw},
	{"common/interest_groups", m.ItemInterestGroup},
	{"common/goods", m.ItemGoods},
	{"common/building_types", m.ItemBuildingType},
	{"map_data/state_regions", m.ItemState},
	{"events", m.ItemEvent},
}

// AddFile registers the declarations of one parsed file, using the file's
// place in the mod tree to decide what its top-level keys declare.
func (db *Database) AddFile(path m.Path, block *m.Block) {
	slash := filepath.ToSlash(string(path))

	for _, cd := range categoryDirs {
		if !strings.Contains(slash, cd.dir+"/") {
			continue
		}

		db.addCategoryFile(cd.cat, block)

		return
	}
}

func (db *Database) addCategoryFile(cat m.ItemCategory, block *m.Block) {
	for _, f := range block.Fields {
		if !f.HasKey() {
			continue
		}

		// Script values may be bare numbers; everything else needs a body.
		if cat == m.ItemScriptValue {
			db.Define(cat, f.Key)
			if f.Value.IsBlock() {
				db.scriptValues[f.Key.Value] = f.Value.Block
			}

			continue
		}

		if !f.Value.IsBlock() {
			continue
		}

		switch cat {
		case m.ItemEvent:
			// Event files mix `namespace = x` with `x.0001 = { ... }` keys.
			if strings.Contains(f.Key.Value, ".") {
				db.Define(cat, f.Key)
			}
		case m.ItemReligion:
			db.Define(cat, f.Key)
			db.addFaiths(f.Value.Block)
		case m.ItemTitle:
			db.addTitles(f)
		case m.ItemScriptedTrigger:
			db.Define(cat, f.Key)
			db.scriptedTriggers[f.Key.Value] = f.Value.Block
		case m.ItemScriptedEffect:
			db.Define(cat, f.Key)
			db.scriptedEffects[f.Key.Value] = f.Value.Block
		default:
			db.Define(cat, f.Key)
		}
	}
}

// addFaiths registers the faiths nested inside one religion.
func (db *Database) addFaiths(religion *m.Block) {
	faiths, ok := religion.FindField("faiths")
	if !ok || !faiths.Value.IsBlock() {
		return
	}

	for _, f := range faiths.Value.Block.Fields {
		if f.HasKey() && f.Value.IsBlock() {
			db.Define(m.ItemFaith, f.Key)
		}
	}
}

// addTitles registers a landed title and recurses into its vassals, since
// title files nest empires down to baronies.
func (db *Database) addTitles(f m.Field) {
	if !f.HasKey() || !f.Value.IsBlock() {
		return
	}

	switch {
	case strings.HasPrefix(f.Key.Value, "e_"),
		strings.HasPrefix(f.Key.Value, "k_"),
		strings.HasPrefix(f.Key.Value, "d_"),
		strings.HasPrefix(f.Key.Value, "c_"),
		strings.HasPrefix(f.Key.Value, "b_"):
		db.Define(m.ItemTitle, f.Key)
	default:
		return
	}

	for _, nested := range f.Value.Block.Fields {
		db.addTitles(nested)
	}
}

// Define registers one item directly. Used by the loader and by tests.
func (db *Database) Define(cat m.ItemCategory, key m.Token) {
	if db.items[cat] == nil {
		db.items[cat] = make(map[string]m.Token)
	}

	db.items[cat][key.Value] = key
}

// Exists reports whether an item of the given category was declared.
func (db *Database) Exists(cat m.ItemCategory, name string) bool {
	if cat == m.ItemProvince {
		// Province ids come from map data, which is not loaded; any numeric
		// id passes.
		return isDigits(name)
	}

	_, ok := db.items[cat][name]

	return ok
}

// ScriptedTrigger returns a scripted trigger's body.
func (db *Database) ScriptedTrigger(name string) (*m.Block, bool) {
	b, ok := db.scriptedTriggers[name]
	return b, ok
}

// ScriptedEffect returns a scripted effect's body.
func (db *Database) ScriptedEffect(name string) (*m.Block, bool) {
	b, ok := db.scriptedEffects[name]
	return b, ok
}

// ScriptValue returns a script value's block body. Simple numeric script
// values have no body and return false.
func (db *Database) ScriptValue(name string) (*m.Block, bool) {
	b, ok := db.scriptValues[name]
	return b, ok
}

// HasScriptValue reports whether a script value of that name is declared,
// with or without a block body.
func (db *Database) HasScriptValue(name string) bool {
	return db.Exists(m.ItemScriptValue, name)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}

	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}

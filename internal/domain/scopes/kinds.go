// Package scopes implements the scope type-inference engine: it tracks, for
// every position reached while walking a dotted target chain such as
// `root.culture.culture_head`, the set of object kinds that position could
// hold, narrows that set as more of the chain is consumed, and reports a
// diagnostic when the inferred set cannot satisfy what the surrounding
// construct requires.
package scopes

import "strings"

// Kinds is a bitset of scope kinds: "the object could be any of these".
// Bit assignments are global across game profiles; each profile declares
// which subset of tags exists for it.
type Kinds uint64

// Scope kind tags. None is an ordinary member of the bitset but semantically
// means "not a usable scope value" (the result of a bool literal, a flag
// comparison, and so on).
const (
	None Kinds = 1 << iota
	Value
	Bool
	Flag

	// Tags shared by more than one game profile.
	Character
	Culture
	Faith
	Religion
	Province
	War

	// CK3 tags.
	LandedTitle
	Activity
	Secret
	Scheme
	Combat
	CombatSide
	GreatHolyWar
	StoryCycle
	CasusBelli
	Dynasty
	DynastyHouse
	Faction
	Army
	HolyOrder
	CouncilTask
	MercenaryCompany
	Artifact
	Inspiration
	Struggle
	Accolade
	Trait

	// Vic3 tags.
	Country
	State
	StateRegion
	Battle
	Front
	InterestGroup
	JournalEntry
	Market
	Law
	Party
	Pop
	BuildingKind
	Goods
)

// Union returns the set of kinds in either k or o.
func (k Kinds) Union(o Kinds) Kinds { return k | o }

// Intersect returns the set of kinds in both k and o.
func (k Kinds) Intersect(o Kinds) Kinds { return k & o }

// Difference returns the kinds of k that are not in o.
func (k Kinds) Difference(o Kinds) Kinds { return k &^ o }

// Contains reports whether every kind of o is also in k.
func (k Kinds) Contains(o Kinds) bool { return o&^k == 0 }

// Intersects reports whether k and o share at least one kind.
func (k Kinds) Intersects(o Kinds) bool { return k&o != 0 }

// IsEmpty reports whether no kind is set.
func (k Kinds) IsEmpty() bool { return k == 0 }

// kindName pairs a single tag with its display name. Ordered so renderings
// are stable.
type kindName struct {
	kind Kinds
	name string
}

var kindNames = []kindName{
	{None, "none"},
	{Value, "value"},
	{Bool, "bool"},
	{Flag, "flag"},
	{Character, "character"},
	{Culture, "culture"},
	{Faith, "faith"},
	{Religion, "religion"},
	{Province, "province"},
	{War, "war"},
	{LandedTitle, "landed title"},
	{Activity, "activity"},
	{Secret, "secret"},
	{Scheme, "scheme"},
	{Combat, "combat"},
	{CombatSide, "combat side"},
	{GreatHolyWar, "great holy war"},
	{StoryCycle, "story cycle"},
	{CasusBelli, "casus belli"},
	{Dynasty, "dynasty"},
	{DynastyHouse, "dynasty house"},
	{Faction, "faction"},
	{Army, "army"},
	{HolyOrder, "holy order"},
	{CouncilTask, "council task"},
	{MercenaryCompany, "mercenary company"},
	{Artifact, "artifact"},
	{Inspiration, "inspiration"},
	{Struggle, "struggle"},
	{Accolade, "accolade"},
	{Trait, "trait"},
	{Country, "country"},
	{State, "state"},
	{StateRegion, "state region"},
	{Battle, "battle"},
	{Front, "front"},
	{InterestGroup, "interest group"},
	{JournalEntry, "journal entry"},
	{Market, "market"},
	{Law, "law"},
	{Party, "party"},
	{Pop, "pop"},
	{BuildingKind, "building"},
	{Goods, "goods"},
}

// describe renders a kind set for diagnostics: "character or province".
// The caller is expected to substitute "any scope" for the active profile's
// full set before getting here; see Tables.Describe.
func describe(k Kinds) string {
	var names []string

	for _, kn := range kindNames {
		if k.Intersects(kn.kind) {
			names = append(names, kn.name)
		}
	}

	switch len(names) {
	case 0:
		return "no scope at all"
	case 1:
		return names[0]
	case 2:
		return names[0] + " or " + names[1]
	default:
		return strings.Join(names[:len(names)-1], ", ") + " or " + names[len(names)-1]
	}
}

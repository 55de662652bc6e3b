package scopes

import (
	m "github.com/mouse-blink/pedant/internal/model"
)

// Oracle answers whether a game-content identifier of a given category is
// declared anywhere in the loaded files. It is read-only during validation.
type Oracle interface {
	Exists(category m.ItemCategory, name string) bool
}

// argCheck says how a prefixed transition's argument is validated.
type argCheck uint8

const (
	argUnchecked argCheck = iota
	argItem
	argScope
	argScopeOrItem
)

// ArgumentSpec describes the right-hand argument of a prefixed transition
// such as `culture:gaelic` or `cp:councillor_steward`.
type ArgumentSpec struct {
	check argCheck
	item  m.ItemCategory
	kinds Kinds
}

// ItemArg requires the argument to be a declared item of the given category.
func ItemArg(item m.ItemCategory) ArgumentSpec {
	return ArgumentSpec{check: argItem, item: item}
}

// ScopeArg requires the argument to be a nested scope expression producing
// the given kinds.
func ScopeArg(kinds Kinds) ArgumentSpec {
	return ArgumentSpec{check: argScope, kinds: kinds}
}

// ScopeOrItemArg accepts either a declared item or a nested scope expression.
func ScopeOrItemArg(kinds Kinds, item m.ItemCategory) ArgumentSpec {
	return ArgumentSpec{check: argScopeOrItem, kinds: kinds, item: item}
}

// UncheckedArg accepts any argument (variable names, defines, flag names).
func UncheckedArg() ArgumentSpec {
	return ArgumentSpec{check: argUnchecked}
}

// Transition is a simple scope-to-scope step: valid when the current kind set
// intersects In, and produces Out.
type Transition struct {
	In  Kinds
	Out Kinds
}

// PrefixTransition is a transition that takes a `prefix:argument` shape.
type PrefixTransition struct {
	In  Kinds
	Out Kinds
	Arg ArgumentSpec
}

// Removed records a token that existed in an earlier game version, for
// migration diagnostics.
type Removed struct {
	Version     string
	Explanation string
}

// Tables is the per-game capability object the engine consults. One
// implementation is selected from the game profile at process start and
// shared, read-only, by every validation unit.
type Tables interface {
	// Game returns the profile this table set belongs to.
	Game() m.Game

	// AllKinds is the union of every kind tag the profile declares.
	AllKinds() Kinds

	// KindFromName maps a snake_case kind name from script to its tag.
	KindFromName(name string) (Kinds, bool)

	// Describe renders a kind set for diagnostics, using "any scope" for the
	// profile's full set.
	Describe(k Kinds) string

	// SimpleTransition looks up a chainable token such as `liege`.
	SimpleTransition(name string) (Transition, bool)

	// PrefixTransition looks up a prefixed token such as `culture:`.
	PrefixTransition(name string) (PrefixTransition, bool)

	// IteratorTransition looks up the base name of a list iterator, without
	// its every_/any_/random_/ordered_ prefix.
	IteratorTransition(name string) (Transition, bool)

	// RemovedTransition reports a chainable token removed in a past version.
	RemovedTransition(name string) (Removed, bool)

	// RemovedIterator reports an iterator base name removed in a past version.
	RemovedIterator(name string) (Removed, bool)

	// CompareTrigger looks up a terminal operator that consumes a scope and
	// produces a comparable value, such as `current_year`.
	CompareTrigger(name string) (Kinds, bool)

	// NeedsPrefix suggests a prefix for a bare identifier that matches a
	// declared item, for "did you mean `faith:x`?" hints.
	NeedsPrefix(name string, oracle Oracle, want Kinds) (string, bool)

	// DeduceNamed guesses the kind of a named scope from its name alone.
	// Limited to names so conventional that a different kind is implausible.
	DeduceNamed(name string) (Kinds, bool)
}

// TablesFor returns the table set for the given game profile.
func TablesFor(game m.Game) Tables {
	switch game {
	case m.GameVic3:
		return vic3Tables{}
	default:
		return ck3Tables{}
	}
}

// profileDescribe implements the shared rendering rule: the profile's full
// set reads as "any scope".
func profileDescribe(k, all Kinds) string {
	if k == all {
		return "any scope"
	}

	return describe(k)
}

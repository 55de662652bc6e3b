package scopes

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	m "github.com/mouse-blink/pedant/internal/model"
)

// When reporting an unknown named scope, list the alternatives if there are
// not more than this many.
const maxScopeNameList = 6

// ErrStackImbalance is returned by Finish when an OpenScope or OpenBuilder
// was not matched by a Close or FinalizeBuilder. It indicates a defect in the
// validator code itself, not in the user's script.
var ErrStackImbalance = errors.New("scope stack not properly unwound")

// reasonOrigin distinguishes the kinds of evidence behind a deduced type.
type reasonOrigin uint8

const (
	reasonToken reasonOrigin = iota
	reasonName
	reasonBuiltin
)

// Reason records why we think a scope has the kind set it does. Surfaced in
// diagnostics so the user can see where the belief comes from.
type Reason struct {
	origin reasonOrigin
	token  m.Token
}

// TokenReason blames a specific script token, usually the latest narrowing.
func TokenReason(t m.Token) Reason { return Reason{origin: reasonToken, token: t} }

// NameReason blames a named scope's own name.
func NameReason(t m.Token) Reason { return Reason{origin: reasonName, token: t} }

// BuiltinReason marks a kind supplied by the game engine, with the token
// pointing at the item or field that triggers it.
func BuiltinReason(t m.Token) Reason { return Reason{origin: reasonBuiltin, token: t} }

// Token returns the token the reason points at.
func (r Reason) Token() m.Token { return r.token }

// Msg renders the reason for use in a diagnostic note.
func (r Reason) Msg() string {
	switch r.origin {
	case reasonName:
		return "deduced from the scope's name"
	case reasonBuiltin:
		return "supplied by the game engine"
	default:
		return fmt.Sprintf("deduced from `%s` here", r.token.Value)
	}
}

// entryKind tags the entry union below.
type entryKind uint8

const (
	// entryFixed is a terminal, independently known scope.
	entryFixed entryKind = iota
	// entryBackref means "whatever `this` was depth levels further out".
	// Depth 0 is `this`, depth 1 is `prev`.
	entryBackref
	// entryRootref means "whatever the context's root is".
	entryRootref
	// entryNamed takes its value from the named-scope table at index idx.
	entryNamed
)

// entry describes what we know of one scope position and why. It is used
// both to look a type up and to propagate narrowing backward to the
// position's real origin: if `this` is a Rootref and turns out to be a
// character, then root must be a character too.
type entry struct {
	kind   entryKind
	kinds  Kinds // entryFixed
	back   int   // entryBackref
	idx    int   // entryNamed
	reason Reason
}

// frame is one previous scope level. The most recent frame is popped back as
// the current scope on Close.
type frame struct {
	prev *frame
	this entry
}

// Context is the typing environment for one top-level validated unit: one
// trigger block, one effect block, one script value. It tracks the current
// scope, the root scope, the chain of previous scopes, and the named scopes
// the unit has defined.
type Context struct {
	prev *frame
	this entry

	// root is always an entryFixed.
	root entry

	// names and listNames occupy separate namespaces but index into the same
	// named array. Names are only ever added, never removed, so indices held
	// by entryNamed values stay valid for the context's lifetime.
	names     map[string]int
	listNames map[string]int

	// named holds entryFixed, entryNamed or entryRootref values, never
	// entryBackref, and never a cycle through entryNamed. Preserved by
	// construction: redefinition breaks chains to the rewritten index.
	named   []entry
	isInput []*m.Token

	// isBuilder marks a scope level still in progress, used while walking
	// chains like `root.liege.primary_title`.
	isBuilder bool

	// isUnrooted contexts start with an extra sentinel frame, so they are
	// torn down differently.
	isUnrooted bool

	// strict means all named scopes should be known in advance; unknown names
	// are then reported instead of assumed.
	strict bool

	// noWarn suppresses all reports from this context. Used for contexts
	// known to be wrong, such as scope overrides from the config.
	noWarn bool

	// broken is set when the open/close bookkeeping was violated; Finish
	// surfaces it.
	broken bool

	tables Tables
	rep    m.Reporter
}

// NewRooted makes a Context whose `this` and root are the same fixed kinds.
// The token is used when reporting errors about the use of `root`.
func NewRooted(tables Tables, rep m.Reporter, kinds Kinds, token m.Token) *Context {
	return &Context{
		this:      entry{kind: entryRootref},
		root:      entry{kind: entryFixed, kinds: kinds, reason: BuiltinReason(token)},
		names:     make(map[string]int),
		listNames: make(map[string]int),
		strict:    true,
		tables:    tables,
		rep:       rep,
	}
}

// NewUnrooted makes a Context whose `this` and root are unconnected, for
// units whose invocation context is not statically known (scripted triggers,
// scripted effects, script values). Root becomes the profile's full set and a
// sentinel history frame is pushed so later Close calls balance; Finish pops
// it again.
func NewUnrooted(tables Tables, rep m.Reporter, kinds Kinds, token m.Token) *Context {
	all := tables.AllKinds()

	return &Context{
		prev: &frame{
			this: entry{kind: entryFixed, kinds: all, reason: TokenReason(token)},
		},
		this:       entry{kind: entryFixed, kinds: kinds, reason: TokenReason(token)},
		root:       entry{kind: entryFixed, kinds: all, reason: TokenReason(token)},
		names:      make(map[string]int),
		listNames:  make(map[string]int),
		isUnrooted: true,
		strict:     true,
		tables:     tables,
		rep:        rep,
	}
}

// SetStrict declares whether all named scopes in this context are known in
// advance. Default is true; events set it to false because their triggering
// context defines scopes we cannot see.
func (c *Context) SetStrict(strict bool) { c.strict = strict }

// IsStrict reports the strict-scopes setting.
func (c *Context) IsStrict() bool { return c.strict }

// SetNoWarn suppresses every report from this context when set.
func (c *Context) SetNoWarn(noWarn bool) { c.noWarn = noWarn }

// Tables returns the table set the context was built with.
func (c *Context) Tables() Tables { return c.tables }

// ChangeRoot swaps the root's kinds and blame token. Only meant for context
// setup before validation starts.
func (c *Context) ChangeRoot(kinds Kinds, token m.Token) {
	c.root = entry{kind: entryFixed, kinds: kinds, reason: BuiltinReason(token)}
}

// deduceEntry builds a fixed entry for a scope we know nothing about except
// its name, deducing the kind from conventional names where possible.
func (c *Context) deduceEntry(token m.Token) entry {
	if name, ok := strings.CutPrefix(token.Value, "scope:"); ok {
		if kinds, ok := c.tables.DeduceNamed(name); ok {
			return entry{kind: entryFixed, kinds: kinds, reason: NameReason(token)}
		}
	}

	return entry{kind: entryFixed, kinds: c.tables.AllKinds(), reason: TokenReason(token)}
}

func (c *Context) defineNameInternal(name string, kinds Kinds, reason Reason) {
	if idx, ok := c.names[name]; ok {
		c.breakChainsTo(idx)
		c.named[idx] = entry{kind: entryFixed, kinds: kinds, reason: reason}
	} else {
		c.names[name] = len(c.named)
		c.named = append(c.named, entry{kind: entryFixed, kinds: kinds, reason: reason})
		c.isInput = append(c.isInput, nil)
	}
}

// DefineName declares a named scope of the given kinds, supplied by the game
// engine. The token is used in reports about this named scope.
func (c *Context) DefineName(name string, kinds Kinds, token m.Token) {
	c.defineNameInternal(name, kinds, BuiltinReason(token))
}

// DefineNameToken is like DefineName, but for kinds deduced from script
// rather than supplied by the engine; the token should reflect why.
func (c *Context) DefineNameToken(name string, kinds Kinds, token m.Token) {
	c.defineNameInternal(name, kinds, TokenReason(token))
}

// IsNameDefined looks up a named scope and returns its kinds if known.
// Callers should usually check IsStrict as well.
func (c *Context) IsNameDefined(name string) (Kinds, bool) {
	idx, ok := c.names[name]
	if !ok {
		return 0, false
	}

	switch c.named[idx].kind {
	case entryFixed:
		return c.named[idx].kinds, true
	case entryRootref:
		k, _ := c.resolveRoot()
		return k, true
	case entryNamed:
		k, _ := c.resolveNamed(c.named[idx].idx)
		return k, true
	default:
		panic("named scope holds a back reference")
	}
}

// ExistsScope records that `exists = scope:name` was seen: the name becomes
// known with no kind information, and the caller is expected to provide it.
// From that point on the scope is assumed to exist; tracking optional
// existence would be a much bigger project.
func (c *Context) ExistsScope(name string, token m.Token) {
	if _, ok := c.names[name]; !ok {
		c.names[name] = len(c.named)
		c.named = append(c.named, c.deduceEntry(token))
		c.isInput = append(c.isInput, nil)
	}
}

func (c *Context) defineListInternal(name string, kinds Kinds, reason Reason) {
	if idx, ok := c.listNames[name]; ok {
		c.breakChainsTo(idx)
		c.named[idx] = entry{kind: entryFixed, kinds: kinds, reason: reason}
	} else {
		c.listNames[name] = len(c.named)
		c.named = append(c.named, entry{kind: entryFixed, kinds: kinds, reason: reason})
		c.isInput = append(c.isInput, nil)
	}
}

// DefineList declares a list of the given name and element kinds. Lists and
// named scopes live in different namespaces but are stored the same way, so
// a list is expected to hold a single kind, which sometimes causes false
// positives.
func (c *Context) DefineList(name string, kinds Kinds, token m.Token) {
	c.defineListInternal(name, kinds, BuiltinReason(token))
}

// SaveCurrentScope binds name to whatever `this` currently resolves to, like
// DefineName but taking the value from the live scope.
func (c *Context) SaveCurrentScope(name string) {
	if idx, ok := c.names[name]; ok {
		c.breakChainsTo(idx)

		e := c.resolveBackrefs()
		// Guard against `scope:foo = { save_scope_as = foo }`; leave the
		// binding at its original value.
		if e.kind == entryNamed && e.idx == idx {
			return
		}

		c.assertNoBackref(e)
		c.named[idx] = e
	} else {
		e := c.resolveBackrefs()
		c.assertNoBackref(e)
		c.names[name] = len(c.named)
		c.named = append(c.named, e)
		c.isInput = append(c.isInput, nil)
	}
}

// assertNoBackref guards the construction invariant that the named table
// never holds a back reference; backrefs are only meaningful relative to the
// live history stack, which named bindings outlive.
func (c *Context) assertNoBackref(e entry) {
	if e.kind == entryBackref {
		panic("named scope may not hold a back reference")
	}
}

// DefineOrExpectList narrows list name down to `this` if it exists, and
// defines it with the kinds of `this` otherwise.
func (c *Context) DefineOrExpectList(name m.Token) {
	if idx, ok := c.listNames[name.Value]; ok {
		kinds, reason := c.resolveNamed(idx)
		c.Expect(kinds, reason)
		// Iterators often do is_in_list before add_to_list; the add takes
		// precedence, so the list counts as built here, not as an input.
		c.isInput[idx] = nil
	} else {
		e := c.resolveBackrefs()
		c.assertNoBackref(e)
		c.listNames[name.Value] = len(c.named)
		c.named = append(c.named, e)
		c.isInput = append(c.isInput, nil)
	}
}

// ExpectList expects list name to be known, warns under strict scopes if it
// is not, and narrows `this` down to the list's kinds.
func (c *Context) ExpectList(name m.Token) {
	if idx, ok := c.listNames[name.Value]; ok {
		kinds, reason := c.resolveNamed(idx)
		c.expectKey(kinds, reason, name, "scope")
	} else if c.strict && !c.noWarn {
		c.rep.Report(m.Diagnostic{
			Severity: m.SeverityWarning,
			Key:      m.KeyUnknownList,
			Loc:      name.Loc,
			Message:  "unknown list",
		})
	}
}

// breakChainsTo cuts idx out of any entryNamed chains before idx is
// rewritten, so the named array never needs runtime cycle detection.
func (c *Context) breakChainsTo(idx int) {
	for i := range c.named {
		if i == idx {
			continue
		}

		if c.named[i].kind == entryNamed && c.named[i].idx == idx {
			c.named[i] = c.named[idx]
		}
	}
}

// OpenScope pushes a new scope level of the given kinds, recording token as
// the reason. Mostly used by iterators; `prev` then refers to the old level.
func (c *Context) OpenScope(kinds Kinds, token m.Token) {
	c.prev = &frame{prev: c.prev, this: c.this}
	c.this = entry{kind: entryFixed, kinds: kinds, reason: TokenReason(token)}
}

// OpenBuilder pushes a temporary scope level whose `this` starts identical to
// the enclosing level's, for walking chains like `root.liege.primary_title`.
// The Replace functions then update it step by step; FinalizeBuilder confirms
// the level, Close discards it.
func (c *Context) OpenBuilder() {
	c.prev = &frame{prev: c.prev, this: c.this}
	c.this = entry{kind: entryBackref, back: 0}
	c.isBuilder = true
}

// FinalizeBuilder declares the level opened with OpenBuilder a real level.
func (c *Context) FinalizeBuilder() { c.isBuilder = false }

// Close exits the current scope level and returns to the previous one.
func (c *Context) Close() {
	if c.prev == nil {
		// Unmatched close; surfaced by Finish.
		c.broken = true
		return
	}

	c.this = c.prev.this
	c.prev = c.prev.prev
	c.isBuilder = false
}

// Finish checks that every opened scope level was also closed. It must be
// called at the end of each validation unit; a non-nil error means the
// engine's own bookkeeping is untrustworthy from that point on.
func (c *Context) Finish() error {
	if c.broken {
		return ErrStackImbalance
	}

	if c.isUnrooted {
		if c.prev == nil || c.prev.prev != nil {
			return ErrStackImbalance
		}

		c.prev = nil

		return nil
	}

	if c.prev != nil {
		return ErrStackImbalance
	}

	return nil
}

// Replace sets the current `this` to a fresh fixed kind. Used when a chain
// starts with something absolute like `faith:catholic`.
func (c *Context) Replace(kinds Kinds, token m.Token) {
	c.this = entry{kind: entryFixed, kinds: kinds, reason: TokenReason(token)}
}

// ReplaceRoot sets the current `this` to a reference to root.
func (c *Context) ReplaceRoot() { c.this = entry{kind: entryRootref} }

// ReplacePrev sets the current `this` to a reference one level back.
func (c *Context) ReplacePrev() { c.this = entry{kind: entryBackref, back: 1} }

// ReplaceThis resets the current `this` to the level below, the way a builder
// level starts out. Chains beginning with `this` use it.
func (c *Context) ReplaceThis() { c.this = entry{kind: entryBackref, back: 0} }

// ReplaceNamedScope sets the current `this` to a reference to the named
// scope. The token is expected to be the whole `scope:name` token.
func (c *Context) ReplaceNamedScope(name string, token m.Token) {
	c.this = entry{kind: entryNamed, idx: c.namedIndex(name, token), reason: TokenReason(token)}
}

// ReplaceListEntry sets the current `this` to the element kind of the named
// list. Used by list iterators.
func (c *Context) ReplaceListEntry(name string, token m.Token) {
	c.this = entry{kind: entryNamed, idx: c.namedListIndex(name, token), reason: TokenReason(token)}
}

// namedIndex returns the index of named scope name, creating it if needed.
// Under strict scopes a newly created name draws a warning listing the
// available names.
func (c *Context) namedIndex(name string, token m.Token) int {
	if idx, ok := c.names[name]; ok {
		return idx
	}

	idx := len(c.named)
	c.named = append(c.named, c.deduceEntry(token))

	if c.strict {
		if !c.noWarn {
			d := m.Diagnostic{
				Severity: m.SeverityWarning,
				Key:      m.KeyStrictScopes,
				Loc:      token.Loc,
				Message:  fmt.Sprintf("scope:%s might not be available here", name),
			}
			if len(c.names) > 0 && len(c.names) <= maxScopeNameList {
				names := make([]string, 0, len(c.names))
				for n := range c.names {
					names = append(names, n)
				}

				sort.Strings(names)
				d.Info = "available names are " + joinChoices(names)
			}

			c.rep.Report(d)
		}
		// Already warned about, so don't also treat it as an input scope.
		c.isInput = append(c.isInput, nil)
	} else {
		t := token
		c.isInput = append(c.isInput, &t)
	}

	// Insert after the warning above, so the name is not listed as available
	// to itself.
	c.names[name] = idx

	return idx
}

// namedListIndex is namedIndex for lists; creating a new list never warns.
func (c *Context) namedListIndex(name string, token m.Token) int {
	if idx, ok := c.listNames[name]; ok {
		return idx
	}

	idx := len(c.named)
	c.listNames[name] = idx
	c.named = append(c.named, entry{kind: entryFixed, kinds: c.tables.AllKinds(), reason: TokenReason(token)})
	t := token
	c.isInput = append(c.isInput, &t)

	return idx
}

// CanBe reports whether `this` could be one of the given kinds.
func (c *Context) CanBe(kinds Kinds) bool { return c.Kinds().Intersects(kinds) }

// MustBe reports whether `this` is known to be one of the given kinds.
func (c *Context) MustBe(kinds Kinds) bool { return kinds.Contains(c.Kinds()) }

// Kinds returns the possible kinds of the current scope level.
func (c *Context) Kinds() Kinds {
	k, _ := c.KindsReason()
	return k
}

// resolveRoot returns root's kinds and reason. Root is always fixed.
func (c *Context) resolveRoot() (Kinds, Reason) {
	return c.root.kinds, c.root.reason
}

// resolveNamed returns the kinds and reason of the named entry at idx,
// following entryNamed links. The construction invariant guarantees both
// termination and the absence of backrefs.
func (c *Context) resolveNamed(idx int) (Kinds, Reason) {
	for {
		switch e := c.named[idx]; e.kind {
		case entryFixed:
			return e.kinds, e.reason
		case entryRootref:
			return c.resolveRoot()
		case entryNamed:
			idx = e.idx
		default:
			panic("named scope holds a back reference")
		}
	}
}

// resolveBackrefs finds out what `this` actually refers to; the returned
// entry is never an entryBackref.
func (c *Context) resolveBackrefs() entry {
	if c.this.kind != entryBackref {
		return c.this
	}

	back := c.this.back
	ptr := c.prev

	for ptr != nil {
		if back == 0 {
			if ptr.this.kind == entryBackref {
				// Backref depths compose across frames.
				back = ptr.this.back + 1
			} else {
				return ptr.this
			}
		}

		ptr = ptr.prev
		back--
	}

	// Further up the chain than we know about; treat the position as root.
	return c.root
}

// KindsReason returns the possible kinds of the current scope level together
// with the reason we think so.
func (c *Context) KindsReason() (Kinds, Reason) {
	switch e := c.this; e.kind {
	case entryFixed:
		return e.kinds, e.reason
	case entryBackref:
		return c.kindsReasonAt(e.back)
	case entryRootref:
		return c.resolveRoot()
	default:
		return c.resolveNamed(e.idx)
	}
}

// kindsReasonAt resolves the scope level back steps up the history stack.
// Walking off the top is not an error: the unit may be a fragment whose outer
// context is unknown, so the position falls back to the full kind set.
func (c *Context) kindsReasonAt(back int) (Kinds, Reason) {
	ptr := c.prev

	for ptr != nil {
		if back == 0 {
			switch e := ptr.this; e.kind {
			case entryFixed:
				return e.kinds, e.reason
			case entryBackref:
				back = e.back + 1
			case entryRootref:
				return c.resolveRoot()
			default:
				return c.resolveNamed(e.idx)
			}
		}

		ptr = ptr.prev
		back--
	}

	return c.tables.AllKinds(), c.root.reason
}

// expectCheck narrows a fixed entry to its intersection with kinds, updating
// the blame, or reports a mismatch naming both the requiring token and the
// token the current belief comes from.
func (c *Context) expectCheck(e *entry, kinds Kinds, reason Reason) {
	if e.kinds.Intersects(kinds) {
		if narrowed := e.kinds.Intersect(kinds); narrowed != e.kinds {
			e.kinds = narrowed
			e.reason = reason
		}

		return
	}

	token := reason.Token()
	c.rep.Report(m.Diagnostic{
		Severity: m.SeverityWarning,
		Key:      m.KeyKindMismatch,
		Loc:      token.Loc,
		Message: fmt.Sprintf("`%s` is for %s but scope seems to be %s",
			token.Value, c.tables.Describe(kinds), c.tables.Describe(e.kinds)),
		Related: []m.Related{{Loc: e.reason.Token().Loc, Note: "scope was " + e.reason.Msg()}},
	})
}

// expectCheckKey is expectCheck with the report located at key, for use when
// the expectation comes from matching up two scope contexts.
func (c *Context) expectCheckKey(e *entry, kinds Kinds, reason Reason, key m.Token, what string) {
	if e.kinds.Intersects(kinds) {
		if narrowed := e.kinds.Intersect(kinds); narrowed != e.kinds {
			e.kinds = narrowed
			e.reason = reason
		}

		return
	}

	c.rep.Report(m.Diagnostic{
		Severity: m.SeverityWarning,
		Key:      m.KeyKindMismatch,
		Loc:      key.Loc,
		Message: fmt.Sprintf("`%s` expects %s to be %s but %s seems to be %s",
			key.Value, what, c.tables.Describe(kinds), what, c.tables.Describe(e.kinds)),
		Related: []m.Related{
			{Loc: reason.Token().Loc, Note: "expected " + what + " was " + reason.Msg()},
			{Loc: e.reason.Token().Loc, Note: "actual " + what + " was " + e.reason.Msg()},
		},
	})
}

func (c *Context) expectNamed(idx int, kinds Kinds, reason Reason) {
	for {
		switch c.named[idx].kind {
		case entryFixed:
			c.expectCheck(&c.named[idx], kinds, reason)
			return
		case entryRootref:
			c.expectCheck(&c.root, kinds, reason)
			return
		case entryNamed:
			idx = c.named[idx].idx
		default:
			panic("named scope holds a back reference")
		}
	}
}

func (c *Context) expectNamedKey(idx int, kinds Kinds, reason Reason, key m.Token, what string) {
	for {
		switch c.named[idx].kind {
		case entryFixed:
			c.expectCheckKey(&c.named[idx], kinds, reason, key, what)
			return
		case entryRootref:
			c.expectCheckKey(&c.root, kinds, reason, key, what)
			return
		case entryNamed:
			idx = c.named[idx].idx
		default:
			panic("named scope holds a back reference")
		}
	}
}

// expectBack goes back steps up the history stack and checks or narrows the
// scope found there. A backref found along the way extends the walk.
func (c *Context) expectBack(kinds Kinds, reason Reason, back int) {
	ptr := c.prev

	for ptr != nil {
		if back == 0 {
			switch e := ptr.this; e.kind {
			case entryFixed:
				c.expectCheck(&ptr.this, kinds, reason)
				return
			case entryBackref:
				back = e.back + 1
			case entryRootref:
				c.expectCheck(&c.root, kinds, reason)
				return
			default:
				c.expectNamed(e.idx, kinds, reason)
				return
			}
		}

		ptr = ptr.prev
		back--
	}
	// Off the top of the stack: nothing known to narrow.
}

func (c *Context) expectBackKey(kinds Kinds, reason Reason, back int, key m.Token, what string) {
	ptr := c.prev

	for ptr != nil {
		if back == 0 {
			switch e := ptr.this; e.kind {
			case entryFixed:
				c.expectCheckKey(&ptr.this, kinds, reason, key, what)
				return
			case entryBackref:
				back = e.back + 1
			case entryRootref:
				c.expectCheckKey(&c.root, kinds, reason, key, what)
				return
			default:
				c.expectNamedKey(e.idx, kinds, reason, key, what)
				return
			}
		}

		ptr = ptr.prev
		back--
	}
}

// Expect records that the current scope is one of the given kinds, narrowing
// the live entry and updating its blame token if that is new information, and
// reporting a mismatch if what we already know is incompatible. A requirement
// of exactly None means the scope is not used or inspected, and is a no-op.
func (c *Context) Expect(kinds Kinds, reason Reason) {
	if c.noWarn || kinds == None {
		return
	}

	switch e := c.this; e.kind {
	case entryFixed:
		c.expectCheck(&c.this, kinds, reason)
	case entryBackref:
		c.expectBack(kinds, reason, e.back)
	case entryRootref:
		c.expectCheck(&c.root, kinds, reason)
	default:
		c.expectNamed(e.idx, kinds, reason)
	}
}

// expectKey is Expect with the report located at key, used when the
// expectation comes from key itself, for example when matching a caller's
// context against a scripted effect's.
func (c *Context) expectKey(kinds Kinds, reason Reason, key m.Token, what string) {
	if kinds == None {
		return
	}

	switch e := c.this; e.kind {
	case entryFixed:
		c.expectCheckKey(&c.this, kinds, reason, key, what)
	case entryBackref:
		c.expectBackKey(kinds, reason, e.back, key, what)
	case entryRootref:
		c.expectCheckKey(&c.root, kinds, reason, key, what)
	default:
		c.expectNamedKey(e.idx, kinds, reason, key, what)
	}
}

// ExpectCompatibility checks an independently built context (the callee's
// declared expectations) against this one (the caller), comparing root,
// `this`, one level of `prev`, and every named scope and list present in
// both; key identifies the call site. Callee scopes the caller does not have
// become the caller's.
func (c *Context) ExpectCompatibility(other *Context, key m.Token) {
	if c.noWarn {
		return
	}

	// Restrictions on root.
	c.expectCheckKey(&c.root, other.root.kinds, other.root.reason, key, "root")

	// Restrictions on this.
	kinds, reason := other.KindsReason()
	c.expectKey(kinds, reason, key, "scope")

	// Restrictions on prev. One level is enough for how callees are built.
	kinds, reason = other.kindsReasonAt(0)
	depth := 0
	if c.isBuilder {
		depth = 1
	}

	c.expectBackKey(kinds, reason, depth, key, "prev")

	for name, oidx := range other.names {
		switch _, ok := c.names[name]; {
		case ok:
			kinds, reason := other.resolveNamed(oidx)
			if other.isInput[oidx] != nil {
				idx := c.namedIndex(name, key)
				c.expectNamedKey(idx, kinds, reason, key, "scope:"+name)
			} else {
				// Their scopes now become our scopes.
				c.defineNameInternal(name, kinds, reason)
			}
		case c.strict && other.isInput[oidx] != nil:
			c.rep.Report(m.Diagnostic{
				Severity: m.SeverityWarning,
				Key:      m.KeyStrictScopes,
				Loc:      key.Loc,
				Message:  fmt.Sprintf("`%s` expects scope:%s to be set", key.Value, name),
				Related:  []m.Related{{Loc: other.isInput[oidx].Loc, Note: "here"}},
			})
		default:
			kinds, reason := other.resolveNamed(oidx)
			c.names[name] = len(c.named)
			c.named = append(c.named, entry{kind: entryFixed, kinds: kinds, reason: reason})
			c.isInput = append(c.isInput, other.isInput[oidx])
		}
	}

	for name, oidx := range other.listNames {
		switch _, ok := c.listNames[name]; {
		case ok:
			kinds, reason := other.resolveNamed(oidx)
			if other.isInput[oidx] != nil {
				idx := c.namedListIndex(name, key)
				c.expectNamedKey(idx, kinds, reason, key, "list "+name)
			} else {
				c.defineListInternal(name, kinds, reason)
			}
		case c.strict && other.isInput[oidx] != nil:
			c.rep.Report(m.Diagnostic{
				Severity: m.SeverityWarning,
				Key:      m.KeyStrictScopes,
				Loc:      key.Loc,
				Message:  fmt.Sprintf("`%s` expects list %s to exist", key.Value, name),
				Related:  []m.Related{{Loc: other.isInput[oidx].Loc, Note: "here"}},
			})
		default:
			kinds, reason := other.resolveNamed(oidx)
			c.listNames[name] = len(c.named)
			c.named = append(c.named, entry{kind: entryFixed, kinds: kinds, reason: reason})
			c.isInput = append(c.isInput, other.isInput[oidx])
		}
	}
}

// joinChoices renders a short word list: "a", "a or b", "a, b or c".
func joinChoices(choices []string) string {
	switch len(choices) {
	case 0:
		return ""
	case 1:
		return choices[0]
	default:
		return strings.Join(choices[:len(choices)-1], ", ") + " or " + choices[len(choices)-1]
	}
}

package scopes

import (
	"fmt"
	"strconv"
	"strings"

	m "github.com/mouse-blink/pedant/internal/model"
)

// ScriptValues resolves named numeric expressions declared in script. A name
// that exists may appear as a chain part and produces a numeric value.
type ScriptValues interface {
	Exists(name string) bool
	// Validate checks the named value's own scope usage against the caller's
	// context.
	Validate(name string, sc *Context)
}

// Resolver walks dotted accessor chains such as
// `root.culture.culture_head.primary_title` against a Context, narrowing and
// replacing the current scope at each step, and checks the result against
// what the surrounding construct requires. It holds only read-only
// collaborators and may be shared across goroutines.
type Resolver struct {
	tables Tables
	oracle Oracle
	values ScriptValues
	rep    m.Reporter
}

// NewResolver builds a Resolver. values may be nil when script values are not
// loaded, for example in unit tests.
func NewResolver(tables Tables, oracle Oracle, values ScriptValues, rep m.Reporter) *Resolver {
	return &Resolver{tables: tables, oracle: oracle, values: values, rep: rep}
}

// Tables returns the table set the resolver consults.
func (r *Resolver) Tables() Tables { return r.tables }

// ValidateTarget resolves chain as the right-hand side of a comparison and
// checks that it produces one of want. A bare `this` is pointless there and
// draws a warning first.
func (r *Resolver) ValidateTarget(chain m.Token, sc *Context, want Kinds) Kinds {
	if chain.Value == "this" {
		r.rep.Report(m.Diagnostic{
			Severity: m.SeverityWarning,
			Key:      m.KeyUseOfThis,
			Loc:      chain.Loc,
			Message:  "target `this` makes no sense here",
		})
	}

	return r.ValidateTargetOkThis(chain, sc, want)
}

// ValidateTargetOkThis is ValidateTarget for positions where a bare `this` is
// meaningful, such as list iterator bodies.
func (r *Resolver) ValidateTargetOkThis(chain m.Token, sc *Context, want Kinds) Kinds {
	return r.resolve(chain, sc, want, false)
}

// ValidateTargetQuestion is ValidateTarget under a `?=` comparison, which
// additionally asserts existence: a trailing `scope:name` part then registers
// the name instead of warning about it.
func (r *Resolver) ValidateTargetQuestion(chain m.Token, sc *Context, want Kinds) Kinds {
	return r.resolve(chain, sc, want, true)
}

// OpenChain resolves a chain used as a block key, such as
// `root.liege = { ... }`, and leaves the context inside the resulting scope.
// On success the caller validates the block body and must call Close; on
// failure the frame is already closed and the caller skips the body.
func (r *Resolver) OpenChain(chain m.Token, sc *Context, question bool) bool {
	parts := splitChain(chain)
	sc.OpenBuilder()

	if !r.walk(parts, sc, question, false) {
		sc.Close()
		return false
	}

	sc.FinalizeBuilder()

	return true
}

// resolve is the main chain walk. Narrowing of the chain's own positions is
// confined to a builder frame and discarded on Close; what legitimately
// propagates to the outer context is narrowing applied through backrefs by
// Expect. Returns the kind set the chain produced, or the full set when the
// chain could not be resolved, so callers degrade instead of cascading.
func (r *Resolver) resolve(chain m.Token, sc *Context, want Kinds, question bool) Kinds {
	// Numeric literals are values, not chains.
	if _, err := strconv.ParseFloat(chain.Value, 64); err == nil {
		if want != None && !want.Intersects(Value) {
			r.rep.Report(m.Diagnostic{
				Severity: m.SeverityError,
				Key:      m.KeyKindMismatch,
				Loc:      chain.Loc,
				Message: fmt.Sprintf("`%s` produces %s but expected %s",
					chain.Value, r.tables.Describe(Value), r.tables.Describe(want)),
			})
		}

		return Value
	}

	parts := splitChain(chain)
	sc.OpenBuilder()

	if !r.walk(parts, sc, question, true) {
		sc.Close()
		return r.tables.AllKinds()
	}

	kinds, because := sc.KindsReason()
	if want != None && !want.Intersects(kinds) {
		last := parts[len(parts)-1]
		d := m.Diagnostic{
			Severity: m.SeverityError,
			Key:      m.KeyKindMismatch,
			Loc:      last.Loc,
			Message: fmt.Sprintf("`%s` produces %s but expected %s",
				last.Value, r.tables.Describe(kinds), r.tables.Describe(want)),
		}
		if because.Token().Loc != last.Loc {
			d.Related = []m.Related{{Loc: because.Token().Loc, Note: "scope was " + because.Msg()}}
		}

		r.rep.Report(d)
	}

	sc.Close()

	return kinds
}

// walk applies each chain part to the context in turn. terminal allows a
// compare trigger as the last part; chains used as block keys must end on a
// scope. Returns false when the chain had to be abandoned.
func (r *Resolver) walk(parts []m.Token, sc *Context, question, terminal bool) bool {
	for i, part := range parts {
		first := i == 0
		last := i == len(parts)-1

		if prefix, arg, ok := cutPrefix(part); ok {
			pt, ok := r.tables.PrefixTransition(prefix.Value)
			if !ok {
				r.rep.Report(m.Diagnostic{
					Severity: m.SeverityError,
					Key:      m.KeyUnknownPrefix,
					Loc:      prefix.Loc,
					Message:  fmt.Sprintf("unknown prefix `%s:`", prefix.Value),
				})

				return false
			}

			if pt.In == None && !first {
				r.rep.Report(m.Diagnostic{
					Severity: m.SeverityWarning,
					Key:      m.KeyMisplaced,
					Loc:      prefix.Loc,
					Message:  fmt.Sprintf("`%s:` makes no sense except as first part", prefix.Value),
				})
			}

			sc.Expect(pt.In, TokenReason(prefix))

			if prefix.Value == "scope" {
				if question && last {
					sc.ExistsScope(arg.Value, part)
				}

				sc.ReplaceNamedScope(arg.Value, part)
			} else {
				r.validateArgument(pt.Arg, arg, sc)
				sc.Replace(pt.Out, part)
			}

			continue
		}

		switch lower := strings.ToLower(part.Value); lower {
		case "root", "prev", "this":
			if !first {
				r.rep.Report(m.Diagnostic{
					Severity: m.SeverityWarning,
					Key:      m.KeyMisplaced,
					Loc:      part.Loc,
					Message:  fmt.Sprintf("`%s` makes no sense except as first part", lower),
				})
			}

			switch lower {
			case "root":
				sc.ReplaceRoot()
			case "prev":
				sc.ReplacePrev()
			default:
				sc.ReplaceThis()
			}

			continue
		}

		if r.values != nil && r.values.Exists(part.Value) {
			r.values.Validate(part.Value, sc)
			sc.Replace(Value, part)

			continue
		}

		if t, ok := r.tables.SimpleTransition(part.Value); ok {
			sc.Expect(t.In, TokenReason(part))
			sc.Replace(t.Out, part)

			continue
		}

		if rm, ok := r.tables.RemovedTransition(part.Value); ok {
			r.rep.Report(m.Diagnostic{
				Severity: m.SeverityError,
				Key:      m.KeyRemoved,
				Loc:      part.Loc,
				Message:  fmt.Sprintf("`%s` was removed in %s", part.Value, rm.Version),
				Info:     rm.Explanation,
			})
			// Keep going with no information rather than abandon the chain.
			sc.Replace(r.tables.AllKinds(), part)

			continue
		}

		if terminal && last {
			if in, ok := r.tables.CompareTrigger(part.Value); ok {
				sc.Expect(in, TokenReason(part))
				sc.Replace(Value, part)

				continue
			}
		}

		d := m.Diagnostic{
			Severity: m.SeverityError,
			Key:      m.KeyUnknownToken,
			Loc:      part.Loc,
			Message:  fmt.Sprintf("unknown token `%s`", part.Value),
		}
		if hint, ok := r.tables.NeedsPrefix(part.Value, r.oracle, sc.Kinds()); ok {
			d.Info = fmt.Sprintf("did you mean `%s:%s`?", hint, part.Value)
		}

		r.rep.Report(d)

		return false
	}

	return true
}

// validateArgument checks the right-hand side of a `prefix:argument` part.
func (r *Resolver) validateArgument(spec ArgumentSpec, arg m.Token, sc *Context) {
	switch spec.check {
	case argItem:
		if r.oracle != nil && !r.oracle.Exists(spec.item, arg.Value) {
			r.rep.Report(m.Diagnostic{
				Severity: m.SeverityError,
				Key:      m.KeyUnknownToken,
				Loc:      arg.Loc,
				Message:  fmt.Sprintf("%s %s is not defined", spec.item, arg.Value),
			})
		}
	case argScope:
		r.ValidateTargetOkThis(arg, sc, spec.kinds)
	case argScopeOrItem:
		if r.oracle == nil || !r.oracle.Exists(spec.item, arg.Value) {
			r.ValidateTargetOkThis(arg, sc, spec.kinds)
		}
	case argUnchecked:
		// Variable names, defines and flag names take anything.
	}
}

// splitChain cuts a dotted chain into its parts, each with its own location.
func splitChain(chain m.Token) []m.Token {
	raw := strings.Split(chain.Value, ".")
	parts := make([]m.Token, 0, len(raw))
	col := chain.Loc.Column

	for _, s := range raw {
		loc := chain.Loc
		loc.Column = col
		parts = append(parts, m.Token{Value: s, Loc: loc})
		col += len(s) + 1
	}

	return parts
}

// cutPrefix splits a `prefix:argument` part into its two tokens. Parts
// without a colon, or with an empty prefix, are not prefixed.
func cutPrefix(part m.Token) (prefix, arg m.Token, ok bool) {
	p, a, found := strings.Cut(part.Value, ":")
	if !found || p == "" {
		return m.Token{}, m.Token{}, false
	}

	prefix = m.Token{Value: p, Loc: part.Loc}
	argLoc := part.Loc
	argLoc.Column += len(p) + 1
	arg = m.Token{Value: a, Loc: argLoc}

	return prefix, arg, true
}

// Package domain implements the validation workflow: it walks parsed script
// files and drives the scope engine over their triggers, effects and events.
package domain

import (
	"github.com/mouse-blink/pedant/internal/adapter"
	"github.com/mouse-blink/pedant/internal/domain/scopes"
	m "github.com/mouse-blink/pedant/internal/model"
)

// Validator checks parsed script blocks against the scope engine. The struct
// itself holds only read-only collaborators and may be shared; each top-level
// unit gets its own run so recursion state never crosses goroutines.
type Validator struct {
	tables scopes.Tables
	db     *adapter.Database
	rep    m.Reporter
}

// NewValidator constructs a Validator over loaded tables and database.
func NewValidator(tables scopes.Tables, db *adapter.Database, rep m.Reporter) *Validator {
	return &Validator{tables: tables, db: db, rep: rep}
}

// discardSink swallows diagnostics. Scripted trigger and effect bodies are
// reported at their own declaration site; re-validating them at every call
// site only serves to learn their scope expectations.
type discardSink struct{}

func (discardSink) Report(m.Diagnostic) {}

// run is the per-unit state: the resolver bound to this unit's sink and the
// set of scripted triggers/effects currently on the call stack, which guards
// against infinite recursion through self-referential script.
type run struct {
	v       *Validator
	rep     m.Reporter
	res     *scopes.Resolver
	calling map[string]bool
}

func (v *Validator) newRun(rep m.Reporter) *run {
	r := &run{v: v, rep: rep, calling: make(map[string]bool)}
	r.res = scopes.NewResolver(v.tables, v.db, r, rep)

	return r
}

// Exists makes the run the resolver's script-value hook.
func (r *run) Exists(name string) bool {
	return r.v.db.HasScriptValue(name)
}

// Validate checks a named script value's own scope usage against the
// caller's context.
func (r *run) Validate(name string, sc *scopes.Context) {
	if r.calling["value "+name] {
		return
	}

	body, ok := r.v.db.ScriptValue(name)
	if !ok {
		// A bare numeric value, nothing to walk.
		return
	}

	r.calling["value "+name] = true
	defer delete(r.calling, "value "+name)

	r.validateScriptValueBlock(body, sc)
}

// warn is the short form for a simple warning diagnostic.
func (r *run) warn(key m.Key, loc m.Loc, msg string) {
	r.rep.Report(m.Diagnostic{
		Severity: m.SeverityWarning,
		Key:      key,
		Loc:      loc,
		Message:  msg,
	})
}

// finishUnit closes out a unit context. A stack imbalance is a defect in the
// validator itself; it is surfaced loudly and the unit's results are suspect
// from that point on.
func (r *run) finishUnit(sc *scopes.Context, loc m.Loc) {
	if err := sc.Finish(); err != nil {
		r.rep.Report(m.Diagnostic{
			Severity: m.SeverityError,
			Key:      m.KeyValidation,
			Loc:      loc,
			Message:  "internal: " + err.Error(),
		})
	}
}

// calleeContext validates a scripted trigger or effect body in isolation and
// returns the scope expectations it built up, for compatibility checking at
// the call site. Diagnostics from the body itself are discarded here; the
// body is reported once, where it is declared.
func (r *run) calleeContext(body *m.Block, key m.Token, effect bool) *scopes.Context {
	quiet := r.v.newRun(discardSink{})
	quiet.calling = r.calling

	sc := scopes.NewUnrooted(r.v.tables, discardSink{}, r.v.tables.AllKinds(), key)
	sc.SetStrict(false)

	if effect {
		quiet.validateEffect(body, sc)
	} else {
		quiet.validateTrigger(body, sc)
	}

	return sc
}

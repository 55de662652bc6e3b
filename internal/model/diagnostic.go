package model

// Severity classifies how serious a diagnostic is.
type Severity string

// Available severities.
const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Key groups diagnostics by the kind of problem found.
type Key string

// Diagnostic keys emitted by the engine and the validators.
const (
	KeyUnknownToken  Key = "unknown-token"
	KeyUnknownPrefix Key = "unknown-prefix"
	KeyUnknownField  Key = "unknown-field"
	KeyUnknownList   Key = "unknown-list"
	KeyKindMismatch  Key = "scope-mismatch"
	KeyMisplaced     Key = "misplaced-token"
	KeyRemoved       Key = "removed-token"
	KeyStrictScopes  Key = "strict-scopes"
	KeyValidation    Key = "validation"
	KeyIfElse        Key = "if-else"
	KeyUseOfThis     Key = "use-of-this"
	KeyParse         Key = "parse"
)

// Related is a secondary location attached to a diagnostic, with a note
// explaining what it contributes ("scope was deduced from `liege` here").
type Related struct {
	Loc  Loc    `json:"loc"`
	Note string `json:"note"`
}

// Diagnostic is one reported problem in a mod's script files.
type Diagnostic struct {
	Severity Severity  `json:"severity"`
	Key      Key       `json:"key"`
	Loc      Loc       `json:"loc"`
	Message  string    `json:"message"`
	Info     string    `json:"info,omitempty"`
	Related  []Related `json:"related,omitempty"`
}

// Reporter is the sink diagnostics are appended to. Implementations must be
// safe for concurrent use; files are validated in parallel.
type Reporter interface {
	Report(d Diagnostic)
}

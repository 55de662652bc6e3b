// Package model defines the data structures shared by the pedant validator.
package model

import "fmt"

// Path represents a file system path.
type Path string

// Loc identifies a position in a script file.
type Loc struct {
	Path   Path `json:"path"`
	Line   int  `json:"line"`
	Column int  `json:"column"`
}

// String renders the location in the usual file:line:column form.
func (l Loc) String() string {
	return fmt.Sprintf("%s:%d:%d", l.Path, l.Line, l.Column)
}

// Token is a single word of script text together with where it was read from.
type Token struct {
	Value string `json:"value"`
	Loc   Loc    `json:"loc"`
}

// NewToken builds a token that is not tied to a file, for values synthesized
// by the validator itself.
func NewToken(value string) Token {
	return Token{Value: value}
}

// Is reports whether the token spells exactly s.
func (t Token) Is(s string) bool {
	return t.Value == s
}

func (t Token) String() string {
	return t.Value
}

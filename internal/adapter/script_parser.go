package adapter

import (
	"fmt"
	"os"

	m "github.com/mouse-blink/pedant/internal/model"
)

// ScriptParser turns Paradox script text into the block/token tree the
// validators walk. Malformed input is reported through the diagnostic sink
// and parsing recovers where it can, so one bad line does not hide the rest
// of the file.
type ScriptParser interface {
	ParseFile(path m.Path) (*m.Block, error)
	Parse(path m.Path, src []byte) *m.Block
}

type scriptParser struct {
	rep m.Reporter
}

// NewScriptParser constructs a ScriptParser reporting to rep.
func NewScriptParser(rep m.Reporter) ScriptParser {
	return &scriptParser{rep: rep}
}

func (p *scriptParser) ParseFile(path m.Path) (*m.Block, error) {
	src, err := os.ReadFile(string(path))
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}

	return p.Parse(path, src), nil
}

func (p *scriptParser) Parse(path m.Path, src []byte) *m.Block {
	ps := &parseState{
		lx:  &lexer{src: src, path: path, line: 1, col: 1},
		rep: p.rep,
	}

	return ps.parseBlock(m.Loc{Path: path, Line: 1, Column: 1}, 0)
}

type lexKind uint8

const (
	tokWord lexKind = iota
	tokOp
	tokOpen
	tokClose
	tokEOF
)

type lexToken struct {
	kind  lexKind
	value string
	loc   m.Loc
}

type lexer struct {
	src  []byte
	path m.Path
	pos  int
	line int
	col  int
}

func (lx *lexer) loc() m.Loc {
	return m.Loc{Path: lx.path, Line: lx.line, Column: lx.col}
}

func (lx *lexer) advance() byte {
	c := lx.src[lx.pos]
	lx.pos++

	if c == '\n' {
		lx.line++
		lx.col = 1
	} else {
		lx.col++
	}

	return c
}

func (lx *lexer) peek() (byte, bool) {
	if lx.pos >= len(lx.src) {
		return 0, false
	}

	return lx.src[lx.pos], true
}

// isWordByte reports whether c can be part of a bare word. Chain dots,
// prefix colons, variable @s and negative numbers all count.
func isWordByte(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\n', '#', '{', '}', '"', '=', '!', '<', '>':
		return false
	default:
		return true
	}
}

func (lx *lexer) next() lexToken {
	for {
		c, ok := lx.peek()
		if !ok {
			return lexToken{kind: tokEOF, loc: lx.loc()}
		}

		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			lx.advance()
		case c == '#':
			for {
				c, ok := lx.peek()
				if !ok || c == '\n' {
					break
				}

				lx.advance()
			}
		default:
			return lx.scanToken()
		}
	}
}

func (lx *lexer) scanToken() lexToken {
	loc := lx.loc()
	c := lx.advance()

	switch c {
	case '{':
		return lexToken{kind: tokOpen, value: "{", loc: loc}
	case '}':
		return lexToken{kind: tokClose, value: "}", loc: loc}
	case '"':
		return lx.scanString(loc)
	case '=':
		if n, ok := lx.peek(); ok && n == '=' {
			lx.advance()
			return lexToken{kind: tokOp, value: "==", loc: loc}
		}

		return lexToken{kind: tokOp, value: "=", loc: loc}
	case '!', '<', '>':
		if n, ok := lx.peek(); ok && n == '=' {
			lx.advance()
			return lexToken{kind: tokOp, value: string(c) + "=", loc: loc}
		}

		return lexToken{kind: tokOp, value: string(c), loc: loc}
	case '?':
		if n, ok := lx.peek(); ok && n == '=' {
			lx.advance()
			return lexToken{kind: tokOp, value: "?=", loc: loc}
		}

		return lx.scanWord(loc, []byte{c})
	default:
		return lx.scanWord(loc, []byte{c})
	}
}

func (lx *lexer) scanWord(loc m.Loc, start []byte) lexToken {
	word := start

	for {
		c, ok := lx.peek()
		if !ok || !isWordByte(c) {
			break
		}

		word = append(word, lx.advance())
	}

	return lexToken{kind: tokWord, value: string(word), loc: loc}
}

// scanString reads a quoted token. The quotes are not part of the value.
func (lx *lexer) scanString(loc m.Loc) lexToken {
	var word []byte

	for {
		c, ok := lx.peek()
		if !ok || c == '"' {
			if ok {
				lx.advance()
			}

			break
		}

		word = append(word, lx.advance())
	}

	return lexToken{kind: tokWord, value: string(word), loc: loc}
}

type parseState struct {
	lx    *lexer
	rep   m.Reporter
	ahead *lexToken
}

func (ps *parseState) next() lexToken {
	if ps.ahead != nil {
		t := *ps.ahead
		ps.ahead = nil

		return t
	}

	return ps.lx.next()
}

func (ps *parseState) peek() lexToken {
	if ps.ahead == nil {
		t := ps.lx.next()
		ps.ahead = &t
	}

	return *ps.ahead
}

func (ps *parseState) report(loc m.Loc, msg string) {
	ps.rep.Report(m.Diagnostic{
		Severity: m.SeverityError,
		Key:      m.KeyParse,
		Loc:      loc,
		Message:  msg,
	})
}

var comparators = map[string]m.Comparator{
	"=":  m.CmpEq,
	"==": m.CmpEqEq,
	"?=": m.CmpQEq,
	"!=": m.CmpNe,
	"<":  m.CmpLt,
	"<=": m.CmpLe,
	">":  m.CmpGt,
	">=": m.CmpGe,
}

// parseBlock reads fields until the matching close brace, or end of input at
// the top level. depth 0 is the file itself.
func (ps *parseState) parseBlock(loc m.Loc, depth int) *m.Block {
	block := &m.Block{Loc: loc}

	for {
		t := ps.next()

		switch t.kind {
		case tokEOF:
			if depth > 0 {
				ps.report(loc, "opening `{` is never closed")
			}

			return block
		case tokClose:
			if depth == 0 {
				ps.report(t.loc, "unexpected `}`")
				continue
			}

			return block
		case tokOpen:
			// A loose block, as in color lists or rgb values.
			nested := ps.parseBlock(t.loc, depth+1)
			block.Fields = append(block.Fields, m.Field{
				Cmp:   m.CmpNone,
				Value: m.BV{Block: nested},
			})
		case tokOp:
			ps.report(t.loc, fmt.Sprintf("`%s` operator without a key", t.value))
		case tokWord:
			ps.parseField(block, t, depth)
		}
	}
}

// parseField reads what follows a word: a comparator and value makes a keyed
// field, anything else makes the word a loose value.
func (ps *parseState) parseField(block *m.Block, key lexToken, depth int) {
	if ps.peek().kind != tokOp {
		block.Fields = append(block.Fields, m.Field{
			Cmp:   m.CmpNone,
			Value: m.BV{Token: &m.Token{Value: key.value, Loc: key.loc}},
		})

		return
	}

	op := ps.next()
	cmp, ok := comparators[op.value]
	if !ok {
		ps.report(op.loc, fmt.Sprintf("unknown operator `%s`", op.value))
		cmp = m.CmpEq
	}

	val := ps.next()
	field := m.Field{
		Key: m.Token{Value: key.value, Loc: key.loc},
		Cmp: cmp,
	}

	switch val.kind {
	case tokWord:
		field.Value = m.BV{Token: &m.Token{Value: val.value, Loc: val.loc}}
	case tokOpen:
		field.Value = m.BV{Block: ps.parseBlock(val.loc, depth+1)}
	default:
		ps.report(val.loc, fmt.Sprintf("expected a value after `%s`", op.value))
		// Let the block loop handle the close brace or end of input.
		ps.ahead = &val

		return
	}

	block.Fields = append(block.Fields, field)
}

// Copyright (C) 2021  Antonio Lassandro

// This program is free software: you can redistribute it and/or modify it
// under the terms of the GNU General Public License as published by the Free
// Software Foundation, either version 3 of the License, or (at your option)
// any later version.

// This program is distributed in the hope that it will be useful, but WITHOUT
// ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or
// FITNESS FOR A PARTICULAR PURPOSE.  See the GNU General Public License for
// more details.

// You should have received a copy of the GNU General Public License along
// with this program.  If not, see <http://www.gnu.org/licenses/>.

package assembler

import (
	"strings"
	"unicode"
)

// statement is one source line reduced to its label, keyword and operand
// tokens, before any operand has been interpreted.
type statement struct {
	Label    string
	Keyword  Token
	Operands []Token
}

// lineParser carries the pending label between lines. A zero value is ready
// for a new assembly run.
type lineParser struct {
	labelOpen    bool
	pendingLabel Token
}

// normalize strips carriage returns and trailing comments, uppercases and
// trims the line. It also returns the byte column the trimmed text starts at
// so token positions still point into the raw line.
func normalize(raw string) (string, int) {
	line := strings.ReplaceAll(raw, "\r", "")

	if i := strings.Index(line, COMMENT_MARKER); i >= 0 {
		line = line[:i]
	}

	line = strings.ToUpper(line)
	trimmed := strings.TrimLeftFunc(line, unicode.IsSpace)
	offset := len(line) - len(trimmed)

	return strings.TrimRightFunc(trimmed, unicode.IsSpace), offset
}

func classify(value string) TokenType {
	switch value[0] {
	case 'R':
		return TOKEN_REGISTER
	case '$', '#':
		return TOKEN_LITERAL
	case '[':
		return TOKEN_MEMORY
	default:
		return TOKEN_IDENT
	}
}

func isSeparator(char rune) bool {
	return char == ',' || unicode.IsSpace(char)
}

// tokenize splits text on whitespace and commas. offset is the byte column of
// text within the raw line.
func tokenize(text string, offset int, line int) []Token {
	var tokens []Token

	start := -1

	flush := func(end int) {
		if start < 0 {
			return
		}

		value := text[start:end]
		tokens = append(tokens, Token{
			Type: classify(value),
			Position: Cursor{
				Line:   line,
				Column: offset + start + 1,
				Size:   len(value),
			},
			Value: value,
		})
		start = -1
	}

	for i, char := range text {
		if isSeparator(char) {
			flush(i)
		} else if start < 0 {
			start = i
		}
	}

	flush(len(text))

	return tokens
}

func validLabel(name string) bool {
	if name == "" || strings.ContainsAny(name, "$#[],") {
		return false
	}

	return !strings.ContainsFunc(name, unicode.IsSpace)
}

func labelToken(head string, offset int, line int) (Token, error) {
	lead := len(head) - len(strings.TrimLeftFunc(head, unicode.IsSpace))
	name := strings.TrimSpace(head)

	token := Token{
		Type:     TOKEN_IDENT,
		Position: Cursor{Line: line, Column: offset + lead + 1, Size: len(name)},
		Value:    name,
	}

	if !validLabel(name) {
		if name == "" {
			token.Position.Size = 1
		}

		return token, &InvalidLabelError{token.Position, name}
	}

	return token, nil
}

// parseLine returns nil for lines that produce no instruction: blanks,
// comments and standalone label declarations.
func (p *lineParser) parseLine(raw string, line int) (*statement, error) {
	text, offset := normalize(raw)

	if len(text) == 0 {
		return nil, nil
	}

	var label string

	if i := strings.Index(text, LABEL_MARKER); i >= 0 {
		head, tail := text[:i], text[i+1:]

		token, err := labelToken(head, offset, line)

		if err != nil {
			return nil, err
		}

		if p.labelOpen {
			return nil, &LabelNotClosedError{
				token.Position, p.pendingLabel.Value, p.pendingLabel.Position,
			}
		}

		if len(strings.TrimSpace(tail)) <= 1 {
			p.labelOpen = true
			p.pendingLabel = token
			return nil, nil
		}

		label = token.Value
		text = tail
		offset += i + 1
	}

	tokens := tokenize(text, offset, line)

	if len(tokens) == 0 {
		return nil, nil
	}

	if label == "" && p.labelOpen {
		label = p.pendingLabel.Value
		p.labelOpen = false
		p.pendingLabel = Token{}
	}

	return &statement{
		Label:    label,
		Keyword:  tokens[0],
		Operands: tokens[1:],
	}, nil
}

// finish reports a label that was declared but never bound to an
// instruction.
func (p *lineParser) finish() error {
	if p.labelOpen {
		return &LabelNotClosedError{
			p.pendingLabel.Position, p.pendingLabel.Value, p.pendingLabel.Position,
		}
	}

	return nil
}

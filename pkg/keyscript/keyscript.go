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

package keyscript

import (
	"bufio"
	"io"
	"strings"
	"unicode"

	"github.com/lassandro/morsekey/pkg/encoding"
	"github.com/lassandro/morsekey/pkg/ps2"
)

func parseStatement(ident string) StatementType {
	if strings.EqualFold(ident, "TYPE") {
		return STATEMENT_TYPE
	} else if strings.EqualFold(ident, "KEY") {
		return STATEMENT_KEY
	} else if strings.EqualFold(ident, "MAKE") {
		return STATEMENT_MAKE
	} else if strings.EqualFold(ident, "RELEASE") {
		return STATEMENT_RELEASE
	} else if strings.EqualFold(ident, "WAIT") {
		return STATEMENT_WAIT
	} else if strings.EqualFold(ident, "RESET") {
		return STATEMENT_RESET
	}

	return STATEMENT_INVALID
}

// Resolves a key operand: a hex literal (x5A), a decimal literal (#90), a key
// name (enter) or a single mapped character (s, 7).
func parseCode(token *Token) (ps2.ScanCode, error) {
	switch token.Type {
	case TOKEN_LITERAL:
		if len(token.Value) == 1 {
			if code, ok := ps2.LookupName(token.Value); ok {
				return code, nil
			}
			return 0, &UnknownKeyError{token.Position, token.Value}
		}

		if strings.HasPrefix(token.Value, "#") {
			result, err := encoding.DecodeInt(token.Value)

			if err != nil || result > 0xFF {
				return 0, &InvalidLiteralError{token.Position}
			}

			return ps2.ScanCode(result), nil
		}

		result, err := encoding.DecodeHex(token.Value)

		if err != nil {
			return 0, &InvalidLiteralError{token.Position}
		}

		return ps2.ScanCode(result), nil

	case TOKEN_IDENT:
		if code, ok := ps2.LookupName(token.Value); ok {
			return code, nil
		}

		return 0, &UnknownKeyError{token.Position, token.Value}
	}

	return 0, &InvalidOperandError{
		token.Position,
		[]TokenType{TOKEN_LITERAL, TOKEN_IDENT},
		token.Type,
	}
}

func tokenizeLine(line string, cursor Cursor) (tokens []Token, errs []error) {
	var builder strings.Builder
	var tokenType TokenType = TOKEN_NONE
	var tokenStart Cursor

	flush := func(end int) {
		if tokenType != TOKEN_NONE {
			tokenStart.Size = int64(end) - (tokenStart.Byte - cursor.LineByte)
			tokens = append(tokens, Token{tokenType, tokenStart, builder.String()})
		}

		builder.Reset()
		tokenType = TOKEN_NONE
	}

	column := 0

	for offset, char := range line {
		column++

		position := Cursor{
			Line:     cursor.Line,
			Column:   column,
			Byte:     cursor.LineByte + int64(offset),
			LineByte: cursor.LineByte,
		}

		if tokenType == TOKEN_STRING {
			if char == '"' {
				flush(offset + 1)
			} else {
				builder.WriteRune(char)
			}
			continue
		}

		switch {
		case unicode.IsSpace(char):
			flush(offset)

		// Comments
		case char == ';':
			flush(offset)
			return tokens, errs

		case char == '"':
			if tokenType != TOKEN_NONE {
				errs = append(errs, &UnexpectedCharacterError{position, char})
				flush(offset)
			}
			tokenType = TOKEN_STRING
			tokenStart = position

		// Hex (x5A) and decimal (#90) literals
		case char == '#' || char == 'x' || char == 'X' || unicode.IsDigit(char):
			if tokenType == TOKEN_NONE {
				tokenType = TOKEN_LITERAL
				tokenStart = position
			} else if char == '#' {
				errs = append(errs, &UnexpectedCharacterError{position, char})
			}
			builder.WriteRune(char)

		case char == '_' || (unicode.IsLetter(char) && char <= unicode.MaxASCII):
			if tokenType == TOKEN_NONE {
				tokenType = TOKEN_IDENT
				tokenStart = position
			}
			builder.WriteRune(char)

		default:
			errs = append(errs, &UnexpectedCharacterError{position, char})
		}
	}

	if tokenType == TOKEN_STRING {
		errs = append(errs, &InvalidStringError{tokenStart})
		return tokens, errs
	}

	flush(len(line))

	return tokens, errs
}

func tapCodes(code ps2.ScanCode, position Cursor) []Event {
	return []Event{
		{Type: EVENT_CODE, Code: code, Position: position},
		{Type: EVENT_CODE, Code: ps2.CODE_BREAK, Position: position},
		{Type: EVENT_CODE, Code: code, Position: position},
	}
}

// AssembleScript turns keystroke script source into events. All errors found
// are returned; events are only meaningful when errs is empty.
func AssembleScript(input io.Reader) (result []Event, errs []error) {
	var scanner = bufio.NewScanner(input)
	var cursor = Cursor{Line: 1}

	result = make([]Event, 0)
	errs = make([]error, 0)

	for scanner.Scan() {
		line := scanner.Text()
		tokens, lineErrs := tokenizeLine(line, cursor)

		cursor.Line++
		cursor.Byte += int64(len(line) + 1)
		cursor.LineByte += int64(len(line) + 1)

		if len(lineErrs) > 0 {
			errs = append(errs, lineErrs...)
			continue
		}

		if len(tokens) == 0 {
			continue
		}

		keyword := &tokens[0]
		operands := tokens[1:]

		statement := STATEMENT_INVALID
		if keyword.Type == TOKEN_IDENT {
			statement = parseStatement(keyword.Value)
		}

		if statement == STATEMENT_INVALID {
			errs = append(
				errs, &UnknownIdentifierError{keyword.Position, keyword.Value},
			)
			continue
		}

		want := 1
		if statement == STATEMENT_RESET {
			want = 0
		}

		if count := len(operands); count != want {
			errs = append(
				errs, &InvalidNumArgumentsError{keyword.Position, want, count},
			)
			continue
		}

		switch statement {
		// type "..."
		case STATEMENT_TYPE:
			if operands[0].Type != TOKEN_STRING {
				errs = append(
					errs,
					&InvalidOperandError{
						operands[0].Position,
						[]TokenType{TOKEN_STRING},
						operands[0].Type,
					},
				)
				break
			}

			for _, char := range operands[0].Value {
				code, ok := ps2.Lookup(char)

				if !ok {
					errs = append(
						errs,
						&UnknownKeyError{operands[0].Position, string(char)},
					)
					continue
				}

				result = append(result, tapCodes(code, keyword.Position)...)
			}

		// key enter | key x5A
		case STATEMENT_KEY:
			code, err := parseCode(&operands[0])

			if err != nil {
				errs = append(errs, err)
				break
			}

			result = append(result, tapCodes(code, keyword.Position)...)

		// make x1B
		case STATEMENT_MAKE:
			code, err := parseCode(&operands[0])

			if err != nil {
				errs = append(errs, err)
				break
			}

			result = append(
				result,
				Event{Type: EVENT_CODE, Code: code, Position: keyword.Position},
			)

		// release x1B
		case STATEMENT_RELEASE:
			code, err := parseCode(&operands[0])

			if err != nil {
				errs = append(errs, err)
				break
			}

			result = append(
				result,
				Event{
					Type:     EVENT_CODE,
					Code:     ps2.CODE_BREAK,
					Position: keyword.Position,
				},
				Event{Type: EVENT_CODE, Code: code, Position: keyword.Position},
			)

		// wait #500
		case STATEMENT_WAIT:
			if operands[0].Type != TOKEN_LITERAL {
				errs = append(
					errs,
					&InvalidOperandError{
						operands[0].Position,
						[]TokenType{TOKEN_LITERAL},
						operands[0].Type,
					},
				)
				break
			}

			millis, err := encoding.DecodeInt(operands[0].Value)

			if err != nil {
				errs = append(errs, &InvalidLiteralError{operands[0].Position})
				break
			}

			result = append(
				result,
				Event{Type: EVENT_WAIT, Millis: millis, Position: keyword.Position},
			)

		case STATEMENT_RESET:
			result = append(
				result, Event{Type: EVENT_RESET, Position: keyword.Position},
			)
		}
	}

	if err := scanner.Err(); err != nil {
		errs = append(errs, err)
	}

	return result, errs
}

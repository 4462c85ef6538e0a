package script

import (
	"fmt"
	"strings"
	"unicode"
)

// Token is one word or quoted string from a script line.
type Token struct {
	Text   string
	Quoted bool
}

// scanLine splits one source line into tokens. Whitespace separates tokens
// outside quotes; a double-quoted run becomes a single token with the quotes
// stripped. There is no escape syntax inside quotes.
func scanLine(line string) ([]Token, error) {
	var tokens []Token
	var cur strings.Builder
	inQuote := false

	flush := func(quoted bool) {
		if quoted || cur.Len() > 0 {
			tokens = append(tokens, Token{Text: cur.String(), Quoted: quoted})
		}
		cur.Reset()
	}

	for _, r := range line {
		switch {
		case r == '"':
			if inQuote {
				flush(true)
				inQuote = false
			} else {
				flush(false)
				inQuote = true
			}
		case unicode.IsSpace(r) && !inQuote:
			flush(false)
		default:
			cur.WriteRune(r)
		}
	}
	if inQuote {
		return nil, fmt.Errorf("unterminated quoted string")
	}
	flush(false)
	return tokens, nil
}

// isIdent reports whether a word is a valid bare identifier for variable
// names: a letter or underscore followed by letters, digits, or underscores.
func isIdent(word string) bool {
	if word == "" {
		return false
	}
	for i, r := range word {
		if unicode.IsLetter(r) || r == '_' {
			continue
		}
		if i > 0 && unicode.IsDigit(r) {
			continue
		}
		return false
	}
	return true
}

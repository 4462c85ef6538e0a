package executor

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// W3C WebDriver key codepoints for named keys.
var namedKeys = map[string]string{
	"enter":      "",
	"return":     "",
	"tab":        "",
	"escape":     "",
	"esc":        "",
	"space":      "",
	"backspace":  "",
	"delete":     "",
	"insert":     "",
	"home":       "",
	"end":        "",
	"pageup":     "",
	"pagedown":   "",
	"arrowleft":  "",
	"arrowup":    "",
	"arrowright": "",
	"arrowdown":  "",
	"left":       "",
	"up":         "",
	"right":      "",
	"down":       "",
	"shift":      "",
	"control":    "",
	"ctrl":       "",
	"alt":        "",
}

// keyFor maps a key name from a press command to the codepoint sent over the
// wire. A single ordinary character passes through as itself.
func keyFor(name string) (string, error) {
	if code, ok := namedKeys[strings.ToLower(name)]; ok {
		return code, nil
	}
	if utf8.RuneCountInString(name) == 1 {
		return name, nil
	}
	return "", fmt.Errorf("unknown key name %q", name)
}

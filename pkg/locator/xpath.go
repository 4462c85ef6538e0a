package locator

import (
	"fmt"
	"strings"
)

// xpathLiteral renders a Go string as an XPath string literal. XPath 1.0 has
// no escape syntax, so a value containing both quote kinds is built with
// concat().
func xpathLiteral(s string) string {
	if !strings.Contains(s, `"`) {
		return `"` + s + `"`
	}
	if !strings.Contains(s, "'") {
		return "'" + s + "'"
	}
	var parts []string
	for _, piece := range strings.SplitAfter(s, `"`) {
		if strings.HasSuffix(piece, `"`) {
			if rest := strings.TrimSuffix(piece, `"`); rest != "" {
				parts = append(parts, `"`+rest+`"`)
			}
			parts = append(parts, `'"'`)
		} else if piece != "" {
			parts = append(parts, `"`+piece+`"`)
		}
	}
	return "concat(" + strings.Join(parts, ", ") + ")"
}

// probe is one strategy in the resolution precedence: an XPath relative to
// the current search context, plus flags controlling candidate handling.
type probe struct {
	name string
	// build renders the probe's XPath for a query.
	build func(q string) string
	// swapLabel marks probes whose candidates are labels to be swapped for
	// their associated form control.
	swapLabel bool
	// hiddenOK allows non-displayed candidates.
	hiddenOK bool
	// raw marks the user-supplied XPath fallback, which needs anchoring
	// when the search context is an element.
	raw bool
}

// probes returns the resolution strategies in precedence order. Earlier
// entries win; the raw XPath fallback comes last and is the only probe that
// may return hidden elements (hidden file inputs are a deliberate use case).
func probes() []probe {
	return []probe{
		{
			name: "placeholder exact",
			build: func(q string) string {
				l := xpathLiteral(q)
				return fmt.Sprintf(`.//input[@placeholder=%s] | .//textarea[@placeholder=%s]`, l, l)
			},
		},
		{
			name: "placeholder partial",
			build: func(q string) string {
				l := xpathLiteral(q)
				return fmt.Sprintf(`.//input[contains(@placeholder, %s)] | .//textarea[contains(@placeholder, %s)]`, l, l)
			},
		},
		{
			name:      "label association",
			swapLabel: true,
			build: func(q string) string {
				l := xpathLiteral(q)
				return fmt.Sprintf(
					`.//label[normalize-space(.)=%s] | .//span[normalize-space(.)=%s] | .//label[contains(., %s)] | .//span[contains(., %s)]`,
					l, l, l, l)
			},
		},
		{
			name: "exact text",
			build: func(q string) string {
				return fmt.Sprintf(`.//*[normalize-space(text())=%s]`, xpathLiteral(q))
			},
		},
		{
			name: "partial text",
			build: func(q string) string {
				return fmt.Sprintf(`.//*[contains(text(), %s)]`, xpathLiteral(q))
			},
		},
		{
			name: "title attribute",
			build: func(q string) string {
				return fmt.Sprintf(`.//*[@title=%s]`, xpathLiteral(q))
			},
		},
		{
			name: "aria-label attribute",
			build: func(q string) string {
				return fmt.Sprintf(`.//*[@aria-label=%s]`, xpathLiteral(q))
			},
		},
		{
			name: "id attribute",
			build: func(q string) string {
				return fmt.Sprintf(`.//*[@id=%s]`, xpathLiteral(q))
			},
		},
		{
			name: "name attribute",
			build: func(q string) string {
				return fmt.Sprintf(`.//*[@name=%s]`, xpathLiteral(q))
			},
		},
		{
			name: "class attribute",
			build: func(q string) string {
				l := xpathLiteral(q)
				return fmt.Sprintf(`.//*[@class=%s] | .//*[contains(@class, %s)]`, l, l)
			},
		},
		{
			name: "tag name",
			build: func(q string) string {
				return fmt.Sprintf(`.//*[local-name()=%s]`, xpathLiteral(q))
			},
		},
		{
			name:     "raw xpath",
			hiddenOK: true,
			raw:      true,
			build: func(q string) string {
				return q
			},
		},
	}
}

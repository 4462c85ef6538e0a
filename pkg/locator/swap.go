package locator

import (
	"fmt"

	"github.com/devicelab-dev/webrun/pkg/core"
)

// maxAncestorCrawl bounds the upward search for a control that shares a
// container with the matched label.
const maxAncestorCrawl = 5

const controlUnion = `.//input | .//textarea | .//select`

// controlFor finds the form control a label or span describes. It tries, in
// order: the element named by a for attribute, a control nested inside the
// label, a following sibling control, then a control anywhere under each of
// up to five ancestors.
func (r *Resolver) controlFor(label core.ElementRef) (core.ElementRef, bool) {
	if forID, err := r.Browser.Attr(label, "for"); err == nil && forID != "" {
		xp := fmt.Sprintf(`//*[@id=%s]`, xpathLiteral(forID))
		if els, err := r.Browser.FindAll(core.ByXPath, xp, nil); err == nil && len(els) > 0 {
			return els[0], true
		}
	}

	if els, err := r.Browser.FindAll(core.ByXPath, controlUnion, &label); err == nil && len(els) > 0 {
		return els[0], true
	}

	siblings := `./following-sibling::input | ./following-sibling::textarea | ./following-sibling::select`
	if els, err := r.Browser.FindAll(core.ByXPath, siblings, &label); err == nil && len(els) > 0 {
		return els[0], true
	}

	node := label
	for i := 0; i < maxAncestorCrawl; i++ {
		parent, ok := r.parentOf(node)
		if !ok {
			break
		}
		if els, err := r.Browser.FindAll(core.ByXPath, controlUnion, &parent); err == nil && len(els) > 0 {
			return els[0], true
		}
		node = parent
	}
	return core.ElementRef{}, false
}

// OptionWithText finds the option under a select whose visible text matches
// exactly.
func (r *Resolver) OptionWithText(sel core.ElementRef, text string) (core.ElementRef, error) {
	xp := fmt.Sprintf(`.//option[normalize-space(.)=%s]`, xpathLiteral(text))
	opts, err := r.Browser.FindAll(core.ByXPath, xp, &sel)
	if err != nil {
		return core.ElementRef{}, err
	}
	if len(opts) == 0 {
		return core.ElementRef{}, core.LocateError(text)
	}
	return opts[0], nil
}

// OwningSelect maps an option element to its enclosing select. Any other
// element is returned unchanged. Select commands use this so a located
// option still drives the right control.
func (r *Resolver) OwningSelect(el core.ElementRef) (core.ElementRef, error) {
	tag, err := r.Browser.TagName(el)
	if err != nil {
		return core.ElementRef{}, err
	}
	if tag != "option" {
		return el, nil
	}
	owners, err := r.Browser.FindAll(core.ByXPath, `./ancestor::select[1]`, &el)
	if err != nil {
		return core.ElementRef{}, err
	}
	if len(owners) == 0 {
		return el, nil
	}
	return owners[0], nil
}

package rod

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

// overlayKeywords are id/class substrings associated with consent and
// dismissal controls. Ordered by how often each pattern closes an overlay
// in practice.
var overlayKeywords = []string{
	"accept", "agree", "cookie", "allow", "approve",
	"continue", "gdpr", "privacy", "close",
}

// dismissPhrases is the allow-list of visible button text that identifies
// a consent/dismiss control. Matching is exact after trimming and
// lowercasing; substring matching would hit "do not accept" style buttons.
var dismissPhrases = []string{
	"accept", "accept all", "i accept", "ok", "continue", "agree", "allow",
}

// clickableSelector covers the generic elements scanned in the text-based
// second pass.
const clickableSelector = `button, a, [role="button"], .btn`

// overlaySettle is how long to wait after a click for the resulting DOM
// transition to finish.
const overlaySettle = 500 * time.Millisecond

// attributeSelectors returns the ordered CSS selectors for the first,
// attribute-based dismissal tier. Kept as data so the pattern list can be
// extended without touching the dismissal control flow.
func attributeSelectors() []string {
	selectors := make([]string, 0, len(overlayKeywords))
	for _, kw := range overlayKeywords {
		selectors = append(selectors, fmt.Sprintf(
			`button[id*=%[1]q i], button[class*=%[1]q i], a[id*=%[1]q i], a[class*=%[1]q i], [role="button"][class*=%[1]q i]`,
			kw))
	}
	return selectors
}

// matchesDismissPhrase reports whether visible element text is on the
// dismissal allow-list.
func matchesDismissPhrase(text string) bool {
	text = strings.ToLower(strings.TrimSpace(text))
	for _, phrase := range dismissPhrases {
		if text == phrase {
			return true
		}
	}
	return false
}

// dismissOverlays detects and clicks away cookie/consent/modal overlays
// blocking page content. It runs two tiers: attribute-based selector
// matching, then visible-text matching over generic clickable elements.
// Overlay markup varies wildly across sites and neither heuristic alone
// has acceptable recall.
//
// Dismissal is best-effort: a missed overlay is a quality problem, not a
// correctness problem, so every failure is swallowed.
func dismissOverlays(page *rod.Page, attemptNumber int) {
	for _, selector := range attributeSelectors() {
		clickVisible(page, selector, nil)
	}

	clickVisible(page, clickableSelector, matchesDismissPhrase)

	// Later attempts give re-rendered overlays a moment to reappear before
	// the caller captures the page.
	if attemptNumber > 1 {
		time.Sleep(overlaySettle)
	}
}

// clickVisible clicks every currently-visible element matched by selector.
// When match is non-nil, only elements whose visible text passes it are
// clicked. Each click is followed by a short settle wait.
func clickVisible(page *rod.Page, selector string, match func(string) bool) {
	elements, err := page.Elements(selector)
	if err != nil {
		return
	}

	for _, el := range elements {
		if match != nil {
			text, err := el.Text()
			if err != nil || !match(text) {
				continue
			}
		}

		visible, err := el.Visible()
		if err != nil || !visible {
			continue
		}

		if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
			continue
		}
		time.Sleep(overlaySettle)
	}
}

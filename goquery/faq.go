package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/schemamark/schemamark"
)

// faqContainerSelectors identify blocks of FAQ markup by class naming
// conventions.
var faqContainerSelectors = []string{
	".faq", ".faqs", ".faq-section", "#faq", `[class*="accordion"]`,
}

// extractFAQ pulls question/answer pairs out of a page. Two markup shapes
// are recognized: native <details>/<summary> disclosure elements, and
// FAQ-class containers where a heading is followed by answer text.
func extractFAQ(doc *goquery.Document) []schemamark.FAQItem {
	var items []schemamark.FAQItem
	seen := make(map[string]bool)

	add := func(question, answer string) {
		question = strings.TrimSpace(question)
		answer = strings.TrimSpace(answer)
		if question == "" || answer == "" || seen[question] {
			return
		}
		seen[question] = true
		items = append(items, schemamark.FAQItem{Question: question, Answer: answer})
	}

	doc.Find("details").Each(func(_ int, details *goquery.Selection) {
		summary := details.Find("summary").First()
		if summary.Length() == 0 {
			return
		}
		question := summary.Text()
		// Answer is the details text minus the summary.
		answer := strings.TrimSpace(strings.Replace(details.Text(), summary.Text(), "", 1))
		add(question, answer)
	})

	for _, selector := range faqContainerSelectors {
		doc.Find(selector).Each(func(_ int, container *goquery.Selection) {
			container.Find("h2, h3, h4, dt").Each(func(_ int, heading *goquery.Selection) {
				answer := heading.NextFiltered("p, div, dd").First()
				if answer.Length() == 0 {
					return
				}
				add(heading.Text(), answer.Text())
			})
		})
	}

	return items
}

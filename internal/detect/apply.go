package detect

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// applyKeywords mark a mailto link as the way to submit an application.
var applyKeywords = []string{"apply", "resume", "cv"}

// DetectEmailPDF reports whether a page links to a PDF posting and asks
// applicants to apply by email. Both must hold: some link targets a .pdf, and
// some mailto link mentions apply, resume or cv in its own text or in the text
// of its parent element.
func DetectEmailPDF(doc *goquery.Document) bool {
	if doc == nil {
		return false
	}

	var hasPDF, hasApplyMail bool
	doc.Find("a[href]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href := strings.ToLower(strings.TrimSpace(s.AttrOr("href", "")))
		if strings.Contains(href, ".pdf") {
			hasPDF = true
		}
		if !hasApplyMail && strings.HasPrefix(href, "mailto:") {
			hasApplyMail = mentionsApply(s.Text()) || mentionsApply(s.Parent().Text())
		}
		return !(hasPDF && hasApplyMail)
	})
	return hasPDF && hasApplyMail
}

func mentionsApply(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range applyKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

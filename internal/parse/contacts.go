package parse

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pdmedical/crm-import/internal/model"
)

var emailRe = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)

// Two passes, concatenated. Duplicates between the passes are possible
// and preserved.
var nameRes = []*regexp.Regexp{
	regexp.MustCompile(`[A-Z][a-z]+(?:\s+[A-Z][a-z]*\.?\s*)?[A-Z][a-z]+`), // First M. Last
	regexp.MustCompile(`[A-Z][a-z]+\s+[A-Z][a-z]+`),                      // First Last
}

// At most this many contacts are synthesized per product when the text
// has names but no email addresses.
const maxSynthesizedContacts = 5

// Contacts extracts contact candidates from a product's free-text
// contact reference field.
//
// When emails are present, the i-th email is paired with the i-th
// extracted name. The pairing is positional, not semantic: a text like
// "assistant to Jane Doe, bob@x.com" mismatches, and that is accepted.
// When only names are present, placeholder emails are synthesized as
// first.last@fallbackDomain. Text with neither yields nothing.
func Contacts(text, fallbackDomain string) []model.ContactCandidate {
	if text == "" {
		return nil
	}

	emails := emailRe.FindAllString(text, -1)

	var names []string
	for _, re := range nameRes {
		names = append(names, re.FindAllString(text, -1)...)
	}

	var out []model.ContactCandidate
	switch {
	case len(emails) > 0:
		for i, email := range emails {
			var name *string
			if i < len(names) {
				n := names[i]
				name = &n
			}
			out = append(out, model.ContactCandidate{
				Name:    name,
				Email:   strings.ToLower(email),
				RawText: text,
			})
		}
	case len(names) > 0:
		for _, name := range names[:min(len(names), maxSynthesizedContacts)] {
			parts := strings.Fields(name)
			if len(parts) < 2 {
				continue
			}
			n := name
			out = append(out, model.ContactCandidate{
				Name:    &n,
				Email:   fmt.Sprintf("%s.%s@%s", strings.ToLower(parts[0]), strings.ToLower(parts[len(parts)-1]), fallbackDomain),
				RawText: text,
			})
		}
	}

	return out
}

// Domain returns the domain part of an email address, or the fallback
// domain when the address has no "@".
func Domain(email, fallback string) string {
	if _, domain, ok := strings.Cut(email, "@"); ok {
		return domain
	}
	return fallback
}

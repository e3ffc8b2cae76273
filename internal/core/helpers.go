package core

import (
	"strings"

	"github.com/JonMunkholm/accreditation-console/internal/datatable"
)

// HumanizeKey turns an API field name like "contact_email" into
// "Contact Email".
func HumanizeKey(key string) string {
	words := strings.Fields(strings.NewReplacer("_", " ", "-", " ", ".", " ").Replace(key))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// RecordID returns the API id of rec, or "" when it has none.
func RecordID(rec datatable.Record) string {
	if rec == nil {
		return ""
	}
	if _, ok := rec["id"]; !ok {
		return ""
	}
	return rec.String("id")
}

// RecordSummary picks a short human label for a record, used by audit
// entries and confirmation prompts.
func RecordSummary(rec datatable.Record) string {
	for _, key := range []string{"name", "title", "code", "email", "reference"} {
		if s := rec.String(key); s != "" {
			return s
		}
	}
	return RecordID(rec)
}

package chat

import "strings"

// MentionQuery is an in-progress @-mention at the composer caret.
type MentionQuery struct {
	// Query is the text typed after the @, possibly empty.
	Query string
	// Start is the byte offset of the @ in the composer text.
	Start int
}

// ActiveMentionQuery reports whether the caret sits inside an
// in-progress mention: an @ at the start of the text or after a space,
// with no space typed since. Once the user types a space the mention
// is considered committed and suggestions stop.
func ActiveMentionQuery(text string, caret int) (MentionQuery, bool) {
	if caret < 0 || caret > len(text) {
		return MentionQuery{}, false
	}
	before := text[:caret]

	at := strings.LastIndexByte(before, '@')
	if at == -1 {
		return MentionQuery{}, false
	}
	if at > 0 && before[at-1] != ' ' {
		// Mid-word @, e.g. an email address.
		return MentionQuery{}, false
	}
	query := before[at+1:]
	if strings.ContainsRune(query, ' ') {
		return MentionQuery{}, false
	}
	return MentionQuery{Query: query, Start: at}, true
}

// FilterParticipants returns the participants whose name starts with
// the query, case-insensitively. An empty query matches everyone.
func FilterParticipants(participants []string, query string) []string {
	if query == "" {
		out := make([]string, len(participants))
		copy(out, participants)
		return out
	}
	q := strings.ToLower(query)
	var out []string
	for _, p := range participants {
		if strings.HasPrefix(strings.ToLower(p), q) {
			out = append(out, p)
		}
	}
	return out
}

// InsertMention completes the in-progress mention with the chosen
// name, replacing "@query" with "@Name " and returning the new text
// and caret position.
func InsertMention(text string, caret int, q MentionQuery, name string) (string, int) {
	if caret < 0 || caret > len(text) || q.Start < 0 || q.Start >= caret {
		return text, caret
	}
	inserted := "@" + name + " "
	out := text[:q.Start] + inserted + text[caret:]
	return out, q.Start + len(inserted)
}

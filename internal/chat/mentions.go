package chat

import (
	"regexp"
	"strings"
)

// mentionPattern matches an @ followed by one or more words. Display
// names contain spaces, so the syntactic capture is greedy and may run
// past the intended name; ParseMentions trims it back against the
// known participants.
var mentionPattern = regexp.MustCompile(`@(\w+(?:\s+\w+)*)`)

// Mention is one parsed @-reference.
type Mention struct {
	// Name is the mentioned display name. For a known participant it
	// carries the participant's canonical casing.
	Name string
	// Known reports whether the name matched a room participant.
	Known bool
}

// ParseMentions extracts the @-mentions in text. Each greedy capture is
// trimmed to the longest word-prefix that equals a known participant
// name, case-insensitively, so "@John Smith nice throw" mentions
// "John Smith" and leaves "nice throw" as message text. A capture that
// matches nobody is kept whole as an unknown mention.
func ParseMentions(text string, participants []string) []Mention {
	matches := mentionPattern.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}

	byFold := make(map[string]string, len(participants))
	for _, p := range participants {
		byFold[strings.ToLower(p)] = p
	}

	out := make([]Mention, 0, len(matches))
	for _, m := range matches {
		capture := m[1]
		if name, ok := trimToParticipant(capture, byFold); ok {
			out = append(out, Mention{Name: name, Known: true})
			continue
		}
		out = append(out, Mention{Name: capture})
	}
	return out
}

// MentionsUser reports whether text @-mentions the given display name.
// Matching is case-insensitive.
func MentionsUser(text, userName string) bool {
	if userName == "" {
		return false
	}
	for _, m := range ParseMentions(text, []string{userName}) {
		if m.Known {
			return true
		}
	}
	return false
}

// trimToParticipant finds the longest word-prefix of capture that
// equals a participant name under case folding.
func trimToParticipant(capture string, byFold map[string]string) (string, bool) {
	words := strings.Fields(capture)
	for n := len(words); n > 0; n-- {
		candidate := strings.ToLower(strings.Join(words[:n], " "))
		if name, ok := byFold[candidate]; ok {
			return name, true
		}
	}
	return "", false
}

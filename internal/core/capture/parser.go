// Package capture parses raw inbox text into structured conversion
// hints. Parsing is pure: the store façade owns the precedence
// contract (explicit fields > parsed tokens > heuristics > defaults)
// and all validation.
package capture

import (
	"strings"
	"time"
)

// Kinds a capture can be converted into.
var TargetKinds = []string{"task", "meeting", "note", "reminder", "followup", "project", "person"}

// Tokens holds the values extracted from explicit capture syntax.
type Tokens struct {
	People    []string // @name tokens, in order of appearance
	Projects  []string // #name tokens, in order of appearance
	Priority  int      // !p1..!p5, 0 when absent
	Due       string   // due:YYYY-MM-DD
	Scheduled string   // do:YYYY-MM-DD
	Kind      string   // type:<kind>
	Context   string   // work: / personal:
}

// Heuristics holds opt-in inferences that apply only when the
// corresponding explicit token is absent.
type Heuristics struct {
	Kind      string // "meeting" when meeting language is detected
	Scheduled string // resolved from the words today/tomorrow
}

// Parsed is the full parse result for one capture.
type Parsed struct {
	Title      string // raw text with token syntax stripped
	Tokens     Tokens
	Heuristics Heuristics
}

// Words that suggest the capture describes a meeting.
var meetingWords = []string{
	"meeting", "1:1", "1-1", "one-on-one", "sync", "standup",
	"check-in", "catch-up", "call",
}

// Parse extracts tokens and heuristics from raw capture text.
// localDate (YYYY-MM-DD) anchors the relative-date heuristic.
func Parse(raw, localDate string) Parsed {
	var parsed Parsed
	var titleWords []string

	for _, word := range strings.Fields(raw) {
		lower := strings.ToLower(word)
		switch {
		case strings.HasPrefix(word, "@") && len(word) > 1:
			name := trimPunct(word[1:])
			if name != "" {
				parsed.Tokens.People = append(parsed.Tokens.People, name)
				titleWords = append(titleWords, name)
			}
		case strings.HasPrefix(word, "#") && len(word) > 1:
			name := trimPunct(word[1:])
			if name != "" {
				parsed.Tokens.Projects = append(parsed.Tokens.Projects, name)
				titleWords = append(titleWords, name)
			}
		case isPriorityToken(lower):
			parsed.Tokens.Priority = int(lower[2] - '0')
		case strings.HasPrefix(lower, "due:"):
			parsed.Tokens.Due = word[len("due:"):]
		case strings.HasPrefix(lower, "do:"):
			parsed.Tokens.Scheduled = word[len("do:"):]
		case strings.HasPrefix(lower, "type:"):
			parsed.Tokens.Kind = normalizeKind(word[len("type:"):])
		case lower == "work:":
			parsed.Tokens.Context = "work"
		case lower == "personal:":
			parsed.Tokens.Context = "personal"
		default:
			titleWords = append(titleWords, word)
		}
	}

	parsed.Title = strings.Join(titleWords, " ")
	parsed.Heuristics = inferHeuristics(raw, localDate)
	return parsed
}

// inferHeuristics scans the raw text for relative dates and meeting
// language. Inferences never override explicit tokens; the store
// applies them only when the token layer left the slot empty.
func inferHeuristics(raw, localDate string) Heuristics {
	var h Heuristics
	lower := strings.ToLower(raw)
	words := strings.Fields(lower)

	for _, word := range words {
		switch trimPunct(word) {
		case "today":
			h.Scheduled = localDate
		case "tomorrow":
			h.Scheduled = addDays(localDate, 1)
		}
		if h.Scheduled != "" {
			break
		}
	}

	for _, marker := range meetingWords {
		for _, word := range words {
			if trimPunct(word) == marker {
				h.Kind = "meeting"
				return h
			}
		}
	}
	return h
}

func isPriorityToken(lower string) bool {
	return len(lower) == 3 && lower[0] == '!' && lower[1] == 'p' && lower[2] >= '1' && lower[2] <= '5'
}

// normalizeKind maps token spellings onto the canonical target kinds.
func normalizeKind(kind string) string {
	normalized := strings.ToLower(strings.TrimSpace(kind))
	switch normalized {
	case "follow-up", "followup":
		return "followup"
	}
	for _, candidate := range TargetKinds {
		if candidate == normalized {
			return candidate
		}
	}
	return ""
}

func trimPunct(word string) string {
	return strings.Trim(word, ",.;:!?")
}

// addDays shifts a YYYY-MM-DD date by n days, returning "" on
// unparseable input.
func addDays(date string, n int) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return ""
	}
	return t.AddDate(0, 0, n).Format("2006-01-02")
}

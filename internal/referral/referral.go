// Package referral matches free-text referral codes against the fixed code
// table, exactly or by bounded edit distance. Everything here is a pure
// function of its inputs; the table is immutable and safe for unlimited
// concurrent reads.
package referral

import "strings"

// Entry pairs a referral code with its owner.
type Entry struct {
	Code  string `json:"code"`
	Owner string `json:"owner"`
}

// Suggestion is a near-miss entry with its edit distance from the input.
type Suggestion struct {
	Entry
	Distance int `json:"distance"`
}

// DefaultSuggestionDistance is the edit-distance threshold used when callers
// don't supply their own.
const DefaultSuggestionDistance = 2

// codes is the fixed table; declaration order breaks distance ties.
var codes = []Entry{
	{Code: "AG7KQ", Owner: "Ansh Gupta"},
	{Code: "VS9F2", Owner: "Vihaan Shukla"},
	{Code: "TSX8M", Owner: "Tala Swaidan"},
	{Code: "VM4ZP", Owner: "Vaibhav Kiran Mundanat"},
	{Code: "GMQ37", Owner: "Gibran Malaeb"},
	{Code: "AS2LD", Owner: "Armaghan Siddiqui"},
	{Code: "ESJ6R", Owner: "Elinore Sweiss"},
	{Code: "CR8TN", Owner: "Clyde Jared Robis"},
	{Code: "AS5WD", Owner: "Aryan Shah"},
}

var byCode = func() map[string]Entry {
	m := make(map[string]Entry, len(codes))
	for _, e := range codes {
		m[strings.ToUpper(e.Code)] = e
	}
	return m
}()

// Normalize prepares a candidate code for comparison: trimmed, uppercased.
func Normalize(input string) string {
	return strings.ToUpper(strings.TrimSpace(input))
}

// Lookup reports the owner entry for an exact (normalized) match.
func Lookup(code string) (Entry, bool) {
	e, ok := byCode[Normalize(code)]
	return e, ok
}

// Suggest returns all entries within maxDistance of the normalized input,
// ascending by distance, ties broken by table declaration order. A blank
// input yields no suggestions.
func Suggest(input string, maxDistance int) []Suggestion {
	normalized := Normalize(input)
	if normalized == "" {
		return nil
	}

	var out []Suggestion
	for _, e := range codes {
		d := Distance(normalized, e.Code)
		if d <= maxDistance {
			out = append(out, Suggestion{Entry: e, Distance: d})
		}
	}

	// Insertion sort keeps declaration order among equal distances.
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].Distance < out[j-1].Distance; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

// Distance is the classic Levenshtein edit distance: insertions, deletions
// and substitutions each cost 1. Operates on runes.
func Distance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := 0; j <= len(rb); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, min(curr[j-1]+1, prev[j-1]+cost))
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

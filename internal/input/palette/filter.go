package palette

import (
	"strings"
	"unicode"
)

// Match field weights. A title match outranks the identifier, which
// outranks the description and category.
const (
	titleBonus = 50
	nameBonus  = 25
)

// matchEntry scores e against a lowercase query. It returns the score and
// the matched rune indices of the best field.
func matchEntry(query []rune, e Entry) (int, []int) {
	if score, matches := fuzzyMatch(query, e.Title); score > 0 {
		return score + titleBonus, matches
	}
	if score, matches := fuzzyMatch(query, e.Command.String()); score > 0 {
		return score + nameBonus, matches
	}
	if score, matches := fuzzyMatch(query, e.Description); score > 0 {
		return score, matches
	}
	if score, matches := fuzzyMatch(query, e.Category); score > 0 {
		return score, matches
	}
	return 0, nil
}

// fuzzyMatch finds query as a subsequence of text, case-insensitively.
func fuzzyMatch(query []rune, text string) (int, []int) {
	if text == "" || len(query) == 0 {
		return 0, nil
	}

	runes := []rune(text)
	matches := make([]int, 0, len(query))
	qi := 0
	for i := 0; i < len(runes) && qi < len(query); i++ {
		if unicode.ToLower(runes[i]) == query[qi] {
			matches = append(matches, i)
			qi++
		}
	}
	if qi != len(query) {
		return 0, nil
	}
	return score(query, runes, matches), matches
}

// score rewards consecutive matches, word starts and prefixes, and
// penalises gaps and late starts.
func score(query, text []rune, matches []int) int {
	s := 100

	for i := 1; i < len(matches); i++ {
		if matches[i] == matches[i-1]+1 {
			s += 20
		}
	}
	for _, idx := range matches {
		if isWordBoundary(text, idx) {
			s += 15
		}
	}

	first, last := matches[0], matches[len(matches)-1]
	if first == 0 {
		s += 25
	} else {
		s -= first
	}
	if gap := last - first - len(matches) + 1; gap > 0 {
		s -= gap * 2
	}

	if len(text) < 20 {
		s += 20 - len(text)
	}
	if strings.HasPrefix(strings.ToLower(string(text)), string(query)) {
		s += 50
	}

	if s < 1 {
		s = 1
	}
	return s
}

// isWordBoundary reports whether text[idx] starts a word, including the
// humps of a camelCase identifier.
func isWordBoundary(text []rune, idx int) bool {
	if idx == 0 {
		return true
	}
	if idx >= len(text) {
		return false
	}
	prev, cur := text[idx-1], text[idx]
	switch prev {
	case ' ', '_', '-', '.', '/', ':':
		return true
	}
	return unicode.IsLower(prev) && unicode.IsUpper(cur)
}

// title turns a camelCase identifier into words: "nextHeading1" becomes
// "Next heading 1".
func title(name string) string {
	var b strings.Builder
	runes := []rune(name)
	for i, r := range runes {
		if i > 0 {
			prev := runes[i-1]
			if unicode.IsUpper(r) || (unicode.IsDigit(r) && !unicode.IsDigit(prev)) {
				b.WriteByte(' ')
			}
		}
		if i == 0 {
			b.WriteRune(unicode.ToUpper(r))
		} else {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

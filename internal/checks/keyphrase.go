package checks

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// fallback word matching ignores words this short ("of", "in", "a")
const minSignificantWordLen = 3

// normalize lowercases s and collapses all whitespace runs to single spaces.
func normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// containsFold reports whether text contains phrase, ignoring case and
// differences in whitespace. An empty phrase never matches.
func containsFold(text, phrase string) bool {
	p := normalize(phrase)
	if p == "" {
		return false
	}
	return strings.Contains(normalize(text), p)
}

// significantWords returns the lowercased keyphrase words long enough to be
// matched one by one.
func significantWords(keyphrase string) []string {
	var words []string
	for _, w := range strings.Fields(strings.ToLower(keyphrase)) {
		if len([]rune(w)) >= minSignificantWordLen {
			words = append(words, w)
		}
	}
	return words
}

// containsAllWords reports whether every word occurs in text. It is false
// when words is empty so a keyphrase made only of short words cannot match.
func containsAllWords(text string, words []string) bool {
	if len(words) == 0 {
		return false
	}
	lower := strings.ToLower(text)
	for _, w := range words {
		if !strings.Contains(lower, w) {
			return false
		}
	}
	return true
}

// wordCount counts whitespace separated tokens.
func wordCount(text string) int {
	return len(strings.Fields(text))
}

// countOccurrences counts whole-word, case-insensitive matches of keyphrase
// in text. Whitespace inside the keyphrase matches any whitespace run.
// Word boundaries are Unicode aware: "café" does not match inside "cafés".
func countOccurrences(text, keyphrase string) int {
	re := keyphrasePattern(keyphrase)
	if re == nil {
		return 0
	}
	words := strings.Fields(keyphrase)
	first, _ := utf8.DecodeRuneInString(words[0])
	last, _ := utf8.DecodeLastRuneInString(words[len(words)-1])
	// a boundary is only required next to a word rune, "c++" needs none on its right
	checkBefore, checkAfter := isWordRune(first), isWordRune(last)

	count := 0
	for pos := 0; pos < len(text); {
		loc := re.FindStringIndex(text[pos:])
		if loc == nil {
			break
		}
		start, end := pos+loc[0], pos+loc[1]
		if (!checkBefore || !wordRuneBefore(text, start)) && (!checkAfter || !wordRuneAt(text, end)) {
			count++
			pos = end
			continue
		}
		_, size := utf8.DecodeRuneInString(text[start:])
		pos = start + size
	}
	return count
}

func keyphrasePattern(keyphrase string) *regexp.Regexp {
	words := strings.Fields(keyphrase)
	if len(words) == 0 {
		return nil
	}
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = regexp.QuoteMeta(w)
	}
	return regexp.MustCompile(`(?i)` + strings.Join(quoted, `\s+`))
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r)
}

func wordRuneBefore(text string, i int) bool {
	if i == 0 {
		return false
	}
	r, _ := utf8.DecodeLastRuneInString(text[:i])
	return isWordRune(r)
}

func wordRuneAt(text string, i int) bool {
	if i >= len(text) {
		return false
	}
	r, _ := utf8.DecodeRuneInString(text[i:])
	return isWordRune(r)
}

// slugForms returns the ways a multi-word keyphrase is commonly written in
// a URL: "blue widgets" -> blue-widgets, blue_widgets, bluewidgets, blue+widgets.
func slugForms(keyphrase string) []string {
	words := strings.Fields(strings.ToLower(keyphrase))
	if len(words) == 0 {
		return nil
	}
	if len(words) == 1 {
		return words
	}
	forms := []string{strings.Join(words, " ")}
	for _, sep := range []string{"-", "_", "", "+", "%20"} {
		forms = append(forms, strings.Join(words, sep))
	}
	return forms
}

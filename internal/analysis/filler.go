package analysis

import (
	"fmt"
	"regexp"
	"sync"
	"unicode"
	"unicode/utf8"
)

// DefaultFillers are the Portuguese crutch words boosted in recognition and counted afterwards
var DefaultFillers = []string{"tipo", "ééé", "né", "então", "daí", "tá", "hum", "ah", "bom", "certo", "ok"}

// FillerCounts maps a filler token to how many times it occurred. Tokens that never occur are absent.
type FillerCounts map[string]int

// Distinct returns the number of different fillers that occurred at least once.
// Repeated use of one filler counts once.
func (c FillerCounts) Distinct() int {
	return len(c)
}

// Summary renders the counts as "token: n" in the order of fillers
func (c FillerCounts) Summary(fillers []string) []string {
	out := make([]string, 0, len(c))
	for _, f := range fillers {
		if n, ok := c[f]; ok {
			out = append(out, fmt.Sprintf("%s: %d", f, n))
		}
	}
	return out
}

// CountFillers counts case-insensitive whole-word occurrences of each filler in transcript
func CountFillers(transcript string, fillers []string) FillerCounts {
	counts := make(FillerCounts)
	if transcript == "" {
		return counts
	}
	for _, f := range fillers {
		if f == "" {
			continue
		}
		if _, seen := counts[f]; seen {
			continue
		}
		if n := countWord(transcript, f); n > 0 {
			counts[f] = n
		}
	}
	return counts
}

// patterns caches one compiled matcher per filler token
var patterns sync.Map

func wordPattern(word string) *regexp.Regexp {
	if re, ok := patterns.Load(word); ok {
		return re.(*regexp.Regexp)
	}
	re, _ := patterns.LoadOrStore(word, regexp.MustCompile(`(?i)`+regexp.QuoteMeta(word)))
	return re.(*regexp.Regexp)
}

func countWord(text, word string) int {
	re := wordPattern(word)
	n := 0
	for _, loc := range re.FindAllStringIndex(text, -1) {
		if boundaryBefore(text, loc[0]) && boundaryAfter(text, loc[1]) {
			n++
		}
	}
	return n
}

func boundaryBefore(text string, i int) bool {
	if i == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(text[:i])
	return !isWordRune(r)
}

func boundaryAfter(text string, i int) bool {
	if i >= len(text) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(text[i:])
	return !isWordRune(r)
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r)
}

// internal/words/words.go
//
// Word list management for the word-guess and grid-word games.
//
// Responsibilities:
//   - Load answer and allowed guess lists from environment-provided
//     files or fall back to the embedded defaults in assets/.
//   - Maintain sets for quick lookups (answers only, answers∪guesses).
//   - Expose deterministic index access (AnswerAt) so the daily picker
//     can map a seeded float straight onto the answer list.
//
// Word Lists:
//   - "answers": canonical daily solutions (exactly 5 letters). The
//     daily target is only ever drawn from this list.
//   - "allowed": valid guesses (always includes answers). Used only to
//     validate submitted guesses, never to pick targets; otherwise
//     obscure words could become daily answers.
//
// Environment variables:
//   WORDS_ANSWERS_FILE=/path/to/answers.txt
//   WORDS_ALLOWED_FILE=/path/to/allowed.txt
//
// Constraints:
//   • Words must be 5 alphabetic letters (a–z).
//   • Lists are normalized to lowercase.
//   • If a configured file cannot be read, the embedded defaults are
//     used and the failure is logged, not surfaced as fatal.

package words

import (
	"bufio"
	"errors"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/playable/dailygames/assets"
)

// Length is the fixed word length for all word games.
const Length = 5

// List holds one loaded answers/allowed pair. Engines depend on *List
// so tests can inject tiny fixed lists.
type List struct {
	answers    []string
	answersSet map[string]struct{}
	allowedSet map[string]struct{} // answers ∪ guesses
}

// NewList builds a List from raw lines. Lines are trimmed, lowercased,
// and dropped unless they are exactly Length letters a–z. Answers are
// always folded into the allowed set.
func NewList(answerLines, allowedLines []string) (*List, error) {
	l := &List{
		answersSet: make(map[string]struct{}),
		allowedSet: make(map[string]struct{}),
	}
	for _, raw := range answerLines {
		w := normalize(raw)
		if w == "" {
			continue
		}
		if _, dup := l.answersSet[w]; dup {
			continue
		}
		l.answers = append(l.answers, w)
		l.answersSet[w] = struct{}{}
		l.allowedSet[w] = struct{}{}
	}
	for _, raw := range allowedLines {
		if w := normalize(raw); w != "" {
			l.allowedSet[w] = struct{}{}
		}
	}
	if len(l.answers) == 0 {
		return nil, errors.New("words: answers list is empty")
	}
	return l, nil
}

// normalize returns the canonical form of a raw line, or "" if the
// line is not a valid word.
func normalize(raw string) string {
	w := strings.TrimSpace(strings.ToLower(raw))
	if len(w) != Length || !isAlpha(w) {
		return ""
	}
	return w
}

func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

// AnswerCount returns the number of canonical answers.
func (l *List) AnswerCount() int { return len(l.answers) }

// AnswerAt returns the answer at index i. Index order is load order,
// which must stay stable across releases for daily determinism.
func (l *List) AnswerAt(i int) string { return l.answers[i] }

// Answers returns the canonical answer list.
func (l *List) Answers() []string { return l.answers }

// IsAllowed reports whether w is a valid guess (answers ∪ guesses).
func (l *List) IsAllowed(w string) bool {
	_, ok := l.allowedSet[strings.ToLower(w)]
	return ok
}

// IsAnswer reports whether w is a canonical answer.
func (l *List) IsAnswer(w string) bool {
	_, ok := l.answersSet[strings.ToLower(w)]
	return ok
}

// Stats returns counts of loaded words: (answers, allowed).
func (l *List) Stats() (answersCount, allowedCount int) {
	return len(l.answers), len(l.allowedSet)
}

// --- process-wide default list ---------------------------------------------

var (
	initOnce   sync.Once
	defaultLst *List
	initialErr error
)

// Init loads the process-wide word list exactly once.
//
//  1. If WORDS_ANSWERS_FILE and WORDS_ALLOWED_FILE are both set, load
//     from those files.
//  2. If only WORDS_ALLOWED_FILE is set, use it for both lists.
//  3. Otherwise fall back to the embedded defaults.
//
// A file read failure falls back to the embedded lists with a logged
// warning; only an empty resulting answers list is an error.
func Init() error {
	initOnce.Do(func() {
		defaultLst, initialErr = loadFromEnv()
	})
	return initialErr
}

// Default returns the process-wide list. Init must have succeeded.
func Default() *List {
	if err := Init(); err != nil {
		panic(err)
	}
	return defaultLst
}

func loadFromEnv() (*List, error) {
	answersPath := os.Getenv("WORDS_ANSWERS_FILE")
	allowedPath := os.Getenv("WORDS_ALLOWED_FILE")

	switch {
	case answersPath != "" && allowedPath != "":
		ans, err1 := readWordFile(answersPath)
		all, err2 := readWordFile(allowedPath)
		if err1 == nil && err2 == nil {
			return NewList(ans, all)
		}
		log.Warn().AnErr("answers", err1).AnErr("allowed", err2).
			Msg("word list files unreadable, using embedded defaults")

	case answersPath == "" && allowedPath != "":
		all, err := readWordFile(allowedPath)
		if err == nil {
			return NewList(all, all)
		}
		log.Warn().Err(err).Msg("allowed list unreadable, using embedded defaults")
	}

	return loadEmbedded()
}

func loadEmbedded() (*List, error) {
	ans, err := assets.AnswersList()
	if err != nil {
		return nil, err
	}
	all, err := assets.AllowedList()
	if err != nil {
		return nil, err
	}
	return NewList(ans, all)
}

// readWordFile loads one word per line from a file.
func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		out = append(out, sc.Text())
	}
	return out, sc.Err()
}

package words

import "testing"

func TestNewListFiltering(t *testing.T) {
	answers := []string{"CRANE", " slate ", "toolong", "abc", "sl4te", "", "crane"}
	allowed := []string{"adieu", "AUDIO", "nope!", "crane"}

	l, err := NewList(answers, allowed)
	if err != nil {
		t.Fatalf("NewList: %v", err)
	}
	if got := l.AnswerCount(); got != 2 {
		t.Fatalf("AnswerCount = %d, want 2 (crane, slate)", got)
	}
	if l.AnswerAt(0) != "crane" || l.AnswerAt(1) != "slate" {
		t.Fatalf("answer order not preserved: %v", l.Answers())
	}
	if !l.IsAllowed("adieu") || !l.IsAllowed("AUDIO") {
		t.Fatal("allowed words missing from set")
	}
	if !l.IsAllowed("crane") {
		t.Fatal("answers must always be allowed")
	}
	if l.IsAllowed("nope!") || l.IsAllowed("toolong") {
		t.Fatal("invalid words leaked into allowed set")
	}
	if l.IsAnswer("adieu") {
		t.Fatal("allowed-only word must not be an answer")
	}
}

func TestNewListEmptyAnswers(t *testing.T) {
	if _, err := NewList(nil, []string{"adieu"}); err == nil {
		t.Fatal("expected error for empty answers list")
	}
}

func TestEmbeddedDefaults(t *testing.T) {
	l, err := loadEmbedded()
	if err != nil {
		t.Fatalf("loadEmbedded: %v", err)
	}
	ansN, allN := l.Stats()
	if ansN == 0 {
		t.Fatal("embedded answers empty")
	}
	if allN < ansN {
		t.Fatalf("allowed set (%d) smaller than answers (%d)", allN, ansN)
	}
	for _, w := range l.Answers() {
		if len(w) != Length {
			t.Fatalf("embedded answer %q has wrong length", w)
		}
	}
}

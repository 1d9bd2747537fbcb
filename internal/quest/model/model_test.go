package model

import (
	"slices"
	"testing"
)

func TestParseGenre(t *testing.T) {
	cases := []struct {
		input string
		want  Genre
		ok    bool
	}{
		{"forest", GenreForest, true},
		{"  SPACE ", GenreSpace, true},
		{"dungeon", GenreDungeon, true},
		{"mystery", GenreMystery, true},
		{"castle", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := ParseGenre(tc.input)
		if got != tc.want || ok != tc.ok {
			t.Errorf("ParseGenre(%q) = (%q, %v), want (%q, %v)", tc.input, got, ok, tc.want, tc.ok)
		}
	}
}

func TestNewInitialState(t *testing.T) {
	state := NewInitialState("sess-1", GenreForest, "숲 입구에 도착했다.", nil)

	if state.Turn != 1 {
		t.Errorf("turn = %d, want 1", state.Turn)
	}
	if len(state.History) != 1 {
		t.Fatalf("history length = %d, want 1", len(state.History))
	}
	if state.History[0].UserInput != "" {
		t.Errorf("intro turn user_input = %q, want empty", state.History[0].UserInput)
	}
	if state.GameOver {
		t.Error("fresh state must not be game over")
	}
	if len(state.CurrentChoices) != 4 {
		t.Errorf("choices = %v, want 4 defaults", state.CurrentChoices)
	}
	if !state.CheckInvariants(2) {
		t.Error("initial state violates invariants")
	}
}

func TestAppendTurnImmutable(t *testing.T) {
	base := NewInitialState("sess-1", GenreSpace, "intro", nil)
	next := base.AppendTurn(2, "1. Explore", "응답", []string{"courage"}, false, []string{"a", "b"})

	if base.Turn != 1 || len(base.History) != 1 {
		t.Error("AppendTurn mutated the receiver")
	}
	if next.Turn != 2 || len(next.History) != 2 {
		t.Errorf("next turn=%d history=%d", next.Turn, len(next.History))
	}
	if !slices.Equal(next.CurrentChoices, []string{"a", "b"}) {
		t.Errorf("choices = %v", next.CurrentChoices)
	}
	if !next.CheckInvariants(2) {
		t.Error("appended state violates invariants")
	}
}

func TestAppendTurnDefaultChoices(t *testing.T) {
	base := NewInitialState("sess-1", GenreSpace, "intro", nil)
	next := base.AppendTurn(2, "go", "resp", nil, false, nil)
	if len(next.CurrentChoices) != 4 {
		t.Errorf("choices = %v, want 4 defaults", next.CurrentChoices)
	}
}

func TestMergeVocabularyDeduplicates(t *testing.T) {
	state := NewInitialState("sess-1", GenreForest, "intro", nil)
	state = state.MergeVocabulary([]string{"Courage", "courage", " MYSTERIOUS ", ""})

	want := []string{"courage", "mysterious"}
	if !slices.Equal(state.VocabularyLearned, want) {
		t.Errorf("vocabulary = %v, want %v", state.VocabularyLearned, want)
	}

	// 두 번 병합해도 중복이 생기지 않는다.
	again := state.MergeVocabulary([]string{"courage"})
	if !slices.Equal(again.VocabularyLearned, want) {
		t.Errorf("vocabulary after remerge = %v", again.VocabularyLearned)
	}
}

func TestCheckInvariants(t *testing.T) {
	state := NewInitialState("sess-1", GenreForest, "intro", nil)

	broken := state
	broken.Turn = 5
	if broken.CheckInvariants(2) {
		t.Error("turn mismatch must fail invariants")
	}

	broken = state
	broken.History = nil
	if broken.CheckInvariants(2) {
		t.Error("empty history must fail invariants")
	}

	broken = state
	broken.BacktrackCount = 3
	if broken.CheckInvariants(2) {
		t.Error("backtrack over limit must fail invariants")
	}
}

func TestSettingsNormalize(t *testing.T) {
	s := AccessibilitySettings{FontSize: "huge", Theme: ThemeRetro, FontFamily: "arial"}
	normalized := s.Normalize()

	if normalized.FontSize != FontSizeMedium {
		t.Errorf("font size = %q", normalized.FontSize)
	}
	if normalized.Theme != ThemeRetro {
		t.Errorf("theme = %q, valid value must be kept", normalized.Theme)
	}
	if normalized.FontFamily != FontOpenDyslexic {
		t.Errorf("font family = %q", normalized.FontFamily)
	}
}

func TestVocabularyProgressClone(t *testing.T) {
	p := NewVocabularyProgress()
	p.WordsLearned = append(p.WordsLearned, "courage")

	clone := p.Clone()
	clone.WordsLearned[0] = "changed"

	if p.WordsLearned[0] != "courage" {
		t.Error("Clone must not share backing arrays")
	}
}

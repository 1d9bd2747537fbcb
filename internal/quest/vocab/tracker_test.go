package vocab

import (
	"slices"
	"testing"

	"github.com/dyslexiquest/quest-engine-go/internal/quest/model"
)

func TestAddLearnedWordCaseDedup(t *testing.T) {
	tracker := NewTracker(20)

	if !tracker.AddLearnedWord("Magic") {
		t.Error("first add must report first-time")
	}
	if tracker.AddLearnedWord("magic") {
		t.Error("second add of same word must not report first-time")
	}

	progress := tracker.Progress()
	if !slices.Equal(progress.WordsLearned, []string{"magic"}) {
		t.Errorf("learned = %v, want exactly one lowercase entry", progress.WordsLearned)
	}
	if progress.CurrentStreak != 1 {
		t.Errorf("streak = %d, want 1", progress.CurrentStreak)
	}
}

func TestStreakTracking(t *testing.T) {
	tracker := NewTracker(20)

	tracker.AddLearnedWord("courage")
	tracker.AddLearnedWord("wisdom")
	tracker.AddLearnedWord("portal")

	stats := tracker.Stats()
	if stats.CurrentStreak != 3 || stats.BestStreak != 3 {
		t.Errorf("streaks = %d/%d, want 3/3", stats.CurrentStreak, stats.BestStreak)
	}

	tracker.ResetStreak()
	stats = tracker.Stats()
	if stats.CurrentStreak != 0 {
		t.Errorf("current streak after reset = %d", stats.CurrentStreak)
	}
	if stats.BestStreak != 3 {
		t.Errorf("best streak must survive reset, got %d", stats.BestStreak)
	}

	tracker.AddLearnedWord("riddle")
	stats = tracker.Stats()
	if stats.CurrentStreak != 1 || stats.BestStreak != 3 {
		t.Errorf("streaks = %d/%d, want 1/3", stats.CurrentStreak, stats.BestStreak)
	}
}

func TestViewedAndMasteredIdempotent(t *testing.T) {
	tracker := NewTracker(20)

	tracker.MarkDefinitionViewed("Courage")
	tracker.MarkDefinitionViewed("courage")
	tracker.MarkMastered("PORTAL")
	tracker.MarkMastered("portal")

	progress := tracker.Progress()
	if !slices.Equal(progress.DefinitionsViewed, []string{"courage"}) {
		t.Errorf("viewed = %v", progress.DefinitionsViewed)
	}
	if !slices.Equal(progress.WordsMastered, []string{"portal"}) {
		t.Errorf("mastered = %v", progress.WordsMastered)
	}
}

func TestStatsCompletionPercent(t *testing.T) {
	tracker := NewTracker(20)
	tracker.AddLearnedWord("courage")
	tracker.AddLearnedWord("wisdom")
	tracker.AddLearnedWord("portal")

	stats := tracker.Stats()
	// 3/20 = 15%
	if stats.CompletionPercent != 15 {
		t.Errorf("completion = %d, want 15", stats.CompletionPercent)
	}
}

func TestRestoreKeepsStreak(t *testing.T) {
	tracker := NewTracker(20)
	tracker.Restore(model.VocabularyProgress{
		WordsLearned:  []string{"courage"},
		CurrentStreak: 4,
		BestStreak:    7,
	})

	stats := tracker.Stats()
	if stats.CurrentStreak != 4 || stats.BestStreak != 7 {
		t.Errorf("restore must not reset streaks: %d/%d", stats.CurrentStreak, stats.BestStreak)
	}
	// nil 슬라이스는 빈 슬라이스로 보정된다.
	progress := tracker.Progress()
	if progress.DefinitionsViewed == nil || progress.WordsMastered == nil {
		t.Error("restored sets must be non-nil")
	}
}

func TestRecordGamePlayed(t *testing.T) {
	tracker := NewTracker(20)
	tracker.RecordGamePlayed()
	tracker.RecordGamePlayed()

	progress := tracker.Progress()
	if progress.TotalGamesPlayed != 2 {
		t.Errorf("games played = %d", progress.TotalGamesPlayed)
	}
	if progress.LastPlayed.IsZero() {
		t.Error("last played must be set")
	}
}

func TestSuggestExcludesKnownWords(t *testing.T) {
	dict := testDictionary(t)

	easy := dict.ByDifficulty(DifficultyEasy)
	known := []string{easy[0].Word}

	got := Suggest(dict, known, DifficultyEasy, len(easy))
	if len(got) != len(easy)-1 {
		t.Errorf("suggestions = %d, want %d", len(got), len(easy)-1)
	}
	for _, entry := range got {
		if entry.Word == known[0] {
			t.Errorf("known word %q suggested", known[0])
		}
		if entry.Difficulty != DifficultyEasy {
			t.Errorf("wrong tier %q for %q", entry.Difficulty, entry.Word)
		}
	}
}

func TestSuggestCountClamped(t *testing.T) {
	dict := testDictionary(t)

	got := Suggest(dict, nil, DifficultyHard, 100)
	if len(got) != len(dict.ByDifficulty(DifficultyHard)) {
		t.Errorf("suggestions = %d", len(got))
	}
	if Suggest(dict, nil, DifficultyHard, 0) != nil {
		t.Error("count 0 must return nil")
	}
}

package httpapi

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/dyslexiquest/quest-engine-go/internal/common/httputil"
	"github.com/dyslexiquest/quest-engine-go/internal/quest/model"
	"github.com/dyslexiquest/quest-engine-go/internal/quest/vocab"
)

const defaultSuggestionCount = 3

type (
	// WordRequest: 단어 지정 요청 DTO (정의 열람 / 마스터 표시)
	WordRequest struct {
		Word string `json:"word"`
	}

	// SuggestionsResponse: 추천 단어 응답 DTO
	SuggestionsResponse struct {
		Words []vocab.VocabularyWord `json:"words"`
	}
)

func registerVocabularyRoutes(mux *http.ServeMux, deps Deps) {
	// GET /api/vocabulary/stats - 학습 통계
	mux.HandleFunc("GET /api/vocabulary/stats", func(w http.ResponseWriter, r *http.Request) {
		_ = httputil.WriteJSON(w, http.StatusOK, deps.Tracker.Stats())
	})

	// GET /api/vocabulary/word/{word} - 단어 정의 조회
	mux.HandleFunc("GET /api/vocabulary/word/{word}", func(w http.ResponseWriter, r *http.Request) {
		entry, ok := deps.Dictionary.Lookup(r.PathValue("word"))
		if !ok {
			httputil.WriteErrorJSON(w, http.StatusNotFound, "unknown_word", "word is not in the vocabulary")
			return
		}
		_ = httputil.WriteJSON(w, http.StatusOK, entry)
	})

	// GET /api/vocabulary/suggestions?count=&difficulty= - 추천 단어
	mux.HandleFunc("GET /api/vocabulary/suggestions", func(w http.ResponseWriter, r *http.Request) {
		handleSuggestions(w, r, deps)
	})

	// POST /api/vocabulary/viewed - 정의 열람 기록
	mux.HandleFunc("POST /api/vocabulary/viewed", func(w http.ResponseWriter, r *http.Request) {
		handleWordMark(w, r, deps, deps.Tracker.MarkDefinitionViewed)
	})

	// POST /api/vocabulary/mastered - 마스터 표시
	mux.HandleFunc("POST /api/vocabulary/mastered", func(w http.ResponseWriter, r *http.Request) {
		handleWordMark(w, r, deps, deps.Tracker.MarkMastered)
	})
}

func handleSuggestions(w http.ResponseWriter, r *http.Request, deps Deps) {
	count := defaultSuggestionCount
	if raw := r.URL.Query().Get("count"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			httputil.WriteErrorJSON(w, http.StatusBadRequest, "invalid_count", "count must be a positive number")
			return
		}
		count = parsed
	}

	tier := vocab.Difficulty(strings.ToLower(r.URL.Query().Get("difficulty")))
	switch tier {
	case "", vocab.DifficultyEasy, vocab.DifficultyMedium, vocab.DifficultyHard:
	default:
		httputil.WriteErrorJSON(w, http.StatusBadRequest, "invalid_difficulty", "difficulty must be easy, medium or hard")
		return
	}

	progress := deps.Tracker.Progress()
	words := vocab.Suggest(deps.Dictionary, progress.WordsLearned, tier, count)
	_ = httputil.WriteJSON(w, http.StatusOK, SuggestionsResponse{Words: words})
}

func handleWordMark(w http.ResponseWriter, r *http.Request, deps Deps, mark func(string)) {
	var req WordRequest
	if err := httputil.ReadJSON(r, &req, maxBodyBytes); err != nil {
		httputil.WriteErrorJSON(w, http.StatusBadRequest, "invalid_body", "invalid request body")
		return
	}

	word := vocab.NormalizeWord(req.Word)
	if word == "" {
		httputil.WriteErrorJSON(w, http.StatusBadRequest, "word_required", "word is required")
		return
	}
	if !deps.Dictionary.Contains(word) {
		httputil.WriteErrorJSON(w, http.StatusNotFound, "unknown_word", "word is not in the dictionary")
		return
	}

	mark(word)
	deps.Sessions.SaveProgress(r.Context(), deps.Tracker.Progress())
	_ = httputil.WriteJSON(w, http.StatusOK, deps.Tracker.Stats())
}

func registerSettingsRoutes(mux *http.ServeMux, deps Deps) {
	// GET /api/genres - 시작 화면의 장르 선택지
	mux.HandleFunc("GET /api/genres", func(w http.ResponseWriter, _ *http.Request) {
		_ = httputil.WriteJSON(w, http.StatusOK, map[string][]model.Genre{
			"genres": model.AllGenres(),
		})
	})

	// GET /api/theme - 마지막으로 고른 모험 장르
	mux.HandleFunc("GET /api/theme", func(w http.ResponseWriter, r *http.Request) {
		_ = httputil.WriteJSON(w, http.StatusOK, map[string]string{
			"theme": deps.Sessions.LoadTheme(r.Context()),
		})
	})

	// GET /api/settings - 접근성 설정 조회
	mux.HandleFunc("GET /api/settings", func(w http.ResponseWriter, r *http.Request) {
		_ = httputil.WriteJSON(w, http.StatusOK, deps.Sessions.LoadSettings(r.Context()))
	})

	// PUT /api/settings - 접근성 설정 저장. 잘못된 값은 기본값으로 바뀐다.
	mux.HandleFunc("PUT /api/settings", func(w http.ResponseWriter, r *http.Request) {
		var settings model.AccessibilitySettings
		if err := httputil.ReadJSON(r, &settings, maxBodyBytes); err != nil {
			httputil.WriteErrorJSON(w, http.StatusBadRequest, "invalid_body", "invalid request body")
			return
		}

		normalized := settings.Normalize()
		deps.Sessions.SaveSettings(r.Context(), normalized)
		_ = httputil.WriteJSON(w, http.StatusOK, normalized)
	})
}

package vocab

import (
	"fmt"
	"html"
	"regexp"
	"strings"
)

// vocabSpanRe: 이미 삽입된 어휘 마크업 전체에 매칭된다.
// 재실행 시 기존 마크업을 통째로 보호하여 바깥 경계가 변하지 않도록 한다.
var vocabSpanRe = regexp.MustCompile(`<span class="vocab-word"[^>]*>[^<]*</span>`)

// stripSpanRe: 마크업에서 보이는 텍스트만 남길 때 사용한다.
var stripSpanRe = regexp.MustCompile(`<span class="vocab-word"[^>]*>([^<]*)</span>`)

// Highlighter: 서사 텍스트에 어휘 툴팁 마크업을 입힌다.
type Highlighter struct {
	dict    *Dictionary
	wordRes map[string]*regexp.Regexp
}

// NewHighlighter: 사전의 모든 단어에 대한 전체 단어 매칭 패턴을 미리 컴파일한다.
func NewHighlighter(dict *Dictionary) *Highlighter {
	wordRes := make(map[string]*regexp.Regexp, dict.Size())
	for _, entry := range dict.WordsByLength() {
		wordRes[entry.Word] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(entry.Word) + `\b`)
	}
	return &Highlighter{dict: dict, wordRes: wordRes}
}

// placeholderVault: 치환 도중 비활성화해야 하는 텍스트 조각을 토큰으로 맡아 두는 저장고
type placeholderVault struct {
	saved []string
}

func (v *placeholderVault) protect(literal string) string {
	v.saved = append(v.saved, literal)
	return fmt.Sprintf("\x00%d\x00", len(v.saved)-1)
}

func (v *placeholderVault) restore(text string) string {
	// 나중에 맡긴 조각부터 복원한다. 맡긴 조각 안에 앞선 토큰이 남아 있을 수 있다.
	for i := len(v.saved) - 1; i >= 0; i-- {
		token := fmt.Sprintf("\x00%d\x00", i)
		text = strings.ReplaceAll(text, token, v.saved[i])
	}
	return text
}

// Tracker 인터페이스: 가시 영역에서 단어가 감쌀 때마다 학습 집합에 반영된다.
type learnedSink interface {
	AddLearnedWord(word string) bool
}

// Highlight: 사전 단어의 전체 단어(대소문자 무시) 출현을 툴팁 마크업으로 감싼다.
// 정의/예문 안에 들어 있는 사전 단어는 자리표시자 토큰으로 비활성화하여
// 다음 단어 처리에서 중첩 마크업이 생기지 않게 한다. sink가 nil이 아니면
// 가시 텍스트에서 감싼 단어를 학습 집합에 추가한다.
func (h *Highlighter) Highlight(text string, sink learnedSink) string {
	if text == "" {
		return text
	}

	vault := &placeholderVault{}

	// 기존 마크업 보호: 재실행 시 바깥 감싸기가 중복되지 않는다.
	out := vocabSpanRe.ReplaceAllStringFunc(text, vault.protect)

	for _, entry := range h.dict.WordsByLength() {
		re := h.wordRes[entry.Word]
		word := entry
		out = re.ReplaceAllStringFunc(out, func(match string) string {
			if sink != nil {
				sink.AddLearnedWord(word.Word)
			}
			return vault.protect(h.buildSpan(word, match, vault))
		})
	}

	return vault.restore(out)
}

// buildSpan: 한 단어의 툴팁 마크업을 생성한다. 정의/예문 속 사전 단어는 토큰으로 치환된다.
func (h *Highlighter) buildSpan(entry VocabularyWord, visible string, vault *placeholderVault) string {
	definition := h.neutralizeDictWords(entry.Definition, vault)
	example := h.neutralizeDictWords(entry.Example, vault)

	var b strings.Builder
	b.WriteString(`<span class="vocab-word" data-word="`)
	b.WriteString(html.EscapeString(entry.Word))
	b.WriteString(`" data-definition="`)
	b.WriteString(html.EscapeString(definition))
	b.WriteString(`"`)
	if example != "" {
		b.WriteString(` data-example="`)
		b.WriteString(html.EscapeString(example))
		b.WriteString(`"`)
	}
	b.WriteString(`>`)
	b.WriteString(visible)
	b.WriteString(`</span>`)
	return b.String()
}

// neutralizeDictWords: 텍스트 안의 모든 사전 단어를 토큰으로 맡겨 치환 대상에서 제외한다.
// 토큰은 마지막 복원 단계에서 원래 표기 그대로 되돌아온다.
func (h *Highlighter) neutralizeDictWords(text string, vault *placeholderVault) string {
	if text == "" {
		return text
	}
	for _, entry := range h.dict.WordsByLength() {
		re := h.wordRes[entry.Word]
		text = re.ReplaceAllStringFunc(text, vault.protect)
	}
	return text
}

// StripMarkup: 마크업을 제거하고 보이는 텍스트만 남긴다.
// Highlight의 출력에 적용하면 원문이 정확히 복원된다.
func StripMarkup(text string) string {
	for stripSpanRe.MatchString(text) {
		text = stripSpanRe.ReplaceAllString(text, "$1")
	}
	return text
}

// WrappedWords: 마크업에서 감싸진 단어(data-word 속성) 목록을 추출한다. 테스트/통계용.
var dataWordRe = regexp.MustCompile(`data-word="([^"]*)"`)

func WrappedWords(text string) []string {
	matches := dataWordRe.FindAllStringSubmatch(text, -1)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m[1])
	}
	return out
}

package vocab

import (
	"regexp"
	"strings"

	"github.com/cloudflare/ahocorasick"
)

// wordSplitRe: 구두점을 제거한 전체 단어 단위 분리
var wordSplitRe = regexp.MustCompile(`[A-Za-z']+`)

// minExtractLength: 이 길이 이하의 단어는 추출 대상에서 제외한다.
const minExtractLength = 3

// Extractor: 하이라이트 없이 텍스트에서 사전 단어만 찾아낸다.
// ahocorasick 매처로 후보를 빠르게 거른 뒤 전체 단어 여부를 검증한다.
type Extractor struct {
	dict    *Dictionary
	matcher *ahocorasick.Matcher
	wordsAt []string
}

// NewExtractor 는 동작을 수행한다.
func NewExtractor(dict *Dictionary) *Extractor {
	patterns := make([]string, 0, dict.Size())
	for _, entry := range dict.WordsByLength() {
		patterns = append(patterns, entry.Word)
	}
	return &Extractor{
		dict:    dict,
		matcher: ahocorasick.NewStringMatcher(patterns),
		wordsAt: patterns,
	}
}

// Extract: 텍스트에 등장하는 사전 단어를 첫 출현 순서대로 중복 없이 반환한다.
// 구두점을 제거한 전체 단어 기준이며, 길이가 minExtractLength 이하인 단어는 건너뛴다.
func (e *Extractor) Extract(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	lowered := NormalizeWord(text)

	// 후보가 전혀 없으면 단어 분리 비용을 생략한다.
	hits := e.matcher.Match([]byte(lowered))
	if len(hits) == 0 {
		return nil
	}
	candidates := make(map[string]struct{}, len(hits))
	for _, idx := range hits {
		candidates[e.wordsAt[idx]] = struct{}{}
	}

	seen := make(map[string]struct{})
	var out []string
	for _, raw := range wordSplitRe.FindAllString(lowered, -1) {
		word := strings.Trim(raw, "'")
		if len(word) <= minExtractLength {
			continue
		}
		if _, isCandidate := candidates[word]; !isCandidate {
			continue
		}
		if !e.dict.Contains(word) {
			continue
		}
		if _, dup := seen[word]; dup {
			continue
		}
		seen[word] = struct{}{}
		out = append(out, word)
	}
	return out
}

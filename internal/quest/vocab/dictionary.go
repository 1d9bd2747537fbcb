// Package vocab: 고정 어휘 사전, 서사 텍스트 주석(하이라이트), 학습 진행 추적을 담당한다.
package vocab

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"

	"github.com/dyslexiquest/quest-engine-go/internal/quest/assets"
)

// Difficulty: 어휘 난이도 단계
type Difficulty string

// Difficulty 상수 목록.
const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// VocabularyWord: 사전 항목. 런타임에 변경되지 않는 정적 참조 데이터다.
type VocabularyWord struct {
	Word       string     `yaml:"word" json:"word"`
	Definition string     `yaml:"definition" json:"definition"`
	Difficulty Difficulty `yaml:"difficulty" json:"difficulty"`
	Category   string     `yaml:"category" json:"category"`
	Example    string     `yaml:"example,omitempty" json:"example,omitempty"`
	Synonyms   []string   `yaml:"synonyms,omitempty" json:"synonyms,omitempty"`
	Phonetic   string     `yaml:"phonetic,omitempty" json:"phonetic,omitempty"`
}

// Dictionary: 소문자 단어를 키로 하는 고정 어휘 사전
type Dictionary struct {
	byWord        map[string]VocabularyWord
	wordsByLength []VocabularyWord
}

type dictionaryFile struct {
	Words []VocabularyWord `yaml:"words"`
}

// NormalizeWord: NFKC 정규화 후 소문자로 변환한다. 사전 키와 진행 추적에 공통 사용.
func NormalizeWord(word string) string {
	return strings.ToLower(norm.NFKC.String(strings.TrimSpace(word)))
}

// NewDictionaryFromYAML: yaml 사전 데이터를 파싱하여 Dictionary를 생성한다.
func NewDictionaryFromYAML(content string) (*Dictionary, error) {
	var file dictionaryFile
	if err := yaml.Unmarshal([]byte(content), &file); err != nil {
		return nil, fmt.Errorf("unmarshal vocabulary yaml failed: %w", err)
	}
	if len(file.Words) == 0 {
		return nil, fmt.Errorf("vocabulary yaml has no words")
	}

	byWord := make(map[string]VocabularyWord, len(file.Words))
	for _, entry := range file.Words {
		key := NormalizeWord(entry.Word)
		if key == "" {
			continue
		}
		entry.Word = key
		byWord[key] = entry
	}

	ordered := make([]VocabularyWord, 0, len(byWord))
	for _, entry := range byWord {
		ordered = append(ordered, entry)
	}
	// 긴 단어 우선 처리: 겹치는 짧은 단어가 먼저 치환되는 것을 막는다.
	sort.Slice(ordered, func(i, j int) bool {
		if len(ordered[i].Word) != len(ordered[j].Word) {
			return len(ordered[i].Word) > len(ordered[j].Word)
		}
		return ordered[i].Word < ordered[j].Word
	})

	return &Dictionary{byWord: byWord, wordsByLength: ordered}, nil
}

// DefaultDictionary: 내장 yaml 자산에서 사전을 로드한다.
func DefaultDictionary() (*Dictionary, error) {
	return NewDictionaryFromYAML(assets.VocabularyYAML)
}

// Lookup: 대소문자 구분 없는 정확 일치 조회. 없으면 ok=false.
func (d *Dictionary) Lookup(word string) (VocabularyWord, bool) {
	entry, ok := d.byWord[NormalizeWord(word)]
	return entry, ok
}

// Contains: 단어가 사전에 있는지 확인한다.
func (d *Dictionary) Contains(word string) bool {
	_, ok := d.byWord[NormalizeWord(word)]
	return ok
}

// Size: 사전 크기를 반환한다.
func (d *Dictionary) Size() int {
	return len(d.byWord)
}

// WordsByLength: 길이 내림차순으로 정렬된 전체 항목을 반환한다.
func (d *Dictionary) WordsByLength() []VocabularyWord {
	return d.wordsByLength
}

// ByDifficulty: 해당 난이도의 항목만 반환한다. 빈 난이도는 전체를 뜻한다.
func (d *Dictionary) ByDifficulty(tier Difficulty) []VocabularyWord {
	out := make([]VocabularyWord, 0, len(d.wordsByLength))
	for _, entry := range d.wordsByLength {
		if tier == "" || entry.Difficulty == tier {
			out = append(out, entry)
		}
	}
	return out
}

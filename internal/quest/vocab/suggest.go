package vocab

import "math/rand/v2"

// Suggest: 아직 배우지 않은 단어 중 해당 난이도에서 count개를 무작위로 고른다.
// 순서는 재현되지 않는다.
func Suggest(dict *Dictionary, known []string, tier Difficulty, count int) []VocabularyWord {
	if count <= 0 {
		return nil
	}

	knownSet := make(map[string]struct{}, len(known))
	for _, word := range known {
		knownSet[NormalizeWord(word)] = struct{}{}
	}

	pool := make([]VocabularyWord, 0, dict.Size())
	for _, entry := range dict.ByDifficulty(tier) {
		if _, ok := knownSet[entry.Word]; ok {
			continue
		}
		pool = append(pool, entry)
	}

	rand.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})

	if count > len(pool) {
		count = len(pool)
	}
	return pool[:count]
}

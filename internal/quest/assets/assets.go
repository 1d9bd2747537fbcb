// Package assets: 엔진에 내장되는 정적 자산(메시지 팩, 어휘 사전)을 포함한다.
package assets

import _ "embed"

// MessagesYAML: 사용자 노출 문구 메시지 팩
//
//go:embed messages/quest.yml
var MessagesYAML string

// VocabularyYAML: 고정 어휘 사전 데이터
//
//go:embed vocabulary.yml
var VocabularyYAML string

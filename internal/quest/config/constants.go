// Package config: 퀘스트 엔진 설정과 게임 상수를 정의한다.
package config

// 게임 진행 상수
const (
	// MaxTurns: 한 세션의 최대 턴 수. 이 턴에 도달하면 게임이 종료된다.
	MaxTurns = 10
	// MaxBacktrackCount: 한 세션에서 허용되는 최대 되돌리기 횟수
	MaxBacktrackCount = 2
	// MaxChoices: 한 턴에 제시되는 선택지 최대 개수
	MaxChoices = 4
)

// 저장소 키 네임스페이스
const (
	// StoreNamespace: 로컬 키-값 저장소의 키 prefix
	StoreNamespace = "dyslexiquest"
)

// 서비스 식별자
const (
	// ServiceName: 로그와 텔레메트리에서 사용하는 서비스 이름
	ServiceName = "quest-engine"
)

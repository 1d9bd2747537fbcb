package model

import "slices"

// FontSize: 글자 크기 단계
type FontSize string

// FontSize 상수 목록.
const (
	FontSizeSmall  FontSize = "small"
	FontSizeMedium FontSize = "medium"
	FontSizeLarge  FontSize = "large"
	FontSizeXLarge FontSize = "x-large"
)

// Theme: 화면 테마
type Theme string

// Theme 상수 목록.
const (
	ThemeRetro      Theme = "retro"
	ThemeAccessible Theme = "accessible"
	ThemeModern     Theme = "modern"
)

// FontFamily: 난독증 친화 글꼴 목록
type FontFamily string

// FontFamily 상수 목록.
const (
	FontOpenDyslexic FontFamily = "open-dyslexic"
	FontLexend       FontFamily = "lexend"
	FontComicNeue    FontFamily = "comic-neue"
	FontAtkinson     FontFamily = "atkinson-hyperlegible"
)

// AccessibilitySettings: 접근성 설정 객체. 저장소에 독립 키로 보존된다.
type AccessibilitySettings struct {
	FontSize       FontSize   `json:"font_size"`
	Theme          Theme      `json:"theme"`
	SkipAnimations bool       `json:"skip_animations"`
	FontFamily     FontFamily `json:"font_family"`
	ShowBackground bool       `json:"show_background"`
	HighContrast   bool       `json:"high_contrast"`
}

// DefaultSettings: 기본 접근성 설정
func DefaultSettings() AccessibilitySettings {
	return AccessibilitySettings{
		FontSize:       FontSizeMedium,
		Theme:          ThemeAccessible,
		FontFamily:     FontOpenDyslexic,
		ShowBackground: true,
	}
}

// Normalize: 허용되지 않은 열거값을 기본값으로 교체한 설정을 반환한다.
func (s AccessibilitySettings) Normalize() AccessibilitySettings {
	defaults := DefaultSettings()
	next := s
	if !slices.Contains([]FontSize{FontSizeSmall, FontSizeMedium, FontSizeLarge, FontSizeXLarge}, s.FontSize) {
		next.FontSize = defaults.FontSize
	}
	if !slices.Contains([]Theme{ThemeRetro, ThemeAccessible, ThemeModern}, s.Theme) {
		next.Theme = defaults.Theme
	}
	if !slices.Contains([]FontFamily{FontOpenDyslexic, FontLexend, FontComicNeue, FontAtkinson}, s.FontFamily) {
		next.FontFamily = defaults.FontFamily
	}
	return next
}

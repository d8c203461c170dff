// Package icons maps free-text activity names to icon keys and icon keys to
// renderable glyphs. Matching is keyword-substring based, case-insensitive,
// first match wins over a fixed table order.
package icons

import "strings"

// DefaultKey is returned when no keyword matches.
const DefaultKey = "target"

// DefaultGlyph is the glyph for DefaultKey and for unknown keys.
const DefaultGlyph = "🎯"

type mapping struct {
	Key      string
	Glyph    string
	Keywords []string
}

// The table is an ordered slice, not a map, so lookup order is deterministic.
var table = []mapping{
	// Exercise & sports
	{"running", "🏃‍♂️", []string{"달리기", "러닝", "running", "run", "jog", "조깅"}},
	{"workout", "🏋️‍♀️", []string{"운동", "헬스", "workout", "gym", "exercise", "웨이트"}},
	{"yoga", "🧘‍♂️", []string{"요가", "yoga", "명상", "meditation", "스트레칭"}},
	{"cycling", "🚴‍♂️", []string{"자전거", "cycling", "bike", "사이클"}},
	{"swimming", "🏊‍♂️", []string{"수영", "swimming", "swim"}},
	{"soccer", "⚽", []string{"축구", "soccer", "football"}},
	{"basketball", "🏀", []string{"농구", "basketball"}},
	{"tennis", "🎾", []string{"테니스", "tennis"}},
	{"pingpong", "🏓", []string{"탁구", "ping pong", "table tennis"}},
	{"climbing", "🧗‍♂️", []string{"클라이밍", "climbing", "암벽"}},

	// Learning & work
	{"reading", "📚", []string{"독서", "reading", "read", "책", "book"}},
	{"writing", "✍️", []string{"글쓰기", "writing", "write", "일기", "journal"}},
	{"coding", "💻", []string{"코딩", "coding", "프로그래밍", "programming", "개발"}},
	{"drawing", "🎨", []string{"그림", "drawing", "art", "드로잉", "미술"}},
	{"piano", "🎹", []string{"피아노", "piano", "악기", "music", "음악"}},
	{"guitar", "🎸", []string{"기타", "guitar"}},
	{"study", "📝", []string{"공부", "study", "학습", "learning"}},
	{"language", "🗣️", []string{"영어", "english", "언어", "language", "회화"}},

	// Health & wellness
	{"water", "💧", []string{"물", "water", "물마시기", "hydration"}},
	{"medicine", "💊", []string{"약", "medicine", "pill", "영양제", "vitamin"}},
	{"sleep", "😴", []string{"수면", "sleep", "잠", "rest", "낮잠"}},
	{"meditation", "🧘", []string{"명상", "meditate", "mindfulness"}},
	{"teeth", "🦷", []string{"양치", "brush teeth", "치실", "floss"}},

	// Daily life
	{"cleaning", "🧹", []string{"청소", "cleaning", "clean", "정리"}},
	{"cooking", "🍳", []string{"요리", "cooking", "cook", "식사준비"}},
	{"shopping", "🛒", []string{"장보기", "shopping", "grocery"}},
	{"plant", "🌱", []string{"식물", "plant", "gardening", "가드닝"}},
	{"walk", "🐕", []string{"산책", "walk", "강아지산책", "dog walk"}},

	// Productivity
	{"todo", "☑️", []string{"할일", "todo", "task", "업무"}},
	{"email", "📧", []string{"이메일", "email", "mail"}},
	{"call", "📞", []string{"전화", "call", "phone"}},
	{"saving", "💰", []string{"저축", "saving", "가계부", "budget"}},

	// Self-care
	{"skincare", "🧴", []string{"스킨케어", "skincare", "피부관리"}},
	{"nail", "💅", []string{"네일", "nail", "셀프케어"}},
	{"bath", "🛁", []string{"목욕", "bath", "반신욕"}},

	// Entertainment
	{"movie", "🎬", []string{"영화", "movie", "film", "넷플릭스"}},
	{"gaming", "🎮", []string{"게임", "game", "gaming"}},
	{"social", "📱", []string{"sns", "소셜미디어", "social media"}},
}

// Resolve returns the icon key for a free-text activity name. The first table
// row with a case-insensitive substring match wins; DefaultKey if none match.
func Resolve(name string) string {
	lower := strings.ToLower(name)
	for _, m := range table {
		for _, kw := range m.Keywords {
			if strings.Contains(lower, strings.ToLower(kw)) {
				return m.Key
			}
		}
	}
	return DefaultKey
}

// Glyph returns the renderable glyph for an icon key. Unknown keys fall back
// to DefaultGlyph.
func Glyph(key string) string {
	for _, m := range table {
		if m.Key == key {
			return m.Glyph
		}
	}
	return DefaultGlyph
}

// Valid reports whether key names a known icon.
func Valid(key string) bool {
	if key == DefaultKey {
		return true
	}
	for _, m := range table {
		if m.Key == key {
			return true
		}
	}
	return false
}

// Keys returns all known icon keys in table order.
func Keys() []string {
	keys := make([]string, 0, len(table))
	for _, m := range table {
		keys = append(keys, m.Key)
	}
	return keys
}

package grammar

import "testing"

func TestValidTLD(t *testing.T) {
	cases := []struct {
		label string
		want  bool
	}{
		{"com", true},
		{"org", true},
		{"jp", true},
		{"co", true},
		{"COM", true}, // case-insensitive
		{"xn--p1ai", true},
		{"xn--", false},
		{"avalidtld", false},
		{"c", false},
		{"", false},
	}
	for _, c := range cases {
		if got := ValidTLD(c.label); got != c.want {
			t.Errorf("ValidTLD(%q) = %v, want %v", c.label, got, c.want)
		}
	}
}

func TestEmojiSequence(t *testing.T) {
	cases := []struct {
		name string
		text string
		want int
	}{
		{"plain letter", "a", 0},
		{"plain digit", "1", 0},
		{"single pictograph", "\U0001F525", 1},
		{"pictograph with VS16", "\u2764\uFE0F", 2},
		{"skin tone modifier", "\U0001F44D\U0001F3FD", 2},
		{"keycap", "1\uFE0F\u20E3", 3},
		{"keycap without VS16", "#\u20E3", 2},
		{"flag pair", "\U0001F1EF\U0001F1F5", 2},
		{"lone regional indicator", "\U0001F1EF", 1},
		{"zwj family", "\U0001F468\u200D\U0001F469\u200D\U0001F467\u200D\U0001F466", 7},
		{"zwj profession", "\U0001F469\u200D\U0001F4BB", 3},
	}
	for _, c := range cases {
		rs := []rune(c.text)
		if got := EmojiSequence(rs, 0); got != c.want {
			t.Errorf("%s: EmojiSequence(%q) = %d, want %d", c.name, c.text, got, c.want)
		}
	}
}

func TestEmojiSequence_StopsAtSequenceEnd(t *testing.T) {
	// The scanner must not consume the letter after the emoji.
	rs := []rune("\U0001F525z")
	if got := EmojiSequence(rs, 0); got != 1 {
		t.Errorf("EmojiSequence() = %d, want 1", got)
	}
	if got := EmojiSequence(rs, 1); got != 0 {
		t.Errorf("EmojiSequence() at the letter = %d, want 0", got)
	}
}

func TestCharClassHelpers(t *testing.T) {
	if !IsAtSign('@') || !IsAtSign('＠') {
		t.Error("IsAtSign rejects an at sign")
	}
	if IsAtSign('a') {
		t.Error("IsAtSign accepts a letter")
	}
	if !IsHashSign('#') || !IsHashSign('＃') {
		t.Error("IsHashSign rejects a hash sign")
	}
	if !IsLatinAccent('è') || IsLatinAccent('e') {
		t.Error("IsLatinAccent boundary wrong")
	}
	for _, r := range []rune{'\uFFFE', '\uFEFF', '\uFFFF', '\u202A', '\u202E', '\u2066', '\u2069'} {
		if !IsInvalidRune(r) {
			t.Errorf("IsInvalidRune(%U) = false, want true", r)
		}
	}
	if IsInvalidRune('a') || IsInvalidRune(' ') {
		t.Error("IsInvalidRune rejects ordinary characters")
	}
}

func TestNewCompiles(t *testing.T) {
	g := New()
	if g.Hashtag == nil || g.Mention == nil || g.Cashtag == nil || g.ExtractURL == nil {
		t.Fatal("New() returned nil patterns")
	}
	if !g.Hashtag.MatchString("#tag") {
		t.Error("hashtag pattern does not match #tag")
	}
	if !g.Mention.MatchString("@name") {
		t.Error("mention pattern does not match @name")
	}
}

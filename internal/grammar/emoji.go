package grammar

// Emoji sequence recognition. The length engine weighs a whole emoji
// sequence as a single unit and the hashtag rules must never split one, so
// the scanner below walks a rune slice and reports how many runes the
// sequence starting at a given position spans. It follows UTS #51 sequence
// shapes: optional VS16 presentation selector, skin tone modifiers, keycaps,
// regional-indicator flag pairs and ZWJ joins.

const (
	runeZWJ             = 0x200d
	runeVS16            = 0xfe0f
	runeCombiningKeycap = 0x20e3
)

func isRegionalIndicator(r rune) bool { return r >= 0x1f1e6 && r <= 0x1f1ff }

func isSkinToneModifier(r rune) bool { return r >= 0x1f3fb && r <= 0x1f3ff }

func isKeycapBase(r rune) bool {
	return (r >= '0' && r <= '9') || r == '#' || r == '*'
}

// emojiBaseRanges covers the pictographic blocks that render as emoji with
// or without a variation selector. Inclusive rune ranges, sorted.
var emojiBaseRanges = [][2]rune{
	{0x203c, 0x203c}, {0x2049, 0x2049}, {0x2122, 0x2122}, {0x2139, 0x2139},
	{0x2194, 0x21aa}, {0x231a, 0x231b}, {0x2328, 0x2328}, {0x23cf, 0x23fa},
	{0x24c2, 0x24c2}, {0x25aa, 0x25ab}, {0x25b6, 0x25b6}, {0x25c0, 0x25c0},
	{0x25fb, 0x25fe}, {0x2600, 0x27bf}, {0x2934, 0x2935}, {0x2b05, 0x2b07},
	{0x2b1b, 0x2b1c}, {0x2b50, 0x2b50}, {0x2b55, 0x2b55}, {0x3030, 0x3030},
	{0x303d, 0x303d}, {0x3297, 0x3297}, {0x3299, 0x3299},
	{0x1f004, 0x1f004}, {0x1f0cf, 0x1f0cf}, {0x1f170, 0x1f171},
	{0x1f17e, 0x1f17f}, {0x1f18e, 0x1f18e}, {0x1f191, 0x1f19a},
	{0x1f201, 0x1f202}, {0x1f21a, 0x1f21a}, {0x1f22f, 0x1f22f},
	{0x1f232, 0x1f23a}, {0x1f250, 0x1f251}, {0x1f300, 0x1f5ff},
	{0x1f600, 0x1f64f}, {0x1f680, 0x1f6ff}, {0x1f780, 0x1f7ff},
	{0x1f900, 0x1f9ff}, {0x1fa70, 0x1faff},
}

func isEmojiBase(r rune) bool {
	lo, hi := 0, len(emojiBaseRanges)-1
	for lo <= hi {
		mid := (lo + hi) / 2
		rg := emojiBaseRanges[mid]
		switch {
		case r < rg[0]:
			hi = mid - 1
		case r > rg[1]:
			lo = mid + 1
		default:
			return true
		}
	}
	return false
}

// EmojiSequence returns the number of runes the emoji sequence starting at
// rs[i] spans, or 0 when rs[i] does not start one. A plain digit is not a
// sequence; a digit followed by a combining keycap is.
func EmojiSequence(rs []rune, i int) int {
	if i >= len(rs) {
		return 0
	}
	r := rs[i]

	// Flag: a pair of regional indicators. A lone indicator still renders
	// as an emoji and counts as a sequence of one.
	if isRegionalIndicator(r) {
		if i+1 < len(rs) && isRegionalIndicator(rs[i+1]) {
			return 2
		}
		return 1
	}

	// Keycap: base, optional VS16, combining keycap.
	if isKeycapBase(r) {
		j := i + 1
		if j < len(rs) && rs[j] == runeVS16 {
			j++
		}
		if j < len(rs) && rs[j] == runeCombiningKeycap {
			return j - i + 1
		}
		return 0
	}

	if !isEmojiBase(r) {
		return 0
	}

	n := emojiElement(rs, i)
	// ZWJ joins: family, profession and flag sequences.
	for i+n+1 < len(rs) && rs[i+n] == runeZWJ && isEmojiBase(rs[i+n+1]) {
		n++ // the joiner
		n += emojiElement(rs, i+n)
	}
	return n
}

// emojiElement consumes one pictographic rune plus its trailing presentation
// selector and skin tone modifier, returning the rune count.
func emojiElement(rs []rune, i int) int {
	n := 1
	if i+n < len(rs) && rs[i+n] == runeVS16 {
		n++
	}
	if i+n < len(rs) && isSkinToneModifier(rs[i+n]) {
		n++
	}
	return n
}

package twittertext

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTweet_ASCII(t *testing.T) {
	result := ParseTweet("Hello", ConfigV2())
	assert.Equal(t, 5, result.WeightedLength)
	assert.Equal(t, 5*1000/280, result.Permillage)
	assert.True(t, result.Valid)
	assert.Equal(t, Range{0, 5}, result.DisplayTextRange)
	assert.Equal(t, Range{0, 5}, result.ValidTextRange)
}

func TestParseTweet_CJKCountsDouble(t *testing.T) {
	// Outside every v2 range, so each character takes the default weight.
	result := ParseTweet("日本語", ConfigV2())
	assert.Equal(t, 6, result.WeightedLength)
	assert.True(t, result.Valid)
}

func TestParseTweet_V1UnitWeights(t *testing.T) {
	result := ParseTweet("a", ConfigV1())
	assert.Equal(t, 1, result.WeightedLength)
	assert.Equal(t, 7, result.Permillage) // floor(1000/140)
	assert.True(t, result.Valid)
}

func TestParseTweet_NilConfigUsesDefault(t *testing.T) {
	assert.Equal(t, ParseTweet("hello", DefaultConfiguration()), ParseTweet("hello", nil))
}

func TestParseTweet_Empty(t *testing.T) {
	result := ParseTweet("", ConfigV2())
	assert.Equal(t, ParseResult{}, result)
	assert.False(t, result.Valid)
}

func TestParseTweet_URLCountsTransformedLength(t *testing.T) {
	// The URL counts as 23 characters no matter how long it really is.
	result := ParseTweet("See https://example.com/a/very/long/path/elsewhere", ConfigV2())
	assert.Equal(t, 4+23, result.WeightedLength)
	assert.True(t, result.Valid)
}

func TestParseTweet_TwoURLs(t *testing.T) {
	result := ParseTweet("https://example.com and https://example.org", ConfigV2())
	assert.Equal(t, 23+5+23, result.WeightedLength)
}

func TestParseTweet_CustomRanges(t *testing.T) {
	cfg, err := NewConfigurationBuilder().
		Version(2).
		MaxWeightedLength(280).
		Scale(100).
		DefaultWeight(100).
		Range(0x4E00, 0x9FFF, 200).
		Build()
	require.NoError(t, err)

	text := strings.Repeat("漢", 10) + strings.Repeat("a", 130)
	result := ParseTweet(text, cfg)
	assert.Equal(t, 150, result.WeightedLength)
	assert.True(t, result.Valid)
}

func TestParseTweet_EmojiSequenceCollapses(t *testing.T) {
	family := "\U0001F468\u200D\U0001F469\u200D\U0001F467\u200D\U0001F466"

	// Seven codepoints collapse into one default-weight unit.
	withEmoji := ParseTweet(family, ConfigV3())
	assert.Equal(t, 2, withEmoji.WeightedLength)
	assert.True(t, withEmoji.Valid)

	// Without emoji parsing every codepoint is weighed individually: four
	// pictographs at 200 plus three joiners at 100.
	withoutEmoji := ParseTweet(family, ConfigV2())
	assert.Equal(t, 11, withoutEmoji.WeightedLength)
}

func TestParseTweet_SingleEmoji(t *testing.T) {
	result := ParseTweet("\U0001F525", ConfigV3())
	assert.Equal(t, 2, result.WeightedLength)
	assert.True(t, result.Valid)
}

func TestParseTweet_InvalidCharacters(t *testing.T) {
	for _, text := range []string{
		"hi\u202Athere",
		"hi\uFFFEthere",
		"hi\u2066there",
	} {
		result := ParseTweet(text, ConfigV2())
		assert.False(t, result.Valid, "text %q must not be valid", text)
		assert.Positive(t, result.WeightedLength)
	}
}

func TestParseTweet_OverLimit(t *testing.T) {
	result := ParseTweet(strings.Repeat("a", 150), ConfigV1())
	assert.Equal(t, 150, result.WeightedLength)
	assert.False(t, result.Valid)
	assert.Equal(t, Range{0, 150}, result.DisplayTextRange)
	assert.Equal(t, Range{0, 140}, result.ValidTextRange)
}

func TestParseTweet_ExactLimit(t *testing.T) {
	assert.True(t, ParseTweet(strings.Repeat("a", 280), ConfigV2()).Valid)
	assert.False(t, ParseTweet(strings.Repeat("a", 281), ConfigV2()).Valid)
}

func TestParseTweet_Permillage(t *testing.T) {
	result := ParseTweet(strings.Repeat("a", 140), ConfigV2())
	assert.Equal(t, 500, result.Permillage)
}

func TestParseTweet_WeightedLengthMonotonic(t *testing.T) {
	// Appending text never shrinks the weighted length.
	text := "start 日本 @user #tag https://example.com 🔥 end"
	prev := 0
	runes := []rune(text)
	for i := range runes {
		cur := TweetLength(string(runes[:i+1]), ConfigV3())
		assert.GreaterOrEqual(t, cur, prev, "prefix of %d runes", i+1)
		prev = cur
	}
}

func TestTweetLength(t *testing.T) {
	assert.Equal(t, 5, TweetLength("Hello", ConfigV2()))
	assert.Equal(t, 0, TweetLength("", nil))
}

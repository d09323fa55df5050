package twittertext

import (
	"errors"
	"fmt"
	"sync"
)

// ErrInvalidConfiguration is wrapped by every configuration construction
// error, so a bad Configuration can never reach a parse call.
var ErrInvalidConfiguration = errors.New("twittertext: invalid configuration")

// CharacterRangeWeight assigns a weight to an inclusive codepoint range
// [Start, End]. Ranges in a Configuration are sorted by Start and do not
// overlap; codepoints outside every range use the default weight.
type CharacterRangeWeight struct {
	Start  int `json:"start" yaml:"start"`
	End    int `json:"end" yaml:"end"`
	Weight int `json:"weight" yaml:"weight"`
}

// Configuration drives the weighted-length engine. It is immutable once
// built and intended to be shared read-only across any number of concurrent
// ParseTweet calls; to change a field, build a new value.
type Configuration struct {
	Version              int
	MaxWeightedLength    int
	Scale                int
	DefaultWeight        int
	TransformedURLLength int
	EmojiParsingEnabled  bool
	Ranges               []CharacterRangeWeight
}

var (
	configV1   *Configuration
	configV2   *Configuration
	configV3   *Configuration
	configOnce sync.Once
)

func initConfigs() {
	configV1 = &Configuration{
		Version:              1,
		MaxWeightedLength:    140,
		Scale:                1,
		DefaultWeight:        1,
		TransformedURLLength: 23,
	}
	v2Ranges := []CharacterRangeWeight{
		{Start: 0, End: 4351, Weight: 100},
		{Start: 8192, End: 8205, Weight: 100},
		{Start: 8208, End: 8223, Weight: 100},
		{Start: 8242, End: 8247, Weight: 100},
	}
	configV2 = &Configuration{
		Version:              2,
		MaxWeightedLength:    280,
		Scale:                100,
		DefaultWeight:        200,
		TransformedURLLength: 23,
		Ranges:               v2Ranges,
	}
	configV3 = &Configuration{
		Version:              3,
		MaxWeightedLength:    280,
		Scale:                100,
		DefaultWeight:        200,
		TransformedURLLength: 23,
		EmojiParsingEnabled:  true,
		Ranges:               v2Ranges,
	}
}

// ConfigV1 returns the historical configuration: 140 characters, every
// codepoint weighing one.
func ConfigV1() *Configuration {
	configOnce.Do(initConfigs)
	return configV1
}

// ConfigV2 returns the 280-character configuration where most Latin-script
// codepoints weigh half a character.
func ConfigV2() *Configuration {
	configOnce.Do(initConfigs)
	return configV2
}

// ConfigV3 returns ConfigV2 plus emoji parsing: an emoji sequence of any
// length counts as a single default-weight unit.
func ConfigV3() *Configuration {
	configOnce.Do(initConfigs)
	return configV3
}

// DefaultConfiguration returns the configuration ParseTweet uses when given
// nil. Currently ConfigV3.
func DefaultConfiguration() *Configuration {
	return ConfigV3()
}

// ConfigurationBuilder assembles a Configuration, validating it at Build
// time. The zero builder starts from the historical defaults (140
// characters, unit weights, 23-character short URLs).
type ConfigurationBuilder struct {
	cfg Configuration
}

// NewConfigurationBuilder returns a builder seeded with the historical
// defaults.
func NewConfigurationBuilder() *ConfigurationBuilder {
	return &ConfigurationBuilder{cfg: Configuration{
		Version:              1,
		MaxWeightedLength:    140,
		Scale:                1,
		DefaultWeight:        1,
		TransformedURLLength: 23,
	}}
}

// Version sets the configuration version.
func (b *ConfigurationBuilder) Version(v int) *ConfigurationBuilder {
	b.cfg.Version = v
	return b
}

// MaxWeightedLength sets the maximum weighted length.
func (b *ConfigurationBuilder) MaxWeightedLength(n int) *ConfigurationBuilder {
	b.cfg.MaxWeightedLength = n
	return b
}

// Scale sets the divisor converting raw weight sums into characters.
func (b *ConfigurationBuilder) Scale(n int) *ConfigurationBuilder {
	b.cfg.Scale = n
	return b
}

// DefaultWeight sets the weight of codepoints not covered by any range.
func (b *ConfigurationBuilder) DefaultWeight(n int) *ConfigurationBuilder {
	b.cfg.DefaultWeight = n
	return b
}

// TransformedURLLength sets the fixed character count every URL entity
// contributes regardless of its literal length.
func (b *ConfigurationBuilder) TransformedURLLength(n int) *ConfigurationBuilder {
	b.cfg.TransformedURLLength = n
	return b
}

// EmojiParsing sets whether emoji sequences collapse to one weighted unit.
func (b *ConfigurationBuilder) EmojiParsing(enabled bool) *ConfigurationBuilder {
	b.cfg.EmojiParsingEnabled = enabled
	return b
}

// Range appends a codepoint range weight. Ranges must be added in ascending
// order of Start; Build rejects unsorted or overlapping ranges.
func (b *ConfigurationBuilder) Range(start, end, weight int) *ConfigurationBuilder {
	b.cfg.Ranges = append(b.cfg.Ranges, CharacterRangeWeight{Start: start, End: end, Weight: weight})
	return b
}

// Build validates and returns the configuration. The returned value is not
// retained by the builder.
func (b *ConfigurationBuilder) Build() (*Configuration, error) {
	cfg := b.cfg
	cfg.Ranges = append([]CharacterRangeWeight(nil), b.cfg.Ranges...)
	if cfg.MaxWeightedLength <= 0 {
		return nil, fmt.Errorf("%w: maxWeightedLength must be positive, got %d", ErrInvalidConfiguration, cfg.MaxWeightedLength)
	}
	if cfg.Scale <= 0 {
		return nil, fmt.Errorf("%w: scale must be positive, got %d", ErrInvalidConfiguration, cfg.Scale)
	}
	if cfg.DefaultWeight < 0 {
		return nil, fmt.Errorf("%w: defaultWeight must not be negative, got %d", ErrInvalidConfiguration, cfg.DefaultWeight)
	}
	if cfg.TransformedURLLength < 0 {
		return nil, fmt.Errorf("%w: transformedURLLength must not be negative, got %d", ErrInvalidConfiguration, cfg.TransformedURLLength)
	}
	for i, r := range cfg.Ranges {
		if r.End < r.Start {
			return nil, fmt.Errorf("%w: range %d ends (%d) before it starts (%d)", ErrInvalidConfiguration, i, r.End, r.Start)
		}
		if r.Weight < 0 {
			return nil, fmt.Errorf("%w: range %d has negative weight %d", ErrInvalidConfiguration, i, r.Weight)
		}
		if i > 0 && r.Start <= cfg.Ranges[i-1].End {
			return nil, fmt.Errorf("%w: ranges %d and %d overlap or are unsorted", ErrInvalidConfiguration, i-1, i)
		}
	}
	return &cfg, nil
}

// ShortURLConfig is the legacy two-field configuration shape exposed by the
// platform's help/configuration endpoint.
type ShortURLConfig struct {
	ShortURLLength      int `json:"short_url_length" yaml:"short_url_length"`
	ShortURLLengthHTTPS int `json:"short_url_length_https" yaml:"short_url_length_https"`
}

// ConfigurationFromPayload normalizes an external configuration shape into a
// validated Configuration. It accepts a Configuration (or pointer), the
// legacy ShortURLConfig two-field form, or a decoded mapping carrying either
// shape's field names; unknown or missing fields fall back to the historical
// defaults of 140 characters and 23-character short URLs.
func ConfigurationFromPayload(payload any) (*Configuration, error) {
	switch p := payload.(type) {
	case *Configuration:
		return rebuild(*p)
	case Configuration:
		return rebuild(p)
	case ShortURLConfig:
		return legacyConfiguration(p), nil
	case *ShortURLConfig:
		return legacyConfiguration(*p), nil
	case map[string]any:
		return configurationFromMap(p)
	default:
		return nil, fmt.Errorf("%w: unsupported payload type %T", ErrInvalidConfiguration, payload)
	}
}

// rebuild revalidates an externally assembled Configuration through the
// builder so invalid values fail here, not at parse time.
func rebuild(cfg Configuration) (*Configuration, error) {
	b := &ConfigurationBuilder{cfg: cfg}
	return b.Build()
}

func legacyConfiguration(p ShortURLConfig) *Configuration {
	cfg := *ConfigV1()
	if p.ShortURLLengthHTTPS > 0 {
		cfg.TransformedURLLength = p.ShortURLLengthHTTPS
	} else if p.ShortURLLength > 0 {
		cfg.TransformedURLLength = p.ShortURLLength
	}
	return &cfg
}

func configurationFromMap(m map[string]any) (*Configuration, error) {
	if _, rich := lookupInt(m, "maxWeightedLength", "max_weighted_length"); !rich {
		var legacy ShortURLConfig
		legacy.ShortURLLength, _ = lookupInt(m, "short_url_length", "shortUrlLength")
		legacy.ShortURLLengthHTTPS, _ = lookupInt(m, "short_url_length_https", "shortUrlLengthHttps")
		return legacyConfiguration(legacy), nil
	}

	b := NewConfigurationBuilder()
	if v, ok := lookupInt(m, "version"); ok {
		b.Version(v)
	}
	if v, ok := lookupInt(m, "maxWeightedLength", "max_weighted_length"); ok {
		b.MaxWeightedLength(v)
	}
	if v, ok := lookupInt(m, "scale"); ok {
		b.Scale(v)
	}
	if v, ok := lookupInt(m, "defaultWeight", "default_weight"); ok {
		b.DefaultWeight(v)
	}
	if v, ok := lookupInt(m, "transformedURLLength", "transformedUrlLength", "transformed_url_length"); ok {
		b.TransformedURLLength(v)
	}
	if v, ok := lookupBool(m, "emojiParsingEnabled", "emoji_parsing_enabled"); ok {
		b.EmojiParsing(v)
	}
	if raw, ok := lookupAny(m, "ranges"); ok {
		items, ok := raw.([]any)
		if !ok {
			return nil, fmt.Errorf("%w: ranges is %T, want a list", ErrInvalidConfiguration, raw)
		}
		for i, item := range items {
			rm, ok := item.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("%w: range %d is %T, want a mapping", ErrInvalidConfiguration, i, item)
			}
			start, ok1 := lookupInt(rm, "start")
			end, ok2 := lookupInt(rm, "end")
			weight, ok3 := lookupInt(rm, "weight")
			if !ok1 || !ok2 || !ok3 {
				return nil, fmt.Errorf("%w: range %d needs start, end and weight", ErrInvalidConfiguration, i)
			}
			b.Range(start, end, weight)
		}
	}
	return b.Build()
}

func lookupAny(m map[string]any, keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := m[k]; ok {
			return v, true
		}
	}
	return nil, false
}

func lookupInt(m map[string]any, keys ...string) (int, bool) {
	v, ok := lookupAny(m, keys...)
	if !ok {
		return 0, false
	}
	n, ok := intFromAny(v)
	return n, ok
}

func lookupBool(m map[string]any, keys ...string) (bool, bool) {
	v, ok := lookupAny(m, keys...)
	if !ok {
		return false, false
	}
	b, ok := v.(bool)
	return b, ok
}

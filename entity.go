package twittertext

import (
	"fmt"
	"sort"
)

// EntityType tags the kind of entity an extraction produced.
type EntityType int

const (
	// EntityMention is an @screen_name reference.
	EntityMention EntityType = iota
	// EntityList is an @screen_name/list-slug reference.
	EntityList
	// EntityHashtag is a #tag reference.
	EntityHashtag
	// EntityCashtag is a $SYMBOL reference.
	EntityCashtag
	// EntityURL is a URL occurrence.
	EntityURL
)

// String returns the string representation of EntityType.
func (t EntityType) String() string {
	switch t {
	case EntityMention:
		return "mention"
	case EntityList:
		return "list"
	case EntityHashtag:
		return "hashtag"
	case EntityCashtag:
		return "cashtag"
	case EntityURL:
		return "url"
	default:
		return "unknown"
	}
}

// Range is a half-open [Start, End) span measured in Unicode codepoints of
// the original text, never in bytes or UTF-16 units.
type Range struct {
	Start int
	End   int
}

// Len returns the number of codepoints the range covers.
func (r Range) Len() int { return r.End - r.Start }

// Overlaps reports whether r and o intersect.
func (r Range) Overlaps(o Range) bool { return r.Start < o.End && o.Start < r.End }

// Contains reports whether o lies entirely inside r.
func (r Range) Contains(o Range) bool { return o.Start >= r.Start && o.End <= r.End }

// Entity is one recognized occurrence inside a text. Entities are immutable
// value objects: the extractor creates them and the autolinker and length
// engine only read them.
type Entity struct {
	Type  EntityType
	Range Range
	// Text is the matched substring as it appears in the input, including
	// the leading @/#/$ symbol for mention, hashtag and cashtag entities.
	Text string
	// Value is the symbol-less payload: the screen name, the tag, the
	// cashtag symbol, or the URL itself.
	Value string
	// ListSlug holds the "/slug" part of a list reference, empty otherwise.
	ListSlug string
	// DisplayURL and ExpandedURL carry the shortener substitutions of an
	// externally supplied URL entity; both empty for extracted entities.
	DisplayURL  string
	ExpandedURL string
}

// ScreenName returns the screen name of a mention or list entity.
func (e Entity) ScreenName() string {
	if e.Type == EntityMention || e.Type == EntityList {
		return e.Value
	}
	return ""
}

// EntitiesFromPayload normalizes an externally supplied entity payload into
// an ordered entity list. Two shapes are accepted, mirroring a platform API
// response: an object graph ([]Entity) and a decoded JSON mapping with the
// conventional group keys "urls", "user_mentions", "hashtags" and "symbols",
// each holding items with an "indices" pair plus type-specific fields.
//
// A malformed item (missing indices, wrong arity, non-numeric offsets) is an
// error, never a silent drop.
func EntitiesFromPayload(payload any) ([]Entity, error) {
	switch p := payload.(type) {
	case []Entity:
		out := make([]Entity, len(p))
		copy(out, p)
		sort.SliceStable(out, func(i, j int) bool { return out[i].Range.Start < out[j].Range.Start })
		return out, nil
	case map[string]any:
		return entitiesFromMapPayload(p)
	default:
		return nil, fmt.Errorf("twittertext: unsupported entity payload type %T", payload)
	}
}

func entitiesFromMapPayload(groups map[string]any) ([]Entity, error) {
	var out []Entity
	for _, group := range []struct {
		key string
		typ EntityType
	}{
		{"urls", EntityURL},
		{"user_mentions", EntityMention},
		{"hashtags", EntityHashtag},
		{"symbols", EntityCashtag},
	} {
		raw, ok := groups[group.key]
		if !ok {
			continue
		}
		items, ok := raw.([]any)
		if !ok {
			return nil, fmt.Errorf("twittertext: entity group %q is %T, want a list", group.key, raw)
		}
		for i, item := range items {
			m, ok := item.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("twittertext: entity %q[%d] is %T, want a mapping", group.key, i, item)
			}
			e, err := entityFromItem(group.typ, m)
			if err != nil {
				return nil, fmt.Errorf("twittertext: entity %q[%d]: %w", group.key, i, err)
			}
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Range.Start < out[j].Range.Start })
	return out, nil
}

func entityFromItem(typ EntityType, item map[string]any) (Entity, error) {
	r, err := indicesFromItem(item)
	if err != nil {
		return Entity{}, err
	}
	e := Entity{Type: typ, Range: r}
	switch typ {
	case EntityURL:
		url, ok := stringField(item, "url")
		if !ok {
			return Entity{}, fmt.Errorf("missing url field")
		}
		e.Value = url
		e.Text = url
		e.DisplayURL, _ = stringField(item, "display_url")
		e.ExpandedURL, _ = stringField(item, "expanded_url")
	case EntityMention:
		name, ok := stringField(item, "screen_name")
		if !ok {
			return Entity{}, fmt.Errorf("missing screen_name field")
		}
		e.Value = name
		e.Text = "@" + name
	default:
		text, ok := stringField(item, "text")
		if !ok {
			return Entity{}, fmt.Errorf("missing text field")
		}
		e.Value = text
		if typ == EntityHashtag {
			e.Text = "#" + text
		} else {
			e.Text = "$" + text
		}
	}
	return e, nil
}

func indicesFromItem(item map[string]any) (Range, error) {
	raw, ok := item["indices"]
	if !ok {
		return Range{}, fmt.Errorf("missing indices")
	}
	pair, ok := raw.([]any)
	if !ok || len(pair) != 2 {
		return Range{}, fmt.Errorf("indices must be a [start, end) pair")
	}
	start, ok1 := intFromAny(pair[0])
	end, ok2 := intFromAny(pair[1])
	if !ok1 || !ok2 || start < 0 || end < start {
		return Range{}, fmt.Errorf("invalid indices %v", pair)
	}
	return Range{Start: start, End: end}, nil
}

func stringField(item map[string]any, key string) (string, bool) {
	v, ok := item[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

func intFromAny(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	default:
		return 0, false
	}
}

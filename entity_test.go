package twittertext

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntityTypeString(t *testing.T) {
	assert.Equal(t, "mention", EntityMention.String())
	assert.Equal(t, "list", EntityList.String())
	assert.Equal(t, "hashtag", EntityHashtag.String())
	assert.Equal(t, "cashtag", EntityCashtag.String())
	assert.Equal(t, "url", EntityURL.String())
	assert.Equal(t, "unknown", EntityType(99).String())
}

func TestRange(t *testing.T) {
	r := Range{Start: 2, End: 5}
	assert.Equal(t, 3, r.Len())
	assert.True(t, r.Overlaps(Range{4, 8}))
	assert.False(t, r.Overlaps(Range{5, 8})) // half-open, touching is not overlap
	assert.True(t, r.Contains(Range{3, 5}))
	assert.False(t, r.Contains(Range{3, 6}))
}

func TestEntityScreenName(t *testing.T) {
	mention := Entity{Type: EntityMention, Value: "alice"}
	assert.Equal(t, "alice", mention.ScreenName())

	list := Entity{Type: EntityList, Value: "alice", ListSlug: "/team"}
	assert.Equal(t, "alice", list.ScreenName())

	hashtag := Entity{Type: EntityHashtag, Value: "tag"}
	assert.Equal(t, "", hashtag.ScreenName())
}

func TestEntitiesFromPayload_Map(t *testing.T) {
	payload := map[string]any{
		"urls": []any{
			map[string]any{
				"url":          "https://t.co/abc",
				"display_url":  "example.com/pa…",
				"expanded_url": "https://example.com/path",
				"indices":      []any{10, 26},
			},
		},
		"user_mentions": []any{
			map[string]any{"screen_name": "alice", "indices": []any{0, 6}},
		},
		"hashtags": []any{
			map[string]any{"text": "go", "indices": []any{30, 33}},
		},
		"symbols": []any{
			map[string]any{"text": "TWTR", "indices": []any{40, 45}},
		},
	}

	entities, err := EntitiesFromPayload(payload)
	require.NoError(t, err)
	require.Len(t, entities, 4)

	// Sorted by start index regardless of group order.
	assert.Equal(t, EntityMention, entities[0].Type)
	assert.Equal(t, "@alice", entities[0].Text)
	assert.Equal(t, EntityURL, entities[1].Type)
	assert.Equal(t, "example.com/pa…", entities[1].DisplayURL)
	assert.Equal(t, "https://example.com/path", entities[1].ExpandedURL)
	assert.Equal(t, EntityHashtag, entities[2].Type)
	assert.Equal(t, "#go", entities[2].Text)
	assert.Equal(t, EntityCashtag, entities[3].Type)
	assert.Equal(t, "$TWTR", entities[3].Text)
}

func TestEntitiesFromPayload_Float64Indices(t *testing.T) {
	payload := map[string]any{
		"hashtags": []any{
			map[string]any{"text": "go", "indices": []any{float64(0), float64(3)}},
		},
	}
	entities, err := EntitiesFromPayload(payload)
	require.NoError(t, err)
	require.Len(t, entities, 1)
	assert.Equal(t, Range{0, 3}, entities[0].Range)
}

func TestEntitiesFromPayload_EntitySlice(t *testing.T) {
	in := []Entity{
		{Type: EntityHashtag, Range: Range{10, 14}, Value: "go"},
		{Type: EntityMention, Range: Range{0, 6}, Value: "alice"},
	}
	entities, err := EntitiesFromPayload(in)
	require.NoError(t, err)
	require.Len(t, entities, 2)
	assert.Equal(t, EntityMention, entities[0].Type)
	// The input slice is copied, not reordered in place.
	assert.Equal(t, EntityHashtag, in[0].Type)
}

func TestEntitiesFromPayload_Malformed(t *testing.T) {
	cases := []struct {
		name    string
		payload any
	}{
		{"unsupported type", "nope"},
		{"group not a list", map[string]any{"urls": "x"}},
		{"item not a mapping", map[string]any{"urls": []any{"x"}}},
		{"missing indices", map[string]any{
			"hashtags": []any{map[string]any{"text": "go"}},
		}},
		{"indices wrong arity", map[string]any{
			"hashtags": []any{map[string]any{"text": "go", "indices": []any{1}}},
		}},
		{"indices not numeric", map[string]any{
			"hashtags": []any{map[string]any{"text": "go", "indices": []any{"a", "b"}}},
		}},
		{"indices regressing", map[string]any{
			"hashtags": []any{map[string]any{"text": "go", "indices": []any{5, 2}}},
		}},
		{"url missing url field", map[string]any{
			"urls": []any{map[string]any{"indices": []any{0, 5}}},
		}},
		{"mention missing screen_name", map[string]any{
			"user_mentions": []any{map[string]any{"indices": []any{0, 5}}},
		}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := EntitiesFromPayload(c.payload)
			assert.Error(t, err)
		})
	}
}

package history

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/omnichat-ai/omnichat/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rec(conv, role, content string) models.Record {
	return models.Record{ConversationID: conv, Role: role, Content: content}
}

func TestGroupTitleFromFirstUserMessage(t *testing.T) {
	long := "Hello world this is a long message exceeding thirty chars"
	ix := Group([]models.Record{
		rec("c1", models.RoleUser, long),
		rec("c1", models.RoleAssistant, "hi"),
	})

	conv, ok := ix.Get("c1")
	require.True(t, ok)
	assert.Equal(t, long[:30], conv.Title)

	// A later, longer user message never retitles the conversation.
	ix = Group([]models.Record{
		rec("c1", models.RoleUser, "short"),
		rec("c1", models.RoleUser, long),
	})
	conv, _ = ix.Get("c1")
	assert.Equal(t, "short", conv.Title)
}

func TestGroupPlaceholderTitleWithoutUserMessage(t *testing.T) {
	ix := Group([]models.Record{
		rec("c1", models.RoleAssistant, "YouTube Summary: something"),
		rec("c1", models.RoleAssistant, "PDF Summary: something else"),
	})

	conv, ok := ix.Get("c1")
	require.True(t, ok)
	assert.Equal(t, PlaceholderTitle, conv.Title)
}

func TestGroupPrependsSystemMessage(t *testing.T) {
	ix := Group([]models.Record{
		rec("c1", models.RoleUser, "hello"),
		rec("c1", models.RoleAssistant, "hi"),
	})

	conv, ok := ix.Get("c1")
	require.True(t, ok)
	require.Len(t, conv.Messages, 3)
	assert.Equal(t, models.SystemMessage(), conv.Messages[0])
	assert.Equal(t, "hello", conv.Messages[1].Content)
	assert.Equal(t, "hi", conv.Messages[2].Content)
}

func TestGroupIsDeterministic(t *testing.T) {
	records := []models.Record{
		rec("c1", models.RoleUser, "a"),
		rec("c2", models.RoleUser, "b"),
		rec("c1", models.RoleAssistant, "c"),
		rec("c2", models.RoleAssistant, "d"),
	}

	first := Group(records)
	second := Group(records)
	assert.Equal(t, first, second)
}

func TestGroupInterleavedConversationsKeepTheirOwnOrder(t *testing.T) {
	interleaved := Group([]models.Record{
		rec("c1", models.RoleUser, "q1"),
		rec("c2", models.RoleUser, "other"),
		rec("c1", models.RoleAssistant, "a1"),
		rec("c1", models.RoleUser, "q2"),
		rec("c2", models.RoleAssistant, "reply"),
	})
	separate := Group([]models.Record{
		rec("c1", models.RoleUser, "q1"),
		rec("c1", models.RoleAssistant, "a1"),
		rec("c1", models.RoleUser, "q2"),
		rec("c2", models.RoleUser, "other"),
		rec("c2", models.RoleAssistant, "reply"),
	})

	for _, id := range []string{"c1", "c2"} {
		a, ok := interleaved.Get(id)
		require.True(t, ok)
		b, ok := separate.Get(id)
		require.True(t, ok)
		assert.Equal(t, b.Messages, a.Messages)
		assert.Equal(t, b.Title, a.Title)
	}
}

func TestAllReturnsFirstAppearanceOrder(t *testing.T) {
	ix := Group([]models.Record{
		rec("c2", models.RoleUser, "second first"),
		rec("c1", models.RoleUser, "then this"),
		rec("c2", models.RoleAssistant, "reply"),
	})

	all := ix.All()
	require.Len(t, all, 2)
	assert.Equal(t, "c2", all[0].ID)
	assert.Equal(t, "c1", all[1].ID)
}

func TestTitleTruncation(t *testing.T) {
	assert.Equal(t, "short", Title("short"))
	assert.Equal(t, strings.Repeat("x", 30), Title(strings.Repeat("x", 45)))

	// Truncation counts characters, so multi-byte scripts are never cut
	// mid-rune.
	telugu := "నమస్కారం మీరు ఎలా ఉన్నారు ఈరోజు బాగున్నారా"
	got := Title(telugu)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, 30, utf8.RuneCountInString(got))
	assert.Equal(t, string([]rune(telugu)[:30]), got)

	assert.Equal(t, strings.Repeat("న", 30), Title(strings.Repeat("న", 45)))
}

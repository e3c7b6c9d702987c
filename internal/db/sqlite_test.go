package db

import (
	"path/filepath"
	"testing"

	"github.com/omnichat-ai/omnichat/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *Database {
	t.Helper()
	database, err := New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database
}

func TestCreateUser(t *testing.T) {
	database := newTestDB(t)

	require.NoError(t, database.CreateUser("alice", "secret"))

	assert.ErrorIs(t, database.CreateUser("alice", "other"), ErrUserExists)
	assert.ErrorIs(t, database.CreateUser("", "secret"), ErrEmptyCredentials)
	assert.ErrorIs(t, database.CreateUser("bob", ""), ErrEmptyCredentials)
}

func TestVerifyUser(t *testing.T) {
	database := newTestDB(t)
	require.NoError(t, database.CreateUser("alice", "secret"))

	ok, err := database.VerifyUser("alice", "secret")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = database.VerifyUser("alice", "wrong")
	require.NoError(t, err)
	assert.False(t, ok)

	// Lookup is exact and case sensitive.
	ok, err = database.VerifyUser("Alice", "secret")
	require.NoError(t, err)
	assert.False(t, ok)

	// Fail closed on empty input.
	ok, err = database.VerifyUser("", "")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = database.VerifyUser("nobody", "secret")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAppendMessageMintsConversationID(t *testing.T) {
	database := newTestDB(t)

	convID, err := database.AppendMessage("alice", "", models.RoleUser, "hello")
	require.NoError(t, err)
	require.NotEmpty(t, convID)

	// Subsequent appends reuse the id they are given.
	got, err := database.AppendMessage("alice", convID, models.RoleAssistant, "hi")
	require.NoError(t, err)
	assert.Equal(t, convID, got)
}

func TestListMessagesPreservesInsertionOrder(t *testing.T) {
	database := newTestDB(t)

	convID, err := database.AppendMessage("alice", "", models.RoleUser, "first")
	require.NoError(t, err)
	_, err = database.AppendMessage("alice", convID, models.RoleAssistant, "second")
	require.NoError(t, err)
	_, err = database.AppendMessage("alice", convID, models.RoleUser, "third")
	require.NoError(t, err)

	// Another user's records never leak in.
	_, err = database.AppendMessage("bob", "", models.RoleUser, "bob's message")
	require.NoError(t, err)

	records, err := database.ListMessages("alice")
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"first", "second", "third"}, contents(records))
	for _, rec := range records {
		assert.Equal(t, convID, rec.ConversationID)
	}
}

func TestDeleteConversationRemovesExactlyOne(t *testing.T) {
	database := newTestDB(t)

	c1, err := database.AppendMessage("alice", "", models.RoleUser, "in c1")
	require.NoError(t, err)
	c2, err := database.AppendMessage("alice", "", models.RoleUser, "in c2")
	require.NoError(t, err)
	_, err = database.AppendMessage("alice", c2, models.RoleAssistant, "also in c2")
	require.NoError(t, err)

	require.NoError(t, database.DeleteConversation(c1))

	records, err := database.ListMessages("alice")
	require.NoError(t, err)
	require.Len(t, records, 2)
	for _, rec := range records {
		assert.Equal(t, c2, rec.ConversationID)
	}
}

func contents(records []models.Record) []string {
	out := make([]string, 0, len(records))
	for _, rec := range records {
		out = append(out, rec.Content)
	}
	return out
}

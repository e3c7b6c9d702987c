package db

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"
	"github.com/omnichat-ai/omnichat/internal/models"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
    username TEXT PRIMARY KEY,
    password TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS chats (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    username TEXT NOT NULL,
    chat_id TEXT NOT NULL,
    role TEXT NOT NULL,
    content TEXT NOT NULL,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS chats_username ON chats(username);
CREATE INDEX IF NOT EXISTS chats_chat_id ON chats(chat_id);`

var (
	ErrEmptyCredentials = errors.New("username and password must not be empty")
	ErrUserExists       = errors.New("username already exists")
)

type Database struct {
	db *sql.DB
}

func New(dbPath string) (*Database, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(schema); err != nil {
		return nil, err
	}

	return &Database{db: db}, nil
}

func (db *Database) Close() error {
	return db.db.Close()
}

// hashPassword is a one-way digest, compared exactly on login. No salting or
// rotation here.
func hashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

func (db *Database) CreateUser(username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return ErrEmptyCredentials
	}

	_, err := db.db.Exec(
		"INSERT INTO users (username, password) VALUES (?, ?)",
		username, hashPassword(password),
	)
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
		return ErrUserExists
	}
	return err
}

// VerifyUser reports whether the supplied credentials match a stored user.
// Empty input never matches; the username lookup is exact and case
// sensitive.
func (db *Database) VerifyUser(username, password string) (bool, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return false, nil
	}

	var stored string
	err := db.db.QueryRow(
		"SELECT password FROM users WHERE username = ?",
		username,
	).Scan(&stored)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return stored == hashPassword(password), nil
}

// AppendMessage is the only write path into the conversation log. An empty
// conversationID mints a fresh one; the id actually used is returned.
func (db *Database) AppendMessage(username, conversationID, role, content string) (string, error) {
	if conversationID == "" {
		conversationID = uuid.NewString()
	}

	_, err := db.db.Exec(
		"INSERT INTO chats (username, chat_id, role, content) VALUES (?, ?, ?, ?)",
		username, conversationID, role, content,
	)
	if err != nil {
		return "", fmt.Errorf("failed to append message: %w", err)
	}
	return conversationID, nil
}

// ListMessages returns every log record for the user in insertion order.
func (db *Database) ListMessages(username string) ([]models.Record, error) {
	rows, err := db.db.Query(`
        SELECT chat_id, role, content
        FROM chats
        WHERE username = ?
        ORDER BY id`,
		username,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer rows.Close()

	records := make([]models.Record, 0)
	for rows.Next() {
		var rec models.Record
		if err := rows.Scan(&rec.ConversationID, &rec.Role, &rec.Content); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// DeleteConversation purges every record with the given conversation id.
// Note: no ownership check happens at this layer; callers must verify that
// the id belongs to the acting user first.
func (db *Database) DeleteConversation(conversationID string) error {
	_, err := db.db.Exec("DELETE FROM chats WHERE chat_id = ?", conversationID)
	return err
}

// internal/db/store.go
package db

import (
	"database/sql"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

type Store struct {
	db *sql.DB
}

type Conversation struct {
	ID         string
	Name       string
	Template   string
	CreatedAt  time.Time
	UpdatedAt  time.Time
	Status     string // active, ended, stopped, failed
	StopReason string
}

type Message struct {
	ID             int64
	ConversationID string
	Actor          string // participant display name, or System
	Content        string
	CreatedAt      time.Time
}

func Open() (*Store, error) {
	dataDir, err := dataDir()
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(dataDir, "conversations.db")
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, err
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, err
	}

	return store, nil
}

func dataDir() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "backrooms"), nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS conversations (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		template TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		status TEXT DEFAULT 'active',
		stop_reason TEXT
	);

	CREATE TABLE IF NOT EXISTS messages (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		conversation_id TEXT NOT NULL REFERENCES conversations(id),
		actor TEXT NOT NULL,
		content TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_messages_conversation ON messages(conversation_id);
	`
	_, err := s.db.Exec(schema)
	return err
}

func (s *Store) Close() error {
	return s.db.Close()
}

// CreateConversation records a new run.
func (s *Store) CreateConversation(id, name, tmpl string) error {
	_, err := s.db.Exec(
		`INSERT INTO conversations (id, name, template) VALUES (?, ?, ?)`,
		id, name, tmpl,
	)
	return err
}

// GetConversation retrieves a conversation by ID.
func (s *Store) GetConversation(id string) (*Conversation, error) {
	row := s.db.QueryRow(
		`SELECT id, name, template, created_at, updated_at, status, stop_reason
		 FROM conversations WHERE id = ?`, id,
	)

	var c Conversation
	var tmpl, reason sql.NullString
	err := row.Scan(&c.ID, &c.Name, &tmpl, &c.CreatedAt, &c.UpdatedAt, &c.Status, &reason)
	if err != nil {
		return nil, err
	}
	c.Template = tmpl.String
	c.StopReason = reason.String
	return &c, nil
}

// ListConversations returns all conversations ordered by update time.
func (s *Store) ListConversations() ([]Conversation, error) {
	rows, err := s.db.Query(
		`SELECT id, name, template, created_at, updated_at, status, stop_reason
		 FROM conversations ORDER BY updated_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var conversations []Conversation
	for rows.Next() {
		var c Conversation
		var tmpl, reason sql.NullString
		if err := rows.Scan(&c.ID, &c.Name, &tmpl, &c.CreatedAt, &c.UpdatedAt, &c.Status, &reason); err != nil {
			return nil, err
		}
		c.Template = tmpl.String
		c.StopReason = reason.String
		conversations = append(conversations, c)
	}
	return conversations, rows.Err()
}

// AddMessage appends a finalized message to a conversation.
func (s *Store) AddMessage(conversationID, actor, content string) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO messages (conversation_id, actor, content) VALUES (?, ?, ?)`,
		conversationID, actor, content,
	)
	if err != nil {
		return 0, err
	}

	s.db.Exec(`UPDATE conversations SET updated_at = CURRENT_TIMESTAMP WHERE id = ?`, conversationID)

	return result.LastInsertId()
}

// GetMessages retrieves all messages for a conversation in order.
func (s *Store) GetMessages(conversationID string) ([]Message, error) {
	rows, err := s.db.Query(
		`SELECT id, conversation_id, actor, content, created_at
		 FROM messages WHERE conversation_id = ? ORDER BY id`,
		conversationID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []Message
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.Actor, &m.Content, &m.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

// UpdateStatus marks how a conversation ended.
func (s *Store) UpdateStatus(id, status, reason string) error {
	_, err := s.db.Exec(
		`UPDATE conversations SET status = ?, stop_reason = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		status, reason, id,
	)
	return err
}

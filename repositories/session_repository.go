package repositories

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/katsunaka/court-booking/models"
)

type SessionRepository interface {
	// Load reads the persisted session flag. A missing file is not an
	// error: it means nobody has logged in yet.
	Load() (models.Session, error)
	Save(session models.Session) error
}

type fileSessionRepository struct {
	path string
}

func NewFileSessionRepository(path string) SessionRepository {
	return &fileSessionRepository{path: path}
}

func (r *fileSessionRepository) Load() (models.Session, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return models.Session{}, nil
		}
		return models.Session{}, fmt.Errorf("failed to read session file: %w", err)
	}

	var session models.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return models.Session{}, fmt.Errorf("failed to parse session file: %w", err)
	}
	return session, nil
}

func (r *fileSessionRepository) Save(session models.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := os.WriteFile(r.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return nil
}

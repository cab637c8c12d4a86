package db

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Table file names inside the data directory.
const (
	BookingsFile     = "bookings.csv"
	ParticipantsFile = "participants.csv"
)

// Column schemas, in on-disk order.
var (
	BookingHeader     = []string{"id", "facility", "court_number", "start_time", "end_time", "latest_file"}
	ParticipantHeader = []string{"booking_id", "name", "contact"}
)

var ErrMalformedTable = errors.New("table file is malformed")

// Store владеет двумя CSV-таблицами на диске. Every load reads a table in
// full and every save rewrites it in full; the mutex serializes each
// read-modify-write cycle so concurrent requests cannot lose updates.
type Store struct {
	dir string
	mu  sync.Mutex
}

// Open prepares the data directory and creates header-only table files when
// they do not exist yet. An existing file is left untouched.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory %s: %w", dir, err)
	}

	s := &Store{dir: dir}
	if err := s.ensureTable(BookingsFile, BookingHeader); err != nil {
		return nil, err
	}
	if err := s.ensureTable(ParticipantsFile, ParticipantHeader); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) ensureTable(file string, header []string) error {
	path := filepath.Join(s.dir, file)
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to stat table %s: %w", file, err)
	}
	return s.writeFile(path, header, nil)
}

// BookingsPath returns the absolute-ish path of the bookings table file.
func (s *Store) BookingsPath() string { return filepath.Join(s.dir, BookingsFile) }

// ParticipantsPath returns the path of the participants table file.
func (s *Store) ParticipantsPath() string { return filepath.Join(s.dir, ParticipantsFile) }

// Load reads the whole table, validates the header row against the expected
// schema and returns the data rows. An empty table is valid.
func (s *Store) Load(file string, header []string) ([][]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(file, header)
}

// Save rewrites the whole table with the given rows under the schema header.
func (s *Store) Save(file string, header []string, rows [][]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeFile(filepath.Join(s.dir, file), header, rows)
}

// Update runs a full read-modify-write cycle under the store lock: fn
// receives the current rows and returns the rows to persist.
func (s *Store) Update(file string, header []string, fn func(rows [][]string) ([][]string, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.load(file, header)
	if err != nil {
		return err
	}
	next, err := fn(rows)
	if err != nil {
		return err
	}
	return s.writeFile(filepath.Join(s.dir, file), header, next)
}

func (s *Store) load(file string, header []string) ([][]string, error) {
	path := filepath.Join(s.dir, file)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open table %s: %w", file, err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read table %s: %w: %v", file, ErrMalformedTable, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("table %s has no header row: %w", file, ErrMalformedTable)
	}
	if !equalHeader(records[0], header) {
		return nil, fmt.Errorf("table %s has unexpected columns %v: %w", file, records[0], ErrMalformedTable)
	}
	return records[1:], nil
}

// writeFile persists header+rows through a temp file and rename, so a crash
// mid-write never leaves a half-written table behind.
func (s *Store) writeFile(path string, header []string, rows [][]string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp table file: %w", err)
	}
	tmpName := tmp.Name()

	w := csv.NewWriter(tmp)
	if err := w.Write(header); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write table header: %w", err)
	}
	if err := w.WriteAll(rows); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write table rows: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to flush table file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp table file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace table file %s: %w", path, err)
	}
	return nil
}

func equalHeader(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range want {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

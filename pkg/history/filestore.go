package history

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/cardioscope-ai/riskscore/pkg/common/models"
	"github.com/google/uuid"
)

var fileHeader = []string{"id", "timestamp", "name", "age_years", "gender", "probability_percent", "risk_level"}

// FileStore keeps history in a single comma-delimited UTF-8 file with a
// header row. Every mutation is a read-modify-rewrite through a temp file and
// rename, guarded by a mutex: the usage model is single-writer, and the lock
// makes that explicit rather than assumed.
type FileStore struct {
	path string
	mu   sync.Mutex
}

func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, fmt.Errorf("history file path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return &FileStore{path: path}, nil
}

func (s *FileStore) Append(ctx context.Context, record models.HistoryRecord, _ map[string]interface{}) (models.HistoryRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	if record.Timestamp.IsZero() {
		record.Timestamp = time.Now().UTC()
	}

	records, err := s.readAll()
	if err != nil {
		return models.HistoryRecord{}, err
	}
	records = append(records, record)
	if err := s.writeAll(records); err != nil {
		return models.HistoryRecord{}, err
	}
	return record, nil
}

func (s *FileStore) List(ctx context.Context) ([]models.HistoryRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readAll()
}

func (s *FileStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.readAll()
	if err != nil {
		return err
	}
	kept := records[:0]
	found := false
	for _, r := range records {
		if r.ID == id {
			found = true
			continue
		}
		kept = append(kept, r)
	}
	if !found {
		return fmt.Errorf("id %s: %w", id, ErrRecordNotFound)
	}
	return s.writeAll(kept)
}

func (s *FileStore) DeleteAt(ctx context.Context, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.readAll()
	if err != nil {
		return err
	}
	if index < 0 || index >= len(records) {
		return fmt.Errorf("index %d with %d rows: %w", index, len(records), ErrIndexOutOfRange)
	}
	records = append(records[:index], records[index+1:]...)
	return s.writeAll(records)
}

func (s *FileStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (s *FileStore) readAll() ([]models.HistoryRecord, error) {
	file, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []models.HistoryRecord{}, nil
		}
		return nil, err
	}
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("corrupt history file: %w", err)
	}
	if len(rows) == 0 {
		return []models.HistoryRecord{}, nil
	}

	records := make([]models.HistoryRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		record, err := parseRow(row)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

func (s *FileStore) writeAll(records []models.HistoryRecord) error {
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".history-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	writer := csv.NewWriter(tmp)
	if err := writer.Write(fileHeader); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	for _, r := range records {
		row := []string{
			r.ID,
			r.Timestamp.UTC().Format(time.RFC3339),
			r.Name,
			strconv.Itoa(r.AgeYears),
			r.Gender,
			strconv.Itoa(r.ProbabilityPercent),
			r.RiskLevel,
		}
		if err := writer.Write(row); err != nil {
			tmp.Close()
			os.Remove(tmpName)
			return err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, s.path)
}

func parseRow(row []string) (models.HistoryRecord, error) {
	if len(row) != len(fileHeader) {
		return models.HistoryRecord{}, fmt.Errorf("history row has %d columns, want %d", len(row), len(fileHeader))
	}
	timestamp, err := time.Parse(time.RFC3339, row[1])
	if err != nil {
		return models.HistoryRecord{}, fmt.Errorf("bad timestamp '%s': %w", row[1], err)
	}
	age, err := strconv.Atoi(row[3])
	if err != nil {
		return models.HistoryRecord{}, fmt.Errorf("bad age '%s': %w", row[3], err)
	}
	percent, err := strconv.Atoi(row[5])
	if err != nil {
		return models.HistoryRecord{}, fmt.Errorf("bad probability '%s': %w", row[5], err)
	}
	return models.HistoryRecord{
		ID:                 row[0],
		Timestamp:          timestamp,
		Name:               row[2],
		AgeYears:           age,
		Gender:             row[4],
		ProbabilityPercent: percent,
		RiskLevel:          row[6],
	}, nil
}

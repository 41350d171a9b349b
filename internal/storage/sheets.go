package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/worksheet-lab/ruiji/internal/models"
	"gopkg.in/yaml.v3"
)

const sheetsFile = "sheets.yaml"

type sheetsDocument struct {
	Sheets []models.SavedSheet `yaml:"sheets"`
}

// SheetStore is an append-only list of saved worksheets backed by a YAML file.
// Sheets are keyed by their creation timestamp and can only be appended or deleted.
type SheetStore struct {
	path string
	mu   sync.Mutex
	now  func() time.Time
}

func NewSheetStore(dataDir string) *SheetStore {
	return &SheetStore{
		path: filepath.Join(dataDir, sheetsFile),
		now:  time.Now,
	}
}

// Append assigns an ID and creation time to sheet and adds it to the end of the list
func (s *SheetStore) Append(sheet models.SavedSheet) (models.SavedSheet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sheets, err := s.load()
	if err != nil {
		return sheet, err
	}

	created := s.now()
	id := strconv.FormatInt(created.UnixMilli(), 10)
	// two appends in the same millisecond
	for containsID(sheets, id) {
		created = created.Add(time.Millisecond)
		id = strconv.FormatInt(created.UnixMilli(), 10)
	}
	sheet.ID = id
	sheet.CreatedAt = created

	sheets = append(sheets, sheet)
	if err := s.save(sheets); err != nil {
		return sheet, err
	}
	return sheet, nil
}

func (s *SheetStore) List() ([]models.SavedSheet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *SheetStore) Get(id string) (models.SavedSheet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sheets, err := s.load()
	if err != nil {
		return models.SavedSheet{}, err
	}
	for _, sheet := range sheets {
		if sheet.ID == id {
			return sheet, nil
		}
	}
	return models.SavedSheet{}, fmt.Errorf("sheet %s: %w", id, ErrNotFound)
}

func (s *SheetStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sheets, err := s.load()
	if err != nil {
		return err
	}

	kept := make([]models.SavedSheet, 0, len(sheets))
	for _, sheet := range sheets {
		if sheet.ID != id {
			kept = append(kept, sheet)
		}
	}
	if len(kept) == len(sheets) {
		return fmt.Errorf("sheet %s: %w", id, ErrNotFound)
	}
	return s.save(kept)
}

func (s *SheetStore) load() ([]models.SavedSheet, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []models.SavedSheet{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read saved sheets: %w", err)
	}

	var doc sheetsDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse saved sheets: %w", err)
	}
	if doc.Sheets == nil {
		doc.Sheets = []models.SavedSheet{}
	}
	return doc.Sheets, nil
}

func (s *SheetStore) save(sheets []models.SavedSheet) error {
	data, err := yaml.Marshal(sheetsDocument{Sheets: sheets})
	if err != nil {
		return fmt.Errorf("failed to marshal saved sheets: %w", err)
	}
	return writeFileAtomic(s.path, data, 0644)
}

func containsID(sheets []models.SavedSheet, id string) bool {
	for _, sheet := range sheets {
		if sheet.ID == id {
			return true
		}
	}
	return false
}

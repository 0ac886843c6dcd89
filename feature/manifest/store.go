package manifest

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrNotFound is returned when a manifest id is unknown.
var ErrNotFound = errors.New("manifest not found")

// insertBatchSize bounds the rows per INSERT for large key lists.
const insertBatchSize = 1000

// Store reads and writes manifests.
type Store struct {
	db *gorm.DB
}

// NewStore creates a manifest store on db.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Migrate creates or updates the manifest tables.
func (s *Store) Migrate() error {
	if err := s.db.AutoMigrate(&Manifest{}, &Key{}); err != nil {
		return fmt.Errorf("failed to migrate manifest tables: %w", err)
	}
	return nil
}

// Save stores keys resolved from patterns in one transaction.
func (s *Store) Save(ctx context.Context, bucket string, patterns, keys []string) (*Manifest, error) {
	m := &Manifest{
		ID:       uuid.NewString(),
		Bucket:   bucket,
		Patterns: strings.Join(patterns, patternSeparator),
		KeyCount: len(keys),
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(m).Error; err != nil {
			return err
		}
		for start := 0; start < len(keys); start += insertBatchSize {
			end := min(start+insertBatchSize, len(keys))
			rows := make([]Key, 0, end-start)
			for i := start; i < end; i++ {
				rows = append(rows, Key{ManifestID: m.ID, Position: i, Key: keys[i]})
			}
			if err := tx.Create(&rows).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save manifest: %w", err)
	}
	return m, nil
}

// Get loads a manifest and its keys in resolution order.
func (s *Store) Get(ctx context.Context, id string) (*Detail, error) {
	db := s.db.WithContext(ctx)

	var m Manifest
	if err := db.Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load manifest: %w", err)
	}

	var rows []Key
	if err := db.Where("manifest_id = ?", id).Order("position").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load manifest keys: %w", err)
	}

	keys := make([]string, 0, len(rows))
	for _, r := range rows {
		keys = append(keys, r.Key)
	}

	return &Detail{
		ID:        m.ID,
		Bucket:    m.Bucket,
		Patterns:  m.PatternList(),
		KeyCount:  m.KeyCount,
		CreatedAt: m.CreatedAt,
		Keys:      keys,
	}, nil
}

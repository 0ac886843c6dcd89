package manifest

import (
	"strings"
	"time"
)

// patternSeparator joins patterns in the patterns column. Patterns never
// contain newlines.
const patternSeparator = "\n"

// Manifest is one stored resolution.
type Manifest struct {
	ID        string    `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	Bucket    string    `gorm:"column:bucket;type:varchar(255);not null" json:"bucket"`
	Patterns  string    `gorm:"column:patterns;type:text;not null" json:"-"`
	KeyCount  int       `gorm:"column:key_count;type:int;not null" json:"key_count"`
	CreatedAt time.Time `gorm:"column:created_at;type:datetime" json:"created_at"`
}

// TableName overrides the default table name.
func (Manifest) TableName() string {
	return "manifests"
}

// PatternList returns the patterns the manifest was resolved from.
func (m Manifest) PatternList() []string {
	if m.Patterns == "" {
		return []string{}
	}
	return strings.Split(m.Patterns, patternSeparator)
}

// Key is one resolved key of a manifest. Position preserves the sorted order.
type Key struct {
	ManifestID string `gorm:"column:manifest_id;type:varchar(36);primaryKey"`
	Position   int    `gorm:"column:position;type:int;primaryKey;autoIncrement:false"`
	Key        string `gorm:"column:object_key;type:text;not null"`
}

// TableName overrides the default table name.
func (Key) TableName() string {
	return "manifest_keys"
}

// Detail is the API view of a manifest.
type Detail struct {
	ID        string    `json:"id"`
	Bucket    string    `json:"bucket"`
	Patterns  []string  `json:"patterns"`
	KeyCount  int       `json:"key_count"`
	CreatedAt time.Time `json:"created_at"`
	Keys      []string  `json:"keys"`
}

// Models returns the tables owned by this package.
func Models() []any {
	return []any{Manifest{}, Key{}}
}

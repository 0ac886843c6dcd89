package manifest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// setupMockDB creates a mock GORM DB for testing.
func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func TestStore_Save(t *testing.T) {
	db, mock := setupMockDB(t)
	store := NewStore(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `manifests`").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO `manifest_keys`").WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	m, err := store.Save(context.Background(), "ai2-llm", []string{"a/*", "b/*/f"}, []string{"a/1", "b/x/f"})
	require.NoError(t, err)
	assert.NotEmpty(t, m.ID)
	assert.Equal(t, "ai2-llm", m.Bucket)
	assert.Equal(t, 2, m.KeyCount)
	assert.Equal(t, []string{"a/*", "b/*/f"}, m.PatternList())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Save_NoKeys(t *testing.T) {
	db, mock := setupMockDB(t)
	store := NewStore(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `manifests`").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	m, err := store.Save(context.Background(), "ai2-llm", []string{"empty/*"}, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, m.KeyCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Save_RollsBackOnError(t *testing.T) {
	db, mock := setupMockDB(t)
	store := NewStore(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `manifests`").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO `manifest_keys`").WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	m, err := store.Save(context.Background(), "ai2-llm", []string{"a/*"}, []string{"a/1"})
	assert.Error(t, err)
	assert.Nil(t, m)
	assert.Contains(t, err.Error(), "disk full")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Get(t *testing.T) {
	db, mock := setupMockDB(t)
	store := NewStore(db)

	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT \\* FROM `manifests` WHERE id = \\?").
		WillReturnRows(sqlmock.NewRows([]string{"id", "bucket", "patterns", "key_count", "created_at"}).
			AddRow("m-1", "ai2-llm", "a/*\nb/*", 2, created))
	mock.ExpectQuery("SELECT \\* FROM `manifest_keys` WHERE manifest_id = \\?").
		WillReturnRows(sqlmock.NewRows([]string{"manifest_id", "position", "object_key"}).
			AddRow("m-1", 0, "a/1").
			AddRow("m-1", 1, "b/1"))

	detail, err := store.Get(context.Background(), "m-1")
	require.NoError(t, err)
	assert.Equal(t, "m-1", detail.ID)
	assert.Equal(t, []string{"a/*", "b/*"}, detail.Patterns)
	assert.Equal(t, []string{"a/1", "b/1"}, detail.Keys)
	assert.Equal(t, created, detail.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Get_NotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	store := NewStore(db)

	mock.ExpectQuery("SELECT \\* FROM `manifests`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "bucket", "patterns", "key_count", "created_at"}))

	detail, err := store.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Nil(t, detail)
}

func TestManifest_PatternList(t *testing.T) {
	assert.Equal(t, []string{}, Manifest{}.PatternList())
	assert.Equal(t, []string{"a/*"}, Manifest{Patterns: "a/*"}.PatternList())
}

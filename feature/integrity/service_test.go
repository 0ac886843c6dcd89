package integrity

import (
	"context"
	"strings"
	"testing"

	"object-resolver/core/metrics"
	"object-resolver/core/storage"
	"object-resolver/core/storage/mocks"
	"object-resolver/feature/manifest"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
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

type mockManifestReader struct {
	mock.Mock
}

func (m *mockManifestReader) Get(ctx context.Context, id string) (*manifest.Detail, error) {
	args := m.Called(ctx, id)
	if d, ok := args.Get(0).(*manifest.Detail); ok {
		return d, args.Error(1)
	}
	return nil, args.Error(1)
}

func TestService_Structure(t *testing.T) {
	mockClient := new(mocks.Client)
	logger := zap.NewNop()
	svc := NewService(mockClient, "test-bucket", []string{"logs/", "docs/"}, logger, nil, nil, nil)

	t.Run("CheckStructure", func(t *testing.T) {
		mockClient.On("BucketExists", mock.Anything, "test-bucket").Return(true, nil)
		mockClient.On("ListPage", mock.Anything, "test-bucket", mock.Anything).Return(&storage.Page{}, nil)

		missing, err := svc.CheckStructure(context.Background())
		assert.NoError(t, err)
		assert.Equal(t, []string{"logs/", "docs/"}, missing)
	})

	t.Run("FixStructure", func(t *testing.T) {
		mockClient.On("PutObject", mock.Anything, "test-bucket", mock.Anything, mock.Anything, int64(0)).Return(nil)
		fixed, err := svc.FixStructure(context.Background(), []string{"logs/"})
		assert.NoError(t, err)
		assert.Equal(t, []string{"logs/"}, fixed)
	})
}

func TestService_CheckManifest(t *testing.T) {
	t.Run("No Database", func(t *testing.T) {
		svc := NewService(new(mocks.Client), "test-bucket", nil, zap.NewNop(), nil, nil, nil)
		_, err := svc.CheckManifest(context.Background(), "m-1")
		assert.ErrorIs(t, err, ErrNoDatabase)
	})

	t.Run("Uses Manifest Bucket", func(t *testing.T) {
		reader := new(mockManifestReader)
		reader.On("Get", mock.Anything, "m-1").Return(&manifest.Detail{
			ID:     "m-1",
			Bucket: "recorded-bucket",
			Keys:   []string{"a", "b"},
		}, nil)

		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "recorded-bucket").Return(true, nil)
		mockClient.On("StatObject", mock.Anything, "recorded-bucket", "a").Return(storage.ObjectInfo{}, nil)
		mockClient.On("StatObject", mock.Anything, "recorded-bucket", "b").
			Return(storage.ObjectInfo{}, &storage.Error{Op: "stat", Err: storage.ErrNotFound})

		svc := NewService(mockClient, "test-bucket", nil, zap.NewNop(), nil, reader, nil)
		report, err := svc.CheckManifest(context.Background(), "m-1")

		require.NoError(t, err)
		assert.Equal(t, &ManifestReport{ID: "m-1", Bucket: "recorded-bucket", Total: 2, Missing: []string{"b"}}, report)
	})

	t.Run("Unknown Manifest", func(t *testing.T) {
		reader := new(mockManifestReader)
		reader.On("Get", mock.Anything, "nope").Return(nil, manifest.ErrNotFound)

		svc := NewService(new(mocks.Client), "test-bucket", nil, zap.NewNop(), nil, reader, nil)
		_, err := svc.CheckManifest(context.Background(), "nope")
		assert.ErrorIs(t, err, manifest.ErrNotFound)
	})
}

func TestService_CheckSchema(t *testing.T) {
	t.Run("No Database", func(t *testing.T) {
		svc := NewService(new(mocks.Client), "test-bucket", nil, zap.NewNop(), nil, nil, nil)
		_, err := svc.CheckSchema()
		assert.ErrorIs(t, err, ErrNoDatabase)
	})

	t.Run("Checks Manifest Tables", func(t *testing.T) {
		db, sqlMock := setupMockDB(t)
		cols := []string{"Field", "Type", "Null", "Key", "Default", "Extra"}
		sqlMock.ExpectQuery("SHOW COLUMNS FROM `manifests`").WillReturnRows(sqlmock.NewRows(cols).
			AddRow("id", "varchar(36)", "NO", "PRI", nil, "").
			AddRow("bucket", "varchar(255)", "NO", "", nil, "").
			AddRow("patterns", "text", "NO", "", nil, "").
			AddRow("key_count", "int(11)", "NO", "", nil, "").
			AddRow("created_at", "datetime", "YES", "", nil, ""))
		sqlMock.ExpectQuery("SHOW COLUMNS FROM `manifest_keys`").WillReturnRows(sqlmock.NewRows(cols).
			AddRow("manifest_id", "varchar(36)", "NO", "PRI", nil, "").
			AddRow("position", "int(11)", "NO", "PRI", nil, ""))

		svc := NewService(new(mocks.Client), "test-bucket", nil, zap.NewNop(), db, nil, nil)
		report, err := svc.CheckSchema()

		require.NoError(t, err)
		assert.False(t, report.Matched)
		assert.Equal(t, "ok", report.Tables["manifests"].Status)
		assert.Equal(t, []string{"object_key"}, report.Tables["manifest_keys"].MissingColumns)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})
}

func TestService_CheckDrift(t *testing.T) {
	t.Run("No Database", func(t *testing.T) {
		svc := NewService(new(mocks.Client), "test-bucket", nil, zap.NewNop(), nil, nil, nil)
		_, err := svc.CheckDrift(context.Background(), "m-1")
		assert.ErrorIs(t, err, ErrNoDatabase)
	})

	t.Run("Reports Added And Removed Keys", func(t *testing.T) {
		reader := new(mockManifestReader)
		reader.On("Get", mock.Anything, "m-1").Return(&manifest.Detail{
			ID:       "m-1",
			Bucket:   "recorded-bucket",
			Patterns: []string{"logs/*"},
			Keys:     []string{"logs/a", "logs/b"},
		}, nil)

		mockClient := new(mocks.Client)
		mockClient.On("ListPage", mock.Anything, "recorded-bucket", storage.ListOptions{Prefix: "logs/", Delimiter: "/"}).
			Return(&storage.Page{Keys: []string{"logs/b", "logs/c"}}, nil)

		svc := NewService(mockClient, "test-bucket", nil, zap.NewNop(), nil, reader, nil)
		report, err := svc.CheckDrift(context.Background(), "m-1")

		require.NoError(t, err)
		assert.Equal(t, "recorded-bucket", report.Bucket)
		assert.Equal(t, []string{"logs/*"}, report.Patterns)
		assert.False(t, report.Plan.InSync())
		assert.Equal(t, 1, report.Plan.Summary.Added)
		assert.Equal(t, 1, report.Plan.Summary.Removed)
		mockClient.AssertExpectations(t)
	})

	t.Run("Listing Failure", func(t *testing.T) {
		reader := new(mockManifestReader)
		reader.On("Get", mock.Anything, "m-1").Return(&manifest.Detail{
			ID:       "m-1",
			Bucket:   "recorded-bucket",
			Patterns: []string{"logs/*"},
		}, nil)

		mockClient := new(mocks.Client)
		mockClient.On("ListPage", mock.Anything, "recorded-bucket", mock.Anything).Return(nil, assert.AnError)

		svc := NewService(mockClient, "test-bucket", nil, zap.NewNop(), nil, reader, nil)
		report, err := svc.CheckDrift(context.Background(), "m-1")

		assert.Nil(t, report)
		assert.ErrorIs(t, err, assert.AnError)
	})
}

func TestService_CheckDrift_RecordsMetrics(t *testing.T) {
	reader := new(mockManifestReader)
	reader.On("Get", mock.Anything, "m-1").Return(&manifest.Detail{
		ID:       "m-1",
		Bucket:   "recorded-bucket",
		Patterns: []string{"logs/*"},
		Keys:     []string{"logs/a"},
	}, nil)

	mockClient := new(mocks.Client)
	mockClient.On("ListPage", mock.Anything, "recorded-bucket", mock.Anything).
		Return(&storage.Page{Keys: []string{"logs/a"}}, nil)

	m := metrics.New(false)
	svc := NewService(mockClient, "test-bucket", nil, zap.NewNop(), nil, reader, m)
	_, err := svc.CheckDrift(context.Background(), "m-1")
	require.NoError(t, err)

	expected := `
# HELP object_resolver_list_pages_total Total number of listing pages fetched
# TYPE object_resolver_list_pages_total counter
object_resolver_list_pages_total 1
# HELP object_resolver_patterns_resolved_total Total number of patterns fully listed
# TYPE object_resolver_patterns_resolved_total counter
object_resolver_patterns_resolved_total 1
`
	assert.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected),
		"object_resolver_list_pages_total", "object_resolver_patterns_resolved_total"))
}

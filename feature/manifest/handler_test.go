package manifest

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestApp(t *testing.T) (*fiber.App, sqlmock.Sqlmock) {
	app := fiber.New()
	db, sqlMock := setupMockDB(t)
	handler := NewHandler(NewStore(db), zap.NewNop())
	handler.RegisterRoutes(app)
	return app, sqlMock
}

func TestHandleGetManifest(t *testing.T) {
	app, sqlMock := setupTestApp(t)

	sqlMock.ExpectQuery("SELECT \\* FROM `manifests`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "bucket", "patterns", "key_count", "created_at"}).
			AddRow("m-1", "ai2-llm", "logs/*", 1, time.Now()))
	sqlMock.ExpectQuery("SELECT \\* FROM `manifest_keys`").
		WillReturnRows(sqlmock.NewRows([]string{"manifest_id", "position", "object_key"}).
			AddRow("m-1", 0, "logs/a.json"))

	resp, err := app.Test(httptest.NewRequest("GET", "/manifests/m-1", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body Detail
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "m-1", body.ID)
	assert.Equal(t, []string{"logs/a.json"}, body.Keys)
}

func TestHandleGetManifest_NotFound(t *testing.T) {
	app, sqlMock := setupTestApp(t)

	sqlMock.ExpectQuery("SELECT \\* FROM `manifests`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "bucket", "patterns", "key_count", "created_at"}))

	resp, err := app.Test(httptest.NewRequest("GET", "/manifests/nope", nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}

func TestFeature_DisabledWithoutDB(t *testing.T) {
	f := NewFeature(nil, zap.NewNop())
	assert.False(t, f.IsEnabled())
	assert.Nil(t, f.Store())
	assert.Equal(t, "manifest", f.Name())
}

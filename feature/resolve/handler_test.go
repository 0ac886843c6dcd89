package resolve

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"object-resolver/core/storage"
	"object-resolver/core/storage/mocks"
	"object-resolver/feature/manifest"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestApp(store ManifestStore) (*fiber.App, *mocks.Client) {
	app := fiber.New()
	mockClient := new(mocks.Client)
	feature := NewFeature(mockClient, bucket, zap.NewNop(), nil, store, 2)
	_ = feature.Load(app)
	return app, mockClient
}

func postJSON(t *testing.T, app *fiber.App, path, body string) (int, map[string]any) {
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func TestHandleResolve(t *testing.T) {
	app, mockClient := setupTestApp(nil)
	mockClient.On("ListPage", mock.Anything, bucket, listOpts("logs/", "")).Return(&storage.Page{
		CommonPrefixes: []string{"logs/b/", "logs/a/"},
	}, nil).Once()

	status, body := postJSON(t, app, "/resolve", `{"patterns":["logs/*/data.json"]}`)

	assert.Equal(t, 200, status)
	assert.Equal(t, bucket, body["bucket"])
	assert.Equal(t, float64(2), body["count"])
	assert.Equal(t, []any{"logs/a/data.json", "logs/b/data.json"}, body["keys"])
	assert.NotContains(t, body, "manifest_id")
}

func TestHandleResolve_Errors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"Invalid Body", `{"patterns":`, 400},
		{"No Patterns", `{"patterns":[]}`, 400},
		{"Malformed Pattern", `{"patterns":["logs/data.json"]}`, 400},
		{"Persist Without Database", `{"patterns":["logs/*"],"persist":true}`, 503},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, mockClient := setupTestApp(nil)
			status, body := postJSON(t, app, "/resolve", tt.body)
			assert.Equal(t, tt.status, status)
			assert.NotEmpty(t, body["error"])
			mockClient.AssertNumberOfCalls(t, "ListPage", 0)
		})
	}
}

func TestHandleResolve_ListingFailure(t *testing.T) {
	app, mockClient := setupTestApp(nil)
	mockClient.On("ListPage", mock.Anything, "other", listOpts("logs/", "")).Return(nil, assert.AnError).Once()

	status, _ := postJSON(t, app, "/resolve", `{"bucket":"other","patterns":["logs/*"]}`)
	assert.Equal(t, 500, status)
}

func TestHandleResolve_BucketNotFound(t *testing.T) {
	app, mockClient := setupTestApp(nil)
	mockClient.On("ListPage", mock.Anything, "missing", listOpts("logs/", "")).
		Return(nil, &storage.Error{Op: "list", Bucket: "missing", Err: storage.ErrNotFound}).Once()

	status, _ := postJSON(t, app, "/resolve", `{"bucket":"missing","patterns":["logs/*"]}`)
	assert.Equal(t, 404, status)
}

func TestHandleResolve_Persist(t *testing.T) {
	store := new(mockManifestStore)
	store.On("Save", mock.Anything, bucket, []string{"logs/*"}, []string{"logs/a"}).
		Return(&manifest.Manifest{ID: "m-42", Bucket: bucket, KeyCount: 1}, nil).Once()

	app, mockClient := setupTestApp(store)
	mockClient.On("ListPage", mock.Anything, bucket, listOpts("logs/", "")).Return(&storage.Page{
		Keys: []string{"logs/a"},
	}, nil).Once()

	status, body := postJSON(t, app, "/resolve", `{"patterns":["logs/*"],"persist":true}`)
	assert.Equal(t, 200, status)
	assert.Equal(t, "m-42", body["manifest_id"])
	store.AssertExpectations(t)
}

func TestHandleResolveBatch(t *testing.T) {
	app, mockClient := setupTestApp(nil)
	mockClient.On("ListPage", mock.Anything, bucket, listOpts("a/", "")).Return(&storage.Page{
		Keys: []string{"a/1"},
	}, nil)
	mockClient.On("ListPage", mock.Anything, bucket, listOpts("b/", "")).Return(&storage.Page{
		Keys: []string{"b/1"},
	}, nil)

	status, body := postJSON(t, app, "/resolve/batch", `{"sets":[["b/*"],["a/*","b/*"]]}`)

	assert.Equal(t, 200, status)
	assert.Equal(t, []any{
		[]any{"b/1"},
		[]any{"a/1", "b/1"},
	}, body["results"])
}

func TestHandleResolveBatch_Errors(t *testing.T) {
	app, _ := setupTestApp(nil)

	status, _ := postJSON(t, app, "/resolve/batch", `{"sets":[]}`)
	assert.Equal(t, 400, status)

	status, body := postJSON(t, app, "/resolve/batch", `{"sets":[["a/*"],["bad"]]}`)
	assert.Equal(t, 400, status)
	assert.Contains(t, body["error"], "pattern set 1")
}

func TestLoader(t *testing.T) {
	feature := NewFeature(new(mocks.Client), bucket, zap.NewNop(), nil, nil, 0)

	assert.Equal(t, "resolve", feature.Name())
	assert.True(t, feature.IsEnabled())
	assert.NotNil(t, feature.Service())
	assert.NoError(t, feature.Load(fiber.New()))
}

package ghosts_test

import (
	"bytes"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"descriptor-sync/core/reconcile"
	"descriptor-sync/feature/ghosts"
	"descriptor-sync/feature/ghosts/models"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

func newTestApp(svc *ghosts.Service) *fiber.App {
	app := fiber.New()
	ghosts.NewHandler(svc).RegisterRoutes(app)
	return app
}

func doRequest(t *testing.T, app *fiber.App, method, path, contentType string, body []byte) (int, []byte) {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if contentType != "" {
		req.Header.Set(fiber.HeaderContentType, contentType)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, data
}

func TestHandleSync(t *testing.T) {
	app := newTestApp(newTestService(t, newTestStore(t), serviceOptions{}))

	body := `{"descriptors": [{"id": "` + casperID.String() + `", "name": "Casper"}]}`
	status, data := doRequest(t, app, fiber.MethodPost, "/ghosts/sync", fiber.MIMEApplicationJSON, []byte(body))
	require.Equal(t, fiber.StatusOK, status, string(data))

	var report models.SyncReport
	require.NoError(t, json.Unmarshal(data, &report))
	assert.Equal(t, []uuid.UUID{casperID}, report.Added)
	assert.Equal(t, 1, report.Live)

	status, data = doRequest(t, app, fiber.MethodGet, "/ghosts", "", nil)
	require.Equal(t, fiber.StatusOK, status)

	var list []models.Ghost
	require.NoError(t, json.Unmarshal(data, &list))
	require.Len(t, list, 1)
	assert.Equal(t, "Casper!", list[0].DisplayName)
}

func TestHandleSync_Formats(t *testing.T) {
	yamlBody := "descriptors:\n  - id: " + slimerID.String() + "\n    name: Slimer\n"
	tomlBody := "[[descriptors]]\nid = \"" + slimerID.String() + "\"\nname = \"Slimer\"\n"
	msgpackBody, err := msgpack.Marshal(map[string]any{
		"descriptors": []models.Descriptor{{ID: slimerID, Name: "Slimer"}},
	})
	require.NoError(t, err)

	tests := []struct {
		name        string
		contentType string
		body        []byte
	}{
		{"YAML", "application/yaml", []byte(yamlBody)},
		{"TOML", "application/toml", []byte(tomlBody)},
		{"MsgPack", "application/msgpack", msgpackBody},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(t, newTestStore(t), serviceOptions{})
			app := newTestApp(svc)

			status, data := doRequest(t, app, fiber.MethodPost, "/ghosts/sync", tt.contentType, tt.body)
			require.Equal(t, fiber.StatusOK, status, string(data))

			g, ok := svc.Get(slimerID)
			require.True(t, ok)
			assert.Equal(t, "Slimer!", g.DisplayName)
		})
	}
}

func TestHandleSync_Errors(t *testing.T) {
	duplicate := `{"descriptors": [{"id": "` + casperID.String() + `", "name": "a"}, {"id": "` + casperID.String() + `", "name": "b"}]}`

	tests := []struct {
		name        string
		contentType string
		body        string
		wantStatus  int
		wantError   string
	}{
		{"Malformed", fiber.MIMEApplicationJSON, `{"descriptors": [`, fiber.StatusBadRequest, "failed to decode"},
		{"BadID", fiber.MIMEApplicationJSON, `{"descriptors": [{"id": "nope"}]}`, fiber.StatusBadRequest, "failed to decode"},
		{"UnsupportedType", "text/csv", "id,name", fiber.StatusUnsupportedMediaType, "unsupported snapshot format"},
		{"Duplicate", fiber.MIMEApplicationJSON, duplicate, fiber.StatusConflict, "duplicate descriptor key"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(t, newTestStore(t), serviceOptions{policy: reconcile.RejectDuplicates})
			app := newTestApp(svc)

			status, data := doRequest(t, app, fiber.MethodPost, "/ghosts/sync", tt.contentType, []byte(tt.body))
			assert.Equal(t, tt.wantStatus, status)
			assert.Contains(t, string(data), tt.wantError)
			assert.Empty(t, svc.List())
		})
	}
}

func TestHandleGet(t *testing.T) {
	svc := newTestService(t, newTestStore(t), serviceOptions{})
	app := newTestApp(svc)

	_, err := svc.Sync(t.Context(), []models.Descriptor{{ID: casperID, Name: "Casper"}})
	require.NoError(t, err)

	status, data := doRequest(t, app, fiber.MethodGet, "/ghosts/"+casperID.String(), "", nil)
	require.Equal(t, fiber.StatusOK, status)
	var g models.Ghost
	require.NoError(t, json.Unmarshal(data, &g))
	assert.Equal(t, casperID.String(), g.ID)
	assert.Equal(t, 1, g.Revision)

	status, _ = doRequest(t, app, fiber.MethodGet, "/ghosts/"+slimerID.String(), "", nil)
	assert.Equal(t, fiber.StatusNotFound, status)

	status, _ = doRequest(t, app, fiber.MethodGet, "/ghosts/casper", "", nil)
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestHandleRefresh(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		source, client := newMockSource(`{"descriptors": [{"id": "` + stayID.String() + `", "name": "Stay Puft"}]}`)
		svc := newTestService(t, newTestStore(t), serviceOptions{source: source})
		app := newTestApp(svc)

		status, data := doRequest(t, app, fiber.MethodPost, "/ghosts/refresh", "", nil)
		require.Equal(t, fiber.StatusOK, status, string(data))
		assert.True(t, strings.Contains(string(data), stayID.String()))
		client.AssertExpectations(t)
	})

	t.Run("NoSource", func(t *testing.T) {
		app := newTestApp(newTestService(t, newTestStore(t), serviceOptions{}))

		status, data := doRequest(t, app, fiber.MethodPost, "/ghosts/refresh", "", nil)
		assert.Equal(t, fiber.StatusServiceUnavailable, status)
		assert.Contains(t, string(data), ghosts.ErrNoSource.Error())
	})
}

package api

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxelworks/terragen/internal/config"
	"github.com/voxelworks/terragen/internal/world"
	"github.com/voxelworks/terragen/internal/worldgen"
)

func testServer(t *testing.T) *httptest.Server {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	schema, err := os.ReadFile("../db/migrations/000001_create_worlds.up.sql")
	require.NoError(t, err)
	_, err = db.Exec(string(schema))
	require.NoError(t, err)

	handler := NewHandler(world.NewManager(db), config.GenerationConfig{
		MaxWidth:     256,
		MaxLength:    256,
		MaxHeight:    256,
		WorldTimeout: time.Minute,
	})
	server := httptest.NewServer(SetupRoutes(handler))
	t.Cleanup(server.Close)
	return server
}

func createWorldRequest(name string, seed int32) []byte {
	settings := worldgen.DefaultSettings()
	settings.Width = 10
	settings.Length = 10
	settings.MaxHeight = 64
	body, _ := json.Marshal(CreateWorldRequest{
		Name:     name,
		Seed:     seed,
		Settings: &settings,
	})
	return body
}

func TestHealthCheck(t *testing.T) {
	server := testServer(t)

	resp, err := http.Get(server.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "healthy", body["status"])
}

func TestCreateAndGetWorld(t *testing.T) {
	server := testServer(t)

	resp, err := http.Post(server.URL+"/api/v1/worlds", "application/json",
		bytes.NewReader(createWorldRequest("integration", 42)))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created world.Detail
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	require.NotEmpty(t, created.ID)
	assert.Equal(t, "integration", created.Name)
	assert.NotEmpty(t, created.Voxels)

	getResp, err := http.Get(server.URL + "/api/v1/worlds/" + created.ID)
	require.NoError(t, err)
	defer getResp.Body.Close()
	require.Equal(t, http.StatusOK, getResp.StatusCode)

	var loaded world.Detail
	require.NoError(t, json.NewDecoder(getResp.Body).Decode(&loaded))
	assert.Equal(t, created.ID, loaded.ID)
	assert.Equal(t, len(created.Voxels), len(loaded.Voxels))
}

func TestCreateWorldValidation(t *testing.T) {
	server := testServer(t)

	tests := []struct {
		name string
		body string
	}{
		{name: "malformed json", body: "{nope"},
		{name: "empty name", body: `{"name":"","seed":1}`},
		{name: "oversized world", body: `{"name":"big","seed":1,"settings":{"width":100000,"length":10,"maxHeight":64,"seaLevel":32}}`},
		{name: "invalid settings", body: `{"name":"bad","seed":1,"settings":{"width":0,"length":10,"maxHeight":64}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Post(server.URL+"/api/v1/worlds", "application/json",
				bytes.NewReader([]byte(tt.body)))
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

			var errResp world.ErrorResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&errResp))
			assert.NotEmpty(t, errResp.Error)
		})
	}
}

func TestListWorlds(t *testing.T) {
	server := testServer(t)

	for i := 0; i < 2; i++ {
		resp, err := http.Post(server.URL+"/api/v1/worlds", "application/json",
			bytes.NewReader(createWorldRequest(fmt.Sprintf("world-%d", i), int32(i))))
		require.NoError(t, err)
		resp.Body.Close()
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp, err := http.Get(server.URL + "/api/v1/worlds")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Worlds []world.Summary `json:"worlds"`
		Count  int             `json:"count"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 2, body.Count)
	assert.Len(t, body.Worlds, 2)
}

func TestDeleteWorld(t *testing.T) {
	server := testServer(t)

	resp, err := http.Post(server.URL+"/api/v1/worlds", "application/json",
		bytes.NewReader(createWorldRequest("doomed", 9)))
	require.NoError(t, err)
	var created world.Detail
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	resp.Body.Close()

	req, err := http.NewRequest(http.MethodDelete, server.URL+"/api/v1/worlds/"+created.ID, nil)
	require.NoError(t, err)
	delResp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	delResp.Body.Close()
	require.Equal(t, http.StatusNoContent, delResp.StatusCode)

	getResp, err := http.Get(server.URL + "/api/v1/worlds/" + created.ID)
	require.NoError(t, err)
	getResp.Body.Close()
	assert.Equal(t, http.StatusNotFound, getResp.StatusCode)
}

func TestGetBlocks(t *testing.T) {
	server := testServer(t)

	resp, err := http.Get(server.URL + "/api/v1/blocks")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Blocks worldgen.BlockTable `json:"blocks"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, worldgen.DefaultBlockTable(), body.Blocks)
}

//go:build integration_test || all_tests

package test

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/kgzivf/blogbackend/internal/proxy"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) TestPostgreSQLProxy_TestConnection() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	resp := s.doRequest(ctx, "POST", proxy.PostgreSQLPath, proxy.PostgreSQLRequest{Action: "testConnection"}, true)
	defer resp.Body.Close()
	require.Equal(s.T(), http.StatusOK, resp.StatusCode)

	var body struct {
		Success        bool   `json:"success"`
		Version        string `json:"version"`
		ConnectionType string `json:"connectionType"`
	}
	require.NoError(s.T(), json.NewDecoder(resp.Body).Decode(&body))
	assert.True(s.T(), body.Success)
	assert.Contains(s.T(), body.Version, "PostgreSQL")
	assert.NotEmpty(s.T(), body.ConnectionType)
}

func (s *IntegrationTestSuite) TestPostgreSQLProxy_Query() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	resp := s.doRequest(ctx, "POST", proxy.PostgreSQLPath, proxy.PostgreSQLRequest{
		Action: "query",
		SQL:    "SELECT id, name FROM blog_authors WHERE id = $1",
		Params: []any{authorLi},
	}, true)
	defer resp.Body.Close()
	require.Equal(s.T(), http.StatusOK, resp.StatusCode)

	var body struct {
		Data  []map[string]any `json:"data"`
		Error *string          `json:"error"`
	}
	require.NoError(s.T(), json.NewDecoder(resp.Body).Decode(&body))
	assert.Nil(s.T(), body.Error)
	require.Len(s.T(), body.Data, 1)
	assert.Equal(s.T(), authorLi, body.Data[0]["id"])
	assert.Equal(s.T(), "李顾问", body.Data[0]["name"])
}

func (s *IntegrationTestSuite) TestPostgreSQLProxy_Errors() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	noKey := s.doRequest(ctx, "POST", proxy.PostgreSQLPath, proxy.PostgreSQLRequest{Action: "testConnection"}, false)
	noKey.Body.Close()
	assert.Equal(s.T(), http.StatusUnauthorized, noKey.StatusCode)

	badTable := s.doRequest(ctx, "POST", proxy.PostgreSQLPath, proxy.PostgreSQLRequest{
		Action: "query",
		SQL:    "SELECT * FROM no_such_table",
	}, true)
	defer badTable.Body.Close()
	assert.Equal(s.T(), http.StatusInternalServerError, badTable.StatusCode)

	var body struct {
		Error   string `json:"error"`
		Details string `json:"details"`
	}
	require.NoError(s.T(), json.NewDecoder(badTable.Body).Decode(&body))
	assert.NotEmpty(s.T(), body.Error)
	assert.Contains(s.T(), body.Details, "42P01")
}

package main

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeBackend(t *testing.T) string {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.POST("/users/login", func(c *gin.Context) {
		var body map[string]string
		_ = c.ShouldBindJSON(&body)
		c.JSON(http.StatusOK, gin.H{"token": "tok-" + body["identifier"]})
	})
	r.GET("/users/me", func(c *gin.Context) {
		if c.GetHeader("Authorization") != "Bearer tok-asha" {
			c.JSON(http.StatusUnauthorized, gin.H{})
			return
		}
		c.JSON(http.StatusOK, gin.H{"username": "asha"})
	})
	r.GET("/user/saved", func(c *gin.Context) {
		c.JSON(http.StatusOK, []gin.H{
			{"article_id": "s1", "article": gin.H{"id": "s1", "headline": "Banking stocks rally", "website": "https://www.moneycontrol.com"}},
			{"article_id": "s2", "article": gin.H{"id": "s2", "headline": "Budget boosts capex", "website": "https://www.livemint.com"}},
		})
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv.URL
}

func writeConfig(t *testing.T, baseURL string) string {
	t.Helper()
	dir := t.TempDir()
	body := fmt.Sprintf(`backend:
  base_url: %s
session:
  store_path: %s
logging:
  level: error
  format: text
`, baseURL, filepath.Join(dir, "session"))

	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--env-file", filepath.Join(t.TempDir(), "missing.env")}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestCommandsAreRegistered(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"serve", "tui", "login", "logout", "whoami", "saved"} {
		assert.True(t, names[want], want)
	}
}

func TestLoginWhoamiLogout(t *testing.T) {
	path := writeConfig(t, fakeBackend(t))

	out, err := execute(t, "--config", path, "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "Not logged in")

	out, err = execute(t, "--config", path, "login", "asha", "--password", "secret")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged in as asha")

	out, err = execute(t, "--config", path, "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "asha")

	out, err = execute(t, "--config", path, "saved", "--query", "bank")
	require.NoError(t, err)
	assert.Contains(t, out, "1. Banking stocks rally")
	assert.NotContains(t, out, "Budget")

	out, err = execute(t, "--config", path, "logout")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged out")

	out, err = execute(t, "--config", path, "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "Not logged in")
}

func TestLoginRequiresPassword(t *testing.T) {
	path := writeConfig(t, fakeBackend(t))
	loginPassword = ""

	_, err := execute(t, "--config", path, "login", "asha")
	require.Error(t, err)
	assert.Equal(t, "Password is required", err.Error())
}

func TestSavedNeedsLogin(t *testing.T) {
	path := writeConfig(t, fakeBackend(t))

	_, err := execute(t, "--config", path, "saved")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not logged in")
}

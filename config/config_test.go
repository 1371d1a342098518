package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "cfg.yaml")
	require.NoError(t, os.WriteFile(p, []byte(`
database:
  host: "localhost"
  port: 5432
  username: "u"
  password: "p"
  name: "db"
kafka:
  host: "localhost"
  port: 9092
  submissions_topic_name: "driver.submissions"
  max_message_bytes: 8388608
redis:
  host: "localhost"
  port: 6379
driverbox:
  http_addr: ":8080"
  default_language: "en"
  driver_name: "Carlos Silva"
  submit_mode: "kafka"
  submit_latency_ms: 1500
  camera_mode: "snapshot"
  camera_base_url: "http://camera:9000"
`), 0o600))

	cfg, err := LoadConfig(p)
	require.NoError(t, err)
	require.Equal(t, "u", cfg.Database.Username)
	require.Equal(t, "driver.submissions", cfg.Kafka.SubmissionsTopic)
	require.Equal(t, int64(8<<20), cfg.Kafka.MaxMessageBytes)
	require.Equal(t, 6379, cfg.Redis.Port)
	require.Equal(t, ":8080", cfg.DriverBox.HTTPAddr)
	require.Equal(t, "en", cfg.DriverBox.DefaultLanguage)
	require.Equal(t, 1500, cfg.DriverBox.SubmitLatencyMillis)
	require.Equal(t, "http://camera:9000", cfg.DriverBox.CameraBaseURL)
}

func TestLoadConfig_ExpandsEnv(t *testing.T) {
	t.Setenv("DRIVERBOX_TEST_PG_PASSWORD", "secret")
	dir := t.TempDir()
	p := filepath.Join(dir, "cfg.yaml")
	require.NoError(t, os.WriteFile(p, []byte(`
database:
  password: "${DRIVERBOX_TEST_PG_PASSWORD}"
`), 0o600))

	cfg, err := LoadConfig(p)
	require.NoError(t, err)
	require.Equal(t, "secret", cfg.Database.Password)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestDatabaseConfig_ConnString(t *testing.T) {
	c := DatabaseConfig{Host: "h", Port: 5432, Username: "u", Password: "p", DBName: "d"}
	require.Equal(t, "postgres://u:p@h:5432/d?sslmode=disable", c.ConnString())

	c.SSLMode = "require"
	require.Equal(t, "postgres://u:p@h:5432/d?sslmode=require", c.ConnString())
}

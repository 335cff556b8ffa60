package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func noEnvFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), "missing.env")
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")

	cfg, err := Load(noEnvFile(t))
	require.NoError(t, err)
	require.Equal(t, "laptop_store", cfg.ServiceName)
	require.Equal(t, 8080, cfg.ServerPort)
	require.Equal(t, ":8080", cfg.Addr())
	require.Equal(t, DriverMongo, cfg.StoreDriver)
	require.Equal(t, "laptop_store", cfg.MongoDatabase)
	require.Equal(t, "laptops", cfg.ES.Index)
	require.Equal(t, "admin", cfg.AdminUsername)
	require.Nil(t, cfg.KafkaBrokers)
}

func TestLoadSQLDriver(t *testing.T) {
	t.Setenv("STORE_DRIVER", " Postgres ")
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost:5432/store")
	t.Setenv("KAFKA_BROKERS", "kafka:9092, ,kafka2:9092")
	t.Setenv("SERVER_PORT", "9000")

	cfg, err := Load(noEnvFile(t))
	require.NoError(t, err)
	require.Equal(t, DriverPostgres, cfg.StoreDriver)
	require.Equal(t, []string{"kafka:9092", "kafka2:9092"}, cfg.KafkaBrokers)
	require.Equal(t, ":9000", cfg.Addr())
}

func TestLoadFromEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("STORE_DRIVER=sqlite\nDATABASE_URL=file:store.db\n"), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("STORE_DRIVER")
		os.Unsetenv("DATABASE_URL")
	})

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, DriverSQLite, cfg.StoreDriver)
	require.Equal(t, "file:store.db", cfg.DatabaseURL)
}

func TestValidate(t *testing.T) {
	base := Config{
		ServerPort:    8080,
		StoreDriver:   DriverMongo,
		MongoURI:      "mongodb://localhost",
		MongoDatabase: "db",
		AdminUsername: "admin",
		AdminPassword: "admin",
	}
	require.NoError(t, base.Validate())

	missingURI := base
	missingURI.MongoURI = ""
	require.ErrorContains(t, missingURI.Validate(), "MONGO_URI")

	badDriver := base
	badDriver.StoreDriver = "redis"
	require.ErrorContains(t, badDriver.Validate(), "unsupported STORE_DRIVER")

	sqlNoURL := base
	sqlNoURL.StoreDriver = DriverSQLite
	require.ErrorContains(t, sqlNoURL.Validate(), "DATABASE_URL")

	minioNoKeys := base
	minioNoKeys.Minio.Endpoint = "minio:9000"
	err := minioNoKeys.Validate()
	require.ErrorContains(t, err, "MINIO_ACCESS_KEY")
	require.ErrorContains(t, err, "MINIO_SECRET_KEY")

	badPort := base
	badPort.ServerPort = 0
	require.ErrorContains(t, badPort.Validate(), "SERVER_PORT")
}

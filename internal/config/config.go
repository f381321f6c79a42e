package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	RecordStoreMariaDB  = "mariadb"
	RecordStorePostgres = "postgres"

	StorageMinio = "minio"
	StorageS3    = "s3"
)

type Settings struct {
	ServerPort int

	RecordStore     string
	MariaDBDSN      string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	PostgresDSN     string

	StorageBackend    string
	MinioEndpoint     string
	MinioAccessKey    string
	MinioSecretKey    string
	MinioUseSSL       bool
	S3Region          string
	S3Endpoint        string
	S3AccessKeyID     string
	S3SecretAccessKey string
	S3UsePathStyle    bool
	VideosBucket      string

	RedisAddr     string
	RedisPassword string

	JWTPublicKey string

	SpoolDir      string
	SpoolMaxAge   time.Duration
	RedirectDelay time.Duration
	UploadLockTTL time.Duration
}

func Load() (*Settings, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found; proceeding with OS environment variables")
	}

	viper.AutomaticEnv()

	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: could not read .env file: %v", err)
	}

	if !viper.IsSet("SERVER_PORT") {
		return nil, fmt.Errorf("SERVER_PORT is required")
	}

	s := &Settings{
		ServerPort:     viper.GetInt("SERVER_PORT"),
		RecordStore:    strings.ToLower(stringOr("RECORD_STORE", RecordStoreMariaDB)),
		StorageBackend: strings.ToLower(stringOr("STORAGE_BACKEND", StorageMinio)),
		VideosBucket:   stringOr("VIDEOS_BUCKET", "videos"),
		RedisAddr:      viper.GetString("REDIS_ADDR"),
		RedisPassword:  viper.GetString("REDIS_PASSWORD"),
		JWTPublicKey:   viper.GetString("JWT_PUBLIC_KEY"),
		SpoolDir:       stringOr("SPOOL_DIR", filepath.Join(os.TempDir(), "videos-spool")),
		SpoolMaxAge:    time.Duration(intOr("SPOOL_MAX_AGE_HOURS", 48)) * time.Hour,
		RedirectDelay:  time.Duration(intOr("REDIRECT_DELAY_MS", 1500)) * time.Millisecond,
		UploadLockTTL:  time.Duration(intOr("UPLOAD_LOCK_TTL", 600)) * time.Second,
	}

	switch s.RecordStore {
	case RecordStoreMariaDB:
		for _, k := range []string{"MARIADB_DSN", "MARIADB_MAX_OPEN_CONN", "MARIADB_MAX_IDLE_CONNS", "MARIADB_CONN_MAX_LIFETIME"} {
			if !viper.IsSet(k) {
				return nil, fmt.Errorf("%s is required", k)
			}
		}
		s.MariaDBDSN = viper.GetString("MARIADB_DSN")
		s.MaxOpenConns = viper.GetInt("MARIADB_MAX_OPEN_CONN")
		s.MaxIdleConns = viper.GetInt("MARIADB_MAX_IDLE_CONNS")
		s.ConnMaxLifetime = time.Duration(viper.GetInt("MARIADB_CONN_MAX_LIFETIME")) * time.Second
	case RecordStorePostgres:
		if !viper.IsSet("POSTGRES_DSN") {
			return nil, fmt.Errorf("POSTGRES_DSN is required")
		}
		s.PostgresDSN = viper.GetString("POSTGRES_DSN")
	default:
		return nil, fmt.Errorf("RECORD_STORE %q is not supported", s.RecordStore)
	}

	switch s.StorageBackend {
	case StorageMinio:
		for _, k := range []string{"MINIO_ENDPOINT", "MINIO_ACCESS_KEY", "MINIO_SECRET_KEY"} {
			if !viper.IsSet(k) {
				return nil, fmt.Errorf("%s is required", k)
			}
		}
		s.MinioEndpoint = viper.GetString("MINIO_ENDPOINT")
		s.MinioAccessKey = viper.GetString("MINIO_ACCESS_KEY")
		s.MinioSecretKey = viper.GetString("MINIO_SECRET_KEY")
		s.MinioUseSSL = viper.GetBool("MINIO_USE_SSL")
	case StorageS3:
		if !viper.IsSet("S3_REGION") {
			return nil, fmt.Errorf("S3_REGION is required")
		}
		s.S3Region = viper.GetString("S3_REGION")
		s.S3Endpoint = viper.GetString("S3_ENDPOINT")
		s.S3AccessKeyID = viper.GetString("S3_ACCESS_KEY_ID")
		s.S3SecretAccessKey = viper.GetString("S3_SECRET_ACCESS_KEY")
		s.S3UsePathStyle = viper.GetBool("S3_USE_PATH_STYLE")
	default:
		return nil, fmt.Errorf("STORAGE_BACKEND %q is not supported", s.StorageBackend)
	}

	return s, nil
}

func stringOr(key, def string) string {
	if viper.IsSet(key) && viper.GetString(key) != "" {
		return viper.GetString(key)
	}
	return def
}

func intOr(key string, def int) int {
	if viper.IsSet(key) && viper.GetString(key) != "" {
		return viper.GetInt(key)
	}
	return def
}

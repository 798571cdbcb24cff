package config

import (
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server       Server
	Database     Database
	GeminiApiKey string
	GeminiModel  string
	Storage      Storage
	Worker       Worker
	DevSeed      bool
}

type Server struct {
	Port string
}

type Database struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

// Storage points at an S3-compatible bucket (R2, MinIO, Supabase storage...).
type Storage struct {
	Endpoint        string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	PublicURL       string
}

type Worker struct {
	PollInterval time.Duration
	JobTimeout   time.Duration
}

func NewConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("GEMINI_MODEL", "gemini-1.5-flash")
	viper.SetDefault("STORAGE_REGION", "auto")
	viper.SetDefault("WORKER_POLL_INTERVAL_SECONDS", 5)
	viper.SetDefault("WORKER_JOB_TIMEOUT_SECONDS", 120)

	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	var config Config

	config.Server.Port = viper.GetString("SERVER_PORT")
	config.Database.Host = viper.GetString("DATABASE_HOST")
	config.Database.Port = viper.GetString("DATABASE_PORT")
	config.Database.User = viper.GetString("DATABASE_USER")
	config.Database.Password = viper.GetString("DATABASE_PASSWORD")
	config.Database.Name = viper.GetString("DATABASE_NAME")

	config.GeminiApiKey = viper.GetString("GEMINI_API_KEY")
	config.GeminiModel = viper.GetString("GEMINI_MODEL")

	config.Storage.Endpoint = viper.GetString("STORAGE_ENDPOINT")
	config.Storage.Region = viper.GetString("STORAGE_REGION")
	config.Storage.AccessKeyID = viper.GetString("STORAGE_ACCESS_KEY_ID")
	config.Storage.SecretAccessKey = viper.GetString("STORAGE_SECRET_ACCESS_KEY")
	config.Storage.Bucket = viper.GetString("STORAGE_BUCKET")
	config.Storage.PublicURL = viper.GetString("STORAGE_PUBLIC_URL")

	config.Worker.PollInterval = time.Duration(viper.GetInt("WORKER_POLL_INTERVAL_SECONDS")) * time.Second
	config.Worker.JobTimeout = time.Duration(viper.GetInt("WORKER_JOB_TIMEOUT_SECONDS")) * time.Second

	config.DevSeed = viper.GetBool("DEV_SEED")

	log.Info().
		Str("port", config.Server.Port).
		Str("dbHost", config.Database.Host).
		Str("dbName", config.Database.Name).
		Str("geminiModel", config.GeminiModel).
		Str("storageBucket", config.Storage.Bucket).
		Dur("workerPollInterval", config.Worker.PollInterval).
		Dur("workerJobTimeout", config.Worker.JobTimeout).
		Msg("Config loaded")
	return &config, nil
}

package config

import (
	"flag"
	"log"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env        string     `yaml:"env" env:"ENV" env-default:"production"`
	PGSQL      PGSQL      `yaml:"pgsql" env-required:"true"`
	HTTPServer HTTPServer `yaml:"http_server" env-required:"true"`
	Redis      Redis      `yaml:"redis"`
	MinIO      MinIO      `yaml:"minio" env-required:"true"`
	Media      Media      `yaml:"media"`
	Mixcloud   Mixcloud   `yaml:"mixcloud"`
	Embeds     Embeds     `yaml:"embeds"`
	JWTSecret  string     `yaml:"jwt_secret" env:"JWT_SECRET" env-required:"true"`
}

type HTTPServer struct {
	Address string `yaml:"address" env-default:"localhost:8080"`
}

type PGSQL struct {
	Host     string `yaml:"host" env-default:"localhost"`
	Port     string `yaml:"port" env-default:"5432"`
	User     string `yaml:"user" env-default:"postgres"`
	Password string `yaml:"password" env-default:"password"`
	DBName   string `yaml:"dbname" env-default:"memorial_db"`
	SSLMode  string `yaml:"sslmode" env-default:"disable"`
}

type Redis struct {
	Address  string `yaml:"address" env-default:"localhost:6379"`
	Password string `yaml:"password" env-default:""`
	DB       int    `yaml:"db" env-default:"0"`
}

type MinIO struct {
	Endpoint        string `yaml:"endpoint" env-default:"localhost:9000"`
	AccessKeyID     string `yaml:"access_key_id" env:"MINIO_ACCESS_KEY"`
	SecretAccessKey string `yaml:"secret_access_key" env:"MINIO_SECRET_KEY"`
	UseSSL          bool   `yaml:"use_ssl" env-default:"false"`
	BucketName      string `yaml:"bucket_name" env-default:"rekab"`
}

type Media struct {
	// MaxUploadSize caps multipart uploads, in bytes.
	MaxUploadSize int64 `yaml:"max_upload_size" env-default:"33554432"`
}

type Mixcloud struct {
	BaseURL string `yaml:"base_url" env-default:"https://api.mixcloud.com"`
	// User is the Mixcloud account whose cloudcasts are listed on the music page.
	User string `yaml:"user" env-default:"rekab"`
}

// Embeds holds the fixed third-party player and profile URLs rendered by the
// presentation shell.
type Embeds struct {
	Bandcamp   string `yaml:"bandcamp" env-default:"https://bandcamp.com/EmbeddedPlayer/album=0/size=large/"`
	SoundCloud string `yaml:"soundcloud" env-default:"https://w.soundcloud.com/player/?url=https%3A//soundcloud.com/rekab"`
	Mixcloud   string `yaml:"mixcloud" env-default:"https://www.mixcloud.com/widget/iframe/?feed=%2Frekab%2F"`
	Discogs    string `yaml:"discogs" env-default:"https://www.discogs.com/search/?q=rekab"`
}

func MustLoad() *Config {
	var configPath string

	configPath = os.Getenv("CONFIG_PATH")

	if configPath == "" {
		flags := flag.String("config", "", "Path to config file")
		flag.Parse()
		configPath = *flags

		if configPath == "" {
			log.Fatal("config path must be provided")
		}
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("config file does not exist at path: %s", configPath)
	}

	var cfg Config

	err := cleanenv.ReadConfig(configPath, &cfg)

	if err != nil {
		log.Fatalf("failed to read config: %s", err)
	}

	return &cfg
}

package config

import (
	"os"
	"strconv"
	"sync"
)

// AppConfig holds global application configuration
var AppConfig *Config
var once sync.Once

type Config struct {
	AppName          string
	Port             string
	Env              string
	Debug            bool
	PlaceholderThumb string
	PlaceholderImage string
	DefaultPageSize  int
}

// LoadAppConfig initializes the global AppConfig variable
func LoadAppConfig() {
	once.Do(func() {
		pageSize := 10
		if v, err := strconv.Atoi(os.Getenv("DEFAULT_PAGE_SIZE")); err == nil && v > 0 {
			pageSize = v
		}
		AppConfig = &Config{
			AppName:          os.Getenv("APP_NAME"),
			Port:             os.Getenv("PORT"),
			Env:              os.Getenv("APP_ENV"),
			Debug:            os.Getenv("DEBUG") == "true",
			PlaceholderThumb: GetEnv("PLACEHOLDER_THUMB_URL", "https://via.placeholder.com/60"),
			PlaceholderImage: GetEnv("PLACEHOLDER_IMAGE_URL", "https://via.placeholder.com/300"),
			DefaultPageSize:  pageSize,
		}
	})
}

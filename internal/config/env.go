package config

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

var once sync.Once

// LoadEnv loads environment variables from a .env file if one exists, so
// LEXOFFICE_API_KEY can live next to the binary during local use.
func LoadEnv(logger *logrus.Logger) {
	once.Do(func() {
		envFile := ".env"
		if _, err := os.Stat(envFile); os.IsNotExist(err) {
			envFile = filepath.Join("..", ".env")
			if _, err := os.Stat(envFile); os.IsNotExist(err) {
				logger.Debug("No .env file found, using environment variables")
				return
			}
		}

		if err := godotenv.Load(envFile); err != nil {
			logger.Warnf("Error loading .env file: %v", err)
			return
		}
		logger.Debugf("Loaded environment variables from %s", envFile)
	})
}

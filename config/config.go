package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

const (
	AppName     = "boataniq"
	EnvFileName = "config.env"
)

// LoadEnvFile loads environment variables from the first config file found:
// the path in BOATANIQ_CONFIG, then config.env in the working directory,
// then config.env under the user's config directory. Variables already set
// in the environment win over file values. A missing file is not an error.
func LoadEnvFile() {
	for _, path := range candidatePaths() {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err != nil {
			continue
		}
		_ = godotenv.Load(path)
		return
	}
}

func candidatePaths() []string {
	paths := []string{
		os.Getenv("BOATANIQ_CONFIG"),
		EnvFileName,
	}
	if configBase, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(configBase, AppName, EnvFileName))
	}
	return paths
}

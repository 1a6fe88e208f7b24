package config

import (
	"errors"
	"os"

	"github.com/joho/godotenv"
)

// readEnvFiles reads KEY=VALUE files without touching the process environment.
// Missing files are skipped; earlier files win over later ones.
func readEnvFiles(paths []string) (map[string]string, error) {
	values := make(map[string]string)
	for _, p := range paths {
		if _, err := os.Stat(p); errors.Is(err, os.ErrNotExist) {
			continue
		}
		parsed, err := godotenv.Read(p)
		if err != nil {
			return nil, err
		}
		for k, v := range parsed {
			if _, seen := values[k]; !seen {
				values[k] = v
			}
		}
	}
	return values, nil
}

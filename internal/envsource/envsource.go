package envsource

import (
	"fmt"
	"os"

	"dario.cat/mergo"
	"github.com/joho/godotenv"
)

// Source resolves variables from the process environment, falling back to
// values read from dotenv files.
type Source struct {
	files map[string]string
}

// Load reads the given dotenv files in order. Later files override earlier ones.
func Load(paths ...string) (Source, error) {
	merged := make(map[string]string)
	for _, path := range paths {
		values, err := godotenv.Read(path)
		if err != nil {
			return Source{}, fmt.Errorf("reading env file %s: %w", path, err)
		}
		if err := mergo.Merge(&merged, values, mergo.WithOverride); err != nil {
			return Source{}, fmt.Errorf("merging env file %s: %w", path, err)
		}
	}
	return Source{files: merged}, nil
}

// Lookup returns the process value when the variable is set, otherwise the
// file value. Variables set nowhere read as "".
func (s Source) Lookup(key string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return s.files[key]
}

// FromFile reports whether key was supplied by a dotenv file.
func (s Source) FromFile(key string) bool {
	_, ok := s.files[key]
	return ok
}

package dotEnvLoader

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// DotEnvLoader reads a .env file into the process environment and returns
// the merged environment. A missing .env file is not an error; production
// deployments set variables directly.
type DotEnvLoader struct{}

func (l DotEnvLoader) Load() (map[string]string, error) {
	_ = godotenv.Load()

	envs := make(map[string]string)
	for _, kv := range os.Environ() {
		parts := strings.SplitN(kv, "=", 2)
		if len(parts) == 2 {
			envs[parts[0]] = parts[1]
		}
	}
	return envs, nil
}

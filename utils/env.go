package utils

import (
	"os"
	"path/filepath"
)

// envSearchDepth is how many directories FindEnvFile inspects, starting dir included
const envSearchDepth = 3

// FindEnvFile returns the path of the nearest .env file in dir or its
// parents, or "" if there is none within reach. An empty dir means the
// working directory.
func FindEnvFile(dir string) string {
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return ""
		}
		dir = cwd
	}

	for i := 0; i < envSearchDepth; i++ {
		path := filepath.Join(dir, ".env")
		if st, err := os.Stat(path); err == nil && !st.IsDir() {
			return path
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

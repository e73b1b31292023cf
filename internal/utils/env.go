package utils

import (
	"fmt"
	"os"
	"path"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/go_away_boilerplate/pkg/misc"
	"github.com/joho/godotenv"
)

// LoadDotEnv loads <dataDir>/.env into the process environment. Missing file
// is fine, any other error is reported. Already-set variables win, so the
// shell environment always takes precedence over the dotenv file.
func LoadDotEnv(dataDir string) error {
	envPath := path.Join(dataDir, ".env")
	if _, err := os.Stat(envPath); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(envPath); err != nil {
		return fmt.Errorf("failed to load env file '%v': %w", envPath, err)
	}
	if misc.Truthy(os.Getenv("DEBUG")) {
		ancli.PrintOK(fmt.Sprintf("loaded env file: '%v'\n", envPath))
	}
	return nil
}

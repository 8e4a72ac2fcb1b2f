package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"
)

// envPrefix is prepended to flag names to form environment variable names.
const envPrefix = "SWATCH"

// envKey returns the environment variable for a flag, e.g. seed-mode → SWATCH_SEED_MODE.
func envKey(flagName string) string {
	return envPrefix + "_" + strings.ToUpper(strings.ReplaceAll(flagName, "-", "_"))
}

// applyEnvOverrides sets every flag that was not given on the command line
// from its environment variable, if present.
func applyEnvOverrides(fs *pflag.FlagSet) error {
	var errs []error
	fs.VisitAll(func(f *pflag.Flag) {
		if f.Changed {
			return
		}
		key := envKey(f.Name)
		value, ok := os.LookupEnv(key)
		if !ok {
			return
		}
		if err := fs.Set(f.Name, value); err != nil {
			errs = append(errs, fmt.Errorf("invalid value %q for %s: %w", value, key, err))
		}
	})
	return errors.Join(errs...)
}

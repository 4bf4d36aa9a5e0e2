package configloader

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/bukvar/bukvar/pkg/config"
)

// envVarPrefix is the prefix for all bukvar environment variables.
const envVarPrefix = "BUKVAR_"

// LoadFromEnv applies BUKVAR_* environment variable overrides to cfg.
// Recognized variables: BUKVAR_FORMAT, BUKVAR_EXTENSIONS, BUKVAR_PRETTY,
// BUKVAR_VALIDATE, BUKVAR_SOURCEMAP, BUKVAR_STREAMING, BUKVAR_JOBS.
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	if v := os.Getenv(envVarPrefix + "FORMAT"); v != "" {
		cfg.Format = config.OutputFormat(v)
	}
	if v := os.Getenv(envVarPrefix + "EXTENSIONS"); v != "" {
		cfg.Extensions = parseSliceValue(v)
	}
	if v := os.Getenv(envVarPrefix + "PRETTY"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid boolean for %sPRETTY: %q", envVarPrefix, v)
		}
		cfg.Pretty = b
	}
	if v := os.Getenv(envVarPrefix + "VALIDATE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid boolean for %sVALIDATE: %q", envVarPrefix, v)
		}
		cfg.Validate = b
	}
	if v := os.Getenv(envVarPrefix + "SOURCEMAP"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid boolean for %sSOURCEMAP: %q", envVarPrefix, v)
		}
		cfg.Sourcemap = b
	}
	if v := os.Getenv(envVarPrefix + "STREAMING"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid boolean for %sSTREAMING: %q", envVarPrefix, v)
		}
		cfg.Streaming = b
	}
	if v := os.Getenv(envVarPrefix + "JOBS"); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid integer for %sJOBS: %q", envVarPrefix, v)
		}
		cfg.Jobs = i
	}

	return nil
}

// parseSliceValue parses a comma-separated string into a slice, trimming
// whitespace around each element.
func parseSliceValue(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

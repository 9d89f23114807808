package utils

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
)

// LoadEnv loads environment variables from a .env file.
// Variables already present in the environment win over the file.
func LoadEnv(filename string, logger *zap.Logger) error {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		logger.Debug("no env file found", zap.String("file", filename))
		return nil
	}

	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("error opening %s file: %w", filename, err)
	}
	defer file.Close()

	logger.Info("loading environment variables", zap.String("file", filename))

	scanner := bufio.NewScanner(file)
	lineNumber := 0

	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimPrefix(line, "export ")

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			logger.Warn("invalid env line", zap.String("file", filename), zap.Int("line", lineNumber))
			continue
		}

		key = strings.TrimSpace(key)
		value = unquote(strings.TrimSpace(value))

		if _, exists := os.LookupEnv(key); exists {
			logger.Debug("environment variable already set, keeping existing value", zap.String("key", key))
			continue
		}
		if err := os.Setenv(key, value); err != nil {
			return fmt.Errorf("setting %s from %s: %w", key, filename, err)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading %s file: %w", filename, err)
	}

	return nil
}

// LoadEnvWithFallback loads the first .env file found in the usual locations.
func LoadEnvWithFallback(logger *zap.Logger) error {
	locations := []string{
		".env",
		".env.local",
		"config/.env",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err != nil {
			continue
		}
		return LoadEnv(location, logger)
	}

	logger.Debug("no .env files found in standard locations, using system environment only")
	return nil
}

func unquote(value string) string {
	if len(value) >= 2 {
		if (value[0] == '"' && value[len(value)-1] == '"') ||
			(value[0] == '\'' && value[len(value)-1] == '\'') {
			return value[1 : len(value)-1]
		}
	}
	return value
}

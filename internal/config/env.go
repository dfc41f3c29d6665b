package config

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"demo-viewer/internal/scene"
)

// Environment overrides applied by ApplyEnv.
const (
	EnvFocus   = "VIEWER_FOCUS"
	EnvLogPath = "VIEWER_LOG"
	EnvShowFPS = "VIEWER_SHOW_FPS"
)

// LoadDotEnv reads the given file (e.g. ".env") and sets environment variables for each
// line of the form KEY=VALUE. Empty lines and lines starting with # are skipped, and
// variables already set in the environment win. The file may be missing; that is not an error.
func LoadDotEnv(path string) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		key, value, ok := parseEnvLine(scanner.Text())
		if !ok {
			continue
		}
		if _, set := os.LookupEnv(key); set {
			continue
		}
		_ = os.Setenv(key, value)
	}
	return scanner.Err()
}

func parseEnvLine(line string) (key, value string, ok bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return "", "", false
	}
	line = strings.TrimPrefix(line, "export ")
	key, value, found := strings.Cut(line, "=")
	key = strings.TrimSpace(key)
	if !found || key == "" {
		return "", "", false
	}
	value = strings.TrimSpace(value)
	if len(value) >= 2 && (value[0] == '"' && value[len(value)-1] == '"' || value[0] == '\'' && value[len(value)-1] == '\'') {
		value = value[1 : len(value)-1]
	}
	return key, value, true
}

// ApplyEnv overrides p from VIEWER_* variables. Invalid values are reported and leave p unchanged.
func ApplyEnv(p Prefs) (Prefs, error) {
	out := p
	if v, ok := os.LookupEnv(EnvFocus); ok {
		f, err := scene.ParseFocus(v)
		if err != nil {
			return p, fmt.Errorf("config: %s: %w", EnvFocus, err)
		}
		out.Focus = f.String()
	}
	if v, ok := os.LookupEnv(EnvLogPath); ok && v != "" {
		out.LogPath = v
	}
	if v, ok := os.LookupEnv(EnvShowFPS); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return p, fmt.Errorf("config: %s: %w", EnvShowFPS, err)
		}
		out.ShowFPS = b
	}
	return out, nil
}

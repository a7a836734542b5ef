package github

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const appDir = "gitcards"

// ReadTokenFile reads one token per line, skipping blanks and # comments.
func ReadTokenFile(path string) ([]string, error) {
	lines, err := readListFile(path)
	if err != nil {
		return nil, fmt.Errorf("token file: %w", err)
	}
	return lines, nil
}

// ReadProxyFile reads one proxy per line; bare host:port entries get http://.
func ReadProxyFile(path string) ([]string, error) {
	lines, err := readListFile(path)
	if err != nil {
		return nil, fmt.Errorf("proxy file: %w", err)
	}
	for i, line := range lines {
		if !strings.Contains(line, "://") {
			lines[i] = "http://" + line
		}
	}
	return lines, nil
}

func readListFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading %s: %w", path, err)
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("%s is empty", path)
	}

	return out, nil
}

func savedTokenPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, appDir, "token"), nil
}

// LoadSavedToken returns the token stored by SaveToken, or "" if none.
func LoadSavedToken() string {
	path, err := savedTokenPath()
	if err != nil {
		return ""
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func SaveToken(token string) error {
	path, err := savedTokenPath()
	if err != nil {
		return fmt.Errorf("no config directory: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(token), 0600)
}

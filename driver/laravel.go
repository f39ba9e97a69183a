// 2026 Craig Tomkow

package driver

import (
	"context"
	"github.com/golang/glog"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// KEY= at the start of a .env line, optionally exported
var envAssignment = regexp.MustCompile(`^\s*(?:export\s+)?([A-Za-z_][A-Za-z0-9_.]*)\s*=`)

type Laravel struct{}

func (Laravel) Name() string { return "laravel" }

func (Laravel) Serves(path string) bool {
	return exists(path, "artisan") && exists(path, "public", "index.php")
}

// Configure creates the project database and points .env at it and at url.
// A missing .env is seeded from .env.example. Only the APP_URL and DB_* keys below are
// rewritten; comments, ordering and every other line stay as they are.
func (Laravel) Configure(ctx context.Context, env *Environment, url string) error {
	envFile := filepath.Join(env.Path, ".env")

	content, err := os.ReadFile(envFile)
	if os.IsNotExist(err) {
		content, err = os.ReadFile(filepath.Join(env.Path, ".env.example"))
		if os.IsNotExist(err) {
			content, err = nil, nil
		}
	}
	if err != nil {
		return errors.Wrap(err, "read .env")
	}
	if _, err = godotenv.Unmarshal(string(content)); err != nil {
		return errors.Wrap(err, "parse .env")
	}

	database, err := env.Databases.CreateDatabase(ctx, "")
	if err != nil {
		return err
	}

	updated, err := setEnv(string(content), [][2]string{
		{"APP_URL", url},
		{"DB_CONNECTION", "mysql"},
		{"DB_HOST", env.Endpoint.Host},
		{"DB_PORT", strconv.FormatUint(uint64(env.Endpoint.Port), 10)},
		{"DB_DATABASE", database},
		{"DB_USERNAME", env.Endpoint.User},
		{"DB_PASSWORD", env.Password},
	})
	if err != nil {
		return err
	}

	if err = os.WriteFile(envFile, []byte(updated), 0644); err != nil {
		return errors.Wrap(err, "write .env")
	}
	glog.Info("configured " + envFile)

	return nil
}

// setEnv replaces the assignments of the given keys in content and appends the missing
// ones, in order. Other lines are kept byte for byte.
func setEnv(content string, values [][2]string) (string, error) {
	rendered := make(map[string]string, len(values))
	for _, kv := range values {
		line, err := godotenv.Marshal(map[string]string{kv[0]: kv[1]})
		if err != nil {
			return "", err
		}
		rendered[kv[0]] = line
	}

	var lines []string
	if content != "" {
		lines = strings.Split(strings.TrimSuffix(content, "\n"), "\n")
	}

	seen := map[string]bool{}
	for i, line := range lines {
		match := envAssignment.FindStringSubmatch(line)
		if match == nil {
			continue
		}
		if replacement, ok := rendered[match[1]]; ok {
			lines[i] = replacement
			seen[match[1]] = true
		}
	}

	for _, kv := range values {
		if !seen[kv[0]] {
			lines = append(lines, rendered[kv[0]])
		}
	}

	return strings.Join(lines, "\n") + "\n", nil
}

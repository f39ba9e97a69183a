// 2026 Craig Tomkow

package conf

import (
	"encoding/json"
	"github.com/golang/glog"
	"github.com/pkg/errors"
	"os"
	"path/filepath"
)

const (
	// compile-time default root password of the local mysql server
	DefaultRootPassword = ""

	DefaultDomain = "test"

	settingsFile = "config.json"
)

// Settings is the whole settings document. Keys devdb does not know about are kept as is.
type Settings map[string]interface{}

// Store reads and writes the settings document as a whole
type Store struct {
	dir string
}

func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// directory holding the settings document, sites and certificates
func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) Path() string {
	return filepath.Join(s.dir, settingsFile)
}

// Read returns the settings document, or the defaults if none was written yet
func (s *Store) Read() (Settings, error) {
	settings := Settings{
		"domain": DefaultDomain,
		"paths":  []interface{}{},
	}

	content, err := os.ReadFile(s.Path())
	if os.IsNotExist(err) {
		return settings, nil
	}
	if err != nil {
		return nil, err
	}

	if err = json.Unmarshal(content, &settings); err != nil {
		return nil, errors.Wrapf(err, "parse %s", s.Path())
	}

	return settings, nil
}

// Write replaces the settings document. The new document is written next to the old one and
// renamed over it, so readers see either the old or the new document.
func (s *Store) Write(settings Settings) error {
	content, err := json.MarshalIndent(settings, "", "    ")
	if err != nil {
		return err
	}

	if err = os.MkdirAll(s.dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, settingsFile+".*")
	if err != nil {
		return err
	}
	defer func() {
		if err := os.Remove(tmp.Name()); err != nil && !os.IsNotExist(err) {
			glog.Error(err)
		}
	}()

	if _, err = tmp.Write(append(content, '\n')); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), s.Path())
}

// RootPassword returns the stored mysql root password, or the default one
func (s *Store) RootPassword() string {
	settings, err := s.Read()
	if err != nil {
		glog.Warning(err)
		return DefaultRootPassword
	}
	return settings.RootPassword()
}

func (s Settings) RootPassword() string {
	if section, ok := s["mysql"].(map[string]interface{}); ok {
		if pass, ok := section["password"].(string); ok {
			return pass
		}
	}
	return DefaultRootPassword
}

// SetRootPassword updates the mysql section, keeping its other keys
func (s Settings) SetRootPassword(pass string) {
	section, ok := s["mysql"].(map[string]interface{})
	if !ok {
		section = map[string]interface{}{}
	}
	section["password"] = pass
	s["mysql"] = section
}

func (s Settings) Domain() string {
	if domain, ok := s["domain"].(string); ok && domain != "" {
		return domain
	}
	return DefaultDomain
}


// 2026 Craig Tomkow

// Package site maps project directories to the hostnames they are served under.
package site

import (
	"github.com/ctomkow/devdb/conf"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

type Site struct {
	store *conf.Store
}

func NewSite(store *conf.Store) *Site {
	return &Site{store: store}
}

// directory of named links to project directories
func (s *Site) SitesPath() string {
	return filepath.Join(s.store.Dir(), "Sites")
}

// directory of issued certificates, one <host>.<domain>.crt per secured site
func (s *Site) CertificatesPath() string {
	return filepath.Join(s.store.Dir(), "Certificates")
}

// Host returns the name of the link pointing at path, or the base name of path
func (s *Site) Host(path string) string {
	entries, err := os.ReadDir(s.SitesPath())
	if err == nil {
		for _, entry := range entries {
			target, err := filepath.EvalSymlinks(filepath.Join(s.SitesPath(), entry.Name()))
			if err != nil {
				continue
			}
			if samePath(target, path) {
				return entry.Name()
			}
		}
	}

	return filepath.Base(path)
}

// Secured returns the hosts with a certificate, sorted
func (s *Site) Secured() ([]string, error) {
	entries, err := os.ReadDir(s.CertificatesPath())
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var secured []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".crt") {
			continue
		}
		secured = append(secured, strings.TrimSuffix(entry.Name(), ".crt"))
	}
	sort.Strings(secured)

	return secured, nil
}

// URL returns the scheme-correct url the project at path is served under
func (s *Site) URL(path string) (string, error) {
	settings, err := s.store.Read()
	if err != nil {
		return "", err
	}

	domain := s.Host(path) + "." + settings.Domain()

	secured, err := s.Secured()
	if err != nil {
		return "", err
	}
	for _, host := range secured {
		if host == domain {
			return "https://" + domain, nil
		}
	}

	return "http://" + domain, nil
}

func samePath(a string, b string) bool {
	if resolved, err := filepath.EvalSymlinks(b); err == nil {
		b = resolved
	}
	return filepath.Clean(a) == filepath.Clean(b)
}

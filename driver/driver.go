// 2026 Craig Tomkow

// Package driver detects the kind of project in a directory. Some drivers can also
// configure the project for the local environment.
package driver

import (
	"context"
	"github.com/ctomkow/devdb/db"
	"os"
	"path/filepath"
)

// Driver recognizes one kind of project
type Driver interface {
	Name() string
	Serves(path string) bool
}

// Configurer is implemented by drivers that can configure their project
type Configurer interface {
	Configure(ctx context.Context, env *Environment, url string) error
}

// Databases is the part of the database manager drivers use
type Databases interface {
	CreateDatabase(ctx context.Context, name string) (string, error)
}

type Runner interface {
	RunAsUser(ctx context.Context, command ...string) (string, error)
}

// Environment is handed to Configure
type Environment struct {

	// project root
	Path string

	Databases Databases
	Runner    Runner

	// how the project reaches the database server
	Endpoint db.Endpoint
	Password string
}

// Assignment is the driver chosen for a project. Configurer is nil when the driver
// has no configuration step.
type Assignment struct {
	Driver     Driver
	Configurer Configurer
}

type Registry struct {
	drivers  []Driver
	fallback Driver
}

// NewRegistry returns a registry trying drivers in order, then fallback
func NewRegistry(fallback Driver, drivers ...Driver) *Registry {
	return &Registry{drivers: drivers, fallback: fallback}
}

// the drivers shipped with devdb
func Default() *Registry {
	return NewRegistry(Basic{}, Magento2{}, Laravel{}, WordPress{})
}

// Assign picks the driver serving path
func (r *Registry) Assign(path string) Assignment {
	chosen := r.fallback
	for _, d := range r.drivers {
		if d.Serves(path) {
			chosen = d
			break
		}
	}

	assignment := Assignment{Driver: chosen}
	if configurer, ok := chosen.(Configurer); ok {
		assignment.Configurer = configurer
	}

	return assignment
}

func exists(path string, elem ...string) bool {
	_, err := os.Stat(filepath.Join(append([]string{path}, elem...)...))
	return err == nil
}

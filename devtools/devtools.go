// 2026 Craig Tomkow

// Package devtools configures the project in the working directory for the local environment.
package devtools

import (
	"context"
	"github.com/ctomkow/devdb/conf"
	"github.com/ctomkow/devdb/db"
	"github.com/ctomkow/devdb/driver"
	"github.com/ctomkow/devdb/site"
	"github.com/golang/glog"
	"os"
)

type DevTools struct {
	store     *conf.Store
	site      *site.Site
	databases driver.Databases
	endpoint  db.Endpoint
	runner    driver.Runner
	drivers   *driver.Registry

	getwd func() (string, error)
}

func NewDevTools(store *conf.Store, site *site.Site, databases driver.Databases, endpoint db.Endpoint, runner driver.Runner, drivers *driver.Registry) *DevTools {
	return &DevTools{
		store:     store,
		site:      site,
		databases: databases,
		endpoint:  endpoint,
		runner:    runner,
		drivers:   drivers,
		getwd:     os.Getwd,
	}
}

// Configure hands the working directory's project to its driver. It returns false, without
// error, when the driver has nothing to configure.
func (d *DevTools) Configure(ctx context.Context) (bool, error) {
	wd, err := d.getwd()
	if err != nil {
		return false, err
	}

	assignment := d.drivers.Assign(wd)
	glog.V(1).Info("driver: " + assignment.Driver.Name())

	url, err := d.site.URL(wd)
	if err != nil {
		return false, err
	}

	if assignment.Configurer == nil {
		return false, nil
	}

	env := &driver.Environment{
		Path:      wd,
		Databases: d.databases,
		Runner:    d.runner,
		Endpoint:  d.endpoint,
		Password:  d.store.RootPassword(),
	}

	if err = assignment.Configurer.Configure(ctx, env, url); err != nil {
		return false, err
	}

	return true, nil
}

// 2026 Craig Tomkow

package driver

import (
	"context"
	"github.com/pkg/errors"
	"path/filepath"
	"strconv"
	"strings"
)

type Magento2 struct{}

func (Magento2) Name() string { return "magento2" }

func (Magento2) Serves(path string) bool {
	return exists(path, "bin", "magento") && exists(path, "app", "etc")
}

// Configure creates the project database, points the deployment config at it and sets the
// store's base urls. Secure urls are used when url is https.
func (Magento2) Configure(ctx context.Context, env *Environment, url string) error {
	database, err := env.Databases.CreateDatabase(ctx, "")
	if err != nil {
		return err
	}

	magento := filepath.Join(env.Path, "bin", "magento")
	secure := "0"
	if strings.HasPrefix(url, "https://") {
		secure = "1"
	}
	base := strings.TrimSuffix(url, "/") + "/"

	commands := [][]string{
		{"php", magento, "setup:config:set", "--no-interaction",
			"--db-host=" + env.Endpoint.Host + ":" + strconv.FormatUint(uint64(env.Endpoint.Port), 10),
			"--db-name=" + database,
			"--db-user=" + env.Endpoint.User,
			"--db-password=" + env.Password},
		{"php", magento, "config:set", "web/unsecure/base_url", base},
		{"php", magento, "config:set", "web/secure/base_url", base},
		{"php", magento, "config:set", "web/secure/use_in_frontend", secure},
		{"php", magento, "config:set", "web/secure/use_in_adminhtml", secure},
	}

	for _, command := range commands {
		if _, err := env.Runner.RunAsUser(ctx, command...); err != nil {
			return errors.Wrap(err, strings.Join(command[1:3], " "))
		}
	}

	return nil
}

// 2026 Craig Tomkow

package main

import (
	"context"
	"github.com/ctomkow/devdb/conf"
	"github.com/ctomkow/devdb/db"
	"github.com/ctomkow/devdb/devtools"
	"github.com/ctomkow/devdb/driver"
	"github.com/ctomkow/devdb/exec"
	"github.com/ctomkow/devdb/site"
	"github.com/golang/glog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"os"
	"os/signal"
	"syscall"
)

const (
	name        = "devdb"
	description = "local development databases: create, drop, import, export and project configuration"
)

// app holds the collaborators every command shares
type app struct {
	store    *conf.Store
	exec     *exec.Exec
	mysql    *db.Mysql
	site     *site.Site
	devtools *devtools.DevTools
}

func newApp(v *viper.Viper) (*app, error) {
	home, err := conf.Home(v)
	if err != nil {
		return nil, err
	}

	store := conf.NewStore(home)
	ex := exec.NewExec()
	conn := db.NewConnection(db.LocalEndpoint, store)
	mysql := db.NewMysql(conn, ex, store)
	st := site.NewSite(store)

	return &app{
		store:    store,
		exec:     ex,
		mysql:    mysql,
		site:     st,
		devtools: devtools.NewDevTools(store, st, mysql, conn.Endpoint(), ex, driver.Default()),
	}, nil
}

func (a *app) close() {
	if err := a.mysql.Close(); err != nil {
		glog.Error(err)
	}
}

// cli carries the app from the root command's pre-run into the subcommands
type cli struct {
	v   *viper.Viper
	app *app
}

func main() {

	if err := conf.SetLogToStderr(); err != nil {
		glog.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	c := &cli{v: viper.New()}
	err := newRootCmd(c).ExecuteContext(ctx)
	if err != nil {
		warning(err.Error())
	}

	if c.app != nil {
		c.app.close()
	}
	stop()
	glog.Flush()

	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd(c *cli) *cobra.Command {
	root := &cobra.Command{
		Use:           name,
		Short:         description,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			c.app, err = newApp(c.v)
			return err
		},
	}

	conf.AddGoFlags(root.PersistentFlags())
	if err := conf.SetHomeFlag(root.PersistentFlags(), c.v); err != nil {
		glog.Fatal(err)
	}

	root.AddCommand(newDbCmd(c))
	root.AddCommand(newConfigureCmd(c))

	return root
}

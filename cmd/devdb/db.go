// 2026 Craig Tomkow

package main

import (
	"github.com/ctomkow/devdb/backup"
	"github.com/ctomkow/devdb/conf"
	"github.com/spf13/cobra"
	"path/filepath"
)

// optional positional argument i
func arg(args []string, i int) string {
	if len(args) > i {
		return args[i]
	}
	return ""
}

func newDbCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "db",
		Aliases: []string{"mysql"},
		Short:   "Manage the project database. The name defaults to the git repository or directory name",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "name",
			Short: "Print the database name for the working directory",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				info(c.app.mysql.DirName(cmd.Context()))
				return nil
			},
		},
		&cobra.Command{
			Use:   "create [name]",
			Short: "Create a database if it doesn't exist",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				created, err := c.app.mysql.CreateDatabase(cmd.Context(), arg(args, 0))
				if err != nil {
					return err
				}
				info("Database \"" + created + "\" created successfully")
				return nil
			},
		},
		&cobra.Command{
			Use:   "drop [name]",
			Short: "Drop a database",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				dropped, err := c.app.mysql.DropDatabase(cmd.Context(), arg(args, 0))
				if err != nil {
					return err
				}
				info("Database \"" + dropped + "\" dropped successfully")
				return nil
			},
		},
		&cobra.Command{
			Use:   "exists [name]",
			Short: "Check whether a database exists",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				database := c.app.mysql.DatabaseName(cmd.Context(), arg(args, 0))
				exists, err := c.app.mysql.DatabaseExists(cmd.Context(), database)
				if err != nil {
					return err
				}
				if exists {
					info("Database \"" + database + "\" exists")
				} else {
					warning("Database \"" + database + "\" does not exist")
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "import <file> [name]",
			Short: "Import a .sql or .sql.gz dump into a database",
			Args:  cobra.RangeArgs(1, 2),
			RunE: func(cmd *cobra.Command, args []string) error {
				imported, err := c.app.mysql.ImportDatabase(cmd.Context(), args[0], arg(args, 1), false)
				if err != nil {
					return err
				}
				info("Database \"" + imported + "\" imported successfully")
				return nil
			},
		},
		&cobra.Command{
			Use:   "reimport <file> [name]",
			Short: "Drop a database and import it again from a dump",
			Args:  cobra.RangeArgs(1, 2),
			RunE: func(cmd *cobra.Command, args []string) error {
				imported, err := c.app.mysql.ReimportDatabase(cmd.Context(), args[0], arg(args, 1))
				if err != nil {
					return err
				}
				info("Database \"" + imported + "\" reimported successfully")
				return nil
			},
		},
		&cobra.Command{
			Use:   "export [filename|-] [name]",
			Short: "Export a database into a gzip compressed dump",
			Args:  cobra.MaximumNArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				export, err := c.app.mysql.ExportDatabase(cmd.Context(), arg(args, 0), arg(args, 1))
				if err != nil {
					return err
				}
				table([][2]string{{"database", export.Database}, {"filename", export.Filename}})
				return nil
			},
		},
		&cobra.Command{
			Use:   "password <old> [new]",
			Short: "Change the mysql root password and remember it",
			Args:  cobra.RangeArgs(1, 2),
			RunE: func(cmd *cobra.Command, args []string) error {
				newPwd := conf.DefaultRootPassword
				if len(args) > 1 {
					newPwd = args[1]
				}
				if err := c.app.mysql.SetRootPassword(cmd.Context(), args[0], newPwd); err != nil {
					return err
				}
				info("Root password changed")
				return nil
			},
		},
		newSnapshotCmd(c),
		newWatchCmd(c),
	)

	return cmd
}

func newSnapshotCmd(c *cli) *cobra.Command {
	var (
		schedule string
		keep     int
		dir      string
		once     bool
	)

	cmd := &cobra.Command{
		Use:   "snapshot [name]",
		Short: "Export a database on a schedule, keeping the newest snapshots",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			database := c.app.mysql.DatabaseName(ctx, arg(args, 0))
			if dir == "" {
				dir = filepath.Join(c.app.store.Dir(), "Snapshots", database)
			}

			scheduler := backup.NewScheduler(c.app.mysql, dir, database, keep)
			if !once {
				info("Taking snapshots of \"" + database + "\" into " + dir + " (" + schedule + ")")
				return scheduler.Run(ctx, schedule)
			}

			if err := scheduler.Load(); err != nil {
				return err
			}
			export, err := scheduler.Snapshot(ctx)
			if err != nil {
				return err
			}
			table([][2]string{{"database", export.Database}, {"snapshot", export.Filename}})
			return nil
		},
	}

	cmd.Flags().StringVar(&schedule, "schedule", "@hourly", "cron schedule, six fields with seconds or a descriptor like @every 30m")
	cmd.Flags().IntVar(&keep, "keep", 5, "number of snapshots to keep (at most 31)")
	cmd.Flags().StringVar(&dir, "dir", "", "snapshot directory (default <home>/Snapshots/<name>)")
	cmd.Flags().BoolVar(&once, "once", false, "take a single snapshot and exit")

	return cmd
}

func newWatchCmd(c *cli) *cobra.Command {
	var settle = backup.DefaultSettle

	cmd := &cobra.Command{
		Use:   "watch <file> [name]",
		Short: "Reimport a database every time its dump file changes",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			database := c.app.mysql.DatabaseName(ctx, arg(args, 1))

			w := backup.NewWatcher(c.app.mysql, args[0], database)
			w.Settle = settle
			info("Watching " + args[0] + " for \"" + database + "\", press ctrl-c to stop")

			return w.Run(ctx)
		},
	}

	cmd.Flags().DurationVar(&settle, "settle", backup.DefaultSettle, "quiet period after the last write before reimporting")

	return cmd
}

package service

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"text/tabwriter"
	"time"

	"hackblog/app/config"
	"hackblog/app/log"
	"hackblog/app/repositories"

	"github.com/spf13/cobra"
)

// NewRootCmd builds the hackblog command line.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "hackblog",
		Short:        "hackblog blog server",
		Version:      Version,
		SilenceUsage: true,
	}
	cmd.AddCommand(
		newVersionCmd(),
		newServeCmd(),
		newSeedCmd(),
		newListCmd(),
		newBackupCmd(),
		newRestoreCmd(),
		newCleanCmd(),
	)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "show version",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]string{"version": Version})
		},
	}
}

func newServeCmd() *cobra.Command {
	options := config.DefaultOptions()

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "run the blog service",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := config.Parse(cmd.Flags()); err != nil {
				return err
			}
			if err := log.SetLevel(options.LogLevel); err != nil {
				return err
			}
			defer log.Sync()

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()
			return RunAppServer(ctx, options, log.WithName("blog"))
		},
	}
	options.RegisterFlags(cmd.Flags())
	return cmd
}

func newSeedCmd() *cobra.Command {
	options := config.DefaultOptions()
	options.MockDelay = 0

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "store the mock posts and their comments in the data directory",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := config.Parse(cmd.Flags()); err != nil {
				return err
			}
			if options.DataDir == "" {
				return errNoDataDir
			}
			app, err := NewApp(options, log.WithName("seed"))
			if err != nil {
				return err
			}
			defer app.Close()

			n, err := Seed(cmd.Context(), app)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d posts into %s\n", n, options.DataDir)
			return nil
		},
	}
	options.RegisterFlags(cmd.Flags())
	return cmd
}

// storeOptions are the flags of the commands that work on the data directory only.
type storeOptions struct {
	DataDir string
}

func (o *storeOptions) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.DataDir, "data-dir", o.DataDir, "badger directory of the post store")
}

func (o *storeOptions) parse(cmd *cobra.Command) error {
	if err := config.Parse(cmd.Flags()); err != nil {
		return err
	}
	if o.DataDir == "" {
		return errNoDataDir
	}
	return nil
}

func newListCmd() *cobra.Command {
	options := &storeOptions{}
	var limit, offset int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "list the stored posts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := options.parse(cmd); err != nil {
				return err
			}
			db, err := repositories.Open(options.DataDir, log.WithName("list"))
			if err != nil {
				return err
			}
			defer db.Close()

			posts, err := repositories.NewBadgerPostRepository(db).List(limit, offset)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tLIKES\tLIKED\tCOMMENTS\tTITLE")
			for _, p := range posts {
				fmt.Fprintf(tw, "%s\t%d\t%t\t%d\t%s\n", p.ID, p.Likes, p.Liked, p.CommentCount, p.Title)
			}
			return tw.Flush()
		},
	}
	options.register(cmd)
	cmd.Flags().IntVar(&limit, "limit", 50, "maximum number of posts")
	cmd.Flags().IntVar(&offset, "offset", 0, "number of posts to skip")
	return cmd
}

func newBackupCmd() *cobra.Command {
	options := &storeOptions{}
	var dir string

	cmd := &cobra.Command{
		Use:   "backup",
		Short: "create a backup of the post store",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := options.parse(cmd); err != nil {
				return err
			}
			if _, err := os.Stat(options.DataDir); os.IsNotExist(err) {
				return fmt.Errorf("no database exists to backup at %s", options.DataDir)
			}
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("create backup directory: %w", err)
			}

			db, err := repositories.Open(options.DataDir, log.WithName("backup"))
			if err != nil {
				return err
			}
			defer db.Close()

			backupFile := filepath.Join(dir, fmt.Sprintf("backup_%d.db", time.Now().UnixNano()))
			f, err := os.Create(backupFile)
			if err != nil {
				return fmt.Errorf("create backup file: %w", err)
			}
			defer f.Close()

			if _, err := db.Backup(f, 0); err != nil {
				return fmt.Errorf("backup database: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Database backed up successfully to %s\n", backupFile)
			return nil
		},
	}
	options.register(cmd)
	cmd.Flags().StringVar(&dir, "dir", "data/backups", "directory the backup file is written to")
	return cmd
}

func newRestoreCmd() *cobra.Command {
	options := &storeOptions{}
	var yes bool

	cmd := &cobra.Command{
		Use:   "restore <backup-file>",
		Short: "restore the post store from a backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := options.parse(cmd); err != nil {
				return err
			}
			return restore(cmd, options.DataDir, args[0], yes)
		},
	}
	options.register(cmd)
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "replace an existing database without asking")
	return cmd
}

func restore(cmd *cobra.Command, dataDir, backupFile string, yes bool) (err error) {
	fi, err := os.Stat(backupFile)
	if os.IsNotExist(err) {
		return fmt.Errorf("backup file does not exist: %s", backupFile)
	}
	if err != nil {
		return err
	}
	if fi.Size() == 0 {
		return fmt.Errorf("backup file is empty: %s", backupFile)
	}

	if _, err := os.Stat(dataDir); err == nil {
		if !yes && !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), "Existing database found. Do you want to replace it?") {
			fmt.Fprintln(cmd.OutOrStdout(), "Operation cancelled")
			return nil
		}
		if err := os.RemoveAll(dataDir); err != nil {
			return fmt.Errorf("remove existing database: %w", err)
		}
	}

	db, err := repositories.Open(dataDir, log.WithName("restore"))
	if err != nil {
		return err
	}
	defer db.Close()

	f, err := os.Open(backupFile)
	if err != nil {
		return fmt.Errorf("open backup file: %w", err)
	}
	defer f.Close()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic occurred during restore: %v", r)
		}
	}()
	if err := db.Load(f, 4); err != nil {
		return fmt.Errorf("restore database: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Database restored successfully")
	return nil
}

func newCleanCmd() *cobra.Command {
	options := &storeOptions{}
	var yes bool

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "remove the post store",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := options.parse(cmd); err != nil {
				return err
			}
			if _, err := os.Stat(options.DataDir); os.IsNotExist(err) {
				fmt.Fprintln(cmd.OutOrStdout(), "Database is already clean (does not exist)")
				return nil
			}
			if !yes && !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), "Are you sure you want to clean the database? This cannot be undone.") {
				fmt.Fprintln(cmd.OutOrStdout(), "Operation cancelled")
				return nil
			}
			if err := os.RemoveAll(options.DataDir); err != nil {
				return fmt.Errorf("clean database: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Database cleaned successfully")
			return nil
		},
	}
	options.register(cmd)
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

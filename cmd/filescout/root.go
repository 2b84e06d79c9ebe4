package main

import (
	"fmt"
	"io"

	"filescout/internal/config"
	"filescout/internal/crypto"
	"filescout/internal/errors"
	"filescout/internal/jobs"
	"filescout/internal/listing"
	"filescout/internal/log"
	"filescout/internal/navigation"
	"filescout/internal/tui"
	"filescout/internal/watch"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

const watchBuffer = 16

type rootOptions struct {
	cfgFile    string
	passphrase bool
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "filescout [directory]",
		Short: "A keyboard-driven three-pane file browser",
		Long: `FileScout browses the filesystem in three panes: the parent directory,
the current directory and a preview of the selection. Files can be
renamed, created, edited, deleted and encrypted with AES-256-GCM
without leaving the terminal.`,
		Version:      version,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBrowser(cmd, opts, args)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.cfgFile, "config", "", "config file (default is $HOME/.config/filescout/config.yaml)")
	flags.Bool("debug", false, "enable debug logging")
	flags.String("log-file", "", "write logs to this file")
	flags.String("key-file", "", "file holding the encryption key")
	flags.BoolVar(&opts.passphrase, "passphrase", false, "prompt for a passphrase to derive the key")
	rootCmd.Flags().Bool("no-watch", false, "do not refresh when the directory changes on disk")

	rootCmd.AddCommand(newEncryptCmd(opts))
	rootCmd.AddCommand(newDecryptCmd(opts))
	rootCmd.AddCommand(newConfigCmd(opts))
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "filescout", version)
		},
	})

	return rootCmd
}

// setup loads the configuration and points the logger at its destination.
func setup(cmd *cobra.Command, opts *rootOptions) (*config.Config, io.Closer, error) {
	cfg, err := config.Load(opts.cfgFile, cmd.Flags())
	if err != nil {
		return nil, nil, err
	}
	closer, err := log.Setup(cfg.Log.File, cfg.Log.Debug, cfg.Log.JSON)
	if err != nil {
		return nil, nil, err
	}
	return cfg, closer, nil
}

func loadKey(cfg *config.Config, opts *rootOptions) ([]byte, error) {
	keyOpts := crypto.KeyOptions{
		EnvVar: cfg.Crypto.KeyEnv,
		File:   cfg.Crypto.KeyFile,
		Salt:   cfg.Crypto.Salt,
	}
	if opts.passphrase {
		keyOpts.Passphrase = func() ([]byte, error) {
			return crypto.ReadPassphrase("Passphrase: ")
		}
	}
	return crypto.LoadKey(keyOpts)
}

func runBrowser(cmd *cobra.Command, opts *rootOptions, args []string) error {
	cfg, closer, err := setup(cmd, opts)
	if err != nil {
		return err
	}
	defer closer.Close()

	dir := cfg.StartDir
	if len(args) > 0 {
		dir = args[0]
	}

	lister, err := listing.New(listing.Options{
		Ignore:       cfg.Listing.Ignore,
		HideDotfiles: !cfg.Listing.ShowHidden,
	})
	if err != nil {
		return err
	}
	nav := navigation.New(navigation.Options{Lister: lister, PreviewLimit: cfg.Preview.MaxBytes})
	if err := nav.Enter(dir, -1); err != nil {
		return err
	}

	// Browsing works without a key; jobs then report the missing key.
	key, keyErr := loadKey(cfg, opts)
	switch {
	case errors.Is(keyErr, errors.ErrNoKey):
		log.Info("no encryption key configured")
	case keyErr != nil:
		return keyErr
	}

	notifier := jobs.NewNotifier(cfg.Jobs.NotifyBuffer)
	defer notifier.Close()
	runner := jobs.NewRunner(nav, notifier, key, keyErr)

	var watcher *watch.Watcher
	if cfg.Watch.Enabled {
		if watcher, err = startWatcher(); err != nil {
			log.Warnf("directory watching disabled: %v", err)
		} else {
			defer watcher.Stop()
		}
	}

	m := tui.New(tui.Options{
		Navigator: nav,
		Runner:    runner,
		Watcher:   watcher,
		Suffix:    cfg.Crypto.Suffix,
		Palette:   cfg.Theme.Palette,
	})
	log.LogWithFields(log.F("directory", nav.Pwd()), log.F("version", version)).Info("starting browser")

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func startWatcher() (*watch.Watcher, error) {
	w, err := watch.New(watchBuffer)
	if err != nil {
		return nil, err
	}
	if err := w.Start(); err != nil {
		return nil, err
	}
	return w, nil
}

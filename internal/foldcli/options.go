package foldcli

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"funcfold/internal/config"
	"funcfold/internal/core/lang"
	"funcfold/internal/core/scan"
	"funcfold/internal/logging"
)

type Options struct {
	ConfigFile   string
	Language     string
	ScanAll      bool
	IncludeGlobs []string
	ExcludeGlobs []string
	Format       string
	Jobs         int
	LogLevel     string
	LogFormat    string

	cfg    *config.Config
	logger *slog.Logger
}

// flagKeys maps persistent flags onto config keys; a flag set on the
// command line wins over env and file.
var flagKeys = map[string]string{
	"all":        "scan.all",
	"glob":       "scan.include",
	"exclude":    "scan.exclude",
	"jobs":       "scan.jobs",
	"format":     "output.format",
	"log-level":  "log.level",
	"log-format": "log.format",
}

// Prepare loads configuration, folds it back into the options and builds
// the logger.
func (o *Options) Prepare(cmd *cobra.Command) error {
	v := config.NewViper(o.ConfigFile)
	if err := bindFlagKeys(v, cmd); err != nil {
		return err
	}
	if err := config.ReadIn(v); err != nil {
		return err
	}
	cfg, err := config.New(v)
	if err != nil {
		return err
	}
	o.apply(cfg)

	logger, err := logging.New(cmd.ErrOrStderr(), o.LogLevel, o.LogFormat)
	if err != nil {
		return err
	}
	o.logger = logger
	return nil
}

func bindFlagKeys(v *viper.Viper, cmd *cobra.Command) error {
	root := cmd.Root()
	for name, key := range flagKeys {
		f := root.PersistentFlags().Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind --%s: %w", name, err)
		}
	}
	return nil
}

func (o *Options) apply(cfg *config.Config) {
	o.cfg = cfg
	o.ScanAll = cfg.Scan.All
	o.IncludeGlobs = cfg.Scan.Include
	o.ExcludeGlobs = cfg.Scan.Exclude
	o.Jobs = cfg.Scan.Jobs
	o.Format = cfg.Output.Format
	o.LogLevel = cfg.Log.Level
	o.LogFormat = cfg.Log.Format
	o.normalize()
}

func (o *Options) normalize() {
	o.Language = lang.Normalize(o.Language)
	o.Format = strings.ToLower(strings.TrimSpace(o.Format))
	if o.Format == "" {
		o.Format = "default"
	}
}

func (o *Options) Config() *config.Config { return o.cfg }

func (o *Options) Logger() *slog.Logger {
	if o == nil || o.logger == nil {
		return logging.Discard()
	}
	return o.logger
}

func (o *Options) scanOptions() scan.Options {
	return scan.Options{
		IncludeGlobs: o.IncludeGlobs,
		ExcludeGlobs: o.ExcludeGlobs,
		ScanAll:      o.ScanAll,
		Language:     o.Language,
		Jobs:         o.Jobs,
	}
}

type optionsKey struct{}

func optionsFrom(cmd *cobra.Command) *Options {
	if cmd == nil {
		return nil
	}
	root := cmd.Root()
	if root == nil {
		root = cmd
	}
	v := root.Context().Value(optionsKey{})
	opts, _ := v.(*Options)
	return opts
}

func bindFlags(cmd *cobra.Command, opts *Options) {
	cmd.PersistentFlags().StringVar(&opts.ConfigFile, "config", "", "config file (default: ./funcfold.yaml)")
	cmd.PersistentFlags().StringVarP(&opts.Language, "lang", "l", "", "treat every file as this language (js, ts, tsx, py, ...)")
	cmd.PersistentFlags().BoolVarP(&opts.ScanAll, "all", "A", false, "scan hidden, ignored and vendored files too")
	cmd.PersistentFlags().StringSliceVarP(&opts.IncludeGlobs, "glob", "g", nil, "only scan these files (can repeat)")
	cmd.PersistentFlags().StringSliceVarP(&opts.ExcludeGlobs, "exclude", "x", nil, "exclude these files (comma separated list: -x *.min.js,*.d.ts)")
	cmd.PersistentFlags().StringVarP(&opts.Format, "format", "f", "default", "output format: "+strings.Join(config.Formats, "|"))
	cmd.PersistentFlags().IntVarP(&opts.Jobs, "jobs", "j", 0, "parallel file scans (default from config: 8)")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "info", "log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&opts.LogFormat, "log-format", "text", "log format (text, json)")
}

func ExecuteForTest(cmd *cobra.Command) (string, Options, error) {
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	err := cmd.Execute()

	opts := optionsFrom(cmd)
	if opts == nil {
		return out.String(), Options{}, err
	}
	return out.String(), *opts, err
}

func withOptionsContext(cmd *cobra.Command, opts *Options) {
	cmd.SetContext(context.WithValue(context.Background(), optionsKey{}, opts))
}

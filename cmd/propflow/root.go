package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/randalmurphal/propflow"
	"github.com/randalmurphal/propflow/config"
	"github.com/randalmurphal/propflow/notify"
	"github.com/randalmurphal/propflow/project"
	"github.com/randalmurphal/propflow/sysprop"
)

// globalOptions are the flags shared by every subcommand.
type globalOptions struct {
	root     string
	props    []string
	sysProps []string
	env      string
	userHome string
	webhook  string
	verbose  bool

	fs      afero.Fs
	environ func() []string
}

func newRootCmd() *cobra.Command {
	return newRootCmdWith(&globalOptions{
		fs:      afero.NewOsFs(),
		environ: os.Environ,
	})
}

func newRootCmdWith(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "propflow",
		Short:         "Resolve layered project properties",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.root, "root", "", "Root project directory (default: nearest settings.gradle)")
	flags.StringArrayVarP(&opts.props, "project-prop", "P", nil, "Project property override key=value")
	flags.StringArrayVarP(&opts.sysProps, "system-prop", "D", nil, "System property key=value")
	flags.StringVar(&opts.env, "env", "", "Environment name")
	flags.StringVar(&opts.userHome, "user-home", "", "Directory holding user property files (default: ~/.gradle)")
	flags.StringVar(&opts.webhook, "webhook", "", "URL to post resolution events to")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Log debug output")

	cmd.AddCommand(newResolveCmd(opts), newTokensCmd(opts), newCheckCmd(opts))
	return cmd
}

// session is a plugin bound to the project a command runs against.
type session struct {
	plugin *propflow.Plugin
	node   *project.Node
}

// open builds the project chain for dir and a plugin configured from flags.
func (o *globalOptions) open(cmd *cobra.Command, args []string) (*session, error) {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}
	dir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve directory: %w", err)
	}

	rootDir := o.root
	if rootDir == "" {
		if rootDir, err = config.FindRootDir(o.fs, dir); err != nil {
			return nil, err
		}
	}
	node, err := projectChain(rootDir, dir)
	if err != nil {
		return nil, err
	}

	overrides, err := parsePairs(o.props)
	if err != nil {
		return nil, fmt.Errorf("-P: %w", err)
	}
	sys, err := parsePairs(o.sysProps)
	if err != nil {
		return nil, fmt.Errorf("-D: %w", err)
	}
	if o.env != "" {
		envProp := overrides[config.EnvNamePropertyKey]
		if envProp == "" {
			envProp = config.DefaultEnvNameProperty
		}
		overrides[envProp] = o.env
	}

	level := slog.LevelWarn
	if o.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	pluginOpts := []propflow.Option{
		propflow.WithFs(o.fs),
		propflow.WithEnviron(o.environ),
		propflow.WithOverrides(overrides),
		propflow.WithSystemProps(sysprop.NewMapStore(sys)),
		propflow.WithLogger(logger),
	}
	if o.userHome != "" {
		pluginOpts = append(pluginOpts, propflow.WithUserHome(o.userHome))
	}
	if o.webhook != "" {
		hook := notify.NewWebhookNotifier(o.webhook, nil)
		hook.MinSeverity = notify.SeverityWarning
		pluginOpts = append(pluginOpts, propflow.WithNotifier(notify.NewMultiNotifier(notify.NewLogNotifier(logger), hook)))
	}

	plugin, err := propflow.New(pluginOpts...)
	if err != nil {
		return nil, err
	}
	return &session{plugin: plugin, node: node}, nil
}

// resolve applies the plugin to the session's project.
func (s *session) resolve(ctx context.Context) (*config.Result, error) {
	return s.plugin.ApplyProject(ctx, s.node)
}

// projectChain returns the node for dir with one ancestor per directory
// between it and rootDir.
func projectChain(rootDir, dir string) (*project.Node, error) {
	rel, err := filepath.Rel(rootDir, dir)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return nil, fmt.Errorf("%s is not inside root project %s", dir, rootDir)
	}

	node := project.NewNode(filepath.Base(rootDir), rootDir, nil)
	if rel == "." {
		return node, nil
	}
	for _, name := range strings.Split(rel, string(filepath.Separator)) {
		node = node.Child(name)
	}
	return node, nil
}

// parsePairs turns key=value flag values into a map. A bare key maps to
// the empty string.
func parsePairs(pairs []string) (map[string]string, error) {
	out := make(map[string]string, len(pairs))
	for _, p := range pairs {
		key, value, _ := strings.Cut(p, "=")
		if key == "" {
			return nil, fmt.Errorf("invalid property %q", p)
		}
		out[key] = value
	}
	return out, nil
}

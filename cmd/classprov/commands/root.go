package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/tender-barbarian/classprov/internal/config"
	"github.com/tender-barbarian/classprov/internal/emit"
	"github.com/tender-barbarian/classprov/internal/indexer"
	"github.com/tender-barbarian/classprov/internal/jdk"
)

// rootOptions holds the flags shared by every command.
type rootOptions struct {
	configPath  string
	javaVersion string
	indexJDK    bool
	javaHome    string
	properties  map[string]string
	artifacts   []string
	logLevel    string
	jsonOutput  bool
}

// Execute runs the root command.
func Execute(ctx context.Context, version string) error {
	return newRootCommand(version).ExecuteContext(ctx)
}

func newRootCommand(version string) *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "classprov",
		Short: "Resolve which package a compiled JVM class comes from",
		Long: `classprov builds a table from classfile to owning package out of the
declared dependency jars and, optionally, the JDK, and answers provenance
queries for SemanticDB symbols.

JDK classes are resolved from the boot classpath on Java 8 and earlier, and
from the runtime image ($JAVA_HOME/jmods) on Java 9 and later.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return setupLogging(opts.logLevel)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "config file path (YAML)")
	flags.StringVar(&opts.javaVersion, "java-version", "", "java.version of the target runtime, overrides the config")
	flags.BoolVar(&opts.indexJDK, "index-jdk", false, "attribute JDK classfiles to the runtime package")
	flags.StringVar(&opts.javaHome, "java-home", "", "JDK location for runtime image lookups (default $JAVA_HOME)")
	flags.StringToStringVar(&opts.properties, "property", nil, "system property of the target runtime, key=value (repeatable)")
	flags.StringArrayVar(&opts.artifacts, "artifact", nil, "declared dependency group:artifact:version=path (repeatable)")
	flags.StringVar(&opts.logLevel, "log-level", os.Getenv("LOG_LEVEL"), "log level: debug, info, warn, error")
	flags.BoolVar(&opts.jsonOutput, "json", false, "output in JSON format")

	rootCmd.AddCommand(newResolveCommand(opts))
	rootCmd.AddCommand(newRecordCommand(opts))
	rootCmd.AddCommand(newServeCommand(opts, version))

	return rootCmd
}

func setupLogging(level string) error {
	if level == "" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		return nil
	}
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}
	zerolog.SetGlobalLevel(lvl)
	return nil
}

// loadConfig reads the config file, if any, and applies flag overrides.
func (o *rootOptions) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := &config.Config{}
	if o.configPath != "" {
		var err error
		if cfg, err = config.Load(o.configPath); err != nil {
			return nil, err
		}
	}

	if o.javaVersion != "" {
		cfg.JavaVersion = o.javaVersion
	}
	if cmd.Flags().Changed("index-jdk") {
		cfg.IndexJDK = o.indexJDK
	}
	if o.javaHome != "" {
		cfg.JavaHome = o.javaHome
	}
	if cfg.JavaHome == "" {
		cfg.JavaHome = os.Getenv("JAVA_HOME")
	}
	for k, v := range o.properties {
		if cfg.SystemProperties == nil {
			cfg.SystemProperties = make(map[string]string)
		}
		cfg.SystemProperties[k] = v
	}
	for _, arg := range o.artifacts {
		a, err := config.ParseArtifact(arg)
		if err != nil {
			return nil, err
		}
		cfg.Artifacts = append(cfg.Artifacts, a)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// buildIndexer loads the configuration and scans every declared jar.
// w may be nil for commands that never record imports.
func (o *rootOptions) buildIndexer(cmd *cobra.Command, w emit.Writer) (*indexer.Indexer, error) {
	cfg, err := o.loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	rt, err := jdk.Classify(cfg.JavaVersion)
	if err != nil {
		return nil, err
	}

	logger := log.Logger
	idxOpts := indexer.Options{
		Artifacts:        cfg.PackageArtifacts(),
		IndexJDK:         cfg.IndexJDK,
		Runtime:          rt,
		SystemProperties: cfg.SystemProperties,
		Writer:           w,
		Logger:           &logger,
	}
	if cfg.IndexJDK && !rt.IsLegacy() && cfg.JavaHome != "" {
		idxOpts.Image = jdk.NewJmodImage(cfg.JavaHome, logger)
	}

	log.Info().Int("artifacts", len(idxOpts.Artifacts)).Stringer("runtime", rt).Msg("Indexing packages")
	idx, err := indexer.New(idxOpts)
	if err != nil {
		return nil, fmt.Errorf("building package table: %w", err)
	}
	return idx, nil
}

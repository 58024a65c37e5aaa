package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	pkginfo "github.com/launchbynttdata/go-pkginfo"
	"github.com/launchbynttdata/go-pkginfo/internal/buildinfo"
	"github.com/launchbynttdata/go-pkginfo/internal/config"
	"github.com/launchbynttdata/go-pkginfo/internal/envsource"
	"github.com/launchbynttdata/go-pkginfo/internal/generator"
	"github.com/launchbynttdata/go-pkginfo/internal/logging"
	"github.com/launchbynttdata/go-pkginfo/internal/metadata"
)

const (
	envType          = "PKGINFO_GEN_TYPE"
	envInput         = "PKGINFO_GEN_INPUT"
	envDecl          = "PKGINFO_GEN_DECL"
	envPackage       = "PKGINFO_GEN_PACKAGE"
	envOutput        = "PKGINFO_GEN_OUTPUT"
	envPrefix        = "PKGINFO_GEN_ENV_PREFIX"
	envFiles         = "PKGINFO_GEN_ENV_FILES"
	envDeriveVersion = "PKGINFO_GEN_DERIVE_VERSION"
	envAssert        = "PKGINFO_GEN_ASSERT"
	envImportPath    = "PKGINFO_GEN_IMPORT_PATH"
	envLogLevel      = "PKGINFO_GEN_LOG_LEVEL"

	// Set by go generate.
	envGoFile    = "GOFILE"
	envGoPackage = "GOPACKAGE"
)

const (
	flagType          = "type"
	flagInput         = "input"
	flagDecl          = "decl"
	flagPackage       = "package"
	flagOutput        = "output"
	flagEnvPrefix     = "env-prefix"
	flagEnvFile       = "env-file"
	flagDeriveVersion = "derive-version"
	flagAssert        = "assert"
	flagImportPath    = "import-path"
	flagLogLevel      = "log-level"

	stdio          = "-"
	outputSuffix   = "_pkginfo.go"
	requiredFormat = "%s is required (set %s or --%s)"
)

// Execute runs the CLI root command with the provided context.
func Execute(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	return newRootCommand().ExecuteContext(ctx)
}

type generateFlagSet struct {
	typeName   *stringFlag
	input      *stringFlag
	decl       *stringFlag
	pkg        *stringFlag
	output     *stringFlag
	envPrefix  *stringFlag
	envFiles   *stringSliceFlag
	derive     *boolFlag
	assert     *boolFlag
	importPath *stringFlag
	logLevel   *stringFlag
}

type generateConfig struct {
	typeName   string
	input      string
	decl       string
	pkg        string
	output     string
	envPrefix  string
	envFiles   []string
	derive     bool
	assert     bool
	importPath string
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pkginfo-gen",
		Short: "Generate PackageInfo accessors from build-time metadata",
		Long: "pkginfo-gen reads package metadata from " + metadata.DefaultPrefix + "_* variables and writes\n" +
			"PackageInfo accessor methods for a type, with the values baked in as literals.\n" +
			"Run it from a go:generate directive next to the type declaration.",
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	cmd.Version = versionString()
	cmd.SetVersionTemplate("pkginfo-gen {{.Version}}\n")

	flags := bindGenerateFlags(cmd)
	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		return runGenerate(cmd, flags)
	}

	cmd.AddCommand(
		newFieldsCommand(),
		newVersionCommand(),
	)

	return cmd
}

func bindGenerateFlags(cmd *cobra.Command) *generateFlagSet {
	fs := cmd.Flags()
	return &generateFlagSet{
		typeName:   bindStringFlag(fs, flagType, "t", envType, "", "Type to generate accessors for"),
		input:      bindStringFlag(fs, flagInput, "i", envInput, "", "Go source file declaring the type (default $"+envGoFile+")"),
		decl:       bindRawFlag(fs, flagDecl, "", envDecl, "", "Type declaration to generate for instead of --input; '-' reads stdin"),
		pkg:        bindStringFlag(fs, flagPackage, "", envPackage, "", "Package clause used with --decl (default $"+envGoPackage+")"),
		output:     bindStringFlag(fs, flagOutput, "o", envOutput, "", "Output file; '-' writes to stdout (default <type>"+outputSuffix+")"),
		envPrefix:  bindStringFlag(fs, flagEnvPrefix, "", envPrefix, metadata.DefaultPrefix, "Prefix of the metadata variables"),
		envFiles:   bindStringSliceFlag(fs, flagEnvFile, "", envFiles, nil, "Dotenv files with metadata; the process environment takes precedence"),
		derive:     bindBoolFlag(fs, flagDeriveVersion, "", envDeriveVersion, false, "Fill empty version components from the full version"),
		assert:     bindBoolFlag(fs, flagAssert, "", envAssert, true, "Emit a compile-time PackageInfo conformance check"),
		importPath: bindStringFlag(fs, flagImportPath, "", envImportPath, generator.DefaultImportPath, "Import path of the PackageInfo interface"),
		logLevel:   bindStringFlag(cmd.PersistentFlags(), flagLogLevel, "", envLogLevel, logging.LevelTerse, "Log verbosity (quiet, terse or verbose)"),
	}
}

func runGenerate(cmd *cobra.Command, flags *generateFlagSet) error {
	logger, err := buildLogger(flags.logLevel)
	if err != nil {
		return err
	}
	defer func() {
		_ = logger.Sync()
	}()

	resolver := config.NewResolver(logger)
	cfg, err := flags.resolve(resolver)
	if err != nil {
		return err
	}

	decl, err := loadDecl(cmd.InOrStdin(), cfg)
	if err != nil {
		return err
	}

	source, err := envsource.Load(cfg.envFiles...)
	if err != nil {
		return err
	}

	gen := generator.New(logger, source.Lookup)
	out, err := gen.Generate(generator.Request{
		Decl:          decl,
		EnvPrefix:     cfg.envPrefix,
		DeriveVersion: cfg.derive,
		Options: generator.Options{
			Command:    generator.DefaultCommand,
			ImportPath: cfg.importPath,
			Assert:     cfg.assert,
		},
	})
	if err != nil {
		return err
	}

	if cfg.output == stdio {
		if _, err := cmd.OutOrStdout().Write(out); err != nil {
			return fmt.Errorf("writing generated code: %w", err)
		}
		return nil
	}

	if err := os.WriteFile(cfg.output, out, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", cfg.output, err)
	}
	logger.Info("wrote accessors", zap.String("file", cfg.output), zap.String("type", decl.Signature()))
	return nil
}

func buildLogger(level *stringFlag) (*zap.Logger, error) {
	nopResolver := config.NewResolver(zap.NewNop())
	logger, err := logging.New(level.Value(nopResolver))
	if err != nil {
		return nil, fmt.Errorf("configuring logger: %w", err)
	}
	// Re-resolve with the real logger so a flag/env conflict is reported.
	_ = level.Value(config.NewResolver(logger))
	return logger, nil
}

func (f *generateFlagSet) resolve(resolver config.Resolver) (generateConfig, error) {
	cfg := generateConfig{
		typeName:   f.typeName.Value(resolver),
		input:      f.input.Value(resolver),
		decl:       f.decl.Value(resolver),
		pkg:        f.pkg.Value(resolver),
		output:     f.output.Value(resolver),
		envPrefix:  f.envPrefix.Value(resolver),
		envFiles:   f.envFiles.Value(resolver),
		importPath: f.importPath.Value(resolver),
	}

	var err error
	if cfg.derive, err = f.derive.Value(resolver); err != nil {
		return generateConfig{}, err
	}
	if cfg.assert, err = f.assert.Value(resolver); err != nil {
		return generateConfig{}, err
	}

	if strings.TrimSpace(cfg.decl) != "" {
		if cfg.typeName != "" {
			return generateConfig{}, fmt.Errorf("--%s and --%s are mutually exclusive", flagDecl, flagType)
		}
		if cfg.pkg == "" {
			cfg.pkg = os.Getenv(envGoPackage)
		}
		if cfg.pkg == "" {
			return generateConfig{}, fmt.Errorf("package is required with --%s (set %s, %s or --%s)", flagDecl, envPackage, envGoPackage, flagPackage)
		}
		if cfg.output == "" {
			cfg.output = stdio
		}
		return cfg, nil
	}

	if cfg.typeName == "" {
		return generateConfig{}, fmt.Errorf(requiredFormat, flagType, envType, flagType)
	}
	if cfg.input == "" {
		cfg.input = os.Getenv(envGoFile)
	}
	if cfg.input == "" {
		return generateConfig{}, fmt.Errorf("input is required (set %s, %s or --%s)", envInput, envGoFile, flagInput)
	}
	if cfg.output == "" {
		cfg.output = defaultOutput(cfg.input, cfg.typeName)
	}
	return cfg, nil
}

func defaultOutput(input, typeName string) string {
	return filepath.Join(filepath.Dir(input), strings.ToLower(typeName)+outputSuffix)
}

func loadDecl(stdin io.Reader, cfg generateConfig) (generator.TypeDecl, error) {
	if strings.TrimSpace(cfg.decl) == "" {
		return generator.FindDecl(cfg.input, nil, cfg.typeName)
	}

	src := cfg.decl
	if strings.TrimSpace(src) == stdio {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return generator.TypeDecl{}, fmt.Errorf("reading declaration from stdin: %w", err)
		}
		src = string(data)
	}
	return generator.ParseDecl(cfg.pkg, src)
}

func newFieldsCommand() *cobra.Command {
	var prefixFlag *stringFlag

	cmd := &cobra.Command{
		Use:   "fields",
		Short: "List the metadata variables and the accessor each one feeds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			prefix := prefixFlag.Value(config.NewResolver(zap.NewNop()))
			w := cmd.OutOrStdout()
			for _, f := range metadata.Fields() {
				if _, err := fmt.Fprintf(w, "%-32s %s\n", f.EnvKey(prefix), f.Method()); err != nil {
					return fmt.Errorf("writing fields: %w", err)
				}
			}
			return nil
		},
	}

	prefixFlag = bindStringFlag(cmd.Flags(), flagEnvPrefix, "", envPrefix, metadata.DefaultPrefix, "Prefix of the metadata variables")
	return cmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build metadata",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := buildinfo.Info{}
			if _, err := fmt.Fprintln(cmd.OutOrStdout(), pkginfo.Summary(info)); err != nil {
				return fmt.Errorf("writing version info: %w", err)
			}
			if repo, ok := info.Repository(); ok {
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "repository: %s\n", repo); err != nil {
					return fmt.Errorf("writing version info: %w", err)
				}
			}
			return nil
		},
	}
}

func versionString() string {
	if v, ok := (buildinfo.Info{}).Version(); ok {
		return v
	}
	return "dev"
}

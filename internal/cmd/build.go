package cmd

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/a-jentleman/pseudo-enum/internal/config"
	"github.com/a-jentleman/pseudo-enum/internal/gogen"
	"github.com/a-jentleman/pseudo-enum/internal/luau"
)

func newBuildCmd(opts *options) *cobra.Command {
	buildCmd := &cobra.Command{
		Use:   "build",
		Short: "Generate the Luau module described by the configuration file",
		Long: `Generate the Luau module described by the configuration file.

The module is written to build_path, replacing any previous version. When go_build_path is set, a Go file declaring the same enums is written as well.`,
		Example: "pseudo-enum build --config enums.toml --out src/Shared/Enums.luau",
		Args:    noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBuild(cmd, opts)
		},
	}

	buildCmd.Flags().StringVarP(&opts.out, "out", "o", "", "output file to create. If not specified, output defaults to build_path from the configuration. As special cases, you can specify <STDOUT> or <STDERR> to output to standard output or standard error")

	return buildCmd
}

func runBuild(cmd *cobra.Command, opts *options) error {
	path := opts.configPath(cmd)
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	for _, key := range cfg.Missing {
		opts.log.Warn().Str("config", path).Str("key", key).Msg("setting is missing, using its default")
	}

	for _, key := range cfg.Deprecated {
		opts.log.Warn().Str("config", path).Str("key", key).Msg("setting is deprecated and ignored")
	}

	opts.log.Debug().Str("config", path).Int("enums", len(cfg.Enums)).Msg("loaded configuration")

	out := cfg.BuildPath
	if f := cmd.Flag("out"); f.Changed {
		out = f.Value.String()
	}

	code, err := luau.Dump(cfg)
	if err != nil {
		return &config.ValidationError{Reason: err.Error()}
	}

	if err = writeOutput(out, code, opts); err != nil {
		return err
	}
	opts.log.Info().Str("path", out).Int("enums", len(cfg.Enums)).Msg("wrote luau module")

	if cfg.GoBuildPath == "" {
		return nil
	}

	pkgName := cfg.GoPackage
	if pkgName == "" {
		pkgName = gogen.PackageName(cfg.GoBuildPath)
	}

	var buf bytes.Buffer
	if err = gogen.Render(&buf, cfg, pkgName); err != nil {
		return &config.ValidationError{Reason: fmt.Sprintf("go output: %v", err)}
	}

	if err = writeOutput(cfg.GoBuildPath, buf.Bytes(), opts); err != nil {
		return err
	}
	opts.log.Info().Str("path", cfg.GoBuildPath).Str("package", pkgName).Msg("wrote go file")

	return nil
}

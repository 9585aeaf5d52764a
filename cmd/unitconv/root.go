package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/renjie/prism-units/pkg/adapters/calculator"
	"github.com/renjie/prism-units/pkg/adapters/catalog"
	"github.com/renjie/prism-units/pkg/core/ports"
	"github.com/renjie/prism-units/pkg/core/services"
)

// app 命令执行时共享的依赖
type app struct {
	cfg       *viper.Viper
	logger    *slog.Logger
	registry  *services.Registry
	converter *services.UnitConverter
}

func newRootCommand() *cobra.Command {
	a := &app{cfg: viper.New()}

	root := &cobra.Command{
		Use:           "unitconv",
		Short:         "Convert quantities between units of measurement",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd.ErrOrStderr())
		},
	}

	flags := root.PersistentFlags()
	flags.Int("precision", -1, "round results to this many decimal places (-1 keeps full precision)")
	flags.String("calculator", "simple", "arithmetic backend: simple (float64) or binary (arbitrary precision)")
	flags.Int32("scale", calculator.DefaultScale, "decimal places kept by the binary calculator for division")
	flags.String("catalog", "", "YAML, JSON or CSV file with additional unit definitions")
	flags.String("catalog-root", "", "dot path of the unit list inside a YAML/JSON catalog")
	flags.Bool("replace-catalog", false, "replace the built-in catalog instead of extending it")
	flags.String("log-level", "warn", "log level: debug, info, warn, error")
	bindFlags(a.cfg, flags)

	root.AddCommand(
		newConvertCommand(a),
		newListCommand(a),
		newCategoriesCommand(a),
		newExportCommand(a),
		newBatchCommand(a),
	)
	return root
}

// bindFlags 绑定 flag 与 UNITCONV_* 环境变量 (flag 优先)
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) {
	v.SetEnvPrefix("UNITCONV")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	_ = v.BindPFlags(flags)
}

func (a *app) init(stderr io.Writer) error {
	// 1. Logger
	var level slog.Level
	if err := level.UnmarshalText([]byte(a.cfg.GetString("log-level"))); err != nil {
		return fmt.Errorf("invalid log level %q: %w", a.cfg.GetString("log-level"), err)
	}
	a.logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	// 2. Calculator
	var calc ports.Calculator
	switch name := strings.ToLower(a.cfg.GetString("calculator")); name {
	case "simple", "float":
		calc = calculator.NewSimpleCalculator()
	case "binary", "decimal":
		calc = calculator.NewBinaryCalculator(calculator.WithScale(a.cfg.GetInt32("scale")))
	default:
		return fmt.Errorf("unknown calculator %q (want simple or binary)", name)
	}

	// 3. Registry
	a.registry = catalog.NewDefaultRegistry(services.WithRegistryLogger(a.logger))
	if path := a.cfg.GetString("catalog"); path != "" {
		if err := a.loadCatalog(path); err != nil {
			return err
		}
	}
	if err := a.registry.Validate(); err != nil {
		return fmt.Errorf("invalid unit catalog: %w", err)
	}

	// 4. Converter
	a.converter = services.NewUnitConverter(a.registry, calc,
		services.WithPrecision(a.cfg.GetInt("precision")),
		services.WithLogger(a.logger),
	)
	return nil
}

func (a *app) loadCatalog(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open catalog: %w", err)
	}
	defer f.Close()

	var records []catalog.Record
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		var result *catalog.LoadResult
		records, result, err = catalog.DecodeCSV(f)
		if err != nil {
			return err
		}
		if result.Failed > 0 {
			a.logger.Warn("catalog rows skipped", "path", path, "failed", result.Failed, "total", result.Total)
		}
	} else {
		records, err = catalog.ReadYAML(f, a.cfg.GetString("catalog-root"))
		if err != nil {
			return err
		}
	}

	units, err := catalog.Build(records)
	if err != nil {
		return fmt.Errorf("invalid catalog %s: %w", path, err)
	}
	if a.cfg.GetBool("replace-catalog") {
		a.registry.LoadUnits(units...)
	} else {
		a.registry.AddUnits(units...)
	}
	a.logger.Info("catalog loaded", "path", path, "units", len(units), "replace", a.cfg.GetBool("replace-catalog"))
	return nil
}

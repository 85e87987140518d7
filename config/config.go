// Package config resolves the run configuration for the CLI. Values
// come from built-in defaults, an optional YAML file, and
// REGRESS_-prefixed environment variables, in rising precedence.
package config

import (
	"github.com/spf13/viper"

	"github.com/sawruhv/Less-Stress-More-Regress/analysis"
	regressErrors "github.com/sawruhv/Less-Stress-More-Regress/pkg/errors"
)

// envPrefix namespaces the environment overrides, e.g. REGRESS_SEED.
const envPrefix = "REGRESS"

// configName is the file looked up in the working directory when no
// explicit path is given.
const configName = "regress"

// fileConfig mirrors analysis.Params with the file's key names.
type fileConfig struct {
	DataPath       string  `mapstructure:"data_path"`
	OutputDir      string  `mapstructure:"output_dir"`
	Seed           int64   `mapstructure:"seed"`
	TrainFraction  float64 `mapstructure:"train_fraction"`
	Alpha          float64 `mapstructure:"alpha"`
	CookMultiplier float64 `mapstructure:"cook_multiplier"`
	BoxCoxMin      float64 `mapstructure:"boxcox_min"`
	BoxCoxMax      float64 `mapstructure:"boxcox_max"`
	BoxCoxStep     float64 `mapstructure:"boxcox_step"`
	MaxSteps       int     `mapstructure:"max_steps"`
}

// Load resolves and validates the run parameters. With an empty path
// it looks for an optional regress.yaml in the working directory; an
// explicit path must exist.
func Load(path string) (analysis.Params, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	def := analysis.DefaultParams()
	v.SetDefault("data_path", def.DataPath)
	v.SetDefault("output_dir", def.OutputDir)
	v.SetDefault("seed", def.Seed)
	v.SetDefault("train_fraction", def.TrainFraction)
	v.SetDefault("alpha", def.Alpha)
	v.SetDefault("cook_multiplier", def.CookMultiplier)
	v.SetDefault("boxcox_min", def.BoxCoxMin)
	v.SetDefault("boxcox_max", def.BoxCoxMax)
	v.SetDefault("boxcox_step", def.BoxCoxStep)
	v.SetDefault("max_steps", def.MaxSteps)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return analysis.Params{}, regressErrors.Wrap(err, "config.Load")
		}
	} else {
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		// The file is optional in discovery mode.
		_ = v.ReadInConfig()
	}

	var fc fileConfig
	if err := v.Unmarshal(&fc); err != nil {
		return analysis.Params{}, regressErrors.Wrap(err, "config.Load")
	}

	p := analysis.Params{
		DataPath:       fc.DataPath,
		OutputDir:      fc.OutputDir,
		Seed:           fc.Seed,
		TrainFraction:  fc.TrainFraction,
		Alpha:          fc.Alpha,
		CookMultiplier: fc.CookMultiplier,
		BoxCoxMin:      fc.BoxCoxMin,
		BoxCoxMax:      fc.BoxCoxMax,
		BoxCoxStep:     fc.BoxCoxStep,
		MaxSteps:       fc.MaxSteps,
	}
	if err := p.Validate(); err != nil {
		return analysis.Params{}, err
	}
	return p, nil
}

package source

import (
	"fmt"
	"log/slog"

	"github.com/0xalexb/hjarta-config/component"
	"github.com/0xalexb/hjarta-config/config"
	"github.com/0xalexb/hjarta-config/config/fetcher/file"
	"github.com/0xalexb/hjarta-config/data"

	"go.uber.org/fx"
)

func nameTag(name string) string {
	return fmt.Sprintf(`name:"%s"`, name)
}

// NewModule creates an Fx module for a named file source.
// The name is used as both the module name and the DI named tag for Config,
// *Source and data.ConfigData.
// If any options are passed, the module supplies Config to DI from those options.
// Otherwise, Config must be provided externally.
//
//nolint:ireturn // fx.Option is the standard return type for Fx modules
func NewModule(name string, opts ...Option) fx.Option {
	if name == "" {
		return fx.Error(ErrEmptyName)
	}

	var cfg Config

	for _, apply := range opts {
		apply(&cfg)
	}

	hasConfigFromOptions := len(opts) > 0

	var moduleOpts []fx.Option

	if hasConfigFromOptions {
		moduleOpts = append(moduleOpts, fx.Supply(
			fx.Annotate(cfg, fx.ResultTags(nameTag(name))),
		))
	}

	moduleOpts = append(moduleOpts,
		fx.Provide(
			fx.Annotate(
				func(lifecycle fx.Lifecycle, sourceCfg Config) (*Source, error) {
					src, err := NewSource(name, sourceCfg, nil)
					if err != nil {
						return nil, err
					}

					lifecycle.Append(fx.Hook{
						OnStop: src.Stop,
					})

					return src, nil
				},
				fx.ParamTags("", nameTag(name)),
				fx.ResultTags(nameTag(name)),
			),
			fx.Annotate(
				func(src *Source) data.ConfigData { return src.Data() },
				fx.ParamTags(nameTag(name)),
				fx.ResultTags(nameTag(name)),
			),
		),
	)

	return fx.Module(name, moduleOpts...)
}

// NewComponentModule creates an Fx module providing a named
// *component.ConfigData loaded from the component directory dir, described by
// the meta document metaFile inside it.
//
//nolint:ireturn // fx.Option is the standard return type for Fx modules
func NewComponentModule(name, dir, metaFile string) fx.Option {
	if name == "" {
		return fx.Error(ErrEmptyName)
	}

	return fx.Module(name,
		fx.Provide(
			fx.Annotate(
				func() (*component.ConfigData, error) {
					members := file.NewDir(dir)

					cfg, err := config.ComponentProvider(members.Read, metaFile, nil)
					if err != nil {
						return nil, err
					}

					slog.Info("component loaded", "name", name, "dir", members.Root())

					return cfg, nil
				},
				fx.ResultTags(nameTag(name)),
			),
		),
	)
}

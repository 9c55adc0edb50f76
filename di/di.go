// Package di wires the config store into go.uber.org/fx applications.
package di

import (
	config "github.com/27escape/App-Basis"

	"go.uber.org/fx"
)

// Module provides a *config.Config built from filename and opts to the
// fx graph. Persistence stays explicit: no lifecycle hook stores the
// tree on shutdown, callers decide when Store runs.
func Module(filename string, opts ...config.Option) fx.Option {
	return fx.Module("config",
		fx.Provide(func() (*config.Config, error) {
			return config.New(filename, opts...)
		}),
	)
}

// Supply places an already-constructed Config into the fx graph, for
// tests and callers that build the instance themselves.
func Supply(cfg *config.Config) fx.Option {
	return fx.Module("config", fx.Supply(cfg))
}

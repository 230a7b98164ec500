// Package autoload configures the global logger from the LOG_* environment
// on import:
//
//	import _ "github.com/dlimars/centralai/pkg/logger/autoload"
package autoload

import (
	configx "github.com/dlimars/centralai/pkg/config"
	logx "github.com/dlimars/centralai/pkg/logger"
)

func init() {
	cfg, err := configx.New[logx.Config]("LOG")
	if err != nil {
		logx.Init()
		return
	}
	logx.Init(*cfg)
}

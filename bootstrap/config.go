package bootstrap

import (
	"github.com/kbukum/micscribe/config"
)

// Config is the interface constraint for application configuration types.
// Any struct embedding config.ServiceConfig satisfies it through promoted
// methods when used as a pointer.
//
//	type AppConfig struct {
//	    config.ServiceConfig `mapstructure:",squash"`
//	    Supabase supabase.Config `mapstructure:"supabase"`
//	}
//
//	app, err := bootstrap.NewApp[*AppConfig](&cfg)
type Config interface {
	GetServiceConfig() *config.ServiceConfig
	ApplyDefaults()
	Validate() error
}

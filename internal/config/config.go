package config

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	noderewardsconfig "github.com/gaze-network/node-rewards/modules/noderewards/config"
	"github.com/gaze-network/node-rewards/pkg/logger"
	"github.com/gaze-network/node-rewards/pkg/logger/slogx"
	"github.com/gaze-network/node-rewards/pkg/middleware/requestcontext"
	"github.com/gaze-network/node-rewards/pkg/middleware/requestlogger"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var (
	isInit bool
	mu     sync.Mutex
	config = &Config{
		Logger: logger.Config{
			Output: "TEXT",
		},
		HTTPServer: HTTPServerConfig{
			Port: 8080,
		},
		Modules: Modules{
			NodeRewards: noderewardsconfig.Config{
				Database: "memory",
				DefaultNodeType: noderewardsconfig.NodeType{
					Name:          "Default",
					Price:         10,
					ClaimInterval: time.Hour,
					RewardRate:    1,
				},
				Fees: noderewardsconfig.Fees{
					FutureFee:        10,
					RewardsFee:       60,
					LiquidityPoolFee: 10,
					CashoutFee:       10,
				},
				SwapAmount: 1000,
				Legacy: noderewardsconfig.Legacy{
					Source: "none",
				},
			},
		},
	}
)

type Config struct {
	Logger     logger.Config    `mapstructure:"logger"`
	HTTPServer HTTPServerConfig `mapstructure:"http_server"`
	Modules    Modules          `mapstructure:"modules"`
}

type Modules struct {
	NodeRewards noderewardsconfig.Config `mapstructure:"noderewards"`
}

type HTTPServerConfig struct {
	Port         int                               `mapstructure:"port"`
	AdminToken   string                            `mapstructure:"admin_token"`   // Bearer token of admin endpoints. Admin endpoints are disabled when empty.
	ServiceToken string                            `mapstructure:"service_token"` // Bearer token of the gateway acting for owners through X-Caller-Address.
	Logger       requestlogger.Config              `mapstructure:"logger"`
	RequestIP    requestcontext.WithClientIPConfig `mapstructure:"request_ip"`
}

// Parse parse the configuration from environment variables
func Parse(configFile ...string) Config {
	mu.Lock()
	defer mu.Unlock()
	return parse(configFile...)
}

// Load returns the loaded configuration
func Load() Config {
	mu.Lock()
	defer mu.Unlock()
	if isInit {
		return *config
	}
	return parse()
}

// BindPFlag binds a specific key to a pflag (as used by cobra).
// Example (where serverCmd is a Cobra instance):
//
//	serverCmd.Flags().Int("port", 1138, "Port to run Application server on")
//	Viper.BindPFlag("port", serverCmd.Flags().Lookup("port"))
func BindPFlag(key string, flag *pflag.Flag) {
	if err := viper.BindPFlag(key, flag); err != nil {
		logger.Panic("Something went wrong, failed to bind flag for config", slogx.String("package", "config"), slogx.Error(err))
	}
}

// SetDefault sets the default value for this key.
// Default only used when no value is provided by the user via flag, config or ENV.
func SetDefault(key string, value any) { viper.SetDefault(key, value) }

func parse(configFile ...string) Config {
	ctx := logger.WithContext(context.Background(), slogx.String("package", "config"))

	if len(configFile) > 0 && configFile[0] != "" {
		viper.SetConfigFile(configFile[0])
	} else {
		viper.AddConfigPath("./")
		viper.SetConfigName("config")
	}

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		var errNotfound viper.ConfigFileNotFoundError
		if errors.As(err, &errNotfound) {
			logger.WarnContext(ctx, "Config file not found, use default config value", slogx.Error(err))
		} else {
			logger.PanicContext(ctx, "Invalid config file", slogx.Error(err))
		}
	}

	if err := viper.Unmarshal(&config); err != nil {
		logger.PanicContext(ctx, "Something went wrong, failed to unmarshal config", slogx.Error(err))
	}

	isInit = true
	return *config
}

package cmd

import (
	"os"
	"strings"
	"time"

	mhttp "github.com/kasuboski/showtrack/pkg/http"
	"github.com/kasuboski/showtrack/pkg/tracking/mal"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:           "showtrack",
	Short:         "track shows, episode files and watch progress",
	Long:          `showtrack keeps a local catalog of shows and their episode files and syncs watch progress with a tracking service`,
	SilenceUsage:  true,
	SilenceErrors: false,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file")
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}

	viper.SetEnvPrefix("SHOWTRACK")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", ""))
	viper.AutomaticEnv()

	viper.SetDefault("storage.filePath", "showtrack.sqlite")

	viper.SetDefault("library.root", "")

	viper.SetDefault("tracking.provider", "local")
	viper.SetDefault("tracking.retries", 1)
	viper.SetDefault("tracking.retryDelay", time.Second)
	viper.SetDefault("tracking.mal.clientID", "")
	viper.SetDefault("tracking.mal.accessToken", "")
	viper.SetDefault("tracking.mal.apiURL", mal.DefaultAPIURL)
	viper.SetDefault("tracking.mal.jikanURL", mal.DefaultJikanURL)
	viper.SetDefault("tracking.mal.maxRetries", mhttp.DefaultMaxRetries)
	viper.SetDefault("tracking.mal.backoff", mhttp.DefaultBaseBackoff)

	viper.SetDefault("server.port", 8080)

	viper.SetDefault("log.file", "")
	viper.SetDefault("log.maxSizeMB", 10)
	viper.SetDefault("log.maxBackups", 3)
	viper.SetDefault("log.maxAgeDays", 28)
}

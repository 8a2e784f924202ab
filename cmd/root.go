package cmd

import (
	"fmt"
	"os"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd is the isurf binary's base command; read_isurf (cmd/isurf.go)
// is registered against it in init().
var rootCmd = &cobra.Command{
	Use:   "isurf",
	Short: "Reconstruct implicit iso-surfaces from a distributed scalar grid",
	Long: `isurf reads a grid of per-corner scalar samples and a distribution
threshold, tessellates the implicit iso-surface they define into
triangles (3D) or line segments (2D) via Lewiner marching cubes/squares,
and reconciles the result across every rank that owns a slice of the
grid so shared faces agree.`,
}

// Execute runs the command tree; main.go calls this and nothing else.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.isurf.yaml)")
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		viper.AddConfigPath(home)
		viper.SetConfigName(".isurf")
	}
	viper.AutomaticEnv()
	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}
}

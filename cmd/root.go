package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dimtools/armortrim/internal/utils"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "armortrim",
	Short: "Find redundant Destiny armor in a DIM export.",
	Long: `armortrim reads the Armor.csv export from Destiny Item Manager and recommends
which pieces to delete.

Every slot is ranked under all 720 orderings of the six stats. A piece is kept
if it is the best choice for at least one ordering. Everything else is listed,
together with a DIM search query that highlights it.

Artifice armor is treated as six pieces, each with +3 on a different stat.
Masterwork bonuses and mods are ignored.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.armortrim.yaml)")

	// Global flags
	rootCmd.PersistentFlags().StringP("loglevel", "l", "info", "Set log level. Available: debug, info, warn, error, fatal")
	rootCmd.PersistentFlags().String("dbpath", "", "Path to the run history SQLite file (default $HOME/.config/armortrim/armortrim.sqlite)")
}

func setDefaults() {
	viper.SetDefault("input.path", "destinyArmor.csv")
	viper.SetDefault("filter.ignore_rarity", []string{"Common", "Uncommon", "Rare", "Exotic"})
	viper.SetDefault("filter.ignore_tags", []string{"archive", "infuse", "junk"})
	viper.SetDefault("filter.ignore_hashtags", []string{"#TRIMIGNORE", "#TESTBUILD"})
	viper.SetDefault("filter.include_locations", []string{"Hunter", "Titan", "Warlock", "Vault"})
	viper.SetDefault("filter.include_classes", []string{"Warlock"})
	viper.SetDefault("filter.ignore_in_loadout", true)
	viper.SetDefault("ranking.multipliers", []float64{3.0, 2.8, 2.0, 1.6, 1.3, 1.0})
	viper.SetDefault("ranking.bonus_amount", 3)
	viper.SetDefault("ranking.bonus_marker", "artifice")
	viper.SetDefault("ranking.parallel", false)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	// Init log library
	levelString, _ := rootCmd.PersistentFlags().GetString("loglevel")
	if err := utils.SetLogLevel(levelString); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	setDefaults()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		viper.AddConfigPath(home)
		viper.SetConfigName(".armortrim")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("armortrim")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok && cfgFile == "" {
			// Config file not found; create it with defaults.
			home, _ := homedir.Dir()
			configPath := home + "/.armortrim.yaml"
			if err := viper.SafeWriteConfigAs(configPath); err != nil {
				utils.Log.Warnf("Error creating config file: %s", err)
			} else {
				utils.Log.Infof("Created default config at %s", configPath)
			}
		} else {
			fmt.Printf("Error reading config file: %s\n", err)
			os.Exit(1)
		}
	}
}

package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/dimtools/armortrim/pkg/filter"
	"github.com/dimtools/armortrim/pkg/ranker"
	"github.com/dimtools/armortrim/pkg/trimmer"
)

// rawList reads a list setting whatever shape it arrives in. Environment
// variables and plain strings are split with sep.
func rawList(key string, sep func(rune) bool) []string {
	var vals []string
	switch v := viper.Get(key).(type) {
	case nil:
	case string:
		vals = strings.FieldsFunc(v, sep)
	case []string:
		vals = v
	case []float64:
		for _, f := range v {
			vals = append(vals, strconv.FormatFloat(f, 'f', -1, 64))
		}
	case []interface{}:
		for _, e := range v {
			vals = append(vals, fmt.Sprint(e))
		}
	default:
		vals = []string{fmt.Sprint(v)}
	}

	out := make([]string, 0, len(vals))
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func isComma(r rune) bool { return r == ',' }

func isCommaOrSpace(r rune) bool { return r == ',' || unicode.IsSpace(r) }

func stringList(key string) []string {
	return rawList(key, isComma)
}

func floatList(key string) ([]float64, error) {
	raw := rawList(key, isCommaOrSpace)
	out := make([]float64, 0, len(raw))
	for _, s := range raw {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("%s: %q is not a number", key, s)
		}
		out = append(out, f)
	}
	return out, nil
}

// buildConfig assembles the pipeline configuration from viper settings.
func buildConfig() (trimmer.Config, error) {
	cfg := trimmer.DefaultConfig()
	cfg.Filter = filter.Config{
		IgnoreRarities:   stringList("filter.ignore_rarity"),
		IgnoreTags:       stringList("filter.ignore_tags"),
		IgnoreHashtags:   stringList("filter.ignore_hashtags"),
		IncludeLocations: stringList("filter.include_locations"),
		IncludeClasses:   stringList("filter.include_classes"),
		IgnoreInLoadout:  viper.GetBool("filter.ignore_in_loadout"),
	}

	mults, err := floatList("ranking.multipliers")
	if err != nil {
		return cfg, err
	}
	sched, err := ranker.ScheduleFromSlice(mults)
	if err != nil {
		return cfg, fmt.Errorf("ranking.multipliers: %w", err)
	}
	cfg.Schedule = sched
	cfg.BonusAmount = viper.GetInt("ranking.bonus_amount")
	cfg.BonusMarker = viper.GetString("ranking.bonus_marker")
	cfg.Parallel = viper.GetBool("ranking.parallel")

	return cfg, cfg.Validate()
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := buildConfig(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		if used := viper.ConfigFileUsed(); used != "" {
			fmt.Printf("# %s\n", used)
		}
		out, err := yaml.Marshal(viper.AllSettings())
		if err != nil {
			return err
		}
		fmt.Print(string(out))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}

package cmd

import (
	"strings"

	"github.com/spf13/cobra"
)

// heroNameCompletion completes hero names from the configured pool
func heroNameCompletion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return nameCompletions(toComplete, func(names *[]string) {
		cfg, err := loadConfig()
		if err != nil {
			return
		}
		pool, err := loadPool(cfg)
		if err != nil {
			return
		}
		*names = pool.HeroNames()
	})
}

// allianceNameCompletion completes alliance names from the configured pool
func allianceNameCompletion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return nameCompletions(toComplete, func(names *[]string) {
		cfg, err := loadConfig()
		if err != nil {
			return
		}
		pool, err := loadPool(cfg)
		if err != nil {
			return
		}
		*names = pool.AllianceNames()
	})
}

func nameCompletions(toComplete string, fill func(*[]string)) ([]string, cobra.ShellCompDirective) {
	var names []string
	fill(&names)

	var completions []string
	for _, n := range names {
		if strings.HasPrefix(strings.ToLower(n), strings.ToLower(toComplete)) {
			completions = append(completions, n)
		}
	}
	return completions, cobra.ShellCompDirectiveNoFileComp
}

func init() {
	heroesCmd.ValidArgsFunction = heroNameCompletion
	alliancesCmd.ValidArgsFunction = allianceNameCompletion

	buildCmd.RegisterFlagCompletionFunc("alliance", allianceNameCompletion)
	buildCmd.RegisterFlagCompletionFunc("hero", heroNameCompletion)
	heroesCmd.RegisterFlagCompletionFunc("alliance", allianceNameCompletion)
}

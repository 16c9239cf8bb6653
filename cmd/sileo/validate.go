package main

import (
	"fmt"
	"os"

	"github.com/aretw0/sileo/internal/scenario"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [scenario.yaml...]",
	Short: "Check configuration and scenario files",
	Long:  `Loads the --config file and every scenario given as argument, reporting the first error of each.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runValidate(cmd, args); err != nil {
			fmt.Printf("Validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Everything is valid! ✅")
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	fmt.Printf("config: position=%s collision=%s log_level=%s\n", cfg.Position, cfg.Collision, cfg.LogLevel)

	for _, path := range args {
		s, err := scenario.LoadFile(path)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		fmt.Printf("%s: %d steps over %v\n", path, len(s.Steps), s.Duration())
	}
	return nil
}

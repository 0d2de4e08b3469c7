package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hollowaydev/talkulator/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Println(config.ConfigPath())
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with the default settings",
	RunE:  runConfigInit,
}

func init() {
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [Endpoints]")
	fmt.Printf("    Generate:   %s\n", config.GetGenerateURL(cfg))
	fmt.Printf("    Synthesize: %s\n", config.GetSynthesizeURL(cfg))
	fmt.Printf("    Timeout:    %s\n", cfg.RequestTimeout())
	fmt.Println()

	fmt.Println("  [Limiter]")
	fmt.Printf("    Max tokens:       %d\n", cfg.Limiter.MaxTokens)
	fmt.Printf("    Refill per min:   %d\n", cfg.Limiter.RefillPerMinute)
	fmt.Printf("    Consume per call: %d\n", cfg.Limiter.ConsumePerCall)
	fmt.Printf("    Busy cooldown:    %s\n", cfg.Cooldown())
	fmt.Println()

	fmt.Println("  [Audio]")
	fmt.Printf("    Enabled:         %v\n", cfg.Audio.Enabled)
	fmt.Printf("    Debounce:        %s\n", cfg.Debounce())
	fmt.Printf("    Preload timeout: %s\n", cfg.PreloadTimeout())
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)

	return nil
}

func runConfigInit(_ *cobra.Command, _ []string) error {
	if config.Exists() {
		return fmt.Errorf("config already exists at %s", config.ConfigPath())
	}
	if err := config.Save(config.DefaultConfig()); err != nil {
		return err
	}
	fmt.Printf("  Wrote defaults to %s\n", config.ConfigPath())
	return nil
}

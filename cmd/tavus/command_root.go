package main

import (
	"fmt"

	"github.com/picatz/tavus"
	"github.com/picatz/tavus/internal/browser"
	"github.com/picatz/tavus/internal/config"
	"github.com/picatz/tavus/internal/history"
	"github.com/picatz/tavus/internal/session"
	"github.com/spf13/cobra"
)

// openBrowser is swapped out in tests.
var openBrowser = browser.System()

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tavus",
		Short: "Create a Tavus conversation and open it in your browser",
		Long: `Create a Tavus conversation and open it in your browser.

The conversation is created with a single request. If the response contains a
conversation URL it is opened in the default browser, otherwise the full
response is printed.`,
		Args: cobra.NoArgs,
		RunE: runCreate,
	}

	rootCmd.PersistentFlags().String("config", "", "path to a YAML config file")
	rootCmd.PersistentFlags().String("api-key", "", "Tavus API key (overrides "+config.EnvAPIKey+")")
	rootCmd.PersistentFlags().String("base-url", "", "Tavus API base URL (overrides "+config.EnvBaseURL+")")
	rootCmd.PersistentFlags().String("history-dir", history.DefaultPath(), "directory of the local conversation history")
	rootCmd.PersistentFlags().Bool("temporary", false, "keep the history in memory for this run only")

	rootCmd.Flags().Bool("no-browser", false, "print the conversation URL without opening it")
	rootCmd.Flags().Bool("record", false, "record the conversation in the local history")

	rootCmd.AddCommand(
		newPayloadCommand(),
		newHistoryCommand(),
	)

	return rootCmd
}

// loadConfig resolves the config file, environment and flags, in that order.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")

	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}

	if cmd.Flags().Changed("api-key") {
		cfg.APIKey, _ = cmd.Flags().GetString("api-key")
	}
	if cmd.Flags().Changed("base-url") {
		cfg.BaseURL, _ = cmd.Flags().GetString("base-url")
	}

	return cfg, nil
}

func runCreate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	runner := &session.Runner{
		Client: tavus.NewClient(cfg.APIKey, tavus.WithBaseURL(cfg.BaseURL)),
		Out:    cmd.OutOrStdout(),
		Warn:   warnWriter{cmd.ErrOrStderr()},
	}

	// Without a launcher the URL is only printed, and recorded as not opened.
	if noBrowser, _ := cmd.Flags().GetBool("no-browser"); !noBrowser {
		runner.Browser = openBrowser
	}

	if record, _ := cmd.Flags().GetBool("record"); record {
		store, err := openHistory(cmd)
		if err != nil {
			return err
		}
		defer store.Close(cmd.Context())

		runner.History = store
	}

	result, err := runner.Run(cmd.Context(), cfg.Conversation)
	if err != nil {
		return fmt.Errorf("failed to create conversation: %w", err)
	}

	if result.Record != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), styleFaint.Render("Recorded as "+result.Record.ID))
	}

	return nil
}

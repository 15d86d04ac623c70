package main

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newPayloadCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "payload",
		Short: "Print the create conversation request without sending it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			b, err := cfg.Conversation.Payload()
			if err != nil {
				return err
			}

			var indented bytes.Buffer
			if err := json.Indent(&indented, b, "", "  "); err != nil {
				return fmt.Errorf("failed to indent payload: %w", err)
			}
			indented.WriteByte('\n')

			if _, err := cmd.OutOrStdout().Write(indented.Bytes()); err != nil {
				return err
			}

			if render, _ := cmd.Flags().GetBool("render"); render {
				out, err := renderMarkdown(cfg.Conversation.ConversationalContext, terminalWidth())
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), styleBold.Render("Conversational context"))
				fmt.Fprint(cmd.OutOrStdout(), out)
			}

			return nil
		},
	}

	cmd.Flags().Bool("render", false, "also render the conversational context as markdown")

	return cmd
}

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"lskinbot/internal/config"
)

func newConfigCommand(configFlag *string) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}

	configCmd.AddCommand(newConfigInitCommand())
	configCmd.AddCommand(newConfigShowCommand(configFlag))

	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var targetPath string
	var overwrite bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a sample configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			target := strings.TrimSpace(targetPath)
			if target == "" {
				defaultPath, err := config.DefaultConfigPath()
				if err != nil {
					return fmt.Errorf("determine default config path: %w", err)
				}
				target = defaultPath
			}

			if !overwrite {
				if _, err := os.Stat(target); err == nil {
					return fmt.Errorf("config file already exists at %s (use --overwrite to replace it)", target)
				} else if !os.IsNotExist(err) {
					return fmt.Errorf("check config path: %w", err)
				}
			}

			if err := config.CreateSample(target); err != nil {
				return fmt.Errorf("create sample config: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote sample configuration to %s\n", target)
			fmt.Fprintf(out, "Edit the file to set telegram.bot_token (or export %s) and telegram.channel_id.\n", config.TokenEnvVar)
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the configuration file")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing configuration if present")
	return cmd
}

func newConfigShowCommand(configFlag *string) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the resolved configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, exists, err := config.Load(*configFlag)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Config path: %s\n", path)
			if !exists {
				fmt.Fprintln(out, "Config file did not exist; defaults were used")
			}
			fmt.Fprintf(out, "telegram.bot_token: %s\n", redactToken(cfg.Telegram.BotToken))
			fmt.Fprintf(out, "telegram.channel_id: %s\n", cfg.Telegram.ChannelID)
			fmt.Fprintf(out, "telegram.request_timeout: %d\n", cfg.Telegram.RequestTimeout)
			fmt.Fprintf(out, "telegram.poll_timeout: %d\n", cfg.Telegram.PollTimeout)
			fmt.Fprintf(out, "paths.work_dir: %s\n", cfg.Paths.WorkDir)
			fmt.Fprintf(out, "paths.log_dir: %s\n", cfg.Paths.LogDir)
			fmt.Fprintf(out, "logging.format: %s\n", cfg.Logging.Format)
			fmt.Fprintf(out, "logging.level: %s\n", cfg.Logging.Level)
			fmt.Fprintf(out, "workspace.stale_after_minutes: %d\n", cfg.Workspace.StaleAfterMinutes)
			return nil
		},
	}
}

func redactToken(token string) string {
	if token == "" {
		return "(unset)"
	}
	if len(token) <= 8 {
		return "****"
	}
	return token[:4] + "..." + token[len(token)-4:]
}

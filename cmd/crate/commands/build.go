package commands

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.trai.ch/crate/internal/core/domain"
)

func (c *CLI) newBuildCmd() *cobra.Command {
	var (
		name         string
		icon         string
		requirements string
		timeout      time.Duration
	)

	cmd := &cobra.Command{
		Use:   "build <entry-script> [-- extra bundler args...]",
		Short: "Build a single tool into a standalone executable",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entry := args[0]

			// Tokens after -- pass through to the bundler verbatim, last wins.
			var extra []string
			if at := cmd.ArgsLenAtDash(); at >= 0 {
				extra = args[at:]
				args = args[:at]
			}
			if len(args) != 1 {
				_ = cmd.Usage()
				return fmt.Errorf("expected exactly one entry script, got %d arguments", len(args))
			}

			if name == "" {
				name = strings.TrimSuffix(filepath.Base(entry), filepath.Ext(entry))
			}

			req := &domain.BuildRequest{
				EntryScript:    entry,
				ExecutableName: name,
				ExtraArgs:      extra,
				IconPath:       icon,
				Requirements:   requirements,
				Timeout:        timeout,
			}

			result, err := c.app.Build(cmd.Context(), req)
			if err != nil {
				return err
			}
			cmd.Printf("built %s\n", result.ArtifactPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Executable name (defaults to the entry script's base name)")
	cmd.Flags().StringVar(&icon, "icon", "", "Path to a .ico file to embed")
	cmd.Flags().StringVarP(&requirements, "requirements", "r", "", "Path to a dependency manifest")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "Build timeout (0 uses the configured default)")

	return cmd
}

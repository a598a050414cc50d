package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newPackCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pack",
		Short: "Build every tool configured in the cratefile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			outcomes, err := c.app.Pack(cmd.Context(), c.configPath(cmd))
			for _, o := range outcomes {
				if o.Err != nil {
					cmd.Printf("FAIL %s (%s)\n", o.Name, o.Result.Stage)
					continue
				}
				cmd.Printf("ok   %s -> %s\n", o.Name, o.Result.ArtifactPath)
			}
			return err
		},
	}
}

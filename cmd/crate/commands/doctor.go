package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/crate/internal/core/domain"
)

func (c *CLI) newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check toolchain availability without building anything",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reports, err := c.app.Doctor(cmd.Context())
			if err != nil {
				return err
			}
			usable := false
			for _, rep := range reports {
				switch {
				case rep.Usable():
					usable = true
					cmd.Printf("ok   %-14s %s (%s)\n", rep.Candidate.Name, rep.Candidate.InterpreterPath, rep.Version)
				case rep.InterpreterOK:
					cmd.Printf("warn %-14s %s: bundler missing\n", rep.Candidate.Name, rep.Candidate.InterpreterPath)
				default:
					cmd.Printf("FAIL %-14s %s: %s\n", rep.Candidate.Name, rep.Candidate.InterpreterPath, rep.Detail)
				}
			}
			if !usable {
				return domain.ErrToolchainUnavailable
			}
			return nil
		},
	}
}

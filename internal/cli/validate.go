package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/modweave/modweave/internal/compiler"
)

// ValidationResult holds validate command output.
type ValidationResult struct {
	Valid    bool                    `json:"valid"`
	Scope    string                  `json:"scope,omitempty"`
	Statics  int                     `json:"statics"`
	Rules    int                     `json:"rules"`
	Warnings []compiler.CycleWarning `json:"warnings,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <pack-dir>",
		Short: "Compile a pack and check it registers cleanly",
		Long: `Compile a token pack and dry-run its registration against an empty
host context. Reports compile errors, registration conflicts, and
reference cycles among the pack's dynamic tokens. Cycles are warnings,
not errors.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, packDir string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	loadResult, err := loadPack(formatter, packDir)
	if err != nil {
		return err
	}
	pack := loadResult.Pack

	if _, err := registerPack(formatter, pack); err != nil {
		return err
	}

	result := ValidationResult{
		Valid:    true,
		Scope:    pack.Scope,
		Statics:  len(pack.Statics),
		Rules:    len(pack.Rules),
		Warnings: loadResult.Warnings,
	}
	if handled, err := formatter.Success(result); handled || err != nil {
		return err
	}

	fmt.Fprintf(formatter.Writer, "✓ Pack %s valid (%d static, %d rules)\n",
		pack.Scope, result.Statics, result.Rules)
	for _, warning := range loadResult.Warnings {
		fmt.Fprintf(formatter.Writer, "  warning: %s\n", warning.Message)
	}
	return nil
}

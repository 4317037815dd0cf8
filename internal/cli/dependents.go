package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// DependentsResult holds dependents command output.
type DependentsResult struct {
	Token      string   `json:"token"`
	Dependents []string `json:"dependents"`
}

// NewDependentsCommand creates the dependents command.
func NewDependentsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dependents <pack-dir> <token>",
		Short: "Show which dynamic tokens react to a token changing",
		Long: `Register a pack and query its dependency graph: which of the pack's
dynamic tokens must be re-evaluated when the named token's value
changes. The answer is conservative; it covers every value a rule
could take, not just the currently active one.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDependents(rootOpts, args[0], args[1], cmd)
		},
	}

	return cmd
}

func runDependents(opts *RootOptions, packDir, name string, cmd *cobra.Command) error {
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

	sc, err := registerPack(formatter, loadResult.Pack)
	if err != nil {
		return err
	}

	result := DependentsResult{Token: name, Dependents: []string{}}
	for _, key := range sc.GetDependents(name).Sorted() {
		result.Dependents = append(result.Dependents, string(key))
	}

	if handled, err := formatter.Success(result); handled || err != nil {
		return err
	}

	if len(result.Dependents) == 0 {
		fmt.Fprintf(formatter.Writer, "nothing depends on %s\n", name)
		return nil
	}
	for _, dep := range result.Dependents {
		fmt.Fprintln(formatter.Writer, dep)
	}
	return nil
}

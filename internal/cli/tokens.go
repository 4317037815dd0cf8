package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/modweave/modweave/internal/tokens"
)

// TokenInfo is one token's state in tokens command output.
type TokenInfo struct {
	Name   string   `json:"name"`
	Kind   string   `json:"kind"` // "static" | "dynamic"
	Ready  bool     `json:"ready"`
	Values []string `json:"values,omitempty"`
}

// TokensResult holds tokens command output.
type TokensResult struct {
	Scope  string      `json:"scope"`
	Tokens []TokenInfo `json:"tokens"`
}

// NewTokensCommand creates the tokens command.
func NewTokensCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokens <pack-dir>",
		Short: "List a pack's tokens after an initial update pass",
		Long: `Register a pack against an empty host context, run one update pass,
and list every token the pack declares with its readiness and values.

Tokens that depend on host state come out not-ready here; the command
shows what the pack resolves on its own.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTokens(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runTokens(opts *RootOptions, packDir string, cmd *cobra.Command) error {
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
	sc.UpdateContext(nil)

	result := TokensResult{Scope: sc.Scope()}
	staticCount := sc.StaticCount()
	i := 0
	for tok := range sc.LocalTokens() {
		kind := "dynamic"
		if i < staticCount {
			kind = "static"
		}
		i++
		result.Tokens = append(result.Tokens, TokenInfo{
			Name:   tok.Name(),
			Kind:   kind,
			Ready:  tok.IsReady(),
			Values: tok.GetValues(tokens.NoInput),
		})
	}

	if handled, err := formatter.Success(result); handled || err != nil {
		return err
	}

	for _, info := range result.Tokens {
		state := "not ready"
		if info.Ready {
			state = strings.Join(info.Values, ", ")
		}
		fmt.Fprintf(formatter.Writer, "%-8s %-24s %s\n", info.Kind, info.Name, state)
	}
	return nil
}

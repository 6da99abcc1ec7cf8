package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "lox",
	Short: "A tree-walking interpreter for Lox",
	Long: `lox is a Go implementation of the Lox scripting language: a small,
dynamically-typed, class-based language with closures.

It runs a script through four stages in sequence: scan, parse, resolve,
evaluate. The tokenize and parse subcommands stop after scanning and
parsing; evaluate handles a single expression; run drives all four stages
over a whole program.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
}

// exitCLIError reports msg to stderr and exits with code, matching the
// exit-code contract: 65 for any static error, 70 for any runtime error.
func exitCLIError(code int, format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(code)
}

func readSource(args []string, inlineFlag string) (source, label string, err error) {
	if inlineFlag != "" {
		return inlineFlag, "<eval>", nil
	}
	if len(args) != 1 {
		return "", "", fmt.Errorf("expected exactly one file argument")
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", "", fmt.Errorf("failed to read file %s: %w", args[0], err)
	}
	return string(data), args[0], nil
}

package cli

import (
	"fmt"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	version = "dev"

	// Colors for help output sections
	sectionTitleColor = color.New(color.FgBlue, color.Bold)
)

func SetVersion(v string) {
	if v == "" {
		return
	}
	version = v
}

// newRootCmd builds the flatten command. A fresh command is built per
// invocation so flag state never leaks between runs.
func newRootCmd() *cobra.Command {
	opts := &flattenOptions{}

	cmd := &cobra.Command{
		Use:     "flatten [directory]",
		Version: version,
		Short:   "Move files from all sub-directories into their parent directory",
		Long: heredoc.Doc(`
			flatten moves every file found beneath a parent directory into that
			parent directory, optionally deleting the emptied sub-directories.

			Files that share a name (compared case-insensitively across all parent
			directories) get a GUID appended to their name to keep them unique,
			e.g. report.pdf becomes report_<guid>.pdf.

			With no directory the current directory is flattened. Use --what-if to
			see the planned moves without changing anything.
		`),
		Example: heredoc.Doc(`
			# preview flattening ~/Videos
			flatten ~/Videos --what-if

			# flatten two directories and remove their sub-directories
			flatten -D ~/Videos,~/Music --delete-subdirectories

			# leave temporary files and git metadata where they are
			flatten -e '**/*.tmp' -e .git
		`),
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFlatten(cmd, args, opts)
		},
	}
	cmd.SetVersionTemplate("{{.Version}}\n")
	cmd.SetHelpFunc(customHelpFunc)

	flags := cmd.Flags()
	flags.StringVarP(&opts.directory, "directory", "d", "", "Parent directory to flatten (same as the positional argument)")
	flags.StringSliceVarP(&opts.directories, "directories", "D", nil, "List of parent directories to flatten")
	flags.BoolVarP(&opts.whatIf, "what-if", "w", false, "Show the planned moves without moving anything (alias --dry-run)")
	flags.BoolVarP(&opts.deleteSubdirs, "delete-subdirectories", "s", false, "Delete all sub-directories once the files have been moved")
	flags.StringSliceVarP(&opts.exclude, "exclude", "e", nil, "Glob of files or directories to leave in place (repeatable)")
	flags.BoolVar(&opts.confirm, "confirm", false, "Ask for confirmation before renaming duplicates and before moving")
	flags.BoolVar(&opts.jsonOutput, "json", false, "With --what-if, print the plan as JSON")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Log every step to stderr")
	flags.SetNormalizeFunc(aliasFlags)

	cmd.MarkFlagsMutuallyExclusive("directory", "directories")

	return cmd
}

// aliasFlags maps alternative flag spellings onto their canonical names.
func aliasFlags(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	switch name {
	case "dry-run":
		name = "what-if"
	case "delete-subdirs":
		name = "delete-subdirectories"
	}
	return pflag.NormalizedName(name)
}

// customHelpFunc renders help with colored section titles.
func customHelpFunc(cmd *cobra.Command, args []string) {
	var help strings.Builder

	if cmd.Long != "" {
		help.WriteString(cmd.Long)
		help.WriteString("\n")
	}

	help.WriteString(sectionTitleColor.Sprint("Usage:"))
	help.WriteString("\n")
	fmt.Fprintf(&help, "  %s\n\n", cmd.UseLine())

	if cmd.Example != "" {
		help.WriteString(sectionTitleColor.Sprint("Examples:"))
		help.WriteString("\n")
		for _, line := range strings.Split(strings.TrimRight(cmd.Example, "\n"), "\n") {
			if line == "" {
				help.WriteString("\n")
				continue
			}
			fmt.Fprintf(&help, "  %s\n", line)
		}
		help.WriteString("\n")
	}

	if cmd.HasAvailableLocalFlags() {
		help.WriteString(sectionTitleColor.Sprint("Flags:"))
		help.WriteString("\n")
		help.WriteString(cmd.LocalFlags().FlagUsages())
		help.WriteString("\n")
	}

	help.WriteString(sectionTitleColor.Sprint("Environment:"))
	help.WriteString("\n")
	help.WriteString("  FLATTEN_EXCLUDE                 comma-separated default for --exclude\n")
	help.WriteString("  FLATTEN_VERBOSE                 default for --verbose\n")
	help.WriteString("  FLATTEN_DELETE_SUBDIRECTORIES   default for --delete-subdirectories\n")
	help.WriteString("  NO_COLOR                        disable colored output\n")

	fmt.Fprint(cmd.OutOrStdout(), help.String())
}

// Execute runs flatten with the process arguments. Errors are reported on
// stderr before being returned.
func Execute() error {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		return newTerminalHost(cmd).Fail(err)
	}
	return nil
}

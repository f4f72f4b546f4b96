package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/flatten/internal/config"
	"github.com/danieljhkim/flatten/internal/engine"
	"github.com/danieljhkim/flatten/internal/planner"
	"github.com/danieljhkim/flatten/internal/report"
)

type flattenOptions struct {
	directory     string
	directories   []string
	whatIf        bool
	deleteSubdirs bool
	exclude       []string
	confirm       bool
	jsonOutput    bool
	verbose       bool
}

// applySettings fills every flag the user did not set from the environment.
func (o *flattenOptions) applySettings(cmd *cobra.Command, s *config.Settings) {
	flags := cmd.Flags()
	if !flags.Changed("exclude") {
		o.exclude = s.Exclude
	}
	if !flags.Changed("verbose") {
		o.verbose = s.Verbose
	}
	if !flags.Changed("delete-subdirectories") {
		o.deleteSubdirs = s.DeleteSubdirectories
	}
}

// parentDirectories returns the directories named on the command line, or
// nil if none were.
func (o *flattenOptions) parentDirectories(args []string) ([]string, error) {
	if len(args) > 0 {
		if o.directory != "" || len(o.directories) > 0 {
			return nil, fmt.Errorf("%w: a positional directory cannot be combined with --directory or --directories", engine.ErrValidation)
		}
		return args, nil
	}
	if o.directory != "" {
		return []string{o.directory}, nil
	}
	return o.directories, nil
}

func runFlatten(cmd *cobra.Command, args []string, opts *flattenOptions) error {
	settings, err := config.FromEnv()
	if err != nil {
		return err
	}
	opts.applySettings(cmd, settings)

	if opts.jsonOutput && !opts.whatIf {
		return fmt.Errorf("%w: --json requires --what-if", engine.ErrValidation)
	}

	dirs, err := opts.parentDirectories(args)
	if err != nil {
		return err
	}

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}
	if len(dirs) == 0 {
		dirs = []string{cwd}
	}

	eng := newEngine(opts.verbose, cmd.ErrOrStderr())
	host := newTerminalHost(cmd)
	ctx := cmd.Context()

	job, err := eng.Plan(ctx, &engine.FlattenRequest{
		CWD:                  cwd,
		Directories:          dirs,
		DryRun:               opts.whatIf,
		DeleteSubdirectories: opts.deleteSubdirs,
		Exclude:              opts.exclude,
	})
	if err != nil {
		return err
	}

	if opts.whatIf {
		if opts.jsonOutput {
			return host.Emit(job)
		}
		return host.Emit(eng.Report(job, opts.deleteSubdirs))
	}

	if opts.confirm {
		if err := confirmFlatten(host, job, opts.deleteSubdirs); err != nil {
			if errors.Is(err, engine.ErrAborted) {
				printWarning(cmd.ErrOrStderr(), "Aborted, no files were moved")
				return nil
			}
			return err
		}
	}

	_, err = eng.Execute(ctx, job, opts.deleteSubdirs)
	return err
}

// confirmFlatten asks before renaming duplicates (if there are any) and
// before moving. A "no" to either question returns ErrAborted.
func confirmFlatten(host Host, job *planner.Job, deleteSubdirs bool) error {
	if job.HasCollisions() {
		header := fmt.Sprintf("%d files with the same name were found. "+
			"These files will have a guid appended to the file name to make them unique.", job.DuplicateCount())
		ok, err := host.PromptYesNo(header, "Are you happy to continue?")
		if err != nil {
			return err
		}
		if !ok {
			return engine.ErrAborted
		}
	}

	header := fmt.Sprintf("You are about to move %s from %s into %s",
		report.Count(job.FileCount(), "file", "files"),
		report.Count(job.SubdirCount, "sub-directory", "sub-directories"),
		report.Count(len(job.Roots), "parent directory", "parent directories"),
	)
	if deleteSubdirs {
		header += " and delete all sub-directories"
		if len(job.Excluded) > 0 {
			header += report.ExceptExcluded
		}
	}
	ok, err := host.PromptYesNo(header, "Are you sure you want to continue?")
	if err != nil {
		return err
	}
	if !ok {
		return engine.ErrAborted
	}
	return nil
}

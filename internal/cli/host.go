package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

// Host is what the flatten command needs from its environment: somewhere to
// send results, a way to ask the user a question, and a way to report a
// terminating error.
type Host interface {
	// Emit writes a result: strings and string slices as lines, anything
	// else as indented JSON.
	Emit(v any) error

	// PromptYesNo shows header and asks question. An empty answer means yes.
	PromptYesNo(header, question string) (bool, error)

	// Fail reports err to the user and returns it.
	Fail(err error) error
}

// terminalHost implements Host over a command's input and output streams.
type terminalHost struct {
	in     *bufio.Reader
	out    io.Writer
	errOut io.Writer
}

func newTerminalHost(cmd *cobra.Command) *terminalHost {
	return &terminalHost{
		in:     bufio.NewReader(cmd.InOrStdin()),
		out:    cmd.OutOrStdout(),
		errOut: cmd.ErrOrStderr(),
	}
}

func (h *terminalHost) Emit(v any) error {
	switch v := v.(type) {
	case string:
		_, err := fmt.Fprintln(h.out, v)
		return err
	case []string:
		for _, line := range v {
			if _, err := fmt.Fprintln(h.out, line); err != nil {
				return err
			}
		}
		return nil
	default:
		s, err := formatJSON(v)
		if err != nil {
			return fmt.Errorf("failed to encode output: %w", err)
		}
		_, err = fmt.Fprintln(h.out, s)
		return err
	}
}

func (h *terminalHost) PromptYesNo(header, question string) (bool, error) {
	printWarning(h.out, header)
	fmt.Fprintf(h.out, "%s [Y/n] ", question)

	answer, err := h.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("failed to read answer: %w", err)
	}

	// no input at all (closed stdin) is never consent
	if err == io.EOF && answer == "" {
		return false, nil
	}

	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "", "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

func (h *terminalHost) Fail(err error) error {
	fmt.Fprintln(h.errOut, formatError(err))
	return err
}

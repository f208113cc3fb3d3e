package cli

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/dshills/grabchars/pkg/selector"
	"github.com/dshills/grabchars/pkg/term"
)

// newSelectCommand builds the select subcommand, or select-lr when lr
// is set. Both share the root reading flags.
func newSelectCommand(f *grabFlags, lr bool) *cobra.Command {
	use := "select"
	short := "Pick one option from a list by typing to filter it"
	if lr {
		use = "select-lr"
		short = "Pick one option from a horizontal row of matches"
	}
	var file string
	cmd := &cobra.Command{
		Use:   use + " [comma,separated,options]",
		Short: short,
		Long: short + `. The chosen option is printed and its position
in the list becomes the exit status, so scripts can branch on either.
Escape cancels, and a timeout without a default gives up; both are
reported through the status alone.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSelect(cmd, f, args, file, lr)
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "load options from a file instead of the command line")
	return cmd
}

// runSelect resolves the option list, lets the flags or a choices file
// fill in presentation defaults and runs the picker.
func runSelect(cmd *cobra.Command, f *grabFlags, args []string, file string, lr bool) error {
	fs := cmd.Flags()

	var set *selector.OptionSet
	switch {
	case fs.Changed("file"):
		if file == "" {
			return errors.New("select: --file requires a filename")
		}
		loaded, err := selector.LoadOptions(file)
		if err != nil {
			return fmt.Errorf("select: %v", err)
		}
		set = loaded
	case len(args) > 0:
		set = &selector.OptionSet{Options: selector.ParseList(args[0])}
	default:
		set = &selector.OptionSet{}
	}
	if len(set.Options) == 0 {
		return errors.New("select: no options to choose from")
	}

	// A choices file can carry its own default and style; explicit
	// flags still win.
	if !fs.Changed("default") && set.Default != "" {
		f.deflt = set.Default
	}
	if !fs.Changed("highlight") && set.Highlight != "" {
		f.highlight = set.Highlight
	}

	opts, err := f.build(fs, GlobalConfig)
	if err != nil {
		return err
	}

	s, err := openSession(opts, GlobalConfig)
	if err != nil {
		return err
	}
	defer term.RestoreSaved()

	w := selector.NewWidget(set.Options, opts.Default)
	log.Printf("select session: %d options, lr=%v", len(set.Options), lr)

	var status int
	if lr {
		status = selector.RunLR(w, opts, s.rd, s.out, term.Width(int(os.Stderr.Fd())))
	} else {
		status = selector.Run(w, opts, s.rd, s.out)
	}
	s.close(status)
	return nil
}

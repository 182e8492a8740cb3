package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/perst-io/perst/array"
	"github.com/perst-io/perst/vector"
)

// DemoOptions holds flags for the demo command.
type DemoOptions struct {
	*RootOptions
	Container string
}

// DemoResult captures the walkthrough's observable states.
type DemoResult struct {
	Container string `json:"container"`
	Base      []int  `json:"base"`     // snapshot published by the first facade
	Extended  []int  `json:"extended"` // snapshot published by the derived facade
	FacadeA   []int  `json:"facade_a"` // two independent facades over Base,
	FacadeB   []int  `json:"facade_b"` // each editing index 0 its own way
}

// NewDemoCommand creates the demo command.
func NewDemoCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DemoOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Walk the transience protocol",
		Long: `Run the canonical walkthrough: build [1,2,3] through a transient
facade, publish it, derive a fresh facade and push 4, then edit the same
snapshot through two independent facades and show their isolation.

Example:
  perst demo
  perst demo --container array --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Container, "container", "vector", "container to demo (vector|array)")

	return cmd
}

func runDemo(opts *DemoOptions, cmd *cobra.Command) error {
	configureLogging(opts.Verbose)

	var result DemoResult
	switch opts.Container {
	case "vector":
		result = demoVector()
	case "array":
		result = demoArray()
	default:
		return NewExitError(ExitCommandError,
			fmt.Sprintf("unknown container %q: must be vector or array", opts.Container))
	}

	if opts.Format == "json" {
		formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
		return formatter.Success(result)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "container: %s\n", result.Container)
	fmt.Fprintf(w, "base snapshot:      %v\n", result.Base)
	fmt.Fprintf(w, "extended snapshot:  %v\n", result.Extended)
	fmt.Fprintf(w, "facade A published: %v\n", result.FacadeA)
	fmt.Fprintf(w, "facade B published: %v\n", result.FacadeB)
	fmt.Fprintln(w, "the base snapshot never changed")
	return nil
}

func demoVector() DemoResult {
	tr := vector.NewTransientVector[int]()
	for _, x := range []int{1, 2, 3} {
		tr.Push(x)
	}
	base := tr.Persistent()
	slog.Debug("published base snapshot", "len", base.Len())

	tr2 := vector.TransientOf(base)
	tr2.Push(4)
	extended := tr2.Persistent()
	slog.Debug("derived and extended", "len", extended.Len())

	fa := vector.TransientOf(base)
	fb := vector.TransientOf(base)
	fa.Set(0, 9)
	fb.Set(0, 7)

	return DemoResult{
		Container: "vector",
		Base:      base.Items(),
		Extended:  extended.Items(),
		FacadeA:   fa.Persistent().Items(),
		FacadeB:   fb.Persistent().Items(),
	}
}

func demoArray() DemoResult {
	tr := array.NewTransient[int]()
	for _, x := range []int{1, 2, 3} {
		tr.Push(x)
	}
	base := tr.Persistent()
	slog.Debug("published base snapshot", "len", base.Len())

	tr2 := array.TransientOf(base)
	tr2.Push(4)
	extended := tr2.Persistent()
	slog.Debug("derived and extended", "len", extended.Len())

	fa := array.TransientOf(base)
	fb := array.TransientOf(base)
	fa.Set(0, 9)
	fb.Set(0, 7)

	return DemoResult{
		Container: "array",
		Base:      base.Items(),
		Extended:  extended.Items(),
		FacadeA:   fa.Persistent().Items(),
		FacadeB:   fb.Persistent().Items(),
	}
}

// configureLogging installs the default slog handler at the level the
// verbose flag asks for.
func configureLogging(verbose bool) {
	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))
}

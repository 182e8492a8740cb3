package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/perst-io/perst/vector"
)

// ChunksOptions holds flags for the chunks command.
type ChunksOptions struct {
	*RootOptions
	N    int
	From int
	To   int
}

// ChunkInfo describes one contiguous run presented by the traversal.
type ChunkInfo struct {
	Offset int `json:"offset"`
	Len    int `json:"len"`
}

// ChunksResult is the chunk layout of one traversal.
type ChunksResult struct {
	N      int         `json:"n"`
	From   int         `json:"from"`
	To     int         `json:"to"`
	Chunks []ChunkInfo `json:"chunks"`
}

// NewChunksCommand creates the chunks command.
func NewChunksCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ChunksOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "chunks",
		Short: "Show a vector's chunked traversal layout",
		Long: `Build an N-element vector and show the contiguous runs its chunked
traversal presents: full trie leaves plus the tail, clipped to the
requested range.

Example:
  perst chunks --n 100
  perst chunks --n 1057 --from 1000 --to 1057 --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChunks(opts, cmd)
		},
	}

	cmd.Flags().IntVar(&opts.N, "n", 100, "number of elements")
	cmd.Flags().IntVar(&opts.From, "from", 0, "range start (inclusive)")
	cmd.Flags().IntVar(&opts.To, "to", -1, "range end (exclusive, -1 for the whole vector)")

	return cmd
}

func runChunks(opts *ChunksOptions, cmd *cobra.Command) error {
	configureLogging(opts.Verbose)
	if opts.N < 0 {
		return NewExitError(ExitCommandError, "n must be non-negative")
	}
	to := opts.To
	if to < 0 {
		to = opts.N
	}

	tr := vector.NewTransientVector[int]()
	for i := 0; i < opts.N; i++ {
		tr.Push(i)
	}
	v := tr.Persistent()

	result := ChunksResult{N: opts.N, From: opts.From, To: to, Chunks: []ChunkInfo{}}
	offset := max(opts.From, 0)
	v.ChunksBetween(opts.From, to, func(chunk []int) {
		result.Chunks = append(result.Chunks, ChunkInfo{Offset: offset, Len: len(chunk)})
		offset += len(chunk)
	})

	if opts.Format == "json" {
		formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
		return formatter.Success(result)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "n = %d, range [%d, %d): %d chunk(s)\n", result.N, result.From, result.To, len(result.Chunks))
	for _, c := range result.Chunks {
		fmt.Fprintf(w, "  [%d, %d) len %d\n", c.Offset, c.Offset+c.Len, c.Len)
	}
	return nil
}

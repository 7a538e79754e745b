package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	pcerrors "github.com/pipecheck/pipecheck/pkg/errors"
	"github.com/pipecheck/pipecheck/pkg/pipeline"
)

// checkOpts holds the command-line flags for the check command.
type checkOpts struct {
	jsonOut bool // emit the API summary instead of styled text
	strict  bool // exit non-zero when the pipeline has a cycle
}

// checkCommand creates the check command for one-shot pipeline validation.
func (c *CLI) checkCommand() *cobra.Command {
	opts := checkOpts{}

	cmd := &cobra.Command{
		Use:   "check <file>",
		Short: "Validate a pipeline JSON file",
		Long: `Validate a pipeline JSON file without running the service.

Reads a pipeline payload (nodes and edges), reports node and edge counts,
and tells you whether the graph is a DAG. Use "-" to read from stdin.

Examples:
  pipecheck check pipeline.json
  pipecheck check pipeline.json --json
  cat pipeline.json | pipecheck check -
  pipecheck check pipeline.json --strict   # exit 1 on cycles`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCheck(args[0], opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().BoolVar(&opts.jsonOut, "json", false, "print the summary as JSON")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "return a non-zero exit code when a cycle is found")

	return cmd
}

// runCheck validates a pipeline from arg ("-" for stdin) and writes the result to out.
func (c *CLI) runCheck(arg string, opts checkOpts, out io.Writer) error {
	p, err := readPipelineArg(arg)
	if err != nil {
		return err
	}

	prog := newProgress(c.Logger)
	summary := pipeline.Analyze(p)
	prog.done(fmt.Sprintf("Checked %d nodes and %d edges", summary.NumNodes, summary.NumEdges))

	if opts.jsonOut {
		if err := pipeline.WriteSummary(summary, out); err != nil {
			return err
		}
	} else {
		if summary.IsDAG {
			printSuccess(out, "pipeline is a DAG")
		} else {
			printError(out, "pipeline contains a cycle")
		}
		printStats(out, summary.NumNodes, summary.NumEdges)
	}

	if opts.strict && !summary.IsDAG {
		return pcerrors.New(pcerrors.ErrCodeInvalidPayload, "pipeline contains a cycle")
	}
	return nil
}

// readPipelineArg reads a pipeline from a file path, or stdin when arg is "-".
func readPipelineArg(arg string) (pipeline.Pipeline, error) {
	if arg == "-" {
		return pipeline.ReadPipeline(os.Stdin)
	}
	if _, err := os.Stat(arg); os.IsNotExist(err) {
		return pipeline.Pipeline{}, pcerrors.New(pcerrors.ErrCodeFileNotFound, "file not found: %s", arg)
	}
	return pipeline.ReadPipelineFile(arg)
}

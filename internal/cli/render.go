package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pipecheck/pipecheck/pkg/render"
)

const (
	formatDOT = "dot"
	formatSVG = "svg"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string // output file path (stdout if empty)
	format   string // "dot" or "svg"
	detailed bool   // include node type and position in labels
}

// renderCommand creates the render command for pipeline visualizations.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{format: formatDOT}

	cmd := &cobra.Command{
		Use:   "render <file>",
		Short: "Render a pipeline as Graphviz DOT or SVG",
		Long: `Render a pipeline JSON file as a Graphviz DOT document or an SVG image.

Edges whose endpoints are not declared nodes are left out of the drawing,
matching how validation walks the graph.

Examples:
  pipecheck render pipeline.json                       # DOT to stdout
  pipecheck render pipeline.json -f svg -o graph.svg
  pipecheck render pipeline.json --detailed`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.format != formatDOT && opts.format != formatSVG {
				return fmt.Errorf("invalid format: %s (must be %q or %q)", opts.format, formatDOT, formatSVG)
			}
			return c.runRender(args[0], opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: dot (default), svg")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "include node type and position in labels")

	return cmd
}

// runRender loads the pipeline from input and writes the rendering to opts.output.
func (c *CLI) runRender(input string, opts renderOpts, status io.Writer) error {
	p, err := readPipelineArg(input)
	if err != nil {
		return err
	}
	c.Logger.Debugf("Loaded pipeline: %d nodes, %d edges", len(p.Nodes), len(p.Edges))

	dot := render.ToDOT(p, render.Options{Detailed: opts.detailed})

	var data []byte
	switch opts.format {
	case formatSVG:
		prog := newProgress(c.Logger)
		data, err = render.RenderSVG(dot)
		if err != nil {
			return err
		}
		prog.done(fmt.Sprintf("Rendered SVG (%d bytes)", len(data)))
	default:
		data = []byte(dot)
	}

	outputPath := opts.output
	if outputPath == "" && opts.format == formatSVG && input != "-" {
		outputPath = strings.TrimSuffix(input, filepath.Ext(input)) + ".svg"
	}

	out, err := openOutput(outputPath)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := out.Write(data); err != nil {
		return err
	}
	if outputPath != "" {
		printFile(status, outputPath)
	}
	return nil
}

// nopCloser wraps an io.Writer with a no-op Close method.
type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path.
// An empty path means stdout.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}

// Command decimate reduces the triangle count of an OFF mesh using
// quadric error metrics.
//
// Usage:
//
//	decimate <input.off> <fraction> <blocks> <threads>
//
// fraction is the share of vertices to remove, in [0.0, 1.0). blocks is
// accepted for compatibility with the classic tool; the partitioning is
// derived from the thread count.
package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/sksmith/decimate/decimate"
)

// Process exit codes, matching the classic mesh-simplification tool.
const (
	exitUsage      = 1
	exitFraction   = 2
	exitInputOpen  = 11
	exitBadMagic   = 12
	exitBadCounts  = 13
	exitBadVertex  = 14
	exitBadFace    = 15
	exitOutputOpen = 16
)

// exitError carries the process exit code alongside the cause.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func newRootCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:           "decimate <input.off> <fraction> <blocks> <threads>",
		Short:         "Reduce the triangle count of an OFF mesh with quadric error metrics",
		Args:          cobra.ExactArgs(4),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output path (default <input>.simplified.off)")

	return cmd
}

func run(cmd *cobra.Command, args []string, output string) error {
	input := args[0]

	fraction, err := strconv.ParseFloat(args[1], 64)
	if err != nil || fraction < 0 {
		return &exitError{exitUsage, fmt.Errorf("invalid simplification fraction %q", args[1])}
	}
	if fraction >= 1.0 {
		return &exitError{exitFraction, errors.New("simplification fraction should be less than 1.0")}
	}

	blocks, err := strconv.Atoi(args[2])
	if err != nil || blocks < 1 {
		return &exitError{exitUsage, fmt.Errorf("invalid number of blocks %q", args[2])}
	}
	threads, err := strconv.Atoi(args[3])
	if err != nil || threads < 1 {
		return &exitError{exitUsage, fmt.Errorf("invalid number of threads %q", args[3])}
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Input File              : %s\n", input)
	fmt.Fprintf(out, "Simplification Fraction : %g\n", fraction)
	fmt.Fprintf(out, "Number Of Blocks        : %d\n", blocks)
	fmt.Fprintf(out, "Number Of Threads       : %d\n", threads)

	start := time.Now()

	in, err := os.Open(input)
	if err != nil {
		return &exitError{exitInputOpen, err}
	}
	mesh, err := decimate.ReadOFF(in)
	in.Close()
	if err != nil {
		return &exitError{readCode(err), err}
	}

	dim := mesh.Bounds().Dim()
	fmt.Fprintf(out, "\nNumber Of Vertex(s) : %d\n", mesh.VertexCount())
	fmt.Fprintf(out, "Number Of Face(s)   : %d\n", mesh.FaceCount())
	fmt.Fprintf(out, "Number Of Edge(s)   : %d\n", mesh.EdgeCount())
	fmt.Fprintf(out, "Volume Dimensions   : [%g, %g, %g]\n\n", dim.X(), dim.Y(), dim.Z())

	result, err := decimate.Simplify(mesh, fraction, decimate.Options{
		Workers:  threads,
		Progress: out,
	})
	if err != nil {
		return &exitError{exitFraction, err}
	}

	path := output
	if path == "" {
		path = defaultOutput(input)
	}
	f, err := os.Create(path)
	if err != nil {
		return &exitError{exitOutputOpen, err}
	}
	if err := decimate.WriteOFF(f, mesh); err != nil {
		f.Close()
		return &exitError{exitOutputOpen, err}
	}
	if err := f.Close(); err != nil {
		return &exitError{exitOutputOpen, err}
	}

	fmt.Fprintf(out, "\nSaved %s [%d collapse(s), %d failure(s)]\n", path, result.Collapsed, result.Failures)
	fmt.Fprintf(out, "TOTAL TIME: %d ms\n", time.Since(start).Milliseconds())

	return nil
}

// readCode maps a ReadOFF error to its exit code.
func readCode(err error) int {
	switch {
	case errors.Is(err, decimate.ErrBadMagic):
		return exitBadMagic
	case errors.Is(err, decimate.ErrBadCounts):
		return exitBadCounts
	case errors.Is(err, decimate.ErrBadVertex):
		return exitBadVertex
	case errors.Is(err, decimate.ErrBadFace):
		return exitBadFace
	default:
		return exitInputOpen
	}
}

func defaultOutput(input string) string {
	return strings.TrimSuffix(input, ".off") + ".simplified.off"
}

func main() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)

		code := exitUsage
		var ee *exitError
		if errors.As(err, &ee) {
			code = ee.code
		}
		if code == exitUsage {
			fmt.Fprintln(os.Stderr, "Usage:", cmd.UseLine())
		}
		os.Exit(code)
	}
}

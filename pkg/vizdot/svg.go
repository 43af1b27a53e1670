package vizdot

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"

	"github.com/latticecell/synthmap/pkg/egraph"
)

// ErrDotUnavailable reports that the system `dot` binary could not be
// run. This is external I/O, surfaced to the caller rather than
// retried, and non-fatal to the overall run since the side output is
// optional.
type ErrDotUnavailable struct {
	Cause error
}

func (e *ErrDotUnavailable) Error() string {
	return fmt.Sprintf("vizdot: system dot binary unavailable: %v", e.Cause)
}

func (e *ErrDotUnavailable) Unwrap() error { return e.Cause }

// WriteSVG renders g to DOT and shells out to the system `dot` binary to
// convert it to SVG, writing the result to path (conventionally
// "egraph.svg"). Failure to locate or run `dot` is reported as
// *ErrDotUnavailable; failure to write the output file is reported as a
// wrapped write error. Neither is fatal to the synthesis run.
func WriteSVG(g *egraph.Graph, path string) error {
	dotPath, err := exec.LookPath("dot")
	if err != nil {
		return &ErrDotUnavailable{Cause: err}
	}

	cmd := exec.Command(dotPath, "-Tsvg")
	cmd.Stdin = bytes.NewBufferString(WriteDOT(g))
	var out bytes.Buffer
	cmd.Stdout = &out
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return &ErrDotUnavailable{Cause: fmt.Errorf("%v: %s", err, stderr.String())}
	}
	if err := os.WriteFile(path, out.Bytes(), 0o644); err != nil {
		return fmt.Errorf("vizdot: writing %s: %w", path, err)
	}
	return nil
}

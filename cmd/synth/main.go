// synth is the thin CLI shell over the synthesis engine:
//
//	synth <library.json> <metric> <expr-s-exp>
//
// It prints a saturation report, the explanation chain, and the
// extracted expression, and writes an optional egraph.svg side output.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/latticecell/synthmap/pkg/construct"
	"github.com/latticecell/synthmap/pkg/explain"
	"github.com/latticecell/synthmap/pkg/langterm"
	"github.com/latticecell/synthmap/pkg/synth"
	"github.com/latticecell/synthmap/pkg/vizdot"
)

func main() {
	log.SetFlags(0)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: synth <library.json> <metric> <expr-s-exp>\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 3 {
		flag.Usage()
		os.Exit(1)
	}
	libraryPath := flag.Arg(0)
	metricName := flag.Arg(1)
	exprSrc := flag.Arg(2)

	s, err := synth.NewSynthesizer(libraryPath, metricName)
	if err != nil {
		log.Fatalf("loading library: %v", err)
	}

	startExpr, err := langterm.Parse(exprSrc)
	if err != nil {
		log.Fatalf("parsing expression: %v", err)
	}

	g := construct.NewEGraph()
	eg := g.EGraph()
	rootClass := eg.AddExpr(startExpr, startExpr.Root())
	root := g.Wrap(rootClass)

	builder := explain.NewBuilder()
	result, err := s.Run(context.Background(), g, root, builder)
	if err != nil {
		log.Fatalf("synthesis failed: %v", err)
	}

	fmt.Printf("Saturation report\n=================\n")
	fmt.Printf("iterations: %d\nclasses:    %d\nnodes:      %d\nstopped:    %s\n\n",
		result.Report.Iterations, result.Report.ClassCount, result.Report.NodeCount, result.Report.StopReason)

	fmt.Printf("Explanation\n===========\n")
	extractedClass := eg.AddExpr(result.Expr, result.Root)
	steps, err := builder.Explain(eg, rootClass, extractedClass)
	switch {
	case err != nil:
		fmt.Printf("(no proof recorded: %v)\n\n", err)
	case len(steps) == 0:
		fmt.Printf("(already equal; no rewriting was necessary)\n\n")
	default:
		for _, step := range steps {
			fmt.Printf("  %s: class %d -> class %d\n", step.Rule, step.From, step.To)
		}
		fmt.Println()
	}

	fmt.Printf("Result\n======\n%s\n", result.Expr.Pretty(80))

	if err := vizdot.WriteSVG(eg, "egraph.svg"); err != nil {
		log.Printf("warning: could not write egraph.svg: %v", err)
	}
}

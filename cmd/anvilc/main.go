// Command anvilc reads a ".air" textual IR file, optimizes every
// function in it, and prints the module before and after.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/tliron/commonlog"

	"github.com/hassan/anvil/internal/asm"
	"github.com/hassan/anvil/internal/optimizer"
)

func main() {
	verbose := flag.Bool("v", false, "log each pass as it runs")
	fixpoint := flag.Bool("fixpoint", false, "iterate DSE/DCE to a fixpoint instead of running each once")
	maxIter := flag.Int("max-iterations", 10, "iteration cap at -fixpoint")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <file.air>\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}
	path := flag.Arg(0)

	if *verbose {
		commonlog.Configure(1, nil)
	}

	source, err := os.ReadFile(path)
	if err != nil {
		color.Red("failed to read %s: %v", path, err)
		os.Exit(1)
	}

	mod, errs := asm.ParseModule(string(source), path)
	if len(errs) > 0 {
		reportParseErrors(string(source), errs)
		os.Exit(1)
	}

	if verifyErrs := mod.Verify(); len(verifyErrs) > 0 {
		fmt.Fprintf(os.Stderr, "\nIR verification errors:\n")
		for _, err := range verifyErrs {
			fmt.Fprintf(os.Stderr, "  %v\n", err)
		}
		os.Exit(1)
	}

	fmt.Println("=== Before ===")
	fmt.Println(mod.String())

	level := optimizer.LevelConservative
	if *fixpoint {
		level = optimizer.LevelFixpoint
	}
	opt := optimizer.New(optimizer.NewConfig(
		optimizer.WithLevel(level),
		optimizer.WithVerbose(*verbose),
		optimizer.WithMaxIterations(*maxIter),
	))

	total := optimizer.Stats{PassExecutions: map[string]int{}}
	for _, fn := range mod.Functions {
		_, stats := opt.Run(fn)
		total.InstructionsRemoved += stats.InstructionsRemoved
		total.StoresRewritten += stats.StoresRewritten
		for name, n := range stats.PassExecutions {
			total.PassExecutions[name] += n
		}
	}

	if verifyErrs := mod.Verify(); len(verifyErrs) > 0 {
		fmt.Fprintf(os.Stderr, "\nIR verification errors after optimization:\n")
		for _, err := range verifyErrs {
			fmt.Fprintf(os.Stderr, "  %v\n", err)
		}
		os.Exit(1)
	}

	fmt.Println("=== After ===")
	fmt.Println(mod.String())
	fmt.Print(total.String())

	color.Green("✅ optimized %s", path)
}

// reportParseErrors prints each parse error with a caret under the
// offending column, the way a one-line-at-a-time format's errors read
// best: no multi-line span to underline, just where the cursor broke.
func reportParseErrors(src string, errs []error) {
	lines := strings.Split(src, "\n")
	for _, err := range errs {
		pe, ok := err.(*asm.ParseError)
		if !ok {
			color.Red("%v", err)
			continue
		}
		color.Red("%s: %s", pe.Position.String(), pe.Msg)
		if pe.Position.Line >= 1 && pe.Position.Line <= len(lines) {
			line := lines[pe.Position.Line-1]
			fmt.Println(line)
			col := pe.Position.Column
			if col < 1 {
				col = 1
			}
			color.HiRed(strings.Repeat(" ", col-1) + "^")
		}
	}
}

// The MIT License (MIT)
//
// Copyright (c) 2019 West Damron
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// Command tntc-check checks the types, effects, and modes of modules encoded as JSON.
//
// Usage:
//
//	tntc-check [-policy file.yaml] [-v] [-no-color] input.json
//
// The input is either an array of modules, or an object with "modules" and an optional lookup
// "table". Without a table, names are resolved by lexical scoping. The exit status is 1 when any
// diagnostic was reported, and 2 when the input could not be read.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strings"

	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/wdamron/tntc"
	"github.com/wdamron/tntc/effects"
	"github.com/wdamron/tntc/errtree"
	"github.com/wdamron/tntc/internal/astutil"
	"github.com/wdamron/tntc/ir"
	"github.com/wdamron/tntc/modes"
	"github.com/wdamron/tntc/types"
)

const (
	colorRed   = "\x1b[31m"
	colorGreen = "\x1b[32m"
	colorDim   = "\x1b[2m"
	colorReset = "\x1b[0m"
)

func main() {
	policyPath := flag.String("policy", "", "mode policy (YAML)")
	verbose := flag.Bool("v", false, "print the scheme, effect, and verdict of each definition")
	noColor := flag.Bool("no-color", false, "disable colored output")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: tntc-check [-policy file.yaml] [-v] [-no-color] input.json\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	logger, err := newLogger(*verbose)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	code, err := run(flag.Arg(0), *policyPath, *verbose, useColor(*noColor), logger)
	if err != nil {
		logger.Error("check failed", zap.Error(err))
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	os.Exit(code)
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	return cfg.Build()
}

func useColor(disabled bool) bool {
	if disabled || os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

func run(inputPath, policyPath string, verbose, color bool, logger *zap.Logger) (int, error) {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", inputPath, err)
	}
	file, err := ir.Decode(data)
	if err != nil {
		return 0, fmt.Errorf("decoding %s: %w", inputPath, err)
	}
	policy := modes.DefaultPolicy()
	if policyPath != "" {
		if policy, err = modes.LoadPolicy(policyPath); err != nil {
			return 0, err
		}
	}
	table := file.Table
	if table == nil {
		table = astutil.Resolve(file.Modules...)
		logger.Debug("resolved names by scope", zap.Int("bindings", len(table)))
	}

	result := tntc.Check(file.Modules, table, tntc.WithLogger(logger), tntc.WithPolicy(policy))

	p := &printer{w: os.Stdout, color: color}
	if verbose {
		for _, m := range file.Modules {
			p.module(m, result)
		}
	}
	for _, err := range result.Errors {
		p.diagnostic(err)
	}
	if !result.OK() {
		p.printf(colorRed, "%d diagnostic(s)\n", result.Errors.Len())
		return 1, nil
	}
	return 0, nil
}

type printer struct {
	w     io.Writer
	color bool
}

func (p *printer) printf(color, format string, args ...interface{}) {
	if p.color && color != "" {
		fmt.Fprint(p.w, color)
		defer fmt.Fprint(p.w, colorReset)
	}
	fmt.Fprintf(p.w, format, args...)
}

func (p *printer) diagnostic(err *errtree.Tree) {
	lines := strings.Split(strings.TrimSuffix(err.String(), "\n"), "\n")
	p.printf(colorRed, "%s\n", lines[0])
	for _, line := range lines[1:] {
		p.printf("", "%s\n", line)
	}
}

func (p *printer) module(m *ir.Module, result *tntc.Result) {
	p.printf(colorDim, "module %s\n", m.Name)
	ids := make([]ir.ID, 0, len(m.Defs))
	names := make(map[ir.ID]string, len(m.Defs))
	for _, d := range m.Defs {
		if _, ok := d.(*ir.OpDef); ok {
			ids = append(ids, d.DefID())
			names[d.DefID()] = d.DefName()
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		ts, effs, verdict := "?", "?", "skipped"
		if s, ok := result.TypeSchemes[id]; ok {
			ts = types.SchemeString(s)
		}
		if s, ok := result.EffectSchemes[id]; ok {
			effs = effects.SchemeString(s)
		}
		color := colorDim
		if v, ok := result.Verdicts[id]; ok {
			verdict = v.Status.String()
			switch v.Status {
			case modes.StatusOK:
				color = colorGreen
			case modes.StatusMismatch:
				color = colorRed
			}
		}
		p.printf("", "  %s: %s / %s ", names[id], ts, effs)
		p.printf(color, "[%s]\n", verdict)
	}
}

package maincmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/mna/mainer"

	"github.com/somire-lang/somire/lang/chunk"
	"github.com/somire-lang/somire/lang/compiler"
	"github.com/somire-lang/somire/lang/frontend"
	"github.com/somire-lang/somire/lang/gc"
)

// Build is the "build" command: it compiles one or more YAML-encoded
// syntax trees into somire bytecode chunks (spec.md §2's GC/value/type
// system/chunk/context/walker/emitter pipeline, fed by lang/frontend).
func (c *Cmd) Build(ctx context.Context, stdio mainer.Stdio, args []string) error {
	return BuildFiles(ctx, stdio, c.Output, args...)
}

// BuildFiles compiles each of files independently (the module has no
// imports/separate compilation, spec.md §1's Non-goals) and writes the
// resulting chunks, in order, to stdio.Stdout — or, if output is non-empty,
// to that path (valid only for a single input file).
func BuildFiles(ctx context.Context, stdio mainer.Stdio, output string, files ...string) error {
	var w io.Writer = stdio.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			fmt.Fprintf(stdio.Stderr, "build: %s\n", err)
			return err
		}
		defer f.Close()
		w = f
	}

	for _, path := range files {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err := buildFile(stdio, w, path); err != nil {
			return err
		}
	}
	return nil
}

func buildFile(stdio mainer.Stdio, w io.Writer, path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(stdio.Stderr, "build: %s\n", err)
		return err
	}

	body, err := frontend.ParseProgram(src)
	if err != nil {
		fmt.Fprintf(stdio.Stderr, "build: %s: %s\n", path, err)
		return err
	}

	heap := gc.NewHeap()
	comp := compiler.New(heap)
	ch, err := comp.CompileProgram(body)
	if err != nil {
		fmt.Fprintf(stdio.Stderr, "build: %s: %s\n", path, err)
		return err
	}
	defer ch.Close()

	if err := chunk.Write(w, ch); err != nil {
		fmt.Fprintf(stdio.Stderr, "build: %s: writing chunk: %s\n", path, err)
		return err
	}
	return nil
}

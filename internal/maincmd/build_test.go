package maincmd_test

import (
	"bytes"
	"context"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/mna/mainer"
	"github.com/stretchr/testify/require"

	"github.com/somire-lang/somire/internal/filetest"
	"github.com/somire-lang/somire/internal/maincmd"
	"github.com/somire-lang/somire/lang/chunk"
	"github.com/somire-lang/somire/lang/gc"
)

var testUpdateBuildTests = flag.Bool("test.update-build-tests", false, "If set, replace expected build test results with actual results.")

func TestBuildErrors(t *testing.T) {
	ctx := context.Background()
	srcDir, resultDir := filepath.Join("testdata", "in"), filepath.Join("testdata", "out")

	for _, fi := range filetest.SourceFiles(t, srcDir, ".yaml") {
		if fi.Name() != "badvar.yaml" {
			continue
		}
		t.Run(fi.Name(), func(t *testing.T) {
			var buf, ebuf bytes.Buffer
			stdio := mainer.Stdio{Stdout: &buf, Stderr: &ebuf}

			err := maincmd.BuildFiles(ctx, stdio, "", filepath.Join(srcDir, fi.Name()))
			require.Error(t, err)
			filetest.DiffErrors(t, fi, ebuf.String(), resultDir, testUpdateBuildTests)
		})
	}
}

func TestBuildFilesCompilesToReadableChunk(t *testing.T) {
	ctx := context.Background()
	var buf, ebuf bytes.Buffer
	stdio := mainer.Stdio{Stdout: &buf, Stderr: &ebuf}

	err := maincmd.BuildFiles(ctx, stdio, "", filepath.Join("testdata", "in", "arithmetic.yaml"))
	require.NoError(t, err)
	require.Empty(t, ebuf.String())

	heap := gc.NewHeap()
	ch, err := chunk.Read(&buf, heap)
	require.NoError(t, err)
	defer ch.Close()

	require.Len(t, ch.Protos, 1)
	require.Equal(t, int32(2), ch.Constants().Items[0].AsInt())
	require.Equal(t, int32(3), ch.Constants().Items[1].AsInt())
	require.Equal(t, int32(4), ch.Constants().Items[2].AsInt())
}

func TestBuildFilesWritesToOutputPath(t *testing.T) {
	ctx := context.Background()
	var buf, ebuf bytes.Buffer
	stdio := mainer.Stdio{Stdout: &buf, Stderr: &ebuf}

	out := filepath.Join(t.TempDir(), "arithmetic.somirec")
	err := maincmd.BuildFiles(ctx, stdio, out, filepath.Join("testdata", "in", "arithmetic.yaml"))
	require.NoError(t, err)
	require.Empty(t, buf.String())

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()

	heap := gc.NewHeap()
	ch, err := chunk.Read(f, heap)
	require.NoError(t, err)
	defer ch.Close()
	require.Len(t, ch.Protos, 1)
}

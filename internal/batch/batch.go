// Package batch implements spec §6's batch process protocol: one line of
// stdin names a directory, the worker compiles every .ts/.tsx file directly
// under it, and the directories are compiled in parallel, one goroutine per
// directory (golang.org/x/sync/errgroup, bounded by GOMAXPROCS); the files
// of one directory are compiled one after another. Each directory's compile
// gets a google/uuid request id for log correlation, mirroring how the
// teacher tags its own long-running module loads.
package batch

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/mohsen1/tsz-sub030/internal/checker"
	"github.com/mohsen1/tsz-sub030/internal/diagnostics"
	"github.com/mohsen1/tsz-sub030/internal/pipeline"
	"github.com/mohsen1/tsz-sub030/internal/typesystem"
)

// DoneSentinel terminates a batch run's output, signaling to a reading
// process that every requested directory has been compiled.
const DoneSentinel = "---TSZ-BATCH-DONE---"

// Request is one line of batch input: a directory to compile.
type Request struct {
	RequestID uuid.UUID
	Dir       string
}

// Result is one directory's compile outcome.
type Result struct {
	Request     Request
	Diagnostics []*diagnostics.DiagnosticError
	Err         error
}

// Run reads one directory path per line from stdin, compiles each with its
// own request id, writes every diagnostic to stdout, writes a one-line
// per-request status to stderr (mirroring the teacher's stderr-tagged
// long-running-load logging), and finishes with DoneSentinel on stdout.
func Run(stdin io.Reader, stdout, stderr io.Writer, opts checker.Options) error {
	scanner := bufio.NewScanner(stdin)
	var dirs []string
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			dirs = append(dirs, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading batch directory list: %w", err)
	}

	results := make([]Result, len(dirs))
	in := typesystem.New()

	g := new(errgroup.Group)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, dir := range dirs {
		i, dir := i, dir
		g.Go(func() error {
			req := Request{RequestID: uuid.New(), Dir: dir}
			fmt.Fprintf(stderr, "tsz batch: %s compiling %s\n", req.RequestID, req.Dir)
			diags, err := compileDir(in, req.Dir, opts)
			results[i] = Result{Request: req, Diagnostics: diags, Err: err}
			return nil
		})
	}
	// errgroup.Group.Wait only ever returns an error from a Go func that
	// itself returns non-nil; compileDir errors are carried in Result
	// instead so one directory's failure never aborts the others.
	_ = g.Wait()

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(stdout, "%s: %s\n", r.Request.Dir, r.Err)
			continue
		}
		for _, d := range r.Diagnostics {
			fmt.Fprintln(stdout, d.Error())
		}
	}
	fmt.Fprintln(stdout, DoneSentinel)
	return nil
}

// compileDir parses, binds, and checks every .ts/.tsx file directly under
// dir, sharing one Interner across them (the one place spec §5's
// "only the shared Interner crosses goroutine boundaries" rule is
// exercised from outside the checker package itself).
func compileDir(in *typesystem.Interner, dir string, opts checker.Options) ([]*diagnostics.DiagnosticError, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.HasSuffix(e.Name(), ".ts") || strings.HasSuffix(e.Name(), ".tsx") {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)

	var all []*diagnostics.DiagnosticError
	for _, f := range files {
		src, err := os.ReadFile(f)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", f, err)
		}
		ctx := pipeline.NewContext(f, string(src), in, opts)
		result := pipeline.Standard().Run(ctx)
		for _, e := range result.Errors {
			if d, ok := e.(*diagnostics.DiagnosticError); ok {
				all = append(all, d)
			}
		}
		all = append(all, result.Diagnostics...)
	}
	return all, nil
}

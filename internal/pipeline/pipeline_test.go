package pipeline_test

import (
	"testing"

	"github.com/mohsen1/tsz-sub030/internal/checker"
	"github.com/mohsen1/tsz-sub030/internal/diagnostics"
	"github.com/mohsen1/tsz-sub030/internal/pipeline"
	"github.com/mohsen1/tsz-sub030/internal/typesystem"
)

func TestStandardPipelineReportsDiagnostics(t *testing.T) {
	in := typesystem.New()
	ctx := pipeline.NewContext("scenario.ts", `const x: number = "s";`, in, checker.Options{})
	result := pipeline.Standard().Run(ctx)

	if len(result.Errors) != 0 {
		t.Fatalf("unexpected parse/bind errors: %v", result.Errors)
	}
	found := false
	for _, d := range result.Diagnostics {
		if d.Code == diagnostics.ErrTypeNotAssignable {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected TS2322 from the standard pipeline, got %v", result.Diagnostics)
	}
}

func TestStandardPipelineCleanFileHasNoDiagnostics(t *testing.T) {
	in := typesystem.New()
	ctx := pipeline.NewContext("scenario.ts", `const x: number = 1;`, in, checker.Options{})
	result := pipeline.Standard().Run(ctx)
	if len(result.Diagnostics) != 0 {
		t.Fatalf("expected no diagnostics, got %v", result.Diagnostics)
	}
}

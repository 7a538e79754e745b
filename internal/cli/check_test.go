package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	pcerrors "github.com/pipecheck/pipecheck/pkg/errors"
	"github.com/pipecheck/pipecheck/pkg/pipeline"
)

// writePipelineFile writes a pipeline JSON payload to a temp file and returns its path.
func writePipelineFile(t *testing.T, payload string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pipeline.json")
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("write pipeline file: %v", err)
	}
	return path
}

func newTestCLI() *CLI {
	return New(io.Discard, LogInfo)
}

const acyclicPayload = `{
	"nodes": [{"id": "a"}, {"id": "b"}, {"id": "c"}],
	"edges": [
		{"id": "e1", "source": "a", "target": "b"},
		{"id": "e2", "source": "b", "target": "c"}
	]
}`

const cyclicPayload = `{
	"nodes": [{"id": "a"}, {"id": "b"}],
	"edges": [
		{"id": "e1", "source": "a", "target": "b"},
		{"id": "e2", "source": "b", "target": "a"}
	]
}`

func TestRunCheckAcyclic(t *testing.T) {
	path := writePipelineFile(t, acyclicPayload)

	var out bytes.Buffer
	if err := newTestCLI().runCheck(path, checkOpts{}, &out); err != nil {
		t.Fatalf("runCheck() error: %v", err)
	}

	got := out.String()
	if !strings.Contains(got, "DAG") {
		t.Errorf("output should report a DAG verdict, got %q", got)
	}
	if !strings.Contains(got, "3 nodes") || !strings.Contains(got, "2 edges") {
		t.Errorf("output should report counts, got %q", got)
	}
}

func TestRunCheckCyclic(t *testing.T) {
	path := writePipelineFile(t, cyclicPayload)

	var out bytes.Buffer
	if err := newTestCLI().runCheck(path, checkOpts{}, &out); err != nil {
		t.Fatalf("runCheck() error: %v", err)
	}

	if !strings.Contains(out.String(), "cycle") {
		t.Errorf("output should report a cycle, got %q", out.String())
	}
}

func TestRunCheckJSON(t *testing.T) {
	path := writePipelineFile(t, acyclicPayload)

	var out bytes.Buffer
	if err := newTestCLI().runCheck(path, checkOpts{jsonOut: true}, &out); err != nil {
		t.Fatalf("runCheck() error: %v", err)
	}

	var s pipeline.Summary
	if err := json.Unmarshal(out.Bytes(), &s); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if s.NumNodes != 3 || s.NumEdges != 2 || !s.IsDAG {
		t.Errorf("Summary = %+v, want 3 nodes, 2 edges, is_dag=true", s)
	}
}

func TestRunCheckStrictCycle(t *testing.T) {
	path := writePipelineFile(t, cyclicPayload)

	var out bytes.Buffer
	err := newTestCLI().runCheck(path, checkOpts{strict: true}, &out)
	if err == nil {
		t.Fatal("runCheck() with --strict should fail on a cyclic pipeline")
	}
}

func TestRunCheckStrictAcyclic(t *testing.T) {
	path := writePipelineFile(t, acyclicPayload)

	var out bytes.Buffer
	if err := newTestCLI().runCheck(path, checkOpts{strict: true}, &out); err != nil {
		t.Errorf("runCheck() with --strict on a DAG should succeed, got %v", err)
	}
}

func TestRunCheckMissingFile(t *testing.T) {
	var out bytes.Buffer
	err := newTestCLI().runCheck(filepath.Join(t.TempDir(), "missing.json"), checkOpts{}, &out)
	if err == nil {
		t.Fatal("runCheck() should fail for a missing file")
	}
	if pcerrors.GetCode(err) != pcerrors.ErrCodeFileNotFound {
		t.Errorf("error code = %q, want %q", pcerrors.GetCode(err), pcerrors.ErrCodeFileNotFound)
	}
}

func TestRunCheckInvalidJSON(t *testing.T) {
	path := writePipelineFile(t, "{not json")

	var out bytes.Buffer
	if err := newTestCLI().runCheck(path, checkOpts{}, &out); err == nil {
		t.Fatal("runCheck() should fail for malformed JSON")
	}
}

func TestRootCommandSubcommands(t *testing.T) {
	root := newTestCLI().RootCommand()

	want := []string{"serve", "check", "render", "cache", "completion"}
	for _, name := range want {
		found := false
		for _, sub := range root.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("root command missing subcommand %q", name)
		}
	}
}

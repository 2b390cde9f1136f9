package foldcli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"funcfold/internal/core/scan"
	"funcfold/internal/core/treesitter"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return p
}

func run(t *testing.T, args ...string) (string, Options, error) {
	t.Helper()
	cmd := NewRootCommand()
	cmd.SetArgs(args)
	return ExecuteForTest(cmd)
}

func TestHelpContainsSubcommands(t *testing.T) {
	out, _, err := run(t, "--help")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	for _, want := range []string{"funcfold", "ranges", "fold", "scan", "watch", "check"} {
		if !strings.Contains(out, want) {
			t.Fatalf("help missing %q: %s", want, out)
		}
	}
}

func TestOptionsFromConfigAndFlags(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, dir, "funcfold.yaml", "scan:\n  jobs: 3\n  exclude: [\"*.min.js\"]\noutput:\n  format: csv\n")

	_, opts, err := run(t, "--config", cfg, "version", "-s")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if opts.Jobs != 3 || opts.Format != "csv" || len(opts.ExcludeGlobs) != 1 {
		t.Fatalf("opts=%+v", opts)
	}

	_, opts, err = run(t, "--config", cfg, "-j", "5", "-x", "*.d.ts,*.gen.ts", "--format", "jsonl", "version")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if opts.Jobs != 5 || opts.Format != "jsonl" {
		t.Fatalf("flags should win: %+v", opts)
	}
	if len(opts.ExcludeGlobs) != 2 || opts.ExcludeGlobs[0] != "*.d.ts" || opts.ExcludeGlobs[1] != "*.gen.ts" {
		t.Fatalf("ExcludeGlobs=%v", opts.ExcludeGlobs)
	}
}

func TestInvalidFormatIsError(t *testing.T) {
	if _, _, err := run(t, "--format", "xml", "version"); err == nil {
		t.Fatal("expected error")
	}
}

func TestRangesDefaultAndVim(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "app.js", "function a() {\n  return 1;\n}\n\nconst b = async () => {\n  await a();\n};\n")

	out, _, err := run(t, "ranges", p)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	want := p + ":1-3: function-declaration a\n" + p + ":5-7: arrow-function b\n"
	if out != want {
		t.Fatalf("out=%q want %q", out, want)
	}

	out, _, err = run(t, "--format", "vim", "ranges", p)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.HasPrefix(out, p+":1:1: function-declaration a (3 lines)\n") {
		t.Fatalf("out=%q", out)
	}
}

func TestRangesLanguageOverride(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "tool", "def main():\n    pass\n")

	if _, _, err := run(t, "ranges", p); err == nil {
		t.Fatal("expected unsupported error without --lang")
	}
	out, _, err := run(t, "--lang", "py", "--format", "jsonl", "ranges", p)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	var rec RangeRecord
	if err := json.Unmarshal([]byte(strings.TrimSpace(out)), &rec); err != nil {
		t.Fatalf("unmarshal: %v (%s)", err, out)
	}
	if rec.Language != "python" || rec.StartLine != 0 || rec.EndLine != 1 || rec.Name != "main" {
		t.Fatalf("rec=%+v", rec)
	}
}

func TestFoldCommand(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "m.py", "def f():\n    return 1\n\ndef g():\n    return 2\n")

	cmd := NewRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{"fold", p})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if stderr.String() != "info: Folded 2 functions\n" {
		t.Fatalf("stderr=%q", stderr.String())
	}
	if stdout.String() != "def f(): ⋯ 1 lines\n\ndef g(): ⋯ 1 lines\n" {
		t.Fatalf("stdout=%q", stdout.String())
	}
}

func TestFoldCommandUnfoldAndUnsupported(t *testing.T) {
	dir := t.TempDir()
	py := writeFile(t, dir, "m.py", "def f():\n    return 1\n")
	out, _, err := run(t, "fold", "--unfold", py)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out, "info: Unfolded all functions") || !strings.Contains(out, "    return 1") {
		t.Fatalf("out=%q", out)
	}

	goFile := writeFile(t, dir, "main.go", "func main() {\n}\n")
	out, _, err = run(t, "fold", goFile)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out, "Function folding is only supported for JavaScript, TypeScript, and Python files") {
		t.Fatalf("out=%q", out)
	}
}

func TestScanJSONAndSummary(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "src/a.ts", "export function a(): number {\n  return 1;\n}\n")
	writeFile(t, dir, "lib/b.py", "def b():\n    pass\n")
	writeFile(t, dir, "node_modules/x/index.js", "function x() {\n}\n")

	out, _, err := run(t, "--format", "json", "scan", dir)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	var rep scan.Report
	if err := json.Unmarshal([]byte(out), &rep); err != nil {
		t.Fatalf("unmarshal: %v (%s)", err, out)
	}
	if len(rep.Files) != 2 || rep.TotalRanges != 2 || rep.Files[0].Path != "lib/b.py" {
		t.Fatalf("report=%+v", rep)
	}

	out, _, err = run(t, "scan", "--summary", dir)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.HasPrefix(out, "2 files, 5 lines (") || !strings.Contains(out, "2 functions\n  python: 1\n  typescript: 1\n") {
		t.Fatalf("out=%q", out)
	}
}

func TestCheckWithoutTreesitter(t *testing.T) {
	if treesitter.Enabled {
		t.Skip("built with tree-sitter")
	}
	dir := t.TempDir()
	p := writeFile(t, dir, "a.js", "function a() {\n}\n")
	if _, _, err := run(t, "check", p); err == nil || !strings.Contains(err.Error(), "treesitter disabled") {
		t.Fatalf("err=%v", err)
	}
}

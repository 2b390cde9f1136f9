package lang

import "testing"

func TestFromPath(t *testing.T) {
	cases := map[string]string{
		"src/app.js":        JavaScript,
		"src/app.MJS":       JavaScript,
		"ui/Button.jsx":     JavaScriptReact,
		"lib/index.ts":      TypeScript,
		"ui/View.tsx":       TypeScriptReact,
		"tools/run.py":      Python,
		"stubs/mod.pyi":     Python,
		"main.go":           "",
		"Makefile":          "",
		"  spaced/name.ts ": TypeScript,
	}
	for path, want := range cases {
		if got := FromPath(path); got != want {
			t.Fatalf("FromPath(%q)=%q want %q", path, got, want)
		}
	}
}

func TestFromPathAndContentShebang(t *testing.T) {
	if got := FromPathAndContent("bin/tool", []byte("#!/usr/bin/env python3\nprint(1)\n")); got != Python {
		t.Fatalf("got=%q", got)
	}
	if got := FromPathAndContent("bin/cli", []byte("#!/usr/bin/env node")); got != JavaScript {
		t.Fatalf("got=%q", got)
	}
	if got := FromPathAndContent("bin/run", []byte("#!/bin/sh\necho hi\n")); got != "" {
		t.Fatalf("got=%q", got)
	}
	if got := FromPathAndContent("a.ts", []byte("#!/usr/bin/env python")); got != TypeScript {
		t.Fatalf("extension should win, got=%q", got)
	}
}

func TestNormalizeAndSupported(t *testing.T) {
	if Normalize(" TSX ") != TypeScriptReact {
		t.Fatalf("Normalize tsx=%q", Normalize(" TSX "))
	}
	if Normalize("python3") != Python {
		t.Fatalf("Normalize python3=%q", Normalize("python3"))
	}
	if Normalize("rust") != "rust" {
		t.Fatalf("Normalize rust=%q", Normalize("rust"))
	}
	if !Supported("py") || !Supported("javascriptreact") {
		t.Fatal("expected supported")
	}
	if Supported("go") || Supported("") {
		t.Fatal("expected unsupported")
	}
	for _, ext := range Extensions() {
		if FromPath("x"+ext) == "" {
			t.Fatalf("extension %s not mapped", ext)
		}
	}
}

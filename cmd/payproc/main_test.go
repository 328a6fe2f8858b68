package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func captureOutput(t *testing.T, fn func()) string {
	t.Helper()

	origStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w

	fn()

	_ = w.Close()
	os.Stdout = origStdout

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		t.Fatalf("failed to read stdout: %v", err)
	}
	return buf.String()
}

func TestRootCmdRegistersSubcommands(t *testing.T) {
	root := newRootCmd()

	seen := map[string]bool{}
	for _, cmd := range root.Commands() {
		seen[cmd.Name()] = true
	}

	for _, name := range []string{"process", "serve", "migrate"} {
		if !seen[name] {
			t.Fatalf("expected %s subcommand to be registered", name)
		}
	}
}

func TestProcessCmd(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "activities.csv")

	data := "type,client,tx,amount\n" +
		"deposit,1,1,10.0\n" +
		"withdrawal,1,2,4.0\n"
	if err := os.WriteFile(input, []byte(data), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	cmd := newProcessCmd()
	cmd.SetArgs([]string{input, "--silent"})

	out := captureOutput(t, func() {
		if err := cmd.Execute(); err != nil {
			t.Fatalf("process failed: %v", err)
		}
	})

	if !strings.HasPrefix(out, "client,available,held,total,locked") {
		t.Fatalf("expected snapshot header, got %q", out)
	}
	if !strings.Contains(out, "1,6,0,6,false") {
		t.Fatalf("expected client 1 snapshot in output, got %q", out)
	}
}

func TestProcessCmdMissingFile(t *testing.T) {
	cmd := newProcessCmd()
	cmd.SetArgs([]string{filepath.Join(t.TempDir(), "absent.csv")})

	if err := cmd.Execute(); err == nil {
		t.Fatal("expected an error for a missing input file")
	}
}

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const usagePage = `<html><body>
<table id="usage-table">
  <thead><tr><th>User</th><th>Download<br>(MB)</th><th>Upload<br>(MB)</th></tr></thead>
  <tbody>
    <tr><td>ana</td><td>10</td><td>2</td></tr>
    <tr><td>bruno</td><td>7</td><td>1</td></tr>
  </tbody>
  <tfoot><tr><th>Total</th><th>17</th><th>3</th></tr></tfoot>
</table>
</body></html>`

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestExportCommand_HTML(t *testing.T) {
	dir := t.TempDir()
	page := filepath.Join(dir, "usage.html")
	writeFile(t, page, usagePage)
	out := filepath.Join(dir, "reports")

	for _, format := range []string{"pdf", "xlsx"} {
		stdout, stderr, err := execute(t, "export",
			"--config", filepath.Join(dir, "missing.yaml"),
			"--html", page,
			"--table", "usage-table",
			"--title", "Monthly Report",
			"--locale", "en-US",
			"--format", format,
			"--out", out,
		)
		if err != nil {
			t.Fatalf("export %s: %v (stderr: %s)", format, err, stderr)
		}
		if !strings.Contains(stdout, "monthly_report_") || !strings.Contains(stdout, "(1 pages, 3 rows)") {
			t.Fatalf("unexpected output %q", stdout)
		}
	}

	entries, err := os.ReadDir(out)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	var reports []string
	for _, entry := range entries {
		if !strings.HasSuffix(entry.Name(), ".meta.json") {
			reports = append(reports, entry.Name())
		}
	}
	if len(reports) != 2 {
		t.Fatalf("expected pdf and xlsx reports, got %v", reports)
	}
}

func TestExportCommand_TableNotFound(t *testing.T) {
	dir := t.TempDir()
	page := filepath.Join(dir, "usage.html")
	writeFile(t, page, usagePage)
	out := filepath.Join(dir, "reports")

	_, stderr, err := execute(t, "export",
		"--config", filepath.Join(dir, "missing.yaml"),
		"--html", page,
		"--table", "nope",
		"--title", "Monthly Report",
		"--locale", "en-US",
		"--out", out,
	)
	if err == nil {
		t.Fatalf("expected error for missing table")
	}
	if !strings.Contains(stderr, "! ") {
		t.Fatalf("expected an alert on stderr, got %q", stderr)
	}
	if _, statErr := os.Stat(out); !os.IsNotExist(statErr) {
		t.Fatalf("expected no output directory, got %v", statErr)
	}
}

func TestExportCommand_RequiresSource(t *testing.T) {
	if _, _, err := execute(t, "export", "--table", "usage-table", "--title", "Report"); err == nil {
		t.Fatalf("expected error without --html or --url")
	}
}

func TestThemeCommands(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "reportctl.yaml")
	writeFile(t, cfgPath, "theme:\n  store: file\n  path: "+filepath.Join(dir, "prefs.json")+"\n  system: dark\n")

	stdout, _, err := execute(t, "theme", "apply", "--config", cfgPath)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if strings.TrimSpace(stdout) != "dark" {
		t.Fatalf("expected system dark, got %q", stdout)
	}

	stdout, _, err = execute(t, "theme", "show", "--config", cfgPath)
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	if !strings.Contains(stdout, "stored: unset") || !strings.Contains(stdout, "system: dark") {
		t.Fatalf("unexpected show output %q", stdout)
	}

	stdout, _, err = execute(t, "theme", "toggle", "--config", cfgPath)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if strings.TrimSpace(stdout) != "light" {
		t.Fatalf("expected light after toggle, got %q", stdout)
	}

	stdout, _, err = execute(t, "theme", "toggle", "--config", cfgPath)
	if err != nil {
		t.Fatalf("second toggle: %v", err)
	}
	if strings.TrimSpace(stdout) != "dark" {
		t.Fatalf("expected dark after second toggle, got %q", stdout)
	}

	stdout, _, _ = execute(t, "theme", "show", "--config", cfgPath)
	if !strings.Contains(stdout, "stored: dark") {
		t.Fatalf("expected stored dark, got %q", stdout)
	}
}

func TestReportsCommands(t *testing.T) {
	dir := t.TempDir()
	page := filepath.Join(dir, "usage.html")
	writeFile(t, page, usagePage)
	out := filepath.Join(dir, "reports")
	cfgPath := filepath.Join(dir, "missing.yaml")

	if _, stderr, err := execute(t, "export", "--config", cfgPath, "--html", page,
		"--table", "usage-table", "--title", "Usage", "--locale", "en-GB", "--out", out); err != nil {
		t.Fatalf("export: %v (stderr: %s)", err, stderr)
	}
	entries, err := os.ReadDir(out)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	var name string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".pdf") {
			name = entry.Name()
		}
	}
	if name == "" {
		t.Fatalf("expected a pdf report, got %v", entries)
	}

	stdout, _, err := execute(t, "reports", "show", name, "--config", cfgPath, "--out", out)
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	if !strings.Contains(stdout, "filename: "+name) || !strings.Contains(stdout, "content_type: application/pdf") {
		t.Fatalf("unexpected show output %q", stdout)
	}

	if _, _, err := execute(t, "reports", "rm", name, "--config", cfgPath, "--out", out); err != nil {
		t.Fatalf("rm: %v", err)
	}
	if _, statErr := os.Stat(filepath.Join(out, name+".meta.json")); !os.IsNotExist(statErr) {
		t.Fatalf("expected metadata removed, got %v", statErr)
	}
	if _, _, err := execute(t, "reports", "show", name, "--config", cfgPath, "--out", out); err == nil {
		t.Fatalf("expected not found after rm")
	}
}

package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nhle/workdesk/internal/auth"
	"github.com/nhle/workdesk/internal/credential"
	"github.com/nhle/workdesk/internal/model"
)

const importRows = "No\tDate\tWork By\tType\tStatus\tCustomer\tTracking\tNumber\tSales\tAdvance\n" +
	"1\t2024-01-05\tAlice\tVisa\tApproved\tBob Smith\tTRK1\t+15551234567\t1000\t400\n" +
	"2\t2024-01-06\tAlice\tVisa\tApproved\n" +
	"3\t2024-01-07\tRina\tPassport Renewal\tUNDER PROCESSING\tCara Jones\tTRK2\t+15550000000\t250\t250\n"

// setup writes a config pointing at a fresh database and returns its path.
func setup(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	cfg := &model.AppConfig{
		Store:   model.StoreConfig{Path: filepath.Join(dir, "workdesk.db")},
		Display: model.DisplayConfig{PageSize: 25, Theme: "dark"},
		Auth:    model.AuthConfig{Username: "admin"},
		Server:  model.ServerConfig{Addr: "127.0.0.1:0"},
		Log:     model.LogConfig{Level: "error", Format: "text", File: filepath.Join(dir, "workdesk.log")},
	}
	path := filepath.Join(dir, "config.yaml")
	if err := model.SaveConfig(path, cfg); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}
	return path
}

func run(t *testing.T, configPath, stdin string, args ...string) (string, error) {
	t.Helper()
	return runWith(t, &App{}, configPath, stdin, args...)
}

func runWith(t *testing.T, app *App, configPath, stdin string, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmdWith(app)
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--config", configPath, "--env-file", ""}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func writeRows(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rows.tsv")
	if err := os.WriteFile(path, []byte(importRows), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestImportThenList(t *testing.T) {
	cfg := setup(t)

	out, err := run(t, cfg, "", "import", writeRows(t))
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if !strings.Contains(out, "Imported 2, skipped 1") {
		t.Fatalf("import output = %q", out)
	}

	out, err = run(t, cfg, "", "list", "--json")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var got listOutput
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decoding list output: %v\n%s", err, out)
	}
	if got.Total != 2 {
		t.Fatalf("total = %d, want 2", got.Total)
	}
	// Newest first by default.
	if got.Items[0].CustomerName != "Cara Jones" {
		t.Errorf("first item = %q, want Cara Jones", got.Items[0].CustomerName)
	}
	if got.Items[1].Due != 600 {
		t.Errorf("due = %v, want 600", got.Items[1].Due)
	}

	out, err = run(t, cfg, "", "list", "--tab", "approved")
	if err != nil {
		t.Fatalf("list --tab: %v", err)
	}
	if !strings.Contains(out, "Bob Smith") || strings.Contains(out, "Cara Jones") {
		t.Errorf("approved tab output:\n%s", out)
	}
	if !strings.Contains(out, "Approved | 1 items | page 1/1") {
		t.Errorf("footer missing:\n%s", out)
	}
}

func TestImportFromStdinDryRun(t *testing.T) {
	cfg := setup(t)

	out, err := run(t, cfg, importRows, "import", "-", "--dry-run")
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if strings.TrimSpace(out) != "2 rows ready, 1 skipped" {
		t.Errorf("output = %q", out)
	}
}

func TestImportWithoutValidRows(t *testing.T) {
	cfg := setup(t)

	_, err := run(t, cfg, "header\n1\t2\t3\n", "import", "-")
	if err == nil {
		t.Fatal("expected an error")
	}
}

func TestListRejectsUnknownTabAndColumn(t *testing.T) {
	cfg := setup(t)

	if _, err := run(t, cfg, "", "list", "--tab", "nowhere"); err == nil {
		t.Error("unknown tab accepted")
	}
	if _, err := run(t, cfg, "", "list", "--sort", "colour"); err == nil {
		t.Error("unknown column accepted")
	}
}

func TestRemindersEmpty(t *testing.T) {
	cfg := setup(t)

	out, err := run(t, cfg, "", "reminders")
	if err != nil {
		t.Fatalf("reminders: %v", err)
	}
	if strings.TrimSpace(out) != "No reminders" {
		t.Errorf("output = %q", out)
	}
}

func TestPasswdFromStdin(t *testing.T) {
	cfg := setup(t)
	secrets := credential.NewMemory()
	app := &App{credentials: secrets}

	out, err := runWith(t, app, cfg, "s3cret-pass\n", "passwd", "--password-stdin")
	if err != nil {
		t.Fatalf("passwd: %v", err)
	}
	if !strings.Contains(out, "Password updated for admin") {
		t.Errorf("output = %q", out)
	}

	if err := auth.New("admin", secrets).Verify("admin", "s3cret-pass"); err != nil {
		t.Errorf("Verify: %v", err)
	}
}

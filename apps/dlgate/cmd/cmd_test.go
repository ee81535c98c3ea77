package cmd

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/airenamify/dlgate/pkg/relstore"
	"github.com/spf13/cobra"
)

func TestSeedMemoryStore(t *testing.T) {
	dir := t.TempDir()
	os.MkdirAll(filepath.Join(dir, "release"), 0755)
	os.WriteFile(filepath.Join(dir, "release", "App-1.0.0-mac-arm64.dmg"), []byte("dmg"), 0644)
	os.WriteFile(filepath.Join(dir, "release", "latest-mac.yml"), []byte("url: App-1.0.0-mac-arm64.dmg\n"), 0644)

	store := relstore.NewMemoryStore()
	n, err := seedMemoryStore(store, dir)
	if err != nil {
		t.Fatalf("seedMemoryStore failed: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 objects, got %d", n)
	}

	objs, err := store.List(context.Background(), "release/")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(objs) != 2 || objs[0].Key != "release/App-1.0.0-mac-arm64.dmg" {
		t.Errorf("unexpected objects: %+v", objs)
	}
}

func TestGenerateOpenAPI_ToFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "openapi.json")
	openapiOutput = out
	openapiDowngrade = true
	defer func() { openapiOutput = "" }()

	if err := generateOpenAPI(openapiCmd, nil); err != nil {
		t.Fatalf("generateOpenAPI failed: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("reading spec: %v", err)
	}
	spec := string(data)
	if !strings.Contains(spec, `"openapi":"3.0`) && !strings.Contains(spec, `"openapi": "3.0`) {
		t.Errorf("expected a 3.0 document, got %.80s", spec)
	}
	if !strings.Contains(spec, "/download") {
		t.Error("expected the download route in the spec")
	}
}

func TestLatest_FlagsOverEnv(t *testing.T) {
	t.Chdir(t.TempDir())

	var gotOS, gotArch string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotOS = r.URL.Query().Get("os")
		gotArch = r.URL.Query().Get("arch")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"platform":"mac","arch":"x64","key":"release/App-1.3.0-mac-x64.dmg","url":"https://cdn/release/App-1.3.0-mac-x64.dmg","source":"listing"}`))
	}))
	defer srv.Close()

	t.Setenv("DLGATE_BASEURL", "http://127.0.0.1:1")
	t.Setenv("DLGATE_OS", "win")
	t.Setenv("DLGATE_ARCH", "x64")

	cmd := &cobra.Command{Use: "latest", RunE: runLatest}
	addLatestFlags(cmd)
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs([]string{"--base-url", srv.URL + "/", "--os", "mac", "-v"})

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("latest failed: %v", err)
	}

	if gotOS != "mac" {
		t.Errorf("expected --os to win over DLGATE_OS, got %q", gotOS)
	}
	if gotArch != "x64" {
		t.Errorf("expected arch from DLGATE_ARCH, got %q", gotArch)
	}
	if strings.TrimSpace(out.String()) != "https://cdn/release/App-1.3.0-mac-x64.dmg" {
		t.Errorf("unexpected output %q", out.String())
	}
	if !strings.Contains(errOut.String(), "config: none") || !strings.Contains(errOut.String(), srv.URL) {
		t.Errorf("expected verbose config report, got %q", errOut.String())
	}
}

func TestLatest_OSFromEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DLGATE_OS", "win")

	cmd := &cobra.Command{Use: "latest"}
	addLatestFlags(cmd)

	cfg, err := loadLatestConfig(cmd)
	if err != nil {
		t.Fatalf("loadLatestConfig failed: %v", err)
	}
	if cfg.OS != "win" {
		t.Errorf("expected os from DLGATE_OS, got %q", cfg.OS)
	}
}

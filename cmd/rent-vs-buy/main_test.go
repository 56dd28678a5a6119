package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iwvelando/rent-vs-buy/internal/analysis"
	"github.com/iwvelando/rent-vs-buy/internal/cache"
	"github.com/iwvelando/rent-vs-buy/internal/config"
	"github.com/iwvelando/rent-vs-buy/pkg/scenario"
	"go.uber.org/zap"
)

// writeTestConfig writes a quiet configuration whose store lives in a fresh
// temporary directory.
func writeTestConfig(t *testing.T, extra string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := fmt.Sprintf(`logging:
  level: error
store:
  path: %q
cache:
  backend: none
%s`, filepath.Join(dir, "scenarios.db"), extra)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func execute(t *testing.T, configPath string, args ...string) (string, error) {
	t.Helper()
	return executeContext(t, context.Background(), configPath, args...)
}

func executeContext(t *testing.T, ctx context.Context, configPath string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(append([]string{"--config", configPath}, args...))
	err := cmd.ExecuteContext(ctx)
	return out.String(), err
}

func decodeAnalysis(t *testing.T, out string) analysis.Analysis {
	t.Helper()
	var result analysis.Analysis
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("failed to decode analysis: %v\n%s", err, out)
	}
	return result
}

func TestProjectOutputs(t *testing.T) {
	configPath := writeTestConfig(t, "")

	tests := []struct {
		name  string
		args  []string
		check func(t *testing.T, out string)
	}{
		{
			name: "root defaults to pretty projection",
			check: func(t *testing.T, out string) {
				for _, want := range []string{"Rent vs Buy: 15-year projection", "Recommendation", "Key metrics"} {
					if !strings.Contains(out, want) {
						t.Errorf("output missing %q", want)
					}
				}
			},
		},
		{
			name: "project subcommand as JSON",
			args: []string{"project", "--output-format", "json"},
			check: func(t *testing.T, out string) {
				result := decodeAnalysis(t, out)
				if len(result.Timeline) != 180 {
					t.Errorf("expected 180 months, got %d", len(result.Timeline))
				}
				if result.Recommendation.Label != "Rent" {
					t.Errorf("expected Rent recommendation, got %s", result.Recommendation.Label)
				}
			},
		},
		{
			name: "timeline CSV",
			args: []string{"--output-format", "csv"},
			check: func(t *testing.T, out string) {
				records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
				if err != nil {
					t.Fatalf("failed to parse CSV: %v", err)
				}
				if len(records) != 181 {
					t.Errorf("expected 181 records, got %d", len(records))
				}
			},
		},
		{
			name: "notes produce an analysis packet",
			args: []string{"project", "--notes", "first look"},
			check: func(t *testing.T, out string) {
				var packet map[string]json.RawMessage
				if err := json.Unmarshal([]byte(out), &packet); err != nil {
					t.Fatalf("failed to decode packet: %v", err)
				}
				if string(packet["notes"]) != `"first look"` {
					t.Errorf("unexpected notes %s", packet["notes"])
				}
				if _, ok := packet["timeline"]; ok {
					t.Error("packet should not carry the timeline")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, configPath, tt.args...)
			if err != nil {
				t.Fatalf("execute() error = %v", err)
			}
			tt.check(t, out)
		})
	}
}

func TestProjectScenarioSources(t *testing.T) {
	configPath := writeTestConfig(t, "scenario:\n  homePrice: 400000\n")

	scenarioFile := filepath.Join(t.TempDir(), "condo.yaml")
	if err := os.WriteFile(scenarioFile, []byte("homePrice: 350000\ncurrentRent: 2100\n"), 0o644); err != nil {
		t.Fatalf("failed to write scenario: %v", err)
	}

	shared := scenario.Defaults()
	shared.HomePrice = 720000
	code, err := scenario.EncodeShareCode(shared)
	if err != nil {
		t.Fatalf("EncodeShareCode() error = %v", err)
	}
	shareURL, err := scenario.ShareURL("https://rentbuy.example.com/", shared)
	if err != nil {
		t.Fatalf("ShareURL() error = %v", err)
	}

	tests := []struct {
		name      string
		args      []string
		homePrice float64
	}{
		{name: "config scenario", homePrice: 400000},
		{name: "scenario file", args: []string{"--scenario", scenarioFile}, homePrice: 350000},
		{name: "share code", args: []string{"--share", code}, homePrice: 720000},
		{name: "share URL", args: []string{"--share", shareURL}, homePrice: 720000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"project", "--output-format", "json"}, tt.args...)
			out, err := execute(t, configPath, args...)
			if err != nil {
				t.Fatalf("execute() error = %v", err)
			}
			if got := decodeAnalysis(t, out).Inputs.HomePrice; got != tt.homePrice {
				t.Errorf("home price = %.0f, expected %.0f", got, tt.homePrice)
			}
		})
	}
}

func TestProjectErrors(t *testing.T) {
	configPath := writeTestConfig(t, "")

	tests := []struct {
		name        string
		configPath  string
		args        []string
		expectError string
	}{
		{name: "conflicting sources", args: []string{"--scenario", "a.yaml", "--share", "abc"}, expectError: "only one of"},
		{name: "invalid output format", args: []string{"--output-format", "xml"}, expectError: "expected output format"},
		{name: "invalid log level", args: []string{"--log-level", "loud"}, expectError: "invalid log level"},
		{name: "bad share code", args: []string{"--share", "%%%"}, expectError: "invalid share code"},
		{name: "missing explicit config", configPath: filepath.Join(t.TempDir(), "missing.yaml"), expectError: "failed to load configuration"},
		{name: "unknown saved scenario", args: []string{"--saved", "nowhere"}, expectError: "not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := configPath
			if tt.configPath != "" {
				path = tt.configPath
			}
			_, err := execute(t, path, tt.args...)
			if err == nil || !strings.Contains(err.Error(), tt.expectError) {
				t.Fatalf("expected error containing %q, got %v", tt.expectError, err)
			}
		})
	}
}

func TestProjectInvalidScenario(t *testing.T) {
	configPath := writeTestConfig(t, "scenario:\n  loanTermYears: 25\n")

	_, err := execute(t, configPath, "project")
	if err == nil || !strings.Contains(err.Error(), "loanTermYears") {
		t.Fatalf("expected loan term error, got %v", err)
	}
}

func TestScheduleCommand(t *testing.T) {
	configPath := writeTestConfig(t, "")

	out, err := execute(t, configPath, "schedule", "--output-format", "csv")
	if err != nil {
		t.Fatalf("execute() error = %v", err)
	}

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	if err != nil {
		t.Fatalf("failed to parse CSV: %v", err)
	}
	if len(records) != 361 {
		t.Fatalf("expected header plus 360 months, got %d records", len(records))
	}
	if records[1][1] != "2528.27" || records[1][3] != "2166.67" {
		t.Errorf("unexpected first month %v", records[1])
	}
	if records[360][4] != "0.00" {
		t.Errorf("expected final balance 0.00, got %s", records[360][4])
	}
}

func TestShareCommand(t *testing.T) {
	configPath := writeTestConfig(t, "")

	out, err := execute(t, configPath, "share")
	if err != nil {
		t.Fatalf("execute() error = %v", err)
	}
	decoded, err := scenario.DecodeShareCode(strings.TrimSpace(out))
	if err != nil {
		t.Fatalf("DecodeShareCode() error = %v", err)
	}
	if decoded != scenario.Defaults() {
		t.Errorf("decoded %+v, expected defaults", decoded)
	}

	out, err = execute(t, configPath, "share", "--base-url", "https://rentbuy.example.com/")
	if err != nil {
		t.Fatalf("execute() error = %v", err)
	}
	if !strings.HasPrefix(out, "https://rentbuy.example.com/?scenario=") {
		t.Errorf("unexpected share URL %s", out)
	}
}

func TestScenariosCommands(t *testing.T) {
	configPath := writeTestConfig(t, "")

	scenarioFile := filepath.Join(t.TempDir(), "suburb.yaml")
	if err := os.WriteFile(scenarioFile, []byte("homePrice: 610000\n"), 0o644); err != nil {
		t.Fatalf("failed to write scenario: %v", err)
	}

	steps := []struct {
		args   []string
		expect string
	}{
		{args: []string{"scenarios", "save", "suburb", "--scenario", scenarioFile}, expect: `Saved scenario "suburb"`},
		{args: []string{"scenarios", "save", "baseline"}, expect: `Saved scenario "baseline"`},
		{args: []string{"scenarios", "list"}, expect: "suburb\nbaseline\n"},
		{args: []string{"scenarios", "load", "suburb"}, expect: "homePrice: 610000"},
		{args: []string{"scenarios", "delete", "suburb"}, expect: `Deleted scenario "suburb"`},
		{args: []string{"scenarios", "list"}, expect: "baseline\n"},
	}

	for _, step := range steps {
		out, err := execute(t, configPath, step.args...)
		if err != nil {
			t.Fatalf("%v: execute() error = %v", step.args, err)
		}
		if !strings.Contains(out, step.expect) {
			t.Errorf("%v: output %q missing %q", step.args, out, step.expect)
		}
	}

	out, err := execute(t, configPath, "project", "--saved", "baseline", "--output-format", "json")
	if err != nil {
		t.Fatalf("project --saved error = %v", err)
	}
	if got := decodeAnalysis(t, out).Inputs; got != scenario.Defaults() {
		t.Errorf("saved baseline projected %+v", got)
	}

	if _, err := execute(t, configPath, "scenarios", "load", "suburb"); err == nil {
		t.Error("expected error loading a deleted scenario")
	}
}

func TestScenariosUseDBFlag(t *testing.T) {
	configPath := writeTestConfig(t, "")
	dbPath := filepath.Join(t.TempDir(), "other.db")

	if _, err := execute(t, configPath, "--db", dbPath, "scenarios", "save", "elsewhere"); err != nil {
		t.Fatalf("execute() error = %v", err)
	}
	if _, err := os.Stat(dbPath); err != nil {
		t.Fatalf("expected database at %s: %v", dbPath, err)
	}

	out, err := execute(t, configPath, "scenarios", "list", "--output-format", "json")
	if err != nil {
		t.Fatalf("execute() error = %v", err)
	}
	if strings.TrimSpace(out) != "[]" {
		t.Errorf("configured store should be empty, got %s", out)
	}
}

func TestServeStopsOnContextCancel(t *testing.T) {
	configPath := writeTestConfig(t, "")
	serverConfig := filepath.Join(t.TempDir(), "server.yaml")
	if err := os.WriteFile(serverConfig, []byte("address: 127.0.0.1:0\n"), 0o644); err != nil {
		t.Fatalf("failed to write server config: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := executeContext(t, ctx, configPath, "serve", "--server-config", serverConfig); err != nil {
		t.Fatalf("serve returned error after cancellation: %v", err)
	}
}

func TestNewCache(t *testing.T) {
	tests := []struct {
		name    string
		backend string
		address string
		check   func(t *testing.T, c cache.Cache)
	}{
		{
			name:    "memory",
			backend: "memory",
			check: func(t *testing.T, c cache.Cache) {
				if _, ok := c.(*cache.Memory); !ok {
					t.Errorf("expected *cache.Memory, got %T", c)
				}
			},
		},
		{
			name:    "none",
			backend: "none",
			check: func(t *testing.T, c cache.Cache) {
				if _, ok := c.(cache.Nop); !ok {
					t.Errorf("expected cache.Nop, got %T", c)
				}
			},
		},
		{
			name:    "unknown backend disables caching",
			backend: "memcached",
			check: func(t *testing.T, c cache.Cache) {
				if _, ok := c.(cache.Nop); !ok {
					t.Errorf("expected cache.Nop, got %T", c)
				}
			},
		},
		{
			name:    "unreachable redis falls back to memory",
			backend: "redis",
			address: "127.0.0.1:1",
			check: func(t *testing.T, c cache.Cache) {
				if _, ok := c.(*cache.Memory); !ok {
					t.Skipf("redis answered on 127.0.0.1:1 (%T)", c)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, release := newCache(context.Background(), config.CacheConfig{Backend: tt.backend, Address: tt.address}, zap.NewNop())
			defer release()
			tt.check(t, c)
		})
	}
}

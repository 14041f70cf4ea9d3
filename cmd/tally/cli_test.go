package main

import (
	"bytes"
	"encoding/json"
	"io"
	"path/filepath"
	"strings"
	"testing"
)

type cli struct {
	t      *testing.T
	dbPath string
}

func newCLI(t *testing.T) *cli {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("TALLY_DIR", dir)
	t.Setenv("TALLY_DB_PATH", "")
	t.Setenv("TALLY_LOG_LEVEL", "")
	return &cli{t: t, dbPath: filepath.Join(dir, "tally.db")}
}

func (c *cli) exec(args ...string) (string, error) {
	c.t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(append([]string{"--db", c.dbPath, "--log-level", "error"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func (c *cli) run(args ...string) string {
	c.t.Helper()
	out, err := c.exec(args...)
	if err != nil {
		c.t.Fatalf("tally %s: %v", strings.Join(args, " "), err)
	}
	return out
}

func (c *cli) seed() {
	c.t.Helper()
	c.run("facility", "add", "--name", "North Library", "--scope", "north")
	c.run("section", "add", "--facility", "1", "--ordinal", "1", "--scope", "children", "--slug", "kids", "--title", "Children")
	c.run("category", "add", "--section", "1", "--ordinal", "1", "--slug", "visits", "--service", "Visits")
	c.run("category", "add", "--section", "1", "--ordinal", "2", "--slug", "loans", "--service", "Loans")
}

func decodeSummary(t *testing.T, out string) summaryJSON {
	t.Helper()
	var s summaryJSON
	if err := json.Unmarshal([]byte(out), &s); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	return s
}

func TestWriteThenRead(t *testing.T) {
	c := newCLI(t)
	c.seed()

	written := decodeSummary(t, c.run("write", "north", "1", "2024-03-01", "1=5", "2=null", "--format", "json"))
	if written.SectionID != 1 || written.Date != "2024-03-01" {
		t.Fatalf("unexpected summary key: %+v", written)
	}

	read := decodeSummary(t, c.run("read", "1", "1", "2024-03-01", "--format", "json"))
	if v := read.Values["1"]; v == nil || *v != 5 {
		t.Fatalf("category 1 = %v, want 5", v)
	}
	if v, ok := read.Values["2"]; !ok || v != nil {
		t.Fatalf("category 2 = %v (present %v), want null", v, ok)
	}
}

func TestWriteReplacesAllValues(t *testing.T) {
	c := newCLI(t)
	c.seed()

	c.run("write", "north", "1", "2024-03-01", "1=5", "2=7")
	read := decodeSummary(t, c.run("write", "north", "1", "2024-03-01", "2=1", "--format", "json"))
	if v := read.Values["1"]; v != nil {
		t.Fatalf("category 1 = %v, want null after replace", *v)
	}
	if v := read.Values["2"]; v == nil || *v != 1 {
		t.Fatalf("category 2 = %v, want 1", v)
	}
}

func TestReports(t *testing.T) {
	c := newCLI(t)
	c.seed()
	c.run("write", "north", "1", "2024-03-01", "1=5", "2=1")
	c.run("write", "north", "1", "2024-03-02", "1=3")

	var dailies []summaryJSON
	if err := json.Unmarshal([]byte(c.run("dailies", "north", "--month", "2024-03", "--format", "json")), &dailies); err != nil {
		t.Fatalf("decode dailies: %v", err)
	}
	if len(dailies) != 2 || dailies[0].Date != "2024-03-01" || dailies[1].Date != "2024-03-02" {
		t.Fatalf("unexpected dailies: %+v", dailies)
	}

	var monthlies []summaryJSON
	if err := json.Unmarshal([]byte(c.run("monthlies", "north", "--month", "2024-03", "--format", "json")), &monthlies); err != nil {
		t.Fatalf("decode monthlies: %v", err)
	}
	if len(monthlies) != 1 {
		t.Fatalf("expected one monthly summary, got %d", len(monthlies))
	}
	if v := monthlies[0].Values["1"]; v == nil || *v != 8 {
		t.Fatalf("monthly category 1 = %v, want 8", v)
	}

	// Headers are upper-cased by the table style.
	table := strings.ToLower(c.run("dailies", "north", "--month", "2024-03"))
	for _, want := range []string{"children", "visits", "loans", "2024-03-02"} {
		if !strings.Contains(table, want) {
			t.Errorf("table output missing %q:\n%s", want, table)
		}
	}
}

func TestFacilityUpdateMergesFlags(t *testing.T) {
	c := newCLI(t)
	c.run("facility", "add", "--name", "North Library", "--scope", "north", "--city", "Springfield")
	c.run("facility", "update", "1", "--name", "North Branch")

	var facilities []struct {
		Name   string `json:"name"`
		Scope  string `json:"scope"`
		City   string `json:"city"`
		Active bool   `json:"active"`
	}
	if err := json.Unmarshal([]byte(c.run("facility", "list", "--format", "json")), &facilities); err != nil {
		t.Fatalf("decode facilities: %v", err)
	}
	if len(facilities) != 1 {
		t.Fatalf("expected one facility, got %d", len(facilities))
	}
	f := facilities[0]
	if f.Name != "North Branch" || f.Scope != "north" || f.City != "Springfield" || !f.Active {
		t.Fatalf("unexpected facility after update: %+v", f)
	}
}

func TestCommandErrors(t *testing.T) {
	c := newCLI(t)
	c.seed()

	tests := []struct {
		name string
		args []string
	}{
		{"unknown facility", []string{"read", "south", "1", "2024-03-01"}},
		{"bad date", []string{"read", "north", "1", "2024-3-1"}},
		{"bad value pair", []string{"write", "north", "1", "2024-03-01", "visits"}},
		{"duplicate ordinal", []string{"category", "add", "--section", "1", "--ordinal", "1", "--slug", "x", "--service", "X"}},
		{"bad format", []string{"facility", "list", "--format", "yaml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := c.exec(tt.args...); err == nil {
				t.Fatalf("expected error for %v", tt.args)
			}
		})
	}
}

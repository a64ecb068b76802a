package config

import (
	"testing"
)

type testConfig struct {
	Daemon   string `ini:"daemon"`
	Stagenet bool   `ini:"stagenet"`
	Level    int    `ini:"loglevel"`
	Skipped  string `ini:"-"`
}

func TestParse(t *testing.T) {
	cfgData := []byte(`
daemon=http://127.0.0.1:38081
stagenet=true
loglevel=3
`)
	cfg := &testConfig{Skipped: "untouched"}
	if err := Parse(cfgData, cfg); err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if cfg.Daemon != "http://127.0.0.1:38081" {
		t.Fatalf("wrong daemon: %q", cfg.Daemon)
	}
	if !cfg.Stagenet {
		t.Fatalf("stagenet not parsed")
	}
	if cfg.Level != 3 {
		t.Fatalf("wrong loglevel: %d", cfg.Level)
	}
	if cfg.Skipped != "untouched" {
		t.Fatalf("ignored field was modified")
	}
}

func TestParseWithSections(t *testing.T) {
	cfgData := []byte(`
[Application Options]
daemon=node.example.org:18081
stagenet=false
loglevel=1
`)
	cfg := new(testConfig)
	if err := Parse(cfgData, cfg); err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if cfg.Daemon != "node.example.org:18081" {
		t.Fatalf("wrong daemon: %q", cfg.Daemon)
	}
	if cfg.Level != 1 {
		t.Fatalf("wrong loglevel: %d", cfg.Level)
	}
}

func TestSectionOptions(t *testing.T) {
	sections, err := SectionOptions([]byte(`
[alpha]
daemon=a:18081

[beta]
daemon=b:18081
proxy=127.0.0.1:9050
`))
	if err != nil {
		t.Fatalf("SectionOptions error: %v", err)
	}
	if sections["alpha"]["daemon"] != "a:18081" {
		t.Fatalf("unexpected alpha section: %v", sections["alpha"])
	}
	if sections["beta"]["proxy"] != "127.0.0.1:9050" {
		t.Fatalf("unexpected beta section: %v", sections["beta"])
	}
}

func TestOptions(t *testing.T) {
	opts, err := Options([]byte("key1=a\nkey2=b\n"))
	if err != nil {
		t.Fatalf("Options error: %v", err)
	}
	if opts["key1"] != "a" || opts["key2"] != "b" {
		t.Fatalf("unexpected options map: %v", opts)
	}
}

package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestNew(t *testing.T) {
	tests := []struct {
		cfg  Config
		want logrus.Level
	}{
		{Config{}, logrus.InfoLevel},
		{Config{Level: "debug"}, logrus.DebugLevel},
		{Config{Level: "nonsense"}, logrus.InfoLevel},
	}
	for _, tt := range tests {
		log, err := New(tt.cfg, &bytes.Buffer{})
		if err != nil {
			t.Fatal(err)
		}
		if log.GetLevel() != tt.want {
			t.Errorf("New(%+v).Level = %v, want %v", tt.cfg, log.GetLevel(), tt.want)
		}
	}
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(Config{Format: "json"}, &buf)
	if err != nil {
		t.Fatal(err)
	}
	log.WithField("id", "G-1000").Info("saved")

	var got map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("not json: %q", buf.String())
	}
	if got["message"] != "saved" || got["id"] != "G-1000" {
		t.Errorf("got %v", got)
	}
}

func TestFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gbk.log")
	log, err := New(Config{File: path}, &bytes.Buffer{})
	if err != nil {
		t.Fatal(err)
	}
	log.Warn("backup failed")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "backup failed") {
		t.Errorf("log file = %q", data)
	}
}

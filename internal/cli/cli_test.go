// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// execute runs a fresh command tree with args and returns stdout and stderr.
func execute(t *testing.T, stdin string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := New()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err = root.Execute()
	return out.String(), errOut.String(), err
}

// events decodes JSON-lines output as "event=payload".
func events(t *testing.T, out string) []string {
	t.Helper()
	var got []string
	dec := json.NewDecoder(strings.NewReader(out))
	for dec.More() {
		var ev Event
		if err := dec.Decode(&ev); err != nil {
			t.Fatalf("decode %q: %v", out, err)
		}
		if ev.Payload == "" {
			got = append(got, ev.Event)
			continue
		}
		got = append(got, ev.Event+"="+ev.Payload)
	}
	return got
}

func TestList(t *testing.T) {
	out, _, err := execute(t, "", "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := "accumulate\neven_odd\nfactorization\npng2bmp\nprimes\nsensor\n"
	if out != want {
		t.Fatalf("got %q, want %q", out, want)
	}
}

func TestRunFactorization(t *testing.T) {
	out, _, err := execute(t, "", "run", "factorization", "--opt", "n=12")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	want := []string{"factor=2", "factor=2", "factor=3", "close"}
	if got := events(t, out); !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestRunRejectedConfig(t *testing.T) {
	out, _, err := execute(t, "", "run", "factorization", "-o", "n=-5")
	if err == nil {
		t.Fatal("run succeeded with a negative n")
	}
	got := events(t, out)
	if len(got) != 1 || !strings.HasPrefix(got[0], "error=stream: invalid configuration") {
		t.Fatalf("got %v, want a single error event", got)
	}
}

func TestRunInputs(t *testing.T) {
	out, _, err := execute(t, "", "run", "accumulate", "-i", "value=5", "-i", "7", "-i", "value=-1")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if got := events(t, out); !reflect.DeepEqual(got, []string{"sum=12", "close"}) {
		t.Fatalf("got %v", got)
	}
}

func TestRunStdin(t *testing.T) {
	out, _, err := execute(t, "3\n\n-1\n", "run", "even_odd", "--stdin")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	want := []string{"even_event=0", "odd_event=1", "even_event=2", "odd_event=3", "close"}
	if got := events(t, out); !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestRunCloseAfter(t *testing.T) {
	out, _, err := execute(t, "", "run", "sensor", "-o", "interval=1ms", "--close-after", "30ms")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	got := events(t, out)
	if len(got) < 2 || got[len(got)-1] != "close" {
		t.Fatalf("got %v, want samples then close", got)
	}
}

func TestRunTimeout(t *testing.T) {
	_, _, err := execute(t, "", "run", "accumulate", "--timeout", "20ms")
	if err == nil || !strings.Contains(err.Error(), "deadline exceeded") {
		t.Fatalf("run got %v, want deadline exceeded", err)
	}
}

func TestRunUnknownJob(t *testing.T) {
	if _, _, err := execute(t, "", "run", "nope"); err == nil {
		t.Fatal("run accepted an unknown job")
	}
}

func TestRunBadOption(t *testing.T) {
	if _, _, err := execute(t, "", "run", "primes", "-o", "limit"); err == nil {
		t.Fatal("run accepted an option without a value")
	}
}

func TestRunConfigFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "streamjob.yaml")
	conf := "log:\n  level: debug\n  format: json\njobs:\n  factorization:\n    n: 10\n"
	if err := os.WriteFile(file, []byte(conf), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	out, stderr, err := execute(t, "", "--config", file, "run", "factorization")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if got := events(t, out); !reflect.DeepEqual(got, []string{"factor=2", "factor=5", "close"}) {
		t.Fatalf("got %v", got)
	}
	if !strings.Contains(stderr, `"msg":"session started"`) {
		t.Fatalf("stderr missing debug json log: %q", stderr)
	}

	// Flags override the file.
	out, _, err = execute(t, "", "--config", file, "run", "factorization", "-o", "n=9")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if got := events(t, out); !reflect.DeepEqual(got, []string{"factor=3", "factor=3", "close"}) {
		t.Fatalf("got %v", got)
	}
}

func TestRunEnvironment(t *testing.T) {
	t.Setenv("STREAMJOB_LOG_LEVEL", "bogus")
	if _, _, err := execute(t, "", "list"); err == nil {
		t.Fatal("accepted an invalid log level from the environment")
	}
}

func TestMissingConfigFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "absent.yaml")
	if _, _, err := execute(t, "", "--config", missing, "list"); err == nil {
		t.Fatal("accepted a missing explicit config file")
	}
}

func TestPipe(t *testing.T) {
	out, _, err := execute(t, "", "pipe", "--max", "4")
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	want := []string{
		"even_event=0", "odd_event=1", "even_event=2", "odd_event=3", "even_event=4",
		"sum=6", "close",
	}
	if got := events(t, out); !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestPipeOddEvents(t *testing.T) {
	out, _, err := execute(t, "", "pipe", "--max", "5", "--event", "odd_event")
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	got := events(t, out)
	if got[len(got)-2] != "sum=9" {
		t.Fatalf("got %v, want sum=9", got)
	}
}

func TestJobConfig(t *testing.T) {
	s := Settings{Jobs: map[string]map[string]any{"sensor": {"name": "lidar", "interval": 10}}}
	cfg, err := s.jobConfig("sensor", []string{"interval=20", "seed=3"})
	if err != nil {
		t.Fatalf("jobConfig: %v", err)
	}
	if cfg.String("name", "") != "lidar" || cfg.String("interval", "") != "20" || cfg.String("seed", "") != "3" {
		t.Fatalf("got %v", cfg)
	}
}

func TestSplitInput(t *testing.T) {
	cases := map[string][2]string{
		"max=3": {"max", "3"},
		"3":     {"value", "3"},
		"=3":    {"value", "=3"},
		"a=b=c": {"a", "b=c"},
		"png=":  {"png", ""},
	}
	for in, want := range cases {
		name, payload := splitInput(in)
		if name != want[0] || payload != want[1] {
			t.Fatalf("splitInput(%q) got (%q, %q), want (%q, %q)", in, name, payload, want[0], want[1])
		}
	}
}

func TestConfigureLogger(t *testing.T) {
	log := logrus.New()
	var buf bytes.Buffer
	if err := configureLogger(log, LogSettings{Level: "warn", Format: "json"}, &buf); err != nil {
		t.Fatalf("configureLogger: %v", err)
	}
	log.Info("hidden")
	log.Warn("shown")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), `"msg":"shown"`) {
		t.Fatalf("got %q", buf.String())
	}
	if err := configureLogger(log, LogSettings{Level: "info", Format: "xml"}, &buf); err == nil {
		t.Fatal("accepted an unknown format")
	}
}

func TestLoadSettingsDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	s, err := loadSettings(viper.New())
	if err != nil {
		t.Fatalf("loadSettings: %v", err)
	}
	if s.Log.Level != defaultLogLevel || s.Log.Format != defaultLogFormat {
		t.Fatalf("got %+v", s.Log)
	}
	if s.Run.Timeout != 0 || s.Run.CloseAfter != 0 {
		t.Fatalf("got %+v", s.Run)
	}
}

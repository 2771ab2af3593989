// Package ztest runs formulaic tests ("ztests") described by YAML files.
//
// An in-process ztest names a JSON syntax tree and the canonical plan text
// (see zfmt.Algebra) it must compile to, or a regular expression that the
// compile error must match:
//
//	query: |
//	  {"kind": "SelectQuery", ...}
//	output: |
//	  Projection s
//	    StatementPattern ?s ?p ?o
//
// A script ztest instead runs a bash script with the directory named by
// the ZTEST_PATH environment variable in $PATH and compares the files the
// script leaves behind (including "stdout" and "stderr") with outputs.
package ztest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/brimdata/serql/compiler"
	"github.com/brimdata/serql/zfmt"
	"github.com/pmezard/go-difflib/difflib"
	"gopkg.in/yaml.v3"
)

// File describes an input file written before a script runs or an output
// file checked after it finishes.  An output is checked against Data if
// set, else against Re if set, else against the file named by Source (or
// Name, if Source is empty) in the test directory.
type File struct {
	Name   string  `yaml:"name"`
	Data   *string `yaml:"data"`
	Re     string  `yaml:"re"`
	Source string  `yaml:"source"`
}

type ZTest struct {
	Skip string `yaml:"skip"`
	Tag  string `yaml:"tag"`

	// For in-process tests.
	Query   string `yaml:"query"`
	Output  string `yaml:"output"`
	ErrorRE string `yaml:"errorRE"`

	// For script tests.
	Script  string `yaml:"script"`
	Inputs  []File `yaml:"inputs"`
	Outputs []File `yaml:"outputs"`
}

// ShellPath returns the directory holding the binaries used by script
// tests.
func ShellPath() string {
	return os.Getenv("ZTEST_PATH")
}

// Run runs the ztests in the YAML files of dirname.
func Run(t *testing.T, dirname string) {
	t.Helper()
	files, err := filepath.Glob(filepath.Join(dirname, "*.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	for _, path := range files {
		path := path
		name := strings.TrimSuffix(filepath.Base(path), ".yaml")
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			zt, err := FromYAMLFile(path)
			if err != nil {
				t.Fatalf("%s: %s", path, err)
			}
			zt.Run(t, dirname)
		})
	}
}

func FromYAMLFile(path string) (*ZTest, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	var zt ZTest
	if err := dec.Decode(&zt); err != nil {
		return nil, err
	}
	return &zt, nil
}

// ShouldSkip returns the reason the test should be skipped, if any.
// shellPath is the value of ShellPath.
func (z *ZTest) ShouldSkip(shellPath string) string {
	switch {
	case z.Skip != "":
		return z.Skip
	case z.Script != "" && shellPath == "":
		return "script test on in-process run"
	case z.Tag != "" && z.Tag != os.Getenv("ZTEST_TAG"):
		return fmt.Sprintf("tag %q does not match ZTEST_TAG=%q", z.Tag, os.Getenv("ZTEST_TAG"))
	}
	return ""
}

func (z *ZTest) Run(t *testing.T, testDir string) {
	shellPath := ShellPath()
	if msg := z.ShouldSkip(shellPath); msg != "" {
		t.Skip(msg)
	}
	var err error
	if z.Script != "" {
		err = z.RunScript(shellPath, testDir, t.TempDir())
	} else {
		err = z.RunInternal()
	}
	if err != nil {
		t.Fatal(err)
	}
}

// RunInternal compiles the test's query in process.
func (z *ZTest) RunInternal() error {
	out, err := compile(z.Query)
	if z.ErrorRE != "" {
		if err == nil {
			return fmt.Errorf("expected error matching %q, got none", z.ErrorRE)
		}
		re, rerr := regexp.Compile(z.ErrorRE)
		if rerr != nil {
			return rerr
		}
		if !re.MatchString(err.Error()) {
			return fmt.Errorf("error %q does not match %q", err, z.ErrorRE)
		}
		return nil
	}
	if err != nil {
		return err
	}
	return diffErr("output", z.Output, out)
}

func compile(query string) (string, error) {
	qc, err := compiler.Parse(strings.NewReader(query))
	if err != nil {
		return "", err
	}
	plan, err := (&compiler.Compiler{}).Compile(context.Background(), qc)
	if err != nil {
		return "", err
	}
	return zfmt.Algebra(plan) + "\n", nil
}

// RunScript runs the test's script in tempDir and checks its outputs.
func (z *ZTest) RunScript(shellPath, testDir, tempDir string) error {
	dir := Dir(tempDir)
	for _, f := range z.Inputs {
		b, err := f.load(testDir)
		if err != nil {
			return err
		}
		if err := dir.Write(f.Name, b); err != nil {
			return err
		}
	}
	stdout, stderr, err := RunShell(dir, shellPath, z.Script, nil, []string{"ZTEST_TAG"})
	if err != nil {
		return fmt.Errorf("script failed: %w\n=== stdout ===\n%s=== stderr ===\n%s", err, stdout, stderr)
	}
	for _, f := range z.Outputs {
		var actual string
		switch f.Name {
		case "stdout":
			actual = stdout
		case "stderr":
			actual = stderr
		default:
			b, err := dir.Read(f.Name)
			if err != nil {
				return err
			}
			actual = string(b)
		}
		if f.Data == nil && f.Re != "" {
			re, err := regexp.Compile(f.Re)
			if err != nil {
				return err
			}
			if !re.MatchString(actual) {
				return fmt.Errorf("%s: %q does not match %q", f.Name, actual, f.Re)
			}
			continue
		}
		expected, err := f.load(testDir)
		if err != nil {
			return err
		}
		if err := diffErr(f.Name, string(expected), actual); err != nil {
			return err
		}
	}
	return nil
}

func (f *File) load(testDir string) ([]byte, error) {
	if f.Data != nil {
		return []byte(*f.Data), nil
	}
	name := f.Source
	if name == "" {
		name = f.Name
	}
	if name == "" {
		return nil, errors.New("file has neither data nor a name")
	}
	return Dir(testDir).Read(name)
}

func diffErr(name, expected, actual string) error {
	if expected == actual {
		return nil
	}
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(expected),
		FromFile: "expected",
		B:        difflib.SplitLines(actual),
		ToFile:   "actual",
		Context:  5,
	})
	if err != nil {
		return err
	}
	return fmt.Errorf("%s mismatch:\n%s", name, diff)
}

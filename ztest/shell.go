package ztest

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"os/exec"
)

// RunShell runs script with bash in dir.  Only bindir and the system
// directories are in $PATH, and of the caller's environment only the
// variables named by useenvs are passed through.
func RunShell(dir Dir, bindir, script string, stdin io.Reader, useenvs []string) (string, string, error) {
	// "-e -o pipefail" fails the test if any command fails.
	cmd := exec.Command("bash", "-e", "-o", "pipefail", "-c", script)
	for _, env := range useenvs {
		if v, ok := os.LookupEnv(env); ok {
			cmd.Env = append(cmd.Env, fmt.Sprintf("%s=%s", env, v))
		}
	}
	cmd.Env = append(cmd.Env, "HOME="+dir.Path(), "PATH=/bin:/usr/bin:"+bindir)
	cmd.Dir = dir.Path()
	cmd.Stdin = stdin
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

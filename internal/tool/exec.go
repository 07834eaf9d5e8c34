package tool

import (
	"bytes"
	"os/exec"
)

// runCommand captures stdout/stderr and normalizes the exit code.
func runCommand(cmd *exec.Cmd) (stdout, stderr string, exitCode int, runErr error) {
	var outBuf bytes.Buffer
	var errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf

	runErr = cmd.Run()
	if runErr != nil {
		if ee, ok := runErr.(*exec.ExitError); ok {
			exitCode = ee.ExitCode()
		} else {
			exitCode = 1
		}
	}
	return outBuf.String(), errBuf.String(), exitCode, runErr
}

package deps

import (
	"fmt"
	"os/exec"
	"strings"
)

const (
	FfmpegInstallURL = "https://ffmpeg.org/download.html"
)

// DependencyError contains information about a missing dependency
type DependencyError struct {
	Name       string
	Command    string
	InstallURL string
}

func (e *DependencyError) Error() string {
	if e.Command != "" && e.Command != e.Name {
		return fmt.Sprintf("%s not found (looked for %q). Install from: %s", e.Name, e.Command, e.InstallURL)
	}
	return fmt.Sprintf("%s not found. Install from: %s", e.Name, e.InstallURL)
}

// Status reports the availability of one dependency for the doctor command.
type Status struct {
	Name      string
	Command   string
	Path      string
	Available bool
	Err       error
}

// CheckFfmpeg checks if the ffmpeg binary is installed and available in PATH.
// An empty binary means "ffmpeg".
func CheckFfmpeg(binary string) error {
	return check("ffmpeg", binary)
}

// CheckFfprobe checks if the ffprobe binary is installed and available in PATH.
// An empty binary means "ffprobe".
func CheckFfprobe(binary string) error {
	return check("ffprobe", binary)
}

// CheckAll checks all dependencies and returns a status for each, in a stable order.
func CheckAll(ffmpegBinary, ffprobeBinary string) []Status {
	return []Status{
		status("ffmpeg", ffmpegBinary),
		status("ffprobe", ffprobeBinary),
	}
}

func status(name, binary string) Status {
	cmd := commandOrDefault(name, binary)
	s := Status{Name: name, Command: cmd}
	path, err := exec.LookPath(cmd)
	if err != nil {
		s.Err = &DependencyError{Name: name, Command: cmd, InstallURL: FfmpegInstallURL}
		return s
	}
	s.Path = path
	s.Available = true
	return s
}

func check(name, binary string) error {
	s := status(name, binary)
	if !s.Available {
		return s.Err
	}
	return nil
}

func commandOrDefault(name, binary string) string {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return name
	}
	return binary
}

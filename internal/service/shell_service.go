package service

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"runtime"
)

// ShellService hands paths to the operating system's file manager.
type ShellService struct {
	goos string
	run  func(name string, args ...string) error
}

func NewShellService() *ShellService {
	return &ShellService{
		goos: runtime.GOOS,
		run: func(name string, args ...string) error {
			return exec.Command(name, args...).Start()
		},
	}
}

// ShowInFolder reveals path in the file manager.
func (s *ShellService) ShowInFolder(path string) error {
	name, args := revealCommand(s.goos, path)
	if err := s.run(name, args...); err != nil {
		return fmt.Errorf("show %s in folder: %w", path, err)
	}
	return nil
}

// OpenInDefault opens path with the application registered for its type.
func (s *ShellService) OpenInDefault(path string) error {
	name, args := openCommand(s.goos, path)
	if err := s.run(name, args...); err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	return nil
}

func revealCommand(goos, path string) (string, []string) {
	switch goos {
	case "windows":
		return "explorer", []string{"/select," + path}
	case "darwin":
		return "open", []string{"-R", path}
	default: // linux and other unix systems
		return "xdg-open", []string{filepath.Dir(path)}
	}
}

func openCommand(goos, path string) (string, []string) {
	switch goos {
	case "windows":
		return "cmd", []string{"/c", "start", "", path}
	case "darwin":
		return "open", []string{path}
	default:
		return "xdg-open", []string{path}
	}
}

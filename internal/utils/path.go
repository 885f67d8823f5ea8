package utils

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"

	"github.com/charmbracelet/log"
)

const appDirName = "goodname"

// PathResolver finds config files and word lists relative to the
// executable, the working directory and the user config dir.
type PathResolver struct {
	executableDir string
	homeDir       string
	configDir     string
}

// NewPathResolver creates a new path resolver that determines the executable location
func NewPathResolver() (*PathResolver, error) {
	execPath, err := os.Executable()
	if err != nil {
		return nil, err
	}
	execPath, err = filepath.EvalSymlinks(execPath)
	if err != nil {
		return nil, err
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Warnf("Could not determine home directory: %v", err)
		homeDir = os.TempDir()
	}

	pr := &PathResolver{
		executableDir: filepath.Dir(execPath),
		homeDir:       homeDir,
		configDir:     getConfigDir(homeDir),
	}
	log.Debugf("PathResolver initialized: execDir=%s, configDir=%s", pr.executableDir, pr.configDir)
	return pr, nil
}

// getConfigDir returns the appropriate config directory for the platform
func getConfigDir(homeDir string) string {
	switch runtime.GOOS {
	case "linux":
		if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
			return filepath.Join(configHome, appDirName)
		}
		return filepath.Join(homeDir, ".config", appDirName)
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, appDirName)
		}
		return filepath.Join(homeDir, "AppData", "Roaming", appDirName)
	default:
		return filepath.Join(homeDir, ".config", appDirName)
	}
}

// ConfigDir returns the config directory
func (pr *PathResolver) ConfigDir() string {
	return pr.configDir
}

// GetConfigPath returns the full path for a config file.
// Falls back to ~/.goodname, the temp dir and finally the executable dir
// when the config dir is not writable.
func (pr *PathResolver) GetConfigPath(filename string) (string, error) {
	candidates := []string{
		pr.configDir,
		filepath.Join(pr.homeDir, "."+appDirName),
		filepath.Join(os.TempDir(), appDirName),
		pr.executableDir,
	}
	for i, dir := range candidates {
		if IsWritableDir(dir) {
			path := filepath.Join(dir, filename)
			if i > 0 {
				log.Warnf("Using fallback config location: %s", path)
			}
			return path, nil
		}
	}
	return "", errors.New("no writable config directory found")
}

// ResolveWordList finds a word list file. Absolute paths are used as is;
// relative ones are tried against the working dir, the executable dir and
// the config dir's data folder, in that order.
func (pr *PathResolver) ResolveWordList(path string) (string, error) {
	if path == "" {
		return "", os.ErrNotExist
	}
	if filepath.IsAbs(path) {
		if FileExists(path) {
			return path, nil
		}
		return "", os.ErrNotExist
	}

	var candidates []string
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(cwd, path))
	}
	candidates = append(candidates,
		filepath.Join(pr.executableDir, path),
		filepath.Join(pr.configDir, "data", path),
	)
	for _, candidate := range candidates {
		if FileExists(candidate) {
			log.Debugf("Found word list: %s", candidate)
			return candidate, nil
		}
		log.Debugf("Word list candidate not found: %s", candidate)
	}
	return "", os.ErrNotExist
}

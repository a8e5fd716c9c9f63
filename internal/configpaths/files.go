package configpaths

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
)

const appName = "protosynth"

// SystemConfigDir is searched last on unix systems.
const SystemConfigDir = "/etc/" + appName

// baseNames are the file names, without extension, looked up in every
// directory.
var baseNames = []string{appName, "config", "generate"}

// DefaultConfigDir returns the platform-specific configuration directory.
func DefaultConfigDir() (string, error) {
	switch runtime.GOOS {
	case "windows":
		if appdata := os.Getenv("AppData"); appdata != "" {
			return filepath.Join(appdata, appName), nil
		}
		return "", errors.New("AppData not set")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, appName), nil
		}
		if home := os.Getenv("HOME"); home != "" {
			return filepath.Join(home, ".config", appName), nil
		}
		return "", errors.New("HOME not set")
	}
}

// DefaultNamedConfigPath returns the default config file path for the given
// format and base name (e.g., "generate").
func DefaultNamedConfigPath(baseName, format string) (string, error) {
	dir, err := DefaultConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, baseName+"."+Extension(format)), nil
}

// Extension maps a format name to the file extension used for it. Unknown
// formats map to json.
func Extension(format string) string {
	switch format {
	case "yaml", "yml":
		return "yaml"
	case "toml":
		return "toml"
	default:
		return "json"
	}
}

// EnsureDir ensures the directory for a given file path exists.
func EnsureDir(filePath string) error {
	return os.MkdirAll(filepath.Dir(filePath), 0o755)
}

// ConfigCandidatePaths builds candidate paths for config files per format,
// highest priority first: userPath (routed by extension), the working
// directory, the user config directory, then SystemConfigDir.
func ConfigCandidatePaths(userPath string) (jsonPaths, yamlPaths, tomlPaths []string) {
	if userPath != "" {
		switch filepath.Ext(userPath) {
		case ".yaml", ".yml":
			yamlPaths = append(yamlPaths, userPath)
		case ".toml":
			tomlPaths = append(tomlPaths, userPath)
		default:
			jsonPaths = append(jsonPaths, userPath)
		}
	}

	var dirs []string
	if wd, err := os.Getwd(); err == nil {
		dirs = append(dirs, wd)
	}
	if dir, err := DefaultConfigDir(); err == nil {
		dirs = append(dirs, dir)
	}
	if runtime.GOOS != "windows" {
		dirs = append(dirs, SystemConfigDir)
	}

	for _, dir := range dirs {
		for _, base := range baseNames {
			p := filepath.Join(dir, base)
			jsonPaths = append(jsonPaths, p+".json")
			yamlPaths = append(yamlPaths, p+".yaml", p+".yml")
			tomlPaths = append(tomlPaths, p+".toml")
		}
	}
	return
}

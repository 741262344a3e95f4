package cli

import (
	"encoding/json"
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/lsfreitas/repo-sync/internal/output"
)

const (
	devVersionString = "dev"
	unknownString    = "unknown"
)

// Build information set via ldflags
//
//nolint:gochecknoglobals // Build variables are set via ldflags during compilation
var (
	version   = devVersionString
	commit    = unknownString
	buildDate = unknownString
)

//nolint:gochecknoglobals // Cobra commands are designed to be global variables
var versionJSON bool

//nolint:gochecknoglobals // Cobra commands are designed to be global variables
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print detailed version information including build details.`,
	RunE: func(_ *cobra.Command, _ []string) error {
		return printVersion(versionJSON)
	},
}

//nolint:gochecknoinits // Cobra commands require init() for flag registration
func init() {
	versionCmd.Flags().BoolVar(&versionJSON, "json", false, "Output version information as JSON")
}

// VersionInfo contains version information
type VersionInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
	OS        string `json:"os"`
	Arch      string `json:"arch"`
}

// GetVersionInfo returns complete version information
func GetVersionInfo() VersionInfo {
	return VersionInfo{
		Version:   versionWithFallback(),
		Commit:    commitWithFallback(),
		BuildDate: buildDate,
		GoVersion: runtime.Version(),
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
	}
}

// printVersion prints version information based on the format
func printVersion(jsonFormat bool) error {
	info := GetVersionInfo()

	if jsonFormat {
		encoder := json.NewEncoder(output.Stdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(info)
	}

	output.Info(fmt.Sprintf("repo-sync %s", info.Version))
	output.Info(fmt.Sprintf("Commit:     %s", info.Commit))
	output.Info(fmt.Sprintf("Build Date: %s", info.BuildDate))
	output.Info(fmt.Sprintf("Go Version: %s", info.GoVersion))
	output.Info(fmt.Sprintf("Platform:   %s/%s", info.OS, info.Arch))

	return nil
}

// versionWithFallback prefers the ldflags version and falls back to module
// build info for go install builds
func versionWithFallback() string {
	if version != devVersionString && version != "" {
		return version
	}

	if info, ok := debug.ReadBuildInfo(); ok {
		if info.Main.Version != "" && info.Main.Version != "(devel)" {
			return info.Main.Version
		}
	}

	return devVersionString
}

// commitWithFallback prefers the ldflags commit and falls back to the VCS
// revision stamped into the binary
func commitWithFallback() string {
	if commit != unknownString && commit != "" {
		return commit
	}

	if info, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range info.Settings {
			if setting.Key == "vcs.revision" && setting.Value != "" {
				if len(setting.Value) > 7 {
					return setting.Value[:7]
				}
				return setting.Value
			}
		}
	}

	return unknownString
}

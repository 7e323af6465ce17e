package main

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Overridden with -ldflags "-X main.version=..." by release builds.
var version = ""

const libraryPath = "github.com/joshuapare/corekit"

// buildInfo describes the running binary and the corekit library it was linked with.
type buildInfo struct {
	Version   string `json:"version"`
	Library   string `json:"library"`
	GoVersion string `json:"goVersion"`
	Revision  string `json:"revision,omitempty"`
	Modified  bool   `json:"modified,omitempty"`
}

// readBuildInfo fills buildInfo from the module data embedded by the Go toolchain.
func readBuildInfo() buildInfo {
	bi := buildInfo{Version: version, Library: "unknown", GoVersion: "unknown"}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		if bi.Version == "" {
			bi.Version = "dev"
		}
		return bi
	}

	bi.GoVersion = info.GoVersion
	if bi.Version == "" {
		bi.Version = info.Main.Version
	}
	if bi.Version == "" || bi.Version == "(devel)" {
		bi.Version = "dev"
	}
	for _, dep := range info.Deps {
		if dep.Path != libraryPath {
			continue
		}
		bi.Library = dep.Version
		if dep.Replace != nil {
			bi.Library = "local " + dep.Replace.Path
		}
	}
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			bi.Revision = s.Value
		case "vcs.modified":
			bi.Modified = s.Value == "true"
		}
	}
	return bi
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		bi := readBuildInfo()
		if jsonOut {
			return printJSON(bi)
		}
		fmt.Printf("corectl %s\n", bi.Version)
		fmt.Printf("  corekit: %s\n", bi.Library)
		fmt.Printf("  go: %s\n", bi.GoVersion)
		if bi.Revision != "" {
			dirty := ""
			if bi.Modified {
				dirty = " (modified)"
			}
			fmt.Printf("  revision: %s%s\n", bi.Revision, dirty)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.Version = readBuildInfo().Version
}

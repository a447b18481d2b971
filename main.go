package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/golang/glog"
	"github.com/spf13/cobra"
)

// glogLogger adapts glog to the library logging interface
type glogLogger struct{}

func (glogLogger) Infof(format string, args ...interface{}) {
	glog.Infof(format, args...)
}

func (glogLogger) Warningf(format string, args ...interface{}) {
	glog.Warningf(format, args...)
}

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "pathtracer",
		Short: "Offline Monte Carlo path tracer",
		Long: `pathtracer renders scenes of spheres, planes and triangle meshes with
diffuse, metal, glass and checker materials under a sky gradient, and
writes the result as a PNG image.

Scenes are either built in or described in YAML/JSON scene files.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// glog reads its settings from the standard flag set
			return flag.CommandLine.Parse(nil)
		},
	}

	// Expose -v, -logtostderr and friends
	rootCmd.PersistentFlags().AddGoFlagSet(flag.CommandLine)

	rootCmd.AddCommand(newRenderCommand())
	rootCmd.AddCommand(newScenesCommand())
	return rootCmd
}

func main() {
	defer glog.Flush()

	if err := newRootCommand().Execute(); err != nil {
		glog.Errorf("%v", err)
		glog.Flush()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

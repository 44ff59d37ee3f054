package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:   "cfpexport",
		Short: "Export conference CfP data to the website repository",
	}
	root.Version = version
	root.SetVersionTemplate("{{.Version}}\n")
	root.AddCommand(exportCmd())
	root.AddCommand(speakersCmd())
	root.AddCommand(presentationsCmd())
	root.AddCommand(scheduleCmd())
	root.AddCommand(icsCmd())
	root.AddCommand(serveCmd())
	root.AddCommand(initCmd())
	root.AddCommand(versionCmd())
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"mediascribe/internal/core/version"
)

var (
	workers  int
	language string
	noChat   bool
)

var rootCmd = &cobra.Command{
	Use:     "mediascribe [file]",
	Short:   "Transcribe audio/video files and ask questions about the transcript",
	Version: version.Version,
	Args:    cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		path := ""
		if len(args) > 0 {
			path = args[0]
		}
		if err := runTranscribe(path); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.Flags().IntVarP(&workers, "workers", "w", 0, "chunks transcribed concurrently (default from config)")
	rootCmd.Flags().StringVarP(&language, "language", "l", "", "language hint for speech recognition (e.g., en-US)")
	rootCmd.Flags().BoolVar(&noChat, "no-chat", false, "print the transcript and exit without the Q&A loop")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
}

func Execute() error {
	return rootCmd.Execute()
}

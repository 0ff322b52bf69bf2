package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/medilink/reportgen/internal/download"
	"github.com/medilink/reportgen/internal/selection"
	"github.com/medilink/reportgen/internal/upload"
	"github.com/spf13/cobra"
)

func newUploadCmd() *cobra.Command {
	var outputDir string

	cmd := &cobra.Command{
		Use:   "upload [spreadsheet]",
		Short: "Upload a spreadsheet and save the generated report archive",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadRuntime()
			if err != nil {
				return err
			}
			if outputDir == "" {
				outputDir = cfg.Client.OutputDir
			}

			sel := selection.New()
			sel.Observe(func(snap selection.Snapshot) {
				if snap.Message != "" {
					fmt.Fprintln(cmd.OutOrStdout(), snap.Message)
				}
			})

			if len(args) == 1 {
				if !selection.Accepted(args[0]) {
					fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s is not an Excel file; uploading anyway\n", args[0])
				}
				file, err := selection.Open(args[0])
				if err != nil {
					return err
				}
				sel.SelectFile(file)
				fmt.Fprintf(cmd.OutOrStdout(), "Selected file: %s\n", file.Name)
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "No file selected")
			}

			ctrl := upload.NewController(cfg.UploadURL(), nil, download.NewFileSaver(outputDir, log), log)
			outcome, err := ctrl.Submit(cmd.Context(), sel)
			if errors.Is(err, upload.ErrNoFileSelected) {
				fmt.Fprintln(os.Stderr, err)
				return errReported
			}
			if err != nil {
				return err
			}

			if outcome.Failed() {
				return errReported
			}
			if saved, ok := outcome.(*upload.BinaryPayload); ok {
				fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", saved.SavedPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "Directory for the downloaded archive (default: client.output_dir)")
	return cmd
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/joshuapare/sweepkit/ext2"
	"github.com/joshuapare/sweepkit/sweep"
)

var (
	sweepWorkers int
	sweepDryRun  bool
	sweepDiscard bool
	sweepFill    uint8
)

func init() {
	cmd := newSweepCmd()
	cmd.Flags().IntVarP(&sweepWorkers, "workers", "t", 1, "Number of concurrent sweep workers")
	cmd.Flags().BoolVarP(&sweepDryRun, "dry-run", "n", false, "Report what would change without writing")
	cmd.Flags().BoolVarP(&sweepDiscard, "discard", "d", false, "Issue discard (TRIM) instead of overwriting")
	cmd.Flags().Uint8VarP(&sweepFill, "fill", "f", 0, "Fill byte for free blocks (0-255)")
	rootCmd.AddCommand(cmd)
}

func newSweepCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep <filesystem>",
		Short: "Overwrite or discard every free block of an ext2 image",
		Long: `The sweep command walks the block allocation bitmap of an ext2 image
and overwrites every free block with the fill byte, skipping blocks whose
content already matches. With --discard the blocks are handed to the storage
layer as TRIM requests instead. Allocated blocks are never touched.

The image must not be mounted read-write.

Example:
  sweepctl sweep disk.img
  sweepctl sweep -n -v disk.img
  sweepctl sweep -t 4 /dev/sdb1
  sweepctl sweep -d /dev/sdb1
  sweepctl sweep -f 0xff disk.img`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSweep(cmd, args[0])
		},
	}
	return cmd
}

func runSweep(cmd *cobra.Command, path string) error {
	if sweepWorkers < 0 {
		return fmt.Errorf("invalid argument to -t: %d", sweepWorkers)
	}
	if sweepWorkers > 1 {
		fmt.Fprintf(os.Stderr, "USE %d workers\n", sweepWorkers)
		fmt.Fprintf(os.Stderr, "WARNING: Running multiple workers might damage your spinning device!\n")
	}
	if cmd.Flags().Changed("fill") {
		printInfo("fillval = %d\n", sweepFill)
	}

	printVerbose("Opening filesystem: %s\n", path)
	fs, err := ext2.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open filesystem %s: %w", path, err)
	}

	totalBlocks := fs.BlockCount()
	res, err := sweep.Run(fs, sweep.Config{
		Fill:     sweepFill,
		DryRun:   sweepDryRun,
		Discard:  sweepDiscard,
		Verbose:  verbose && !quiet,
		Workers:  sweepWorkers,
		Progress: os.Stderr,
	})
	if err != nil {
		// Sequential sweeps fail fast; release the handle and bail.
		_ = fs.Close()
		return err
	}

	// Worker failures are diagnostics, not a run failure: each failed
	// worker stopped its own partition early but every other partition
	// was swept to completion.
	for _, ferr := range res.Failures() {
		printError("%v\n", ferr)
	}

	if err := fs.Close(); err != nil {
		return fmt.Errorf("error while closing filesystem: %w", err)
	}

	if jsonOut {
		return printJSON(map[string]interface{}{
			"filesystem":   path,
			"modified":     res.Modified,
			"free_visited": res.FreeVisited,
			"total_blocks": totalBlocks,
			"dry_run":      sweepDryRun,
			"discard":      sweepDiscard,
			"failures":     len(res.Failures()),
		})
	}

	p := message.NewPrinter(language.English)
	verb := "modified"
	if sweepDryRun {
		verb = "would modify"
	}
	printInfo("%s\n", p.Sprintf("%s %d of %d free blocks (%d total)",
		verb, res.Modified, res.FreeVisited, totalBlocks))
	return nil
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/joshuapare/sweepkit/ext2"
)

func init() {
	rootCmd.AddCommand(newInfoCmd())
}

func newInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info <filesystem>",
		Short: "Validate an ext2 superblock and report basic geometry",
		Long: `The info command validates an ext2 image and displays its geometry:
block size, block and inode counts, free blocks, and group layout.

Example:
  sweepctl info disk.img
  sweepctl info disk.img --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(args)
		},
	}
	return cmd
}

func runInfo(args []string) error {
	path := args[0]

	printVerbose("Opening filesystem: %s\n", path)
	fs, err := ext2.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open filesystem %s: %w", path, err)
	}
	defer fs.Close()

	st := fs.Stats()

	// Output as JSON if requested
	if jsonOut {
		return printJSON(st)
	}

	p := message.NewPrinter(language.English)
	printInfo("\nFilesystem Information:\n")
	printInfo("  File: %s\n", st.Path)
	printInfo("  Block size: %s\n", p.Sprintf("%d bytes", st.BlockSize))
	printInfo("  Blocks: %s\n", p.Sprintf("%d (%d free)", st.BlockCount, st.FreeBlocks))
	printInfo("  First data block: %d\n", st.FirstDataBlock)
	printInfo("  Inodes: %s\n", p.Sprintf("%d", st.InodeCount))
	printInfo("  Groups: %s\n", p.Sprintf("%d (%d blocks per group)", st.GroupCount, st.BlocksPerGroup))
	if st.Clean {
		printInfo("  State: clean\n")
	} else {
		printInfo("  State: not cleanly unmounted\n")
	}
	return nil
}

// Command mazectl generates and plays Mindful Maze levels in the terminal.
package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/beka-birhanu/mindful-maze/maze"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "mazectl",
		Short:         "Generate and play Mindful Maze levels",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newGenerateCmd(), newPlayCmd())
	return root
}

// newGenerator seeds from the clock when seed is 0.
func newGenerator(size int, seed int64) (*maze.Generator, error) {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return maze.NewGenerator(size, rand.New(rand.NewSource(seed)))
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "mazectl:", err)
		os.Exit(1)
	}
}

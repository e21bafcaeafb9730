package main

import (
	"fmt"

	"github.com/beka-birhanu/mindful-maze/maze"
	"github.com/spf13/cobra"
)

func newGenerateCmd() *cobra.Command {
	var (
		difficulty string
		seed       int64
		size       int
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Print a generated maze and its collectibles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := maze.ParseDifficulty(difficulty)
			if err != nil {
				return err
			}
			gen, err := newGenerator(size, seed)
			if err != nil {
				return err
			}

			m := gen.Generate(d)
			items := gen.Collectibles(m)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s maze, %dx%d\n", d, m.Size, m.Size)
			fmt.Fprint(out, m.String())
			for _, c := range items {
				fmt.Fprintf(out, "%-8s (%d,%d) %d pts\n", c.Type, c.X, c.Y, maze.CalculatePoints(c.Type))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&difficulty, "difficulty", "d", string(maze.Easy), "easy, medium or hard")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed, 0 picks one from the clock")
	cmd.Flags().IntVar(&size, "size", maze.DefaultSize, "side length of the maze")
	return cmd
}

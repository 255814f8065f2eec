package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sproutplan/sproutplan/cmd/service"
)

func main() {
	root := &cobra.Command{
		Use:   "sproutplan",
		Short: "sproutplan",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("empty command")
		},
	}

	root.AddCommand(service.NewCommand(), service.NewSeedCommand())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

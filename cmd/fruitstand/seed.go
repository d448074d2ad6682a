package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"fruitstand/internal/services"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Replace every fruit with the starter set and print it as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signalContext()
		defer stop()

		_, store, cleanup, err := setup(ctx, cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		fruits, err := services.NewFruitService(store).Seed(ctx)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(fruits)
	},
}

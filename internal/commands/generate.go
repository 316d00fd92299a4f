// internal/commands/generate.go
package vehiclesim

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jamesliupenn/vehicle-simulator/internal/simulator"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a synthetic vehicle telemetry dataset",
	Long: `Builds the category/subcategory/value generation schema, submits a
preview request to the data designer service, and writes the resulting
records to a JSON file with a per-category summary.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		sim := simulator.New(GetConfig())
		if err := sim.Run(cmd.Context()); err != nil {
			printTroubleshooting()
			return err
		}
		return nil
	},
}

// printTroubleshooting mirrors the guidance printed when a run fails for any
// reason other than the preview call itself.
func printTroubleshooting() {
	fmt.Println("\nTroubleshooting tips:")
	fmt.Printf("1. Ensure the data designer service is running at %s\n", GetConfig().BaseURL())
	fmt.Println("2. Verify your model configuration is correct")
	fmt.Println("3. Review the error message above for specific issues")
}

func init() {
	generateCmd.Flags().IntP("records", "n", 10, "number of preview records to generate")
	generateCmd.Flags().StringP("output", "o", "", "output JSON file path")

	_ = viper.BindPFlag("records", generateCmd.Flags().Lookup("records"))
	_ = viper.BindPFlag("output", generateCmd.Flags().Lookup("output"))

	rootCmd.AddCommand(generateCmd)
}

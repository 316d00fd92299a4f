// internal/commands/taxonomy.go
package vehiclesim

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/jamesliupenn/vehicle-simulator/internal/taxonomy"
)

var taxonomyCmd = &cobra.Command{
	Use:   "taxonomy",
	Short: "Print the vehicle telemetry taxonomy",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := taxonomy.Validate(); err != nil {
			return err
		}

		categoryStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
		leafStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("255"))

		for _, c := range taxonomy.Categories() {
			fmt.Printf("%s (%d)\n", categoryStyle.Render(c.Name), len(c.Subcategories))
			for _, s := range c.Subcategories {
				fmt.Printf("  %s\n", leafStyle.Render("- "+s))
			}
		}
		fmt.Printf("\nTotal: %d categories, %d subcategories\n", len(taxonomy.Categories()), taxonomy.LeafCount())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(taxonomyCmd)
}

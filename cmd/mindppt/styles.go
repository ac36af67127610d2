package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sant0-9/mindppt/internal/style"
)

var stylesCmd = &cobra.Command{
	Use:   "styles",
	Short: "List the presentation styles",
	Run: func(cmd *cobra.Command, args []string) {
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		for _, cat := range style.Categories() {
			fmt.Fprintf(w, "%s %s\n", cat.Icon, cat.Label)
			for _, st := range style.ByCategory(cat.ID) {
				marker := ""
				if st.ID == style.Default {
					marker = " (default)"
				}
				fmt.Fprintf(w, "  %s\t%s%s\t%s\n", st.ID, st.Name, marker, st.Description)
			}
		}
		w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(stylesCmd)
}

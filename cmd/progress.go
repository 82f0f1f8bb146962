package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/lesezeit/internal/progress"
)

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show completed practice modes",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		recs, err := progress.NewService(st.ProgressRepo()).All(cmd.Context())
		if err != nil {
			return err
		}
		if len(recs) == 0 {
			fmt.Println("Nothing completed yet.")
			return nil
		}

		fmt.Printf("%-32s  %-16s  %s\n", "Text", "Mode", "Completed")
		fmt.Println(strings.Repeat("─", 72))
		for _, r := range recs {
			fmt.Printf("%-32s  %-16s  %s\n",
				r.TopicID+"/"+r.TextID, r.ModeKey, r.CompletedAt.Local().Format("2006-01-02 15:04"))
		}
		return nil
	},
}

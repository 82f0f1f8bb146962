package cmd

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/lesezeit/internal/practice"
	"github.com/abhisek/lesezeit/internal/progress"
)

var textsCmd = &cobra.Command{
	Use:   "texts",
	Short: "List the texts of the library with practice progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, err := loadLibrary(cmd)
		if err != nil {
			return err
		}
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()
		svc := progress.NewService(st.ProgressRepo())

		for _, t := range lib.Topics() {
			fmt.Printf("%s (%s)\n", t.Title, t.ID)
			for _, info := range t.Texts {
				modes, err := svc.CompletedModes(cmd.Context(), t.ID, info.ID)
				if err != nil {
					return err
				}
				fmt.Printf("  %-28s %-32s %s\n", t.ID+"/"+info.ID, info.Title, modeMarks(modes))
			}
		}
		return nil
	},
}

// modeMarks renders one letter per practice mode, upper case when complete.
func modeMarks(done []practice.Mode) string {
	var b strings.Builder
	for _, m := range practice.Modes() {
		letter := string(m)[:1]
		if slices.Contains(done, m) {
			b.WriteString(strings.ToUpper(letter))
		} else {
			b.WriteString(".")
		}
	}
	return b.String()
}

// splitTextRef parses "topic/text".
func splitTextRef(ref string) (topicID, textID string, err error) {
	topicID, textID, ok := strings.Cut(ref, "/")
	if !ok || topicID == "" || textID == "" {
		return "", "", fmt.Errorf("invalid text %q: want <topic>/<text>", ref)
	}
	return topicID, textID, nil
}

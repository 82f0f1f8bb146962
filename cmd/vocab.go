package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/lesezeit/internal/vocab"
)

var vocabCmd = &cobra.Command{
	Use:   "vocab",
	Short: "Manage saved words",
}

var vocabListCmd = &cobra.Command{
	Use:   "list <topic>/<text>",
	Short: "List the saved words of a text",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		topicID, textID, err := splitTextRef(args[0])
		if err != nil {
			return err
		}
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		entries, err := vocab.NewStore(st.VocabRepo()).List(cmd.Context(), topicID, textID)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("No saved words.")
			return nil
		}
		fmt.Printf("%-36s  %-20s  %-20s  %s\n", "ID", "Word", "Base form", "Translation")
		fmt.Println(strings.Repeat("─", 100))
		for _, e := range entries {
			fmt.Printf("%-36s  %-20s  %-20s  %s\n", e.ID, e.SourceTerm, e.BaseForm, e.TargetTerm)
		}
		return nil
	},
}

var vocabAddCmd = &cobra.Command{
	Use:   "add <topic>/<text> <word> <translation>",
	Short: "Save a word for a text",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		topicID, textID, err := splitTextRef(args[0])
		if err != nil {
			return err
		}
		lib, err := loadLibrary(cmd)
		if err != nil {
			return err
		}
		if _, err := lib.Text(topicID, textID); err != nil {
			return fmt.Errorf("text %s: %w", args[0], err)
		}
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		base, _ := cmd.Flags().GetString("base")
		e, err := vocab.NewStore(st.VocabRepo()).Add(cmd.Context(), vocab.Entry{
			TopicID:    topicID,
			TextID:     textID,
			SourceTerm: args[1],
			BaseForm:   base,
			TargetTerm: args[2],
		})
		if err != nil {
			return err
		}
		fmt.Printf("Saved %q → %q (%s)\n", e.SourceTerm, e.TargetTerm, e.ID)
		return nil
	},
}

var vocabRemoveCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"remove"},
	Short:   "Remove a saved word",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := vocab.NewStore(st.VocabRepo()).Remove(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Println("Removed.")
		return nil
	},
}

func init() {
	vocabAddCmd.Flags().String("base", "", "Dictionary base form of the word")

	vocabCmd.AddCommand(vocabListCmd)
	vocabCmd.AddCommand(vocabAddCmd)
	vocabCmd.AddCommand(vocabRemoveCmd)
}

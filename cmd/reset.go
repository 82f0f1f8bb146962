package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/lesezeit/internal/practice"
	"github.com/abhisek/lesezeit/internal/progress"
	"github.com/abhisek/lesezeit/internal/screens/env"
	"github.com/abhisek/lesezeit/internal/vocab"
)

var resetCmd = &cobra.Command{
	Use:   "reset <topic>/<text>",
	Short: "Reset the practice state of a text",
	Long: "Reset clears the practice state and completion marks of a text. " +
		"With --mode only that mode is reset. Saved words are kept unless --vocab is given.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		topicID, textID, err := splitTextRef(args[0])
		if err != nil {
			return err
		}
		modeName, _ := cmd.Flags().GetString("mode")
		withVocab, _ := cmd.Flags().GetBool("vocab")

		lib, err := loadLibrary(cmd)
		if err != nil {
			return err
		}
		text, err := lib.Text(topicID, textID)
		if err != nil {
			return fmt.Errorf("text %s: %w", args[0], err)
		}
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		e := &env.Env{
			Library:  lib,
			Vocab:    vocab.NewStore(st.VocabRepo()),
			Progress: progress.NewService(st.ProgressRepo()),
			Practice: st.PracticeRepo(),
		}

		if modeName != "" {
			mode, ok := practice.ParseMode(modeName)
			if !ok {
				return fmt.Errorf("unknown mode %q (want one of %v)", modeName, practice.Modes())
			}
			ws, err := e.OpenWorkspace(ctx, text)
			if err != nil {
				return err
			}
			ws.Session.Reset(mode)
			if err := ws.Session.Save(ctx, e.Practice); err != nil {
				return err
			}
			fmt.Printf("Reset %s of %s.\n", mode, args[0])
			return nil
		}

		if err := resetText(ctx, e, st.PracticeRepo().Delete, topicID, textID, withVocab); err != nil {
			return err
		}
		fmt.Printf("Reset %s.\n", args[0])
		return nil
	},
}

func resetText(ctx context.Context, e *env.Env, deleteState func(context.Context, string, string) error, topicID, textID string, withVocab bool) error {
	if err := deleteState(ctx, topicID, textID); err != nil {
		return fmt.Errorf("delete practice state: %w", err)
	}
	if err := e.Progress.ResetText(ctx, topicID, textID); err != nil {
		return err
	}
	if withVocab {
		if err := e.Vocab.RemoveText(ctx, topicID, textID); err != nil {
			return err
		}
	}
	return nil
}

func init() {
	resetCmd.Flags().String("mode", "", "Reset only this mode (cards, fill, write, order, speak)")
	resetCmd.Flags().Bool("vocab", false, "Also remove the saved words of the text")
}

package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/lesezeit/internal/selfupdate"
)

// version is set via -ldflags at build time.
var version = "(devel)"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current version",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("lesezeit", version)

		if check, _ := cmd.Flags().GetBool("check"); !check {
			return nil
		}
		res, err := selfupdate.NewChecker().Check(cmd.Context(), &selfupdate.CheckInput{Version: version})
		if errors.Is(err, selfupdate.ErrDevBuild) {
			fmt.Println("Development build; release check skipped.")
			return nil
		}
		if err != nil {
			return fmt.Errorf("check for updates: %w", err)
		}
		if res.UpdateAvailable {
			fmt.Printf("A newer release is available: %s\n%s\n", res.LatestVersion, res.ReleaseURL)
		} else {
			fmt.Println("You are running the latest release.")
		}
		return nil
	},
}

func init() {
	versionCmd.Flags().Bool("check", false, "Check GitHub for a newer release")
}

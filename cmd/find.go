package cmd

import (
	"fmt"

	"github.com/dgruano/ShareYourCloning-backend/internal/enzyme"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// findCmd is for finding enzymes by their name.
var findCmd = &cobra.Command{
	Use:                        "find",
	Short:                      "Find enzymes",
	SuggestionsMinimumDistance: 2,
	Long: `Find enzymes by name.
If there is no exact match, similar entries are returned`,
	Aliases: []string{"ls", "list"},
}

// enzymeFindCmd is for listing out all the available enzymes usable for
// restriction ligation. Useful for if the user doesn't know which enzymes are available.
var enzymeFindCmd = &cobra.Command{
	Use:                        "enzyme [name]",
	Short:                      "Find enzymes available for restriction ligation",
	Args:                       cobra.MaximumNArgs(1),
	RunE:                       enzymeFindExec,
	SuggestionsMinimumDistance: 2,
	Long: `List out all the enzymes with the same or a similar name as the argument.
Each is written as <name>: <recognition sequence>, with ^ marking the cut of
the top strand and _ that of the bottom strand.

'syc find enzyme' without any arguments logs all enzymes available.`,
	Aliases: []string{"enzymes"},
}

func enzymeFindExec(cmd *cobra.Command, args []string) error {
	db := enzyme.Default()
	if conf.EnzymeDB != "" {
		var err error
		if db, err = enzyme.Load(conf.EnzymeDB); err != nil {
			return err
		}
	}

	names := db.Names()
	if len(args) > 0 {
		if names = db.Find(args[0]); len(names) == 0 {
			return errors.Errorf("failed to find any enzymes for %s", args[0])
		}
	}

	for _, name := range names {
		site, _ := db.Site(name)
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", name, site)
	}
	return nil
}

// set flags
func init() {
	findCmd.AddCommand(enzymeFindCmd)

	RootCmd.AddCommand(findCmd)
}

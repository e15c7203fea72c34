package commands

import (
	"encoding/json"
	"fmt"
	"strconv"
	"text/tabwriter"

	"knowledge-base/models"
	"knowledge-base/services"

	"github.com/spf13/cobra"
)

var authorCmd = &cobra.Command{
	Use:   "author",
	Short: "Inspect author profiles",
}

var authorStatsCmd = &cobra.Command{
	Use:   "stats <author-id>",
	Short: "Count an author's publications with abstracts and full text",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseAuthorID(args[0])
		if err != nil {
			return err
		}
		stats, err := services.NewAuthorService(db, log).Stats(cmd.Context(), id)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(cmd, stats)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Publications: %d, with abstract: %d, full text: %d\n",
			stats.Publications, stats.WithAbstract, stats.FullText)
		return nil
	},
}

var authorShowCmd = &cobra.Command{
	Use:   "show <author-id>",
	Short: "Show an author profile with decoded name variants, degrees and distinctions",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseAuthorID(args[0])
		if err != nil {
			return err
		}
		author, err := services.NewAuthorService(db, log).Get(cmd.Context(), id)
		if err != nil {
			return err
		}
		return printAuthor(cmd, author)
	},
}

func init() {
	rootCmd.AddCommand(authorCmd)
	authorCmd.AddCommand(authorStatsCmd, authorShowCmd)
}

func parseAuthorID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid author id '%s'", raw)
	}
	return uint(id), nil
}

func printAuthor(cmd *cobra.Command, author *models.Author) error {
	names, err := author.LoadNameList()
	if err != nil {
		return err
	}
	degrees, err := author.LoadDegrees()
	if err != nil {
		return err
	}
	distinctions, err := author.LoadDistinctions()
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(cmd, map[string]any{
			"author":       author,
			"name_list":    names,
			"degrees":      degrees,
			"distinctions": distinctions,
		})
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Name:\t%s\n", author)
	fmt.Fprintf(w, "Name variants:\t%d\n", len(names))
	fmt.Fprintf(w, "Degrees:\t%d\n", len(degrees))
	fmt.Fprintf(w, "Distinctions:\t%d\n", len(distinctions))
	fmt.Fprintf(w, "Publications:\t%d\n", len(author.Publications))
	fmt.Fprintf(w, "Synced with Ciência:\t%t\n", author.SyncedCiencia)
	for _, publication := range author.Publications {
		fmt.Fprintf(w, "\t%s\n", publication)
	}
	return w.Flush()
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

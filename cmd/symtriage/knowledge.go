package main

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bisheshoggo/symtriage/internal/knowledge"
	"github.com/bisheshoggo/symtriage/internal/triage"
)

var knowledgeCmd = &cobra.Command{
	Use:         "knowledge [query]",
	Short:       "Search the offline guidance articles",
	Args:        cobra.MaximumNArgs(1),
	Annotations: quiet(),
	RunE: func(cmd *cobra.Command, args []string) error {
		category, _ := cmd.Flags().GetString("category")
		listCategories, _ := cmd.Flags().GetBool("categories")

		lang := triage.ParseLanguage(cfg.Locale.Language)
		if v, _ := cmd.Flags().GetString("lang"); v != "" {
			lang = triage.ParseLanguage(v)
		}

		kb, err := knowledge.Load(cfg.Knowledge.Path)
		if err != nil {
			return err
		}

		if listCategories {
			for _, c := range kb.Categories() {
				fmt.Printf("%-16s %s\n", c.ID, c.Label.In(lang))
			}
			return nil
		}

		var query string
		if len(args) > 0 {
			query = args[0]
		}
		articles := kb.Search(query, lang)
		if category != "" {
			if !kb.HasCategory(category) {
				return fmt.Errorf("unknown category %q", category)
			}
			articles = slices.DeleteFunc(articles, func(a knowledge.Article) bool { return a.Category != category })
		}

		if len(articles) == 0 {
			fmt.Println("No articles found.")
			return nil
		}
		printArticles(os.Stdout, articles, lang)
		return nil
	},
}

func printArticles(w io.Writer, articles []knowledge.Article, lang triage.Language) {
	for i, a := range articles {
		if i > 0 {
			fmt.Fprintln(w)
		}
		l := a.Localize(lang)
		fmt.Fprintf(w, "%s [%s]\n", l.Title, l.Category)
		fmt.Fprintf(w, "%s\n", strings.Repeat("-", len([]rune(l.Title))))
		fmt.Fprintln(w, l.Content)
	}
}

func init() {
	fl := knowledgeCmd.Flags()
	fl.String("category", "", "only articles in this category")
	fl.Bool("categories", false, "list categories and exit")
	fl.String("lang", "", "display language: en or bn")

	rootCmd.AddCommand(knowledgeCmd)
}

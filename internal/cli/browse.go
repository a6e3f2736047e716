package cli

import (
	"fmt"
	"io"

	"henna-assistant-be/pkg/catalog"
	"henna-assistant-be/pkg/faq"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var headerColor = color.New(color.FgHiMagenta, color.Bold)

func newFAQCommand(a *app) *cobra.Command {
	var match string
	var threshold float64

	cmd := &cobra.Command{
		Use:   "faq",
		Short: "List the FAQ by category, or find the closest question",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			if a.core.Matcher.Len() == 0 {
				noticeColor.Fprintln(out, "No FAQ data available.")
				return nil
			}
			if match != "" {
				m, ok := a.core.Matcher.FindBestMatch(match, threshold)
				if !ok {
					noticeColor.Fprintln(out, "No close FAQ match found.")
					return nil
				}
				faqColor.Fprintf(out, "%s (%.2f)\n", m.Question, m.Score)
				fmt.Fprintln(out, m.Answer)
				return nil
			}
			printFAQ(out, faq.GroupByCategory(a.core.Matcher.Entries()))
			return nil
		},
	}
	cmd.Flags().StringVar(&match, "match", "", "print the FAQ entry closest to this question")
	cmd.Flags().Float64Var(&threshold, "threshold", faq.DefaultThreshold, "minimum similarity for --match")
	return cmd
}

func printFAQ(out io.Writer, groups []faq.Group) {
	for _, g := range groups {
		headerColor.Fprintf(out, "📌 %s\n", g.Category)
		for _, e := range g.Entries {
			faqColor.Fprintf(out, "  ❓ %s\n", e.Question)
			fmt.Fprintf(out, "     %s\n", e.Answer)
		}
		fmt.Fprintln(out)
	}
}

func newPackagesCommand(a *app) *cobra.Command {
	var (
		sel      = catalog.NewSelection()
		maxPrice float64
		showAll  bool
	)

	cmd := &cobra.Command{
		Use:   "packages",
		Short: "Browse service packages with the cascading filters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			if a.core.Catalog.Empty() {
				noticeColor.Fprintln(out, "No packages available.")
				return nil
			}

			filter := catalog.NewFilter(a.core.Catalog)
			if cmd.Flags().Changed("max-price") {
				sel.Price = &maxPrice
			}
			filter.Replace(sel)
			view := filter.View()

			var p catalog.Paginator
			p.Observe(view.Signature())
			if showAll {
				p.ShowMore(len(view.Packages))
			}
			printPackages(out, view, p.Page(view.Packages))
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&sel.Type, "type", catalog.All, "package type")
	f.StringVar(&sel.Length, "length", catalog.All, "design length")
	f.StringVar(&sel.Hand, "hand", catalog.All, "one or both hands")
	f.StringVar(&sel.Side, "side", catalog.All, "front, back or both")
	f.Float64Var(&maxPrice, "max-price", 0, "upper price bound (defaults to the highest price)")
	f.BoolVar(&showAll, "all", false, "show every matching package")
	return cmd
}

func printPackages(out io.Writer, view catalog.View, page catalog.Page) {
	for _, attr := range catalog.Attributes() {
		fmt.Fprintf(out, "%-7s %s  (options: All", attr+":", view.Selection.Get(attr))
		for _, o := range view.Options[attr] {
			fmt.Fprintf(out, ", %s", o)
		}
		fmt.Fprintln(out, ")")
	}
	if view.PriceRange.Fixed {
		fmt.Fprintf(out, "price:  %.0f BDT\n", view.PriceRange.Max)
	} else {
		fmt.Fprintf(out, "price:  up to %.0f BDT (range %.0f-%.0f)\n", view.Bound, view.PriceRange.Min, view.PriceRange.Max)
	}
	for _, attr := range view.Reset {
		noticeColor.Fprintf(out, "%s no longer matches, reset to All\n", attr)
	}
	fmt.Fprintln(out)

	if page.Total == 0 {
		noticeColor.Fprintln(out, "No packages match your filters.")
		return
	}
	for _, row := range page.Rows {
		for _, p := range row {
			headerColor.Fprintf(out, "%s", p.Name)
			fmt.Fprintf(out, "  %s | %s | %s | %s | %.0f BDT\n", p.Type, p.Length, p.Hand, p.Side, p.Price)
			if p.Description != "" {
				fmt.Fprintf(out, "    %s\n", p.Description)
			}
		}
		fmt.Fprintln(out)
	}
	if page.HasMore {
		noticeColor.Fprintf(out, "%d of %d shown. %s with --all\n", len(page.Items), page.Total, catalog.ShowMoreLabel)
	}
}

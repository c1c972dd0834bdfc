package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/nichescope/internal/common"
	"github.com/dmitrijs2005/nichescope/internal/models"
)

const savedReportTitle = "My Saved Niches"

// Search runs a market analysis for topic and keeps the result as the
// current result set.
func (a *App) Search(ctx context.Context, topic string) error {
	if a.deps.Analyzer == nil {
		return a.fail(ctx, common.ErrConfiguration)
	}

	fmt.Fprintf(a.out, "Analyzing %q, this can take a minute...\n", topic)
	res, err := a.deps.Analyzer.Analyze(ctx, topic)
	if err != nil {
		return a.fail(ctx, err)
	}
	a.results = res
	return a.Results(ctx)
}

func (a *App) Results(ctx context.Context) error {
	if a.results == nil {
		fmt.Fprintln(a.out, "No results yet. Try: search <topic>")
		return nil
	}

	marks := make(map[string]bool)
	if u := a.sess.User(); u != nil {
		for _, n := range a.results.Niches {
			ok, err := a.deps.Saved.IsSaved(ctx, u.ID, n.ID)
			if err != nil {
				return a.fail(ctx, err)
			}
			marks[n.ID] = ok
		}
	}

	fmt.Fprintf(a.out, "Results for %q:\n", a.results.Topic)
	PrintNiches(a.out, a.results.Niches, marks)
	return nil
}

// Show prints every field of result n (1-based).
func (a *App) Show(ctx context.Context, arg string) error {
	n, err := a.pick(arg)
	if err != nil {
		return a.fail(ctx, err)
	}
	PrintNiche(a.out, n)
	return nil
}

// Save stores result n for the current user. Anonymous users are asked to
// log in first.
func (a *App) Save(ctx context.Context, arg string) error {
	n, err := a.pick(arg)
	if err != nil {
		return a.fail(ctx, err)
	}

	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Log in to save niches.")
		if err := a.Login(ctx); err != nil {
			return err
		}
	}
	u, err := a.sess.RequireUser()
	if err != nil {
		return a.fail(ctx, err)
	}

	if err := a.deps.Saved.Save(ctx, u.ID, n); err != nil {
		return a.fail(ctx, err)
	}
	fmt.Fprintf(a.out, "Saved %q.\n", n.Name)
	return nil
}

func (a *App) Saved(ctx context.Context) error {
	u, err := a.sess.RequireUser()
	if err != nil {
		return a.fail(ctx, err)
	}
	list, err := a.deps.Saved.List(ctx, u.ID)
	if err != nil {
		return a.fail(ctx, err)
	}
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No saved niches.")
		return nil
	}
	PrintNiches(a.out, list, nil)
	return nil
}

func (a *App) Remove(ctx context.Context, id string) error {
	u, err := a.sess.RequireUser()
	if err != nil {
		return a.fail(ctx, err)
	}
	if err := a.deps.Saved.Remove(ctx, u.ID, id); err != nil {
		return a.fail(ctx, err)
	}
	fmt.Fprintln(a.out, "Removed.")
	return nil
}

// Export writes a report of the current results, or of the saved list when
// what is "saved".
func (a *App) Export(ctx context.Context, what string) error {
	var (
		title  string
		niches []models.Niche
	)

	switch what {
	case "":
		if a.results == nil {
			fmt.Fprintln(a.out, "Nothing to export. Try: search <topic>")
			return nil
		}
		title, niches = a.results.Topic, a.results.Niches
	case "saved":
		u, err := a.sess.RequireUser()
		if err != nil {
			return a.fail(ctx, err)
		}
		if niches, err = a.deps.Saved.List(ctx, u.ID); err != nil {
			return a.fail(ctx, err)
		}
		title = savedReportTitle
	default:
		fmt.Fprintln(a.out, "Usage: export [saved]")
		return nil
	}

	if len(niches) == 0 {
		fmt.Fprintln(a.out, "Nothing to export.")
		return nil
	}

	loc, err := a.deps.Exporter.Export(ctx, a.deps.Sink, title, niches)
	if err != nil {
		return a.fail(ctx, err)
	}
	fmt.Fprintln(a.out, "Report written to", loc)
	return nil
}

func (a *App) pick(arg string) (models.Niche, error) {
	if a.results == nil {
		return models.Niche{}, fmt.Errorf("no results yet, run a search first")
	}
	i, err := strconv.Atoi(arg)
	if err != nil || i < 1 || i > len(a.results.Niches) {
		return models.Niche{}, fmt.Errorf("pick a result between 1 and %d", len(a.results.Niches))
	}
	return a.results.Niches[i-1], nil
}

// PrintNiches writes one row per niche. Niches whose id is set in saved are
// marked with '*'.
func PrintNiches(w io.Writer, niches []models.Niche, saved map[string]bool) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tNAME\tDEMAND\tSUPPLY\tOPPORTUNITY\tID")
	for i, n := range niches {
		mark := ""
		if saved[n.ID] {
			mark = " *"
		}
		fmt.Fprintf(tw, "%d\t%s%s\t%d\t%d\t%d\t%s\n", i+1, n.Name, mark, n.DemandScore, n.SupplyScore, n.OpportunityScore, n.ID)
	}
	tw.Flush()
}

func PrintNiche(w io.Writer, n models.Niche) {
	fmt.Fprintf(w, "%s (%s)\n%s\n\n", n.Name, n.ID, n.Description)
	fmt.Fprintf(w, "Demand %d | Supply %d | Opportunity %d\n", n.DemandScore, n.SupplyScore, n.OpportunityScore)

	trend := make([]string, 0, len(n.TrendData))
	for _, p := range n.TrendData {
		trend = append(trend, fmt.Sprintf("%s %.0f", p.Month, p.Value))
	}
	fmt.Fprintln(w, "Trend:", strings.Join(trend, ", "))

	fmt.Fprintln(w, "Keywords:")
	for _, k := range n.Keywords {
		fmt.Fprintf(w, "  - %s (volume %s, cpc %s)\n", k.Term, k.Volume, k.CPC)
	}

	s := n.SupplyInsights
	fmt.Fprintf(w, "Supply: quality %s, competitors %s, entry %s\n", s.QualityAssessment, s.CompetitorCount, s.EntryDifficulty)

	fmt.Fprintln(w, "Products:")
	for _, p := range n.Products {
		fmt.Fprintf(w, "  - [%s] %s: %s\n", p.Type, p.Title, p.Description)
	}

	pi := n.PlatformInsights
	fmt.Fprintln(w, "Platforms:")
	for _, row := range [][2]string{
		{"YouTube", pi.YouTube}, {"TikTok", pi.TikTok}, {"Google", pi.Google},
		{"Instagram", pi.Instagram}, {"Facebook/WhatsApp", pi.Facebook}, {"Forums", pi.Forums},
	} {
		fmt.Fprintf(w, "  %s: %s\n", row[0], row[1])
	}
}

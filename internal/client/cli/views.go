package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/gophdrive/internal/catalog"
	"github.com/dmitrijs2005/gophdrive/internal/client/shell"
	"github.com/dmitrijs2005/gophdrive/internal/common"
)

// Navigate switches the active view and loads its data.
func (a *App) Navigate(ctx context.Context, v shell.View) error {
	a.dispatch(shell.Navigate{To: v})
	return a.enter(ctx)
}

// enter renders the active view from fresh data.
func (a *App) enter(ctx context.Context) error {
	switch a.state.View {
	case shell.ViewDashboard:
		return a.showDashboard(ctx, common.DashboardLimit)
	case shell.ViewSearch:
		return a.openSearch(ctx)
	case shell.ViewFileDetails:
		return a.openDetails(ctx)
	case shell.ViewUpload:
		a.showUpload()
		return nil
	case shell.ViewUpgrade:
		return a.showUpgrade(ctx)
	default:
		return nil
	}
}

func (a *App) Exec(ctx context.Context, cmd string, args []string) (bool, error) {
	switch a.state.View {
	case shell.ViewDashboard:
		if cmd == "more" {
			return true, a.showDashboard(ctx, 0)
		}
	case shell.ViewSearch:
		return a.execSearch(cmd, args)
	case shell.ViewFileDetails:
		switch cmd {
		case "select":
			return true, a.selectDetail(ctx, args)
		case "url":
			return true, a.printSignedURL(ctx)
		}
	case shell.ViewUpload:
		if cmd == "add" {
			return true, a.upload(ctx, args)
		}
	case shell.ViewUpgrade:
		if cmd == "pay" {
			return true, a.pay(ctx, args)
		}
	}
	return false, nil
}

func (a *App) fail(what string, err error) error {
	a.printf("%s: %v\n", what, err)
	return err
}

// ---- dashboard ----

func (a *App) showDashboard(ctx context.Context, limit int) error {
	recs, err := a.files.Recent(ctx, limit)
	if err != nil {
		return a.fail("Could not load files", err)
	}
	a.dashboard = recs

	if limit > 0 {
		a.printf("Recent files\n")
	} else {
		a.printf("All files\n")
	}
	if len(recs) == 0 {
		a.printf("  No files yet. Switch to 'upload' to add some.\n")
	} else {
		a.printRecords(recs, 1, -1)
		if limit > 0 && len(recs) == limit {
			a.printf("  Type 'more' to see all files.\n")
		}
	}

	st, err := a.files.Stats(ctx)
	if err != nil {
		a.log.Warn(ctx, "stats unavailable", "error", err)
		a.printf("Storage statistics unavailable.\n")
		return nil
	}
	a.printf("Storage: %d files, %s of %s used (%s plan)\n",
		st.Count, catalog.FormatSize(st.TotalBytes), catalog.FormatSize(st.QuotaBytes), st.Plan)
	return nil
}

// printRecords lists recs numbered from first; marked (when >= 0) is the
// index of the highlighted record.
func (a *App) printRecords(recs []catalog.FileRecord, first, marked int) {
	for i, r := range recs {
		mark := " "
		if i == marked {
			mark = ">"
		}
		a.printf("%s %2d. %s %-32s %10s  %s  %s\n", mark, first+i, kindIcon(r.Kind()), r.Name, r.Size,
			r.ModifiedDate.Local().Format("2006-01-02 15:04"), r.Type)
	}
}

// ---- search ----

func (a *App) openSearch(ctx context.Context) error {
	recs, err := a.files.Recent(ctx, 0)
	if err != nil {
		return a.fail("Could not load files", err)
	}
	a.search = searchState{all: recs, query: catalog.Query{Page: 1}}
	a.renderSearch()
	return nil
}

func (a *App) execSearch(cmd string, args []string) (bool, error) {
	q := a.search.query
	arg := strings.Join(args, " ")

	switch cmd {
	case "find":
		q.Term = arg
	case "type":
		q.Type = optionValue(arg)
	case "tag":
		q.Tag = optionValue(arg)
	case "date":
		r, err := catalog.ParseRecency(arg)
		if err != nil {
			return true, a.fail("Invalid date filter", err)
		}
		q.Recency = r
	case "kind":
		if v := optionValue(arg); v == "" {
			q.Kind = nil
		} else {
			k, ok := catalog.ParseKind(v)
			if !ok {
				return true, a.fail("Invalid kind", fmt.Errorf("%q is not one of %v", arg, catalog.Kinds()))
			}
			q.Kind = &k
		}
	case "page":
		n, err := strconv.Atoi(arg)
		if err != nil {
			return true, a.fail("Invalid page", err)
		}
		a.search.query.Page = n
		a.renderSearch()
		return true, nil
	case "clear":
		q = catalog.Query{}
	default:
		return false, nil
	}

	// any filter change starts over at page 1
	q.Page = 1
	a.search.query = q
	a.renderSearch()
	return true, nil
}

func optionValue(s string) string {
	if s == "all" {
		return ""
	}
	return s
}

func (a *App) renderSearch() {
	q := a.search.query
	matched := catalog.Filter(a.search.all, q, a.now())
	page := catalog.Paginate(matched, q.Page, catalog.ItemsPerPage)
	a.search.query.Page = page.Page

	if q.Active() {
		a.printf("Filters: %s\n", describeQuery(q))
	}
	if page.Total == 0 {
		if len(a.search.all) == 0 {
			a.printf("  No files yet.\n")
		} else {
			a.printf("  No files match your filters.\n")
		}
	} else {
		a.printRecords(page.Items, page.First, -1)
		a.printf("Showing %d-%d of %d, page %d of %d\n", page.First, page.Last, page.Total, page.Page, page.TotalPages)
	}

	if types := catalog.TypeOptions(a.search.all); len(types) > 0 {
		a.printf("Types: %s\n", strings.Join(types, ", "))
	}
	if tags := catalog.TagOptions(a.search.all); len(tags) > 0 {
		a.printf("Tags: %s\n", strings.Join(tags, ", "))
	}
}

func describeQuery(q catalog.Query) string {
	var parts []string
	if q.Term != "" {
		parts = append(parts, fmt.Sprintf("name~%q", q.Term))
	}
	if q.Type != "" {
		parts = append(parts, "type="+q.Type)
	}
	if q.Recency != catalog.RecencyAll {
		parts = append(parts, "date="+string(q.Recency))
	}
	if q.Tag != "" {
		parts = append(parts, "tag="+q.Tag)
	}
	if q.Kind != nil {
		parts = append(parts, "kind="+q.Kind.String())
	}
	return strings.Join(parts, " ")
}

// ---- file details ----

func (a *App) openDetails(ctx context.Context) error {
	recs, err := a.files.Recent(ctx, common.DetailsLimit)
	if err != nil {
		return a.fail("Could not load files", err)
	}
	a.details = detailsState{files: recs}
	if len(recs) == 0 {
		a.printf("No files to show.\n")
		return nil
	}
	a.enrichSelected(ctx)
	a.renderDetails()
	return nil
}

func (a *App) selectDetail(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return a.fail("Usage", fmt.Errorf("select <n>"))
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 || n > len(a.details.files) {
		return a.fail("Invalid selection", fmt.Errorf("choose 1..%d", len(a.details.files)))
	}
	a.details.selected = n - 1
	a.enrichSelected(ctx)
	a.renderDetails()
	return nil
}

func (a *App) enrichSelected(ctx context.Context) {
	i := a.details.selected
	a.details.files[i] = a.files.Enrich(ctx, a.details.files[i])
}

func (a *App) renderDetails() {
	a.printRecords(a.details.files, 1, a.details.selected)

	r := a.details.files[a.details.selected]
	a.printf("\n%s %s\n", kindIcon(r.Kind()), r.Name)
	a.printf("  Size:     %s\n", r.Size)
	a.printf("  Type:     %s (%s)\n", r.Type, r.Kind())
	a.printf("  Modified: %s\n", r.ModifiedDate.Local().Format("2006-01-02 15:04"))
	if len(r.Tags) > 0 {
		a.printf("  Tags:     %s\n", strings.Join(r.Tags, ", "))
	}
	summary := r.Summary
	if summary == "" {
		summary = "No summary yet."
	}
	a.printf("  Summary:  %s\n", summary)
	a.printf("Type 'url' for a preview link.\n")
}

func (a *App) printSignedURL(ctx context.Context) error {
	if len(a.details.files) == 0 {
		return a.fail("No file selected", fmt.Errorf("the list is empty"))
	}
	r := a.details.files[a.details.selected]
	u, err := a.files.SignedURL(ctx, r.ID)
	if err != nil {
		return a.fail("Could not create preview link", err)
	}
	a.printf("%s\n(valid for %d seconds)\n", u.URL, u.ExpiresIn)
	return nil
}

package console

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"crisiscorner/internal/app/ds"
)

const dateLayout = "2006-01-02 15:04"

var tabTitles = map[ds.Status]string{
	"":                 "All",
	ds.StatusPending:   "Pending",
	ds.StatusCompleted: "Completed",
	ds.StatusApproved:  "Approved",
	ds.StatusRejected:  "Rejected",
}

// Render печатает вкладки, таблицу заявок и пагинацию
func Render(w io.Writer, s State) error {
	var b strings.Builder

	if s.Err != "" {
		fmt.Fprintf(&b, "! %s (dismiss to hide)\n", s.Err)
	}

	writeTabs(&b, s)

	if s.Loading {
		b.WriteString("loading...\n")
	}

	if len(s.Records) == 0 && !s.Loading {
		b.WriteString("No requests found.\n")
	} else if len(s.Records) > 0 {
		tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "#\tSEL\tREQUESTOR\tITEM\tSTATUS\tCREATED\tEDITED\tID")
		for i, r := range s.Records {
			sel := "[ ]"
			if s.IsSelected(r.ID) {
				sel = "[x]"
			}
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				i+1, sel, r.RequestorName, r.ItemRequested, r.Status,
				formatDate(&r.CreatedDate), formatDate(r.LastEditedDate), r.ID)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	fmt.Fprintf(&b, "Page %d of %d (%d requests)", s.CurrentPage, max(s.Pagination.TotalPages, 1), s.Pagination.TotalCount)
	if n := len(s.Selected); n > 0 {
		fmt.Fprintf(&b, ", %d selected", n)
	}
	b.WriteString("\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func writeTabs(b *strings.Builder, s State) {
	tabs := append([]ds.Status{""}, ds.Statuses...)
	parts := make([]string, 0, len(tabs))
	for _, st := range tabs {
		n := s.Counts.Total
		if st != "" {
			n = s.Counts.Get(st)
		}
		title := fmt.Sprintf("%s (%d)", tabTitles[st], n)
		if st == s.ActiveStatus {
			title = "[" + title + "]"
		}
		parts = append(parts, title)
	}
	b.WriteString(strings.Join(parts, " | "))
	b.WriteString("\n")
}

func formatDate(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.UTC().Format(dateLayout)
}

package console

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"crisiscorner/internal/app/ds"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	edited := created.Add(90 * time.Minute)

	tests := []struct {
		name     string
		state    State
		contains []string
		absent   []string
	}{
		{
			name: "table with selection",
			state: State{
				CurrentPage:  1,
				ActiveStatus: ds.StatusPending,
				Selected:     []string{"b"},
				Counts:       ds.StatusCounts{Pending: 2, Approved: 1, Total: 3},
				Records: []ds.Request{
					{ID: "a", RequestorName: "Jane Doe", ItemRequested: "Blankets", CreatedDate: created, Status: ds.StatusPending},
					{ID: "b", RequestorName: "John Roe", ItemRequested: "Water", CreatedDate: created, LastEditedDate: &edited, Status: ds.StatusPending},
				},
				Pagination: ds.NewPagination(1, 6, 2),
			},
			contains: []string{
				"All (3) | [Pending (2)] | Completed (0) | Approved (1) | Rejected (0)",
				"REQUESTOR",
				"Jane Doe",
				"[x]",
				"2026-03-01 13:30",
				"Page 1 of 1 (2 requests), 1 selected",
			},
			absent: []string{"loading...", "No requests found."},
		},
		{
			name:     "empty listing",
			state:    State{CurrentPage: 1},
			contains: []string{"[All (0)]", "No requests found.", "Page 1 of 1 (0 requests)"},
			absent:   []string{"REQUESTOR"},
		},
		{
			name:     "loading with error banner",
			state:    State{Loading: true, CurrentPage: 1, Err: "Internal server error"},
			contains: []string{"! Internal server error (dismiss to hide)", "loading..."},
			absent:   []string{"No requests found."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Render(&buf, tt.state))

			out := buf.String()
			for _, want := range tt.contains {
				assert.Contains(t, out, want)
			}
			for _, unwanted := range tt.absent {
				assert.NotContains(t, out, unwanted)
			}
		})
	}
}

func TestRunREPL(t *testing.T) {
	c := newTestClient(t)
	seed(t, c)

	script := strings.Join([]string{
		"filter completed",
		"select 1",
		"batch-status rejected",
		"filter nope",
		"page 0",
		"prev",
		"filter all",
		"all",
		"delete",
		"n",
		"bogus",
		"quit",
		"filter pending",
	}, "\n")

	ctrl := NewController(c)
	var out bytes.Buffer
	require.NoError(t, RunREPL(context.Background(), ctrl, strings.NewReader(script), &out))

	text := out.String()
	assert.Contains(t, text, "[All (9)]")
	assert.Contains(t, text, "Rejected (1)")
	assert.Contains(t, text, `error: unknown status "nope"`)
	assert.Contains(t, text, `error: invalid page "0"`)
	assert.Contains(t, text, "error: already on the first page")
	assert.Contains(t, text, "Delete 6 requests? [y/N]")
	assert.Contains(t, text, `error: unknown command "bogus", type help`)

	s := ctrl.Snapshot()
	assert.Empty(t, s.ActiveStatus)
	assert.Len(t, s.Selected, 6)
	assert.Equal(t, int64(9), s.Counts.Total)
}

func TestResolveID(t *testing.T) {
	s := State{Records: []ds.Request{{ID: "a"}, {ID: "b"}}}

	assert.Equal(t, "b", resolveID(s, "2"))
	assert.Equal(t, "3", resolveID(s, "3"))
	assert.Equal(t, "abc", resolveID(s, "abc"))
}

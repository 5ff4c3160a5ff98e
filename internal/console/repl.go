package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"crisiscorner/internal/app/ds"
)

const prompt = "> "

const helpText = `commands:
  filter <all|pending|completed|approved|rejected>
  page <n> | next | prev
  select <row|id>          toggle selection
  all                      select all visible (again to clear)
  status <row|id> <status> change one request
  batch-status <status>    change selected requests
  delete                   delete selected requests
  refresh | dismiss | help | quit
`

var errQuit = errors.New("quit")

// RunREPL читает команды построчно и перерисовывает состояние после каждой.
// Ошибки API попадают в баннер состояния, ошибки ввода печатаются сразу.
func RunREPL(ctx context.Context, ctrl *Controller, in io.Reader, out io.Writer) error {
	_ = ctrl.Init(ctx)
	if err := Render(out, ctrl.Snapshot()); err != nil {
		return err
	}

	scanner := bufio.NewScanner(in)
	confirm := func(question string) bool {
		fmt.Fprintf(out, "%s [y/N] ", question)
		if !scanner.Scan() {
			return false
		}
		answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
		return answer == "y" || answer == "yes"
	}

	fmt.Fprint(out, prompt)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			fmt.Fprint(out, prompt)
			continue
		}

		err := execute(ctx, ctrl, strings.Fields(line), out, confirm)
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
		} else if err := Render(out, ctrl.Snapshot()); err != nil {
			return err
		}
		fmt.Fprint(out, prompt)
	}
	return scanner.Err()
}

func execute(ctx context.Context, ctrl *Controller, args []string, out io.Writer, confirm func(string) bool) error {
	s := ctrl.Snapshot()

	switch cmd := args[0]; cmd {
	case "quit", "exit":
		return errQuit
	case "help":
		_, err := io.WriteString(out, helpText)
		return err
	case "refresh":
		_ = ctrl.Refresh(ctx)
	case "dismiss":
		ctrl.DismissError()
	case "filter":
		if len(args) != 2 {
			return fmt.Errorf("usage: filter <all|status>")
		}
		status, err := parseTab(args[1])
		if err != nil {
			return err
		}
		_ = ctrl.SetFilter(ctx, status)
	case "page":
		if len(args) != 2 {
			return fmt.Errorf("usage: page <n>")
		}
		n, err := strconv.Atoi(args[1])
		if err != nil || n < 1 {
			return fmt.Errorf("invalid page %q", args[1])
		}
		_ = ctrl.SetPage(ctx, n)
	case "next":
		if s.CurrentPage >= s.Pagination.TotalPages {
			return fmt.Errorf("already on the last page")
		}
		_ = ctrl.SetPage(ctx, s.CurrentPage+1)
	case "prev":
		if s.CurrentPage <= 1 {
			return fmt.Errorf("already on the first page")
		}
		_ = ctrl.SetPage(ctx, s.CurrentPage-1)
	case "select":
		if len(args) != 2 {
			return fmt.Errorf("usage: select <row|id>")
		}
		ctrl.ToggleSelect(resolveID(s, args[1]))
	case "all":
		ctrl.SelectAll()
	case "status":
		if len(args) != 3 {
			return fmt.Errorf("usage: status <row|id> <status>")
		}
		status, ok := ds.ParseStatus(args[2])
		if !ok {
			return fmt.Errorf("unknown status %q", args[2])
		}
		_ = ctrl.ChangeStatus(ctx, resolveID(s, args[1]), status)
	case "batch-status":
		if len(args) != 2 {
			return fmt.Errorf("usage: batch-status <status>")
		}
		status, ok := ds.ParseStatus(args[1])
		if !ok {
			return fmt.Errorf("unknown status %q", args[1])
		}
		_ = ctrl.BatchUpdate(ctx, status)
	case "delete":
		if len(s.Selected) == 0 {
			return fmt.Errorf("nothing selected")
		}
		if !confirm(fmt.Sprintf("Delete %d requests?", len(s.Selected))) {
			return nil
		}
		_ = ctrl.BatchDelete(ctx)
	default:
		return fmt.Errorf("unknown command %q, type help", cmd)
	}
	return nil
}

func parseTab(arg string) (ds.Status, error) {
	if arg == "all" {
		return "", nil
	}
	status, ok := ds.ParseStatus(arg)
	if !ok {
		return "", fmt.Errorf("unknown status %q", arg)
	}
	return status, nil
}

// resolveID номер строки на странице (с 1) или id как есть
func resolveID(s State, arg string) string {
	if n, err := strconv.Atoi(arg); err == nil && n >= 1 && n <= len(s.Records) {
		return s.Records[n-1].ID
	}
	return arg
}

package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/stockroom/internal/placement"
	"github.com/mesh-intelligence/stockroom/pkg/types"
)

const shellHelp = `commands:
  add <id> <name> <qty> normal
  add <id> <name> <qty> fragile <dd-mm-yyyy> <max_row>
  add <id> <name> <qty> oversized <span>
  remove <id>
  list                  items in alphabetical order
  get <id>
  find <name>
  positions <id>
  expired <dd-mm-yyyy>
  layout
  stats
  help
  quit`

// demoItems is the sample stock loaded by shell --demo.
func demoItems() []types.Item {
	return []types.Item{
		{ID: 1, Name: "Item1", Quantity: 1, Quality: types.Normal{}},
		{ID: 2, Name: "Item2", Quantity: 1, Quality: types.Oversized{Span: 3}},
		{ID: 3, Name: "Item3", Quantity: 1, Quality: types.Normal{}},
		{ID: 4, Name: "Item4", Quantity: 1, Quality: types.Oversized{Span: 3}},
		{ID: 5, Name: "Item5", Quantity: 1, Quality: types.Fragile{
			Expiration: types.Date{Day: 1, Month: 1, Year: 1999},
			MaxRow:     2,
		}},
	}
}

func newShellCmd(a *app) *cobra.Command {
	var demo bool
	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Run an interactive session reading commands from stdin",
		Long:  "Shell reads one command per line from stdin until quit or end of input.\n\n" + shellHelp,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runShell(cmd, demo)
		},
	}
	cmd.Flags().BoolVar(&demo, "demo", false, "start with a few sample items")
	return cmd
}

func (a *app) runShell(cmd *cobra.Command, demo bool) (err error) {
	s, err := a.openSession()
	if err != nil {
		return err
	}
	defer func() {
		if cerr := s.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	out := printer{w: cmd.OutOrStdout(), jsonMode: a.flags.jsonMode}
	if demo {
		for _, it := range demoItems() {
			if aerr := s.engine.Add(it); aerr != nil {
				return sysErrorf("load demo stock: %w", aerr)
			}
		}
		if err := out.layout(s.engine.Layout()); err != nil {
			return err
		}
	}

	sh := &shell{engine: s.engine, out: out}
	scanner := bufio.NewScanner(cmd.InOrStdin())
	for scanner.Scan() {
		quit, err := sh.exec(scanner.Text())
		if err != nil {
			if perr := out.failure(err); perr != nil {
				return sysErrorf("write output: %w", perr)
			}
		}
		if quit {
			return nil
		}
	}
	if err := scanner.Err(); err != nil {
		return sysErrorf("read input: %w", err)
	}
	return nil
}

// shell executes single command lines against an engine.
type shell struct {
	engine *placement.Engine
	out    printer
}

// exec runs one line. It reports whether the session should end. Errors
// are per-line and never end the session.
func (sh *shell) exec(line string) (quit bool, err error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}
	name, args := strings.ToLower(fields[0]), fields[1:]

	switch name {
	case "quit", "exit":
		return true, nil
	case "help":
		return false, sh.out.message(shellHelp)
	case "add":
		it, err := parseItemArgs(args)
		if err != nil {
			return false, err
		}
		if err := sh.engine.Add(it); err != nil {
			return false, err
		}
		pos, _ := sh.engine.PositionsOf(it.ID)
		return false, sh.out.message(fmt.Sprintf("added %d at %s", it.ID, pos[0]))
	case "remove":
		id, err := oneID(args)
		if err != nil {
			return false, err
		}
		if err := sh.engine.Remove(id); err != nil {
			return false, err
		}
		return false, sh.out.message(fmt.Sprintf("removed %d", id))
	case "list":
		return false, sh.out.items(sh.engine.Alphabetical(), "The stockroom is empty")
	case "get":
		id, err := oneID(args)
		if err != nil {
			return false, err
		}
		it, ok := sh.engine.FindByID(id)
		if !ok {
			return false, sh.out.message("No items correspond to provided ID")
		}
		return false, sh.out.item(it)
	case "find":
		if len(args) != 1 {
			return false, fmt.Errorf("usage: find <name>")
		}
		it, ok := sh.engine.FindByName(args[0])
		if !ok {
			return false, sh.out.message("No items correspond to provided Name")
		}
		return false, sh.out.item(it)
	case "positions":
		id, err := oneID(args)
		if err != nil {
			return false, err
		}
		pos, ok := sh.engine.PositionsOf(id)
		if !ok {
			return false, sh.out.message("No items correspond to provided ID")
		}
		return false, sh.out.positions(pos)
	case "expired":
		if len(args) != 1 {
			return false, fmt.Errorf("usage: expired <dd-mm-yyyy>")
		}
		ref, err := types.ParseDate(args[0])
		if err != nil {
			return false, err
		}
		return false, sh.out.items(sh.engine.Expired(ref), "No expired items")
	case "layout":
		return false, sh.out.layout(sh.engine.Layout())
	case "stats":
		return false, sh.out.stats(sh.engine.Stats())
	default:
		return false, fmt.Errorf("%w %q (try help)", ErrUnknownCommand, fields[0])
	}
}

func oneID(args []string) (uint32, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("expected exactly one id, got %d arguments", len(args))
	}
	return parseID(args[0])
}

package cli

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
)

// runMenu drives the interactive mode. Every choice routes through the
// same dispatch table as direct invocation, so there is no second copy
// of the argument validation.
func (a *App) runMenu(ctx context.Context, _ []string) error {
	scanner := bufio.NewScanner(a.in)
	items := a.menuItems()

	for {
		fmt.Fprintln(a.out)
		color.New(color.FgCyan).Fprintln(a.out, "=== tune432 ===")
		for i, cmd := range items {
			fmt.Fprintf(a.out, "  %d) %s\n", i+1, cmd.summary)
		}
		fmt.Fprintln(a.out, "  q) Quit")
		fmt.Fprint(a.out, "> ")

		if !scanner.Scan() {
			return scanner.Err()
		}
		choice := strings.TrimSpace(scanner.Text())
		if choice == "q" || choice == "quit" || choice == "exit" {
			return nil
		}

		idx, err := strconv.Atoi(choice)
		if err != nil || idx < 1 || idx > len(items) {
			fmt.Fprintf(a.out, "Invalid choice: %s\n", choice)
			continue
		}
		cmd := items[idx-1]

		args, aborted := a.promptArgs(scanner, cmd)
		if aborted {
			continue
		}
		if len(args) < cmd.minArgs() {
			fmt.Fprintf(a.out, "Usage: tune432 %s\n", cmd.usage())
			continue
		}
		if err := cmd.run(ctx, args); err != nil {
			color.New(color.FgRed).Fprintf(a.out, "Error: %v\n", err)
		}
	}
}

// menuItems is the dispatch table minus the entries that make no sense
// inside the menu itself.
func (a *App) menuItems() []command {
	var items []command
	for _, cmd := range a.commands() {
		if cmd.name == "menu" || cmd.name == "help" {
			continue
		}
		items = append(items, cmd)
	}
	return items
}

// promptArgs asks for each positional argument. Optional arguments may
// be left blank; a blank required argument aborts back to the menu.
func (a *App) promptArgs(scanner *bufio.Scanner, cmd command) (args []string, aborted bool) {
	for _, arg := range cmd.args {
		optional := strings.HasSuffix(arg, "?")
		label := strings.TrimSuffix(arg, "?")
		if optional {
			fmt.Fprintf(a.out, "%s (optional): ", label)
		} else {
			fmt.Fprintf(a.out, "%s: ", label)
		}

		if !scanner.Scan() {
			return nil, true
		}
		value := strings.TrimSpace(scanner.Text())
		if value == "" {
			if optional {
				break
			}
			fmt.Fprintf(a.out, "%s is required\n", label)
			return nil, true
		}
		args = append(args, value)
	}
	return args, false
}

package cli

import (
	"context"
	"errors"
	"sort"
	"strings"
)

type command func(ctx context.Context, args []string) error

var usages = map[string]string{
	"login":    "login <email> <password>",
	"logout":   "logout",
	"whoami":   "whoami",
	"register": "register -email <email> -password <password> -name <full name> [-phone <phone>]",
	"items":    "items list | get <id> | matches <id> | delete <id> | create -title <title> -status lost|found [flags]",
	"messages": "messages list | send -to <user id> -item <item id> -content <text> | read <id>",
	"admin":    "admin stats | commissions | commission <item id> <amount> | users",
	"report":   "report -name <name> -phone <phone> -title <title> -status lost|found [location flags]",
	"track":    "track <code>",
	"pricing":  "pricing [category]",
	"lang":     "lang [en|rw]",
	"t":        "t <key> [name=value...]",
}

// Run dispatches args[0] to its command and returns the process exit code.
func (h *Handler) Run(ctx context.Context, args []string) int {
	if len(args) == 0 {
		h.printUsage()
		return 2
	}

	commands := map[string]command{
		"login":    h.login,
		"logout":   h.logout,
		"whoami":   h.whoami,
		"register": h.register,
		"items":    h.items,
		"messages": h.messages,
		"admin":    h.admin,
		"report":   h.report,
		"track":    h.track,
		"pricing":  h.pricing,
		"lang":     h.lang,
		"t":        h.translate,
	}

	name := args[0]
	cmd, ok := commands[name]
	if !ok {
		h.errorf("cli.unknownCommand", map[string]any{"command": name})
		h.printUsage()
		return 2
	}

	if err := cmd(ctx, args[1:]); err != nil {
		var uerr *usageError
		if errors.As(err, &uerr) {
			h.errorf("cli.usage", map[string]any{"usage": "ishakiro " + usages[uerr.command]})
			return 2
		}
		h.fail(err)
		return 1
	}
	return 0
}

func (h *Handler) printUsage() {
	names := make([]string, 0, len(usages))
	for name := range usages {
		names = append(names, name)
	}
	sort.Strings(names)

	lines := make([]string, 0, len(names))
	for _, name := range names {
		lines = append(lines, "  ishakiro "+usages[name])
	}
	h.errorf("cli.usage", map[string]any{"usage": "\n" + strings.Join(lines, "\n")})
}

// usageError reports malformed arguments for a command.
type usageError struct{ command string }

func (e *usageError) Error() string { return "usage: " + usages[e.command] }

func usage(command string) error { return &usageError{command: command} }

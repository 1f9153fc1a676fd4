package cli

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"ishakiro/internal/domain"
	"ishakiro/internal/domain/entities"
	"ishakiro/pkg/tz"
)

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func parseID(command, raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, usage(command)
	}
	return id, nil
}

func (h *Handler) login(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return usage("login")
	}
	resp, err := h.auth.Login(ctx, args[0], args[1])
	if err != nil {
		// a response means the login succeeded but the session was not persisted
		if resp == nil {
			return err
		}
		h.fail(err)
	}
	h.printf("cli.loggedIn", map[string]any{"user": h.auth.Session().User.Email()})
	return nil
}

func (h *Handler) logout(ctx context.Context, args []string) error {
	if len(args) != 0 {
		return usage("logout")
	}
	if err := h.auth.Logout(ctx); err != nil {
		return err
	}
	h.printf("cli.loggedOut", nil)
	return nil
}

func (h *Handler) whoami(_ context.Context, args []string) error {
	if len(args) != 0 {
		return usage("whoami")
	}
	sess := h.auth.Session()
	if !sess.IsAuthenticated {
		h.printf("cli.notLoggedIn", nil)
		return nil
	}
	if sess.User == nil {
		h.printf("cli.loggedIn", map[string]any{"user": ""})
		return nil
	}
	raw, err := json.Marshal(sess.User)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	return h.printJSON(raw)
}

func (h *Handler) register(ctx context.Context, args []string) error {
	var reg entities.Registration
	fs := newFlagSet("register")
	fs.StringVar(&reg.Email, "email", "", "email address")
	fs.StringVar(&reg.Password, "password", "", "password")
	fs.StringVar(&reg.FullName, "name", "", "full name")
	fs.StringVar(&reg.Phone, "phone", "", "phone number")
	if err := fs.Parse(args); err != nil || fs.NArg() != 0 || reg.Email == "" || reg.Password == "" || reg.FullName == "" {
		return usage("register")
	}
	raw, err := h.client.Auth.Register(ctx, reg)
	if err != nil {
		return err
	}
	return h.printJSON(raw)
}

func (h *Handler) items(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usage("items")
	}
	sub, rest := args[0], args[1:]

	if sub == "create" {
		return h.createItem(ctx, rest)
	}
	if sub == "list" {
		if len(rest) != 0 {
			return usage("items")
		}
		return h.print(h.client.Items.List(ctx))
	}

	if len(rest) != 1 {
		return usage("items")
	}
	id, err := parseID("items", rest[0])
	if err != nil {
		return err
	}
	switch sub {
	case "get":
		return h.print(h.client.Items.Get(ctx, id))
	case "matches":
		return h.print(h.client.Items.Matches(ctx, id))
	case "delete":
		return h.print(h.client.Items.Delete(ctx, id))
	default:
		return usage("items")
	}
}

func (h *Handler) createItem(ctx context.Context, args []string) error {
	var (
		item entities.NewItem
		date string
	)
	fs := newFlagSet("items create")
	fs.StringVar(&item.Title, "title", "", "item title")
	fs.StringVar(&item.Description, "description", "", "item description")
	fs.StringVar(&item.Category, "category", "", "item category")
	fs.StringVar(&item.Status, "status", "", "lost or found")
	fs.StringVar(&item.LocationName, "location", "", "where it was lost or found")
	fs.Float64Var(&item.Latitude, "lat", 0, "latitude")
	fs.Float64Var(&item.Longitude, "lng", 0, "longitude")
	fs.StringVar(&date, "date", "", "date lost or found (YYYY-MM-DD or DD/MM/YYYY)")
	if err := fs.Parse(args); err != nil || fs.NArg() != 0 || item.Title == "" || !validStatus(item.Status) {
		return usage("items")
	}
	if date != "" {
		d, err := tz.ParseDate(date, time.Now())
		if err != nil {
			fmt.Fprintln(h.errOut, err)
			return usage("items")
		}
		item.DateLostFound = &d
	}
	return h.print(h.client.Items.Create(ctx, item))
}

func (h *Handler) messages(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usage("messages")
	}
	switch args[0] {
	case "list":
		if len(args) != 1 {
			return usage("messages")
		}
		return h.print(h.client.Messages.List(ctx))
	case "send":
		var msg entities.NewMessage
		fs := newFlagSet("messages send")
		fs.Int64Var(&msg.ReceiverID, "to", 0, "receiver user id")
		fs.Int64Var(&msg.ItemID, "item", 0, "item id")
		fs.StringVar(&msg.Content, "content", "", "message text")
		if err := fs.Parse(args[1:]); err != nil || fs.NArg() != 0 || msg.ReceiverID <= 0 || msg.ItemID <= 0 || strings.TrimSpace(msg.Content) == "" {
			return usage("messages")
		}
		return h.print(h.client.Messages.Send(ctx, msg))
	case "read":
		if len(args) != 2 {
			return usage("messages")
		}
		id, err := parseID("messages", args[1])
		if err != nil {
			return err
		}
		return h.print(h.client.Messages.MarkRead(ctx, id))
	default:
		return usage("messages")
	}
}

func (h *Handler) admin(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usage("admin")
	}
	switch {
	case args[0] == "stats" && len(args) == 1:
		return h.print(h.client.Admin.Stats(ctx))
	case args[0] == "commissions" && len(args) == 1:
		return h.print(h.client.Admin.Commissions(ctx))
	case args[0] == "users" && len(args) == 1:
		return h.print(h.client.Admin.Users(ctx))
	case args[0] == "commission" && len(args) == 3:
		itemID, err := parseID("admin", args[1])
		if err != nil {
			return err
		}
		amount, err := strconv.ParseFloat(args[2], 64)
		if err != nil || amount < 0 {
			return usage("admin")
		}
		return h.print(h.client.Admin.CreateCommission(ctx, itemID, amount))
	default:
		return usage("admin")
	}
}

func (h *Handler) report(ctx context.Context, args []string) error {
	var r entities.AnonymousReport
	fs := newFlagSet("report")
	fs.StringVar(&r.ReporterName, "name", "", "your name")
	fs.StringVar(&r.ReporterPhone, "phone", "", "your phone number")
	fs.StringVar(&r.Title, "title", "", "item title")
	fs.StringVar(&r.Description, "description", "", "item description")
	fs.StringVar(&r.Category, "category", "", "item category")
	fs.StringVar(&r.Status, "status", "", "lost or found")
	fs.StringVar(&r.Location.Province, "province", "", "province")
	fs.StringVar(&r.Location.District, "district", "", "district")
	fs.StringVar(&r.Location.Sector, "sector", "", "sector")
	fs.StringVar(&r.Location.Cell, "cell", "", "cell")
	fs.StringVar(&r.Location.Village, "village", "", "village")
	fs.StringVar(&r.Location.Isibo, "isibo", "", "isibo")
	fs.StringVar(&r.ImageURL, "image", "", "image URL")
	if err := fs.Parse(args); err != nil || fs.NArg() != 0 || r.ReporterName == "" || r.ReporterPhone == "" || r.Title == "" || !validStatus(r.Status) {
		return usage("report")
	}
	return h.print(h.client.Anonymous.Report(ctx, r))
}

func (h *Handler) track(ctx context.Context, args []string) error {
	if len(args) != 1 || strings.TrimSpace(args[0]) == "" {
		return usage("track")
	}
	return h.print(h.client.Anonymous.Track(ctx, strings.TrimSpace(args[0])))
}

func (h *Handler) pricing(ctx context.Context, args []string) error {
	switch len(args) {
	case 0:
		return h.print(h.client.Anonymous.Pricing(ctx))
	case 1:
		return h.print(h.client.Anonymous.CategoryPricing(ctx, args[0]))
	default:
		return usage("pricing")
	}
}

func (h *Handler) lang(ctx context.Context, args []string) error {
	switch len(args) {
	case 0:
		fmt.Fprintln(h.out, h.locale.Language())
		return nil
	case 1:
		err := h.locale.SwitchLanguage(ctx, args[0])
		if errors.Is(err, domain.ErrUnknownLanguage) {
			h.errorf("cli.unknownLanguage", map[string]any{"language": args[0]})
			return usage("lang")
		}
		if err != nil {
			return err
		}
		h.printf("cli.languageSet", map[string]any{"language": h.locale.Language()})
		return nil
	default:
		return usage("lang")
	}
}

func (h *Handler) translate(_ context.Context, args []string) error {
	if len(args) == 0 {
		return usage("t")
	}
	params := make(map[string]any, len(args)-1)
	for _, pair := range args[1:] {
		name, value, ok := strings.Cut(pair, "=")
		if !ok || name == "" {
			return usage("t")
		}
		params[name] = value
	}
	fmt.Fprintln(h.out, h.locale.T(args[0], params))
	return nil
}

// print writes the response of a backend call or returns its error.
func (h *Handler) print(raw json.RawMessage, err error) error {
	if err != nil {
		return err
	}
	return h.printJSON(raw)
}

func validStatus(status string) bool {
	return status == entities.StatusLost || status == entities.StatusFound
}

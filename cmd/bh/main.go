// Command bh is a CLI client for the BookHub booking API.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/bookhub/bookhub/internal/api"
	"github.com/bookhub/bookhub/internal/config"
	"github.com/bookhub/bookhub/internal/errs"
	"github.com/bookhub/bookhub/internal/guard"
	"github.com/bookhub/bookhub/internal/model"
	"github.com/bookhub/bookhub/internal/service"
	"github.com/bookhub/bookhub/internal/session"
)

// ---- wiring ----

// app assembles the client stack: config, HTTP client, session and guard.
type app struct {
	client  *api.Client
	session *session.Store
	guard   *guard.Guard
}

func newApp(ctx context.Context, base string, timeout time.Duration) *app {
	cfg := config.Load()
	if base != "" {
		cfg.BaseURL = base
	}
	if timeout > 0 {
		cfg.Timeout = timeout
	}
	client := api.New(cfg)
	sess := session.New(client, session.NewFileTokenStore())
	_ = sess.Initialize(ctx) // absent token just settles the session anonymous
	return &app{client: client, session: sess, guard: guard.New(sess)}
}

// requireView runs the admission check a protected view would run. Denials
// point at the public entry route rather than leaking why.
func (a *app) requireView(view string) {
	switch d := a.guard.CheckView(view); d {
	case guard.Admitted:
	case guard.DeniedUnauthenticated:
		fmt.Fprintf(os.Stderr, "login required (see: bh login), continue at %s\n", guard.Redirect(d))
		os.Exit(1)
	default:
		fmt.Fprintf(os.Stderr, "your role cannot open %q, continue at %s\n", view, guard.Redirect(d))
		os.Exit(1)
	}
}

// ---- helpers ----

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, errs.UserMessage(err))
	os.Exit(1)
}

func usage() {
	fmt.Fprintf(os.Stderr, `bh CLI
Usage:
  bh [-base URL] [-timeout dur] <cmd> [args]

Commands:
  version
  register       -first F -last L -email E -password P -confirm P [-phone N] [-role client|store_manager]
  login          -email E -password P                  (saves token)
  logout
  whoami
  stores                                               (public listing)
  store          -slug SLUG
  store-services -store ID|SLUG
  book           -store ID -service ID -date YYYY-MM-DD -time HH:MM:SS [-persons N]
  bookings
  cancel         -id ID
  confirm        -id ID                                (manager/admin)
  dashboard      [-days N]
  analytics      [-days N]                             (manager/admin)
  services                                             (manager: own store)
  my-store                                             (manager)
  subscription                                         (manager/admin: plan tiers)
  profile        [-first F] [-last L] [-phone N]
  notifications
  users                                                (admin)
`)
	os.Exit(2)
}

// ---- main ----

var (
	version   = "dev"
	buildDate = "unknown"
)

// main dispatches subcommands over the shared session-aware client.
func main() {
	base := flag.String("base", "", "API base URL (default from env)")
	timeout := flag.Duration("timeout", 0, "per-request timeout")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() < 1 {
		usage()
	}
	cmd := flag.Arg(0)
	args := flag.Args()[1:]

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if cmd == "version" {
		fmt.Printf("bh %s (%s)\n", version, buildDate)
		return
	}

	a := newApp(ctx, *base, *timeout)

	switch cmd {

	case "register":
		fs := flag.NewFlagSet("register", flag.ExitOnError)
		first := fs.String("first", "", "first name")
		last := fs.String("last", "", "last name")
		email := fs.String("email", "", "email")
		password := fs.String("password", "", "password")
		confirm := fs.String("confirm", "", "password confirmation")
		phone := fs.String("phone", "", "phone number")
		role := fs.String("role", "", "account role")
		_ = fs.Parse(args)

		reg := model.Registration{
			FirstName:   *first,
			LastName:    *last,
			Email:       *email,
			Password:    *password,
			PhoneNumber: *phone,
			Role:        model.Role(*role),
		}
		if err := a.session.Register(ctx, reg, *confirm); err != nil {
			fail(err)
		}
		printJSON(a.session.User())

	case "login":
		fs := flag.NewFlagSet("login", flag.ExitOnError)
		email := fs.String("email", "", "email")
		password := fs.String("password", "", "password")
		_ = fs.Parse(args)

		if err := a.session.Login(ctx, *email, *password); err != nil {
			fail(err)
		}
		fmt.Println("ok")

	case "logout":
		a.session.Logout()
		fmt.Println("ok")

	case "whoami":
		u := a.session.User()
		if u == nil {
			fmt.Println("anonymous")
			return
		}
		printJSON(u)

	case "stores":
		out, err := service.NewStores(a.client).List(ctx)
		if err != nil {
			fail(err)
		}
		printJSON(out)

	case "store":
		fs := flag.NewFlagSet("store", flag.ExitOnError)
		slug := fs.String("slug", "", "store slug")
		_ = fs.Parse(args)
		if *slug == "" {
			fmt.Fprintln(os.Stderr, "need -slug")
			os.Exit(1)
		}
		out, err := service.NewStores(a.client).GetBySlug(ctx, *slug)
		if err != nil {
			fail(err)
		}
		printJSON(out)

	case "store-services":
		fs := flag.NewFlagSet("store-services", flag.ExitOnError)
		store := fs.String("store", "", "store id or slug")
		_ = fs.Parse(args)
		if *store == "" {
			fmt.Fprintln(os.Stderr, "need -store")
			os.Exit(1)
		}
		out, err := service.NewCatalog(a.client).ListByStore(ctx, *store)
		if err != nil {
			fail(err)
		}
		printJSON(out)

	case "book":
		a.requireView(guard.ViewBookings)
		fs := flag.NewFlagSet("book", flag.ExitOnError)
		store := fs.String("store", "", "store id")
		svc := fs.String("service", "", "service id")
		date := fs.String("date", "", "booking date YYYY-MM-DD")
		start := fs.String("time", "", "start time HH:MM:SS")
		persons := fs.Int("persons", 1, "party size")
		_ = fs.Parse(args)
		if *store == "" || *svc == "" || *date == "" || *start == "" {
			fmt.Fprintln(os.Stderr, "need -store -service -date -time")
			os.Exit(1)
		}
		out, err := service.NewBookings(a.client).Create(ctx, service.NewBooking{
			StoreID:         *store,
			ServiceID:       *svc,
			BookingDate:     *date,
			StartTime:       *start,
			NumberOfPersons: *persons,
		})
		if err != nil {
			fail(err)
		}
		printJSON(out)

	case "bookings":
		a.requireView(guard.ViewBookings)
		out, err := service.NewBookings(a.client).List(ctx)
		if err != nil {
			fail(err)
		}
		printJSON(out)

	case "cancel":
		a.requireView(guard.ViewBookings)
		fs := flag.NewFlagSet("cancel", flag.ExitOnError)
		id := fs.String("id", "", "booking id")
		_ = fs.Parse(args)
		if *id == "" {
			fmt.Fprintln(os.Stderr, "need -id")
			os.Exit(1)
		}
		out, err := service.NewBookings(a.client).Cancel(ctx, *id)
		if err != nil {
			fail(err)
		}
		printJSON(out)

	case "confirm":
		a.requireView(guard.ViewBookings)
		fs := flag.NewFlagSet("confirm", flag.ExitOnError)
		id := fs.String("id", "", "booking id")
		_ = fs.Parse(args)
		if *id == "" {
			fmt.Fprintln(os.Stderr, "need -id")
			os.Exit(1)
		}
		out, err := service.NewBookings(a.client).Confirm(ctx, *id)
		if err != nil {
			fail(err)
		}
		printJSON(out)

	case "dashboard":
		a.requireView(guard.ViewDashboard)
		fs := flag.NewFlagSet("dashboard", flag.ExitOnError)
		days := fs.Int("days", 30, "period in days")
		_ = fs.Parse(args)
		out, err := service.NewDashboard(a.client).Stats(ctx, *days)
		if err != nil {
			fail(err)
		}
		printJSON(out)

	case "analytics":
		a.requireView(guard.ViewAnalytics)
		fs := flag.NewFlagSet("analytics", flag.ExitOnError)
		days := fs.Int("days", 30, "period in days")
		_ = fs.Parse(args)
		d := service.NewDashboard(a.client)
		bookings, err := d.BookingAnalytics(ctx, *days)
		if err != nil {
			fail(err)
		}
		revenue, err := d.RevenueAnalytics(ctx, *days)
		if err != nil {
			fail(err)
		}
		printJSON(map[string]any{"bookings": bookings, "revenue": revenue})

	case "services":
		a.requireView(guard.ViewServices)
		st, err := service.NewStores(a.client).Mine(ctx)
		if err != nil {
			fail(err)
		}
		out, err := service.NewCatalog(a.client).ListByStore(ctx, st.ID)
		if err != nil {
			fail(err)
		}
		printJSON(out)

	case "subscription":
		a.requireView(guard.ViewSubscription)
		out, err := service.NewSubscriptions(a.client).Plans(ctx)
		if err != nil {
			fail(err)
		}
		printJSON(out)

	case "my-store":
		a.requireView(guard.ViewStore)
		out, err := service.NewStores(a.client).Mine(ctx)
		if err != nil {
			fail(err)
		}
		printJSON(out)

	case "profile":
		a.requireView(guard.ViewProfile)
		fs := flag.NewFlagSet("profile", flag.ExitOnError)
		first := fs.String("first", "", "first name")
		last := fs.String("last", "", "last name")
		phone := fs.String("phone", "", "phone number")
		_ = fs.Parse(args)

		u := a.session.User()
		if *first == "" && *last == "" && *phone == "" {
			printJSON(u)
			return
		}
		updated, err := service.NewUsers(a.client).Update(ctx, u.ID, service.ProfileUpdate{
			FirstName:   *first,
			LastName:    *last,
			PhoneNumber: *phone,
		})
		if err != nil {
			fail(err)
		}
		a.session.UpdateProfile(*updated)
		printJSON(updated)

	case "notifications":
		a.requireView(guard.ViewBookings)
		out, err := service.NewNotifications(a.client).List(ctx)
		if err != nil {
			fail(err)
		}
		printJSON(out)

	case "users":
		a.requireView(guard.ViewAdmin)
		out, err := service.NewUsers(a.client).List(ctx)
		if err != nil {
			fail(err)
		}
		printJSON(out)

	default:
		usage()
	}
}

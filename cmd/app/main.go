package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/storefront/core/internal/application/session"
	"github.com/storefront/core/internal/application/state"
	"github.com/storefront/core/internal/domain/identity"
	"github.com/storefront/core/internal/infrastructure/config"
	"github.com/storefront/core/internal/infrastructure/event"
	"github.com/storefront/core/internal/infrastructure/logger"
	"github.com/storefront/core/internal/infrastructure/storage"
	"github.com/storefront/core/internal/infrastructure/timer"
	"github.com/storefront/core/internal/interfaces/router"
	"go.uber.org/zap"
)

// app wires the storefront core together: storage, state, session and the
// router with its role-namespaced route table.
type app struct {
	cfg      *config.Config
	logger   *zap.Logger
	state    *state.Store
	session  *session.Service
	router   *router.Router
	viewport *consoleViewport
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	store, err := openStorage(cfg)
	if err != nil {
		log.Fatal("failed to open storage", zap.Error(err))
	}
	defer func() { _ = store.Close() }()

	a := bootstrap(cfg, log, store)
	defer a.state.Close()

	a.run(os.Stdin)
}

func openStorage(cfg *config.Config) (storage.Store, error) {
	if cfg.Storage.Driver == "memory" {
		return storage.NewMemory(), nil
	}
	return storage.OpenSQLite(cfg.Storage.Path)
}

// bootstrap builds every service and performs the startup sequence: state
// load, role restore from session, route table registration, initial
// dispatch.
func bootstrap(cfg *config.Config, log *zap.Logger, store storage.Store) *app {
	bus := event.NewInMemoryEventBus(log)
	jar := storage.NewCookieJar(store, storage.KeyCookies, log)

	st := state.New(store, log, timer.NewReal(), cfg.Notifications.TTL)
	st.Init()

	sess := session.New(store, jar, log, builtinAccounts(cfg), cfg.Session.CookieTTL)
	sess.Init()

	// Restore the role from whichever session source answers
	if us := sess.UserSession(); us != nil {
		role := us.Role
		st.Apply(state.Patch{UserRole: &role})
	}

	a := &app{
		cfg:      cfg,
		logger:   log,
		state:    st,
		session:  sess,
		viewport: newConsoleViewport(os.Stdout),
	}
	st.SetDisplayHook(a.viewport.ShowNotification)

	table, err := router.NewTable(a.buildRoutes())
	if err != nil {
		log.Fatal("invalid route table", zap.Error(err))
	}
	loc := router.NewLocation(bus, "")
	a.router = router.New(table, loc, bus, log, a.viewport)
	a.router.Init()

	return a
}

func builtinAccounts(cfg *config.Config) []identity.BuiltinAccount {
	return []identity.BuiltinAccount{
		{
			Email:       cfg.Accounts.Admin.Email,
			Password:    cfg.Accounts.Admin.Password,
			Role:        identity.RoleAdmin,
			DisplayName: cfg.Accounts.Admin.DisplayName,
		},
		{
			Email:       cfg.Accounts.Warehouse.Email,
			Password:    cfg.Accounts.Warehouse.Password,
			Role:        identity.RoleWarehouse,
			DisplayName: cfg.Accounts.Warehouse.DisplayName,
		},
	}
}

// run drives the interaction loop: each command is the analog of a click
// or form submit in the storefront.
func (a *app) run(in *os.File) {
	fmt.Println("storefront demo - commands: go <path> | back | login <email> <password> | register <email> <password> <role> | add <product> [qty] | remove <product> | wish <product> | cart | logout | quit")

	scanner := bufio.NewScanner(in)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "go":
			if len(fields) > 1 {
				a.router.Navigate(fields[1], false)
			}
		case "back":
			a.router.Back()
		case "login":
			if len(fields) < 3 {
				fmt.Println("usage: login <email> <password>")
				continue
			}
			res := a.session.Login(fields[1], fields[2])
			if !res.Success {
				a.state.Notify(res.Message, state.NotificationError)
				continue
			}
			a.state.SetUser(res.Role, res.User)
			a.router.Navigate("/", false)
		case "register":
			if len(fields) < 4 {
				fmt.Println("usage: register <email> <password> <role>")
				continue
			}
			res := a.session.Register(session.RegisterInput{
				Email:    fields[1],
				Password: fields[2],
				Role:     identity.Role(fields[3]),
			})
			if !res.Success {
				a.state.Notify(res.Message, state.NotificationError)
				continue
			}
			a.state.SetUser(res.Role, res.User)
			a.router.Navigate("/", false)
		case "add":
			if len(fields) < 2 {
				continue
			}
			p, ok := findProduct(fields[1])
			if !ok {
				fmt.Println("unknown product:", fields[1])
				continue
			}
			qty := 1
			if len(fields) > 2 {
				if n, err := strconv.Atoi(fields[2]); err == nil {
					qty = n
				}
			}
			if err := a.state.AddToCart(p, qty); err != nil {
				fmt.Println(err)
			}
		case "remove":
			if len(fields) > 1 {
				a.state.RemoveFromCart(fields[1])
			}
		case "wish":
			if len(fields) > 1 {
				if p, ok := findProduct(fields[1]); ok {
					a.state.AddToWishlist(p)
				}
			}
		case "cart":
			a.router.Navigate("/cart", false)
		case "logout":
			a.session.Logout()
			role := identity.RoleConsumer
			a.state.SetUser(role, nil)
			a.router.Navigate("/", false)
			a.state.Notify("Logged out successfully", state.NotificationSuccess)
		case "quit", "exit":
			return
		default:
			fmt.Println("unknown command:", fields[0])
		}
	}
}

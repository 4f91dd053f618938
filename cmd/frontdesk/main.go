// Command frontdesk is a headless demo of the client SDK: it restores or
// establishes a session, shows what the signed-in role may access, and walks
// the first page of inpatient records.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"runtime/debug"

	"github.com/common-nighthawk/go-figure"
	"github.com/rs/zerolog"

	"github.com/careplus/go-frontdesk-client/access"
	"github.com/careplus/go-frontdesk-client/cursor"
	"github.com/careplus/go-frontdesk-client/gateway"
	"github.com/careplus/go-frontdesk-client/guard"
	"github.com/careplus/go-frontdesk-client/internal/config"
	"github.com/careplus/go-frontdesk-client/notify"
	"github.com/careplus/go-frontdesk-client/patients"
	"github.com/careplus/go-frontdesk-client/session"
	"github.com/careplus/go-frontdesk-client/tokenstore/sqlitestore"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Error running client: %s\n", err)
	}
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Recovered from panic: %v\n", r)
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	c := config.New()
	displayAppname(c.GetAppName())

	logger := newLogger(c.GetLogLevel())
	notifier := notify.NewLogNotifier(logger)

	store, err := sqlitestore.Open(c.GetStorePath())
	if err != nil {
		return fmt.Errorf("open token store: %w", err)
	}
	defer store.Close()

	gw := gateway.New(c.GetBaseURL(),
		gateway.WithLogger(logger),
		gateway.WithTimeout(c.GetRequestTimeout()),
	)

	manager, err := session.NewManager(store, gw,
		session.WithNotifier(notifier),
		session.WithLogger(logger),
		session.WithTokenTTL(c.GetTokenTTL()),
	)
	if err != nil {
		return fmt.Errorf("session manager: %w", err)
	}
	gw.SetOnUnauthorized(manager.HandleUnauthorized)
	gw.SetTokenSource(manager.Token)

	ctx := context.Background()

	if !manager.Restore(ctx) {
		empID := os.Getenv("FRONTDESK_EMP_ID")
		password := os.Getenv("FRONTDESK_PASSWORD")
		if empID == "" {
			return errors.New("no persisted session; set FRONTDESK_EMP_ID and FRONTDESK_PASSWORD to log in")
		}
		if _, err := manager.Login(ctx, gateway.Credentials{EmployeeID: empID, Password: password}); err != nil {
			return fmt.Errorf("login: %w", err)
		}
	}

	identity := manager.CurrentIdentity()
	if identity == nil {
		return errors.New("no session after login")
	}
	logger.Info().
		Str("user", identity.DisplayName).
		Str("role", string(identity.Role)).
		Msg("session active")

	for _, feature := range access.FeaturesForRole(identity.Role) {
		fmt.Printf("  feature: %s\n", feature)
	}

	routeGuard, err := guard.New(manager, consoleNavigator{},
		guard.WithLogger(logger),
		guard.WithNotifier(notifier),
	)
	if err != nil {
		return fmt.Errorf("route guard: %w", err)
	}
	if !routeGuard.CanEnter(access.FeatureInpatients) {
		return nil
	}

	return browseInpatients(ctx, gw, logger, c.GetPageSize())
}

func browseInpatients(ctx context.Context, gw *gateway.Client, logger zerolog.Logger, pageSize int) error {
	service, err := patients.NewService(gw, patients.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("patients service: %w", err)
	}

	c := service.NewCursor(1, pageSize)
	record, err := c.First(ctx)
	if errors.Is(err, cursor.ErrEmptyCollection) {
		fmt.Println("no inpatient records")
		return nil
	}
	if err != nil {
		return fmt.Errorf("first record: %w", err)
	}

	for {
		fmt.Printf("  %s  %s %s\n", record.PatientID, record.FirstName, record.Surname)
		if !c.HasNext(record.PatientID) {
			return nil
		}
		record, err = c.Next(ctx, record.PatientID)
		if err != nil {
			return fmt.Errorf("next record: %w", err)
		}
	}
}

// consoleNavigator stands in for a router in this headless demo.
type consoleNavigator struct{}

func (consoleNavigator) NavigateTo(route string) {
	fmt.Printf("  -> redirect %s\n", route)
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(lvl).With().Timestamp().Logger()
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}

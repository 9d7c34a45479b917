package main

import (
	"bufio"
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	_ "github.com/lib/pq"
	"golang.org/x/term"

	"eventease/config"
	"eventease/internal/adapters/auth"
	"eventease/internal/adapters/geo"
	"eventease/internal/adapters/ical"
	"eventease/internal/domain"
	"eventease/internal/repository/kv"
	"eventease/internal/repository/postgres"
	"eventease/internal/repository/rediskv"
	"eventease/internal/services"
)

func main() {
	exportPath := flag.String("export", "", "write the feed as an ICS file to this path")
	withWeather := flag.Bool("weather", false, "fetch a forecast for each event with a location")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		// The missing-salt case lands here: refuse to continue.
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}
	logger := config.NewLogger()
	ctx := context.Background()

	store, cleanup, err := openStore(ctx, cfg)
	if err != nil {
		logger.Error("failed to open storage", "driver", cfg.StorageDriver, "error", err)
		os.Exit(1)
	}
	defer cleanup()

	hasher := auth.NewFixedSaltHasher(cfg.PasswordSalt)
	tokens := auth.NewSessionTokens(cfg.PasswordSalt)

	creds := services.NewCredentialService(store, hasher, tokens, tokens, logger)
	likes := services.NewLikeService(store, logger)
	activities := services.NewActivityService(store, logger)
	events := services.NewEventService(store, activities, likes, logger)
	feeds := services.NewFeedService(events, likes, activities, logger)

	user, err := creds.CurrentUser(ctx)
	if err != nil {
		logger.Error("failed to restore session", "error", err)
		os.Exit(1)
	}
	if user == nil {
		user = promptLogin(ctx, creds)
		if user == nil {
			fmt.Fprintln(os.Stderr, "invalid credentials")
			os.Exit(1)
		}
	}
	fmt.Printf("Signed in as %s <%s>\n\n", user.Name, user.Email)

	feed := feeds.Open(ctx, user.ID)
	printFeed(ctx, feed, cfg, logger, *withWeather)

	if *exportPath != "" {
		data, err := ical.Export(feed.Events(), "EventEase")
		if err != nil {
			logger.Error("failed to export calendar", "error", err)
			os.Exit(1)
		}
		if err := os.WriteFile(*exportPath, []byte(data), 0o644); err != nil {
			logger.Error("failed to write calendar file", "path", *exportPath, "error", err)
			os.Exit(1)
		}
		fmt.Printf("\nExported %d event(s) to %s\n", len(feed.Events()), *exportPath)
	}
}

func openStore(ctx context.Context, cfg *config.Config) (domain.KeyValueStore, func(), error) {
	switch cfg.StorageDriver {
	case config.DriverPostgres:
		db, err := sql.Open("postgres", cfg.DBUrl)
		if err != nil {
			return nil, nil, err
		}
		if err := postgres.EnsureSchema(ctx, db); err != nil {
			db.Close()
			return nil, nil, err
		}
		return postgres.NewBlobStore(db), func() { db.Close() }, nil
	case config.DriverRedis:
		store, err := rediskv.Open(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		return store, func() {}, nil
	default:
		store, err := kv.NewFileStore(cfg.StoragePath)
		if err != nil {
			return nil, nil, err
		}
		return store, func() {}, nil
	}
}

func promptLogin(ctx context.Context, creds domain.CredentialService) *domain.User {
	reader := bufio.NewReader(os.Stdin)
	fmt.Print("Email: ")
	email, err := reader.ReadString('\n')
	if err != nil {
		return nil
	}
	fmt.Print("Password: ")
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return nil
	}
	user, err := creds.Login(ctx, strings.TrimSpace(email), string(password))
	if err != nil {
		return nil
	}
	return user
}

func printFeed(ctx context.Context, feed *services.Feed, cfg *config.Config, logger *slog.Logger, withWeather bool) {
	events := feed.Events()
	if len(events) == 0 {
		fmt.Println("No events yet.")
		return
	}

	var forecasts *geo.Client
	if withWeather {
		geoCfg, err := geo.LoadConfig(cfg.GeoConfigPath)
		if err != nil {
			logger.Warn("failed to load geo config, using defaults", "error", err)
		}
		forecasts = geo.NewClient(nil, geoCfg, logger)
	}

	for _, e := range events {
		markers := ""
		if e.Participated {
			markers += " [participating]"
		}
		if e.Liked {
			markers += " [liked]"
		}
		fmt.Printf("%s  %s%s\n", e.Date, e.Title, markers)
		if e.Location != "" {
			fmt.Printf("      %s\n", e.Location)
		}
		if forecasts != nil && e.Location != "" {
			w, err := forecasts.WeatherForDate(ctx, e.Time(), e.Location)
			if err != nil {
				logger.Warn("forecast lookup failed", "event_id", e.ID, "error", err)
			} else if w != nil {
				fmt.Printf("      %d°C, %s (pluie %d%%, vent %d km/h)\n",
					w.Temperature, w.Description, w.PrecipitationProbability, w.WindSpeed)
			}
		}
	}
}

// Package fluxcore implements the fluxcore CLI's flag parsing and run loop:
// a line-oriented REPL that submits actor text through a freshly wired
// engine.Engine and prints the narrative lines and declared errors it
// produces. Grounded on the teacher's internal/cmd/seed and
// internal/tools/hmackey split of ParseConfig/Run from a thin main.go.
package fluxcore

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand/v2"
	"time"

	"github.com/fluxcore/engine/internal/config"
	"github.com/fluxcore/engine/internal/engine"
	"github.com/fluxcore/engine/internal/idgen"
	"github.com/fluxcore/engine/internal/urn"
	"github.com/fluxcore/engine/internal/world"
)

// Config holds the CLI's own flags, layered on top of config.Engine (which
// is loaded from the environment, not flags, per the teacher's convention
// of environment-sourced service tunables).
type Config struct {
	Actor    string
	Location string
	Locale   string
}

// ParseConfig parses CLI flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	fs.StringVar(&cfg.Actor, "actor", "flux:actor:player1", "acting actor URN for submitted lines")
	fs.StringVar(&cfg.Location, "location", "flux:place:origin", "starting place URN, created if absent")
	fs.StringVar(&cfg.Locale, "locale", "", "narrative locale (defaults to engine config's default locale)")
	if err := fs.Parse(args); err != nil {
		return Config{}, fmt.Errorf("parse flags: %w", err)
	}
	return cfg, nil
}

// Run seeds a minimal world (one place, one actor, both materialized) and
// then reads newline-delimited intents from in, submitting each through the
// engine and writing the resulting narrative lines (or declared error
// codes) to out. It returns when in reaches EOF or ctx is done.
func Run(ctx context.Context, cfg Config, in io.Reader, out, errOut io.Writer) error {
	engineCfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	locale := cfg.Locale
	if locale == "" {
		locale = engineCfg.DefaultLocale
	}

	eng := engine.New(engineCfg, idgen.New, func() int64 { return time.Now().Unix() }, rand.Float64)
	seed(eng, cfg)
	log.Printf("fluxcore REPL seeded actor %s at %s, locale %s", cfg.Actor, cfg.Location, locale)

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line := scanner.Text()
		if line == "" {
			continue
		}
		outcome := eng.Submit(ctx, line, cfg.Actor, cfg.Location, "", locale)
		for _, l := range outcome.Lines {
			fmt.Fprintln(out, l.Self)
		}
		for _, declared := range outcome.Errors {
			fmt.Fprintf(errOut, "error: %s\n", declared.Code)
		}
	}
	if err := scanner.Err(); err != nil {
		log.Printf("fluxcore REPL stopped: %v", err)
		return err
	}
	log.Printf("fluxcore REPL reached EOF")
	return nil
}

// seed places a starting place and actor directly into the world
// projection. It bypasses the command pipeline deliberately: CREATE_ACTOR
// and CREATE_PLACE exist for runtime world-building by other actors, not
// for process bootstrap, which has no issuing actor yet.
func seed(eng *engine.Engine, cfg Config) {
	place := world.NewPlace(urn.URN(cfg.Location), "Origin", "Where new actors begin.", "temperate")
	eng.World.PutPlace(place)

	actor := world.NewActor(urn.URN(cfg.Actor), "Player", world.ActorKindPC, place.URN)
	eng.World.PutActor(actor)
	place.Materialize(actor.URN.Tail(), world.VisibleToEveryone)
}

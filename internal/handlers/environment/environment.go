// Package environment implements the MUTATE_WEATHER and MUTATE_RESOURCES
// system commands over a place.
package environment

import (
	"strconv"
	"strings"

	"github.com/fluxcore/engine/internal/command"
	"github.com/fluxcore/engine/internal/event"
	"github.com/fluxcore/engine/internal/fluxerr"
	"github.com/fluxcore/engine/internal/intent"
	"github.com/fluxcore/engine/internal/reducer"
	"github.com/fluxcore/engine/internal/registry"
	"github.com/fluxcore/engine/internal/txctx"
	"github.com/fluxcore/engine/internal/urn"
	"github.com/fluxcore/engine/internal/world"
)

// WeatherArgs carries the literal "@mutate-weather" command's arguments.
type WeatherArgs struct {
	Place       urn.PlaceURN
	Condition   string
	Temperature float64
}

// WeatherParse recognizes "@mutate-weather <place> <condition> <temp>".
func WeatherParse(ctx *txctx.Context, in intent.Intent) (command.Command, bool) {
	if in.Verb != "@mutate-weather" || len(in.Tokens) != 3 {
		return command.Command{}, false
	}
	temp, err := strconv.ParseFloat(in.Tokens[2], 64)
	if err != nil {
		return command.Command{}, false
	}
	return command.Command{
		ID:    in.ID,
		Ts:    in.Ts,
		Actor: urn.SystemActor,
		Type:  command.TypeMutateWeather,
		Args: WeatherArgs{
			Place:       urn.URN(in.Tokens[0]),
			Condition:   strings.ToLower(in.Tokens[1]),
			Temperature: temp,
		},
	}, true
}

// WeatherReduce replaces a place's weather wholesale and emits
// PLACE_WEATHER_DID_CHANGE.
func WeatherReduce(ctx *txctx.Context, cmd command.Command) *txctx.Context {
	args := cmd.Args.(WeatherArgs)
	place, ok := ctx.World.Place(args.Place)
	if !ok {
		ctx.DeclareError(fluxerr.CodeInvalidTarget, cmd.ID)
		return ctx
	}
	place.Weather = world.Weather{Condition: args.Condition, Temperature: args.Temperature}

	ctx.DeclareEvent(event.WorldEvent{
		ID:       ctx.Uniqid(),
		Type:     event.TypePlaceWeatherDidChange,
		Actor:    urn.SystemActor,
		Location: place.URN.String(),
		Trace:    cmd.ID,
		Ts:       ctx.Timestamp(),
		Payload:  map[string]any{"condition": place.Weather.Condition, "temperature": place.Weather.Temperature},
	})
	return ctx
}

// ResourcesArgs carries the literal "@mutate-resources" command's arguments.
type ResourcesArgs struct {
	Place    urn.PlaceURN
	Resource string
	Amount   int64
}

// ResourcesParse recognizes "@mutate-resources <place> <resource> <amount>".
func ResourcesParse(ctx *txctx.Context, in intent.Intent) (command.Command, bool) {
	if in.Verb != "@mutate-resources" || len(in.Tokens) != 3 {
		return command.Command{}, false
	}
	amount, err := strconv.ParseInt(in.Tokens[2], 10, 64)
	if err != nil {
		return command.Command{}, false
	}
	return command.Command{
		ID:    in.ID,
		Ts:    in.Ts,
		Actor: urn.SystemActor,
		Type:  command.TypeMutateResources,
		Args: ResourcesArgs{
			Place:    urn.URN(in.Tokens[0]),
			Resource: strings.ToLower(in.Tokens[1]),
			Amount:   amount,
		},
	}, true
}

// ResourcesReduce sets a place's resource amount and emits
// PLACE_RESOURCES_DID_CHANGE. Negative amounts are rejected, matching the
// non-negative-resource invariant implied by §3's entity model.
func ResourcesReduce(ctx *txctx.Context, cmd command.Command) *txctx.Context {
	args := cmd.Args.(ResourcesArgs)
	place, ok := ctx.World.Place(args.Place)
	if !ok {
		ctx.DeclareError(fluxerr.CodeInvalidTarget, cmd.ID)
		return ctx
	}
	if args.Amount < 0 {
		ctx.DeclareError(fluxerr.CodeInvalidArgument, cmd.ID)
		return ctx
	}
	if place.Resources == nil {
		place.Resources = make(map[string]int64)
	}
	place.Resources[args.Resource] = args.Amount

	ctx.DeclareEvent(event.WorldEvent{
		ID:       ctx.Uniqid(),
		Type:     event.TypePlaceResourcesDidChange,
		Actor:    urn.SystemActor,
		Location: place.URN.String(),
		Trace:    cmd.ID,
		Ts:       ctx.Timestamp(),
		Payload:  map[string]any{"resource": args.Resource, "amount": args.Amount},
	})
	return ctx
}

// Handlers returns both environment-family handlers.
func Handlers() []registry.Handler {
	return []registry.Handler{
		{Type: command.TypeMutateWeather, Parse: WeatherParse,
			Reduce: registry.Reducer(reducer.WithCommandType(command.TypeMutateWeather, WeatherReduce))},
		{Type: command.TypeMutateResources, Parse: ResourcesParse,
			Reduce: registry.Reducer(reducer.WithCommandType(command.TypeMutateResources, ResourcesReduce))},
	}
}

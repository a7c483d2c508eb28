// Package credit implements the CREDIT system command: granting currency to
// an actor's wallet (spec §4.5).
package credit

import (
	"strconv"

	"github.com/fluxcore/engine/internal/command"
	"github.com/fluxcore/engine/internal/config"
	"github.com/fluxcore/engine/internal/event"
	"github.com/fluxcore/engine/internal/fluxerr"
	"github.com/fluxcore/engine/internal/intent"
	"github.com/fluxcore/engine/internal/reducer"
	"github.com/fluxcore/engine/internal/registry"
	"github.com/fluxcore/engine/internal/txctx"
	"github.com/fluxcore/engine/internal/urn"
)

// Args carries CREDIT's three tokens.
type Args struct {
	Recipient urn.ActorURN
	Currency  string
	Amount    int64
}

// Parser returns a Parse function bound to cfg, since currency validity and
// the MAX_SAFE bound are configuration, not parser literals. Per spec §8
// scenario 5, an amount or currency that fails resolution is not a parse
// match at all: the whole command resolves to undefined and the dispatcher
// falls through to UNRECOGNIZED_INTENT, not a reducer-declared error.
func Parser(cfg config.Engine) registry.Parser {
	return func(ctx *txctx.Context, in intent.Intent) (command.Command, bool) {
		if in.Verb != "@credit" || len(in.Tokens) != 3 {
			return command.Command{}, false
		}
		recipient := urn.URN(in.Tokens[0])
		if !recipient.Is(urn.KindActor) {
			return command.Command{}, false
		}
		currency := in.Tokens[1]
		if !cfg.AllowsCurrency(currency) {
			return command.Command{}, false
		}
		amount, err := strconv.ParseInt(in.Tokens[2], 10, 64)
		if err != nil || amount < 1 || amount > cfg.MaxSafeCreditAmount {
			return command.Command{}, false
		}
		return command.Command{
			ID:    in.ID,
			Ts:    in.Ts,
			Actor: urn.SystemActor,
			Type:  command.TypeCredit,
			Args:  Args{Recipient: recipient, Currency: currency, Amount: amount},
		}, true
	}
}

// Reduce credits the recipient's wallet and emits ACTOR_DID_RECEIVE_CURRENCY.
func Reduce(ctx *txctx.Context, cmd command.Command) *txctx.Context {
	args := cmd.Args.(Args)
	recipient, ok := ctx.World.Actor(args.Recipient)
	if !ok {
		ctx.DeclareError(fluxerr.CodeInvalidTarget, cmd.ID)
		return ctx
	}
	recipient.Wallet[args.Currency] += args.Amount

	ctx.DeclareEvent(event.WorldEvent{
		ID:       ctx.Uniqid(),
		Type:     event.TypeActorDidReceiveCurrency,
		Actor:    urn.SystemActor,
		Location: recipient.Location.String(),
		Trace:    cmd.ID,
		Ts:       ctx.Timestamp(),
		Payload:  map[string]any{"recipient": recipient.URN.String(), "currency": args.Currency, "amount": args.Amount},
	})
	return ctx
}

// Handler wires Parser(cfg)/Reduce with command-type validation.
func Handler(cfg config.Engine) registry.Handler {
	return registry.Handler{
		Type:   command.TypeCredit,
		Parse:  Parser(cfg),
		Reduce: registry.Reducer(reducer.WithCommandType(command.TypeCredit, Reduce)),
	}
}

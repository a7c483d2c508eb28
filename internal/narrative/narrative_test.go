package narrative

import (
	"testing"

	"github.com/fluxcore/engine/internal/event"
)

func TestGetCatalogFallsBackToBaseLocale(t *testing.T) {
	c := GetCatalog("xx-XX")
	if c.Locale() != BaseLocale {
		t.Fatalf("expected fallback to %q, got %q", BaseLocale, c.Locale())
	}
}

func TestRenderSubstitutesMetadata(t *testing.T) {
	c := GetCatalog(BaseLocale)
	evt := event.WorldEvent{
		Type:    event.TypeActorDidMove,
		Payload: map[string]any{"destination": "north gate", "actorName": "Alice"},
	}
	lines := c.Render(evt)
	if lines.Self != "You head toward north gate." {
		t.Fatalf("unexpected self line: %q", lines.Self)
	}
	if lines.Observer != "Alice heads off." {
		t.Fatalf("unexpected observer line: %q", lines.Observer)
	}
}

func TestRenderUnregisteredTypeFallsBackToTypeName(t *testing.T) {
	c := GetCatalog(BaseLocale)
	evt := event.WorldEvent{Type: event.Type("SOME_UNMAPPED_EVENT")}
	lines := c.Render(evt)
	if lines.Self != "SOME_UNMAPPED_EVENT" || lines.Observer != "SOME_UNMAPPED_EVENT" {
		t.Fatalf("expected verbatim type name fallback, got %+v", lines)
	}
}

func TestRenderWithNilPayloadUsesEmptyMetadata(t *testing.T) {
	c := GetCatalog(BaseLocale)
	evt := event.WorldEvent{Type: event.TypeCombatSessionDidStart}
	lines := c.Render(evt)
	if lines.Self != "Combat begins." {
		t.Fatalf("unexpected self line with nil payload: %q", lines.Self)
	}
}

func TestRegisterCatalogAddsNewLocale(t *testing.T) {
	custom := &Catalog{locale: "pt-BR", templates: map[event.Type]templatePair{
		event.TypeLook: {self: "Voce olha ao redor.", observer: "{{.actorName}} olha ao redor."},
	}}
	RegisterCatalog(custom)
	defer delete(catalogs, "pt-BR")

	c := GetCatalog("pt-BR")
	if c.Locale() != "pt-BR" {
		t.Fatalf("expected pt-BR catalog registered, got %q", c.Locale())
	}
	lines := c.Render(event.WorldEvent{Type: event.TypeLook})
	if lines.Self != "Voce olha ao redor." {
		t.Fatalf("unexpected rendered line: %q", lines.Self)
	}
}

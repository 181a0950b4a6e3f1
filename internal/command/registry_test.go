package command

import (
	"context"
	"errors"
	"testing"

	"github.com/nasserdhaferi2013-dot/DiscordPriceBot/internal/domain"
)

type stubCommand struct {
	name  string
	calls int
	seen  map[string]any
	err   error
}

func (s *stubCommand) Name() string        { return s.name }
func (s *stubCommand) Description() string { return "stub" }

func (s *stubCommand) Execute(_ context.Context, _ *domain.CommandContext, params map[string]any) error {
	s.calls++
	s.seen = params
	return s.err
}

func TestRegistryExecuteIsCaseInsensitive(t *testing.T) {
	registry := NewRegistry()
	stub := &stubCommand{name: "price"}
	registry.Register(stub)

	if err := registry.Execute(context.Background(), nil, "PRICE", nil); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if stub.calls != 1 {
		t.Fatalf("expected one execution, got %d", stub.calls)
	}
}

func TestRegistryUnknownCommand(t *testing.T) {
	registry := NewRegistry()

	err := registry.Execute(context.Background(), nil, "missing", nil)
	if !errors.Is(err, ErrUnknownCommand) {
		t.Fatalf("expected ErrUnknownCommand, got %v", err)
	}
}

func TestRegistryCount(t *testing.T) {
	registry := NewRegistry()
	registry.Register(&stubCommand{name: "price"})
	registry.Register(&stubCommand{name: "help"})
	registry.Register(nil)

	if registry.Count() != 2 {
		t.Fatalf("expected 2 handlers, got %d", registry.Count())
	}
}

func TestDispatcherSkipsUnknownEvents(t *testing.T) {
	registry := NewRegistry()
	stub := &stubCommand{name: domain.CommandPrice.String()}
	registry.Register(stub)
	dispatcher := NewSequentialDispatcher(registry)

	executed, err := dispatcher.Publish(context.Background(), nil,
		CommandEvent{Type: domain.CommandUnknown},
		CommandEvent{Type: domain.CommandPrice, Params: map[string]any{"query": "hades"}},
	)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if executed != 1 {
		t.Fatalf("expected 1 executed event, got %d", executed)
	}
	if stub.seen["query"] != "hades" {
		t.Fatalf("params not forwarded: %v", stub.seen)
	}
}

func TestDispatcherStopsOnHandlerError(t *testing.T) {
	registry := NewRegistry()
	failing := &stubCommand{name: domain.CommandPrice.String(), err: errors.New("boom")}
	second := &stubCommand{name: domain.CommandHelp.String()}
	registry.Register(failing)
	registry.Register(second)
	dispatcher := NewSequentialDispatcher(registry)

	executed, err := dispatcher.Publish(context.Background(), nil,
		CommandEvent{Type: domain.CommandPrice},
		CommandEvent{Type: domain.CommandHelp},
	)
	if err == nil {
		t.Fatal("expected the handler error to propagate")
	}
	if executed != 0 {
		t.Fatalf("expected 0 successful events, got %d", executed)
	}
	if second.calls != 0 {
		t.Fatal("later events must not run after a failure")
	}
}

func TestDispatcherClonesParams(t *testing.T) {
	registry := NewRegistry()
	stub := &stubCommand{name: domain.CommandPrice.String()}
	registry.Register(stub)
	dispatcher := NewSequentialDispatcher(registry)

	params := map[string]any{"query": "hades"}
	if _, err := dispatcher.Publish(context.Background(), nil, CommandEvent{Type: domain.CommandPrice, Params: params}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	stub.seen["query"] = "mutated"
	if params["query"] != "hades" {
		t.Fatal("handler params must be a copy of the event params")
	}
}

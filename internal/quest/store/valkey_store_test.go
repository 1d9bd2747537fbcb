package store

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/dyslexiquest/quest-engine-go/internal/common/testhelper"
	"github.com/dyslexiquest/quest-engine-go/internal/quest/model"
)

func TestValkeyKVRoundTrip(t *testing.T) {
	client := testhelper.NewTestValkeyClient(t)
	kv := NewValkeyKV(client, testhelper.UniqueTestPrefix(t), time.Hour)
	ctx := context.Background()

	if raw, err := kv.Read(ctx, KeyGameState); err != nil || raw != nil {
		t.Errorf("empty read = (%v, %v)", raw, err)
	}

	if err := kv.Write(ctx, KeyGameState, []byte(`{"session_id":"s"}`)); err != nil {
		t.Fatal(err)
	}
	raw, err := kv.Read(ctx, KeyGameState)
	if err != nil {
		t.Fatal(err)
	}
	if string(raw) != `{"session_id":"s"}` {
		t.Errorf("read = %s", raw)
	}

	if err := kv.Delete(ctx, KeyGameState); err != nil {
		t.Fatal(err)
	}
	if raw, err := kv.Read(ctx, KeyGameState); err != nil || raw != nil {
		t.Errorf("deleted read = (%v, %v)", raw, err)
	}
}

func TestValkeyKVEntries(t *testing.T) {
	client := testhelper.NewTestValkeyClient(t)
	kv := NewValkeyKV(client, testhelper.UniqueTestPrefix(t), 0)
	ctx := context.Background()

	if err := kv.Write(ctx, KeyTheme, []byte(`"space"`)); err != nil {
		t.Fatal(err)
	}
	if err := kv.Write(ctx, KeySettings, []byte(`{}`)); err != nil {
		t.Fatal(err)
	}

	entries, err := kv.Entries(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Errorf("entries = %v", entries)
	}
	if entries[KeyTheme] != len(`"space"`) {
		t.Errorf("theme size = %d", entries[KeyTheme])
	}
}

func TestValkeySessionStore(t *testing.T) {
	client := testhelper.NewTestValkeyClient(t)
	kv := NewValkeyKV(client, testhelper.UniqueTestPrefix(t), time.Hour)
	s := NewSessionStore(kv, slog.New(slog.NewTextHandler(io.Discard, nil)))
	ctx := context.Background()

	state := model.NewInitialState("sess-vk", model.GenreDungeon, "Stone steps lead down.", nil)
	s.SaveGameState(ctx, state)

	loaded := s.LoadGameState(ctx)
	if loaded == nil || loaded.SessionID != "sess-vk" {
		t.Errorf("loaded = %+v", loaded)
	}

	if !s.Probe(ctx) {
		t.Error("probe must succeed against miniredis")
	}
	if s.Usage(ctx) <= 0 {
		t.Error("usage must be positive after save")
	}
}

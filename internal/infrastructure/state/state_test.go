package state

import (
	"context"
	"errors"
	"testing"

	"ishakiro/internal/domain/entities"
	"ishakiro/internal/infrastructure/storage"
)

type failingStorage struct {
	*storage.Memory
	err error
}

func (f *failingStorage) Set(ctx context.Context, key, value string) error { return f.err }
func (f *failingStorage) Delete(ctx context.Context, key string) error { return f.err }

func TestSessionStore_SetPersists(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemory()
	s := NewSessionStore(mem, nil)

	if err := s.Set(ctx, "tok", entities.User{"email": "a@b.rw"}); err != nil {
		t.Fatalf("Set: %v", err)
	}

	sess := s.Snapshot()
	if sess.Token != "tok" || !sess.IsAuthenticated || sess.User.Email() != "a@b.rw" {
		t.Fatalf("unexpected session %+v", sess)
	}
	if v, ok, _ := mem.Get(ctx, KeyToken); !ok || v != "tok" {
		t.Errorf("stored token = %q, %v", v, ok)
	}
	if v, ok, _ := mem.Get(ctx, KeyUser); !ok || v != `{"email":"a@b.rw"}` {
		t.Errorf("stored user = %q, %v", v, ok)
	}
}

func TestSessionStore_ClearRemovesKeys(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemory()
	s := NewSessionStore(mem, nil)
	_ = s.Set(ctx, "tok", entities.User{"email": "a@b.rw"})

	if err := s.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}

	sess := s.Snapshot()
	if sess.Token != "" || sess.User != nil || sess.IsAuthenticated {
		t.Fatalf("session not cleared: %+v", sess)
	}
	if _, ok, _ := mem.Get(ctx, KeyToken); ok {
		t.Error("token key still stored")
	}
	if _, ok, _ := mem.Get(ctx, KeyUser); ok {
		t.Error("user key still stored")
	}
}

func TestSessionStore_LoadSeedsFromStorage(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemory()
	_ = mem.Set(ctx, KeyToken, "persisted")
	_ = mem.Set(ctx, KeyUser, `{"email":"a@b.rw","id":7}`)

	s := NewSessionStore(mem, nil)
	if err := s.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}
	sess := s.Snapshot()
	if sess.Token != "persisted" || !sess.IsAuthenticated {
		t.Fatalf("unexpected session %+v", sess)
	}
	if sess.User["id"] != float64(7) {
		t.Errorf("user id = %v", sess.User["id"])
	}
}

func TestSessionStore_LoadIgnoresCorruptUser(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemory()
	_ = mem.Set(ctx, KeyToken, "persisted")
	_ = mem.Set(ctx, KeyUser, `{not json`)

	s := NewSessionStore(mem, nil)
	if err := s.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}
	sess := s.Snapshot()
	if sess.User != nil || sess.Token != "persisted" {
		t.Fatalf("unexpected session %+v", sess)
	}
}

func TestSessionStore_NilStorageKeepsMemory(t *testing.T) {
	ctx := context.Background()
	s := NewSessionStore(nil, nil)
	if err := s.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := s.Set(ctx, "tok", nil); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if s.Token() != "tok" {
		t.Errorf("Token() = %q", s.Token())
	}
}

func TestSessionStore_PersistFailureStillUpdatesMemory(t *testing.T) {
	boom := errors.New("disk full")
	s := NewSessionStore(&failingStorage{Memory: storage.NewMemory(), err: boom}, nil)

	err := s.Set(context.Background(), "tok", nil)
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped storage error, got %v", err)
	}
	if s.Token() != "tok" {
		t.Errorf("memory not updated, Token() = %q", s.Token())
	}
}

func TestSessionStore_SnapshotIsCopy(t *testing.T) {
	s := NewSessionStore(nil, nil)
	_ = s.Set(context.Background(), "tok", entities.User{"email": "a@b.rw"})

	snap := s.Snapshot()
	snap.User["email"] = "changed"
	if got := s.Snapshot().User.Email(); got != "a@b.rw" {
		t.Errorf("store mutated through snapshot: %q", got)
	}
}

func TestLocaleStore_SetAndReload(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemory()

	l := NewLocaleStore("en", mem, nil)
	if l.Code() != "en" {
		t.Fatalf("default code = %q", l.Code())
	}
	if err := l.Set(ctx, "rw"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	restarted := NewLocaleStore("en", mem, nil)
	if err := restarted.Load(ctx, func(string) bool { return true }); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if restarted.Code() != "rw" {
		t.Errorf("after restart code = %q, want rw", restarted.Code())
	}
}

func TestLocaleStore_LoadRejectsUnknownCode(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemory()
	_ = mem.Set(ctx, KeyLanguage, "xx")

	l := NewLocaleStore("en", mem, nil)
	if err := l.Load(ctx, func(code string) bool { return code == "en" || code == "rw" }); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if l.Code() != "en" {
		t.Errorf("code = %q, want en", l.Code())
	}
}

package announce

import (
	"testing"
	"time"
)

func TestAnnounceDeliversToSubscribers(t *testing.T) {
	a := NewAnnouncer(50 * time.Millisecond)
	ch, cancel := a.Subscribe()
	defer cancel()

	a.Announce(PriorityAssertive, "New part of the story!")

	select {
	case got := <-ch:
		if got.Message != "New part of the story!" {
			t.Fatalf("message = %q", got.Message)
		}
		if got.Priority != PriorityAssertive {
			t.Fatalf("priority = %q", got.Priority)
		}
	case <-time.After(time.Second):
		t.Fatal("no announcement received")
	}
}

func TestCurrentClearsAfterDelay(t *testing.T) {
	a := NewAnnouncer(30 * time.Millisecond)
	a.Announce(PriorityPolite, "You learned a new word!")

	if got := a.Current(); got != "You learned a new word!" {
		t.Fatalf("current = %q", got)
	}

	deadline := time.Now().Add(time.Second)
	for a.Current() != "" {
		if time.Now().After(deadline) {
			t.Fatal("current was not cleared")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestEmptyMessageIgnored(t *testing.T) {
	a := NewAnnouncer(0)
	ch, cancel := a.Subscribe()
	defer cancel()

	a.Announce(PriorityPolite, "")

	select {
	case got := <-ch:
		t.Fatalf("unexpected announcement: %+v", got)
	case <-time.After(50 * time.Millisecond):
	}
	if a.Current() != "" {
		t.Fatalf("current = %q", a.Current())
	}
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	a := NewAnnouncer(0)
	ch, cancel := a.Subscribe()
	cancel()

	if _, open := <-ch; open {
		t.Fatal("channel still open after cancel")
	}

	// 해지 후의 알림은 패닉 없이 무시되어야 한다.
	a.Announce(PriorityAssertive, "after cancel")
}

func TestSlowSubscriberDoesNotBlock(t *testing.T) {
	a := NewAnnouncer(0)
	_, cancel := a.Subscribe()
	defer cancel()

	done := make(chan struct{})
	go func() {
		for range 100 {
			a.Announce(PriorityPolite, "burst")
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Announce blocked on a slow subscriber")
	}
}

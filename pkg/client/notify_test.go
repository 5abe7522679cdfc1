package client

import "testing"

func TestNotifierDeliversInOrder(t *testing.T) {
	n := NewNotifier(4)
	n.Publish("first", SeverityInfo)
	n.Publish("second", SeveritySuccess)

	got := <-n.Events()
	if got.Message != "first" || got.Severity != SeverityInfo {
		t.Fatalf("unexpected first notification: %+v", got)
	}
	got = <-n.Events()
	if got.Message != "second" || got.Severity != SeveritySuccess {
		t.Fatalf("unexpected second notification: %+v", got)
	}
}

func TestNotifierDropsOldestWhenFull(t *testing.T) {
	n := NewNotifier(2)
	n.Publish("one", SeverityInfo)
	n.Publish("two", SeverityInfo)
	n.Publish("three", SeverityInfo)

	got := <-n.Events()
	if got.Message != "two" {
		t.Fatalf("expected oldest notification dropped, got %q", got.Message)
	}
	got = <-n.Events()
	if got.Message != "three" {
		t.Fatalf("expected newest notification kept, got %q", got.Message)
	}

	select {
	case extra := <-n.Events():
		t.Fatalf("unexpected extra notification: %+v", extra)
	default:
	}
}

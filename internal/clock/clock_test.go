package clock

import (
	"testing"
	"time"
)

func TestFakeFiresInDeadlineOrder(t *testing.T) {
	c := NewFake(time.Unix(0, 0))
	var got []string

	c.AfterFunc(300*time.Millisecond, func() { got = append(got, "c") })
	c.AfterFunc(100*time.Millisecond, func() { got = append(got, "a") })
	c.AfterFunc(200*time.Millisecond, func() { got = append(got, "b") })

	c.Advance(250 * time.Millisecond)
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("after 250ms got %v, want [a b]", got)
	}
	if c.Pending() != 1 {
		t.Errorf("Pending() = %d, want 1", c.Pending())
	}

	c.Advance(50 * time.Millisecond)
	if len(got) != 3 || got[2] != "c" {
		t.Fatalf("after 300ms got %v, want [a b c]", got)
	}
}

func TestFakeChainedTimers(t *testing.T) {
	c := NewFake(time.Unix(0, 0))
	count := 0
	var tick func()
	tick = func() {
		count++
		if count < 5 {
			c.AfterFunc(100*time.Millisecond, tick)
		}
	}
	c.AfterFunc(100*time.Millisecond, tick)

	c.Advance(350 * time.Millisecond)
	if count != 3 {
		t.Errorf("count after 350ms = %d, want 3", count)
	}
	c.Advance(time.Second)
	if count != 5 {
		t.Errorf("count after chain = %d, want 5", count)
	}
	if c.Pending() != 0 {
		t.Errorf("Pending() = %d, want 0", c.Pending())
	}
}

func TestFakeStop(t *testing.T) {
	c := NewFake(time.Unix(0, 0))
	fired := false
	timer := c.AfterFunc(time.Second, func() { fired = true })

	if !timer.Stop() {
		t.Fatal("first Stop() should report true")
	}
	if timer.Stop() {
		t.Error("second Stop() should report false")
	}
	c.Advance(2 * time.Second)
	if fired {
		t.Error("stopped timer fired")
	}
}

func TestFakeNow(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewFake(start)
	c.Advance(90 * time.Second)
	if got := c.Now(); !got.Equal(start.Add(90 * time.Second)) {
		t.Errorf("Now() = %v, want %v", got, start.Add(90*time.Second))
	}
}

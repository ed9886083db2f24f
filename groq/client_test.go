package groq

import "testing"

func TestFluentChaining_OrderPreserved(t *testing.T) {
	c, err := New("k")
	if err != nil {
		t.Fatalf("New() err=%v", err)
	}

	got := c.AddMessage(System("sys")).
		AddMessages([]Message{User("one"), User("two")}).
		AddMessage(Assistant("three"))
	if got != c {
		t.Fatalf("mutators must return the same client")
	}

	hist := c.History()
	if len(hist) != 4 {
		t.Fatalf("history len=%d", len(hist))
	}
	want := []string{"sys", "one", "two", "three"}
	for i, w := range want {
		if hist[i].Content != w {
			t.Fatalf("history[%d]=%q want %q", i, hist[i].Content, w)
		}
	}
}

func TestClearMessages_ShrinksCapacity(t *testing.T) {
	c, _ := New("k")
	for i := 0; i < 32; i++ {
		c.AddMessage(User("m"))
	}

	c.ClearMessages()
	if len(c.history) != 0 {
		t.Fatalf("history len=%d", len(c.history))
	}
	if cap(c.history) != historyFloor {
		t.Fatalf("history cap=%d want %d", cap(c.history), historyFloor)
	}
}

func TestPendingMessages_Peek(t *testing.T) {
	c, _ := New("k")
	if _, ok := c.PendingMessages(); ok {
		t.Fatalf("empty pending should report none")
	}

	c.AddTmpMessage(User("tmp"))
	got, ok := c.PendingMessages()
	if !ok || len(got) != 1 || got[0].Content != "tmp" {
		t.Fatalf("pending=%v ok=%v", got, ok)
	}

	// The peek is a copy; mutating it must not touch client state.
	got[0].Content = "mutated"
	again, _ := c.PendingMessages()
	if again[0].Content != "tmp" {
		t.Fatalf("peek leaked internal state: %q", again[0].Content)
	}
}

func TestRequestMessages_MergeOrder(t *testing.T) {
	c, _ := New("k")
	c.AddMessages([]Message{User("h1"), User("h2")})
	c.AddTmpMessages([]Message{System("p1"), User("p2")})

	msgs := c.takeRequestMessages()
	want := []string{"p1", "p2", "h1", "h2"}
	if len(msgs) != len(want) {
		t.Fatalf("merged len=%d", len(msgs))
	}
	for i, w := range want {
		if msgs[i].Content != w {
			t.Fatalf("merged[%d]=%q want %q", i, msgs[i].Content, w)
		}
	}

	// Pending drains on read; history survives.
	if _, ok := c.PendingMessages(); ok {
		t.Fatalf("pending should be drained")
	}
	if len(c.History()) != 2 {
		t.Fatalf("history len=%d", len(c.History()))
	}
}

func TestRequestMessages_EmptyPendingCopiesHistory(t *testing.T) {
	c, _ := New("k")
	c.AddMessage(User("h1"))

	msgs := c.takeRequestMessages()
	if len(msgs) != 1 || msgs[0].Content != "h1" {
		t.Fatalf("merged=%v", msgs)
	}

	msgs[0].Content = "mutated"
	if c.History()[0].Content != "h1" {
		t.Fatalf("assembled list must be an independent copy")
	}
}

func TestHash_Deterministic(t *testing.T) {
	build := func(key string) *Client {
		c, _ := New(key)
		return c.AddMessages([]Message{User("Explain the importance of fast language models")})
	}

	a, b := build("api_key"), build("api_key")
	if a.Hash() != b.Hash() {
		t.Fatalf("identical clients must hash equal: %d != %d", a.Hash(), b.Hash())
	}

	if other := build("other_key"); other.Hash() == a.Hash() {
		t.Fatalf("credential must contribute to the hash")
	}

	c := build("api_key").AddMessage(User("more"))
	if c.Hash() == a.Hash() {
		t.Fatalf("history must contribute to the hash")
	}

	// The transport resource is not part of the hash.
	d := build("api_key")
	d.tr.UserAgent = "custom/1"
	if d.Hash() != a.Hash() {
		t.Fatalf("transport state leaked into the hash")
	}
}

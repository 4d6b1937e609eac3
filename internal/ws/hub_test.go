package ws

import "testing"

func TestUserIDFromChannel(t *testing.T) {
	cases := []struct {
		channel string
		want    int64
		wantErr bool
	}{
		{"events:user:42", 42, false},
		{"events:user:1", 1, false},
		{"events:user:abc", 0, true},
		{"events:user:", 0, true},
	}

	for _, tc := range cases {
		got, err := userIDFromChannel(tc.channel)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("userIDFromChannel(%q): expected error", tc.channel)
			}
			continue
		}
		if err != nil {
			t.Fatalf("userIDFromChannel(%q): %v", tc.channel, err)
		}
		if got != tc.want {
			t.Fatalf("userIDFromChannel(%q) = %d; want %d", tc.channel, got, tc.want)
		}
	}
}

func TestRegisterUnregister(t *testing.T) {
	h := NewHub(nil)
	c := &Client{UserID: 7, send: make(chan []byte, 1)}

	h.Register(c)
	if len(h.clients[7]) != 1 {
		t.Fatalf("expected one registered client")
	}

	h.Unregister(c)
	if _, ok := h.clients[7]; ok {
		t.Fatalf("user entry not cleaned up after last unregister")
	}

	// repeat unregister must be a no-op
	h.Unregister(c)
}

func TestDeliverToRegisteredClients(t *testing.T) {
	h := NewHub(nil)
	c := &Client{UserID: 9, send: make(chan []byte, 4)}
	h.Register(c)

	h.Deliver(9, []byte(`{"type":"level_up"}`))
	select {
	case msg := <-c.send:
		if string(msg) != `{"type":"level_up"}` {
			t.Fatalf("unexpected payload: %s", msg)
		}
	default:
		t.Fatalf("no payload delivered")
	}

	// other users receive nothing
	other := &Client{UserID: 10, send: make(chan []byte, 1)}
	h.Register(other)
	h.Deliver(9, []byte(`again`))
	select {
	case msg := <-other.send:
		t.Fatalf("payload leaked to wrong user: %s", msg)
	default:
	}
}

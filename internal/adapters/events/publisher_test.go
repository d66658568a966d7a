package events

import (
	"context"
	"encoding/json"
	"testing"
)

type fakeConn struct {
	subjects []string
	payloads [][]byte
	drained  bool
}

func (f *fakeConn) Publish(subject string, data []byte) error {
	f.subjects = append(f.subjects, subject)
	f.payloads = append(f.payloads, data)
	return nil
}

func (f *fakeConn) Drain() error {
	f.drained = true
	return nil
}

func TestPublish_UsesSubjectAsGiven(t *testing.T) {
	fc := &fakeConn{}
	p := &NATSPublisher{conn: fc}

	if err := p.Publish(context.Background(), "notifications.booking_confirmed", map[string]string{"id": "n1"}); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if len(fc.subjects) != 1 || fc.subjects[0] != "notifications.booking_confirmed" {
		t.Fatalf("unexpected subjects: %v", fc.subjects)
	}
	var got map[string]string
	if err := json.Unmarshal(fc.payloads[0], &got); err != nil || got["id"] != "n1" {
		t.Fatalf("unexpected payload %s (%v)", fc.payloads[0], err)
	}

	if err := p.Publish(context.Background(), "x", make(chan int)); err == nil {
		t.Fatalf("unencodable payloads must fail")
	}
	if err := p.Close(); err != nil || !fc.drained {
		t.Fatalf("close should drain the connection")
	}
}

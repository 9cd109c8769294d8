package snapshot

import (
	"bytes"
	"testing"
	"time"
)

func mustEncode(t *testing.T, h Header, payload []byte) []byte {
	t.Helper()
	b, err := Encode(h, payload)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	return b
}

func TestEnvelopeRoundTrip(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	payload := []byte("payload-bytes")
	h := NewHeader("app.cache", "filepool v1", now, Hash(payload))

	env := mustEncode(t, h, payload)
	got, p, err := Decode(env)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got != h {
		t.Fatalf("header mismatch: got %+v want %+v", got, h)
	}
	if !bytes.Equal(p, payload) {
		t.Fatalf("payload mismatch: got %q", p)
	}
	if got.GeneratedAt != now.Unix() {
		t.Fatalf("GeneratedAt: got %d want %d", got.GeneratedAt, now.Unix())
	}
}

func TestEnvelopeEmptyPayload(t *testing.T) {
	h := NewHeader("n", "g", time.Now(), Hash(nil))
	env := mustEncode(t, h, nil)
	_, p, err := Decode(env)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(p) != 0 {
		t.Fatalf("expected empty payload, got %d bytes", len(p))
	}
}

func TestDecodeRejectsCorruption(t *testing.T) {
	h := NewHeader("n", "g", time.Now(), Hash([]byte("x")))
	env := mustEncode(t, h, []byte("x"))

	cases := map[string][]byte{
		"short":     env[:3],
		"bad magic": append([]byte("XXXX"), env[4:]...),
		"bad ver":   append(append([]byte{}, env[:4]...), append([]byte{99}, env[5:]...)...),
		"trailing":  append(append([]byte{}, env...), 0xDE, 0xAD),
		"truncated": env[:len(env)-1],
	}
	for name, b := range cases {
		if _, _, err := Decode(b); err == nil {
			t.Fatalf("%s: expected ErrCorrupt", name)
		}
	}
}

func TestHashIsStableAndDistinct(t *testing.T) {
	a := Hash([]byte("same"))
	if a != Hash([]byte("same")) {
		t.Fatalf("hash not deterministic")
	}
	if a == Hash([]byte("other")) {
		t.Fatalf("distinct inputs collided")
	}
	if len(a) != 16 {
		t.Fatalf("hash width: got %d want 16", len(a))
	}
	if a == InitialHash {
		t.Fatalf("real hash equals sentinel")
	}
}

func TestEncodeRecordsDeterministicOrder(t *testing.T) {
	recs := []Record{
		{Key: "b", Value: []byte("2")},
		{Key: "a", Value: []byte("1"), Expiry: 1234},
	}
	rev := []Record{recs[1], recs[0]}

	x, err := EncodeRecords(recs)
	if err != nil {
		t.Fatal(err)
	}
	y, err := EncodeRecords(rev)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(x, y) {
		t.Fatalf("record order leaked into encoding")
	}

	back, err := DecodeRecords(x)
	if err != nil {
		t.Fatal(err)
	}
	if len(back) != 2 || back[0].Key != "a" || back[1].Key != "b" {
		t.Fatalf("decoded: %+v", back)
	}
	if back[0].Expiry != 1234 || back[1].Expiry != 0 {
		t.Fatalf("expiry round trip: %+v", back)
	}
}

package positions

import (
	"reflect"
	"testing"
)

func TestStore_DefaultsToZero(t *testing.T) {
	s := NewStore()
	for _, id := range []int{0, 1, 2, -5, 1000} {
		if got := s.Get(id); got != 0 {
			t.Fatalf("Get(%d) = %d, want 0", id, got)
		}
	}
}

func TestStore_SetOverwrites(t *testing.T) {
	s := NewStore()
	s.Set(1, 3)
	s.Set(1, 5)
	if got := s.Get(1); got != 5 {
		t.Fatalf("expected overwrite to 5, got %d", got)
	}
	if s.Len() != 1 {
		t.Fatalf("expected one entry, got %d", s.Len())
	}
}

func TestStore_SnapshotRestoreRoundTrip(t *testing.T) {
	s := NewStore()
	s.Set(1, 3)
	s.Set(2, 4)
	s.Set(9, 0)

	fresh := NewStore()
	fresh.Restore(s.Snapshot())
	for _, id := range []int{1, 2, 9, 77} {
		if fresh.Get(id) != s.Get(id) {
			t.Fatalf("Get(%d): restored %d, original %d", id, fresh.Get(id), s.Get(id))
		}
	}
}

func TestStore_SnapshotIsACopy(t *testing.T) {
	s := NewStore()
	s.Set(1, 2)
	snap := s.Snapshot()
	snap[1] = 7
	if s.Get(1) != 2 {
		t.Fatal("mutating a snapshot changed the store")
	}
}

func TestStore_RestoreReplacesEntries(t *testing.T) {
	s := NewStore()
	s.Set(5, 5)
	s.Restore(map[int]int{2: 4})
	if s.Get(5) != 0 || s.Get(2) != 4 {
		t.Fatalf("unexpected state after restore: %v", s.Snapshot())
	}
}

func TestStore_EmptySnapshotRestoreYieldsDefaults(t *testing.T) {
	fresh := NewStore()
	fresh.Restore(NewStore().Snapshot())
	for _, id := range []int{1, 2, 3} {
		if fresh.Get(id) != 0 {
			t.Fatalf("expected default 0 for %d, got %d", id, fresh.Get(id))
		}
	}
}

func TestCodec_RoundTrip(t *testing.T) {
	in := map[int]int{1: 3, 2: 4, -1: 0}
	data, err := Encode(in)
	if err != nil {
		t.Fatalf("Encode returned error: %v", err)
	}
	out, ok := Decode(data)
	if !ok {
		t.Fatalf("Decode rejected %s", data)
	}
	if !reflect.DeepEqual(in, out) {
		t.Fatalf("round trip mismatch: in=%v out=%v", in, out)
	}
}

func TestDecode_WrongShapeIsAbsent(t *testing.T) {
	cases := []string{
		``,
		`null`,
		`[]`,
		`[1,2]`,
		`"POSITIONS"`,
		`{"a": 1}`,
		`{"1": "x"}`,
		`{"1": 1.5}`,
		`{"1": -2}`,
		`{"1": {"2": 3}}`,
		`{not json`,
	}
	for _, tc := range cases {
		if got, ok := Decode([]byte(tc)); ok {
			t.Fatalf("Decode(%q) = %v, want ok=false", tc, got)
		}
	}
}

func TestDecode_EmptyObject(t *testing.T) {
	got, ok := Decode([]byte(`{}`))
	if !ok || len(got) != 0 {
		t.Fatalf("expected empty map, got %v ok=%v", got, ok)
	}
}

package docked

import (
	"encoding/json"
	"testing"
)

func TestRemarkParse(t *testing.T) {
	t.Run("number", func(t *testing.T) {
		r := Parse("-7.5")
		v, ok := r.Float()
		if !ok || v != -7.5 {
			t.Fatalf("expected -7.5, got %v ok=%v", v, ok)
		}
	})

	t.Run("string", func(t *testing.T) {
		r := Parse("pose_A")
		s, ok := r.Text()
		if !ok || s != "pose_A" {
			t.Fatalf("expected pose_A, got %q ok=%v", s, ok)
		}
	})

	t.Run("empty is null", func(t *testing.T) {
		if !Parse("").IsNull() {
			t.Fatal("expected null")
		}
	})
}

func TestRemarkString(t *testing.T) {
	cases := []struct {
		in   Remark
		want string
	}{
		{Number(12), "12"},
		{Number(-7.35), "-7.35"},
		{Str("A"), "A"},
		{Null(), ""},
	}
	for _, c := range cases {
		if got := c.in.String(); got != c.want {
			t.Errorf("String() = %q, want %q", got, c.want)
		}
	}
}

func TestRemarkOrdering(t *testing.T) {
	if !Number(1).Less(Number(2)) {
		t.Fatal("1 < 2")
	}
	if !Null().Less(Number(-100)) {
		t.Fatal("null sorts before numbers")
	}
	if !Number(1e9).Less(Str("a")) {
		t.Fatal("numbers sort before strings")
	}
	if Str("b").Less(Str("a")) {
		t.Fatal("strings compare lexicographically")
	}
}

func TestRemarkJSONRoundTrip(t *testing.T) {
	in := map[string]Remark{
		"deltaG":  Number(-7.5),
		"Cluster": Int(3),
		"name":    Str("ligand"),
		"missing": Null(),
	}
	data, err := json.Marshal(in)
	if err != nil {
		t.Fatal(err)
	}
	var out map[string]Remark
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatal(err)
	}
	for k, v := range in {
		if !out[k].Equal(v) {
			t.Fatalf("key %q: got %v, want %v", k, out[k], v)
		}
	}
}

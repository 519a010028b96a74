package host

import "testing"

func TestPropsFromMapSorted(t *testing.T) {
	p := PropsFromMap(map[string]any{"c": 3, "a": 1, "b": 2})
	want := []string{"a", "b", "c"}
	if len(p) != len(want) {
		t.Fatalf("len = %d, want %d", len(p), len(want))
	}
	for i, k := range want {
		if p[i].Key != k {
			t.Errorf("p[%d].Key = %q, want %q", i, p[i].Key, k)
		}
	}
}

func TestPropsGetLastWins(t *testing.T) {
	p := Props{P("a", 1), P("b", 2), P("a", 3)}

	v, ok := p.Get("a")
	if !ok || v != 3 {
		t.Errorf("Get(a) = %v, %v; want 3, true", v, ok)
	}
	if _, ok := p.Get("z"); ok {
		t.Error("Get(z) should not be found")
	}

	m := p.Map()
	if m["a"] != 3 || m["b"] != 2 || len(m) != 2 {
		t.Errorf("Map() = %v", m)
	}
}

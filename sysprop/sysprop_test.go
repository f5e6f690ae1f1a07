package sysprop

import (
	"sync"
	"testing"
)

func TestMapStore(t *testing.T) {
	seed := map[string]string{"a": "1"}
	s := NewMapStore(seed)
	seed["a"] = "changed"

	if v, ok := s.Lookup("a"); !ok || v != "1" {
		t.Errorf("Lookup(a) = %q, %v; want 1, true", v, ok)
	}
	if _, ok := s.Lookup("missing"); ok {
		t.Error("Lookup(missing) reported set")
	}

	s.Set("b", "2")
	all := s.All()
	if len(all) != 2 || all["b"] != "2" {
		t.Errorf("All() = %v", all)
	}

	all["b"] = "mutated"
	if v, _ := s.Lookup("b"); v != "2" {
		t.Error("All() returned a live map")
	}
}

func TestMapStore_Concurrent(t *testing.T) {
	s := NewMapStore(nil)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Set("k", "v")
			_, _ = s.Lookup("k")
			_ = s.All()
		}()
	}
	wg.Wait()
}

func TestWithPrefix(t *testing.T) {
	values := map[string]string{
		"ORG_GRADLE_PROJECT_b": "2",
		"ORG_GRADLE_PROJECT_a": "1",
		"ORG_GRADLE_PROJECT_":  "empty name",
		"PATH":                 "/bin",
	}

	got := WithPrefix(values, "ORG_GRADLE_PROJECT_")
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2: %+v", len(got), got)
	}
	if got[0].Name != "a" || got[0].Value != "1" || got[0].Key != "ORG_GRADLE_PROJECT_a" {
		t.Errorf("got[0] = %+v", got[0])
	}
	if got[1].Name != "b" {
		t.Errorf("got[1] = %+v", got[1])
	}
}

func TestParseEnviron(t *testing.T) {
	got := ParseEnviron([]string{"A=1", "B=x=y", "NOEQUALS", "=bad", "EMPTY="})
	want := map[string]string{"A": "1", "B": "x=y", "EMPTY": ""}
	if len(got) != len(want) {
		t.Fatalf("ParseEnviron = %v, want %v", got, want)
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("%s = %q, want %q", k, got[k], v)
		}
	}
}

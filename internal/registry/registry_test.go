package registry

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
)

func TestRegistrySetGet(t *testing.T) {
	r := New()
	obj := &struct{ name string }{"a"}

	if r.Exists("x") {
		t.Fatal("Empty registry should not contain x")
	}
	if err := r.Set("x", obj); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if !r.Exists("x") {
		t.Fatal("Expected x to exist after Set")
	}

	got, err := r.Get("x")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != obj {
		t.Errorf("Expected the same object back, got %v", got)
	}
	if r.Len() != 1 {
		t.Errorf("Expected 1 entry, got %d", r.Len())
	}
}

func TestRegistryGetMissing(t *testing.T) {
	r := New()
	_, err := r.Get("missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestRegistrySetDuplicate(t *testing.T) {
	r := New()
	first := &struct{ n int }{1}
	second := &struct{ n int }{2}

	if err := r.Set("id", first); err != nil {
		t.Fatal(err)
	}
	// Re-setting the same object is allowed.
	if err := r.Set("id", first); err != nil {
		t.Errorf("Re-setting the same object should succeed, got %v", err)
	}

	err := r.Set("id", second)
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("Expected ErrDuplicate, got %v", err)
	}
	got, _ := r.Get("id")
	if got != first {
		t.Error("Existing entry must be kept after a rejected Set")
	}
}

func TestRegistryGenerate(t *testing.T) {
	n := 0
	r := NewWithGenerator(func() string {
		n++
		return fmt.Sprintf("gen-%d", n)
	})
	if id := r.Generate(); id != "gen-1" {
		t.Errorf("Expected gen-1, got %s", id)
	}
	if id := r.Generate(); id != "gen-2" {
		t.Errorf("Expected gen-2, got %s", id)
	}

	def := New()
	a, b := def.Generate(), def.Generate()
	if a == b {
		t.Error("Default generator returned the same id twice")
	}
	if _, err := uuid.Parse(a); err != nil {
		t.Errorf("Default generator should return UUIDs, got %q", a)
	}
}

func TestScopeTransform(t *testing.T) {
	root := "0b5ba1d9-5f7e-4a1d-9b51-5d1cbf4f4a10"

	tests := []struct {
		name  string
		id    string
		root  string
		other string
		same  bool
	}{
		{"deterministic", "A1", root, root, true},
		{"differentRoots", "A1", root, "5c0c0bd0-3a4d-4c7c-8d36-8f0f5f1e1e11", false},
		{"nonUUIDRoot", "A1", "root-guid", "root-guid", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := ScopeTransform(tt.id, tt.root)
			b := ScopeTransform(tt.id, tt.other)
			if (a == b) != tt.same {
				t.Errorf("ScopeTransform(%q,%q)=%s vs (%q,%q)=%s, expected same=%v",
					tt.id, tt.root, a, tt.id, tt.other, b, tt.same)
			}
			if a == tt.id {
				t.Error("Scoped id should differ from the local id")
			}
		})
	}

	if ScopeTransform("A1", root) == ScopeTransform("A2", root) {
		t.Error("Different local ids must not collide under the same root")
	}
}

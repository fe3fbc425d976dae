package tagreader

import (
	"errors"
	"strings"
	"testing"
)

func TestPeekDoesNotConsume(t *testing.T) {
	r := New(strings.NewReader(`<?xml version="1.0"?><!-- c --><canvas width="10"/>`))

	for i := 0; i < 2; i++ {
		tag, err := r.Peek()
		if err != nil {
			t.Fatalf("Peek failed: %v", err)
		}
		if tag.Name != "canvas" {
			t.Errorf("Peek #%d: expected canvas, got %s", i, tag.Name)
		}
	}

	tag, err := r.ExpectOpen("canvas")
	if err != nil {
		t.Fatalf("ExpectOpen failed: %v", err)
	}
	if v, ok := tag.Attr("width"); !ok || v != "10" {
		t.Errorf("Expected width=10, got %q (present=%v)", v, ok)
	}
	if tag.Has("height") {
		t.Error("height should not be present")
	}
	if err := r.ExpectClose("canvas"); err != nil {
		t.Errorf("ExpectClose failed: %v", err)
	}
}

func TestExpectOpenNameMismatch(t *testing.T) {
	r := New(strings.NewReader(`<layer/>`))
	_, err := r.ExpectOpen("canvas")
	if err == nil {
		t.Fatal("Expected error for mismatched tag name")
	}
	var rerr *Error
	if !errors.As(err, &rerr) {
		t.Fatalf("Expected *Error, got %T", err)
	}
	if rerr.Line != 1 {
		t.Errorf("Expected line 1, got %d", rerr.Line)
	}
}

func TestReadText(t *testing.T) {
	r := New(strings.NewReader(`<name>  My Canvas  </name>`))
	if _, err := r.ExpectOpen("name"); err != nil {
		t.Fatal(err)
	}
	text, err := r.ReadText()
	if err != nil {
		t.Fatalf("ReadText failed: %v", err)
	}
	if text.Text != "My Canvas" {
		t.Errorf("Expected normalized text %q, got %q", "My Canvas", text.Text)
	}
	if text.Raw != "  My Canvas  " {
		t.Errorf("Expected raw text %q, got %q", "  My Canvas  ", text.Raw)
	}
	if err := r.ExpectClose("name"); err != nil {
		t.Errorf("ExpectClose failed: %v", err)
	}
}

func TestReadTextEmptyElement(t *testing.T) {
	r := New(strings.NewReader(`<desc/>`))
	if _, err := r.ExpectOpen("desc"); err != nil {
		t.Fatal(err)
	}
	text, err := r.ReadText()
	if err != nil {
		t.Fatalf("ReadText failed: %v", err)
	}
	if text.Raw != "" {
		t.Errorf("Expected empty text, got %q", text.Raw)
	}
	if err := r.ExpectClose("desc"); err != nil {
		t.Errorf("ExpectClose failed: %v", err)
	}
}

func TestReadTextRejectsChildren(t *testing.T) {
	r := New(strings.NewReader(`<name>a<b/></name>`))
	if _, err := r.ExpectOpen("name"); err != nil {
		t.Fatal(err)
	}
	if _, err := r.ReadText(); err == nil {
		t.Error("Expected error for element inside text content")
	}
}

func TestForEachChildAndSkip(t *testing.T) {
	doc := `<defs>
		<real value="1"/>
		<bones><bone><x>1</x></bone></bones>
		<vector><x>1</x><y>2</y></vector>
	</defs>`
	r := New(strings.NewReader(doc))
	if _, err := r.ExpectOpen("defs"); err != nil {
		t.Fatal(err)
	}

	var seen []string
	err := r.ForEachChild("defs", func(tag Tag) error {
		seen = append(seen, tag.Name)
		return r.Skip()
	})
	if err != nil {
		t.Fatalf("ForEachChild failed: %v", err)
	}

	want := []string{"real", "bones", "vector"}
	if strings.Join(seen, ",") != strings.Join(want, ",") {
		t.Errorf("Expected children %v, got %v", want, seen)
	}
}

func TestForEachChildRejectsText(t *testing.T) {
	r := New(strings.NewReader(`<defs>oops<real value="1"/></defs>`))
	if _, err := r.ExpectOpen("defs"); err != nil {
		t.Fatal(err)
	}
	err := r.ForEachChild("defs", func(tag Tag) error { return r.Skip() })
	if err == nil {
		t.Error("Expected error for stray text between children")
	}
}

func TestCharsetDeclaration(t *testing.T) {
	doc := "<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?><name>caf\xe9</name>"
	r := New(strings.NewReader(doc))
	if _, err := r.ExpectOpen("name"); err != nil {
		t.Fatalf("ExpectOpen failed: %v", err)
	}
	text, err := r.ReadText()
	if err != nil {
		t.Fatalf("ReadText failed: %v", err)
	}
	if text.Text != "café" {
		t.Errorf("Expected decoded text %q, got %q", "café", text.Text)
	}
}

func TestUnexpectedEOF(t *testing.T) {
	r := New(strings.NewReader(`<canvas>`))
	if _, err := r.ExpectOpen("canvas"); err != nil {
		t.Fatal(err)
	}
	if err := r.ForEachChild("canvas", func(Tag) error { return nil }); err == nil {
		t.Error("Expected error at end of document")
	}
}

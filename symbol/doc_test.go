package symbol

import (
	"reflect"
	"testing"
)

func TestParseDoc(t *testing.T) {
	doc := ParseDoc(`Returns a user by id. Looks in the primary store first.

Falls back to the replica.
@param id the user id
@param verbose
   include audit fields
@return the user
@HTTP 404 Not Found`)

	if doc.FirstSentence != "Returns a user by id." {
		t.Errorf("FirstSentence = %q", doc.FirstSentence)
	}
	if want := "Returns a user by id. Looks in the primary store first.\n\nFalls back to the replica."; doc.Text != want {
		t.Errorf("Text = %q, want %q", doc.Text, want)
	}
	if len(doc.Tags) != 5 {
		t.Fatalf("got %d tags, want 5", len(doc.Tags))
	}
	if want := (Tag{Name: "param", Text: "id the user id"}); doc.Tags[0] != want {
		t.Errorf("Tags[0] = %+v, want %+v", doc.Tags[0], want)
	}
	// Continuation lines join the tag that precedes them.
	if want := (Tag{Name: "param", Text: "verbose\ninclude audit fields"}); doc.Tags[1] != want {
		t.Errorf("Tags[1] = %+v, want %+v", doc.Tags[1], want)
	}
	for _, name := range []string{"@return", "return"} {
		if got := doc.TagText(name); got != "the user" {
			t.Errorf("TagText(%q) = %q", name, got)
		}
	}
	if want := []Tag{{Name: "HTTP", Text: "404 Not Found"}}; !reflect.DeepEqual(doc.TagsNamed("HTTP"), want) {
		t.Errorf("TagsNamed(HTTP) = %v", doc.TagsNamed("HTTP"))
	}

	if comment, ok := doc.ParamComment("id"); !ok || comment != "the user id" {
		t.Errorf("ParamComment(id) = %q, %v", comment, ok)
	}
	if _, ok := doc.ParamComment("missing"); ok {
		t.Error("ParamComment(missing) should not be found")
	}
}

func TestParseDoc_Empty(t *testing.T) {
	doc := ParseDoc("")
	if !doc.IsZero() {
		t.Error("empty doc should be zero")
	}
	if doc.FirstSentence != "" {
		t.Errorf("FirstSentence = %q", doc.FirstSentence)
	}
}

func TestParseDoc_KeepsInlineTags(t *testing.T) {
	doc := ParseDoc("{@inheritDoc}\n@return value")
	if doc.Text != InheritDocMarker {
		t.Errorf("Text = %q", doc.Text)
	}
	if got := doc.TagText("return"); got != "value" {
		t.Errorf("@return = %q", got)
	}
}

func TestFirstSentence(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"One. Two.", "One."},
		{"Version 1.2 is current. Next.", "Version 1.2 is current."},
		{"No period at all", "No period at all"},
		{"First paragraph\nstill first\n\nsecond paragraph", "First paragraph\nstill first"},
		{"Ends here.", "Ends here."},
		{"", ""},
	}
	for _, tt := range tests {
		if got := FirstSentence(tt.in); got != tt.want {
			t.Errorf("FirstSentence(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

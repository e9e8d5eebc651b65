package symbol

import (
	"strings"
	"unicode"
)

// InheritDocTag is the inline marker requesting documentation from the
// overridden declaration.
const InheritDocTag = "@inheritDoc"

// InheritDocMarker is the literal inline form of InheritDocTag.
const InheritDocMarker = "{" + InheritDocTag + "}"

// Tag is a block tag such as "@param id the user id".
type Tag struct {
	// Name is the tag name without the leading '@'.
	Name string
	Text string
}

// Doc is a parsed documentation comment.
type Doc struct {
	// Text is the comment body without block tags. Inline tags are kept.
	Text string

	// FirstSentence is the summary sentence of Text.
	FirstSentence string

	Tags []Tag
}

// IsZero reports whether the comment is empty.
func (d Doc) IsZero() bool {
	return d.Text == "" && len(d.Tags) == 0
}

// TagsNamed returns the tags called name, in order. A leading '@' in name is ignored.
func (d Doc) TagsNamed(name string) []Tag {
	name = strings.TrimPrefix(name, "@")
	var out []Tag
	for _, t := range d.Tags {
		if t.Name == name {
			out = append(out, t)
		}
	}
	return out
}

// TagText concatenates the text of every tag called name.
func (d Doc) TagText(name string) string {
	var sb strings.Builder
	for _, t := range d.TagsNamed(name) {
		sb.WriteString(t.Text)
	}
	return sb.String()
}

// ParamComment returns the @param comment for the named parameter.
func (d Doc) ParamComment(param string) (string, bool) {
	for _, t := range d.TagsNamed("param") {
		name, comment, _ := strings.Cut(t.Text, " ")
		if strings.TrimSpace(name) == param {
			return strings.TrimSpace(comment), true
		}
	}
	return "", false
}

// ParseDoc parses comment text in javadoc form: a free-text body followed by
// block tags, each starting a line with '@'. Continuation lines are appended
// to the preceding tag.
func ParseDoc(raw string) Doc {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	lines := strings.Split(raw, "\n")

	var body []string
	var tags []Tag
	inTags := false
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if isBlockTag(trimmed) {
			inTags = true
			name, text := trimmed[1:], ""
			if i := strings.IndexFunc(name, unicode.IsSpace); i >= 0 {
				name, text = name[:i], name[i+1:]
			}
			tags = append(tags, Tag{Name: name, Text: strings.TrimSpace(text)})
			continue
		}
		if inTags {
			if trimmed == "" {
				continue
			}
			last := &tags[len(tags)-1]
			if last.Text == "" {
				last.Text = trimmed
			} else {
				last.Text += "\n" + trimmed
			}
			continue
		}
		body = append(body, strings.TrimRightFunc(line, unicode.IsSpace))
	}

	text := strings.TrimSpace(strings.Join(body, "\n"))
	return Doc{
		Text:          text,
		FirstSentence: FirstSentence(text),
		Tags:          tags,
	}
}

func isBlockTag(line string) bool {
	return len(line) > 1 && line[0] == '@' && unicode.IsLetter(rune(line[1]))
}

// FirstSentence returns text up to and including the first period followed by
// whitespace or the end of text. A blank line also ends the sentence.
func FirstSentence(text string) string {
	text = strings.TrimSpace(text)
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '.':
			if i+1 == len(text) || isSpace(text[i+1]) {
				return text[:i+1]
			}
		case '\n':
			if i+1 < len(text) && text[i+1] == '\n' {
				return strings.TrimSpace(text[:i])
			}
		}
	}
	return text
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

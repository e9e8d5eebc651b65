package gosrc

import (
	"fmt"
	"go/ast"
	"go/token"
	"strings"

	"github.com/broady/swaggerdoc/symbol"
)

// DirectivePrefix starts every annotation comment.
const DirectivePrefix = "//api:"

// Declaration directives map to the annotation they produce.
var declDirectives = map[string]string{
	"path":     "Path",
	"get":      "GET",
	"post":     "POST",
	"put":      "PUT",
	"delete":   "DELETE",
	"head":     "HEAD",
	"options":  "OPTIONS",
	"patch":    "PATCH",
	"override": "Override",
}

// Parameter directives take the Go parameter name first and annotate that
// parameter. The optional second word is the documented name.
var paramDirectives = map[string]string{
	"pathparam": "PathParam",
	"query":     "QueryParam",
	"header":    "HeaderParam",
	"form":      "FormParam",
	"body":      "BodyParam",
	"context":   "Context",
}

// directives holds the annotations parsed from one comment group.
type directives struct {
	decl   symbol.Annotations
	params map[string]symbol.Annotations
}

func (d directives) param(name string) symbol.Annotations {
	return d.params[name]
}

// parseDirectives extracts //api: lines from cg.
//
//	//api:path /users/{id}
//	//api:get
//	//api:pathparam id
//	//api:query limit max
func parseDirectives(fset *token.FileSet, cg *ast.CommentGroup) (directives, error) {
	var d directives
	if cg == nil {
		return d, nil
	}
	for _, c := range cg.List {
		if !strings.HasPrefix(c.Text, DirectivePrefix) {
			continue
		}
		parts := strings.Fields(strings.TrimPrefix(c.Text, DirectivePrefix))
		if len(parts) == 0 {
			continue
		}
		pos := fset.Position(c.Pos())
		kind := strings.ToLower(parts[0])

		if name, ok := declDirectives[kind]; ok {
			d.decl = append(d.decl, symbol.Annotation{Name: name, Value: strings.Join(parts[1:], " ")})
			continue
		}
		name, ok := paramDirectives[kind]
		if !ok {
			return d, fmt.Errorf("%s: unknown directive %s%s", pos, DirectivePrefix, parts[0])
		}
		if len(parts) < 2 {
			return d, fmt.Errorf("%s: %s%s requires a parameter name", pos, DirectivePrefix, parts[0])
		}
		value := parts[1]
		if len(parts) > 2 {
			value = parts[2]
		}
		if d.params == nil {
			d.params = make(map[string]symbol.Annotations)
		}
		d.params[parts[1]] = append(d.params[parts[1]], symbol.Annotation{Name: name, Value: value})
	}
	return d, nil
}

// docText returns cg without directive lines.
func docText(cg *ast.CommentGroup) string {
	if cg == nil {
		return ""
	}
	var lines []string
	for _, line := range strings.Split(cg.Text(), "\n") {
		if strings.HasPrefix(line, strings.TrimPrefix(DirectivePrefix, "//")) {
			continue
		}
		lines = append(lines, line)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// tagAnnotations turns every key of a struct tag into an annotation, in tag
// order.
func tagAnnotations(tag string) symbol.Annotations {
	var out symbol.Annotations
	for tag != "" {
		i := 0
		for i < len(tag) && tag[i] == ' ' {
			i++
		}
		tag = tag[i:]
		if tag == "" {
			break
		}

		i = 0
		for i < len(tag) && tag[i] != ':' && tag[i] != ' ' {
			i++
		}
		if i == 0 || i+1 >= len(tag) || tag[i] != ':' || tag[i+1] != '"' {
			break
		}
		key := tag[:i]
		tag = tag[i+1:]

		i = 1
		for i < len(tag) && tag[i] != '"' {
			if tag[i] == '\\' {
				i++
			}
			i++
		}
		if i >= len(tag) {
			break
		}
		out = append(out, symbol.Annotation{Name: key, Value: tag[1:i]})
		tag = tag[i+1:]
	}
	return out
}

package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/broady/swaggerdoc/swagger"
	"github.com/broady/swaggerdoc/symbol"
)

// PathAnnotation carries the path fragment of a class or method.
const PathAnnotation = "Path"

// OverrideAnnotation marks a method overriding or implementing an inherited one.
const OverrideAnnotation = "Override"

// paramKinds maps parameter annotations to their Swagger parameter kind.
var paramKinds = map[string]swagger.ParamKind{
	"PathParam":   swagger.ParamPath,
	"QueryParam":  swagger.ParamQuery,
	"HeaderParam": swagger.ParamHeader,
	"FormParam":   swagger.ParamForm,
	"BodyParam":   swagger.ParamBody,
}

// responsePattern matches "<code> <message>" anywhere in an error tag.
var responsePattern = regexp.MustCompile(`(\d+) (.+)`)

// Operation extracts the operation declared by m under the path context
// basePath. It returns a nil operation when m carries neither a verb nor a
// path annotation. The model set holds the models of parameter and return
// types when Options.ParseModels is set; it is never nil.
func (p *Parser) Operation(basePath string, m *symbol.Method) (*swagger.Operation, *swagger.ModelSet) {
	return p.operation(basePath, nil, m)
}

// SubOperation extracts m as a method of the sub-resource returned by the
// locator operation parent. The path context is the parent's path, and the
// parent's parameters are appended after m's own.
func (p *Parser) SubOperation(parent *swagger.Operation, m *symbol.Method) (*swagger.Operation, *swagger.ModelSet) {
	return p.operation(parent.Path, parent, m)
}

func (p *Parser) operation(basePath string, parent *swagger.Operation, m *symbol.Method) (*swagger.Operation, *swagger.ModelSet) {
	models := new(swagger.ModelSet)
	verb := httpMethod(m.Annotations)
	fragment := pathOf(m.Annotations)
	if verb == "" && fragment == "" {
		return nil, models
	}

	docs := p.docSource(m)
	op := &swagger.Operation{
		Method: verb,
		Name:   m.Name,
		Path:   basePath + fragment,
	}

	for i, param := range m.Params {
		kind, ok := p.paramKind(verb, param)
		if !ok {
			continue
		}
		if p.opts.ParseModels {
			models.Merge(p.Models(param.Type))
		}
		op.Parameters = append(op.Parameters, swagger.Parameter{
			Kind:        kind,
			Name:        paramName(param),
			Description: paramDescription(docs, i),
			Type:        p.typeName(param.Type),
		})
	}
	if parent != nil {
		op.Parameters = append(op.Parameters, parent.Parameters...)
	}

	op.ResponseMessages = p.responses(docs.Doc)

	op.ReturnType = p.typeName(m.Returns)
	if p.opts.ParseModels {
		models.Merge(p.Models(m.Returns))
	}

	op.Summary = docs.Doc.FirstSentence
	if op.Summary == "" {
		op.Summary = docs.Doc.TagText("return")
	}
	op.Notes = notes(m.Doc.Text, op.Summary)
	return op, models
}

// httpMethod returns the first verb annotation of as, or "".
func httpMethod(as symbol.Annotations) swagger.HTTPMethod {
	for _, v := range swagger.HTTPMethods {
		if as.Has(string(v)) {
			return v
		}
	}
	return ""
}

func pathOf(as symbol.Annotations) string {
	a, _ := as.Get(PathAnnotation)
	return a.Value
}

// paramKind applies the inclusion policy: excluded annotations first, then
// recognized parameter annotations, then the implicit POST body.
func (p *Parser) paramKind(verb swagger.HTTPMethod, param *symbol.Param) (swagger.ParamKind, bool) {
	for _, name := range p.opts.ExcludedAnnotations {
		if param.Annotations.Has(name) {
			return "", false
		}
	}
	for _, a := range param.Annotations {
		if kind, ok := paramKinds[symbol.SimpleName(a.Name)]; ok {
			return kind, true
		}
	}
	if len(param.Annotations) == 0 && verb == swagger.POST {
		return swagger.ParamNone, true
	}
	return "", false
}

// paramName prefers the value of the parameter's kind annotation.
func paramName(param *symbol.Param) string {
	for _, a := range param.Annotations {
		if _, ok := paramKinds[symbol.SimpleName(a.Name)]; ok && a.Value != "" {
			return a.Value
		}
	}
	return param.Name
}

// paramDescription reads the @param comment of the i-th parameter of docs,
// matched by that method's own parameter name.
func paramDescription(docs *symbol.Method, i int) string {
	if i >= len(docs.Params) {
		return ""
	}
	comment, _ := docs.Doc.ParamComment(docs.Params[i].Name)
	return comment
}

func (p *Parser) responses(doc symbol.Doc) []swagger.ResponseMessage {
	var out []swagger.ResponseMessage
	for _, name := range p.opts.ErrorTags {
		for _, tag := range doc.TagsNamed(name) {
			match := responsePattern.FindStringSubmatch(tag.Text)
			if match == nil {
				continue
			}
			code, err := strconv.Atoi(match[1])
			if err != nil {
				continue
			}
			out = append(out, swagger.ResponseMessage{Code: code, Message: match[2]})
		}
	}
	return out
}

// notes removes the summary and the inherit-doc marker from text, once each.
func notes(text, summary string) string {
	if summary != "" {
		text = strings.Replace(text, summary, "", 1)
	}
	text = strings.Replace(text, symbol.InheritDocMarker, "", 1)
	return strings.TrimSpace(text)
}

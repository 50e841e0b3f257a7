package generator

import (
	"fmt"
	"strings"

	"github.com/erraggy/oafront/internal/codewriter"
	"github.com/erraggy/oafront/internal/httputil"
	"github.com/erraggy/oafront/internal/naming"
	"github.com/erraggy/oafront/parser"
)

// FullResponseType is the name of the envelope interface used by operations
// without exactly one success response.
const FullResponseType = "FullResponse"

// TypesModule is the declaration module (<name>-types.d.ts) as data.
//
// Interfaces are rendered in order: the FullResponse helper, then every
// operation's request interface followed by its response interfaces, then
// the exported aggregate client interface.
type TypesModule struct {
	// Header holds comment lines written above the declarations.
	Header     []string
	Interfaces []*InterfaceDecl
}

// InterfaceDecl is one TypeScript interface.
type InterfaceDecl struct {
	Name       string
	TypeParams []string
	Exported   bool
	Fields     []FieldDecl
	Methods    []MethodDecl
}

// FieldDecl is a quoted property signature: 'name'?: Type;
type FieldDecl struct {
	Name     string
	Type     string
	Optional bool
}

// MethodDecl is a method signature: name(params): returns;
type MethodDecl struct {
	Name    string
	Params  string
	Returns string
}

// Interface returns the declaration with the given name, or nil.
func (m *TypesModule) Interface(name string) *InterfaceDecl {
	for _, decl := range m.Interfaces {
		if decl.Name == name {
			return decl
		}
	}
	return nil
}

// Field returns the field with the given name, or nil.
func (d *InterfaceDecl) Field(name string) *FieldDecl {
	for i := range d.Fields {
		if d.Fields[i].Name == name {
			return &d.Fields[i]
		}
	}
	return nil
}

// BuildTypes builds the declaration module for ops. name is the module name;
// the aggregate interface is its capitalized form.
func BuildTypes(doc *parser.Document, ops []*Operation, name string) (*TypesModule, error) {
	return newTypesBuilder(doc, newCollector(nil)).build(ops, name)
}

type typesBuilder struct {
	resolver *Resolver
	issues   *collector
	names    map[string]bool
}

func newTypesBuilder(doc *parser.Document, c *collector) *typesBuilder {
	return &typesBuilder{resolver: NewResolver(doc), issues: c, names: make(map[string]bool)}
}

func (b *typesBuilder) build(ops []*Operation, name string) (*TypesModule, error) {
	m := &TypesModule{}
	m.Interfaces = append(m.Interfaces, &InterfaceDecl{
		Name:       FullResponseType,
		TypeParams: []string{"T"},
		Fields: []FieldDecl{
			{Name: "statusCode", Type: "number"},
			{Name: "headers", Type: "object"},
			{Name: "body", Type: "T"},
		},
	})

	client := &InterfaceDecl{
		Name:     naming.Capitalize(name),
		Exported: true,
		Methods:  []MethodDecl{{Name: "setBaseUrl", Params: "newUrl: string", Returns: "void"}},
	}

	for _, op := range ops {
		req, err := b.request(op)
		if err != nil {
			return nil, err
		}
		b.add(m, op, req)

		members, err := b.responses(m, op)
		if err != nil {
			return nil, err
		}
		client.Methods = append(client.Methods, MethodDecl{
			Name:    op.OperationID,
			Params:  "req: " + req.Name,
			Returns: "Promise<" + strings.Join(members, " | ") + ">",
		})
	}

	m.Interfaces = append(m.Interfaces, client)
	return m, nil
}

// add appends decl and records a warning when its name is already taken.
func (b *typesBuilder) add(m *TypesModule, op *Operation, decl *InterfaceDecl) {
	if b.names[decl.Name] {
		b.issues.add(op, "", SeverityWarning, fmt.Sprintf("interface %s is declared more than once", decl.Name))
	}
	b.names[decl.Name] = true
	m.Interfaces = append(m.Interfaces, decl)
}

// request lists parameters first, then the JSON body properties whose names
// no parameter has claimed.
func (b *typesBuilder) request(op *Operation) (*InterfaceDecl, error) {
	decl := &InterfaceDecl{Name: naming.Capitalize(op.OperationID) + "Request"}
	added := make(map[string]bool)

	for _, p := range op.Definition.Parameters {
		// A field name can appear once; the first parameter with it wins.
		if added[p.Name] {
			b.issues.add(op, "parameters."+p.Name, SeverityWarning, fmt.Sprintf(
				"%s parameter %q has the same name as an earlier parameter; omitted from %s",
				p.In, p.Name, decl.Name))
			continue
		}
		t, err := b.resolver.Resolve(p.Schema)
		if err != nil {
			return nil, fmt.Errorf("%s parameter %q: %w", op.OperationID, p.Name, err)
		}
		added[p.Name] = true
		decl.Fields = append(decl.Fields, FieldDecl{Name: p.Name, Type: t, Optional: !p.Required})
	}

	body := op.Definition.RequestBody
	if body == nil {
		return decl, nil
	}
	fields, _, err := b.content(op, "requestBody", body.Content)
	if err != nil {
		return nil, err
	}
	for _, f := range fields {
		if added[f.Name] {
			continue
		}
		added[f.Name] = true
		decl.Fields = append(decl.Fields, f)
	}
	return decl, nil
}

// responses declares one interface per response with a known reason phrase
// and returns the members of the operation's response union.
func (b *typesBuilder) responses(m *TypesModule, op *Operation) ([]string, error) {
	var members []string
	for _, resp := range op.Definition.Responses {
		t, err := b.response(m, op, resp)
		if err != nil {
			return nil, err
		}
		members = append(members, t)
	}
	if len(members) == 0 {
		members = []string{"undefined"}
	}
	if op.IsFullResponse {
		for i, t := range members {
			members[i] = FullResponseType + "<" + t + ">"
		}
	}
	return members, nil
}

func (b *typesBuilder) response(m *TypesModule, op *Operation, resp *parser.Response) (string, error) {
	// Clients discard 204 bodies.
	if resp.StatusCode == "204" {
		return "undefined", nil
	}
	phrase, ok := httputil.ReasonPhrase(resp.StatusCode)
	if !ok {
		sev := SeverityInfo
		if !httputil.ValidateStatusCode(resp.StatusCode) {
			sev = SeverityWarning
		}
		b.issues.add(op, "responses."+resp.StatusCode, sev,
			fmt.Sprintf("status code %q has no standard reason phrase; typed as undefined", resp.StatusCode))
		return "undefined", nil
	}

	decl := &InterfaceDecl{
		Name: naming.Capitalize(op.OperationID) + "Response" + naming.ClassCase(phrase),
	}
	fields, isArray, err := b.content(op, "responses."+resp.StatusCode, resp.Content)
	if err != nil {
		return "", err
	}
	decl.Fields = fields
	b.add(m, op, decl)

	if isArray {
		return "Array<" + decl.Name + ">", nil
	}
	return decl.Name, nil
}

// content builds fields from the first application/json media type. An array
// root contributes the properties of its items and reports isArray.
func (b *typesBuilder) content(op *Operation, at string, content []*parser.MediaType) ([]FieldDecl, bool, error) {
	mt := parser.JSONContent(content)
	if mt == nil {
		if len(content) > 0 {
			b.issues.add(op, at, SeverityWarning, fmt.Sprintf(
				"no application/json content (found %s); generated an empty interface", content[0].ContentType))
		}
		return nil, false, nil
	}

	location := fmt.Sprintf("%s %s", op.OperationID, strings.ReplaceAll(at, ".", " "))
	root, err := b.resolver.root(mt.Schema)
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", location, err)
	}
	if isShapeless(root) {
		b.issues.add(op, at, SeverityInfo, "JSON content has no schema to type")
		return nil, false, nil
	}

	isArray := root.Type == "array"
	if isArray {
		root = root.Items
	}
	objFields, err := b.resolver.objectFields(root, location)
	if err != nil {
		return nil, false, err
	}

	fields := make([]FieldDecl, 0, len(objFields))
	for _, f := range objFields {
		t, err := b.resolver.Resolve(f.schema)
		if err != nil {
			return nil, false, fmt.Errorf("%s property %q: %w", location, f.name, err)
		}
		fields = append(fields, FieldDecl{Name: f.name, Type: t, Optional: !f.required})
	}
	return fields, isArray, nil
}

// Render writes the module as TypeScript declarations.
func (m *TypesModule) Render() string {
	w := codewriter.New()
	for _, line := range m.Header {
		w.WriteLine(line)
	}
	w.BlankLineIfLastNot()

	for i, decl := range m.Interfaces {
		if i > 0 {
			w.BlankLine()
		}
		decl.render(w)
	}
	w.NewLineIfLastNot()
	return w.String()
}

func (d *InterfaceDecl) render(w *codewriter.Writer) {
	head := "interface " + d.Name
	if d.Exported {
		head = "export " + head
	}
	if len(d.TypeParams) > 0 {
		head += "<" + strings.Join(d.TypeParams, ", ") + ">"
	}

	w.Write(head).Block(func() {
		for _, f := range d.Fields {
			w.Quote(f.Name)
			if f.Optional {
				w.Write("?")
			}
			w.Write(": " + f.Type + ";").NewLine()
		}
		for _, m := range d.Methods {
			w.WriteLine(m.Name + "(" + m.Params + "): " + m.Returns + ";")
		}
	})
}

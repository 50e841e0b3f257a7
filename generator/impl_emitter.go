package generator

import (
	"fmt"
	"strings"

	"github.com/erraggy/oafront/internal/codewriter"
	"github.com/erraggy/oafront/internal/httputil"
	"github.com/erraggy/oafront/internal/naming"
	"github.com/erraggy/oafront/internal/opid"
)

// ImplementationModule is the client module (<name>.ts or <name>.js) as data.
type ImplementationModule struct {
	// Name is the module base name; the declarations live in ./<Name>-types.
	Name string
	// TypesName is the aggregate interface every call is typed against.
	TypesName string
	Language  Language
	Header    []string
	Calls     []*CallDecl
}

// CallDecl is one exported async function.
type CallDecl struct {
	OperationID string
	// Method is upper-case, e.g. "POST".
	Method string
	// Path is the path template with every "{" turned into "${request.",
	// ready to be placed inside a template literal.
	Path string
	// UsesQuery is true for GET calls, which send request as the query
	// string instead of a JSON body.
	UsesQuery    bool
	FullResponse bool
	// NoContent marks a call whose only success response is 204.
	NoContent bool
}

// Call returns the call with the given operation id, or nil.
func (m *ImplementationModule) Call(operationID string) *CallDecl {
	for _, c := range m.Calls {
		if c.OperationID == operationID {
			return c
		}
	}
	return nil
}

// BuildImplementation lays out one call per operation. It reads only the
// derived operation records, so ids always match the declaration module.
func BuildImplementation(ops []*Operation, name string, lang Language) *ImplementationModule {
	m := &ImplementationModule{
		Name:      name,
		TypesName: naming.Capitalize(name),
		Language:  lang,
	}
	for _, op := range ops {
		m.Calls = append(m.Calls, &CallDecl{
			OperationID:  op.OperationID,
			Method:       strings.ToUpper(op.Method),
			Path:         strings.ReplaceAll(op.Path, "{", "${request."),
			UsesQuery:    strings.EqualFold(op.Method, httputil.MethodGet),
			FullResponse: op.IsFullResponse,
			NoContent:    op.NoContentSuccess,
		})
	}
	return m
}

// Render writes the module in the configured language.
func (m *ImplementationModule) Render() string {
	w := codewriter.New()
	for _, line := range m.Header {
		w.WriteLine(line)
	}
	w.BlankLineIfLastNot()

	isTS := m.Language == LanguageTS
	w.ConditionalWriteLine(isTS, fmt.Sprintf("import type { %s } from './%s-types'", m.TypesName, m.Name))
	w.BlankLineIfLastNot()

	w.WriteLine(fmt.Sprintf("// The base URL for the API. This can be overridden by calling `%s`.", opid.SetBaseURLBinding))
	w.WriteLine(fmt.Sprintf("const %s = { baseUrl: '' }", opid.ConfigBinding))
	w.BlankLine()

	m.writeDeclaration(w, opid.SetBaseURLBinding, "(newUrl) =>")
	w.Block(func() {
		w.WriteLine(opid.ConfigBinding + ".baseUrl = newUrl")
	})

	for _, call := range m.Calls {
		w.BlankLine()
		m.writeCall(w, call)
	}
	w.NewLineIfLastNot()
	return w.String()
}

// writeDeclaration starts "export const <member> = <value>" typed against the
// aggregate interface: a type annotation in TypeScript, a JSDoc hint in
// JavaScript.
func (m *ImplementationModule) writeDeclaration(w *codewriter.Writer, member, value string) {
	if m.Language == LanguageTS {
		w.Write(fmt.Sprintf("export const %s: %s['%s'] = %s", member, m.TypesName, member, value))
		return
	}
	w.WriteLine(fmt.Sprintf("/** @type {import('./%s-types.d.ts').%s['%s']} */", m.Name, m.TypesName, member))
	w.Write(fmt.Sprintf("export const %s = %s", member, value))
}

func (m *ImplementationModule) writeCall(w *codewriter.Writer, call *CallDecl) {
	m.writeDeclaration(w, call.OperationID, "async (request) =>")
	w.Block(func() {
		url := "`${" + opid.ConfigBinding + ".baseUrl}" + call.Path
		if call.UsesQuery {
			w.WriteLine("const response = await fetch(" + url +
				"?${new URLSearchParams(Object.entries(request || {})).toString()}`)")
		} else {
			w.Write("const response = await fetch(" + url + "`, ").InlineBlock(func() {
				w.Write("method: ").Quote(call.Method).Write(",").NewLine()
				w.WriteLine("body: JSON.stringify(request),")
				w.Write("headers: ").InlineBlock(func() {
					w.Quote("Content-Type").Write(": ").Quote("application/json")
				})
			}).Write(")")
		}
		w.BlankLine()

		if call.FullResponse {
			m.writeFullResponse(w)
			return
		}
		w.Write("if (!response.ok)").Block(func() {
			w.WriteLine("throw new Error(await response.text())")
		})
		w.BlankLine()
		w.ConditionalWriteLine(call.NoContent, "// 204 No Content: the body is empty, so json() rejects.")
		w.WriteLine("return await response.json()")
	})
}

// writeFullResponse reads the body once as text and parses it when it is JSON.
func (m *ImplementationModule) writeFullResponse(w *codewriter.Writer) {
	if m.Language == LanguageTS {
		w.WriteLine("let body: any = await response.text()")
	} else {
		w.WriteLine("let body = await response.text()")
	}
	w.BlankLine()

	w.Write("try").Block(func() {
		w.WriteLine("body = JSON.parse(body)")
	}).Then(" catch (err)").Block(func() {
		w.WriteLine("// keep the raw text body")
	})
	w.BlankLine()

	w.Write("return ").InlineBlock(func() {
		w.WriteLine("statusCode: response.status,")
		w.WriteLine("headers: response.headers,")
		w.WriteLine("body")
	})
}

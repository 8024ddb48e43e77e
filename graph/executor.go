package graph

import (
	"encoding/json"

	"github.com/gin-gonic/gin"
	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"
)

// Request is the standard GraphQL-over-HTTP POST body.
type Request struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

type Response struct {
	Data   map[string]interface{} `json:"data"`
	Errors gqlerror.List          `json:"errors,omitempty"`
}

// Executor validates incoming documents against the schema and dispatches
// root fields to the resolver maps. Mutation fields run strictly in request
// order; a failed field yields a null entry plus an item in the errors list
// and does not stop later siblings.
type Executor struct {
	schema    *ast.Schema
	mutations map[string]ResolverFunc
	queries   map[string]ResolverFunc
}

func NewExecutor(resolver *Resolver) *Executor {
	return &Executor{
		schema:    Schema,
		mutations: resolver.Mutations(),
		queries:   resolver.Queries(),
	}
}

func (e *Executor) Execute(ctx *gin.Context, req *Request) *Response {
	doc, listErr := gqlparser.LoadQuery(e.schema, req.Query)
	if len(listErr) > 0 {
		return &Response{Errors: listErr}
	}

	op := doc.Operations.ForName(req.OperationName)
	if op == nil {
		return &Response{Errors: gqlerror.List{gqlerror.Errorf("operation %q not found in document", req.OperationName)}}
	}

	var handlers map[string]ResolverFunc
	var rootType string
	switch op.Operation {
	case ast.Mutation:
		handlers = e.mutations
		rootType = "Mutation"
	case ast.Query:
		handlers = e.queries
		rootType = "Query"
	default:
		return &Response{Errors: gqlerror.List{gqlerror.Errorf("unsupported operation %q", op.Operation)}}
	}

	data := map[string]interface{}{}
	var errs gqlerror.List
	for _, field := range collectFields(op.SelectionSet) {
		alias := field.Alias
		if alias == "" {
			alias = field.Name
		}

		if field.Name == "__typename" {
			data[alias] = rootType
			continue
		}

		handler, ok := handlers[field.Name]
		if !ok {
			// Validation has already rejected unknown fields; this guards
			// against a schema field with no registered resolver.
			errs = append(errs, fieldError(alias, gqlerror.Errorf("no resolver for field %q", field.Name)))
			data[alias] = nil
			continue
		}

		result, err := handler(ctx, field.ArgumentMap(req.Variables))
		if err != nil {
			errs = append(errs, fieldError(alias, err))
			data[alias] = nil
			continue
		}
		data[alias] = project(result, field)
	}

	return &Response{Data: data, Errors: errs}
}

func fieldError(alias string, err error) *gqlerror.Error {
	if gqlErr, ok := err.(*gqlerror.Error); ok {
		gqlErr.Path = ast.Path{ast.PathName(alias)}
		return gqlErr
	}
	return &gqlerror.Error{
		Message: err.Error(),
		Path:    ast.Path{ast.PathName(alias)},
	}
}

// project shapes a resolver result to the request's selection set. The
// result is flattened to plain JSON values first so that selection lookups
// run against the models' json tags, which mirror the schema field names.
func project(result interface{}, field *ast.Field) interface{} {
	if result == nil {
		return nil
	}
	if len(field.SelectionSet) == 0 {
		return result
	}
	return projectValue(toJSONValue(result), field.SelectionSet, field.Definition.Type.Name())
}

func projectValue(v interface{}, selections ast.SelectionSet, typeName string) interface{} {
	switch val := v.(type) {
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, elem := range val {
			out[i] = projectValue(elem, selections, typeName)
		}
		return out
	case map[string]interface{}:
		out := map[string]interface{}{}
		for _, f := range collectFields(selections) {
			alias := f.Alias
			if alias == "" {
				alias = f.Name
			}
			if f.Name == "__typename" {
				out[alias] = typeName
				continue
			}
			child, ok := val[f.Name]
			if !ok || child == nil {
				out[alias] = nil
				continue
			}
			if len(f.SelectionSet) == 0 {
				out[alias] = child
				continue
			}
			out[alias] = projectValue(child, f.SelectionSet, f.Definition.Type.Name())
		}
		return out
	default:
		return v
	}
}

// toJSONValue round-trips a value through encoding/json, turning structs
// into maps keyed by their json tags.
func toJSONValue(v interface{}) interface{} {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	var out interface{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil
	}
	return out
}

// collectFields flattens a selection set, expanding fragment spreads and
// inline fragments in place.
func collectFields(selections ast.SelectionSet) []*ast.Field {
	var fields []*ast.Field
	for _, sel := range selections {
		switch sel := sel.(type) {
		case *ast.Field:
			fields = append(fields, sel)
		case *ast.InlineFragment:
			fields = append(fields, collectFields(sel.SelectionSet)...)
		case *ast.FragmentSpread:
			if sel.Definition != nil {
				fields = append(fields, collectFields(sel.Definition.SelectionSet)...)
			}
		}
	}
	return fields
}

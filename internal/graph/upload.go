package graph

import (
	"mime/multipart"

	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/language/ast"
)

// Upload is a file attached to a multipart GraphQL request. The HTTP layer
// injects it into the operation variables before execution.
type Upload struct {
	File *multipart.FileHeader
}

// Open opens the uploaded file for reading.
func (u *Upload) Open() (multipart.File, error) {
	return u.File.Open()
}

// ContentType reports the client-declared media type.
func (u *Upload) ContentType() string {
	ct := u.File.Header.Get("Content-Type")
	if ct == "" {
		return "application/octet-stream"
	}
	return ct
}

// uploadScalar passes injected *Upload values through the variable
// coercion. Uploads cannot appear as literals.
var uploadScalar = graphql.NewScalar(graphql.ScalarConfig{
	Name:        "Upload",
	Description: "A file attached to a multipart request",
	Serialize: func(value interface{}) interface{} {
		return nil
	},
	ParseValue: func(value interface{}) interface{} {
		if upload, ok := value.(*Upload); ok {
			return upload
		}
		return nil
	},
	ParseLiteral: func(valueAST ast.Value) interface{} {
		return nil
	},
})

package graph

import (
	"github.com/graphql-go/graphql"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// primitiveID parses a hex object id, wrapping the failure as a
// user-facing error.
func primitiveID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, inputError(errUserNotFound)
	}
	return oid, nil
}

func stringArg(p graphql.ResolveParams, name string) string {
	s, _ := p.Args[name].(string)
	return s
}

func int64Arg(p graphql.ResolveParams, name string) int64 {
	if v, ok := p.Args[name].(int); ok {
		return int64(v)
	}
	return 0
}

func inputArg(p graphql.ResolveParams) map[string]interface{} {
	m, _ := p.Args["input"].(map[string]interface{})
	return m
}

func inputString(m map[string]interface{}, key string) string {
	s, _ := m[key].(string)
	return s
}

func inputBool(m map[string]interface{}, key string) bool {
	b, _ := m[key].(bool)
	return b
}

func inputUpload(m map[string]interface{}, key string) *Upload {
	u, _ := m[key].(*Upload)
	return u
}

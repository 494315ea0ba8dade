package graph

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/graphql-go/graphql"
	"github.com/labstack/echo/v4"
)

const maxUploadMemory = 32 << 20

type graphqlRequest struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

// Handler serves GraphQL over HTTP. Plain operations arrive as JSON;
// operations carrying files arrive as multipart form data with the
// operations, map and file parts convention used by Apollo clients.
func Handler(schema graphql.Schema) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()

		var op graphqlRequest
		if strings.HasPrefix(req.Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm) {
			parsed, err := parseMultipartRequest(req)
			if err != nil {
				return echo.NewHTTPError(http.StatusBadRequest, err.Error())
			}
			op = *parsed
		} else {
			if err := json.NewDecoder(req.Body).Decode(&op); err != nil {
				return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
			}
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  op.Query,
			OperationName:  op.OperationName,
			VariableValues: op.Variables,
			Context:        req.Context(),
		})
		return c.JSON(http.StatusOK, result)
	}
}

// parseMultipartRequest decodes the operations part and grafts each
// uploaded file onto the variable path the map part names.
func parseMultipartRequest(req *http.Request) (*graphqlRequest, error) {
	if err := req.ParseMultipartForm(maxUploadMemory); err != nil {
		return nil, fmt.Errorf("parse multipart form: %w", err)
	}

	var op graphqlRequest
	if err := json.Unmarshal([]byte(req.FormValue("operations")), &op); err != nil {
		return nil, fmt.Errorf("invalid operations part: %w", err)
	}

	var fileMap map[string][]string
	if err := json.Unmarshal([]byte(req.FormValue("map")), &fileMap); err != nil {
		return nil, fmt.Errorf("invalid map part: %w", err)
	}

	if op.Variables == nil {
		op.Variables = map[string]interface{}{}
	}
	for part, paths := range fileMap {
		headers := req.MultipartForm.File[part]
		if len(headers) == 0 {
			return nil, fmt.Errorf("missing file part %q", part)
		}
		upload := &Upload{File: headers[0]}
		for _, path := range paths {
			if err := injectUpload(op.Variables, path, upload); err != nil {
				return nil, err
			}
		}
	}
	return &op, nil
}

// injectUpload sets the upload at a dotted path like
// "variables.input.image".
func injectUpload(variables map[string]interface{}, path string, upload *Upload) error {
	segments := strings.Split(path, ".")
	if len(segments) > 0 && segments[0] == "variables" {
		segments = segments[1:]
	}
	if len(segments) == 0 {
		return fmt.Errorf("invalid upload path %q", path)
	}

	current := variables
	for _, segment := range segments[:len(segments)-1] {
		next, ok := current[segment].(map[string]interface{})
		if !ok {
			next = map[string]interface{}{}
			current[segment] = next
		}
		current = next
	}
	current[segments[len(segments)-1]] = upload
	return nil
}

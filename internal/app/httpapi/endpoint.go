package httpapi

import (
	"net/http"

	"github.com/chefos/platform/pkg/schema"
)

// Endpoint declares one route's contract: its body and query schemas and
// the response schema per status code. Endpoints are built once at process
// start and never mutated.
type Endpoint struct {
	Method string
	Path   string
	// Body validates the decoded JSON request body. Nil means no body.
	Body schema.Schema
	// Query validates the URL query parameters. Nil means no contract.
	Query schema.Schema
	// Response maps status codes to the schema the payload must satisfy.
	// A status with no entry has no contract and is emitted as-is.
	Response map[int]schema.Schema
}

// productSchema is the wire shape of a catalogue product.
var productSchema = schema.Object(
	schema.Field{Name: "id", Schema: schema.Number().Int()},
	schema.Field{Name: "name", Schema: schema.String()},
	schema.Field{Name: "price", Schema: schema.Number()},
)

var versionSchema = schema.Object(
	schema.Field{Name: "major", Schema: schema.Number().Int()},
	schema.Field{Name: "minor", Schema: schema.Number().Int()},
	schema.Field{Name: "patch", Schema: schema.Number().Int()},
	schema.Field{Name: "version", Schema: schema.String()},
)

// Endpoints is the API surface. The server adapter validates requests and
// responses against it; the typed client mirrors the same contracts.
var (
	rootEndpoint = Endpoint{
		Method: http.MethodGet,
		Path:   "/",
		Response: map[int]schema.Schema{
			http.StatusOK: schema.Object(
				schema.Field{Name: "node", Schema: schema.Object(
					schema.Field{Name: "env", Schema: schema.String()},
					schema.Field{Name: "version", Schema: schema.String()},
				)},
				schema.Field{Name: "startedAt", Schema: schema.String()},
				schema.Field{Name: "uptime", Schema: schema.Number().Min(0)},
				schema.Field{Name: "version", Schema: versionSchema},
			),
		},
	}

	versionEndpoint = Endpoint{
		Method: http.MethodGet,
		Path:   "/version",
		Response: map[int]schema.Schema{
			http.StatusOK: versionSchema,
		},
	}

	healthEndpoint = Endpoint{
		Method: http.MethodGet,
		Path:   "/healthz",
		Response: map[int]schema.Schema{
			http.StatusOK: schema.Object(
				schema.Field{Name: "statusCode", Schema: schema.Literal(200)},
				schema.Field{Name: "status", Schema: schema.Literal("ok")},
				schema.Field{Name: "uptime", Schema: schema.Number().Min(0)},
			),
		},
	}

	loginEndpoint = Endpoint{
		Method: http.MethodPost,
		Path:   "/auth/login",
		Body: schema.Object(
			schema.Field{Name: "email", Schema: schema.String().Email()},
			schema.Field{Name: "password", Schema: schema.String().Min(2)},
		),
		Response: map[int]schema.Schema{
			http.StatusOK: schema.Object(
				schema.Field{Name: "accessToken", Schema: schema.String().Min(1)},
				schema.Field{Name: "id", Schema: schema.Number().Int()},
				schema.Field{Name: "email", Schema: schema.String()},
				schema.Field{Name: "permissions", Schema: schema.Array(schema.String())},
				schema.Field{Name: "roles", Schema: schema.Array(schema.String())},
			),
		},
	}

	listProductsEndpoint = Endpoint{
		Method: http.MethodGet,
		Path:   "/products",
		Response: map[int]schema.Schema{
			http.StatusOK: schema.Array(productSchema),
		},
	}

	upsertProductEndpoint = Endpoint{
		Method: http.MethodPost,
		Path:   "/products",
		Body: schema.Object(
			schema.Field{Name: "id", Schema: schema.Number().Int(), Optional: true},
			schema.Field{Name: "name", Schema: schema.String().Min(1)},
			schema.Field{Name: "price", Schema: schema.Number().Min(0)},
		),
		Response: map[int]schema.Schema{
			http.StatusOK: productSchema,
		},
	}

	deleteProductEndpoint = Endpoint{
		Method: http.MethodDelete,
		Path:   "/products",
		Body: schema.Object(
			schema.Field{Name: "id", Schema: schema.Number().Int()},
		),
		Response: map[int]schema.Schema{
			http.StatusOK: schema.Void(),
		},
	}
)

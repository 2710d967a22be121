package client

import "github.com/chefos/platform/pkg/schema"

// The client declares its own copies of the response contracts so it stays
// deployable independently of the server.
var (
	productSchema = schema.Object(
		schema.Field{Name: "id", Schema: schema.Number().Int()},
		schema.Field{Name: "name", Schema: schema.String()},
		schema.Field{Name: "price", Schema: schema.Number()},
	)

	productListSchema = schema.Array(productSchema)

	loginResponseSchema = schema.Object(
		schema.Field{Name: "accessToken", Schema: schema.String().Min(1)},
		schema.Field{Name: "id", Schema: schema.Number().Int()},
		schema.Field{Name: "email", Schema: schema.String()},
		schema.Field{Name: "permissions", Schema: schema.Array(schema.String())},
		schema.Field{Name: "roles", Schema: schema.Array(schema.String())},
	)

	healthResponseSchema = schema.Object(
		schema.Field{Name: "statusCode", Schema: schema.Literal(200)},
		schema.Field{Name: "status", Schema: schema.Literal("ok")},
		schema.Field{Name: "uptime", Schema: schema.Number().Min(0)},
	)

	versionResponseSchema = schema.Object(
		schema.Field{Name: "major", Schema: schema.Number().Int()},
		schema.Field{Name: "minor", Schema: schema.Number().Int()},
		schema.Field{Name: "patch", Schema: schema.Number().Int()},
		schema.Field{Name: "version", Schema: schema.String()},
	)
)

// Package docs holds the swagger description served under /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/accounts": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["accounts"], "summary": "List accounts",
                "parameters": [{"type": "boolean", "name": "activeOnly", "in": "query"}],
                "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["accounts"], "summary": "Create a new account",
                "responses": {"201": {"description": "Created"}, "400": {"description": "Invalid input"}}}
        },
        "/accounts/seed": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["accounts"], "summary": "Seed the default chart of accounts",
                "responses": {"200": {"description": "OK"}}}
        },
        "/accounts/{id}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["accounts"], "summary": "Get an account by ID",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Account not found"}}},
            "patch": {"security": [{"BearerAuth": []}], "tags": ["accounts"], "summary": "Update an account",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Invalid input or parent cycle"}}}
        },
        "/accounts/{id}/activate": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["accounts"], "summary": "Activate an account",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}}}
        },
        "/accounts/{id}/deactivate": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["accounts"], "summary": "Deactivate an account",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}}}
        },
        "/accounts/{id}/ledger": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["accounts"], "summary": "Get an account ledger",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}}}
        },
        "/journal-entries": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["journal"], "summary": "List journal entries",
                "parameters": [{"type": "integer", "name": "limit", "in": "query"}, {"type": "string", "name": "nextToken", "in": "query"}],
                "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["journal"], "summary": "Post a journal entry",
                "parameters": [{"type": "string", "name": "Idempotency-Key", "in": "header"}],
                "responses": {"201": {"description": "Posted"}, "200": {"description": "Replayed"},
                    "409": {"description": "Closed fiscal period"}, "422": {"description": "Unbalanced entry or inactive account"}}}
        },
        "/journal-entries/{id}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["journal"], "summary": "Get a journal entry",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Entry not found"}}}
        },
        "/journal-entries/{id}/reverse": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["journal"], "summary": "Reverse a journal entry",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"201": {"description": "Created"}, "409": {"description": "Already reversed"}}}
        },
        "/reports/trial-balance": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["reports"], "summary": "Generate trial balance report",
                "parameters": [{"type": "string", "name": "from", "in": "query"}, {"type": "string", "name": "to", "in": "query"}],
                "responses": {"200": {"description": "OK"}}}
        },
        "/reports/profit-and-loss": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["reports"], "summary": "Generate profit and loss report",
                "parameters": [{"type": "string", "name": "from", "in": "query"}, {"type": "string", "name": "to", "in": "query"}],
                "responses": {"200": {"description": "OK"}}}
        },
        "/reports/balance-sheet": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["reports"], "summary": "Generate balance sheet report",
                "parameters": [{"type": "string", "name": "from", "in": "query"}, {"type": "string", "name": "to", "in": "query"}],
                "responses": {"200": {"description": "OK"}}}
        },
        "/reports/integrity": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["reports"], "summary": "Check ledger integrity",
                "responses": {"200": {"description": "OK"}}}
        },
        "/fiscal-periods": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["fiscal-periods"], "summary": "List fiscal periods",
                "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["fiscal-periods"], "summary": "Create a fiscal period",
                "responses": {"201": {"description": "Created"}, "400": {"description": "Invalid input or overlapping period"}}}
        },
        "/fiscal-periods/{id}/close": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["fiscal-periods"], "summary": "Close a fiscal period",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "409": {"description": "Period already closed"}}}
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and JWT token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "ABBIS Ledger API",
	Description:      "Double-entry ledger posting engine: chart of accounts, journal posting, ledgers and financial reports.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

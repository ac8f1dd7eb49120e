// Package docs registers the OpenAPI document served under /swagger. Keep it in
// step with the swag annotations on the handlers.
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
        "/companies": {
            "get": {
                "description": "Lists every company ordered by name, each with the number of games it owns.",
                "produces": ["application/json"],
                "tags": ["companies"],
                "summary": "List companies",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.CompanyWithCount"}}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            },
            "post": {
                "description": "Creates a company. The slug must be unique.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["companies"],
                "summary": "Create a company",
                "parameters": [
                    {"description": "Company Info", "name": "input", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.CompanyInput"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.Company"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "409": {"description": "Slug already exists", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "413": {"description": "Request Entity Too Large", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/companies/{companyId}/games": {
            "get": {
                "description": "Lists summaries of a company's games, most recently updated first. JSON payloads are omitted.",
                "produces": ["application/json"],
                "tags": ["games"],
                "summary": "List a company's games",
                "parameters": [
                    {"type": "string", "format": "uuid", "description": "Company ID", "name": "companyId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.GameSummary"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            },
            "post": {
                "description": "Creates a game under a company with empty simulation state.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["games"],
                "summary": "Create a game",
                "parameters": [
                    {"type": "string", "format": "uuid", "description": "Company ID", "name": "companyId", "in": "path", "required": true},
                    {"description": "Game Info", "name": "input", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.GameInput"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.Game"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "413": {"description": "Request Entity Too Large", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/games/{gameId}": {
            "get": {
                "description": "Returns a game with all of its simulation state.",
                "produces": ["application/json"],
                "tags": ["games"],
                "summary": "Get a game",
                "parameters": [
                    {"type": "string", "format": "uuid", "description": "Game ID", "name": "gameId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Game"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "404": {"description": "Game not found", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            },
            "put": {
                "description": "Overwrites every mutable field. Omitted fields are cleared; fitness_score defaults to 0.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["games"],
                "summary": "Replace a game's simulation state",
                "parameters": [
                    {"type": "string", "format": "uuid", "description": "Game ID", "name": "gameId", "in": "path", "required": true},
                    {"description": "Simulation state", "name": "input", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.GameStateInput"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.GameStamp"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "404": {"description": "Game not found", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "413": {"description": "Request Entity Too Large", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            },
            "delete": {
                "description": "Deletes a game.",
                "produces": ["application/json"],
                "tags": ["games"],
                "summary": "Delete a game",
                "parameters": [
                    {"type": "string", "format": "uuid", "description": "Game ID", "name": "gameId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.DeleteResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "404": {"description": "Game not found", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/health": {
            "get": {
                "description": "Runs SELECT 1 against the database.",
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Liveness probe",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.HealthResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.HealthResponse"}}
                }
            }
        }
    },
    "definitions": {
        "handler.CompanyInput": {
            "type": "object",
            "required": ["name", "slug"],
            "properties": {
                "name": {"type": "string", "example": "Acme"},
                "slug": {"type": "string", "example": "acme"}
            }
        },
        "handler.DeleteResponse": {
            "type": "object",
            "properties": {
                "deleted": {"type": "boolean", "example": true}
            }
        },
        "handler.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string", "example": "Game not found"}
            }
        },
        "handler.GameInput": {
            "type": "object",
            "required": ["name"],
            "properties": {
                "description": {"type": "string", "example": "First simulation run"},
                "name": {"type": "string", "example": "Run1"}
            }
        },
        "handler.GameStateInput": {
            "type": "object",
            "properties": {
                "active_drivers": {"type": "array", "items": {"type": "object"}},
                "agent_assignments": {"type": "object"},
                "board_state": {"type": "object"},
                "completed_phases": {"type": "array", "items": {"type": "object"}},
                "custom_items": {"type": "array", "items": {"type": "object"}},
                "cycle_number": {"type": "integer", "example": 2},
                "cycle_phase": {"type": "string", "example": "act"},
                "fitness_score": {"type": "number", "example": 42},
                "log_entries": {"type": "array", "items": {"type": "object"}}
            }
        },
        "handler.HealthResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "status": {"type": "string", "example": "ok"}
            }
        },
        "models.Company": {
            "type": "object",
            "properties": {
                "created_at": {"type": "string"},
                "id": {"type": "string"},
                "name": {"type": "string"},
                "slug": {"type": "string"}
            }
        },
        "models.CompanyWithCount": {
            "type": "object",
            "properties": {
                "created_at": {"type": "string"},
                "game_count": {"type": "integer"},
                "id": {"type": "string"},
                "name": {"type": "string"},
                "slug": {"type": "string"}
            }
        },
        "models.Game": {
            "type": "object",
            "properties": {
                "active_drivers": {"type": "array", "items": {"type": "object"}},
                "agent_assignments": {"type": "object"},
                "board_state": {"type": "object"},
                "company_id": {"type": "string"},
                "completed_phases": {"type": "array", "items": {"type": "object"}},
                "created_at": {"type": "string"},
                "custom_items": {"type": "array", "items": {"type": "object"}},
                "cycle_number": {"type": "integer"},
                "cycle_phase": {"type": "string"},
                "description": {"type": "string"},
                "fitness_score": {"type": "number"},
                "id": {"type": "string"},
                "log_entries": {"type": "array", "items": {"type": "object"}},
                "name": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "models.GameStamp": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "models.GameSummary": {
            "type": "object",
            "properties": {
                "company_id": {"type": "string"},
                "created_at": {"type": "string"},
                "cycle_number": {"type": "integer"},
                "cycle_phase": {"type": "string"},
                "description": {"type": "string"},
                "fitness_score": {"type": "number"},
                "id": {"type": "string"},
                "name": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:3000",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Nexus API",
	Description:      "Companies and simulation games over a relational store.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

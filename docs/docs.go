// Package docs registers the OpenAPI description served at /swagger/.
// Regenerate with: swag init -g cmd/meetgrid/main.go
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
    "securityDefinitions": {
        "EditToken": {
            "type": "apiKey",
            "name": "X-Edit-Token",
            "in": "header"
        }
    },
    "paths": {
        "/events": {
            "post": {
                "tags": ["events"],
                "summary": "Create a new event",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"name": "event", "in": "body", "required": true, "schema": {"$ref": "#/definitions/controllers.CreateEventRequest"}}
                ],
                "responses": {
                    "201": {"description": "data contains the created event", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "400": {"description": "error.code: bad_request", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/events/{eventID}": {
            "get": {
                "tags": ["events"],
                "summary": "Get an event by ID",
                "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "eventID", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "data contains the event", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "404": {"description": "error.code: not_found", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            },
            "patch": {
                "tags": ["events"],
                "summary": "Update an event",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "eventID", "in": "path", "required": true},
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/controllers.UpdateEventRequest"}}
                ],
                "responses": {
                    "200": {"description": "data contains the updated event", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "400": {"description": "error.code: bad_request", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "404": {"description": "error.code: not_found", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/events/{eventID}/responses": {
            "get": {
                "tags": ["events"],
                "summary": "List the responses of an event",
                "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "eventID", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "data contains the responses in creation order", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/events/{eventID}/availability": {
            "get": {
                "tags": ["events"],
                "summary": "List every stored availability interval of an event",
                "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "eventID", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "data contains intervals of all responses", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/events/{eventID}/grid": {
            "get": {
                "tags": ["events"],
                "summary": "Describe the event grid in a timezone",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "eventID", "in": "path", "required": true},
                    {"type": "string", "name": "tz", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "data contains the grid", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "400": {"description": "error.code: bad_request (unknown timezone)", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/events/{eventID}/summary": {
            "get": {
                "tags": ["events"],
                "summary": "Aggregated availability of an event",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "eventID", "in": "path", "required": true},
                    {"type": "string", "name": "tz", "in": "query"},
                    {"type": "boolean", "name": "if_needed", "in": "query"},
                    {"type": "boolean", "name": "best", "in": "query"},
                    {"type": "string", "name": "response_ids", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "data contains the summary", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/events/{eventID}/best-times.ics": {
            "get": {
                "tags": ["events"],
                "summary": "Export the best times as iCalendar",
                "produces": ["text/calendar"],
                "parameters": [
                    {"type": "string", "name": "eventID", "in": "path", "required": true},
                    {"type": "string", "name": "tz", "in": "query"},
                    {"type": "boolean", "name": "if_needed", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "text/calendar body", "schema": {"type": "string"}}
                }
            }
        },
        "/responses": {
            "post": {
                "tags": ["responses"],
                "summary": "Join an event as a respondent",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/controllers.CreateResponseRequest"}}
                ],
                "responses": {
                    "201": {"description": "data contains the response and its edit token", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "409": {"description": "error.code: conflict (name or email taken)", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/responses/{responseID}": {
            "get": {
                "tags": ["responses"],
                "summary": "Get a response by ID",
                "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "responseID", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "data contains the response", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            },
            "patch": {
                "security": [{"EditToken": []}],
                "tags": ["responses"],
                "summary": "Rename a respondent or change their email",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "responseID", "in": "path", "required": true},
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/controllers.UpdateResponseRequest"}}
                ],
                "responses": {
                    "200": {"description": "data contains the updated response", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            },
            "delete": {
                "security": [{"EditToken": []}],
                "tags": ["responses"],
                "summary": "Delete a response and its availability",
                "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "responseID", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "data.status: deleted", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/responses/{responseID}/availability": {
            "post": {
                "security": [{"EditToken": []}],
                "tags": ["responses"],
                "summary": "Append availability intervals to a response",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "responseID", "in": "path", "required": true},
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/controllers.AvailabilityRequest"}}
                ],
                "responses": {
                    "201": {"description": "data contains the stored intervals", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            },
            "put": {
                "security": [{"EditToken": []}],
                "tags": ["responses"],
                "summary": "Replace the availability of a response",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "responseID", "in": "path", "required": true},
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/controllers.AvailabilityRequest"}}
                ],
                "responses": {
                    "200": {"description": "data contains the normalized intervals", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/responses/{responseID}/availability/edits": {
            "post": {
                "security": [{"EditToken": []}],
                "tags": ["responses"],
                "summary": "Apply a rectangular grid edit",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "responseID", "in": "path", "required": true},
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/controllers.EditAvailabilityRequest"}}
                ],
                "responses": {
                    "200": {"description": "data contains the response's intervals after the edit", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/health": {
            "get": {
                "tags": ["health"],
                "summary": "Liveness and database check",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "data.status: ok", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "503": {"description": "error.code: internal_error", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        }
    },
    "definitions": {
        "domain.DateRange": {
            "type": "object",
            "properties": {"start": {"type": "string"}, "end": {"type": "string"}}
        },
        "domain.Cell": {
            "type": "object",
            "properties": {"day": {"type": "integer"}, "slot": {"type": "integer"}}
        },
        "controllers.CreateEventRequest": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "timezone": {"type": "string"},
                "dates": {"type": "array", "items": {"$ref": "#/definitions/domain.DateRange"}}
            }
        },
        "controllers.UpdateEventRequest": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "timezone": {"type": "string"},
                "dates": {"type": "array", "items": {"$ref": "#/definitions/domain.DateRange"}}
            }
        },
        "controllers.CreateResponseRequest": {
            "type": "object",
            "properties": {"event_id": {"type": "string"}, "name": {"type": "string"}, "email": {"type": "string"}}
        },
        "controllers.UpdateResponseRequest": {
            "type": "object",
            "properties": {"name": {"type": "string"}, "email": {"type": "string"}}
        },
        "controllers.IntervalInput": {
            "type": "object",
            "properties": {
                "start": {"type": "string"},
                "end": {"type": "string"},
                "type": {"type": "string", "enum": ["available", "if_needed"]}
            }
        },
        "controllers.AvailabilityRequest": {
            "type": "object",
            "properties": {
                "intervals": {"type": "array", "items": {"$ref": "#/definitions/controllers.IntervalInput"}}
            }
        },
        "controllers.EditAvailabilityRequest": {
            "type": "object",
            "properties": {
                "timezone": {"type": "string"},
                "from": {"$ref": "#/definitions/domain.Cell"},
                "to": {"$ref": "#/definitions/domain.Cell"},
                "type": {"type": "string", "enum": ["available", "if_needed"]},
                "invert": {"type": "boolean"}
            }
        },
        "helpers.APIError": {
            "type": "object",
            "properties": {"code": {"type": "string"}, "message": {"type": "string"}}
        },
        "helpers.APIResponse": {
            "type": "object",
            "properties": {
                "data": {},
                "error": {"$ref": "#/definitions/helpers.APIError"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "meetgrid API",
	Description:      "Group availability polls: events, respondents, availability grids and overlap summaries.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

// Package docs registers the OpenAPI document served under /swagger. It
// mirrors the swag annotations on the handlers in internal/api/handler.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "paths": {
        "/api/auth/register": {
            "post": {
                "tags": ["auth"], "summary": "Register a new user",
                "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/registerRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/authResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/api/auth/login": {
            "post": {
                "tags": ["auth"], "summary": "Login",
                "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/loginRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/authResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/api/projects": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["projects"], "summary": "List the caller's projects", "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/projectListEnvelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["projects"], "summary": "Create a project",
                "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [
                    {"in": "header", "name": "Idempotency-Key", "type": "string"},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/projectInput"}}
                ],
                "responses": {
                    "200": {"description": "Replay of an earlier create", "schema": {"$ref": "#/definitions/projectEnvelope"}},
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/projectEnvelope"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/api/projects/{id}": {
            "parameters": [{"in": "path", "name": "id", "required": true, "type": "string"}],
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["projects"], "summary": "Get a project", "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/projectEnvelope"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["projects"], "summary": "Update a project",
                "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/projectInput"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/projectEnvelope"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["projects"], "summary": "Delete an empty project", "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/messageResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "409": {"description": "Project still has tasks", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/api/projects/{id}/tasks": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["tasks"], "summary": "List the tasks of a project", "produces": ["application/json"],
                "parameters": [
                    {"in": "path", "name": "id", "required": true, "type": "string"},
                    {"in": "query", "name": "status", "type": "string", "enum": ["todo", "in-progress", "done", "all"]},
                    {"in": "query", "name": "dueDate", "type": "string", "format": "date"},
                    {"in": "query", "name": "sortBy", "type": "string", "enum": ["createdAt", "updatedAt", "dueDate", "title", "status"]},
                    {"in": "query", "name": "sortOrder", "type": "string", "enum": ["asc", "desc"]}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/taskListEnvelope"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/api/tasks": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["tasks"], "summary": "Create a task",
                "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [
                    {"in": "header", "name": "Idempotency-Key", "type": "string"},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/taskInput"}}
                ],
                "responses": {
                    "200": {"description": "Replay of an earlier create", "schema": {"$ref": "#/definitions/taskEnvelope"}},
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/taskEnvelope"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/api/tasks/{id}": {
            "parameters": [{"in": "path", "name": "id", "required": true, "type": "string"}],
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["tasks"], "summary": "Get a task", "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/taskEnvelope"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["tasks"], "summary": "Update a task",
                "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/taskInput"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/taskEnvelope"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["tasks"], "summary": "Delete a task", "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/messageResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/api/tasks/{id}/status": {
            "patch": {
                "security": [{"BearerAuth": []}],
                "tags": ["tasks"], "summary": "Set a task's status",
                "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [
                    {"in": "path", "name": "id", "required": true, "type": "string"},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/statusInput"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/taskEnvelope"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/api/tasks/{id}/history": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["tasks"], "summary": "Activity history of a task, oldest first", "produces": ["application/json"],
                "parameters": [{"in": "path", "name": "id", "required": true, "type": "string"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/taskHistoryEnvelope"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "errorResponse": {"type": "object", "properties": {"success": {"type": "boolean"}, "message": {"type": "string"}}},
        "messageResponse": {"type": "object", "properties": {"success": {"type": "boolean"}, "message": {"type": "string"}}},
        "registerRequest": {"type": "object", "required": ["email", "password"], "properties": {"name": {"type": "string"}, "email": {"type": "string"}, "password": {"type": "string", "maxLength": 72}}},
        "loginRequest": {"type": "object", "required": ["email", "password"], "properties": {"email": {"type": "string"}, "password": {"type": "string"}}},
        "user": {"type": "object", "properties": {"id": {"type": "string"}, "name": {"type": "string"}, "email": {"type": "string"}}},
        "authResponse": {"type": "object", "properties": {"success": {"type": "boolean"}, "message": {"type": "string"}, "token": {"type": "string"}, "user": {"$ref": "#/definitions/user"}}},
        "projectInput": {"type": "object", "properties": {"title": {"type": "string"}, "description": {"type": "string"}}},
        "project": {"type": "object", "properties": {"id": {"type": "string"}, "title": {"type": "string"}, "description": {"type": "string"}, "ownerId": {"type": "string"}, "createdAt": {"type": "string", "format": "date-time"}, "updatedAt": {"type": "string", "format": "date-time"}}},
        "projectEnvelope": {"type": "object", "properties": {"success": {"type": "boolean"}, "message": {"type": "string"}, "project": {"$ref": "#/definitions/project"}}},
        "projectListEnvelope": {"type": "object", "properties": {"success": {"type": "boolean"}, "count": {"type": "integer"}, "projects": {"type": "array", "items": {"$ref": "#/definitions/project"}}}},
        "taskInput": {"type": "object", "properties": {"title": {"type": "string"}, "description": {"type": "string"}, "projectId": {"type": "string"}, "status": {"type": "string", "enum": ["todo", "in-progress", "done"]}, "dueDate": {"type": "string", "x-nullable": true}}},
        "statusInput": {"type": "object", "required": ["status"], "properties": {"status": {"type": "string", "enum": ["todo", "in-progress", "done"]}}},
        "task": {"type": "object", "properties": {"id": {"type": "string"}, "title": {"type": "string"}, "description": {"type": "string"}, "status": {"type": "string"}, "dueDate": {"type": "string", "format": "date-time", "x-nullable": true}, "projectId": {"type": "string"}, "createdAt": {"type": "string", "format": "date-time"}, "updatedAt": {"type": "string", "format": "date-time"}}},
        "taskEnvelope": {"type": "object", "properties": {"success": {"type": "boolean"}, "message": {"type": "string"}, "task": {"$ref": "#/definitions/task"}}},
        "taskListEnvelope": {"type": "object", "properties": {"success": {"type": "boolean"}, "count": {"type": "integer"}, "tasks": {"type": "array", "items": {"$ref": "#/definitions/task"}}}},
        "taskEvent": {"type": "object", "properties": {"id": {"type": "string"}, "type": {"type": "string"}, "actorId": {"type": "string"}, "projectId": {"type": "string"}, "fromStatus": {"type": "string"}, "toStatus": {"type": "string"}, "fromProjectId": {"type": "string"}, "toProjectId": {"type": "string"}, "occurredAt": {"type": "string", "format": "date-time"}}},
        "taskHistoryEnvelope": {"type": "object", "properties": {"success": {"type": "boolean"}, "count": {"type": "integer"}, "events": {"type": "array", "items": {"$ref": "#/definitions/taskEvent"}}}}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Tracker API",
	Description:      "Multi-tenant project and task tracker.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

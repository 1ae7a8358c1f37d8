// Package docs holds the OpenAPI description served at /swagger.
// Regenerate with: swag init -g cmd/api/main.go -o docs
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
        "/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Log in and receive a bearer token",
                "parameters": [{"in": "body", "name": "input", "required": true, "schema": {"$ref": "#/definitions/user.LoginInput"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.TokenResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/register": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Register a new account",
                "parameters": [{"in": "body", "name": "input", "required": true, "schema": {"$ref": "#/definitions/user.RegisterInput"}}],
                "responses": {
                    "201": {"description": "Created"},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/requirements/{id}/comments": {
            "get": {
                "produces": ["application/json"],
                "tags": ["comments"],
                "summary": "List comments of a requirement, threaded or flat",
                "parameters": [
                    {"type": "integer", "description": "Requirement ID", "name": "id", "in": "path", "required": true},
                    {"type": "boolean", "description": "Nest replies under their parent", "name": "threaded", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["comments"],
                "summary": "Comment on a requirement or reply to a comment",
                "parameters": [
                    {"type": "integer", "description": "Requirement ID", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "input", "required": true, "schema": {"$ref": "#/definitions/comment.CreateCommentDTO"}}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Invalid parent or depth exceeded", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/requirements/{id}/support/toggle": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["supports"],
                "summary": "Support a requirement, or withdraw support if already given",
                "parameters": [{"type": "integer", "description": "Requirement ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/support.ToggleResult"}},
                    "400": {"description": "Own requirement", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/notifications": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["notifications"],
                "summary": "List the caller's notifications, newest first",
                "parameters": [
                    {"type": "boolean", "name": "unread", "in": "query"},
                    {"type": "integer", "name": "page", "in": "query"},
                    {"type": "integer", "name": "per_page", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/notifications/read-all": {
            "put": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["notifications"],
                "summary": "Mark every unread notification as read",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.CountResponse"}}}
            }
        },
        "/uploads/images": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["uploads"],
                "summary": "Upload an image and get its public URL",
                "parameters": [{"type": "file", "name": "file", "in": "formData", "required": true}],
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "503": {"description": "Storage unavailable", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "comment.CreateCommentDTO": {
            "type": "object",
            "required": ["body"],
            "properties": {
                "body": {"type": "string"},
                "image_url": {"type": "string"},
                "parent_id": {"type": "integer"}
            }
        },
        "response.CountResponse": {
            "type": "object",
            "properties": {"count": {"type": "integer"}}
        },
        "response.ErrorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string", "example": "requirement not found"}}
        },
        "response.TokenResponse": {
            "type": "object",
            "properties": {
                "is_admin": {"type": "boolean"},
                "token": {"type": "string"},
                "user_id": {"type": "integer"},
                "username": {"type": "string"}
            }
        },
        "support.ToggleResult": {
            "type": "object",
            "properties": {
                "action": {"type": "string", "enum": ["supported", "unsupported"]},
                "support_count": {"type": "integer"}
            }
        },
        "user.LoginInput": {
            "type": "object",
            "required": ["password", "username"],
            "properties": {
                "password": {"type": "string", "example": "rahasia123"},
                "username": {"type": "string", "example": "budi"}
            }
        },
        "user.RegisterInput": {
            "type": "object",
            "required": ["email", "name", "password", "username"],
            "properties": {
                "email": {"type": "string", "example": "budi@example.com"},
                "name": {"type": "string", "example": "Budi Santoso"},
                "password": {"type": "string", "example": "rahasia123"},
                "username": {"type": "string", "example": "budi"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "KomuniTech API",
	Description:      "Community needs board: projects, requirements, threaded comments, supports and notifications.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

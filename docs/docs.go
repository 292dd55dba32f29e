// Package docs registers the OpenAPI document served under /docs.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/health/detailed": {
            "get": {
                "description": "Returns health of the database and the list cache",
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Get detailed system health",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/handlers.DetailedHealthResponse"}
                    }
                }
            }
        },
        "/people": {
            "get": {
                "produces": ["application/json"],
                "tags": ["People"],
                "summary": "List people",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {"$ref": "#/definitions/dto.PersonResponse"}
                        }
                    }
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["People"],
                "summary": "Create person",
                "parameters": [
                    {
                        "description": "Person",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/dto.PersonRequest"}
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/dto.PersonResponse"}
                    }
                }
            }
        },
        "/people/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["People"],
                "summary": "Get person",
                "parameters": [
                    {"type": "string", "description": "Person ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/dto.PersonResponse"}
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {"$ref": "#/definitions/utils.Response"}
                    }
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["People"],
                "summary": "Update person",
                "parameters": [
                    {"type": "string", "description": "Person ID", "name": "id", "in": "path", "required": true},
                    {
                        "description": "Person",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/dto.PersonRequest"}
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/dto.PersonResponse"}
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {"$ref": "#/definitions/utils.Response"}
                    }
                }
            },
            "delete": {
                "tags": ["People"],
                "summary": "Delete person",
                "parameters": [
                    {"type": "string", "description": "Person ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {
                        "description": "Not Found",
                        "schema": {"$ref": "#/definitions/utils.Response"}
                    }
                }
            }
        }
    },
    "definitions": {
        "dto.PersonRequest": {
            "type": "object",
            "properties": {
                "age": {"type": "integer"},
                "avatarImageUrl": {"type": "string"},
                "firstName": {"type": "string"},
                "gender": {"type": "string"},
                "lastName": {"type": "string"}
            }
        },
        "dto.PersonResponse": {
            "type": "object",
            "properties": {
                "age": {"type": "integer"},
                "avatarImageUrl": {"type": "string"},
                "firstName": {"type": "string"},
                "gender": {"type": "string"},
                "id": {"type": "string"},
                "lastName": {"type": "string"}
            }
        },
        "handlers.ComponentHealth": {
            "type": "object",
            "properties": {
                "latency": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "string"}
            }
        },
        "handlers.DetailedHealthResponse": {
            "type": "object",
            "properties": {
                "components": {
                    "type": "object",
                    "additionalProperties": {"$ref": "#/definitions/handlers.ComponentHealth"}
                },
                "status": {"type": "string"},
                "timestamp": {"type": "string"}
            }
        },
        "utils.Response": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "message": {"type": "string"},
                "success": {"type": "boolean"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "People Service API",
	Description:      "CRUD API for people with generated avatar images",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

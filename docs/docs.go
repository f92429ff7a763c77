// Package docs is generated by swaggo/swag from the handler annotations.
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
        "/quizzes/{quizId}/question-imports": {
            "post": {
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["question-imports"],
                "summary": "Upload a question import template",
                "parameters": [
                    {"type": "integer", "description": "Quiz ID", "name": "quizId", "in": "path", "required": true},
                    {"type": "integer", "description": "Acting user", "name": "X-User-Id", "in": "header", "required": true},
                    {"type": "file", "description": "Template (.xlsx or .xls)", "name": "file", "in": "formData", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dtos.QuestionImportPreviewResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/dtos.ErrorResponse"}}
                }
            }
        },
        "/quizzes/{quizId}/question-imports/confirm": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["question-imports"],
                "summary": "Commit a staged question import",
                "parameters": [
                    {"type": "integer", "description": "Quiz ID", "name": "quizId", "in": "path", "required": true},
                    {"type": "integer", "description": "Acting user", "name": "X-User-Id", "in": "header", "required": true},
                    {"description": "Preview token and mode", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dtos.QuestionImportConfirmRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dtos.QuestionImportConfirmResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dtos.ErrorResponse"}}
                }
            }
        },
        "/quizzes/{quizId}/question-imports/{token}": {
            "delete": {
                "tags": ["question-imports"],
                "summary": "Drop a staged question import",
                "parameters": [
                    {"type": "integer", "description": "Quiz ID", "name": "quizId", "in": "path", "required": true},
                    {"type": "integer", "description": "Acting user", "name": "X-User-Id", "in": "header", "required": true},
                    {"type": "string", "description": "Preview token", "name": "token", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dtos.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "dtos.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "errors": {"type": "object", "additionalProperties": {"type": "string"}},
                "warnings": {"type": "array", "items": {"type": "string"}}
            }
        },
        "dtos.OptionPreview": {
            "type": "object",
            "properties": {
                "label": {"type": "string"},
                "text": {"type": "string"},
                "has_image": {"type": "boolean"},
                "image": {"type": "string"},
                "is_correct": {"type": "boolean"}
            }
        },
        "dtos.QuestionPreview": {
            "type": "object",
            "properties": {
                "label": {"type": "string"},
                "question": {"type": "string"},
                "question_image": {"type": "string"},
                "options": {"type": "array", "items": {"$ref": "#/definitions/dtos.OptionPreview"}}
            }
        },
        "dtos.QuestionImportPreviewResponse": {
            "type": "object",
            "properties": {
                "token": {"type": "string"},
                "imported_count": {"type": "integer"},
                "existing_count": {"type": "integer"},
                "questions": {"type": "array", "items": {"$ref": "#/definitions/dtos.QuestionPreview"}},
                "warnings": {"type": "array", "items": {"type": "string"}},
                "expires_at": {"type": "string"}
            }
        },
        "dtos.QuestionImportConfirmRequest": {
            "type": "object",
            "required": ["mode", "token"],
            "properties": {
                "token": {"type": "string"},
                "mode": {"type": "string", "enum": ["append", "replace"]}
            }
        },
        "dtos.QuestionImportConfirmResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "imported_count": {"type": "integer"},
                "removed_count": {"type": "integer"},
                "mode": {"type": "string"}
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
	Title:            "Quiz question import API",
	Description:      "Upload, preview and commit spreadsheet question imports.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

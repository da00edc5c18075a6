// Package docs registers the OpenAPI description served at /swagger.
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
        "/api/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Service health",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.HealthResponse"}},
                    "503": {"description": "Database unavailable", "schema": {"$ref": "#/definitions/types.HealthResponse"}}
                }
            }
        },
        "/api/questions": {
            "get": {
                "produces": ["application/json"],
                "tags": ["assessment"],
                "summary": "Question bank",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.QuestionsResponse"}}
                }
            }
        },
        "/api/assess": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["assessment"],
                "summary": "Score a questionnaire",
                "parameters": [
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/types.AssessRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.AssessResponse"}},
                    "400": {"description": "Invalid response value", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "429": {"description": "Rate limited", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/api/assessments/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["assessment"],
                "summary": "Stored assessment",
                "security": [{"ReportToken": []}],
                "parameters": [
                    {"type": "string", "description": "Assessment ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.StoredAssessmentResponse"}},
                    "401": {"description": "Invalid report token", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            },
            "delete": {
                "tags": ["privacy"],
                "summary": "Delete an assessment and its payments",
                "security": [{"ReportToken": []}],
                "parameters": [
                    {"type": "string", "description": "Assessment ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "Deleted"},
                    "401": {"description": "Invalid report token", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/api/create-checkout": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["checkout"],
                "summary": "Start checkout for the diagnostic report",
                "parameters": [
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/types.CheckoutRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.CheckoutResponse"}},
                    "404": {"description": "Unknown assessment", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "502": {"description": "Payment provider failed", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/api/webhook/stripe": {
            "post": {
                "consumes": ["application/json"],
                "tags": ["checkout"],
                "summary": "Stripe webhook",
                "parameters": [
                    {"type": "string", "name": "Stripe-Signature", "in": "header", "required": true}
                ],
                "responses": {
                    "200": {"description": "Received"},
                    "401": {"description": "Invalid signature", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/api/stats/archetypes": {
            "get": {
                "produces": ["application/json"],
                "tags": ["stats"],
                "summary": "Archetype distribution",
                "parameters": [
                    {"enum": ["daily", "weekly", "monthly", "all_time"], "type": "string", "name": "period", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/stats.Distribution"}},
                    "400": {"description": "Invalid period", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/api/rate-limit": {
            "get": {
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Remaining assessment quota for the caller",
                "responses": {"200": {"description": "OK"}}
            }
        }
    },
    "definitions": {
        "assessment.Context": {
            "type": "object",
            "properties": {
                "teamSize": {"type": "string", "example": "2-5"},
                "meetingLoad": {"type": "string", "example": "moderate"},
                "hourlyRate": {"type": "number", "example": 85},
                "platform": {"type": "string", "example": "google"}
            }
        },
        "assessment.Profile": {
            "type": "object",
            "properties": {
                "model_version": {"type": "string"},
                "axes": {"type": "object", "additionalProperties": {"type": "number"}},
                "classification": {"type": "object"},
                "mix": {"type": "object", "additionalProperties": {"type": "integer"}},
                "tagline": {"type": "string"},
                "estimate": {"type": "object"},
                "recommendations": {"type": "object"},
                "summary": {"type": "string"}
            }
        },
        "assessment.Question": {
            "type": "object",
            "properties": {
                "index": {"type": "integer"},
                "axis": {"type": "string"},
                "prompt": {"type": "string"},
                "option_a": {"type": "string"},
                "option_b": {"type": "string"}
            }
        },
        "types.AssessRequest": {
            "type": "object",
            "required": ["responses"],
            "properties": {
                "responses": {"type": "object", "additionalProperties": {}},
                "context": {"$ref": "#/definitions/assessment.Context"},
                "email": {"type": "string"}
            }
        },
        "types.AssessResponse": {
            "type": "object",
            "properties": {
                "assessment_id": {"type": "string"},
                "report_token": {"type": "string"},
                "profile": {"$ref": "#/definitions/assessment.Profile"},
                "created_at": {"type": "string"}
            }
        },
        "types.StoredAssessmentResponse": {
            "type": "object",
            "properties": {
                "assessment_id": {"type": "string"},
                "payment_status": {"type": "string"},
                "payments": {"type": "array", "items": {"$ref": "#/definitions/database.Payment"}},
                "profile": {"$ref": "#/definitions/assessment.Profile"},
                "created_at": {"type": "string"}
            }
        },
        "database.Payment": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "assessment_id": {"type": "string"},
                "stripe_session_id": {"type": "string"},
                "email": {"type": "string"},
                "amount": {"type": "integer"},
                "currency": {"type": "string"},
                "status": {"type": "string"},
                "created_at": {"type": "string"}
            }
        },
        "types.CheckoutRequest": {
            "type": "object",
            "required": ["email", "assessment_id"],
            "properties": {
                "email": {"type": "string"},
                "assessment_id": {"type": "string"}
            }
        },
        "types.CheckoutResponse": {
            "type": "object",
            "properties": {
                "checkout_url": {"type": "string"},
                "session_id": {"type": "string"}
            }
        },
        "types.QuestionsResponse": {
            "type": "object",
            "properties": {
                "questions": {"type": "array", "items": {"$ref": "#/definitions/assessment.Question"}},
                "count": {"type": "integer"}
            }
        },
        "types.HealthResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "timestamp": {"type": "string"},
                "version": {"type": "string"},
                "model_version": {"type": "string"},
                "database": {"type": "string"},
                "redis": {"type": "string"}
            }
        },
        "stats.Entry": {
            "type": "object",
            "properties": {
                "archetype": {"type": "string"},
                "display_name": {"type": "string"},
                "count": {"type": "integer"},
                "share": {"type": "number"},
                "average_overhead": {"type": "number"},
                "average_annual_cost": {"type": "number"}
            }
        },
        "stats.Distribution": {
            "type": "object",
            "properties": {
                "period": {"type": "string"},
                "period_start": {"type": "string"},
                "total": {"type": "integer"},
                "entries": {"type": "array", "items": {"$ref": "#/definitions/stats.Entry"}}
            }
        },
        "errors.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "message": {"type": "string"},
                "category": {"type": "string"},
                "details": {"type": "object", "additionalProperties": {"type": "string"}},
                "request_id": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "ReportToken": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "calm.profile API",
	Description:      "Scores the calm.profile questionnaire into an archetype profile with productivity cost metrics.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

// Package docs registers the OpenAPI document served under /swagger.
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
        "/api/estimate": {
            "post": {
                "description": "Prices flights, stay, food, activities and misc for a trip and stores the result",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["trips"],
                "summary": "Estimate a trip",
                "parameters": [
                    {
                        "description": "Trip request",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/trip.TripRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/trip.Trip"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/trips": {
            "get": {
                "produces": ["application/json"],
                "tags": ["trips"],
                "summary": "List saved trips",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/trip.Trip"}}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            },
            "post": {
                "description": "Stores a trip computed earlier; replaying the same id is accepted",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["trips"],
                "summary": "Save a computed trip",
                "parameters": [
                    {
                        "description": "Trip",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/trip.Trip"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/export-pdf": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/pdf"],
                "tags": ["trips"],
                "summary": "Export a trip summary",
                "parameters": [
                    {
                        "description": "Trip",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/trip.Trip"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "file"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        }
    },
    "definitions": {
        "pricing.Breakdown": {
            "type": "object",
            "properties": {
                "transportation": {"type": "integer"},
                "accommodation": {"type": "integer"},
                "food": {"type": "integer"},
                "activities": {"type": "integer"},
                "misc": {"type": "integer"},
                "flightPerPerson": {"type": "integer"},
                "flightSource": {"type": "string", "enum": ["live", "fallback"]}
            }
        },
        "trip.Meta": {
            "type": "object",
            "properties": {
                "nights": {"type": "integer"},
                "roomsNeeded": {"type": "integer"},
                "tier": {"type": "string", "enum": ["budget", "mid", "luxury"]}
            }
        },
        "trip.TripRequest": {
            "type": "object",
            "properties": {
                "origin": {"type": "string", "example": "Delhi"},
                "destination": {"type": "string", "example": "Mumbai"},
                "startDate": {"type": "string", "example": "2025-12-15"},
                "endDate": {"type": "string", "example": "2025-12-20"},
                "travelers": {"type": "integer", "example": 2},
                "accommodation": {"type": "string", "example": "mid"},
                "transportation": {"type": "string"},
                "promoCode": {"type": "string"}
            }
        },
        "trip.Trip": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "origin": {"type": "string"},
                "destination": {"type": "string"},
                "startDate": {"type": "string"},
                "endDate": {"type": "string"},
                "travelers": {"type": "integer"},
                "accommodation": {"type": "string"},
                "transportation": {"type": "string"},
                "promoCode": {"type": "string"},
                "originCode": {"type": "string"},
                "destinationCode": {"type": "string"},
                "breakdown": {"$ref": "#/definitions/pricing.Breakdown"},
                "totalCost": {"type": "integer"},
                "meta": {"$ref": "#/definitions/trip.Meta"},
                "createdAt": {"type": "string", "format": "date-time"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "TrulyTravels API",
	Description:      "Trip cost estimation, saved trips and PDF trip summaries.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

// Package docs registers the ledger's OpenAPI document with swag so that
// gin-swagger can serve it. Regenerate from the handler annotations with
// `swag init -g cmd/server/main.go -o docs`.
package docs

import "github.com/swaggo/swag/v2"

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
        "/stores/{storeId}/locations": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["locations"],
                "summary": "List a store's locations",
                "operationId": "listLocations",
                "parameters": [
                    {"type": "string", "format": "uuid", "name": "storeId", "in": "path", "required": true},
                    {"type": "boolean", "name": "active_only", "in": "query"},
                    {"$ref": "#/parameters/page"},
                    {"$ref": "#/parameters/limit"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ListResponse"}},
                    "400": {"$ref": "#/responses/Error"},
                    "403": {"$ref": "#/responses/Error"}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["locations"],
                "summary": "Create a location",
                "operationId": "createLocation",
                "parameters": [
                    {"type": "string", "format": "uuid", "name": "storeId", "in": "path", "required": true},
                    {"$ref": "#/parameters/idempotencyKey"},
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateLocationRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/LocationEnvelope"}},
                    "400": {"$ref": "#/responses/Error"},
                    "409": {"$ref": "#/responses/Error"}
                }
            }
        },
        "/stores/{storeId}/items": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["items"],
                "summary": "List a store's inventory items",
                "operationId": "listItems",
                "parameters": [
                    {"type": "string", "format": "uuid", "name": "storeId", "in": "path", "required": true},
                    {"type": "string", "format": "uuid", "name": "location_id", "in": "query"},
                    {"type": "string", "format": "uuid", "name": "product_id", "in": "query"},
                    {"type": "string", "format": "uuid", "name": "variant_id", "in": "query"},
                    {"type": "string", "enum": ["IN_STOCK", "LOW_STOCK", "OUT_OF_STOCK"], "name": "stock_status", "in": "query"},
                    {"$ref": "#/parameters/page"},
                    {"$ref": "#/parameters/limit"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ListResponse"}},
                    "400": {"$ref": "#/responses/Error"}
                }
            }
        },
        "/stores/{storeId}/stats": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["stats"],
                "summary": "Store inventory summary",
                "operationId": "getStoreStats",
                "parameters": [
                    {"type": "string", "format": "uuid", "name": "storeId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/StoreStatsEnvelope"}}
                }
            }
        },
        "/locations/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["locations"],
                "summary": "Get a location",
                "operationId": "getLocation",
                "parameters": [{"$ref": "#/parameters/id"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/LocationEnvelope"}},
                    "404": {"$ref": "#/responses/Error"}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["locations"],
                "summary": "Update a location's name, address and coordinates",
                "operationId": "updateLocation",
                "parameters": [
                    {"$ref": "#/parameters/id"},
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateLocationRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/LocationEnvelope"}},
                    "404": {"$ref": "#/responses/Error"}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["locations"],
                "summary": "Delete an unused location",
                "operationId": "deleteLocation",
                "parameters": [{"$ref": "#/parameters/id"}],
                "responses": {
                    "204": {"description": "No Content"},
                    "409": {"$ref": "#/responses/Error"}
                }
            }
        },
        "/locations/{id}/deactivate": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["locations"],
                "summary": "Deactivate a location holding no stock",
                "operationId": "deactivateLocation",
                "parameters": [{"$ref": "#/parameters/id"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/LocationEnvelope"}},
                    "409": {"$ref": "#/responses/Error"}
                }
            }
        },
        "/locations/{id}/activate": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["locations"],
                "summary": "Reactivate a location",
                "operationId": "activateLocation",
                "parameters": [{"$ref": "#/parameters/id"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/LocationEnvelope"}}
                }
            }
        },
        "/locations/{id}/default": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["locations"],
                "summary": "Make a location the store default",
                "operationId": "setDefaultLocation",
                "parameters": [{"$ref": "#/parameters/id"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/LocationEnvelope"}},
                    "422": {"$ref": "#/responses/Error"}
                }
            }
        },
        "/locations/{id}/items": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["items"],
                "summary": "Get the item for a product or variant at a location",
                "operationId": "getItemByKey",
                "parameters": [
                    {"$ref": "#/parameters/id"},
                    {"type": "string", "format": "uuid", "name": "product_id", "in": "query"},
                    {"type": "string", "format": "uuid", "name": "variant_id", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ItemEnvelope"}},
                    "404": {"$ref": "#/responses/Error"}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["items"],
                "summary": "Get or create the item for a product or variant",
                "operationId": "ensureItem",
                "parameters": [
                    {"$ref": "#/parameters/id"},
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ItemRef"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ItemEnvelope"}},
                    "400": {"$ref": "#/responses/Error"}
                }
            }
        },
        "/locations/{id}/items/thresholds": {
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["items"],
                "summary": "Set an item's stock thresholds",
                "operationId": "setItemThresholds",
                "parameters": [
                    {"$ref": "#/parameters/id"},
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SetThresholdsRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ItemEnvelope"}},
                    "400": {"$ref": "#/responses/Error"}
                }
            }
        },
        "/locations/{id}/items/reconcile": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["items"],
                "summary": "Compare an item with a replay of its ledger",
                "operationId": "reconcileItem",
                "parameters": [
                    {"$ref": "#/parameters/id"},
                    {"type": "string", "format": "uuid", "name": "product_id", "in": "query"},
                    {"type": "string", "format": "uuid", "name": "variant_id", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/items/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["items"],
                "summary": "Get an inventory item",
                "operationId": "getItem",
                "parameters": [{"$ref": "#/parameters/id"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ItemEnvelope"}},
                    "404": {"$ref": "#/responses/Error"}
                }
            }
        },
        "/movements": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["movements"],
                "summary": "List ledger rows",
                "operationId": "listMovements",
                "parameters": [
                    {"type": "string", "format": "uuid", "name": "store_id", "in": "query"},
                    {"type": "string", "format": "uuid", "name": "location_id", "in": "query"},
                    {"type": "string", "format": "uuid", "name": "product_id", "in": "query"},
                    {"type": "string", "format": "uuid", "name": "variant_id", "in": "query"},
                    {"type": "string", "enum": ["IN", "OUT", "TRANSFER", "ADJUSTMENT", "RETURN", "DAMAGED", "EXPIRED"], "name": "type", "in": "query"},
                    {"type": "string", "name": "from", "in": "query"},
                    {"type": "string", "name": "to", "in": "query"},
                    {"type": "string", "format": "uuid", "name": "correlation_id", "in": "query"},
                    {"type": "string", "format": "uuid", "name": "order_id", "in": "query"},
                    {"type": "string", "name": "reference_number", "in": "query"},
                    {"type": "string", "enum": ["asc", "desc"], "name": "order", "in": "query"},
                    {"$ref": "#/parameters/page"},
                    {"$ref": "#/parameters/limit"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ListResponse"}},
                    "400": {"$ref": "#/responses/Error"},
                    "403": {"$ref": "#/responses/Error"}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["movements"],
                "summary": "Record a stock movement",
                "operationId": "recordMovement",
                "parameters": [
                    {"$ref": "#/parameters/idempotencyKey"},
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RecordMovementRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/Envelope"}},
                    "400": {"$ref": "#/responses/Error"},
                    "404": {"$ref": "#/responses/Error"},
                    "409": {"$ref": "#/responses/Error"},
                    "422": {"$ref": "#/responses/Error"}
                }
            }
        },
        "/movements/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["movements"],
                "summary": "Get a ledger row",
                "operationId": "getMovement",
                "parameters": [{"$ref": "#/parameters/id"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}},
                    "404": {"$ref": "#/responses/Error"}
                }
            }
        },
        "/reservations/reserve": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["reservations"],
                "summary": "Reserve available stock",
                "operationId": "reserveStock",
                "parameters": [
                    {"$ref": "#/parameters/idempotencyKey"},
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ReservationRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ItemEnvelope"}},
                    "422": {"$ref": "#/responses/Error"}
                }
            }
        },
        "/reservations/release": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["reservations"],
                "summary": "Release reserved stock",
                "operationId": "releaseStock",
                "parameters": [
                    {"$ref": "#/parameters/idempotencyKey"},
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ReservationRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ItemEnvelope"}},
                    "422": {"$ref": "#/responses/Error"}
                }
            }
        },
        "/reservations/commit": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["reservations"],
                "summary": "Ship reserved stock as an OUT movement",
                "operationId": "commitReservation",
                "parameters": [
                    {"$ref": "#/parameters/idempotencyKey"},
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CommitReservationRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/Envelope"}},
                    "422": {"$ref": "#/responses/Error"}
                }
            }
        },
        "/system/info": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Build and runtime information",
                "operationId": "systemInfo",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        }
    },
    "parameters": {
        "id": {"type": "string", "format": "uuid", "name": "id", "in": "path", "required": true},
        "page": {"type": "integer", "default": 1, "minimum": 1, "name": "page", "in": "query"},
        "limit": {"type": "integer", "default": 20, "minimum": 1, "maximum": 100, "name": "limit", "in": "query"},
        "idempotencyKey": {"type": "string", "maxLength": 255, "name": "Idempotency-Key", "in": "header"}
    },
    "responses": {
        "Error": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorResponse"}}
    },
    "definitions": {
        "Envelope": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "data": {"type": "object"}
            }
        },
        "ListResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "data": {
                    "type": "object",
                    "properties": {
                        "items": {"type": "array", "items": {"type": "object"}},
                        "pagination": {
                            "type": "object",
                            "properties": {
                                "page": {"type": "integer"},
                                "limit": {"type": "integer"},
                                "total": {"type": "integer"},
                                "totalPages": {"type": "integer"}
                            }
                        }
                    }
                }
            }
        },
        "ErrorResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean", "example": false},
                "error": {
                    "type": "object",
                    "properties": {
                        "code": {"type": "string", "example": "ERR_NEGATIVE_STOCK"},
                        "message": {"type": "string"},
                        "request_id": {"type": "string"},
                        "details": {"type": "array", "items": {"type": "object"}}
                    }
                }
            }
        },
        "Location": {
            "type": "object",
            "properties": {
                "id": {"type": "string", "format": "uuid"},
                "storeId": {"type": "string", "format": "uuid"},
                "name": {"type": "string"},
                "code": {"type": "string"},
                "address": {"type": "string"},
                "latitude": {"type": "number"},
                "longitude": {"type": "number"},
                "isActive": {"type": "boolean"},
                "isDefault": {"type": "boolean"},
                "version": {"type": "integer"},
                "createdAt": {"type": "string", "format": "date-time"},
                "updatedAt": {"type": "string", "format": "date-time"}
            }
        },
        "LocationEnvelope": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "data": {"$ref": "#/definitions/Location"}
            }
        },
        "Item": {
            "type": "object",
            "properties": {
                "id": {"type": "string", "format": "uuid"},
                "storeId": {"type": "string", "format": "uuid"},
                "locationId": {"type": "string", "format": "uuid"},
                "productId": {"type": "string", "format": "uuid"},
                "variantId": {"type": "string", "format": "uuid"},
                "quantity": {"type": "integer"},
                "reservedQty": {"type": "integer"},
                "availableQty": {"type": "integer"},
                "minStockLevel": {"type": "integer"},
                "maxStockLevel": {"type": "integer"},
                "reorderPoint": {"type": "integer"},
                "avgCostPrice": {"type": "string", "example": "12.5000"},
                "lastCostPrice": {"type": "string"},
                "totalValue": {"type": "string"},
                "stockStatus": {"type": "string", "enum": ["IN_STOCK", "LOW_STOCK", "OUT_OF_STOCK"]},
                "version": {"type": "integer"},
                "updatedAt": {"type": "string", "format": "date-time"}
            }
        },
        "ItemEnvelope": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "data": {"$ref": "#/definitions/Item"}
            }
        },
        "StoreStatsEnvelope": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "data": {
                    "type": "object",
                    "properties": {
                        "totalLocations": {"type": "integer"},
                        "totalProducts": {"type": "integer"},
                        "totalValue": {"type": "string"},
                        "lowStockItems": {"type": "integer"},
                        "outOfStockItems": {"type": "integer"},
                        "recentMovements": {"type": "integer"}
                    }
                }
            }
        },
        "ItemRef": {
            "type": "object",
            "description": "Exactly one of productId and variantId",
            "properties": {
                "productId": {"type": "string", "format": "uuid"},
                "variantId": {"type": "string", "format": "uuid"}
            }
        },
        "CreateLocationRequest": {
            "type": "object",
            "required": ["name", "code"],
            "properties": {
                "name": {"type": "string", "maxLength": 255},
                "code": {"type": "string", "maxLength": 50},
                "address": {"type": "string", "maxLength": 500},
                "latitude": {"type": "number"},
                "longitude": {"type": "number"},
                "isDefault": {"type": "boolean"}
            }
        },
        "UpdateLocationRequest": {
            "type": "object",
            "required": ["name"],
            "properties": {
                "name": {"type": "string", "maxLength": 255},
                "address": {"type": "string", "maxLength": 500},
                "latitude": {"type": "number"},
                "longitude": {"type": "number"}
            }
        },
        "SetThresholdsRequest": {
            "type": "object",
            "properties": {
                "productId": {"type": "string", "format": "uuid"},
                "variantId": {"type": "string", "format": "uuid"},
                "minStockLevel": {"type": "integer", "minimum": 0},
                "maxStockLevel": {"type": "integer", "minimum": 0},
                "reorderPoint": {"type": "integer", "minimum": 0}
            }
        },
        "RecordMovementRequest": {
            "type": "object",
            "required": ["locationId", "type"],
            "properties": {
                "storeId": {"type": "string", "format": "uuid"},
                "locationId": {"type": "string", "format": "uuid"},
                "productId": {"type": "string", "format": "uuid"},
                "variantId": {"type": "string", "format": "uuid"},
                "type": {"type": "string", "enum": ["IN", "OUT", "TRANSFER", "ADJUSTMENT", "RETURN", "DAMAGED", "EXPIRED"]},
                "quantity": {"type": "integer", "minimum": 0},
                "signedDelta": {"type": "integer"},
                "unitCost": {"type": "string", "example": "12.5000"},
                "reason": {"type": "string", "maxLength": 500},
                "referenceNumber": {"type": "string", "maxLength": 100},
                "transferToLocationId": {"type": "string", "format": "uuid"},
                "orderId": {"type": "string", "format": "uuid"}
            }
        },
        "ReservationRequest": {
            "type": "object",
            "required": ["locationId", "quantity"],
            "properties": {
                "storeId": {"type": "string", "format": "uuid"},
                "locationId": {"type": "string", "format": "uuid"},
                "productId": {"type": "string", "format": "uuid"},
                "variantId": {"type": "string", "format": "uuid"},
                "quantity": {"type": "integer", "minimum": 1}
            }
        },
        "CommitReservationRequest": {
            "type": "object",
            "required": ["locationId", "quantity"],
            "properties": {
                "storeId": {"type": "string", "format": "uuid"},
                "locationId": {"type": "string", "format": "uuid"},
                "productId": {"type": "string", "format": "uuid"},
                "variantId": {"type": "string", "format": "uuid"},
                "quantity": {"type": "integer", "minimum": 1},
                "orderId": {"type": "string", "format": "uuid"},
                "reason": {"type": "string", "maxLength": 500},
                "referenceNumber": {"type": "string", "maxLength": 100}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Bearer token issued by the identity service. Format: \"Bearer {token}\"",
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
	Title:            "Inventory Ledger API",
	Description:      "Multi-location stock ledger: locations, items, movements, reservations and stock statistics.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

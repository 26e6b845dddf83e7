// Package docs holds the Swagger document for the HTTP API. It mirrors the
// handler annotations; regenerate with `swag init -g cmd/server/main.go`.
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
        "/api/assets": {
            "get": {
                "description": "Returns the static asset catalog, optionally filtered by category",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "catalog"
                ],
                "summary": "List tradeable assets",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Asset category (Forex, Crypto, Metals; case-insensitive)",
                        "name": "category",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "additionalProperties": true
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            }
        },
        "/api/sessions/{id}": {
            "get": {
                "description": "Returns the snapshot for a session id, creating the session on first use",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "sessions"
                ],
                "summary": "Get a session snapshot",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Session ID (letters, digits, dash, underscore)",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/session.Snapshot"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            }
        },
        "/api/sessions/{id}/events": {
            "post": {
                "description": "Applies one event to the session. Rejected events answer 409 with the unchanged snapshot so clients can re-render",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "sessions"
                ],
                "summary": "Dispatch a session event",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Session ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Event to dispatch",
                        "name": "event",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handler.eventRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/session.Snapshot"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "type": "object",
                            "additionalProperties": true
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            }
        },
        "/api/sessions/{id}/ws": {
            "get": {
                "description": "Upgrades to a websocket that receives the current snapshot and then one snapshot per accepted or rejected event",
                "tags": [
                    "sessions"
                ],
                "summary": "Stream session snapshots",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Session ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "101": {
                        "description": "Switching Protocols",
                        "schema": {
                            "$ref": "#/definitions/session.Snapshot"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            }
        },
        "/api/timeframes": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "catalog"
                ],
                "summary": "List supported timeframes",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "additionalProperties": true
                        }
                    }
                }
            }
        },
        "/health": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "health"
                ],
                "summary": "Health check",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "domain.Asset": {
            "type": "object",
            "properties": {
                "abs_change": {
                    "type": "string"
                },
                "category": {
                    "type": "string",
                    "enum": [
                        "Forex",
                        "Crypto",
                        "Metals"
                    ]
                },
                "change": {
                    "type": "string"
                },
                "flag": {
                    "type": "string"
                },
                "high": {
                    "type": "string"
                },
                "id": {
                    "type": "string"
                },
                "low": {
                    "type": "string"
                },
                "name": {
                    "type": "string"
                },
                "open": {
                    "type": "string"
                },
                "prev": {
                    "type": "string"
                },
                "price": {
                    "type": "string"
                }
            }
        },
        "domain.Signal": {
            "type": "object",
            "properties": {
                "asset": {
                    "$ref": "#/definitions/domain.Asset"
                },
                "direction": {
                    "type": "string",
                    "enum": [
                        "BUY",
                        "SELL"
                    ]
                },
                "id": {
                    "type": "string"
                },
                "probability": {
                    "type": "integer"
                },
                "status": {
                    "type": "string",
                    "enum": [
                        "PENDING",
                        "CONFIRMED",
                        "FAILED"
                    ]
                },
                "timeframe": {
                    "type": "string"
                },
                "timestamp": {
                    "type": "string"
                }
            }
        },
        "handler.eventRequest": {
            "type": "object",
            "required": [
                "type"
            ],
            "properties": {
                "asset_id": {
                    "type": "string"
                },
                "secret": {
                    "type": "string"
                },
                "signal_id": {
                    "type": "string"
                },
                "status": {
                    "type": "string"
                },
                "timeframe": {
                    "type": "string"
                },
                "type": {
                    "type": "string"
                }
            }
        },
        "session.Snapshot": {
            "type": "object",
            "properties": {
                "current_signal": {
                    "$ref": "#/definitions/domain.Signal"
                },
                "forex_open": {
                    "type": "boolean"
                },
                "history": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/domain.Signal"
                    }
                },
                "language": {
                    "type": "string",
                    "enum": [
                        "RU",
                        "EN"
                    ]
                },
                "last_reset": {
                    "type": "string"
                },
                "limit": {
                    "type": "integer"
                },
                "next_reset": {
                    "type": "string"
                },
                "remaining": {
                    "type": "integer"
                },
                "screen": {
                    "type": "string"
                },
                "selected_asset": {
                    "$ref": "#/definitions/domain.Asset"
                },
                "selected_timeframe": {
                    "type": "string"
                },
                "session_id": {
                    "type": "string"
                },
                "signals_used": {
                    "type": "integer"
                },
                "theme": {
                    "type": "string",
                    "enum": [
                        "light",
                        "dark"
                    ]
                },
                "tier": {
                    "type": "string",
                    "enum": [
                        "STANDARD",
                        "ELITE",
                        "VIP"
                    ]
                },
                "unlimited": {
                    "type": "boolean"
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Signal Desk API",
	Description:      "Guided trade-signal sessions with tiered quota accounting, served over HTTP and websocket.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Schedview API",
        "description": "Calendar view and filter engine over a remote schedule service",
        "version": "0.1.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Calendar", "description": "Assembled calendar view, display mode and filter criteria"},
        {"name": "Events", "description": "Event collections mirrored from the remote service"},
        {"name": "Owners", "description": "Team directory roster and lookup facets"},
        {"name": "Scopes", "description": "Schedules and the active-scope selection"},
        {"name": "Exports", "description": "Downloadable schedule renditions"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"}
                }
            }
        },
        "/calendar": {
            "get": {
                "tags": ["Calendar"],
                "summary": "Get the assembled calendar view",
                "parameters": [
                    {"name": "scope", "in": "query", "type": "string", "description": "Scope override, kind:id"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/calendar/view": {
            "put": {
                "tags": ["Calendar"],
                "summary": "Switch the calendar display mode",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ViewMode"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/calendar/filter": {
            "get": {
                "tags": ["Calendar"],
                "summary": "Get the current filter criteria",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Calendar"],
                "summary": "Replace the filter criteria",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/FilterCriteria"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Calendar"],
                "summary": "Reset the filter to its empty state",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/events": {
            "get": {
                "tags": ["Events"],
                "summary": "List the events of a scope",
                "parameters": [
                    {"name": "scope", "in": "query", "type": "string", "description": "Scope override, kind:id"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Events"],
                "summary": "Create an event in the active schedule",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/EventDraft"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/events/reload": {
            "post": {
                "tags": ["Events"],
                "summary": "Reload a scope's events from the remote service",
                "parameters": [
                    {"name": "scope", "in": "query", "type": "string", "description": "Scope override, kind:id"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/events/{id}": {
            "put": {
                "tags": ["Events"],
                "summary": "Apply a partial update to an event",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/EventPatch"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Events"],
                "summary": "Delete an event",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/owners": {
            "get": {
                "tags": ["Owners"],
                "summary": "List or search the owner roster",
                "parameters": [
                    {"name": "q", "in": "query", "type": "string"},
                    {"name": "class", "in": "query", "type": "string"},
                    {"name": "grade", "in": "query", "type": "string"},
                    {"name": "role", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/owners/classes": {
            "get": {
                "tags": ["Owners"],
                "summary": "List the distinct class labels",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/owners/grades": {
            "get": {
                "tags": ["Owners"],
                "summary": "List the distinct grade labels",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/owners/refresh": {
            "post": {
                "tags": ["Owners"],
                "summary": "Force a roster refresh",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/schedules": {
            "get": {
                "tags": ["Scopes"],
                "summary": "List the caller's schedules",
                "parameters": [
                    {"name": "status", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Scopes"],
                "summary": "Create a schedule and make it active",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ScheduleDraft"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/schedules/reload": {
            "post": {
                "tags": ["Scopes"],
                "summary": "Refetch the schedule list and restore the active selection",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/schedules/active": {
            "get": {
                "tags": ["Scopes"],
                "summary": "Get the active schedule",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Scopes"],
                "summary": "Select the active schedule",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SetActiveRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/schedules/{id}": {
            "put": {
                "tags": ["Scopes"],
                "summary": "Apply a partial update to a schedule",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SchedulePatch"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Scopes"],
                "summary": "Delete a schedule",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/exports/{format}": {
            "get": {
                "tags": ["Exports"],
                "summary": "Download the active schedule in the requested format",
                "parameters": [
                    {"name": "format", "in": "path", "required": true, "type": "string", "enum": ["ics", "csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "File download"}
                }
            }
        }
    },
    "definitions": {
        "Event": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "schedule_id": {"type": "integer"},
                "owner_id": {"type": "integer"},
                "title": {"type": "string"},
                "description": {"type": "string"},
                "location": {"type": "string"},
                "start_time": {"type": "string"},
                "end_time": {"type": "string"},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"},
                "owner": {"$ref": "#/definitions/OwnerSummary"}
            }
        },
        "EventDraft": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "description": {"type": "string"},
                "location": {"type": "string"},
                "start_time": {"type": "string"},
                "end_time": {"type": "string"}
            },
            "required": ["title", "start_time", "end_time"]
        },
        "EventPatch": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "description": {"type": "string"},
                "location": {"type": "string"},
                "start_time": {"type": "string"},
                "end_time": {"type": "string"}
            }
        },
        "OwnerSummary": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "student_id": {"type": "string"},
                "full_name": {"type": "string"},
                "class_name": {"type": "string"},
                "grade": {"type": "string"},
                "role": {"type": "string"},
                "team_ids": {"type": "array", "items": {"type": "integer"}}
            }
        },
        "Schedule": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "owner_id": {"type": "integer"},
                "status": {"type": "string"},
                "start_date": {"type": "string"},
                "total_weeks": {"type": "integer"},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "ScheduleDraft": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "status": {"type": "string"},
                "start_date": {"type": "string"},
                "total_weeks": {"type": "integer"}
            },
            "required": ["name", "start_date"]
        },
        "SchedulePatch": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "status": {"type": "string"},
                "start_date": {"type": "string"},
                "total_weeks": {"type": "integer"}
            }
        },
        "SetActiveRequest": {
            "type": "object",
            "properties": {
                "schedule_id": {"type": "integer"}
            },
            "required": ["schedule_id"]
        },
        "ViewMode": {
            "type": "object",
            "properties": {
                "type": {"type": "string", "enum": ["week", "month"]},
                "anchor": {"type": "string"}
            },
            "required": ["type", "anchor"]
        },
        "FilterCriteria": {
            "type": "object",
            "properties": {
                "start": {"type": "string"},
                "end": {"type": "string"},
                "owner_ids": {"type": "array", "items": {"type": "integer"}},
                "team_ids": {"type": "array", "items": {"type": "integer"}},
                "class_name": {"type": "string"},
                "grade": {"type": "string"},
                "name_keyword": {"type": "string"},
                "title_keyword": {"type": "string"}
            }
        },
        "ColorTriple": {
            "type": "object",
            "properties": {
                "background": {"type": "string"},
                "border": {"type": "string"},
                "text": {"type": "string"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}

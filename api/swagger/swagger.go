package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Interview Flow API",
        "description": "Performance-review interview lifecycle service",
        "version": "0.1.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Interviews", "description": "Interview session lifecycle"},
        {"name": "Templates", "description": "Feedback template management"},
        {"name": "Dashboard", "description": "Workflow bucket overview"},
        {"name": "Notifications", "description": "Reminder feed"}
    ],
    "paths": {
        "/interviews": {
            "get": {
                "tags": ["Interviews"],
                "summary": "List interview sessions",
                "parameters": [
                    {"name": "bucket", "in": "query", "type": "string"},
                    {"name": "employeeId", "in": "query", "type": "string"},
                    {"name": "managerId", "in": "query", "type": "string"},
                    {"name": "period", "in": "query", "type": "string"},
                    {"name": "department", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "pageSize", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Interviews"],
                "summary": "Create an interview session",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateSessionRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/interviews/batch": {
            "post": {
                "tags": ["Interviews"],
                "summary": "Create sessions for several employees",
                "responses": {
                    "200": {"description": "Per-item results", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/interviews/{id}": {
            "get": {
                "tags": ["Interviews"],
                "summary": "Get an interview session",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Interviews"],
                "summary": "Cancel a session that has not started",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "version", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "409": {"description": "Illegal transition or version conflict"}
                }
            }
        },
        "/interviews/{id}/schedule": {
            "post": {
                "tags": ["Interviews"],
                "summary": "Schedule the interview meeting",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ScheduleSessionRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Illegal transition or version conflict"}
                }
            }
        },
        "/interviews/{id}/direct-feedback": {
            "post": {
                "tags": ["Interviews"],
                "summary": "Give feedback immediately, skipping the meeting",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Illegal transition or version conflict"}
                }
            }
        },
        "/interviews/{id}/enter-meeting": {
            "post": {
                "tags": ["Interviews"],
                "summary": "Enter the scheduled meeting",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Illegal transition or version conflict"}
                }
            }
        },
        "/interviews/{id}/feedback": {
            "post": {
                "tags": ["Interviews"],
                "summary": "Submit authored feedback for confirmation",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SubmitFeedbackRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Illegal transition or version conflict"}
                }
            }
        },
        "/interviews/{id}/confirm": {
            "post": {
                "tags": ["Interviews"],
                "summary": "Confirm the interview result",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Illegal transition or version conflict"}
                }
            }
        },
        "/interviews/{id}/remind": {
            "post": {
                "tags": ["Interviews"],
                "summary": "Remind the participant whose action is pending",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "202": {"description": "Reminder queued", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Illegal transition"}
                }
            }
        },
        "/interviews/{id}/export": {
            "get": {
                "tags": ["Interviews"],
                "summary": "Export a completed session's feedback summary",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "Rendered document"}
                }
            }
        },
        "/dashboard/summary": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Bucket counts and scheduling urgency",
                "parameters": [
                    {"name": "refresh", "in": "query", "type": "boolean"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/templates": {
            "get": {
                "tags": ["Templates"],
                "summary": "List feedback templates",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Templates"],
                "summary": "Create a feedback template",
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/templates/{id}": {
            "get": {
                "tags": ["Templates"],
                "summary": "Get a feedback template",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Templates"],
                "summary": "Update a feedback template",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Templates"],
                "summary": "Delete a feedback template",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/notifications": {
            "get": {
                "tags": ["Notifications"],
                "summary": "List the caller's notifications",
                "parameters": [
                    {"name": "sessionId", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "InterviewSession": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "employeeId": {"type": "string"},
                "employeeName": {"type": "string"},
                "managerId": {"type": "string"},
                "managerName": {"type": "string"},
                "status": {"type": "string", "enum": ["NOT_STARTED", "IN_PROGRESS", "PENDING_CONFIRMATION", "COMPLETED", "ARCHIVED"]},
                "schedulingStatus": {"type": "string", "enum": ["PENDING", "SCHEDULED"]},
                "method": {"type": "string", "enum": ["DIRECT", "APPOINTMENT"]},
                "date": {"type": "string"},
                "deadline": {"type": "string"},
                "topic": {"type": "string"},
                "period": {"type": "string"},
                "assessmentCycle": {"type": "string"},
                "templateId": {"type": "string"},
                "version": {"type": "integer"}
            }
        },
        "CreateSessionRequest": {
            "type": "object",
            "properties": {
                "employeeId": {"type": "string"},
                "employeeName": {"type": "string"},
                "managerId": {"type": "string"},
                "managerName": {"type": "string"},
                "deadline": {"type": "string"},
                "period": {"type": "string"},
                "templateId": {"type": "string"}
            },
            "required": ["employeeId", "employeeName", "managerId", "managerName"]
        },
        "ScheduleSessionRequest": {
            "type": "object",
            "properties": {
                "date": {"type": "string"},
                "time": {"type": "string"},
                "topic": {"type": "string"},
                "version": {"type": "integer"}
            },
            "required": ["date"]
        },
        "SubmitFeedbackRequest": {
            "type": "object",
            "properties": {
                "content": {"type": "object"},
                "version": {"type": "integer"}
            },
            "required": ["content"]
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
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
                "pagination": {"$ref": "#/definitions/Pagination"},
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

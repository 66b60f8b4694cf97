package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "PTA Archive API",
        "description": "Employee document archive over the legacy DMS",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "tags": [
        {"name": "auth", "description": "DMS-backed authentication"},
        {"name": "archives", "description": "Employee archive records"},
        {"name": "documents", "description": "Stored document retrieval"},
        {"name": "employees", "description": "HR master list"},
        {"name": "lookups", "description": "Reference tables"},
        {"name": "dashboard", "description": "Summary counters"}
    ],
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Authenticate against the DMS",
                "parameters": [
                    {"name": "credentials", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/auth/logout": {
            "post": {
                "tags": ["auth"],
                "summary": "Invalidate the current session",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/auth/me": {
            "get": {
                "tags": ["auth"],
                "summary": "Describe the authenticated user",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/archives": {
            "get": {
                "tags": ["archives"],
                "summary": "List employee archives",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "status_id", "in": "query", "type": "integer"},
                    {"name": "card_status", "in": "query", "type": "string", "enum": ["MISSING", "EXPIRED", "EXPIRING", "VALID"]},
                    {"name": "warrant_status", "in": "query", "type": "string", "enum": ["MISSING", "EXPIRED", "EXPIRING", "VALID"]},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "per_page", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["archives"],
                "summary": "Create an archive with documents",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateArchiveRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "409": {"description": "Employee already archived"}
                }
            }
        },
        "/archives/{id}": {
            "get": {
                "tags": ["archives"],
                "summary": "Get one archive with its documents",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not found"}
                }
            },
            "put": {
                "tags": ["archives"],
                "summary": "Update an archive",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateArchiveRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not found"}
                }
            },
            "delete": {
                "tags": ["archives"],
                "summary": "Disable an archive and its documents",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "Disabled"},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/archives/export": {
            "get": {
                "tags": ["archives"],
                "summary": "Export the archive listing as CSV or PDF",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]},
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "status_id", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "File"}
                }
            }
        },
        "/archives/import": {
            "post": {
                "tags": ["archives"],
                "summary": "Bulk-create archives from a spreadsheet",
                "security": [{"BearerAuth": []}],
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"name": "file", "in": "formData", "required": true, "type": "file"}
                ],
                "responses": {
                    "200": {"description": "Imported"},
                    "422": {"description": "Row errors, nothing imported"}
                }
            }
        },
        "/documents/{docNumber}/download": {
            "get": {
                "tags": ["documents"],
                "summary": "Download one archived document",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "docNumber", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "File"},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/hr/employees": {
            "get": {
                "tags": ["employees"],
                "summary": "List HR employees with archive flags",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "unarchived", "in": "query", "type": "boolean"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "per_page", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/hr/employees/{empno}": {
            "get": {
                "tags": ["employees"],
                "summary": "Get one HR employee",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "empno", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/lookups/statuses": {
            "get": {
                "tags": ["lookups"],
                "summary": "List employee statuses",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/lookups/document-types": {
            "get": {
                "tags": ["lookups"],
                "summary": "List document types",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/lookups/legislations": {
            "get": {
                "tags": ["lookups"],
                "summary": "List legislations",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/dashboard/counts": {
            "get": {
                "tags": ["dashboard"],
                "summary": "Archive summary counts",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}}
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "required": ["username", "password"],
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "DocumentInput": {
            "type": "object",
            "required": ["doc_type_id", "file_name", "content"],
            "properties": {
                "doc_type_id": {"type": "integer"},
                "file_name": {"type": "string"},
                "content": {"type": "string", "format": "byte"},
                "expiry_date": {"type": "string", "format": "date"},
                "legislation_ids": {"type": "array", "items": {"type": "integer"}}
            }
        },
        "EmployeeProfileInput": {
            "type": "object",
            "properties": {
                "job_title": {"type": "string"},
                "nationality": {"type": "string"},
                "email": {"type": "string"},
                "phone": {"type": "string"},
                "manager": {"type": "string"},
                "department": {"type": "string"},
                "section": {"type": "string"}
            }
        },
        "CreateArchiveRequest": {
            "type": "object",
            "required": ["empno", "status_id", "documents"],
            "properties": {
                "empno": {"type": "string"},
                "status_id": {"type": "integer"},
                "hire_date": {"type": "string", "format": "date"},
                "notes": {"type": "string"},
                "employee": {"$ref": "#/definitions/EmployeeProfileInput"},
                "documents": {"type": "array", "items": {"$ref": "#/definitions/DocumentInput"}}
            }
        },
        "UpdateArchiveRequest": {
            "type": "object",
            "required": ["status_id"],
            "properties": {
                "status_id": {"type": "integer"},
                "hire_date": {"type": "string", "format": "date"},
                "notes": {"type": "string"},
                "employee": {"$ref": "#/definitions/EmployeeProfileInput"},
                "add_documents": {"type": "array", "items": {"$ref": "#/definitions/DocumentInput"}},
                "remove_document_ids": {"type": "array", "items": {"type": "integer"}},
                "keep_legislations": {"type": "array", "items": {"type": "object"}}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "per_page": {"type": "integer"},
                "total": {"type": "integer"},
                "total_pages": {"type": "integer"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"}
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

// Package docs registra el documento OpenAPI que sirve /swagger. Se mantiene a mano junto
// con las anotaciones de los handlers.
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
        "/api/blood-requests": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["blood-requests"],
                "summary": "Difundir solicitud de emergencia",
                "parameters": [
                    {
                        "description": "Solicitud",
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/bloodrequests.createBloodRequest"}
                    }
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/bloodrequests.bloodRequestResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httpjson.ErrorBody"}}
                }
            }
        },
        "/api/donors": {
            "post": {
                "description": "Registra un donante. Arranca disponible, sin verificar, con 0 donaciones y rating \"0\".",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["donors"],
                "summary": "Registrar donante",
                "parameters": [
                    {
                        "description": "Datos del donante",
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/donors.createDonorRequest"}
                    }
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/donors.donorResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httpjson.ErrorBody"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/httpjson.ErrorBody"}}
                }
            }
        },
        "/api/donors/search/{bloodType}": {
            "get": {
                "description": "Donantes del grupo indicado que están disponibles y verificados. lat/lng/distance se aceptan pero no filtran (no hay cálculo de distancia).",
                "produces": ["application/json"],
                "tags": ["donors"],
                "summary": "Buscar donantes elegibles",
                "parameters": [
                    {"type": "string", "description": "Grupo sanguíneo (URL-encoded, ej. O%2B)", "name": "bloodType", "in": "path", "required": true},
                    {"type": "string", "description": "Latitud (ignorada)", "name": "lat", "in": "query"},
                    {"type": "string", "description": "Longitud (ignorada)", "name": "lng", "in": "query"},
                    {"type": "integer", "description": "Distancia máxima en km (ignorada)", "name": "distance", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/donors.donorResponse"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httpjson.ErrorBody"}}
                }
            }
        },
        "/api/life-saver-requests/{id}": {
            "patch": {
                "description": "Aplica un PATCH. Si el estado pasa a declined, se elige automáticamente el siguiente donante elegible (mismo grupo, disponible, verificado, no intentado antes) por rating*10 + donaciones y se crea una solicitud nueva en pending. La respuesta incluye esa solicitud en ` + "`" + `reassigned` + "`" + ` (null si no hubo candidato).",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["life-saver-requests"],
                "summary": "Actualizar solicitud life saver",
                "parameters": [
                    {"type": "string", "description": "ID de la solicitud", "name": "id", "in": "path", "required": true},
                    {
                        "description": "Campos a modificar",
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/lifesaver.updateRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/lifesaver.updateResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httpjson.ErrorBody"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/httpjson.ErrorBody"}},
                    "409": {"description": "transición de estado inválida", "schema": {"$ref": "#/definitions/httpjson.ErrorBody"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/httpjson.ErrorBody"}}
                }
            }
        }
    },
    "definitions": {
        "bloodrequests.bloodRequestResponse": {
            "type": "object",
            "properties": {
                "bloodType": {"type": "string"},
                "contactPerson": {"type": "string"},
                "contactPhone": {"type": "string"},
                "createdAt": {"type": "string"},
                "hospital": {"type": "string"},
                "id": {"type": "string"},
                "latitude": {"type": "string"},
                "longitude": {"type": "string"},
                "notes": {"type": "string"},
                "patientName": {"type": "string"},
                "status": {"type": "string"},
                "unitsRequired": {"type": "integer"},
                "urgencyLevel": {"type": "string"}
            }
        },
        "bloodrequests.createBloodRequest": {
            "type": "object",
            "properties": {
                "bloodType": {"type": "string", "enum": ["A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"]},
                "contactPerson": {"type": "string"},
                "contactPhone": {"type": "string"},
                "hospital": {"type": "string"},
                "latitude": {"type": "string"},
                "longitude": {"type": "string"},
                "notes": {"type": "string"},
                "patientName": {"type": "string"},
                "unitsRequired": {"type": "integer"},
                "urgencyLevel": {"type": "string", "enum": ["critical", "urgent", "routine"]}
            }
        },
        "donors.createDonorRequest": {
            "type": "object",
            "properties": {
                "address": {"type": "string"},
                "bloodType": {"type": "string", "enum": ["A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"]},
                "dateOfBirth": {"type": "string"},
                "email": {"type": "string"},
                "fullName": {"type": "string"},
                "gender": {"type": "string"},
                "latitude": {"type": "string"},
                "longitude": {"type": "string"},
                "phone": {"type": "string"},
                "weight": {"type": "integer"}
            }
        },
        "donors.donorResponse": {
            "type": "object",
            "properties": {
                "address": {"type": "string"},
                "bloodType": {"type": "string"},
                "createdAt": {"type": "string"},
                "dateOfBirth": {"type": "string"},
                "email": {"type": "string"},
                "fullName": {"type": "string"},
                "gender": {"type": "string"},
                "id": {"type": "string"},
                "isAvailable": {"type": "boolean"},
                "isVerified": {"type": "boolean"},
                "lastDonation": {"type": "string"},
                "latitude": {"type": "string"},
                "longitude": {"type": "string"},
                "phone": {"type": "string"},
                "rating": {"type": "string"},
                "totalDonations": {"type": "integer"},
                "weight": {"type": "integer"}
            }
        },
        "httpjson.ErrorBody": {
            "type": "object",
            "properties": {
                "errors": {"type": "array", "items": {"$ref": "#/definitions/validation.FieldError"}},
                "message": {"type": "string"}
            }
        },
        "lifesaver.requestResponse": {
            "type": "object",
            "properties": {
                "bloodType": {"type": "string"},
                "createdAt": {"type": "string"},
                "hospital": {"type": "string"},
                "id": {"type": "string"},
                "notes": {"type": "string"},
                "previousRequestId": {"type": "string"},
                "requestReason": {"type": "string"},
                "requesterEmail": {"type": "string"},
                "requesterName": {"type": "string"},
                "requesterPhone": {"type": "string"},
                "selectedDonorId": {"type": "string"},
                "status": {"type": "string"},
                "triedDonorIds": {"type": "array", "items": {"type": "string"}},
                "unitsRequired": {"type": "integer"},
                "updatedAt": {"type": "string"},
                "urgencyLevel": {"type": "string"}
            }
        },
        "lifesaver.updateRequest": {
            "type": "object",
            "properties": {
                "bloodType": {"type": "string", "description": "inmutable: solo se acepta el valor actual"},
                "hospital": {"type": "string"},
                "notes": {"type": "string"},
                "requestReason": {"type": "string"},
                "requesterEmail": {"type": "string"},
                "requesterName": {"type": "string"},
                "requesterPhone": {"type": "string"},
                "selectedDonorId": {"type": "string", "description": "inmutable: solo se acepta el valor actual"},
                "status": {"type": "string", "enum": ["pending", "contacted", "accepted", "declined", "completed", "cancelled"]},
                "unitsRequired": {"type": "integer"},
                "urgencyLevel": {"type": "string"}
            }
        },
        "lifesaver.updateResponse": {
            "type": "object",
            "properties": {
                "reassigned": {"$ref": "#/definitions/lifesaver.requestResponse"},
                "request": {"$ref": "#/definitions/lifesaver.requestResponse"}
            }
        },
        "validation.FieldError": {
            "type": "object",
            "properties": {
                "field": {"type": "string"},
                "message": {"type": "string"}
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
	Title:            "Blood Donor Network API",
	Description:      "Registro de donantes, solicitudes de emergencia y solicitudes life saver con reasignación automática.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

// Package types defines the JSON wire representations used by the type
// service.
package types

import "time"

// TypeDescriptor is the wire form of a type in either type system. Kind
// names follow the canonical names of the system the endpoint addresses
// (engine kinds for conversion requests, planner kinds for reverse and
// common-type requests).
type TypeDescriptor struct {
	Kind      string            `json:"kind"`
	Nullable  bool              `json:"nullable"`
	Precision int               `json:"precision,omitempty"`
	Scale     int               `json:"scale,omitempty"`
	Fields    []FieldDescriptor `json:"fields,omitempty"`
	Element   *TypeDescriptor   `json:"element,omitempty"`
	Key       *TypeDescriptor   `json:"key,omitempty"`
	Value     *TypeDescriptor   `json:"value,omitempty"`

	// Digest is populated on responses only; it carries the canonical
	// string form so tooling can observe identity without pointer access.
	Digest string `json:"digest,omitempty"`
}

// FieldDescriptor is the wire form of a row field.
type FieldDescriptor struct {
	Name     string         `json:"name"`
	Type     TypeDescriptor `json:"type"`
	Nullable bool           `json:"nullable"`
}

// Session API types.

type CreateSessionRequest struct {
	Database string `json:"database,omitempty"`
	Schema   string `json:"schema,omitempty"`
}

type SessionResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	Data    *SessionData `json:"data,omitempty"`
}

type SessionData struct {
	Handle    string    `json:"handle"`
	Database  string    `json:"database"`
	Schema    string    `json:"schema"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type SessionListResponse struct {
	Success bool          `json:"success"`
	Data    []SessionData `json:"data"`
}

// Conversion API types.

type ConvertRequest struct {
	SessionHandle string         `json:"sessionHandle"`
	Type          TypeDescriptor `json:"type"`
	Nullable      bool           `json:"nullable"`
}

type ConvertResponse struct {
	Success bool         `json:"success"`
	Data    *ConvertData `json:"data,omitempty"`
}

type ConvertData struct {
	Type      TypeDescriptor `json:"type"`
	CacheSize int            `json:"cacheSize"`
}

type ReverseRequest struct {
	SessionHandle string         `json:"sessionHandle"`
	Type          TypeDescriptor `json:"type"`
}

type ReverseResponse struct {
	Success bool            `json:"success"`
	Data    *TypeDescriptor `json:"data,omitempty"`
}

type CommonTypeRequest struct {
	SessionHandle string           `json:"sessionHandle"`
	Types         []TypeDescriptor `json:"types"`
}

type CommonTypeResponse struct {
	Success bool            `json:"success"`
	Data    *TypeDescriptor `json:"data,omitempty"`
}

// Schema derivation API types.

type DeriveSchemaRequest struct {
	SessionHandle string `json:"sessionHandle"`
	SQL           string `json:"sql"`
}

type DeriveSchemaResponse struct {
	Success bool              `json:"success"`
	Data    *DeriveSchemaData `json:"data,omitempty"`
}

type DeriveSchemaData struct {
	QualifiedName string         `json:"qualifiedName"`
	EngineType    TypeDescriptor `json:"engineType"`
	PlannerType   TypeDescriptor `json:"plannerType"`
}

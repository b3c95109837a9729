package model

import "time"

// Request is the engine-owned envelope around one organizational request.
// Business attributes live in Fields and are free-form per type; Stage and
// SequenceNumber are owned by the engine and must round-trip exactly
// through storage.
type Request struct {
	ID   string `json:"id"`
	Type Type   `json:"type"`

	// Stage is the current position in the workflow.  It only ever moves
	// forward along the type's stage order, or jumps to rejected.
	Stage Stage `json:"stage"`

	// SequenceNumber is assigned once on first successful save for types
	// that number their records (zero means unassigned).
	SequenceNumber int64 `json:"sequenceNumber,omitempty"`

	// Owner is the actor the record belongs to.  Set once at creation,
	// immutable thereafter.
	Owner string `json:"owner,omitempty"`

	Fields map[string]interface{} `json:"fields,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Clone returns a deep copy so that callers can mutate the result without
// affecting stored state.
func (r *Request) Clone() *Request {
	if r == nil {
		return nil
	}
	ret := *r
	if r.Fields != nil {
		ret.Fields = make(map[string]interface{}, len(r.Fields))
		for k, v := range r.Fields {
			ret.Fields[k] = v
		}
	}
	return &ret
}

// Field returns a business field value, or nil when absent.
func (r *Request) Field(name string) interface{} {
	if r == nil || r.Fields == nil {
		return nil
	}
	return r.Fields[name]
}

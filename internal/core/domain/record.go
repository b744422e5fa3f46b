package domain

// Record is one CRM entity as delivered by a connector: an opaque mapping of
// field name to value. Values may be strings, numbers, nested reference
// objects or arrays. Field payloads may sit directly on the record or be
// wrapped under a "fields" key, depending on the vendor.
type Record map[string]any

// Fields returns the field map of the record. Vendors that wrap payloads
// under a "fields" key are unwrapped transparently.
func (r Record) Fields() map[string]any {
	if f, ok := r["fields"].(map[string]any); ok {
		return f
	}
	return r
}

// ID returns the record's own identifier, checking "id" then "_id".
// Returns empty string if the record carries neither.
func (r Record) ID() string {
	if id, ok := r["id"].(string); ok && id != "" {
		return id
	}
	if id, ok := r["_id"].(string); ok && id != "" {
		return id
	}
	return ""
}

// Name returns a display name for the record, trying common name fields
// and falling back to a first+last name combination for contacts.
func (r Record) Name() string {
	fields := r.Fields()

	for _, key := range []string{"name", "nazev", "title", "jmeno"} {
		if v, ok := fields[key]; ok {
			if s := FieldString(v); s != "" {
				return s
			}
		}
	}

	first := FieldString(fields["jmeno"])
	last := FieldString(fields["prijmeni"])
	if first != "" && last != "" {
		return first + " " + last
	}

	return "Bez názvu"
}

// TableData is one named, typed collection of Records plus routing metadata,
// supplied wholesale by a CRM connector. The core never mutates it.
type TableData struct {
	// Name is the human-readable table name.
	Name string

	// EntityType tags the table's records (company, contact, deal, ...).
	// Empty means the type must be inferred from table configuration.
	EntityType string

	// Data holds the record collection in whatever shape the vendor
	// returned it: a bare slice, or a wrapper object with the records
	// under an "items"/"data"/"records"/"results" key.
	Data any

	// RecordCount is the vendor-reported record count, informational only.
	RecordCount int
}

// IndexedRecord is the engine's augmented view of a Record.
type IndexedRecord struct {
	// ID is the record id, synthesized when the source record has none.
	ID string

	// EntityType classifies the record (company, contact, ...).
	EntityType string

	// TableID is the source table the record came from.
	TableID string

	// Record is the original record, unmodified.
	Record Record

	// SearchText is the lowercase concatenation of the configured search
	// fields plus all scalar string field values.
	SearchText string

	// Tokens is the deduplicated token set of SearchText.
	Tokens map[string]struct{}
}

// Relationship is a directed edge between two record ids, discovered via a
// reference-shaped field value.
type Relationship struct {
	// TargetID is the referenced record id.
	TargetID string

	// Field is the name of the field holding the reference.
	Field string
}

// IsReference reports whether a field value is reference-shaped: a non-nil
// object exposing an "id" or a nested "fields" map.
func IsReference(value any) bool {
	obj, ok := value.(map[string]any)
	if !ok {
		return false
	}
	if _, ok := obj["id"]; ok {
		return true
	}
	if _, ok := obj["fields"]; ok {
		return true
	}
	return false
}

// ReferenceID extracts the referenced record id from a reference-shaped
// value, checking "id" then "_id". Returns empty string when neither is a
// usable string id.
func ReferenceID(value any) string {
	obj, ok := value.(map[string]any)
	if !ok {
		return ""
	}
	if id, ok := obj["id"].(string); ok && id != "" {
		return id
	}
	if id, ok := obj["_id"].(string); ok && id != "" {
		return id
	}
	return ""
}

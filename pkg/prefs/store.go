package prefs

// Store is a durable, string-keyed mapping to int, float or string values.
// Setters update the store immediately; Save makes pending changes durable.
// Implementations must be safe for concurrent use.
type Store interface {
	HasKey(key string) bool
	GetInt(key string, defaultValue int) int
	SetInt(key string, value int)
	GetFloat(key string, defaultValue float64) float64
	SetFloat(key string, value float64)
	GetString(key string, defaultValue string) string
	SetString(key string, value string)
	DeleteKey(key string)
	Save() error
}

type Kind uint8

const (
	KindInt Kind = iota + 1
	KindFloat
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	default:
		return "unknown"
	}
}

// Value is a single persisted entry.
type Value struct {
	Kind   Kind    `json:"kind"`
	Int    int     `json:"int,omitempty"`
	Float  float64 `json:"float,omitempty"`
	String string  `json:"string,omitempty"`
}

func IntValue(v int) Value       { return Value{Kind: KindInt, Int: v} }
func FloatValue(v float64) Value { return Value{Kind: KindFloat, Float: v} }
func StringValue(v string) Value { return Value{Kind: KindString, String: v} }

// SnapshotStore is a Store that can be exported and restored as a whole.
type SnapshotStore interface {
	Store
	Entries() map[string]Value
	Restore(entries map[string]Value)
}

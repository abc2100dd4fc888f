package schema

// State is the lifecycle state of a single field.
type State uint8

const (
	// StateUnset means the field was never touched and is omitted on export.
	StateUnset State = iota
	// StateNull means the caller disabled the feature; exported as null.
	StateNull
	// StateForced means the library's own default is emitted explicitly.
	StateForced
	// StateSet means the field holds a concrete validated value.
	StateSet
)

func (s State) String() string {
	switch s {
	case StateUnset:
		return "unset"
	case StateNull:
		return "null"
	case StateForced:
		return "forced"
	case StateSet:
		return "set"
	default:
		return "invalid"
	}
}

// Sentinel is a marker a caller may assign to any field in place of a value.
type Sentinel uint8

const (
	// Null explicitly disables a field, whatever its null policy.
	Null Sentinel = iota + 1
	// ForceDefault emits the library default for a field instead of omitting it.
	// Only fields with a forced or library default accept it.
	ForceDefault
	// Unset returns a field to the unset state, whatever its null policy.
	// ToFields writes it for cleared fields that carry a default.
	Unset
)

func (s Sentinel) String() string {
	switch s {
	case Null:
		return "Null"
	case ForceDefault:
		return "ForceDefault"
	case Unset:
		return "Unset"
	default:
		return "Sentinel(?)"
	}
}

// Value is a field's state and, when set, its validated value.
type Value struct {
	State State
	V     any
}

func set(v any) Value { return Value{State: StateSet, V: v} }

var (
	unset  = Value{State: StateUnset}
	null   = Value{State: StateNull}
	forced = Value{State: StateForced}
)

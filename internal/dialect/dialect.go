package dialect

// Kind represents a syntax extension a file may be written in.
type Kind uint8

const (
	Unknown Kind = iota
	TypeScript
	JSX
	Flow

	kindCount
)

func (k Kind) String() string {
	switch k {
	case TypeScript:
		return "typescript"
	case JSX:
		return "jsx"
	case Flow:
		return "flow"
	default:
		return "unknown"
	}
}

package types

// SourceType represents how a source's content was obtained
type SourceType string

const (
	SourceTypeWeb    SourceType = "web"
	SourceTypeNotion SourceType = "notion"
	SourceTypeText   SourceType = "text"
	SourceTypeFile   SourceType = "file"
)

// IsValid checks if the source type is valid
func (t SourceType) IsValid() bool {
	switch t {
	case SourceTypeWeb,
		SourceTypeNotion,
		SourceTypeText,
		SourceTypeFile:
		return true
	default:
		return false
	}
}

// String returns the string representation of the source type
func (t SourceType) String() string {
	return string(t)
}

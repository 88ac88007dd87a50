package output

// Message formats.
const (
	FormatGroups = "groups"
	FormatPlain  = "plain"
)

// GroupSize is the number of symbols per block in the groups format.
const GroupSize = 5

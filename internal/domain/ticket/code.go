package ticket

import "fmt"

// codePrefix matches the codes the dashboard already displays.
const codePrefix = "TCK"

// FormatCode derives the human-readable ticket code from the numeric
// identifier, e.g. 7 -> "TCK-00007". IDs wider than five digits keep their
// full width.
func FormatCode(id uint) string {
	return fmt.Sprintf("%s-%05d", codePrefix, id)
}

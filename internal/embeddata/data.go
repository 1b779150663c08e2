package embeddata

import "embed"

//go:embed help.md
var embeddedFS embed.FS

// ReadHelpMD returns the contents of help.md.
func ReadHelpMD() ([]byte, error) {
	return embeddedFS.ReadFile("help.md")
}

package output

import (
	"encoding/json"
	"io"

	"github.com/Jjustmee23/CyberShieldX-sub000/pkg/types"
)

// JSONFormatter renders the report as indented JSON, matching the
// persisted artifact byte for byte apart from the trailing newline.
type JSONFormatter struct{}

func (f *JSONFormatter) Format(w io.Writer, report *types.Report) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}

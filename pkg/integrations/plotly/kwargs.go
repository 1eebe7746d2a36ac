package plotly

import (
	"encoding/json"

	plotlydoc "github.com/mpld3/matplotlylib/pkg/plotly"
)

// kwargs is the JSON shape of the clientresp kwargs field.
type kwargs struct {
	Filename      string           `json:"filename"`
	FileOpt       string           `json:"fileopt"`
	Layout        plotlydoc.Object `json:"layout,omitempty"`
	WorldReadable bool             `json:"world_readable"`
}

func marshalKwargs(doc *plotlydoc.Figure, opts PlotOptions) ([]byte, error) {
	return json.Marshal(kwargs{
		Filename:      opts.Filename,
		FileOpt:       opts.FileOpt,
		Layout:        doc.Layout,
		WorldReadable: opts.WorldReadable,
	})
}

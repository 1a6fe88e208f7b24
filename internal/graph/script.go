package graph

import (
	"encoding/json"
	"fmt"
	"io"
)

// WriteScript writes the graph as the browser-side script read by graph.js.
func WriteScript(w io.Writer, g Graph, local, linkReplace bool) error {
	data, err := json.Marshal(g)
	if err != nil {
		return fmt.Errorf("encode graph: %w", err)
	}
	_, err = fmt.Fprintf(w, "var graph_data=%s\nvar graph_is_local=%t\nvar graph_link_replace=%t", data, local, linkReplace)
	return err
}

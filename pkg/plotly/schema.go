package plotly

import (
	"regexp"
	"strings"
)

// Kind identifies the plotly object vocabulary a node is checked against.
type Kind string

const (
	KindData       Kind = "data"
	KindLayout     Kind = "layout"
	KindXAxis      Kind = "xaxis"
	KindYAxis      Kind = "yaxis"
	KindMarker     Kind = "marker"
	KindLine       Kind = "line"
	KindLegend     Kind = "legend"
	KindMargin     Kind = "margin"
	KindFont       Kind = "font"
	KindAnnotation Kind = "annotation"
)

// schema carries the vocabulary and repair tables for one object kind.
type schema struct {
	// valid is the full key vocabulary. A key outside valid fails
	// validation.
	valid map[string]bool
	// safe is the subset of valid that survives a style strip.
	safe map[string]bool
	// children maps keys to the kind of the nested object they hold.
	children map[string]Kind
	// listChildren maps keys to the element kind of a nested object list.
	listChildren map[string]Kind
	// repairKeys maps misspelled keys to their canonical form.
	repairKeys map[string]string
	// repairVals maps keys to a (suspect, replacement) value pair. A nil
	// replacement deletes the key.
	repairVals map[string][2]any
}

func set(keys ...string) map[string]bool {
	m := make(map[string]bool, len(keys))
	for _, k := range keys {
		m[k] = true
	}
	return m
}

var axisSchema = schema{
	valid: set(
		"range", "type", "showline", "mirror", "linecolor", "linewidth",
		"tick0", "dtick", "ticks", "ticklen", "tickcolor", "nticks",
		"showticklabels", "tickangle", "exponentformat", "showexponent",
		"showgrid", "gridcolor", "gridwidth", "autorange", "rangemode",
		"autotick", "zeroline", "zerolinecolor", "zerolinewidth",
		"titlefont", "tickfont", "overlaying", "domain", "position",
		"anchor", "title",
	),
	safe: set(
		"range", "type", "showticklabels", "exponentformat", "zeroline",
		"overlaying", "domain", "position", "anchor", "title",
	),
	children: map[string]Kind{
		"titlefont": KindFont,
		"tickfont":  KindFont,
	},
}

var schemas = map[Kind]schema{
	KindData: {
		valid: set(
			"textfont", "name", "marker", "mode", "y", "x", "line",
			"type", "error_y", "opacity", "bardir", "xaxis", "yaxis",
			"text",
		),
		safe: set("name", "y", "x", "type", "bardir", "xaxis", "yaxis"),
		children: map[string]Kind{
			"marker":   KindMarker,
			"line":     KindLine,
			"textfont": KindFont,
		},
		// A reference to the first axis pair is implicit in plotly, so
		// "x1"/"y1" anchors are dropped entirely.
		repairVals: map[string][2]any{
			"xaxis": {"x1", nil},
			"yaxis": {"y1", nil},
		},
	},
	KindLayout: {
		valid: set(
			"title", "xaxis", "yaxis", "legend", "width", "height",
			"autosize", "margin", "paper_bgcolor", "plot_bgcolor",
			"barmode", "bargap", "bargroupgap", "boxmode", "boxgap",
			"boxgroupgap", "font", "titlefont", "dragmode", "hovermode",
			"separators", "hidesources", "showlegend", "annotations",
		),
		safe: set("title", "width", "height", "autosize"),
		children: map[string]Kind{
			"legend":    KindLegend,
			"margin":    KindMargin,
			"font":      KindFont,
			"titlefont": KindFont,
		},
		listChildren: map[string]Kind{
			"annotations": KindAnnotation,
		},
		repairKeys: map[string]string{
			"xaxis1": "xaxis",
			"yaxis1": "yaxis",
		},
	},
	KindXAxis: withRepairVals(axisSchema, map[string][2]any{
		"anchor": {"y1", "y"},
	}),
	KindYAxis: withRepairVals(axisSchema, map[string][2]any{
		"anchor": {"x1", "x"},
	}),
	KindMarker: {
		valid: set("symbol", "line", "size", "color", "opacity"),
		safe:  set("symbol", "size"),
		children: map[string]Kind{
			"line": KindLine,
		},
	},
	KindLine: {
		valid: set("dash", "color", "width", "opacity"),
		safe:  set("dash"),
	},
	KindLegend: {
		valid: set("bgcolor", "bordercolor", "font", "traceorder"),
		safe:  set("traceorder"),
		children: map[string]Kind{
			"font": KindFont,
		},
	},
	KindMargin: {
		valid: set("l", "r", "b", "t", "pad"),
		safe:  set("l", "r", "b", "t", "pad"),
	},
	KindFont: {
		valid: set("color", "size", "family"),
		safe:  set(),
	},
	KindAnnotation: {
		valid: set(
			"text", "bordercolor", "borderwidth", "borderpad", "bgcolor",
			"xref", "yref", "showarrow", "arrowwidth", "arrowcolor",
			"arrowhead", "arrowsize", "tag", "font", "opacity", "align",
			"xanchor", "yanchor", "ay", "ax", "y", "x",
		),
		safe: set(
			"text", "xref", "yref", "showarrow", "align", "xanchor",
			"yanchor", "ay", "ax", "y", "x",
		),
		children: map[string]Kind{
			"font": KindFont,
		},
		repairVals: map[string][2]any{
			"xref": {"x1", "x"},
			"yref": {"y1", "y"},
		},
	},
}

func withRepairVals(s schema, repair map[string][2]any) schema {
	s.repairVals = repair
	return s
}

// numberedAxis matches the layout keys for additional axes ("xaxis2",
// "yaxis3", ...). The first pair carries no suffix after repair.
var numberedAxis = regexp.MustCompile(`^([xy]axis)([0-9]*)$`)

// childKind resolves the kind of a nested object at key within a parent of
// kind k. The second return is false when key does not hold a known object.
func childKind(k Kind, key string) (Kind, bool) {
	s, ok := schemas[k]
	if !ok {
		return "", false
	}
	if ck, ok := s.children[key]; ok {
		return ck, true
	}
	if k == KindLayout {
		if m := numberedAxis.FindStringSubmatch(key); m != nil {
			if strings.HasPrefix(key, "xaxis") {
				return KindXAxis, true
			}
			return KindYAxis, true
		}
	}
	return "", false
}

// listChildKind resolves the element kind of an object list at key.
func listChildKind(k Kind, key string) (Kind, bool) {
	s, ok := schemas[k]
	if !ok {
		return "", false
	}
	ck, ok := s.listChildren[key]
	return ck, ok
}

// validKey reports whether key belongs to the vocabulary of kind k. The
// numbered axis forms in a layout are valid even though only the bare
// "xaxis"/"yaxis" spellings appear in the vocabulary table.
func validKey(k Kind, key string) bool {
	s, ok := schemas[k]
	if !ok {
		return false
	}
	if s.valid[key] {
		return true
	}
	return k == KindLayout && numberedAxis.MatchString(key)
}

// safeKey reports whether key survives a style strip on kind k.
func safeKey(k Kind, key string) bool {
	s, ok := schemas[k]
	if !ok {
		return false
	}
	return s.safe[key]
}

package plotly

import (
	"encoding/json"
	"testing"
)

func samplePlotlyFigure() *Figure {
	return &Figure{
		Data: ObjectList{
			{
				"type": "scatter",
				"mode": "lines",
				"x":    []float64{1, 2, 3},
				"y":    []float64{4, 5, 6},
				"name": nil,
				"line": Object{"color": "#1f77b4", "width": 1.5, "dash": "solid"},
			},
		},
		Layout: Object{
			"width":  800.0,
			"height": 600.0,
			"title":  nil,
			"xaxis1": Object{"range": []float64{0, 10}, "anchor": "y1"},
			"yaxis1": Object{"range": []float64{-1, 1}, "anchor": "x1"},
		},
	}
}

func TestFigurePipeline(t *testing.T) {
	fig := samplePlotlyFigure()
	fig.Repair()
	fig.Clean()
	if err := fig.Validate(); err != nil {
		t.Fatalf("Validate() after Repair error = %v", err)
	}

	if _, ok := fig.Data[0]["name"]; ok {
		t.Error("nil trace name survived Clean")
	}
	if _, ok := fig.Layout["title"]; ok {
		t.Error("nil layout title survived Clean")
	}
	xaxis, ok := fig.Layout["xaxis"].(Object)
	if !ok {
		t.Fatal("xaxis1 not repaired to xaxis")
	}
	if xaxis["anchor"] != "y" {
		t.Errorf("xaxis anchor = %v, want y", xaxis["anchor"])
	}
}

func TestMarshalData(t *testing.T) {
	fig := samplePlotlyFigure()
	fig.Clean()
	raw, err := fig.MarshalData()
	if err != nil {
		t.Fatalf("MarshalData() error = %v", err)
	}
	var decoded []map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal data: %v", err)
	}
	if len(decoded) != 1 || decoded[0]["type"] != "scatter" {
		t.Fatalf("decoded data = %v", decoded)
	}
}

func TestMarshalDataEmpty(t *testing.T) {
	fig := NewFigure()
	raw, err := fig.MarshalData()
	if err != nil {
		t.Fatalf("MarshalData() error = %v", err)
	}
	if string(raw) != "[]" {
		t.Fatalf("empty data = %s, want []", raw)
	}
}

func TestStripFigure(t *testing.T) {
	fig := samplePlotlyFigure()
	fig.Repair()
	fig.Strip()
	trace := fig.Data[0]
	if _, ok := trace["mode"]; ok {
		t.Error("trace mode survived Strip")
	}
	if _, ok := trace["x"]; !ok {
		t.Error("trace x removed by Strip")
	}
	line := trace["line"].(Object)
	if len(line) != 1 || line["dash"] != "solid" {
		t.Errorf("stripped line = %v, want only dash", line)
	}
}

package storage

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/san-kum/conserve/internal/dynamo"
	"github.com/san-kum/conserve/internal/sim"
)

var seriesKeys = []string{"momentum", "energy_upper", "energy_lower"}

// WriteCSV writes one row per sample: series, x, y. Non-finite values are
// written as NaN, +Inf or -Inf.
func WriteCSV(w io.Writer, f sim.Frame) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"series", "x", "y"}); err != nil {
		return err
	}
	for i, series := range f.Series() {
		for _, p := range series.Points {
			row := []string{seriesKeys[i], formatFloat(p.X), formatFloat(p.Y)}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

func ExportCSV(path string, f sim.Frame) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := WriteCSV(file, f); err != nil {
		return err
	}
	return file.Close()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

// ExportData is the JSON document for one frame. Non-finite numbers are
// encoded as null.
type ExportData struct {
	State   dynamo.State            `json:"state"`
	Domain  dynamo.Domain           `json:"domain"`
	Derived map[string]*float64     `json:"derived"`
	Series  map[string][]ExportPair `json:"series"`
}

type ExportPair [2]*float64

func NewExportData(f sim.Frame) ExportData {
	sum := sim.Summarize(f.State)
	data := ExportData{
		State:  f.State,
		Domain: f.Domain,
		Derived: map[string]*float64{
			"momentum":        finite(sum.Momentum),
			"energy":          finite(sum.Energy),
			"reachable_bound": finite(sum.ReachableBound),
			"elastic_v0":      finite(sum.Elastic.X),
			"elastic_v1":      finite(sum.Elastic.Y),
			"inelastic_v":     finite(sum.Inelastic.X),
			"energy_loss":     finite(sum.EnergyLoss),
		},
		Series: make(map[string][]ExportPair, len(seriesKeys)),
	}
	for i, series := range f.Series() {
		pairs := make([]ExportPair, len(series.Points))
		for j, p := range series.Points {
			pairs[j] = ExportPair{finite(p.X), finite(p.Y)}
		}
		data.Series[seriesKeys[i]] = pairs
	}
	return data
}

func WriteJSON(w io.Writer, f sim.Frame) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(NewExportData(f))
}

func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"math"
	"strconv"

	"github.com/san-kum/ballistic/internal/dynamo"
	"github.com/san-kum/ballistic/internal/experiment"
)

type RunData struct {
	Method      string             `json:"method"`
	Termination string             `json:"termination"`
	Steps       int                `json:"steps"`
	Times       []float64          `json:"times"`
	Xs          []float64          `json:"xs"`
	Ys          []float64          `json:"ys"`
	Metrics     map[string]float64 `json:"metrics"`
	PeakError   *float64           `json:"peak_error,omitempty"`
	RangeError  *float64           `json:"range_error,omitempty"`
}

// ReferenceData is the closed-form reference. A value is omitted when it is
// undefined, as range and flight time are for a launch below ground.
type ReferenceData struct {
	Range      *float64 `json:"range,omitempty"`
	PeakHeight *float64 `json:"peak_height,omitempty"`
	FlightTime *float64 `json:"flight_time,omitempty"`
}

type ExportData struct {
	Params    dynamo.Params `json:"params"`
	Reference ReferenceData `json:"reference"`
	Runs      []RunData     `json:"runs"`
}

func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func finiteMetrics(m map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(m))
	for k, v := range m {
		if finite(v) != nil {
			out[k] = v
		}
	}
	return out
}

func NewExportData(cmp *experiment.Comparison) ExportData {
	ref := cmp.Reference
	data := ExportData{
		Params: cmp.Params,
		Reference: ReferenceData{
			Range:      finite(ref.Range),
			PeakHeight: finite(ref.PeakHeight),
			FlightTime: finite(ref.FlightTime),
		},
		Runs: make([]RunData, len(cmp.Runs)),
	}
	for i, r := range cmp.Runs {
		tr := r.Trajectory
		data.Runs[i] = RunData{
			Method:      r.Method,
			Termination: tr.Termination.String(),
			Steps:       tr.Steps(),
			Times:       tr.Times,
			Xs:          tr.Xs,
			Ys:          tr.Ys,
			Metrics:     finiteMetrics(r.Metrics),
			PeakError:   finite(r.PeakError),
			RangeError:  finite(r.RangeError),
		}
	}
	return data
}

// JSON writes the comparison as indented JSON. Non-finite values are left out.
func JSON(w io.Writer, cmp *experiment.Comparison) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(NewExportData(cmp))
}

// CSV writes one row per sample in long form: method,t,x,y.
func CSV(w io.Writer, trs []*dynamo.Trajectory) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"method", "t", "x", "y"}); err != nil {
		return err
	}
	for _, tr := range trs {
		for i := 0; i < tr.Len(); i++ {
			row := []string{
				tr.Method,
				strconv.FormatFloat(tr.Times[i], 'g', -1, 64),
				strconv.FormatFloat(tr.Xs[i], 'g', -1, 64),
				strconv.FormatFloat(tr.Ys[i], 'g', -1, 64),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

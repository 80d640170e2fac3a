package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/san-kum/ballistic/internal/dynamo"
	"github.com/san-kum/ballistic/internal/experiment"
)

func comparison(t *testing.T) *experiment.Comparison {
	t.Helper()
	p := dynamo.DefaultParams()
	p.TimeStep = 0.1
	cmp, err := experiment.Compare(context.Background(), p)
	if err != nil {
		t.Fatalf("compare failed: %v", err)
	}
	return cmp
}

func TestCSV(t *testing.T) {
	cmp := comparison(t)

	var buf bytes.Buffer
	if err := CSV(&buf, cmp.Trajectories()); err != nil {
		t.Fatalf("csv failed: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read back failed: %v", err)
	}
	want := 1 + cmp.Runs[0].Trajectory.Len() + cmp.Runs[1].Trajectory.Len()
	if len(rows) != want {
		t.Errorf("expected %d rows, got %d", want, len(rows))
	}
	if strings.Join(rows[0], ",") != "method,t,x,y" {
		t.Errorf("unexpected header %v", rows[0])
	}
	if strings.Join(rows[1], ",") != "euler,0,0,0" {
		t.Errorf("unexpected first row %v", rows[1])
	}
}

func TestJSON(t *testing.T) {
	cmp := comparison(t)

	var buf bytes.Buffer
	if err := JSON(&buf, cmp); err != nil {
		t.Fatalf("json failed: %v", err)
	}

	var got ExportData
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(got.Runs) != 2 || got.Runs[1].Method != "rk4" {
		t.Fatalf("unexpected runs %+v", got.Runs)
	}
	for _, r := range got.Runs {
		if len(r.Times) != len(r.Xs) || len(r.Xs) != len(r.Ys) {
			t.Errorf("%s: misaligned sequences", r.Method)
		}
		if r.Termination != "ground" {
			t.Errorf("%s: termination %q", r.Method, r.Termination)
		}
	}
	if got.Params.TimeStep != 0.1 {
		t.Errorf("params not exported: %+v", got.Params)
	}
	if !strings.Contains(buf.String(), `"peak_height"`) {
		t.Error("expected metrics in output")
	}
}

func TestJSON_LaunchBelowGround(t *testing.T) {
	p := dynamo.DefaultParams()
	p.Y0 = -1
	cmp, err := experiment.Compare(context.Background(), p)
	if err != nil {
		t.Fatalf("compare failed: %v", err)
	}

	var buf bytes.Buffer
	if err := JSON(&buf, cmp); err != nil {
		t.Fatalf("json failed: %v", err)
	}

	var got ExportData
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if got.Reference.Range != nil || got.Reference.FlightTime != nil {
		t.Errorf("expected undefined range and flight time to be omitted, got %+v", got.Reference)
	}
	if got.Reference.PeakHeight == nil {
		t.Error("expected peak height to be exported")
	}
	for _, r := range got.Runs {
		if len(r.Ys) != 1 || r.Ys[0] != -1 {
			t.Errorf("%s: expected the single launch sample, got %v", r.Method, r.Ys)
		}
		if r.RangeError != nil {
			t.Errorf("%s: expected range error to be omitted, got %v", r.Method, *r.RangeError)
		}
	}
}

func TestSVG(t *testing.T) {
	cmp := comparison(t)

	var buf bytes.Buffer
	if err := SVG(&buf, cmp.Trajectories(), 400, 300); err != nil {
		t.Fatalf("svg failed: %v", err)
	}
	out := buf.String()

	if strings.Count(out, "<path") != 2 {
		t.Errorf("expected one path per trajectory")
	}
	for _, want := range []string{"stroke-dasharray", "Euler Method", "RK4 Method", "Horizontal Distance (m)", "Vertical Height (m)", "</svg>"} {
		if !strings.Contains(out, want) {
			t.Errorf("svg missing %q", want)
		}
	}

	if err := SVG(&buf, nil, 0, 0); err == nil {
		t.Error("expected error for empty input")
	}
}

package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"

	"github.com/theSadeQ/dip-smc-pso-sub005/internal/sim"
)

// RunData is the JSON shape of one simulation run.
type RunData struct {
	Controller string      `json:"controller"`
	Gains      []float64   `json:"gains"`
	Dt         float64     `json:"dt"`
	Duration   float64     `json:"duration"`
	Steps      int         `json:"steps"`
	Diverged   bool        `json:"diverged"`
	Times      []float64   `json:"times"`
	States     [][]float64 `json:"states"`
	Controls   []float64   `json:"controls"`
	Surfaces   []float64   `json:"surfaces"`
}

func ExportJSON(path, controller string, gains []float64, dt, duration float64, result *sim.Result) error {
	data := RunData{
		Controller: controller,
		Gains:      gains,
		Dt:         dt,
		Duration:   duration,
		Steps:      result.Steps(),
		Diverged:   result.Diverged,
		Times:      result.Times,
		States:     make([][]float64, len(result.States)),
		Controls:   result.Controls,
		Surfaces:   result.Surfaces,
	}
	for i, s := range result.States {
		data.States[i] = s
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// WriteTrajectoryCSV writes one row per control step:
// t, x, theta1, theta2, xdot, omega1, omega2, u, s.
func WriteTrajectoryCSV(path string, result *sim.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	header := []string{"t", "x", "theta1", "theta2", "xdot", "omega1", "omega2", "u", "s"}
	if err := w.Write(header); err != nil {
		return err
	}

	row := make([]string, len(header))
	for i := 0; i < result.Steps(); i++ {
		row[0] = fmt.Sprintf("%.6f", result.Times[i])
		for j, v := range result.States[i] {
			row[1+j] = fmt.Sprintf("%.8f", v)
		}
		row[7] = fmt.Sprintf("%.8f", result.Controls[i])
		row[8] = fmt.Sprintf("%.8f", result.Surfaces[i])
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}

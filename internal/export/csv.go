package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/san-kum/trajopt/internal/transcribe"
)

// WriteTrajectoryCSV dumps the sampled trajectory as t,x,y,v,theta rows.
// The heading column is empty on the final sample, which closes no
// interval and therefore carries no heading.
func WriteTrajectoryCSV(w io.Writer, vars transcribe.Vars, t0 float64) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"t", "x", "y", "v", "theta"}); err != nil {
		return err
	}

	n := len(vars.Theta)
	dt := (vars.Tf - t0) / float64(n)
	for i := 0; i <= n; i++ {
		theta := ""
		if i < n {
			theta = formatFloat(vars.Theta[i])
		}
		row := []string{
			formatFloat(t0 + float64(i)*dt),
			formatFloat(vars.X[i]),
			formatFloat(vars.Y[i]),
			formatFloat(vars.V[i]),
			theta,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

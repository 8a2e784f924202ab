package isurf

import (
	"math"

	"github.com/gridflow/isurf/surf"
	"github.com/notargets/avs/chart2d"
	utils2 "github.com/notargets/avs/utils"
)

// PreviewLines opens an interactive window drawing a 2D run's output
// (marching-squares segments), for the --plot debug flag. Grounded on
// DG2D's PlotLinesAndText/AddLine idiom: flatten every segment into a
// single []float32 and hand it to one Chart2D.AddLine call.
func PreviewLines(store *surf.Store) {
	if len(store.Lines) == 0 {
		return
	}
	xMin, xMax := float32(math.MaxFloat32), float32(-math.MaxFloat32)
	yMin, yMax := float32(math.MaxFloat32), float32(-math.MaxFloat32)
	flat := make([]float32, 0, len(store.Lines)*4)
	for _, l := range store.Lines {
		for _, p := range l.P {
			x, y := float32(p[0]), float32(p[1])
			flat = append(flat, x, y)
			if x < xMin {
				xMin = x
			}
			if x > xMax {
				xMax = x
			}
			if y < yMin {
				yMin = y
			}
			if y > yMax {
				yMax = y
			}
		}
	}
	ch := chart2d.NewChart2D(xMin, xMax, yMin, yMax, 1024, 1024, utils2.WHITE, utils2.BLACK)
	ch.AddLine(flat, utils2.RED)
	for {
	}
}

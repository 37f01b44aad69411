//
// Copyright (c) 2020-2026 Markku Rossi
//
// All rights reserved.
//

package circuit

import (
	"fmt"
	"io"

	"github.com/markkurossi/tabulate"
)

// TabulateStats prints the circuit gate statistics.
func (c *Circuit) TabulateStats(out io.Writer) {
	tab := tabulate.New(tabulate.UnicodeLight)
	tab.Header("Gate").SetAlign(tabulate.ML)
	tab.Header("Count").SetAlign(tabulate.MR)
	tab.Header("%").SetAlign(tabulate.MR)

	for op := XOR; op <= INV; op++ {
		row := tab.Row()
		row.Column(op.String())
		row.Column(fmt.Sprintf("%d", c.Stats[op]))
		if c.NumGates > 0 {
			row.Column(fmt.Sprintf("%.2f%%",
				float64(c.Stats[op])/float64(c.NumGates)*100))
		} else {
			row.Column("")
		}
	}
	row := tab.Row()
	row.Column("Total").SetFormat(tabulate.FmtBold)
	row.Column(fmt.Sprintf("%d", c.NumGates)).SetFormat(tabulate.FmtBold)
	row.Column("")

	row = tab.Row()
	row.Column("Wires").SetFormat(tabulate.FmtItalic)
	row.Column(fmt.Sprintf("%d", c.NumWires)).SetFormat(tabulate.FmtItalic)
	row.Column("")

	tab.Print(out)
}

package importer

import (
	"encoding/csv"
	"io"
)

var samplePreferences = [][]string{
	{"Del Tajo Coffee", "Box Brand"},
	{"Del Tajo Coffee", "Export Agency"},
	{"Del Tajo Coffee", "Productive Chains"},
	{"Green Soul Growers", "Molina Coffee"},
	{"Green Soul Growers", "Colfresh Coffee"},
	{"Montelargo Brewery", "Box Brand"},
	{"Montelargo Brewery", "Neira York Coffee"},
	{"XYZ Farms", "Inmersso Boutique"},
	{"ABC Cooperative", "Molina Coffee"},
	{"Sustainable 123", "Export Agency"},
	{"Local Seller DEF", "Colfresh Coffee"},
	{"GHI Microenterprise", "Box Brand"},
}

// WriteSample writes an example preference table. A provider wanting several
// requesters repeats on several rows.
func WriteSample(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"provider", "requester"}); err != nil {
		return err
	}
	if err := cw.WriteAll(samplePreferences); err != nil {
		return err
	}
	return cw.Error()
}

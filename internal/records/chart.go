package records

import (
	"github.com/mcncl/gamedata/internal/decoder"
	"github.com/mcncl/gamedata/internal/models"
)

// ChartCard is an entry of the chart list: the name of a remote table and
// the file id currently selected for it.
type ChartCard struct {
	Name           string
	Explain        string
	SelectedFileID int
}

func DecodeChartCards(d decoder.Flat, rows []models.FlatObject) []ChartCard {
	cards := make([]ChartCard, len(rows))
	for i, row := range rows {
		cards[i] = ChartCard{
			Name:           d.String(row, "chartName", ""),
			Explain:        d.String(row, "chartExplain", ""),
			SelectedFileID: d.Int(row, "selectedChartFileId", 0),
		}
	}
	return cards
}

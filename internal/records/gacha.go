package records

import (
	"strconv"
	"strings"

	"github.com/mcncl/gamedata/internal/decoder"
	"github.com/mcncl/gamedata/internal/models"
)

// GachaCards maps a gacha name to its probability file ids, one per level.
// Level n is stored at index n-1; levels missing from the backend are "".
type GachaCards map[string][]string

// IndexGachaCards reads the probability card list. Card names are either
// "name" or "name_level".
func IndexGachaCards(d decoder.Flat, rows []models.FlatObject) GachaCards {
	cards := make(GachaCards)
	for _, row := range rows {
		fullName := d.String(row, "probabilityName", "")
		fileID := d.String(row, "selectedProbabilityFileId", "")
		if fullName == "" {
			continue
		}

		name, levelText, hasLevel := strings.Cut(fullName, "_")
		ids := cards[name]

		level, err := strconv.Atoi(levelText)
		if !hasLevel || err != nil || level < 1 {
			cards[name] = append(ids, fileID)
			continue
		}

		for len(ids) < level {
			ids = append(ids, "")
		}
		ids[level-1] = fileID
		cards[name] = ids
	}
	return cards
}

// FileID returns the probability file for name at level. Levels outside
// the known range are clamped to the nearest one.
func (g GachaCards) FileID(name string, level int) (string, bool) {
	ids := g[name]
	if len(ids) == 0 {
		return "", false
	}
	idx := min(max(level-1, 0), len(ids)-1)
	return ids[idx], true
}

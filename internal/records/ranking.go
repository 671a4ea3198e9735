package records

import (
	"time"

	"github.com/iancoleman/strcase"
	"github.com/mcncl/gamedata/internal/decoder"
	"github.com/mcncl/gamedata/internal/models"
)

// RankDateType is the reset period of a ranking.
type RankDateType int

const (
	Day RankDateType = iota
	Week
	Month
	Infinity // cumulative, never resets
	Custom   // one-off ranking with explicit start and end
)

var rankDateNames = [...]string{
	Day:      "Day",
	Week:     "Week",
	Month:    "Month",
	Infinity: "Infinity",
	Custom:   "Custom",
}

func (d RankDateType) String() string {
	if d < 0 || int(d) >= len(rankDateNames) {
		return "RankDateType(?)"
	}
	return rankDateNames[d]
}

// RankDates resolves the backend's lower-case "date" column ("week") to a
// RankDateType.
var RankDates = decoder.NewEnumSet(Day, Week, Month, Infinity, Custom).WithNormalizer(strcase.ToCamel)

// RankingTable describes one ranking configured on the backend.
type RankingTable struct {
	Title    string
	RankType string
	Date     RankDateType
	UUID     string
	Table    string

	// Set only for Custom rankings.
	StartTime *time.Time
	EndTime   *time.Time

	// Optional extra column shown next to the score.
	ExtraDataColumn string
	ExtraDataType   string
}

// DecodeRankingTable reads one flattened row of the ranking table list.
func DecodeRankingTable(d decoder.Flat, row models.FlatObject) RankingTable {
	rt := RankingTable{
		Title:    d.String(row, "title", ""),
		RankType: d.String(row, "rankType", ""),
		Date:     decoder.Enum(d, row, "date", RankDates),
		UUID:     d.String(row, "uuid", ""),
		Table:    d.String(row, "table", ""),
	}

	if _, ok := row["rankStartDateAndTime"]; ok {
		start := d.Time(row, "rankStartDateAndTime", time.Time{})
		end := d.Time(row, "rankEndDateAndTime", time.Time{})
		rt.StartTime, rt.EndTime = &start, &end
	}

	if _, ok := row["extraDataColumn"]; ok {
		rt.ExtraDataColumn = d.String(row, "extraDataColumn", "")
		rt.ExtraDataType = d.String(row, "extraDataType", "")
	}

	return rt
}

// RankingTables indexes ranking tables by title. A later row with the same
// title replaces an earlier one.
func RankingTables(d decoder.Flat, rows []models.FlatObject) map[string]RankingTable {
	tables := make(map[string]RankingTable, len(rows))
	for _, row := range rows {
		rt := DecodeRankingTable(d, row)
		tables[rt.Title] = rt
	}
	return tables
}

// Ranking holds the fields every ranking row carries.
type Ranking struct {
	Score float64
	Index string
	Rank  string
}

func decodeRanking(d decoder.Flat, row models.FlatObject) Ranking {
	return Ranking{
		Score: d.Double(row, "score", 0),
		Index: d.String(row, "index", ""),
		Rank:  d.String(row, "rank", ""),
	}
}

// UserRanking is one row of a user ranking.
type UserRanking struct {
	Ranking
	GamerInDate string
	Nickname    string
	ExtraData   string
}

// DecodeUserRanking reads a flattened user ranking row. extraColumn is the
// table's ExtraDataColumn; when empty no extra data is read.
func DecodeUserRanking(d decoder.Flat, row models.FlatObject, extraColumn string) UserRanking {
	ur := UserRanking{
		Ranking:     decodeRanking(d, row),
		GamerInDate: d.String(row, "gamerInDate", ""),
		Nickname:    d.String(row, "nickname", ""),
	}
	if extraColumn != "" {
		ur.ExtraData = d.String(row, extraColumn, "")
	}
	return ur
}

// GuildRanking is one row of a guild ranking.
type GuildRanking struct {
	Ranking
	GuildInDate string
	GuildName   string
}

func DecodeGuildRanking(d decoder.Flat, row models.FlatObject) GuildRanking {
	return GuildRanking{
		Ranking:     decodeRanking(d, row),
		GuildInDate: d.String(row, "guildInDate", ""),
		GuildName:   d.String(row, "guildName", ""),
	}
}

// RankingReward is the reward granted to a band of ranks.
type RankingReward struct {
	StartRank       int
	EndRank         int
	ItemID          string
	RewardItemCount int
}

// Covers reports whether rank falls inside the reward band.
func (r RankingReward) Covers(rank int) bool {
	return rank >= r.StartRank && rank <= r.EndRank
}

func DecodeRankingReward(d decoder.Flat, row models.FlatObject) RankingReward {
	return RankingReward{
		StartRank:       d.Int(row, "startRank", 0),
		EndRank:         d.Int(row, "endRank", 0),
		ItemID:          d.String(row, "itemId", ""),
		RewardItemCount: d.Int(row, "rewardItemCount", 0),
	}
}

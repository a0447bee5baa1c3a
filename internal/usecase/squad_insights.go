package usecase

import (
	"sort"

	"github.com/matchscope/matchscope-api/internal/domain/squad"
)

const (
	youngTalentMaxAge = 22
	experiencedMinAge = 30
	talentListCap     = 8
)

type SquadSummary struct {
	TotalPlayers       int
	AverageAge         float64
	YoungestAge        int
	OldestAge          int
	TotalNationalities int
}

type AgeDistribution struct {
	Under20   int
	Age20to24 int
	Age25to29 int
	Age30Plus int
}

type TopNationality struct {
	Country      string
	Count        int
	SharePercent float64
}

// SquadInsights is the full squad breakdown. Players with no nationality
// or an unmapped position are kept in explicit Unknown buckets.
type SquadInsights struct {
	Summary              SquadSummary
	ByPosition           map[string][]squad.Player
	NationalityBreakdown map[string]int
	YoungTalents         []squad.Player
	ExperiencedPlayers   []squad.Player
	AgeDistribution      AgeDistribution
	TopNationality       *TopNationality
}

// ComputeSquadInsights derives the squad analytics from a roster. An empty
// roster yields a present, all-zero result with empty (non-nil) maps.
func ComputeSquadInsights(players []squad.Player) SquadInsights {
	insights := SquadInsights{
		ByPosition:           make(map[string][]squad.Player),
		NationalityBreakdown: make(map[string]int, 16),
	}
	insights.Summary.TotalPlayers = len(players)

	var ageSum, agedPlayers int
	youngest, oldest := -1, -1

	for _, player := range players {
		group := squad.GroupForPosition(player.Position)
		insights.ByPosition[group] = append(insights.ByPosition[group], player)

		nationality := player.Nationality
		if nationality == "" {
			nationality = squad.NationalityUnknown
		}
		insights.NationalityBreakdown[nationality]++

		if player.Age == nil {
			continue
		}
		age := *player.Age
		ageSum += age
		agedPlayers++
		if youngest < 0 || age < youngest {
			youngest = age
		}
		if age > oldest {
			oldest = age
		}

		switch {
		case age < 20:
			insights.AgeDistribution.Under20++
		case age < 25:
			insights.AgeDistribution.Age20to24++
		case age < 30:
			insights.AgeDistribution.Age25to29++
		default:
			insights.AgeDistribution.Age30Plus++
		}

		if age <= youngTalentMaxAge {
			insights.YoungTalents = append(insights.YoungTalents, player)
		}
		if age >= experiencedMinAge {
			insights.ExperiencedPlayers = append(insights.ExperiencedPlayers, player)
		}
	}

	for group := range insights.ByPosition {
		members := insights.ByPosition[group]
		sort.SliceStable(members, func(i, j int) bool { return members[i].Name < members[j].Name })
		insights.ByPosition[group] = members
	}

	if agedPlayers > 0 {
		insights.Summary.AverageAge = round1(float64(ageSum) / float64(agedPlayers))
		insights.Summary.YoungestAge = youngest
		insights.Summary.OldestAge = oldest
	}
	insights.Summary.TotalNationalities = len(insights.NationalityBreakdown)

	sort.SliceStable(insights.YoungTalents, func(i, j int) bool {
		if *insights.YoungTalents[i].Age != *insights.YoungTalents[j].Age {
			return *insights.YoungTalents[i].Age < *insights.YoungTalents[j].Age
		}
		return insights.YoungTalents[i].Name < insights.YoungTalents[j].Name
	})
	if len(insights.YoungTalents) > talentListCap {
		insights.YoungTalents = insights.YoungTalents[:talentListCap]
	}

	sort.SliceStable(insights.ExperiencedPlayers, func(i, j int) bool {
		if *insights.ExperiencedPlayers[i].Age != *insights.ExperiencedPlayers[j].Age {
			return *insights.ExperiencedPlayers[i].Age > *insights.ExperiencedPlayers[j].Age
		}
		return insights.ExperiencedPlayers[i].Name < insights.ExperiencedPlayers[j].Name
	})
	if len(insights.ExperiencedPlayers) > talentListCap {
		insights.ExperiencedPlayers = insights.ExperiencedPlayers[:talentListCap]
	}

	insights.TopNationality = topNationality(insights.NationalityBreakdown, len(players))

	return insights
}

// topNationality picks the most common known nationality; ties break
// alphabetically. The Unknown bucket never wins.
func topNationality(breakdown map[string]int, totalPlayers int) *TopNationality {
	var top *TopNationality
	for country, count := range breakdown {
		if country == squad.NationalityUnknown {
			continue
		}
		if top == nil || count > top.Count || (count == top.Count && country < top.Country) {
			top = &TopNationality{Country: country, Count: count}
		}
	}
	if top == nil {
		return nil
	}
	top.SharePercent = round1(float64(top.Count) / float64(totalPlayers) * 100)
	return top
}

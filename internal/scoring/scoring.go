package scoring

// FallbackKey is returned when a schema declares no archetypes at all.
const FallbackKey = "unknown"

// PickArchetype tallies one vote per answered question (via the schema's
// scoring map) and returns the archetype key and display name with the most
// votes. Ties break in the schema's declared archetype order. Unanswered or
// unmapped questions are skipped, never an error. With no votes at all the
// first declared archetype wins, or FallbackKey if none are declared.
//
// The function is pure and total: the same (schema, answers) pair always
// yields the same result.
func PickArchetype(schema Schema, answers []Answer) (key, name string) {
	chosen := make(map[string]string, len(answers))
	for _, a := range answers {
		if _, dup := chosen[a.ID]; !dup {
			chosen[a.ID] = a.Choice
		}
	}

	tally := make(map[string]int)
	var seen []string // keys in first-vote order, for mapped keys the schema forgot to declare
	for _, q := range schema.Questions {
		choice, answered := chosen[q.ID]
		if !answered {
			continue
		}
		archetypeKey, mapped := schema.Scoring.Map[q.ID][choice]
		if !mapped || archetypeKey == "" {
			continue
		}
		if tally[archetypeKey] == 0 {
			seen = append(seen, archetypeKey)
		}
		tally[archetypeKey]++
	}

	// Candidates in deterministic priority: declared order first, then any
	// undeclared keys the scoring map produced, in first-vote order.
	declared := make(map[string]bool, len(schema.Archetypes))
	var candidates []string
	for _, arc := range schema.Archetypes {
		declared[arc.Key] = true
		candidates = append(candidates, arc.Key)
	}
	for _, k := range seen {
		if !declared[k] {
			candidates = append(candidates, k)
		}
	}

	best, bestVotes := "", 0
	for _, k := range candidates {
		if votes := tally[k]; votes > bestVotes {
			best, bestVotes = k, votes
		}
	}

	if best == "" {
		if len(schema.Archetypes) > 0 {
			first := schema.Archetypes[0]
			return first.Key, displayName(first)
		}
		return FallbackKey, FallbackKey
	}
	for _, arc := range schema.Archetypes {
		if arc.Key == best {
			return best, displayName(arc)
		}
	}
	return best, best
}

func displayName(arc Archetype) string {
	if arc.Name != "" {
		return arc.Name
	}
	return arc.Key
}

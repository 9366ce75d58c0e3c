// Package match joins produced artifacts against an external contact list by
// account identifier. Matching is purely functional over its inputs: the same
// artifacts and contacts always produce the same partition.
package match

import (
	"strings"

	"github.com/joseph-ayodele/statement-splitter/internal/entity"
)

// normalize folds an account identifier for lookup.
func normalize(accountID string) string {
	return strings.ToLower(strings.TrimSpace(accountID))
}

// BuildIndex maps normalized account ids to contacts. When a list carries the
// same account id twice, the last record wins; this is a documented guarantee
// of the join, not an accident of map ordering.
func BuildIndex(contacts []entity.Contact) map[string]entity.Contact {
	idx := make(map[string]entity.Contact, len(contacts))
	for _, c := range contacts {
		key := normalize(c.AccountID)
		if key == "" {
			continue
		}
		idx[key] = c
	}
	return idx
}

// Match partitions artifacts into matched pairs and unmatched artifacts.
// Absence of a contact is data, not an error: unmatched artifacts carry a
// placeholder contact with an empty email and the artifact's own captured
// name. Artifact order is preserved within each partition.
func Match(artifacts []entity.Artifact, contacts []entity.Contact) entity.MatchResult {
	idx := BuildIndex(contacts)

	res := entity.MatchResult{
		Matched:   make([]entity.MatchPair, 0, len(artifacts)),
		Unmatched: make([]entity.MatchPair, 0),
	}
	for _, a := range artifacts {
		if c, ok := idx[normalize(a.AccountID)]; ok {
			res.Matched = append(res.Matched, entity.MatchPair{Artifact: a, Contact: c})
			continue
		}
		res.Unmatched = append(res.Unmatched, entity.MatchPair{
			Artifact: a,
			Contact: entity.Contact{
				AccountID: a.AccountID,
				Name:      a.Customer,
				Email:     "",
			},
		})
	}

	res.Stats = entity.MatchStats{
		Total:     len(artifacts),
		Matched:   len(res.Matched),
		Unmatched: len(res.Unmatched),
	}
	return res
}

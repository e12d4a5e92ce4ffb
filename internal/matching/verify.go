package matching

import (
	"fmt"
	"math"
	"sort"

	"github.com/saturnino-fabrica-de-software/eventface/internal/domain"
)

// NearestDistance returns the minimum distance between probe and any
// descriptor stored in record. ok is false when the record has no detections.
func NearestDistance(probe domain.DescriptorVector, record *domain.FaceRecord) (nearest float64, ok bool, err error) {
	nearest = math.Inf(1)
	for _, stored := range record.Detections {
		d, err := Distance(probe, stored.Descriptor)
		if err != nil {
			return 0, false, err
		}
		if d < nearest {
			nearest = d
		}
		ok = true
	}
	if !ok {
		return 0, false, nil
	}
	return nearest, true, nil
}

// MatchRecords scores every record by its nearest stored descriptor and keeps
// those at or below threshold. Matches are ordered by ascending similarity;
// ties keep the order of records.
func MatchRecords(probe domain.DescriptorVector, records []domain.FaceRecord, threshold float64) ([]domain.VerificationMatch, error) {
	matches := make([]domain.VerificationMatch, 0)

	for i := range records {
		rec := &records[i]

		similarity, ok, err := NearestDistance(probe, rec)
		if err != nil {
			return nil, fmt.Errorf("record %s: %w", rec.ID, err)
		}
		if !ok || similarity > threshold {
			continue
		}

		matches = append(matches, domain.VerificationMatch{
			RecordID:   rec.ID,
			EventID:    rec.EventID,
			Name:       rec.Name,
			School:     rec.School,
			Email:      rec.Email,
			Similarity: similarity,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Similarity < matches[j].Similarity
	})

	return matches, nil
}

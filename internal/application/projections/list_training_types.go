package projections

import (
	"context"

	domainTrainingType "gymtracker/internal/domain/trainingtype"
)

// TrainingTypeWithUsage pairs a category with the number of members on it.
type TrainingTypeWithUsage struct {
	domainTrainingType.TrainingType
	MemberCount int
}

// ListTrainingTypesResult carries the query result.
type ListTrainingTypesResult struct {
	TrainingTypes []TrainingTypeWithUsage
}

// ListTrainingTypesDeps holds dependencies for ListTrainingTypes.
type ListTrainingTypesDeps struct {
	TrainingTypeStore TrainingTypeStore
	MemberStore       MemberStore
}

// QueryListTrainingTypes retrieves categories with usage counts.
// PRE: Valid deps
// POST: Categories in store order, each annotated with how many members
// currently reference it by name. A count of zero means the category can
// be deleted.
func QueryListTrainingTypes(ctx context.Context, deps ListTrainingTypesDeps) (ListTrainingTypesResult, error) {
	types, err := deps.TrainingTypeStore.List(ctx)
	if err != nil {
		return ListTrainingTypesResult{}, err
	}
	members, err := deps.MemberStore.List(ctx)
	if err != nil {
		return ListTrainingTypesResult{}, err
	}

	usage := make(map[string]int)
	for _, m := range members {
		usage[m.TrainingType]++
	}

	result := make([]TrainingTypeWithUsage, 0, len(types))
	for _, tt := range types {
		result = append(result, TrainingTypeWithUsage{
			TrainingType: tt,
			MemberCount:  usage[tt.Name],
		})
	}
	return ListTrainingTypesResult{TrainingTypes: result}, nil
}

package v1

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sproutplan/sproutplan/pkg/types"
)

func TestReindexReportsFailedResource(t *testing.T) {
	list := []types.Resource{
		{ID: "r1", Title: "Counting Songs"},
		{ID: "r2", Title: "Broken Link"},
		{ID: "r3", Title: "Water-Saving Tips"},
	}

	processed, failures := reindexResources(list, func(id string) error {
		if id == "r2" {
			return fmt.Errorf("fetch link: connection refused")
		}
		return nil
	})

	assert.Equal(t, 2, processed)
	assert.Len(t, failures, 1)
	assert.Equal(t, "r2", failures[0].ResourceID)
	assert.Equal(t, "Broken Link", failures[0].Title)
	assert.Contains(t, failures[0].Error, "connection refused")
}

func TestReindexAllSucceeding(t *testing.T) {
	list := []types.Resource{{ID: "r1"}, {ID: "r2"}}

	processed, failures := reindexResources(list, func(string) error { return nil })

	assert.Equal(t, 2, processed)
	assert.Empty(t, failures)
}

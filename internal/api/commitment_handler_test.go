package api

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/commitlabs/commitment-api/internal/validation"
)

func TestDaysRemaining(t *testing.T) {
	now := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, daysRemaining(now.Add(-time.Hour), now))
	assert.Equal(t, 0, daysRemaining(now, now))
	// Partial days round up.
	assert.Equal(t, 1, daysRemaining(now.Add(time.Hour), now))
	assert.Equal(t, 2, daysRemaining(now.Add(25*time.Hour), now))
	assert.Equal(t, 10, daysRemaining(now.Add(10*24*time.Hour), now))
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	assert.Equal(t, []int{1, 2}, paginate(items, validation.Pagination{Page: 1, Limit: 2}))
	assert.Equal(t, []int{3, 4}, paginate(items, validation.Pagination{Page: 2, Limit: 2}))
	assert.Equal(t, []int{5}, paginate(items, validation.Pagination{Page: 3, Limit: 2}))
	assert.Empty(t, paginate(items, validation.Pagination{Page: 4, Limit: 2}))
	assert.Equal(t, items, paginate(items, validation.Pagination{Page: 1, Limit: 10}))
}

func TestNFTMetadataLink(t *testing.T) {
	h := &CommitmentHandler{nftContract: "CCONTRACT"}

	link := h.nftMetadataLink("123")
	assert.NotNil(t, link)
	assert.Equal(t, "CCONTRACT/metadata/123", *link)

	assert.Nil(t, h.nftMetadataLink(""))
	assert.Nil(t, (&CommitmentHandler{}).nftMetadataLink("123"))
}

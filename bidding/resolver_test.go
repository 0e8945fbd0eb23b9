package bidding

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"auction/models"
)

var (
	bidID1 = uuid.MustParse("01920000-0000-7000-8000-000000000001")
	bidID2 = uuid.MustParse("01920000-0000-7000-8000-000000000002")
	bidID3 = uuid.MustParse("01920000-0000-7000-8000-000000000003")
)

func bid(id uuid.UUID, amount string, cancelled bool) models.Bid {
	return models.Bid{ID: id, Amount: decimal.RequireFromString(amount), Cancelled: cancelled}
}

func TestLeader(t *testing.T) {
	tests := []struct {
		name      string
		bids      []models.Bid
		excluding []uuid.UUID
		wantID    uuid.UUID
		wantFound bool
	}{
		{name: "no bids"},
		{
			name:      "highest amount wins",
			bids:      []models.Bid{bid(bidID1, "105", false), bid(bidID2, "120", false), bid(bidID3, "110", false)},
			wantID:    bidID2,
			wantFound: true,
		},
		{
			name:      "cancelled bids are ignored",
			bids:      []models.Bid{bid(bidID1, "105", false), bid(bidID2, "120", true)},
			wantID:    bidID1,
			wantFound: true,
		},
		{
			name:      "tie goes to the earliest bid",
			bids:      []models.Bid{bid(bidID3, "110", false), bid(bidID2, "110", false), bid(bidID1, "105", false)},
			wantID:    bidID2,
			wantFound: true,
		},
		{
			name:      "exclusion is by id not by amount",
			bids:      []models.Bid{bid(bidID1, "110", false), bid(bidID2, "110", false)},
			excluding: []uuid.UUID{bidID1},
			wantID:    bidID2,
			wantFound: true,
		},
		{
			name:      "all bids excluded or cancelled",
			bids:      []models.Bid{bid(bidID1, "110", true), bid(bidID2, "115", false)},
			excluding: []uuid.UUID{bidID2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := Leader(tt.bids, tt.excluding...)
			assert.Equal(t, tt.wantFound, found)
			if tt.wantFound {
				assert.Equal(t, tt.wantID, got.ID)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	p := product("100", "120")

	t.Run("no active bids returns start price", func(t *testing.T) {
		got := Resolve(p, []models.Bid{bid(bidID1, "120", true)})
		assert.True(t, p.StartPrice.Equal(got))
	})

	t.Run("highest active bid", func(t *testing.T) {
		got := Resolve(p, []models.Bid{bid(bidID1, "105", false), bid(bidID2, "120", false)})
		assert.Equal(t, "120", got.String())
	})

	t.Run("excluding the leader falls back to the next bid", func(t *testing.T) {
		got := Resolve(p, []models.Bid{bid(bidID1, "105", false), bid(bidID2, "120", false)}, bidID2)
		assert.Equal(t, "105", got.String())
	})

	t.Run("excluding one of two equal bids keeps the amount", func(t *testing.T) {
		got := Resolve(p, []models.Bid{bid(bidID1, "120", false), bid(bidID2, "120", false)}, bidID1)
		assert.Equal(t, "120", got.String())
	})
}
